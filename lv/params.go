package lv

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/okrame/we-snark/crs"
)

// Shape is the public linear shape of the LV system: the fixed integer
// matrix A and the digest-dependent constant vector b.
type Shape struct {
	A [LVRows][LVNumCoords]int8
	B [LVRows]bn254.GT
}

// Column describes one of the LVNumCoords coordinates: which source group
// the proof-side element lives in, and the fixed public base point paired
// against it (in the opposite group).
type Column struct {
	ProofInG1 bool
	BaseG1    bn254.G1Affine
	BaseG2    bn254.G2Affine
}

// ColumnMeta is the per-coordinate metadata used by the WE encryptor and
// decryptor to build and consume header elements.
type ColumnMeta [LVNumCoords]Column

// PublicParams computes the linear Shape and ColumnMeta from the CRS and LV
// digest, with no proof required; this is what we.Encrypt consumes.
func PublicParams(c *crs.CRS, d *Digest) (Shape, ColumnMeta, error) {
	var shape Shape
	a, b, err := buildShape(d)
	if err != nil {
		return shape, ColumnMeta{}, err
	}
	shape.A = a
	shape.B = b

	_, _, g1, g2 := bn254.Generators()

	var dBig big.Int
	d.NZ.D.ToBigIntRegular(&dBig)
	var dG2 bn254.G2Affine
	dG2.ScalarMultiplication(&g2, &dBig)
	var tauJac, dJac, resJac bn254.G2Jac
	tauJac.FromAffine(&d.NZ.Tau2)
	dJac.FromAffine(&dG2)
	resJac.Sub(&tauJac, &dJac)
	var tau2MinusD bn254.G2Affine
	tau2MinusD.FromJacobian(&resJac)

	var meta ColumnMeta
	meta[0] = Column{ProofInG1: false, BaseG1: d.IIPZ.C}
	meta[1] = Column{ProofInG1: true, BaseG2: g2}
	meta[2] = Column{ProofInG1: true, BaseG2: d.IIPZ.Tau2}
	meta[3] = Column{ProofInG1: true, BaseG2: d.IIPZ.ZTau2}
	meta[4] = Column{ProofInG1: true, BaseG2: d.IIPZ.TauShift2}
	meta[5] = Column{ProofInG1: true, BaseG2: g2}
	meta[6] = Column{ProofInG1: true, BaseG2: d.IIPZ.TauN2}
	meta[7] = Column{ProofInG1: true, BaseG2: g2}
	meta[8] = Column{ProofInG1: false, BaseG1: g1}
	meta[9] = Column{ProofInG1: true, BaseG2: tau2MinusD}
	meta[10] = Column{ProofInG1: true, BaseG2: g2}
	meta[11] = Column{ProofInG1: true, BaseG2: d.MulZTau2}
	meta[12] = Column{ProofInG1: true, BaseG2: g2}
	meta[13] = Column{ProofInG1: true, BaseG2: g2}
	meta[14] = Column{ProofInG1: false, BaseG1: d.MaxDeg.TauNMinD}
	meta[15] = Column{ProofInG1: true, BaseG2: g2}
	meta[16] = Column{ProofInG1: true, BaseG2: g2}
	meta[17] = Column{ProofInG1: true, BaseG2: g2}
	meta[18] = Column{ProofInG1: true, BaseG2: g2}
	meta[19] = Column{ProofInG1: true, BaseG2: g2}

	return shape, meta, nil
}

// ProofElement returns the proof-side element for coordinate column j: a G1
// point if the column's metadata says ProofInG1, else a G2 point.
func ProofElement(d *Digest, p *Proof, j int) (g1 bn254.G1Affine, g2 bn254.G2Affine, isG1 bool) {
	switch j {
	case 0:
		return bn254.G1Affine{}, p.IIPZ.WTau2, false
	case 1:
		return vzScaled(d, p), bn254.G2Affine{}, true
	case 2, 4:
		return p.IIPZ.QXTau1, bn254.G2Affine{}, true
	case 3:
		return p.IIPZ.QZTau1, bn254.G2Affine{}, true
	case 5:
		return p.IIPZ.QXHat1, bn254.G2Affine{}, true
	case 6, 13:
		return p.IIPZ.VG1, bn254.G2Affine{}, true
	case 7:
		return p.IIPZ.VHatTau1, bn254.G2Affine{}, true
	case 8, 14:
		return bn254.G1Affine{}, p.NZ.WTau2, false
	case 9:
		return p.NZ.Q0Tau1, bn254.G2Affine{}, true
	case 10:
		return p.Mul.PTau1, bn254.G2Affine{}, true
	case 11:
		return p.Mul.HTau1, bn254.G2Affine{}, true
	case 12:
		return p.Mul.CTau1, bn254.G2Affine{}, true
	case 15:
		return p.MaxDeg.WHatTau1, bn254.G2Affine{}, true
	case 16:
		return p.Mul.ATau1, bn254.G2Affine{}, true
	case 17:
		return p.IIPX.VG1, bn254.G2Affine{}, true
	case 18:
		return p.Mul.BTau1, bn254.G2Affine{}, true
	case 19:
		return p.IIPY.VG1, bn254.G2Affine{}, true
	default:
		panic("lv: invalid coordinate index")
	}
}

func vzScaled(d *Digest, p *Proof) bn254.G1Affine {
	var yInv fr.Element
	yInv.Inverse(&d.IIPZ.YStar)
	var yInvBig big.Int
	yInv.ToBigIntRegular(&yInvBig)
	var out bn254.G1Affine
	out.ScalarMultiplication(&p.IIPZ.VG1, &yInvBig)
	return out
}
