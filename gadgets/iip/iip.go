// Package iip implements the Indexed Inner Product gadget: given a public
// selector s and a witness w, it proves the linear functional value
// v = <s,w> without revealing w, via three pairing equations binding the
// witness commitment, the claimed value, and a max-degree bound on the
// quotient. Grounded on original_source/src/iip.rs, adapted to
// gnark-crypto's BN254 types and the commit/interpolate primitives in crs.
package iip

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/okrame/we-snark/crs"
	"github.com/okrame/we-snark/poly"
	"github.com/okrame/we-snark/werr"

	"github.com/rs/zerolog/log"
)

// Digest is the verification key for one selector s.
type Digest struct {
	XStar     fr.Element // 0
	YStar     fr.Element // 1/n
	C         bn254.G1Affine
	ZTau2     bn254.G2Affine
	Tau2      bn254.G2Affine
	TauShift2 bn254.G2Affine // [tau^{N-n+1}]_2
	TauN2     bn254.G2Affine
	N         int
	NMax      int
}

// Proof is the IIP proof for a witness w against the same selector s.
type Proof struct {
	WTau2    bn254.G2Affine // [B(tau)]_2
	VG1      bn254.G1Affine // v * g1
	QZTau1   bn254.G1Affine
	QXTau1   bn254.G1Affine
	QXHat1   bn254.G1Affine
	VHatTau1 bn254.G1Affine
	V        fr.Element // the claimed inner product value, carried for downstream cross-checks
}

// NewDigest builds the IIP verification key for selector s over c.
func NewDigest(c *crs.CRS, s []fr.Element) (*Digest, error) {
	if len(s) != c.N {
		return nil, werr.Wrap(werr.ShapeMismatch, "selector length must equal domain size", nil)
	}
	a := c.Interpolate(s)
	commitA, err := c.CommitG1(a)
	if err != nil {
		return nil, err
	}
	zTau2, err := c.CommitG2(c.VanishingCoeffs())
	if err != nil {
		return nil, err
	}

	tau2 := c.G2Pow[1]
	tauShift2 := c.G2Pow[c.NMax-c.N+1]
	tauN2 := c.G2Pow[c.NMax]

	return &Digest{
		XStar:     fr.Element{},
		YStar:     c.NInv,
		C:         commitA,
		ZTau2:     zTau2,
		Tau2:      tau2,
		TauShift2: tauShift2,
		TauN2:     tauN2,
		N:         c.N,
		NMax:      c.NMax,
	}, nil
}

// Prove builds the IIP proof that <s, w> holds, given the same selector used
// to build Digest.
func Prove(c *crs.CRS, s, w []fr.Element) (*Proof, error) {
	if len(s) != c.N || len(w) != c.N {
		return nil, werr.Wrap(werr.ShapeMismatch, "selector/witness length must equal domain size", nil)
	}

	a := c.Interpolate(s)
	b := c.Interpolate(w)

	wTau2, err := c.CommitG2(b)
	if err != nil {
		return nil, err
	}

	var v fr.Element
	for i := range s {
		var term fr.Element
		term.Mul(&s[i], &w[i])
		v.Add(&v, &term)
	}

	var vBig big.Int
	v.ToBigIntRegular(&vBig)
	var vG1 bn254.G1Affine
	_, _, g1, _ := bn254.Generators()
	vG1.ScalarMultiplication(&g1, &vBig)

	p := poly.Mul(a, b)

	var nInvInv fr.Element
	nInvInv.Inverse(&c.NInv) // = n
	var t fr.Element
	t.Mul(&v, &nInvInv)
	p = poly.AddConstant(p, negate(t))

	z := c.VanishingCoeffs()
	qz, r := poly.DivRem(p, z)

	var xStar fr.Element // zero
	zAtX := poly.Evaluate(z, xStar)
	rAtX := poly.Evaluate(r, xStar)
	if !rAtX.IsZero() {
		var zInv fr.Element
		zInv.Inverse(&zAtX)
		var cc fr.Element
		cc.Mul(&rAtX, &zInv)
		qz = poly.AddConstant(qz, cc)
		r = poly.Sub(r, poly.Scale(z, cc))
	}

	lin := poly.Polynomial{negate(xStar), one()}
	qx, rem := poly.DivRem(r, lin)
	if !rem.IsZero() {
		return nil, werr.Wrap(werr.ProverInconsistency, "IIP remainder not divisible by (X - x*)", nil)
	}

	qxHat := poly.MulByXk(qx, c.NMax-c.N+1)

	vhatCoeffs := make([]fr.Element, c.NMax+1)
	vhatCoeffs[c.NMax] = v
	vhat := poly.Polynomial(vhatCoeffs)

	qzTau1, err := c.CommitG1(qz)
	if err != nil {
		return nil, err
	}
	qxTau1, err := c.CommitG1(qx)
	if err != nil {
		return nil, err
	}
	qxHat1, err := c.CommitG1(qxHat)
	if err != nil {
		return nil, err
	}
	vHatTau1, err := c.CommitG1(vhat)
	if err != nil {
		return nil, err
	}

	log.Debug().Msg("iip proof constructed")

	return &Proof{
		WTau2:    wTau2,
		VG1:      vG1,
		QZTau1:   qzTau1,
		QXTau1:   qxTau1,
		QXHat1:   qxHat1,
		VHatTau1: vHatTau1,
		V:        v,
	}, nil
}

// Verify checks the three IIP pairing equations.
func Verify(d *Digest, p *Proof) bool {
	_, _, _, g2 := bn254.Generators()

	lhs1, err := bn254.Pair([]bn254.G1Affine{d.C}, []bn254.G2Affine{p.WTau2})
	if err != nil {
		return false
	}

	var yInv fr.Element
	yInv.Inverse(&d.YStar)
	var yInvBig big.Int
	yInv.ToBigIntRegular(&yInvBig)
	var vScaled bn254.G1Affine
	vScaled.ScalarMultiplication(&p.VG1, &yInvBig)

	rhs1, err := bn254.Pair(
		[]bn254.G1Affine{vScaled, p.QXTau1, p.QZTau1},
		[]bn254.G2Affine{g2, d.Tau2, d.ZTau2},
	)
	if err != nil {
		return false
	}
	if !lhs1.Equal(&rhs1) {
		return false
	}

	lhs2, err := bn254.Pair([]bn254.G1Affine{p.QXTau1}, []bn254.G2Affine{d.TauShift2})
	if err != nil {
		return false
	}
	rhs2, err := bn254.Pair([]bn254.G1Affine{p.QXHat1}, []bn254.G2Affine{g2})
	if err != nil {
		return false
	}
	if !lhs2.Equal(&rhs2) {
		return false
	}

	lhs3, err := bn254.Pair([]bn254.G1Affine{p.VG1}, []bn254.G2Affine{d.TauN2})
	if err != nil {
		return false
	}
	rhs3, err := bn254.Pair([]bn254.G1Affine{p.VHatTau1}, []bn254.G2Affine{g2})
	if err != nil {
		return false
	}
	return lhs3.Equal(&rhs3)
}

func one() fr.Element {
	var e fr.Element
	e.SetOne()
	return e
}

func negate(e fr.Element) fr.Element {
	var out fr.Element
	out.Neg(&e)
	return out
}
