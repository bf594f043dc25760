// Package nonzero implements the NonZero gadget: it proves that a witness
// slot w[idx] equals 1 by opening B(X)-1 at D[idx] with a zero remainder.
// Grounded on original_source/src/nonzero.rs, adapted to gnark-crypto BN254
// types and poly.DivLinear's synthetic division.
package nonzero

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/okrame/we-snark/crs"
	"github.com/okrame/we-snark/poly"
	"github.com/okrame/we-snark/werr"
)

// Digest is the verification key for NonZero at a fixed slot index.
type Digest struct {
	Idx  int
	D    fr.Element     // D[idx] = omega^idx
	Tau2 bn254.G2Affine // [tau]_2
}

// Proof is the NonZero opening proof.
type Proof struct {
	Q0Tau1 bn254.G1Affine // [(B(X)-1)/(X-d)](tau)_1
	WTau2  bn254.G2Affine // [B(tau)]_2, identical to the IIP witness commitment
}

// NewDigest builds the NonZero digest for slot idx.
func NewDigest(c *crs.CRS, idx int) *Digest {
	return &Digest{
		Idx:  idx,
		D:    c.Dom.Element(idx),
		Tau2: c.G2Pow[1],
	}
}

// Prove builds the NonZero proof that w[idx] == 1. Returns
// werr.ProverInconsistency if the slot does not hold 1.
func Prove(c *crs.CRS, w []fr.Element, idx int) (*Proof, error) {
	if len(w) != c.N {
		return nil, werr.Wrap(werr.ShapeMismatch, "witness length must equal domain size", nil)
	}
	b := c.Interpolate(w)
	wTau2, err := c.CommitG2(b)
	if err != nil {
		return nil, err
	}

	d := c.Dom.Element(idx)
	bMinus1 := poly.AddConstant(b, negOne())

	q0, remainder := poly.DivLinear(bMinus1, d)
	if !remainder.IsZero() {
		return nil, werr.Wrap(werr.ProverInconsistency, "witness slot is not 1", nil)
	}

	q0Tau1, err := c.CommitG1(q0)
	if err != nil {
		return nil, err
	}

	return &Proof{Q0Tau1: q0Tau1, WTau2: wTau2}, nil
}

// Verify checks e(g1, [B(tau)]_2) = e(g1,g2) * e(q0, [tau]_2 - [d]_2).
func Verify(d *Digest, p *Proof) bool {
	_, _, g1, g2 := bn254.Generators()

	var dBig big.Int
	d.D.ToBigIntRegular(&dBig)
	var dG2 bn254.G2Affine
	dG2.ScalarMultiplication(&g2, &dBig)

	var tauJac, dJac, resJac bn254.G2Jac
	tauJac.FromAffine(&d.Tau2)
	dJac.FromAffine(&dG2)
	resJac.Sub(&tauJac, &dJac)
	var tauMinusD bn254.G2Affine
	tauMinusD.FromJacobian(&resJac)

	lhs, err := bn254.Pair([]bn254.G1Affine{g1}, []bn254.G2Affine{p.WTau2})
	if err != nil {
		return false
	}

	rhs, err := bn254.Pair(
		[]bn254.G1Affine{g1, p.Q0Tau1},
		[]bn254.G2Affine{g2, tauMinusD},
	)
	if err != nil {
		return false
	}
	return lhs.Equal(&rhs)
}

func negOne() fr.Element {
	var e fr.Element
	e.SetOne()
	e.Neg(&e)
	return e
}
