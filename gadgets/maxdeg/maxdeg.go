// Package maxdeg implements the Max-Degree bound gadget: it proves that the
// IIP witness polynomial B(X) has degree at most d by committing to the
// degree-shifted polynomial X^{N-d}*B(X) in G1. The original sources do not
// carry a standalone module for this (it is inlined in lv.rs); the LV
// aggregator's degree-bound row equation is the grounding instead.
package maxdeg

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/okrame/we-snark/crs"
	"github.com/okrame/we-snark/poly"
	"github.com/okrame/we-snark/werr"
)

// Params are the public, CRS-derived parameters of the bound.
type Params struct {
	D        int // degree bound
	TauNMinD bn254.G1Affine
}

// Proof carries the shifted witness commitment.
type Proof struct {
	WHatTau1 bn254.G1Affine // [X^{N-d} * B(X)](tau)_1
}

// NewParams builds the public max-degree parameters for bound d over c.
func NewParams(c *crs.CRS, d int) (*Params, error) {
	if d < 0 || c.NMax-d < 0 || c.NMax-d > c.NMax {
		return nil, werr.Wrap(werr.MalformedCRS, "degree bound out of range", nil)
	}
	return &Params{D: d, TauNMinD: c.G1Pow[c.NMax-d]}, nil
}

// Prove commits to X^{N-d} * B(X) where B interpolates witness w. Returns
// werr.ProverInconsistency if B exceeds the degree bound d.
func Prove(c *crs.CRS, p *Params, w []fr.Element) (*Proof, error) {
	if len(w) != c.N {
		return nil, werr.Wrap(werr.ShapeMismatch, "witness length must equal domain size", nil)
	}
	b := c.Interpolate(w)
	if deg := b.Trim(); len(deg) > 0 && len(deg)-1 > p.D {
		return nil, werr.Wrap(werr.ProverInconsistency, "witness polynomial exceeds the degree bound", nil)
	}
	shifted := poly.MulByXk(b, c.NMax-p.D)
	commit, err := c.CommitG1(shifted)
	if err != nil {
		return nil, err
	}
	return &Proof{WHatTau1: commit}, nil
}

// Verify checks [tau^{N-d}]_1 . [B(tau)]_2 = [X^{N-d} B(X)]_1 . g2, given the
// witness commitment wTau2 shared with the IIP/NonZero gadgets.
func Verify(p *Params, proof *Proof, wTau2 bn254.G2Affine) bool {
	_, _, _, g2 := bn254.Generators()

	lhs, err := bn254.Pair([]bn254.G1Affine{p.TauNMinD}, []bn254.G2Affine{wTau2})
	if err != nil {
		return false
	}
	rhs, err := bn254.Pair([]bn254.G1Affine{proof.WHatTau1}, []bn254.G2Affine{g2})
	if err != nil {
		return false
	}
	return lhs.Equal(&rhs)
}
