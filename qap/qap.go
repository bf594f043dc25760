// Package qap implements the single-gate Mul/QAP gadget: given w=[x,y,z,1]
// over D={1,omega,omega^2,omega^3} and Z_mul(X)=X-1, it commits A(X)=x,
// B(X)=y, C(X)=z (constant polynomials) and proves A*B-C is divisible by
// Z_mul. Grounded on original_source/src/mul_snark.rs and
// gadgets/arithmetic.rs's QAP/QAPCommit types, kept general enough (A, B, C
// as polynomial slices plus a vanishing polynomial) that a future multi-gate
// QAP would not need a type change.
package qap

import (
	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/okrame/we-snark/crs"
	"github.com/okrame/we-snark/poly"
	"github.com/okrame/we-snark/werr"
)

// QAP is the quadratic arithmetic program for one multiplication gate.
type QAP struct {
	A []poly.Polynomial
	B []poly.Polynomial
	C []poly.Polynomial
	Z poly.Polynomial
}

// ForMul builds the one-gate QAP for w=[x,y,z,1]: A(X)=x, B(X)=y, C(X)=z,
// Z(X)=X-1.
func ForMul(w []fr.Element) (*QAP, error) {
	if len(w) != 4 {
		return nil, werr.Wrap(werr.ShapeMismatch, "Mul witness must be [x,y,z,1]", nil)
	}
	zPoly := poly.Polynomial{negOne(), one()} // X - 1
	return &QAP{
		A: []poly.Polynomial{{w[0]}},
		B: []poly.Polynomial{{w[1]}},
		C: []poly.Polynomial{{w[2]}},
		Z: zPoly,
	}, nil
}

// BuildP returns P(X) = A[0](X)*B[0](X) - C[0](X) for the one-gate Mul QAP.
func (q *QAP) BuildP() poly.Polynomial {
	p := poly.Mul(q.A[0], q.B[0])
	return poly.Sub(p, q.C[0])
}

// ComputeH returns H(X) = P(X) / Z(X). Returns werr.ProverInconsistency if P
// is not divisible by Z, i.e. x*y != z.
func (q *QAP) ComputeH() (poly.Polynomial, error) {
	p := q.BuildP()
	h, r := poly.DivRem(p, q.Z)
	if !r.IsZero() {
		return nil, werr.Wrap(werr.ProverInconsistency, "Mul QAP: x*y != z", nil)
	}
	return h, nil
}

// Commit holds the KZG commitments to the Mul QAP polynomials.
type Commit struct {
	ATau1 bn254.G1Affine
	BTau1 bn254.G1Affine
	BTau2 bn254.G2Affine
	CTau1 bn254.G1Affine
	PTau1 bn254.G1Affine
	HTau1 bn254.G1Affine
}

// DigestMul commits the CRS-side fixed parameters of the Mul gadget: the
// vanishing polynomial [Z_mul(tau)]_2 used by every instance (the gate
// selects a witness; the vanishing polynomial does not depend on it).
func DigestMul(c *crs.CRS) (bn254.G2Affine, error) {
	zPoly := poly.Polynomial{negOne(), one()}
	return c.CommitG2(zPoly)
}

// CommitMul commits the Mul-demo QAP polynomials with the SCS (KZG).
func CommitMul(c *crs.CRS, q *QAP) (*Commit, error) {
	if len(q.A) != 1 || len(q.B) != 1 || len(q.C) != 1 {
		return nil, werr.Wrap(werr.ShapeMismatch, "Mul demo expects single A/B/C polynomials", nil)
	}

	aTau1, err := c.CommitG1(q.A[0])
	if err != nil {
		return nil, err
	}
	bTau1, err := c.CommitG1(q.B[0])
	if err != nil {
		return nil, err
	}
	bTau2, err := c.CommitG2(q.B[0])
	if err != nil {
		return nil, err
	}
	cTau1, err := c.CommitG1(q.C[0])
	if err != nil {
		return nil, err
	}

	p := q.BuildP()
	pTau1, err := c.CommitG1(p)
	if err != nil {
		return nil, err
	}

	h, err := q.ComputeH()
	if err != nil {
		return nil, err
	}
	hTau1, err := c.CommitG1(h)
	if err != nil {
		return nil, err
	}

	return &Commit{
		ATau1: aTau1,
		BTau1: bTau1,
		BTau2: bTau2,
		CTau1: cTau1,
		PTau1: pTau1,
		HTau1: hTau1,
	}, nil
}

func one() fr.Element {
	var e fr.Element
	e.SetOne()
	return e
}

func negOne() fr.Element {
	e := one()
	e.Neg(&e)
	return e
}
