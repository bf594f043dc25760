package lv

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"

	"github.com/okrame/we-snark/werr"
)

// shapeBuilder accumulates the rows of the global LV linear system one
// gadget at a time, mirroring how the original sources compose a verifier
// out of independent gadgets (gadgets/traits.rs's LVShapeBuilder/LVGadget,
// gadgets/arithmetic.rs's MulGadget.append_constraints) instead of writing
// out the whole A matrix as a single literal.
type shapeBuilder struct {
	a [][LVNumCoords]int8
	b []bn254.GT
}

func newShapeBuilder() *shapeBuilder {
	return &shapeBuilder{}
}

// addRow appends one equation: prod_j coords[j]^coeffs[j] = rhs.
func (sb *shapeBuilder) addRow(coeffs [LVNumCoords]int8, rhs bn254.GT) {
	sb.a = append(sb.a, coeffs)
	sb.b = append(sb.b, rhs)
}

func (sb *shapeBuilder) rows() int {
	return len(sb.a)
}

// build fixes the accumulated rows into the arrays the rest of the package
// works with. Returns werr.ShapeMismatch if a gadget was added, removed, or
// miscounted its rows.
func (sb *shapeBuilder) build() ([LVRows][LVNumCoords]int8, [LVRows]bn254.GT, error) {
	var a [LVRows][LVNumCoords]int8
	var b [LVRows]bn254.GT
	if sb.rows() != LVRows {
		return a, b, werr.Wrap(werr.ShapeMismatch, "lv shape builder produced the wrong row count", nil)
	}
	copy(a[:], sb.a)
	copy(b[:], sb.b)
	return a, b, nil
}

// buildShape assembles the full LVRows x LVNumCoords LV shape by letting
// each gadget append its own rows in turn: IIP on s_z (rows 0-2), NonZero
// (row 3), Mul/QAP's P=H*Z_mul and C-binding (rows 4-5), MaxDeg (row 6),
// public-instance binding (row 7), and the Mul-to-IIP cross-checks for x
// and y (rows 8-9).
func buildShape(d *Digest) ([LVRows][LVNumCoords]int8, [LVRows]bn254.GT, error) {
	sb := newShapeBuilder()
	_, _, g1, g2 := bn254.Generators()

	var gtOne bn254.GT
	gtOne.SetOne()

	appendIIPZRows(sb, gtOne)
	if err := appendNonZeroRow(sb, g1, g2, gtOne); err != nil {
		return [LVRows][LVNumCoords]int8{}, [LVRows]bn254.GT{}, err
	}
	appendMulPHRow(sb, gtOne)
	appendMulCBindRow(sb, gtOne)
	appendMaxDegRow(sb, gtOne)
	if err := appendInstanceRow(sb, d, g1, g2); err != nil {
		return [LVRows][LVNumCoords]int8{}, [LVRows]bn254.GT{}, err
	}
	appendMulABindRows(sb, gtOne)

	return sb.build()
}

// appendIIPZRows contributes the three IIP pairing equations on selector
// s_z: c0=c1*c2*c3 (main equation), c4=c5 (degree-shift), c6=c7 (v-hat).
func appendIIPZRows(sb *shapeBuilder, gtOne bn254.GT) {
	var r0, r1, r2 [LVNumCoords]int8
	r0[0], r0[1], r0[2], r0[3] = 1, -1, -1, -1
	r1[4], r1[5] = 1, -1
	r2[6], r2[7] = 1, -1
	sb.addRow(r0, gtOne)
	sb.addRow(r1, gtOne)
	sb.addRow(r2, gtOne)
}

// appendNonZeroRow contributes c8=c9*e(g1,g2): the opening of B(X)-1 at the
// constant-slot index.
func appendNonZeroRow(sb *shapeBuilder, g1 bn254.G1Affine, g2 bn254.G2Affine, gtOne bn254.GT) error {
	var r [LVNumCoords]int8
	r[8], r[9] = 1, -1
	rhs, err := bn254.Pair([]bn254.G1Affine{g1}, []bn254.G2Affine{g2})
	if err != nil {
		return err
	}
	sb.addRow(r, rhs)
	return nil
}

// appendMulPHRow contributes c10=c11: [P(tau)]_1 = [H(tau)]_1 . [Z_mul(tau)]_2.
func appendMulPHRow(sb *shapeBuilder, gtOne bn254.GT) {
	var r [LVNumCoords]int8
	r[10], r[11] = 1, -1
	sb.addRow(r, gtOne)
}

// appendMulCBindRow contributes c12=c13: the QAP's C(tau) commitment equals
// the IIP-z v-commitment.
func appendMulCBindRow(sb *shapeBuilder, gtOne bn254.GT) {
	var r [LVNumCoords]int8
	r[12], r[13] = 1, -1
	sb.addRow(r, gtOne)
}

// appendMaxDegRow contributes c14=c15: the degree-shifted witness binding.
func appendMaxDegRow(sb *shapeBuilder, gtOne bn254.GT) {
	var r [LVNumCoords]int8
	r[14], r[15] = 1, -1
	sb.addRow(r, gtOne)
}

// appendInstanceRow contributes c13 = e(z0*g1, g2): binds the IIP-z value to
// the public instance.
func appendInstanceRow(sb *shapeBuilder, d *Digest, g1 bn254.G1Affine, g2 bn254.G2Affine) error {
	var r [LVNumCoords]int8
	r[13] = 1
	var z0Big big.Int
	d.Z0.ToBigIntRegular(&z0Big)
	var z0G1 bn254.G1Affine
	z0G1.ScalarMultiplication(&g1, &z0Big)
	rhs, err := bn254.Pair([]bn254.G1Affine{z0G1}, []bn254.G2Affine{g2})
	if err != nil {
		return err
	}
	sb.addRow(r, rhs)
	return nil
}

// appendMulABindRows contributes c16=c17 and c18=c19: the QAP's A(tau) and
// B(tau) commitments equal the IIP-x and IIP-y v-commitments. Soundness of
// this binding depends on IIPX/IIPY themselves being verified (see
// Verify's direct iip.Verify calls) -- without that, these two coordinates
// alone would let a prover pick A(tau)/B(tau) and a matching but otherwise
// unconstrained IIP v-value together.
func appendMulABindRows(sb *shapeBuilder, gtOne bn254.GT) {
	var r8, r9 [LVNumCoords]int8
	r8[16], r8[17] = 1, -1
	r9[18], r9[19] = 1, -1
	sb.addRow(r8, gtOne)
	sb.addRow(r9, gtOne)
}
