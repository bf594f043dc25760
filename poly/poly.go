// Package poly implements the dense polynomial arithmetic the SCS and its
// gadgets need over the BN254 scalar field: addition, scaling, multiplication,
// synthetic division by a linear factor, long division with remainder, and
// FFT-backed interpolation on a radix-2 multiplicative subgroup.
package poly

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
)

// Polynomial is a dense coefficient vector, coeffs[i] is the coefficient of
// X^i. The zero polynomial is represented by a nil or empty slice.
type Polynomial []fr.Element

// degree returns the index of the highest non-zero coefficient, or -1 for
// the zero polynomial.
func (p Polynomial) degree() int {
	for i := len(p) - 1; i >= 0; i-- {
		if !p[i].IsZero() {
			return i
		}
	}
	return -1
}

// Trim drops trailing zero coefficients.
func (p Polynomial) Trim() Polynomial {
	d := p.degree()
	if d < 0 {
		return Polynomial{}
	}
	out := make(Polynomial, d+1)
	copy(out, p[:d+1])
	return out
}

// Coeff returns the coefficient of X^i, or zero if i is out of range.
func (p Polynomial) Coeff(i int) fr.Element {
	if i < 0 || i >= len(p) {
		return fr.Element{}
	}
	return p[i]
}

// IsZero reports whether every coefficient is zero.
func (p Polynomial) IsZero() bool {
	return p.degree() < 0
}

// FromCoeffs copies a coefficient slice into a Polynomial.
func FromCoeffs(c []fr.Element) Polynomial {
	out := make(Polynomial, len(c))
	copy(out, c)
	return out
}

// Add returns a+b.
func Add(a, b Polynomial) Polynomial {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(Polynomial, n)
	for i := 0; i < n; i++ {
		av := a.Coeff(i)
		bv := b.Coeff(i)
		out[i].Add(&av, &bv)
	}
	return out.Trim()
}

// Sub returns a-b.
func Sub(a, b Polynomial) Polynomial {
	n := len(a)
	if len(b) > n {
		n = len(b)
	}
	out := make(Polynomial, n)
	for i := 0; i < n; i++ {
		av := a.Coeff(i)
		bv := b.Coeff(i)
		out[i].Sub(&av, &bv)
	}
	return out.Trim()
}

// AddConstant returns p(X)+c.
func AddConstant(p Polynomial, c fr.Element) Polynomial {
	if len(p) == 0 {
		return Polynomial{c}
	}
	out := make(Polynomial, len(p))
	copy(out, p)
	out[0].Add(&out[0], &c)
	return out.Trim()
}

// Scale returns c*p(X).
func Scale(p Polynomial, c fr.Element) Polynomial {
	out := make(Polynomial, len(p))
	for i := range p {
		out[i].Mul(&p[i], &c)
	}
	return out.Trim()
}

// MulByXk returns X^k * p(X).
func MulByXk(p Polynomial, k int) Polynomial {
	out := make(Polynomial, len(p)+k)
	copy(out[k:], p)
	return out
}

// Mul returns a(X)*b(X) via schoolbook convolution. The domains this package
// operates on are small (bounded by the CRS's N), so the O(len(a)*len(b))
// cost is not a concern here.
func Mul(a, b Polynomial) Polynomial {
	if len(a) == 0 || len(b) == 0 {
		return Polynomial{}
	}
	out := make(Polynomial, len(a)+len(b)-1)
	var tmp fr.Element
	for i, ai := range a {
		if ai.IsZero() {
			continue
		}
		for j, bj := range b {
			tmp.Mul(&ai, &bj)
			out[i+j].Add(&out[i+j], &tmp)
		}
	}
	return out.Trim()
}

// DivRem performs polynomial long division, returning (q, r) such that
// p = q*d + r with deg(r) < deg(d). Panics if d is the zero polynomial: a
// well-formed caller never divides by zero, so this is a programmer error.
func DivRem(p, d Polynomial) (q, r Polynomial) {
	dDeg := d.degree()
	if dDeg < 0 {
		panic("poly: division by the zero polynomial")
	}
	r = p.Trim()
	pDeg := r.degree()
	if pDeg < dDeg {
		return Polynomial{}, r
	}
	qc := make([]fr.Element, pDeg-dDeg+1)
	lead := d[dDeg]
	var leadInv fr.Element
	leadInv.Inverse(&lead)

	work := make([]fr.Element, len(r))
	copy(work, r)

	for deg := pDeg; deg >= dDeg; deg-- {
		c := work[deg]
		if c.IsZero() {
			continue
		}
		var coeff fr.Element
		coeff.Mul(&c, &leadInv)
		qc[deg-dDeg] = coeff
		for j := 0; j <= dDeg; j++ {
			var term fr.Element
			term.Mul(&coeff, &d[j])
			work[deg-dDeg+j].Sub(&work[deg-dDeg+j], &term)
		}
	}
	q = Polynomial(qc).Trim()
	r = Polynomial(work).Trim()
	return q, r
}

// DivLinear performs synthetic division of p(X) by (X - d), an O(len(p))
// specialisation of DivRem used by the NonZero gadget. It returns the
// quotient and the scalar remainder p(d).
func DivLinear(p Polynomial, d fr.Element) (q Polynomial, remainder fr.Element) {
	n := len(p)
	if n == 0 {
		return Polynomial{}, fr.Element{}
	}
	qc := make([]fr.Element, n-1)
	var carry fr.Element
	carry.Set(&p[n-1])
	for i := n - 2; i >= 0; i-- {
		if i < len(qc) {
			qc[i].Set(&carry)
		}
		var term fr.Element
		term.Mul(&carry, &d)
		carry.Add(&p[i], &term)
	}
	return Polynomial(qc).Trim(), carry
}

// Evaluate computes p(x) via Horner's method.
func Evaluate(p Polynomial, x fr.Element) fr.Element {
	var acc fr.Element
	for i := len(p) - 1; i >= 0; i-- {
		acc.Mul(&acc, &x)
		acc.Add(&acc, &p[i])
	}
	return acc
}

// VanishingCoeffs returns the coefficients of Z_D(X) = X^n - 1.
func VanishingCoeffs(n int) Polynomial {
	c := make([]fr.Element, n+1)
	var negOne fr.Element
	negOne.SetOne()
	negOne.Neg(&negOne)
	c[0] = negOne
	c[n].SetOne()
	return c
}

