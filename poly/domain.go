package poly

import (
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr/fft"
)

// Domain wraps a gnark-crypto radix-2 FFT domain of size n together with the
// explicit list of its n elements {1, ω, ω², …, ω^{n-1}}, the multiplicative
// subgroup D the SCS and its gadgets interpolate and evaluate over.
type Domain struct {
	n       int
	fft     *fft.Domain
	points  []fr.Element
	invSize fr.Element // n^{-1} = CardinalityInv
}

// NewDomain builds the radix-2 subgroup of order n. n must be a power of two;
// callers are expected to have validated this already (see crs.Setup).
func NewDomain(n int) *Domain {
	d := fft.NewDomain(uint64(n))
	points := make([]fr.Element, n)
	points[0].SetOne()
	for i := 1; i < n; i++ {
		points[i].Mul(&points[i-1], &d.Generator)
	}
	return &Domain{n: n, fft: d, points: points, invSize: d.CardinalityInv}
}

// Size returns n.
func (d *Domain) Size() int { return d.n }

// Element returns the i-th domain element ω^i.
func (d *Domain) Element(i int) fr.Element { return d.points[i%d.n] }

// Points returns the full ordered list of domain elements.
func (d *Domain) Points() []fr.Element {
	out := make([]fr.Element, len(d.points))
	copy(out, d.points)
	return out
}

// Inv returns n^{-1} in F, the y* of the IIP gadget at x*=0.
func (d *Domain) Inv() fr.Element { return d.invSize }

// Interpolate returns the unique polynomial of degree < n whose evaluations
// on D match evals, via an inverse NTT. len(evals) must equal n.
func (d *Domain) Interpolate(evals []fr.Element) Polynomial {
	if len(evals) != d.n {
		panic("poly: Interpolate requires exactly n evaluations")
	}
	coeffs := make([]fr.Element, d.n)
	copy(coeffs, evals)
	d.fft.FFTInverse(coeffs, fft.DIF)
	fft.BitReverse(coeffs)
	return Polynomial(coeffs).Trim()
}

// VanishingCoeffs returns the coefficients of Z_D(X) = X^n - 1 for this domain.
func (d *Domain) VanishingCoeffs() Polynomial {
	return VanishingCoeffs(d.n)
}
