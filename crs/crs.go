// Package crs builds and holds the structured common reference string: the
// powers-of-tau commitment keys in G1 and G2, the evaluation domain D, and
// the vanishing polynomial Z_D. Grounded on the trusted-setup wiring this
// module replaces and the Rust original's scs.rs.
package crs

import (
	"fmt"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/okrame/we-snark/poly"
	"github.com/okrame/we-snark/werr"

	"github.com/rs/zerolog/log"
)

// CRS is the structured reference string: powers of a secret tau in G1 and
// G2 up to degree N, together with the evaluation domain D of size n.
//
// The trapdoor tau itself is never retained past Setup.
type CRS struct {
	N     int
	NMax  int // N = 2n+4
	NInv  fr.Element
	G1Pow []bn254.G1Affine // [tau^i]_1, i = 0..NMax
	G2Pow []bn254.G2Affine // [tau^i]_2, i = 0..NMax
	Dom   *poly.Domain
}

// Setup samples a fresh trapdoor tau and builds the CRS for domain size n.
// n must be a power of two; Setup returns werr.MalformedCRS otherwise.
func Setup(n int) (*CRS, error) {
	if n <= 0 || n&(n-1) != 0 {
		return nil, werr.Wrap(werr.MalformedCRS, fmt.Sprintf("domain size %d is not a power of two", n), nil)
	}

	nMax := 2*n + 4

	var tau fr.Element
	if _, err := tau.SetRandom(); err != nil {
		return nil, werr.Wrap(werr.MalformedCRS, "sampling trapdoor", err)
	}

	_, _, g1, g2 := bn254.Generators()

	g1Pow := make([]bn254.G1Affine, nMax+1)
	g2Pow := make([]bn254.G2Affine, nMax+1)

	var acc fr.Element
	acc.SetOne()
	var accBig big.Int
	for i := 0; i <= nMax; i++ {
		acc.ToBigIntRegular(&accBig)
		g1Pow[i].ScalarMultiplication(&g1, &accBig)
		g2Pow[i].ScalarMultiplication(&g2, &accBig)
		acc.Mul(&acc, &tau)
	}

	dom := poly.NewDomain(n)

	tau.SetZero()

	log.Debug().Int("n", n).Int("N", nMax).Msg("crs setup complete")

	return &CRS{
		N:     n,
		NMax:  nMax,
		NInv:  dom.Inv(),
		G1Pow: g1Pow,
		G2Pow: g2Pow,
		Dom:   dom,
	}, nil
}

// CommitG1 returns sum_j coeffs[j] * [tau^j]_1. Coefficients beyond NMax are
// rejected with werr.MalformedCRS; zero coefficients are skipped.
func (c *CRS) CommitG1(coeffs poly.Polynomial) (bn254.G1Affine, error) {
	var out bn254.G1Affine
	if len(coeffs) > c.NMax+1 {
		return out, werr.Wrap(werr.MalformedCRS, "commitment degree exceeds CRS powers", nil)
	}
	var acc bn254.G1Jac
	var scalar big.Int
	first := true
	for j, cj := range coeffs {
		if cj.IsZero() {
			continue
		}
		cj.ToBigIntRegular(&scalar)
		var term bn254.G1Jac
		term.FromAffine(&c.G1Pow[j])
		term.ScalarMultiplication(&term, &scalar)
		if first {
			acc = term
			first = false
		} else {
			acc.AddAssign(&term)
		}
	}
	if !first {
		out.FromJacobian(&acc)
	}
	return out, nil
}

// CommitG2 is the G2 analogue of CommitG1.
func (c *CRS) CommitG2(coeffs poly.Polynomial) (bn254.G2Affine, error) {
	var out bn254.G2Affine
	if len(coeffs) > c.NMax+1 {
		return out, werr.Wrap(werr.MalformedCRS, "commitment degree exceeds CRS powers", nil)
	}
	var acc bn254.G2Jac
	var scalar big.Int
	first := true
	for j, cj := range coeffs {
		if cj.IsZero() {
			continue
		}
		cj.ToBigIntRegular(&scalar)
		var term bn254.G2Jac
		term.FromAffine(&c.G2Pow[j])
		term.ScalarMultiplication(&term, &scalar)
		if first {
			acc = term
			first = false
		} else {
			acc.AddAssign(&term)
		}
	}
	if !first {
		out.FromJacobian(&acc)
	}
	return out, nil
}

// Interpolate lifts evaluations on D to monomial coefficients via the
// domain's inverse FFT. len(evals) must equal c.N.
func (c *CRS) Interpolate(evals []fr.Element) poly.Polynomial {
	return c.Dom.Interpolate(evals)
}

// VanishingCoeffs returns the coefficients of Z_D(X) = X^n - 1.
func (c *CRS) VanishingCoeffs() poly.Polynomial {
	return c.Dom.VanishingCoeffs()
}

// RandomScalar draws a uniform element of F from crypto/rand.
func RandomScalar() (fr.Element, error) {
	var e fr.Element
	_, err := e.SetRandom()
	if err != nil {
		return e, err
	}
	return e, nil
}
