package poly

import (
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"
)

func feInt(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

func TestMulDivRemRoundTrip(t *testing.T) {
	a := Polynomial{feInt(1), feInt(2), feInt(3)}  // 1 + 2X + 3X^2
	b := Polynomial{feInt(5), feInt(-7)}           // 5 - 7X
	product := Mul(a, b)

	q, r := DivRem(product, b)
	require.True(t, r.IsZero())
	require.Equal(t, a.Trim(), q.Trim())
}

func TestDivRemWithRemainder(t *testing.T) {
	p := Polynomial{feInt(7), feInt(0), feInt(1)} // X^2 + 7
	d := Polynomial{feInt(-2), feInt(1)}          // X - 2
	q, r := DivRem(p, d)

	reconstructed := Add(Mul(q, d), r)
	require.Equal(t, p.Trim(), reconstructed.Trim())
	require.Less(t, r.degree(), d.degree())
}

func TestDivLinearMatchesEvaluate(t *testing.T) {
	p := Polynomial{feInt(4), feInt(3), feInt(2), feInt(1)}
	d := feInt(5)

	q, remainder := DivLinear(p, d)
	require.Equal(t, Evaluate(p, d), remainder)

	reconstructed := Add(Mul(q, Polynomial{negate(d), feInt(1)}), Polynomial{remainder})
	require.Equal(t, p.Trim(), reconstructed.Trim())
}

func TestVanishingCoeffsRootsOnDomain(t *testing.T) {
	const n = 4
	dom := NewDomain(n)
	z := VanishingCoeffs(n)
	for i := 0; i < n; i++ {
		pt := dom.Element(i)
		require.True(t, Evaluate(z, pt).IsZero())
	}
}

func TestDomainInterpolateRoundTrip(t *testing.T) {
	const n = 4
	dom := NewDomain(n)
	evals := []fr.Element{feInt(10), feInt(20), feInt(30), feInt(40)}

	p := dom.Interpolate(evals)
	for i, want := range evals {
		got := Evaluate(p, dom.Element(i))
		require.True(t, got.Equal(&want), "point %d: got %v want %v", i, got, want)
	}
}

func TestAddConstantAndScale(t *testing.T) {
	p := Polynomial{feInt(1), feInt(2)}
	withConst := AddConstant(p, feInt(10))
	require.Equal(t, feInt(11), withConst.Coeff(0))
	require.Equal(t, feInt(2), withConst.Coeff(1))

	scaled := Scale(p, feInt(3))
	require.Equal(t, feInt(3), scaled.Coeff(0))
	require.Equal(t, feInt(6), scaled.Coeff(1))
}

func negate(e fr.Element) fr.Element {
	var out fr.Element
	out.Neg(&e)
	return out
}
