package lv

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/okrame/we-snark/crs"
	"github.com/okrame/we-snark/gadgets/iip"
	"github.com/okrame/we-snark/gadgets/maxdeg"
	"github.com/okrame/we-snark/gadgets/nonzero"
	"github.com/okrame/we-snark/qap"
)

func feInt(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

func TestProveVerifyRoundTrip(t *testing.T) {
	c, err := crs.Setup(4)
	require.NoError(t, err)

	digest, err := NewDigest(c, feInt(204))
	require.NoError(t, err)

	proof, err := Prove(c, digest, Witness{X: feInt(12), Y: feInt(17), Z: feInt(204)})
	require.NoError(t, err)

	require.True(t, Verify(c, digest, proof))
}

func TestProveRejectsInconsistentWitness(t *testing.T) {
	c, err := crs.Setup(4)
	require.NoError(t, err)
	digest, err := NewDigest(c, feInt(204))
	require.NoError(t, err)

	_, err = Prove(c, digest, Witness{X: feInt(13), Y: feInt(17), Z: feInt(204)})
	require.Error(t, err)
}

func TestVerifyRejectsWrongPublicInstance(t *testing.T) {
	c, err := crs.Setup(4)
	require.NoError(t, err)

	digestWrong, err := NewDigest(c, feInt(999))
	require.NoError(t, err)
	proof, err := Prove(c, digestWrong, Witness{X: feInt(12), Y: feInt(17), Z: feInt(204)})
	require.NoError(t, err)

	require.False(t, Verify(c, digestWrong, proof))
}

func TestNewDigestRejectsWrongDomainSize(t *testing.T) {
	c, err := crs.Setup(8)
	require.NoError(t, err)
	_, err = NewDigest(c, feInt(204))
	require.Error(t, err)
}

// TestVerifyRejectsForgedProofWithoutRealWitness checks that a forger who
// lacks the CRS trapdoor, and so can only build constant (identity) P/H
// commitments, cannot pass Verify with a commitment triple that does not
// actually satisfy x*y=z for the genuinely-verified IIP witness.
func TestVerifyRejectsForgedProofWithoutRealWitness(t *testing.T) {
	c, err := crs.Setup(4)
	require.NoError(t, err)
	digest, err := NewDigest(c, feInt(204))
	require.NoError(t, err)

	x, y, z := feInt(13), feInt(17), feInt(204) // x*y != z
	vec := []fr.Element{x, y, z, feOne()}

	iipZ, err := iip.Prove(c, selZ, vec)
	require.NoError(t, err)
	iipX, err := iip.Prove(c, selX, vec)
	require.NoError(t, err)
	iipY, err := iip.Prove(c, selY, vec)
	require.NoError(t, err)
	nz, err := nonzero.Prove(c, vec, oneIdx)
	require.NoError(t, err)
	mdProof, err := maxdeg.Prove(c, digest.MaxDeg, vec)
	require.NoError(t, err)

	_, _, g1, g2 := bn254.Generators()
	var xBig, yBig, zBig big.Int
	x.ToBigIntRegular(&xBig)
	y.ToBigIntRegular(&yBig)
	z.ToBigIntRegular(&zBig)
	var aTau1, bTau1, cTau1 bn254.G1Affine
	aTau1.ScalarMultiplication(&g1, &xBig)
	bTau1.ScalarMultiplication(&g1, &yBig)
	cTau1.ScalarMultiplication(&g1, &zBig)
	var bTau2 bn254.G2Affine
	bTau2.ScalarMultiplication(&g2, &yBig)

	forged := &Proof{
		IIPZ: iipZ, IIPX: iipX, IIPY: iipY, NZ: nz, MaxDeg: mdProof,
		Mul: &qap.Commit{
			ATau1: aTau1, BTau1: bTau1, BTau2: bTau2, CTau1: cTau1,
			// PTau1, HTau1 left as the identity: the only commitment a
			// forger can build without knowing the CRS trapdoor tau.
		},
	}
	require.False(t, Verify(c, digest, forged))
}

func TestPublicParamsShapeDimensions(t *testing.T) {
	c, err := crs.Setup(4)
	require.NoError(t, err)
	digest, err := NewDigest(c, feInt(204))
	require.NoError(t, err)

	shape, meta, err := PublicParams(c, digest)
	require.NoError(t, err)
	require.Len(t, shape.A, LVRows)
	require.Len(t, meta, LVNumCoords)
}
