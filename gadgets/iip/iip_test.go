package iip

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/okrame/we-snark/crs"
)

func feInt(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

func TestProveVerifyRoundTrip(t *testing.T) {
	c, err := crs.Setup(4)
	require.NoError(t, err)

	s := []fr.Element{feInt(0), feInt(0), feInt(1), feInt(0)}
	w := []fr.Element{feInt(12), feInt(17), feInt(204), feInt(1)}

	digest, err := NewDigest(c, s)
	require.NoError(t, err)

	proof, err := Prove(c, s, w)
	require.NoError(t, err)
	require.True(t, proof.V.Equal(&w[2]))

	require.True(t, Verify(digest, proof))
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	c, err := crs.Setup(4)
	require.NoError(t, err)

	s := []fr.Element{feInt(0), feInt(0), feInt(1), feInt(0)}
	w := []fr.Element{feInt(12), feInt(17), feInt(204), feInt(1)}

	digest, err := NewDigest(c, s)
	require.NoError(t, err)
	proof, err := Prove(c, s, w)
	require.NoError(t, err)

	tampered := *proof
	var wrongBig big.Int
	feInt(999).ToBigIntRegular(&wrongBig)
	tampered.VG1.ScalarMultiplication(&tampered.VG1, &wrongBig)
	require.False(t, Verify(digest, &tampered))
}

func TestVerifyRejectsMismatchedDigest(t *testing.T) {
	c, err := crs.Setup(4)
	require.NoError(t, err)

	sZ := []fr.Element{feInt(0), feInt(0), feInt(1), feInt(0)}
	sX := []fr.Element{feInt(1), feInt(0), feInt(0), feInt(0)}
	w := []fr.Element{feInt(12), feInt(17), feInt(204), feInt(1)}

	digestZ, err := NewDigest(c, sZ)
	require.NoError(t, err)
	proofX, err := Prove(c, sX, w)
	require.NoError(t, err)

	require.False(t, Verify(digestZ, proofX))
}

func TestNewDigestRejectsWrongShape(t *testing.T) {
	c, err := crs.Setup(4)
	require.NoError(t, err)
	s := []fr.Element{feInt(1), feInt(0), feInt(0)}
	_, err = NewDigest(c, s)
	require.Error(t, err)
}
