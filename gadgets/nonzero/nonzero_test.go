package nonzero

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

	w := []fr.Element{feInt(12), feInt(17), feInt(204), feInt(1)}
	digest := NewDigest(c, 3)

	proof, err := Prove(c, w, 3)
	require.NoError(t, err)
	require.True(t, Verify(digest, proof))
}

func TestProveRejectsNonOneSlot(t *testing.T) {
	c, err := crs.Setup(4)
	require.NoError(t, err)

	w := []fr.Element{feInt(12), feInt(17), feInt(204), feInt(2)}
	_, err = Prove(c, w, 3)
	require.Error(t, err)
}

func TestVerifyRejectsTamperedProof(t *testing.T) {
	c, err := crs.Setup(4)
	require.NoError(t, err)

	w := []fr.Element{feInt(12), feInt(17), feInt(204), feInt(1)}
	digest := NewDigest(c, 3)
	proof, err := Prove(c, w, 3)
	require.NoError(t, err)

	var wrongBig big.Int
	feInt(7).ToBigIntRegular(&wrongBig)
	tampered := *proof
	tampered.Q0Tau1.ScalarMultiplication(&tampered.Q0Tau1, &wrongBig)
	require.False(t, Verify(digest, &tampered))
}
