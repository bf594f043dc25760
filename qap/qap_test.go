package qap

import (
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

func TestCommitMulRoundTrip(t *testing.T) {
	c, err := crs.Setup(4)
	require.NoError(t, err)

	w := []fr.Element{feInt(12), feInt(17), feInt(204), feInt(1)}
	q, err := ForMul(w)
	require.NoError(t, err)

	commit, err := CommitMul(c, q)
	require.NoError(t, err)
	require.NotNil(t, commit)
}

func TestComputeHRejectsInconsistentWitness(t *testing.T) {
	w := []fr.Element{feInt(12), feInt(17), feInt(999), feInt(1)}
	q, err := ForMul(w)
	require.NoError(t, err)

	_, err = q.ComputeH()
	require.Error(t, err)
}

func TestForMulRejectsWrongShape(t *testing.T) {
	_, err := ForMul([]fr.Element{feInt(1), feInt(2)})
	require.Error(t, err)
}
