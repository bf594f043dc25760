package we

import (
	"math/big"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bn254/fr"
	"github.com/stretchr/testify/require"

	"github.com/okrame/we-snark/crs"
	"github.com/okrame/we-snark/lv"
)

func feInt(v int64) fr.Element {
	var e fr.Element
	e.SetInt64(v)
	return e
}

// deterministicReader is a counter-seeded byte stream used in place of
// crypto/rand so test vectors are reproducible.
type deterministicReader struct {
	seed byte
}

func (r *deterministicReader) Read(p []byte) (int, error) {
	for i := range p {
		r.seed++
		p[i] = r.seed
	}
	return len(p), nil
}

func setupInstance(t *testing.T) (*crs.CRS, *lv.Digest, lv.Shape, lv.ColumnMeta) {
	t.Helper()
	c, err := crs.Setup(4)
	require.NoError(t, err)
	digest, err := lv.NewDigest(c, feInt(204))
	require.NoError(t, err)
	shape, meta, err := lv.PublicParams(c, digest)
	require.NoError(t, err)
	return c, digest, shape, meta
}

func TestEncryptDecryptRoundTrip(t *testing.T) {
	c, digest, shape, meta := setupInstance(t)

	plaintext := []byte("hello, LV world")
	header, nonce, ciphertext, tag, err := Encrypt(c, shape, meta, plaintext, &deterministicReader{})
	require.NoError(t, err)

	proof, err := lv.Prove(c, digest, lv.Witness{X: feInt(12), Y: feInt(17), Z: feInt(204)})
	require.NoError(t, err)

	recovered, ok := Decrypt(c, digest, shape, meta, header, proof, nonce, ciphertext, tag)
	require.True(t, ok)
	require.Equal(t, plaintext, recovered)
}

func TestEncryptDecryptEmptyPlaintext(t *testing.T) {
	c, digest, shape, meta := setupInstance(t)

	header, nonce, ciphertext, tag, err := Encrypt(c, shape, meta, nil, &deterministicReader{seed: 7})
	require.NoError(t, err)

	proof, err := lv.Prove(c, digest, lv.Witness{X: feInt(12), Y: feInt(17), Z: feInt(204)})
	require.NoError(t, err)

	recovered, ok := Decrypt(c, digest, shape, meta, header, proof, nonce, ciphertext, tag)
	require.True(t, ok)
	require.Empty(t, recovered)
}

func TestDecryptFailsWithWrongWitness(t *testing.T) {
	c, _, shape, meta := setupInstance(t)

	plaintext := []byte("hello, LV world")
	header, nonce, ciphertext, tag, err := Encrypt(c, shape, meta, plaintext, &deterministicReader{seed: 3})
	require.NoError(t, err)

	otherDigest, err := lv.NewDigest(c, feInt(999))
	require.NoError(t, err)
	proof, err := lv.Prove(c, otherDigest, lv.Witness{X: feInt(1), Y: feInt(999), Z: feInt(999)})
	require.NoError(t, err)

	_, ok := Decrypt(c, otherDigest, shape, meta, header, proof, nonce, ciphertext, tag)
	require.False(t, ok)
}

func TestDecryptFailsWhenHeaderTampered(t *testing.T) {
	c, digest, shape, meta := setupInstance(t)

	plaintext := []byte("hello, LV world")
	header, nonce, ciphertext, tag, err := Encrypt(c, shape, meta, plaintext, &deterministicReader{seed: 9})
	require.NoError(t, err)

	proof, err := lv.Prove(c, digest, lv.Witness{X: feInt(12), Y: feInt(17), Z: feInt(204)})
	require.NoError(t, err)

	two := big.NewInt(2)
	tamperedHeader := header
	if tamperedHeader[1].IsG1 {
		tamperedHeader[1].G1.ScalarMultiplication(&tamperedHeader[1].G1, two)
	} else {
		tamperedHeader[1].G2.ScalarMultiplication(&tamperedHeader[1].G2, two)
	}

	_, ok := Decrypt(c, digest, shape, meta, tamperedHeader, proof, nonce, ciphertext, tag)
	require.False(t, ok)
}
