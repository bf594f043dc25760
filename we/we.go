// Package we implements the witness-encryption KEM: the encryptor samples a
// random row vector r, projects it through the LV linear shape to build a
// header of group elements and a GT KEM secret; the decryptor recovers the
// same secret from a valid LV proof via bilinearity, and never does so
// otherwise. Grounded on original_source/src/we.rs's encrypt/decrypt/AEAD
// wiring, generalized from its single-pairing key derivation to the full
// r^T*A/column-metadata construction.
package we

import (
	"encoding/binary"
	"io"
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bn254"
	"github.com/consensys/gnark-crypto/ecc/bn254/fp"
	"github.com/consensys/gnark-crypto/ecc/bn254/fr"

	"github.com/okrame/we-snark/aead"
	"github.com/okrame/we-snark/crs"
	"github.com/okrame/we-snark/lv"
	"github.com/okrame/we-snark/werr"

	"github.com/rs/zerolog/log"
)

// HeaderElement is one of the LVNumCoords header points, in whichever group
// its column's metadata designates as the base group.
type HeaderElement struct {
	G1   bn254.G1Affine
	G2   bn254.G2Affine
	IsG1 bool
}

// Header is the ciphertext's first part: one group element per LV column.
type Header [lv.LVNumCoords]HeaderElement

// Encrypt samples fresh randomness from rng, builds the header and the AEAD
// sealing of plaintext under the derived KEM key.
func Encrypt(c *crs.CRS, shape lv.Shape, meta lv.ColumnMeta, plaintext []byte, rng io.Reader) (Header, [aead.NonceSize]byte, []byte, []byte, error) {
	var header Header
	var nonce [aead.NonceSize]byte

	r, err := randomScalars(rng, lv.LVRows)
	if err != nil {
		return header, nonce, nil, nil, err
	}

	alpha := make([]fr.Element, lv.LVNumCoords)
	for j := 0; j < lv.LVNumCoords; j++ {
		var acc fr.Element
		for i := 0; i < lv.LVRows; i++ {
			switch shape.A[i][j] {
			case 1:
				acc.Add(&acc, &r[i])
			case -1:
				acc.Sub(&acc, &r[i])
			}
		}
		alpha[j] = acc
	}

	for j := 0; j < lv.LVNumCoords; j++ {
		var aBig big.Int
		alpha[j].ToBigIntRegular(&aBig)
		col := meta[j]
		if col.ProofInG1 {
			var h bn254.G2Affine
			h.ScalarMultiplication(&col.BaseG2, &aBig)
			header[j] = HeaderElement{G2: h, IsG1: false}
		} else {
			var h bn254.G1Affine
			h.ScalarMultiplication(&col.BaseG1, &aBig)
			header[j] = HeaderElement{G1: h, IsG1: true}
		}
	}

	var kemSecret bn254.GT
	kemSecret.SetOne()
	for i := 0; i < lv.LVRows; i++ {
		var rBig big.Int
		r[i].ToBigIntRegular(&rBig)
		var term bn254.GT
		term.Exp(shape.B[i], &rBig)
		kemSecret.Mul(&kemSecret, &term)
	}

	context := buildContext(c, shape, header)
	key, err := aead.DeriveKey(marshalGT(kemSecret), context)
	if err != nil {
		return header, nonce, nil, nil, err
	}

	if _, err := io.ReadFull(rng, nonce[:]); err != nil {
		return header, nonce, nil, nil, werr.Wrap(werr.AEADFailure, "sampling nonce", err)
	}

	ciphertext, tag, err := aead.Seal(key, nonce, plaintext, context)
	if err != nil {
		return header, nonce, nil, nil, err
	}

	log.Debug().Int("plaintext_len", len(plaintext)).Msg("we encrypt complete")
	return header, nonce, ciphertext, tag, nil
}

// Decrypt verifies the LV proof, recovers the KEM secret from the header
// and proof, and opens the AEAD ciphertext.
func Decrypt(c *crs.CRS, d *lv.Digest, shape lv.Shape, meta lv.ColumnMeta, header Header, proof *lv.Proof, nonce [aead.NonceSize]byte, ciphertext, tag []byte) ([]byte, bool) {
	if !lv.Verify(c, d, proof) {
		return nil, false
	}

	var kemSecret bn254.GT
	kemSecret.SetOne()
	for j := 0; j < lv.LVNumCoords; j++ {
		g1, g2, isG1 := lv.ProofElement(d, proof, j)
		h := header[j]
		var pairG1 bn254.G1Affine
		var pairG2 bn254.G2Affine
		if isG1 {
			pairG1 = g1
			pairG2 = h.G2
		} else {
			pairG1 = h.G1
			pairG2 = g2
		}
		term, err := bn254.Pair([]bn254.G1Affine{pairG1}, []bn254.G2Affine{pairG2})
		if err != nil {
			return nil, false
		}
		kemSecret.Mul(&kemSecret, &term)
	}

	context := buildContext(c, shape, header)
	key, err := aead.DeriveKey(marshalGT(kemSecret), context)
	if err != nil {
		return nil, false
	}

	plaintext, err := aead.Open(key, nonce, ciphertext, tag, context)
	if err != nil {
		return nil, false
	}
	return plaintext, true
}

// buildContext serializes CRS parameters, the full A/b shape and the header
// bytes into the AAD/KDF context that binds the exact LV instance.
func buildContext(c *crs.CRS, shape lv.Shape, header Header) []byte {
	var buf []byte

	var u32 [4]byte
	binary.BigEndian.PutUint32(u32[:], uint32(c.N))
	buf = append(buf, u32[:]...)
	binary.BigEndian.PutUint32(u32[:], uint32(c.NMax))
	buf = append(buf, u32[:]...)

	for i := 0; i < lv.LVRows; i++ {
		for j := 0; j < lv.LVNumCoords; j++ {
			buf = append(buf, byte(shape.A[i][j]))
		}
	}
	for i := 0; i < lv.LVRows; i++ {
		buf = append(buf, marshalGT(shape.B[i])...)
	}
	for j := 0; j < lv.LVNumCoords; j++ {
		h := header[j]
		if h.IsG1 {
			buf = append(buf, h.G1.Marshal()...)
		} else {
			buf = append(buf, h.G2.Marshal()...)
		}
	}
	return buf
}

// marshalGT serializes the 12 base-field coefficients of a GT element in
// fixed C0/C1.B0/B1/B2.A0/A1 order, 32 bytes each big-endian. bn254.GT has no
// exported Marshal of its own, unlike G1Affine/G2Affine.
func marshalGT(e bn254.GT) []byte {
	buf := make([]byte, 0, 12*fp.Bytes)
	coeffs := []fp.Element{
		e.C0.B0.A0, e.C0.B0.A1, e.C0.B1.A0, e.C0.B1.A1, e.C0.B2.A0, e.C0.B2.A1,
		e.C1.B0.A0, e.C1.B0.A1, e.C1.B1.A0, e.C1.B1.A1, e.C1.B2.A0, e.C1.B2.A1,
	}
	for _, fe := range coeffs {
		var bi big.Int
		fe.ToBigIntRegular(&bi)
		word := make([]byte, fp.Bytes)
		bi.FillBytes(word)
		buf = append(buf, word...)
	}
	return buf
}

func randomScalars(rng io.Reader, n int) ([]fr.Element, error) {
	out := make([]fr.Element, n)
	buf := make([]byte, fr.Bytes)
	for i := 0; i < n; i++ {
		if _, err := io.ReadFull(rng, buf); err != nil {
			return nil, werr.Wrap(werr.AEADFailure, "sampling randomness", err)
		}
		out[i].SetBytes(buf)
	}
	return out, nil
}
