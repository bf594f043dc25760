// Package aead seals and opens plaintexts under AES-256-GCM, keyed by
// HKDF-SHA256 expansion of the WE KEM secret, with associated data that
// binds the exact LV instance. Grounded on the AES-256-GCM usage in
// HamzaZF-PPEM's zerocash transaction encryption (aes.NewCipher/
// cipher.NewGCM), the one place in the retrieved pack that reaches for the
// standard library AEAD implementation rather than a third-party package
// (see DESIGN.md).
package aead

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/hkdf"

	"github.com/okrame/we-snark/werr"
)

// NonceSize and TagSize are fixed by AES-256-GCM as used here.
const (
	NonceSize = 12
	TagSize   = 16
	KeySize   = 32
)

// DeriveKey expands the KEM secret bytes and context bytes into a 32-byte
// AES-256 key via HKDF-SHA256.
func DeriveKey(secret, context []byte) ([KeySize]byte, error) {
	var key [KeySize]byte
	h := hkdf.New(sha256.New, secret, nil, context)
	if _, err := io.ReadFull(h, key[:]); err != nil {
		return key, werr.Wrap(werr.AEADFailure, "deriving AEAD key", err)
	}
	return key, nil
}

// Seal encrypts plaintext under key with the given nonce and associated
// data, returning ciphertext and a detached 16-byte tag.
func Seal(key [KeySize]byte, nonce [NonceSize]byte, plaintext, aad []byte) (ciphertext, tag []byte, err error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, nil, werr.Wrap(werr.AEADFailure, "building AES cipher", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, nil, werr.Wrap(werr.AEADFailure, "building GCM mode", err)
	}
	sealed := gcm.Seal(nil, nonce[:], plaintext, aad)
	ct := sealed[:len(sealed)-TagSize]
	t := sealed[len(sealed)-TagSize:]
	return ct, t, nil
}

// Open verifies the tag and decrypts ciphertext under key, nonce and aad. It
// returns werr.AEADFailure (not a panic) when the tag does not verify, so
// decryption failures never leak partial plaintext.
func Open(key [KeySize]byte, nonce [NonceSize]byte, ciphertext, tag, aad []byte) ([]byte, error) {
	block, err := aes.NewCipher(key[:])
	if err != nil {
		return nil, werr.Wrap(werr.AEADFailure, "building AES cipher", err)
	}
	gcm, err := cipher.NewGCMWithNonceSize(block, NonceSize)
	if err != nil {
		return nil, werr.Wrap(werr.AEADFailure, "building GCM mode", err)
	}
	sealed := make([]byte, 0, len(ciphertext)+len(tag))
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)
	plaintext, err := gcm.Open(nil, nonce[:], sealed, aad)
	if err != nil {
		return nil, werr.Wrap(werr.AEADFailure, "AEAD tag verification failed", err)
	}
	return plaintext, nil
}
