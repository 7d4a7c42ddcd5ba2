package backend

import (
	"crypto/sha256"
	"io"

	"golang.org/x/crypto/chacha20poly1305"
	"golang.org/x/crypto/hkdf"
)

// The DEM is XChaCha20-Poly1305 keyed through HKDF. The nonce is drawn
// fresh per encryption and prepended to the ciphertext.
const (
	demKeySize   = chacha20poly1305.KeySize
	demNonceSize = chacha20poly1305.NonceSizeX

	// demMaxPlaintextSize is the XChaCha20-Poly1305 single-message bound.
	demMaxPlaintextSize = (uint64(1) << 38) - 64
)

var demKDFInfo = []byte("UMBRAL_DEM_KEY")

// deriveDEMKey stretches the shared curve point into a symmetric key.
func deriveDEMKey(shared *Point) []byte {
	key := make([]byte, demKeySize)
	reader := hkdf.New(sha256.New, shared.Bytes(), nil, demKDFInfo)
	if _, err := io.ReadFull(reader, key); err != nil {
		panic("backend: hkdf: " + err.Error())
	}
	return key
}

func demPlaintextTooLarge(size uint64) bool {
	return size > demMaxPlaintextSize
}

func demEncrypt(rng io.Reader, key, plaintext []byte) ([]byte, error) {
	if demPlaintextTooLarge(uint64(len(plaintext))) {
		return nil, EncryptionPlaintextTooLarge
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, demNonceSize, demNonceSize+len(plaintext)+aead.Overhead())
	if _, err := io.ReadFull(rng, nonce); err != nil {
		return nil, err
	}

	return aead.Seal(nonce, nonce, plaintext, nil), nil
}

func demDecrypt(key, ciphertext []byte) ([]byte, error) {
	if len(ciphertext) < demNonceSize {
		return nil, DecryptionCiphertextTooShort
	}

	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}

	nonce, sealed := ciphertext[:demNonceSize], ciphertext[demNonceSize:]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return nil, DecryptionAuthenticationFailed
	}
	return plaintext, nil
}
