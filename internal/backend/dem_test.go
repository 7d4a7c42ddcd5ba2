package backend

import (
	"bytes"
	"crypto/rand"
	"errors"
	"testing"
)

func demTestKey(t *testing.T) []byte {
	t.Helper()
	key := make([]byte, demKeySize)
	if _, err := rand.Read(key); err != nil {
		t.Fatalf("failed to generate key: %v", err)
	}
	return key
}

func TestDEMRoundTrip(t *testing.T) {
	key := demTestKey(t)
	plaintext := []byte("peace at dawn")

	ciphertext, err := demEncrypt(rand.Reader, key, plaintext)
	if err != nil {
		t.Fatalf("encryption failed: %v", err)
	}
	if len(ciphertext) != demNonceSize+len(plaintext)+16 {
		t.Errorf("ciphertext is %d bytes, want nonce+plaintext+tag = %d",
			len(ciphertext), demNonceSize+len(plaintext)+16)
	}

	recovered, err := demDecrypt(key, ciphertext)
	if err != nil {
		t.Fatalf("decryption failed: %v", err)
	}
	if !bytes.Equal(recovered, plaintext) {
		t.Error("decrypted plaintext differs from original")
	}
}

func TestDEMNoncePrefixIsFresh(t *testing.T) {
	key := demTestKey(t)
	plaintext := []byte("same message")

	first, err := demEncrypt(rand.Reader, key, plaintext)
	if err != nil {
		t.Fatalf("encryption failed: %v", err)
	}
	second, err := demEncrypt(rand.Reader, key, plaintext)
	if err != nil {
		t.Fatalf("encryption failed: %v", err)
	}

	if bytes.Equal(first[:demNonceSize], second[:demNonceSize]) {
		t.Error("two encryptions reused the same nonce prefix")
	}
}

func TestDEMCiphertextTooShort(t *testing.T) {
	key := demTestKey(t)

	_, err := demDecrypt(key, make([]byte, demNonceSize-1))
	var decErr DecryptionError
	if !errors.As(err, &decErr) || decErr != DecryptionCiphertextTooShort {
		t.Errorf("got %v, want DecryptionCiphertextTooShort", err)
	}
}

func TestDEMTamperDetection(t *testing.T) {
	key := demTestKey(t)

	ciphertext, err := demEncrypt(rand.Reader, key, []byte("integrity matters"))
	if err != nil {
		t.Fatalf("encryption failed: %v", err)
	}
	ciphertext[len(ciphertext)-1] ^= 0x01

	_, err = demDecrypt(key, ciphertext)
	var decErr DecryptionError
	if !errors.As(err, &decErr) || decErr != DecryptionAuthenticationFailed {
		t.Errorf("got %v, want DecryptionAuthenticationFailed", err)
	}
}

func TestDEMPlaintextBound(t *testing.T) {
	if demPlaintextTooLarge(demMaxPlaintextSize) {
		t.Error("plaintext at the bound must be accepted")
	}
	if !demPlaintextTooLarge(demMaxPlaintextSize + 1) {
		t.Error("plaintext above the bound must be rejected")
	}
}
