package backend

import (
	"errors"
	"io"
)

// Encrypt encapsulates a fresh session key for pk and encrypts plaintext
// under it. The returned ciphertext carries the DEM nonce prefix.
func Encrypt(rng io.Reader, pk *PublicKey, plaintext []byte) (*Capsule, []byte, error) {
	capsule, key, err := encapsulate(rng, pk)
	if err != nil {
		return nil, nil, err
	}

	ciphertext, err := demEncrypt(rng, key, plaintext)
	if err != nil {
		return nil, nil, err
	}
	return capsule, ciphertext, nil
}

// DecryptOriginal decrypts a ciphertext with the key pair the capsule was
// produced for.
func DecryptOriginal(sk *SecretKey, capsule *Capsule, ciphertext []byte) ([]byte, error) {
	return demDecrypt(capsule.openOriginal(sk), ciphertext)
}

// DecryptReencrypted decrypts a re-encrypted ciphertext on the receiving
// side, combining the capsule fragments before the symmetric decryption.
// Failures are reported as a two-level ReencryptionError distinguishing the
// combination stage from the decryption stage.
func DecryptReencrypted(
	receivingSK *SecretKey,
	delegatingPK *PublicKey,
	capsule *Capsule,
	cfrags []*CapsuleFrag,
	ciphertext []byte,
) ([]byte, error) {
	key, err := capsule.openReencrypted(receivingSK, delegatingPK, cfrags)
	if err != nil {
		var openErr OpenReencryptedError
		if errors.As(err, &openErr) {
			return nil, onOpen(openErr)
		}
		return nil, err
	}

	plaintext, err := demDecrypt(key, ciphertext)
	if err != nil {
		var decErr DecryptionError
		if errors.As(err, &decErr) {
			return nil, onDecryption(decErr)
		}
		return nil, err
	}
	return plaintext, nil
}
