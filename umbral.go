package umbral

import (
	"crypto/rand"
	"errors"

	"github.com/MissingNO57/rust-umbral/internal/backend"
)

// Encrypt encapsulates a fresh symmetric key for pk and encrypts plaintext
// under it, returning the capsule and the ciphertext (nonce prefix
// included).
func Encrypt(pk *PublicKey, plaintext []byte) (*Capsule, []byte, error) {
	capsule, ciphertext, err := backend.Encrypt(rand.Reader, pk.backend, plaintext)
	if err != nil {
		var encErr backend.EncryptionError
		if errors.As(err, &encErr) {
			return nil, nil, cryptoError(CodePlaintextTooLarge, "Plaintext is too large to encrypt")
		}
		return nil, nil, err
	}
	return &Capsule{backend: capsule}, ciphertext, nil
}

// DecryptOriginal decrypts a ciphertext with the secret key the capsule
// was produced for.
func DecryptOriginal(sk *SecretKey, capsule *Capsule, ciphertext []byte) ([]byte, error) {
	plaintext, err := backend.DecryptOriginal(sk.backend, capsule.backend, ciphertext)
	if err != nil {
		var decErr backend.DecryptionError
		if errors.As(err, &decErr) {
			return nil, translateDecryptionError(decErr)
		}
		return nil, err
	}
	return plaintext, nil
}

// GenerateKFrags splits the re-encryption key from delegatingSK to
// receivingPK into numKFrags fragments signed under signingSK. Any
// threshold-sized subset of the fragments, transformed via Reencrypt and
// combined, suffices for decryption by the receiving party. The two flags
// control whether each fragment carries a signed binding to the delegating
// and receiving identities, checkable later through KeyFrag.Verify.
func GenerateKFrags(
	delegatingSK *SecretKey,
	receivingPK *PublicKey,
	signingSK *SecretKey,
	threshold int,
	numKFrags int,
	signDelegatingKey bool,
	signReceivingKey bool,
) ([]*KeyFrag, error) {
	if threshold <= 0 || threshold > numKFrags {
		return nil, valueError(CodeInvalidThreshold,
			"The threshold must satisfy 0 < threshold <= num_kfrags, got %d of %d",
			threshold, numKFrags)
	}

	kfrags, err := backend.GenerateKFrags(rand.Reader,
		delegatingSK.backend, receivingPK.backend, signingSK.backend,
		threshold, numKFrags, signDelegatingKey, signReceivingKey)
	if err != nil {
		return nil, err
	}

	wrapped := make([]*KeyFrag, len(kfrags))
	for i, kfrag := range kfrags {
		wrapped[i] = &KeyFrag{backend: kfrag}
	}
	return wrapped, nil
}

// Reencrypt transforms the capsule under one key fragment. The optional
// metadata is bound into the fragment's correctness proof and must be
// presented again to CapsuleFrag.Verify; pass nil for none.
func Reencrypt(capsule *Capsule, kfrag *KeyFrag, metadata []byte) (*CapsuleFrag, error) {
	cfrag, err := backend.Reencrypt(rand.Reader, capsule.backend, kfrag.backend, metadata)
	if err != nil {
		return nil, err
	}
	return &CapsuleFrag{backend: cfrag}, nil
}

// DecryptReencrypted decrypts a re-encrypted ciphertext on the receiving
// side. The fragment set must be non-empty, pairwise consistent, and free
// of repeats; combination and decryption failures surface as the flat
// adapter error set.
func DecryptReencrypted(
	decryptingSK *SecretKey,
	delegatingPK *PublicKey,
	capsule *Capsule,
	cfrags []*CapsuleFrag,
	ciphertext []byte,
) ([]byte, error) {
	backendCFrags := make([]*backend.CapsuleFrag, len(cfrags))
	for i, cfrag := range cfrags {
		backendCFrags[i] = cfrag.backend
	}

	plaintext, err := backend.DecryptReencrypted(decryptingSK.backend,
		delegatingPK.backend, capsule.backend, backendCFrags, ciphertext)
	if err != nil {
		return nil, translateReencryptionError(err)
	}
	return plaintext, nil
}
