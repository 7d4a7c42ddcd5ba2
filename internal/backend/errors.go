package backend

import (
	"fmt"
)

// DeserializationError reports why a fixed-width encoding could not be
// decoded into a value.
type DeserializationError int

const (
	// DeserializationConstructionFailure means the input had the right
	// length but its content is not a valid instance of the type.
	DeserializationConstructionFailure DeserializationError = iota
	// DeserializationTooManyBytes means the input is longer than the
	// type's fixed serialized size.
	DeserializationTooManyBytes
	// DeserializationNotEnoughBytes means the input is shorter than the
	// type's fixed serialized size.
	DeserializationNotEnoughBytes
)

func (e DeserializationError) Error() string {
	switch e {
	case DeserializationConstructionFailure:
		return "construction failure"
	case DeserializationTooManyBytes:
		return "too many bytes"
	case DeserializationNotEnoughBytes:
		return "not enough bytes"
	default:
		return fmt.Sprintf("unknown deserialization error (%d)", int(e))
	}
}

// SecretKeyFactoryError reports a failed per-label key derivation.
type SecretKeyFactoryError int

// SecretKeyFactoryZeroHash means the label hashed to the zero scalar, which
// cannot serve as a secret key.
const SecretKeyFactoryZeroHash SecretKeyFactoryError = 0

func (e SecretKeyFactoryError) Error() string {
	return "derived secret key is zero"
}

// EncryptionError reports a failed encryption.
type EncryptionError int

// EncryptionPlaintextTooLarge means the plaintext exceeds the symmetric
// cipher's maximum input size.
const EncryptionPlaintextTooLarge EncryptionError = 0

func (e EncryptionError) Error() string {
	return "plaintext is too large to encrypt"
}

// DecryptionError reports a failed symmetric decryption.
type DecryptionError int

const (
	// DecryptionCiphertextTooShort means the ciphertext does not even
	// contain the nonce prefix.
	DecryptionCiphertextTooShort DecryptionError = iota
	// DecryptionAuthenticationFailed means the authentication tag did not
	// verify: the ciphertext was tampered with or the key is wrong.
	DecryptionAuthenticationFailed
)

func (e DecryptionError) Error() string {
	switch e {
	case DecryptionCiphertextTooShort:
		return "ciphertext too short"
	case DecryptionAuthenticationFailed:
		return "authentication failed"
	default:
		return fmt.Sprintf("unknown decryption error (%d)", int(e))
	}
}

// OpenReencryptedError reports why a set of capsule fragments could not be
// combined back into the encapsulated session key.
type OpenReencryptedError int

const (
	// OpenNoCapsuleFrags means the fragment set was empty.
	OpenNoCapsuleFrags OpenReencryptedError = iota
	// OpenMismatchedCapsuleFrags means the fragments do not all derive
	// from the same delegation and capsule.
	OpenMismatchedCapsuleFrags
	// OpenRepeatingCapsuleFrags means the same fragment appears more than
	// once in the set.
	OpenRepeatingCapsuleFrags
	// OpenZeroHash means an internally hashed value reduced to the zero
	// scalar and could not be inverted.
	OpenZeroHash
	// OpenValidationFailed means the capsule failed its internal
	// consistency check against the combined fragments.
	OpenValidationFailed
)

func (e OpenReencryptedError) Error() string {
	switch e {
	case OpenNoCapsuleFrags:
		return "empty capsule fragment sequence"
	case OpenMismatchedCapsuleFrags:
		return "capsule fragments are not pairwise consistent"
	case OpenRepeatingCapsuleFrags:
		return "some of the capsule fragments are repeated"
	case OpenZeroHash:
		return "internally hashed value is zero"
	case OpenValidationFailed:
		return "internal validation failed"
	default:
		return fmt.Sprintf("unknown open error (%d)", int(e))
	}
}

// ReencryptionError is the two-level failure of the re-encrypted decryption
// path: either the fragment set could not be opened, or the final symmetric
// decryption failed. Exactly one stage error is carried; Unwrap exposes it
// for errors.As dispatch.
type ReencryptionError struct {
	Stage string // "open" or "decryption"
	Err   error  // OpenReencryptedError or DecryptionError
}

func (e *ReencryptionError) Error() string {
	return fmt.Sprintf("reencryption %s: %v", e.Stage, e.Err)
}

func (e *ReencryptionError) Unwrap() error {
	return e.Err
}

func onOpen(err OpenReencryptedError) *ReencryptionError {
	return &ReencryptionError{Stage: "open", Err: err}
}

func onDecryption(err DecryptionError) *ReencryptionError {
	return &ReencryptionError{Stage: "decryption", Err: err}
}
