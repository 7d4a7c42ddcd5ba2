// Package umbral adapts the threshold proxy re-encryption backend to a
// dynamic host surface: eight opaque value types with uniform
// serialization, identity, and comparison behavior, five top-level
// operations, and a flat error set translated from the backend's layered
// failure taxonomy.
package umbral

import (
	"errors"
	"fmt"

	"github.com/MissingNO57/rust-umbral/internal/backend"
)

// ErrorKind is the host-visible classification of a failure.
type ErrorKind int

const (
	// KindValueError marks malformed input, independent of cryptographic
	// semantics: wrong byte lengths, empty or inconsistent fragment sets.
	KindValueError ErrorKind = iota
	// KindCryptographicError marks a semantically failed cryptographic
	// operation: authentication failure, internal validation failure.
	KindCryptographicError
	// KindTypeError marks an operation that is undefined for the type,
	// such as an ordering comparison.
	KindTypeError
)

func (k ErrorKind) String() string {
	switch k {
	case KindValueError:
		return "value"
	case KindCryptographicError:
		return "cryptographic"
	case KindTypeError:
		return "type"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// ErrorCode identifies the leaf failure case. Every distinct backend
// failure keeps its own code; cases are never merged.
type ErrorCode int

const (
	CodeConstructionFailure ErrorCode = iota
	CodeTooManyBytes
	CodeTooShortBytes
	CodeInvalidThreshold
	CodeZeroHash
	CodePlaintextTooLarge
	CodeCiphertextTooShort
	CodeAuthenticationFailed
	CodeNoCapsuleFrags
	CodeMismatchedCapsuleFrags
	CodeRepeatingCapsuleFrags
	CodeValidationFailed
	CodeNotOrdered
)

// Error is the single error type crossing the adapter boundary.
type Error struct {
	Kind    ErrorKind
	Code    ErrorCode
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func valueError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Kind: KindValueError, Code: code, Message: fmt.Sprintf(format, args...)}
}

func cryptoError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Kind: KindCryptographicError, Code: code, Message: fmt.Sprintf(format, args...)}
}

func typeError(code ErrorCode, format string, args ...interface{}) *Error {
	return &Error{Kind: KindTypeError, Code: code, Message: fmt.Sprintf(format, args...)}
}

// IsValueError reports whether err is an adapter error of the value kind.
func IsValueError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindValueError
}

// IsCryptographicError reports whether err is an adapter error of the
// cryptographic kind.
func IsCryptographicError(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == KindCryptographicError
}

// translateDecryptionError maps the backend's symmetric decryption failures.
func translateDecryptionError(err backend.DecryptionError) *Error {
	switch err {
	case backend.DecryptionCiphertextTooShort:
		return valueError(CodeCiphertextTooShort, "The ciphertext must include the nonce")
	default:
		return cryptoError(CodeAuthenticationFailed,
			"Decryption of ciphertext failed: "+
				"either someone tampered with the ciphertext or "+
				"you are using an incorrect decryption key.")
	}
}

// translateOpenError maps the failures of combining capsule fragments.
func translateOpenError(err backend.OpenReencryptedError) *Error {
	switch err {
	case backend.OpenNoCapsuleFrags:
		return valueError(CodeNoCapsuleFrags, "Empty CapsuleFrag sequence")
	case backend.OpenMismatchedCapsuleFrags:
		return valueError(CodeMismatchedCapsuleFrags, "CapsuleFrags are not pairwise consistent")
	case backend.OpenRepeatingCapsuleFrags:
		return valueError(CodeRepeatingCapsuleFrags, "Some of the CapsuleFrags are repeated")
	case backend.OpenZeroHash:
		return cryptoError(CodeZeroHash, "An internally hashed value is zero")
	default:
		return cryptoError(CodeValidationFailed, "Internal validation failed")
	}
}

// translateReencryptionError flattens the backend's two-level re-encrypted
// decryption failure into the flat host error set, case by case.
func translateReencryptionError(err error) error {
	var reencErr *backend.ReencryptionError
	if !errors.As(err, &reencErr) {
		return err
	}

	var openErr backend.OpenReencryptedError
	if errors.As(reencErr.Err, &openErr) {
		return translateOpenError(openErr)
	}
	var decErr backend.DecryptionError
	if errors.As(reencErr.Err, &decErr) {
		return translateDecryptionError(decErr)
	}
	return err
}
