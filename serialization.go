package umbral

import (
	"encoding/binary"
	"encoding/hex"
	"errors"

	"github.com/zeebo/blake3"

	"github.com/MissingNO57/rust-umbral/internal/backend"
)

// serializable is the capability shared by every wrapper whose backend
// value has a canonical fixed-width byte encoding.
type serializable interface {
	Bytes() []byte
}

// fromBytes routes a typed backend decoder through the uniform
// deserialization error translation. Every wrapper constructor goes through
// here so the eight types fail identically.
func fromBytes[B any](name string, data []byte, decode func([]byte) (B, error)) (B, error) {
	value, err := decode(data)
	if err == nil {
		return value, nil
	}

	var zero B
	var derr backend.DeserializationError
	if !errors.As(err, &derr) {
		return zero, err
	}

	switch derr {
	case backend.DeserializationTooManyBytes:
		return zero, valueError(CodeTooManyBytes, "The given bytestring is too long")
	case backend.DeserializationNotEnoughBytes:
		return zero, valueError(CodeTooShortBytes, "The given bytestring is too short")
	default:
		return zero, valueError(CodeConstructionFailure, "Failed to deserialize a %s object", name)
	}
}

// contentHash hashes the pair (type name, serialized bytes), so equal
// values of the same type always hash equally and equal encodings of
// different types do not collide. Defined only for types whose byte
// representation is public.
func contentHash(name string, v serializable) uint64 {
	hasher := blake3.New()
	hasher.Write([]byte(name))
	hasher.Write(v.Bytes())

	var digest [8]byte
	copy(digest[:], hasher.Sum(nil))
	return binary.BigEndian.Uint64(digest[:])
}

// publicRepr renders a non-reversible content fingerprint for diagnostics:
// the type name followed by the first 16 hex characters of the encoding.
func publicRepr(name string, v serializable) string {
	return name + ":" + hex.EncodeToString(v.Bytes())[:16]
}

// secretRepr renders an opaque placeholder for secret-bearing types so no
// key material can leak through logging.
func secretRepr(name string) string {
	return name + ":..."
}
