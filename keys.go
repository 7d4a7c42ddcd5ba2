package umbral

import (
	"crypto/rand"
	"errors"
	"io"

	"github.com/MissingNO57/rust-umbral/internal/backend"
)

// SecretKey wraps a backend secret key. It is immutable, secret-bearing,
// and exposes neither a hash nor a byte dump in its display form.
type SecretKey struct {
	backend *backend.SecretKey
}

// GenerateSecretKey draws a fresh uniformly random secret key. A nil rng
// falls back to the process cryptographic random source.
func GenerateSecretKey(rng io.Reader) (*SecretKey, error) {
	if rng == nil {
		rng = rand.Reader
	}
	sk, err := backend.GenerateSecretKey(rng)
	if err != nil {
		return nil, err
	}
	return &SecretKey{backend: sk}, nil
}

// SecretKeyFromBytes deserializes a secret key from its canonical
// fixed-width encoding.
func SecretKeyFromBytes(data []byte) (*SecretKey, error) {
	return fromBytes("SecretKey", data, func(b []byte) (*SecretKey, error) {
		sk, err := backend.SecretKeyFromBytes(b)
		if err != nil {
			return nil, err
		}
		return &SecretKey{backend: sk}, nil
	})
}

// Bytes returns the canonical fixed-width encoding.
func (sk *SecretKey) Bytes() []byte {
	return sk.backend.Bytes()
}

func (sk *SecretKey) Equal(other *SecretKey) bool {
	return sk.backend.Equal(other.backend)
}

func (sk *SecretKey) TypeName() string {
	return "SecretKey"
}

func (sk *SecretKey) String() string {
	return secretRepr(sk.TypeName())
}

// SecretKeyFactory derives secret keys deterministically by label.
type SecretKeyFactory struct {
	backend *backend.SecretKeyFactory
}

// GenerateSecretKeyFactory draws a fresh random factory. A nil rng falls
// back to the process cryptographic random source.
func GenerateSecretKeyFactory(rng io.Reader) (*SecretKeyFactory, error) {
	if rng == nil {
		rng = rand.Reader
	}
	factory, err := backend.GenerateSecretKeyFactory(rng)
	if err != nil {
		return nil, err
	}
	return &SecretKeyFactory{backend: factory}, nil
}

// SecretKeyFactoryFromBytes deserializes a factory from its canonical
// fixed-width encoding.
func SecretKeyFactoryFromBytes(data []byte) (*SecretKeyFactory, error) {
	return fromBytes("SecretKeyFactory", data, func(b []byte) (*SecretKeyFactory, error) {
		factory, err := backend.SecretKeyFactoryFromBytes(b)
		if err != nil {
			return nil, err
		}
		return &SecretKeyFactory{backend: factory}, nil
	})
}

// SecretKeyByLabel derives the secret key bound to label. The same factory
// and label always produce the same key.
func (f *SecretKeyFactory) SecretKeyByLabel(label []byte) (*SecretKey, error) {
	sk, err := f.backend.SecretKeyByLabel(label)
	if err != nil {
		var factoryErr backend.SecretKeyFactoryError
		if errors.As(err, &factoryErr) {
			return nil, cryptoError(CodeZeroHash, "Resulting secret key is zero")
		}
		return nil, err
	}
	return &SecretKey{backend: sk}, nil
}

// Bytes returns the canonical fixed-width encoding.
func (f *SecretKeyFactory) Bytes() []byte {
	return f.backend.Bytes()
}

func (f *SecretKeyFactory) Equal(other *SecretKeyFactory) bool {
	return f.backend.Equal(other.backend)
}

func (f *SecretKeyFactory) TypeName() string {
	return "SecretKeyFactory"
}

func (f *SecretKeyFactory) String() string {
	return secretRepr(f.TypeName())
}

// PublicKey wraps a backend public key.
type PublicKey struct {
	backend *backend.PublicKey
}

// PublicKeyFromSecretKey derives the public key matching sk. The
// derivation is deterministic and one-way.
func PublicKeyFromSecretKey(sk *SecretKey) *PublicKey {
	return &PublicKey{backend: sk.backend.PublicKey()}
}

// PublicKeyFromBytes deserializes a public key from its canonical
// fixed-width encoding.
func PublicKeyFromBytes(data []byte) (*PublicKey, error) {
	return fromBytes("PublicKey", data, func(b []byte) (*PublicKey, error) {
		pk, err := backend.PublicKeyFromBytes(b)
		if err != nil {
			return nil, err
		}
		return &PublicKey{backend: pk}, nil
	})
}

// Bytes returns the canonical fixed-width encoding.
func (pk *PublicKey) Bytes() []byte {
	return pk.backend.Bytes()
}

func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.backend.Equal(other.backend)
}

// Hash returns a content hash over (type name, serialized bytes). Equal
// public keys hash equally.
func (pk *PublicKey) Hash() uint64 {
	return contentHash(pk.TypeName(), pk)
}

func (pk *PublicKey) TypeName() string {
	return "PublicKey"
}

func (pk *PublicKey) String() string {
	return publicRepr(pk.TypeName(), pk)
}
