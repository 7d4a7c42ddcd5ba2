package backend

import (
	"bytes"
	"crypto/subtle"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/schnorr"
)

// Fixed serialized sizes of the key material types.
const (
	SecretKeySize        = ScalarSize
	PublicKeySize        = PointSize
	SecretKeyFactorySize = 32
	SignatureSize        = schnorr.SignatureSize
)

// SecretKey is a nonzero secp256k1 scalar.
type SecretKey struct {
	scalar *Scalar
}

// GenerateSecretKey draws a fresh uniformly random secret key from rng.
func GenerateSecretKey(rng io.Reader) (*SecretKey, error) {
	scalar, err := RandomNonZeroScalar(rng)
	if err != nil {
		return nil, err
	}
	return &SecretKey{scalar: scalar}, nil
}

// SecretKeyFromBytes decodes a canonical nonzero scalar.
func SecretKeyFromBytes(data []byte) (*SecretKey, error) {
	if err := checkSize(data, SecretKeySize); err != nil {
		return nil, err
	}

	scalar, err := ScalarFromBytes(data)
	if err != nil || scalar.IsZero() {
		return nil, DeserializationConstructionFailure
	}
	return &SecretKey{scalar: scalar}, nil
}

func (sk *SecretKey) Bytes() []byte {
	return sk.scalar.Bytes()
}

func (sk *SecretKey) Equal(other *SecretKey) bool {
	return sk.scalar.Equal(other.scalar)
}

// PublicKey derives the matching public key. The derivation is one-way and
// deterministic.
func (sk *SecretKey) PublicKey() *PublicKey {
	return &PublicKey{point: BasePoint().Mul(sk.scalar)}
}

// PublicKey is a secp256k1 point in compressed encoding.
type PublicKey struct {
	point *Point
}

// PublicKeyFromBytes decodes a compressed curve point.
func PublicKeyFromBytes(data []byte) (*PublicKey, error) {
	if err := checkSize(data, PublicKeySize); err != nil {
		return nil, err
	}

	point, err := PointFromBytes(data)
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	return &PublicKey{point: point}, nil
}

func (pk *PublicKey) Bytes() []byte {
	return pk.point.Bytes()
}

func (pk *PublicKey) Equal(other *PublicKey) bool {
	return pk.point.Equal(other.point)
}

// SecretKeyFactory derives secret keys deterministically from labels.
type SecretKeyFactory struct {
	seed []byte
}

// GenerateSecretKeyFactory draws a fresh random factory seed from rng.
func GenerateSecretKeyFactory(rng io.Reader) (*SecretKeyFactory, error) {
	seed := make([]byte, SecretKeyFactorySize)
	if _, err := io.ReadFull(rng, seed); err != nil {
		return nil, err
	}
	return &SecretKeyFactory{seed: seed}, nil
}

// SecretKeyFactoryFromBytes decodes a factory seed. Any 32-byte value is a
// valid seed.
func SecretKeyFactoryFromBytes(data []byte) (*SecretKeyFactory, error) {
	if err := checkSize(data, SecretKeyFactorySize); err != nil {
		return nil, err
	}

	seed := make([]byte, SecretKeyFactorySize)
	copy(seed, data)
	return &SecretKeyFactory{seed: seed}, nil
}

func (f *SecretKeyFactory) Bytes() []byte {
	out := make([]byte, SecretKeyFactorySize)
	copy(out, f.seed)
	return out
}

func (f *SecretKeyFactory) Equal(other *SecretKeyFactory) bool {
	return subtle.ConstantTimeCompare(f.seed, other.seed) == 1
}

// SecretKeyByLabel derives the secret key bound to label. The derivation is
// deterministic per (seed, label); a zero derived scalar is rejected.
func (f *SecretKeyFactory) SecretKeyByLabel(label []byte) (*SecretKey, error) {
	scalar := hashToScalar(tagKeyFactory, f.seed, label)
	if scalar.IsZero() {
		return nil, SecretKeyFactoryZeroHash
	}
	return &SecretKey{scalar: scalar}, nil
}

// Signer produces signatures under a fixed secret key. The key is never
// exposed back through the signer.
type Signer struct {
	secretKey *SecretKey
}

func NewSigner(sk *SecretKey) *Signer {
	return &Signer{secretKey: sk}
}

// Sign signs a message digest deterministically (BIP-340 Schnorr).
func (s *Signer) Sign(message []byte) (*Signature, error) {
	privKey, _ := btcec.PrivKeyFromBytes(s.secretKey.Bytes())
	digest := messageDigest(message)

	sig, err := schnorr.Sign(privKey, digest[:])
	if err != nil {
		return nil, err
	}
	return &Signature{inner: sig}, nil
}

// VerifyingKey returns the public key signatures verify under.
func (s *Signer) VerifyingKey() *PublicKey {
	return s.secretKey.PublicKey()
}

func (s *Signer) Equal(other *Signer) bool {
	return s.secretKey.Equal(other.secretKey)
}

// Signature is a fixed 64-byte Schnorr signature.
type Signature struct {
	inner *schnorr.Signature
}

// SignatureFromBytes decodes a 64-byte signature.
func SignatureFromBytes(data []byte) (*Signature, error) {
	if err := checkSize(data, SignatureSize); err != nil {
		return nil, err
	}

	sig, err := schnorr.ParseSignature(data)
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	return &Signature{inner: sig}, nil
}

func (sig *Signature) Bytes() []byte {
	return sig.inner.Serialize()
}

func (sig *Signature) Equal(other *Signature) bool {
	return bytes.Equal(sig.Bytes(), other.Bytes())
}

// Verify reports whether the signature is valid for message under pk. A
// mismatch is an expected outcome, not an error.
func (sig *Signature) Verify(pk *PublicKey, message []byte) bool {
	digest := messageDigest(message)
	return sig.inner.Verify(digest[:], pk.point.inner)
}

// checkSize distinguishes short, long, and exact input lengths against a
// type's fixed serialized size.
func checkSize(data []byte, size int) error {
	switch {
	case len(data) < size:
		return DeserializationNotEnoughBytes
	case len(data) > size:
		return DeserializationTooManyBytes
	default:
		return nil
	}
}
