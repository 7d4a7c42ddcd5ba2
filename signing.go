package umbral

import (
	"github.com/MissingNO57/rust-umbral/internal/backend"
)

// Signer produces signatures under a fixed secret key. The key is
// secret-bearing and never re-exposed through the signer; Signer itself
// has no byte encoding.
type Signer struct {
	backend *backend.Signer
}

func NewSigner(sk *SecretKey) *Signer {
	return &Signer{backend: backend.NewSigner(sk.backend)}
}

// Sign signs message deterministically.
func (s *Signer) Sign(message []byte) (*Signature, error) {
	sig, err := s.backend.Sign(message)
	if err != nil {
		return nil, err
	}
	return &Signature{backend: sig}, nil
}

// VerifyingKey returns the public key the signer's signatures verify
// under.
func (s *Signer) VerifyingKey() *PublicKey {
	return &PublicKey{backend: s.backend.VerifyingKey()}
}

func (s *Signer) Equal(other *Signer) bool {
	return s.backend.Equal(other.backend)
}

func (s *Signer) TypeName() string {
	return "Signer"
}

func (s *Signer) String() string {
	return secretRepr(s.TypeName())
}

// Signature wraps a backend signature.
type Signature struct {
	backend *backend.Signature
}

// SignatureFromBytes deserializes a signature from its canonical
// fixed-width encoding.
func SignatureFromBytes(data []byte) (*Signature, error) {
	return fromBytes("Signature", data, func(b []byte) (*Signature, error) {
		sig, err := backend.SignatureFromBytes(b)
		if err != nil {
			return nil, err
		}
		return &Signature{backend: sig}, nil
	})
}

// Verify reports whether the signature is valid for message under
// verifyingKey. A mismatch yields false, never an error.
func (sig *Signature) Verify(verifyingKey *PublicKey, message []byte) bool {
	return sig.backend.Verify(verifyingKey.backend, message)
}

// Bytes returns the canonical fixed-width encoding.
func (sig *Signature) Bytes() []byte {
	return sig.backend.Bytes()
}

func (sig *Signature) Equal(other *Signature) bool {
	return sig.backend.Equal(other.backend)
}

// Hash returns a content hash over (type name, serialized bytes).
func (sig *Signature) Hash() uint64 {
	return contentHash(sig.TypeName(), sig)
}

func (sig *Signature) TypeName() string {
	return "Signature"
}

func (sig *Signature) String() string {
	return publicRepr(sig.TypeName(), sig)
}
