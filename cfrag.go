package umbral

import (
	"github.com/MissingNO57/rust-umbral/internal/backend"
)

// CapsuleFrag is the result of transforming a capsule under one key
// fragment; enough of them combine back into the encapsulated key.
type CapsuleFrag struct {
	backend *backend.CapsuleFrag
}

// CapsuleFragFromBytes deserializes a capsule fragment from its canonical
// fixed-width encoding.
func CapsuleFragFromBytes(data []byte) (*CapsuleFrag, error) {
	return fromBytes("CapsuleFrag", data, func(b []byte) (*CapsuleFrag, error) {
		cfrag, err := backend.CapsuleFragFromBytes(b)
		if err != nil {
			return nil, err
		}
		return &CapsuleFrag{backend: cfrag}, nil
	})
}

// Verify checks the fragment's correctness proof against the capsule, the
// three identities of the delegation, and the metadata bound at
// re-encryption time (nil if none was). A failed check yields false, never
// an error.
func (cf *CapsuleFrag) Verify(
	capsule *Capsule,
	delegatingPK, receivingPK, signingPK *PublicKey,
	metadata []byte,
) bool {
	return cf.backend.Verify(capsule.backend,
		delegatingPK.backend, receivingPK.backend, signingPK.backend, metadata)
}

// Bytes returns the canonical fixed-width encoding.
func (cf *CapsuleFrag) Bytes() []byte {
	return cf.backend.Bytes()
}

func (cf *CapsuleFrag) Equal(other *CapsuleFrag) bool {
	return cf.backend.Equal(other.backend)
}

// Hash returns a content hash over (type name, serialized bytes).
func (cf *CapsuleFrag) Hash() uint64 {
	return contentHash(cf.TypeName(), cf)
}

func (cf *CapsuleFrag) TypeName() string {
	return "CapsuleFrag"
}

func (cf *CapsuleFrag) String() string {
	return publicRepr(cf.TypeName(), cf)
}
