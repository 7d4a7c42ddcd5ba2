package umbral

import (
	"github.com/MissingNO57/rust-umbral/internal/backend"
)

// KeyFrag is one share of a threshold splitting of a re-encryption key.
type KeyFrag struct {
	backend *backend.KeyFrag
}

// KeyFragFromBytes deserializes a key fragment from its canonical
// fixed-width encoding.
func KeyFragFromBytes(data []byte) (*KeyFrag, error) {
	return fromBytes("KeyFrag", data, func(b []byte) (*KeyFrag, error) {
		kfrag, err := backend.KeyFragFromBytes(b)
		if err != nil {
			return nil, err
		}
		return &KeyFrag{backend: kfrag}, nil
	})
}

// Verify checks the fragment's authenticity under the signing key. The
// optional delegating and receiving keys independently confirm the
// fragment is bound to those identities; pass nil to skip a check. A
// failed check yields false, never an error.
func (kf *KeyFrag) Verify(signingPK, delegatingPK, receivingPK *PublicKey) bool {
	var delegating, receiving *backend.PublicKey
	if delegatingPK != nil {
		delegating = delegatingPK.backend
	}
	if receivingPK != nil {
		receiving = receivingPK.backend
	}
	return kf.backend.Verify(signingPK.backend, delegating, receiving)
}

// Bytes returns the canonical fixed-width encoding.
func (kf *KeyFrag) Bytes() []byte {
	return kf.backend.Bytes()
}

func (kf *KeyFrag) Equal(other *KeyFrag) bool {
	return kf.backend.Equal(other.backend)
}

// Hash returns a content hash over (type name, serialized bytes).
func (kf *KeyFrag) Hash() uint64 {
	return contentHash(kf.TypeName(), kf)
}

func (kf *KeyFrag) TypeName() string {
	return "KeyFrag"
}

func (kf *KeyFrag) String() string {
	return publicRepr(kf.TypeName(), kf)
}
