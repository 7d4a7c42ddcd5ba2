package umbral

import (
	"github.com/MissingNO57/rust-umbral/internal/backend"
)

// Capsule is the public encapsulation of the symmetric key produced at
// encryption time.
type Capsule struct {
	backend *backend.Capsule
}

// CapsuleFromBytes deserializes a capsule from its canonical fixed-width
// encoding.
func CapsuleFromBytes(data []byte) (*Capsule, error) {
	return fromBytes("Capsule", data, func(b []byte) (*Capsule, error) {
		capsule, err := backend.CapsuleFromBytes(b)
		if err != nil {
			return nil, err
		}
		return &Capsule{backend: capsule}, nil
	})
}

// Bytes returns the canonical fixed-width encoding.
func (c *Capsule) Bytes() []byte {
	return c.backend.Bytes()
}

func (c *Capsule) Equal(other *Capsule) bool {
	return c.backend.Equal(other.backend)
}

// Hash returns a content hash over (type name, serialized bytes).
func (c *Capsule) Hash() uint64 {
	return contentHash(c.TypeName(), c)
}

func (c *Capsule) TypeName() string {
	return "Capsule"
}

func (c *Capsule) String() string {
	return publicRepr(c.TypeName(), c)
}
