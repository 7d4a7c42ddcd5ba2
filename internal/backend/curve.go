package backend

import (
	"encoding/hex"
	"errors"
	"io"

	"github.com/btcsuite/btcd/btcec/v2"
)

// Serialized sizes of the curve primitives. All backend encodings are built
// from these two fixed widths.
const (
	ScalarSize = 32
	PointSize  = 33 // compressed SEC1
)

var (
	ErrInvalidScalarLength = errors.New("invalid scalar length")
	ErrInvalidPointLength  = errors.New("invalid point length")
	ErrInvalidScalar       = errors.New("invalid scalar value")
	ErrInvalidPoint        = errors.New("invalid point")
	ErrScalarZero          = errors.New("scalar is zero")
)

// Scalar is an element of the secp256k1 scalar field.
type Scalar struct {
	inner btcec.ModNScalar
}

// ScalarFromBytes decodes a canonical 32-byte big-endian scalar. Values at
// or above the group order are rejected.
func ScalarFromBytes(data []byte) (*Scalar, error) {
	if len(data) != ScalarSize {
		return nil, ErrInvalidScalarLength
	}

	s := new(Scalar)
	if overflow := s.inner.SetBytes((*[32]byte)(data)); overflow != 0 {
		return nil, ErrInvalidScalar
	}
	return s, nil
}

// scalarFromUniformBytes reduces at least 32 bytes of hash output modulo the
// group order. The reduction bias is negligible for the 256-bit order.
func scalarFromUniformBytes(data []byte) *Scalar {
	s := new(Scalar)
	s.inner.SetBytes((*[32]byte)(data[:32]))
	return s
}

// RandomNonZeroScalar draws a uniformly random nonzero scalar from rng,
// rejection-sampling out-of-range and zero candidates.
func RandomNonZeroScalar(rng io.Reader) (*Scalar, error) {
	var buf [32]byte
	for {
		if _, err := io.ReadFull(rng, buf[:]); err != nil {
			return nil, err
		}

		s := new(Scalar)
		if overflow := s.inner.SetBytes(&buf); overflow == 0 && !s.inner.IsZero() {
			return s, nil
		}
	}
}

func (s *Scalar) Bytes() []byte {
	var buf [32]byte
	s.inner.PutBytes(&buf)
	return buf[:]
}

func (s *Scalar) String() string {
	return hex.EncodeToString(s.Bytes())
}

func (s *Scalar) Add(other *Scalar) *Scalar {
	result := new(Scalar)
	result.inner.Add(&s.inner).Add(&other.inner)
	return result
}

func (s *Scalar) Sub(other *Scalar) *Scalar {
	neg := new(btcec.ModNScalar)
	neg.Set(&other.inner).Negate()
	result := new(Scalar)
	result.inner.Add(&s.inner).Add(neg)
	return result
}

func (s *Scalar) Mul(other *Scalar) *Scalar {
	result := new(Scalar)
	result.inner.Set(&s.inner).Mul(&other.inner)
	return result
}

func (s *Scalar) Negate() *Scalar {
	result := new(Scalar)
	result.inner.Set(&s.inner).Negate()
	return result
}

func (s *Scalar) Invert() (*Scalar, error) {
	if s.IsZero() {
		return nil, ErrScalarZero
	}

	result := new(Scalar)
	result.inner.Set(&s.inner).InverseNonConst()
	return result, nil
}

func (s *Scalar) Equal(other *Scalar) bool {
	return s.inner.Equals(&other.inner)
}

func (s *Scalar) IsZero() bool {
	return s.inner.IsZero()
}

// Zeroize clears the scalar value in place.
func (s *Scalar) Zeroize() {
	s.inner.Zero()
}

// Point is a point on the secp256k1 curve, excluding the identity.
type Point struct {
	inner *btcec.PublicKey
}

// PointFromBytes decodes a 33-byte compressed point.
func PointFromBytes(data []byte) (*Point, error) {
	if len(data) != PointSize {
		return nil, ErrInvalidPointLength
	}

	pub, err := btcec.ParsePubKey(data)
	if err != nil {
		return nil, ErrInvalidPoint
	}
	return &Point{inner: pub}, nil
}

// BasePoint returns the secp256k1 generator.
func BasePoint() *Point {
	return &Point{inner: btcec.Generator()}
}

func (p *Point) Bytes() []byte {
	return p.inner.SerializeCompressed()
}

func (p *Point) String() string {
	return hex.EncodeToString(p.Bytes())
}

func (p *Point) Add(other *Point) *Point {
	var a, b btcec.JacobianPoint
	p.inner.AsJacobian(&a)
	other.inner.AsJacobian(&b)

	var result btcec.JacobianPoint
	btcec.AddNonConst(&a, &b, &result)

	result.ToAffine()
	return &Point{inner: btcec.NewPublicKey(&result.X, &result.Y)}
}

func (p *Point) Mul(scalar *Scalar) *Point {
	var jac btcec.JacobianPoint
	p.inner.AsJacobian(&jac)

	var result btcec.JacobianPoint
	btcec.ScalarMultNonConst(&scalar.inner, &jac, &result)

	result.ToAffine()
	return &Point{inner: btcec.NewPublicKey(&result.X, &result.Y)}
}

func (p *Point) Equal(other *Point) bool {
	return p.inner.IsEqual(other.inner)
}
