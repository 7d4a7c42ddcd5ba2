package backend

import (
	"bytes"
	"io"

	"golang.org/x/crypto/blake2b"
)

// CapsuleSize is the fixed serialized size of a capsule.
const CapsuleSize = 2*PointSize + ScalarSize

// Capsule is the public encapsulation of a symmetric session key: the two
// ephemeral points and the binding scalar s = u + r*H(E, V).
type Capsule struct {
	pointE    *Point
	pointV    *Point
	signature *Scalar
}

// CapsuleFromBytes decodes a capsule from its fixed-width encoding.
func CapsuleFromBytes(data []byte) (*Capsule, error) {
	if err := checkSize(data, CapsuleSize); err != nil {
		return nil, err
	}

	pointE, err := PointFromBytes(data[:PointSize])
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	pointV, err := PointFromBytes(data[PointSize : 2*PointSize])
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	signature, err := ScalarFromBytes(data[2*PointSize:])
	if err != nil {
		return nil, DeserializationConstructionFailure
	}

	return &Capsule{pointE: pointE, pointV: pointV, signature: signature}, nil
}

func (c *Capsule) Bytes() []byte {
	out := make([]byte, 0, CapsuleSize)
	out = append(out, c.pointE.Bytes()...)
	out = append(out, c.pointV.Bytes()...)
	out = append(out, c.signature.Bytes()...)
	return out
}

func (c *Capsule) Equal(other *Capsule) bool {
	return c.pointE.Equal(other.pointE) &&
		c.pointV.Equal(other.pointV) &&
		c.signature.Equal(other.signature)
}

// capsuleDigestSize is the width of the capsule fingerprint embedded in
// every capsule fragment.
const capsuleDigestSize = 32

// digest is a content fingerprint identifying the capsule a fragment was
// derived from.
func (c *Capsule) digest() []byte {
	hasher, err := blake2b.New256(nil)
	if err != nil {
		panic("backend: blake2b init: " + err.Error())
	}
	hasher.Write([]byte(tagCapsuleDigest))
	hasher.Write(c.Bytes())
	return hasher.Sum(nil)
}

// encapsulate produces a fresh capsule for pk together with the symmetric
// key it encapsulates.
func encapsulate(rng io.Reader, pk *PublicKey) (*Capsule, []byte, error) {
	r, err := RandomNonZeroScalar(rng)
	if err != nil {
		return nil, nil, err
	}
	u, err := RandomNonZeroScalar(rng)
	if err != nil {
		return nil, nil, err
	}

	g := BasePoint()
	pointE := g.Mul(r)
	pointV := g.Mul(u)

	h := hashToScalar(tagCapsule, pointE.Bytes(), pointV.Bytes())
	signature := u.Add(r.Mul(h))

	shared := pk.point.Mul(r.Add(u))

	capsule := &Capsule{pointE: pointE, pointV: pointV, signature: signature}
	return capsule, deriveDEMKey(shared), nil
}

// openOriginal recovers the encapsulated key with the original secret key.
func (c *Capsule) openOriginal(sk *SecretKey) []byte {
	shared := c.pointE.Add(c.pointV).Mul(sk.scalar)
	return deriveDEMKey(shared)
}

// openReencrypted recovers the encapsulated key from transformed capsule
// fragments on the receiving side. The fragment set must be non-empty,
// derived from the same delegation, and free of repeats.
func (c *Capsule) openReencrypted(
	receivingSK *SecretKey,
	delegatingPK *PublicKey,
	cfrags []*CapsuleFrag,
) ([]byte, error) {
	if len(cfrags) == 0 {
		return nil, OpenNoCapsuleFrags
	}

	// All fragments must stem from the same delegation and from this
	// exact capsule.
	digest := c.digest()
	precursor := cfrags[0].precursor
	for _, cfrag := range cfrags {
		if !cfrag.precursor.Equal(precursor) || !bytes.Equal(cfrag.capsuleDigest, digest) {
			return nil, OpenMismatchedCapsuleFrags
		}
	}
	for i, a := range cfrags {
		for _, b := range cfrags[i+1:] {
			if a.kfragID.Equal(b.kfragID) {
				return nil, OpenRepeatingCapsuleFrags
			}
		}
	}

	receivingPK := receivingSK.PublicKey()
	dhPoint := precursor.Mul(receivingSK.scalar)
	d := hashToScalar(tagDH, precursor.Bytes(), receivingPK.Bytes(), dhPoint.Bytes())
	dInv, err := d.Invert()
	if err != nil {
		return nil, OpenZeroHash
	}

	points := make([]*Scalar, len(cfrags))
	for i, cfrag := range cfrags {
		points[i] = polynomialArg(precursor, receivingPK, d, cfrag.kfragID)
	}
	lambdas, err := lagrangeCoefficients(points)
	if err != nil {
		return nil, OpenZeroHash
	}

	combinedE := cfrags[0].pointE1.Mul(lambdas[0])
	combinedV := cfrags[0].pointV1.Mul(lambdas[0])
	for i := 1; i < len(cfrags); i++ {
		combinedE = combinedE.Add(cfrags[i].pointE1.Mul(lambdas[i]))
		combinedV = combinedV.Add(cfrags[i].pointV1.Mul(lambdas[i]))
	}

	// The delegating key raised to s/d must match the combined points'
	// binding; anything else means the fragments do not reconstruct the
	// delegated key.
	h := hashToScalar(tagCapsule, c.pointE.Bytes(), c.pointV.Bytes())
	lhs := delegatingPK.point.Mul(c.signature.Mul(dInv))
	rhs := combinedE.Mul(h).Add(combinedV)
	if !lhs.Equal(rhs) {
		return nil, OpenValidationFailed
	}

	shared := combinedE.Add(combinedV).Mul(d)
	return deriveDEMKey(shared), nil
}

// polynomialArg maps a key fragment identifier to its Shamir share index.
func polynomialArg(precursor *Point, receivingPK *PublicKey, d, kfragID *Scalar) *Scalar {
	return hashToScalar(tagPolynomial,
		precursor.Bytes(), receivingPK.Bytes(), d.Bytes(), kfragID.Bytes())
}
