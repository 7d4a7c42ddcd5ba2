package backend

import (
	"bytes"
	"io"
)

// CapsuleFragSize is the fixed serialized size of a capsule fragment.
const CapsuleFragSize = 2*PointSize + ScalarSize + PointSize + capsuleDigestSize + capsuleFragProofSize

const capsuleFragProofSize = 4*PointSize + ScalarSize + SignatureSize

// capsuleFragProof is the non-interactive proof that a capsule fragment was
// produced by honestly transforming the capsule under a committed key
// fragment.
type capsuleFragProof struct {
	pointE2        *Point
	pointV2        *Point
	commitment     *Point
	pok            *Point
	z              *Scalar
	kfragSignature *Signature
}

// CapsuleFrag is the result of transforming a capsule under one key
// fragment. The capsule digest ties the fragment to the exact capsule it
// was derived from, so fragments of different capsules can never be
// combined.
type CapsuleFrag struct {
	pointE1       *Point
	pointV1       *Point
	kfragID       *Scalar
	precursor     *Point
	capsuleDigest []byte
	proof         *capsuleFragProof
}

// Reencrypt deterministically transforms the capsule under kfrag, minus the
// randomness of the attached correctness proof. The optional metadata is
// folded into the proof challenge and must be presented again at
// verification.
func Reencrypt(rng io.Reader, capsule *Capsule, kfrag *KeyFrag, metadata []byte) (*CapsuleFrag, error) {
	rk := kfrag.key
	pointE1 := capsule.pointE.Mul(rk)
	pointV1 := capsule.pointV.Mul(rk)

	t, err := RandomNonZeroScalar(rng)
	if err != nil {
		return nil, err
	}
	pointE2 := capsule.pointE.Mul(t)
	pointV2 := capsule.pointV.Mul(t)
	pok := pointU.Mul(t)

	h := proofChallenge(capsule, pointE1, pointV1, pointE2, pointV2,
		kfrag.commitment, pok, metadata)
	z := t.Add(h.Mul(rk))

	return &CapsuleFrag{
		pointE1:       pointE1,
		pointV1:       pointV1,
		kfragID:       kfrag.id,
		precursor:     kfrag.precursor,
		capsuleDigest: capsule.digest(),
		proof: &capsuleFragProof{
			pointE2:        pointE2,
			pointV2:        pointV2,
			commitment:     kfrag.commitment,
			pok:            pok,
			z:              z,
			kfragSignature: kfrag.sigForReceiver,
		},
	}, nil
}

// Verify checks the fragment's correctness proof against the capsule and
// the three identities involved in the delegation. The metadata must match
// the value bound at re-encryption time, if any.
func (cf *CapsuleFrag) Verify(
	capsule *Capsule,
	delegatingPK, receivingPK, signingPK *PublicKey,
	metadata []byte,
) bool {
	if !bytes.Equal(cf.capsuleDigest, capsule.digest()) {
		return false
	}

	h := proofChallenge(capsule, cf.pointE1, cf.pointV1, cf.proof.pointE2,
		cf.proof.pointV2, cf.proof.commitment, cf.proof.pok, metadata)

	// Schnorr-style checks: z binds the transform exponent to the
	// committed fragment key across all three bases.
	e := capsule.pointE
	v := capsule.pointV
	if !e.Mul(cf.proof.z).Equal(cf.proof.pointE2.Add(cf.pointE1.Mul(h))) {
		return false
	}
	if !v.Mul(cf.proof.z).Equal(cf.proof.pointV2.Add(cf.pointV1.Mul(h))) {
		return false
	}
	if !pointU.Mul(cf.proof.z).Equal(cf.proof.pok.Add(cf.proof.commitment.Mul(h))) {
		return false
	}

	message := kfragSignedMessage(cf.kfragID, cf.proof.commitment, cf.precursor,
		delegatingPK, receivingPK)
	return cf.proof.kfragSignature.Verify(signingPK, message)
}

// CapsuleFragFromBytes decodes a capsule fragment from its fixed-width
// encoding.
func CapsuleFragFromBytes(data []byte) (*CapsuleFrag, error) {
	if err := checkSize(data, CapsuleFragSize); err != nil {
		return nil, err
	}

	offset := 0
	nextPoint := func() (*Point, error) {
		point, err := PointFromBytes(data[offset : offset+PointSize])
		offset += PointSize
		return point, err
	}
	nextScalar := func() (*Scalar, error) {
		scalar, err := ScalarFromBytes(data[offset : offset+ScalarSize])
		offset += ScalarSize
		return scalar, err
	}

	pointE1, err := nextPoint()
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	pointV1, err := nextPoint()
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	kfragID, err := nextScalar()
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	precursor, err := nextPoint()
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	capsuleDigest := make([]byte, capsuleDigestSize)
	copy(capsuleDigest, data[offset:offset+capsuleDigestSize])
	offset += capsuleDigestSize
	pointE2, err := nextPoint()
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	pointV2, err := nextPoint()
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	commitment, err := nextPoint()
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	pok, err := nextPoint()
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	z, err := nextScalar()
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	kfragSignature, err := SignatureFromBytes(data[offset : offset+SignatureSize])
	if err != nil {
		return nil, DeserializationConstructionFailure
	}

	return &CapsuleFrag{
		pointE1:       pointE1,
		pointV1:       pointV1,
		kfragID:       kfragID,
		precursor:     precursor,
		capsuleDigest: capsuleDigest,
		proof: &capsuleFragProof{
			pointE2:        pointE2,
			pointV2:        pointV2,
			commitment:     commitment,
			pok:            pok,
			z:              z,
			kfragSignature: kfragSignature,
		},
	}, nil
}

func (cf *CapsuleFrag) Bytes() []byte {
	out := make([]byte, 0, CapsuleFragSize)
	out = append(out, cf.pointE1.Bytes()...)
	out = append(out, cf.pointV1.Bytes()...)
	out = append(out, cf.kfragID.Bytes()...)
	out = append(out, cf.precursor.Bytes()...)
	out = append(out, cf.capsuleDigest...)
	out = append(out, cf.proof.pointE2.Bytes()...)
	out = append(out, cf.proof.pointV2.Bytes()...)
	out = append(out, cf.proof.commitment.Bytes()...)
	out = append(out, cf.proof.pok.Bytes()...)
	out = append(out, cf.proof.z.Bytes()...)
	out = append(out, cf.proof.kfragSignature.Bytes()...)
	return out
}

func (cf *CapsuleFrag) Equal(other *CapsuleFrag) bool {
	return cf.pointE1.Equal(other.pointE1) &&
		cf.pointV1.Equal(other.pointV1) &&
		cf.kfragID.Equal(other.kfragID) &&
		cf.precursor.Equal(other.precursor) &&
		bytes.Equal(cf.capsuleDigest, other.capsuleDigest) &&
		cf.proof.pointE2.Equal(other.proof.pointE2) &&
		cf.proof.pointV2.Equal(other.proof.pointV2) &&
		cf.proof.commitment.Equal(other.proof.commitment) &&
		cf.proof.pok.Equal(other.proof.pok) &&
		cf.proof.z.Equal(other.proof.z) &&
		cf.proof.kfragSignature.Equal(other.proof.kfragSignature)
}

// proofChallenge derives the Fiat-Shamir challenge for the re-encryption
// correctness proof. A nil metadata slice means no metadata was bound; an
// empty non-nil slice is a distinct, present value.
func proofChallenge(
	capsule *Capsule,
	pointE1, pointV1, pointE2, pointV2, commitment, pok *Point,
	metadata []byte,
) *Scalar {
	presence := []byte{0}
	if metadata != nil {
		presence[0] = 1
	}

	return hashToScalar(tagProof,
		capsule.pointE.Bytes(), pointE1.Bytes(), pointE2.Bytes(),
		capsule.pointV.Bytes(), pointV1.Bytes(), pointV2.Bytes(),
		pointU.Bytes(), commitment.Bytes(), pok.Bytes(),
		presence, metadata)
}
