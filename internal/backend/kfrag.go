package backend

import (
	"fmt"
	"io"
)

// KeyFragSize is the fixed serialized size of a key fragment.
const KeyFragSize = 2*ScalarSize + 2*PointSize + 2*SignatureSize + 1

// Flag bits of the serialized key fragment.
const (
	flagSignDelegating byte = 1 << 0
	flagSignReceiving  byte = 1 << 1
)

// KeyFrag is one share of a threshold splitting of a re-encryption key,
// handed out to a proxy. The embedded signatures let the proxy and the
// receiving party authenticate the fragment independently.
type KeyFrag struct {
	id             *Scalar
	key            *Scalar
	precursor      *Point
	commitment     *Point
	sigForProxy    *Signature
	sigForReceiver *Signature
	signDelegating bool
	signReceiving  bool
}

// GenerateKFrags splits the re-encryption key from delegatingSK to
// receivingPK into numKFrags fragments, any threshold of which suffice for
// re-encryption. The two flags control whether the proxy-facing signature
// additionally binds the delegating and receiving identities.
func GenerateKFrags(
	rng io.Reader,
	delegatingSK *SecretKey,
	receivingPK *PublicKey,
	signingSK *SecretKey,
	threshold int,
	numKFrags int,
	signDelegating bool,
	signReceiving bool,
) ([]*KeyFrag, error) {
	if threshold <= 0 || threshold > numKFrags {
		return nil, fmt.Errorf("invalid threshold %d for %d fragments", threshold, numKFrags)
	}

	// The non-interactive DH scalar d ties the fragments to the receiving
	// party. A zero hash cannot be inverted; redraw the precursor instead.
	var precursor *Point
	var d *Scalar
	for {
		x, err := RandomNonZeroScalar(rng)
		if err != nil {
			return nil, err
		}
		precursor = BasePoint().Mul(x)
		dhPoint := receivingPK.point.Mul(x)
		d = hashToScalar(tagDH, precursor.Bytes(), receivingPK.Bytes(), dhPoint.Bytes())
		if !d.IsZero() {
			break
		}
	}

	dInv, err := d.Invert()
	if err != nil {
		return nil, err
	}

	poly, err := newRandomPolynomial(rng, threshold-1, delegatingSK.scalar.Mul(dInv))
	if err != nil {
		return nil, err
	}
	defer poly.zeroize()

	signer := NewSigner(signingSK)
	delegatingPK := delegatingSK.PublicKey()

	kfrags := make([]*KeyFrag, numKFrags)
	for i := range kfrags {
		id, err := RandomNonZeroScalar(rng)
		if err != nil {
			return nil, err
		}

		share := poly.evaluate(polynomialArg(precursor, receivingPK, d, id))
		commitment := pointU.Mul(share)

		var proxyDelegating, proxyReceiving *PublicKey
		if signDelegating {
			proxyDelegating = delegatingPK
		}
		if signReceiving {
			proxyReceiving = receivingPK
		}

		sigForProxy, err := signer.Sign(
			kfragSignedMessage(id, commitment, precursor, proxyDelegating, proxyReceiving))
		if err != nil {
			return nil, err
		}
		// The receiving party always knows both identities.
		sigForReceiver, err := signer.Sign(
			kfragSignedMessage(id, commitment, precursor, delegatingPK, receivingPK))
		if err != nil {
			return nil, err
		}

		kfrags[i] = &KeyFrag{
			id:             id,
			key:            share,
			precursor:      precursor,
			commitment:     commitment,
			sigForProxy:    sigForProxy,
			sigForReceiver: sigForReceiver,
			signDelegating: signDelegating,
			signReceiving:  signReceiving,
		}
	}

	return kfrags, nil
}

// Verify checks the fragment's commitment and proxy-facing signature. The
// optional keys confirm the fragment is bound to specific delegating and
// receiving identities; if the fragment carries such a binding and the
// corresponding key is not supplied, verification fails.
func (kf *KeyFrag) Verify(signingPK, delegatingPK, receivingPK *PublicKey) bool {
	if !pointU.Mul(kf.key).Equal(kf.commitment) {
		return false
	}
	if kf.signDelegating && delegatingPK == nil {
		return false
	}
	if kf.signReceiving && receivingPK == nil {
		return false
	}

	var signedDelegating, signedReceiving *PublicKey
	if kf.signDelegating {
		signedDelegating = delegatingPK
	}
	if kf.signReceiving {
		signedReceiving = receivingPK
	}

	message := kfragSignedMessage(kf.id, kf.commitment, kf.precursor,
		signedDelegating, signedReceiving)
	return kf.sigForProxy.Verify(signingPK, message)
}

// KeyFragFromBytes decodes a key fragment from its fixed-width encoding.
func KeyFragFromBytes(data []byte) (*KeyFrag, error) {
	if err := checkSize(data, KeyFragSize); err != nil {
		return nil, err
	}

	id, err := ScalarFromBytes(data[:ScalarSize])
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	key, err := ScalarFromBytes(data[ScalarSize : 2*ScalarSize])
	if err != nil {
		return nil, DeserializationConstructionFailure
	}

	offset := 2 * ScalarSize
	precursor, err := PointFromBytes(data[offset : offset+PointSize])
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	offset += PointSize
	commitment, err := PointFromBytes(data[offset : offset+PointSize])
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	offset += PointSize

	sigForProxy, err := SignatureFromBytes(data[offset : offset+SignatureSize])
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	offset += SignatureSize
	sigForReceiver, err := SignatureFromBytes(data[offset : offset+SignatureSize])
	if err != nil {
		return nil, DeserializationConstructionFailure
	}
	offset += SignatureSize

	flags := data[offset]
	if flags&^(flagSignDelegating|flagSignReceiving) != 0 {
		return nil, DeserializationConstructionFailure
	}

	return &KeyFrag{
		id:             id,
		key:            key,
		precursor:      precursor,
		commitment:     commitment,
		sigForProxy:    sigForProxy,
		sigForReceiver: sigForReceiver,
		signDelegating: flags&flagSignDelegating != 0,
		signReceiving:  flags&flagSignReceiving != 0,
	}, nil
}

func (kf *KeyFrag) Bytes() []byte {
	var flags byte
	if kf.signDelegating {
		flags |= flagSignDelegating
	}
	if kf.signReceiving {
		flags |= flagSignReceiving
	}

	out := make([]byte, 0, KeyFragSize)
	out = append(out, kf.id.Bytes()...)
	out = append(out, kf.key.Bytes()...)
	out = append(out, kf.precursor.Bytes()...)
	out = append(out, kf.commitment.Bytes()...)
	out = append(out, kf.sigForProxy.Bytes()...)
	out = append(out, kf.sigForReceiver.Bytes()...)
	out = append(out, flags)
	return out
}

func (kf *KeyFrag) Equal(other *KeyFrag) bool {
	return kf.id.Equal(other.id) &&
		kf.key.Equal(other.key) &&
		kf.precursor.Equal(other.precursor) &&
		kf.commitment.Equal(other.commitment) &&
		kf.sigForProxy.Equal(other.sigForProxy) &&
		kf.sigForReceiver.Equal(other.sigForReceiver) &&
		kf.signDelegating == other.signDelegating &&
		kf.signReceiving == other.signReceiving
}

// kfragSignedMessage builds the transcript covered by the fragment
// signatures. Optional identities are preceded by a presence byte so the
// encoding stays unambiguous.
func kfragSignedMessage(id *Scalar, commitment, precursor *Point, delegating, receiving *PublicKey) []byte {
	message := make([]byte, 0, ScalarSize+2*PointSize+2+2*PublicKeySize)
	message = append(message, id.Bytes()...)
	message = append(message, commitment.Bytes()...)
	message = append(message, precursor.Bytes()...)

	if delegating != nil {
		message = append(message, 1)
		message = append(message, delegating.Bytes()...)
	} else {
		message = append(message, 0)
	}
	if receiving != nil {
		message = append(message, 1)
		message = append(message, receiving.Bytes()...)
	} else {
		message = append(message, 0)
	}
	return message
}
