package backend

import (
	"encoding/binary"

	"golang.org/x/crypto/blake2b"
)

// Domain separation tags for every hash-to-scalar context in the scheme.
// Distinct tags keep transcripts from colliding across protocol steps.
const (
	tagCapsule       = "UMBRAL_CAPSULE_SIGNATURE"
	tagDH            = "UMBRAL_NON_INTERACTIVE_DH"
	tagPolynomial    = "UMBRAL_POLYNOMIAL_ARG"
	tagKeyFactory    = "UMBRAL_KEY_DERIVATION"
	tagProof         = "UMBRAL_CFRAG_PROOF"
	tagMessage       = "UMBRAL_MESSAGE_DIGEST"
	tagPointGen      = "UMBRAL_AUX_GENERATOR"
	tagCapsuleDigest = "UMBRAL_CAPSULE_DIGEST"
)

// hashToScalar hashes a domain tag plus length-prefixed transcript items to
// a scalar. The output may be zero; callers that cannot tolerate a zero
// scalar must check for it.
func hashToScalar(tag string, items ...[]byte) *Scalar {
	hasher, err := blake2b.New(64, nil)
	if err != nil {
		panic("backend: blake2b init: " + err.Error())
	}

	hasher.Write([]byte(tag))
	for _, item := range items {
		var length [4]byte
		binary.BigEndian.PutUint32(length[:], uint32(len(item)))
		hasher.Write(length[:])
		hasher.Write(item)
	}

	return scalarFromUniformBytes(hasher.Sum(nil))
}

// messageDigest produces the fixed 32-byte digest signed by Signer.
func messageDigest(message []byte) [32]byte {
	hasher, err := blake2b.New256(nil)
	if err != nil {
		panic("backend: blake2b init: " + err.Error())
	}
	hasher.Write([]byte(tagMessage))
	hasher.Write(message)

	var digest [32]byte
	copy(digest[:], hasher.Sum(nil))
	return digest
}
