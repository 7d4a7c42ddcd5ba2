package umbral

import (
	"bytes"
	"testing"
)

func TestEncryptDecryptOriginal(t *testing.T) {
	sk, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	pk := PublicKeyFromSecretKey(sk)
	plaintext := []byte("plaintext never leaves the delegator unencrypted")

	capsule, ciphertext, err := Encrypt(pk, plaintext)
	if err != nil {
		t.Fatalf("encryption failed: %v", err)
	}
	if bytes.Contains(ciphertext, plaintext) {
		t.Fatal("ciphertext contains the plaintext")
	}

	recovered, err := DecryptOriginal(sk, capsule, ciphertext)
	if err != nil {
		t.Fatalf("decryption failed: %v", err)
	}
	if !bytes.Equal(recovered, plaintext) {
		t.Errorf("recovered %q, want %q", recovered, plaintext)
	}
}

func TestDecryptOriginalFailures(t *testing.T) {
	sk, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	capsule, ciphertext, err := Encrypt(PublicKeyFromSecretKey(sk), []byte("guarded"))
	if err != nil {
		t.Fatalf("encryption failed: %v", err)
	}

	t.Run("truncated below nonce size", func(t *testing.T) {
		_, err := DecryptOriginal(sk, capsule, ciphertext[:10])
		assertAdapterError(t, err, KindValueError, CodeCiphertextTooShort,
			"The ciphertext must include the nonce")
	})

	t.Run("tampered ciphertext", func(t *testing.T) {
		tampered := append([]byte(nil), ciphertext...)
		tampered[len(tampered)-1] ^= 0x01
		_, err := DecryptOriginal(sk, capsule, tampered)
		assertAdapterError(t, err, KindCryptographicError, CodeAuthenticationFailed, "")
	})

	t.Run("wrong secret key", func(t *testing.T) {
		wrongSK, err := GenerateSecretKey(nil)
		if err != nil {
			t.Fatalf("generation failed: %v", err)
		}
		_, err = DecryptOriginal(wrongSK, capsule, ciphertext)
		assertAdapterError(t, err, KindCryptographicError, CodeAuthenticationFailed, "")
	})
}

func TestGenerateKFragsThresholdValidation(t *testing.T) {
	d := newTestDelegation(t, []byte("threshold bounds"))

	for _, tc := range []struct {
		name      string
		threshold int
		num       int
	}{
		{"zero threshold", 0, 3},
		{"negative threshold", -1, 3},
		{"threshold above count", 4, 3},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := GenerateKFrags(d.delegatingSK, d.receivingPK, d.signingSK,
				tc.threshold, tc.num, true, true)
			assertAdapterError(t, err, KindValueError, CodeInvalidThreshold, "")
		})
	}
}

func TestReencryptionThresholdRecovery(t *testing.T) {
	delegatingSK, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	receivingSK, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	signingSK, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	delegatingPK := PublicKeyFromSecretKey(delegatingSK)
	receivingPK := PublicKeyFromSecretKey(receivingSK)

	plaintext := []byte("any three proxies suffice")
	capsule, ciphertext, err := Encrypt(delegatingPK, plaintext)
	if err != nil {
		t.Fatalf("encryption failed: %v", err)
	}

	kfrags, err := GenerateKFrags(delegatingSK, receivingPK, signingSK, 3, 5, true, true)
	if err != nil {
		t.Fatalf("fragment generation failed: %v", err)
	}

	cfrags := make([]*CapsuleFrag, len(kfrags))
	for i, kfrag := range kfrags {
		cfrags[i], err = Reencrypt(capsule, kfrag, nil)
		if err != nil {
			t.Fatalf("re-encryption failed: %v", err)
		}
	}

	for _, subset := range [][]*CapsuleFrag{
		{cfrags[0], cfrags[1], cfrags[2]},
		{cfrags[4], cfrags[2], cfrags[0]},
		{cfrags[1], cfrags[3], cfrags[4]},
		cfrags,
	} {
		recovered, err := DecryptReencrypted(receivingSK, delegatingPK, capsule, subset, ciphertext)
		if err != nil {
			t.Fatalf("decryption with %d fragments failed: %v", len(subset), err)
		}
		if !bytes.Equal(recovered, plaintext) {
			t.Errorf("recovered %q, want %q", recovered, plaintext)
		}
	}
}

func TestSingleFragmentDelegation(t *testing.T) {
	delegatingSK, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	receivingSK, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	signingSK, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	delegatingPK := PublicKeyFromSecretKey(delegatingSK)
	receivingPK := PublicKeyFromSecretKey(receivingSK)
	signingPK := PublicKeyFromSecretKey(signingSK)

	plaintext := []byte("one fragment is enough")
	capsule, ciphertext, err := Encrypt(delegatingPK, plaintext)
	if err != nil {
		t.Fatalf("encryption failed: %v", err)
	}

	kfrags, err := GenerateKFrags(delegatingSK, receivingPK, signingSK, 1, 2, true, true)
	if err != nil {
		t.Fatalf("fragment generation failed: %v", err)
	}

	for _, kfrag := range kfrags {
		if !kfrag.Verify(signingPK, delegatingPK, receivingPK) {
			t.Fatal("honest fragment fails verification")
		}
		cfrag, err := Reencrypt(capsule, kfrag, nil)
		if err != nil {
			t.Fatalf("re-encryption failed: %v", err)
		}

		recovered, err := DecryptReencrypted(receivingSK, delegatingPK, capsule,
			[]*CapsuleFrag{cfrag}, ciphertext)
		if err != nil {
			t.Fatalf("single-fragment decryption failed: %v", err)
		}
		if !bytes.Equal(recovered, plaintext) {
			t.Errorf("recovered %q, want %q", recovered, plaintext)
		}
	}
}

func TestDecryptReencryptedFragmentFailures(t *testing.T) {
	delegatingSK, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	receivingSK, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	signingSK, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	delegatingPK := PublicKeyFromSecretKey(delegatingSK)
	receivingPK := PublicKeyFromSecretKey(receivingSK)

	capsule, ciphertext, err := Encrypt(delegatingPK, []byte("fragment discipline"))
	if err != nil {
		t.Fatalf("encryption failed: %v", err)
	}

	kfrags, err := GenerateKFrags(delegatingSK, receivingPK, signingSK, 3, 5, true, true)
	if err != nil {
		t.Fatalf("fragment generation failed: %v", err)
	}
	cfrags := make([]*CapsuleFrag, len(kfrags))
	for i, kfrag := range kfrags {
		cfrags[i], err = Reencrypt(capsule, kfrag, nil)
		if err != nil {
			t.Fatalf("re-encryption failed: %v", err)
		}
	}

	t.Run("empty fragment set", func(t *testing.T) {
		_, err := DecryptReencrypted(receivingSK, delegatingPK, capsule, nil, ciphertext)
		assertAdapterError(t, err, KindValueError, CodeNoCapsuleFrags,
			"Empty CapsuleFrag sequence")
	})

	t.Run("repeated fragment", func(t *testing.T) {
		set := []*CapsuleFrag{cfrags[0], cfrags[1], cfrags[0]}
		_, err := DecryptReencrypted(receivingSK, delegatingPK, capsule, set, ciphertext)
		assertAdapterError(t, err, KindValueError, CodeRepeatingCapsuleFrags,
			"Some of the CapsuleFrags are repeated")
	})

	t.Run("below threshold", func(t *testing.T) {
		set := []*CapsuleFrag{cfrags[0], cfrags[1]}
		_, err := DecryptReencrypted(receivingSK, delegatingPK, capsule, set, ciphertext)
		assertAdapterError(t, err, KindCryptographicError, CodeValidationFailed,
			"Internal validation failed")
	})

	t.Run("fragments from another capsule", func(t *testing.T) {
		otherCapsule, _, err := Encrypt(delegatingPK, []byte("a second message"))
		if err != nil {
			t.Fatalf("encryption failed: %v", err)
		}
		foreign, err := Reencrypt(otherCapsule, kfrags[2], nil)
		if err != nil {
			t.Fatalf("re-encryption failed: %v", err)
		}

		set := []*CapsuleFrag{cfrags[0], cfrags[1], foreign}
		_, err = DecryptReencrypted(receivingSK, delegatingPK, capsule, set, ciphertext)
		assertAdapterError(t, err, KindValueError, CodeMismatchedCapsuleFrags,
			"CapsuleFrags are not pairwise consistent")
	})
}

func TestKeyFragVerification(t *testing.T) {
	d := newTestDelegation(t, []byte("verify before you proxy"))
	kfrag := d.kfrags[0]

	if !kfrag.Verify(d.signingPK, d.delegatingPK, d.receivingPK) {
		t.Error("valid fragment fails full verification")
	}
	// Both identities were signed into the fragment, so omitting either
	// key must fail the check.
	if kfrag.Verify(d.signingPK, nil, nil) {
		t.Error("fragment with signed identities verifies without them")
	}
	if kfrag.Verify(d.receivingPK, d.delegatingPK, d.receivingPK) {
		t.Error("fragment verifies under the wrong signing key")
	}
	if kfrag.Verify(d.signingPK, d.receivingPK, d.delegatingPK) {
		t.Error("fragment verifies with the identities swapped")
	}

	unsigned, err := GenerateKFrags(d.delegatingSK, d.receivingPK, d.signingSK, 2, 3, false, false)
	if err != nil {
		t.Fatalf("fragment generation failed: %v", err)
	}
	if !unsigned[0].Verify(d.signingPK, nil, nil) {
		t.Error("unsigned fragment fails verification without optional keys")
	}
}

func TestCapsuleFragVerification(t *testing.T) {
	d := newTestDelegation(t, []byte("proofs travel with fragments"))

	metadata := []byte("policy-42")
	cfrag, err := Reencrypt(d.capsule, d.kfrags[1], metadata)
	if err != nil {
		t.Fatalf("re-encryption failed: %v", err)
	}

	if !cfrag.Verify(d.capsule, d.delegatingPK, d.receivingPK, d.signingPK, metadata) {
		t.Error("valid fragment fails verification")
	}
	if cfrag.Verify(d.capsule, d.delegatingPK, d.receivingPK, d.signingPK, nil) {
		t.Error("fragment verifies with the metadata dropped")
	}
	if cfrag.Verify(d.capsule, d.delegatingPK, d.receivingPK, d.signingPK, []byte("policy-43")) {
		t.Error("fragment verifies with different metadata")
	}

	otherCapsule, _, err := Encrypt(d.delegatingPK, []byte("unrelated"))
	if err != nil {
		t.Fatalf("encryption failed: %v", err)
	}
	if cfrag.Verify(otherCapsule, d.delegatingPK, d.receivingPK, d.signingPK, metadata) {
		t.Error("fragment verifies against a different capsule")
	}

	restored, err := CapsuleFragFromBytes(cfrag.Bytes())
	if err != nil {
		t.Fatalf("deserialization failed: %v", err)
	}
	if !restored.Verify(d.capsule, d.delegatingPK, d.receivingPK, d.signingPK, metadata) {
		t.Error("restored fragment fails verification")
	}
}
