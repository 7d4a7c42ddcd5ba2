package umbral

import (
	"strings"
	"testing"
)

func TestSecretKeyGeneration(t *testing.T) {
	first, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	second, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	if first.Equal(second) {
		t.Error("independently generated secret keys are equal")
	}

	restored, err := SecretKeyFromBytes(first.Bytes())
	if err != nil {
		t.Fatalf("deserialization failed: %v", err)
	}
	if !first.Equal(restored) {
		t.Error("restored secret key differs from the original")
	}
	if !PublicKeyFromSecretKey(first).Equal(PublicKeyFromSecretKey(restored)) {
		t.Error("restored secret key derives a different public key")
	}
}

func TestSecretKeyRejectsZero(t *testing.T) {
	_, err := SecretKeyFromBytes(make([]byte, 32))
	assertAdapterError(t, err, KindValueError, CodeConstructionFailure,
		"Failed to deserialize a SecretKey object")
}

func TestSecretKeyFactoryDerivation(t *testing.T) {
	factory, err := GenerateSecretKeyFactory(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}

	byLabel, err := factory.SecretKeyByLabel([]byte("account-7"))
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}
	again, err := factory.SecretKeyByLabel([]byte("account-7"))
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}
	other, err := factory.SecretKeyByLabel([]byte("account-8"))
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}

	if !byLabel.Equal(again) {
		t.Error("same label derived different keys")
	}
	if byLabel.Equal(other) {
		t.Error("different labels derived the same key")
	}

	restored, err := SecretKeyFactoryFromBytes(factory.Bytes())
	if err != nil {
		t.Fatalf("deserialization failed: %v", err)
	}
	if !factory.Equal(restored) {
		t.Error("restored factory differs from the original")
	}
	fromRestored, err := restored.SecretKeyByLabel([]byte("account-7"))
	if err != nil {
		t.Fatalf("derivation failed: %v", err)
	}
	if !byLabel.Equal(fromRestored) {
		t.Error("restored factory derives different keys")
	}
}

func TestPublicKeyIdentity(t *testing.T) {
	sk, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	pk := PublicKeyFromSecretKey(sk)

	restored, err := PublicKeyFromBytes(pk.Bytes())
	if err != nil {
		t.Fatalf("deserialization failed: %v", err)
	}
	if !pk.Equal(restored) {
		t.Error("restored public key differs from the original")
	}
	if pk.Hash() != restored.Hash() {
		t.Error("equal public keys hash differently")
	}

	otherSK, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	otherPK := PublicKeyFromSecretKey(otherSK)
	if pk.Equal(otherPK) {
		t.Error("unrelated public keys are equal")
	}
	if pk.Hash() == otherPK.Hash() {
		t.Error("unrelated public keys hash equally")
	}
}

func TestKeyDisplayForms(t *testing.T) {
	sk, err := GenerateSecretKey(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	factory, err := GenerateSecretKeyFactory(nil)
	if err != nil {
		t.Fatalf("generation failed: %v", err)
	}
	pk := PublicKeyFromSecretKey(sk)

	if got := sk.String(); got != "SecretKey:..." {
		t.Errorf("secret key displays as %q", got)
	}
	if got := factory.String(); got != "SecretKeyFactory:..." {
		t.Errorf("factory displays as %q", got)
	}

	repr := pk.String()
	if !strings.HasPrefix(repr, "PublicKey:") {
		t.Fatalf("public key displays as %q", repr)
	}
	if hexPart := strings.TrimPrefix(repr, "PublicKey:"); len(hexPart) != 16 {
		t.Errorf("public key fingerprint has %d characters, want 16", len(hexPart))
	}
}
