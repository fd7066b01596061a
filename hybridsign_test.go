package pqcrypto

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestHybridSignRoundTrip(t *testing.T) {
	kp, err := GenerateHybridSignKeyPair(HybridEd25519MLDSA65)
	if err != nil {
		t.Fatalf("GenerateHybridSignKeyPair: %v", err)
	}
	defer kp.Destroy()

	if len(kp.ClassicalPublic) != 32 {
		t.Errorf("classical public = %d bytes, want 32", len(kp.ClassicalPublic))
	}
	if kp.PostQuantum.Variant != MLDSA65 {
		t.Errorf("post-quantum variant = %v, want ML-DSA-65", kp.PostQuantum.Variant)
	}

	message := []byte("hello quantum world")
	sig, err := kp.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(sig.Signature) != HybridSignatureSize {
		t.Errorf("signature = %d bytes, want %d", len(sig.Signature), HybridSignatureSize)
	}

	ok, err := kp.Verify(message, sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("valid hybrid signature rejected")
	}
}

func TestHybridSignEitherComponentBreaksVerification(t *testing.T) {
	kp, err := GenerateHybridSignKeyPair(HybridEd25519MLDSA65)
	if err != nil {
		t.Fatalf("GenerateHybridSignKeyPair: %v", err)
	}
	defer kp.Destroy()

	message := []byte("both or nothing")
	sig, err := kp.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tests := []struct {
		name   string
		offset int
	}{
		{"classical component", 5},
		{"post-quantum component", 64 + 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tampered := &HybridSignature{
				Variant:   sig.Variant,
				Signature: make([]byte, len(sig.Signature)),
			}
			copy(tampered.Signature, sig.Signature)
			tampered.Signature[tt.offset] ^= 0x01

			ok, err := kp.Verify(message, tampered)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if ok {
				t.Errorf("signature with tampered %s verified", tt.name)
			}
		})
	}
}

func TestHybridSignWrongMessage(t *testing.T) {
	kp, err := GenerateHybridSignKeyPair(HybridEd25519MLDSA65)
	if err != nil {
		t.Fatalf("GenerateHybridSignKeyPair: %v", err)
	}
	defer kp.Destroy()

	sig, err := kp.Sign([]byte("signed"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	ok, err := kp.Verify([]byte("not signed"), sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Error("signature verified against a different message")
	}
}

func TestHybridSignStructuralErrors(t *testing.T) {
	kp, err := GenerateHybridSignKeyPair(HybridEd25519MLDSA65)
	if err != nil {
		t.Fatalf("GenerateHybridSignKeyPair: %v", err)
	}
	defer kp.Destroy()

	message := []byte("payload")
	sig, err := kp.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tests := []struct {
		name string
		run  func() (bool, error)
	}{
		{"nil signature", func() (bool, error) {
			return kp.Verify(message, nil)
		}},
		{"variant mismatch", func() (bool, error) {
			wrong := &HybridSignature{Variant: HybridX25519MLKEM768, Signature: sig.Signature}
			return VerifyHybrid(HybridEd25519MLDSA65, kp.ClassicalPublic, kp.PostQuantum.PublicKey, message, wrong)
		}},
		{"truncated signature", func() (bool, error) {
			short := &HybridSignature{Variant: sig.Variant, Signature: sig.Signature[:64]}
			return kp.Verify(message, short)
		}},
		{"wrong classical public length", func() (bool, error) {
			return VerifyHybrid(HybridEd25519MLDSA65, make([]byte, 4), kp.PostQuantum.PublicKey, message, sig)
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := tt.run()
			if ok {
				t.Error("structural failure verified")
			}
			if !errors.Is(err, ErrVerification) {
				t.Errorf("err = %v, want ErrVerification", err)
			}
		})
	}
}

func TestHybridSignGenerateRejectsKEMVariant(t *testing.T) {
	_, err := GenerateHybridSignKeyPair(HybridX25519MLKEM768)
	if !errors.Is(err, ErrUnsupportedAlgorithm) {
		t.Errorf("GenerateHybridSignKeyPair = %v, want ErrUnsupportedAlgorithm", err)
	}
}

func TestHybridSignAfterDestroy(t *testing.T) {
	kp, err := GenerateHybridSignKeyPair(HybridEd25519MLDSA65)
	if err != nil {
		t.Fatalf("GenerateHybridSignKeyPair: %v", err)
	}
	kp.Destroy()

	_, err = kp.Sign([]byte("too late"))
	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Sign after destroy = %v, want ErrInvalidKey", err)
	}
}

func TestHybridSignKeyPairJSONExcludesSecrets(t *testing.T) {
	kp, err := GenerateHybridSignKeyPair(HybridEd25519MLDSA65)
	if err != nil {
		t.Fatalf("GenerateHybridSignKeyPair: %v", err)
	}
	defer kp.Destroy()

	data, err := json.Marshal(kp)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded HybridSignKeyPair
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.ClassicalSecret.IsDestroyed() {
		t.Error("deserialized pair has a classical secret")
	}
	if decoded.PostQuantum == nil || !decoded.PostQuantum.SecretKey.IsDestroyed() {
		t.Error("deserialized pair has a post-quantum secret")
	}
}
