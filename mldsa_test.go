package pqcrypto

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestMLDSARoundTrip(t *testing.T) {
	message := []byte("hello quantum world")

	for _, v := range MLDSAVariants() {
		t.Run(v.String(), func(t *testing.T) {
			kp, err := GenerateMLDSAKeyPair(v)
			if err != nil {
				t.Fatalf("GenerateMLDSAKeyPair: %v", err)
			}
			defer kp.Destroy()

			pkSize, _ := v.KeySizes()
			if len(kp.PublicKey) != pkSize {
				t.Errorf("public key = %d bytes, want %d", len(kp.PublicKey), pkSize)
			}
			if kp.SecretKey.Len() != 32 {
				t.Errorf("secret seed = %d bytes, want 32", kp.SecretKey.Len())
			}

			sig, err := kp.Sign(message)
			if err != nil {
				t.Fatalf("Sign: %v", err)
			}
			if len(sig.Signature) != v.SignatureSize() {
				t.Errorf("signature = %d bytes, want %d", len(sig.Signature), v.SignatureSize())
			}

			ok, err := kp.Verify(message, sig)
			if err != nil {
				t.Fatalf("Verify: %v", err)
			}
			if !ok {
				t.Error("valid signature rejected")
			}
		})
	}
}

func TestMLDSADeterministicSigning(t *testing.T) {
	kp, err := GenerateMLDSAKeyPair(MLDSA65)
	if err != nil {
		t.Fatalf("GenerateMLDSAKeyPair: %v", err)
	}
	defer kp.Destroy()

	message := []byte("repeatable")
	a, err := kp.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	b, err := kp.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if !bytes.Equal(a.Signature, b.Signature) {
		t.Error("two signatures over the same message differ")
	}
}

func TestMLDSAWrongMessage(t *testing.T) {
	kp, err := GenerateMLDSAKeyPair(MLDSA44)
	if err != nil {
		t.Fatalf("GenerateMLDSAKeyPair: %v", err)
	}
	defer kp.Destroy()

	sig, err := kp.Sign([]byte("signed message"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	ok, err := kp.Verify([]byte("different message"), sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Error("signature verified against a different message")
	}
}

func TestMLDSACaseSensitiveMessage(t *testing.T) {
	kp, err := GenerateMLDSAKeyPair(MLDSA65)
	if err != nil {
		t.Fatalf("GenerateMLDSAKeyPair: %v", err)
	}
	defer kp.Destroy()

	sig, err := kp.Sign([]byte("hello quantum world"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	ok, err := kp.Verify([]byte("hello quantum world"), sig)
	if err != nil || !ok {
		t.Fatalf("Verify(original) = (%v, %v), want (true, nil)", ok, err)
	}

	ok, err = kp.Verify([]byte("hello quantum World"), sig)
	if err != nil {
		t.Fatalf("Verify(case-flipped): %v", err)
	}
	if ok {
		t.Error("signature verified against a case-flipped message")
	}
}

func TestMLDSATamperedSignature(t *testing.T) {
	kp, err := GenerateMLDSAKeyPair(MLDSA65)
	if err != nil {
		t.Fatalf("GenerateMLDSAKeyPair: %v", err)
	}
	defer kp.Destroy()

	message := []byte("payload")
	sig, err := kp.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	tampered := &MLDSASignature{Variant: sig.Variant, Signature: make([]byte, len(sig.Signature))}
	copy(tampered.Signature, sig.Signature)
	tampered.Signature[10] ^= 0x01

	// Right length, wrong bits: a clean rejection, not an error.
	ok, err := kp.Verify(message, tampered)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Error("tampered signature verified")
	}
}

func TestMLDSAVerifyStructuralErrors(t *testing.T) {
	kp, err := GenerateMLDSAKeyPair(MLDSA65)
	if err != nil {
		t.Fatalf("GenerateMLDSAKeyPair: %v", err)
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
			wrong := &MLDSASignature{Variant: MLDSA44, Signature: sig.Signature}
			return kp.Verify(message, wrong)
		}},
		{"truncated signature", func() (bool, error) {
			short := &MLDSASignature{Variant: MLDSA65, Signature: sig.Signature[:100]}
			return kp.Verify(message, short)
		}},
		{"wrong public key length", func() (bool, error) {
			return VerifyMLDSA(MLDSA65, make([]byte, 10), message, sig)
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

func TestMLDSAKeyPairFromSeed(t *testing.T) {
	kp, err := GenerateMLDSAKeyPair(MLDSA87)
	if err != nil {
		t.Fatalf("GenerateMLDSAKeyPair: %v", err)
	}
	defer kp.Destroy()

	restored, err := MLDSAKeyPairFromSeed(MLDSA87, kp.SecretKey.Bytes())
	if err != nil {
		t.Fatalf("MLDSAKeyPairFromSeed: %v", err)
	}
	defer restored.Destroy()

	if !bytes.Equal(restored.PublicKey, kp.PublicKey) {
		t.Error("restored key pair has a different public key")
	}

	// Signatures from the restored pair verify against the original.
	sig, err := restored.Sign([]byte("seed restore"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	ok, err := kp.Verify([]byte("seed restore"), sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("restored pair's signature rejected by original")
	}

	_, err = MLDSAKeyPairFromSeed(MLDSA87, make([]byte, 16))
	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("short seed: err = %v, want ErrInvalidKey", err)
	}
}

func TestMLDSASignAfterDestroy(t *testing.T) {
	kp, err := GenerateMLDSAKeyPair(MLDSA44)
	if err != nil {
		t.Fatalf("GenerateMLDSAKeyPair: %v", err)
	}
	kp.Destroy()

	_, err = kp.Sign([]byte("too late"))
	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Sign after destroy = %v, want ErrInvalidKey", err)
	}
}

func TestMLDSASignTruncatedSeed(t *testing.T) {
	kp := &MLDSAKeyPair{
		Variant:   MLDSA65,
		SecretKey: NewSecret(make([]byte, 16)),
	}

	_, err := kp.Sign([]byte("short seed"))
	if !errors.Is(err, ErrSigning) {
		t.Errorf("Sign with truncated seed = %v, want ErrSigning", err)
	}
}

func TestMLDSAKeyPairJSONExcludesSecret(t *testing.T) {
	kp, err := GenerateMLDSAKeyPair(MLDSA44)
	if err != nil {
		t.Fatalf("GenerateMLDSAKeyPair: %v", err)
	}
	defer kp.Destroy()

	data, err := json.Marshal(kp)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	var decoded MLDSAKeyPair
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if !decoded.SecretKey.IsDestroyed() {
		t.Error("deserialized key pair has secret material")
	}
	if !bytes.Equal(decoded.PublicKey, kp.PublicKey) {
		t.Error("public key did not survive serialization")
	}

	_, err = decoded.Sign([]byte("no seed"))
	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Sign = %v, want ErrInvalidKey", err)
	}
}
