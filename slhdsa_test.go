package pqcrypto

import (
	"bytes"
	"errors"
	"testing"
)

// The fast (f) parameter sets keep these tests tolerable; the small (s)
// sets sign orders of magnitude slower for the same code paths.

func TestSLHDSARoundTrip(t *testing.T) {
	message := []byte("hello quantum world")

	for _, v := range []SLHDSAVariant{SLHDSASHA2128f, SLHDSASHA2192f} {
		t.Run(v.String(), func(t *testing.T) {
			kp, err := GenerateSLHDSAKeyPair(v)
			if err != nil {
				t.Fatalf("GenerateSLHDSAKeyPair: %v", err)
			}
			defer kp.Destroy()

			pkSize, skSize := v.KeySizes()
			if len(kp.PublicKey) != pkSize {
				t.Errorf("public key = %d bytes, want %d", len(kp.PublicKey), pkSize)
			}
			if kp.SecretKey.Len() != skSize {
				t.Errorf("secret key = %d bytes, want %d", kp.SecretKey.Len(), skSize)
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

func TestSLHDSARandomizedSigning(t *testing.T) {
	kp, err := GenerateSLHDSAKeyPair(SLHDSASHA2128f)
	if err != nil {
		t.Fatalf("GenerateSLHDSAKeyPair: %v", err)
	}
	defer kp.Destroy()

	message := []byte("same message")
	a, err := kp.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	b, err := kp.Sign(message)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if bytes.Equal(a.Signature, b.Signature) {
		t.Error("two signatures over the same message are identical")
	}

	// Both verify despite differing.
	for _, sig := range []*SLHDSASignature{a, b} {
		ok, err := kp.Verify(message, sig)
		if err != nil {
			t.Fatalf("Verify: %v", err)
		}
		if !ok {
			t.Error("randomized signature rejected")
		}
	}
}

func TestSLHDSAWrongMessage(t *testing.T) {
	kp, err := GenerateSLHDSAKeyPair(SLHDSASHA2128f)
	if err != nil {
		t.Fatalf("GenerateSLHDSAKeyPair: %v", err)
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

func TestSLHDSAVerifyStructuralErrors(t *testing.T) {
	kp, err := GenerateSLHDSAKeyPair(SLHDSASHA2128f)
	if err != nil {
		t.Fatalf("GenerateSLHDSAKeyPair: %v", err)
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
			wrong := &SLHDSASignature{Variant: SLHDSASHA2192f, Signature: sig.Signature}
			return kp.Verify(message, wrong)
		}},
		{"truncated signature", func() (bool, error) {
			short := &SLHDSASignature{Variant: SLHDSASHA2128f, Signature: sig.Signature[:64]}
			return kp.Verify(message, short)
		}},
		{"wrong public key length", func() (bool, error) {
			return VerifySLHDSA(SLHDSASHA2128f, make([]byte, 5), message, sig)
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

func TestSLHDSAKeyPairFromBytes(t *testing.T) {
	kp, err := GenerateSLHDSAKeyPair(SLHDSASHA2128f)
	if err != nil {
		t.Fatalf("GenerateSLHDSAKeyPair: %v", err)
	}
	defer kp.Destroy()

	restored, err := SLHDSAKeyPairFromBytes(SLHDSASHA2128f, kp.PublicKey, kp.SecretKey.Bytes())
	if err != nil {
		t.Fatalf("SLHDSAKeyPairFromBytes: %v", err)
	}
	defer restored.Destroy()

	sig, err := restored.Sign([]byte("imported"))
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	ok, err := kp.Verify([]byte("imported"), sig)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("imported pair's signature rejected by original")
	}

	_, err = SLHDSAKeyPairFromBytes(SLHDSASHA2128f, make([]byte, 3), kp.SecretKey.Bytes())
	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("bad public key: err = %v, want ErrInvalidKey", err)
	}
}

func TestSLHDSASignTruncatedSecretKey(t *testing.T) {
	kp, err := GenerateSLHDSAKeyPair(SLHDSASHA2128f)
	if err != nil {
		t.Fatalf("GenerateSLHDSAKeyPair: %v", err)
	}
	defer kp.Destroy()

	bad := &SLHDSAKeyPair{
		Variant:   kp.Variant,
		PublicKey: kp.PublicKey,
		SecretKey: NewSecret(make([]byte, 16)),
	}
	_, err = bad.Sign([]byte("short secret"))
	if !errors.Is(err, ErrSigning) {
		t.Errorf("Sign with truncated secret = %v, want ErrSigning", err)
	}
}

func TestSLHDSASignAfterDestroy(t *testing.T) {
	kp, err := GenerateSLHDSAKeyPair(SLHDSASHA2128f)
	if err != nil {
		t.Fatalf("GenerateSLHDSAKeyPair: %v", err)
	}
	kp.Destroy()

	_, err = kp.Sign([]byte("too late"))
	if !errors.Is(err, ErrInvalidKey) {
		t.Errorf("Sign after destroy = %v, want ErrInvalidKey", err)
	}
}
