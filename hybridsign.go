package pqcrypto

import (
	"fmt"

	"github.com/cloudflare/circl/sign/ed25519"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"

	"github.com/quantun/pqcrypto-go/internal/rand"
)

// HybridSignKeyPair is an Ed25519+ML-DSA-65 signing key pair. Both secrets
// are excluded from serialization.
type HybridSignKeyPair struct {
	Variant         HybridVariant `json:"variant"`
	ClassicalPublic []byte        `json:"classical_public"`
	ClassicalSecret *Secret       `json:"-"`
	PostQuantum     *MLDSAKeyPair `json:"post_quantum"`
}

// HybridSignature is the fixed-width concatenation of an Ed25519 signature
// and an ML-DSA-65 signature over the same message. Verification requires
// both components to verify; neither alone is sufficient.
type HybridSignature struct {
	Variant   HybridVariant `json:"variant"`
	Signature []byte        `json:"signature"`
}

// HybridSignatureSize is the combined signature length for
// Ed25519-ML-DSA-65.
const HybridSignatureSize = ed25519.SignatureSize + mldsa65.SignatureSize

// GenerateHybridSignKeyPair creates a fresh Ed25519+ML-DSA-65 key pair.
func GenerateHybridSignKeyPair(v HybridVariant) (*HybridSignKeyPair, error) {
	if v != HybridEd25519MLDSA65 {
		return nil, unsupportedAlgorithm(fmt.Sprintf("%s is not a hybrid signature scheme", v))
	}

	seed := rand.Bytes(ed25519.SeedSize)
	defer wipe(seed)
	priv := ed25519.NewKeyFromSeed(seed)

	pqc, err := GenerateMLDSAKeyPair(MLDSA65)
	if err != nil {
		wipe(priv)
		return nil, err
	}

	pub := make([]byte, ed25519.PublicKeySize)
	copy(pub, priv[ed25519.SeedSize:])

	return &HybridSignKeyPair{
		Variant:         v,
		ClassicalPublic: pub,
		ClassicalSecret: NewSecret(priv),
		PostQuantum:     pqc,
	}, nil
}

// Sign produces a hybrid signature over message: the Ed25519 component
// followed by the ML-DSA component.
func (kp *HybridSignKeyPair) Sign(message []byte) (*HybridSignature, error) {
	if kp.ClassicalSecret.IsDestroyed() {
		return nil, newError(KindInvalidKey, "classical secret has been destroyed")
	}
	if kp.ClassicalSecret.Len() != ed25519.PrivateKeySize {
		return nil, newError(KindInvalidKey,
			fmt.Sprintf("Ed25519 secret key must be %d bytes, got %d",
				ed25519.PrivateKeySize, kp.ClassicalSecret.Len()))
	}
	if kp.PostQuantum == nil {
		return nil, newError(KindInvalidKey, "post-quantum component is absent")
	}

	classical := ed25519.Sign(ed25519.PrivateKey(kp.ClassicalSecret.Bytes()), message)

	pqc, err := kp.PostQuantum.Sign(message)
	if err != nil {
		return nil, err
	}

	sig := make([]byte, 0, HybridSignatureSize)
	sig = append(sig, classical...)
	sig = append(sig, pqc.Signature...)

	return &HybridSignature{Variant: kp.Variant, Signature: sig}, nil
}

// VerifyHybrid checks sig over message against both public keys.
// Structural problems are reported as errors; a well-formed signature
// where either component does not match reports (false, nil).
func VerifyHybrid(v HybridVariant, classicalPublic, pqcPublic, message []byte, sig *HybridSignature) (bool, error) {
	if v != HybridEd25519MLDSA65 {
		return false, unsupportedAlgorithm(fmt.Sprintf("%s is not a hybrid signature scheme", v))
	}
	if sig == nil {
		return false, newError(KindVerification, "nil signature")
	}
	if sig.Variant != v {
		return false, newError(KindVerification,
			fmt.Sprintf("signature variant %s does not match %s", sig.Variant, v))
	}
	if len(classicalPublic) != ed25519.PublicKeySize {
		return false, newError(KindVerification,
			fmt.Sprintf("Ed25519 public key must be %d bytes, got %d",
				ed25519.PublicKeySize, len(classicalPublic)))
	}
	if len(sig.Signature) != HybridSignatureSize {
		return false, newError(KindVerification,
			fmt.Sprintf("hybrid signature must be %d bytes, got %d",
				HybridSignatureSize, len(sig.Signature)))
	}

	classical := sig.Signature[:ed25519.SignatureSize]
	if !ed25519.Verify(ed25519.PublicKey(classicalPublic), message, classical) {
		return false, nil
	}

	pqcSig := &MLDSASignature{
		Variant:   MLDSA65,
		Signature: sig.Signature[ed25519.SignatureSize:],
	}
	return VerifyMLDSA(MLDSA65, pqcPublic, message, pqcSig)
}

// Verify checks sig over message against this key pair's public keys.
func (kp *HybridSignKeyPair) Verify(message []byte, sig *HybridSignature) (bool, error) {
	if kp.PostQuantum == nil {
		return false, newError(KindInvalidKey, "post-quantum component is absent")
	}
	return VerifyHybrid(kp.Variant, kp.ClassicalPublic, kp.PostQuantum.PublicKey, message, sig)
}

// Destroy wipes both secret components. Public keys are unaffected.
func (kp *HybridSignKeyPair) Destroy() {
	kp.ClassicalSecret.Destroy()
	if kp.PostQuantum != nil {
		kp.PostQuantum.Destroy()
	}
}
