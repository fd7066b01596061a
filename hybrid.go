package pqcrypto

import (
	"crypto/sha256"
	"fmt"

	"github.com/cloudflare/circl/dh/x25519"

	"github.com/quantun/pqcrypto-go/internal/rand"
)

// hybridKDFTag is the domain separator of the hybrid combiner. Changing it
// breaks interoperability with every deployed peer.
const hybridKDFTag = "quantun-hybrid-kem-v1"

// HybridSharedSecretSize is the combined shared-secret length for every
// hybrid KEM variant.
const HybridSharedSecretSize = sha256.Size

// HybridKeyPair is an X25519+ML-KEM key pair. Both secrets are excluded
// from serialization. The classical secret can be dropped independently
// with ClearClassicalSecret, after which decapsulation fails.
type HybridKeyPair struct {
	Variant         HybridVariant `json:"variant"`
	ClassicalPublic []byte        `json:"classical_public"`
	ClassicalSecret *Secret       `json:"-"`
	PostQuantum     *KEMKeyPair   `json:"post_quantum"`
}

// HybridEncapsulated carries one hybrid encapsulation: the sender's
// ephemeral X25519 public key, the ML-KEM ciphertext, and the combined
// shared secret. The secret is excluded from serialization.
type HybridEncapsulated struct {
	Variant         HybridVariant `json:"variant"`
	ClassicalPublic []byte        `json:"classical_public"`
	Ciphertext      []byte        `json:"ciphertext"`
	SharedSecret    *Secret       `json:"-"`
}

// GenerateHybridKeyPair creates a fresh X25519+ML-KEM-768 key pair.
func GenerateHybridKeyPair(v HybridVariant) (*HybridKeyPair, error) {
	if v != HybridX25519MLKEM768 {
		return nil, unsupportedAlgorithm(fmt.Sprintf("%s is not a hybrid KEM", v))
	}

	var priv, pub x25519.Key
	rand.Read(priv[:])
	x25519.KeyGen(&pub, &priv)

	pqc, err := GenerateKEMKeyPair(MLKEM768)
	if err != nil {
		wipe(priv[:])
		return nil, err
	}

	classicalPub := make([]byte, x25519.Size)
	copy(classicalPub, pub[:])
	classicalSec := make([]byte, x25519.Size)
	copy(classicalSec, priv[:])
	wipe(priv[:])

	return &HybridKeyPair{
		Variant:         v,
		ClassicalPublic: classicalPub,
		ClassicalSecret: NewSecret(classicalSec),
		PostQuantum:     pqc,
	}, nil
}

// HybridEncapsulate derives a combined shared secret against a recipient's
// classical and post-quantum public keys. A fresh ephemeral X25519 key is
// generated per call and its secret is wiped before returning.
func HybridEncapsulate(v HybridVariant, classicalPublic, pqcPublic []byte) (*HybridEncapsulated, error) {
	if v != HybridX25519MLKEM768 {
		return nil, unsupportedAlgorithm(fmt.Sprintf("%s is not a hybrid KEM", v))
	}
	if len(classicalPublic) != x25519.Size {
		return nil, newError(KindEncapsulation,
			fmt.Sprintf("X25519 public key must be %d bytes, got %d", x25519.Size, len(classicalPublic)))
	}

	var ephPriv, ephPub, peerPub, classicalSS x25519.Key
	rand.Read(ephPriv[:])
	defer wipe(ephPriv[:])
	x25519.KeyGen(&ephPub, &ephPriv)
	copy(peerPub[:], classicalPublic)
	x25519.Shared(&classicalSS, &ephPriv, &peerPub)
	defer wipe(classicalSS[:])

	pqc, err := Encapsulate(MLKEM768, pqcPublic)
	if err != nil {
		return nil, err
	}
	defer pqc.Destroy()

	combined := combineSecrets(classicalSS[:], pqc.SharedSecret.Bytes())

	ephemeral := make([]byte, x25519.Size)
	copy(ephemeral, ephPub[:])

	return &HybridEncapsulated{
		Variant:         v,
		ClassicalPublic: ephemeral,
		Ciphertext:      pqc.Ciphertext,
		SharedSecret:    NewSecret(combined),
	}, nil
}

// Encapsulate derives a combined shared secret against this key pair's
// public keys, for peers addressing the holder.
func (kp *HybridKeyPair) Encapsulate() (*HybridEncapsulated, error) {
	if kp.PostQuantum == nil {
		return nil, newError(KindInvalidKey, "post-quantum component is absent")
	}
	return HybridEncapsulate(kp.Variant, kp.ClassicalPublic, kp.PostQuantum.PublicKey)
}

// Decapsulate recovers the combined shared secret from enc. It fails with
// an invalid-key error if the classical secret has been cleared or the
// post-quantum secret destroyed, before touching any ciphertext.
func (kp *HybridKeyPair) Decapsulate(enc *HybridEncapsulated) (*Secret, error) {
	if kp.ClassicalSecret.IsDestroyed() {
		return nil, newError(KindInvalidKey, "classical secret has been cleared")
	}
	if kp.ClassicalSecret.Len() != x25519.Size {
		return nil, newError(KindInvalidKey,
			fmt.Sprintf("X25519 secret key must be %d bytes, got %d", x25519.Size, kp.ClassicalSecret.Len()))
	}
	if kp.PostQuantum == nil || kp.PostQuantum.SecretKey.IsDestroyed() {
		return nil, newError(KindInvalidKey, "post-quantum secret has been destroyed")
	}
	if enc == nil {
		return nil, newError(KindDecapsulation, "nil encapsulation")
	}
	if enc.Variant != kp.Variant {
		return nil, newError(KindDecapsulation,
			fmt.Sprintf("encapsulation variant %s does not match %s", enc.Variant, kp.Variant))
	}
	if len(enc.ClassicalPublic) != x25519.Size {
		return nil, newError(KindDecapsulation,
			fmt.Sprintf("X25519 public key must be %d bytes, got %d", x25519.Size, len(enc.ClassicalPublic)))
	}

	pqcSS, err := kp.PostQuantum.Decapsulate(enc.Ciphertext)
	if err != nil {
		return nil, err
	}
	defer pqcSS.Destroy()

	var priv, peerPub, classicalSS x25519.Key
	copy(priv[:], kp.ClassicalSecret.Bytes())
	defer wipe(priv[:])
	copy(peerPub[:], enc.ClassicalPublic)
	x25519.Shared(&classicalSS, &priv, &peerPub)
	defer wipe(classicalSS[:])

	return NewSecret(combineSecrets(classicalSS[:], pqcSS.Bytes())), nil
}

// ClearClassicalSecret wipes only the classical secret, modelling offload
// of the classical component to external hardware. Subsequent
// decapsulation fails until the component is restored.
func (kp *HybridKeyPair) ClearClassicalSecret() {
	kp.ClassicalSecret.Destroy()
}

// Destroy wipes both secret components. Public keys are unaffected.
func (kp *HybridKeyPair) Destroy() {
	kp.ClassicalSecret.Destroy()
	if kp.PostQuantum != nil {
		kp.PostQuantum.Destroy()
	}
}

// Destroy wipes the combined shared secret.
func (he *HybridEncapsulated) Destroy() {
	he.SharedSecret.Destroy()
}

// combineSecrets binds both component secrets into the fixed-width hybrid
// shared secret. The tag, then the classical secret, then the post-quantum
// secret; the order is part of the wire contract.
func combineSecrets(classical, pqc []byte) []byte {
	h := sha256.New()
	h.Write([]byte(hybridKDFTag))
	h.Write(classical)
	h.Write(pqc)
	return h.Sum(nil)
}
