package pqcrypto

import (
	"fmt"
	"io"

	"github.com/luxfi/crypto/slhdsa"

	"github.com/quantun/pqcrypto-go/internal/rand"
)

// SLHDSAKeyPair is an SLH-DSA signing key pair. Unlike ML-DSA there is no
// compact seed form in the encoded key; the secret holds the full expanded
// private key.
type SLHDSAKeyPair struct {
	Variant   SLHDSAVariant `json:"variant"`
	PublicKey []byte        `json:"public_key"`
	SecretKey *Secret       `json:"-"`
}

// SLHDSASignature is a detached SLH-DSA signature together with the
// variant that produced it.
type SLHDSASignature struct {
	Variant   SLHDSAVariant `json:"variant"`
	Signature []byte        `json:"signature"`
}

// mode resolves the FIPS 205 parameter set for this variant.
func (v SLHDSAVariant) mode() (slhdsa.Mode, error) {
	switch v {
	case SLHDSASHA2128s:
		return slhdsa.SHA2_128s, nil
	case SLHDSASHA2128f:
		return slhdsa.SHA2_128f, nil
	case SLHDSASHA2192s:
		return slhdsa.SHA2_192s, nil
	case SLHDSASHA2192f:
		return slhdsa.SHA2_192f, nil
	case SLHDSASHA2256s:
		return slhdsa.SHA2_256s, nil
	case SLHDSASHA2256f:
		return slhdsa.SHA2_256f, nil
	default:
		return 0, unsupportedAlgorithm(fmt.Sprintf("SLHDSAVariant(%d)", int(v)))
	}
}

// GenerateSLHDSAKeyPair creates a fresh SLH-DSA key pair from the
// operating system entropy source.
func GenerateSLHDSAKeyPair(v SLHDSAVariant) (*SLHDSAKeyPair, error) {
	mode, err := v.mode()
	if err != nil {
		return nil, err
	}

	sk, err := slhdsa.GenerateKey(rand.Reader, mode)
	if err != nil {
		return nil, wrapError(KindKeyGeneration, v.String(), err)
	}

	pub := sk.PublicKey.Bytes()
	sec := sk.Bytes()
	wantPub, wantSec := v.KeySizes()
	if len(pub) != wantPub || len(sec) != wantSec {
		wipe(sec)
		return nil, newError(KindKeyGeneration,
			fmt.Sprintf("%s produced malformed key material", v))
	}

	return &SLHDSAKeyPair{
		Variant:   v,
		PublicKey: pub,
		SecretKey: NewSecret(sec),
	}, nil
}

// GenerateSLHDSAKeyPairWithRand exists for callers porting from APIs that
// inject a randomness source. The supplied reader is ignored: randomness
// always comes from the operating system entropy source.
func GenerateSLHDSAKeyPairWithRand(v SLHDSAVariant, _ io.Reader) (*SLHDSAKeyPair, error) {
	return GenerateSLHDSAKeyPair(v)
}

// SLHDSAKeyPairFromBytes rebuilds a key pair from encoded public and
// secret keys, for import of externally stored keys. Both slices are
// copied.
func SLHDSAKeyPairFromBytes(v SLHDSAVariant, publicKey, secretKey []byte) (*SLHDSAKeyPair, error) {
	mode, err := v.mode()
	if err != nil {
		return nil, err
	}
	if _, err := slhdsa.PublicKeyFromBytes(publicKey, mode); err != nil {
		return nil, wrapError(KindInvalidKey, "malformed public key", err)
	}
	if _, err := slhdsa.PrivateKeyFromBytes(mode, secretKey); err != nil {
		return nil, wrapError(KindInvalidKey, "malformed secret key", err)
	}

	pub := make([]byte, len(publicKey))
	copy(pub, publicKey)

	return &SLHDSAKeyPair{
		Variant:   v,
		PublicKey: pub,
		SecretKey: newSecretCopy(secretKey),
	}, nil
}

// Sign produces a randomized signature over message. Two calls with the
// same key and message yield different signatures.
func (kp *SLHDSAKeyPair) Sign(message []byte) (*SLHDSASignature, error) {
	if kp.SecretKey.IsDestroyed() {
		return nil, newError(KindInvalidKey, "secret key has been destroyed")
	}

	mode, err := kp.Variant.mode()
	if err != nil {
		return nil, err
	}
	_, wantSec := kp.Variant.KeySizes()
	if kp.SecretKey.Len() != wantSec {
		return nil, newError(KindSigning,
			fmt.Sprintf("%s secret key must be %d bytes, got %d",
				kp.Variant, wantSec, kp.SecretKey.Len()))
	}

	sk, err := slhdsa.PrivateKeyFromBytes(mode, kp.SecretKey.Bytes())
	if err != nil {
		return nil, wrapError(KindSigning, "malformed secret key", err)
	}

	sig, err := sk.Sign(rand.Reader, message, nil)
	if err != nil {
		return nil, wrapError(KindSigning, kp.Variant.String(), err)
	}
	if len(sig) != kp.Variant.SignatureSize() {
		return nil, newError(KindSigning,
			fmt.Sprintf("%s produced a malformed signature", kp.Variant))
	}

	return &SLHDSASignature{Variant: kp.Variant, Signature: sig}, nil
}

// VerifySLHDSA checks sig over message against publicKey. Structural
// problems (wrong lengths, undecodable keys, variant mismatch) are
// reported as errors; a well-formed signature that does not match reports
// (false, nil).
func VerifySLHDSA(v SLHDSAVariant, publicKey, message []byte, sig *SLHDSASignature) (bool, error) {
	if sig == nil {
		return false, newError(KindVerification, "nil signature")
	}
	if sig.Variant != v {
		return false, newError(KindVerification,
			fmt.Sprintf("signature variant %s does not match %s", sig.Variant, v))
	}

	mode, err := v.mode()
	if err != nil {
		return false, err
	}
	wantPub, _ := v.KeySizes()
	if len(publicKey) != wantPub {
		return false, newError(KindVerification,
			fmt.Sprintf("%s public key must be %d bytes, got %d", v, wantPub, len(publicKey)))
	}
	if len(sig.Signature) != v.SignatureSize() {
		return false, newError(KindVerification,
			fmt.Sprintf("%s signature must be %d bytes, got %d", v, v.SignatureSize(), len(sig.Signature)))
	}

	pk, err := slhdsa.PublicKeyFromBytes(publicKey, mode)
	if err != nil {
		return false, wrapError(KindVerification, "malformed public key", err)
	}

	return pk.VerifySignature(message, sig.Signature), nil
}

// Verify checks sig over message against this key pair's public key.
func (kp *SLHDSAKeyPair) Verify(message []byte, sig *SLHDSASignature) (bool, error) {
	return VerifySLHDSA(kp.Variant, kp.PublicKey, message, sig)
}

// Destroy wipes the secret key. The public key is unaffected.
func (kp *SLHDSAKeyPair) Destroy() {
	kp.SecretKey.Destroy()
}
