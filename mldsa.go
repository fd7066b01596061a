package pqcrypto

import (
	"fmt"
	"io"

	"github.com/cloudflare/circl/sign/mldsa/mldsa44"
	"github.com/cloudflare/circl/sign/mldsa/mldsa65"
	"github.com/cloudflare/circl/sign/mldsa/mldsa87"

	"github.com/quantun/pqcrypto-go/internal/rand"
)

// mldsaSeedSize is the seed length shared by every ML-DSA parameter set.
const mldsaSeedSize = 32

// MLDSAKeyPair is an ML-DSA signing key pair. The secret holds the 32-byte
// generation seed rather than the expanded key; the expanded form is
// recomputed on each signing call and wiped afterwards.
type MLDSAKeyPair struct {
	Variant   MLDSAVariant `json:"variant"`
	PublicKey []byte       `json:"public_key"`
	SecretKey *Secret      `json:"-"`
}

// MLDSASignature is a detached ML-DSA signature together with the variant that
// produced it.
type MLDSASignature struct {
	Variant   MLDSAVariant `json:"variant"`
	Signature []byte       `json:"signature"`
}

// GenerateMLDSAKeyPair creates a fresh ML-DSA key pair. The key is derived
// from a seed drawn from the operating system entropy source.
func GenerateMLDSAKeyPair(v MLDSAVariant) (*MLDSAKeyPair, error) {
	seed := rand.Bytes(mldsaSeedSize)

	pub, err := mldsaPublicFromSeed(v, seed)
	if err != nil {
		wipe(seed)
		return nil, err
	}

	return &MLDSAKeyPair{
		Variant:   v,
		PublicKey: pub,
		SecretKey: NewSecret(seed),
	}, nil
}

// GenerateMLDSAKeyPairWithRand exists for callers porting from APIs that
// inject a randomness source. The supplied reader is ignored: the seed
// always comes from the operating system entropy source.
func GenerateMLDSAKeyPairWithRand(v MLDSAVariant, _ io.Reader) (*MLDSAKeyPair, error) {
	return GenerateMLDSAKeyPair(v)
}

// MLDSAKeyPairFromSeed rebuilds a key pair from a 32-byte seed, for import
// of externally stored keys. The seed is copied.
func MLDSAKeyPairFromSeed(v MLDSAVariant, seed []byte) (*MLDSAKeyPair, error) {
	if len(seed) != mldsaSeedSize {
		return nil, newError(KindInvalidKey,
			fmt.Sprintf("%s seed must be %d bytes, got %d", v, mldsaSeedSize, len(seed)))
	}

	pub, err := mldsaPublicFromSeed(v, seed)
	if err != nil {
		return nil, err
	}

	return &MLDSAKeyPair{
		Variant:   v,
		PublicKey: pub,
		SecretKey: newSecretCopy(seed),
	}, nil
}

func mldsaPublicFromSeed(v MLDSAVariant, seed []byte) ([]byte, error) {
	var s [mldsaSeedSize]byte
	copy(s[:], seed)
	defer wipe(s[:])

	var pub []byte
	switch v {
	case MLDSA44:
		pk, _ := mldsa44.NewKeyFromSeed(&s)
		pub, _ = pk.MarshalBinary()
	case MLDSA65:
		pk, _ := mldsa65.NewKeyFromSeed(&s)
		pub, _ = pk.MarshalBinary()
	case MLDSA87:
		pk, _ := mldsa87.NewKeyFromSeed(&s)
		pub, _ = pk.MarshalBinary()
	default:
		return nil, unsupportedAlgorithm(fmt.Sprintf("MLDSAVariant(%d)", int(v)))
	}
	return pub, nil
}

// Sign produces a deterministic signature over message. The expanded
// private key lives only for the duration of the call.
func (kp *MLDSAKeyPair) Sign(message []byte) (*MLDSASignature, error) {
	switch kp.Variant {
	case MLDSA44, MLDSA65, MLDSA87:
	default:
		return nil, unsupportedAlgorithm(fmt.Sprintf("MLDSAVariant(%d)", int(kp.Variant)))
	}
	if kp.SecretKey.IsDestroyed() {
		return nil, newError(KindInvalidKey, "secret key has been destroyed")
	}
	if kp.SecretKey.Len() != mldsaSeedSize {
		return nil, newError(KindSigning,
			fmt.Sprintf("%s seed must be %d bytes, got %d", kp.Variant, mldsaSeedSize, kp.SecretKey.Len()))
	}

	var s [mldsaSeedSize]byte
	copy(s[:], kp.SecretKey.Bytes())
	defer wipe(s[:])

	sig := make([]byte, kp.Variant.SignatureSize())
	var err error

	switch kp.Variant {
	case MLDSA44:
		_, sk := mldsa44.NewKeyFromSeed(&s)
		err = mldsa44.SignTo(sk, message, nil, false, sig)
	case MLDSA65:
		_, sk := mldsa65.NewKeyFromSeed(&s)
		err = mldsa65.SignTo(sk, message, nil, false, sig)
	case MLDSA87:
		_, sk := mldsa87.NewKeyFromSeed(&s)
		err = mldsa87.SignTo(sk, message, nil, false, sig)
	default:
		return nil, unsupportedAlgorithm(fmt.Sprintf("MLDSAVariant(%d)", int(kp.Variant)))
	}
	if err != nil {
		return nil, wrapError(KindSigning, kp.Variant.String(), err)
	}

	return &MLDSASignature{Variant: kp.Variant, Signature: sig}, nil
}

// VerifyMLDSA checks sig over message against publicKey. Structural
// problems (wrong lengths, undecodable keys, variant mismatch) are
// reported as errors; a well-formed signature that does not match reports
// (false, nil).
func VerifyMLDSA(v MLDSAVariant, publicKey, message []byte, sig *MLDSASignature) (bool, error) {
	switch v {
	case MLDSA44, MLDSA65, MLDSA87:
	default:
		return false, unsupportedAlgorithm(fmt.Sprintf("MLDSAVariant(%d)", int(v)))
	}
	if sig == nil {
		return false, newError(KindVerification, "nil signature")
	}
	if sig.Variant != v {
		return false, newError(KindVerification,
			fmt.Sprintf("signature variant %s does not match %s", sig.Variant, v))
	}
	pkSize, _ := v.KeySizes()
	if len(publicKey) != pkSize {
		return false, newError(KindVerification,
			fmt.Sprintf("%s public key must be %d bytes, got %d", v, pkSize, len(publicKey)))
	}
	if len(sig.Signature) != v.SignatureSize() {
		return false, newError(KindVerification,
			fmt.Sprintf("%s signature must be %d bytes, got %d", v, v.SignatureSize(), len(sig.Signature)))
	}

	switch v {
	case MLDSA44:
		var pk mldsa44.PublicKey
		if err := pk.UnmarshalBinary(publicKey); err != nil {
			return false, wrapError(KindVerification, "malformed public key", err)
		}
		return mldsa44.Verify(&pk, message, nil, sig.Signature), nil
	case MLDSA65:
		var pk mldsa65.PublicKey
		if err := pk.UnmarshalBinary(publicKey); err != nil {
			return false, wrapError(KindVerification, "malformed public key", err)
		}
		return mldsa65.Verify(&pk, message, nil, sig.Signature), nil
	case MLDSA87:
		var pk mldsa87.PublicKey
		if err := pk.UnmarshalBinary(publicKey); err != nil {
			return false, wrapError(KindVerification, "malformed public key", err)
		}
		return mldsa87.Verify(&pk, message, nil, sig.Signature), nil
	default:
		return false, unsupportedAlgorithm(fmt.Sprintf("MLDSAVariant(%d)", int(v)))
	}
}

// Verify checks sig over message against this key pair's public key.
func (kp *MLDSAKeyPair) Verify(message []byte, sig *MLDSASignature) (bool, error) {
	return VerifyMLDSA(kp.Variant, kp.PublicKey, message, sig)
}

// Destroy wipes the secret seed. The public key is unaffected.
func (kp *MLDSAKeyPair) Destroy() {
	kp.SecretKey.Destroy()
}
