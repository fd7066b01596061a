package pqcrypto

import (
	"fmt"
	"io"

	"github.com/cloudflare/circl/kem/mlkem/mlkem1024"
	"github.com/cloudflare/circl/kem/mlkem/mlkem512"
	"github.com/cloudflare/circl/kem/mlkem/mlkem768"

	"github.com/quantun/pqcrypto-go/internal/rand"
)

// KEMKeyPair is an ML-KEM key pair. The secret key is held in a Secret and
// is excluded from serialization.
type KEMKeyPair struct {
	Variant   MLKEMVariant `json:"variant"`
	PublicKey []byte       `json:"public_key"`
	SecretKey *Secret      `json:"-"`
}

// EncapsulatedKey is the result of Encapsulate: the ciphertext to send to
// the key-pair holder and the locally derived shared secret. The secret is
// excluded from serialization.
type EncapsulatedKey struct {
	Variant      MLKEMVariant `json:"variant"`
	Ciphertext   []byte       `json:"ciphertext"`
	SharedSecret *Secret      `json:"-"`
}

// GenerateKEMKeyPair creates a fresh ML-KEM key pair using the operating
// system entropy source.
func GenerateKEMKeyPair(v MLKEMVariant) (*KEMKeyPair, error) {
	return generateKEMKeyPair(v, rand.Reader)
}

// GenerateKEMKeyPairWithRand exists for callers porting from APIs that
// inject a randomness source. The supplied reader is ignored: key
// generation always draws from the operating system entropy source.
func GenerateKEMKeyPairWithRand(v MLKEMVariant, _ io.Reader) (*KEMKeyPair, error) {
	return generateKEMKeyPair(v, rand.Reader)
}

func generateKEMKeyPair(v MLKEMVariant, r io.Reader) (*KEMKeyPair, error) {
	var pub, sec []byte
	var err error

	switch v {
	case MLKEM512:
		var pk *mlkem512.PublicKey
		var sk *mlkem512.PrivateKey
		pk, sk, err = mlkem512.GenerateKeyPair(r)
		if err == nil {
			pub, _ = pk.MarshalBinary()
			sec, _ = sk.MarshalBinary()
		}
	case MLKEM768:
		var pk *mlkem768.PublicKey
		var sk *mlkem768.PrivateKey
		pk, sk, err = mlkem768.GenerateKeyPair(r)
		if err == nil {
			pub, _ = pk.MarshalBinary()
			sec, _ = sk.MarshalBinary()
		}
	case MLKEM1024:
		var pk *mlkem1024.PublicKey
		var sk *mlkem1024.PrivateKey
		pk, sk, err = mlkem1024.GenerateKeyPair(r)
		if err == nil {
			pub, _ = pk.MarshalBinary()
			sec, _ = sk.MarshalBinary()
		}
	default:
		return nil, unsupportedAlgorithm(fmt.Sprintf("MLKEMVariant(%d)", int(v)))
	}
	if err != nil {
		return nil, wrapError(KindKeyGeneration, v.String(), err)
	}

	pkSize, skSize := v.KeySizes()
	if len(pub) != pkSize || len(sec) != skSize {
		wipe(sec)
		return nil, newError(KindKeyGeneration,
			fmt.Sprintf("%s produced malformed key material", v))
	}

	return &KEMKeyPair{
		Variant:   v,
		PublicKey: pub,
		SecretKey: NewSecret(sec),
	}, nil
}

// Encapsulate derives a fresh shared secret against publicKey and returns
// it with the ciphertext that transports it.
func Encapsulate(v MLKEMVariant, publicKey []byte) (*EncapsulatedKey, error) {
	switch v {
	case MLKEM512, MLKEM768, MLKEM1024:
	default:
		return nil, unsupportedAlgorithm(fmt.Sprintf("MLKEMVariant(%d)", int(v)))
	}

	pkSize, _ := v.KeySizes()
	if len(publicKey) != pkSize {
		return nil, newError(KindEncapsulation,
			fmt.Sprintf("%s public key must be %d bytes, got %d", v, pkSize, len(publicKey)))
	}

	ct := make([]byte, v.CiphertextSize())
	ss := make([]byte, v.SharedKeySize())

	switch v {
	case MLKEM512:
		seed := rand.Bytes(mlkem512.EncapsulationSeedSize)
		defer wipe(seed)
		var pk mlkem512.PublicKey
		if err := pk.Unpack(publicKey); err != nil {
			return nil, wrapError(KindEncapsulation, "malformed public key", err)
		}
		pk.EncapsulateTo(ct, ss, seed)
	case MLKEM768:
		seed := rand.Bytes(mlkem768.EncapsulationSeedSize)
		defer wipe(seed)
		var pk mlkem768.PublicKey
		if err := pk.Unpack(publicKey); err != nil {
			return nil, wrapError(KindEncapsulation, "malformed public key", err)
		}
		pk.EncapsulateTo(ct, ss, seed)
	case MLKEM1024:
		seed := rand.Bytes(mlkem1024.EncapsulationSeedSize)
		defer wipe(seed)
		var pk mlkem1024.PublicKey
		if err := pk.Unpack(publicKey); err != nil {
			return nil, wrapError(KindEncapsulation, "malformed public key", err)
		}
		pk.EncapsulateTo(ct, ss, seed)
	default:
		return nil, unsupportedAlgorithm(fmt.Sprintf("MLKEMVariant(%d)", int(v)))
	}

	return &EncapsulatedKey{
		Variant:      v,
		Ciphertext:   ct,
		SharedSecret: NewSecret(ss),
	}, nil
}

// Decapsulate recovers the shared secret transported by ciphertext.
//
// ML-KEM uses implicit rejection: a well-formed ciphertext that was never
// produced against this key decapsulates without error to a secret the
// sender does not know. Only structural failures report an error.
func (kp *KEMKeyPair) Decapsulate(ciphertext []byte) (*Secret, error) {
	switch kp.Variant {
	case MLKEM512, MLKEM768, MLKEM1024:
	default:
		return nil, unsupportedAlgorithm(fmt.Sprintf("MLKEMVariant(%d)", int(kp.Variant)))
	}
	if kp.SecretKey.IsDestroyed() {
		return nil, newError(KindInvalidKey, "secret key has been destroyed")
	}
	_, skSize := kp.Variant.KeySizes()
	if kp.SecretKey.Len() != skSize {
		return nil, newError(KindDecapsulation,
			fmt.Sprintf("%s secret key must be %d bytes, got %d", kp.Variant, skSize, kp.SecretKey.Len()))
	}
	if len(ciphertext) != kp.Variant.CiphertextSize() {
		return nil, newError(KindDecapsulation,
			fmt.Sprintf("%s ciphertext must be %d bytes, got %d",
				kp.Variant, kp.Variant.CiphertextSize(), len(ciphertext)))
	}

	ss := make([]byte, kp.Variant.SharedKeySize())

	switch kp.Variant {
	case MLKEM512:
		var sk mlkem512.PrivateKey
		if err := sk.Unpack(kp.SecretKey.Bytes()); err != nil {
			return nil, wrapError(KindDecapsulation, "malformed secret key", err)
		}
		sk.DecapsulateTo(ss, ciphertext)
	case MLKEM768:
		var sk mlkem768.PrivateKey
		if err := sk.Unpack(kp.SecretKey.Bytes()); err != nil {
			return nil, wrapError(KindDecapsulation, "malformed secret key", err)
		}
		sk.DecapsulateTo(ss, ciphertext)
	case MLKEM1024:
		var sk mlkem1024.PrivateKey
		if err := sk.Unpack(kp.SecretKey.Bytes()); err != nil {
			return nil, wrapError(KindDecapsulation, "malformed secret key", err)
		}
		sk.DecapsulateTo(ss, ciphertext)
	default:
		return nil, unsupportedAlgorithm(fmt.Sprintf("MLKEMVariant(%d)", int(kp.Variant)))
	}

	return NewSecret(ss), nil
}

// Destroy wipes the secret key. The public key is unaffected.
func (kp *KEMKeyPair) Destroy() {
	kp.SecretKey.Destroy()
}

// Destroy wipes the shared secret. The ciphertext is unaffected.
func (ek *EncapsulatedKey) Destroy() {
	ek.SharedSecret.Destroy()
}
