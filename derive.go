package pqcrypto

import (
	"crypto/sha512"
	"io"

	"golang.org/x/crypto/hkdf"
)

// DeriveKey expands secret into length bytes of key material using
// HKDF-SHA-512. An empty salt is replaced by a zero-filled block of the
// hash size. The secret must not have been destroyed.
func DeriveKey(secret *Secret, salt, info []byte, length int) (*Secret, error) {
	if secret.IsDestroyed() {
		return nil, newError(KindInvalidKey, "secret has been destroyed")
	}
	if length <= 0 {
		return nil, newError(KindSerialization, "derived key length must be positive")
	}
	if len(salt) == 0 {
		salt = make([]byte, sha512.Size)
	}

	reader := hkdf.New(sha512.New, secret.Bytes(), salt, info)
	key := make([]byte, length)
	if _, err := io.ReadFull(reader, key); err != nil {
		return nil, wrapError(KindSerialization, "key derivation failed", err)
	}

	return NewSecret(key), nil
}

// SessionKeys is a pair of directional keys expanded from one shared
// secret.
type SessionKeys struct {
	Send    *Secret
	Receive *Secret
}

// DeriveSessionKeys expands a combined shared secret into two independent
// 32-byte directional keys. Both sides derive the same pair; the initiator
// sends with Send and the responder sends with Receive.
func DeriveSessionKeys(secret *Secret, info []byte) (*SessionKeys, error) {
	material, err := DeriveKey(secret, nil, info, 64)
	if err != nil {
		return nil, err
	}
	defer material.Destroy()

	return &SessionKeys{
		Send:    newSecretCopy(material.Bytes()[:32]),
		Receive: newSecretCopy(material.Bytes()[32:]),
	}, nil
}

// Destroy wipes both directional keys.
func (sk *SessionKeys) Destroy() {
	sk.Send.Destroy()
	sk.Receive.Destroy()
}
