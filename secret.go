package pqcrypto

import "crypto/subtle"

// Secret holds sensitive bytes with explicit lifecycle control. Destroy
// wipes the backing buffer; every accessor on a destroyed Secret behaves as
// if the Secret were empty. Secrets never serialize their contents: a
// Secret JSON-encodes as null.
//
// A Secret is not safe for concurrent use with Destroy.
type Secret struct {
	buf []byte
}

// NewSecret wraps b in a Secret, taking ownership of the slice. Callers
// must not retain or reuse b afterwards.
func NewSecret(b []byte) *Secret {
	return &Secret{buf: b}
}

// newSecretCopy wraps a copy of b, leaving the caller's slice untouched.
func newSecretCopy(b []byte) *Secret {
	c := make([]byte, len(b))
	copy(c, b)
	return &Secret{buf: c}
}

// Bytes returns the secret contents. The slice aliases the internal buffer;
// it is wiped when Destroy is called. A destroyed or nil Secret returns nil.
func (s *Secret) Bytes() []byte {
	if s == nil {
		return nil
	}
	return s.buf
}

// Len returns the secret length in bytes, 0 once destroyed.
func (s *Secret) Len() int {
	if s == nil {
		return 0
	}
	return len(s.buf)
}

// IsDestroyed reports whether the secret has been wiped or never held
// material.
func (s *Secret) IsDestroyed() bool {
	return s == nil || s.buf == nil
}

// Clone returns an independent copy of the secret. Destroying the clone
// does not affect the original. A destroyed Secret clones to a destroyed
// Secret.
func (s *Secret) Clone() *Secret {
	if s == nil || s.buf == nil {
		return &Secret{}
	}
	return newSecretCopy(s.buf)
}

// Equal compares two secrets in constant time with respect to the
// contents. Two destroyed secrets are equal; a destroyed and a live secret
// are not.
func (s *Secret) Equal(other *Secret) bool {
	sb := s.Bytes()
	ob := other.Bytes()
	if len(sb) != len(ob) {
		return false
	}
	return subtle.ConstantTimeCompare(sb, ob) == 1
}

// Destroy wipes the secret contents. It is idempotent and safe on nil.
func (s *Secret) Destroy() {
	if s == nil || s.buf == nil {
		return
	}
	wipe(s.buf)
	s.buf = nil
}

// MarshalJSON always encodes null. Secret material never crosses the
// serialization boundary.
func (s *Secret) MarshalJSON() ([]byte, error) {
	return []byte("null"), nil
}

// UnmarshalJSON accepts any value and leaves the Secret empty. Secrets are
// only populated by key generation or explicit import.
func (s *Secret) UnmarshalJSON([]byte) error {
	return nil
}

// wipe overwrites b with zeros.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
