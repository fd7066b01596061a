package pqcrypto

import (
	"errors"
	"fmt"
)

// Sentinel errors for errors.Is() checks
var (
	// ErrKeyGeneration is returned when key pair generation fails.
	ErrKeyGeneration = errors.New("key generation failed")

	// ErrEncapsulation is returned when KEM encapsulation fails.
	ErrEncapsulation = errors.New("encapsulation failed")

	// ErrDecapsulation is returned when KEM decapsulation fails.
	ErrDecapsulation = errors.New("decapsulation failed")

	// ErrSigning is returned when signature creation fails.
	ErrSigning = errors.New("signing failed")

	// ErrVerification is returned when a signature cannot be checked at all,
	// for example because it has the wrong length. A well-formed signature
	// that simply does not match reports (false, nil), not this error.
	ErrVerification = errors.New("verification failed")

	// ErrInvalidKey is returned when key material has the wrong length or
	// has been destroyed.
	ErrInvalidKey = errors.New("invalid key material")

	// ErrUnsupportedAlgorithm is returned for unknown algorithm names or
	// variants.
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")

	// ErrSerialization is returned when encoding or decoding key material
	// fails.
	ErrSerialization = errors.New("serialization failed")

	// ErrRandomness is returned when a randomness-dependent operation is
	// given unusable random input. Exhaustion of the OS entropy source
	// itself is not reported as an error; it panics.
	ErrRandomness = errors.New("randomness failure")
)

// Kind classifies an Error for programmatic handling.
type Kind int

const (
	KindKeyGeneration Kind = iota + 1
	KindEncapsulation
	KindDecapsulation
	KindSigning
	KindVerification
	KindInvalidKey
	KindUnsupportedAlgorithm
	KindSerialization
	KindRandomness
)

func (k Kind) String() string {
	switch k {
	case KindKeyGeneration:
		return "key generation"
	case KindEncapsulation:
		return "encapsulation"
	case KindDecapsulation:
		return "decapsulation"
	case KindSigning:
		return "signing"
	case KindVerification:
		return "verification"
	case KindInvalidKey:
		return "invalid key"
	case KindUnsupportedAlgorithm:
		return "unsupported algorithm"
	case KindSerialization:
		return "serialization"
	case KindRandomness:
		return "randomness"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// sentinel returns the sentinel error matched by errors.Is for this kind.
func (k Kind) sentinel() error {
	switch k {
	case KindKeyGeneration:
		return ErrKeyGeneration
	case KindEncapsulation:
		return ErrEncapsulation
	case KindDecapsulation:
		return ErrDecapsulation
	case KindSigning:
		return ErrSigning
	case KindVerification:
		return ErrVerification
	case KindInvalidKey:
		return ErrInvalidKey
	case KindUnsupportedAlgorithm:
		return ErrUnsupportedAlgorithm
	case KindSerialization:
		return ErrSerialization
	case KindRandomness:
		return ErrRandomness
	default:
		return nil
	}
}

// StatusCode returns the platform status string for this kind. Serialization
// and randomness failures map to INTERNAL; they never carry actionable
// detail for callers.
func (k Kind) StatusCode() string {
	switch k {
	case KindKeyGeneration:
		return "KEY_GENERATION_FAILED"
	case KindEncapsulation:
		return "ENCAPSULATION_FAILED"
	case KindDecapsulation:
		return "DECAPSULATION_FAILED"
	case KindSigning:
		return "SIGNING_FAILED"
	case KindVerification:
		return "VERIFICATION_FAILED"
	case KindInvalidKey:
		return "INVALID_KEY_MATERIAL"
	case KindUnsupportedAlgorithm:
		return "UNSUPPORTED_ALGORITHM"
	default:
		return "INTERNAL"
	}
}

// CryptoError is implemented by all library errors.
type CryptoError interface {
	error
	CryptoError() // marker method
}

// Error is the concrete error type returned by every operation. Messages
// describe the failure structurally and never include key or secret bytes.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		if e.Message != "" {
			return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
		}
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is implements errors.Is for sentinel error matching.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

// StatusCode returns the platform status string for this error.
func (e *Error) StatusCode() string {
	return e.Kind.StatusCode()
}

// CryptoError implements the CryptoError interface.
func (e *Error) CryptoError() {}

// StatusCode maps any error to a platform status string. Errors produced by
// this library map by kind; everything else maps to INTERNAL.
func StatusCode(err error) string {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.StatusCode()
	}
	return "INTERNAL"
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func wrapError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func unsupportedAlgorithm(name string) *Error {
	return &Error{Kind: KindUnsupportedAlgorithm, Message: fmt.Sprintf("unknown algorithm %q", name)}
}
