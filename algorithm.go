package pqcrypto

import "fmt"

// KeyType classifies what a key is for.
type KeyType int

const (
	// KeyTypeKEM marks key-encapsulation keys.
	KeyTypeKEM KeyType = iota + 1
	// KeyTypeSignature marks digital-signature keys.
	KeyTypeSignature
	// KeyTypeHybridKEM marks classical+post-quantum encapsulation keys.
	KeyTypeHybridKEM
	// KeyTypeHybridSignature marks classical+post-quantum signature keys.
	KeyTypeHybridSignature
)

func (t KeyType) String() string {
	switch t {
	case KeyTypeKEM:
		return "kem"
	case KeyTypeSignature:
		return "signature"
	case KeyTypeHybridKEM:
		return "hybrid-kem"
	case KeyTypeHybridSignature:
		return "hybrid-signature"
	default:
		return fmt.Sprintf("KeyType(%d)", int(t))
	}
}

// KeyUsage enumerates the permitted usages for a key.
type KeyUsage int

const (
	UsageEncrypt KeyUsage = iota + 1
	UsageSign
	UsageKeyAgreement
	UsageWrap
)

func (u KeyUsage) String() string {
	switch u {
	case UsageEncrypt:
		return "encrypt"
	case UsageSign:
		return "sign"
	case UsageKeyAgreement:
		return "key-agreement"
	case UsageWrap:
		return "wrap"
	default:
		return fmt.Sprintf("KeyUsage(%d)", int(u))
	}
}

// Algorithm is implemented by every variant enumeration in the catalog. It
// is the umbrella type configuration layers (tlsconfig) use to carry a
// preference list spanning algorithm families.
type Algorithm interface {
	fmt.Stringer

	// SecurityLevel returns the NIST security category, 1 through 5.
	SecurityLevel() int
	// KeyType returns the key classification implied by the algorithm.
	KeyType() KeyType
}

var (
	_ Algorithm = MLKEMVariant(0)
	_ Algorithm = MLDSAVariant(0)
	_ Algorithm = SLHDSAVariant(0)
	_ Algorithm = HybridVariant(0)
)

// MLKEMVariant identifies an ML-KEM (FIPS 203) parameter set.
type MLKEMVariant int

const (
	// MLKEM512 targets NIST security level 1.
	MLKEM512 MLKEMVariant = iota + 1
	// MLKEM768 targets NIST security level 3.
	MLKEM768
	// MLKEM1024 targets NIST security level 5.
	MLKEM1024
)

// MLKEMVariants lists every supported ML-KEM parameter set.
func MLKEMVariants() []MLKEMVariant {
	return []MLKEMVariant{MLKEM512, MLKEM768, MLKEM1024}
}

// KeySizes returns the encoded public and secret key lengths in bytes.
func (v MLKEMVariant) KeySizes() (public, secret int) {
	switch v {
	case MLKEM512:
		return 800, 1632
	case MLKEM768:
		return 1184, 2400
	case MLKEM1024:
		return 1568, 3168
	default:
		panic("pqcrypto: unknown ML-KEM variant")
	}
}

// CiphertextSize returns the encapsulation ciphertext length in bytes.
func (v MLKEMVariant) CiphertextSize() int {
	switch v {
	case MLKEM512:
		return 768
	case MLKEM768:
		return 1088
	case MLKEM1024:
		return 1568
	default:
		panic("pqcrypto: unknown ML-KEM variant")
	}
}

// SharedKeySize returns the shared-secret length. It is 32 bytes for every
// ML-KEM parameter set.
func (v MLKEMVariant) SharedKeySize() int { return 32 }

// SecurityLevel returns the NIST security category.
func (v MLKEMVariant) SecurityLevel() int {
	switch v {
	case MLKEM512:
		return 1
	case MLKEM768:
		return 3
	case MLKEM1024:
		return 5
	default:
		panic("pqcrypto: unknown ML-KEM variant")
	}
}

// KeyType implements Algorithm.
func (v MLKEMVariant) KeyType() KeyType { return KeyTypeKEM }

func (v MLKEMVariant) String() string {
	switch v {
	case MLKEM512:
		return "ML-KEM-512"
	case MLKEM768:
		return "ML-KEM-768"
	case MLKEM1024:
		return "ML-KEM-1024"
	default:
		return fmt.Sprintf("MLKEMVariant(%d)", int(v))
	}
}

// MarshalText encodes the variant as its display name.
func (v MLKEMVariant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a display name into the variant.
func (v *MLKEMVariant) UnmarshalText(text []byte) error {
	for _, c := range MLKEMVariants() {
		if string(text) == c.String() {
			*v = c
			return nil
		}
	}
	return unsupportedAlgorithm(string(text))
}

// MLDSAVariant identifies an ML-DSA (FIPS 204) parameter set.
type MLDSAVariant int

const (
	// MLDSA44 targets NIST security level 2.
	MLDSA44 MLDSAVariant = iota + 1
	// MLDSA65 targets NIST security level 3.
	MLDSA65
	// MLDSA87 targets NIST security level 5.
	MLDSA87
)

// MLDSAVariants lists every supported ML-DSA parameter set.
func MLDSAVariants() []MLDSAVariant {
	return []MLDSAVariant{MLDSA44, MLDSA65, MLDSA87}
}

// KeySizes returns the encoded public and secret key lengths in bytes.
// Note that generated key pairs retain the secret in its 32-byte seed form,
// not the expanded encoding sized here; see MLDSAKeyPair.
func (v MLDSAVariant) KeySizes() (public, secret int) {
	switch v {
	case MLDSA44:
		return 1312, 2560
	case MLDSA65:
		return 1952, 4032
	case MLDSA87:
		return 2592, 4896
	default:
		panic("pqcrypto: unknown ML-DSA variant")
	}
}

// SignatureSize returns the signature length in bytes.
func (v MLDSAVariant) SignatureSize() int {
	switch v {
	case MLDSA44:
		return 2420
	case MLDSA65:
		return 3309
	case MLDSA87:
		return 4627
	default:
		panic("pqcrypto: unknown ML-DSA variant")
	}
}

// SecurityLevel returns the NIST security category.
func (v MLDSAVariant) SecurityLevel() int {
	switch v {
	case MLDSA44:
		return 2
	case MLDSA65:
		return 3
	case MLDSA87:
		return 5
	default:
		panic("pqcrypto: unknown ML-DSA variant")
	}
}

// KeyType implements Algorithm.
func (v MLDSAVariant) KeyType() KeyType { return KeyTypeSignature }

func (v MLDSAVariant) String() string {
	switch v {
	case MLDSA44:
		return "ML-DSA-44"
	case MLDSA65:
		return "ML-DSA-65"
	case MLDSA87:
		return "ML-DSA-87"
	default:
		return fmt.Sprintf("MLDSAVariant(%d)", int(v))
	}
}

// MarshalText encodes the variant as its display name.
func (v MLDSAVariant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a display name into the variant.
func (v *MLDSAVariant) UnmarshalText(text []byte) error {
	for _, c := range MLDSAVariants() {
		if string(text) == c.String() {
			*v = c
			return nil
		}
	}
	return unsupportedAlgorithm(string(text))
}

// SLHDSAVariant identifies an SLH-DSA (FIPS 205) SHA2 parameter set. The
// "s" sets trade slow signing for small signatures; the "f" sets sign fast
// but produce signatures roughly twice as large.
type SLHDSAVariant int

const (
	SLHDSASHA2128s SLHDSAVariant = iota + 1
	SLHDSASHA2128f
	SLHDSASHA2192s
	SLHDSASHA2192f
	SLHDSASHA2256s
	SLHDSASHA2256f
)

// SLHDSAVariants lists every supported SLH-DSA parameter set.
func SLHDSAVariants() []SLHDSAVariant {
	return []SLHDSAVariant{
		SLHDSASHA2128s, SLHDSASHA2128f,
		SLHDSASHA2192s, SLHDSASHA2192f,
		SLHDSASHA2256s, SLHDSASHA2256f,
	}
}

// KeySizes returns the encoded public and secret key lengths in bytes.
func (v SLHDSAVariant) KeySizes() (public, secret int) {
	switch v {
	case SLHDSASHA2128s, SLHDSASHA2128f:
		return 32, 64
	case SLHDSASHA2192s, SLHDSASHA2192f:
		return 48, 96
	case SLHDSASHA2256s, SLHDSASHA2256f:
		return 64, 128
	default:
		panic("pqcrypto: unknown SLH-DSA variant")
	}
}

// SignatureSize returns the signature length in bytes.
func (v SLHDSAVariant) SignatureSize() int {
	switch v {
	case SLHDSASHA2128s:
		return 7856
	case SLHDSASHA2128f:
		return 17088
	case SLHDSASHA2192s:
		return 16224
	case SLHDSASHA2192f:
		return 35664
	case SLHDSASHA2256s:
		return 29792
	case SLHDSASHA2256f:
		return 49856
	default:
		panic("pqcrypto: unknown SLH-DSA variant")
	}
}

// IsSmall reports whether this is a small-signature (slower-signing)
// parameter set.
func (v SLHDSAVariant) IsSmall() bool {
	switch v {
	case SLHDSASHA2128s, SLHDSASHA2192s, SLHDSASHA2256s:
		return true
	default:
		return false
	}
}

// SecurityLevel returns the NIST security category.
func (v SLHDSAVariant) SecurityLevel() int {
	switch v {
	case SLHDSASHA2128s, SLHDSASHA2128f:
		return 1
	case SLHDSASHA2192s, SLHDSASHA2192f:
		return 3
	case SLHDSASHA2256s, SLHDSASHA2256f:
		return 5
	default:
		panic("pqcrypto: unknown SLH-DSA variant")
	}
}

// KeyType implements Algorithm.
func (v SLHDSAVariant) KeyType() KeyType { return KeyTypeSignature }

func (v SLHDSAVariant) String() string {
	switch v {
	case SLHDSASHA2128s:
		return "SLH-DSA-SHA2-128s"
	case SLHDSASHA2128f:
		return "SLH-DSA-SHA2-128f"
	case SLHDSASHA2192s:
		return "SLH-DSA-SHA2-192s"
	case SLHDSASHA2192f:
		return "SLH-DSA-SHA2-192f"
	case SLHDSASHA2256s:
		return "SLH-DSA-SHA2-256s"
	case SLHDSASHA2256f:
		return "SLH-DSA-SHA2-256f"
	default:
		return fmt.Sprintf("SLHDSAVariant(%d)", int(v))
	}
}

// MarshalText encodes the variant as its display name.
func (v SLHDSAVariant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a display name into the variant.
func (v *SLHDSAVariant) UnmarshalText(text []byte) error {
	for _, c := range SLHDSAVariants() {
		if string(text) == c.String() {
			*v = c
			return nil
		}
	}
	return unsupportedAlgorithm(string(text))
}

// HybridVariant identifies a classical+post-quantum composition.
type HybridVariant int

const (
	// HybridX25519MLKEM768 combines X25519 key exchange with ML-KEM-768.
	HybridX25519MLKEM768 HybridVariant = iota + 1
	// HybridEd25519MLDSA65 combines Ed25519 with ML-DSA-65 signatures.
	HybridEd25519MLDSA65
)

// HybridVariants lists every supported hybrid composition.
func HybridVariants() []HybridVariant {
	return []HybridVariant{HybridX25519MLKEM768, HybridEd25519MLDSA65}
}

// SecurityLevel returns the NIST security category of the post-quantum
// component; the classical component adds no post-quantum security.
func (v HybridVariant) SecurityLevel() int { return 3 }

// KeyType implements Algorithm.
func (v HybridVariant) KeyType() KeyType {
	switch v {
	case HybridX25519MLKEM768:
		return KeyTypeHybridKEM
	case HybridEd25519MLDSA65:
		return KeyTypeHybridSignature
	default:
		panic("pqcrypto: unknown hybrid variant")
	}
}

func (v HybridVariant) String() string {
	switch v {
	case HybridX25519MLKEM768:
		return "X25519-ML-KEM-768"
	case HybridEd25519MLDSA65:
		return "Ed25519-ML-DSA-65"
	default:
		return fmt.Sprintf("HybridVariant(%d)", int(v))
	}
}

// MarshalText encodes the variant as its display name.
func (v HybridVariant) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText decodes a display name into the variant.
func (v *HybridVariant) UnmarshalText(text []byte) error {
	for _, c := range HybridVariants() {
		if string(text) == c.String() {
			*v = c
			return nil
		}
	}
	return unsupportedAlgorithm(string(text))
}

// ParseAlgorithm resolves a display name ("ML-KEM-768", "SLH-DSA-SHA2-128s",
// "X25519-ML-KEM-768", ...) to its variant across all four families. It
// fails with an UnsupportedAlgorithm error for unknown names.
func ParseAlgorithm(name string) (Algorithm, error) {
	for _, v := range MLKEMVariants() {
		if name == v.String() {
			return v, nil
		}
	}
	for _, v := range MLDSAVariants() {
		if name == v.String() {
			return v, nil
		}
	}
	for _, v := range SLHDSAVariants() {
		if name == v.String() {
			return v, nil
		}
	}
	for _, v := range HybridVariants() {
		if name == v.String() {
			return v, nil
		}
	}
	return nil, unsupportedAlgorithm(name)
}
