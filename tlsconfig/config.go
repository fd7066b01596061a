// Package tlsconfig describes quantum-safe TLS endpoint configuration:
// certificate locations, algorithm preferences, and the cipher suites they
// imply. It validates configuration only; it does not speak the TLS wire
// protocol.
package tlsconfig

import (
	"crypto/tls"
	"fmt"

	"github.com/quantun/pqcrypto-go"
)

// CipherSuite identifies a quantum-safe cipher suite.
type CipherSuite int

const (
	// AES256GCMX25519MLKEM768 is TLS_AES_256_GCM_SHA384 with
	// X25519+ML-KEM-768 key exchange.
	AES256GCMX25519MLKEM768 CipherSuite = iota + 1
	// AES128GCMX25519MLKEM512 is TLS_AES_128_GCM_SHA256 with
	// X25519+ML-KEM-512 key exchange.
	AES128GCMX25519MLKEM512
	// AES256GCMMLKEM1024 is TLS_AES_256_GCM_SHA384 with pure ML-KEM-1024
	// key exchange.
	AES256GCMMLKEM1024
)

func (s CipherSuite) String() string {
	switch s {
	case AES256GCMX25519MLKEM768:
		return "TLS_AES_256_GCM_SHA384/X25519-ML-KEM-768"
	case AES128GCMX25519MLKEM512:
		return "TLS_AES_128_GCM_SHA256/X25519-ML-KEM-512"
	case AES256GCMMLKEM1024:
		return "TLS_AES_256_GCM_SHA384/ML-KEM-1024"
	default:
		return fmt.Sprintf("CipherSuite(%d)", int(s))
	}
}

// Config describes one quantum-safe TLS endpoint.
type Config struct {
	// CertFile is the path to the PEM-encoded certificate chain.
	CertFile string `json:"cert_file"`
	// KeyFile is the path to the PEM-encoded private key.
	KeyFile string `json:"key_file"`
	// CAFile optionally points at a custom CA bundle for verification.
	CAFile string `json:"ca_file,omitempty"`
	// PreferredAlgorithms lists key-exchange algorithm names in priority
	// order, using catalog display names.
	PreferredAlgorithms []string `json:"preferred_algorithms"`
	// MinVersion is the minimum TLS version, a crypto/tls VersionTLS
	// constant. Zero means TLS 1.3.
	MinVersion uint16 `json:"min_version"`
	// MutualTLS requires client certificates.
	MutualTLS bool `json:"mutual_tls"`
	// HybridMode enables classical+PQC hybrid key exchange. It requires
	// TLS 1.3.
	HybridMode bool `json:"hybrid_mode"`
}

// Default returns the production configuration: TLS 1.3, hybrid key
// exchange preferred with pure ML-KEM-768 fallback.
func Default() *Config {
	return &Config{
		CertFile: "certs/server.pem",
		KeyFile:  "certs/server-key.pem",
		PreferredAlgorithms: []string{
			pqcrypto.HybridX25519MLKEM768.String(),
			pqcrypto.MLKEM768.String(),
		},
		MinVersion: tls.VersionTLS13,
		HybridMode: true,
	}
}

// Development returns a configuration for self-signed development
// endpoints.
func Development() *Config {
	return &Config{
		CertFile: "certs/dev.pem",
		KeyFile:  "certs/dev-key.pem",
		PreferredAlgorithms: []string{
			pqcrypto.HybridX25519MLKEM768.String(),
		},
		MinVersion: tls.VersionTLS13,
		HybridMode: true,
	}
}

// Validate checks that the configuration is self-consistent: at least one
// preferred algorithm, all algorithm names known to the catalog, and no
// hybrid key exchange below TLS 1.3.
func (c *Config) Validate() error {
	if len(c.PreferredAlgorithms) == 0 {
		return fmt.Errorf("tlsconfig: no preferred algorithms specified")
	}
	for _, name := range c.PreferredAlgorithms {
		if _, err := pqcrypto.ParseAlgorithm(name); err != nil {
			return fmt.Errorf("tlsconfig: preferred algorithm: %w", err)
		}
	}
	if c.HybridMode && c.MinVersion != 0 && c.MinVersion < tls.VersionTLS13 {
		return fmt.Errorf("tlsconfig: hybrid key exchange requires TLS 1.3")
	}
	return nil
}

// CipherSuites returns the cipher suites implied by the configuration.
// Hybrid mode prefers the hybrid exchanges; otherwise only the pure
// ML-KEM-1024 suite is offered.
func (c *Config) CipherSuites() []CipherSuite {
	if c.HybridMode {
		return []CipherSuite{
			AES256GCMX25519MLKEM768,
			AES128GCMX25519MLKEM512,
		}
	}
	return []CipherSuite{AES256GCMMLKEM1024}
}
