// Package rand is the single randomness source behind every key-generation
// and randomized-signing operation in this module. It draws exclusively from
// the operating system's CSPRNG via crypto/rand.
//
// The failure mode is deliberate: if the OS entropy source cannot be read,
// the process is aborted rather than handed an error. No caller can recover
// in a way that makes cryptographic output trustworthy without verified
// entropy, so continuing is strictly worse than halting.
package rand

import (
	cryptorand "crypto/rand"
	"io"
)

// Reader is an io.Reader view of the OS CSPRNG for APIs that take a reader
// (key-generation functions in circl and crypto/ed25519). Unlike
// crypto/rand.Reader its Read never returns an error: entropy failure
// panics instead.
var Reader io.Reader = reader{}

type reader struct{}

func (reader) Read(p []byte) (int, error) {
	Read(p)
	return len(p), nil
}

// Read fills b with cryptographically secure random bytes. It is safe for
// concurrent use; independent calls never share or correlate output.
//
// Read panics if the OS entropy source is unavailable.
func Read(b []byte) {
	if _, err := io.ReadFull(cryptorand.Reader, b); err != nil {
		panic("pqcrypto: OS entropy source unavailable: " + err.Error())
	}
}

// Bytes draws and returns n fresh random bytes.
func Bytes(n int) []byte {
	b := make([]byte, n)
	Read(b)
	return b
}
