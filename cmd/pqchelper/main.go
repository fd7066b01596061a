package main

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"os"

	pqcrypto "github.com/quantun/pqcrypto-go"
)

func main() {
	if len(os.Args) < 2 {
		fatal("usage: pqchelper <command> [args]")
	}

	switch os.Args[1] {
	case "keygen":
		if len(os.Args) < 3 {
			fatal("usage: pqchelper keygen <algorithm>")
		}
		keygen(os.Args[2])
	case "encap":
		if len(os.Args) < 3 {
			fatal("usage: pqchelper encap <algorithm> < public-key-b64")
		}
		encap(os.Args[2])
	case "decap":
		if len(os.Args) < 3 {
			fatal("usage: pqchelper decap <algorithm> < keygen-output")
		}
		decap(os.Args[2])
	case "sign":
		if len(os.Args) < 4 {
			fatal("usage: pqchelper sign <algorithm> <message>")
		}
		signMessage(os.Args[2], os.Args[3])
	case "verify":
		if len(os.Args) < 4 {
			fatal("usage: pqchelper verify <algorithm> <message> < sign-output")
		}
		verifyMessage(os.Args[2], os.Args[3])
	case "catalog":
		catalog()
	default:
		fatal("unknown command: %s", os.Args[1])
	}
}

// keygenOutput carries key material across helper invocations. The secret
// is exported here deliberately; this tool exists for cross-implementation
// spot checks, never for production keys.
type keygenOutput struct {
	Algorithm string `json:"algorithm"`
	PublicKey string `json:"public_key"`
	SecretKey string `json:"secret_key"`
}

func keygen(name string) {
	alg, err := pqcrypto.ParseAlgorithm(name)
	if err != nil {
		fatal("parse algorithm: %v", err)
	}

	var out keygenOutput
	out.Algorithm = name

	switch v := alg.(type) {
	case pqcrypto.MLKEMVariant:
		kp, err := pqcrypto.GenerateKEMKeyPair(v)
		if err != nil {
			fatal("generate: %v", err)
		}
		out.PublicKey = b64(kp.PublicKey)
		out.SecretKey = b64(kp.SecretKey.Bytes())
	case pqcrypto.MLDSAVariant:
		kp, err := pqcrypto.GenerateMLDSAKeyPair(v)
		if err != nil {
			fatal("generate: %v", err)
		}
		out.PublicKey = b64(kp.PublicKey)
		out.SecretKey = b64(kp.SecretKey.Bytes())
	case pqcrypto.SLHDSAVariant:
		kp, err := pqcrypto.GenerateSLHDSAKeyPair(v)
		if err != nil {
			fatal("generate: %v", err)
		}
		out.PublicKey = b64(kp.PublicKey)
		out.SecretKey = b64(kp.SecretKey.Bytes())
	default:
		fatal("keygen does not support %s", name)
	}

	emit(out)
}

func encap(name string) {
	alg, err := pqcrypto.ParseAlgorithm(name)
	if err != nil {
		fatal("parse algorithm: %v", err)
	}
	v, ok := alg.(pqcrypto.MLKEMVariant)
	if !ok {
		fatal("%s is not a KEM", name)
	}

	pub := readB64Line()
	enc, err := pqcrypto.Encapsulate(v, pub)
	if err != nil {
		fatal("encapsulate: %v", err)
	}

	emit(map[string]string{
		"ciphertext":    b64(enc.Ciphertext),
		"shared_secret": b64(enc.SharedSecret.Bytes()),
	})
}

func decap(name string) {
	alg, err := pqcrypto.ParseAlgorithm(name)
	if err != nil {
		fatal("parse algorithm: %v", err)
	}
	v, ok := alg.(pqcrypto.MLKEMVariant)
	if !ok {
		fatal("%s is not a KEM", name)
	}

	var in struct {
		SecretKey  string `json:"secret_key"`
		Ciphertext string `json:"ciphertext"`
	}
	decodeStdin(&in)

	kp := &pqcrypto.KEMKeyPair{
		Variant:   v,
		SecretKey: pqcrypto.NewSecret(unb64(in.SecretKey)),
	}
	ss, err := kp.Decapsulate(unb64(in.Ciphertext))
	if err != nil {
		fatal("decapsulate: %v", err)
	}

	emit(map[string]string{"shared_secret": b64(ss.Bytes())})
}

func signMessage(name, message string) {
	alg, err := pqcrypto.ParseAlgorithm(name)
	if err != nil {
		fatal("parse algorithm: %v", err)
	}

	switch v := alg.(type) {
	case pqcrypto.MLDSAVariant:
		kp, err := pqcrypto.GenerateMLDSAKeyPair(v)
		if err != nil {
			fatal("generate: %v", err)
		}
		sig, err := kp.Sign([]byte(message))
		if err != nil {
			fatal("sign: %v", err)
		}
		emit(map[string]string{
			"public_key": b64(kp.PublicKey),
			"signature":  b64(sig.Signature),
		})
	case pqcrypto.SLHDSAVariant:
		kp, err := pqcrypto.GenerateSLHDSAKeyPair(v)
		if err != nil {
			fatal("generate: %v", err)
		}
		sig, err := kp.Sign([]byte(message))
		if err != nil {
			fatal("sign: %v", err)
		}
		emit(map[string]string{
			"public_key": b64(kp.PublicKey),
			"signature":  b64(sig.Signature),
		})
	default:
		fatal("sign does not support %s", name)
	}
}

func verifyMessage(name, message string) {
	alg, err := pqcrypto.ParseAlgorithm(name)
	if err != nil {
		fatal("parse algorithm: %v", err)
	}

	var in struct {
		PublicKey string `json:"public_key"`
		Signature string `json:"signature"`
	}
	decodeStdin(&in)

	var valid bool
	switch v := alg.(type) {
	case pqcrypto.MLDSAVariant:
		sig := &pqcrypto.MLDSASignature{Variant: v, Signature: unb64(in.Signature)}
		valid, err = pqcrypto.VerifyMLDSA(v, unb64(in.PublicKey), []byte(message), sig)
	case pqcrypto.SLHDSAVariant:
		sig := &pqcrypto.SLHDSASignature{Variant: v, Signature: unb64(in.Signature)}
		valid, err = pqcrypto.VerifySLHDSA(v, unb64(in.PublicKey), []byte(message), sig)
	default:
		fatal("verify does not support %s", name)
	}
	if err != nil {
		fatal("verify: %v", err)
	}

	emit(map[string]bool{"valid": valid})
}

type catalogEntry struct {
	Algorithm     string `json:"algorithm"`
	KeyType       string `json:"key_type"`
	SecurityLevel int    `json:"security_level"`
	PublicKeySize int    `json:"public_key_size,omitempty"`
	SecretKeySize int    `json:"secret_key_size,omitempty"`
	OutputSize    int    `json:"output_size,omitempty"`
}

func catalog() {
	var entries []catalogEntry
	for _, v := range pqcrypto.MLKEMVariants() {
		pk, sk := v.KeySizes()
		entries = append(entries, catalogEntry{
			Algorithm: v.String(), KeyType: v.KeyType().String(),
			SecurityLevel: v.SecurityLevel(),
			PublicKeySize: pk, SecretKeySize: sk, OutputSize: v.CiphertextSize(),
		})
	}
	for _, v := range pqcrypto.MLDSAVariants() {
		pk, sk := v.KeySizes()
		entries = append(entries, catalogEntry{
			Algorithm: v.String(), KeyType: v.KeyType().String(),
			SecurityLevel: v.SecurityLevel(),
			PublicKeySize: pk, SecretKeySize: sk, OutputSize: v.SignatureSize(),
		})
	}
	for _, v := range pqcrypto.SLHDSAVariants() {
		pk, sk := v.KeySizes()
		entries = append(entries, catalogEntry{
			Algorithm: v.String(), KeyType: v.KeyType().String(),
			SecurityLevel: v.SecurityLevel(),
			PublicKeySize: pk, SecretKeySize: sk, OutputSize: v.SignatureSize(),
		})
	}
	for _, v := range pqcrypto.HybridVariants() {
		entries = append(entries, catalogEntry{
			Algorithm: v.String(), KeyType: v.KeyType().String(),
			SecurityLevel: v.SecurityLevel(),
		})
	}
	emit(entries)
}

func b64(b []byte) string {
	return base64.StdEncoding.EncodeToString(b)
}

func unb64(s string) []byte {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		fatal("decode base64: %v", err)
	}
	return b
}

func readB64Line() []byte {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatal("read stdin: %v", err)
	}
	var s string
	if _, err := fmt.Sscan(string(data), &s); err != nil {
		fatal("read public key: %v", err)
	}
	return unb64(s)
}

func decodeStdin(v any) {
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		fatal("read stdin: %v", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		fatal("parse input: %v", err)
	}
}

func emit(v any) {
	if err := json.NewEncoder(os.Stdout).Encode(v); err != nil {
		fatal("encode output: %v", err)
	}
}

func fatal(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
