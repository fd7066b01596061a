// Package pqcrypto implements post-quantum and hybrid key lifecycles for
// the Quantun platform: ML-KEM key encapsulation (FIPS 203), ML-DSA and
// SLH-DSA signatures (FIPS 204, 205), and X25519/Ed25519 hybrid
// compositions that stay secure while either component holds.
//
// Secret key material lives in Secret values with explicit zeroization and
// never crosses the JSON boundary. Randomness comes from the operating
// system only; an unusable entropy source panics rather than degrading.
//
// Basic usage:
//
//	kp, err := pqcrypto.GenerateKEMKeyPair(pqcrypto.MLKEM768)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer kp.Destroy()
//
//	// Sender side: derive a shared secret for kp's holder.
//	enc, err := pqcrypto.Encapsulate(pqcrypto.MLKEM768, kp.PublicKey)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer enc.Destroy()
//
//	// Recipient side: recover the same secret.
//	ss, err := kp.Decapsulate(enc.Ciphertext)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ss.Destroy()
package pqcrypto
