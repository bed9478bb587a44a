/**
 * @description
 * This file implements the RSA PKCS#1 v1.5 / SHA-256 signer, which is
 * compatible only with the plain JSON encoder's SHA-256 digest.
 */
package signing

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
)

// rsaKeyBits is the modulus size for seed-derived RSA keys.
const rsaKeyBits = 2048

// RSASigner produces PKCS#1 v1.5 signatures under a SHA-256 digest, using
// a 2048-bit RSA key deterministically generated from a seed: the seed's
// SHA-256 hash keys a ChaCha20 keystream that supplies all entropy
// crypto/rsa.GenerateKey consumes while building the key.
//
// The digest RSASigner signs must itself be SHA-256(data) — pairing this
// signer with a keccak-256-digest encoder (abi/eip712) would sign a
// cryptographically meaningless hash chain, so the encoding package's
// compatibility check rejects that combination at startup.
type RSASigner struct {
	key *rsa.PrivateKey
}

/**
 * @description
 * NewRSASigner derives an RSA signer deterministically from seed.
 *
 * @param seed Arbitrary-length string; SHA-256 hashed to key the
 * deterministic ChaCha20 keystream fed to crypto/rsa.GenerateKey.
 * @returns A ready-to-use signer, or an error if key generation fails.
 */
func NewRSASigner(seed string) (*RSASigner, error) {
	seedHash := sha256.Sum256([]byte(seed))
	reader, err := newSeededReader(seedHash)
	if err != nil {
		return nil, fmt.Errorf("signing: building seeded RNG: %w", err)
	}
	key, err := rsa.GenerateKey(reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("signing: generating RSA key from seed: %w", err)
	}
	return &RSASigner{key: key}, nil
}

// SignDigest signs a digest that MUST be SHA-256(data) — the signer does
// not hash its own input, by contract (see ContextSigner).
func (s *RSASigner) SignDigest(digest []byte) ([]byte, error) {
	sig, err := rsa.SignPKCS1v15(nil, s.key, crypto.SHA256, digest)
	if err != nil {
		return nil, fmt.Errorf("signing: rsa sign failed: %w", err)
	}
	return sig, nil
}

// PublicKeyBytes returns the DER-encoded SubjectPublicKeyInfo.
func (s *RSASigner) PublicKeyBytes() []byte {
	der, err := x509.MarshalPKIXPublicKey(&s.key.PublicKey)
	if err != nil {
		// MarshalPKIXPublicKey only fails for unsupported key types; an
		// *rsa.PublicKey is always supported.
		panic(fmt.Sprintf("signing: encoding RSA public key: %v", err))
	}
	return der
}

// Algorithm returns the wire tag "rsa-pkcs1v15-sha256".
func (s *RSASigner) Algorithm() string {
	return AlgorithmRSA
}
