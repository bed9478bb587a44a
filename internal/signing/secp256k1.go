package signing

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// Secp256k1Signer produces raw 64-byte (r‖s, low-s normalized) ECDSA
// signatures over the secp256k1 curve. Created from a seed string — the
// SHA-256 hash of the seed becomes the 32-byte private key scalar, so the
// same seed always yields the same key.
type Secp256k1Signer struct {
	key *ecdsa.PrivateKey
}

/**
 * @description
 * NewSecp256k1Signer derives a secp256k1 signer deterministically from seed.
 *
 * @param seed Arbitrary-length string; SHA-256 hashed into the key scalar.
 * @returns A ready-to-use signer, or an error if the hash is not a valid
 * secp256k1 scalar (astronomically unlikely, but checked).
 */
func NewSecp256k1Signer(seed string) (*Secp256k1Signer, error) {
	hash := sha256.Sum256([]byte(seed))
	key, err := crypto.ToECDSA(hash[:])
	if err != nil {
		return nil, fmt.Errorf("signing: invalid seed for secp256k1 key: %w", err)
	}
	return &Secp256k1Signer{key: key}, nil
}

// SignDigest signs an arbitrary 32-byte digest, returning the 64-byte r‖s
// signature (the go-ethereum secp256k1 backend already normalizes s to the
// canonical low-s form).
func (s *Secp256k1Signer) SignDigest(digest []byte) ([]byte, error) {
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return nil, fmt.Errorf("signing: secp256k1 sign failed: %w", err)
	}
	// crypto.Sign returns 65 bytes (r‖s‖v); the raw variant drops v.
	return sig[:64], nil
}

// PublicKeyBytes returns the 33-byte compressed SEC1 public key.
func (s *Secp256k1Signer) PublicKeyBytes() []byte {
	return crypto.CompressPubkey(&s.key.PublicKey)
}

// Algorithm returns the wire tag "secp256k1".
func (s *Secp256k1Signer) Algorithm() string {
	return AlgorithmSecp256k1
}
