/**
 * @description
 * This file provides the deterministic ChaCha20-keyed RNG that lets RSA
 * key generation be a pure function of a seed, the same way the
 * secp256k1 and Ethereum signers derive their keys deterministically.
 *
 * @dependencies
 * - golang.org/x/crypto/chacha20: the keystream cipher.
 */
package signing

import (
	"golang.org/x/crypto/chacha20"
)

// seededReader is a deterministic byte stream driven by a ChaCha20
// keystream seeded from a fixed 32-byte key. Feeding it to
// crypto/rsa.GenerateKey in place of crypto/rand.Reader makes RSA key
// generation a pure function of the seed, mirroring the original
// implementation's ChaCha20Rng-seeded key generation.
type seededReader struct {
	cipher *chacha20.Cipher
}

/**
 * @description
 * newSeededReader builds a seededReader from a 32-byte key. The nonce is
 * fixed at all-zero: the key alone determines the keystream, and each
 * signer owns its own cipher instance for its own lifetime.
 *
 * @param key The 32-byte ChaCha20 key.
 * @returns A seededReader ready to satisfy io.Reader deterministically.
 */
func newSeededReader(key [32]byte) (*seededReader, error) {
	var nonce [chacha20.NonceSize]byte
	c, err := chacha20.NewUnauthenticatedCipher(key[:], nonce[:])
	if err != nil {
		return nil, err
	}
	return &seededReader{cipher: c}, nil
}

// Read fills p entirely with keystream bytes and never errors short of a
// cipher fault, satisfying io.Reader for crypto/rsa.GenerateKey.
func (r *seededReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = 0
	}
	r.cipher.XORKeyStream(p, p)
	return len(p), nil
}
