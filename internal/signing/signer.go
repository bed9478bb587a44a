/**
 * @description
 * Package signing implements the three keyed signing algorithms notary
 * sessions may use to sign an encoded context digest: raw secp256k1 ECDSA,
 * Ethereum-style recoverable ECDSA, and RSA PKCS#1 v1.5 / SHA-256.
 *
 * All three share the ContextSigner contract, the same narrow-interface
 * shape used elsewhere in this codebase for pluggable signing backends:
 * one production implementation per backend, dependency-injected into
 * whatever needs to sign.
 *
 * @dependencies
 * - github.com/ethereum/go-ethereum/crypto: secp256k1 and recoverable
 *   ECDSA primitives.
 */
package signing

// ContextSigner owns a private key and signs pre-computed digests. It
// never hashes or encodes on its own — that is the encoder's job.
//
// Implementations are synchronous; signing is CPU-bound. A caller handling
// many concurrent sessions may offload SignDigest calls to a worker pool, but
// correctness does not require it.
type ContextSigner interface {
	// SignDigest signs a digest and returns the raw signature bytes. The
	// signature width is fixed per algorithm: 64 bytes for secp256k1, 65
	// for ethereum-secp256k1, 256 for rsa-pkcs1v15-sha256.
	SignDigest(digest []byte) ([]byte, error)

	// PublicKeyBytes returns the signer's public key in its
	// algorithm-native encoding (33-byte compressed SEC1, 65-byte
	// uncompressed SEC1, or DER SPKI).
	PublicKeyBytes() []byte

	// Algorithm returns the wire algorithm tag, e.g. "secp256k1".
	Algorithm() string
}

// Algorithm tags, used on the wire and in configuration.
const (
	AlgorithmSecp256k1 = "secp256k1"
	AlgorithmEthereum  = "ethereum-secp256k1"
	AlgorithmRSA       = "rsa-pkcs1v15-sha256"
)
