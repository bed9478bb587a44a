package signing

import (
	"crypto/ecdsa"
	"crypto/sha256"
	"fmt"

	"github.com/ethereum/go-ethereum/crypto"
)

// EthereumSigner produces Ethereum-style recoverable ECDSA signatures: 65
// bytes of r‖s‖v where v ∈ {0, 1}, enabling ecrecover to reconstruct the
// signer's address from the signature alone. Derived deterministically
// from a seed the same way as Secp256k1Signer.
type EthereumSigner struct {
	key *ecdsa.PrivateKey
}

// NewEthereumSigner derives an Ethereum-recoverable signer from seed.
func NewEthereumSigner(seed string) (*EthereumSigner, error) {
	hash := sha256.Sum256([]byte(seed))
	key, err := crypto.ToECDSA(hash[:])
	if err != nil {
		return nil, fmt.Errorf("signing: invalid seed for ethereum key: %w", err)
	}
	return &EthereumSigner{key: key}, nil
}

// SignDigest signs digest and returns the 65-byte recoverable signature.
func (s *EthereumSigner) SignDigest(digest []byte) ([]byte, error) {
	sig, err := crypto.Sign(digest, s.key)
	if err != nil {
		return nil, fmt.Errorf("signing: ethereum sign failed: %w", err)
	}
	// crypto.Sign's recovery byte is already 0 or 1, not the legacy 27/28
	// transaction encoding — that shift is a transaction-serialization
	// concern outside this signer's contract.
	return sig, nil
}

// PublicKeyBytes returns the 65-byte uncompressed SEC1 public key
// (0x04-prefixed), the form Ethereum address derivation expects.
func (s *EthereumSigner) PublicKeyBytes() []byte {
	return crypto.FromECDSAPub(&s.key.PublicKey)
}

// Algorithm returns the wire tag "ethereum-secp256k1".
func (s *EthereumSigner) Algorithm() string {
	return AlgorithmEthereum
}

/**
 * @description
 * Recover reconstructs the uncompressed public key from a digest and a
 * 65-byte r‖s‖v signature, for verification / testing.
 *
 * @param digest The signed digest.
 * @param sig The 65-byte recoverable signature.
 * @returns The 65-byte uncompressed public key that produced sig.
 */
func Recover(digest, sig []byte) ([]byte, error) {
	pub, err := crypto.SigToPub(digest, sig)
	if err != nil {
		return nil, fmt.Errorf("signing: recovering public key: %w", err)
	}
	return crypto.FromECDSAPub(pub), nil
}
