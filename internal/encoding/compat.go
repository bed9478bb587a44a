package encoding

import (
	"fmt"

	"github.com/TheFrozenFire/simple-notary/internal/signing"
)

/**
 * @description
 * CheckCompatibility rejects the rsa-pkcs1v15-sha256 / non-json pairing:
 * the RSA signer's internal hash is wired to SHA-256, whereas the ABI,
 * EIP-712, and embedding encoders all digest with keccak-256, so signing
 * that digest under an RSA-SHA-256 chain would sign a cryptographically
 * meaningless value.
 *
 * @param algorithm The signer's algorithm tag.
 * @param encoderName The configured encoder's Name().
 * @returns An error if the pairing is forbidden, nil otherwise.
 */
func CheckCompatibility(algorithm string, encoderName string) error {
	if algorithm == signing.AlgorithmRSA && encoderName != "json" {
		return fmt.Errorf("encoding: signer %q requires encoder \"json\", got %q", algorithm, encoderName)
	}
	return nil
}
