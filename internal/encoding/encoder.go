/**
 * @description
 * Package encoding implements the four wire-compatible context encoders: a
 * JSON/SHA-256 encoder for plain attestations, an ABI/keccak-256 encoder and
 * an EIP-712 typed-data encoder sharing the same fixed struct layout, and an
 * optional embedding encoder producing a quantized vector digest.
 *
 * Every encoder must be deterministic: encoding the same HttpContext twice
 * produces byte-identical data and digest, since the digest is what gets
 * signed and a downstream verifier re-derives it independently.
 *
 * @dependencies
 * - github.com/ethereum/go-ethereum/accounts/abi: shared struct layout for
 *   the ABI and EIP-712 encoders.
 */
package encoding

import (
	"github.com/TheFrozenFire/simple-notary/internal/transcript"
)

// Quantization selects how the embedding encoder packs float components.
type Quantization int

const (
	QuantizationFloat32 Quantization = iota
	QuantizationInt8
)

// EncodeOptions carries the per-request knobs that affect encoding but not
// the context itself: which EIP-712 domain to sign under, which embedding
// model and quantization to use.
type EncodeOptions struct {
	EIP712Domain   EIP712Domain
	EmbeddingModel string
	Quantization   Quantization
}

// EIP712Domain configures the domain separator the EIP-712 encoder hashes
// the attestation struct under.
type EIP712Domain struct {
	Name              string
	Version           string
	ChainID           int64
	VerifyingContract string
}

// EncodedContext is the pair an encoder produces: the on-wire data shipped
// to the prover, and the digest the signer signs over.
type EncodedContext struct {
	Data   []byte
	Digest []byte
}

// ContextEncoder turns an HttpContext into an (data, digest) pair.
// AvailableModels returns the set of selectable model names when the encoder exposes a
// choice (only EmbeddingEncoder does); other encoders return nil.
type ContextEncoder interface {
	Encode(ctx *transcript.HttpContext, opts EncodeOptions) (EncodedContext, error)
	Name() string
	AvailableModels() []string
}
