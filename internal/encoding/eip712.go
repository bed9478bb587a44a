/**
 * @description
 * This file implements the EIP-712 typed-data encoder. It shares the
 * ABI encoder's attestation data bytes but digests them as an
 * eth_signTypedData hash under a configured domain, so a resulting
 * signature verifies on-chain via standard EIP-712 recovery.
 */
package encoding

import (
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common/math"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/signer/core/apitypes"

	"github.com/TheFrozenFire/simple-notary/internal/transcript"
)

// attestationEIP712Types declares the same struct layout as the ABI
// encoder, expressed as EIP-712 type definitions.
var attestationEIP712Types = apitypes.Types{
	"EIP712Domain": {
		{Name: "name", Type: "string"},
		{Name: "version", Type: "string"},
		{Name: "chainId", Type: "uint256"},
		{Name: "verifyingContract", Type: "address"},
	},
	"Attestation": {
		{Name: "requests", Type: "Request[]"},
		{Name: "responses", Type: "Response[]"},
	},
	"Request": {
		{Name: "present", Type: "bool"},
		{Name: "method", Type: "string"},
		{Name: "target", Type: "string"},
		{Name: "headers", Type: "Header[]"},
		{Name: "body", Type: "bytes"},
		{Name: "bodyEncoding", Type: "uint8"},
	},
	"Response": {
		{Name: "present", Type: "bool"},
		{Name: "status", Type: "uint16"},
		{Name: "headers", Type: "Header[]"},
		{Name: "body", Type: "bytes"},
		{Name: "bodyEncoding", Type: "uint8"},
	},
	"Header": {
		{Name: "name", Type: "string"},
		{Name: "value", Type: "string"},
	},
}

// EIP712Encoder uses the same attestation data bytes as ABIEncoder but
// digests them as an EIP-712 typed-data signing hash under a configured
// domain, so a signature verifies on-chain via eth_signTypedData semantics.
type EIP712Encoder struct{}

func NewEIP712Encoder() *EIP712Encoder {
	return &EIP712Encoder{}
}

/**
 * @description
 * Encode packs ctx into the Attestation struct, then hashes it as an
 * EIP-712 typed-data message under opts.EIP712Domain.
 *
 * @param ctx The context to encode.
 * @param opts Carries the EIP-712 domain parameters to hash under.
 * @returns The packed data and its EIP-712 signing-hash digest.
 */
func (e *EIP712Encoder) Encode(ctx *transcript.HttpContext, opts EncodeOptions) (EncodedContext, error) {
	data, err := packAttestation(ctx)
	if err != nil {
		return EncodedContext{}, err
	}

	att, err := buildAttestation(ctx)
	if err != nil {
		return EncodedContext{}, err
	}

	typedData := apitypes.TypedData{
		Types:       attestationEIP712Types,
		PrimaryType: "Attestation",
		Domain: apitypes.TypedDataDomain{
			Name:              opts.EIP712Domain.Name,
			Version:           opts.EIP712Domain.Version,
			ChainId:           math.NewHexOrDecimal256(opts.EIP712Domain.ChainID),
			VerifyingContract: opts.EIP712Domain.VerifyingContract,
		},
		Message: attestationMessage(att),
	}

	domainSeparator, err := typedData.HashStruct("EIP712Domain", typedData.Domain.Map())
	if err != nil {
		return EncodedContext{}, fmt.Errorf("encoding: hashing eip712 domain: %w", err)
	}
	messageHash, err := typedData.HashStruct(typedData.PrimaryType, typedData.Message)
	if err != nil {
		return EncodedContext{}, fmt.Errorf("encoding: hashing eip712 message: %w", err)
	}

	prefixed := append([]byte{0x19, 0x01}, domainSeparator...)
	prefixed = append(prefixed, messageHash...)
	digest := crypto.Keccak256(prefixed)

	return EncodedContext{Data: data, Digest: digest}, nil
}

func (e *EIP712Encoder) Name() string {
	return "eip712"
}

func (e *EIP712Encoder) AvailableModels() []string {
	return nil
}

// attestationMessage projects an attestation struct into the
// map[string]interface{} shape apitypes.TypedData.HashStruct expects,
// encoding uint8/uint16 fields as *big.Int per the convention used
// throughout this codebase's EIP-712 message construction.
func attestationMessage(att attestation) apitypes.TypedDataMessage {
	requests := make([]interface{}, len(att.Requests))
	for i, r := range att.Requests {
		requests[i] = requestMessage(r)
	}
	responses := make([]interface{}, len(att.Responses))
	for i, r := range att.Responses {
		responses[i] = responseMessage(r)
	}
	return apitypes.TypedDataMessage{
		"requests":  requests,
		"responses": responses,
	}
}

func requestMessage(r attestationRequest) map[string]interface{} {
	return map[string]interface{}{
		"present":      r.Present,
		"method":       r.Method,
		"target":       r.Target,
		"headers":      headersMessage(r.Headers),
		"body":         r.Body,
		"bodyEncoding": new(big.Int).SetUint64(uint64(r.BodyEncoding)),
	}
}

func responseMessage(r attestationResponse) map[string]interface{} {
	return map[string]interface{}{
		"present":      r.Present,
		"status":       new(big.Int).SetUint64(uint64(r.Status)),
		"headers":      headersMessage(r.Headers),
		"body":         r.Body,
		"bodyEncoding": new(big.Int).SetUint64(uint64(r.BodyEncoding)),
	}
}

func headersMessage(headers []attestationHeader) []interface{} {
	out := make([]interface{}, len(headers))
	for i, h := range headers {
		out[i] = map[string]interface{}{
			"name":  h.Name,
			"value": h.Value,
		}
	}
	return out
}
