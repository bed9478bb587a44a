/**
 * @description
 * This file implements the Solidity ABI v2 encoder: it packs the fixed
 * Attestation struct per ethabi's ArgumentMarshaling layout and digests
 * the packed bytes with keccak-256, matching the encoding an on-chain
 * verifier would re-derive.
 *
 * @dependencies
 * - github.com/ethereum/go-ethereum/accounts/abi: struct packing.
 * - github.com/ethereum/go-ethereum/crypto: keccak-256.
 */
package encoding

import (
	"fmt"

	ethabi "github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/TheFrozenFire/simple-notary/internal/transcript"
)

// headerComponents describes Header = { name: string, value: string }.
var headerComponents = []ethabi.ArgumentMarshaling{
	{Name: "Name", Type: "string"},
	{Name: "Value", Type: "string"},
}

// requestComponents describes Request = { present, method, target,
// headers, body, bodyEncoding }.
var requestComponents = []ethabi.ArgumentMarshaling{
	{Name: "Present", Type: "bool"},
	{Name: "Method", Type: "string"},
	{Name: "Target", Type: "string"},
	{Name: "Headers", Type: "tuple[]", Components: headerComponents},
	{Name: "Body", Type: "bytes"},
	{Name: "BodyEncoding", Type: "uint8"},
}

// responseComponents describes Response = { present, status, headers,
// body, bodyEncoding }.
var responseComponents = []ethabi.ArgumentMarshaling{
	{Name: "Present", Type: "bool"},
	{Name: "Status", Type: "uint16"},
	{Name: "Headers", Type: "tuple[]", Components: headerComponents},
	{Name: "Body", Type: "bytes"},
	{Name: "BodyEncoding", Type: "uint8"},
}

// attestationComponents describes Attestation = { requests, responses }.
var attestationComponents = []ethabi.ArgumentMarshaling{
	{Name: "Requests", Type: "tuple[]", Components: requestComponents},
	{Name: "Responses", Type: "tuple[]", Components: responseComponents},
}

func attestationArguments() (ethabi.Arguments, error) {
	attType, err := ethabi.NewType("tuple", "", attestationComponents)
	if err != nil {
		return nil, fmt.Errorf("encoding: building attestation abi type: %w", err)
	}
	return ethabi.Arguments{{Type: attType}}, nil
}

// kvArguments describes the (string[] keys, string[] values) pair packed
// for a JSON-KV request/response body.
func kvArguments() ethabi.Arguments {
	stringArray, _ := ethabi.NewType("string[]", "", nil)
	return ethabi.Arguments{
		{Name: "keys", Type: stringArray},
		{Name: "values", Type: stringArray},
	}
}

/**
 * @description
 * abiPackKV ABI-encodes a parallel (keys, values) string array pair, used
 * by the JSON-KV body-encoding rule.
 *
 * @param keys Object keys, already sorted by the caller for determinism.
 * @param values JSON-encoded values, aligned index-for-index with keys.
 * @returns The packed bytes, or an error from the underlying ABI pack.
 * @notes Callers must sort keys themselves; this function packs whatever
 * order it is given.
 */
func abiPackKV(keys, values []string) ([]byte, error) {
	return kvArguments().Pack(keys, values)
}

// ABIEncoder packs the context into the fixed Attestation struct per the
// Solidity v2 ABI and digests it with keccak-256, the encoding Ethereum
// smart contracts use to verify an on-chain-recoverable attestation.
type ABIEncoder struct{}

func NewABIEncoder() *ABIEncoder {
	return &ABIEncoder{}
}

func (e *ABIEncoder) Encode(ctx *transcript.HttpContext, _ EncodeOptions) (EncodedContext, error) {
	data, err := packAttestation(ctx)
	if err != nil {
		return EncodedContext{}, err
	}
	digest := crypto.Keccak256(data)
	return EncodedContext{Data: data, Digest: digest}, nil
}

func (e *ABIEncoder) Name() string {
	return "abi"
}

func (e *ABIEncoder) AvailableModels() []string {
	return nil
}

/**
 * @description
 * packAttestation builds the Attestation struct from ctx and ABI-encodes
 * it, shared by the ABI and EIP-712 encoders since both use identical data
 * bytes.
 *
 * @param ctx The context to project and pack.
 * @returns The packed attestation bytes.
 */
func packAttestation(ctx *transcript.HttpContext) ([]byte, error) {
	att, err := buildAttestation(ctx)
	if err != nil {
		return nil, err
	}
	args, err := attestationArguments()
	if err != nil {
		return nil, err
	}
	data, err := args.Pack(att)
	if err != nil {
		return nil, fmt.Errorf("encoding: abi-packing attestation: %w", err)
	}
	return data, nil
}
