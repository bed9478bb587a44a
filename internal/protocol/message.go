/**
 * @description
 * This file defines the tagged-variant message schema exchanged over the
 * framed wire: the notary→prover union (Context, Signed) and the
 * prover→notary union (SignRequest, SignFiltered), plus the JSON
 * discriminator dance needed since Go has no native sum types.
 */
package protocol

import (
	"encoding/json"
	"fmt"
	"io"
)

// NotaryMessage is the notary→prover message union: Context (always sent
// first) or Signed (sent exactly once, last).
type NotaryMessage interface {
	isNotaryMessage()
}

// ContextMessage carries the canonical JSON of the HttpContext for the
// prover to review before choosing what to disclose.
type ContextMessage struct {
	Data string `json:"data"`
}

func (ContextMessage) isNotaryMessage() {}

// MarshalJSON injects the "type" discriminator expected on the wire.
func (m ContextMessage) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type string `json:"type"`
		Data string `json:"data"`
	}
	return json.Marshal(wire{Type: "Context", Data: m.Data})
}

// SignedMessage carries the signed attestation: the encoded data (UTF-8
// JSON when Format == "json", lowercase hex otherwise), the signature, the
// signer's public key, and the algorithm tag — all hex/UTF-8 as specified.
type SignedMessage struct {
	Data      string `json:"data"`
	Format    string `json:"format"`
	Signature string `json:"signature"`
	PublicKey string `json:"public_key"`
	Algorithm string `json:"algorithm"`
}

func (SignedMessage) isNotaryMessage() {}

func (m SignedMessage) MarshalJSON() ([]byte, error) {
	type wire struct {
		Type      string `json:"type"`
		Data      string `json:"data"`
		Format    string `json:"format"`
		Signature string `json:"signature"`
		PublicKey string `json:"public_key"`
		Algorithm string `json:"algorithm"`
	}
	return json.Marshal(wire{
		Type:      "Signed",
		Data:      m.Data,
		Format:    m.Format,
		Signature: m.Signature,
		PublicKey: m.PublicKey,
		Algorithm: m.Algorithm,
	})
}

// ProverMessage is the prover→notary message union: SignRequest (sign the
// full context) or SignFiltered (sign the supplied redacted subset).
type ProverMessage interface {
	isProverMessage()
}

// SignRequestMessage asks the notary to sign the full, unredacted context.
type SignRequestMessage struct{}

func (SignRequestMessage) isProverMessage() {}

// SignFilteredMessage asks the notary to sign a prover-chosen redacted
// subset of the context.
type SignFilteredMessage struct {
	Data string `json:"data"`
}

func (SignFilteredMessage) isProverMessage() {}

/**
 * @description
 * DecodeProverMessage dispatches a raw JSON prover message to its concrete
 * type based on the "type" discriminator field.
 *
 * @param raw The undecoded JSON payload of one frame.
 * @returns The concrete ProverMessage variant, or an error if the
 * discriminator is missing, unrecognized, or the payload doesn't parse.
 */
func DecodeProverMessage(raw []byte) (ProverMessage, error) {
	var tag struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &tag); err != nil {
		return nil, fmt.Errorf("protocol: decoding prover message tag: %w", err)
	}

	switch tag.Type {
	case "SignRequest":
		return SignRequestMessage{}, nil
	case "SignFiltered":
		var m struct {
			Data string `json:"data"`
		}
		if err := json.Unmarshal(raw, &m); err != nil {
			return nil, fmt.Errorf("protocol: decoding SignFiltered: %w", err)
		}
		return SignFilteredMessage{Data: m.Data}, nil
	default:
		return nil, fmt.Errorf("protocol: unknown prover message type %q", tag.Type)
	}
}

// ReadProverMessage reads one length-prefixed frame and decodes it as a
// ProverMessage.
func ReadProverMessage(r io.Reader) (ProverMessage, error) {
	var raw json.RawMessage
	if err := ReadMessage(r, &raw); err != nil {
		return nil, err
	}
	return DecodeProverMessage(raw)
}
