/**
 * @description
 * Package exchange drives the two-phase selective-disclosure signing
 * exchange: present the authenticated context to the prover as canonical
 * JSON, let it choose full disclosure or a redacted subset, encode and
 * sign whichever value it picked, and return the signed result.
 *
 * @dependencies
 * - internal/protocol: frame and message types.
 * - internal/subset: the redaction-legality predicate.
 * - internal/encoding, internal/signing: pluggable encode/sign strategy.
 */
package exchange

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/TheFrozenFire/simple-notary/internal/apperrors"
	"github.com/TheFrozenFire/simple-notary/internal/encoding"
	"github.com/TheFrozenFire/simple-notary/internal/protocol"
	"github.com/TheFrozenFire/simple-notary/internal/signing"
	"github.com/TheFrozenFire/simple-notary/internal/subset"
	"github.com/TheFrozenFire/simple-notary/internal/transcript"
)

/**
 * @description
 * Run executes the exchange over stream: it always sends the full
 * authenticated context first, then honors whatever disclosure the prover
 * requests, and on success sends exactly one Signed message before
 * returning. On any error it returns without sending a Signed message.
 *
 * @param stream The framed duplex connection to the prover.
 * @param ctx The authenticated HttpContext built by the verifier boundary.
 * @param enc The configured context encoder.
 * @param signer The configured context signer.
 * @param opts Encoder-specific options (EIP-712 domain, embedding model).
 * @returns An error classified by apperrors.Kind, or nil on a completed
 * exchange.
 */
func Run(stream io.ReadWriter, ctx *transcript.HttpContext, enc encoding.ContextEncoder, signer signing.ContextSigner, opts encoding.EncodeOptions) error {
	ctxJSON, err := json.Marshal(ctx)
	if err != nil {
		return apperrors.Wrap(apperrors.KindTransport, "marshaling authenticated context", err)
	}

	if err := protocol.WriteMessage(stream, protocol.ContextMessage{Data: string(ctxJSON)}); err != nil {
		return apperrors.Wrap(apperrors.KindTransport, "sending context message", err)
	}

	proverMsg, err := protocol.ReadProverMessage(stream)
	if err != nil {
		return apperrors.Wrap(apperrors.KindProtocol, "reading prover message", err)
	}

	valueJSON, err := selectDisclosure(proverMsg, ctxJSON)
	if err != nil {
		return err
	}

	var disclosed transcript.HttpContext
	if err := json.Unmarshal(valueJSON, &disclosed); err != nil {
		return apperrors.Wrap(apperrors.KindProtocol, "parsing disclosed context", err)
	}

	encoded, err := enc.Encode(&disclosed, opts)
	if err != nil {
		return apperrors.Wrap(apperrors.KindCrypto, "encoding disclosed context", err)
	}

	sig, err := signer.SignDigest(encoded.Digest)
	if err != nil {
		return apperrors.Wrap(apperrors.KindCrypto, "signing digest", err)
	}

	dataStr := dataString(enc.Name(), encoded.Data)

	signed := protocol.SignedMessage{
		Data:      dataStr,
		Format:    enc.Name(),
		Signature: hex.EncodeToString(sig),
		PublicKey: hex.EncodeToString(signer.PublicKeyBytes()),
		Algorithm: signer.Algorithm(),
	}
	if err := protocol.WriteMessage(stream, signed); err != nil {
		return apperrors.Wrap(apperrors.KindTransport, "sending signed message", err)
	}

	return nil
}

/**
 * @description
 * selectDisclosure returns the raw JSON value to encode: the full context
 * on SignRequest, or the prover's filtered view on SignFiltered, after
 * verifying it discloses no more than the authenticated context allows.
 *
 * @returns The JSON bytes to encode, or a Protocol/Policy error (Transport
 * if the authenticated context itself fails to re-parse).
 */
func selectDisclosure(proverMsg protocol.ProverMessage, ctxJSON []byte) ([]byte, error) {
	switch msg := proverMsg.(type) {
	case protocol.SignRequestMessage:
		return ctxJSON, nil
	case protocol.SignFilteredMessage:
		filteredJSON := []byte(msg.Data)

		var filtered, original any
		if err := json.Unmarshal(filteredJSON, &filtered); err != nil {
			return nil, apperrors.Wrap(apperrors.KindProtocol, "parsing filtered disclosure", err)
		}
		if err := json.Unmarshal(ctxJSON, &original); err != nil {
			return nil, apperrors.Wrap(apperrors.KindTransport, "re-parsing authenticated context", err)
		}
		if !subset.IsSubset(filtered, original) {
			return nil, apperrors.New(apperrors.KindPolicy, "filtered disclosure is not a subset of the authenticated context")
		}
		return filteredJSON, nil
	default:
		return nil, apperrors.New(apperrors.KindProtocol, fmt.Sprintf("unexpected prover message type %T", proverMsg))
	}
}

// dataString follows the wire rule: JSON-formatted data ships as UTF-8
// text, everything else as lowercase hex.
func dataString(encoderName string, data []byte) string {
	if encoderName == "json" {
		return string(data)
	}
	return hex.EncodeToString(data)
}
