/**
 * @description
 * This file projects an HttpContext onto the fixed Attestation struct
 * layout shared by the ABI and EIP-712 encoders, applying the
 * body-encoding discriminator rules (none/raw/json-kv) along the way.
 */
package encoding

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/TheFrozenFire/simple-notary/internal/transcript"
)

// Body-encoding discriminator values, shared by the ABI and EIP-712
// encoders (both encode the same Attestation struct).
const (
	bodyEncodingNone   uint8 = 0
	bodyEncodingRaw    uint8 = 1
	bodyEncodingJSONKV uint8 = 2
)

// attestationHeader mirrors the fixed ABI struct layout:
// Header = { name: string, value: string }.
type attestationHeader struct {
	Name  string
	Value string
}

// attestationRequest mirrors Request = { present, method, target, headers,
// body, bodyEncoding }.
type attestationRequest struct {
	Present      bool
	Method       string
	Target       string
	Headers      []attestationHeader
	Body         []byte
	BodyEncoding uint8
}

// attestationResponse mirrors Response = { present, status, headers, body,
// bodyEncoding }.
type attestationResponse struct {
	Present      bool
	Status       uint16
	Headers      []attestationHeader
	Body         []byte
	BodyEncoding uint8
}

// attestation mirrors Attestation = { requests, responses }.
type attestation struct {
	Requests  []attestationRequest
	Responses []attestationResponse
}

// buildAttestation projects an HttpContext onto the fixed Attestation
// layout, applying the body-encoding rules position-preservingly.
func buildAttestation(ctx *transcript.HttpContext) (attestation, error) {
	att := attestation{
		Requests:  make([]attestationRequest, len(ctx.Requests)),
		Responses: make([]attestationResponse, len(ctx.Responses)),
	}
	for i, req := range ctx.Requests {
		ar, err := encodeRequest(req)
		if err != nil {
			return attestation{}, fmt.Errorf("encoding: attestation request %d: %w", i, err)
		}
		att.Requests[i] = ar
	}
	for i, resp := range ctx.Responses {
		ar, err := encodeResponse(resp)
		if err != nil {
			return attestation{}, fmt.Errorf("encoding: attestation response %d: %w", i, err)
		}
		att.Responses[i] = ar
	}
	return att, nil
}

func encodeRequest(req *transcript.Request) (attestationRequest, error) {
	if req == nil {
		return attestationRequest{}, nil
	}
	body, bodyEnc, err := encodeBody(req.Body)
	if err != nil {
		return attestationRequest{}, err
	}
	return attestationRequest{
		Present:      true,
		Method:       req.Method,
		Target:       req.Target,
		Headers:      encodeHeaders(req.Headers),
		Body:         body,
		BodyEncoding: bodyEnc,
	}, nil
}

func encodeResponse(resp *transcript.Response) (attestationResponse, error) {
	if resp == nil {
		return attestationResponse{}, nil
	}
	body, bodyEnc, err := encodeBody(resp.Body)
	if err != nil {
		return attestationResponse{}, err
	}
	return attestationResponse{
		Present:      true,
		Status:       resp.Status,
		Headers:      encodeHeaders(resp.Headers),
		Body:         body,
		BodyEncoding: bodyEnc,
	}, nil
}

// encodeHeaders maps nil headers to the empty-pair placeholder at each
// position, preserving index alignment with the original slice.
func encodeHeaders(headers []*transcript.Header) []attestationHeader {
	out := make([]attestationHeader, len(headers))
	for i, h := range headers {
		if h == nil {
			continue // zero value is already {"", ""}
		}
		out[i] = attestationHeader{Name: h.Name, Value: h.Value}
	}
	return out
}

// encodeBody applies the body-encoding discriminator rules: NONE for
// absent/null/unrecognized shapes, RAW for unknown bytes or non-object JSON,
// JSON-KV for JSON objects (ABI-encoded as parallel key/value string arrays).
func encodeBody(body *transcript.Body) ([]byte, uint8, error) {
	if body == nil {
		return []byte{}, bodyEncodingNone, nil
	}
	if body.IsUnknown() {
		return body.Unknown, bodyEncodingRaw, nil
	}
	if !body.IsJSON() {
		return []byte{}, bodyEncodingNone, nil
	}

	switch v := body.Json.(type) {
	case nil:
		return []byte{}, bodyEncodingNone, nil
	case map[string]any:
		keys := make([]string, 0, len(v))
		for k := range v {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		values := make([]string, len(keys))
		for i, k := range keys {
			encoded, err := json.Marshal(v[k])
			if err != nil {
				return nil, 0, fmt.Errorf("encoding: marshaling body value for key %q: %w", k, err)
			}
			values[i] = string(encoded)
		}
		packed, err := abiPackKV(keys, values)
		if err != nil {
			return nil, 0, fmt.Errorf("encoding: abi-packing json-kv body: %w", err)
		}
		return packed, bodyEncodingJSONKV, nil
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil, 0, fmt.Errorf("encoding: marshaling raw json body: %w", err)
		}
		return raw, bodyEncodingRaw, nil
	}
}
