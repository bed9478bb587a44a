/**
 * @description
 * This file implements the plain JSON/SHA-256 encoder, the default and the
 * only encoder compatible with the RSA signer.
 */
package encoding

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"github.com/TheFrozenFire/simple-notary/internal/transcript"
)

// JSONEncoder serializes the context to its canonical JSON form and digests
// it with SHA-256. encoding/json already sorts map keys and preserves
// struct field order, giving deterministic output across calls.
type JSONEncoder struct{}

func NewJSONEncoder() *JSONEncoder {
	return &JSONEncoder{}
}

func (e *JSONEncoder) Encode(ctx *transcript.HttpContext, _ EncodeOptions) (EncodedContext, error) {
	data, err := json.Marshal(ctx)
	if err != nil {
		return EncodedContext{}, fmt.Errorf("encoding: marshaling context to json: %w", err)
	}
	digest := sha256.Sum256(data)
	return EncodedContext{Data: data, Digest: digest[:]}, nil
}

func (e *JSONEncoder) Name() string {
	return "json"
}

func (e *JSONEncoder) AvailableModels() []string {
	return nil
}
