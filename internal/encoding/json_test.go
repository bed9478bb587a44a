package encoding

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TheFrozenFire/simple-notary/internal/transcript"
)

func TestJSONEncodeDeterministic(t *testing.T) {
	ctx := &transcript.HttpContext{
		Requests: []*transcript.Request{
			{Method: "GET", Target: "/", Body: transcript.NewUnknownBody(nil)},
		},
	}

	enc := NewJSONEncoder()
	a, err := enc.Encode(ctx, EncodeOptions{})
	require.NoError(t, err)
	b, err := enc.Encode(ctx, EncodeOptions{})
	require.NoError(t, err)

	require.Equal(t, a.Data, b.Data)
	require.Equal(t, a.Digest, b.Digest)
}

func TestJSONDigestIsSHA256(t *testing.T) {
	ctx := &transcript.HttpContext{}
	enc := NewJSONEncoder()
	encoded, err := enc.Encode(ctx, EncodeOptions{})
	require.NoError(t, err)

	expected := sha256.Sum256(encoded.Data)
	require.Equal(t, expected[:], encoded.Digest)
}

func TestJSONEncoderName(t *testing.T) {
	require.Equal(t, "json", NewJSONEncoder().Name())
}
