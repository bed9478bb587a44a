package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TheFrozenFire/simple-notary/internal/transcript"
)

func TestEmbeddingRejectsModelNotInAllowList(t *testing.T) {
	enc := NewEmbeddingEncoder([]string{"model-a"})
	ctx := &transcript.HttpContext{}

	_, err := enc.Encode(ctx, EncodeOptions{EmbeddingModel: "model-b"})
	require.Error(t, err)
}

func TestEmbeddingDeterministicForSameInput(t *testing.T) {
	enc := NewEmbeddingEncoder([]string{"model-a"})
	ctx := &transcript.HttpContext{
		Requests: []*transcript.Request{{Method: "GET", Target: "/"}},
	}

	a, err := enc.Encode(ctx, EncodeOptions{EmbeddingModel: "model-a"})
	require.NoError(t, err)
	b, err := enc.Encode(ctx, EncodeOptions{EmbeddingModel: "model-a"})
	require.NoError(t, err)

	require.Equal(t, a.Data, b.Data)
	require.Equal(t, a.Digest, b.Digest)
}

func TestEmbeddingFloat32QuantizationZeroScale(t *testing.T) {
	enc := NewEmbeddingEncoder([]string{"model-a"})
	ctx := &transcript.HttpContext{}

	encoded, err := enc.Encode(ctx, EncodeOptions{EmbeddingModel: "model-a", Quantization: QuantizationFloat32})
	require.NoError(t, err)
	require.NotEmpty(t, encoded.Data)

	packed, scaleWad := quantizeVector([]float64{0.5, -1, 0.25}, QuantizationFloat32)
	require.Len(t, packed, 12)
	require.Equal(t, int64(0), scaleWad.Int64())
}

func TestEmbeddingInt8QuantizationWithinRange(t *testing.T) {
	vec := []float64{0.5, -1, 0, 1, -0.1}
	quantized, scaleWad := quantizeVector(vec, QuantizationInt8)

	require.Len(t, quantized, len(vec))
	for _, b := range quantized {
		v := int8(b)
		require.GreaterOrEqual(t, v, int8(-127))
		require.LessOrEqual(t, v, int8(127))
	}
	require.NotNil(t, scaleWad)
	require.Equal(t, 0, scaleWad.Cmp(scaleWad)) // sanity: comparable to itself
}

func TestEmbeddingInt8AllZeroVectorHasZeroScale(t *testing.T) {
	vec := []float64{0, 0, 0}
	quantized, scaleWad := quantizeVector(vec, QuantizationInt8)

	require.Equal(t, []byte{0, 0, 0}, quantized)
	require.Equal(t, int64(0), scaleWad.Int64())
}

func TestEmbeddingRegistrySharesLoadedModel(t *testing.T) {
	registry := newEmbeddingRegistry([]string{"model-a"})

	m1, err := registry.get("model-a")
	require.NoError(t, err)
	m2, err := registry.get("model-a")
	require.NoError(t, err)

	require.Same(t, m1, m2)
}

func TestEmbeddingEncoderName(t *testing.T) {
	require.Equal(t, "embedding", NewEmbeddingEncoder(nil).Name())
}
