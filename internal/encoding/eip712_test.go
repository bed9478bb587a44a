package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TheFrozenFire/simple-notary/internal/transcript"
)

func testDomain() EIP712Domain {
	return EIP712Domain{
		Name:              "simple-notary",
		Version:           "1",
		ChainID:           1,
		VerifyingContract: "0x0000000000000000000000000000000000000001",
	}
}

func TestEIP712SameDataAsABI(t *testing.T) {
	ctx := &transcript.HttpContext{
		Requests:  []*transcript.Request{{Method: "GET", Target: "/"}},
		Responses: []*transcript.Response{{Status: 200}},
	}

	abiEncoded, err := NewABIEncoder().Encode(ctx, EncodeOptions{})
	require.NoError(t, err)

	eip712Encoded, err := NewEIP712Encoder().Encode(ctx, EncodeOptions{EIP712Domain: testDomain()})
	require.NoError(t, err)

	require.Equal(t, abiEncoded.Data, eip712Encoded.Data)
	require.NotEqual(t, abiEncoded.Digest, eip712Encoded.Digest)
	require.Len(t, eip712Encoded.Digest, 32)
}

func TestEIP712DigestDeterministicUnderSameDomain(t *testing.T) {
	ctx := &transcript.HttpContext{
		Requests: []*transcript.Request{{Method: "POST", Target: "/api"}},
	}

	enc := NewEIP712Encoder()
	a, err := enc.Encode(ctx, EncodeOptions{EIP712Domain: testDomain()})
	require.NoError(t, err)
	b, err := enc.Encode(ctx, EncodeOptions{EIP712Domain: testDomain()})
	require.NoError(t, err)
	require.Equal(t, a.Digest, b.Digest)
}

func TestEIP712DigestVariesByDomain(t *testing.T) {
	ctx := &transcript.HttpContext{
		Requests: []*transcript.Request{{Method: "POST", Target: "/api"}},
	}

	enc := NewEIP712Encoder()
	domainA := testDomain()
	domainB := testDomain()
	domainB.ChainID = 137

	a, err := enc.Encode(ctx, EncodeOptions{EIP712Domain: domainA})
	require.NoError(t, err)
	b, err := enc.Encode(ctx, EncodeOptions{EIP712Domain: domainB})
	require.NoError(t, err)

	require.NotEqual(t, a.Digest, b.Digest)
	require.Equal(t, a.Data, b.Data)
}

func TestEIP712EncoderName(t *testing.T) {
	require.Equal(t, "eip712", NewEIP712Encoder().Name())
}
