package protocol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRoundtripContextMessage(t *testing.T) {
	var buf bytes.Buffer
	msg := ContextMessage{Data: `{"requests":[],"responses":[]}`}
	require.NoError(t, WriteMessage(&buf, msg))

	var decoded struct {
		Type string `json:"type"`
		Data string `json:"data"`
	}
	require.NoError(t, ReadMessage(&buf, &decoded))
	require.Equal(t, "Context", decoded.Type)
	require.Equal(t, msg.Data, decoded.Data)
}

func TestRoundtripProverSignRequest(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, struct {
		Type string `json:"type"`
	}{Type: "SignRequest"}))

	msg, err := ReadProverMessage(&buf)
	require.NoError(t, err)
	require.IsType(t, SignRequestMessage{}, msg)
}

func TestRoundtripSignFiltered(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteMessage(&buf, SignFilteredMessage{Data: `{"a":null}`}))

	msg, err := ReadProverMessage(&buf)
	require.NoError(t, err)
	filtered, ok := msg.(SignFilteredMessage)
	require.True(t, ok)
	require.Equal(t, `{"a":null}`, filtered.Data)
}

func TestRoundtripSignedMessage(t *testing.T) {
	var buf bytes.Buffer
	msg := SignedMessage{
		Data:      "context",
		Format:    "json",
		Signature: "deadbeef",
		PublicKey: "cafebabe",
		Algorithm: "secp256k1",
	}
	require.NoError(t, WriteMessage(&buf, msg))

	var decoded struct {
		Type      string `json:"type"`
		Data      string `json:"data"`
		Format    string `json:"format"`
		Signature string `json:"signature"`
		PublicKey string `json:"public_key"`
		Algorithm string `json:"algorithm"`
	}
	require.NoError(t, ReadMessage(&buf, &decoded))
	require.Equal(t, "Signed", decoded.Type)
	require.Equal(t, msg.Signature, decoded.Signature)
	require.Equal(t, msg.Algorithm, decoded.Algorithm)
}

func TestOversizeLengthRejected(t *testing.T) {
	var buf bytes.Buffer
	oversize := uint32(MaxPayloadSize + 1)
	lenBuf := []byte{byte(oversize >> 24), byte(oversize >> 16), byte(oversize >> 8), byte(oversize)}
	buf.Write(lenBuf)

	var out any
	err := ReadMessage(&buf, &out)
	require.Error(t, err)
}

func TestWriteMessageRejectsOversizePayload(t *testing.T) {
	var buf bytes.Buffer
	huge := make([]byte, MaxPayloadSize+1)
	err := WriteMessage(&buf, struct {
		Data []byte `json:"data"`
	}{Data: huge})
	require.Error(t, err)
}

func TestUnknownProverMessageTypeRejected(t *testing.T) {
	_, err := DecodeProverMessage([]byte(`{"type":"Bogus"}`))
	require.Error(t, err)
}
