package session

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TheFrozenFire/simple-notary/internal/encoding"
	"github.com/TheFrozenFire/simple-notary/internal/protocol"
	"github.com/TheFrozenFire/simple-notary/internal/signing"
	"github.com/TheFrozenFire/simple-notary/internal/transcript"
)

func TestSessionRunEndToEndWithSigner(t *testing.T) {
	stream := &bytes.Buffer{}
	sent := []byte("GET / HTTP/1.1\r\n\r\n")
	received := []byte("HTTP/1.1 200 OK\r\nContent-Length: 2\r\n\r\nok")
	require.NoError(t, protocol.WriteMessage(stream, stubPreface{Sent: sent, Received: received}))
	require.NoError(t, protocol.WriteMessage(stream, protocol.SignRequestMessage{}))

	signer, err := signing.NewSecp256k1Signer("seed")
	require.NoError(t, err)

	sess := &Session{
		Verifier:       NewStubVerifier(),
		ContextBuilder: NewNaiveContextBuilder(),
		Encoder:        encoding.NewJSONEncoder(),
		Signer:         signer,
	}

	err = sess.Run(context.Background(), stream)
	require.NoError(t, err)

	var contextMsg struct {
		Type string `json:"type"`
	}
	require.NoError(t, protocol.ReadMessage(stream, &contextMsg))
	require.Equal(t, "Context", contextMsg.Type)

	var signedMsg struct {
		Type string `json:"type"`
	}
	require.NoError(t, protocol.ReadMessage(stream, &signedMsg))
	require.Equal(t, "Signed", signedMsg.Type)
}

func TestSessionRunLegacyModeWithoutSigner(t *testing.T) {
	stream := &bytes.Buffer{}
	sent := []byte("GET / HTTP/1.1\r\n\r\n")
	require.NoError(t, protocol.WriteMessage(stream, stubPreface{Sent: sent, Received: nil}))

	sess := &Session{
		Verifier:       NewStubVerifier(),
		ContextBuilder: NewNaiveContextBuilder(),
	}

	err := sess.Run(context.Background(), stream)
	require.NoError(t, err)

	// Legacy mode writes the canonical context JSON directly to the
	// stream with no length-prefix framing and no message envelope.
	var httpCtx transcript.HttpContext
	require.NoError(t, json.Unmarshal(stream.Bytes(), &httpCtx))
	require.Len(t, httpCtx.Requests, 1)
}
