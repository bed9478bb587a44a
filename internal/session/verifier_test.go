package session

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TheFrozenFire/simple-notary/internal/protocol"
)

func TestStubVerifierAuthenticatesFullTranscript(t *testing.T) {
	stream := &bytes.Buffer{}
	sent := []byte("GET / HTTP/1.1\r\n\r\n")
	received := []byte("HTTP/1.1 200 OK\r\n\r\n")
	require.NoError(t, protocol.WriteMessage(stream, stubPreface{Sent: sent, Received: received}))

	v := NewStubVerifier()
	pt, returnedStream, err := v.Verify(context.Background(), stream)
	require.NoError(t, err)
	require.Same(t, stream, returnedStream.(*bytes.Buffer))

	require.Equal(t, sent, pt.Sent)
	require.Equal(t, received, pt.Received)
	require.True(t, pt.SentAuthenticated(0, len(sent)))
	require.True(t, pt.ReceivedAuthenticated(0, len(received)))
}
