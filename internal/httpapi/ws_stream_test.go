package httpapi

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func TestWSStreamRoundTripsAcrossMessageBoundaries(t *testing.T) {
	upgrader := websocket.Upgrader{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		require.NoError(t, err)
		defer conn.Close()

		stream := newWSStream(conn)
		buf := make([]byte, 5)
		_, err = io.ReadFull(stream, buf)
		require.NoError(t, err)
		_, err = stream.Write(buf)
		require.NoError(t, err)
	}))
	defer server.Close()

	wsURL := "ws" + server.URL[len("http"):]
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte("he")))
	require.NoError(t, conn.WriteMessage(websocket.BinaryMessage, []byte("llo")))

	_, data, err := conn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, []byte("hello"), data)
}
