/**
 * @description
 * This file adapts gorilla/websocket's message-framed connection into a
 * plain io.ReadWriter, so the length-prefixed framing codec and legacy
 * raw-JSON path can both run unmodified over a WebSocket transport.
 */
package httpapi

import (
	"bytes"
	"io"

	"github.com/gorilla/websocket"
)

// wsStream adapts a *websocket.Conn — message-framed — into the plain
// io.ReadWriter the framing codec and signing exchange expect, buffering
// whatever remains of a websocket message across Read calls.
type wsStream struct {
	conn *websocket.Conn
	buf  bytes.Buffer
}

func newWSStream(conn *websocket.Conn) *wsStream {
	return &wsStream{conn: conn}
}

func (s *wsStream) Read(p []byte) (int, error) {
	for s.buf.Len() == 0 {
		_, data, err := s.conn.ReadMessage()
		if err != nil {
			return 0, err
		}
		s.buf.Write(data)
	}
	return s.buf.Read(p)
}

func (s *wsStream) Write(p []byte) (int, error) {
	w, err := s.conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(p)
	if err != nil {
		w.Close()
		return n, err
	}
	if err := w.Close(); err != nil {
		return n, err
	}
	return n, nil
}

var _ io.ReadWriter = (*wsStream)(nil)
