/**
 * @description
 * This file handles the /notarize upgrade: validating the request is a
 * real WebSocket upgrade, rejecting unsupported query parameters, and
 * handing the upgraded connection off to its own Session goroutine.
 */
package httpapi

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"github.com/TheFrozenFire/simple-notary/internal/session"
)

// upgrader configures the WebSocket handshake for /notarize. Each
// notarization session is a private point-to-point exchange, not a
// fan-out broadcast, so unlike a chat-style hub there is no shared
// registry of connections here — every upgraded connection gets its own
// Session run in its own goroutine.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

/**
 * @description
 * serveNotarize upgrades the connection and runs one Session over it.
 * A request that isn't a WebSocket upgrade is rejected with 400, per the
 * malformed-prover-request branch of the error taxonomy — it never
 * reaches the notarization pipeline at all.
 *
 * @param c The gin request context for /notarize.
 */
func (s *Server) serveNotarize(c *gin.Context) {
	if !websocket.IsWebSocketUpgrade(c.Request) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "expected websocket upgrade"})
		return
	}

	// context_format=Binary is a legacy placeholder in the original
	// service that was never wired to a real codec; reject it rather
	// than silently mis-serving a client expecting binary framing.
	if format := c.Query("context_format"); format == "Binary" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "context_format=Binary is not supported"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		s.logger.Error("failed to upgrade connection", "error", err)
		return
	}

	stream := newWSStream(conn)
	sess := &session.Session{
		Verifier:       s.verifier,
		ContextBuilder: s.buildCtx,
		Encoder:        s.encoder,
		Signer:         s.signer,
		EncodeOptions:  s.encodeOptions,
		Logger:         s.logger,
	}

	go func() {
		defer conn.Close()
		if err := sess.Run(context.Background(), stream); err != nil {
			s.logger.Error("session failed", "error", err, "remote_addr", conn.RemoteAddr())
		}
	}()
}
