/**
 * @description
 * Package httpapi is the HTTP front door: a health check and the
 * WebSocket upgrade endpoint each notarization connection arrives
 * through, built on the same gin + gorilla/websocket stack the rest of
 * this codebase's services use.
 *
 * @dependencies
 * - github.com/gin-gonic/gin: routing and recovery middleware.
 * - github.com/gorilla/websocket: the upgrade handshake and framing.
 */
package httpapi

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/TheFrozenFire/simple-notary/internal/encoding"
	"github.com/TheFrozenFire/simple-notary/internal/session"
	"github.com/TheFrozenFire/simple-notary/internal/signing"
)

// Server serves the notary's HTTP/WebSocket surface.
type Server struct {
	Router *gin.Engine

	logger        *slog.Logger
	verifier      session.Verifier
	buildCtx      session.ContextBuilder
	encoder       encoding.ContextEncoder
	signer        signing.ContextSigner
	encodeOptions encoding.EncodeOptions
}

/**
 * @description
 * NewServer builds the router and registers routes. signer may be nil,
 * in which case every session runs in legacy (unsigned) mode.
 *
 * @param logger Base structured logger; each session attaches its own
 * correlation ID on top of it.
 * @param verifier The MPC-TLS verifier boundary.
 * @param buildCtx Builds an HttpContext from a verified transcript.
 * @param encoder The configured context encoder.
 * @param signer The configured context signer, or nil for legacy mode.
 * @param opts Encoder-specific options threaded through every session.
 * @returns A *Server with its router fully wired and ready to serve.
 */
func NewServer(logger *slog.Logger, verifier session.Verifier, buildCtx session.ContextBuilder, encoder encoding.ContextEncoder, signer signing.ContextSigner, opts encoding.EncodeOptions) *Server {
	s := &Server{
		logger:        logger,
		verifier:      verifier,
		buildCtx:      buildCtx,
		encoder:       encoder,
		signer:        signer,
		encodeOptions: opts,
	}

	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/healthcheck", func(c *gin.Context) {
		c.String(http.StatusOK, "Ok")
	})
	router.Any("/notarize", s.serveNotarize)

	s.Router = router
	return s
}
