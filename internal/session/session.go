// Package session wires together the MPC-TLS verifier boundary, the
// HttpContext builder, and the signing-exchange driver into the single
// pipeline one notarization connection runs through.
package session

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"github.com/TheFrozenFire/simple-notary/internal/apperrors"
	"github.com/TheFrozenFire/simple-notary/internal/encoding"
	"github.com/TheFrozenFire/simple-notary/internal/exchange"
	"github.com/TheFrozenFire/simple-notary/internal/signing"
	"github.com/TheFrozenFire/simple-notary/internal/transcript"
)

// Session runs one notarization-plus-signing connection end to end:
// verify, build the context, and (if a signer is configured) drive the
// signing exchange. With no signer, it falls back to writing the
// canonical context JSON straight to the stream and returning — the
// server's legacy, unsigned mode. Closing the stream is left to the caller.
type Session struct {
	Verifier       Verifier
	ContextBuilder ContextBuilder
	Encoder        encoding.ContextEncoder
	Signer         signing.ContextSigner
	EncodeOptions  encoding.EncodeOptions
	Logger         *slog.Logger
}

/**
 * @description
 * Run executes the session against stream. Any failure at any stage
 * terminates the session immediately — there are no retries.
 *
 * @param ctx Cancels the verifier run; does not interrupt the exchange.
 * @param stream The duplex connection the prover is speaking over.
 * @returns An error classified by apperrors.Kind, or nil once the session
 * completes (legacy context sent, or a full signing exchange finished).
 */
func (s *Session) Run(ctx context.Context, stream io.ReadWriter) error {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("session_id", uuid.NewString())

	pt, stream, err := s.Verifier.Verify(ctx, stream)
	if err != nil {
		return apperrors.Wrap(apperrors.KindTransport, "running verifier", err)
	}
	logger.Info("transcript notarized", "sent_bytes", len(pt.Sent), "received_bytes", len(pt.Received))

	httpCtx, err := s.ContextBuilder.Build(pt)
	if err != nil {
		return apperrors.Wrap(apperrors.KindTransport, "building http context", err)
	}
	logger.Info("http context built", "requests", len(httpCtx.Requests), "responses", len(httpCtx.Responses))

	if s.Signer == nil {
		return s.runLegacy(stream, httpCtx, logger)
	}

	if err := exchange.Run(stream, httpCtx, s.Encoder, s.Signer, s.EncodeOptions); err != nil {
		logger.Error("signing exchange failed", "error", err)
		return err
	}
	logger.Info("signing exchange completed")
	return nil
}

// runLegacy handles the unsigned fallback: write the canonical context
// JSON directly to stream, with no length-prefix framing and no
// message envelope — unlike the signed path, this is not a NotaryMessage.
func (s *Session) runLegacy(stream io.ReadWriter, httpCtx *transcript.HttpContext, logger *slog.Logger) error {
	data, err := json.Marshal(httpCtx)
	if err != nil {
		return apperrors.Wrap(apperrors.KindTransport, "marshaling legacy context", err)
	}
	if _, err := stream.Write(data); err != nil {
		return apperrors.Wrap(apperrors.KindTransport, "writing legacy context", err)
	}
	logger.Info("legacy unsigned context sent", "bytes", len(data))
	return nil
}
