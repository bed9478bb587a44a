/**
 * @description
 * Command notary-server runs the MPC-TLS notarization service: it
 * terminates the verifier side of a session, builds the redactable HTTP
 * context, and, when a signing key is configured, drives the two-phase
 * selective-disclosure signing exchange with the prover.
 *
 * Key features:
 * - Config-driven wiring: the signing algorithm, encoder, and EIP-712
 *   domain are all chosen by internal/config.Load, so swapping signing
 *   backends never touches this file.
 * - Graceful shutdown: SIGINT/SIGTERM stop accepting connections and
 *   wait up to 5 seconds for in-flight HTTP requests via
 *   http.Server.Shutdown. Upgraded WebSocket sessions run on hijacked
 *   connections and are not waited for.
 */
package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TheFrozenFire/simple-notary/internal/config"
	"github.com/TheFrozenFire/simple-notary/internal/encoding"
	"github.com/TheFrozenFire/simple-notary/internal/httpapi"
	"github.com/TheFrozenFire/simple-notary/internal/session"
	"github.com/TheFrozenFire/simple-notary/internal/signing"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load(".")
	if err != nil {
		logger.Error("cannot load config", "error", err)
		os.Exit(1)
	}
	logger.Info("configuration loaded successfully", "host", cfg.Host, "port", cfg.Port)

	signer, err := buildSigner(cfg)
	if err != nil {
		logger.Error("cannot build signer", "error", err)
		os.Exit(1)
	}

	encoder, err := buildEncoder(cfg)
	if err != nil {
		logger.Error("cannot build encoder", "error", err)
		os.Exit(1)
	}

	if signer != nil {
		if err := encoding.CheckCompatibility(signer.Algorithm(), encoder.Name()); err != nil {
			logger.Error("incompatible signer/encoder configuration", "error", err)
			os.Exit(1)
		}
	}

	opts := encoding.EncodeOptions{
		EIP712Domain: encoding.EIP712Domain{
			Name:              cfg.EIP712.Name,
			Version:           cfg.EIP712.Version,
			ChainID:           cfg.EIP712.ChainID,
			VerifyingContract: cfg.EIP712.VerifyingContract,
		},
	}

	server := httpapi.NewServer(
		logger,
		session.NewStubVerifier(),
		session.NewNaiveContextBuilder(),
		encoder,
		signer,
		opts,
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      server.Router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("notary server starting", "address", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server failed to serve", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutdown signal received, initiating graceful shutdown")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", "error", err)
	}
	logger.Info("server shut down gracefully")
}

/**
 * @description
 * buildSigner returns nil, nil when no signing key seed is configured —
 * the server then runs every session in legacy unsigned mode.
 *
 * @param cfg The loaded, already-validated configuration.
 * @returns The configured ContextSigner, or nil/nil for legacy mode.
 */
func buildSigner(cfg config.Config) (signing.ContextSigner, error) {
	if cfg.SigningKeySeed == "" {
		return nil, nil
	}

	switch cfg.SigningAlgorithm {
	case "", signing.AlgorithmSecp256k1:
		return signing.NewSecp256k1Signer(cfg.SigningKeySeed)
	case signing.AlgorithmEthereum:
		return signing.NewEthereumSigner(cfg.SigningKeySeed)
	case signing.AlgorithmRSA, "rsa":
		return signing.NewRSASigner(cfg.SigningKeySeed)
	default:
		return nil, fmt.Errorf("main: unknown signing_algorithm %q", cfg.SigningAlgorithm)
	}
}

/**
 * @description
 * buildEncoder selects the configured context encoder.
 *
 * @param cfg The loaded, already-validated configuration.
 * @returns The configured ContextEncoder, or an error for an unknown name.
 */
func buildEncoder(cfg config.Config) (encoding.ContextEncoder, error) {
	switch cfg.ContextEncoding {
	case "", "json":
		return encoding.NewJSONEncoder(), nil
	case "abi":
		return encoding.NewABIEncoder(), nil
	case "eip712":
		return encoding.NewEIP712Encoder(), nil
	case "embedding":
		return encoding.NewEmbeddingEncoder(cfg.EmbeddingAllowList), nil
	default:
		return nil, fmt.Errorf("main: unknown context_encoding %q", cfg.ContextEncoding)
	}
}
