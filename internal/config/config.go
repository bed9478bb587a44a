/**
 * @description
 * Package config loads the notary server's configuration from
 * environment variables (optionally seeded from a .env.local file),
 * the same way the rest of this codebase's services load theirs.
 *
 * Key features:
 * - Environment-first: every setting has an env var name; a .env.local
 *   file is an optional convenience layer on top, never a requirement.
 * - Fail-closed validation: an unknown algorithm/encoding name, a
 *   malformed verifying-contract address, or a signer/encoder pairing
 *   the wire protocol forbids all reject Load outright rather than
 *   starting in a half-configured state.
 *
 * @dependencies
 * - github.com/joho/godotenv: optional .env.local loading.
 */
package config

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/TheFrozenFire/simple-notary/internal/encoding"
	"github.com/TheFrozenFire/simple-notary/internal/signing"
)

// EIP712Domain holds the EIP-712 domain parameters, only meaningful when
// ContextEncoding is "eip712".
type EIP712Domain struct {
	Name              string
	Version           string
	ChainID           int64
	VerifyingContract string
}

// Config holds all configuration for the notary server.
type Config struct {
	Host string
	Port uint16

	// SigningKeySeed enables signing when non-empty; an empty seed runs
	// the server in legacy unsigned mode.
	SigningKeySeed     string
	SigningAlgorithm   string
	ContextEncoding    string
	EIP712             EIP712Domain
	EmbeddingAllowList []string
	EmbeddingCacheDir  string
}

/**
 * @description
 * Load reads configuration from environment variables and/or a
 * .env.local file located in path, validating the result before
 * returning it.
 *
 * @param path Directory to look for an optional .env.local file in.
 * @returns A validated Config, or an error describing the first
 * malformed or incompatible setting found.
 */
func Load(path string) (Config, error) {
	envLocalPath := filepath.Join(path, ".env.local")
	_ = godotenv.Load(envLocalPath)

	cfg := Config{
		Host:              os.Getenv("HOST"),
		SigningKeySeed:    os.Getenv("SIGNING_KEY_SEED"),
		SigningAlgorithm:  os.Getenv("SIGNING_ALGORITHM"),
		ContextEncoding:   os.Getenv("CONTEXT_ENCODING"),
		EmbeddingCacheDir: os.Getenv("EMBEDDING_CACHE_DIR"),
		EIP712: EIP712Domain{
			Name:              os.Getenv("EIP712_NAME"),
			Version:           os.Getenv("EIP712_VERSION"),
			VerifyingContract: os.Getenv("EIP712_VERIFYING_CONTRACT"),
		},
	}

	if cfg.Host == "" {
		cfg.Host = "0.0.0.0"
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "9090"
	}
	port, err := strconv.ParseUint(portStr, 10, 16)
	if err != nil {
		return Config{}, fmt.Errorf("config: invalid PORT %q: %w", portStr, err)
	}
	cfg.Port = uint16(port)

	if cfg.ContextEncoding == "" {
		cfg.ContextEncoding = "json"
	}

	if chainIDStr := os.Getenv("EIP712_CHAIN_ID"); chainIDStr != "" {
		chainID, err := strconv.ParseInt(chainIDStr, 10, 64)
		if err != nil {
			return Config{}, fmt.Errorf("config: invalid EIP712_CHAIN_ID %q: %w", chainIDStr, err)
		}
		cfg.EIP712.ChainID = chainID
	}

	if allowList := os.Getenv("EMBEDDING_ALLOW_LIST"); allowList != "" {
		for _, name := range strings.Split(allowList, ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				cfg.EmbeddingAllowList = append(cfg.EmbeddingAllowList, name)
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// validate rejects configurations that cannot start, including the
// signer/encoder incompatibility the wire protocol forbids.
func (c Config) validate() error {
	switch c.SigningAlgorithm {
	case "", signing.AlgorithmSecp256k1, signing.AlgorithmEthereum, signing.AlgorithmRSA, "rsa":
	default:
		return fmt.Errorf("config: unknown signing_algorithm %q", c.SigningAlgorithm)
	}

	switch c.ContextEncoding {
	case "json", "abi", "eip712", "embedding":
	default:
		return fmt.Errorf("config: unknown context_encoding %q", c.ContextEncoding)
	}

	if c.SigningKeySeed != "" {
		algorithm := c.signingAlgorithmTag()
		if err := encoding.CheckCompatibility(algorithm, c.ContextEncoding); err != nil {
			return fmt.Errorf("config: %w", err)
		}
	}

	if c.EIP712.VerifyingContract != "" {
		if _, err := c.verifyingContractBytes(); err != nil {
			return err
		}
	}

	return nil
}

// signingAlgorithmTag maps the config's human-entered algorithm name to
// the tag signing.ContextSigner.Algorithm() reports.
func (c Config) signingAlgorithmTag() string {
	switch c.SigningAlgorithm {
	case "rsa":
		return signing.AlgorithmRSA
	case "":
		return signing.AlgorithmSecp256k1
	default:
		return c.SigningAlgorithm
	}
}

/**
 * @description
 * VerifyingContractBytes returns the decoded 20-byte EIP-712 verifying
 * contract address, or nil if none was configured.
 *
 * @returns The 20-byte address, or nil if unset or malformed.
 */
func (c Config) VerifyingContractBytes() []byte {
	if c.EIP712.VerifyingContract == "" {
		return nil
	}
	b, err := c.verifyingContractBytes()
	if err != nil {
		return nil
	}
	return b
}

func (c Config) verifyingContractBytes() ([]byte, error) {
	s := strings.TrimPrefix(c.EIP712.VerifyingContract, "0x")
	if len(s) != 40 {
		return nil, fmt.Errorf("config: eip712_verifying_contract must be 20-byte hex, got %d hex chars", len(s))
	}
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("config: eip712_verifying_contract is not valid hex: %w", err)
	}
	return b, nil
}
