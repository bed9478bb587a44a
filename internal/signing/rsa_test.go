package signing

import (
	"crypto/sha256"
	"crypto/x509"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRSADeterministicFromSeed(t *testing.T) {
	a, err := NewRSASigner("seed-a")
	require.NoError(t, err)
	b, err := NewRSASigner("seed-a")
	require.NoError(t, err)

	require.Equal(t, a.PublicKeyBytes(), b.PublicKeyBytes())

	digest := sha256.Sum256([]byte("payload"))
	sigA, err := a.SignDigest(digest[:])
	require.NoError(t, err)
	sigB, err := b.SignDigest(digest[:])
	require.NoError(t, err)
	require.Equal(t, sigA, sigB)
}

func TestRSADifferentSeedsDifferentKeys(t *testing.T) {
	a, err := NewRSASigner("seed-a")
	require.NoError(t, err)
	b, err := NewRSASigner("seed-b")
	require.NoError(t, err)

	require.NotEqual(t, a.PublicKeyBytes(), b.PublicKeyBytes())
}

func TestRSASignatureAndKeyShape(t *testing.T) {
	s, err := NewRSASigner("seed")
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("payload"))
	sig, err := s.SignDigest(digest[:])
	require.NoError(t, err)
	require.Len(t, sig, 256)

	der := s.PublicKeyBytes()
	pub, err := x509.ParsePKIXPublicKey(der)
	require.NoError(t, err)
	require.NotNil(t, pub)

	require.Equal(t, AlgorithmRSA, s.Algorithm())
}

func TestRSASignatureVerifies(t *testing.T) {
	s, err := NewRSASigner("seed")
	require.NoError(t, err)

	der := s.PublicKeyBytes()
	pubAny, err := x509.ParsePKIXPublicKey(der)
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("payload"))
	sig, err := s.SignDigest(digest[:])
	require.NoError(t, err)

	rsaPub := mustRSAPublicKey(t, pubAny)
	err = verifyRSASignature(rsaPub, digest[:], sig)
	require.NoError(t, err)
}
