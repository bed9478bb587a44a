package signing

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSecp256k1DeterministicFromSeed(t *testing.T) {
	digest := sha256.Sum256([]byte("payload"))

	a, err := NewSecp256k1Signer("seed-a")
	require.NoError(t, err)
	b, err := NewSecp256k1Signer("seed-a")
	require.NoError(t, err)

	require.Equal(t, a.PublicKeyBytes(), b.PublicKeyBytes())

	sigA, err := a.SignDigest(digest[:])
	require.NoError(t, err)
	sigB, err := b.SignDigest(digest[:])
	require.NoError(t, err)
	require.Equal(t, sigA, sigB)
}

func TestSecp256k1DifferentSeedsDifferentKeys(t *testing.T) {
	a, err := NewSecp256k1Signer("seed-a")
	require.NoError(t, err)
	b, err := NewSecp256k1Signer("seed-b")
	require.NoError(t, err)

	require.NotEqual(t, a.PublicKeyBytes(), b.PublicKeyBytes())
}

func TestSecp256k1SignatureAndKeyShape(t *testing.T) {
	s, err := NewSecp256k1Signer("seed")
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("payload"))
	sig, err := s.SignDigest(digest[:])
	require.NoError(t, err)
	require.Len(t, sig, 64)

	require.Len(t, s.PublicKeyBytes(), 33)
	require.Equal(t, AlgorithmSecp256k1, s.Algorithm())
}
