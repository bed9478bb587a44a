package signing

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEthereumDeterministicFromSeed(t *testing.T) {
	digest := sha256.Sum256([]byte("payload"))

	a, err := NewEthereumSigner("seed-a")
	require.NoError(t, err)
	b, err := NewEthereumSigner("seed-a")
	require.NoError(t, err)

	require.Equal(t, a.PublicKeyBytes(), b.PublicKeyBytes())

	sigA, err := a.SignDigest(digest[:])
	require.NoError(t, err)
	sigB, err := b.SignDigest(digest[:])
	require.NoError(t, err)
	require.Equal(t, sigA, sigB)
}

func TestEthereumSignatureAndKeyShape(t *testing.T) {
	s, err := NewEthereumSigner("seed")
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("payload"))
	sig, err := s.SignDigest(digest[:])
	require.NoError(t, err)
	require.Len(t, sig, 65)
	require.LessOrEqual(t, sig[64], byte(1))

	pub := s.PublicKeyBytes()
	require.Len(t, pub, 65)
	require.Equal(t, byte(0x04), pub[0])
	require.Equal(t, AlgorithmEthereum, s.Algorithm())
}

func TestEthereumRecoverRoundTrip(t *testing.T) {
	s, err := NewEthereumSigner("seed")
	require.NoError(t, err)

	digest := sha256.Sum256([]byte("payload"))
	sig, err := s.SignDigest(digest[:])
	require.NoError(t, err)

	recovered, err := Recover(digest[:], sig)
	require.NoError(t, err)
	require.Equal(t, s.PublicKeyBytes(), recovered)
}
