package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TheFrozenFire/simple-notary/internal/signing"
)

func TestCompatibilityRejectsRSAWithNonJSON(t *testing.T) {
	require.Error(t, CheckCompatibility(signing.AlgorithmRSA, "abi"))
	require.Error(t, CheckCompatibility(signing.AlgorithmRSA, "eip712"))
	require.Error(t, CheckCompatibility(signing.AlgorithmRSA, "embedding"))
}

func TestCompatibilityAllowsRSAWithJSON(t *testing.T) {
	require.NoError(t, CheckCompatibility(signing.AlgorithmRSA, "json"))
}

func TestCompatibilityAllowsOtherSignersWithAnyEncoder(t *testing.T) {
	require.NoError(t, CheckCompatibility(signing.AlgorithmSecp256k1, "abi"))
	require.NoError(t, CheckCompatibility(signing.AlgorithmEthereum, "eip712"))
}
