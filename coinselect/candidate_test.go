package coinselect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewCandidateValidation(t *testing.T) {
	_, err := NewCandidate(1000, 100, 0, false)
	require.Error(t, err)

	_, err = NewCandidate(1000, 0, 1, false)
	require.Error(t, err)

	c, err := NewCandidate(1000, 100, 1, false)
	require.NoError(t, err)
	require.Equal(t, uint64(1000), c.Value)
}

func TestTaprootKeyspendCandidate(t *testing.T) {
	c := NewTaprootKeyspendCandidate(50000)
	require.True(t, c.IsSegwit)
	require.Equal(t, uint32(1), c.InputCount)
	require.Equal(t, TrKeyspendTxInWeight, c.Weight)
}

func TestCandidateValueDensity(t *testing.T) {
	c := Candidate{Value: 1000, Weight: 100}
	require.Equal(t, float64(10), c.ValuePerWeightUnit())

	feerate := FeeRateFromSatPerWU(2)
	require.Equal(t, float64(800), c.EffectiveValue(feerate))
	require.Equal(t, float64(8), c.EffectiveValuePerWeightUnit(feerate))
	require.Equal(t, uint64(200), c.ImpliedFee(feerate))
}
