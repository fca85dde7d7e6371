package coinselect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDrainIsNone(t *testing.T) {
	require.True(t, Drain{}.IsNone())
	require.False(t, Drain{}.IsSome())

	d := Drain{Weights: DrainWeightsTRKeyspend, Value: 1}
	require.True(t, d.IsSome())
}

func TestDrainWeightsWaste(t *testing.T) {
	w := DrainWeights{OutputWeight: 40, SpendWeight: 80, NOutputs: 1}
	current := FeeRateFromSatPerWU(1)
	longTerm := FeeRateFromSatPerWU(0.5)

	// Going from 0 target outputs to 1 (the drain) doesn't cross a varint
	// threshold, so the growth delta is zero and waste is purely
	// output_weight*current + spend_weight*long_term.
	got := w.Waste(current, longTerm, 0)
	require.Equal(t, float64(40*1+80*0.5), got)
}

func TestDrainWeightsSpendFee(t *testing.T) {
	w := DrainWeights{SpendWeight: 100}
	require.Equal(t, uint64(25), w.SpendFee(FeeRateFromSatPerWU(0.25)))
}

func TestMinValueAndWasteChangePolicyRaisesThreshold(t *testing.T) {
	w := DrainWeights{OutputWeight: 40, SpendWeight: 80, NOutputs: 1}
	p := NewMinValueAndWasteChangePolicy(w, 0, FeeRateFromSatPerWU(1), FeeRateFromSatPerWU(0.5))
	require.Equal(t, uint64(80), p.MinValue) // ceil(40*1 + 80*0.5) = 80

	// A caller-supplied min_value above the waste threshold wins instead.
	p2 := NewMinValueAndWasteChangePolicy(w, 1000, FeeRateFromSatPerWU(1), FeeRateFromSatPerWU(0.5))
	require.Equal(t, uint64(1000), p2.MinValue)
}

func TestMinValueAndWasteSuppressesChangeWhenFutureIsCheaper(t *testing.T) {
	// current feerate below long-term: the policy suppresses change outright,
	// raising the threshold above any excess a selection can produce.
	w := DrainWeights{OutputWeight: 10, SpendWeight: 200, NOutputs: 1}
	p := NewMinValueAndWasteChangePolicy(w, 0, FeeRateFromSatPerWU(0.5), FeeRateFromSatPerWU(5))
	require.Greater(t, p.MinValue, uint64(900))
}
