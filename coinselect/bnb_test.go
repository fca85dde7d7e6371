package coinselect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// TestRunBnBMatchesBruteForce cross-checks RunBnB's LowestFee result against
// an exhaustive scan of every subset of a small catalog. This is a much
// stronger check on Bound's validity than any single hand-picked scenario,
// since an invalid (too-high) bound would prune away the true optimum and
// show up here as a mismatch.
func TestRunBnBMatchesBruteForce(t *testing.T) {
	candidates := []Candidate{
		{Value: 1100, Weight: 100, InputCount: 1},
		{Value: 570, Weight: 100, InputCount: 1},
		{Value: 570, Weight: 100, InputCount: 1},
		{Value: 300, Weight: 150, InputCount: 1},
		{Value: 900, Weight: 120, InputCount: 1},
	}
	target := Target{
		Outputs: TargetOutputs{ValueSum: 900},
		Fee:     TargetFeeFromFeeRate(FeeRateFromSatPerWU(1)),
	}
	drainWeights := DrainWeights{OutputWeight: 40, SpendWeight: 80, NOutputs: 1}
	policy := NewMinValueAndWasteChangePolicy(drainWeights, 0, target.Fee.Rate, FeeRateFromSatPerWU(0.5))
	metric := LowestFee{Target: target, LongTermFeerate: FeeRateFromSatPerWU(0.5), ChangePolicy: policy}

	var bruteBest Score
	haveBrute := false
	n := len(candidates)
	for mask := 1; mask < (1 << n); mask++ {
		cs := NewCoinSelector(candidates)
		for i := 0; i < n; i++ {
			if mask&(1<<i) != 0 {
				require.NoError(t, cs.Select(i))
			}
		}
		if score, ok := metric.Score(cs); ok {
			if !haveBrute || score < bruteBest {
				bruteBest = score
				haveBrute = true
			}
		}
	}
	require.True(t, haveBrute, "at least one subset should fund the target")

	cs := NewCoinSelector(candidates)
	score, _, _, err := cs.RunBnB(metric, 10000)
	require.NoError(t, err)
	require.Equal(t, bruteBest, score)
}

// TestRunBnBPrefersSingleLargeInputOverChange mirrors the illustrative
// scenario where funding the target from one large, already-sufficient
// input beats combining smaller ones: A alone costs 200 (a 140 fee plus 60
// of excess too small for change), B+C cost 240 in fee for their extra input
// weight, and any pair with A creates change whose future spend adds to its
// cost.
func TestRunBnBPrefersSingleLargeInputOverChange(t *testing.T) {
	candidates := []Candidate{
		{Value: 1100, Weight: 100, InputCount: 1}, // A
		{Value: 570, Weight: 100, InputCount: 1},  // B
		{Value: 570, Weight: 100, InputCount: 1},  // C
	}
	target := Target{
		Outputs: TargetOutputs{ValueSum: 900},
		Fee:     TargetFeeFromFeeRate(FeeRateFromSatPerWU(1)),
	}
	drainWeights := DrainWeights{OutputWeight: 40, SpendWeight: 80, NOutputs: 1}
	longTerm := FeeRateFromSatPerWU(0.5)
	policy := NewMinValueAndWasteChangePolicy(drainWeights, 0, target.Fee.Rate, longTerm)
	metric := LowestFee{Target: target, LongTermFeerate: longTerm, ChangePolicy: policy}

	cs := NewCoinSelector(candidates)
	score, proven, _, err := cs.RunBnB(metric, 1000)
	require.NoError(t, err)
	require.True(t, proven)
	require.Equal(t, []int{0}, cs.SelectedIndices())
	require.Equal(t, Score(200), score)
}

func TestRunBnBHonorsBans(t *testing.T) {
	candidates := []Candidate{
		{Value: 1000000, Weight: 272, InputCount: 1, IsSegwit: true},
		{Value: 1000, Weight: 272, InputCount: 1, IsSegwit: true},
	}
	target := Target{
		Outputs: TargetOutputs{ValueSum: 500000},
		Fee:     TargetFeeFromFeeRate(FeeRateFromSatPerVB(1)),
	}
	metric := LowestFee{
		Target:          target,
		LongTermFeerate: FeeRateFromSatPerVB(1),
		ChangePolicy:    NewMinValueChangePolicy(DrainWeightsTRKeyspend, TRDustRelayMinValue),
	}

	cs := NewCoinSelector(candidates)
	require.NoError(t, cs.Ban(0))

	_, _, _, err := cs.RunBnB(metric, 1000)
	var noSolution *BnbNoSolution
	require.ErrorAs(t, err, &noSolution)
}

func TestRunBnBReportsUnprovenWhenRoundsExhausted(t *testing.T) {
	candidates := []Candidate{
		{Value: 1000000, Weight: 272, InputCount: 1, IsSegwit: true},
		{Value: 1000, Weight: 272, InputCount: 1, IsSegwit: true},
	}
	target := Target{
		Outputs: TargetOutputs{ValueSum: 500000},
		Fee:     TargetFeeFromFeeRate(FeeRateFromSatPerVB(1)),
	}
	metric := LowestFee{
		Target:          target,
		LongTermFeerate: FeeRateFromSatPerVB(1),
		ChangePolicy:    NewMinValueChangePolicy(DrainWeightsTRKeyspend, TRDustRelayMinValue),
	}

	cs := NewCoinSelector(candidates)
	_, proven, _, err := cs.RunBnB(metric, 1)
	require.NoError(t, err)
	require.False(t, proven)
}
