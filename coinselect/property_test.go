package coinselect

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// randomCandidates builds n candidates with values and weights drawn from
// rng, giving every invariant below a fresh, unpredictable instance to hold
// (or fail) on.
func randomCandidates(rng *rand.Rand, n int) []Candidate {
	candidates := make([]Candidate, n)
	for i := range candidates {
		candidates[i] = Candidate{
			InputCount: 1,
			Value:      uint64(rng.Intn(2_000_000)),
			Weight:     uint32(rng.Intn(2000) + 1),
			IsSegwit:   rng.Intn(2) == 0,
		}
	}
	return candidates
}

func randomTarget(rng *rand.Rand) Target {
	return Target{
		Outputs: TargetOutputs{
			ValueSum:  uint64(rng.Intn(1_000_000)),
			WeightSum: uint32(rng.Intn(500)),
			NOutputs:  uint32(rng.Intn(3) + 1),
		},
		Fee: TargetFeeFromFeeRate(FeeRateFromSatPerVB(float64(rng.Intn(20) + 1))),
	}
}

// TestTargetMetMatchesExcessSign is a quickcheck-style randomized check of
// spec §8's "is_target_met(T) ⇔ excess(T) ≥ 0" invariant: a handful of
// seeded random instances rather than one hand-picked scenario, since the
// property is meant to hold for every candidate set and target, not just a
// convenient one.
func TestTargetMetMatchesExcessSign(t *testing.T) {
	rng := rand.New(rand.NewSource(1234))

	for trial := 0; trial < 200; trial++ {
		candidates := randomCandidates(rng, rng.Intn(8)+1)
		target := randomTarget(rng)

		cs := NewCoinSelector(candidates)
		for i := range candidates {
			if rng.Intn(2) == 0 {
				require.NoError(t, cs.Select(i))
			}
		}

		met := cs.IsTargetMet(target)
		excess := cs.Excess(target, Drain{})
		require.Equal(t, met, excess >= 0, "trial %d: met=%v excess=%d", trial, met, excess)

		missing := cs.Missing(target)
		require.Equal(t, missing == 0, met, "trial %d: missing=%d met=%v", trial, missing, met)
	}
}

// TestSelectUntilTargetMetIsMinimalUnderGreedyOrder randomly builds
// catalogs that can fund their target and checks spec §8's minimality
// property at the point select_until_target_met actually establishes it:
// the last candidate selected, in sort order, is by construction the one
// whose addition tipped an until-then-unmet selection over the line
// (select_until_target_met re-checks is_target_met after every selection
// and stops at the first success), so deselecting it must break
// is_target_met again.
func TestSelectUntilTargetMetIsMinimalUnderGreedyOrder(t *testing.T) {
	rng := rand.New(rand.NewSource(5678))

	trials := 0
	for trial := 0; trial < 500 && trials < 100; trial++ {
		candidates := randomCandidates(rng, rng.Intn(6)+1)
		target := randomTarget(rng)

		cs := NewCoinSelector(candidates)
		if err := cs.SelectUntilTargetMet(target); err != nil {
			continue
		}
		trials++
		require.True(t, cs.IsTargetMet(target))

		selected := cs.SelectedIndices()
		tippingPoint := selected[len(selected)-1]

		probe := cs.Clone()
		require.NoError(t, probe.Deselect(tippingPoint))
		require.False(t, probe.IsTargetMet(target),
			"trial %d: deselecting the tipping-point index %d should have broken is_target_met", trial, tippingPoint)
	}
	require.Greater(t, trials, 0, "expected at least one random instance to be fundable")
}

// TestRunBnBNeverWorseThanGreedy is a seeded randomized check of spec §8's
// "run_bnb(LowestFee, ∞) on a feasible instance returns a score no worse
// than select_until_target_met followed by scoring" property.
func TestRunBnBNeverWorseThanGreedy(t *testing.T) {
	rng := rand.New(rand.NewSource(91011))

	policy := NewMinValueChangePolicy(DrainWeightsTRKeyspend, TRDustRelayMinValue)
	trials := 0
	for trial := 0; trial < 500 && trials < 100; trial++ {
		candidates := randomCandidates(rng, rng.Intn(6)+1)
		target := randomTarget(rng)
		longTerm := FeeRateFromSatPerVB(float64(rng.Intn(20) + 1))
		metric := LowestFee{Target: target, LongTermFeerate: longTerm, ChangePolicy: policy}

		greedy := NewCoinSelector(candidates)
		if err := greedy.SelectUntilTargetMet(target); err != nil {
			continue
		}
		greedyScore, ok := metric.Score(greedy)
		if !ok {
			continue
		}
		trials++

		bnb := NewCoinSelector(candidates)
		bnbScore, _, _, err := bnb.RunBnB(metric, 100000)
		require.NoError(t, err, "trial %d", trial)
		require.LessOrEqual(t, bnbScore, greedyScore, "trial %d", trial)
	}
	require.Greater(t, trials, 0, "expected at least one random instance to be fundable under both strategies")
}
