package searchcache

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vulpemventures/utxoselect/coinselect"
)

func testCandidates() []coinselect.Candidate {
	return []coinselect.Candidate{
		{Value: 1000, Weight: 100, InputCount: 1},
		{Value: 2000, Weight: 150, InputCount: 1},
	}
}

func TestFingerprintStableAcrossCalls(t *testing.T) {
	target := coinselect.Target{
		Outputs: coinselect.TargetOutputs{ValueSum: 500},
		Fee:     coinselect.TargetFeeFromFeeRate(coinselect.FeeRateFromSatPerVB(1)),
	}
	a := Fingerprint(testCandidates(), target, "lowest_fee", coinselect.FeeRateFromSatPerVB(1))
	b := Fingerprint(testCandidates(), target, "lowest_fee", coinselect.FeeRateFromSatPerVB(1))
	require.Equal(t, a, b)
}

func TestFingerprintDiffersOnMetric(t *testing.T) {
	target := coinselect.Target{Outputs: coinselect.TargetOutputs{ValueSum: 500}}
	a := Fingerprint(testCandidates(), target, "lowest_fee", coinselect.FeeRateFromSatPerVB(1))
	b := Fingerprint(testCandidates(), target, "waste", coinselect.FeeRateFromSatPerVB(1))
	require.NotEqual(t, a, b)
}

func TestCacheRoundTrip(t *testing.T) {
	cache, err := Open("", nil)
	require.NoError(t, err)
	defer cache.Close()

	fp := "deadbeef"
	_, ok := cache.Get(fp)
	require.False(t, ok)

	require.NoError(t, cache.Put(fp, Solution{Score: 12.5, Proven: true, SelectedIndices: []int{0, 2}}))

	got, ok := cache.Get(fp)
	require.True(t, ok)
	require.Equal(t, 12.5, got.Score)
	require.True(t, got.Proven)
	require.Equal(t, []int{0, 2}, got.SelectedIndices)
}
