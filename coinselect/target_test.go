package coinselect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFundOutputs(t *testing.T) {
	t1 := FundOutputs([]WeightValue{
		{Weight: 172, Value: 50000},
		{Weight: 124, Value: 30000},
	})
	require.Equal(t, uint64(80000), t1.ValueSum)
	require.Equal(t, uint32(296), t1.WeightSum)
	require.Equal(t, uint32(2), t1.NOutputs)
}

func TestMinFeeToDoReplacement(t *testing.T) {
	r := NewReplace(1000)
	got := r.MinFeeToDoReplacement(400)
	// incremental relay feerate defaults to 1 sat/vB = 0.25 sat/wu.
	require.Equal(t, uint64(1000+100), got)

	got2 := MinFeeToDoReplacement(1000, 400, FeeRateFromSatPerWU(0.25))
	require.Equal(t, got, got2)
}
