package coinselect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFeeRateConversions(t *testing.T) {
	r := FeeRateFromSatPerVB(4)
	require.Equal(t, float64(1), r.SatPerWU())
	require.Equal(t, float64(4), r.SatPerVB())

	r2 := FeeRateFromSatPerWU(0.25)
	require.Equal(t, float64(1), r2.SatPerVB())
}

func TestDefaultMinRelayFeeRate(t *testing.T) {
	r := DefaultMinRelayFeeRate()
	require.Equal(t, float64(1), r.SatPerVB())
	require.Equal(t, 0.25, r.SatPerWU())
}

func TestImpliedFeeRoundsUp(t *testing.T) {
	r := FeeRateFromSatPerVB(1) // 0.25 sat/wu
	// 3 weight units * 0.25 = 0.75, must round up to 1.
	require.Equal(t, uint64(1), r.ImpliedFee(3))
	// 4 weight units * 0.25 = 1 exactly, no rounding needed.
	require.Equal(t, uint64(1), r.ImpliedFee(4))
	require.Equal(t, uint64(0), r.ImpliedFee(0))
}

func TestFeeRateAddSub(t *testing.T) {
	a := FeeRateFromSatPerVB(10)
	b := FeeRateFromSatPerVB(4)
	require.Equal(t, float64(14), a.Add(b).SatPerVB())
	require.Equal(t, float64(6), a.Sub(b).SatPerVB())
	require.Equal(t, float64(-6), b.Sub(a).SatPerVB())
}

func TestWeightToVBytes(t *testing.T) {
	require.Equal(t, uint32(1), weightToVBytes(1))
	require.Equal(t, uint32(1), weightToVBytes(4))
	require.Equal(t, uint32(2), weightToVBytes(5))
}

func TestVarintSizeThresholds(t *testing.T) {
	require.Equal(t, uint32(1), varintSize(0))
	require.Equal(t, uint32(1), varintSize(0xfc))
	require.Equal(t, uint32(3), varintSize(0xfd))
	require.Equal(t, uint32(3), varintSize(0xffff))
	require.Equal(t, uint32(5), varintSize(0x10000))
	require.Equal(t, uint32(9), varintSize(0x100000000))
}
