package coinselect

import "math"

// FeeRate is a fee rate expressed in satoshis per weight unit, kept as a
// fractional value so sat/vB inputs (which imply quarters of a sat/wu) don't
// lose precision before a fee is actually computed.
type FeeRate struct {
	satPerWU float64
}

// FeeRateFromSatPerVB builds a FeeRate from satoshis per virtual byte.
func FeeRateFromSatPerVB(satPerVB float64) FeeRate {
	return FeeRate{satPerWU: satPerVB / 4}
}

// FeeRateFromSatPerWU builds a FeeRate from satoshis per weight unit.
func FeeRateFromSatPerWU(satPerWU float64) FeeRate {
	return FeeRate{satPerWU: satPerWU}
}

// ZeroFeeRate is the zero-cost rate, used in tests and as a policy default.
func ZeroFeeRate() FeeRate { return FeeRate{} }

// DefaultMinRelayFeeRate is Bitcoin Core's default minimum relay feerate,
// 1 sat/vB.
func DefaultMinRelayFeeRate() FeeRate { return FeeRateFromSatPerVB(1) }

// DefaultIncrementalRelayFeeRate is the default BIP-125 incremental relay
// feerate a replacement transaction must clear.
func DefaultIncrementalRelayFeeRate() FeeRate { return FeeRateFromSatPerVB(1) }

// SatPerVB returns the rate in satoshis per virtual byte.
func (r FeeRate) SatPerVB() float64 { return r.satPerWU * 4 }

// SatPerWU returns the rate in satoshis per weight unit.
func (r FeeRate) SatPerWU() float64 { return r.satPerWU }

// ImpliedFee rounds weight × rate up to the next whole satoshi, so a
// constructed transaction never underpays the target rate.
func (r FeeRate) ImpliedFee(weight uint32) uint64 {
	fee := math.Ceil(float64(weight) * r.satPerWU)
	if fee <= 0 {
		return 0
	}
	return uint64(fee)
}

// Add combines two feerates, used when layering an incremental-relay bump on
// top of a base rate.
func (r FeeRate) Add(other FeeRate) FeeRate { return FeeRate{satPerWU: r.satPerWU + other.satPerWU} }

// Sub is the inverse of Add. The result can go negative; callers reasoning
// about waste rely on that (a negative rate difference means "cheaper
// later").
func (r FeeRate) Sub(other FeeRate) FeeRate { return FeeRate{satPerWU: r.satPerWU - other.satPerWU} }

// weightToVBytes converts a weight-unit measurement to virtual bytes,
// rounding up.
func weightToVBytes(weight uint32) uint32 {
	return uint32(math.Ceil(float64(weight) / 4))
}
