package coinselect

import "math"

// TargetOutputs is the aggregate weight and value of the recipient outputs a
// selection must fund. It says nothing about the change output; that is
// layered on separately by ChangePolicy.
type TargetOutputs struct {
	ValueSum  uint64
	WeightSum uint32
	NOutputs  uint32
}

// WeightValue is one recipient output's weight and value, the unit
// FundOutputs is built from. The core never inspects the scriptPubKey
// itself; callers derive Weight from it.
type WeightValue struct {
	Weight uint32
	Value  uint64
}

// FundOutputs builds a TargetOutputs from the recipient outputs a
// transaction must pay.
func FundOutputs(outputs []WeightValue) TargetOutputs {
	var t TargetOutputs
	for _, o := range outputs {
		t.ValueSum = addSat(t.ValueSum, o.Value)
		t.WeightSum += o.Weight
		t.NOutputs++
	}
	return t
}

// TargetFee is the fee policy a selection must satisfy: a feerate, and
// optionally an absolute minimum fee imposed by a BIP-125 replacement.
type TargetFee struct {
	Rate FeeRate
	// ReplaceMinFee is the absolute minimum fee a replacement transaction
	// must pay, or 0 if there is no replacement constraint. Per the
	// glossary this is an absolute floor, not a delta over the replaced
	// transaction's fee; callers compute that delta externally (see
	// MinFeeToDoReplacement below) before setting this field.
	ReplaceMinFee uint64
}

// TargetFeeFromFeeRate builds a TargetFee with no replacement constraint.
func TargetFeeFromFeeRate(rate FeeRate) TargetFee {
	return TargetFee{Rate: rate}
}

// DefaultTargetFee is the default minimum-relay rate with no replacement
// constraint.
func DefaultTargetFee() TargetFee {
	return TargetFee{Rate: DefaultMinRelayFeeRate()}
}

// Replace carries the parameters needed to compute the minimum fee a
// replacement transaction must pay under BIP-125 rule 4: it must beat the
// replaced transaction's fee by at least the incremental relay feerate
// applied to the replacement's own weight.
type Replace struct {
	Fee                     uint64
	IncrementalRelayFeerate FeeRate
}

// NewReplace builds a Replace constraint from the fee paid by the
// transaction being replaced, using the default incremental relay feerate.
func NewReplace(oldFee uint64) Replace {
	return Replace{Fee: oldFee, IncrementalRelayFeerate: DefaultIncrementalRelayFeeRate()}
}

// MinFeeToDoReplacement computes the minimum absolute fee a replacement of
// the given weight must pay, for use as TargetFee.ReplaceMinFee.
func (r Replace) MinFeeToDoReplacement(replacingTxWeight uint32) uint64 {
	increment := uint64(math.Ceil(float64(replacingTxWeight) * r.IncrementalRelayFeerate.SatPerWU()))
	return addSat(r.Fee, increment)
}

// MinFeeToDoReplacement is the free-function form of Replace.MinFeeToDoReplacement.
func MinFeeToDoReplacement(oldFee uint64, replacingTxWeight uint32, incrementalRelayFeerate FeeRate) uint64 {
	return Replace{Fee: oldFee, IncrementalRelayFeerate: incrementalRelayFeerate}.MinFeeToDoReplacement(replacingTxWeight)
}

// Target is what a selection must fund: the recipient outputs plus the fee
// policy.
type Target struct {
	Outputs TargetOutputs
	Fee     TargetFee
}
