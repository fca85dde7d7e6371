package coinselect

import "math"

// DrainWeights describes a hypothetical change output: what it costs to
// add now, and what it will cost to spend later.
type DrainWeights struct {
	// OutputWeight is the weight of the change output itself (value +
	// scriptPubKey varint + scriptPubKey), NOT including any varint growth
	// from the output count crossing a CompactSize threshold; that growth
	// is accounted for centrally by CoinSelector.Weight alongside the
	// recipient outputs' own count.
	OutputWeight uint32
	// SpendWeight is the weight of the future input that spends this
	// change output.
	SpendWeight uint32
	// NOutputs is how many outputs this drain adds, almost always 1.
	NOutputs uint32
}

// DrainWeightsTRKeyspend describes a single taproot key-path change output.
var DrainWeightsTRKeyspend = DrainWeights{
	OutputWeight: txOutBaseWeight + trSpkWeight,
	SpendWeight:  TrKeyspendTxInWeight,
	NOutputs:     1,
}

// Waste is the total cost, in satoshis, of choosing to add this drain:
// the extra fee paid now for its bytes, plus the long-term-feerate cost of
// eventually spending it. nTargetOutputs is the number of non-drain
// recipient outputs already present, needed to size the output-count
// varint growth correctly.
func (w DrainWeights) Waste(feerate, longTermFeerate FeeRate, nTargetOutputs uint32) float64 {
	growthWith := outputCountVarintGrowth(uint64(nTargetOutputs) + uint64(w.NOutputs))
	growthWithout := outputCountVarintGrowth(uint64(nTargetOutputs))
	extraOutputWeight := float64(w.OutputWeight) + float64(growthWith-growthWithout)
	return extraOutputWeight*feerate.SatPerWU() + float64(w.SpendWeight)*longTermFeerate.SatPerWU()
}

// SpendFee is the fee required to spend this drain later, at the long-term
// feerate.
func (w DrainWeights) SpendFee(longTermFeerate FeeRate) uint64 {
	return uint64(math.Ceil(float64(w.SpendWeight) * longTermFeerate.SatPerWU()))
}

// Drain is a decision record: the weights assumed for a change output, and
// the value assigned to it. The zero value represents "no drain".
type Drain struct {
	Weights DrainWeights
	Value   uint64
}

// IsNone reports whether this is the "no drain" sentinel.
func (d Drain) IsNone() bool { return d == Drain{} }

// IsSome is the negation of IsNone.
func (d Drain) IsSome() bool { return !d.IsNone() }

// ChangePolicy decides, given a selection's state, whether and how large a
// change output should be. It is a plain data value rather than a closure
// so a Metric's bound function can inspect its parameters directly.
type ChangePolicy struct {
	DrainWeights DrainWeights
	// MinValue is the minimum drain value that justifies emitting change.
	MinValue uint64
}

// NewMinValueChangePolicy emits change whenever the excess left after
// paying for the drain output exceeds minValue.
func NewMinValueChangePolicy(drainWeights DrainWeights, minValue uint64) ChangePolicy {
	return ChangePolicy{DrainWeights: drainWeights, MinValue: minValue}
}

// NewMinValueAndWasteChangePolicy additionally raises the min-value
// threshold to the drain's own waste (the fee cost of adding it now, plus
// the long-term-feerate cost of later spending it), so a change output is
// never emitted when the cost of creating one would erase its benefit. When
// currentFeerate is below longTermFeerate change is suppressed outright (the
// threshold is raised above any possible excess), since consolidating later
// is cheaper than creating change now.
func NewMinValueAndWasteChangePolicy(drainWeights DrainWeights, minValue uint64, currentFeerate, longTermFeerate FeeRate) ChangePolicy {
	waste := drainWeights.Waste(currentFeerate, longTermFeerate, 0)
	threshold := uint64(math.Ceil(waste))
	if threshold < minValue {
		threshold = minValue
	}
	if currentFeerate.SatPerWU() < longTermFeerate.SatPerWU() {
		threshold = math.MaxInt64
	}
	return ChangePolicy{DrainWeights: drainWeights, MinValue: threshold}
}
