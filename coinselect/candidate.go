package coinselect

import (
	"fmt"
	"math"
)

// Candidate is an immutable descriptor of one funding source: a UTXO, or a
// bundle of UTXOs the caller wants selected atomically. The core never looks
// past these four fields; script parsing, dust checks and witness
// construction happen in the caller.
type Candidate struct {
	// InputCount is how many real transaction inputs this candidate
	// represents. Bundled multi-input candidates report their true count so
	// varint-growth accounting stays correct.
	InputCount uint32
	// Value is the candidate's total value in satoshis.
	Value uint64
	// Weight is the total weight, in weight units, of the input(s)
	// including any witness data.
	Weight uint32
	// IsSegwit is true if spending this candidate requires a witness,
	// which forces the segwit marker+flag header onto the transaction.
	IsSegwit bool
}

// NewCandidate validates and constructs a Candidate.
func NewCandidate(value uint64, weight uint32, inputCount uint32, isSegwit bool) (Candidate, error) {
	if inputCount < 1 {
		return Candidate{}, fmt.Errorf("coinselect: candidate input_count must be >= 1, got %d", inputCount)
	}
	if weight == 0 {
		return Candidate{}, fmt.Errorf("coinselect: candidate weight must be > 0")
	}
	return Candidate{InputCount: inputCount, Value: value, Weight: weight, IsSegwit: isSegwit}, nil
}

// NewTaprootKeyspendCandidate builds a single-input candidate sized for a
// taproot key-path spend.
func NewTaprootKeyspendCandidate(value uint64) Candidate {
	return Candidate{InputCount: 1, Value: value, Weight: TrKeyspendTxInWeight, IsSegwit: true}
}

// ValuePerWeightUnit is the candidate's raw value density, used as the
// default sort key.
func (c Candidate) ValuePerWeightUnit() float64 {
	return float64(c.Value) / float64(c.Weight)
}

// EffectiveValue is the candidate's value net of the fee it costs to include
// at the given rate. A negative result means the candidate costs more to
// spend than it contributes.
func (c Candidate) EffectiveValue(feerate FeeRate) float64 {
	return float64(c.Value) - float64(c.Weight)*feerate.SatPerWU()
}

// EffectiveValuePerWeightUnit is EffectiveValue divided by weight: the
// candidate's net value per weight unit at the given rate.
func (c Candidate) EffectiveValuePerWeightUnit(feerate FeeRate) float64 {
	return c.EffectiveValue(feerate) / float64(c.Weight)
}

// ImpliedFee is the fee this candidate alone would add to a transaction at
// the given rate.
func (c Candidate) ImpliedFee(feerate FeeRate) uint64 {
	return feerate.ImpliedFee(c.Weight)
}

// FeePerValue is the candidate's fee cost expressed as a fraction of its
// value; smaller is better.
func (c Candidate) FeePerValue(feerate FeeRate) float64 {
	if c.Value == 0 {
		return math.Inf(1)
	}
	return float64(c.ImpliedFee(feerate)) / float64(c.Value)
}
