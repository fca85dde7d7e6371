// Package selectsvc is the application layer wrapping the pure coinselect
// core: it adds the things the core deliberately has none of (spec §5) —
// logging, metrics, a persisted search cache and a progress-notification
// stream — around calls to CoinSelector without changing its semantics.
package selectsvc

import (
	"fmt"

	"github.com/vulpemventures/utxoselect/coinselect"
)

// CandidateRequest is the wire-shape of a coinselect.Candidate, the unit a
// caller of selectiond's HTTP API submits; selectsvc never exposes
// coinselect types directly on the boundary so the daemon's JSON contract
// doesn't change shape if the core's Go types do.
type CandidateRequest struct {
	InputCount uint32 `json:"input_count"`
	Value      uint64 `json:"value"`
	Weight     uint32 `json:"weight"`
	IsSegwit   bool   `json:"is_segwit"`
}

func (r CandidateRequest) toCandidate() (coinselect.Candidate, error) {
	return coinselect.NewCandidate(r.Value, r.Weight, r.InputCount, r.IsSegwit)
}

// TargetRequest is the wire-shape of a coinselect.Target.
type TargetRequest struct {
	OutputValueSum  uint64  `json:"output_value_sum"`
	OutputWeightSum uint32  `json:"output_weight_sum"`
	OutputCount     uint32  `json:"output_count"`
	FeeRateSatPerVB float64 `json:"fee_rate_sat_per_vb"`
	ReplaceMinFee   uint64  `json:"replace_min_fee,omitempty"`
}

func (r TargetRequest) toTarget() coinselect.Target {
	return coinselect.Target{
		Outputs: coinselect.TargetOutputs{
			ValueSum:  r.OutputValueSum,
			WeightSum: r.OutputWeightSum,
			NOutputs:  r.OutputCount,
		},
		Fee: coinselect.TargetFee{
			Rate:          coinselect.FeeRateFromSatPerVB(r.FeeRateSatPerVB),
			ReplaceMinFee: r.ReplaceMinFee,
		},
	}
}

// DrainWeightsRequest is the wire-shape of a coinselect.DrainWeights.
type DrainWeightsRequest struct {
	OutputWeight uint32 `json:"output_weight"`
	SpendWeight  uint32 `json:"spend_weight"`
	NOutputs     uint32 `json:"n_outputs"`
}

func (r DrainWeightsRequest) toDrainWeights() coinselect.DrainWeights {
	nOutputs := r.NOutputs
	if nOutputs == 0 {
		nOutputs = 1
	}
	return coinselect.DrainWeights{
		OutputWeight: r.OutputWeight,
		SpendWeight:  r.SpendWeight,
		NOutputs:     nOutputs,
	}
}

// ChangePolicyRequest picks between the two ChangePolicy constructors spec
// §4.3 names. Kind is either "min_value" or "min_value_and_waste".
type ChangePolicyRequest struct {
	Kind               string              `json:"kind"`
	DrainWeights       DrainWeightsRequest `json:"drain_weights"`
	MinValue           uint64              `json:"min_value"`
	LongTermFeerateSat float64             `json:"long_term_feerate_sat_per_vb,omitempty"`
}

func (r ChangePolicyRequest) toChangePolicy(currentFeerate coinselect.FeeRate) (coinselect.ChangePolicy, error) {
	weights := r.DrainWeights.toDrainWeights()
	switch r.Kind {
	case "", "min_value":
		return coinselect.NewMinValueChangePolicy(weights, r.MinValue), nil
	case "min_value_and_waste":
		longTerm := coinselect.FeeRateFromSatPerVB(r.LongTermFeerateSat)
		return coinselect.NewMinValueAndWasteChangePolicy(weights, r.MinValue, currentFeerate, longTerm), nil
	default:
		return coinselect.ChangePolicy{}, fmt.Errorf("selectsvc: unknown change policy kind %q", r.Kind)
	}
}

// Result is what both SelectUntilTargetMet and RunBnB report back: which
// candidate indices ended up selected, in sort order, plus the drain
// decision and (for RunBnB) the metric's score.
type Result struct {
	SelectedIndices []int   `json:"selected_indices"`
	DrainValue      uint64  `json:"drain_value"`
	ExcessSatoshis  int64   `json:"excess_satoshis"`
	Score           float64 `json:"score,omitempty"`
	Proven          bool    `json:"proven,omitempty"`
	FromCache       bool    `json:"from_cache,omitempty"`
}
