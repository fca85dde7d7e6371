package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vulpemventures/utxoselect/coinselect"
)

var explainCmd = &cobra.Command{
	Use:   "explain",
	Short: "explain the weight/fee accounting for a candidate set, with no search",
	Long: "Unlike select and bnb, explain runs entirely client-side against the " +
		"coinselect core: it selects every candidate in --candidates-file (in " +
		"input order) and prints the resulting transaction weight, implied fee " +
		"and excess, useful for sanity-checking a target before asking " +
		"selectiond to search it.",
	RunE: runExplain,
}

func init() {
	addTargetFlags(explainCmd)
}

func runExplain(_ *cobra.Command, _ []string) error {
	candidateReqs, err := loadCandidates()
	if err != nil {
		return err
	}

	candidates := make([]coinselect.Candidate, len(candidateReqs))
	for i, cr := range candidateReqs {
		c, err := coinselect.NewCandidate(cr.Value, cr.Weight, cr.InputCount, cr.IsSegwit)
		if err != nil {
			return fmt.Errorf("candidate %d: %w", i, err)
		}
		candidates[i] = c
	}

	targetReq := buildTargetRequest()
	target := coinselect.Target{
		Outputs: coinselect.TargetOutputs{
			ValueSum:  targetReq.OutputValueSum,
			WeightSum: targetReq.OutputWeightSum,
			NOutputs:  targetReq.OutputCount,
		},
		Fee: coinselect.TargetFee{
			Rate:          coinselect.FeeRateFromSatPerVB(targetReq.FeeRateSatPerVB),
			ReplaceMinFee: targetReq.ReplaceMinFee,
		},
	}

	cs := coinselect.NewCoinSelector(candidates)
	cs.SelectAll()

	weight := cs.Weight(target, coinselect.Drain{})
	fee := cs.ImpliedFee(target, coinselect.Drain{})
	excess := cs.Excess(target, coinselect.Drain{})

	fmt.Printf("candidates:     %d\n", len(candidates))
	fmt.Printf("selected value: %d\n", cs.SelectedValue())
	fmt.Printf("tx weight:      %d wu\n", weight)
	fmt.Printf("implied fee:    %d sat\n", fee)
	fmt.Printf("excess:         %d sat\n", excess)
	if cs.IsTargetMet(target) {
		fmt.Println("target met with every candidate selected")
	} else {
		fmt.Printf("target NOT met even with every candidate selected (missing %d sat)\n", cs.Missing(target))
	}
	return nil
}
