package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vulpemventures/utxoselect/selectsvc"
)

var (
	drainOutputWeight  uint32
	drainSpendWeight   uint32
	longTermFeerate    float64
	maxRounds          int
	changePolicyKind   string
	changePolicyMinVal uint64
	metricName         string

	bnbCmd = &cobra.Command{
		Use:   "bnb",
		Short: "run branch-and-bound search for the lowest-cost selection",
		Long:  "Calls selectiond's run_bnb over a candidate set read from --candidates-file",
		RunE:  runBnB,
	}
)

func init() {
	addTargetFlags(bnbCmd)
	bnbCmd.Flags().Uint32Var(&drainOutputWeight, "drain-output-weight", 0, "weight of a hypothetical change output")
	bnbCmd.Flags().Uint32Var(&drainSpendWeight, "drain-spend-weight", 0, "weight of spending the change output later")
	bnbCmd.Flags().Float64Var(&longTermFeerate, "long-term-feerate", 10, "expected future feerate, in sat/vB, used to price change")
	bnbCmd.Flags().IntVar(&maxRounds, "max-rounds", 100000, "branch-and-bound round budget")
	bnbCmd.Flags().StringVar(&changePolicyKind, "change-policy", "min_value_and_waste", `"min_value" or "min_value_and_waste"`)
	bnbCmd.Flags().Uint64Var(&changePolicyMinVal, "change-min-value", 0, "minimum drain value that justifies emitting change")
	bnbCmd.Flags().StringVar(&metricName, "metric", "lowest_fee", `"lowest_fee", "waste" or "changeless"`)
}

func runBnB(_ *cobra.Command, _ []string) error {
	candidates, err := loadCandidates()
	if err != nil {
		return err
	}

	req := selectsvc.RunBnBRequest{
		Candidates: candidates,
		Target:     buildTargetRequest(),
		ChangePolicy: selectsvc.ChangePolicyRequest{
			Kind: changePolicyKind,
			DrainWeights: selectsvc.DrainWeightsRequest{
				OutputWeight: drainOutputWeight,
				SpendWeight:  drainSpendWeight,
			},
			MinValue:           changePolicyMinVal,
			LongTermFeerateSat: longTermFeerate,
		},
		LongTermFeerateSat: longTermFeerate,
		MaxRounds:          maxRounds,
		Metric:             metricName,
	}

	var result selectsvc.Result
	if err := postJSON("/v1/bnb", req, &result); err != nil {
		return err
	}

	out, err := jsonPrint(result)
	if err != nil {
		return err
	}
	fmt.Println(out)
	if !result.Proven {
		fmt.Println("warning: result is not proven optimal (max-rounds reached)")
	}
	return nil
}
