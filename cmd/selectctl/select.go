package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vulpemventures/utxoselect/selectsvc"
)

var (
	candidatesFile       string
	outputValueSum       uint64
	outputWeightSum      uint32
	outputCount          uint32
	feerateSatPerVB      float64
	replaceMinFee        uint64
	selectDrainOutputWt  uint32
	selectDrainSpendWt   uint32
	selectChangePolicy   string
	selectChangeMinValue uint64
	selectLongTermRate   float64

	selectCmd = &cobra.Command{
		Use:   "select",
		Short: "greedily select candidates until the target is met",
		Long:  "Calls selectiond's select_until_target_met over a candidate set read from --candidates-file",
		RunE:  runSelect,
	}
)

func init() {
	addTargetFlags(selectCmd)
	selectCmd.Flags().Uint32Var(&selectDrainOutputWt, "drain-output-weight", 0, "weight of a hypothetical change output; used only with --change-policy")
	selectCmd.Flags().Uint32Var(&selectDrainSpendWt, "drain-spend-weight", 0, "weight of spending the change output later")
	selectCmd.Flags().StringVar(&selectChangePolicy, "change-policy", "", `"min_value" or "min_value_and_waste"; omit to report no drain`)
	selectCmd.Flags().Uint64Var(&selectChangeMinValue, "change-min-value", 0, "minimum drain value that justifies emitting change")
	selectCmd.Flags().Float64Var(&selectLongTermRate, "long-term-feerate", 10, "expected future feerate, in sat/vB, used by min_value_and_waste")
}

func addTargetFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&candidatesFile, "candidates-file", "", "path to a JSON array of candidates (required)")
	cmd.Flags().Uint64Var(&outputValueSum, "value", 0, "sum of recipient output values, in satoshis")
	cmd.Flags().Uint32Var(&outputWeightSum, "weight", 0, "sum of recipient output weights, in weight units")
	cmd.Flags().Uint32Var(&outputCount, "outputs", 1, "number of recipient outputs")
	cmd.Flags().Float64Var(&feerateSatPerVB, "feerate", 1, "target feerate, in sat/vB")
	cmd.Flags().Uint64Var(&replaceMinFee, "replace-min-fee", 0, "BIP-125 replacement absolute minimum fee floor, if any")
	cmd.MarkFlagRequired("candidates-file")
}

func loadCandidates() ([]selectsvc.CandidateRequest, error) {
	data, err := os.ReadFile(candidatesFile)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", candidatesFile, err)
	}
	var candidates []selectsvc.CandidateRequest
	if err := json.Unmarshal(data, &candidates); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", candidatesFile, err)
	}
	return candidates, nil
}

func buildTargetRequest() selectsvc.TargetRequest {
	return selectsvc.TargetRequest{
		OutputValueSum:  outputValueSum,
		OutputWeightSum: outputWeightSum,
		OutputCount:     outputCount,
		FeeRateSatPerVB: feerateSatPerVB,
		ReplaceMinFee:   replaceMinFee,
	}
}

func runSelect(_ *cobra.Command, _ []string) error {
	candidates, err := loadCandidates()
	if err != nil {
		return err
	}

	req := selectsvc.SelectUntilTargetMetRequest{Candidates: candidates, Target: buildTargetRequest()}
	if selectChangePolicy != "" {
		req.ChangePolicy = selectsvc.ChangePolicyRequest{
			Kind: selectChangePolicy,
			DrainWeights: selectsvc.DrainWeightsRequest{
				OutputWeight: selectDrainOutputWt,
				SpendWeight:  selectDrainSpendWt,
			},
			MinValue:           selectChangeMinValue,
			LongTermFeerateSat: selectLongTermRate,
		}
	}

	var result selectsvc.Result
	if err := postJSON("/v1/select", req, &result); err != nil {
		return err
	}

	out, err := jsonPrint(result)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
