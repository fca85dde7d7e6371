package selectsvc

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/vulpemventures/utxoselect/selectsvc/searchcache"
)

func candidateReqs() []CandidateRequest {
	return []CandidateRequest{
		{Value: 1100, Weight: 100, InputCount: 1},
		{Value: 570, Weight: 100, InputCount: 1},
		{Value: 570, Weight: 100, InputCount: 1},
	}
}

func targetReq() TargetRequest {
	return TargetRequest{OutputValueSum: 900, FeeRateSatPerVB: 4}
}

func TestSelectUntilTargetMetSucceeds(t *testing.T) {
	svc := NewService(nil, nil, nil)
	result, err := svc.SelectUntilTargetMet(SelectUntilTargetMetRequest{
		Candidates: candidateReqs(),
		Target:     targetReq(),
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.SelectedIndices)
}

func TestSelectUntilTargetMetOmitsDrainWithNoChangePolicy(t *testing.T) {
	svc := NewService(nil, nil, nil)
	result, err := svc.SelectUntilTargetMet(SelectUntilTargetMetRequest{
		Candidates: candidateReqs(),
		Target:     targetReq(),
	})
	require.NoError(t, err)
	require.Zero(t, result.DrainValue)
}

func TestSelectUntilTargetMetAppliesChangePolicy(t *testing.T) {
	svc := NewService(nil, nil, nil)
	result, err := svc.SelectUntilTargetMet(SelectUntilTargetMetRequest{
		Candidates: candidateReqs(),
		Target:     targetReq(),
		ChangePolicy: ChangePolicyRequest{
			Kind:         "min_value",
			DrainWeights: DrainWeightsRequest{OutputWeight: 40, SpendWeight: 80},
		},
	})
	require.NoError(t, err)
	require.NotZero(t, result.DrainValue)
}

func TestSelectUntilTargetMetReportsInsufficientFunds(t *testing.T) {
	svc := NewService(nil, nil, nil)
	_, err := svc.SelectUntilTargetMet(SelectUntilTargetMetRequest{
		Candidates: []CandidateRequest{{Value: 10, Weight: 100, InputCount: 1}},
		Target:     TargetRequest{OutputValueSum: 1000000},
	})
	require.Error(t, err)
}

func TestRunBnBFindsLowestFeeSelection(t *testing.T) {
	svc := NewService(nil, nil, nil)
	result, err := svc.RunBnB(RunBnBRequest{
		Candidates: candidateReqs(),
		Target:     targetReq(),
		ChangePolicy: ChangePolicyRequest{
			Kind:               "min_value_and_waste",
			DrainWeights:       DrainWeightsRequest{OutputWeight: 40, SpendWeight: 80},
			LongTermFeerateSat: 2,
		},
		LongTermFeerateSat: 2,
		MaxRounds:          1000,
	})
	require.NoError(t, err)
	require.True(t, result.Proven)
	require.Equal(t, []int{0}, result.SelectedIndices)
}

func TestRunBnBUnknownMetricRejected(t *testing.T) {
	svc := NewService(nil, nil, nil)
	_, err := svc.RunBnB(RunBnBRequest{
		Candidates: candidateReqs(),
		Target:     targetReq(),
		Metric:     "not-a-real-metric",
		MaxRounds:  10,
	})
	require.Error(t, err)
}

func TestRunBnBUsesCacheOnSecondCall(t *testing.T) {
	cache, err := searchcache.Open("", nil)
	require.NoError(t, err)
	defer cache.Close()

	reg := prometheus.NewRegistry()
	svc := NewService(cache, NewMetrics(reg), nil)

	req := RunBnBRequest{
		Candidates: candidateReqs(),
		Target:     targetReq(),
		MaxRounds:  1000,
	}

	first, err := svc.RunBnB(req)
	require.NoError(t, err)
	require.False(t, first.FromCache)

	second, err := svc.RunBnB(req)
	require.NoError(t, err)
	require.True(t, second.FromCache)
	require.Equal(t, first.SelectedIndices, second.SelectedIndices)
}

func TestRunBnBHonorsInvalidCandidate(t *testing.T) {
	svc := NewService(nil, nil, nil)
	_, err := svc.RunBnB(RunBnBRequest{
		Candidates: []CandidateRequest{{Value: 100, Weight: 0, InputCount: 1}},
		Target:     targetReq(),
		MaxRounds:  10,
	})
	require.Error(t, err)
}
