package selectsvc

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/vulpemventures/utxoselect/coinselect"
	"github.com/vulpemventures/utxoselect/selectsvc/searchcache"
)

// Service wraps coinselect.CoinSelector with the ambient concerns the core
// explicitly has none of: structured logging of each round's summary
// (candidate count, score, proven flag), prometheus instrumentation, a
// persisted search cache keyed by candidate/target/metric fingerprint, and
// a notification hub callers can subscribe to for long-running searches.
// None of this changes what CoinSelector computes; it only observes it.
type Service struct {
	cache   *searchcache.Cache
	metrics *Metrics
	hub     *Hub
}

// NewService builds a Service. cache, metrics and hub may each be nil, in
// which case that concern is simply skipped (useful for tests that only
// want to exercise the selection logic).
func NewService(cache *searchcache.Cache, metrics *Metrics, hub *Hub) *Service {
	return &Service{cache: cache, metrics: metrics, hub: hub}
}

// SelectUntilTargetMetRequest is the body of a greedy-selection call.
// ChangePolicy mirrors RunBnBRequest's field: the caller must supply the
// real weights of the change output it would construct so DrainValue
// reflects what DrainWeights.OutputWeight/SpendWeight actually cost,
// instead of a fabricated zero-weight policy. Leaving it unset (Kind="")
// means the caller isn't offering a change output at all, so no drain is
// computed.
type SelectUntilTargetMetRequest struct {
	Candidates   []CandidateRequest  `json:"candidates"`
	Target       TargetRequest       `json:"target"`
	ChangePolicy ChangePolicyRequest `json:"change_policy,omitempty"`
}

// SelectUntilTargetMet runs coinselect's greedy selection in input order and
// logs the outcome at Info (success) or Debug (insufficient funds, which
// isn't exceptional at this layer — the caller decides what to do with it).
func (s *Service) SelectUntilTargetMet(req SelectUntilTargetMetRequest) (*Result, error) {
	candidates, target, err := decode(req.Candidates, req.Target)
	if err != nil {
		return nil, err
	}

	cs := coinselect.NewCoinSelector(candidates)
	if err := cs.SelectUntilTargetMet(target); err != nil {
		log.WithFields(log.Fields{
			"candidates": len(candidates),
			"error":      err,
		}).Debug("selectsvc: select_until_target_met found no funding selection")
		return nil, err
	}

	result := &Result{
		SelectedIndices: cs.SelectedIndices(),
		ExcessSatoshis:  cs.Excess(target, coinselect.Drain{}),
	}
	if req.ChangePolicy.Kind != "" {
		changePolicy, err := req.ChangePolicy.toChangePolicy(target.Fee.Rate)
		if err != nil {
			return nil, err
		}
		drain := cs.Drain(target, changePolicy)
		result.DrainValue = drain.Value
		result.ExcessSatoshis = cs.Excess(target, drain)
	}
	log.WithFields(log.Fields{
		"candidates": len(candidates),
		"selected":   len(result.SelectedIndices),
	}).Info("selectsvc: select_until_target_met succeeded")
	return result, nil
}

// RunBnBRequest is the body of a branch-and-bound search call.
type RunBnBRequest struct {
	Candidates         []CandidateRequest  `json:"candidates"`
	Target             TargetRequest       `json:"target"`
	ChangePolicy       ChangePolicyRequest `json:"change_policy"`
	LongTermFeerateSat float64             `json:"long_term_feerate_sat_per_vb"`
	MaxRounds          int                 `json:"max_rounds"`
	Metric             string              `json:"metric,omitempty"` // "lowest_fee" (default), "waste", "changeless"
	RequestID          string              `json:"request_id,omitempty"`
}

// RunBnB runs coinselect's branch-and-bound search, short-circuiting to a
// cached solution when one exists for this exact (candidates, target,
// metric) fingerprint (the cache lives in selectsvc, never inside
// CoinSelector itself, per spec §5's "no persisted state"). On a cache
// miss it runs the search, pushing progress notifications through the hub
// and recording the final outcome in both the cache and the metrics.
func (s *Service) RunBnB(req RunBnBRequest) (*Result, error) {
	candidates, target, err := decode(req.Candidates, req.Target)
	if err != nil {
		return nil, err
	}

	longTermFeerate := coinselect.FeeRateFromSatPerVB(req.LongTermFeerateSat)
	changePolicy, err := req.ChangePolicy.toChangePolicy(target.Fee.Rate)
	if err != nil {
		return nil, err
	}
	metricName := req.Metric
	if metricName == "" {
		metricName = "lowest_fee"
	}

	if s.cache != nil {
		fp := searchcache.Fingerprint(candidates, target, metricName, longTermFeerate)
		if cached, ok := s.cache.Get(fp); ok {
			if s.metrics != nil {
				s.metrics.observeSearch(0, cached.Proven, true)
			}
			log.WithFields(log.Fields{"fingerprint": fp}).Debug("selectsvc: run_bnb cache hit")
			return &Result{
				SelectedIndices: cached.SelectedIndices,
				Score:           cached.Score,
				Proven:          cached.Proven,
				FromCache:       true,
			}, nil
		}
	}

	metric, err := buildMetric(metricName, target, longTermFeerate, changePolicy)
	if err != nil {
		return nil, err
	}

	cs := coinselect.NewCoinSelector(candidates)
	start := time.Now()

	onImprove := func(score coinselect.Score) {
		if s.hub != nil {
			s.hub.Broadcast(ImproveEvent{RequestID: req.RequestID, Score: float64(score)})
		}
	}

	score, proven, rounds, err := cs.RunBnBWithProgress(metric, req.MaxRounds, onImprove)
	elapsed := time.Since(start).Seconds()
	s.logRounds(rounds)

	if err != nil {
		if s.metrics != nil {
			s.metrics.observeNoSolution()
		}
		log.WithFields(log.Fields{"candidates": len(candidates), "error": err}).
			Warn("selectsvc: run_bnb found no solution")
		return nil, err
	}

	if !proven {
		log.WithFields(log.Fields{"metric": metricName, "score": float64(score)}).
			Warn("selectsvc: run_bnb exhausted max_rounds without proving optimality")
	} else {
		log.WithFields(log.Fields{"metric": metricName, "score": float64(score)}).
			Info("selectsvc: run_bnb proved an optimal selection")
	}

	if s.metrics != nil {
		s.metrics.observeSearch(elapsed, proven, false)
	}

	drain := cs.Drain(target, changePolicy)
	result := &Result{
		SelectedIndices: cs.SelectedIndices(),
		DrainValue:      drain.Value,
		ExcessSatoshis:  cs.Excess(target, drain),
		Score:           float64(score),
		Proven:          proven,
	}

	if s.cache != nil {
		fp := searchcache.Fingerprint(candidates, target, metricName, longTermFeerate)
		if err := s.cache.Put(fp, searchcache.Solution{
			Score:           result.Score,
			Proven:          result.Proven,
			SelectedIndices: result.SelectedIndices,
		}); err != nil {
			log.WithError(err).Warn("selectsvc: failed to persist search result to cache")
		}
	}

	return result, nil
}

func (s *Service) logRounds(rounds int) {
	if s.metrics != nil {
		s.metrics.observeRounds(rounds)
	}
}

func buildMetric(name string, target coinselect.Target, longTermFeerate coinselect.FeeRate, changePolicy coinselect.ChangePolicy) (coinselect.Metric, error) {
	switch name {
	case "lowest_fee":
		return coinselect.LowestFee{Target: target, LongTermFeerate: longTermFeerate, ChangePolicy: changePolicy}, nil
	case "waste":
		return coinselect.Waste{Target: target, LongTermFeerate: longTermFeerate, ChangePolicy: changePolicy}, nil
	case "changeless":
		return coinselect.Changeless{Target: target, ChangePolicy: changePolicy}, nil
	default:
		return nil, fmt.Errorf("selectsvc: unknown metric %q", name)
	}
}

func decode(candidateReqs []CandidateRequest, targetReq TargetRequest) ([]coinselect.Candidate, coinselect.Target, error) {
	candidates := make([]coinselect.Candidate, len(candidateReqs))
	for i, cr := range candidateReqs {
		c, err := cr.toCandidate()
		if err != nil {
			return nil, coinselect.Target{}, fmt.Errorf("selectsvc: candidate %d: %w", i, err)
		}
		candidates[i] = c
	}
	return candidates, targetReq.toTarget(), nil
}
