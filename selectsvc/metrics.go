package selectsvc

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics is the instrumentation wrapped around (never inside) the pure
// core, following the same counters-and-histograms idiom the pack's
// prometheus-importing repo applies to its own services: round-trip
// durations as histograms, discrete outcomes as counters.
type Metrics struct {
	searchDuration  prometheus.Histogram
	roundsPerSearch prometheus.Histogram
	solutionsFound  *prometheus.CounterVec
	cacheHits       prometheus.Counter
}

// NewMetrics builds and registers the Metrics collectors against reg. A
// caller that doesn't want a dedicated registry can pass
// prometheus.DefaultRegisterer.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		searchDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "selectiond",
			Subsystem: "bnb",
			Name:      "search_duration_seconds",
			Help:      "Wall-clock time spent inside a single run_bnb call.",
			Buckets:   prometheus.DefBuckets,
		}),
		roundsPerSearch: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "selectiond",
			Subsystem: "bnb",
			Name:      "rounds_per_search",
			Help:      "Number of priority-queue pops a run_bnb call performed.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 10),
		}),
		solutionsFound: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "selectiond",
			Subsystem: "bnb",
			Name:      "solutions_total",
			Help:      "Outcomes of run_bnb calls, labeled by whether the result was proven optimal.",
		}, []string{"outcome"}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "selectiond",
			Subsystem: "bnb",
			Name:      "cache_hits_total",
			Help:      "Number of run_bnb calls short-circuited by the search cache.",
		}),
	}
	reg.MustRegister(m.searchDuration, m.roundsPerSearch, m.solutionsFound, m.cacheHits)
	return m
}

func (m *Metrics) observeSearch(seconds float64, proven bool, cacheHit bool) {
	if cacheHit {
		m.cacheHits.Inc()
		m.solutionsFound.WithLabelValues("cached").Inc()
		return
	}
	m.searchDuration.Observe(seconds)
	outcome := "unproven"
	if proven {
		outcome = "proven"
	}
	m.solutionsFound.WithLabelValues(outcome).Inc()
}

func (m *Metrics) observeRounds(rounds int) {
	m.roundsPerSearch.Observe(float64(rounds))
}

func (m *Metrics) observeNoSolution() {
	m.solutionsFound.WithLabelValues("none").Inc()
}
