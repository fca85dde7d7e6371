// Command selectiond runs the coin-selection engine as a small daemon: an
// HTTP+JSON API wrapping selectsvc.Service, a websocket notification stream
// for long-running searches, a prometheus /metrics endpoint and the pack's
// pprof profiler, following the same main-wiring shape as ocean's
// cmd/oceand (config load -> profiler -> service -> signal wait).
package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/vulpemventures/utxoselect/internal/daemonconfig"
	"github.com/vulpemventures/utxoselect/pkg/profiler"
	"github.com/vulpemventures/utxoselect/selectsvc"
	"github.com/vulpemventures/utxoselect/selectsvc/searchcache"
)

var (
	version string
	commit  string
	date    string

	logLevel      = daemonconfig.GetInt(daemonconfig.LogLevelKey)
	datadir       = daemonconfig.GetString(daemonconfig.DatadirKey)
	port          = daemonconfig.GetInt(daemonconfig.PortKey)
	profilerPort  = daemonconfig.GetInt(daemonconfig.ProfilerPortKey)
	noProfiler    = daemonconfig.GetBool(daemonconfig.NoProfilerKey)
	statsInterval = time.Duration(daemonconfig.GetInt(daemonconfig.StatsIntervalKey)) * time.Second
	dbDir         = filepath.Join(datadir, daemonconfig.DbLocation)
	profilerDir   = filepath.Join(datadir, daemonconfig.ProfilerLocation)
)

func main() {
	log.SetLevel(log.Level(logLevel))
	log.WithFields(log.Fields{"version": version, "commit": commit, "date": date}).Info("selectiond: starting")

	if err := daemonconfig.Validate(); err != nil {
		log.WithError(err).Fatal("config: invalid configuration")
	}
	if err := daemonconfig.InitDatadir(); err != nil {
		log.WithError(err).Fatal("config: failed to initialize datadir")
	}

	cache, err := searchcache.Open(dbDir, log.StandardLogger())
	if err != nil {
		log.WithError(err).Fatal("searchcache: failed to open")
	}
	defer cache.Close()

	reg := prometheus.NewRegistry()
	metrics := selectsvc.NewMetrics(reg)
	hub := selectsvc.NewHub()
	svc := selectsvc.NewService(cache, metrics, hub)

	if !noProfiler {
		profilerSvc, err := profiler.NewService(profiler.ServiceOpts{
			Port:          profilerPort,
			StatsInterval: statsInterval,
			Datadir:       profilerDir,
			DomainStats:   domainStats(cache, hub),
		})
		if err != nil {
			log.WithError(err).Fatal("profiler: error while starting")
		}
		if err := profilerSvc.Start(); err != nil {
			log.WithError(err).Fatal("profiler: error while starting")
		}
		defer profilerSvc.Stop()
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/v1/select", handleSelectUntilTargetMet(svc))
	mux.HandleFunc("/v1/bnb", handleRunBnB(svc))
	mux.HandleFunc("/v1/ws", hub.ServeHTTP)
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	server := &http.Server{Addr: addr(port), Handler: mux}
	go func() {
		log.WithField("addr", server.Addr).Info("selectiond: listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("selectiond: server error")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Info("selectiond: shutting down")
	server.Close()
}

func addr(port int) string {
	return fmt.Sprintf(":%d", port)
}

// domainStats builds the profiler's DomainStats hook: the search cache's
// current solution count and the notification hub's live subscriber count,
// the two numbers that best explain this particular daemon's memory growth
// over a long run.
func domainStats(cache *searchcache.Cache, hub *selectsvc.Hub) func() map[string]int64 {
	return func() map[string]int64 {
		stats := map[string]int64{
			"hub_subscribers": int64(hub.SubscriberCount()),
		}
		n, err := cache.Count()
		if err != nil {
			log.WithError(err).Warn("profiler: failed to count search cache entries")
			return stats
		}
		stats["searchcache_entries"] = int64(n)
		return stats
	}
}

func handleSelectUntilTargetMet(svc *selectsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req selectsvc.SelectUntilTargetMetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		result, err := svc.SelectUntilTargetMet(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		writeJSON(w, result)
	}
}

func handleRunBnB(svc *selectsvc.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		var req selectsvc.RunBnBRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		if req.MaxRounds <= 0 {
			req.MaxRounds = daemonconfig.GetInt(daemonconfig.DefaultMaxRoundsKey)
		}
		if req.LongTermFeerateSat <= 0 {
			req.LongTermFeerateSat = daemonconfig.GetFloat64(daemonconfig.DefaultLongTermFeerateKey)
		}
		result, err := svc.RunBnB(req)
		if err != nil {
			http.Error(w, err.Error(), http.StatusUnprocessableEntity)
			return
		}
		writeJSON(w, result)
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("selectiond: failed to encode response")
	}
}
