// Package searchcache persists the best-known score for a given
// (candidate-set, target, metric) fingerprint across selectiond restarts,
// following the same badgerhold-over-badger storage pattern
// internal/infrastructure/storage/db/badger uses for ocean's domain
// repositories. It lives one layer above coinselect.CoinSelector, which
// spec §5 keeps free of any persisted state.
package searchcache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	log "github.com/sirupsen/logrus"
	"github.com/timshannon/badgerhold/v4"

	"github.com/vulpemventures/utxoselect/coinselect"
)

// Solution is the cached record for one fingerprint: the best score a prior
// run_bnb call reached, whether it was proven optimal, and which candidate
// indices (in sort order) realize it.
type Solution struct {
	Fingerprint     string `boltholdKey:"Fingerprint"`
	Score           float64
	Proven          bool
	SelectedIndices []int
}

// Cache wraps a badgerhold store keyed by fingerprint.
type Cache struct {
	store *badgerhold.Store
}

// Open creates (or reopens) the cache's badger files under dbDir, logging
// through logger (pass nil, as the package's own tests do, to silence
// badger's internal logging). An empty dbDir opens an in-memory store.
func Open(dbDir string, logger badger.Logger) (*Cache, error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger
	if len(dbDir) == 0 {
		opts.InMemory = true
	} else {
		opts.Compression = options.ZSTD
	}

	store, err := badgerhold.Open(badgerhold.Options{
		Encoder: badgerhold.DefaultEncode,
		Decoder: badgerhold.DefaultDecode,
		Options: opts,
	})
	if err != nil {
		return nil, fmt.Errorf("searchcache: opening badger store: %w", err)
	}

	if len(dbDir) > 0 {
		go runGC(store)
	}

	return &Cache{store: store}, nil
}

func runGC(store *badgerhold.Store) {
	ticker := time.NewTicker(30 * time.Minute)
	for range ticker.C {
		if err := store.Badger().RunValueLogGC(0.5); err != nil && err != badger.ErrNoRewrite {
			log.WithError(err).Warn("searchcache: value log gc failed")
		}
	}
}

// Close releases the underlying badger files.
func (c *Cache) Close() error {
	return c.store.Close()
}

// Get looks up a previously stored Solution for fingerprint.
func (c *Cache) Get(fingerprint string) (Solution, bool) {
	var sol Solution
	if err := c.store.Get(fingerprint, &sol); err != nil {
		if err != badgerhold.ErrNotFound {
			log.WithError(err).Warn("searchcache: get failed")
		}
		return Solution{}, false
	}
	return sol, true
}

// Put stores or overwrites the Solution for fingerprint.
func (c *Cache) Put(fingerprint string, sol Solution) error {
	sol.Fingerprint = fingerprint
	return c.store.Upsert(fingerprint, sol)
}

// Count reports how many solutions are currently cached, used by the
// profiler's periodic stats log to track cache growth over a run.
func (c *Cache) Count() (int, error) {
	n, err := c.store.Count(&Solution{}, &badgerhold.Query{})
	if err != nil {
		return 0, fmt.Errorf("searchcache: count failed: %w", err)
	}
	return int(n), nil
}

// Fingerprint deterministically hashes a candidate catalog, a target and a
// metric name into a cache key. Two calls with the same candidates (in the
// same order), the same target, the same metric name and the same long-term
// feerate always collide,
// regardless of the selector's current sort order or selection state, since
// neither of those affects what run_bnb from a fresh selector would find.
func Fingerprint(candidates []coinselect.Candidate, target coinselect.Target, metricName string, longTermFeerate coinselect.FeeRate) string {
	h := sha256.New()
	var buf [8]byte

	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		h.Write(buf[:])
	}
	writeFloat := func(f float64) {
		writeUint(uint64(f * 1e9))
	}

	writeUint(uint64(len(candidates)))
	for _, c := range candidates {
		writeUint(uint64(c.InputCount))
		writeUint(c.Value)
		writeUint(uint64(c.Weight))
		if c.IsSegwit {
			writeUint(1)
		} else {
			writeUint(0)
		}
	}

	writeUint(target.Outputs.ValueSum)
	writeUint(uint64(target.Outputs.WeightSum))
	writeUint(uint64(target.Outputs.NOutputs))
	writeFloat(target.Fee.Rate.SatPerWU())
	writeUint(target.Fee.ReplaceMinFee)
	writeFloat(longTermFeerate.SatPerWU())

	h.Write([]byte(metricName))

	return hex.EncodeToString(h.Sum(nil))
}
