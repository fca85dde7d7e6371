// Package daemonconfig loads the tunables for the selectiond daemon,
// following the same exported *Key constant + viper pattern the sibling
// wallet daemon's internal/config package uses.
package daemonconfig

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the key to customize the daemon's datadir.
	DatadirKey = "DATADIR"
	// PortKey is the key to customize the port the HTTP/websocket API
	// listens on.
	PortKey = "PORT"
	// ProfilerPortKey is the key to customize the port the profiler
	// listens on.
	ProfilerPortKey = "PROFILER_PORT"
	// NoProfilerKey disables the profiler entirely.
	NoProfilerKey = "NO_PROFILER"
	// StatsIntervalKey customizes the interval, in seconds, at which the
	// profiler logs memory statistics.
	StatsIntervalKey = "STATS_INTERVAL"
	// LogLevelKey customizes the logrus log level.
	LogLevelKey = "LOG_LEVEL"
	// DefaultLongTermFeerateKey customizes the long_term_feerate, in
	// sat/vB, metrics fall back to when a caller's search request omits
	// one.
	DefaultLongTermFeerateKey = "DEFAULT_LONG_TERM_FEERATE"
	// DefaultMaxRoundsKey customizes the max_rounds budget run_bnb uses
	// when a caller's search request omits one.
	DefaultMaxRoundsKey = "DEFAULT_MAX_ROUNDS"
	// DefaultMinRelayFeerateKey customizes the relay-fee floor, in
	// sat/vB. Validate checks that it is non-negative; caller-supplied
	// target feerates are not compared against it.
	DefaultMinRelayFeerateKey = "DEFAULT_MIN_RELAY_FEERATE"

	// DbLocation is the folder inside the datadir containing the search
	// cache's badger files.
	DbLocation = "db"
	// ProfilerLocation is the folder inside the datadir containing
	// profiler stats files.
	ProfilerLocation = "stats"
)

var (
	vip *viper.Viper

	defaultDatadir         = btcutil.AppDataDir("selectiond", false)
	defaultPort            = 19000
	defaultProfilerPort    = 19001
	defaultStatsInterval   = 600
	defaultLogLevel        = 4
	defaultLongTermFeerate = 10.0
	defaultMaxRounds       = 100000
	defaultMinRelayFeerate = 1.0
)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("SELECTIOND")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(PortKey, defaultPort)
	vip.SetDefault(ProfilerPortKey, defaultProfilerPort)
	vip.SetDefault(NoProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, defaultStatsInterval)
	vip.SetDefault(LogLevelKey, defaultLogLevel)
	vip.SetDefault(DefaultLongTermFeerateKey, defaultLongTermFeerate)
	vip.SetDefault(DefaultMaxRoundsKey, defaultMaxRounds)
	vip.SetDefault(DefaultMinRelayFeerateKey, defaultMinRelayFeerate)
}

// Validate checks the loaded configuration is internally consistent. Unlike
// the sibling wallet daemon's config, this has no network/db-type enums to
// check against; it only has numeric ranges and the datadir.
func Validate() error {
	if len(GetString(DatadirKey)) == 0 {
		return fmt.Errorf("datadir must not be empty")
	}

	port := GetInt(PortKey)
	if !GetBool(NoProfilerKey) && port == GetInt(ProfilerPortKey) {
		return fmt.Errorf("port and profiler port must not be equal")
	}

	if GetInt(DefaultMaxRoundsKey) <= 0 {
		return fmt.Errorf("default max rounds must be positive")
	}
	if GetFloat64(DefaultLongTermFeerateKey) < 0 {
		return fmt.Errorf("default long term feerate must not be negative")
	}
	if GetFloat64(DefaultMinRelayFeerateKey) < 0 {
		return fmt.Errorf("default min relay feerate must not be negative")
	}
	return nil
}

// InitDatadir creates the datadir and its well-known subfolders if they
// don't exist yet.
func InitDatadir() error {
	datadir := GetString(DatadirKey)
	if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
		return err
	}
	if !GetBool(NoProfilerKey) {
		if err := makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation)); err != nil {
			return err
		}
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}

func GetString(key string) string   { return vip.GetString(key) }
func GetInt(key string) int         { return vip.GetInt(key) }
func GetBool(key string) bool       { return vip.GetBool(key) }
func GetFloat64(key string) float64 { return vip.GetFloat64(key) }

func Set(key string, val interface{}) { vip.Set(key, val) }
