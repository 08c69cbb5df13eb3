// Package config resolves process configuration from command-line flags
// and environment variables, the way the codebase this module was
// adapted from parses its own flag.StringVar/BoolVar set in main.go.
package config

import (
	"flag"
	"os"

	"github.com/kgcyyds/miniob-2024/pkg/logging"
)

// Config holds every knob the storesql binary accepts.
type Config struct {
	DataDir    string
	LogPath    string
	LogLevel   logging.Level
	LogFormat  string
	DemoMode   bool
	ImportFile string
}

// Load parses flags (falling back to STORESQL_* environment variables
// for their defaults) into a Config. Call once from main.
func Load() Config {
	var cfg Config
	var level string

	flag.StringVar(&cfg.DataDir, "data", envOr("STORESQL_DATA_DIR", ""), "data directory (empty for in-memory tables)")
	flag.StringVar(&cfg.LogPath, "log", envOr("STORESQL_LOG_PATH", ""), "log file path (empty for stdout)")
	flag.StringVar(&level, "log-level", envOr("STORESQL_LOG_LEVEL", "INFO"), "log level: DEBUG, INFO, WARN, ERROR")
	flag.StringVar(&cfg.LogFormat, "log-format", envOr("STORESQL_LOG_FORMAT", "text"), "log format: text or json")
	flag.BoolVar(&cfg.DemoMode, "demo", false, "populate sample tables on startup")
	flag.StringVar(&cfg.ImportFile, "import", "", "SQL file to run on startup, statements separated by ';'")

	flag.Parse()

	cfg.LogLevel = logging.Level(level)
	return cfg
}

func envOr(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}
