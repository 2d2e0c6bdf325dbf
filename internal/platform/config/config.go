package config

import (
	"os"
	"strconv"
	"time"
)

// Config captures everything the verification core reads from the host
// environment. FromEnv keeps embedding code lean; every field has a default
// so an empty environment yields a working in-memory core.
type Config struct {
	// AppVersion is stamped into every signed attestation.
	AppVersion string

	// ComponentThreshold is the per-name-component similarity a field must
	// clear to count as matched.
	ComponentThreshold float64
	// OverallThreshold is the aggregate similarity a name match must clear.
	OverallThreshold float64

	// RedisURL selects the Redis-backed secure keystore when set.
	RedisURL string
	// PostgresDSN selects the Postgres-backed secure keystore when set and
	// RedisURL is empty.
	PostgresDSN string

	// StoreTimeout bounds individual keystore round trips.
	StoreTimeout time.Duration
}

const (
	defaultAppVersion         = "dev"
	defaultComponentThreshold = 0.80
	defaultOverallThreshold   = 0.85
	defaultStoreTimeout       = 5 * time.Second
)

// FromEnv builds a Config from IDVERIFY_* environment variables.
func FromEnv() Config {
	cfg := Config{
		AppVersion:         defaultAppVersion,
		ComponentThreshold: defaultComponentThreshold,
		OverallThreshold:   defaultOverallThreshold,
		RedisURL:           os.Getenv("IDVERIFY_REDIS_URL"),
		PostgresDSN:        os.Getenv("IDVERIFY_POSTGRES_DSN"),
		StoreTimeout:       defaultStoreTimeout,
	}

	if v := os.Getenv("IDVERIFY_APP_VERSION"); v != "" {
		cfg.AppVersion = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("IDVERIFY_COMPONENT_THRESHOLD"), 64); err == nil && v > 0 && v <= 1 {
		cfg.ComponentThreshold = v
	}
	if v, err := strconv.ParseFloat(os.Getenv("IDVERIFY_OVERALL_THRESHOLD"), 64); err == nil && v > 0 && v <= 1 {
		cfg.OverallThreshold = v
	}
	if v, err := time.ParseDuration(os.Getenv("IDVERIFY_STORE_TIMEOUT")); err == nil && v > 0 {
		cfg.StoreTimeout = v
	}

	return cfg
}
