package recs

import (
	"fmt"
	"os"
	"sync"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/go-recs/recs/dialect"
	dsql "github.com/go-recs/recs/dialect/sql"
)

// Duration is a time.Duration that unmarshals from YAML strings like
// "250ms" or "2s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("recs: invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

// Config holds the settings of a client. Only DSN is required.
type Config struct {
	// DSN is the PostgreSQL connection string.
	DSN string `yaml:"dsn"`
	// MaxLeases bounds concurrently held connection leases (0 = unbounded).
	MaxLeases int64 `yaml:"max_leases"`
	// SlowThreshold enables query statistics with slow-query logging
	// above the given duration.
	SlowThreshold Duration `yaml:"slow_threshold"`
	// Debug logs every outgoing statement at debug level.
	Debug bool `yaml:"debug"`
	// CacheTTL enables an in-memory record cache with the given expiry.
	CacheTTL Duration `yaml:"cache_ttl"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("recs: parse config %s: %w", path, err)
	}
	if cfg.DSN == "" {
		return nil, NewConfigurationError("config %s has no dsn", path)
	}
	return &cfg, nil
}

// Open builds a client from the configuration.
func (cfg *Config) Open(opts ...Option) (*Client, error) {
	if cfg.DSN == "" {
		return nil, newNoConnStringError("no connection string")
	}
	base, err := dsql.Open(dialect.Postgres, cfg.DSN)
	if err != nil {
		return nil, err
	}
	var drv dialect.Driver = base
	if cfg.SlowThreshold > 0 {
		drv = dsql.WithStats(base,
			dsql.WithSlowThreshold(time.Duration(cfg.SlowThreshold)),
			dsql.WithSlowQueryLog(nil),
		)
	}
	all := []Option{Driver(drv)}
	if cfg.MaxLeases > 0 {
		all = append(all, MaxLeases(cfg.MaxLeases))
	}
	if cfg.Debug {
		all = append(all, Debug())
	}
	if cfg.CacheTTL > 0 {
		all = append(all, WithCache(NewMemoryCache(), time.Duration(cfg.CacheTTL)))
	}
	return NewClient(append(all, opts...)...)
}

// The process-wide default client. Operations needing no explicit
// dependency wiring can configure a connection string once and share
// the lazily built client.
var (
	defaultMu     sync.Mutex
	defaultDSN    string
	defaultClient *Client
)

// SetDSN configures the connection string of the default client. It
// has no effect once the default client has been built.
func SetDSN(dsn string) {
	defaultMu.Lock()
	defaultDSN = dsn
	defaultMu.Unlock()
}

// Default returns the process-wide client, building it at most once
// from the connection string configured with SetDSN. Using it without
// a configured connection string is a ConfigurationError (matchable
// with errors.Is against ErrNoConnString); a failed build does not
// latch, so a later SetDSN still takes effect.
func Default() (*Client, error) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultClient != nil {
		return defaultClient, nil
	}
	if defaultDSN == "" {
		return nil, newNoConnStringError("call SetDSN before Default")
	}
	c, err := Open(defaultDSN)
	if err != nil {
		return nil, err
	}
	defaultClient = c
	return c, nil
}
