package million

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultBaseURL is the production endpoint of the experiment service.
const DefaultBaseURL = "https://api.millionexperiments.com"

// Config is the configuration for the Client.
//
// All duration fields accept standard Go duration strings like "10s", "30m"
// when loaded from a file or environment.
type Config struct {
	// APIKey authenticates every request as a bearer token. Required.
	APIKey string `koanf:"api_key"`

	// BaseURL is the absolute service endpoint.
	// Defaults to DefaultBaseURL.
	BaseURL string `koanf:"base_url"`

	// RequestTimeout bounds each network exchange. Applied per request via
	// context; a timed-out call surfaces a NetworkError without affecting
	// other in-flight calls. Defaults to 10 seconds.
	RequestTimeout time.Duration `koanf:"request_timeout"`

	// CacheTTL is how long fetched user/session assignments stay reusable.
	// A repeat fetch for the same identity within the TTL returns the cached
	// assignment without a network round trip. Defaults to 30 minutes.
	CacheTTL time.Duration `koanf:"cache_ttl"`

	// sweepInterval drives the background eviction of expired entries.
	// Fixed at 5 minutes in production; only TestConfig shortens it.
	sweepInterval time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
//
// Returns:
//   - Config: Configuration with default values (APIKey still unset)
func DefaultConfig() Config {
	return Config{
		BaseURL:        DefaultBaseURL,
		RequestTimeout: 10 * time.Second,
		CacheTTL:       30 * time.Minute,
		sweepInterval:  5 * time.Minute,
	}
}

// SetDefaults fills in missing configuration values with production defaults.
//
// Parameters:
//   - cfg: Config to apply defaults to (modified in place)
func SetDefaults(cfg *Config) {
	defaults := DefaultConfig()

	if cfg.BaseURL == "" {
		cfg.BaseURL = defaults.BaseURL
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = defaults.RequestTimeout
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = defaults.CacheTTL
	}
	if cfg.sweepInterval == 0 {
		cfg.sweepInterval = defaults.sweepInterval
	}
}

// Validate checks configuration constraints and returns an error for invalid values.
//
// Hard Validation Rules:
//   - APIKey must be non-empty
//   - RequestTimeout must be positive
//   - CacheTTL must be positive
//
// Returns:
//   - error: Validation error with clear explanation, nil if valid
func (cfg *Config) Validate() error {
	if cfg.APIKey == "" {
		return ErrAPIKeyRequired
	}
	if cfg.RequestTimeout <= 0 {
		return fmt.Errorf("RequestTimeout must be > 0, got %v", cfg.RequestTimeout)
	}
	if cfg.CacheTTL <= 0 {
		return fmt.Errorf("CacheTTL must be > 0, got %v", cfg.CacheTTL)
	}

	return nil
}

// LoadConfig builds a Config by layering defaults, an optional YAML file, and
// environment variables.
//
// Order of precedence (low -> high):
//  1. DefaultConfig()
//  2. YAML file named by MILLION_CONFIG, if set
//  3. Environment variables with the MILLION_ prefix
//     (MILLION_API_KEY, MILLION_BASE_URL, MILLION_REQUEST_TIMEOUT, MILLION_CACHE_TTL)
//
// Returns:
//   - *Config: Loaded configuration with defaults applied (not yet validated)
//   - error: File or parse error
func LoadConfig() (*Config, error) {
	cfg := DefaultConfig()

	k := koanf.New(".")

	if path := os.Getenv("MILLION_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// Map env keys like MILLION_API_KEY -> api_key to match koanf tags.
	envProvider := env.Provider("MILLION_", ".", func(s string) string {
		s = strings.ToLower(s)

		return strings.TrimPrefix(s, "million_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	SetDefaults(&cfg)

	return &cfg, nil
}

// TestConfig returns a configuration optimized for fast test execution.
//
// Cache and sweep timings are shortened so expiry behavior can be exercised
// in milliseconds. Use DefaultConfig() for production.
//
// Returns:
//   - Config: Configuration with fast timings for tests (APIKey preset)
func TestConfig() Config {
	cfg := DefaultConfig()
	cfg.APIKey = "test-api-key"
	cfg.RequestTimeout = 2 * time.Second
	cfg.CacheTTL = 100 * time.Millisecond
	cfg.sweepInterval = 20 * time.Millisecond

	return cfg
}
