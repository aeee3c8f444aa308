package million

import "time"

// Option configures a Client with optional dependencies.
type Option func(*clientOptions)

// clientOptions holds optional Client configuration.
type clientOptions struct {
	logger     Logger
	metrics    MetricsCollector
	httpClient HTTPDoer
	clock      Clock
}

// WithLogger sets a logger.
//
// Parameters:
//   - logger: Logger implementation (compatible with zap.SugaredLogger)
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	client, err := million.New(&cfg, million.WithLogger(million.NewSlogLogger(slog.Default())))
func WithLogger(logger Logger) Option {
	return func(o *clientOptions) {
		o.logger = logger
	}
}

// WithMetrics sets a metrics collector.
//
// Parameters:
//   - metrics: MetricsCollector implementation
//
// Returns:
//   - Option: Functional option for New
//
// Example:
//
//	client, err := million.New(&cfg, million.WithMetrics(million.NewPrometheusMetrics(nil)))
func WithMetrics(metrics MetricsCollector) Option {
	return func(o *clientOptions) {
		o.metrics = metrics
	}
}

// WithHTTPClient injects the request executor used by the pipeline.
//
// The default is a plain *http.Client. Tests substitute a fake executor here
// instead of patching transport internals; production callers can supply a
// client with custom TLS, proxies, or connection pooling.
//
// Parameters:
//   - client: Request executor (anything with Do(*http.Request))
//
// Returns:
//   - Option: Functional option for New
func WithHTTPClient(client HTTPDoer) Option {
	return func(o *clientOptions) {
		o.httpClient = client
	}
}

// Clock is a time source for cache expiry stamps and checks.
type Clock func() time.Time

// WithClock overrides the cache's time source.
//
// Intended for tests that need deterministic TTL behavior without sleeping.
//
// Parameters:
//   - clock: Replacement time source
//
// Returns:
//   - Option: Functional option for New
func WithClock(clock Clock) Option {
	return func(o *clientOptions) {
		o.clock = clock
	}
}
