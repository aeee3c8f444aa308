package million

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/barkhaaroraa/million-go-client/internal/logging"
	"github.com/barkhaaroraa/million-go-client/internal/metrics"
)

// NewSlogLogger adapts a *slog.Logger to the Logger interface.
//
// Parameters:
//   - logger: Underlying slog logger; nil uses slog.Default()
//
// Returns:
//   - Logger: Adapter suitable for WithLogger
//
// Example:
//
//	handler := slog.NewJSONHandler(os.Stdout, nil)
//	client, err := million.New(&cfg, million.WithLogger(million.NewSlogLogger(slog.New(handler))))
func NewSlogLogger(logger *slog.Logger) Logger {
	if logger == nil {
		return logging.NewSlogDefault()
	}

	return logging.NewSlog(logger)
}

// NewPrometheusMetrics creates a Prometheus-backed metrics collector.
//
// Metrics are registered lazily on first use, under the "million" namespace
// with assignment_cache and request subsystems.
//
// Parameters:
//   - reg: Target registry; nil uses prometheus.DefaultRegisterer
//
// Returns:
//   - MetricsCollector: Collector suitable for WithMetrics
//
// Example:
//
//	client, err := million.New(&cfg, million.WithMetrics(million.NewPrometheusMetrics(nil)))
func NewPrometheusMetrics(reg prometheus.Registerer) MetricsCollector {
	return metrics.NewPrometheus(reg, "million")
}
