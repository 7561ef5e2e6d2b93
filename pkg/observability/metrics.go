package observability

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	// Registerer receives the exporter's collectors. Defaults to the
	// Prometheus default registry when nil.
	Registerer prometheus.Registerer
	// Gatherer backs the returned /metrics handler. Defaults to the
	// Prometheus default gatherer when nil.
	Gatherer    prometheus.Gatherer
	ServiceName string
}

// InitMetrics initializes the Prometheus metrics exporter and installs the
// resulting MeterProvider as the global otel provider.
// Returns the MeterProvider and an HTTP handler for the /metrics endpoint.
func InitMetrics(cfg MetricsConfig) (*metric.MeterProvider, http.Handler, error) {
	var opts []promexporter.Option
	if cfg.Registerer != nil {
		opts = append(opts, promexporter.WithRegisterer(cfg.Registerer))
	}

	exporter, err := promexporter.New(opts...)
	if err != nil {
		return nil, nil, err
	}

	mpOpts := []metric.Option{metric.WithReader(exporter)}
	if cfg.ServiceName != "" {
		mpOpts = append(mpOpts, metric.WithResource(
			resource.NewSchemaless(semconv.ServiceNameKey.String(cfg.ServiceName)),
		))
	}
	provider := metric.NewMeterProvider(mpOpts...)
	otel.SetMeterProvider(provider)

	handler := promhttp.Handler()
	if cfg.Gatherer != nil {
		handler = promhttp.HandlerFor(cfg.Gatherer, promhttp.HandlerOpts{})
	}

	return provider, handler, nil
}
