package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/crisgp1/cliquealo.mx-sub002/services/credit-service/usecase"

// Simulation outcomes recorded on the simulations counter.
const (
	outcomeEligible   = "eligible"
	outcomeIneligible = "ineligible"
	outcomeNoMatch    = "no_match"
	outcomeInvalid    = "invalid"
	outcomeError      = "error"
)

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return otel.Tracer(instrumentationName).Start(ctx, name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.End()
}

type simulationMetrics struct {
	simulations metric.Int64Counter
	offers      metric.Int64Histogram
}

func newSimulationMetrics() *simulationMetrics {
	meter := otel.Meter(instrumentationName)

	simulations, err := meter.Int64Counter("credit.simulations",
		metric.WithDescription("Credit simulations served, by mode and outcome."))
	if err != nil {
		simulations, _ = noop.Meter{}.Int64Counter("credit.simulations")
	}
	offers, err := meter.Int64Histogram("credit.simulation.offers",
		metric.WithDescription("Lender offers returned per simulation."))
	if err != nil {
		offers, _ = noop.Meter{}.Int64Histogram("credit.simulation.offers")
	}
	return &simulationMetrics{simulations: simulations, offers: offers}
}

func (m *simulationMetrics) record(ctx context.Context, mode, outcome string, offers int) {
	attrs := metric.WithAttributes(attribute.String("mode", mode), attribute.String("outcome", outcome))
	m.simulations.Add(ctx, 1, attrs)
	if outcome != outcomeInvalid && outcome != outcomeError {
		m.offers.Record(ctx, int64(offers), metric.WithAttributes(attribute.String("mode", mode)))
	}
}
