package metrics

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	otelprometheus "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

var (
	otelMeter metric.Meter

	runsTotal       metric.Int64Counter
	changesTotal    metric.Int64Counter
	runDuration     metric.Float64Histogram
	confidenceScore metric.Float64Histogram
	inFlightReqs    metric.Int64UpDownCounter
)

// Init creates a Prometheus registry, bridges it into an OpenTelemetry meter
// provider, and registers the instruments RecordRun and the HTTP middleware
// report into. It returns the registry (for mounting a promhttp handler) and
// a shutdown func to flush and release the provider.
//
// Every call builds a new registry and meter provider, installs that
// provider as the global one, and replaces the package-level instruments, so
// later RecordRun, InFlightInc and InFlightDec calls report into the registry
// the most recent call returned.
func Init() (*prometheus.Registry, func(context.Context) error, error) {
	registry := prometheus.NewRegistry()

	exporter, err := otelprometheus.New(otelprometheus.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	otel.SetMeterProvider(provider)

	otelMeter = provider.Meter("go.kubefix.dev/manifestfix")

	runsTotal, err = otelMeter.Int64Counter("manifestfix_runs_total",
		metric.WithDescription("total number of pipeline runs, by validity"))
	if err != nil {
		return nil, nil, fmt.Errorf("creating runs counter: %w", err)
	}

	changesTotal, err = otelMeter.Int64Counter("manifestfix_changes_total",
		metric.WithDescription("total number of changes emitted across all runs"))
	if err != nil {
		return nil, nil, fmt.Errorf("creating changes counter: %w", err)
	}

	runDuration, err = otelMeter.Float64Histogram("manifestfix_run_duration_seconds",
		metric.WithDescription("wall-clock duration of a full pipeline run"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, nil, fmt.Errorf("creating run duration histogram: %w", err)
	}

	confidenceScore, err = otelMeter.Float64Histogram("manifestfix_confidence_score",
		metric.WithDescription("aggregate confidence score of completed runs"))
	if err != nil {
		return nil, nil, fmt.Errorf("creating confidence histogram: %w", err)
	}

	inFlightReqs, err = otelMeter.Int64UpDownCounter("manifestfix_http_in_flight_requests",
		metric.WithDescription("number of /fix requests currently being handled"))
	if err != nil {
		return nil, nil, fmt.Errorf("creating in-flight gauge: %w", err)
	}

	return registry, provider.Shutdown, nil
}

// RecordRun reports one pipeline invocation's outcome. It is a no-op until
// [Init] has run, so instrumenting a call site costs nothing when metrics are
// disabled.
func RecordRun(ctx context.Context, changeCount int, confidence float64, valid bool, duration time.Duration) {
	if runsTotal == nil {
		return
	}

	validAttr := attrBool("valid", valid)

	runsTotal.Add(ctx, 1, metric.WithAttributes(validAttr))
	changesTotal.Add(ctx, int64(changeCount))
	runDuration.Record(ctx, duration.Seconds())
	confidenceScore.Record(ctx, confidence)
}

// InFlightInc and InFlightDec track concurrent /fix requests. Both are
// no-ops until [Init] has run.
func InFlightInc(ctx context.Context) {
	if inFlightReqs == nil {
		return
	}

	inFlightReqs.Add(ctx, 1)
}

func InFlightDec(ctx context.Context) {
	if inFlightReqs == nil {
		return
	}

	inFlightReqs.Add(ctx, -1)
}

func attrBool(key string, value bool) attribute.KeyValue {
	return attribute.Bool(key, value)
}
