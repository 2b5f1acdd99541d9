package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// InitMeter builds a meter provider exporting over OTLP/HTTP on a periodic
// reader and installs it globally. The caller shuts it down on exit.
func InitMeter(ctx context.Context, cfg Config, svc ServiceInfo) (*sdkmetric.MeterProvider, error) {
	opts := []otlpmetrichttp.Option{
		otlpmetrichttp.WithEndpoint(cfg.Endpoint),
	}
	if cfg.Insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}

	exporter, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("creating metric exporter: %w", err)
	}

	res, err := newResource(svc)
	if err != nil {
		return nil, fmt.Errorf("creating resource: %w", err)
	}

	var readerOpts []sdkmetric.PeriodicReaderOption
	if cfg.MetricInterval > 0 {
		readerOpts = append(readerOpts, sdkmetric.WithInterval(cfg.MetricInterval))
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exporter, readerOpts...)),
		sdkmetric.WithResource(res),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

// Meter returns the fluxkit meter from the global provider.
func Meter() metric.Meter {
	return otel.Meter(InstrumentationName)
}

// Metrics holds the instruments recorded around sample runs.
type Metrics struct {
	runs     metric.Int64Counter
	elements metric.Int64Counter
	faults   metric.Int64Counter
	duration metric.Float64Histogram
}

// NewMetrics creates the sample instruments on meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	runs, err := meter.Int64Counter("samples.runs",
		metric.WithDescription("Sample runs by outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating samples.runs counter: %w", err)
	}

	elements, err := meter.Int64Counter("samples.elements",
		metric.WithDescription("Elements delivered to subscribers"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating samples.elements counter: %w", err)
	}

	faults, err := meter.Int64Counter("samples.faults",
		metric.WithDescription("Faults delivered to subscribers by error code"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating samples.faults counter: %w", err)
	}

	duration, err := meter.Float64Histogram("samples.duration",
		metric.WithDescription("Duration of sample runs in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating samples.duration histogram: %w", err)
	}

	return &Metrics{runs: runs, elements: elements, faults: faults, duration: duration}, nil
}

// RecordElement counts one delivered element.
func (m *Metrics) RecordElement(ctx context.Context, sample string) {
	m.elements.Add(ctx, 1, metric.WithAttributes(attribute.String(AttrSample, sample)))
}

// RecordFault counts one fault with its error code.
func (m *Metrics) RecordFault(ctx context.Context, sample, code string) {
	m.faults.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrSample, sample),
		attribute.String(AttrErrorCode, code),
	))
}

// RecordRun records a finished run.
func (m *Metrics) RecordRun(ctx context.Context, sample, status string, d time.Duration) {
	m.runs.Add(ctx, 1, metric.WithAttributes(
		attribute.String(AttrSample, sample),
		attribute.String(AttrStatus, status),
	))
	m.duration.Record(ctx, d.Seconds(), metric.WithAttributes(attribute.String(AttrSample, sample)))
}
