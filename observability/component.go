package observability

import (
	"context"
	stderrors "errors"
	"sync"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/kbukum/fluxkit/component"
	"github.com/kbukum/fluxkit/logger"
)

// Telemetry is the component that owns the OTLP tracer and meter providers.
type Telemetry struct {
	cfg Config
	svc ServiceInfo
	log *logger.Logger

	mu      sync.Mutex
	tp      *sdktrace.TracerProvider
	mp      *sdkmetric.MeterProvider
	started bool
}

var (
	_ component.Component   = (*Telemetry)(nil)
	_ component.Describable = (*Telemetry)(nil)
)

// NewTelemetry creates the telemetry component. Nothing is exported until
// Start, and only when cfg.Enabled is set.
func NewTelemetry(cfg Config, svc ServiceInfo, log *logger.Logger) *Telemetry {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	return &Telemetry{cfg: cfg, svc: svc, log: log.WithComponent("telemetry")}
}

// Name implements component.Component.
func (t *Telemetry) Name() string { return "telemetry" }

// Start installs the SDK providers when telemetry is enabled.
func (t *Telemetry) Start(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.cfg.Enabled {
		t.log.Debug("Telemetry disabled, using no-op providers")
		return nil
	}

	tp, err := InitTracer(ctx, t.cfg, t.svc)
	if err != nil {
		return err
	}
	mp, err := InitMeter(ctx, t.cfg, t.svc)
	if err != nil {
		_ = tp.Shutdown(ctx)
		return err
	}
	t.tp, t.mp, t.started = tp, mp, true

	t.log.Info("Telemetry exporters installed", logger.Fields(
		"endpoint", t.cfg.Endpoint,
		"sample_rate", t.cfg.SampleRate,
		"interval", t.cfg.MetricInterval.String(),
	))
	return nil
}

// Stop flushes and shuts down the providers.
func (t *Telemetry) Stop(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return nil
	}
	t.started = false
	return stderrors.Join(t.mp.Shutdown(ctx), t.tp.Shutdown(ctx))
}

// Health implements component.Component.
func (t *Telemetry) Health(_ context.Context) component.Health {
	t.mu.Lock()
	defer t.mu.Unlock()

	h := component.Health{Name: t.Name(), Status: component.StatusHealthy}
	switch {
	case !t.cfg.Enabled:
		h.Status = component.StatusDisabled
	case !t.started:
		h.Status = component.StatusUnhealthy
		h.Message = "exporters not started"
	}
	return h
}

// Describe implements component.Describable.
func (t *Telemetry) Describe() component.Description {
	if !t.cfg.Enabled {
		return component.Description{Type: "telemetry", Details: "disabled"}
	}
	return component.Description{Type: "telemetry", Details: "otlp " + t.cfg.Endpoint}
}
