package samples

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fluxkit/errors"
	"github.com/kbukum/fluxkit/logger"
	"github.com/kbukum/fluxkit/observability"
)

// Result is the outcome of one sample run.
type Result struct {
	Sample        string        `json:"sample"`
	CorrelationID string        `json:"correlation_id"`
	Status        string        `json:"status"`
	Elements      int64         `json:"elements"`
	Lines         []string      `json:"lines"`
	Duration      time.Duration `json:"duration"`
	Err           error         `json:"-"`
}

// Faulted reports whether the subscriber received a fault.
func (r Result) Faulted() bool { return r.Err != nil }

// Runner executes samples one after another.
type Runner struct {
	settings Settings
	log      *logger.Logger
	tracer   trace.Tracer
	metrics  *observability.Metrics
	newID    func() string
}

// RunnerOption configures a Runner.
type RunnerOption func(*Runner)

// WithTracer replaces the global fluxkit tracer.
func WithTracer(t trace.Tracer) RunnerOption {
	return func(r *Runner) { r.tracer = t }
}

// WithMetrics replaces the instruments created on the global meter.
func WithMetrics(m *observability.Metrics) RunnerOption {
	return func(r *Runner) { r.metrics = m }
}

// WithIDGenerator replaces the uuid correlation id generator.
func WithIDGenerator(fn func() string) RunnerOption {
	return func(r *Runner) { r.newID = fn }
}

// LoggerName is the registry name the Runner logs under when NewRunner gets
// no logger.
const LoggerName = "samples"

// NewRunner creates a Runner. Without a logger it uses logger.Get(LoggerName).
// Telemetry goes to the global providers unless overridden.
func NewRunner(settings Settings, log *logger.Logger, opts ...RunnerOption) *Runner {
	if log == nil {
		log = logger.Get(LoggerName)
	} else {
		log = log.WithComponent(LoggerName)
	}
	r := &Runner{
		settings: settings,
		log:      log,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.tracer == nil {
		r.tracer = observability.Tracer()
	}
	if r.metrics == nil {
		if m, err := observability.NewMetrics(observability.Meter()); err == nil {
			r.metrics = m
		} else {
			r.log.Warn("Sample metrics unavailable", logger.Fields(logger.FieldError, err.Error()))
		}
	}
	return r
}

// Run executes the named samples in order. Every name is resolved before
// anything runs, so an unknown name is a NOT_FOUND error with no results.
// A sample fault is recorded in its Result and the next sample still runs;
// cancellation stops the run and is returned as a CANCELED error.
func (r *Runner) Run(ctx context.Context, names ...string) ([]Result, error) {
	selected := make([]Sample, 0, len(names))
	for _, name := range names {
		s, err := Lookup(name)
		if err != nil {
			return nil, err
		}
		selected = append(selected, s)
	}

	results := make([]Result, 0, len(selected))
	for _, s := range selected {
		if err := ctx.Err(); err != nil {
			return results, errors.Canceled(err)
		}
		res := r.runOne(ctx, s)
		results = append(results, res)
		if res.Status == observability.StatusCanceled {
			return results, res.Err
		}
	}
	return results, nil
}

// RunAll executes every sample in catalogue order.
func (r *Runner) RunAll(ctx context.Context) ([]Result, error) {
	return r.Run(ctx, Names()...)
}

func (r *Runner) runOne(ctx context.Context, s Sample) Result {
	id := r.newID()
	ctx = logger.ContextWithCorrelationID(ctx, id)
	ctx, run := observability.StartSampleRun(ctx, r.tracer, r.metrics, s.Name, id)

	log := r.log.WithContext(ctx).WithFields(logger.Fields(logger.FieldSample, s.Name))
	log.Info("Running sample", logger.Fields("description", s.Description))

	out := NewRecorder(log, func() { run.Element(ctx) })
	err := r.invoke(ctx, s, Env{Settings: r.settings, Out: out})
	status := run.End(ctx, err)

	fields := logger.RunFields(status, run.Elements(), run.Duration())
	switch {
	case err == nil:
		log.Info("Sample finished", fields)
	case isTerminal(err):
		log.WithError(err).Warn("Sample faulted", fields)
	default:
		log.WithError(err).Info("Sample stopped", fields)
	}

	return Result{
		Sample:        s.Name,
		CorrelationID: id,
		Status:        status,
		Elements:      run.Elements(),
		Lines:         out.Lines(),
		Duration:      run.Duration(),
		Err:           err,
	}
}

// isTerminal reports whether err is a fault carried by the data, as opposed
// to a cancellation from outside.
func isTerminal(err error) bool {
	appErr, ok := errors.AsAppError(err)
	return !ok || errors.IsTerminalCode(appErr.Code)
}

// invoke runs the sample, turning a panic outside a subscription into an
// INTERNAL fault.
func (r *Runner) invoke(ctx context.Context, s Sample, env Env) (err error) {
	defer func() {
		if v := recover(); v != nil {
			err = errors.FromPanic(v)
			env.Out.Fault(err)
		}
	}()
	return s.Run(ctx, env)
}
