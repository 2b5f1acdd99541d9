package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kbukum/fluxkit/errors"
)

// Run outcome statuses.
const (
	StatusOK       = "ok"
	StatusFault    = "fault"
	StatusCanceled = "canceled"
)

// SampleRun tracks one sample execution: its span, element count and
// duration. Metrics may be nil, in which case only the span is recorded.
type SampleRun struct {
	Sample        string
	CorrelationID string
	StartTime     time.Time
	Metrics       *Metrics

	span     trace.Span
	elements int64
}

// StartSampleRun opens a span for the sample on tracer and returns the
// derived context.
func StartSampleRun(ctx context.Context, tracer trace.Tracer, metrics *Metrics, sample, correlationID string) (context.Context, *SampleRun) {
	ctx, span := tracer.Start(ctx, SpanSampleRun, trace.WithAttributes(
		attribute.String(AttrSample, sample),
		attribute.String(AttrCorrelationID, correlationID),
	))
	return ctx, &SampleRun{
		Sample:        sample,
		CorrelationID: correlationID,
		StartTime:     time.Now(),
		Metrics:       metrics,
		span:          span,
	}
}

// Element counts one delivered element.
func (r *SampleRun) Element(ctx context.Context) {
	r.elements++
	if r.Metrics != nil {
		r.Metrics.RecordElement(ctx, r.Sample)
	}
}

// Elements returns the number of elements counted so far.
func (r *SampleRun) Elements() int64 { return r.elements }

// End closes the span and records the outcome. A nil err is StatusOK, a
// CANCELED fault is StatusCanceled, anything else is StatusFault.
func (r *SampleRun) End(ctx context.Context, err error) string {
	status := StatusOK
	if err != nil {
		status = StatusFault
		code := string(errors.ErrCodeInternal)
		if appErr, ok := errors.AsAppError(err); ok {
			code = string(appErr.Code)
		}
		if code == string(errors.ErrCodeCanceled) {
			status = StatusCanceled
		}
		r.span.RecordError(err)
		r.span.SetStatus(codes.Error, errors.Message(err))
		r.span.SetAttributes(attribute.String(AttrErrorCode, code))
		if r.Metrics != nil {
			r.Metrics.RecordFault(ctx, r.Sample, code)
		}
	}

	r.span.SetAttributes(
		attribute.String(AttrStatus, status),
		attribute.Int64(AttrElements, r.elements),
	)
	r.span.End()

	if r.Metrics != nil {
		r.Metrics.RecordRun(ctx, r.Sample, status, r.Duration())
	}
	return status
}

// Duration returns the elapsed time since the run started.
func (r *SampleRun) Duration() time.Duration {
	return time.Since(r.StartTime)
}
