package tracing

import (
	"context"

	"github.com/getsentry/sentry-go"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Scope holds the spans opened for one traced call. Either span may be nil
// when its track was disabled for the call.
type Scope struct {
	span    trace.Span
	monitor *sentry.Span
}

// Span returns the tracing span opened for the call, or nil.
func (s *Scope) Span() trace.Span {
	if s == nil {
		return nil
	}
	return s.span
}

// MonitorSpan returns the monitoring span opened for the call, or nil.
func (s *Scope) MonitorSpan() *sentry.Span {
	if s == nil {
		return nil
	}
	return s.monitor
}

// End closes the spans of the scope, innermost first, recording err on both.
// End is safe on a nil scope.
func (s *Scope) End(err error) {
	if s == nil {
		return
	}
	if s.monitor != nil {
		if err != nil {
			s.monitor.Status = sentry.SpanStatusInternalError
			s.monitor.SetData("error", err.Error())
		} else if s.monitor.Status == sentry.SpanStatusUndefined {
			s.monitor.Status = sentry.SpanStatusOK
		}
		s.monitor.Finish()
	}
	if s.span != nil {
		if err != nil {
			s.span.RecordError(err)
			s.span.SetStatus(codes.Error, err.Error())
		}
		s.span.End()
	}
}

// ContinueOrStart opens a span named name for the call about to run with the
// returned context.
//
// With no tracer bound the tracing track is left untouched. With a tracer
// bound, the span is a child of the active span, or an unsampled root when no
// span is active. The unsampled decision is applied by the sampler from
// NewSampler; a provider with another sampler samples the root at its own rate.
// On the monitoring track a child span with operation "call"
// is opened when a monitoring span is present in ctx.
func ContinueOrStart(ctx context.Context, name string) (context.Context, *Scope) {
	scope := &Scope{}
	if tracer, err := lookupTracer(ctx); err == nil {
		opts := []trace.SpanStartOption{trace.WithSpanKind(trace.SpanKindInternal)}
		if _, active := ActiveSpan(ctx); !active {
			opts = append(opts, trace.WithNewRoot(), withDecision(DecisionUnsampled))
		}
		ctx, scope.span = tracer.Start(ctx, name, opts...)
	}
	ctx, scope.monitor = startMonitorChild(ctx, name)
	return ctx, scope
}

// StartRoot opens a new root span named name, sampled at the configured rate,
// and a new monitoring transaction on a cloned hub.
func StartRoot(ctx context.Context, name string) (context.Context, *Scope) {
	return startRoot(ctx, name, false)
}

// StartSampledRoot is StartRoot with the sampling decision forced to true on
// both tracks, whatever the configured rate. On the tracing track the forced
// decision requires the tracer's provider to use the sampler from NewSampler.
func StartSampledRoot(ctx context.Context, name string) (context.Context, *Scope) {
	return startRoot(ctx, name, true)
}

func startRoot(ctx context.Context, name string, sampled bool) (context.Context, *Scope) {
	scope := &Scope{}
	if tracer, err := lookupTracer(ctx); err == nil {
		opts := []trace.SpanStartOption{trace.WithNewRoot(), trace.WithSpanKind(trace.SpanKindInternal)}
		if sampled {
			opts = append(opts, withDecision(DecisionSampled))
		}
		ctx, scope.span = tracer.Start(ctx, name, opts...)
	}
	ctx, scope.monitor = startMonitorTransaction(ctx, name, sampled)
	return ctx, scope
}

// SuppressSampling marks the monitoring transaction in ctx as not sampled.
// The tracing track is unaffected.
func SuppressSampling(ctx context.Context) {
	if tx := sentry.TransactionFromContext(ctx); tx != nil {
		tx.Sampled = sentry.SampledFalse
	}
}
