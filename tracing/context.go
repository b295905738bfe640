package tracing

import (
	"context"

	"go.opentelemetry.io/otel/trace"
)

type tracerCtxKey struct{}

// WithTracer binds tracer to ctx. A nil tracer unbinds it.
//
// The explicit sampling decisions of ContinueOrStart and StartSampledRoot
// take effect only when tracer comes from a provider configured with
// sdktrace.WithSampler(NewSampler(rate)).
func WithTracer(ctx context.Context, tracer trace.Tracer) context.Context {
	return context.WithValue(ctx, tracerCtxKey{}, tracer)
}

// TracerFromContext returns the tracer bound to ctx.
func TracerFromContext(ctx context.Context) (trace.Tracer, bool) {
	tracer, ok := ctx.Value(tracerCtxKey{}).(trace.Tracer)
	return tracer, ok && tracer != nil
}

func lookupTracer(ctx context.Context) (trace.Tracer, error) {
	tracer, ok := TracerFromContext(ctx)
	if !ok {
		return nil, ErrMissingTracer
	}
	return tracer, nil
}

// ActiveSpan returns the span active in ctx, if any.
func ActiveSpan(ctx context.Context) (trace.Span, bool) {
	span := trace.SpanFromContext(ctx)
	if !span.SpanContext().IsValid() {
		return nil, false
	}
	return span, true
}
