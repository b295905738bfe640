package httpclient

import (
	"context"
	"net/http"
	"strconv"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/tracelog/tracing"
)

type otelSpanCtxKey struct{}

// TracingHooks returns hooks that open a client span for each request made
// under an active span with a bound tracer, and inject its trace headers with
// p unless propagation is disabled for the request. A nil p uses
// tracing.Propagator.
func TracingHooks(p propagation.TextMapPropagator) Hooks {
	if p == nil {
		p = tracing.Propagator()
	}
	return Hooks{
		OnRequestStart: func(req *http.Request) *http.Request {
			ctx := req.Context()
			tracer, ok := tracing.TracerFromContext(ctx)
			if !ok {
				return nil
			}
			if _, active := tracing.ActiveSpan(ctx); !active {
				return nil
			}

			ctx, span := tracer.Start(ctx, spanName(req),
				trace.WithSpanKind(trace.SpanKindClient),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(req.Method),
					semconv.URLFull(req.URL.String()),
					semconv.ServerAddress(req.URL.Hostname()),
				),
			)
			if port, err := strconv.Atoi(req.URL.Port()); err == nil {
				span.SetAttributes(semconv.ServerPort(port))
			}
			if PropagationEnabled(ctx) {
				p.Inject(ctx, propagation.HeaderCarrier(req.Header))
			}
			return req.WithContext(context.WithValue(ctx, otelSpanCtxKey{}, span))
		},
		OnRequestEnd: func(req *http.Request, resp *http.Response) {
			span, ok := req.Context().Value(otelSpanCtxKey{}).(trace.Span)
			if !ok {
				return
			}
			span.SetAttributes(semconv.HTTPResponseStatusCode(resp.StatusCode))
			if resp.StatusCode >= http.StatusBadRequest {
				span.SetStatus(codes.Error, http.StatusText(resp.StatusCode))
			}
			span.End()
		},
		OnRequestException: func(req *http.Request, err error) {
			span, ok := req.Context().Value(otelSpanCtxKey{}).(trace.Span)
			if !ok {
				return
			}
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
		},
	}
}
