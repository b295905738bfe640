package httpclient

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.opentelemetry.io/otel/trace"

	"github.com/jonwraymond/tracelog/tracing"
)

func newTracedRoot(t *testing.T) (context.Context, *tracetest.SpanRecorder) {
	t.Helper()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(tracing.NewSampler(1.0)),
		sdktrace.WithSpanProcessor(recorder),
	)
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	ctx, scope := tracing.StartRoot(tracing.WithTracer(context.Background(), tp.Tracer("test")), "root")
	t.Cleanup(func() { scope.End(nil) })
	return ctx, recorder
}

func TestTracingHooks_ClientSpan(t *testing.T) {
	srv := newHeaderServer(t, http.StatusServiceUnavailable, "down")
	ctx, recorder := newTracedRoot(t)
	root, _ := tracing.ActiveSpan(ctx)
	c := NewClient(nil, TracingHooks(nil))

	get(t, c, ctx, srv.URL+"/api/v1/jobs")

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	span := spans[0]
	assert.Equal(t, "GET /api/v1/jobs", span.Name())
	assert.Equal(t, trace.SpanKindClient, span.SpanKind())
	assert.Equal(t, root.SpanContext().SpanID(), span.Parent().SpanID())
	assert.Equal(t, codes.Error, span.Status().Code)

	headers := srv.lastHeaders()
	assert.Equal(t, span.SpanContext().TraceID().String(), headers.Get("X-B3-TraceId"))
	assert.Equal(t, span.SpanContext().SpanID().String(), headers.Get("X-B3-SpanId"))
	assert.NotEmpty(t, headers.Get("Traceparent"))
}

func TestTracingHooks_WithoutPropagation(t *testing.T) {
	srv := newHeaderServer(t, http.StatusOK, "")
	ctx, recorder := newTracedRoot(t)
	c := NewClient(nil, TracingHooks(nil))

	get(t, c, WithoutPropagation(ctx), srv.URL)

	assert.Len(t, recorder.Ended(), 1)
	assert.Empty(t, srv.lastHeaders().Get("X-B3-TraceId"))
	assert.Empty(t, srv.lastHeaders().Get("Traceparent"))
}

func TestTracingHooks_NoActiveSpan(t *testing.T) {
	srv := newHeaderServer(t, http.StatusOK, "")
	c := NewClient(nil, TracingHooks(nil))

	get(t, c, context.Background(), srv.URL)

	assert.Empty(t, srv.lastHeaders().Get("X-B3-TraceId"))
}
