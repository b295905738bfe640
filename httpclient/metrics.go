package httpclient

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

type startTimeCtxKey struct{}

// clientMetrics holds the instruments recorded for outgoing requests.
type clientMetrics struct {
	totalCount   metric.Int64Counter
	errorCount   metric.Int64Counter
	durationHist metric.Float64Histogram
}

func newClientMetrics(meter metric.Meter) (*clientMetrics, error) {
	totalCount, err := meter.Int64Counter(
		"http.client.requests",
		metric.WithDescription("Total number of outgoing HTTP requests"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, err
	}

	errorCount, err := meter.Int64Counter(
		"http.client.errors",
		metric.WithDescription("Outgoing HTTP requests that failed or returned a 5xx status"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return nil, err
	}

	durationHist, err := meter.Float64Histogram(
		"http.client.duration_ms",
		metric.WithDescription("Outgoing HTTP request duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	return &clientMetrics{
		totalCount:   totalCount,
		errorCount:   errorCount,
		durationHist: durationHist,
	}, nil
}

func (m *clientMetrics) record(req *http.Request, status int, failed bool) {
	ctx := req.Context()
	attrs := []attribute.KeyValue{
		attribute.String("http.request.method", req.Method),
		attribute.String("server.address", req.URL.Hostname()),
	}
	if status > 0 {
		attrs = append(attrs, attribute.Int("http.response.status_code", status))
	}
	opt := metric.WithAttributes(attrs...)

	m.totalCount.Add(ctx, 1, opt)
	if failed {
		m.errorCount.Add(ctx, 1, opt)
	}
	if start, ok := ctx.Value(startTimeCtxKey{}).(time.Time); ok {
		m.durationHist.Record(ctx, float64(time.Since(start).Milliseconds()), opt)
	}
}

// MetricsHooks returns hooks that count requests and errors and record
// request latency with meter.
func MetricsHooks(meter metric.Meter) (Hooks, error) {
	m, err := newClientMetrics(meter)
	if err != nil {
		return Hooks{}, err
	}
	return Hooks{
		OnRequestStart: func(req *http.Request) *http.Request {
			return req.WithContext(context.WithValue(req.Context(), startTimeCtxKey{}, time.Now()))
		},
		OnRequestEnd: func(req *http.Request, resp *http.Response) {
			m.record(req, resp.StatusCode, resp.StatusCode >= http.StatusInternalServerError)
		},
		OnRequestException: func(req *http.Request, err error) {
			m.record(req, 0, true)
		},
	}, nil
}
