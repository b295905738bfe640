// Package exporters provides factory functions for creating OpenTelemetry exporters.
package exporters

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/exporters/zipkin"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

// ErrEndpointNotConfigured indicates an exporter needs an endpoint and none was
// given or found in the environment.
var ErrEndpointNotConfigured = errors.New("exporters: endpoint not configured")

// ZipkinSpansPath is appended to the Zipkin base URL.
const ZipkinSpansPath = "/api/v2/spans"

// Environment fallbacks for endpoints.
const (
	EnvZipkinEndpoint      = "OTEL_EXPORTER_ZIPKIN_ENDPOINT"
	EnvOTLPEndpoint        = "OTEL_EXPORTER_OTLP_ENDPOINT"
	EnvOTLPTracesEndpoint  = "OTEL_EXPORTER_OTLP_TRACES_ENDPOINT"
	EnvOTLPMetricsEndpoint = "OTEL_EXPORTER_OTLP_METRICS_ENDPOINT"
	EnvJaegerEndpoint      = "OTEL_EXPORTER_JAEGER_ENDPOINT"
)

// NewTracingExporter creates a trace span exporter based on the exporter name.
// Supported exporters: zipkin, stdout, otlp, jaeger, none.
//
// For zipkin, endpoint is the collector base URL and spans are posted to
// endpoint + ZipkinSpansPath. For otlp and jaeger, endpoint is passed to the
// gRPC exporter. An empty endpoint falls back to the environment.
func NewTracingExporter(ctx context.Context, name, endpoint string) (sdktrace.SpanExporter, error) {
	switch name {
	case "zipkin":
		if endpoint == "" {
			endpoint = os.Getenv(EnvZipkinEndpoint)
		}
		if endpoint == "" {
			return nil, fmt.Errorf("%w: zipkin: set the endpoint or %s", ErrEndpointNotConfigured, EnvZipkinEndpoint)
		}
		return zipkin.New(ZipkinURL(endpoint))

	case "stdout":
		return stdouttrace.New(stdouttrace.WithWriter(os.Stdout))

	case "otlp":
		if endpoint != "" {
			return otlptracegrpc.New(ctx, otlptracegrpc.WithEndpointURL(endpoint))
		}
		if os.Getenv(EnvOTLPEndpoint) == "" && os.Getenv(EnvOTLPTracesEndpoint) == "" {
			return nil, fmt.Errorf("%w: otlp: set %s or %s", ErrEndpointNotConfigured, EnvOTLPEndpoint, EnvOTLPTracesEndpoint)
		}
		return otlptracegrpc.New(ctx)

	case "jaeger":
		// Jaeger accepts OTLP natively.
		if endpoint == "" {
			endpoint = os.Getenv(EnvJaegerEndpoint)
		}
		if endpoint == "" {
			return nil, fmt.Errorf("%w: jaeger: set the endpoint or %s", ErrEndpointNotConfigured, EnvJaegerEndpoint)
		}
		return otlptracegrpc.New(ctx, otlptracegrpc.WithEndpointURL(endpoint))

	case "none", "":
		return stdouttrace.New(stdouttrace.WithWriter(io.Discard))

	default:
		return nil, fmt.Errorf("unknown exporter: %q", name)
	}
}

// ZipkinURL returns the span collection URL for a Zipkin base URL.
func ZipkinURL(base string) string {
	base = strings.TrimRight(base, "/")
	if strings.HasSuffix(base, ZipkinSpansPath) {
		return base
	}
	return base + ZipkinSpansPath
}

// NewMetricsReader creates a metrics reader based on the exporter name.
// Supported exporters: stdout, otlp, prometheus, none.
func NewMetricsReader(ctx context.Context, name string) (sdkmetric.Reader, error) {
	switch name {
	case "stdout":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(os.Stdout))
		if err != nil {
			return nil, fmt.Errorf("failed to create stdout metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	case "otlp":
		if os.Getenv(EnvOTLPEndpoint) == "" && os.Getenv(EnvOTLPMetricsEndpoint) == "" {
			return nil, fmt.Errorf("%w: otlp metrics: set %s or %s", ErrEndpointNotConfigured, EnvOTLPEndpoint, EnvOTLPMetricsEndpoint)
		}
		exp, err := otlpmetricgrpc.New(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP metrics exporter: %w", err)
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	case "prometheus":
		exp, err := prometheus.New()
		if err != nil {
			return nil, fmt.Errorf("failed to create Prometheus exporter: %w", err)
		}
		return exp, nil

	case "none", "":
		exp, err := stdoutmetric.New(stdoutmetric.WithWriter(io.Discard))
		if err != nil {
			return nil, err
		}
		return sdkmetric.NewPeriodicReader(exp), nil

	default:
		return nil, fmt.Errorf("unknown metrics exporter: %q", name)
	}
}
