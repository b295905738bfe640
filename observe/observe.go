package observe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/getsentry/sentry-go"
	sentryhttp "github.com/getsentry/sentry-go/http"
	"github.com/go-logr/zapr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/tracelog/config"
	"github.com/jonwraymond/tracelog/logging"
	"github.com/jonwraymond/tracelog/observe/exporters"
	"github.com/jonwraymond/tracelog/tracing"
)

// DefaultFlushTimeout bounds how long Shutdown waits for buffered monitoring
// events.
const DefaultFlushTimeout = 2 * time.Second

// Config holds all configuration for the Observer.
type Config struct {
	ServiceName string
	Version     string
	Tracing     TracingConfig
	Metrics     MetricsConfig

	// Monitoring, when set, initializes the process-wide monitoring client.
	Monitoring *config.MonitoringConfig

	// HealthCheckPath gets no server span. Defaults to
	// config.DefaultHealthCheckPath.
	HealthCheckPath string

	// Logger receives access log lines. Defaults to zap.L().
	Logger *zap.Logger
}

// TracingConfig configures the tracing subsystem.
type TracingConfig struct {
	Enabled    bool
	Exporter   string  // zipkin|otlp|jaeger|stdout|none
	Endpoint   string  // collector base URL; empty falls back to the environment
	SampleRate float64 // 0.0-1.0

	// Host and Port describe the local endpoint recorded on every span.
	Host string
	Port int
}

// MetricsConfig configures the metrics subsystem.
type MetricsConfig struct {
	Enabled  bool
	Exporter string // otlp|prometheus|stdout|none
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if c.ServiceName == "" {
		return ErrMissingServiceName
	}

	if c.Tracing.Enabled {
		if !slices.Contains(ValidTracingExporters, c.Tracing.Exporter) {
			return fmt.Errorf("%w: %q", ErrInvalidTracingExporter, c.Tracing.Exporter)
		}
		if c.Tracing.SampleRate < MinSampleRate || c.Tracing.SampleRate > MaxSampleRate {
			return fmt.Errorf("%w: got %f", ErrInvalidSampleRate, c.Tracing.SampleRate)
		}
	}

	if c.Metrics.Enabled {
		if !slices.Contains(ValidMetricsExporters, c.Metrics.Exporter) {
			return fmt.Errorf("%w: %q", ErrInvalidMetricsExporter, c.Metrics.Exporter)
		}
	}

	if c.Monitoring != nil {
		if c.Monitoring.SampleRate < MinSampleRate || c.Monitoring.SampleRate > MaxSampleRate {
			return fmt.Errorf("%w: monitoring: got %f", ErrInvalidSampleRate, c.Monitoring.SampleRate)
		}
	}

	return nil
}

// Observer provides access to telemetry primitives.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Context: Shutdown must honor cancellation/deadlines.
// - Errors: Shutdown is idempotent and reports every provider that failed.
type Observer interface {
	// Tracer returns the configured tracer.
	Tracer() trace.Tracer

	// Meter returns the configured meter.
	Meter() metric.Meter

	// Handler wraps h with access logging, monitoring transactions and
	// server spans.
	Handler(h http.Handler) http.Handler

	// Shutdown flushes and shuts down all telemetry providers.
	Shutdown(ctx context.Context) error
}

// observer is the concrete implementation of Observer.
type observer struct {
	tracer          trace.Tracer
	meter           metric.Meter
	logger          *zap.Logger
	healthCheckPath string
	monitoring      bool
	tracerProvider  *sdktrace.TracerProvider
	meterProvider   *sdkmetric.MeterProvider

	shutdownOnce sync.Once
	shutdownErr  error
}

// New creates a new Observer with the given configuration. Enabled providers
// are installed as the OpenTelemetry globals, and the global propagator is set
// to tracing.Propagator.
func New(ctx context.Context, cfg Config) (Observer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	obs := &observer{
		logger:          cfg.Logger,
		healthCheckPath: cfg.HealthCheckPath,
	}
	if obs.logger == nil {
		obs.logger = zap.L()
	}
	if obs.healthCheckPath == "" {
		obs.healthCheckPath = config.DefaultHealthCheckPath
	}

	res, err := newResource(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	if cfg.Tracing.Enabled {
		tp, err := setupTracing(ctx, cfg, res)
		if err != nil {
			return nil, fmt.Errorf("failed to setup tracing: %w", err)
		}
		obs.tracerProvider = tp
		obs.tracer = tp.Tracer(cfg.ServiceName)
	} else {
		obs.tracer = tracenoop.NewTracerProvider().Tracer("noop")
	}

	if cfg.Metrics.Enabled {
		mp, err := setupMetrics(ctx, cfg, res)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("failed to setup metrics: %w", err), obs.Shutdown(ctx))
		}
		obs.meterProvider = mp
		obs.meter = mp.Meter(cfg.ServiceName)
	} else {
		obs.meter = noop.NewMeterProvider().Meter("noop")
	}

	if cfg.Monitoring != nil {
		if err := tracing.SetupSentry(*cfg.Monitoring); err != nil {
			return nil, errors.Join(fmt.Errorf("failed to setup monitoring: %w", err), obs.Shutdown(ctx))
		}
		obs.monitoring = true
	}

	otel.SetTextMapPropagator(tracing.Propagator())
	otel.SetLogger(zapr.NewLogger(obs.logger.Named("otel")))
	otel.SetErrorHandler(otel.ErrorHandlerFunc(func(err error) {
		obs.logger.Named("otel").Warn("telemetry error", zap.Error(err))
	}))
	return obs, nil
}

func newResource(ctx context.Context, cfg Config) (*resource.Resource, error) {
	attrs := []attribute.KeyValue{
		semconv.ServiceName(cfg.ServiceName),
		semconv.ServiceVersion(cfg.Version),
	}
	if cfg.Tracing.Host != "" {
		attrs = append(attrs, semconv.ServerAddress(cfg.Tracing.Host))
	}
	if cfg.Tracing.Port > 0 {
		attrs = append(attrs, semconv.ServerPort(cfg.Tracing.Port))
	}
	return resource.New(ctx, resource.WithAttributes(attrs...))
}

func setupTracing(ctx context.Context, cfg Config, res *resource.Resource) (*sdktrace.TracerProvider, error) {
	exporter, err := exporters.NewTracingExporter(ctx, cfg.Tracing.Exporter, cfg.Tracing.Endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to create trace exporter: %w", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
		sdktrace.WithSampler(tracing.NewSampler(cfg.Tracing.SampleRate)),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)
	return tp, nil
}

func setupMetrics(ctx context.Context, cfg Config, res *resource.Resource) (*sdkmetric.MeterProvider, error) {
	reader, err := exporters.NewMetricsReader(ctx, cfg.Metrics.Exporter)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics reader: %w", err)
	}

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	otel.SetMeterProvider(mp)
	return mp, nil
}

func (o *observer) Tracer() trace.Tracer {
	return o.tracer
}

func (o *observer) Meter() metric.Meter {
	return o.meter
}

// Handler builds, outermost first: access log, monitoring transaction, server
// span. The health-check path gets no server span.
func (o *observer) Handler(h http.Handler) http.Handler {
	h = tracing.Middleware(o.tracer, tracing.WithSkipPaths(o.healthCheckPath))(h)
	if o.monitoring {
		h = sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle(h)
	}
	return logging.AccessLog(o.logger)(h)
}

func (o *observer) Shutdown(ctx context.Context) error {
	o.shutdownOnce.Do(func() {
		errs := make([]error, 3)
		var g errgroup.Group

		if o.tracerProvider != nil {
			g.Go(func() error {
				if err := o.tracerProvider.Shutdown(ctx); err != nil {
					errs[0] = fmt.Errorf("tracer shutdown: %w", err)
				}
				return nil
			})
		}

		if o.meterProvider != nil {
			g.Go(func() error {
				if err := o.meterProvider.Shutdown(ctx); err != nil {
					errs[1] = fmt.Errorf("meter shutdown: %w", err)
				}
				return nil
			})
		}

		if o.monitoring {
			g.Go(func() error {
				if !sentry.Flush(flushTimeout(ctx)) {
					errs[2] = errors.New("monitoring flush: timed out")
				}
				return nil
			})
		}

		_ = g.Wait()
		o.shutdownErr = errors.Join(errs...)
	})
	return o.shutdownErr
}

func flushTimeout(ctx context.Context) time.Duration {
	if deadline, ok := ctx.Deadline(); ok {
		return time.Until(deadline)
	}
	return DefaultFlushTimeout
}
