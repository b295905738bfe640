package tracing

import (
	"fmt"
	"strings"

	"github.com/getsentry/sentry-go"

	"github.com/jonwraymond/tracelog/config"
)

// Monitoring scope tags.
const (
	TagApp     = "app"
	TagCluster = "cluster"
)

// SentryOptions returns the client options for cfg. Transactions whose name
// contains the health-check path are never sampled; other transactions follow
// an incoming decision when one exists and cfg.SampleRate otherwise.
func SentryOptions(cfg config.MonitoringConfig) sentry.ClientOptions {
	return sentry.ClientOptions{
		Dsn:              cfg.DSN,
		EnableTracing:    true,
		TracesSampleRate: cfg.SampleRate,
		TracesSampler:    healthCheckSampler(cfg.HealthCheckPath, cfg.SampleRate),
	}
}

func healthCheckSampler(path string, rate float64) sentry.TracesSampler {
	return func(sc sentry.SamplingContext) float64 {
		if sc.Span == nil {
			return rate
		}
		if path != "" && strings.Contains(sc.Span.Name, path) {
			return 0
		}
		switch sc.Span.Sampled {
		case sentry.SampledTrue:
			return 1
		case sentry.SampledFalse:
			return 0
		}
		if sc.Parent != nil {
			switch sc.Parent.Sampled {
			case sentry.SampledTrue:
				return 1
			case sentry.SampledFalse:
				return 0
			}
		}
		return rate
	}
}

// SetupSentry initializes the process-wide monitoring client from cfg and tags
// its scope with the application and cluster names. An empty DSN yields a
// valid client that sends nothing.
func SetupSentry(cfg config.MonitoringConfig) error {
	if cfg.SampleRate < 0 || cfg.SampleRate > 1 {
		return fmt.Errorf("%w: sample rate %v outside [0, 1]", config.ErrInvalidConfig, cfg.SampleRate)
	}
	if err := sentry.Init(SentryOptions(cfg)); err != nil {
		return fmt.Errorf("tracing: init sentry: %w", err)
	}
	sentry.ConfigureScope(func(scope *sentry.Scope) {
		if cfg.AppName != "" {
			scope.SetTag(TagApp, cfg.AppName)
		}
		if cfg.ClusterName != "" {
			scope.SetTag(TagCluster, cfg.ClusterName)
		}
	})
	return nil
}
