package tracing

import (
	"errors"
	"testing"

	"github.com/getsentry/sentry-go"

	"github.com/jonwraymond/tracelog/config"
)

// TestSentryOptions_HealthCheckNeverSampled verifies health-check
// transactions get rate zero.
func TestSentryOptions_HealthCheckNeverSampled(t *testing.T) {
	cfg := config.DefaultMonitoringConfig()
	cfg.SampleRate = 1.0
	opts := SentryOptions(cfg)

	tests := []struct {
		name string
		ctx  sentry.SamplingContext
		want float64
	}{
		{name: "health check", ctx: sentry.SamplingContext{Span: &sentry.Span{Name: "GET /api/v1/ping"}}, want: 0},
		{name: "regular", ctx: sentry.SamplingContext{Span: &sentry.Span{Name: "GET /api/v1/jobs"}}, want: 1},
		{name: "incoming unsampled", ctx: sentry.SamplingContext{Span: &sentry.Span{Name: "GET /jobs", Sampled: sentry.SampledFalse}}, want: 0},
		{name: "parent sampled", ctx: sentry.SamplingContext{
			Span:   &sentry.Span{Name: "job"},
			Parent: &sentry.Span{Sampled: sentry.SampledTrue},
		}, want: 1},
		{name: "no span", ctx: sentry.SamplingContext{}, want: 1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := opts.TracesSampler(tc.ctx); got != tc.want {
				t.Errorf("expected %v, got %v", tc.want, got)
			}
		})
	}
}

// TestSentryOptions_Fields verifies the configuration is carried over.
func TestSentryOptions_Fields(t *testing.T) {
	cfg := config.MonitoringConfig{DSN: "https://key@sentry.example.com/1", SampleRate: 0.25}
	opts := SentryOptions(cfg)
	if opts.Dsn != cfg.DSN {
		t.Errorf("expected dsn %q, got %q", cfg.DSN, opts.Dsn)
	}
	if opts.TracesSampleRate != 0.25 {
		t.Errorf("expected rate 0.25, got %v", opts.TracesSampleRate)
	}
	if !opts.EnableTracing {
		t.Error("expected tracing to be enabled")
	}
	if got := opts.TracesSampler(sentry.SamplingContext{Span: &sentry.Span{Name: "GET /x"}}); got != 0.25 {
		t.Errorf("expected configured rate without a health path match, got %v", got)
	}
}

// TestSetupSentry_EmptyDSN verifies an empty DSN still installs a client.
func TestSetupSentry_EmptyDSN(t *testing.T) {
	cfg := config.DefaultMonitoringConfig()
	cfg.AppName = "api"
	cfg.ClusterName = "dev"

	if err := SetupSentry(cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sentry.CurrentHub().Client() == nil {
		t.Fatal("expected a client on the current hub")
	}
}

// TestSetupSentry_InvalidRate verifies out-of-range rates are rejected.
func TestSetupSentry_InvalidRate(t *testing.T) {
	cfg := config.DefaultMonitoringConfig()
	cfg.SampleRate = 1.5
	if err := SetupSentry(cfg); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

// TestSetupSentry_InvalidDSN verifies DSN parse errors are returned.
func TestSetupSentry_InvalidDSN(t *testing.T) {
	cfg := config.DefaultMonitoringConfig()
	cfg.DSN = "::not a dsn"
	if err := SetupSentry(cfg); err == nil {
		t.Error("expected an error for a malformed DSN")
	}
}
