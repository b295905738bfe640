package config

import "go.uber.org/zap/zapcore"

// Recognized environment keys.
const (
	EnvLogLevel             = "LOG_LEVEL"
	EnvLogHealthCheck       = "LOG_HEALTH_CHECK"
	EnvLogHealthCheckPath   = "LOG_HEALTH_CHECK_URL_PATH"
	EnvSentryDSN            = "SENTRY_DSN"
	EnvSentryClusterName    = "SENTRY_CLUSTER_NAME"
	EnvSentryAppName        = "SENTRY_APP_NAME"
	EnvSentrySampleRate     = "SENTRY_SAMPLE_RATE"
	EnvSentryHealthCheckURL = "SENTRY_HEALTH_CHECK_PATH"
)

// Defaults.
const (
	DefaultHealthCheckPath = "/api/v1/ping"
	DefaultSampleRate      = 0.1
	DefaultLogLevel        = zapcore.InfoLevel
)

// LoggingConfig configures the process-wide logging topology.
type LoggingConfig struct {
	LogLevel           zapcore.Level
	LogHealthCheck     bool
	HealthCheckURLPath string
}

// DefaultLoggingConfig returns the configuration used when no keys are set.
func DefaultLoggingConfig() LoggingConfig {
	return LoggingConfig{
		LogLevel:           DefaultLogLevel,
		LogHealthCheck:     false,
		HealthCheckURLPath: DefaultHealthCheckPath,
	}
}

// MonitoringConfig configures the error and performance monitoring client.
// Empty strings mean "not set"; an empty DSN disables event delivery.
type MonitoringConfig struct {
	DSN             string
	ClusterName     string
	AppName         string
	SampleRate      float64
	HealthCheckPath string
}

// DefaultMonitoringConfig returns the configuration used when no keys are set.
func DefaultMonitoringConfig() MonitoringConfig {
	return MonitoringConfig{
		SampleRate:      DefaultSampleRate,
		HealthCheckPath: DefaultHealthCheckPath,
	}
}

// Enabled reports whether a DSN was configured.
func (c MonitoringConfig) Enabled() bool {
	return c.DSN != ""
}
