package config

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

// envPrefixes lists the prefixes read from the process environment.
var envPrefixes = []string{"LOG_", "SENTRY_"}

// Loader reads recognized keys from a layered koanf instance.
//
// Precedence (highest to lowest):
//  1. The supplied mapping or the process environment
//  2. Hardcoded defaults
type Loader struct {
	k *koanf.Koanf
}

// NewLoader creates a loader over an explicit mapping. A nil mapping is
// treated as empty; the process environment is never consulted.
func NewLoader(environ map[string]string) (*Loader, error) {
	k, err := newDefaultKoanf()
	if err != nil {
		return nil, err
	}

	values := make(map[string]any, len(environ))
	for key, value := range environ {
		values[key] = value
	}
	if err := k.Load(confmap.Provider(values, ""), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment mapping: %w", err)
	}
	return &Loader{k: k}, nil
}

// NewEnvLoader creates a loader over the process environment.
func NewEnvLoader() (*Loader, error) {
	k, err := newDefaultKoanf()
	if err != nil {
		return nil, err
	}

	// Keys are kept verbatim: LOG_LEVEL stays LOG_LEVEL.
	for _, prefix := range envPrefixes {
		if err := k.Load(env.Provider(prefix, "", func(s string) string { return s }), nil); err != nil {
			return nil, fmt.Errorf("failed to load environment variables: %w", err)
		}
	}
	return &Loader{k: k}, nil
}

func newDefaultKoanf() (*koanf.Koanf, error) {
	k := koanf.New(".")
	defaults := map[string]any{
		EnvLogLevel:             LevelName(DefaultLogLevel),
		EnvLogHealthCheck:       "0",
		EnvLogHealthCheckPath:   DefaultHealthCheckPath,
		EnvSentrySampleRate:     strconv.FormatFloat(DefaultSampleRate, 'f', -1, 64),
		EnvSentryHealthCheckURL: DefaultHealthCheckPath,
	}
	if err := k.Load(confmap.Provider(defaults, ""), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}
	return k, nil
}

// value returns the string stored under key, or fallback when the key is
// absent or blank.
func (l *Loader) value(key, fallback string) string {
	if v := strings.TrimSpace(l.k.String(key)); v != "" {
		return v
	}
	return fallback
}

// Logging builds a LoggingConfig.
func (l *Loader) Logging() (LoggingConfig, error) {
	cfg := DefaultLoggingConfig()

	level, err := ParseLevel(l.value(EnvLogLevel, LevelName(DefaultLogLevel)))
	if err != nil {
		return LoggingConfig{}, fmt.Errorf("%s: %w", EnvLogLevel, err)
	}
	cfg.LogLevel = level
	cfg.LogHealthCheck = ParseBool(l.value(EnvLogHealthCheck, "0"))
	cfg.HealthCheckURLPath = l.value(EnvLogHealthCheckPath, DefaultHealthCheckPath)

	return cfg, nil
}

// Monitoring builds a MonitoringConfig.
func (l *Loader) Monitoring() (MonitoringConfig, error) {
	cfg := DefaultMonitoringConfig()

	cfg.DSN = l.value(EnvSentryDSN, "")
	cfg.ClusterName = l.value(EnvSentryClusterName, "")
	cfg.AppName = l.value(EnvSentryAppName, "")
	cfg.HealthCheckPath = l.value(EnvSentryHealthCheckURL, DefaultHealthCheckPath)

	raw := l.value(EnvSentrySampleRate, "")
	if raw != "" {
		rate, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return MonitoringConfig{}, fmt.Errorf("%s: %w: %q is not a number", EnvSentrySampleRate, ErrInvalidConfig, raw)
		}
		if rate < 0 || rate > 1 {
			return MonitoringConfig{}, fmt.Errorf("%s: %w: sample rate must be between 0.0 and 1.0, got %v", EnvSentrySampleRate, ErrInvalidConfig, rate)
		}
		cfg.SampleRate = rate
	}

	return cfg, nil
}

// LoadLoggingConfig reads a LoggingConfig from environ.
func LoadLoggingConfig(environ map[string]string) (LoggingConfig, error) {
	l, err := NewLoader(environ)
	if err != nil {
		return LoggingConfig{}, err
	}
	return l.Logging()
}

// LoadMonitoringConfig reads a MonitoringConfig from environ.
func LoadMonitoringConfig(environ map[string]string) (MonitoringConfig, error) {
	l, err := NewLoader(environ)
	if err != nil {
		return MonitoringConfig{}, err
	}
	return l.Monitoring()
}

// LoadLoggingConfigFromEnv reads a LoggingConfig from the process environment.
func LoadLoggingConfigFromEnv() (LoggingConfig, error) {
	l, err := NewEnvLoader()
	if err != nil {
		return LoggingConfig{}, err
	}
	return l.Logging()
}

// LoadMonitoringConfigFromEnv reads a MonitoringConfig from the process environment.
func LoadMonitoringConfigFromEnv() (MonitoringConfig, error) {
	l, err := NewEnvLoader()
	if err != nil {
		return MonitoringConfig{}, err
	}
	return l.Monitoring()
}
