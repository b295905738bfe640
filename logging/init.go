package logging

import (
	"fmt"
	"io"
	"os"

	"go.opentelemetry.io/contrib/bridges/otelzap"
	"go.opentelemetry.io/otel/log"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonwraymond/tracelog/config"
)

// AccessLoggerName names the logger that AccessLog writes through and that
// carries the health-check filter.
const AccessLoggerName = "http.access"

// instrumentationName is the scope reported to the OpenTelemetry log bridge.
const instrumentationName = "github.com/jonwraymond/tracelog"

type options struct {
	stdout         zapcore.WriteSyncer
	stderr         zapcore.WriteSyncer
	encoder        zapcore.Encoder
	loggerProvider log.LoggerProvider
	accessLogger   string
}

// Option customizes New and Init.
type Option func(*options)

// WithOutput replaces the stdout and stderr streams.
func WithOutput(stdout, stderr io.Writer) Option {
	return func(o *options) {
		o.stdout = zapcore.AddSync(stdout)
		o.stderr = zapcore.AddSync(stderr)
	}
}

// WithEncoder replaces the line encoder for both streams.
func WithEncoder(enc zapcore.Encoder) Option {
	return func(o *options) { o.encoder = enc }
}

// WithLoggerProvider tees every entry at or above the configured level into
// an OpenTelemetry LoggerProvider.
func WithLoggerProvider(lp log.LoggerProvider) Option {
	return func(o *options) { o.loggerProvider = lp }
}

// WithAccessLoggerName changes the logger the health-check filter applies to.
func WithAccessLoggerName(name string) Option {
	return func(o *options) { o.accessLogger = name }
}

// New builds the logging topology for cfg without installing it.
//
// healthCheckPath overrides cfg.HealthCheckURLPath when non-empty.
func New(cfg config.LoggingConfig, healthCheckPath string, opts ...Option) (*zap.Logger, error) {
	if cfg.LogLevel < zapcore.DebugLevel || cfg.LogLevel > zapcore.FatalLevel {
		return nil, fmt.Errorf("%w: log level %d out of range", config.ErrInvalidConfig, cfg.LogLevel)
	}

	o := options{
		stdout:       zapcore.Lock(os.Stdout),
		stderr:       zapcore.Lock(os.Stderr),
		accessLogger: AccessLoggerName,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.encoder == nil {
		o.encoder = NewLineEncoder()
	}

	threshold := cfg.LogLevel
	errorThreshold := zapcore.ErrorLevel
	if threshold > errorThreshold {
		errorThreshold = threshold
	}

	cores := []zapcore.Core{
		NewFilterCore(
			zapcore.NewCore(o.encoder.Clone(), o.stdout, threshold),
			LevelCeilingFilter{Threshold: zapcore.ErrorLevel},
		),
		zapcore.NewCore(o.encoder.Clone(), o.stderr, errorThreshold),
	}
	if o.loggerProvider != nil {
		bridge := otelzap.NewCore(instrumentationName, otelzap.WithLoggerProvider(o.loggerProvider))
		cores = append(cores, NewFilterCore(bridge, MinLevel(threshold)))
	}

	core := zapcore.NewTee(cores...)

	if !cfg.LogHealthCheck {
		path := healthCheckPath
		if path == "" {
			path = cfg.HealthCheckURLPath
		}
		core = NewFilterCore(core, ForLogger(o.accessLogger, NewHealthCheckFilter(path)))
	}

	return zap.New(core, zap.AddStacktrace(config.CriticalLevel)), nil
}

// Init builds the topology for cfg and installs it process-wide: the zap
// globals are replaced and the standard library logger is redirected.
func Init(cfg config.LoggingConfig, healthCheckPath string, opts ...Option) (*zap.Logger, error) {
	logger, err := New(cfg, healthCheckPath, opts...)
	if err != nil {
		return nil, err
	}
	install(logger)
	return logger, nil
}

// InitFromEnv loads LoggingConfig from the process environment and calls Init
// with the configured health-check path.
func InitFromEnv(opts ...Option) (*zap.Logger, error) {
	cfg, err := config.LoadLoggingConfigFromEnv()
	if err != nil {
		return nil, err
	}
	return Init(cfg, cfg.HealthCheckURLPath, opts...)
}

func install(logger *zap.Logger) {
	zap.ReplaceGlobals(logger)
	zap.RedirectStdLog(logger)
}
