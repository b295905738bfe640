package httpclient

import (
	"github.com/go-resty/resty/v2"
	"github.com/hashicorp/go-retryablehttp"
	"go.uber.org/zap"
)

// DefaultHooks returns the monitoring, tracing and logging hook sets.
func DefaultHooks(logger *zap.Logger) []Hooks {
	return []Hooks{SentryHooks(), TracingHooks(nil), LoggingHooks(logger)}
}

// InstrumentResty installs hooks on the transport of c and returns c.
func InstrumentResty(c *resty.Client, hooks ...Hooks) *resty.Client {
	return c.SetTransport(NewTransport(c.GetClient().Transport, hooks...))
}

// NewRetryableClient returns a retrying client that logs through logger and
// runs hooks on every attempt.
func NewRetryableClient(logger *zap.Logger, hooks ...Hooks) *retryablehttp.Client {
	if logger == nil {
		logger = zap.L()
	}
	c := retryablehttp.NewClient()
	c.Logger = retryLogger{logger.Sugar()}
	c.HTTPClient.Transport = NewTransport(c.HTTPClient.Transport, hooks...)
	return c
}

// retryLogger adapts zap to retryablehttp.LeveledLogger.
type retryLogger struct {
	s *zap.SugaredLogger
}

func (l retryLogger) Error(msg string, keysAndValues ...interface{}) {
	l.s.Errorw(msg, keysAndValues...)
}

func (l retryLogger) Info(msg string, keysAndValues ...interface{}) {
	l.s.Infow(msg, keysAndValues...)
}

func (l retryLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.s.Debugw(msg, keysAndValues...)
}

func (l retryLogger) Warn(msg string, keysAndValues ...interface{}) {
	l.s.Warnw(msg, keysAndValues...)
}

var _ retryablehttp.LeveledLogger = retryLogger{}
