package health

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonwraymond/tracelog/logging"
	"github.com/jonwraymond/tracelog/tracing"
)

// DefaultTimeout bounds the whole set of checks run for one request.
const DefaultTimeout = 5 * time.Second

// Handler returns the ping handler. With no checks it always answers 200 "OK".
// Otherwise the checks run concurrently and the response is 200 "OK", 200
// "DEGRADED" or 503 "UNHEALTHY". Failures are logged at warn level.
func Handler(checks ...Checker) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tracing.SuppressSampling(r.Context())

		ctx, cancel := context.WithTimeout(r.Context(), DefaultTimeout)
		defer cancel()

		status := Run(ctx, checks...)

		w.Header().Set("Content-Type", "text/plain")
		switch status {
		case StatusHealthy:
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("OK"))
		case StatusDegraded:
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte("DEGRADED"))
		default:
			w.WriteHeader(http.StatusServiceUnavailable)
			_, _ = w.Write([]byte("UNHEALTHY"))
		}
	})
}

// Run runs checks concurrently, each in its own span, and returns the worst
// status. An empty set is healthy.
func Run(ctx context.Context, checks ...Checker) Status {
	statuses := make([]Status, len(checks))
	var g errgroup.Group
	for i, c := range checks {
		g.Go(func() error {
			err := tracing.Trace(ctx, "health."+c.Name(), func(ctx context.Context) error {
				return runCheck(ctx, c)
			})
			statuses[i] = statusOf(err)
			if err != nil {
				logging.FromContext(ctx).Warn("health check failed",
					zap.String("check", c.Name()),
					zap.Error(err),
				)
			}
			return nil
		})
	}
	_ = g.Wait()

	overall := StatusHealthy
	for _, s := range statuses {
		if s > overall {
			overall = s
		}
	}
	return overall
}

func runCheck(ctx context.Context, c Checker) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- c.Check(ctx)
	}()

	select {
	case err := <-errCh:
		if err == nil || errors.Is(err, ErrDegraded) {
			return err
		}
		return fmt.Errorf("%w: %s: %w", ErrCheckFailed, c.Name(), err)
	case <-ctx.Done():
		return ErrCheckTimeout
	}
}

func statusOf(err error) Status {
	switch {
	case err == nil:
		return StatusHealthy
	case errors.Is(err, ErrDegraded):
		return StatusDegraded
	default:
		return StatusUnhealthy
	}
}
