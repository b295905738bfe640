package health

import "errors"

var (
	// ErrCheckFailed wraps the error of a check that failed without being
	// degraded.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout indicates a health check timed out.
	ErrCheckTimeout = errors.New("health: check timeout")
)

// ErrDegraded marks a check error as degraded rather than unhealthy. Wrap it:
//
//	return fmt.Errorf("%w: replica lag %s", health.ErrDegraded, lag)
var ErrDegraded = errors.New("health: degraded")
