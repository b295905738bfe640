package health

import (
	"context"

	"github.com/jonwraymond/tracelog/tracing"
)

// Status represents the health status of a component.
type Status int

const (
	// StatusHealthy indicates the component is functioning normally.
	StatusHealthy Status = iota
	// StatusDegraded indicates the component is functioning but with issues.
	StatusDegraded
	// StatusUnhealthy indicates the component is not functioning properly.
	StatusUnhealthy
)

// String returns the string representation of the status.
func (s Status) String() string {
	switch s {
	case StatusHealthy:
		return "healthy"
	case StatusDegraded:
		return "degraded"
	case StatusUnhealthy:
		return "unhealthy"
	default:
		return "unknown"
	}
}

// Checker reports the health of one dependency. A nil error means healthy;
// errors wrapping ErrDegraded mean degraded.
type Checker interface {
	Name() string
	Check(ctx context.Context) error
}

// CheckerFunc adapts a function to a Checker.
type CheckerFunc func(ctx context.Context) error

// Name returns the qualified name of the function.
func (f CheckerFunc) Name() string {
	return tracing.FuncName(f)
}

// Check calls f.
func (f CheckerFunc) Check(ctx context.Context) error {
	return f(ctx)
}

type namedChecker struct {
	name string
	fn   func(context.Context) error
}

// Named returns a Checker called name that runs fn.
func Named(name string, fn func(context.Context) error) Checker {
	return namedChecker{name: name, fn: fn}
}

func (c namedChecker) Name() string                    { return c.name }
func (c namedChecker) Check(ctx context.Context) error { return c.fn(ctx) }
