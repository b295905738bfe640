package tracing

import "errors"

// ErrMissingTracer indicates no tracer is bound to the context. It is an
// expected condition outside any traced context; the wrappers treat it as
// "tracing disabled for this call" and never return it.
var ErrMissingTracer = errors.New("tracing: no tracer bound to context")
