package httpclient

import "context"

type propagationCtxKey struct{}

// WithoutPropagation returns a context under which requests carry no trace
// headers. Spans are still opened for them.
func WithoutPropagation(ctx context.Context) context.Context {
	return context.WithValue(ctx, propagationCtxKey{}, false)
}

// PropagationEnabled reports whether trace headers are injected for requests
// made with ctx. It defaults to true.
func PropagationEnabled(ctx context.Context) bool {
	enabled, ok := ctx.Value(propagationCtxKey{}).(bool)
	return !ok || enabled
}
