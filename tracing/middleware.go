package tracing

import (
	"net/http"

	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

type middlewareConfig struct {
	propagator propagation.TextMapPropagator
	skipPaths  map[string]struct{}
}

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

// WithPropagator sets the propagator used to extract incoming trace headers.
func WithPropagator(p propagation.TextMapPropagator) MiddlewareOption {
	return func(c *middlewareConfig) {
		if p != nil {
			c.propagator = p
		}
	}
}

// WithSkipPaths disables server spans for requests to the given paths. The
// tracer is still bound for them.
func WithSkipPaths(paths ...string) MiddlewareOption {
	return func(c *middlewareConfig) {
		for _, p := range paths {
			if p != "" {
				c.skipPaths[p] = struct{}{}
			}
		}
	}
}

// Middleware binds tracer to each request context and opens a server span
// named "{METHOD} {path}" that continues any trace carried by the request
// headers. Handlers below it can use ContinueOrStart directly.
func Middleware(tracer trace.Tracer, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := middlewareConfig{
		propagator: Propagator(),
		skipPaths:  make(map[string]struct{}),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := WithTracer(r.Context(), tracer)
			if _, skip := cfg.skipPaths[r.URL.Path]; skip {
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			ctx = cfg.propagator.Extract(ctx, propagation.HeaderCarrier(r.Header))
			ctx, span := tracer.Start(ctx, r.Method+" "+r.URL.Path,
				trace.WithSpanKind(trace.SpanKindServer),
				trace.WithAttributes(
					semconv.HTTPRequestMethodKey.String(r.Method),
					semconv.URLPath(r.URL.Path),
				),
			)
			defer span.End()

			rec := &responseRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r.WithContext(ctx))

			span.SetAttributes(semconv.HTTPResponseStatusCode(rec.status))
			if rec.status >= http.StatusInternalServerError {
				span.SetStatus(codes.Error, http.StatusText(rec.status))
			}
		})
	}
}

type responseRecorder struct {
	http.ResponseWriter
	status int
}

func (r *responseRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *responseRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}
