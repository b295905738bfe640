// Package tracing carries trace state through context.Context and opens spans
// around operations.
//
// Two tracks are composed on every call:
//   - the tracing track: an OpenTelemetry tracer bound with WithTracer and the
//     active span stored by OpenTelemetry itself (exported Zipkin-style)
//   - the monitoring track: the Sentry transaction and span carried in the
//     context by sentry-go
//
// Per execution the tracing track moves through three states:
//
//	no tracer bound -> tracer bound, no active span -> span active
//
// ContinueOrStart opens a child of the active span, or an unsampled root when
// none is active, and does nothing when no tracer is bound. StartRoot always
// opens a fresh root; StartSampledRoot also forces its sampling decision to
// true. SuppressSampling marks the current monitoring transaction as not to be
// sampled and leaves the tracing track alone.
//
// Callers receive a derived context and never mutate their own, so the state
// visible to the caller after a traced call is exactly the state before it.
// Concurrent goroutines each hold their own context and never observe one
// another's spans.
//
// The forced decisions rely on the sampler returned by NewSampler being
// installed in the TracerProvider.
package tracing
