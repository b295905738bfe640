// Package httpclient instruments outgoing HTTP requests.
//
// Instrumentation is expressed as Hooks attached to a RoundTripper built by
// NewTransport. For every request the start hooks run before it is sent and
// exactly one of the end or exception hooks runs afterwards. Hooks never
// modify the caller's request: the transport works on a clone.
//
// The bundled hook sets are:
//   - SentryHooks: a monitoring child span "{METHOD} {path}" plus sentry-trace
//     header injection
//   - TracingHooks: an OpenTelemetry client span plus B3 and W3C header
//     injection
//   - LoggingHooks: "Sending" and "Received" log lines
//   - MetricsHooks: request, error and latency instruments
//
// Header injection is skipped for requests whose context was derived with
// WithoutPropagation.
package httpclient
