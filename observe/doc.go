// Package observe wires the process-wide telemetry of a service: the tracer
// provider exporting Zipkin-style spans, the meter provider, the monitoring
// client and the HTTP server middleware stack that ties them to requests.
//
// Logging is configured separately with the logging package; New only
// consumes the resulting *zap.Logger.
package observe
