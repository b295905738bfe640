// Package logging configures process-wide structured logging on top of Zap.
//
// # Topology
//
// Init installs a logger whose core is a tee of two streams:
//   - stdout: entries at or above the configured level and below ERROR
//   - stderr: entries at or above ERROR
//
// Lines use the format:
//
//	2025-11-24 10:15:30,123 - root - INFO - request processed
//
// # Health checks
//
// Unless LoggingConfig.LogHealthCheck is set, access lines written through the
// http.access logger (see AccessLog) that mention the health-check path at
// INFO or below are dropped. Everything else passes.
//
// # Filters
//
// Filters are predicates over a zapcore.Entry and are attached to cores with
// NewFilterCore:
//
//	core = logging.NewFilterCore(core,
//	    logging.ForLogger(logging.AccessLoggerName, logging.NewHealthCheckFilter("/api/v1/ping")))
//
// # Static configuration
//
// A declarative zap.Config may be loaded from YAML (LoadStaticConfig) and
// installed with InitFromConfig. ${VAR} references are expanded strictly
// before parsing.
//
// # Side effects
//
// Init and InitFromConfig replace the zap globals and redirect the standard
// library logger. There is no rollback; calling either again re-applies the
// full topology.
package logging
