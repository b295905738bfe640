// Package config loads logging and monitoring settings from the environment.
//
// Two immutable records are produced:
//   - LoggingConfig (LOG_LEVEL, LOG_HEALTH_CHECK, LOG_HEALTH_CHECK_URL_PATH)
//   - MonitoringConfig (SENTRY_DSN, SENTRY_CLUSTER_NAME, SENTRY_APP_NAME,
//     SENTRY_SAMPLE_RATE, SENTRY_HEALTH_CHECK_PATH)
//
// Values are read either from an explicit mapping (LoadLoggingConfig,
// LoadMonitoringConfig) or from the process environment
// (LoadLoggingConfigFromEnv, LoadMonitoringConfigFromEnv). Absent keys fall
// back to the documented defaults; malformed values fail with ErrInvalidConfig.
package config
