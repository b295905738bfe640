package config

import "errors"

// ErrInvalidConfig indicates an unrecognized level name or a malformed
// configuration value. It is returned at construction time and never retried.
var ErrInvalidConfig = errors.New("config: invalid configuration")
