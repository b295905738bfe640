package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/jonwraymond/tracelog/config"
)

// LoadStaticConfig parses a declarative zap.Config from YAML. ${VAR}
// references are expanded from the environment first and must all be set.
// Keys absent from data keep zap's production defaults.
func LoadStaticConfig(data []byte) (zap.Config, error) {
	expanded, err := config.ExpandEnvStrict(string(data))
	if err != nil {
		return zap.Config{}, err
	}

	cfg := zap.NewProductionConfig()
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return zap.Config{}, fmt.Errorf("%w: failed to parse logging config: %v", config.ErrInvalidConfig, err)
	}
	return cfg, nil
}

// InitFromConfig builds cfg, wraps its core with filters and installs the
// result process-wide like Init.
func InitFromConfig(cfg zap.Config, filters ...Filter) (*zap.Logger, error) {
	logger, err := cfg.Build(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
		return NewFilterCore(core, filters...)
	}))
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	install(logger)
	return logger, nil
}
