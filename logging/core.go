package logging

import "go.uber.org/zap/zapcore"

// filterCore drops entries rejected by any of its filters before they reach
// the wrapped core.
type filterCore struct {
	zapcore.Core
	filters []Filter
}

// NewFilterCore wraps core so that an entry is written only if every filter
// allows it.
func NewFilterCore(core zapcore.Core, filters ...Filter) zapcore.Core {
	if len(filters) == 0 {
		return core
	}
	return &filterCore{Core: core, filters: filters}
}

func (c *filterCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	for _, f := range c.filters {
		if !f.Allow(ent) {
			return ce
		}
	}
	return c.Core.Check(ent, ce)
}

// With keeps the filters on child loggers.
func (c *filterCore) With(fields []zapcore.Field) zapcore.Core {
	return &filterCore{
		Core:    c.Core.With(fields),
		filters: c.filters,
	}
}
