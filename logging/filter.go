package logging

import (
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/jonwraymond/tracelog/config"
)

// Filter decides whether an entry is written.
//
// Contract:
// - Concurrency: implementations must be safe for concurrent use.
// - Filters are stateless predicates and must not retain the entry.
type Filter interface {
	Allow(ent zapcore.Entry) bool
}

// FilterFunc adapts an ordinary function to a Filter.
type FilterFunc func(ent zapcore.Entry) bool

// Allow calls f(ent).
func (f FilterFunc) Allow(ent zapcore.Entry) bool { return f(ent) }

// LevelCeilingFilter passes entries strictly below Threshold. It keeps
// non-error output on one stream while errors go elsewhere.
type LevelCeilingFilter struct {
	Threshold zapcore.Level
}

// NewLevelCeilingFilter builds a LevelCeilingFilter from a level name.
func NewLevelCeilingFilter(level string) (LevelCeilingFilter, error) {
	threshold, err := config.ParseLevel(level)
	if err != nil {
		return LevelCeilingFilter{}, err
	}
	return LevelCeilingFilter{Threshold: threshold}, nil
}

// Allow reports whether ent.Level < f.Threshold.
func (f LevelCeilingFilter) Allow(ent zapcore.Entry) bool {
	return ent.Level < f.Threshold
}

// HealthCheckFilter drops entries at or below MaxLevel whose message contains
// Path. Entries above MaxLevel always pass. An empty Path passes everything.
type HealthCheckFilter struct {
	Path     string
	MaxLevel zapcore.Level
}

// NewHealthCheckFilter returns a HealthCheckFilter for path at INFO.
func NewHealthCheckFilter(path string) HealthCheckFilter {
	return HealthCheckFilter{Path: path, MaxLevel: zapcore.InfoLevel}
}

// NewHealthCheckFilterAt returns a HealthCheckFilter for path with the
// suppression ceiling given by name.
func NewHealthCheckFilterAt(path, level string) (HealthCheckFilter, error) {
	maxLevel, err := config.ParseLevel(level)
	if err != nil {
		return HealthCheckFilter{}, err
	}
	return HealthCheckFilter{Path: path, MaxLevel: maxLevel}, nil
}

// Allow implements Filter.
func (f HealthCheckFilter) Allow(ent zapcore.Entry) bool {
	if ent.Level > f.MaxLevel || f.Path == "" {
		return true
	}
	return !strings.Contains(ent.Message, f.Path)
}

// ForLogger scopes f to entries written by the logger called name. Named
// children keep their parent's prefix, so "svc.http.access" also matches
// "http.access". Other entries pass untouched.
func ForLogger(name string, f Filter) Filter {
	return FilterFunc(func(ent zapcore.Entry) bool {
		if ent.LoggerName != name && !strings.HasSuffix(ent.LoggerName, "."+name) {
			return true
		}
		return f.Allow(ent)
	})
}

// MinLevel passes entries at or above level.
func MinLevel(level zapcore.LevelEnabler) Filter {
	return FilterFunc(func(ent zapcore.Entry) bool {
		return level.Enabled(ent.Level)
	})
}
