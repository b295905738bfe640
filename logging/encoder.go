package logging

import (
	"go.uber.org/zap/buffer"
	"go.uber.org/zap/zapcore"

	"github.com/jonwraymond/tracelog/config"
)

// Line format constants.
const (
	// TimeLayout renders timestamps as "2006-01-02 15:04:05,000".
	TimeLayout = "2006-01-02 15:04:05,000"
	// Separator joins the parts of a line.
	Separator = " - "
	// RootLoggerName is printed for entries from an unnamed logger.
	RootLoggerName = "root"
)

var linePool = buffer.NewPool()

// lineEncoder writes "{time} - {logger} - {LEVEL} - {message}" followed by any
// structured fields as a JSON object. The embedded JSON encoder accumulates
// context added through With.
type lineEncoder struct {
	zapcore.Encoder
}

// NewLineEncoder returns the default line encoder.
func NewLineEncoder() zapcore.Encoder {
	return &lineEncoder{Encoder: zapcore.NewJSONEncoder(fieldEncoderConfig())}
}

// fieldEncoderConfig leaves every entry key empty so the JSON encoder only
// renders fields.
func fieldEncoderConfig() zapcore.EncoderConfig {
	return zapcore.EncoderConfig{
		SkipLineEnding: true,
		EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	}
}

func (e *lineEncoder) Clone() zapcore.Encoder {
	return &lineEncoder{Encoder: e.Encoder.Clone()}
}

func (e *lineEncoder) EncodeEntry(ent zapcore.Entry, fields []zapcore.Field) (*buffer.Buffer, error) {
	line := linePool.Get()

	line.AppendString(ent.Time.Format(TimeLayout))
	line.AppendString(Separator)
	if ent.LoggerName == "" {
		line.AppendString(RootLoggerName)
	} else {
		line.AppendString(ent.LoggerName)
	}
	line.AppendString(Separator)
	line.AppendString(config.LevelName(ent.Level))
	line.AppendString(Separator)
	line.AppendString(ent.Message)

	ctx, err := e.Encoder.EncodeEntry(zapcore.Entry{}, fields)
	if err != nil {
		line.Free()
		return nil, err
	}
	if rendered := ctx.String(); rendered != "{}" && rendered != "" {
		line.AppendString(Separator)
		line.AppendString(rendered)
	}
	ctx.Free()

	if ent.Stack != "" {
		line.AppendString(zapcore.DefaultLineEnding)
		line.AppendString(ent.Stack)
	}
	line.AppendString(zapcore.DefaultLineEnding)
	return line, nil
}
