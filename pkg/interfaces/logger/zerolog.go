package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const consoleTimeFormat = "2006-01-02T15:04:05.000Z07:00"

// ZeroLogger forwards the Logger contract to a zerolog.Logger.
type ZeroLogger struct {
	log zerolog.Logger
}

var _ Logger = (*ZeroLogger)(nil)

// NewZeroLogger wraps an existing zerolog.Logger.
func NewZeroLogger(zl zerolog.Logger) *ZeroLogger {
	return &ZeroLogger{log: zl}
}

// NewConsole builds a console logger writing to w at the given level.
// Unrecognized levels fall back to info; a nil w writes to stderr.
func NewConsole(w io.Writer, level string) *ZeroLogger {
	if w == nil {
		w = os.Stderr
	}
	cw := zerolog.ConsoleWriter{Out: w, TimeFormat: consoleTimeFormat}
	zl := zerolog.New(cw).Level(parseLevel(level, zerolog.InfoLevel)).With().Timestamp().Logger()
	return &ZeroLogger{log: zl}
}

func (z *ZeroLogger) With(fields ...Field) Logger {
	if len(fields) == 0 {
		return z
	}
	ctx := z.log.With()
	for _, f := range fields {
		ctx = contextField(ctx, f)
	}
	return &ZeroLogger{log: ctx.Logger()}
}

func (z *ZeroLogger) Debug(msg string, fields ...Field) { emit(z.log.Debug(), msg, fields) }
func (z *ZeroLogger) Info(msg string, fields ...Field)  { emit(z.log.Info(), msg, fields) }
func (z *ZeroLogger) Warn(msg string, fields ...Field)  { emit(z.log.Warn(), msg, fields) }
func (z *ZeroLogger) Error(msg string, fields ...Field) { emit(z.log.Error(), msg, fields) }

// emit attaches fields to the event and writes it. Events below the
// configured level arrive nil and every call on them is a no-op.
func emit(e *zerolog.Event, msg string, fields []Field) {
	for _, f := range fields {
		e = eventField(e, f)
	}
	e.Msg(msg)
}

func eventField(e *zerolog.Event, f Field) *zerolog.Event {
	switch v := f.Value.(type) {
	case string:
		return e.Str(f.Key, v)
	case error:
		return e.AnErr(f.Key, v)
	case int:
		return e.Int(f.Key, v)
	case bool:
		return e.Bool(f.Key, v)
	case time.Duration:
		return e.Dur(f.Key, v)
	default:
		return e.Interface(f.Key, v)
	}
}

func contextField(ctx zerolog.Context, f Field) zerolog.Context {
	switch v := f.Value.(type) {
	case string:
		return ctx.Str(f.Key, v)
	case error:
		return ctx.AnErr(f.Key, v)
	case int:
		return ctx.Int(f.Key, v)
	case bool:
		return ctx.Bool(f.Key, v)
	case time.Duration:
		return ctx.Dur(f.Key, v)
	default:
		return ctx.Interface(f.Key, v)
	}
}

func parseLevel(s string, def zerolog.Level) zerolog.Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "TRACE":
		return zerolog.TraceLevel
	case "DEBUG":
		return zerolog.DebugLevel
	case "INFO":
		return zerolog.InfoLevel
	case "WARN", "WARNING":
		return zerolog.WarnLevel
	case "ERROR":
		return zerolog.ErrorLevel
	default:
		return def
	}
}
