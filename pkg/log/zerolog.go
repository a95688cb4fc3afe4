package log

import (
	"context"
	"io"
	"os"
	"sync"

	cockroacherrors "github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// zerologLogger adapts a zerolog.Logger to the Logger interface.
type zerologLogger struct {
	logger zerolog.Logger
}

var (
	providerMu    sync.RWMutex
	defaultOutput io.Writer = os.Stderr
	defaultLevel            = LevelInfo
	defaultLogger Logger
)

// GetLogger returns the process-wide default logger.
func GetLogger() Logger {
	providerMu.RLock()
	if defaultLogger != nil {
		l := defaultLogger
		providerMu.RUnlock()
		return l
	}
	providerMu.RUnlock()

	providerMu.Lock()
	defer providerMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = newZerologLogger(defaultOutput, defaultLevel)
	}
	return defaultLogger
}

// GetLoggerWithName returns a logger with a component name pre-populated.
func GetLoggerWithName(name string) Logger {
	return GetLogger().With(ComponentKey, name)
}

// SetLevel sets the minimum level for loggers created after this call and
// rebuilds the default logger.
func SetLevel(level Level) {
	providerMu.Lock()
	defer providerMu.Unlock()
	defaultLevel = level
	defaultLogger = newZerologLogger(defaultOutput, level)
}

// SetOutput redirects the default logger. Intended for tests and the CLI,
// which swaps in a console writer.
func SetOutput(w io.Writer) {
	providerMu.Lock()
	defer providerMu.Unlock()
	defaultOutput = w
	defaultLogger = newZerologLogger(w, defaultLevel)
}

func newZerologLogger(w io.Writer, level Level) *zerologLogger {
	zl := zerolog.New(w).Level(toZerologLevel(level)).With().Timestamp().Logger()
	return &zerologLogger{logger: zl}
}

func toZerologLevel(level Level) zerolog.Level {
	switch {
	case level <= LevelDebug:
		return zerolog.DebugLevel
	case level <= LevelInfo:
		return zerolog.InfoLevel
	case level <= LevelWarn:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// Debug implements Logger.
func (z *zerologLogger) Debug(msg string, fields ...any) {
	z.emit(z.logger.Debug(), msg, fields)
}

// Info implements Logger.
func (z *zerologLogger) Info(msg string, fields ...any) {
	z.emit(z.logger.Info(), msg, fields)
}

// Warn implements Logger.
func (z *zerologLogger) Warn(msg string, fields ...any) {
	z.emit(z.logger.Warn(), msg, fields)
}

// Error implements Logger. If the first field is an error, it is attached
// under the "error" key together with any cockroachdb/errors stack trace.
func (z *zerologLogger) Error(msg string, fields ...any) {
	event := z.logger.Error()
	if len(fields) > 0 {
		if err, ok := fields[0].(error); ok {
			event = event.Err(err)
			if stack := extractStacktrace(err); stack != "" {
				event = event.Str("stacktrace", stack)
			}
			fields = fields[1:]
		}
	}
	z.emit(event, msg, fields)
}

// With implements Logger.
func (z *zerologLogger) With(fields ...any) Logger {
	ctx := z.logger.With()
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ctx = ctx.Interface(key, fields[i+1])
	}
	return &zerologLogger{logger: ctx.Logger()}
}

// Enabled implements Logger.
func (z *zerologLogger) Enabled(_ context.Context, level Level) bool {
	return toZerologLevel(level) >= z.logger.GetLevel()
}

func (z *zerologLogger) emit(event *zerolog.Event, msg string, fields []any) {
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		switch v := fields[i+1].(type) {
		case zerolog.LogObjectMarshaler:
			event = event.Object(key, v)
		case error:
			event = event.AnErr(key, v)
		case string:
			event = event.Str(key, v)
		case int:
			event = event.Int(key, v)
		case int64:
			event = event.Int64(key, v)
		case uint64:
			event = event.Uint64(key, v)
		case float64:
			event = event.Float64(key, v)
		case bool:
			event = event.Bool(key, v)
		default:
			event = event.Interface(key, v)
		}
	}
	event.Msg(msg)
}

// extractStacktrace pulls the first safe-details entry recorded by
// cockroachdb/errors, which carries the formatted stack trace.
func extractStacktrace(err error) string {
	safeDetails := cockroacherrors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
