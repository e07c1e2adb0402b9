package parser

import (
	"fmt"

	"github.com/rs/zerolog"
)

// Logger is the interface that langconf uses for structured logging.
//
// It uses variadic key-value pairs for structured attributes, following the
// same convention as log/slog:
//
//	logger.Info("following redirect", "from", url, "to", location, "hop", 2)
//
// Keys should be strings, and values can be any type that the underlying
// logger can serialize.
//
// # Usage with zerolog
//
// Use [NewZerologAdapter] to wrap a zerolog.Logger:
//
//	zl := zerolog.New(os.Stderr).With().Timestamp().Logger()
//	e := expander.New(expander.WithLogger(parser.NewZerologAdapter(zl)))
//
// # Usage with other loggers
//
// Implement the five methods. For zap:
//
//	type ZapAdapter struct {
//	    logger *zap.SugaredLogger
//	}
//
//	func (z *ZapAdapter) Debug(msg string, attrs ...any) { z.logger.Debugw(msg, attrs...) }
//	func (z *ZapAdapter) Info(msg string, attrs ...any)  { z.logger.Infow(msg, attrs...) }
//	func (z *ZapAdapter) Warn(msg string, attrs ...any)  { z.logger.Warnw(msg, attrs...) }
//	func (z *ZapAdapter) Error(msg string, attrs ...any) { z.logger.Errorw(msg, attrs...) }
//	func (z *ZapAdapter) With(attrs ...any) parser.Logger {
//	    return &ZapAdapter{logger: z.logger.With(attrs...)}
//	}
type Logger interface {
	// Debug logs at debug level. Use for detailed diagnostic information.
	Debug(msg string, attrs ...any)

	// Info logs at info level. Use for general operational information.
	Info(msg string, attrs ...any)

	// Warn logs at warn level. Use for potentially harmful situations.
	Warn(msg string, attrs ...any)

	// Error logs at error level. Use for error conditions.
	Error(msg string, attrs ...any)

	// With returns a new Logger with the given attributes prepended to every log.
	With(attrs ...any) Logger
}

// NopLogger is a no-op logger that discards all output.
// It is the default logger used when no logger is configured.
type NopLogger struct{}

// Debug implements Logger.
func (NopLogger) Debug(_ string, _ ...any) {}

// Info implements Logger.
func (NopLogger) Info(_ string, _ ...any) {}

// Warn implements Logger.
func (NopLogger) Warn(_ string, _ ...any) {}

// Error implements Logger.
func (NopLogger) Error(_ string, _ ...any) {}

// With implements Logger.
func (n NopLogger) With(_ ...any) Logger { return n }

// Ensure NopLogger implements Logger at compile time.
var _ Logger = NopLogger{}

// ZerologAdapter wraps a zerolog.Logger to implement the Logger interface.
type ZerologAdapter struct {
	logger zerolog.Logger
}

// NewZerologAdapter creates a new ZerologAdapter.
func NewZerologAdapter(logger zerolog.Logger) *ZerologAdapter {
	return &ZerologAdapter{logger: logger}
}

// Debug implements Logger.
func (z *ZerologAdapter) Debug(msg string, attrs ...any) {
	emit(z.logger.Debug(), msg, attrs)
}

// Info implements Logger.
func (z *ZerologAdapter) Info(msg string, attrs ...any) {
	emit(z.logger.Info(), msg, attrs)
}

// Warn implements Logger.
func (z *ZerologAdapter) Warn(msg string, attrs ...any) {
	emit(z.logger.Warn(), msg, attrs)
}

// Error implements Logger.
func (z *ZerologAdapter) Error(msg string, attrs ...any) {
	emit(z.logger.Error(), msg, attrs)
}

// With implements Logger.
func (z *ZerologAdapter) With(attrs ...any) Logger {
	ctx := z.logger.With()
	for i := 0; i < len(attrs); i += 2 {
		key, val := attrPair(attrs, i)
		ctx = ctx.Interface(key, val)
	}
	return &ZerologAdapter{logger: ctx.Logger()}
}

// Ensure ZerologAdapter implements Logger at compile time.
var _ Logger = (*ZerologAdapter)(nil)

// emit attaches attrs to the event and sends it. A nil event means the
// level is disabled.
func emit(e *zerolog.Event, msg string, attrs []any) {
	if e == nil {
		return
	}
	for i := 0; i < len(attrs); i += 2 {
		key, val := attrPair(attrs, i)
		e = e.Interface(key, val)
	}
	e.Msg(msg)
}

// attrPair returns the key/value pair starting at attrs[i]. A dangling key
// without a value is reported under "!BADKEY", as log/slog does.
func attrPair(attrs []any, i int) (string, any) {
	if i+1 >= len(attrs) {
		return "!BADKEY", attrs[i]
	}
	return fmt.Sprint(attrs[i]), attrs[i+1]
}
