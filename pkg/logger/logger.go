package logger

import (
	"context"
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/trace"
)

type contextKey string

const (
	JSONLoggingFormat    = "json"
	ConsoleLoggingFormat = "console"

	LogLevelDebug   = "debug"
	LogLevelInfo    = "info"
	LogLevelWarn    = "warn"
	LogLevelWarning = "warning"
	LogLevelError   = "error"

	ContextKeyRequestID contextKey = "requestID"
)

var levels = map[string]zerolog.Level{
	LogLevelDebug:   zerolog.DebugLevel,
	LogLevelInfo:    zerolog.InfoLevel,
	LogLevelWarn:    zerolog.WarnLevel,
	LogLevelWarning: zerolog.WarnLevel,
	LogLevelError:   zerolog.ErrorLevel,
}

type Logger struct {
	zerolog.Logger
}

func New(level, format string) Logger {
	return NewWithWriter(level, format, os.Stdout)
}

// NewWithWriter falls back to the info level for unknown names.
func NewWithWriter(level, format string, w io.Writer) Logger {
	logLevel, ok := levels[strings.ToLower(level)]
	if !ok {
		logLevel = zerolog.InfoLevel
	}

	var out io.Writer = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	if format == JSONLoggingFormat {
		out = w
	}

	return Logger{
		Logger: zerolog.New(out).Level(logLevel).With().Timestamp().Logger(),
	}
}

// WithRequestID stores the request id picked up by WithContext.
func WithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, ContextKeyRequestID, requestID)
}

func RequestIDFromContext(ctx context.Context) string {
	requestID, _ := ctx.Value(ContextKeyRequestID).(string)

	return requestID
}

// WithContext enriches the logger with the request id and the active span.
func (l Logger) WithContext(ctx context.Context) zerolog.Logger {
	fields := l.Logger.With()

	if requestID := RequestIDFromContext(ctx); requestID != "" {
		fields = fields.Str("request_id", requestID)
	}

	if spanCtx := trace.SpanContextFromContext(ctx); spanCtx.IsValid() {
		fields = fields.
			Str("trace_id", spanCtx.TraceID().String()).
			Str("span_id", spanCtx.SpanID().String())
	}

	return fields.Logger()
}

// Component tags every entry with the emitting subsystem.
func (l Logger) Component(name string) Logger {
	return Logger{Logger: l.Logger.With().Str("component", name).Logger()}
}
