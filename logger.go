package bitvec

import (
	"context"
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with bitvec-specific fields.
//
// The bit operations themselves never log. Logger is used by the codec
// package and by tools built on top of bitvec.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithCodec adds a codec name field to the logger.
func (l *Logger) WithCodec(name string) *Logger {
	return &Logger{
		Logger: l.Logger.With("codec", name),
	}
}

// LogEncode logs an encode operation.
func (l *Logger) LogEncode(ctx context.Context, bitLen, size int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "encode failed",
			"len", bitLen,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "encode completed",
			"len", bitLen,
			"bytes", size,
		)
	}
}

// LogDecode logs a decode operation. bitLen is only meaningful on success.
func (l *Logger) LogDecode(ctx context.Context, size, bitLen int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "decode failed",
			"bytes", size,
			"error", err,
		)
	} else {
		l.DebugContext(ctx, "decode completed",
			"bytes", size,
			"len", bitLen,
		)
	}
}
