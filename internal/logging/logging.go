// Package logging provides a small leveled console logger. Messages carry a
// level prefix, colored when the terminal supports it, and the logger travels
// through the workflow inside a context.Context.
package logging

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fatih/color"
)

// Level is the severity of a log message, ordered least to most severe.
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

// String returns the upper-case level name.
func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "INFO"
	}
}

// ParseLevel converts a config string to a Level. Unknown values map to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return DebugLevel
	case "warn", "warning":
		return WarnLevel
	case "error":
		return ErrorLevel
	default:
		return InfoLevel
	}
}

// Logger writes level-prefixed lines to a console writer.
type Logger struct {
	mu     sync.Mutex
	level  Level
	writer io.Writer
}

// New creates a logger writing to w at the given minimum level.
func New(w io.Writer, level Level) *Logger {
	if w == nil {
		w = os.Stderr
	}
	return &Logger{level: level, writer: w}
}

func (l *Logger) log(level Level, format string, args ...interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if _, err := fmt.Fprintln(l.writer, prefix(level)+" "+msg); err != nil {
		fmt.Fprintln(os.Stderr, prefix(level)+" "+msg)
	}
}

// prefix renders the bracketed level tag. fatih/color drops the escape codes
// on its own when output is not a terminal or NO_COLOR is set.
func prefix(level Level) string {
	tag := "[" + level.String() + "]"
	switch level {
	case DebugLevel:
		return color.HiBlackString(tag)
	case InfoLevel:
		return color.HiGreenString(tag)
	case WarnLevel:
		return color.HiYellowString(tag)
	case ErrorLevel:
		return color.HiRedString(tag)
	default:
		return tag
	}
}

// Debug logs a debug message.
func (l *Logger) Debug(format string, args ...interface{}) { l.log(DebugLevel, format, args...) }

// Info logs an informational message.
func (l *Logger) Info(format string, args ...interface{}) { l.log(InfoLevel, format, args...) }

// Warn logs a warning message.
func (l *Logger) Warn(format string, args ...interface{}) { l.log(WarnLevel, format, args...) }

// Error logs an error message.
func (l *Logger) Error(format string, args ...interface{}) { l.log(ErrorLevel, format, args...) }

type loggerKeyType struct{}

var loggerKey = loggerKeyType{}

// WithLogger returns a new context carrying l.
func WithLogger(ctx context.Context, l *Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// FromContext returns the logger stored in ctx, or a default stderr logger.
func FromContext(ctx context.Context) *Logger {
	if ctx != nil {
		if l, ok := ctx.Value(loggerKey).(*Logger); ok && l != nil {
			return l
		}
	}
	return New(os.Stderr, InfoLevel)
}
