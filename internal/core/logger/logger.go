package logger

import (
	"context"
	"maps"
	"os"
	"strings"
	"time"
)

type LogLevel string

const (
	LogLevelDebug LogLevel = "DEBUG"
	LogLevelInfo  LogLevel = "INFO"
	LogLevelWarn  LogLevel = "WARN"
	LogLevelError LogLevel = "ERROR"
	LogLevelFatal LogLevel = "FATAL"
)

// ParseLevel accepts the level names case-insensitively; unknown names map to DEBUG.
func ParseLevel(value string) LogLevel {
	switch level := LogLevel(strings.ToUpper(strings.TrimSpace(value))); level {
	case LogLevelInfo, LogLevelWarn, LogLevelError, LogLevelFatal:
		return level
	default:
		return LogLevelDebug
	}
}

func (l LogLevel) rank() int {
	switch l {
	case LogLevelInfo:
		return 1
	case LogLevelWarn:
		return 2
	case LogLevelError:
		return 3
	case LogLevelFatal:
		return 4
	default:
		return 0
	}
}

type attributes = map[string]any

type contextAttributesKey struct{}

// WithAttributes returns a context whose log entries all carry attrs. Keys
// set explicitly on an entry win over context keys.
func WithAttributes(ctx context.Context, attrs attributes) context.Context {
	merged := make(attributes, len(attrs))
	if parent, ok := ctx.Value(contextAttributesKey{}).(attributes); ok {
		maps.Copy(merged, parent)
	}
	maps.Copy(merged, attrs)
	return context.WithValue(ctx, contextAttributesKey{}, merged)
}

func withContextAttributes(ctx context.Context, entry LogEntry) LogEntry {
	scoped, ok := ctx.Value(contextAttributesKey{}).(attributes)
	if !ok || len(scoped) == 0 {
		return entry
	}
	merged := make(attributes, len(scoped)+len(entry.Attributes))
	maps.Copy(merged, scoped)
	maps.Copy(merged, entry.Attributes)
	entry.Attributes = merged
	return entry
}

// leveledLogger drops entries below min before they reach the backend.
type leveledLogger struct {
	Logger
	min LogLevel
}

func (l *leveledLogger) Log(ctx context.Context, entry LogEntry) {
	if entry.Level.rank() < l.min.rank() {
		return
	}
	l.Logger.Log(ctx, entry)
}

type LogEntry struct {
	Level      LogLevel
	Message    string
	Attributes attributes
	Error      error
	Timestamp  time.Time
}

type Logger interface {
	Log(ctx context.Context, entry LogEntry)
	Shutdown(ctx context.Context) error
}

// discardLogger is in place until Initialize or SetLogger runs.
type discardLogger struct{}

func (discardLogger) Log(context.Context, LogEntry)  {}
func (discardLogger) Shutdown(context.Context) error { return nil }

var globalLogger Logger = discardLogger{}

func newLogEntry(level LogLevel, message string, err error, attrs attributes) LogEntry {
	return LogEntry{
		Level:      level,
		Message:    message,
		Attributes: attrs,
		Error:      err,
		Timestamp:  time.Now(),
	}
}

func Debug(ctx context.Context, message string, attrs attributes) {
	Log(ctx, newLogEntry(LogLevelDebug, message, nil, attrs))
}

func Info(ctx context.Context, message string, attrs attributes) {
	Log(ctx, newLogEntry(LogLevelInfo, message, nil, attrs))
}

func Warn(ctx context.Context, message string, attrs attributes) {
	Log(ctx, newLogEntry(LogLevelWarn, message, nil, attrs))
}

func Error(ctx context.Context, message string, err error, attrs attributes) {
	Log(ctx, newLogEntry(LogLevelError, message, err, attrs))
}

func Fatal(ctx context.Context, message string, err error, attrs attributes) {
	Log(ctx, newLogEntry(LogLevelFatal, message, err, attrs))
}

func Log(ctx context.Context, entry LogEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}
	globalLogger.Log(ctx, withContextAttributes(ctx, entry))
}

func Shutdown(ctx context.Context) error {
	return globalLogger.Shutdown(ctx)
}

// SetLogger replaces the global logger and returns the previous one.
func SetLogger(l Logger) Logger {
	previous := globalLogger
	globalLogger = l
	return previous
}

// Initialize swaps the global logger. Production ships records to an OTLP
// collector; anything else writes human-readable lines to stdout.
func Initialize(collectorEndpoint, serviceName string, isProduction bool, level string) error {
	var (
		l   Logger
		err error
	)

	if isProduction {
		l, err = initializeOtelLogger(collectorEndpoint, serviceName)
		if err == nil {
			l = &leveledLogger{Logger: l, min: ParseLevel(level)}
		}
	} else {
		l, err = initConsoleLogger(os.Stdout, serviceName, level)
	}

	if err != nil {
		return err
	}

	globalLogger = l
	return nil
}
