package logger

import (
	"context"
	"io"
	"time"

	"github.com/rs/zerolog"
)

type ConsoleLogger struct {
	logger zerolog.Logger
}

func initConsoleLogger(out io.Writer, serviceName, level string) (Logger, error) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.DebugLevel
	}

	writer := zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}

	return &ConsoleLogger{
		logger: zerolog.New(writer).
			Level(lvl).
			With().
			Timestamp().
			Str("service", serviceName).
			Logger(),
	}, nil
}

func NewConsoleLogger(out io.Writer, serviceName, level string) Logger {
	l, _ := initConsoleLogger(out, serviceName, level)
	return l
}

func (l *ConsoleLogger) Log(_ context.Context, entry LogEntry) {
	var event *zerolog.Event
	switch entry.Level {
	case LogLevelDebug:
		event = l.logger.Debug()
	case LogLevelInfo:
		event = l.logger.Info()
	case LogLevelWarn:
		event = l.logger.Warn()
	case LogLevelError:
		event = l.logger.Error()
	case LogLevelFatal:
		event = l.logger.Fatal()
	default:
		event = l.logger.Info()
	}

	if entry.Error != nil {
		event = event.Err(entry.Error)
	}

	event.Fields(entry.Attributes).Msg(entry.Message)
}

func (l *ConsoleLogger) Shutdown(context.Context) error {
	return nil
}
