package logger

import (
	"context"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"time"
)

type StdoutLogger struct {
	logger *slog.Logger
}

func slogLevel(level LogLevel) slog.Level {
	switch level {
	case LogLevelDebug:
		return slog.LevelDebug
	case LogLevelWarn:
		return slog.LevelWarn
	case LogLevelError, LogLevelFatal:
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func initStdoutLogger(w io.Writer, serviceName string, level LogLevel) (Logger, error) {
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slogLevel(level),
	})

	handlerWithAttrs := handler.WithAttrs([]slog.Attr{
		slog.String("service", serviceName),
	})

	return &StdoutLogger{
		logger: slog.New(handlerWithAttrs),
	}, nil
}

func (l *StdoutLogger) Log(ctx context.Context, entry LogEntry) {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	attrs := make([]any, 0, len(entry.Attributes)*2+2)
	for _, key := range slices.Sorted(maps.Keys(entry.Attributes)) {
		attrs = append(attrs, key, entry.Attributes[key])
	}
	if entry.Error != nil {
		attrs = append(attrs, "error", entry.Error.Error())
	}

	switch entry.Level {
	case LogLevelDebug:
		l.logger.DebugContext(ctx, entry.Message, attrs...)
	case LogLevelInfo:
		l.logger.InfoContext(ctx, entry.Message, attrs...)
	case LogLevelWarn:
		l.logger.WarnContext(ctx, entry.Message, attrs...)
	case LogLevelError:
		l.logger.ErrorContext(ctx, entry.Message, attrs...)
	case LogLevelFatal:
		l.logger.ErrorContext(ctx, entry.Message, attrs...)
		os.Exit(1)
	}
}

func (l *StdoutLogger) Shutdown(context.Context) error {
	return nil
}
