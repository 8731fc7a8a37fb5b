// Package bootstrap builds the process-wide dependencies shared by services.
package bootstrap

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/abgdnv/catalog/pkg/config"
	"github.com/abgdnv/catalog/pkg/logger"
	"github.com/abgdnv/catalog/pkg/messaging"
	pkgnats "github.com/abgdnv/catalog/pkg/nats"
)

// NewLogger creates a JSON slog.Logger on stdout with the specified log level.
func NewLogger(level string) *slog.Logger {
	return NewLoggerTo(os.Stdout, level)
}

// NewLoggerTo is NewLogger writing to w.
func NewLoggerTo(w io.Writer, level string) *slog.Logger {
	logLevel := toLevel(level)
	loggerOpts := &slog.HandlerOptions{
		AddSource: logLevel == slog.LevelDebug,
		Level:     logLevel,
	}
	logHandler := slog.NewJSONHandler(w, loggerOpts)
	return slog.New(logger.NewContextHandler(logHandler))
}

// NewEventPublisher connects to NATS, provisions the stream and returns a publisher
// for it together with a function that drains the connection.
// When NATS is disabled a no-op publisher is returned.
func NewEventPublisher(ctx context.Context, cfg config.NATSConfig, stream string, subjects ...string) (messaging.Publisher, func(), error) {
	if !cfg.Enabled {
		return messaging.NoopPublisher{}, func() {}, nil
	}

	nc, err := pkgnats.NewClient(cfg.Url, cfg.Timeout)
	if err != nil {
		return nil, nil, err
	}
	js, err := pkgnats.NewJetStreamContext(nc)
	if err != nil {
		return nil, nil, err
	}

	streamCtx, cancel := context.WithTimeout(ctx, cfg.Timeout)
	defer cancel()
	if err := pkgnats.EnsureStream(streamCtx, js, stream, subjects...); err != nil {
		nc.Close()
		return nil, nil, fmt.Errorf("failed to provision event stream: %w", err)
	}

	closeFn := func() {
		if err := nc.Drain(); err != nil {
			nc.Close()
		}
	}
	return pkgnats.NewNatsPublisher(js), closeFn, nil
}

// toLevel converts a string representation of a log level to slog.Level.
func toLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
