// Package logging configures the process-wide slog logger.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"
)

type Config struct {
	Level  slog.Level
	Format string // json or text
	// File, when set, receives a copy of every record with size-based rotation.
	File string
}

// Init builds the logger described by cfg and installs it as slog's default.
// The returned closer flushes and closes the log file, if any.
func Init(cfg Config) (*slog.Logger, io.Closer, error) {
	return initTo(os.Stdout, cfg)
}

func initTo(stdout io.Writer, cfg Config) (*slog.Logger, io.Closer, error) {
	var (
		out    = stdout
		closer io.Closer = nopCloser{}
	)
	if cfg.File != "" {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o755); err != nil {
			return nil, nil, fmt.Errorf("log dir: %w", err)
		}
		lj := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    100, // MB
			MaxBackups: 10,
			MaxAge:     30,
			Compress:   true,
		}
		out = io.MultiWriter(stdout, lj)
		closer = lj
	}

	opts := &slog.HandlerOptions{Level: cfg.Level}
	var h slog.Handler
	switch cfg.Format {
	case "text":
		h = slog.NewTextHandler(out, opts)
	case "json", "":
		h = slog.NewJSONHandler(out, opts)
	default:
		return nil, nil, fmt.Errorf("unknown log format %q", cfg.Format)
	}

	l := slog.New(h)
	slog.SetDefault(l)
	return l, closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
