// Package logging configures the process-wide slog logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/runnerr0/dayreport/internal/config"
)

// Init creates and sets the package-level default slog logger. Records go to
// stderr as text, and are also appended to cfg.File when it is set, rotated
// by size. verbose forces debug level. The returned Closer releases the log
// file and is safe to call when no file is configured.
func Init(cfg config.LoggingConfig, verbose bool) io.Closer {
	logger, closer := New(os.Stderr, cfg, verbose)
	slog.SetDefault(logger)
	return closer
}

// New builds a logger writing to w and, when cfg.File is set, a rotating
// log file.
func New(w io.Writer, cfg config.LoggingConfig, verbose bool) (*slog.Logger, io.Closer) {
	level := ParseLevel(cfg.Level)
	if verbose {
		level = slog.LevelDebug
	}

	var closer io.Closer = nopCloser{}
	if cfg.File != "" {
		rotating := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
		}
		w = io.MultiWriter(w, rotating)
		closer = rotating
	}

	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler), closer
}

// ParseLevel converts a string ("debug", "info", "warn", "error") to slog.Level.
// Unknown strings default to LevelInfo.
func ParseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
