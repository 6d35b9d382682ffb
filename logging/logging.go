// Package logging builds the process logger.
//
// The interactive interface owns the terminal, so logs go to a rotated file.
// Debug mode writes human-readable lines to stderr instead.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/yhkl-dev/cmusic/config"
)

// Component names attached to sub-loggers
const (
	ComponentSpotify    = "spotify"
	ComponentPagination = "pagination"
	ComponentSession    = "session"
	ComponentUI         = "ui"
	ComponentCLI        = "cli"
)

// Logger owns the root logger and its output
type Logger struct {
	root      zerolog.Logger
	sessionID string
	closer    io.Closer
}

// New creates the root logger from cfg. A fresh session_id tags every line of this run.
func New(cfg config.LogConfig) (*Logger, error) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}

	var (
		out    io.Writer
		closer io.Closer
	)
	if cfg.Debug {
		level = zerolog.DebugLevel
		out = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	} else {
		if err := os.MkdirAll(filepath.Dir(cfg.File), 0o750); err != nil {
			return nil, err
		}
		rotator := &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
		}
		out, closer = rotator, rotator
	}

	return newLogger(out, level, closer), nil
}

// NewWithWriter creates a logger writing JSON lines to w (used by tests)
func NewWithWriter(w io.Writer, level zerolog.Level) *Logger {
	return newLogger(w, level, nil)
}

func newLogger(w io.Writer, level zerolog.Level, closer io.Closer) *Logger {
	sessionID := uuid.NewString()
	return &Logger{
		root: zerolog.New(w).
			Level(level).
			With().
			Timestamp().
			Str("session_id", sessionID).
			Logger(),
		sessionID: sessionID,
		closer:    closer,
	}
}

// Root returns the logger without a component field
func (l *Logger) Root() zerolog.Logger {
	return l.root
}

// Component returns a sub-logger tagged with the component name
func (l *Logger) Component(name string) zerolog.Logger {
	return l.root.With().Str("component", name).Logger()
}

func (l *Logger) SessionID() string {
	return l.sessionID
}

// Close releases the log file, if any
func (l *Logger) Close() error {
	if l.closer == nil {
		return nil
	}
	err := l.closer.Close()
	l.closer = nil
	return err
}
