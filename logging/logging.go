// Package logging builds the zerolog logger; the terminal owns stdout so logs only go to a file
package logging

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Rotation limits for the log file
const (
	maxLogSizeMB = 10
	maxBackups   = 3
	maxAgeDays   = 28
)

// Options selects the sink and level
// Writer wins over File, both empty disables logging
type Options struct {
	File   string
	Level  string
	Writer io.Writer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// New returns the configured logger and a closer for its sink
func New(opts Options) (zerolog.Logger, io.Closer, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return zerolog.Nop(), nopCloser{}, err
	}

	var w io.Writer
	var closer io.Closer = nopCloser{}
	switch {
	case opts.Writer != nil:
		w = opts.Writer
	case strings.TrimSpace(opts.File) != "":
		if err := os.MkdirAll(filepath.Dir(opts.File), 0o755); err != nil {
			return zerolog.Nop(), nopCloser{}, errors.Wrap(err, "create log directory")
		}
		lj := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    maxLogSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
		w, closer = lj, lj
	default:
		return zerolog.Nop(), nopCloser{}, nil
	}

	logger := zerolog.New(zerolog.SyncWriter(w)).
		Level(level).
		With().Timestamp().Str("app", "notesh").
		Logger()
	return logger, closer, nil
}

// ParseLevel accepts zerolog names, empty means info
func ParseLevel(name string) (zerolog.Level, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return zerolog.InfoLevel, nil
	}
	if name == "warning" {
		name = "warn"
	}
	level, err := zerolog.ParseLevel(name)
	if err != nil {
		return zerolog.NoLevel, errors.Errorf("unknown log level %q", name)
	}
	return level, nil
}

// Component derives a child logger tagged with the subsystem name
func Component(l zerolog.Logger, name string) zerolog.Logger {
	return l.With().Str("component", name).Logger()
}
