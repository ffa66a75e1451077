// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger setup.
type Options struct {
	Level   string // zerolog level name; empty means info
	Debug   bool   // forces debug level
	File    string // optional rotated log file in addition to stderr
	NoColor bool
	Stderr  io.Writer // defaults to os.Stderr
}

// Setup installs the global logger and returns a closer for the log file.
func Setup(opts Options) (io.Closer, error) {
	stderr := opts.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	console := zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.RFC3339, NoColor: opts.NoColor}
	var closer io.Closer = nopCloser{}

	if opts.File != "" {
		rotated := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    10, // megabytes
			MaxBackups: 3,
			MaxAge:     14, // days
		}
		closer = rotated
		log.Logger = zerolog.New(zerolog.MultiLevelWriter(
			console,
			zerolog.ConsoleWriter{Out: rotated, TimeFormat: time.RFC3339, NoColor: true},
		)).With().Timestamp().Logger()
	} else {
		log.Logger = zerolog.New(console).With().Timestamp().Logger()
	}

	level := zerolog.InfoLevel
	if opts.Level != "" {
		parsed, err := zerolog.ParseLevel(opts.Level)
		if err != nil {
			return closer, err
		}
		level = parsed
	}
	if opts.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)

	return closer, nil
}

// Component returns a child of the global logger tagged with a subsystem name.
func Component(name string) zerolog.Logger {
	return log.With().Str("component", name).Logger()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
