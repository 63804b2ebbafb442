// Package logging configures the process-wide zerolog logger.
package logging

import (
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options controls logger output and rotation.
type Options struct {
	// Level is the minimum level name (trace|debug|info|warn|error).
	Level string
	// Dir is the directory for rotated log files. Empty disables file output.
	Dir string
	// MaxSizeMB is the size at which a log file rotates.
	MaxSizeMB int
	// MaxBackups is how many rotated files to keep.
	MaxBackups int
	// MaxAgeDays is how long rotated files are kept.
	MaxAgeDays int
}

// DefaultOptions returns the standard rotation settings.
func DefaultOptions() Options {
	return Options{
		Level:      "info",
		Dir:        "logs",
		MaxSizeMB:  10,
		MaxBackups: 3,
		MaxAgeDays: 28,
	}
}

// Setup builds the root logger writing to the console and, when opts.Dir is
// set, to a rotating file. It also installs the logger as zerolog's global.
func Setup(opts Options) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(opts.Level)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}

	var out io.Writer = console
	if opts.Dir != "" {
		if err := os.MkdirAll(opts.Dir, 0755); err != nil {
			return zerolog.Nop(), err
		}
		out = io.MultiWriter(console, &lumberjack.Logger{
			Filename:   filepath.Join(opts.Dir, "vidcrawl.log"),
			MaxSize:    opts.MaxSizeMB,
			MaxBackups: opts.MaxBackups,
			MaxAge:     opts.MaxAgeDays,
			Compress:   true,
		})
	}

	logger := zerolog.New(out).With().Timestamp().Logger()
	log.Logger = logger

	return logger, nil
}
