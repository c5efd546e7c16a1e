// Package logging configures the process wide structured logger.
package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"

	slogmulti "github.com/samber/slog-multi"
	"github.com/spf13/afero"
)

type Options struct {
	// Minimum level of console messages: debug, info, warn or error
	Level string `mapstructure:"level" yaml:"level"`
	// If set, all messages are also appended to this file as JSON
	File string `mapstructure:"file" yaml:"file"`
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// Parses a level name, case insensitive
func ParseLevel(name string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(strings.TrimSpace(name)))
	return level, err
}

// Builds a logger writing human readable lines to console and, optionally,
// JSON records to a log file. The returned closer releases the log file.
func New(options Options, console io.Writer, fs afero.Fs) (*slog.Logger, io.Closer, error) {
	level := slog.LevelInfo
	if options.Level != "" {
		var err error
		if level, err = ParseLevel(options.Level); err != nil {
			return nil, nil, err
		}
	}

	handlers := []slog.Handler{
		slog.NewTextHandler(console, &slog.HandlerOptions{Level: level}),
	}

	var closer io.Closer = nopCloser{}

	if options.File != "" {
		file, err := fs.OpenFile(options.File, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}

		handlers = append(handlers, slog.NewJSONHandler(file, &slog.HandlerOptions{Level: slog.LevelDebug}))
		closer = file
	}

	return slog.New(slogmulti.Fanout(handlers...)), closer, nil
}

// Same as New() but also installs the logger as the slog default
func Setup(options Options, console io.Writer, fs afero.Fs) (*slog.Logger, io.Closer, error) {
	logger, closer, err := New(options, console, fs)
	if err != nil {
		return nil, nil, err
	}

	slog.SetDefault(logger)
	return logger, closer, nil
}
