// Package logging sends structured logs to a rotating file so that they never
// interfere with the terminal UI.
package logging

import (
	"io"
	"log/slog"

	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	maxSizeMB  = 5
	maxBackups = 3
	maxAgeDays = 30
)

// Option configures the logger.
type Option func(*options)

type options struct {
	w     io.Writer
	level slog.Level
}

// WithLevel sets the minimum level that is written.
func WithLevel(l slog.Level) Option {
	return func(o *options) {
		o.level = l
	}
}

// WithWriter replaces the rotating log file.
func WithWriter(w io.Writer) Option {
	return func(o *options) {
		o.w = w
	}
}

// New returns a JSON logger writing to path. The returned closer releases the
// log file.
func New(path string, opts ...Option) (*slog.Logger, io.Closer) {
	o := &options{level: slog.LevelInfo}

	for _, opt := range opts {
		opt(o)
	}

	var closer io.Closer = nopCloser{}

	if o.w == nil {
		lj := &lumberjack.Logger{
			Filename:   path,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}

		o.w, closer = lj, lj
	}

	h := slog.NewJSONHandler(o.w, &slog.HandlerOptions{
		Level: o.level,
	})

	return slog.New(h), closer
}

// Setup installs the logger as the slog default.
func Setup(path string, opts ...Option) io.Closer {
	l, closer := New(path, opts...)
	slog.SetDefault(l)

	return closer
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
