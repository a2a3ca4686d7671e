// Package inbox finds brainstorming recordings on disk and watches folders
// for new ones.
package inbox

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/maruel/natural"

	"github.com/tourstudio/tourstudio/internal/apperr"
)

var (
	errNoRecordings = &apperr.Error{
		Message: "no recordings found (supported formats: %s)",
	}

	errEventsClosed = errors.New("watcher events channel closed")
	errErrorsClosed = errors.New("watcher errors channel closed")
)

// Extensions accepted by the transcription services.
var Extensions = []string{
	".flac", ".m4a", ".mp3", ".mp4", ".mpeg", ".mpga", ".ogg", ".wav", ".webm",
}

// IsRecording reports whether path has a supported audio extension.
func IsRecording(path string) bool {
	return slices.Contains(Extensions, strings.ToLower(filepath.Ext(path)))
}

// Collect expands directories into the recordings they hold and returns every
// recording in natural order, so "part 2" comes before "part 10".
func Collect(paths []string) ([]string, error) {
	var files []string

	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if IsRecording(p) {
				files = append(files, p)
			}

			continue
		}

		entries, err := os.ReadDir(p)
		if err != nil {
			return nil, err
		}

		for _, e := range entries {
			if !e.IsDir() && IsRecording(e.Name()) {
				files = append(files, filepath.Join(p, e.Name()))
			}
		}
	}

	if len(files) == 0 {
		return nil, errNoRecordings.Fmt(strings.Join(Extensions, ", "))
	}

	slices.SortFunc(files, func(a, b string) int {
		switch {
		case natural.Less(a, b):
			return -1
		case natural.Less(b, a):
			return 1
		default:
			return 0
		}
	})

	return files, nil
}

// Handler processes one new recording.
type Handler func(ctx context.Context, path string) error

// Watcher reports recordings created in a directory.
type Watcher struct {
	watcher *fsnotify.Watcher
	handler Handler
	dir     string
	settle  time.Duration
}

type Option func(*Watcher)

// WithSettle sets how long to wait after a file appears before reading it,
// giving the recorder time to finish writing.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		w.settle = d
	}
}

// NewWatcher starts watching dir.
func NewWatcher(dir string, handler Handler, opts ...Option) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	if err := fw.Add(dir); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	w := &Watcher{
		watcher: fw,
		handler: handler,
		dir:     dir,
		settle:  500 * time.Millisecond,
	}

	for _, opt := range opts {
		opt(w)
	}

	return w, nil
}

// Run handles events one at a time until ctx is done. Handler errors are
// logged and do not stop the watcher.
func (w *Watcher) Run(ctx context.Context) error {
	slog.Info("watching for recordings", slog.String("dir", w.dir))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return errEventsClosed
			}

			if !event.Has(fsnotify.Create) || !IsRecording(event.Name) {
				continue
			}

			select {
			case <-time.After(w.settle):
			case <-ctx.Done():
				return ctx.Err()
			}

			if err := w.handler(ctx, event.Name); err != nil {
				slog.Error(
					"failed to process recording",
					slog.String("file", event.Name),
					slog.Any("error", err),
				)
			}

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return errErrorsClosed
			}

			slog.Error("watcher error", slog.Any("error", err))
		}
	}
}

// Close stops the watcher.
func (w *Watcher) Close() error {
	return w.watcher.Close()
}
