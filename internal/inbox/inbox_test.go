package inbox

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte("audio"), 0o644))
}

func TestCollectNaturalOrder(t *testing.T) {
	dir := t.TempDir()

	for _, name := range []string{"part 10.mp3", "part 2.MP3", "notes.txt", "part 1.wav"} {
		touch(t, filepath.Join(dir, name))
	}

	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.mp3"), 0o755))

	files, err := Collect([]string{dir})
	require.NoError(t, err)

	var names []string
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}

	assert.Equal(t, []string{"part 1.wav", "part 2.MP3", "part 10.mp3"}, names)
}

func TestCollectNothing(t *testing.T) {
	dir := t.TempDir()
	touch(t, filepath.Join(dir, "readme.md"))

	_, err := Collect([]string{dir})
	assert.True(t, errors.Is(err, errNoRecordings))

	_, err = Collect([]string{filepath.Join(dir, "missing.mp3")})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWatcherHandlesNewRecordings(t *testing.T) {
	dir := t.TempDir()
	got := make(chan string, 4)

	w, err := NewWatcher(dir, func(_ context.Context, path string) error {
		got <- filepath.Base(path)
		return errors.New("handler errors are logged, not fatal")
	}, WithSettle(0))
	require.NoError(t, err)

	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- w.Run(ctx)
	}()

	touch(t, filepath.Join(dir, "ignored.txt"))
	touch(t, filepath.Join(dir, "walkthrough.m4a"))
	touch(t, filepath.Join(dir, "second.mp3"))

	for _, want := range []string{"walkthrough.m4a", "second.mp3"} {
		select {
		case name := <-got:
			assert.Equal(t, want, name)
		case <-time.After(5 * time.Second):
			t.Fatalf("timed out waiting for %s", want)
		}
	}

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
