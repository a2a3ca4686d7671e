package store

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourstudio/tourstudio/internal/provider"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()

	c, err := NewClient(t.TempDir())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = c.Close()
	})

	return c
}

func TestScriptRoundTrip(t *testing.T) {
	c := newTestClient(t)

	_, ok, err := c.Script(0)
	require.NoError(t, err)
	assert.False(t, ok)

	want := provider.Script{
		Text:               "Welcome",
		SoundEffects:       []string{"bell"},
		EstimatedWordCount: 1,
	}

	require.NoError(t, c.PutScript(0, want))

	got, ok, err := c.Script(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, want, got)
}

func TestNarrationAndSoundEffects(t *testing.T) {
	c := newTestClient(t)

	require.NoError(t, c.PutNarration(2, []byte("mp3")))

	audio, ok, err := c.Narration(2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("mp3"), audio)

	n, err := c.AddSoundEffect(2, SoundEffect{Description: "rain", Audio: []byte("a")})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = c.AddSoundEffect(2, SoundEffect{Description: "thunder", Audio: []byte("b")})
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := c.SoundEffects(2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "rain", list[0].Description)
	assert.Equal(t, []byte("b"), list[1].Audio)

	none, err := c.SoundEffects(0)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestNegativeIndex(t *testing.T) {
	c := newTestClient(t)

	assert.True(t, errors.Is(c.PutNarration(-1, []byte("x")), errNegativeIndex))
	assert.True(t, errors.Is(c.Remove(-1), errNegativeIndex))
}

func TestRemoveShiftsLaterSections(t *testing.T) {
	c := newTestClient(t)

	for i, text := range []string{"zero", "one", "two", "three"} {
		require.NoError(t, c.PutScript(i, provider.Script{Text: text}))
	}

	require.NoError(t, c.PutNarration(1, []byte("n1")))
	require.NoError(t, c.PutNarration(3, []byte("n3")))

	_, err := c.AddSoundEffect(2, SoundEffect{Description: "s2"})
	require.NoError(t, err)

	require.NoError(t, c.Remove(1))

	var texts []string

	for i := range 4 {
		s, ok, err := c.Script(i)
		require.NoError(t, err)

		if ok {
			texts = append(texts, s.Text)
		}
	}

	assert.Equal(t, []string{"zero", "two", "three"}, texts)

	_, ok, err := c.Narration(0)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = c.Narration(1)
	require.NoError(t, err)
	assert.False(t, ok, "narration of the removed section must be gone")

	audio, ok, err := c.Narration(2)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, []byte("n3"), audio)

	sfx, err := c.SoundEffects(1)
	require.NoError(t, err)
	require.Len(t, sfx, 1)
	assert.Equal(t, "s2", sfx[0].Description)
}

func TestClearKeepsMeta(t *testing.T) {
	c := newTestClient(t)

	require.NoError(t, c.PutScript(0, provider.Script{Text: "x"}))
	require.NoError(t, c.PutMeta(Transcript, "brainstorm"))

	require.NoError(t, c.Clear())

	_, ok, err := c.Script(0)
	require.NoError(t, err)
	assert.False(t, ok)

	v, err := c.Meta(Transcript)
	require.NoError(t, err)
	assert.Equal(t, "brainstorm", v)

	v, err = c.Meta(MusicPrompt)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestCloseRemovesFiles(t *testing.T) {
	c, err := NewClient(t.TempDir())
	require.NoError(t, err)

	dir := c.Dir()

	_, err = os.Stat(dir)
	require.NoError(t, err)

	require.NoError(t, c.Close())

	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))
}

func TestOpenLockedStore(t *testing.T) {
	c := newTestClient(t)

	path := filepath.Join(c.Dir(), dbFileName)

	_, err := openDB(path)
	assert.True(t, errors.Is(err, errStoreLocked), "got %v", err)
}
