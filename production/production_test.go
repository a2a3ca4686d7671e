package production

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourstudio/tourstudio/internal/provider"
	"github.com/tourstudio/tourstudio/store"
	"github.com/tourstudio/tourstudio/timer"
)

var errService = errors.New("service unavailable")

type fakeWriter struct {
	err     error
	lastReq provider.ScriptRequest
	music   provider.MusicRequest
	calls   int
}

func (f *fakeWriter) WriteScript(
	_ context.Context,
	req provider.ScriptRequest,
) (provider.Script, error) {
	f.calls++
	f.lastReq = req

	if f.err != nil {
		return provider.Script{}, f.err
	}

	return provider.Script{
		Text:               "Narration for " + req.Title,
		SoundEffects:       []string{"footsteps"},
		EstimatedWordCount: 3,
	}, nil
}

func (f *fakeWriter) ComposeMusicPrompt(
	_ context.Context,
	req provider.MusicRequest,
) (string, error) {
	f.music = req

	if f.err != nil {
		return "", f.err
	}

	return "ambient strings", nil
}

type fakeSynth struct {
	err   error
	text  string
	voice string
}

func (f *fakeSynth) Synthesize(_ context.Context, text, voiceID string) ([]byte, error) {
	f.text, f.voice = text, voiceID

	if f.err != nil {
		return nil, f.err
	}

	return []byte("mp3:" + text), nil
}

func (f *fakeSynth) Voices(context.Context) ([]provider.Voice, error) {
	return []provider.Voice{{ID: "v1", Name: "Rachel"}}, f.err
}

type fakeDesigner struct{}

func (fakeDesigner) SoundEffect(_ context.Context, d string) ([]byte, error) {
	return []byte("sfx:" + d), nil
}

type fakeTranscriber struct {
	deadline bool
}

func (f *fakeTranscriber) Transcribe(ctx context.Context, a provider.Audio) (string, error) {
	_, f.deadline = ctx.Deadline()

	return "text of " + a.Name, nil
}

func newTestProducer(t *testing.T, opts ...Option) *Producer {
	t.Helper()

	db, err := store.NewClient(t.TempDir())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return New(db, opts...)
}

func hall() timer.Section {
	return timer.NewSection("Hall", 10*time.Second, 25500*time.Millisecond)
}

func TestMissingCollaborators(t *testing.T) {
	p := newTestProducer(t)
	ctx := context.Background()

	assert.False(t, p.CanTranscribe())
	assert.False(t, p.CanWriteScripts())
	assert.False(t, p.CanNarrate())
	assert.False(t, p.CanDesignSound())

	_, err := p.Transcribe(ctx, provider.Audio{Name: "a.mp3"})
	assert.True(t, errors.Is(err, ErrNoTranscriber))

	_, err = p.GenerateScript(ctx, 0, hall(), "")
	assert.True(t, errors.Is(err, ErrNoScriptWriter))

	_, err = p.Narrate(ctx, 0)
	assert.True(t, errors.Is(err, ErrNoSynthesizer))

	_, err = p.SoundEffect(ctx, 0, "wind")
	assert.True(t, errors.Is(err, ErrNoSoundDesigner))

	_, err = p.Voices(ctx)
	assert.True(t, errors.Is(err, ErrNoSynthesizer))
}

func TestGenerateScript(t *testing.T) {
	w := &fakeWriter{}
	p := newTestProducer(t, WithScriptWriter(w))

	s, err := p.GenerateScript(context.Background(), 1, hall(), "mention the organ")
	require.NoError(t, err)

	assert.Equal(t, "Narration for Hall", s.Text)
	assert.Equal(t, "Hall", w.lastReq.Title)
	assert.Equal(t, 15500*time.Millisecond, w.lastReq.Duration)
	assert.Equal(t, "mention the organ", w.lastReq.Instructions)

	stored, ok, err := p.Script(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, s, stored)

	st, err := p.Status(1)
	require.NoError(t, err)
	assert.Equal(t, "📝", st.Icons())
}

func TestGenerateScriptFailureKeepsPreviousScript(t *testing.T) {
	w := &fakeWriter{}
	p := newTestProducer(t, WithScriptWriter(w))

	_, err := p.GenerateScript(context.Background(), 0, hall(), "")
	require.NoError(t, err)

	w.err = errService

	_, err = p.GenerateScript(context.Background(), 0, hall(), "")
	require.Error(t, err)
	assert.ErrorIs(t, err, errService)
	assert.Contains(t, err.Error(), "section 1")

	s, ok, err := p.Script(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Narration for Hall", s.Text)

	// retrying after the service recovers succeeds
	w.err = nil

	_, err = p.GenerateScript(context.Background(), 0, hall(), "")
	require.NoError(t, err)
	assert.Equal(t, 3, w.calls)
}

func TestUpdateScript(t *testing.T) {
	p := newTestProducer(t, WithScriptWriter(&fakeWriter{}))

	err := p.UpdateScript(0, "text")
	assert.True(t, errors.Is(err, ErrNoScript))

	_, err = p.GenerateScript(context.Background(), 0, hall(), "")
	require.NoError(t, err)

	assert.True(t, errors.Is(p.UpdateScript(0, "   "), ErrEmptyScript))

	require.NoError(t, p.UpdateScript(0, " A shorter, edited narration. "))

	s, _, err := p.Script(0)
	require.NoError(t, err)
	assert.Equal(t, "A shorter, edited narration.", s.Text)
	assert.Equal(t, 4, s.EstimatedWordCount)
	assert.Equal(t, []string{"footsteps"}, s.SoundEffects)
}

func TestNarrate(t *testing.T) {
	synth := &fakeSynth{}
	p := newTestProducer(t, WithScriptWriter(&fakeWriter{}), WithSynthesizer(synth))
	ctx := context.Background()

	_, err := p.Narrate(ctx, 0)
	assert.True(t, errors.Is(err, ErrNoVoice))

	p.SetVoice("v1")

	_, err = p.Narrate(ctx, 0)
	assert.True(t, errors.Is(err, ErrNoScript))

	_, err = p.GenerateScript(ctx, 0, hall(), "")
	require.NoError(t, err)

	audio, err := p.Narrate(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3:Narration for Hall"), audio)
	assert.Equal(t, "v1", synth.voice)

	st, err := p.Status(0)
	require.NoError(t, err)
	assert.Equal(t, "📝 🎤", st.Icons())

	synth.err = errService

	_, err = p.Narrate(ctx, 0)
	assert.ErrorIs(t, err, errService)

	// the earlier narration survives a failed retry
	stored, ok, err := p.Narration(0)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, audio, stored)
}

func TestSoundEffects(t *testing.T) {
	p := newTestProducer(t, WithSoundDesigner(fakeDesigner{}))

	n, err := p.SoundEffect(context.Background(), 2, "door creak")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = p.SoundEffect(context.Background(), 2, "bell")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	list, err := p.SoundEffects(2)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, []byte("sfx:bell"), list[1].Audio)

	st, err := p.Status(2)
	require.NoError(t, err)
	assert.Equal(t, 2, st.SoundEffects)
	assert.Equal(t, "⏱️", st.Icons())
}

func TestMusicPrompt(t *testing.T) {
	w := &fakeWriter{}
	p := newTestProducer(t, WithScriptWriter(w))

	_, err := p.MusicPrompt(context.Background(), nil, "")
	assert.True(t, errors.Is(err, ErrNoSections))

	sections := []timer.Section{
		timer.NewSection("Intro", 0, 10*time.Second),
		hall(),
	}

	got, err := p.MusicPrompt(context.Background(), sections, "grand")
	require.NoError(t, err)
	assert.Equal(t, "ambient strings", got)

	require.Len(t, w.music.Sections, 2)
	assert.Equal(t, "grand", w.music.Mood)
	assert.Equal(t, 10*time.Second, w.music.Sections[0].Duration)

	stored, err := p.StoredMusicPrompt()
	require.NoError(t, err)
	assert.Equal(t, got, stored)
}

func TestTranscribeAppends(t *testing.T) {
	tr := &fakeTranscriber{}
	p := newTestProducer(t, WithTranscriber(tr), WithTimeout(time.Second))

	_, err := p.Transcribe(context.Background(), provider.Audio{Name: "one.mp3"})
	require.NoError(t, err)
	assert.True(t, tr.deadline, "calls are bounded by the configured timeout")

	text, err := p.Transcribe(context.Background(), provider.Audio{Name: "two.mp3"})
	require.NoError(t, err)
	assert.Equal(t, "text of one.mp3\n\ntext of two.mp3", text)

	stored, err := p.Transcript()
	require.NoError(t, err)
	assert.Equal(t, text, stored)
}

func TestForgetShiftsArtifacts(t *testing.T) {
	p := newTestProducer(t, WithScriptWriter(&fakeWriter{}))
	ctx := context.Background()

	for i, title := range []string{"A", "B", "C"} {
		_, err := p.GenerateScript(ctx, i, timer.NewSection(title, 0, time.Second), "")
		require.NoError(t, err)
	}

	require.NoError(t, p.Forget(1))

	s, ok, err := p.Script(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "Narration for C", s.Text)

	_, ok, err = p.Script(2)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.Clear())

	_, ok, err = p.Script(0)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestVoices(t *testing.T) {
	p := newTestProducer(t, WithSynthesizer(&fakeSynth{}))

	voices, err := p.Voices(context.Background())
	require.NoError(t, err)
	require.Len(t, voices, 1)
	assert.Equal(t, "Rachel", voices[0].Name)
}
