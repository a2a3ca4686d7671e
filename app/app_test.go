package app

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourstudio/tourstudio/bundle"
	"github.com/tourstudio/tourstudio/internal/config"
	"github.com/tourstudio/tourstudio/internal/pathutil"
	"github.com/tourstudio/tourstudio/internal/provider"
	"github.com/tourstudio/tourstudio/internal/testutil"
	"github.com/tourstudio/tourstudio/production"
	"github.com/tourstudio/tourstudio/store"
	"github.com/tourstudio/tourstudio/timeline"
)

func TestMain(m *testing.M) {
	dir, err := os.MkdirTemp("", "tourstudio-app-")
	if err != nil {
		panic(err)
	}

	os.Setenv("XDG_CONFIG_HOME", filepath.Join(dir, "config"))
	os.Setenv("XDG_DATA_HOME", filepath.Join(dir, "data"))
	xdg.Reload()

	if err := pathutil.Initialize(); err != nil {
		panic(err)
	}

	// an existing config file skips the first-run prompt
	err = os.WriteFile(pathutil.ConfigFilePath(), []byte("export:\n  fps: 30\n"), 0o644)
	if err != nil {
		panic(err)
	}

	code := m.Run()

	os.RemoveAll(dir)
	os.Exit(code)
}

func copyFixture(t *testing.T, name string) string {
	t.Helper()

	dst := filepath.Join(t.TempDir(), name)
	require.NoError(t, testutil.CopyFile(filepath.Join("testdata", name), dst))

	return dst
}

func runApp(t *testing.T, args ...string) error {
	t.Helper()

	var out bytes.Buffer

	stdout := config.Stdout
	config.Stdout = &out

	t.Cleanup(func() {
		config.Stdout = stdout
	})

	return Get().Run(append([]string{"tourstudio"}, args...))
}

func TestExportAtNewFrameRate(t *testing.T) {
	manifest := copyFixture(t, "tour_manifest.yaml")

	require.NoError(t, runApp(t, "export", "--fps", "25", manifest))

	doc, err := os.ReadFile(filepath.Join(filepath.Dir(manifest), timeline.FileName))
	require.NoError(t, err)

	testutil.CompareGoldenFile(t, testutil.Golden{Name: "export_25fps", Data: doc})
}

func TestExportDefaultsToManifestFrameRate(t *testing.T) {
	manifest := copyFixture(t, "tour_manifest.yaml")
	out := filepath.Join(t.TempDir(), "nested")

	require.NoError(t, runApp(t, "export", "--output", out, manifest))

	doc, err := os.ReadFile(filepath.Join(out, timeline.FileName))
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<timebase>30</timebase>")
	assert.Contains(t, string(doc), "<duration>765</duration>")
}

func TestExportErrors(t *testing.T) {
	table := []struct {
		target error
		name   string
		args   []string
	}{
		{
			name:   "missing manifest argument",
			args:   []string{"export"},
			target: errMissingArg,
		},
		{
			name:   "missing duration",
			args:   []string{"export", copyFixture(t, "missing_duration.yaml")},
			target: bundle.ErrMissingTiming,
		},
		{
			name:   "unreadable manifest",
			args:   []string{"export", filepath.Join(t.TempDir(), "nope.yaml")},
			target: bundle.ErrReadManifest,
		},
		{
			name:   "unsupported frame rate",
			args:   []string{"export", "--fps", "29", copyFixture(t, "tour_manifest.yaml")},
			target: timeline.ErrUnsupportedFrameRate,
		},
	}

	for _, tc := range table {
		t.Run(tc.name, func(t *testing.T) {
			err := runApp(t, tc.args...)
			assert.True(t, errors.Is(err, tc.target), "got %v", err)
		})
	}
}

func TestCommandsNeedKeys(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ELEVENLABS_API_KEY", "")

	err := runApp(t, "voices")
	assert.True(t, errors.Is(err, production.ErrNoSynthesizer))

	err = runApp(t, "transcribe", "memo.mp3")
	assert.True(t, errors.Is(err, production.ErrNoTranscriber))
}

type fakeTranscriber struct{}

func (fakeTranscriber) Transcribe(_ context.Context, a provider.Audio) (string, error) {
	return "notes from " + a.Name, nil
}

func TestTranscribeFileSavesText(t *testing.T) {
	dir := t.TempDir()
	recording := filepath.Join(dir, "walkthrough 2.m4a")

	require.NoError(t, os.WriteFile(recording, []byte("audio"), 0o644))

	var out bytes.Buffer

	stdout := config.Stdout
	config.Stdout = &out

	t.Cleanup(func() {
		config.Stdout = stdout
	})

	cfg := &config.Config{}
	cfg.Settings.RequestTimeout = time.Minute

	err := transcribeFile(context.Background(), fakeTranscriber{}, recording, cfg, true)
	require.NoError(t, err)

	assert.Equal(t, "notes from walkthrough 2.m4a\n", out.String())

	text, err := os.ReadFile(filepath.Join(dir, "walkthrough 2.txt"))
	require.NoError(t, err)
	assert.Equal(t, "notes from walkthrough 2.m4a\n", string(text))
}

func TestNewProducer(t *testing.T) {
	db, err := store.NewClient(t.TempDir())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})

	cfg := &config.Config{}
	cfg.Providers.Transcription = config.ElevenLabs
	cfg.Providers.Script = config.Gemini
	cfg.Settings.RequestTimeout = time.Minute

	p := newProducer(cfg, db)
	assert.False(t, p.CanTranscribe())
	assert.False(t, p.CanWriteScripts())
	assert.False(t, p.CanNarrate())

	cfg.Keys.ElevenLabs = "el-key"
	cfg.Keys.Anthropic = "unused because gemini is selected"
	cfg.ElevenLabs.VoiceID = "v1"

	p = newProducer(cfg, db)
	assert.True(t, p.CanTranscribe())
	assert.False(t, p.CanWriteScripts())
	assert.True(t, p.CanNarrate())
	assert.True(t, p.CanDesignSound())
	assert.Equal(t, "v1", p.Voice())

	cfg.Keys.Gemini = "g-key"
	assert.True(t, newProducer(cfg, db).CanWriteScripts())
}

func TestFirstNonEmptyString(t *testing.T) {
	assert.Equal(t, "b", firstNonEmptyString("", "b", "c"))
	assert.Equal(t, "", firstNonEmptyString("", ""))
}
