package bundle

import (
	"archive/zip"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourstudio/tourstudio/internal/provider"
	"github.com/tourstudio/tourstudio/store"
	"github.com/tourstudio/tourstudio/timeline"
	"github.com/tourstudio/tourstudio/timer"
)

type fakeArtifacts struct {
	scripts    map[int]provider.Script
	narration  map[int][]byte
	effects    map[int][]store.SoundEffect
	transcript string
	music      string
}

func (f fakeArtifacts) Script(idx int) (provider.Script, bool, error) {
	s, ok := f.scripts[idx]
	return s, ok, nil
}

func (f fakeArtifacts) Narration(idx int) ([]byte, bool, error) {
	b, ok := f.narration[idx]
	return b, ok, nil
}

func (f fakeArtifacts) SoundEffects(idx int) ([]store.SoundEffect, error) {
	return f.effects[idx], nil
}

func (f fakeArtifacts) Transcript() (string, error) {
	return f.transcript, nil
}

func (f fakeArtifacts) StoredMusicPrompt() (string, error) {
	return f.music, nil
}

func tour() []timer.Section {
	return []timer.Section{
		timer.NewSection("Intro", 0, 10*time.Second),
		timer.NewSection("Great Hall", 10*time.Second, 25500*time.Millisecond),
	}
}

func newTestExporter(t *testing.T) *Exporter {
	t.Helper()

	e := NewExporter(filepath.Join(t.TempDir(), "out"), timeline.FrameRate(25))
	e.now = func() time.Time {
		return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	}

	return e
}

func TestAudioFileName(t *testing.T) {
	cases := []struct {
		title string
		want  string
		idx   int
	}{
		{"Intro", "section_1_Intro.mp3", 0},
		{"Great Hall", "section_3_Great_Hall.mp3", 2},
		{"A/B\\C", "section_2_A_B_C.mp3", 1},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, AudioFileName(tc.idx, tc.title))
	}
}

func TestExportWithoutAudio(t *testing.T) {
	e := newTestExporter(t)

	res, err := e.Export(tour(), fakeArtifacts{})
	require.NoError(t, err)

	assert.Empty(t, res.Audio)
	assert.Equal(t, 0, res.Files)
	assert.Len(t, res.Paths(), 2)

	_, err = os.Stat(filepath.Join(e.Dir, AudioArchiveName))
	assert.True(t, os.IsNotExist(err))

	doc, err := os.ReadFile(res.Timeline)
	require.NoError(t, err)

	want, err := timeline.Marshal(tour(), 25)
	require.NoError(t, err)
	assert.Equal(t, string(want), string(doc))
}

func TestExportBundlesAudio(t *testing.T) {
	e := newTestExporter(t)

	art := fakeArtifacts{
		scripts: map[int]provider.Script{
			1: {Text: "Look up.", EstimatedWordCount: 2},
		},
		narration: map[int][]byte{1: []byte("hall-mp3")},
		effects: map[int][]store.SoundEffect{
			0: {
				{Description: "door", Audio: []byte("door-mp3")},
				{Description: "bell", Audio: []byte("bell-mp3")},
			},
		},
		transcript: "ideas",
		music:      "soft piano",
	}

	res, err := e.Export(tour(), art)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Files)

	zr, err := zip.OpenReader(res.Audio)
	require.NoError(t, err)

	defer zr.Close()

	var names []string

	for _, f := range zr.File {
		names = append(names, f.Name)
		assert.Equal(t, zip.Store, f.Method, f.Name)
	}

	want := []string{
		"sfx/section_1_1.mp3",
		"sfx/section_1_2.mp3",
		"section_2_Great_Hall.mp3",
	}

	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("archive entries mismatch (-want +got):\n%s", diff)
	}

	m, err := ReadManifest(res.Manifest)
	require.NoError(t, err)

	assert.Equal(t, 25, m.FPS)
	assert.Equal(t, "ideas", m.Transcript)
	assert.Equal(t, "soft piano", m.MusicPrompt)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), m.ExportedAt)
	require.Len(t, m.Sections, 2)

	assert.Nil(t, m.Sections[0].Script)
	assert.Len(t, m.Sections[0].SoundEffects, 2)
	assert.Equal(t, "section_2_Great_Hall.mp3", m.Sections[1].Narration)
	require.NotNil(t, m.Sections[1].Script)
	assert.Equal(t, "Look up.", m.Sections[1].Script.Text)

	sections, err := m.TimerSections()
	require.NoError(t, err)

	if diff := cmp.Diff(tour(), sections); diff != "" {
		t.Errorf("manifest timing mismatch (-want +got):\n%s", diff)
	}
}

func TestExportRejectsMalformedSections(t *testing.T) {
	e := newTestExporter(t)

	bad := []timer.Section{{Title: "x", StartTime: 5 * time.Second, EndTime: time.Second}}

	_, err := e.Export(bad, fakeArtifacts{})
	assert.True(t, errors.Is(err, timeline.ErrMalformedSection))

	_, err = os.Stat(e.Dir)
	assert.True(t, os.IsNotExist(err), "nothing is written on failure")
}

func TestManifestMissingTiming(t *testing.T) {
	path := filepath.Join(t.TempDir(), ManifestFileName)

	data := []byte("title: t\nfps: 30\nsections:\n  - title: A\n    start_time: 0\n    end_time: 2\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	m, err := ReadManifest(path)
	require.NoError(t, err)

	_, err = m.TimerSections()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingTiming))
	assert.Contains(t, err.Error(), "duration")
}

func TestSaveNarration(t *testing.T) {
	e := newTestExporter(t)

	path, err := e.SaveNarration(0, "Front Door", []byte("mp3"))
	require.NoError(t, err)
	assert.Equal(t, "section_1_Front_Door.mp3", filepath.Base(path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3"), b)
}

func TestOverview(t *testing.T) {
	rows := Overview(tour(), 25)
	require.Len(t, rows, 2)

	assert.Equal(t, Row{
		Number:     2,
		Title:      "Great Hall",
		Start:      "00:00:10.000",
		End:        "00:00:25.500",
		Duration:   "00:00:15.500",
		StartFrame: 250,
		EndFrame:   637,
	}, rows[1])
}
