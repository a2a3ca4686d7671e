package bundle

import (
	"bytes"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/tourstudio/tourstudio/internal/provider"
	"github.com/tourstudio/tourstudio/internal/timeutil"
	"github.com/tourstudio/tourstudio/timer"
)

// ManifestFileName is the name of the manifest written with every export.
const ManifestFileName = "audio_tour_manifest.yaml"

// Manifest describes an exported tour. Timing fields are seconds so the file
// stays readable and editable by hand.
type Manifest struct {
	ExportedAt  time.Time `yaml:"exported_at"`
	Title       string    `yaml:"title"`
	Transcript  string    `yaml:"transcript,omitempty"`
	MusicPrompt string    `yaml:"music_prompt,omitempty"`
	Sections    []Entry   `yaml:"sections"`
	FPS         int       `yaml:"fps"`
}

// Entry is one section of the manifest. Timing fields are pointers so that a
// missing value can be told apart from zero.
type Entry struct {
	StartTime    *float64         `yaml:"start_time"`
	EndTime      *float64         `yaml:"end_time"`
	Duration     *float64         `yaml:"duration"`
	Script       *provider.Script `yaml:"script,omitempty"`
	Title        string           `yaml:"title"`
	Narration    string           `yaml:"narration,omitempty"`
	SoundEffects []EffectEntry    `yaml:"sound_effects,omitempty"`
}

// EffectEntry names a sound effect file inside the audio archive.
type EffectEntry struct {
	Description string `yaml:"description"`
	File        string `yaml:"file"`
}

func seconds(d time.Duration) *float64 {
	s := d.Seconds()
	return &s
}

// NewEntry records the timing of a section.
func NewEntry(s timer.Section) Entry {
	return Entry{
		Title:     s.Title,
		StartTime: seconds(s.StartTime),
		EndTime:   seconds(s.EndTime),
		Duration:  seconds(s.Duration),
	}
}

// TimerSections converts the manifest back into timer sections. A section without
// a start, end or duration is rejected rather than guessed.
func (m *Manifest) TimerSections() ([]timer.Section, error) {
	sections := make([]timer.Section, 0, len(m.Sections))

	for i, e := range m.Sections {
		fields := []struct {
			v    *float64
			name string
		}{
			{e.StartTime, "start_time"},
			{e.EndTime, "end_time"},
			{e.Duration, "duration"},
		}

		for _, f := range fields {
			if f.v == nil {
				return nil, ErrMissingTiming.Fmt(i+1, f.name)
			}
		}

		sections = append(sections, timer.Section{
			Title:     e.Title,
			StartTime: timeutil.FromSeconds(*e.StartTime),
			EndTime:   timeutil.FromSeconds(*e.EndTime),
			Duration:  timeutil.FromSeconds(*e.Duration),
		})
	}

	return sections, nil
}

// Marshal encodes the manifest as YAML.
func (m *Manifest) Marshal() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(m); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// ReadManifest loads a manifest written by a previous export.
func ReadManifest(path string) (*Manifest, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, ErrReadManifest.Fmt(path).Wrap(err)
	}

	var m Manifest

	if err := yaml.Unmarshal(b, &m); err != nil {
		return nil, ErrReadManifest.Fmt(path).Wrap(err)
	}

	return &m, nil
}
