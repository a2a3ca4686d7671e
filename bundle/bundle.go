// Package bundle packages a finished tour: the xmeml timeline, an archive of
// every narration and sound effect, and a manifest describing both.
package bundle

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tourstudio/tourstudio/internal/osutil"
	"github.com/tourstudio/tourstudio/internal/provider"
	"github.com/tourstudio/tourstudio/internal/timeutil"
	"github.com/tourstudio/tourstudio/store"
	"github.com/tourstudio/tourstudio/timeline"
	"github.com/tourstudio/tourstudio/timer"
)

const (
	// AudioArchiveName is the archive holding every generated audio file.
	AudioArchiveName = "audio_tour_all_sections.zip"
	// AudioMIMEType of each narration file.
	AudioMIMEType = "audio/mp3"

	defaultTitle = "Audio Tour"
)

var unsafeName = strings.NewReplacer(" ", "_", "/", "_", "\\", "_")

// AudioFileName is the file name of the narration of section idx.
func AudioFileName(idx int, title string) string {
	return fmt.Sprintf("section_%d_%s.mp3", idx+1, unsafeName.Replace(title))
}

// EffectFileName is the archive path of the nth (1-based) effect of section
// idx.
func EffectFileName(idx, n int) string {
	return fmt.Sprintf("sfx/section_%d_%d.mp3", idx+1, n)
}

// Artifacts is what has been produced for the sections of a tour.
type Artifacts interface {
	Script(idx int) (provider.Script, bool, error)
	Narration(idx int) ([]byte, bool, error)
	SoundEffects(idx int) ([]store.SoundEffect, error)
	Transcript() (string, error)
	StoredMusicPrompt() (string, error)
}

// Result lists the files written by an export.
type Result struct {
	Timeline string
	Audio    string
	Manifest string
	Files    int
}

// Paths returns the written files in the order they were created.
func (r Result) Paths() []string {
	paths := []string{r.Timeline}

	if r.Audio != "" {
		paths = append(paths, r.Audio)
	}

	return append(paths, r.Manifest)
}

// Exporter writes bundles into Dir.
type Exporter struct {
	now   func() time.Time
	Dir   string
	Title string
	FPS   timeline.FrameRate
}

// NewExporter returns an exporter writing to dir at fps.
func NewExporter(dir string, fps timeline.FrameRate) *Exporter {
	return &Exporter{
		Dir:   dir,
		FPS:   fps,
		Title: defaultTitle,
		now:   time.Now,
	}
}

// Export renders everything in memory first and only then writes files, so
// a malformed section leaves nothing behind.
func (e *Exporter) Export(sections []timer.Section, art Artifacts) (Result, error) {
	var res Result

	doc, err := timeline.Marshal(sections, e.FPS)
	if err != nil {
		return res, err
	}

	m := &Manifest{
		Title:      e.Title,
		FPS:        int(e.FPS),
		ExportedAt: e.now().UTC().Truncate(time.Second),
	}

	if m.Transcript, err = art.Transcript(); err != nil {
		return res, err
	}

	if m.MusicPrompt, err = art.StoredMusicPrompt(); err != nil {
		return res, err
	}

	var archive bytes.Buffer

	zw := zip.NewWriter(&archive)

	for i, s := range sections {
		entry := NewEntry(s)

		script, ok, err := art.Script(i)
		if err != nil {
			return res, err
		}

		if ok {
			entry.Script = &script
		}

		audio, ok, err := art.Narration(i)
		if err != nil {
			return res, err
		}

		if ok {
			entry.Narration = AudioFileName(i, s.Title)

			if err := addFile(zw, entry.Narration, audio); err != nil {
				return res, err
			}

			res.Files++
		}

		effects, err := art.SoundEffects(i)
		if err != nil {
			return res, err
		}

		for n, sfx := range effects {
			name := EffectFileName(i, n+1)

			if err := addFile(zw, name, sfx.Audio); err != nil {
				return res, err
			}

			entry.SoundEffects = append(entry.SoundEffects, EffectEntry{
				Description: sfx.Description,
				File:        name,
			})

			res.Files++
		}

		m.Sections = append(m.Sections, entry)
	}

	if err := zw.Close(); err != nil {
		return res, err
	}

	manifest, err := m.Marshal()
	if err != nil {
		return res, err
	}

	if err := os.MkdirAll(e.Dir, osutil.DirPermission); err != nil {
		return res, err
	}

	res.Timeline = filepath.Join(e.Dir, timeline.FileName)

	if err := os.WriteFile(res.Timeline, doc, osutil.FilePermission); err != nil {
		return res, err
	}

	if res.Files > 0 {
		res.Audio = filepath.Join(e.Dir, AudioArchiveName)

		if err := os.WriteFile(res.Audio, archive.Bytes(), osutil.FilePermission); err != nil {
			return res, err
		}
	}

	res.Manifest = filepath.Join(e.Dir, ManifestFileName)

	err = os.WriteFile(res.Manifest, manifest, osutil.FilePermission)

	return res, err
}

// SaveNarration writes the narration of one section next to the bundle.
func (e *Exporter) SaveNarration(idx int, title string, audio []byte) (string, error) {
	if err := os.MkdirAll(e.Dir, osutil.DirPermission); err != nil {
		return "", err
	}

	path := filepath.Join(e.Dir, AudioFileName(idx, title))

	return path, os.WriteFile(path, audio, osutil.FilePermission)
}

func addFile(zw *zip.Writer, name string, data []byte) error {
	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Store,
	})
	if err != nil {
		return err
	}

	_, err = w.Write(data)

	return err
}

// Row is one line of the timeline overview.
type Row struct {
	Title      string
	Start      string
	End        string
	Duration   string
	StartFrame int64
	EndFrame   int64
	Number     int
}

// Overview previews the timeline at fps with the same frame conversion the
// export uses.
func Overview(sections []timer.Section, fps timeline.FrameRate) []Row {
	rows := make([]Row, 0, len(sections))

	for i, s := range sections {
		rows = append(rows, Row{
			Number:     i + 1,
			Title:      s.Title,
			Start:      timeutil.FormatClock(s.StartTime),
			End:        timeutil.FormatClock(s.EndTime),
			Duration:   timeutil.FormatClock(s.Duration),
			StartFrame: timeutil.Frames(s.StartTime, int(fps)),
			EndFrame:   timeutil.Frames(s.EndTime, int(fps)),
		})
	}

	return rows
}
