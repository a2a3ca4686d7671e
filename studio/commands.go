package studio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tourstudio/tourstudio/bundle"
	"github.com/tourstudio/tourstudio/internal/provider"
	"github.com/tourstudio/tourstudio/timeline"
	"github.com/tourstudio/tourstudio/timer"
)

const tickInterval = 100 * time.Millisecond

type (
	// tickMsg refreshes the clock display. Ticks from an earlier run of the
	// stopwatch carry a stale id and are dropped.
	tickMsg struct {
		id int
	}

	transcriptMsg struct {
		err   error
		text  string
		files int
	}

	scriptMsg struct {
		err    error
		script provider.Script
		idx    int
	}

	narrationMsg struct {
		err   error
		audio []byte
		idx   int
	}

	narrateAllMsg struct {
		err  error
		done int
	}

	sfxMsg struct {
		err         error
		description string
		idx         int
		n           int
	}

	musicMsg struct {
		err    error
		prompt string
	}

	voicesMsg struct {
		err    error
		voices []provider.Voice
	}

	exportMsg struct {
		err error
		res bundle.Result
	}

	saveMsg struct {
		err  error
		path string
	}

	playMsg struct {
		err error
	}
)

func (m *Model) tick() tea.Cmd {
	id := m.tickID

	return tea.Tick(tickInterval, func(time.Time) tea.Msg {
		return tickMsg{id: id}
	})
}

func (m *Model) transcribeCmd(paths []string) tea.Cmd {
	ctx, p := m.ctx, m.session.Producer

	return func() tea.Msg {
		var text string

		for i, path := range paths {
			data, err := os.ReadFile(path)
			if err != nil {
				return transcriptMsg{err: err, files: i}
			}

			text, err = p.Transcribe(ctx, provider.Audio{
				Name: filepath.Base(path),
				Data: data,
			})
			if err != nil {
				return transcriptMsg{err: err, files: i}
			}
		}

		return transcriptMsg{text: text, files: len(paths)}
	}
}

// scriptCmd receives a copy of the section so later edits in the studio do not
// affect the request.
func (m *Model) scriptCmd(
	idx int,
	section timer.Section,
	instructions string,
) tea.Cmd {
	ctx, p := m.ctx, m.session.Producer

	return func() tea.Msg {
		s, err := p.GenerateScript(ctx, idx, section, instructions)
		return scriptMsg{idx: idx, script: s, err: err}
	}
}

func (m *Model) narrateCmd(idx int) tea.Cmd {
	ctx, p := m.ctx, m.session.Producer

	return func() tea.Msg {
		audio, err := p.Narrate(ctx, idx)
		return narrationMsg{idx: idx, audio: audio, err: err}
	}
}

// narrateAllCmd narrates every section that has a script, one at a time.
func (m *Model) narrateAllCmd(n int) tea.Cmd {
	ctx, p := m.ctx, m.session.Producer

	return func() tea.Msg {
		var (
			done int
			errs []error
		)

		for idx := range n {
			_, ok, err := p.Script(idx)
			if err != nil {
				return narrateAllMsg{done: done, err: err}
			}

			if !ok {
				continue
			}

			if _, err := p.Narrate(ctx, idx); err != nil {
				errs = append(errs, err)
				continue
			}

			done++
		}

		return narrateAllMsg{done: done, err: errors.Join(errs...)}
	}
}

func (m *Model) sfxCmd(idx int, description string) tea.Cmd {
	ctx, p := m.ctx, m.session.Producer

	return func() tea.Msg {
		n, err := p.SoundEffect(ctx, idx, description)
		return sfxMsg{idx: idx, n: n, description: description, err: err}
	}
}

func (m *Model) musicCmd(sections []timer.Section, mood string) tea.Cmd {
	ctx, p := m.ctx, m.session.Producer

	return func() tea.Msg {
		prompt, err := p.MusicPrompt(ctx, sections, mood)
		return musicMsg{prompt: prompt, err: err}
	}
}

func (m *Model) voicesCmd() tea.Cmd {
	ctx, p := m.ctx, m.session.Producer

	return func() tea.Msg {
		voices, err := p.Voices(ctx)
		return voicesMsg{voices: voices, err: err}
	}
}

func (m *Model) exportCmd(sections []timer.Section, fps timeline.FrameRate) tea.Cmd {
	ctx, s := m.ctx, m.session

	return func() tea.Msg {
		res, err := s.Export(ctx, sections, fps)
		return exportMsg{res: res, err: err}
	}
}

func (m *Model) saveCmd(idx int, title string, audio []byte) tea.Cmd {
	e := m.session.Exporter

	return func() tea.Msg {
		path, err := e.SaveNarration(idx, title, audio)
		if err != nil {
			err = fmt.Errorf("saving narration of section %d: %w", idx+1, err)
		}

		return saveMsg{path: path, err: err}
	}
}

func (m *Model) playCmd(audio []byte) tea.Cmd {
	ctx, player := m.ctx, m.player

	return func() tea.Msg {
		return playMsg{err: player.Play(ctx, audio)}
	}
}
