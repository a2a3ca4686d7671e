package studio

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tourstudio/tourstudio/internal/provider"
	"github.com/tourstudio/tourstudio/internal/timeutil"
	"github.com/tourstudio/tourstudio/production"
	"github.com/tourstudio/tourstudio/timeline"
	"github.com/tourstudio/tourstudio/timer"
)

// openForm embeds form in the studio. submit runs when the form completes.
func (m *Model) openForm(form *huh.Form, submit func() tea.Cmd) tea.Cmd {
	m.form = form.WithShowHelp(true)
	m.onSubmit = submit
	m.mode = modeForm

	if m.width > 0 {
		m.form = m.form.WithWidth(m.width)
	}

	return m.form.Init()
}

func (m *Model) closeForm() {
	m.form = nil
	m.onSubmit = nil
	m.mode = modeMain
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && key.Matches(k, m.keys.cancel) {
		m.closeForm()
		m.setStatus("Cancelled")

		return m, nil
	}

	model, cmd := m.form.Update(msg)

	f, ok := model.(*huh.Form)
	if !ok {
		return m, cmd
	}

	m.form = f

	switch f.State {
	case huh.StateCompleted:
		submit := m.onSubmit
		m.closeForm()

		return m, submit()
	case huh.StateAborted:
		m.closeForm()
		m.setStatus("Cancelled")

		return m, nil
	}

	return m, cmd
}

func (m *Model) resetForm() tea.Cmd {
	m.formConfirm = false

	title := fmt.Sprintf(
		"Discard the timer and all %d section(s)?",
		m.session.Engine.Len(),
	)

	form := huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Description("Generated scripts and audio are discarded too.").
			Affirmative("Reset").
			Negative("Keep").
			Value(&m.formConfirm),
	))

	return m.openForm(form, func() tea.Cmd {
		if !m.formConfirm {
			return nil
		}

		if err := m.session.Reset(); err != nil {
			m.setError(err)
			return nil
		}

		m.selected = 0
		m.music = ""
		m.setStatus("Timer reset")

		return nil
	})
}

func (m *Model) exportForm() tea.Cmd {
	m.formFPS = int(m.fps)

	options := make([]huh.Option[int], 0, len(timeline.FrameRates))
	for _, r := range timeline.FrameRates {
		options = append(options, huh.NewOption(r.String(), int(r)))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[int]().
			Title("Timeline frame rate").
			Description(fmt.Sprintf(
				"Exporting %d section(s) to %s",
				m.session.Engine.Len(),
				m.session.Exporter.Dir,
			)).
			Options(options...).
			Value(&m.formFPS),
	))

	return m.openForm(form, func() tea.Cmd {
		fps, err := timeline.ParseFrameRate(m.formFPS)
		if err != nil {
			m.setError(err)
			return nil
		}

		m.fps = fps
		m.session.begin()
		m.setStatus("Exporting at %s…", fps)

		return m.exportCmd(m.session.Engine.Sections(), fps)
	})
}

func (m *Model) scriptForm(idx int, s timer.Section) tea.Cmd {
	m.formText = ""

	form := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title("Instructions for "+displayTitle(s.Title)).
			Description(fmt.Sprintf(
				"%s long, about %d words. Leave empty for the default style.",
				timeutil.FormatClock(s.Duration),
				provider.ApproxWords(s.Duration),
			)).
			Placeholder(provider.DefaultInstructions).
			Value(&m.formText),
	))

	return m.openForm(form, func() tea.Cmd {
		m.session.begin()
		m.setStatus("Writing a script for section %d…", idx+1)

		return m.scriptCmd(idx, s, m.formText)
	})
}

func (m *Model) editForm(idx int, script provider.Script) tea.Cmd {
	m.formText = script.Text

	form := huh.NewForm(huh.NewGroup(
		huh.NewText().
			Title(fmt.Sprintf("Script for section %d", idx+1)).
			CharLimit(0).
			Lines(10).
			Validate(func(s string) error {
				if strings.TrimSpace(s) == "" {
					return production.ErrEmptyScript
				}

				return nil
			}).
			Value(&m.formText),
	))

	return m.openForm(form, func() tea.Cmd {
		if err := m.session.Producer.UpdateScript(idx, m.formText); err != nil {
			m.setError(err)
			return nil
		}

		m.setStatus("Script for section %d updated", idx+1)

		return nil
	})
}

func (m *Model) sfxForm(idx int) tea.Cmd {
	m.formText = ""

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title(fmt.Sprintf("Sound effect for section %d", idx+1)).
			Placeholder("heavy wooden door creaking open").
			Validate(notBlank("describe the sound")).
			Value(&m.formText),
	))

	return m.openForm(form, func() tea.Cmd {
		m.session.begin()
		m.setStatus("Generating sound effect for section %d…", idx+1)

		return m.sfxCmd(idx, strings.TrimSpace(m.formText))
	})
}

func (m *Model) musicForm() tea.Cmd {
	m.formText = ""

	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Background music mood").
			Placeholder("calm, wondrous, slowly building").
			Value(&m.formText),
	))

	return m.openForm(form, func() tea.Cmd {
		m.session.begin()
		m.setStatus("Composing a music prompt…")

		return m.musicCmd(m.session.Engine.Sections(), m.formText)
	})
}

func (m *Model) voiceForm(voices []provider.Voice) tea.Cmd {
	m.formVoice = m.session.Producer.Voice()

	options := make([]huh.Option[string], 0, len(voices))
	for _, v := range voices {
		label := v.Name
		if v.Category != "" {
			label += " (" + v.Category + ")"
		}

		options = append(options, huh.NewOption(label, v.ID))
	}

	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Narration voice").
			Options(options...).
			Height(12).
			Value(&m.formVoice),
	))

	return m.openForm(form, func() tea.Cmd {
		m.session.Producer.SetVoice(m.formVoice)
		m.setStatus("Voice set to %s", voiceName(voices, m.formVoice))

		return nil
	})
}

func notBlank(what string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s", what)
		}

		return nil
	}
}

func voiceName(voices []provider.Voice, id string) string {
	for _, v := range voices {
		if v.ID == id {
			return v.Name
		}
	}

	return id
}
