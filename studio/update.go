package studio

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tourstudio/tourstudio/internal/timeutil"
	"github.com/tourstudio/tourstudio/production"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handled, cmd := m.handleResult(msg); handled {
		return m, cmd
	}

	switch msg := msg.(type) {
	case tickMsg:
		if msg.id != m.tickID || !m.session.Engine.Running() {
			return m, nil
		}

		return m, m.tick()

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width

		if m.form != nil {
			m.form = m.form.WithWidth(msg.Width)
		}

		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, m.quit()
		}
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modeRename:
		return m.updateRename(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		return m, m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) quit() tea.Cmd {
	m.Close()

	return tea.Quit
}

func (m *Model) updateRename(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, m.keys.confirm):
			m.mode = modeMain
			m.input.Blur()

			if err := m.session.Engine.Rename(m.selected, m.input.Value()); err != nil {
				m.setError(err)
				return m, nil
			}

			m.setStatus("Section %d renamed", m.selected+1)

			return m, nil

		case key.Matches(k, m.keys.cancel):
			m.mode = modeMain
			m.input.Blur()

			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

//nolint:gocyclo // one case per key binding
func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	e := m.session.Engine

	switch {
	case key.Matches(msg, m.keys.quit):
		return m.quit()

	case key.Matches(msg, m.keys.help):
		m.help.ShowAll = !m.help.ShowAll

	case key.Matches(msg, m.keys.toggle):
		if err := e.Toggle(); err != nil {
			m.setError(err)
			return nil
		}

		if !e.Running() {
			m.setStatus("Paused at %s", timeutil.FormatClock(e.Elapsed()))
			return nil
		}

		m.setStatus("Recording")
		m.tickID++

		return m.tick()

	case key.Matches(msg, m.keys.lap):
		s, err := e.StopLap()
		if err != nil {
			m.setError(err)
			return nil
		}

		m.selected = e.Len() - 1
		m.setStatus(
			"%s closed (%s)",
			s.Title,
			timeutil.FormatClock(s.Duration),
		)

	case key.Matches(msg, m.keys.up):
		if m.selected > 0 {
			m.selected--
		}

	case key.Matches(msg, m.keys.down):
		if m.selected < e.Len()-1 {
			m.selected++
		}

	case key.Matches(msg, m.keys.rename):
		s, err := e.Section(m.selected)
		if err != nil {
			m.setError(err)
			return nil
		}

		m.mode = modeRename
		m.input.SetValue(s.Title)
		m.input.CursorEnd()

		return m.input.Focus()

	case key.Matches(msg, m.keys.remove):
		return m.deleteSelected()

	case key.Matches(msg, m.keys.reset):
		if err := m.session.checkIdle(); err != nil {
			m.setError(err)
			return nil
		}

		return m.resetForm()

	case key.Matches(msg, m.keys.overview):
		m.overview = !m.overview

	case key.Matches(msg, m.keys.export):
		return m.exportForm()

	default:
		return m.handleProductionKey(msg)
	}

	return nil
}

func (m *Model) deleteSelected() tea.Cmd {
	s, err := m.session.Engine.Section(m.selected)
	if err != nil {
		m.setError(err)
		return nil
	}

	if err := m.session.Delete(m.selected); err != nil {
		m.setError(err)
		return nil
	}

	if m.selected >= m.session.Engine.Len() && m.selected > 0 {
		m.selected--
	}

	m.setStatus("%s deleted", displayTitle(s.Title))

	return nil
}

// handleProductionKey handles the keys that call the collaborators. Their
// bindings are disabled in timer-only mode.
func (m *Model) handleProductionKey(msg tea.KeyMsg) tea.Cmd {
	p := m.session.Producer

	switch {
	case key.Matches(msg, m.keys.music):
		if !p.CanWriteScripts() {
			m.setError(production.ErrNoScriptWriter)
			return nil
		}

		if m.session.Engine.Len() == 0 {
			m.setError(production.ErrNoSections)
			return nil
		}

		return m.musicForm()

	case key.Matches(msg, m.keys.voice):
		if !p.CanNarrate() {
			m.setError(production.ErrNoSynthesizer)
			return nil
		}

		if err := m.session.checkIdle(); err != nil {
			m.setError(err)
			return nil
		}

		m.session.begin()
		m.setStatus("Fetching voices…")

		return m.voicesCmd()

	case key.Matches(msg, m.keys.all):
		if !p.CanNarrate() {
			m.setError(production.ErrNoSynthesizer)
			return nil
		}

		if p.Voice() == "" {
			m.setError(production.ErrNoVoice)
			return nil
		}

		m.session.begin()
		m.setStatus("Narrating every scripted section…")

		return m.narrateAllCmd(m.session.Engine.Len())
	}

	s, err := m.session.Engine.Section(m.selected)
	if err != nil {
		if isProductionKey(msg, m.keys) {
			m.setError(production.ErrNoSections)
		}

		return nil
	}

	switch {
	case key.Matches(msg, m.keys.script):
		if !p.CanWriteScripts() {
			m.setError(production.ErrNoScriptWriter)
			return nil
		}

		return m.scriptForm(m.selected, s)

	case key.Matches(msg, m.keys.edit):
		script, ok, err := p.Script(m.selected)
		if err != nil {
			m.setError(err)
			return nil
		}

		if !ok {
			m.setError(production.ErrNoScript.Fmt(m.selected + 1))
			return nil
		}

		return m.editForm(m.selected, script)

	case key.Matches(msg, m.keys.narrate):
		if !p.CanNarrate() {
			m.setError(production.ErrNoSynthesizer)
			return nil
		}

		if p.Voice() == "" {
			m.setError(production.ErrNoVoice)
			return nil
		}

		m.session.begin()
		m.setStatus("Narrating section %d…", m.selected+1)

		return m.narrateCmd(m.selected)

	case key.Matches(msg, m.keys.play):
		return m.togglePlayback()

	case key.Matches(msg, m.keys.save):
		audio, ok, err := p.Narration(m.selected)
		if err != nil {
			m.setError(err)
			return nil
		}

		if !ok {
			m.setError(errNoNarration.Fmt(m.selected + 1))
			return nil
		}

		return m.saveCmd(m.selected, s.Title, audio)

	case key.Matches(msg, m.keys.sfx):
		if !p.CanDesignSound() {
			m.setError(production.ErrNoSoundDesigner)
			return nil
		}

		return m.sfxForm(m.selected)
	}

	return nil
}

func (m *Model) togglePlayback() tea.Cmd {
	if m.player == nil {
		m.setError(errNoPlayer)
		return nil
	}

	if m.playing {
		m.player.Stop()
		return nil
	}

	audio, ok, err := m.session.Producer.Narration(m.selected)
	if err != nil {
		m.setError(err)
		return nil
	}

	if !ok {
		m.setError(errNoNarration.Fmt(m.selected + 1))
		return nil
	}

	m.playing = true
	m.setStatus("Playing section %d", m.selected+1)

	return m.playCmd(audio)
}

func isProductionKey(msg tea.KeyMsg, k keymap) bool {
	for _, b := range k.production() {
		if key.Matches(msg, *b) {
			return true
		}
	}

	return false
}

// handleResult applies the result of a collaborator call.
func (m *Model) handleResult(msg tea.Msg) (bool, tea.Cmd) {
	switch msg := msg.(type) {
	case transcriptMsg:
		m.session.end()

		if msg.err != nil {
			m.setError(msg.err)
			return true, nil
		}

		m.transcript = msg.text
		m.setStatus("Transcribed %d recording(s)", msg.files)

	case scriptMsg:
		m.session.end()

		if msg.err != nil {
			m.setError(msg.err)
			return true, nil
		}

		m.setStatus(
			"Script ready for section %d (%d words)",
			msg.idx+1,
			msg.script.EstimatedWordCount,
		)

	case narrationMsg:
		m.session.end()

		if msg.err != nil {
			m.setError(msg.err)
			return true, nil
		}

		m.setStatus("Narration ready for section %d", msg.idx+1)

	case narrateAllMsg:
		m.session.end()
		m.session.Notify("Narration complete", narrated(msg.done))

		if msg.err != nil {
			m.setError(msg.err)
			return true, nil
		}

		m.setStatus("%s", narrated(msg.done))

	case sfxMsg:
		m.session.end()

		if msg.err != nil {
			m.setError(msg.err)
			return true, nil
		}

		m.setStatus("Sound effect %d added to section %d", msg.n, msg.idx+1)

	case musicMsg:
		m.session.end()

		if msg.err != nil {
			m.setError(msg.err)
			return true, nil
		}

		m.music = msg.prompt
		m.setStatus("Music prompt ready")

	case voicesMsg:
		m.session.end()

		if msg.err != nil {
			m.setError(msg.err)
			return true, nil
		}

		if len(msg.voices) == 0 {
			m.setError(errNoVoices)
			return true, nil
		}

		if m.mode != modeMain {
			m.setStatus("%d voices available: press v to choose one", len(msg.voices))
			return true, nil
		}

		return true, m.voiceForm(msg.voices)

	case exportMsg:
		m.session.end()

		if msg.err != nil {
			m.setError(msg.err)
			return true, nil
		}

		m.setStatus("Exported %d file(s) to %s", len(msg.res.Paths()), m.session.Exporter.Dir)

	case saveMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return true, nil
		}

		m.setStatus("Saved %s", msg.path)

	case playMsg:
		m.playing = false

		if msg.err != nil {
			m.setError(msg.err)
			return true, nil
		}

		m.setStatus("Playback finished")

	default:
		return false, nil
	}

	return true, nil
}

func narrated(n int) string {
	if n == 1 {
		return "1 section narrated"
	}

	return fmt.Sprintf("%d sections narrated", n)
}
