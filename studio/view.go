package studio

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/tourstudio/tourstudio/bundle"
	"github.com/tourstudio/tourstudio/internal/provider"
	"github.com/tourstudio/tourstudio/internal/timeutil"
)

const untitled = "(untitled)"

type styles struct {
	Base      lipgloss.Style
	Clock     lipgloss.Style
	Running   lipgloss.Style
	Paused    lipgloss.Style
	Header    lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Hint      lipgloss.Style
	Panel     lipgloss.Style
	Status    lipgloss.Style
	StatusErr lipgloss.Style
}

func newStyles(dark bool) styles {
	accent, muted, text := lipgloss.Color("170"), lipgloss.Color("241"), lipgloss.Color("252")
	if !dark {
		accent, muted, text = lipgloss.Color("127"), lipgloss.Color("245"), lipgloss.Color("235")
	}

	return styles{
		Base:     lipgloss.NewStyle().Padding(1, 2),
		Clock:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("69")),
		Running:  lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")),
		Paused:   lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Header:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86")),
		Item:     lipgloss.NewStyle().Foreground(text).Padding(0, 1),
		Selected: lipgloss.NewStyle().Foreground(accent).Bold(true).Padding(0, 1),
		Hint:     lipgloss.NewStyle().Foreground(muted),
		Panel: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		Status:    lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		StatusErr: lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
	}
}

func displayTitle(title string) string {
	if strings.TrimSpace(title) == "" {
		return untitled
	}

	return title
}

func (m *Model) View() string {
	var s strings.Builder

	s.WriteString(m.clockView())

	switch m.mode {
	case modeForm:
		s.WriteString("\n\n" + m.form.View())
		return m.styles.Base.Render(s.String())
	case modeRename:
		s.WriteString("\n\n" + m.input.View())
		s.WriteString("\n" + m.help.ShortHelpView([]key.Binding{
			m.keys.confirm,
			m.keys.cancel,
		}))

		return m.styles.Base.Render(s.String())
	}

	s.WriteString("\n\n")

	if m.overview {
		s.WriteString(m.overviewView())
	} else {
		s.WriteString(m.sectionsView())
	}

	if m.transcript != "" && !m.timerOnly {
		s.WriteString("\n\n" + m.panel("Transcript", m.transcript, 6))
	}

	if m.music != "" && !m.timerOnly {
		s.WriteString("\n\n" + m.panel("Music prompt", m.music, 6))
	}

	if m.status != "" {
		style := m.styles.Status
		if m.statusErr {
			style = m.styles.StatusErr
		}

		s.WriteString("\n\n" + style.Render(m.status))
	}

	if m.session.Busy() {
		s.WriteString(m.styles.Hint.Render(
			fmt.Sprintf("  [%d pending]", m.session.pending),
		))
	}

	s.WriteString("\n\n" + m.help.View(m.keys))

	return m.styles.Base.Render(s.String())
}

func (m *Model) clockView() string {
	e := m.session.Engine

	state := m.styles.Paused.Render("[Paused]")
	clock := m.styles.Clock

	if e.Running() {
		state = m.styles.Running.Render("● REC")
		clock = m.styles.Running
	}

	lap := e.Elapsed() - e.CurrentLapStart()

	return clock.Render(timeutil.FormatClock(e.Elapsed())) + "  " + state +
		"\n" + m.styles.Hint.Render(fmt.Sprintf(
		"Section %d: %s",
		e.Len()+1,
		timeutil.FormatClock(lap),
	))
}

func (m *Model) sectionsView() string {
	sections := m.session.Engine.Sections()
	if len(sections) == 0 {
		return m.styles.Hint.Render("No sections yet. Start the timer and press l to close a lap.")
	}

	var s strings.Builder

	s.WriteString(m.styles.Header.Render("Sections") + "\n")

	for i, sec := range sections {
		icons := "⏱️"

		if !m.timerOnly {
			st, err := m.session.Producer.Status(i)
			if err == nil {
				icons = st.Icons()
				if st.SoundEffects > 0 {
					icons += fmt.Sprintf(" 🔊%d", st.SoundEffects)
				}
			}
		}

		line := fmt.Sprintf(
			"%2d. %s  %s  %s",
			i+1,
			icons,
			displayTitle(sec.Title),
			timeutil.FormatClock(sec.Duration),
		)

		if !m.timerOnly {
			line += fmt.Sprintf(" ~%d words", provider.ApproxWords(sec.Duration))
		}

		style := m.styles.Item
		if i == m.selected {
			style = m.styles.Selected
			line = "> " + line
		} else {
			line = "  " + line
		}

		s.WriteString(style.Render(line) + "\n")
	}

	return strings.TrimRight(s.String(), "\n")
}

func (m *Model) overviewView() string {
	rows := bundle.Overview(m.session.Engine.Sections(), m.fps)
	if len(rows) == 0 {
		return m.styles.Hint.Render("Nothing to preview yet.")
	}

	var s strings.Builder

	s.WriteString(m.styles.Header.Render("Timeline at "+m.fps.String()) + "\n")
	s.WriteString(m.styles.Hint.Render(fmt.Sprintf(
		"%-3s %-24s %-13s %-13s %8s %8s",
		"#", "Title", "Start", "End", "In", "Out",
	)) + "\n")

	for _, r := range rows {
		s.WriteString(fmt.Sprintf(
			"%-3d %-24s %-13s %-13s %8d %8d\n",
			r.Number,
			truncate(displayTitle(r.Title), 24),
			r.Start,
			r.End,
			r.StartFrame,
			r.EndFrame,
		))
	}

	return strings.TrimRight(s.String(), "\n")
}

func (m *Model) panel(title, body string, maxLines int) string {
	lines := strings.Split(strings.TrimSpace(body), "\n")
	if len(lines) > maxLines {
		lines = append(lines[:maxLines], "…")
	}

	style := m.styles.Panel
	if m.width > 8 {
		style = style.Width(m.width - 8)
	}

	return style.Render(m.styles.Header.Render(title) + "\n" + strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}

	return string(r[:n-1]) + "…"
}
