package studio

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/tourstudio/tourstudio/timeline"
)

// Player plays narration previews.
type Player interface {
	Play(ctx context.Context, audio []byte) error
	Stop()
}

type mode int

const (
	modeMain mode = iota
	modeRename
	modeForm
)

// Model is the bubbletea model of the studio. Update is the only place that
// mutates the session.
type Model struct {
	ctx        context.Context
	session    *Session
	player     Player
	form       *huh.Form
	onSubmit   func() tea.Cmd
	cancel     context.CancelFunc
	input      textinput.Model
	help       help.Model
	styles     styles
	keys       keymap
	status     string
	transcript string
	music      string
	recordings []string
	// values bound to the open form
	formText    string
	formVoice   string
	formFPS     int
	fps         timeline.FrameRate
	selected    int
	tickID      int
	width       int
	mode        mode
	formConfirm bool
	statusErr   bool
	overview    bool
	timerOnly   bool
	playing     bool
}

type Option func(*Model)

// WithTimerOnly hides every production feature and keeps the stopwatch,
// section editing and export.
func WithTimerOnly(v bool) Option {
	return func(m *Model) {
		m.timerOnly = v
	}
}

// WithPlayer enables narration previews.
func WithPlayer(p Player) Option {
	return func(m *Model) {
		m.player = p
	}
}

// WithFrameRate sets the frame rate preselected for export.
func WithFrameRate(fps timeline.FrameRate) Option {
	return func(m *Model) {
		m.fps = fps
	}
}

// WithDarkTheme selects the colour palette.
func WithDarkTheme(dark bool) Option {
	return func(m *Model) {
		m.styles = newStyles(dark)
	}
}

// WithRecordings transcribes the given recordings when the studio starts.
func WithRecordings(paths []string) Option {
	return func(m *Model) {
		m.recordings = paths
	}
}

// New returns the studio model for session.
func New(session *Session, opts ...Option) *Model {
	ctx, cancel := context.WithCancel(context.Background())

	m := &Model{
		ctx:     ctx,
		cancel:  cancel,
		session: session,
		help:    help.New(),
		input:   textinput.New(),
		styles:  newStyles(true),
		fps:     timeline.DefaultFrameRate,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.keys = newKeymap(m.timerOnly)
	m.input.Prompt = "Title: "
	m.input.CharLimit = 120

	return m
}

func (m *Model) Init() tea.Cmd {
	if len(m.recordings) == 0 || m.timerOnly {
		return nil
	}

	m.session.begin()
	m.setStatus("Transcribing %d recording(s)…", len(m.recordings))

	return m.transcribeCmd(m.recordings)
}

// Close cancels outstanding requests and stops playback.
func (m *Model) Close() {
	m.cancel()

	if m.player != nil {
		m.player.Stop()
	}
}

func (m *Model) setStatus(format string, args ...any) {
	m.status = fmt.Sprintf(format, args...)
	m.statusErr = false
}

func (m *Model) setError(err error) {
	slog.Error("studio action failed", slog.Any("error", err))

	m.status = err.Error()
	m.statusErr = true
}
