// Package studio is the interactive audio tour studio: a stopwatch for
// timing tour sections and the production steps that turn each section into
// narrated audio.
package studio

import (
	"context"
	"log/slog"
	"os/exec"

	"github.com/gen2brain/beeep"
	"github.com/kballard/go-shellquote"

	"github.com/tourstudio/tourstudio/bundle"
	"github.com/tourstudio/tourstudio/production"
	"github.com/tourstudio/tourstudio/timeline"
	"github.com/tourstudio/tourstudio/timer"
)

// Notifier shows desktop notifications.
type Notifier func(title, message string) error

// Runner executes the post-export command in dir.
type Runner func(ctx context.Context, dir string, args []string) error

func desktopNotify(title, message string) error {
	return beeep.Notify(title, message, "")
}

func runCommand(ctx context.Context, dir string, args []string) error {
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)
	cmd.Dir = dir

	return cmd.Run()
}

// Session is the state of one studio run: the stopwatch, the sections it has
// produced and everything generated for them.
type Session struct {
	Engine   *timer.Engine
	Producer *production.Producer
	Exporter *bundle.Exporter
	notify   Notifier
	run      Runner
	postCmd  string
	pending  int
	notifyOn bool
}

type SessionOption func(*Session)

// WithPostCmd runs cmd in the export directory after every export.
func WithPostCmd(cmd string) SessionOption {
	return func(s *Session) {
		s.postCmd = cmd
	}
}

// WithNotifications enables desktop notifications for long running work.
func WithNotifications(enabled bool) SessionOption {
	return func(s *Session) {
		s.notifyOn = enabled
	}
}

// WithNotifier replaces the desktop notifier.
func WithNotifier(n Notifier) SessionOption {
	return func(s *Session) {
		s.notify = n
	}
}

// WithRunner replaces the command runner used for the post-export command.
func WithRunner(r Runner) SessionOption {
	return func(s *Session) {
		s.run = r
	}
}

// NewSession assembles a session.
func NewSession(
	engine *timer.Engine,
	producer *production.Producer,
	exporter *bundle.Exporter,
	opts ...SessionOption,
) *Session {
	s := &Session{
		Engine:   engine,
		Producer: producer,
		Exporter: exporter,
		notify:   desktopNotify,
		run:      runCommand,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Busy reports whether collaborator requests are still in flight. Section
// indexes must not shift while they are.
func (s *Session) Busy() bool {
	return s.pending > 0
}

func (s *Session) begin() {
	s.pending++
}

func (s *Session) end() {
	if s.pending > 0 {
		s.pending--
	}
}

func (s *Session) checkIdle() error {
	if s.pending > 0 {
		return errBusy.Fmt(s.pending)
	}

	return nil
}

// Delete removes section i together with its artifacts.
func (s *Session) Delete(i int) error {
	if err := s.checkIdle(); err != nil {
		return err
	}

	if _, err := s.Engine.Section(i); err != nil {
		return err
	}

	// artifacts move first so a store failure leaves the section list as it was
	if err := s.Producer.Forget(i); err != nil {
		return err
	}

	return s.Engine.Delete(i)
}

// Reset discards the stopwatch, every section and every section artifact.
func (s *Session) Reset() error {
	if err := s.checkIdle(); err != nil {
		return err
	}

	if err := s.Producer.Clear(); err != nil {
		return err
	}

	s.Engine.Reset()

	return nil
}

// Export writes sections as a bundle at fps and runs the post-export
// command.
func (s *Session) Export(
	ctx context.Context,
	sections []timer.Section,
	fps timeline.FrameRate,
) (bundle.Result, error) {
	e := *s.Exporter
	e.FPS = fps

	res, err := e.Export(sections, s.Producer)
	if err != nil {
		return res, err
	}

	slog.Info(
		"tour exported",
		slog.String("dir", e.Dir),
		slog.Int("fps", int(fps)),
		slog.Int("audio_files", res.Files),
	)

	if err := s.runPostCmd(ctx); err != nil {
		return res, err
	}

	s.Notify("Export complete", "Timeline written to "+e.Dir)

	return res, nil
}

func (s *Session) runPostCmd(ctx context.Context) error {
	if s.postCmd == "" {
		return nil
	}

	args, err := shellquote.Split(s.postCmd)
	if err != nil {
		return errPostCmd.Wrap(err)
	}

	if len(args) == 0 {
		return nil
	}

	return s.run(ctx, s.Exporter.Dir, args)
}

// Notify shows a desktop notification when notifications are enabled.
// Failures are only logged.
func (s *Session) Notify(title, message string) {
	if !s.notifyOn || s.notify == nil {
		return
	}

	if err := s.notify(title, message); err != nil {
		slog.Warn("unable to display notification", slog.Any("error", err))
	}
}
