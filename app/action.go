package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"os/signal"
	"path/filepath"
	"runtime"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pterm/pterm"
	"github.com/urfave/cli/v2"

	"github.com/tourstudio/tourstudio/bundle"
	"github.com/tourstudio/tourstudio/internal/config"
	"github.com/tourstudio/tourstudio/internal/inbox"
	"github.com/tourstudio/tourstudio/internal/logging"
	"github.com/tourstudio/tourstudio/internal/osutil"
	"github.com/tourstudio/tourstudio/internal/pathutil"
	"github.com/tourstudio/tourstudio/internal/playback"
	"github.com/tourstudio/tourstudio/internal/provider"
	"github.com/tourstudio/tourstudio/internal/timeutil"
	"github.com/tourstudio/tourstudio/internal/ui"
	"github.com/tourstudio/tourstudio/production"
	"github.com/tourstudio/tourstudio/report"
	"github.com/tourstudio/tourstudio/store"
	"github.com/tourstudio/tourstudio/studio"
	"github.com/tourstudio/tourstudio/timeline"
	"github.com/tourstudio/tourstudio/timer"
)

const (
	envNoColor           = "NO_COLOR"
	envTourStudioNoColor = "TOURSTUDIO_NO_COLOR"

	transcriptExt = ".txt"
)

var logCloser io.Closer

// firstNonEmptyString returns its first non-empty argument, or "" if all
// arguments are empty.
func firstNonEmptyString(ss ...string) string {
	for _, s := range ss {
		if s != "" {
			return s
		}
	}

	return ""
}

// loadConfig builds the configuration for commands that talk to the AI
// services. The first-run prompt only appears when no config file exists.
func loadConfig(ctx *cli.Context) (*config.Config, error) {
	path := pathutil.ConfigFilePath()

	cfg, err := config.New(
		config.WithPromptConfig(path),
		config.WithViperConfig(path),
		config.WithEnv(),
		config.WithCLIConfig(ctx),
	)
	if err != nil {
		return nil, err
	}

	level, err := cfg.LogLevel()
	if err != nil {
		return nil, err
	}

	setupLogging(logging.WithLevel(level))

	ui.DarkTheme = cfg.Display.DarkTheme

	slog.Debug("config loaded", slog.String("config", cfg.String()))

	return cfg, nil
}

func setupLogging(opts ...logging.Option) {
	if logCloser != nil {
		_ = logCloser.Close()
	}

	logCloser = logging.Setup(pathutil.LogFilePath(), opts...)
}

func firstArg(ctx *cli.Context, name string) (string, error) {
	arg := ctx.Args().First()
	if arg == "" {
		return "", errMissingArg.Fmt(name)
	}

	return arg, nil
}

// defaultAction launches the interactive studio.
func defaultAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if !cfg.CLI.TimerOnly {
		report.MissingKeys(cfg.MissingKeys())
	}

	var recordings []string

	if paths := ctx.StringSlice("recording"); len(paths) > 0 && !cfg.CLI.TimerOnly {
		recordings, err = inbox.Collect(paths)
		if err != nil {
			return err
		}
	}

	fps, err := timeline.ParseFrameRate(cfg.Export.FPS)
	if err != nil {
		return err
	}

	err = os.MkdirAll(pathutil.SessionDir(), osutil.DirPermission)
	if err != nil {
		return err
	}

	db, err := store.NewClient(pathutil.SessionDir())
	if err != nil {
		return err
	}

	defer db.Close()

	exporter := bundle.NewExporter(
		firstNonEmptyString(cfg.Export.Dir, pathutil.ExportDir()),
		fps,
	)

	session := studio.NewSession(
		timer.New(),
		newProducer(cfg, db),
		exporter,
		studio.WithPostCmd(cfg.Export.PostCmd),
		studio.WithNotifications(cfg.Settings.Notify),
	)

	player := playback.New()
	defer player.Close()

	m := studio.New(
		session,
		studio.WithTimerOnly(cfg.CLI.TimerOnly),
		studio.WithPlayer(player),
		studio.WithFrameRate(fps),
		studio.WithDarkTheme(cfg.Display.DarkTheme),
		studio.WithRecordings(recordings),
	)
	defer m.Close()

	slog.Info(
		"studio started",
		slog.Bool("timer_only", cfg.CLI.TimerOnly),
		slog.Int("recordings", len(recordings)),
	)

	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()

	return err
}

// transcribeAction transcribes recordings given as arguments, or every new
// recording that appears in the --watch folder.
func transcribeAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	t, ok := newTranscriber(cfg)
	if !ok {
		return production.ErrNoTranscriber
	}

	run := func(c context.Context, path string) error {
		return transcribeFile(c, t, path, cfg, ctx.Bool("save"))
	}

	if dir := ctx.String("watch"); dir != "" {
		return watch(ctx.Context, dir, run)
	}

	if ctx.NArg() == 0 {
		return errMissingArg.Fmt("FILE")
	}

	files, err := inbox.Collect(ctx.Args().Slice())
	if err != nil {
		return err
	}

	printRecordings(config.Stdout, files)

	var errs []error

	for _, f := range files {
		if err := run(ctx.Context, f); err != nil {
			pterm.Error.Println(err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func transcribeFile(
	ctx context.Context,
	t production.Transcriber,
	path string,
	cfg *config.Config,
	save bool,
) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	name := filepath.Base(path)

	spinner, _ := pterm.DefaultSpinner.Start("Transcribing " + name + "...")

	c, cancel := context.WithTimeout(ctx, cfg.Settings.RequestTimeout)
	defer cancel()

	text, err := t.Transcribe(c, provider.Audio{Name: name, Data: data})
	if err != nil {
		spinner.Fail(name)
		return fmt.Errorf("transcribing %s: %w", name, err)
	}

	spinner.Success(name)

	fmt.Fprintln(config.Stdout, strings.TrimSpace(text))

	if !save {
		return nil
	}

	out := pathutil.StripExtension(path) + transcriptExt

	if err := os.WriteFile(out, []byte(text+"\n"), osutil.FilePermission); err != nil {
		return err
	}

	pterm.Success.Printfln("wrote %s", out)

	return nil
}

func watch(ctx context.Context, dir string, handler inbox.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	w, err := inbox.NewWatcher(dir, handler)
	if err != nil {
		return err
	}

	defer w.Close()

	pterm.Info.Printfln("Watching %s for new recordings. Press Ctrl+C to stop.", dir)

	err = w.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// voicesAction lists the voices of the configured ElevenLabs account.
func voicesAction(ctx *cli.Context) error {
	cfg, err := loadConfig(ctx)
	if err != nil {
		return err
	}

	if cfg.Keys.ElevenLabs == "" {
		return production.ErrNoSynthesizer
	}

	spinner, _ := pterm.DefaultSpinner.Start("Fetching voices...")

	voices, err := newElevenLabs(cfg).Voices(ctx.Context)
	if err != nil {
		spinner.Fail()
		return err
	}

	spinner.Success(fmt.Sprintf("%d voices", len(voices)))

	return report.Voices(config.Stdout, voices, cfg.ElevenLabs.VoiceID)
}

// exportAction writes the timeline of a previously exported tour again. The
// frame rate defaults to the one recorded in the manifest.
func exportAction(ctx *cli.Context) error {
	path, err := firstArg(ctx, "MANIFEST")
	if err != nil {
		return err
	}

	m, err := bundle.ReadManifest(path)
	if err != nil {
		return err
	}

	sections, err := m.TimerSections()
	if err != nil {
		return err
	}

	requested := ctx.Int("fps")
	if requested == 0 {
		requested = m.FPS
	}

	if requested == 0 {
		requested = int(timeline.DefaultFrameRate)
	}

	fps, err := timeline.ParseFrameRate(requested)
	if err != nil {
		return err
	}

	doc, err := timeline.Marshal(sections, fps)
	if err != nil {
		return err
	}

	dir := firstNonEmptyString(ctx.String("output"), filepath.Dir(path))

	if err := os.MkdirAll(dir, osutil.DirPermission); err != nil {
		return err
	}

	out := filepath.Join(dir, timeline.FileName)

	if err := os.WriteFile(out, doc, osutil.FilePermission); err != nil {
		return err
	}

	slog.Info(
		"timeline re-exported",
		slog.String("manifest", path),
		slog.String("output", out),
		slog.Int("fps", int(fps)),
	)

	if err := report.Overview(config.Stdout, bundle.Overview(sections, fps)); err != nil {
		return err
	}

	pterm.Success.Printfln("wrote %s", out)

	return nil
}

// playAction plays an audio file until it ends or the user interrupts it.
func playAction(ctx *cli.Context) error {
	path, err := firstArg(ctx, "FILE")
	if err != nil {
		return err
	}

	audio, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	length, err := playback.Length(audio)
	if err != nil {
		return err
	}

	c, stop := signal.NotifyContext(ctx.Context, os.Interrupt)
	defer stop()

	player := playback.New()
	defer player.Close()

	pterm.Info.Printfln(
		"Playing %s (%s)",
		filepath.Base(path),
		timeutil.FormatClock(length),
	)

	err = player.Play(c, audio)
	if errors.Is(err, context.Canceled) {
		return nil
	}

	return err
}

// editConfigAction handles the edit-config command which opens the config
// file in the user's default text editor.
func editConfigAction(_ *cli.Context) error {
	defaultEditor := "nano"

	if runtime.GOOS == osutil.Windows {
		defaultEditor = "C:\\Windows\\system32\\notepad.exe"
	}

	editor := firstNonEmptyString(
		os.Getenv("VISUAL"),
		os.Getenv("EDITOR"),
		defaultEditor,
	)

	cmd := exec.Command(editor, pathutil.ConfigFilePath())

	cmd.Stderr = config.Stderr
	cmd.Stdin = config.Stdin
	cmd.Stdout = config.Stdout

	return cmd.Run()
}

func beforeAction(ctx *cli.Context) error {
	// Override the default help template
	cli.AppHelpTemplate = helpText()

	pterm.Error.MessageStyle = pterm.NewStyle(pterm.FgRed)
	pterm.Error.Prefix = pterm.Prefix{
		Text:  "ERROR",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}

	if _, exists := os.LookupEnv(envNoColor); exists {
		ui.DisableStyling()
	}

	if _, exists := os.LookupEnv(envTourStudioNoColor); exists {
		ui.DisableStyling()
	}

	if ctx.Bool("no-color") {
		ui.DisableStyling()
	}

	if err := pathutil.Initialize(); err != nil {
		return err
	}

	setupLogging()

	return nil
}

func afterAction(ctx *cli.Context) error {
	slog.InfoContext(ctx.Context, "exiting tourstudio")

	if logCloser != nil {
		return logCloser.Close()
	}

	return nil
}
