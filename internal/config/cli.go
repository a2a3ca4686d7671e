package config

import (
	"time"

	"github.com/urfave/cli/v2"
)

// CLIOptions represents command-line configuration options.
type CLIOptions struct {
	Transcriber    string
	ScriptProvider string
	Voice          string
	ExportDir      string
	PostCmd        string
	Timeout        time.Duration
	FPS            int
	TimerOnly      bool
	NoColor        bool
	DisableNotify  bool
}

// WithCLIConfig returns an Option that loads configuration from CLI flags.
// Only flags that were set override the file.
func WithCLIConfig(ctx *cli.Context) Option {
	return func(c *Config) error {
		opts := CLIOptions{
			Transcriber:    ctx.String("transcriber"),
			ScriptProvider: ctx.String("script-provider"),
			Voice:          ctx.String("voice"),
			ExportDir:      ctx.String("dir"),
			PostCmd:        ctx.String("post-cmd"),
			Timeout:        ctx.Duration("timeout"),
			FPS:            ctx.Int("fps"),
			TimerOnly:      ctx.Bool("timer-only"),
			NoColor:        ctx.Bool("no-color"),
			DisableNotify:  ctx.Bool("disable-notification"),
		}

		applyCLIOptions(c, opts)

		return nil
	}
}

// applyCLIOptions applies CLI options to the config.
func applyCLIOptions(c *Config, opts CLIOptions) {
	if opts.Transcriber != "" {
		c.Providers.Transcription = opts.Transcriber
	}

	if opts.ScriptProvider != "" {
		c.Providers.Script = opts.ScriptProvider
	}

	if opts.Voice != "" {
		c.ElevenLabs.VoiceID = opts.Voice
	}

	if opts.ExportDir != "" {
		c.Export.Dir = opts.ExportDir
	}

	if opts.PostCmd != "" {
		c.Export.PostCmd = opts.PostCmd
	}

	if opts.Timeout > 0 {
		c.Settings.RequestTimeout = opts.Timeout
	}

	if opts.FPS != 0 {
		c.Export.FPS = opts.FPS
	}

	if opts.DisableNotify {
		c.Settings.Notify = false
	}

	c.CLI.TimerOnly = opts.TimerOnly
	c.CLI.NoColor = opts.NoColor
}
