package config

import (
	"errors"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/pterm/pterm"
	"github.com/pterm/pterm/putils"
)

const asciiLogo = `
▀█▀ █▀█ █ █ █▀█   █▀ ▀█▀ █ █ █▀▄ █ █▀█
 █  █▄█ █▄█ █▀▄   ▄█  █  █▄█ █▄▀ █ █▄█`

// PromptOptions holds the user's responses to the configuration prompts.
type PromptOptions struct {
	Transcription string
	Script        string
	FPS           int
}

// WithPromptConfig returns an Option that configures settings via interactive
// prompts. It only runs when no config file exists yet.
func WithPromptConfig(configPath string) Option {
	return func(c *Config) error {
		_, err := os.Stat(configPath)
		if err == nil || !errors.Is(err, os.ErrNotExist) {
			return err
		}

		opts, err := promptUser()
		if err != nil {
			return errPromptFailed.Wrap(err)
		}

		applyPromptOptions(c, opts)

		return nil
	}
}

// promptUser handles the interactive configuration process.
func promptUser() (PromptOptions, error) {
	var opts PromptOptions

	pterm.Println(asciiLogo)

	_ = putils.BulletListFromString(`Follow the prompts below to configure tourstudio for the first time.
Select your preferred value, or press ENTER to accept the defaults.
API keys are read from the environment (e.g. ANTHROPIC_API_KEY) and are never saved.
Edit the config file with 'tourstudio edit-config' to change any settings.`, " ").
		Render()

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Script writing service").
				Options(
					huh.NewOption("Anthropic Claude", Anthropic).Selected(true),
					huh.NewOption("Google Gemini", Gemini),
				).
				Value(&opts.Script),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Transcription service").
				Options(
					huh.NewOption("OpenAI Whisper", OpenAI).Selected(true),
					huh.NewOption("ElevenLabs Scribe", ElevenLabs),
				).
				Value(&opts.Transcription),
		),
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Timeline frame rate").
				Options(
					huh.NewOption("24 fps (film)", 24),
					huh.NewOption("25 fps (PAL)", 25),
					huh.NewOption("30 fps (NTSC)", 30).Selected(true),
					huh.NewOption("60 fps", 60),
				).
				Value(&opts.FPS),
		),
	)

	if err := form.Run(); err != nil {
		return opts, err
	}

	return opts, nil
}

// applyPromptOptions applies the user's prompt responses to the configuration.
func applyPromptOptions(c *Config, opts PromptOptions) {
	c.Providers.Transcription = opts.Transcription
	c.Providers.Script = opts.Script
	c.Export.FPS = opts.FPS
}
