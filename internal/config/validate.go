package config

import (
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/tourstudio/tourstudio/timeline"
)

var (
	// Minimum and maximum request timeout.
	minRequestTimeout = 5 * time.Second
	maxRequestTimeout = 10 * time.Minute

	transcriptionProviders = []string{OpenAI, ElevenLabs}
	scriptProviders        = []string{Anthropic, Gemini}
)

// Validate performs validation checks on the Config struct and its fields.
func (c *Config) Validate() error {
	if err := c.validateProviders(); err != nil {
		return err
	}

	if _, err := timeline.ParseFrameRate(c.Export.FPS); err != nil {
		return errInvalidFPS.Fmt(c.Export.FPS)
	}

	if c.Settings.RequestTimeout < minRequestTimeout ||
		c.Settings.RequestTimeout > maxRequestTimeout {
		return errInvalidTimeout.Fmt(minRequestTimeout, maxRequestTimeout)
	}

	if err := c.validateVoiceSettings(); err != nil {
		return err
	}

	if _, err := c.LogLevel(); err != nil {
		return err
	}

	return nil
}

func (c *Config) validateProviders() error {
	if !slices.Contains(transcriptionProviders, c.Providers.Transcription) {
		return errUnknownProvider.Fmt(
			"transcription",
			c.Providers.Transcription,
			strings.Join(transcriptionProviders, ", "),
		)
	}

	if !slices.Contains(scriptProviders, c.Providers.Script) {
		return errUnknownProvider.Fmt(
			"script",
			c.Providers.Script,
			strings.Join(scriptProviders, ", "),
		)
	}

	return nil
}

func (c *Config) validateVoiceSettings() error {
	settings := []struct {
		name  string
		value float64
	}{
		{"stability", c.ElevenLabs.Stability},
		{"similarity_boost", c.ElevenLabs.SimilarityBoost},
		{"style", c.ElevenLabs.Style},
	}

	for _, s := range settings {
		if s.value < 0 || s.value > 1 {
			return errInvalidVoiceSetting.Fmt(s.name, s.value)
		}
	}

	return nil
}

// LogLevel parses the configured log level.
func (c *Config) LogLevel() (slog.Level, error) {
	var level slog.Level

	if err := level.UnmarshalText([]byte(c.Logging.Level)); err != nil {
		return level, errInvalidLogLevel.Fmt(c.Logging.Level)
	}

	return level, nil
}
