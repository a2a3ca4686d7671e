// Package config builds the tourstudio configuration from the config file,
// the environment, command-line flags and the first-run prompt.
package config

import (
	"fmt"
	"io"
	"os"
	"time"
)

type (
	// Config holds all configuration settings
	Config struct {
		Providers  ProvidersConfig  `mapstructure:"providers"`
		Anthropic  ModelConfig      `mapstructure:"anthropic"`
		Gemini     ModelConfig      `mapstructure:"gemini"`
		OpenAI     ModelConfig      `mapstructure:"openai"`
		ElevenLabs ElevenLabsConfig `mapstructure:"elevenlabs"`
		Export     ExportConfig     `mapstructure:"export"`
		Settings   SettingsConfig   `mapstructure:"settings"`
		Display    DisplayConfig    `mapstructure:"display"`
		Logging    LoggingConfig    `mapstructure:"logging"`
		Keys       APIKeys          `mapstructure:"-"`
		CLI        CLIConfig        `mapstructure:"-"`
	}

	// ProvidersConfig selects which service backs each collaborator.
	ProvidersConfig struct {
		Transcription string `mapstructure:"transcription"`
		Script        string `mapstructure:"script"`
	}

	// ModelConfig holds the model used by a single service.
	ModelConfig struct {
		Model string `mapstructure:"model"`
	}

	// ElevenLabsConfig holds speech synthesis settings.
	ElevenLabsConfig struct {
		Model           string  `mapstructure:"model"`
		VoiceID         string  `mapstructure:"voice_id"`
		Stability       float64 `mapstructure:"stability"`
		SimilarityBoost float64 `mapstructure:"similarity_boost"`
		Style           float64 `mapstructure:"style"`
		SpeakerBoost    bool    `mapstructure:"speaker_boost"`
	}

	// ExportConfig holds timeline export settings.
	ExportConfig struct {
		Dir     string `mapstructure:"dir"`
		PostCmd string `mapstructure:"post_cmd"`
		FPS     int    `mapstructure:"fps"`
	}

	// SettingsConfig holds general settings.
	SettingsConfig struct {
		RequestTimeout time.Duration `mapstructure:"request_timeout"`
		Notify         bool          `mapstructure:"notify"`
	}

	// DisplayConfig holds display-related settings
	DisplayConfig struct {
		DarkTheme bool `mapstructure:"dark_theme"`
	}

	// LoggingConfig holds log settings.
	LoggingConfig struct {
		Level string `mapstructure:"level"`
	}

	// APIKeys are read from the environment and never written to disk.
	APIKeys struct {
		Anthropic  string
		ElevenLabs string
		OpenAI     string
		Gemini     string
	}

	// CLIConfig holds options that only exist for the current invocation.
	CLIConfig struct {
		TimerOnly bool
		NoColor   bool
	}

	// Option is a function that modifies Config
	Option func(*Config) error
)

const Version = "v0.3.0"

// Service names accepted by the providers settings.
const (
	OpenAI     = "openai"
	ElevenLabs = "elevenlabs"
	Anthropic  = "anthropic"
	Gemini     = "gemini"
)

var (
	Stdin  io.Reader = os.Stdin
	Stdout io.Writer = os.Stdout
	Stderr io.Writer = os.Stderr
)

// New creates a new Config with default values and applies options
func New(opts ...Option) (*Config, error) {
	cfg := &Config{}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, errConfigOption.Wrap(err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errConfigValidation.Wrap(err)
	}

	return cfg, nil
}

// ScriptKey is the API key of the selected script provider.
func (c *Config) ScriptKey() string {
	if c.Providers.Script == Gemini {
		return c.Keys.Gemini
	}

	return c.Keys.Anthropic
}

// TranscriptionKey is the API key of the selected transcription provider.
func (c *Config) TranscriptionKey() string {
	if c.Providers.Transcription == ElevenLabs {
		return c.Keys.ElevenLabs
	}

	return c.Keys.OpenAI
}

// MissingKeys names the environment variables that would enable features
// which are currently unavailable.
func (c *Config) MissingKeys() []string {
	var missing []string

	if c.TranscriptionKey() == "" {
		missing = append(missing, envKey(c.Providers.Transcription))
	}

	if c.ScriptKey() == "" {
		missing = append(missing, envKey(c.Providers.Script))
	}

	if c.Keys.ElevenLabs == "" && c.Providers.Transcription != ElevenLabs {
		missing = append(missing, envKey(ElevenLabs))
	}

	return missing
}

func (c *Config) String() string {
	return fmt.Sprintf(
		"script=%s transcription=%s fps=%d dir=%s",
		c.Providers.Script,
		c.Providers.Transcription,
		c.Export.FPS,
		c.Export.Dir,
	)
}
