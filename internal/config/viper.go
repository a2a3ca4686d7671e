package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/tourstudio/tourstudio/internal/osutil"
)

// viperKeys defines the mapping between config keys and their Viper counterparts.
const (
	keyTranscriptionProvider = "providers.transcription"
	keyScriptProvider        = "providers.script"
	keyAnthropicModel        = "anthropic.model"
	keyGeminiModel           = "gemini.model"
	keyOpenAIModel           = "openai.model"
	keyElevenLabsModel       = "elevenlabs.model"
	keyVoiceID               = "elevenlabs.voice_id"
	keyStability             = "elevenlabs.stability"
	keySimilarityBoost       = "elevenlabs.similarity_boost"
	keyStyle                 = "elevenlabs.style"
	keySpeakerBoost          = "elevenlabs.speaker_boost"
	keyFPS                   = "export.fps"
	keyExportDir             = "export.dir"
	keyPostCmd               = "export.post_cmd"
	keyRequestTimeout        = "settings.request_timeout"
	keyNotify                = "settings.notify"
	keyDarkTheme             = "display.dark_theme"
	keyLogLevel              = "logging.level"
)

// WithViperConfig returns an Option that loads configuration from Viper.
// A missing file is created with the defaults.
func WithViperConfig(configPath string) Option {
	return func(c *Config) error {
		v := viper.New()

		v.SetConfigFile(configPath)
		v.SetConfigType("yaml")

		setupViper(v, c)

		err := v.ReadInConfig()
		if err == nil {
			return loadViperConfig(v, c)
		}

		if !errors.Is(err, os.ErrNotExist) {
			return errReadConfig.Wrap(err)
		}

		err = os.MkdirAll(filepath.Dir(configPath), osutil.DirPermission)
		if err != nil {
			return errWriteConfig.Wrap(err)
		}

		if err := v.WriteConfig(); err != nil {
			return errWriteConfig.Wrap(err)
		}

		return loadViperConfig(v, c)
	}
}

// WithEnv returns an Option that reads the API keys from the environment.
func WithEnv() Option {
	return func(c *Config) error {
		v := viper.New()

		for _, name := range []string{Anthropic, ElevenLabs, OpenAI, Gemini} {
			if err := v.BindEnv(name, envKey(name)); err != nil {
				return err
			}
		}

		c.Keys = APIKeys{
			Anthropic:  strings.TrimSpace(v.GetString(Anthropic)),
			ElevenLabs: strings.TrimSpace(v.GetString(ElevenLabs)),
			OpenAI:     strings.TrimSpace(v.GetString(OpenAI)),
			Gemini:     strings.TrimSpace(v.GetString(Gemini)),
		}

		return nil
	}
}

func envKey(service string) string {
	return strings.ToUpper(service) + "_API_KEY"
}

// setupViper configures Viper with defaults. Values already set on c, such
// as answers to the first-run prompt, replace the built-in defaults.
func setupViper(v *viper.Viper, c *Config) {
	v.SetDefault(keyTranscriptionProvider, OpenAI)
	v.SetDefault(keyScriptProvider, Anthropic)
	v.SetDefault(keyAnthropicModel, "claude-sonnet-4-20250514")
	v.SetDefault(keyGeminiModel, "gemini-2.5-flash")
	v.SetDefault(keyOpenAIModel, "whisper-1")
	v.SetDefault(keyElevenLabsModel, "eleven_multilingual_v2")
	v.SetDefault(keyVoiceID, "")
	v.SetDefault(keyStability, 0.5)
	v.SetDefault(keySimilarityBoost, 0.75)
	v.SetDefault(keyStyle, 0.0)
	v.SetDefault(keySpeakerBoost, true)
	v.SetDefault(keyFPS, 30)
	v.SetDefault(keyExportDir, "")
	v.SetDefault(keyPostCmd, "")
	v.SetDefault(keyRequestTimeout, "2m")
	v.SetDefault(keyNotify, true)
	v.SetDefault(keyDarkTheme, true)
	v.SetDefault(keyLogLevel, "info")

	if c.Providers.Transcription != "" {
		v.SetDefault(keyTranscriptionProvider, c.Providers.Transcription)
	}

	if c.Providers.Script != "" {
		v.SetDefault(keyScriptProvider, c.Providers.Script)
	}

	if c.Export.FPS != 0 {
		v.SetDefault(keyFPS, c.Export.FPS)
	}

	if c.ElevenLabs.VoiceID != "" {
		v.SetDefault(keyVoiceID, c.ElevenLabs.VoiceID)
	}
}

// loadViperConfig loads configuration from Viper into the Config struct.
func loadViperConfig(v *viper.Viper, c *Config) error {
	if err := v.Unmarshal(c); err != nil {
		return errReadConfig.Wrap(err)
	}

	return nil
}
