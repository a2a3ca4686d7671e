package app

import (
	"github.com/tourstudio/tourstudio/internal/config"
	"github.com/tourstudio/tourstudio/internal/provider/anthropic"
	"github.com/tourstudio/tourstudio/internal/provider/elevenlabs"
	"github.com/tourstudio/tourstudio/internal/provider/gemini"
	"github.com/tourstudio/tourstudio/internal/provider/openai"
	"github.com/tourstudio/tourstudio/production"
	"github.com/tourstudio/tourstudio/store"
)

func newElevenLabs(cfg *config.Config) *elevenlabs.Client {
	return elevenlabs.New(
		cfg.Keys.ElevenLabs,
		elevenlabs.WithModel(cfg.ElevenLabs.Model),
		elevenlabs.WithTimeout(cfg.Settings.RequestTimeout),
		elevenlabs.WithVoiceSettings(elevenlabs.VoiceSettings{
			Stability:       cfg.ElevenLabs.Stability,
			SimilarityBoost: cfg.ElevenLabs.SimilarityBoost,
			Style:           cfg.ElevenLabs.Style,
			SpeakerBoost:    cfg.ElevenLabs.SpeakerBoost,
		}),
	)
}

// newTranscriber returns the configured transcription service, or false
// when its API key is missing.
func newTranscriber(cfg *config.Config) (production.Transcriber, bool) {
	if cfg.TranscriptionKey() == "" {
		return nil, false
	}

	if cfg.Providers.Transcription == config.ElevenLabs {
		return newElevenLabs(cfg), true
	}

	return openai.New(
		cfg.Keys.OpenAI,
		openai.WithModel(cfg.OpenAI.Model),
		openai.WithTimeout(cfg.Settings.RequestTimeout),
	), true
}

func newScriptWriter(cfg *config.Config) (production.ScriptWriter, bool) {
	if cfg.ScriptKey() == "" {
		return nil, false
	}

	if cfg.Providers.Script == config.Gemini {
		return gemini.New(
			cfg.Keys.Gemini,
			gemini.WithModel(cfg.Gemini.Model),
			gemini.WithTimeout(cfg.Settings.RequestTimeout),
		), true
	}

	return anthropic.New(
		cfg.Keys.Anthropic,
		anthropic.WithModel(cfg.Anthropic.Model),
		anthropic.WithTimeout(cfg.Settings.RequestTimeout),
	), true
}

// newProducer connects every collaborator that has an API key.
func newProducer(cfg *config.Config, db store.DB) *production.Producer {
	opts := []production.Option{
		production.WithTimeout(cfg.Settings.RequestTimeout),
		production.WithVoice(cfg.ElevenLabs.VoiceID),
	}

	if t, ok := newTranscriber(cfg); ok {
		opts = append(opts, production.WithTranscriber(t))
	}

	if w, ok := newScriptWriter(cfg); ok {
		opts = append(opts, production.WithScriptWriter(w))
	}

	if cfg.Keys.ElevenLabs != "" {
		el := newElevenLabs(cfg)

		opts = append(opts,
			production.WithSynthesizer(el),
			production.WithSoundDesigner(el),
		)
	}

	return production.New(db, opts...)
}
