// Package elevenlabs turns narration into speech, generates sound effects and
// transcribes recordings with the ElevenLabs API.
package elevenlabs

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"github.com/maruel/natural"

	"github.com/tourstudio/tourstudio/internal/provider"
)

const (
	DefaultBaseURL        = "https://api.elevenlabs.io"
	DefaultModel          = "eleven_multilingual_v2"
	DefaultOutputFormat   = "mp3_44100_128"
	DefaultTranscribeWith = "scribe_v1"

	service = "elevenlabs"
)

// VoiceSettings tune the synthesized voice.
type VoiceSettings struct {
	Stability       float64 `json:"stability"`
	SimilarityBoost float64 `json:"similarity_boost"`
	Style           float64 `json:"style"`
	SpeakerBoost    bool    `json:"use_speaker_boost"`
}

// DefaultVoiceSettings is a neutral narration voice.
func DefaultVoiceSettings() VoiceSettings {
	return VoiceSettings{
		Stability:       0.5,
		SimilarityBoost: 0.75,
		Style:           0,
		SpeakerBoost:    true,
	}
}

type speechRequest struct {
	Text          string        `json:"text"`
	ModelID       string        `json:"model_id"`
	VoiceSettings VoiceSettings `json:"voice_settings"`
}

type soundRequest struct {
	Text string `json:"text"`
}

type voicesResponse struct {
	Voices []provider.Voice `json:"voices"`
}

type transcriptResponse struct {
	LanguageCode string `json:"language_code"`
	Text         string `json:"text"`
}

// Client is an ElevenLabs API client.
type Client struct {
	http     *http.Client
	apiKey   string
	baseURL  string
	model    string
	settings VoiceSettings
}

type Option func(*Client)

func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

func WithVoiceSettings(s VoiceSettings) Option {
	return func(c *Client) {
		c.settings = s
	}
}

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http = provider.NewHTTPClient(d)
	}
}

// New returns a client authenticated with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:   apiKey,
		baseURL:  DefaultBaseURL,
		model:    DefaultModel,
		settings: DefaultVoiceSettings(),
		http:     provider.NewHTTPClient(2 * time.Minute),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) newRequest(
	ctx context.Context,
	method, path string,
	body *bytes.Buffer,
	contentType string,
) (*http.Request, error) {
	var (
		req *http.Request
		err error
	)

	if body == nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	}

	if err != nil {
		return nil, err
	}

	req.Header.Set("xi-api-key", c.apiKey)

	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	return req, nil
}

func (c *Client) postJSON(ctx context.Context, path string, v any) ([]byte, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}

	req, err := c.newRequest(
		ctx,
		http.MethodPost,
		path,
		bytes.NewBuffer(payload),
		"application/json",
	)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Accept", "audio/mpeg")

	return provider.Do(c.http, req, service)
}

// Synthesize converts text to MP3 audio spoken by voiceID.
func (c *Client) Synthesize(
	ctx context.Context,
	text, voiceID string,
) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, provider.ErrEmptyText
	}

	path := "/v1/text-to-speech/" + url.PathEscape(voiceID) +
		"?output_format=" + DefaultOutputFormat

	b, err := c.postJSON(ctx, path, speechRequest{
		Text:          text,
		ModelID:       c.model,
		VoiceSettings: c.settings,
	})
	if err != nil {
		return nil, err
	}

	if len(b) == 0 {
		return nil, provider.ErrEmptyResponse.Fmt(service)
	}

	return b, nil
}

// SoundEffect generates a short MP3 sound effect from a description.
func (c *Client) SoundEffect(
	ctx context.Context,
	description string,
) ([]byte, error) {
	if strings.TrimSpace(description) == "" {
		return nil, provider.ErrEmptyText
	}

	b, err := c.postJSON(ctx, "/v1/sound-generation", soundRequest{
		Text: description,
	})
	if err != nil {
		return nil, err
	}

	if len(b) == 0 {
		return nil, provider.ErrEmptyResponse.Fmt(service)
	}

	return b, nil
}

// Voices lists the voices available to the account, sorted by name.
func (c *Client) Voices(ctx context.Context) ([]provider.Voice, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/v1/voices", nil, "")
	if err != nil {
		return nil, err
	}

	b, err := provider.Do(c.http, req, service)
	if err != nil {
		return nil, err
	}

	var resp voicesResponse

	if err := json.Unmarshal(b, &resp); err != nil {
		return nil, err
	}

	sort.SliceStable(resp.Voices, func(i, j int) bool {
		return natural.Less(
			strings.ToLower(resp.Voices[i].Name),
			strings.ToLower(resp.Voices[j].Name),
		)
	})

	return resp.Voices, nil
}

// Transcribe converts a recording to text with the Scribe model.
func (c *Client) Transcribe(
	ctx context.Context,
	audio provider.Audio,
) (string, error) {
	body, contentType, err := provider.MultipartAudio(
		"file",
		audio,
		provider.Field{Name: "model_id", Value: DefaultTranscribeWith},
	)
	if err != nil {
		return "", err
	}

	req, err := c.newRequest(
		ctx,
		http.MethodPost,
		"/v1/speech-to-text",
		body,
		contentType,
	)
	if err != nil {
		return "", err
	}

	b, err := provider.Do(c.http, req, service)
	if err != nil {
		return "", err
	}

	var resp transcriptResponse

	if err := json.Unmarshal(b, &resp); err != nil {
		return "", err
	}

	slog.Debug("elevenlabs transcript", slog.String("dump", spew.Sdump(resp)))

	return strings.TrimSpace(resp.Text), nil
}
