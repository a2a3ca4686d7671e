// Package openai transcribes recordings with the OpenAI audio API.
package openai

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"

	"github.com/tourstudio/tourstudio/internal/provider"
)

const (
	DefaultBaseURL = "https://api.openai.com"
	DefaultModel   = "whisper-1"

	service = "openai"
)

type transcriptionResponse struct {
	Text string `json:"text"`
}

// Client is an OpenAI speech-to-text client.
type Client struct {
	http    *http.Client
	apiKey  string
	baseURL string
	model   string
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

func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.http = provider.NewHTTPClient(d)
	}
}

// New returns a client authenticated with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: DefaultBaseURL,
		model:   DefaultModel,
		http:    provider.NewHTTPClient(10 * time.Minute),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Transcribe uploads the recording and returns its text.
func (c *Client) Transcribe(
	ctx context.Context,
	audio provider.Audio,
) (string, error) {
	body, contentType, err := provider.MultipartAudio(
		"file",
		audio,
		provider.Field{Name: "model", Value: c.model},
	)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/audio/transcriptions",
		body,
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)

	b, err := provider.Do(c.http, req, service)
	if err != nil {
		return "", err
	}

	var resp transcriptionResponse

	if err := json.Unmarshal(b, &resp); err != nil {
		return "", err
	}

	slog.Debug("openai transcript", slog.String("dump", spew.Sdump(resp)))

	return strings.TrimSpace(resp.Text), nil
}
