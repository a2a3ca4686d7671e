// Package gemini writes narration scripts with Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/davecgh/go-spew/spew"
	"google.golang.org/genai"

	"github.com/tourstudio/tourstudio/internal/provider"
)

const (
	DefaultModel = "gemini-2.5-flash"

	service = "gemini"
)

// Client generates text through the Gemini API.
type Client struct {
	http    *http.Client
	apiKey  string
	model   string
	baseURL string
}

type Option func(*Client)

func WithModel(model string) Option {
	return func(c *Client) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL points the client at a different endpoint.
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
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
		apiKey: apiKey,
		model:  DefaultModel,
		http:   provider.NewHTTPClient(2 * time.Minute),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

func (c *Client) generate(ctx context.Context, prompt string) (string, error) {
	cfg := &genai.ClientConfig{
		APIKey:     c.apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: c.http,
	}

	if c.baseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: c.baseURL}
	}

	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return "", fmt.Errorf("%s: create client: %w", service, err)
	}

	result, err := client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("%s: generate content: %w", service, err)
	}

	slog.Debug("gemini response", slog.String("dump", spew.Sdump(result)))

	if result == nil || len(result.Candidates) == 0 ||
		result.Candidates[0].Content == nil {
		return "", provider.ErrEmptyResponse.Fmt(service)
	}

	var text strings.Builder

	for _, part := range result.Candidates[0].Content.Parts {
		if part != nil && part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", provider.ErrEmptyResponse.Fmt(service)
	}

	return text.String(), nil
}

// WriteScript asks Gemini for the narration of one section.
func (c *Client) WriteScript(
	ctx context.Context,
	req provider.ScriptRequest,
) (provider.Script, error) {
	reply, err := c.generate(ctx, provider.ScriptPrompt(req))
	if err != nil {
		return provider.Script{}, err
	}

	return provider.ParseScript(reply)
}

// ComposeMusicPrompt asks Gemini for a music generation prompt.
func (c *Client) ComposeMusicPrompt(
	ctx context.Context,
	req provider.MusicRequest,
) (string, error) {
	reply, err := c.generate(ctx, provider.MusicPrompt(req))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(reply), nil
}
