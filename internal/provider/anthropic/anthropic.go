// Package anthropic writes narration scripts with the Anthropic Messages API.
package anthropic

import (
	"bytes"
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
	DefaultModel   = "claude-sonnet-4-20250514"
	DefaultBaseURL = "https://api.anthropic.com"

	apiVersion = "2023-06-01"
	maxTokens  = 2000
	service    = "anthropic"
)

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type messagesRequest struct {
	Model     string    `json:"model"`
	Messages  []message `json:"messages"`
	MaxTokens int       `json:"max_tokens"`
}

type contentBlock struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type messagesResponse struct {
	ID         string         `json:"id"`
	StopReason string         `json:"stop_reason"`
	Content    []contentBlock `json:"content"`
}

// Client talks to the Messages API.
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

func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = strings.TrimRight(url, "/")
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
		model:   DefaultModel,
		baseURL: DefaultBaseURL,
		http:    provider.NewHTTPClient(2 * time.Minute),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// complete sends prompt as a single user message and returns the text of the
// reply.
func (c *Client) complete(ctx context.Context, prompt string) (string, error) {
	payload, err := json.Marshal(messagesRequest{
		Model:     c.model,
		MaxTokens: maxTokens,
		Messages: []message{
			{Role: "user", Content: prompt},
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		c.baseURL+"/v1/messages",
		bytes.NewReader(payload),
	)
	if err != nil {
		return "", err
	}

	req.Header.Set("x-api-key", c.apiKey)
	req.Header.Set("anthropic-version", apiVersion)
	req.Header.Set("content-type", "application/json")

	b, err := provider.Do(c.http, req, service)
	if err != nil {
		return "", err
	}

	var resp messagesResponse

	if err := json.Unmarshal(b, &resp); err != nil {
		return "", err
	}

	slog.Debug("anthropic response", slog.String("dump", spew.Sdump(resp)))

	var text strings.Builder

	for _, block := range resp.Content {
		if block.Type == "text" {
			text.WriteString(block.Text)
		}
	}

	if strings.TrimSpace(text.String()) == "" {
		return "", provider.ErrEmptyResponse.Fmt(service)
	}

	return text.String(), nil
}

// WriteScript asks Claude for the narration of one section.
func (c *Client) WriteScript(
	ctx context.Context,
	req provider.ScriptRequest,
) (provider.Script, error) {
	reply, err := c.complete(ctx, provider.ScriptPrompt(req))
	if err != nil {
		return provider.Script{}, err
	}

	return provider.ParseScript(reply)
}

// ComposeMusicPrompt asks Claude for a music generation prompt.
func (c *Client) ComposeMusicPrompt(
	ctx context.Context,
	req provider.MusicRequest,
) (string, error) {
	reply, err := c.complete(ctx, provider.MusicPrompt(req))
	if err != nil {
		return "", err
	}

	return strings.TrimSpace(reply), nil
}
