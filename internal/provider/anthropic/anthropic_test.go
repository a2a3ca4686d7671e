package anthropic

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourstudio/tourstudio/internal/provider"
)

func newServer(t *testing.T, status int, reply string) (*httptest.Server, *messagesRequest) {
	t.Helper()

	var got messagesRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("x-api-key"))
		assert.Equal(t, apiVersion, r.Header.Get("anthropic-version"))

		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.WriteHeader(status)

		if status != http.StatusOK {
			_, _ = w.Write([]byte(reply))
			return
		}

		_ = json.NewEncoder(w).Encode(messagesResponse{
			ID: "msg_1",
			Content: []contentBlock{
				{Type: "text", Text: reply},
			},
		})
	}))

	t.Cleanup(srv.Close)

	return srv, &got
}

func TestWriteScript(t *testing.T) {
	reply := "Here you go:\n```json\n" +
		`{"script":"Welcome to the hall.","sound_effects":["footsteps"],"estimated_word_count":4,"notes":"calm"}` +
		"\n```"

	srv, got := newServer(t, http.StatusOK, reply)

	c := New("test-key", WithBaseURL(srv.URL), WithModel("claude-test"))

	s, err := c.WriteScript(context.Background(), provider.ScriptRequest{
		Title:    "Hall",
		Duration: 20 * time.Second,
	})
	require.NoError(t, err)

	assert.Equal(t, "Welcome to the hall.", s.Text)
	assert.Equal(t, []string{"footsteps"}, s.SoundEffects)
	assert.Equal(t, 4, s.EstimatedWordCount)
	assert.Equal(t, "calm", s.Notes)

	assert.Equal(t, "claude-test", got.Model)
	assert.Equal(t, maxTokens, got.MaxTokens)
	require.Len(t, got.Messages, 1)
	assert.Equal(t, "user", got.Messages[0].Role)
	assert.Contains(t, got.Messages[0].Content, "Section Title: Hall")
	assert.Contains(t, got.Messages[0].Content, provider.DefaultInstructions)
}

func TestWriteScriptPlainText(t *testing.T) {
	srv, _ := newServer(t, http.StatusOK, "Just some narration text")

	c := New("test-key", WithBaseURL(srv.URL))

	s, err := c.WriteScript(context.Background(), provider.ScriptRequest{Title: "Hall"})
	require.NoError(t, err)

	assert.Equal(t, "Just some narration text", s.Text)
	assert.Equal(t, 4, s.EstimatedWordCount)
	assert.Empty(t, s.SoundEffects)
}

func TestWriteScriptHTTPError(t *testing.T) {
	srv, _ := newServer(t, http.StatusUnauthorized, `{"type":"error","error":{"message":"invalid x-api-key"}}`)

	c := New("test-key", WithBaseURL(srv.URL))

	_, err := c.WriteScript(context.Background(), provider.ScriptRequest{Title: "Hall"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, provider.ErrHTTPStatus))
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "invalid x-api-key")
}

func TestComposeMusicPrompt(t *testing.T) {
	srv, got := newServer(t, http.StatusOK, "  Slow ambient strings.  ")

	c := New("test-key", WithBaseURL(srv.URL))

	p, err := c.ComposeMusicPrompt(context.Background(), provider.MusicRequest{
		Sections: []provider.MusicSection{
			{Title: "Intro", Duration: 10 * time.Second},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Slow ambient strings.", p)
	assert.Contains(t, got.Messages[0].Content, "1. Intro (00:00:10.000)")
}
