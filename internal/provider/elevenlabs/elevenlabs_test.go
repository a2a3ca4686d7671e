package elevenlabs

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tourstudio/tourstudio/internal/provider"
)

var fakeMP3 = []byte{0xff, 0xfb, 0x90, 0x64, 0x00}

func newServer(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "test-key", r.Header.Get("xi-api-key"))
		h(w, r)
	}))

	t.Cleanup(srv.Close)

	return New("test-key", WithBaseURL(srv.URL))
}

func TestSynthesize(t *testing.T) {
	var got speechRequest

	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/text-to-speech/voice-123", r.URL.Path)
		assert.Equal(t, DefaultOutputFormat, r.URL.Query().Get("output_format"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "audio/mpeg")
		_, _ = w.Write(fakeMP3)
	})

	b, err := c.Synthesize(context.Background(), "Welcome.", "voice-123")
	require.NoError(t, err)

	assert.Equal(t, fakeMP3, b)
	assert.Equal(t, "Welcome.", got.Text)
	assert.Equal(t, DefaultModel, got.ModelID)
	assert.Equal(t, DefaultVoiceSettings(), got.VoiceSettings)
}

func TestSynthesizeRejectsEmptyText(t *testing.T) {
	c := New("test-key", WithBaseURL("http://127.0.0.1:0"))

	_, err := c.Synthesize(context.Background(), "  ", "voice-123")
	assert.True(t, errors.Is(err, provider.ErrEmptyText))
}

func TestSynthesizeError(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, `{"detail":{"status":"quota_exceeded"}}`, http.StatusTooManyRequests)
	})

	_, err := c.Synthesize(context.Background(), "Hello", "v")
	require.Error(t, err)
	assert.True(t, errors.Is(err, provider.ErrHTTPStatus))
	assert.Contains(t, err.Error(), "quota_exceeded")
}

func TestSoundEffect(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/sound-generation", r.URL.Path)

		var req soundRequest
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "creaking door", req.Text)

		_, _ = w.Write(fakeMP3)
	})

	b, err := c.SoundEffect(context.Background(), "creaking door")
	require.NoError(t, err)
	assert.Equal(t, fakeMP3, b)
}

func TestVoicesSortedNaturally(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/voices", r.URL.Path)

		_, _ = io.WriteString(w, `{"voices":[
			{"voice_id":"c","name":"Voice 10","category":"premade"},
			{"voice_id":"a","name":"Voice 2","category":"premade"},
			{"voice_id":"b","name":"adam","category":"cloned"}
		]}`)
	})

	voices, err := c.Voices(context.Background())
	require.NoError(t, err)

	require.Len(t, voices, 3)
	assert.Equal(t, "adam", voices[0].Name)
	assert.Equal(t, "Voice 2", voices[1].Name)
	assert.Equal(t, "Voice 10", voices[2].Name)
	assert.Equal(t, "cloned", voices[0].Category)
}

func TestTranscribe(t *testing.T) {
	c := newServer(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/speech-to-text", r.URL.Path)
		assert.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, DefaultTranscribeWith, r.FormValue("model_id"))

		f, hdr, err := r.FormFile("file")
		if assert.NoError(t, err) {
			defer f.Close()

			assert.Equal(t, "idea.m4a", hdr.Filename)

			b, _ := io.ReadAll(f)
			assert.Equal(t, fakeMP3, b)
		}

		_, _ = io.WriteString(w, `{"language_code":"en","text":" Start in the lobby. "}`)
	})

	text, err := c.Transcribe(context.Background(), provider.Audio{
		Name: "idea.m4a",
		Data: fakeMP3,
	})
	require.NoError(t, err)
	assert.Equal(t, "Start in the lobby.", text)
}

func TestTranscribeEmptyAudio(t *testing.T) {
	c := New("test-key")

	_, err := c.Transcribe(context.Background(), provider.Audio{Name: "empty.mp3"})
	assert.True(t, errors.Is(err, provider.ErrEmptyAudio))
}
