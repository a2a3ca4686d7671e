// Package provider holds the request and result types shared by the AI
// service adapters, together with the prompts and response parsing they have
// in common.
package provider

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/tourstudio/tourstudio/internal/timeutil"
)

// WordsPerSecond is the narration pace used to size scripts (~150 wpm).
const WordsPerSecond = 2.5

// DefaultInstructions is used when a script is requested without any.
const DefaultInstructions = "Create an informative and engaging narration"

const fallbackNotes = "Script generated successfully"

// maxErrorBody caps how much of a failed response is echoed into an error.
const maxErrorBody = 512

// Audio is a recording sent for transcription.
type Audio struct {
	Name string
	Data []byte
}

// ScriptRequest describes the section a narration script is written for.
type ScriptRequest struct {
	Title        string
	Instructions string
	Duration     time.Duration
}

// Script is the structured narration returned by a script writer.
type Script struct {
	Text               string   `json:"script" yaml:"script"`
	Notes              string   `json:"notes" yaml:"notes,omitempty"`
	SoundEffects       []string `json:"sound_effects" yaml:"sound_effects,omitempty"`
	EstimatedWordCount int      `json:"estimated_word_count" yaml:"estimated_word_count"`
}

// MusicSection is one entry of the tour outline sent with a music request.
type MusicSection struct {
	Title    string
	Duration time.Duration
}

// MusicRequest asks for a prompt that a music generation model can use to
// score the whole tour.
type MusicRequest struct {
	Mood     string
	Sections []MusicSection
}

// Total is the combined length of the outlined sections.
func (m MusicRequest) Total() time.Duration {
	var total time.Duration
	for _, s := range m.Sections {
		total += s.Duration
	}

	return total
}

// Voice is a speech synthesis voice.
type Voice struct {
	ID       string `json:"voice_id"`
	Name     string `json:"name"`
	Category string `json:"category"`
}

// ApproxWords is the number of words that fit in d at narration pace.
func ApproxWords(d time.Duration) int {
	return int(d.Seconds() * WordsPerSecond)
}

// ScriptPrompt builds the prompt sent to a language model for req.
func ScriptPrompt(req ScriptRequest) string {
	instructions := strings.TrimSpace(req.Instructions)
	if instructions == "" {
		instructions = DefaultInstructions
	}

	return fmt.Sprintf(`Create an engaging audio tour script for the following section:

Section Title: %s
Duration: %.1f seconds (about %d words)
Additional Instructions: %s

Please create a natural-sounding script that:
1. Is appropriate for the given duration
2. Is engaging and informative
3. Uses conversational language suitable for audio narration
4. Includes natural pauses where appropriate (indicate with [pause])
5. Suggests sound effects where relevant (indicate with [SFX: description])

Format the response as JSON with the following structure:
{
    "script": "The main narration text",
    "sound_effects": ["list of suggested sound effects with timestamps"],
    "estimated_word_count": number,
    "notes": "Any additional production notes"
}`,
		req.Title,
		req.Duration.Seconds(),
		ApproxWords(req.Duration),
		instructions,
	)
}

// MusicPrompt builds the prompt that asks a language model to write a music
// generation prompt for the tour.
func MusicPrompt(req MusicRequest) string {
	var outline strings.Builder

	for i, s := range req.Sections {
		fmt.Fprintf(
			&outline,
			"%d. %s (%s)\n",
			i+1,
			s.Title,
			timeutil.FormatClock(s.Duration),
		)
	}

	mood := strings.TrimSpace(req.Mood)
	if mood == "" {
		mood = "warm, unobtrusive and suitable for spoken narration"
	}

	return fmt.Sprintf(`Write a single prompt for an AI music generator that will produce an instrumental background track for an audio tour.

Total length: %s
Mood: %s
Tour outline:
%s
The track must sit under a narrator's voice, so avoid vocals and busy melodies. Describe genre, instrumentation, tempo and how the music should evolve across the sections. Reply with the prompt text only.`,
		timeutil.FormatClock(req.Total()),
		mood,
		outline.String(),
	)
}

// stripFence returns the body of the first fenced code block in s, preferring
// a block tagged as json.
func stripFence(s string) string {
	for _, fence := range []string{"```json", "```"} {
		_, after, ok := strings.Cut(s, fence)
		if !ok {
			continue
		}

		body, _, _ := strings.Cut(after, "```")

		return strings.TrimSpace(body)
	}

	return strings.TrimSpace(s)
}

// ParseScript turns a model reply into a Script. Replies that are not the
// requested JSON object are kept as plain narration text.
func ParseScript(reply string) (Script, error) {
	text := stripFence(reply)
	if text == "" {
		return Script{}, ErrEmptyResponse.Fmt("script writer")
	}

	var s Script

	err := json.Unmarshal([]byte(text), &s)
	if err != nil || strings.TrimSpace(s.Text) == "" {
		return Script{
			Text:               text,
			EstimatedWordCount: len(strings.Fields(text)),
			Notes:              fallbackNotes,
		}, nil
	}

	if s.EstimatedWordCount <= 0 {
		s.EstimatedWordCount = len(strings.Fields(s.Text))
	}

	return s, nil
}

// NewHTTPClient returns the client used by the adapters.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Do sends req and returns the body of a successful response. Any other
// status is reported with the start of the response body.
func Do(client *http.Client, req *http.Request, service string) ([]byte, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", service, err)
	}

	defer resp.Body.Close()

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: reading response: %w", service, err)
	}

	if resp.StatusCode >= http.StatusMultipleChoices {
		msg := strings.TrimSpace(string(b))
		if len(msg) > maxErrorBody {
			msg = msg[:maxErrorBody]
		}

		return nil, ErrHTTPStatus.Fmt(service, resp.StatusCode, msg)
	}

	return b, nil
}

// Field is a plain form field of a multipart upload.
type Field struct {
	Name  string
	Value string
}

// MultipartAudio encodes fields and the audio file as multipart/form-data.
func MultipartAudio(
	fileField string,
	audio Audio,
	fields ...Field,
) (*bytes.Buffer, string, error) {
	if len(audio.Data) == 0 {
		return nil, "", ErrEmptyAudio
	}

	var body bytes.Buffer

	mw := multipart.NewWriter(&body)

	for _, f := range fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return nil, "", err
		}
	}

	name := audio.Name
	if name == "" {
		name = "audio.mp3"
	}

	fw, err := mw.CreateFormFile(fileField, name)
	if err != nil {
		return nil, "", err
	}

	if _, err := fw.Write(audio.Data); err != nil {
		return nil, "", err
	}

	if err := mw.Close(); err != nil {
		return nil, "", err
	}

	return &body, mw.FormDataContentType(), nil
}
