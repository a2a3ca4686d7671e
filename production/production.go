// Package production drives the AI collaborators (transcription, script
// writing, speech synthesis and sound design) for the sections of a tour.
// Results are keyed by section index and never change section timing.
package production

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/tourstudio/tourstudio/internal/provider"
	"github.com/tourstudio/tourstudio/store"
	"github.com/tourstudio/tourstudio/timer"
)

const defaultTimeout = 2 * time.Minute

// Transcriber converts a recording to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio provider.Audio) (string, error)
}

// ScriptWriter writes narration with a language model.
type ScriptWriter interface {
	WriteScript(ctx context.Context, req provider.ScriptRequest) (provider.Script, error)
	ComposeMusicPrompt(ctx context.Context, req provider.MusicRequest) (string, error)
}

// Synthesizer converts narration to speech.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) ([]byte, error)
	Voices(ctx context.Context) ([]provider.Voice, error)
}

// SoundDesigner generates sound effects from a description.
type SoundDesigner interface {
	SoundEffect(ctx context.Context, description string) ([]byte, error)
}

// Producer owns the collaborators and the artifacts they produce.
type Producer struct {
	db          store.DB
	transcriber Transcriber
	writer      ScriptWriter
	synth       Synthesizer
	designer    SoundDesigner
	voiceID     string
	timeout     time.Duration
}

type Option func(*Producer)

func WithTranscriber(t Transcriber) Option {
	return func(p *Producer) {
		p.transcriber = t
	}
}

func WithScriptWriter(w ScriptWriter) Option {
	return func(p *Producer) {
		p.writer = w
	}
}

func WithSynthesizer(s Synthesizer) Option {
	return func(p *Producer) {
		p.synth = s
	}
}

func WithSoundDesigner(d SoundDesigner) Option {
	return func(p *Producer) {
		p.designer = d
	}
}

// WithVoice selects the narration voice.
func WithVoice(id string) Option {
	return func(p *Producer) {
		p.voiceID = id
	}
}

// WithTimeout bounds every collaborator call.
func WithTimeout(d time.Duration) Option {
	return func(p *Producer) {
		if d > 0 {
			p.timeout = d
		}
	}
}

// New returns a producer that stores its artifacts in db.
func New(db store.DB, opts ...Option) *Producer {
	p := &Producer{
		db:      db,
		timeout: defaultTimeout,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

func (p *Producer) CanTranscribe() bool {
	return p.transcriber != nil
}

func (p *Producer) CanWriteScripts() bool {
	return p.writer != nil
}

func (p *Producer) CanNarrate() bool {
	return p.synth != nil
}

func (p *Producer) CanDesignSound() bool {
	return p.designer != nil
}

// Voice is the selected voice ID.
func (p *Producer) Voice() string {
	return p.voiceID
}

func (p *Producer) SetVoice(id string) {
	p.voiceID = id
}

func (p *Producer) withTimeout(
	ctx context.Context,
) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, p.timeout)
}

// Transcribe converts a brainstorming recording to text and keeps it as the
// session transcript. Successive recordings are appended.
func (p *Producer) Transcribe(
	ctx context.Context,
	audio provider.Audio,
) (string, error) {
	if p.transcriber == nil {
		return "", ErrNoTranscriber
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	text, err := p.transcriber.Transcribe(ctx, audio)
	if err != nil {
		return "", fmt.Errorf("transcribing %s: %w", audio.Name, err)
	}

	prev, err := p.db.Meta(store.Transcript)
	if err != nil {
		return "", err
	}

	if prev != "" {
		text = prev + "\n\n" + text
	}

	if err := p.db.PutMeta(store.Transcript, text); err != nil {
		return "", err
	}

	slog.Info("recording transcribed", slog.String("file", audio.Name))

	return text, nil
}

// Transcript is the text of every recording transcribed this session.
func (p *Producer) Transcript() (string, error) {
	return p.db.Meta(store.Transcript)
}

// GenerateScript requests a narration script for section idx. The section is
// passed by value so its timing is read once, at dispatch.
func (p *Producer) GenerateScript(
	ctx context.Context,
	idx int,
	section timer.Section,
	instructions string,
) (provider.Script, error) {
	if p.writer == nil {
		return provider.Script{}, ErrNoScriptWriter
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	s, err := p.writer.WriteScript(ctx, provider.ScriptRequest{
		Title:        section.Title,
		Duration:     section.Duration,
		Instructions: instructions,
	})
	if err != nil {
		return provider.Script{}, fmt.Errorf(
			"generating script for section %d: %w",
			idx+1,
			err,
		)
	}

	if err := p.db.PutScript(idx, s); err != nil {
		return provider.Script{}, err
	}

	slog.Info(
		"script generated",
		slog.Int("section", idx+1),
		slog.Int("words", s.EstimatedWordCount),
	)

	return s, nil
}

// Script returns the script of section idx, if any.
func (p *Producer) Script(idx int) (provider.Script, bool, error) {
	return p.db.Script(idx)
}

// UpdateScript replaces the narration text of an existing script.
func (p *Producer) UpdateScript(idx int, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyScript
	}

	s, ok, err := p.db.Script(idx)
	if err != nil {
		return err
	}

	if !ok {
		return ErrNoScript.Fmt(idx + 1)
	}

	s.Text = text
	s.EstimatedWordCount = len(strings.Fields(text))

	return p.db.PutScript(idx, s)
}

// Narrate synthesizes the script of section idx with the selected voice.
func (p *Producer) Narrate(ctx context.Context, idx int) ([]byte, error) {
	if p.synth == nil {
		return nil, ErrNoSynthesizer
	}

	if p.voiceID == "" {
		return nil, ErrNoVoice
	}

	s, ok, err := p.db.Script(idx)
	if err != nil {
		return nil, err
	}

	if !ok {
		return nil, ErrNoScript.Fmt(idx + 1)
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	audio, err := p.synth.Synthesize(ctx, s.Text, p.voiceID)
	if err != nil {
		return nil, fmt.Errorf("narrating section %d: %w", idx+1, err)
	}

	if err := p.db.PutNarration(idx, audio); err != nil {
		return nil, err
	}

	slog.Info(
		"narration generated",
		slog.Int("section", idx+1),
		slog.Int("bytes", len(audio)),
	)

	return audio, nil
}

// Narration returns the synthesized narration of section idx, if any.
func (p *Producer) Narration(idx int) ([]byte, bool, error) {
	return p.db.Narration(idx)
}

// SoundEffect generates an effect for section idx and returns its 1-based
// number within the section.
func (p *Producer) SoundEffect(
	ctx context.Context,
	idx int,
	description string,
) (int, error) {
	if p.designer == nil {
		return 0, ErrNoSoundDesigner
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	audio, err := p.designer.SoundEffect(ctx, description)
	if err != nil {
		return 0, fmt.Errorf(
			"generating sound effect for section %d: %w",
			idx+1,
			err,
		)
	}

	return p.db.AddSoundEffect(idx, store.SoundEffect{
		Description: description,
		Audio:       audio,
	})
}

// SoundEffects returns the effects generated for section idx.
func (p *Producer) SoundEffects(idx int) ([]store.SoundEffect, error) {
	return p.db.SoundEffects(idx)
}

// MusicPrompt asks the script writer for a background music prompt covering
// every section.
func (p *Producer) MusicPrompt(
	ctx context.Context,
	sections []timer.Section,
	mood string,
) (string, error) {
	if p.writer == nil {
		return "", ErrNoScriptWriter
	}

	if len(sections) == 0 {
		return "", ErrNoSections
	}

	req := provider.MusicRequest{Mood: mood}

	for _, s := range sections {
		req.Sections = append(req.Sections, provider.MusicSection{
			Title:    s.Title,
			Duration: s.Duration,
		})
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	prompt, err := p.writer.ComposeMusicPrompt(ctx, req)
	if err != nil {
		return "", fmt.Errorf("composing music prompt: %w", err)
	}

	if err := p.db.PutMeta(store.MusicPrompt, prompt); err != nil {
		return "", err
	}

	return prompt, nil
}

// StoredMusicPrompt returns the last music prompt, if any.
func (p *Producer) StoredMusicPrompt() (string, error) {
	return p.db.Meta(store.MusicPrompt)
}

// Voices lists the voices available for narration.
func (p *Producer) Voices(ctx context.Context) ([]provider.Voice, error) {
	if p.synth == nil {
		return nil, ErrNoSynthesizer
	}

	ctx, cancel := p.withTimeout(ctx)
	defer cancel()

	voices, err := p.synth.Voices(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching voices: %w", err)
	}

	return voices, nil
}

// Forget drops the artifacts of a deleted section. Artifacts of later
// sections move down one index so they stay with their section.
func (p *Producer) Forget(idx int) error {
	return p.db.Remove(idx)
}

// Clear drops every section artifact.
func (p *Producer) Clear() error {
	return p.db.Clear()
}

// Status summarizes what has been produced for a section.
type Status struct {
	SoundEffects int
	Script       bool
	Narration    bool
}

// Icons renders the status the way the section list shows it.
func (s Status) Icons() string {
	var icons []string

	if s.Script {
		icons = append(icons, "📝")
	}

	if s.Narration {
		icons = append(icons, "🎤")
	}

	if len(icons) == 0 {
		return "⏱️"
	}

	return strings.Join(icons, " ")
}

// Status reports what exists for section idx.
func (p *Producer) Status(idx int) (Status, error) {
	var st Status

	_, hasScript, err := p.db.Script(idx)
	if err != nil {
		return st, err
	}

	_, hasAudio, err := p.db.Narration(idx)
	if err != nil {
		return st, err
	}

	sfx, err := p.db.SoundEffects(idx)
	if err != nil {
		return st, err
	}

	st.Script = hasScript
	st.Narration = hasAudio
	st.SoundEffects = len(sfx)

	return st, nil
}
