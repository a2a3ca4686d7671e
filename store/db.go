package store

import "github.com/tourstudio/tourstudio/internal/provider"

// SoundEffect is a generated effect attached to a section.
type SoundEffect struct {
	Description string `json:"description"`
	Audio       []byte `json:"audio"`
}

// DB keeps the artifacts of a studio session keyed by section index.
type DB interface {
	// PutScript stores the narration script for a section, replacing any
	// previous one
	PutScript(idx int, s provider.Script) error
	// Script returns the script of a section and whether one exists
	Script(idx int) (provider.Script, bool, error)
	// PutNarration stores the synthesized narration for a section
	PutNarration(idx int, audio []byte) error
	// Narration returns the narration of a section and whether one exists
	Narration(idx int) ([]byte, bool, error)
	// AddSoundEffect appends a sound effect to a section and returns the new
	// number of effects for that section
	AddSoundEffect(idx int, sfx SoundEffect) (int, error)
	// SoundEffects returns the effects of a section in creation order
	SoundEffects(idx int) ([]SoundEffect, error)
	// PutMeta stores a session-wide value such as the transcript
	PutMeta(key, value string) error
	// Meta returns a session-wide value or an empty string
	Meta(key string) (string, error)
	// Remove drops everything stored for a section and moves the artifacts
	// of later sections down by one index
	Remove(idx int) error
	// Clear drops every section artifact
	Clear() error
	// Close releases the database and deletes its file
	Close() error
}
