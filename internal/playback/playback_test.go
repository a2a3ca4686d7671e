package playback

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecodeRejectsGarbage(t *testing.T) {
	_, _, err := Decode([]byte("definitely not an mp3 frame"))
	assert.True(t, errors.Is(err, errDecode))

	_, err = Length(nil)
	assert.True(t, errors.Is(err, errDecode))
}

func TestPlayGarbageDoesNotTouchSpeaker(t *testing.T) {
	p := New()

	err := p.Play(t.Context(), []byte("xx"))
	assert.Error(t, err)
	assert.False(t, p.started)

	// closing an unused player is a no-op
	p.Close()
}
