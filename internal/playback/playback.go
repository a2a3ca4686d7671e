// Package playback previews generated narration and sound effects through
// the system speaker.
package playback

import (
	"bytes"
	"context"
	"io"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/mp3"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/tourstudio/tourstudio/internal/apperr"
)

const (
	sampleRate = beep.SampleRate(44100)
	// resampling quality passed to beep.Resample
	quality = 4
)

var errDecode = &apperr.Error{
	Message: "unable to decode mp3 audio",
}

// Player plays MP3 clips one at a time.
type Player struct {
	initErr error
	cancel  context.CancelFunc
	once    sync.Once
	mu      sync.Mutex
	clip    uint64
	started bool
}

func New() *Player {
	return &Player{}
}

func (p *Player) init() error {
	p.once.Do(func() {
		p.initErr = speaker.Init(sampleRate, sampleRate.N(time.Second/10))
		p.started = p.initErr == nil
	})

	return p.initErr
}

// Decode opens an MP3 clip held in memory.
func Decode(audio []byte) (beep.StreamSeekCloser, beep.Format, error) {
	stream, format, err := mp3.Decode(io.NopCloser(bytes.NewReader(audio)))
	if err != nil {
		return nil, format, errDecode.Wrap(err)
	}

	return stream, format, nil
}

// Length is the playing time of an MP3 clip.
func Length(audio []byte) (time.Duration, error) {
	stream, format, err := Decode(audio)
	if err != nil {
		return 0, err
	}

	defer stream.Close()

	return format.SampleRate.D(stream.Len()), nil
}

// Play blocks until the clip ends, ctx is cancelled or Stop is called.
// Starting a new clip stops the previous one.
func (p *Player) Play(ctx context.Context, audio []byte) error {
	stream, format, err := Decode(audio)
	if err != nil {
		return err
	}

	defer stream.Close()

	if err := p.init(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	p.mu.Lock()
	if p.cancel != nil {
		p.cancel()
	}

	p.clip++
	clip := p.clip
	p.cancel = cancel
	p.mu.Unlock()

	done := make(chan struct{})

	var s beep.Streamer = stream
	if format.SampleRate != sampleRate {
		s = beep.Resample(quality, format.SampleRate, sampleRate, stream)
	}

	speaker.Clear()
	speaker.Play(beep.Seq(s, beep.Callback(func() {
		close(done)
	})))

	select {
	case <-done:
	case <-ctx.Done():
		p.mu.Lock()
		// a newer clip has already replaced this one on the speaker
		if clip == p.clip {
			speaker.Clear()
		}
		p.mu.Unlock()
	}

	return nil
}

// Stop interrupts the clip that is playing, if any.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// Close releases the speaker.
func (p *Player) Close() {
	p.Stop()

	if p.started {
		speaker.Close()
	}
}
