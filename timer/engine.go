// Package timer implements the tourstudio stopwatch and splits the elapsed
// time into an ordered list of sections (laps)
package timer

import (
	"slices"
	"time"
)

// Clock reports the current instant.
type Clock func() time.Time

// Option configures an Engine.
type Option func(*Engine)

// WithClock replaces the wall clock used by the engine.
func WithClock(c Clock) Option {
	return func(e *Engine) {
		e.now = c
	}
}

// Engine is the stopwatch state for one studio session. Elapsed time is never
// accumulated in the background: it is recomputed from the stored start
// instant whenever it is observed. An Engine is not safe for concurrent use.
type Engine struct {
	now             Clock
	startedAt       time.Time
	sections        []Section
	elapsed         time.Duration
	currentLapStart time.Duration
	running         bool
}

// New returns a stopped engine with no sections.
func New(opts ...Option) *Engine {
	e := &Engine{
		now: time.Now,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Running reports whether the stopwatch is accumulating time.
func (e *Engine) Running() bool {
	return e.running
}

// Start begins a run. Starting a running timer is rejected and changes
// nothing.
func (e *Engine) Start() error {
	if e.running {
		return ErrAlreadyRunning
	}

	e.startedAt = e.now()
	e.running = true

	return nil
}

// Pause folds the current run into the accumulated total. Pausing a stopped
// timer is rejected and changes nothing.
func (e *Engine) Pause() error {
	if !e.running {
		return ErrNotRunning
	}

	e.elapsed += e.now().Sub(e.startedAt)
	e.startedAt = time.Time{}
	e.running = false

	return nil
}

// Toggle starts a stopped timer or pauses a running one.
func (e *Engine) Toggle() error {
	if e.running {
		return e.Pause()
	}

	return e.Start()
}

// Elapsed returns the total running time, excluding paused intervals.
func (e *Engine) Elapsed() time.Duration {
	if e.running {
		return e.elapsed + e.now().Sub(e.startedAt)
	}

	return e.elapsed
}

// CurrentLapStart is the offset at which the open section began.
func (e *Engine) CurrentLapStart() time.Duration {
	return e.currentLapStart
}

// CanStopLap reports whether there is any time to close into a section.
func (e *Engine) CanStopLap() bool {
	return e.running || e.elapsed != 0
}

// StopLap closes the open section at the current elapsed time and opens the
// next one. It works while paused, but not before the timer has run at all.
func (e *Engine) StopLap() (Section, error) {
	if !e.CanStopLap() {
		return Section{}, ErrNothingToClose
	}

	lapEnd := e.Elapsed()

	s := NewSection(DefaultTitle(len(e.sections)+1), e.currentLapStart, lapEnd)

	e.sections = append(e.sections, s)
	e.currentLapStart = lapEnd

	return s, nil
}

// Reset discards the timer state and every section.
func (e *Engine) Reset() {
	e.running = false
	e.startedAt = time.Time{}
	e.elapsed = 0
	e.sections = nil
	e.currentLapStart = 0
}

// Len returns the number of sections.
func (e *Engine) Len() int {
	return len(e.sections)
}

// Sections returns a copy of the sections in creation order.
func (e *Engine) Sections() []Section {
	return slices.Clone(e.sections)
}

// Section returns the section at index i.
func (e *Engine) Section(i int) (Section, error) {
	if err := e.checkIndex(i); err != nil {
		return Section{}, err
	}

	return e.sections[i], nil
}

// Rename replaces the title of section i. Any text is accepted, including an
// empty string.
func (e *Engine) Rename(i int, title string) error {
	if err := e.checkIndex(i); err != nil {
		return err
	}

	e.sections[i].Title = title

	return nil
}

// Delete removes section i. The neighbouring sections keep their timestamps,
// so a gap may be left in the timeline.
func (e *Engine) Delete(i int) error {
	if err := e.checkIndex(i); err != nil {
		return err
	}

	e.sections = slices.Delete(e.sections, i, i+1)

	return nil
}

func (e *Engine) checkIndex(i int) error {
	if i < 0 || i >= len(e.sections) {
		return ErrSectionIndex.Fmt(i+1, len(e.sections))
	}

	return nil
}
