package playback

import "sync"

// Slot owns one engine handle for the life of the process. The handle is
// created once and never reassigned; only the content loaded into it changes.
type Slot struct {
	engine Engine

	mu      sync.Mutex
	locator string
}

// NewSlot wraps an engine handle in a slot. The slot takes exclusive
// ownership of the handle.
func NewSlot(engine Engine) *Slot {
	return &Slot{engine: engine}
}

// Engine exposes the handle for the render surface. Callers may compare it
// for identity but must not retain ownership.
func (s *Slot) Engine() Engine {
	return s.engine
}

// Locator returns the currently loaded locator, or "" when nothing is loaded.
func (s *Slot) Locator() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.locator
}

// Load attaches new media to the slot's engine. Loading the locator that is
// already attached is a no-op, so rotations that land on identical content
// skip the reload cost entirely. An empty locator is ignored. Otherwise the
// engine detaches its old content and readiness resets to not-ready until the
// engine reports progress.
func (s *Slot) Load(locator string) {
	s.mu.Lock()
	if locator == "" || locator == s.locator {
		s.mu.Unlock()
		return
	}
	s.locator = locator
	s.mu.Unlock()

	s.engine.Load(locator)
}

// Play delegates to the engine; no-op while nothing is loaded.
func (s *Slot) Play() {
	if s.Locator() == "" {
		return
	}
	s.engine.Play()
}

// Pause delegates to the engine; no-op while nothing is loaded.
func (s *Slot) Pause() {
	if s.Locator() == "" {
		return
	}
	s.engine.Pause()
}

// Status reports the engine's readiness signals. An unloaded slot is simply
// not ready rather than failed.
func (s *Slot) Status() Status {
	if s.Locator() == "" {
		return Status{}
	}
	return s.engine.Status()
}
