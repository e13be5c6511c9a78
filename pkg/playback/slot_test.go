package playback

import "testing"

func TestSlotLoadIsIdempotentByValue(t *testing.T) {
	e := &fakeEngine{}
	s := NewSlot(e)

	s.Load("a.mp4")
	s.Load("a.mp4")

	if got := e.loadCount(); got != 1 {
		t.Errorf("loading the same locator twice should attach once, got %d attaches", got)
	}
	if s.Locator() != "a.mp4" {
		t.Errorf("Locator() = %q, want %q", s.Locator(), "a.mp4")
	}
}

func TestSlotLoadReplacesContent(t *testing.T) {
	e := &fakeEngine{}
	s := NewSlot(e)

	s.Load("a.mp4")
	e.setStatus(ready())
	s.Load("b.mp4")

	if got := e.loadCount(); got != 2 {
		t.Fatalf("expected 2 attaches, got %d", got)
	}
	if st := s.Status(); st.EngineReady || st.ItemReady {
		t.Errorf("readiness should reset on replacement, got %+v", st)
	}
}

func TestSlotIgnoresEmptyLocator(t *testing.T) {
	e := &fakeEngine{}
	s := NewSlot(e)

	s.Load("")
	if got := e.loadCount(); got != 0 {
		t.Errorf("empty locator should not reach the engine, got %d attaches", got)
	}

	s.Load("a.mp4")
	s.Load("")
	if s.Locator() != "a.mp4" {
		t.Errorf("empty locator should not clear content, Locator() = %q", s.Locator())
	}
}

func TestSlotPlayPauseRequireContent(t *testing.T) {
	e := &fakeEngine{}
	s := NewSlot(e)

	s.Play()
	s.Pause()
	if e.isPlaying() || e.pauses != 0 {
		t.Error("play/pause should be no-ops with nothing loaded")
	}

	s.Load("a.mp4")
	s.Play()
	if !e.isPlaying() {
		t.Error("play should reach the engine once content is loaded")
	}
	s.Pause()
	if e.isPlaying() {
		t.Error("pause should reach the engine once content is loaded")
	}
}

func TestSlotStatusWithoutContent(t *testing.T) {
	e := &fakeEngine{}
	e.setStatus(Status{Failed: true})
	s := NewSlot(e)

	if st := s.Status(); st != (Status{}) {
		t.Errorf("unloaded slot should report not-ready, got %+v", st)
	}
}
