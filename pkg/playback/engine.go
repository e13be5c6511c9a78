// Package playback implements the three-slot player pool behind the infinite
// feed: a fixed arena of previous/current/next slots, the rotation that keeps
// them content-correct as the viewer steps in either direction, and the
// readiness gate that decides whether a swipe may commit before the target
// slot is prepared.
package playback

// Status is the readiness surface the gating protocol reads from an engine.
type Status struct {
	ItemReady      bool // the media item's metadata is loaded
	EngineReady    bool // the engine can present the item right now
	LikelyToKeepUp bool // the engine expects playback without stalling
	Failed         bool // load or decode failed; cleared by the next Load
}

// Engine is one media-engine handle. Implementations are configured once for
// muted autoplay, seamless single-item looping, a small forward-buffer window
// and an unconstrained peak bitrate; they never auto-advance or stop at end
// of item.
//
// Load is asynchronous: it returns immediately, tears down whatever was
// attached before, and reports progress through Status. All methods must be
// safe for concurrent use because gate and warm-up waits read Status from
// their own goroutines.
type Engine interface {
	Load(locator string)
	Play()
	Pause()
	// Preroll is a best-effort prepare-to-play hint; engines may ignore it.
	Preroll()
	Status() Status
}
