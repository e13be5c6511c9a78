package feed

import (
	"context"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"feed-frame/pkg/catalog"
	"feed-frame/pkg/input"
	"feed-frame/pkg/performance"
	"feed-frame/pkg/playback"
	"feed-frame/pkg/sharedTypes"
)

type FeedScreen struct {
	source      sharedTypes.FeedSource
	catalog     *catalog.Catalog
	coordinator *playback.Coordinator
	err         error

	// Background manifest fetch bookkeeping
	manifestResultCh chan manifestResult // channel to receive the async fetch result
	manifestPending  bool                // true while the fetch goroutine is running
	ready            bool                // true once the pool has been configured
	startIndex       int                 // index the feed opens on once the manifest arrives

	// Pending swipe gate bookkeeping
	gateResultCh  chan gateResult    // channel to receive async gate decisions
	gatePending   bool               // true while a gate goroutine is running
	gateCancel    context.CancelFunc // cancels the outstanding gate wait
	gateDirection int                // direction of the outstanding gate

	// Input state
	swipes    input.SwipeTracker
	typingKey input.EdgeTracker

	// SDL2-specific fields
	renderer       *sdl.Renderer
	renderersWired map[*playback.Slot]bool // slots whose engine has the renderer attached
	perfMonitor    *performance.Monitor
	lastPerfReport time.Time
}

// Struct used to communicate the result of the background manifest fetch.
type manifestResult struct {
	locators []string
	err      error
}

// Struct used to communicate async gate decisions back to the render loop.
type gateResult struct {
	direction int
	allowed   bool
}
