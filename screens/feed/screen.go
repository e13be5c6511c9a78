package feed

import (
	"context"
	"log"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"feed-frame/pkg/catalog"
	"feed-frame/pkg/engine"
	"feed-frame/pkg/input"
	"feed-frame/pkg/manifest"
	"feed-frame/pkg/performance"
	"feed-frame/pkg/playback"
	"feed-frame/pkg/sharedTypes"
)

const perfReportInterval = 5 * time.Second

// NewFeedScreen creates the feed screen and starts the manifest fetch in the
// background. The screen draws a loading fill until the catalog arrives and
// the pool is configured.
func NewFeedScreen(source sharedTypes.FeedSource, startIndex int) *FeedScreen {
	cat := catalog.New()
	pool := playback.NewPool(func() playback.Engine { return engine.NewPlayer() })
	coordinator := playback.NewCoordinator(cat, pool, playback.DefaultConfig())

	s := &FeedScreen{
		source:           source,
		catalog:          cat,
		coordinator:      coordinator,
		startIndex:       startIndex,
		manifestResultCh: make(chan manifestResult, 1),
		manifestPending:  true,
		gateResultCh:     make(chan gateResult, 1),
		swipes:           input.NewSwipeTracker(),
		typingKey:        input.NewEdgeTracker(),
		renderersWired:   make(map[*playback.Slot]bool),
		perfMonitor:      performance.NewMonitor(120),
		lastPerfReport:   time.Now(),
	}

	go func() {
		locators, err := manifest.Fetch(source.Manifest)
		s.manifestResultCh <- manifestResult{locators: locators, err: err}
	}()

	return s
}

// SetRenderer configures the SDL2 renderer used by the slot engines.
func (s *FeedScreen) SetRenderer(renderer *sdl.Renderer) {
	s.renderer = renderer
}

// Update processes input and advances the feed by one frame.
func (s *FeedScreen) Update(keyState []uint8) error {
	s.handleManifestResult()
	if s.err != nil || !s.ready {
		return nil
	}

	s.wireRenderers()
	s.updateEngines()
	s.handleInput(keyState)
	s.handleGateResults()
	s.reportPerformance()
	return nil
}

// handleManifestResult consumes the background fetch result once it arrives.
func (s *FeedScreen) handleManifestResult() {
	if !s.manifestPending {
		return
	}
	select {
	case result := <-s.manifestResultCh:
		s.manifestPending = false
		if result.err != nil {
			log.Printf("FeedScreen: manifest fetch failed | source=%s err=%v", s.source.Manifest, result.err)
			s.err = result.err
			return
		}
		s.catalog.SetItems(result.locators)
		s.coordinator.ConfigureInitial(s.startIndex)
		s.ready = true
		log.Printf("FeedScreen: feed ready | title=%s items=%d", s.source.Title, s.catalog.Len())
	default:
	}
}

// wireRenderers hands the renderer to any slot engine that does not have it
// yet. Slot engines are fixed for the life of the pool, so each is wired once.
func (s *FeedScreen) wireRenderers() {
	if s.renderer == nil {
		return
	}
	previous, current, next := s.coordinator.Slots()
	for _, slot := range []*playback.Slot{previous, current, next} {
		if s.renderersWired[slot] {
			continue
		}
		if player, ok := slot.Engine().(*engine.Player); ok {
			player.SetRenderer(s.renderer)
			s.renderersWired[slot] = true
		}
	}
}

// updateEngines ticks all three slot engines so offscreen slots keep decoding
// toward readiness while the current one plays.
func (s *FeedScreen) updateEngines() {
	start := time.Now()
	previous, current, next := s.coordinator.Slots()
	for _, slot := range []*playback.Slot{previous, current, next} {
		if player, ok := slot.Engine().(*engine.Player); ok {
			player.Update()
		}
	}
	s.perfMonitor.RecordDecode(time.Since(start))
}

// handleInput processes SDL2 keyboard input. A nil keyState (UI popup active)
// skips input for the frame.
func (s *FeedScreen) handleInput(keyState []uint8) {
	if keyState == nil {
		return
	}

	// Return toggles composition focus: playback pauses and swipes are denied
	// while the viewer is typing.
	if s.typingKey.JustPressed(keyState, sdl.SCANCODE_RETURN) {
		s.coordinator.SetTyping(!s.coordinator.Typing())
	}

	if direction := s.swipes.Direction(keyState); direction != 0 {
		s.requestSwipe(direction)
	}
}

// requestSwipe starts a gate wait for the given direction. A repeat in the
// same direction is ignored while its gate is pending; a reversed direction
// supersedes the outstanding wait.
func (s *FeedScreen) requestSwipe(direction int) {
	if s.gatePending {
		if direction == s.gateDirection {
			return
		}
		s.gateCancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.gateCancel = cancel
	s.gateDirection = direction
	s.gatePending = true

	go func() {
		allowed := s.coordinator.Gate(ctx, direction)
		s.gateResultCh <- gateResult{direction: direction, allowed: allowed}
	}()
}

// handleGateResults drains finished gate waits and commits approved swipes.
func (s *FeedScreen) handleGateResults() {
	for {
		select {
		case result := <-s.gateResultCh:
			if !s.gatePending || result.direction != s.gateDirection {
				// Superseded wait resolving late.
				continue
			}
			s.gatePending = false
			s.gateCancel()
			s.gateCancel = nil

			if result.allowed {
				s.coordinator.Commit(result.direction)
			} else {
				log.Printf("FeedScreen: swipe denied | direction=%d index=%d", result.direction, s.coordinator.CurrentIndex())
			}
		default:
			return
		}
	}
}

// reportPerformance logs playback health at a fixed cadence.
func (s *FeedScreen) reportPerformance() {
	if time.Since(s.lastPerfReport) < perfReportInterval {
		return
	}
	s.lastPerfReport = time.Now()

	report := s.perfMonitor.GetReport()
	log.Printf("FeedScreen: perf | decode=%.2fms render=%.2fms frames=%d uptime=%ds index=%d",
		report.AvgDecodeMs, report.AvgRenderMs, report.TotalFrames, report.UptimeSeconds, s.coordinator.CurrentIndex())
}

// Draw renders the feed: an error fill if the manifest failed, a dark loading
// fill until the feed is ready, otherwise the current slot letterboxed, with a
// translucent overlay while a gate wait is pending.
func (s *FeedScreen) Draw(renderer *sdl.Renderer, w, h int32) {
	full := sdl.Rect{W: w, H: h}

	if s.err != nil {
		renderer.SetDrawColor(48, 8, 8, 255)
		renderer.FillRect(&full)
		return
	}
	if !s.ready {
		renderer.SetDrawColor(12, 12, 12, 255)
		renderer.FillRect(&full)
		return
	}

	_, current, _ := s.coordinator.Slots()
	if player, ok := current.Engine().(*engine.Player); ok {
		start := time.Now()
		player.Draw(renderer, w, h)
		s.perfMonitor.RecordRender(time.Since(start))
	}

	if s.coordinator.ShowLoadingGate() {
		renderer.SetDrawColor(0, 0, 0, 140)
		renderer.FillRect(&full)
	}
}

// Close releases every slot engine's decoder and texture.
func (s *FeedScreen) Close() {
	previous, current, next := s.coordinator.Slots()
	for _, slot := range []*playback.Slot{previous, current, next} {
		if player, ok := slot.Engine().(*engine.Player); ok {
			player.Close()
		}
	}
}
