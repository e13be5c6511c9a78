package playback

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"feed-frame/pkg/sharedTypes"
)

// Source resolves a global feed index to content. *catalog.Catalog satisfies
// it; the coordinator holds the reference without owning it.
type Source interface {
	ItemAt(globalIndex int) sharedTypes.ContentItem
}

// Config carries the wall-clock bounds of the gating protocol. Everything is
// a field so tests can run the same state machine in milliseconds.
type Config struct {
	// GateTimeout bounds how long a swipe may wait for the target slot.
	GateTimeout time.Duration
	// PrerollTimeout bounds the fire-and-forget warm-up wait.
	PrerollTimeout time.Duration
	// PollInterval is the cooperative readiness polling period.
	PollInterval time.Duration
}

// DefaultConfig returns the production timing values.
func DefaultConfig() Config {
	return Config{
		GateTimeout:    8 * time.Second,
		PrerollTimeout: 5 * time.Second,
		PollInterval:   150 * time.Millisecond,
	}
}

// Coordinator orchestrates the catalog and the pool: it computes which
// locator belongs in each slot for the current index, runs the readiness gate
// for pending navigation, and commits index changes plus pre-roll of the
// newly exposed edge slot.
//
// All state mutation (ConfigureInitial, Commit, SetTyping) is expected from a
// single owning goroutine, the UI loop. Gate and warm-up waits run on their
// own goroutines but only read slot status; commits are never interleaved.
type Coordinator struct {
	source Source
	pool   *Pool
	cfg    Config

	mu           sync.Mutex
	currentIndex int
	typing       bool
	gateOpen     bool
	gateSeq      uint64
	gateCancel   context.CancelFunc
}

// NewCoordinator wires the coordinator to its catalog source and slot pool.
func NewCoordinator(source Source, pool *Pool, cfg Config) *Coordinator {
	return &Coordinator{source: source, pool: pool, cfg: cfg}
}

// CurrentIndex is the single source of truth for what the viewer is looking
// at. It changes only inside a successful commit.
func (c *Coordinator) CurrentIndex() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.currentIndex
}

// Slots exposes the three slot handles for the render surface.
func (c *Coordinator) Slots() (previous, current, next *Slot) {
	return c.pool.Previous(), c.pool.Current(), c.pool.Next()
}

// ShowLoadingGate reports whether a gate wait is pending, for the
// transition-blocking overlay.
func (c *Coordinator) ShowLoadingGate() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.gateOpen
}

// ConfigureInitial seeds the pool around startIndex: current plays
// immediately, next is pre-rolled in the background, previous is loaded so a
// backward swipe has content waiting.
func (c *Coordinator) ConfigureInitial(startIndex int) {
	c.mu.Lock()
	c.currentIndex = startIndex
	c.mu.Unlock()

	c.pool.Current().Load(c.source.ItemAt(startIndex).Locator)
	c.pool.Next().Load(c.source.ItemAt(startIndex + 1).Locator)
	c.pool.Previous().Load(c.source.ItemAt(startIndex - 1).Locator)

	c.pool.Current().Play()
	go c.warmUp(c.pool.Next())

	log.Printf("Coordinator.ConfigureInitial: index=%d", startIndex)
}

// Gate decides whether a swipe in the given direction may commit. Direction 0
// trivially allows without polling. While typing, every nonzero direction is
// denied outright.
//
// Otherwise the target slot (next for forward, previous for backward) is
// polled every PollInterval, up to GateTimeout: a failed target denies
// immediately; a target that is item-ready, engine-ready and likely to keep
// up allows immediately; at the deadline the swipe is still allowed as long
// as item and engine are ready, stall risk or not.
//
// The wait is cancellable through ctx, and a newer Gate call or a
// typing-state change supersedes it - the stale wait resolves false and stops
// polling.
func (c *Coordinator) Gate(ctx context.Context, direction int) bool {
	if direction == 0 {
		return true
	}

	c.mu.Lock()
	if c.typing {
		c.mu.Unlock()
		return false
	}
	if c.gateCancel != nil {
		// Supersede the outstanding wait.
		c.gateCancel()
	}
	ctx, cancel := context.WithTimeout(ctx, c.cfg.GateTimeout)
	c.gateSeq++
	seq := c.gateSeq
	c.gateCancel = cancel
	c.gateOpen = true
	c.mu.Unlock()

	defer func() {
		cancel()
		c.mu.Lock()
		if c.gateSeq == seq {
			c.gateOpen = false
			c.gateCancel = nil
		}
		c.mu.Unlock()
	}()

	target := c.pool.Next()
	if direction < 0 {
		target = c.pool.Previous()
	}

	trace := uuid.NewString()[:8]
	log.Printf("Gate[%s]: direction=%d target=%s", trace, direction, target.Locator())

	ticker := time.NewTicker(c.cfg.PollInterval)
	defer ticker.Stop()

	for {
		st := target.Status()
		switch {
		case st.Failed:
			log.Printf("Gate[%s]: denied, target failed", trace)
			return false
		case st.ItemReady && st.EngineReady && st.LikelyToKeepUp:
			log.Printf("Gate[%s]: allowed", trace)
			return true
		}

		select {
		case <-ctx.Done():
			if ctx.Err() == context.DeadlineExceeded {
				// Inherited fallback policy: allow on item+engine readiness
				// alone, accepting the stall risk on slow sources.
				st := target.Status()
				allow := st.ItemReady && st.EngineReady && !st.Failed
				log.Printf("Gate[%s]: timeout, fallback allow=%t", trace, allow)
				return allow
			}
			log.Printf("Gate[%s]: cancelled", trace)
			return false
		case <-ticker.C:
		}
	}
}

// Commit applies an approved navigation: the index moves by one, the pool
// rotates, the freshly exposed edge slot is loaded from the catalog, the
// current slot resumes, and the edge is pre-rolled in the background.
// Direction 0 is a no-op. Calling Commit without a prior gate approval is a
// caller contract violation - content correctness is then on the caller, but
// pool tags and the index stay coherent.
func (c *Coordinator) Commit(direction int) {
	if direction == 0 {
		return
	}

	c.mu.Lock()
	if direction > 0 {
		c.currentIndex++
	} else {
		c.currentIndex--
	}
	index := c.currentIndex
	c.mu.Unlock()

	var edge *Slot
	if direction > 0 {
		c.pool.RotateForward()
		edge = c.pool.Next()
		edge.Load(c.source.ItemAt(index + 1).Locator)
	} else {
		c.pool.RotateBackward()
		edge = c.pool.Previous()
		edge.Load(c.source.ItemAt(index - 1).Locator)
	}

	c.pool.Current().Play()
	go c.warmUp(edge)

	log.Printf("Coordinator.Commit: direction=%d index=%d", direction, index)
}

// SetTyping toggles composition focus. Entering typing pauses the current
// slot and cancels any pending gate wait; leaving it resumes playback.
func (c *Coordinator) SetTyping(typing bool) {
	c.mu.Lock()
	if c.typing == typing {
		c.mu.Unlock()
		return
	}
	c.typing = typing
	if typing && c.gateCancel != nil {
		c.gateCancel()
	}
	c.mu.Unlock()

	if typing {
		c.pool.Current().Pause()
	} else {
		c.pool.Current().Play()
	}
	log.Printf("Coordinator.SetTyping: typing=%t", typing)
}

// Typing reports whether composition focus is active.
func (c *Coordinator) Typing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.typing
}

// warmUp is the fire-and-forget pre-roll: wait for the slot to become ready,
// then issue a best-effort prepare-to-play hint. Failure and timeout are
// swallowed - pre-roll is an optimization, never a correctness requirement.
func (c *Coordinator) warmUp(slot *Slot) {
	trace := uuid.NewString()[:8]
	deadline := time.Now().Add(c.cfg.PrerollTimeout)

	for {
		st := slot.Status()
		switch {
		case st.Failed:
			log.Printf("warmUp[%s]: target failed, no preroll", trace)
			return
		case st.ItemReady && st.EngineReady:
			slot.Engine().Preroll()
			log.Printf("warmUp[%s]: preroll hint issued for %s", trace, slot.Locator())
			return
		}
		if time.Now().After(deadline) {
			log.Printf("warmUp[%s]: timed out waiting for readiness", trace)
			return
		}
		time.Sleep(c.cfg.PollInterval)
	}
}
