package playback

import (
	"log"
	"sync"
)

// Pool is the fixed arena of exactly three player slots. The slots are
// created once and mutated in place for the life of the feed; the
// previous/current/next tags are a permutation over the arena, reassigned by
// rotation and never by destroying a slot.
type Pool struct {
	mu    sync.Mutex
	slots [3]*Slot
	// tag -> arena index
	prev, cur, next int
}

// NewPool builds the arena from an engine factory, one handle per slot.
func NewPool(newEngine func() Engine) *Pool {
	p := &Pool{prev: 0, cur: 1, next: 2}
	for i := range p.slots {
		p.slots[i] = NewSlot(newEngine())
	}
	return p
}

// Previous returns the slot currently tagged previous.
func (p *Pool) Previous() *Slot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slots[p.prev]
}

// Current returns the slot currently tagged current.
func (p *Pool) Current() *Slot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slots[p.cur]
}

// Next returns the slot currently tagged next.
func (p *Pool) Next() *Slot {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.slots[p.next]
}

// RotateForward re-tags the arena after a committed forward navigation: the
// slot that was current becomes previous, the slot that was next becomes
// current, and the slot that was previous becomes the new next. Engine
// handles stay exactly where they are, so the freshly gated content keeps the
// playback state it buffered. The new next slot still holds stale content;
// the caller loads fresh content into it afterwards.
//
// If the slot about to become current has nothing loaded (initial warm-up),
// the rotation is skipped so the viewer never lands on an empty slot.
func (p *Pool) RotateForward() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.slots[p.next].Locator() == "" {
		log.Printf("Pool.RotateForward: next slot empty, rotation skipped")
		return
	}
	p.prev, p.cur, p.next = p.cur, p.next, p.prev
}

// RotateBackward is the symmetric re-tagging for backward navigation:
// current becomes next, previous becomes current, and the old next becomes
// the new previous for the caller to refresh.
func (p *Pool) RotateBackward() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.slots[p.prev].Locator() == "" {
		log.Printf("Pool.RotateBackward: previous slot empty, rotation skipped")
		return
	}
	p.prev, p.cur, p.next = p.next, p.prev, p.cur
}
