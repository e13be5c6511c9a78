package input

import "github.com/veandco/go-sdl2/sdl"

// EdgeTracker turns SDL's level-triggered keyboard state into edges, so a
// held key fires an action exactly once.
type EdgeTracker struct {
	held map[sdl.Scancode]bool
}

// NewEdgeTracker creates a new EdgeTracker
func NewEdgeTracker() EdgeTracker {
	return EdgeTracker{held: make(map[sdl.Scancode]bool)}
}

// JustPressed reports whether the key went down this frame. It must be called
// every frame for each tracked key to keep the edge state fresh.
func (et *EdgeTracker) JustPressed(keyState []uint8, scancode sdl.Scancode) bool {
	down := keyState[scancode] != 0
	was := et.held[scancode]
	et.held[scancode] = down
	return down && !was
}
