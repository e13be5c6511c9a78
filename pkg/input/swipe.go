package input

import "github.com/veandco/go-sdl2/sdl"

// SwipeTracker maps vertical navigation keys onto feed directions: down and
// page-down step forward (+1), up and page-up step backward (-1). Edges only,
// so a held key produces a single swipe attempt.
type SwipeTracker struct {
	keys EdgeTracker
}

// NewSwipeTracker creates a new SwipeTracker
func NewSwipeTracker() SwipeTracker {
	return SwipeTracker{keys: NewEdgeTracker()}
}

// Direction returns the swipe direction for this frame, or 0 when no
// navigation key was just pressed. A nil keyState (UI popup active) reports
// no swipe.
func (st *SwipeTracker) Direction(keyState []uint8) int {
	if keyState == nil {
		return 0
	}

	// Evaluate every key each frame so edge state stays fresh.
	down := st.keys.JustPressed(keyState, sdl.SCANCODE_DOWN)
	pageDown := st.keys.JustPressed(keyState, sdl.SCANCODE_PAGEDOWN)
	up := st.keys.JustPressed(keyState, sdl.SCANCODE_UP)
	pageUp := st.keys.JustPressed(keyState, sdl.SCANCODE_PAGEUP)

	switch {
	case down || pageDown:
		return 1
	case up || pageUp:
		return -1
	default:
		return 0
	}
}
