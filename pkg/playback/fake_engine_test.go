package playback

import (
	"sync"
	"time"
)

// fakeEngine is a scripted stand-in for the media engine: tests set its
// readiness signals directly and observe the calls the pool machinery makes.
type fakeEngine struct {
	mu       sync.Mutex
	status   Status
	loads    []string
	playing  bool
	pauses   int
	prerolls int
}

func (f *fakeEngine) Load(locator string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads = append(f.loads, locator)
	// A fresh load always resets readiness until the test scripts otherwise.
	f.status = Status{}
}

func (f *fakeEngine) Play() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = true
}

func (f *fakeEngine) Pause() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.playing = false
	f.pauses++
}

func (f *fakeEngine) Preroll() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prerolls++
}

func (f *fakeEngine) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

func (f *fakeEngine) setStatus(st Status) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = st
}

func (f *fakeEngine) loadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.loads)
}

func (f *fakeEngine) isPlaying() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.playing
}

func (f *fakeEngine) prerollCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.prerolls
}

func ready() Status {
	return Status{ItemReady: true, EngineReady: true, LikelyToKeepUp: true}
}

// newTestPool builds a pool whose three engines are fakes, returned in
// creation order (previous, current, next at the initial tag assignment).
func newTestPool() (*Pool, []*fakeEngine) {
	var engines []*fakeEngine
	pool := NewPool(func() Engine {
		e := &fakeEngine{}
		engines = append(engines, e)
		return e
	})
	return pool, engines
}

func testConfig() Config {
	return Config{
		GateTimeout:    200 * time.Millisecond,
		PrerollTimeout: 100 * time.Millisecond,
		PollInterval:   5 * time.Millisecond,
	}
}
