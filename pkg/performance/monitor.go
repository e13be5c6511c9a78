package performance

import (
	"sync"
	"time"
)

// rollingAverage maintains an average of durations over a fixed window.
type rollingAverage struct {
	samples []time.Duration
	sum     time.Duration
	index   int
	filled  bool
}

func newRollingAverage(windowSize int) *rollingAverage {
	return &rollingAverage{samples: make([]time.Duration, windowSize)}
}

func (r *rollingAverage) add(d time.Duration) {
	if r.filled {
		r.sum -= r.samples[r.index]
	}
	r.samples[r.index] = d
	r.sum += d

	r.index++
	if r.index >= len(r.samples) {
		r.index = 0
		r.filled = true
	}
}

func (r *rollingAverage) average() time.Duration {
	count := r.index
	if r.filled {
		count = len(r.samples)
	}
	if count == 0 {
		return 0
	}
	return r.sum / time.Duration(count)
}

// Monitor tracks decode and render times for the feed so playback health can
// be logged without a profiler attached.
type Monitor struct {
	mu          sync.Mutex
	decodeTimes *rollingAverage
	renderTimes *rollingAverage
	totalFrames int
	startTime   time.Time
}

// Report contains aggregated playback timing metrics.
type Report struct {
	AvgDecodeMs   float64 // average decode time in milliseconds
	AvgRenderMs   float64 // average render time in milliseconds
	TotalFrames   int     // total frames processed
	UptimeSeconds int64   // seconds since the monitor started
}

// NewMonitor creates a monitor averaging over the last windowSize frames
// (120 = 2 seconds at 60fps).
func NewMonitor(windowSize int) *Monitor {
	return &Monitor{
		decodeTimes: newRollingAverage(windowSize),
		renderTimes: newRollingAverage(windowSize),
		startTime:   time.Now(),
	}
}

// RecordDecode records the time spent advancing the current slot's frames.
func (m *Monitor) RecordDecode(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.decodeTimes.add(d)
	m.totalFrames++
}

// RecordRender records the time spent drawing the current frame.
func (m *Monitor) RecordRender(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.renderTimes.add(d)
}

// GetReport returns a snapshot of the current metrics.
func (m *Monitor) GetReport() Report {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Report{
		AvgDecodeMs:   float64(m.decodeTimes.average().Microseconds()) / 1000.0,
		AvgRenderMs:   float64(m.renderTimes.average().Microseconds()) / 1000.0,
		TotalFrames:   m.totalFrames,
		UptimeSeconds: int64(time.Since(m.startTime).Seconds()),
	}
}
