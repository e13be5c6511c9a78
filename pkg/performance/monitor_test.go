package performance

import (
	"testing"
	"time"
)

func TestRollingAverageWindow(t *testing.T) {
	r := newRollingAverage(2)

	if got := r.average(); got != 0 {
		t.Errorf("empty average = %v, want 0", got)
	}

	r.add(10 * time.Millisecond)
	r.add(20 * time.Millisecond)
	if got := r.average(); got != 15*time.Millisecond {
		t.Errorf("average = %v, want 15ms", got)
	}

	// Window slides: the 10ms sample falls out.
	r.add(40 * time.Millisecond)
	if got := r.average(); got != 30*time.Millisecond {
		t.Errorf("average after slide = %v, want 30ms", got)
	}
}

func TestMonitorReport(t *testing.T) {
	m := NewMonitor(4)
	m.RecordDecode(8 * time.Millisecond)
	m.RecordDecode(12 * time.Millisecond)
	m.RecordRender(2 * time.Millisecond)

	report := m.GetReport()
	if report.AvgDecodeMs != 10.0 {
		t.Errorf("AvgDecodeMs = %v, want 10", report.AvgDecodeMs)
	}
	if report.AvgRenderMs != 2.0 {
		t.Errorf("AvgRenderMs = %v, want 2", report.AvgRenderMs)
	}
	if report.TotalFrames != 2 {
		t.Errorf("TotalFrames = %d, want 2", report.TotalFrames)
	}
}
