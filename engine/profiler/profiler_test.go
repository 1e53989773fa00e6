package profiler

import (
	"strings"
	"testing"
	"time"
)

func TestTickReportsAtInterval(t *testing.T) {
	start := time.Unix(1000, 0)
	clock := start
	p := NewProfiler(time.Second)
	p.SetQuiet(true)
	p.lastTime = start
	p.now = func() time.Time { return clock }

	for i := range 9 {
		clock = start.Add(time.Duration(i+1) * 100 * time.Millisecond)
		if p.Tick(uint32(i+1), 2*time.Millisecond) {
			t.Fatalf("tick %d reported before the interval elapsed", i)
		}
	}

	clock = start.Add(time.Second)
	if !p.Tick(10, 0) {
		t.Fatal("tick at the interval did not report")
	}

	s := p.Last()
	if s.FPS != 10 {
		t.Errorf("FPS = %v, want 10", s.FPS)
	}
	if s.RenderMs != 2 {
		t.Errorf("RenderMs = %v, want 2 (idle ticks excluded)", s.RenderMs)
	}
	if s.Frame != 10 {
		t.Errorf("Frame = %d, want 10", s.Frame)
	}
	if !strings.Contains(s.String(), "Frame: 10") {
		t.Errorf("String() = %q", s.String())
	}
}

func TestNewProfilerDefaultsInterval(t *testing.T) {
	if p := NewProfiler(0); p.updateInterval != time.Second {
		t.Errorf("interval = %v, want 1s", p.updateInterval)
	}
}
