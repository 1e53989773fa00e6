package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// Stats is one reporting interval's worth of measurements.
type Stats struct {
	FPS float64
	// RenderMs is the mean duration of an accumulation pass in milliseconds.
	RenderMs float64
	// Frame is the accumulation frame counter at the end of the interval.
	Frame   uint32
	HeapMB  float64
	SysMB   float64
	GCCount uint32
}

func (s Stats) String() string {
	return fmt.Sprintf("FPS: %.1f | Render: %.2f ms | Frame: %d", s.FPS, s.RenderMs, s.Frame)
}

// Profiler tracks frame rate, render pass time and memory statistics.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	ticks          int
	renderTotal    time.Duration
	rendered       int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
	last           Stats
	quiet          bool

	now func() time.Time
}

// NewProfiler creates a new Profiler.
//
// Parameters:
//   - interval: how often stats are reported; 0 defaults to 1 second
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(interval time.Duration) *Profiler {
	if interval <= 0 {
		interval = time.Second
	}
	return &Profiler{
		lastTime:       time.Now(),
		updateInterval: interval,
		now:            time.Now,
	}
}

// SetQuiet stops Tick from logging. Stats are still collected.
func (p *Profiler) SetQuiet(quiet bool) {
	p.quiet = quiet
}

// Tick should be called once per loop iteration.
// A zero renderTime marks an iteration in which no pass was accumulated.
//
// Parameters:
//   - frame: the renderer's frame counter
//   - renderTime: the duration of this iteration's accumulation pass
//
// Returns:
//   - bool: true if a reporting interval completed on this tick
func (p *Profiler) Tick(frame uint32, renderTime time.Duration) bool {
	p.ticks++
	if renderTime > 0 {
		p.renderTotal += renderTime
		p.rendered++
	}

	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	runtime.ReadMemStats(&p.memStats)
	stats := Stats{
		FPS:     float64(p.ticks) / elapsed.Seconds(),
		Frame:   frame,
		HeapMB:  float64(p.memStats.Alloc) / 1024 / 1024,
		SysMB:   float64(p.memStats.Sys) / 1024 / 1024,
		GCCount: p.memStats.NumGC,
	}
	if p.rendered > 0 {
		stats.RenderMs = float64(p.renderTotal.Microseconds()) / 1000 / float64(p.rendered)
	}

	if !p.quiet {
		allocRateMB := float64(p.memStats.TotalAlloc-p.lastTotalAlloc) / 1024 / 1024 / elapsed.Seconds()
		log.Printf("[Profiler] %s | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d | Sys: %.2f MB",
			stats, stats.HeapMB, allocRateMB, stats.GCCount, stats.SysMB)
	}

	p.last = stats
	p.ticks = 0
	p.rendered = 0
	p.renderTotal = 0
	p.lastTime = currentTime
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// Last returns the stats of the most recently completed interval.
func (p *Profiler) Last() Stats {
	return p.last
}
