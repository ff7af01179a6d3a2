package profiler

import (
	"fmt"
	"log"
	"runtime"
	"time"
)

// FrameStats are the per-frame counters reported by the frame loop.
type FrameStats struct {
	Passes    int // render passes issued (1 mono, 2 anaglyph)
	Drawn     int // object draws summed over all passes
	Culled    int // object draws skipped by frustum culling
	Respawned int // particles respawned this frame
}

// Profiler tracks frame rate, draw counts and memory statistics for performance monitoring.
// Outputs stats to the log at a configurable interval.
type Profiler struct {
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastGCCount    uint32
	lastTotalAlloc uint64

	label     string
	drawn     int
	culled    int
	respawned int
	passes    int

	now  func() time.Time
	logf func(format string, args ...any)
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerOption) *Profiler {
	p := &Profiler{
		updateInterval: time.Second,
		memStats:       runtime.MemStats{},
		now:            time.Now,
		logf:           log.Printf,
	}
	for _, option := range options {
		option(p)
	}
	p.lastTime = p.now()
	return p
}

// SetLabel sets the text prefixed to the frame counters, typically the scene and stereo mode.
//
// Parameters:
//   - label: a short description of what is being rendered
func (p *Profiler) SetLabel(label string) {
	p.label = label
}

// Record accumulates the counters of one frame.
//
// Parameters:
//   - stats: the frame's counters
func (p *Profiler) Record(stats FrameStats) {
	p.drawn += stats.Drawn
	p.culled += stats.Culled
	p.respawned += stats.Respawned
	p.passes = stats.Passes
}

// Reset restarts the measurement window, used when profiling is toggled on.
func (p *Profiler) Reset() {
	p.frameCount = 0
	p.drawn, p.culled, p.respawned = 0, 0, 0
	p.lastTime = p.now()
}

// Tick should be called once per frame to track frame timing.
// Logs performance statistics when the update interval has elapsed.
// Statistics include: FPS, draws per frame, culled draws, particle respawns,
// heap usage, allocation rate, GC count/pause times, total memory.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)

	if elapsed >= p.updateInterval {
		fps := float64(p.frameCount) / elapsed.Seconds()
		drawsPerFrame := float64(p.drawn) / float64(p.frameCount)

		runtime.ReadMemStats(&p.memStats)
		// Alloc: Bytes of allocated heap objects (live memory)
		// Sys: Total bytes of memory obtained from the OS (actual process footprint)
		allocMB := float64(p.memStats.Alloc) / 1024 / 1024
		sysMB := float64(p.memStats.Sys) / 1024 / 1024

		allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
		allocRateMB := float64(allocDelta) / 1024 / 1024 / elapsed.Seconds()

		gcCount := p.memStats.NumGC
		var lastPauseUs, maxPauseUs uint64
		if gcCount > 0 {
			// PauseNs is a circular buffer of last 256 GC pauses
			lastPauseUs = p.memStats.PauseNs[(gcCount-1)%256] / 1000

			startIdx := p.lastGCCount
			if gcCount-startIdx > 256 {
				startIdx = gcCount - 256
			}
			for i := startIdx; i < gcCount; i++ {
				pause := p.memStats.PauseNs[i%256] / 1000
				if pause > maxPauseUs {
					maxPauseUs = pause
				}
			}
		}

		p.logf("[Profiler] %sFPS: %.2f | Passes: %d | Draws/frame: %.1f | Culled: %d | Respawns: %d | Heap: %.2f MB | Alloc Rate: %.2f MB/s | GC: %d (last: %d µs, max: %d µs) | Sys: %.2f MB",
			p.prefix(), fps, p.passes, drawsPerFrame, p.culled, p.respawned, allocMB, allocRateMB, gcCount, lastPauseUs, maxPauseUs, sysMB)

		p.frameCount = 0
		p.drawn, p.culled, p.respawned = 0, 0, 0
		p.lastTime = currentTime
		p.lastGCCount = gcCount
		p.lastTotalAlloc = p.memStats.TotalAlloc
		return true
	}

	return false
}

func (p *Profiler) prefix() string {
	if p.label == "" {
		return ""
	}
	return fmt.Sprintf("%s | ", p.label)
}
