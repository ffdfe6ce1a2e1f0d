package profiler

import (
	"runtime"
	"sync"
	"time"

	"github.com/Carmen-Shannon/oxy-shadow/common"
)

// Stats is a snapshot of the shadow work recorded since the last report.
type Stats struct {
	Frames    int
	Lights    int
	Passes    int
	Draws     int
	Triangles int
	Failures  int
}

// Profiler tracks shadow pass statistics and memory for performance monitoring.
// Outputs per-frame averages to the shared logger at a configurable interval.
// It is safe for concurrent use.
type Profiler struct {
	mu *sync.Mutex

	stats          Stats
	lastTime       time.Time
	updateInterval time.Duration
	now            func() time.Time
	memStats       runtime.MemStats
	lastTotalAlloc uint64
	disabled       bool
}

// NewProfiler creates a new Profiler with default settings.
// Update interval defaults to 1 second.
//
// Parameters:
//   - options: functional options to configure the profiler
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(options ...ProfilerBuilderOption) *Profiler {
	p := &Profiler{
		mu:             &sync.Mutex{},
		updateInterval: time.Second,
		now:            time.Now,
	}
	for _, opt := range options {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// RecordLight counts one light processed this frame, failed or not.
func (p *Profiler) RecordLight(failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disabled {
		return
	}
	p.stats.Lights++
	if failed {
		p.stats.Failures++
	}
}

// RecordPass counts one depth pass with its draw calls and triangles.
//
// Parameters:
//   - draws: number of casters drawn by the pass
//   - triangles: total triangle count of those casters
func (p *Profiler) RecordPass(draws, triangles int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.disabled {
		return
	}
	p.stats.Passes++
	p.stats.Draws += draws
	p.stats.Triangles += triangles
}

// Stats returns the counters accumulated since the last report.
func (p *Profiler) Stats() Stats {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stats
}

// Tick should be called once per frame after all lights are processed.
// Logs averaged shadow statistics and heap usage when the update interval has elapsed,
// then resets the counters.
//
// Returns:
//   - bool: true if stats were logged this tick, false otherwise
func (p *Profiler) Tick() bool {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.disabled {
		return false
	}
	p.stats.Frames++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval {
		return false
	}

	frames := float64(p.stats.Frames)
	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc

	common.Logger().Info("shadow profiler",
		"fps", frames/elapsed.Seconds(),
		"lights_per_frame", float64(p.stats.Lights)/frames,
		"passes_per_frame", float64(p.stats.Passes)/frames,
		"draws_per_frame", float64(p.stats.Draws)/frames,
		"triangles_per_frame", float64(p.stats.Triangles)/frames,
		"failures", p.stats.Failures,
		"heap_mb", float64(p.memStats.Alloc)/1024/1024,
		"alloc_rate_mb_s", float64(allocDelta)/1024/1024/elapsed.Seconds(),
	)

	p.stats = Stats{}
	p.lastTime = currentTime
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return true
}

// SetEnabled turns recording on or off. A disabled profiler ignores every call and
// starts a fresh interval when enabled again.
func (p *Profiler) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if enabled && p.disabled {
		p.stats = Stats{}
		p.lastTime = p.now()
	}
	p.disabled = !enabled
}
