package profiler

import (
	"log/slog"
	"runtime"
	"sync"
	"time"
)

// Stats is one profiler report.
type Stats struct {
	Frames      int
	Elapsed     time.Duration
	FPS         float64
	HeapMB      float64
	AllocRateMB float64
	NumGC       uint32
	SysMB       float64
}

// Profiler tracks frame rate and memory statistics and logs them at a fixed interval.
type Profiler struct {
	mu             sync.Mutex
	logger         *slog.Logger
	now            func() time.Time
	frameCount     int
	lastTime       time.Time
	updateInterval time.Duration
	memStats       runtime.MemStats
	lastTotalAlloc uint64
}

// ProfilerOption configures a Profiler.
type ProfilerOption func(*Profiler)

// WithInterval sets how often stats are reported. Defaults to 1 second.
//
// Parameters:
//   - d: the report interval
//
// Returns:
//   - ProfilerOption: a function that applies the interval
func WithInterval(d time.Duration) ProfilerOption {
	return func(p *Profiler) {
		p.updateInterval = d
	}
}

// WithClock replaces time.Now as the profiler's time source.
//
// Parameters:
//   - now: the clock
//
// Returns:
//   - ProfilerOption: a function that applies the clock
func WithClock(now func() time.Time) ProfilerOption {
	return func(p *Profiler) {
		p.now = now
	}
}

// NewProfiler creates a new Profiler that reports through logger.
//
// Parameters:
//   - logger: destination of the periodic report
//   - opts: profiler options
//
// Returns:
//   - *Profiler: the newly created profiler instance
func NewProfiler(logger *slog.Logger, opts ...ProfilerOption) *Profiler {
	p := &Profiler{
		logger:         logger,
		now:            time.Now,
		updateInterval: time.Second,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.lastTime = p.now()
	return p
}

// Tick should be called once per frame. When the interval has elapsed it logs frame rate,
// heap usage, allocation rate and GC count, and returns the report.
//
// Returns:
//   - Stats: the report, zero if none was produced
//   - bool: true if stats were reported this tick
func (p *Profiler) Tick() (Stats, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.frameCount++
	currentTime := p.now()
	elapsed := currentTime.Sub(p.lastTime)
	if elapsed < p.updateInterval || elapsed <= 0 {
		return Stats{}, false
	}

	runtime.ReadMemStats(&p.memStats)
	allocDelta := p.memStats.TotalAlloc - p.lastTotalAlloc
	stats := Stats{
		Frames:      p.frameCount,
		Elapsed:     elapsed,
		FPS:         float64(p.frameCount) / elapsed.Seconds(),
		HeapMB:      float64(p.memStats.Alloc) / 1024 / 1024,
		AllocRateMB: float64(allocDelta) / 1024 / 1024 / elapsed.Seconds(),
		NumGC:       p.memStats.NumGC,
		SysMB:       float64(p.memStats.Sys) / 1024 / 1024,
	}

	p.logger.Info("frame stats",
		"fps", stats.FPS,
		"heap_mb", stats.HeapMB,
		"alloc_rate_mb_s", stats.AllocRateMB,
		"gc", stats.NumGC,
		"sys_mb", stats.SysMB,
	)

	p.frameCount = 0
	p.lastTime = currentTime
	p.lastTotalAlloc = p.memStats.TotalAlloc
	return stats, true
}
