package engine

import (
	"sync"
	"time"
)

// FrameBudget is the per-frame time budget; frames exceeding it count as
// dropped (but are never aborted).
const FrameBudget = 16 * time.Millisecond

// frameWindow is the number of recent frame durations retained for the
// rolling statistics.
const frameWindow = 60

// PhaseTimes breaks a frame's cost down by pipeline phase.
type PhaseTimes struct {
	Build           time.Duration
	Layout          time.Duration
	CompositingBits time.Duration
	Paint           time.Duration
	Semantics       time.Duration
}

func (p PhaseTimes) add(other PhaseTimes) PhaseTimes {
	return PhaseTimes{
		Build:           p.Build + other.Build,
		Layout:          p.Layout + other.Layout,
		CompositingBits: p.CompositingBits + other.CompositingBits,
		Paint:           p.Paint + other.Paint,
		Semantics:       p.Semantics + other.Semantics,
	}
}

// FrameMetrics aggregates frame timing: a ring buffer of the most recent
// frame durations, cumulative per-phase timers, dropped-frame and cache
// counters. All methods are safe for concurrent reads, though writes only
// ever come from the UI thread.
type FrameMetrics struct {
	mu          sync.Mutex
	durations   [frameWindow]time.Duration
	next        int
	retained    int
	totalFrames uint64
	dropped     uint64
	phases      PhaseTimes
	cacheHits   uint64
	cacheMisses uint64
}

// RecordFrame folds one finished frame into the statistics.
func (m *FrameMetrics) RecordFrame(total time.Duration, phases PhaseTimes) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.durations[m.next] = total
	m.next = (m.next + 1) % frameWindow
	if m.retained < frameWindow {
		m.retained++
	}
	m.totalFrames++
	if total > FrameBudget {
		m.dropped++
	}
	m.phases = m.phases.add(phases)
}

// TotalFrames returns the number of frames recorded since start.
func (m *FrameMetrics) TotalFrames() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.totalFrames
}

// DroppedFrames returns how many frames exceeded the budget.
func (m *FrameMetrics) DroppedFrames() uint64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.dropped
}

// DropRate returns dropped/total, 0 with no frames.
func (m *FrameMetrics) DropRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.totalFrames == 0 {
		return 0
	}
	return float64(m.dropped) / float64(m.totalFrames)
}

// AverageFrameTime returns the mean duration over the retained window.
func (m *FrameMetrics) AverageFrameTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.retained == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < m.retained; i++ {
		sum += m.durations[i]
	}
	return sum / time.Duration(m.retained)
}

// MaxFrameTime returns the slowest frame in the retained window.
func (m *FrameMetrics) MaxFrameTime() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	var max time.Duration
	for i := 0; i < m.retained; i++ {
		if m.durations[i] > max {
			max = m.durations[i]
		}
	}
	return max
}

// PhaseTotals returns the cumulative per-phase timers.
func (m *FrameMetrics) PhaseTotals() PhaseTimes {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phases
}

// RecordCacheHit notes a reused repaint-boundary layer.
func (m *FrameMetrics) RecordCacheHit() {
	m.mu.Lock()
	m.cacheHits++
	m.mu.Unlock()
}

// RecordCacheMiss notes a re-recorded repaint-boundary layer.
func (m *FrameMetrics) RecordCacheMiss() {
	m.mu.Lock()
	m.cacheMisses++
	m.mu.Unlock()
}

// CacheHitRate returns hits/(hits+misses), 0 when untouched.
func (m *FrameMetrics) CacheHitRate() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	lookups := m.cacheHits + m.cacheMisses
	if lookups == 0 {
		return 0
	}
	return float64(m.cacheHits) / float64(lookups)
}
