package engine

import (
	"sync"
	"sync/atomic"
	"time"
)

// FrameCallback observes frame ticks, e.g. animation drivers.
type FrameCallback func(timestamp time.Time)

// Scheduler is the single-threaded cooperative frame driver. The embedder
// signals ticks; the scheduler coalesces redraw requests so at most one
// pipeline pass runs per tick, and keeps the frame counters and timing
// metrics.
type Scheduler struct {
	needsRedraw atomic.Bool
	frameNumber atomic.Uint64
	metrics     FrameMetrics

	mu            sync.Mutex
	tickCallbacks map[int64]FrameCallback
	nextCallback  int64

	// OnNeedsFrame notifies the embedder that a frame should be driven,
	// for on-demand frame scheduling where the tick source is paused
	// until requested.
	OnNeedsFrame func()
}

// NewScheduler creates an idle scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{tickCallbacks: make(map[int64]FrameCallback)}
}

// Metrics exposes the scheduler's timing counters.
func (s *Scheduler) Metrics() *FrameMetrics { return &s.metrics }

// FrameNumber returns the number of frames started so far.
func (s *Scheduler) FrameNumber() uint64 { return s.frameNumber.Load() }

// RequestRedraw flags that the next tick must run a pipeline pass.
// Cheap and idempotent; callable from rebuild hot paths.
func (s *Scheduler) RequestRedraw() {
	if s.needsRedraw.Swap(true) {
		return
	}
	if s.OnNeedsFrame != nil {
		s.OnNeedsFrame()
	}
}

// NeedsRedraw reports whether a pass is pending.
func (s *Scheduler) NeedsRedraw() bool { return s.needsRedraw.Load() }

// AddTickCallback registers fn to run at the start of every tick and
// returns a handle for RemoveTickCallback.
func (s *Scheduler) AddTickCallback(fn FrameCallback) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextCallback++
	s.tickCallbacks[s.nextCallback] = fn
	return s.nextCallback
}

// RemoveTickCallback unregisters a callback by handle.
func (s *Scheduler) RemoveTickCallback(handle int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tickCallbacks, handle)
}

// beginFrame runs tick callbacks, consumes the redraw flag, and advances
// the frame counter. It reports whether a pipeline pass should run.
func (s *Scheduler) beginFrame(timestamp time.Time, pipelineDirty bool) bool {
	s.mu.Lock()
	callbacks := make([]FrameCallback, 0, len(s.tickCallbacks))
	for _, fn := range s.tickCallbacks {
		callbacks = append(callbacks, fn)
	}
	s.mu.Unlock()
	for _, fn := range callbacks {
		fn(timestamp)
	}
	if !s.needsRedraw.Load() && !pipelineDirty {
		return false
	}
	s.frameNumber.Add(1)
	return true
}

// endFrame clears the redraw flag once the pass has fully run, the last
// step of a frame. Dirty marks raised by the pass itself (paint
// invalidation during layout) don't re-trigger an identical frame.
func (s *Scheduler) endFrame() {
	s.needsRedraw.Store(false)
}
