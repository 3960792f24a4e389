package engine

import (
	"testing"
	"time"

	"github.com/loomui/loom/pkg/errors"
)

func TestFrameDropAccounting(t *testing.T) {
	var m FrameMetrics
	m.RecordFrame(20*time.Millisecond, PhaseTimes{Layout: 12 * time.Millisecond})

	if m.TotalFrames() != 1 {
		t.Fatalf("total frames = %d, want 1", m.TotalFrames())
	}
	if m.DroppedFrames() != 1 {
		t.Fatalf("dropped frames = %d, want 1", m.DroppedFrames())
	}
	if avg := m.AverageFrameTime(); avg < 15*time.Millisecond {
		t.Fatalf("average frame time = %v, want at least 15ms", avg)
	}
}

func TestFrameWithinBudgetNotDropped(t *testing.T) {
	var m FrameMetrics
	m.RecordFrame(8*time.Millisecond, PhaseTimes{})
	m.RecordFrame(16*time.Millisecond, PhaseTimes{})

	if m.DroppedFrames() != 0 {
		t.Fatalf("dropped frames = %d, want 0 at or under budget", m.DroppedFrames())
	}
	if m.TotalFrames() != 2 {
		t.Fatalf("total frames = %d, want 2", m.TotalFrames())
	}
}

func TestRingBufferWindow(t *testing.T) {
	var m FrameMetrics
	// Fill beyond the window with slow frames, then fast ones; the
	// average must reflect only the retained window.
	for i := 0; i < frameWindow; i++ {
		m.RecordFrame(100*time.Millisecond, PhaseTimes{})
	}
	for i := 0; i < frameWindow; i++ {
		m.RecordFrame(2*time.Millisecond, PhaseTimes{})
	}
	if avg := m.AverageFrameTime(); avg != 2*time.Millisecond {
		t.Fatalf("windowed average = %v, want 2ms", avg)
	}
	if m.TotalFrames() != 2*frameWindow {
		t.Fatalf("total frames = %d, want %d", m.TotalFrames(), 2*frameWindow)
	}
	if m.MaxFrameTime() != 2*time.Millisecond {
		t.Fatalf("windowed max = %v, want 2ms", m.MaxFrameTime())
	}
}

func TestPhaseTotalsAccumulate(t *testing.T) {
	var m FrameMetrics
	m.RecordFrame(5*time.Millisecond, PhaseTimes{Build: time.Millisecond, Paint: 2 * time.Millisecond})
	m.RecordFrame(5*time.Millisecond, PhaseTimes{Build: time.Millisecond, Layout: time.Millisecond})

	totals := m.PhaseTotals()
	if totals.Build != 2*time.Millisecond {
		t.Errorf("build total = %v, want 2ms", totals.Build)
	}
	if totals.Paint != 2*time.Millisecond {
		t.Errorf("paint total = %v, want 2ms", totals.Paint)
	}
	if totals.Layout != time.Millisecond {
		t.Errorf("layout total = %v, want 1ms", totals.Layout)
	}
}

func TestDropAndCacheRates(t *testing.T) {
	var m FrameMetrics
	m.RecordFrame(20*time.Millisecond, PhaseTimes{})
	m.RecordFrame(5*time.Millisecond, PhaseTimes{})
	if rate := m.DropRate(); rate != 0.5 {
		t.Fatalf("drop rate = %v, want 0.5", rate)
	}
	m.RecordCacheHit()
	m.RecordCacheHit()
	m.RecordCacheMiss()
	if rate := m.CacheHitRate(); rate < 0.66 || rate > 0.67 {
		t.Fatalf("cache hit rate = %v, want ~2/3", rate)
	}
}

func TestSchedulerRedrawCoalescing(t *testing.T) {
	s := NewScheduler()
	notified := 0
	s.OnNeedsFrame = func() { notified++ }

	s.RequestRedraw()
	s.RequestRedraw()
	s.RequestRedraw()

	if notified != 1 {
		t.Fatalf("OnNeedsFrame fired %d times, want once per idle->dirty edge", notified)
	}
	if !s.beginFrame(time.Now(), false) {
		t.Fatal("beginFrame = false with a pending redraw")
	}
	s.endFrame()
	if s.beginFrame(time.Now(), false) {
		t.Fatal("beginFrame = true with no pending work")
	}
}

func TestSchedulerTickCallbacks(t *testing.T) {
	s := NewScheduler()
	ticks := 0
	handle := s.AddTickCallback(func(time.Time) { ticks++ })
	s.RequestRedraw()
	s.beginFrame(time.Now(), false)
	s.endFrame()
	if ticks != 1 {
		t.Fatalf("tick callbacks ran %d times, want 1", ticks)
	}
	s.RemoveTickCallback(handle)
	s.RequestRedraw()
	s.beginFrame(time.Now(), false)
	if ticks != 1 {
		t.Fatal("removed callback still ran")
	}
}

func TestConfigParsing(t *testing.T) {
	data := []byte("frame_budget: 8ms\nsemantics: true\ngestures:\n  touch_slop: 24\n")
	c, err := ParseConfig(data)
	if err != nil {
		t.Fatalf("ParseConfig: %v", err)
	}
	if c.frameBudget() != 8*time.Millisecond {
		t.Errorf("frame budget = %v, want 8ms", c.frameBudget())
	}
	if !c.Semantics {
		t.Error("semantics not enabled")
	}
	if c.Gestures.TouchSlop != 24 {
		t.Errorf("touch slop = %v, want 24", c.Gestures.TouchSlop)
	}
}

func TestDiagnosticsCollectAndSubscribe(t *testing.T) {
	d := InstallDiagnostics()
	defer errors.SetHandler(&errors.LogHandler{})

	var seen []*errors.FrameworkError
	unsubscribe := d.Subscribe(func(err *errors.FrameworkError) {
		seen = append(seen, err)
	})

	errors.ReportProtocol("layout", "synthetic violation")

	if len(d.Records()) != 1 {
		t.Fatalf("records = %d, want 1", len(d.Records()))
	}
	if len(seen) != 1 {
		t.Fatalf("subscriber saw %d records, want 1", len(seen))
	}
	if seen[0].Kind != errors.KindProtocol {
		t.Fatalf("kind = %v, want protocol", seen[0].Kind)
	}

	unsubscribe()
	errors.ReportProtocol("paint", "second violation")
	if len(seen) != 1 {
		t.Fatal("unsubscribed subscriber still notified")
	}
	if len(d.Records()) != 2 {
		t.Fatalf("records = %d, want 2", len(d.Records()))
	}
}
