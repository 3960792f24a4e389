package gestures

import (
	"time"

	"github.com/loomui/loom/pkg/graphics"
)

// Clock abstracts wall-clock access so tests can drive double-tap and
// velocity-tracking timing deterministically instead of depending on real
// elapsed time.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

var clock Clock = realClock{}

// SetClock installs c as the package clock and returns the previous one,
// so tests can restore it afterward.
func SetClock(c Clock) Clock {
	previous := clock
	clock = c
	return previous
}

func now() time.Time { return clock.Now() }

// GestureRecognizer is implemented by every concrete recognizer
// (TapGestureRecognizer, DragGestureRecognizer, ...). Render objects that
// want gesture support hold one or more recognizers and forward pointer
// events to them via AddPointer/HandleEvent.
type GestureRecognizer interface {
	// AddPointer is called once, on the down event, for every recognizer
	// attached to the render object that was hit. The recognizer should
	// enter the arena for event.PointerID if it wants a chance to win it.
	AddPointer(event PointerEvent)
	// HandleEvent is called for every subsequent event belonging to a
	// pointer the recognizer is tracking (move/up/cancel).
	HandleEvent(event PointerEvent)
	// Dispose clears the recognizer's pointer-tracking state. The tap and
	// drag recognizers leave any arena entries in place.
	Dispose()
}

// trackedPointer is the shared per-pointer bookkeeping used by the
// position-sensitive recognizers (tap, double-tap, drag).
type trackedPointer struct {
	id       int64
	initial  graphics.Offset
	last     graphics.Offset
	samples  []velocitySample
	accepted bool
}

type velocitySample struct {
	position graphics.Offset
	at       time.Time
}

func (t *trackedPointer) addSample(position graphics.Offset, at time.Time) {
	t.samples = append(t.samples, velocitySample{position: position, at: at})
	if len(t.samples) > velocitySampleWindow {
		t.samples = t.samples[len(t.samples)-velocitySampleWindow:]
	}
	t.last = position
}

// estimateVelocity computes a simple linear-regression-free velocity
// estimate: the displacement between the oldest and newest retained
// samples divided by the elapsed time between them. This mirrors the
// coarse "enough samples to be stable, not so many it's stale" window
// used by the recognizers this package is grounded on.
func (t *trackedPointer) estimateVelocity(maxVelocity float32) graphics.Offset {
	if len(t.samples) < 2 {
		return graphics.ZeroOffset
	}
	first := t.samples[0]
	last := t.samples[len(t.samples)-1]
	dt := float32(last.at.Sub(first.at).Seconds())
	if dt <= 0 {
		return graphics.ZeroOffset
	}
	dx := last.position.X - first.position.X
	dy := last.position.Y - first.position.Y
	vx := clampVelocity(dx/dt, maxVelocity)
	vy := clampVelocity(dy/dt, maxVelocity)
	return graphics.Offset{X: vx, Y: vy}
}

func clampVelocity(v, max float32) float32 {
	if v > max {
		return max
	}
	if v < -max {
		return -max
	}
	return v
}

func exceedsSlop(a, b graphics.Offset, slop float32) bool {
	return a.Distance(b) > slop
}
