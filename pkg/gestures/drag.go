package gestures

import "github.com/loomui/loom/pkg/graphics"

// DragStartDetails describes where a drag began.
type DragStartDetails struct {
	Position graphics.Offset
}

// DragUpdateDetails describes one incremental move of an in-progress drag.
// PrimaryDelta is Delta projected onto the recognizer's constrained axis
// (Horizontal/Vertical variants); it is 0 for an unconstrained pan.
type DragUpdateDetails struct {
	Position     graphics.Offset
	Delta        graphics.Offset
	TotalDelta   graphics.Offset
	PrimaryDelta float32
}

// DragEndDetails describes the release of a drag, including the estimated
// release velocity. IsFling is set when the speed clears the minimum
// fling velocity. PrimaryVelocity mirrors PrimaryDelta's axis projection.
type DragEndDetails struct {
	Position        graphics.Offset
	Velocity        graphics.Offset
	PrimaryVelocity float32
	IsFling         bool
}

// dragAxis constrains a DragGestureRecognizer to a single axis. A nil
// *dragAxis means unconstrained (pan).
type dragAxis struct {
	axis graphics.Axis
}

// DragGestureRecognizer recognizes a press-move-release drag, optionally
// constrained to a single axis. Use the Pan/HorizontalDrag/VerticalDrag
// constructors rather than building one directly.
type DragGestureRecognizer struct {
	OnStart  func(DragStartDetails)
	OnUpdate func(DragUpdateDetails)
	OnEnd    func(DragEndDetails)
	OnCancel func()

	// Settings overrides the package thresholds; nil means defaults.
	Settings *Settings

	arena      *GestureArena
	constraint *dragAxis

	pointer *trackedPointer
	started bool
	total   graphics.Offset
}

// NewPanGestureRecognizer creates a drag recognizer free on both axes.
func NewPanGestureRecognizer(arena *GestureArena) *DragGestureRecognizer {
	return newDragRecognizer(arena, nil)
}

// NewHorizontalDragGestureRecognizer creates a drag recognizer that only
// tracks horizontal motion; vertical motion is ignored for slop purposes
// and PrimaryDelta/PrimaryVelocity report the X component.
func NewHorizontalDragGestureRecognizer(arena *GestureArena) *DragGestureRecognizer {
	return newDragRecognizer(arena, &dragAxis{axis: graphics.Horizontal})
}

// NewVerticalDragGestureRecognizer creates a drag recognizer that only
// tracks vertical motion.
func NewVerticalDragGestureRecognizer(arena *GestureArena) *DragGestureRecognizer {
	return newDragRecognizer(arena, &dragAxis{axis: graphics.Vertical})
}

func newDragRecognizer(arena *GestureArena, constraint *dragAxis) *DragGestureRecognizer {
	if arena == nil {
		arena = DefaultArena
	}
	return &DragGestureRecognizer{arena: arena, constraint: constraint}
}

func (r *DragGestureRecognizer) AddPointer(event PointerEvent) {
	r.pointer = &trackedPointer{id: event.PointerID, initial: event.Position, last: event.Position}
	r.pointer.addSample(event.Position, now())
	r.started = false
	r.total = graphics.ZeroOffset
	r.arena.Add(event.PointerID, r)
}

func (r *DragGestureRecognizer) HandleEvent(event PointerEvent) {
	if r.pointer == nil || event.PointerID != r.pointer.id {
		return
	}
	switch event.Phase {
	case PointerPhaseMove:
		r.handleMove(event)
	case PointerPhaseUp:
		r.handleEnd(event)
	case PointerPhaseCancel:
		r.arena.Reject(event.PointerID, r)
		if r.pointer != nil {
			r.cancel()
		}
	}
}

func (r *DragGestureRecognizer) handleMove(event PointerEvent) {
	if !r.started {
		if !r.slopExceeded(event.Position) {
			// Below the slop the motion is jitter; keep the velocity
			// window warm but report nothing.
			r.pointer.addSample(event.Position, now())
			return
		}
		if !r.pointer.accepted {
			r.arena.Resolve(event.PointerID, r)
			if r.pointer == nil || !r.pointer.accepted {
				// Lost to a competing member before the win landed.
				return
			}
		}
		r.ensureStarted(event.Position)
	}
	last := r.pointer.last
	r.pointer.addSample(event.Position, now())
	delta := event.Position.Sub(last)
	r.total = r.total.Add(delta)
	if r.OnUpdate != nil {
		r.OnUpdate(DragUpdateDetails{
			Position:     event.Position,
			Delta:        delta,
			TotalDelta:   r.total,
			PrimaryDelta: r.primaryComponent(delta),
		})
	}
}

func (r *DragGestureRecognizer) handleEnd(event PointerEvent) {
	if !r.started {
		// Released without ever clearing the slop: no drag happened.
		if !r.pointer.accepted {
			r.arena.Reject(event.PointerID, r)
		}
		r.pointer = nil
		return
	}
	velocity := r.pointer.estimateVelocity(r.Settings.maxFlingVelocity())
	speed := velocity.Distance(graphics.ZeroOffset)
	if r.OnEnd != nil {
		r.OnEnd(DragEndDetails{
			Position:        event.Position,
			Velocity:        velocity,
			PrimaryVelocity: r.primaryComponent(velocity),
			IsFling:         speed >= r.Settings.minFlingVelocity(),
		})
	}
	r.pointer = nil
	r.started = false
}

// slopExceeded reports whether the pointer has traveled far enough along
// the recognizer's axis of interest to count as intentional drag motion.
// Travel of exactly the slop does not start a drag; it must be exceeded.
func (r *DragGestureRecognizer) slopExceeded(position graphics.Offset) bool {
	slop := r.Settings.touchSlop()
	if r.constraint == nil {
		return exceedsSlop(r.pointer.initial, position, slop)
	}
	delta := position.Sub(r.pointer.initial)
	main := r.constraint.axis.MainComponent(graphics.Size{Width: delta.X, Height: delta.Y})
	cross := r.constraint.axis.CrossComponent(graphics.Size{Width: delta.X, Height: delta.Y})
	if main < 0 {
		main = -main
	}
	if cross < 0 {
		cross = -cross
	}
	// Require more movement along the constrained axis than the cross
	// axis, so a vertical-drag recognizer doesn't win on a horizontal
	// swipe that happens to drift slightly downward.
	return main > slop && main > cross
}

func (r *DragGestureRecognizer) primaryComponent(v graphics.Offset) float32 {
	if r.constraint == nil {
		return 0
	}
	return r.constraint.axis.MainComponent(graphics.Size{Width: v.X, Height: v.Y})
}

func (r *DragGestureRecognizer) ensureStarted(position graphics.Offset) {
	if r.started {
		return
	}
	r.started = true
	if r.OnStart != nil {
		r.OnStart(DragStartDetails{Position: position})
	}
}

// AcceptGesture records the win. The drag still only starts once the
// pointer's travel exceeds the slop.
func (r *DragGestureRecognizer) AcceptGesture(pointerID int64) {
	if r.pointer == nil || pointerID != r.pointer.id {
		return
	}
	r.pointer.accepted = true
	if r.slopExceeded(r.pointer.last) {
		r.ensureStarted(r.pointer.last)
	}
}

func (r *DragGestureRecognizer) RejectGesture(pointerID int64) {
	if r.pointer == nil || pointerID != r.pointer.id {
		return
	}
	r.cancel()
}

func (r *DragGestureRecognizer) cancel() {
	wasStarted := r.started
	r.pointer = nil
	r.started = false
	if wasStarted && r.OnCancel != nil {
		r.OnCancel()
	}
}

// Dispose releases the recognizer's in-flight pointer, if any.
func (r *DragGestureRecognizer) Dispose() {
	r.pointer = nil
	r.started = false
}
