package gestures

// TapGestureRecognizer recognizes a single tap: a pointer going down, not
// moving past the touch slop, and coming back up once the arena has
// awarded it the pointer. OnTap fires on the accepted up, never before.
type TapGestureRecognizer struct {
	OnTap       func()
	OnTapDown   func(event PointerEvent)
	OnTapCancel func()

	// Settings overrides the package thresholds; nil means defaults.
	Settings *Settings

	arena      *GestureArena
	pointer    *trackedPointer
	upReceived bool
}

// NewTapGestureRecognizer creates a tap recognizer that competes in arena.
func NewTapGestureRecognizer(arena *GestureArena) *TapGestureRecognizer {
	if arena == nil {
		arena = DefaultArena
	}
	return &TapGestureRecognizer{arena: arena}
}

func (r *TapGestureRecognizer) AddPointer(event PointerEvent) {
	r.pointer = &trackedPointer{id: event.PointerID, initial: event.Position, last: event.Position}
	r.upReceived = false
	r.arena.Add(event.PointerID, r)
	if r.OnTapDown != nil {
		r.OnTapDown(event)
	}
}

func (r *TapGestureRecognizer) HandleEvent(event PointerEvent) {
	if r.pointer == nil || event.PointerID != r.pointer.id {
		return
	}
	switch event.Phase {
	case PointerPhaseMove:
		if exceedsSlop(r.pointer.initial, event.Position, r.Settings.touchSlop()) {
			// Cancel even when the arena already resolved in our favor:
			// a tap that wandered past the slop is no tap.
			r.arena.Reject(event.PointerID, r)
			if r.pointer != nil {
				r.cancel()
			}
		}
	case PointerPhaseUp:
		r.upReceived = true
		if r.pointer.accepted {
			r.fireTap()
		} else {
			// The up arrived before the arena resolved; claim the win.
			// AcceptGesture fires the tap synchronously if we get it.
			r.arena.Resolve(event.PointerID, r)
		}
	case PointerPhaseCancel:
		r.arena.Reject(event.PointerID, r)
		if r.pointer != nil {
			r.cancel()
		}
	}
}

func (r *TapGestureRecognizer) AcceptGesture(pointerID int64) {
	if r.pointer == nil || pointerID != r.pointer.id {
		return
	}
	r.pointer.accepted = true
	if r.upReceived {
		r.fireTap()
	}
}

func (r *TapGestureRecognizer) RejectGesture(pointerID int64) {
	if r.pointer == nil || pointerID != r.pointer.id {
		return
	}
	r.cancel()
}

func (r *TapGestureRecognizer) fireTap() {
	r.pointer = nil
	r.upReceived = false
	if r.OnTap != nil {
		r.OnTap()
	}
}

func (r *TapGestureRecognizer) cancel() {
	r.pointer = nil
	r.upReceived = false
	if r.OnTapCancel != nil {
		r.OnTapCancel()
	}
}

// Dispose releases the recognizer's in-flight pointer, if any.
func (r *TapGestureRecognizer) Dispose() {
	r.pointer = nil
	r.upReceived = false
}
