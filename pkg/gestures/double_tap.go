package gestures

import "time"

type doubleTapState int

const (
	doubleTapIdle doubleTapState = iota
	doubleTapFirstDown
	doubleTapWaitingForSecond
	doubleTapSecondDown
)

// DoubleTapGestureRecognizer recognizes two taps in quick succession at
// nearly the same position. It competes in the arena independently for
// each pointer down, same as TapGestureRecognizer, but only fires
// OnDoubleTap once a second qualifying down arrives within the double-tap
// timeout and slop of the first.
type DoubleTapGestureRecognizer struct {
	OnDoubleTap func()

	// Settings overrides the package thresholds; nil means defaults.
	Settings *Settings

	arena *GestureArena
	state doubleTapState

	firstPointer     *trackedPointer
	firstDownAt      time.Time
	firstUpAt        time.Time
	secondPointer    *trackedPointer
	secondUpReceived bool
}

// NewDoubleTapGestureRecognizer creates a double-tap recognizer competing
// in arena.
func NewDoubleTapGestureRecognizer(arena *GestureArena) *DoubleTapGestureRecognizer {
	if arena == nil {
		arena = DefaultArena
	}
	return &DoubleTapGestureRecognizer{arena: arena}
}

func (r *DoubleTapGestureRecognizer) AddPointer(event PointerEvent) {
	switch r.state {
	case doubleTapIdle:
		r.state = doubleTapFirstDown
		r.firstPointer = &trackedPointer{id: event.PointerID, initial: event.Position, last: event.Position}
		r.firstDownAt = now()
	case doubleTapWaitingForSecond:
		if now().Sub(r.firstUpAt) > r.Settings.doubleTapTimeout() ||
			exceedsSlop(r.firstPointer.initial, event.Position, r.Settings.doubleTapSlop()) {
			// Too late or too far: this down starts a fresh first tap.
			r.reset()
			r.state = doubleTapFirstDown
			r.firstPointer = &trackedPointer{id: event.PointerID, initial: event.Position, last: event.Position}
			r.firstDownAt = now()
			r.arena.Add(event.PointerID, r)
			return
		}
		r.state = doubleTapSecondDown
		r.secondPointer = &trackedPointer{id: event.PointerID, initial: event.Position, last: event.Position}
	default:
		return
	}
	r.arena.Add(event.PointerID, r)
}

func (r *DoubleTapGestureRecognizer) HandleEvent(event PointerEvent) {
	switch r.state {
	case doubleTapFirstDown:
		if r.firstPointer == nil || event.PointerID != r.firstPointer.id {
			return
		}
		switch event.Phase {
		case PointerPhaseMove:
			if exceedsSlop(r.firstPointer.initial, event.Position, r.Settings.touchSlop()) {
				r.arena.Reject(event.PointerID, r)
				r.reset()
			}
		case PointerPhaseUp:
			r.firstUpAt = now()
			r.state = doubleTapWaitingForSecond
			// Withdraw from the first pointer's arena so a competing tap
			// recognizer can win its sweep; the second tap enters a fresh
			// arena of its own.
			r.arena.Reject(event.PointerID, r)
		case PointerPhaseCancel:
			r.arena.Reject(event.PointerID, r)
			r.reset()
		}
	case doubleTapSecondDown:
		if r.secondPointer == nil || event.PointerID != r.secondPointer.id {
			return
		}
		switch event.Phase {
		case PointerPhaseMove:
			if exceedsSlop(r.secondPointer.initial, event.Position, r.Settings.touchSlop()) {
				r.arena.Reject(event.PointerID, r)
				r.reset()
			}
		case PointerPhaseUp:
			r.secondUpReceived = true
			if r.secondPointer.accepted {
				r.fire()
			} else {
				r.arena.Resolve(event.PointerID, r)
			}
		case PointerPhaseCancel:
			r.arena.Reject(event.PointerID, r)
			r.reset()
		}
	}
}

func (r *DoubleTapGestureRecognizer) fire() {
	r.reset()
	if r.OnDoubleTap != nil {
		r.OnDoubleTap()
	}
}

// AcceptGesture fires OnDoubleTap only once the second up has arrived.
func (r *DoubleTapGestureRecognizer) AcceptGesture(pointerID int64) {
	if r.state != doubleTapSecondDown || r.secondPointer == nil || pointerID != r.secondPointer.id {
		return
	}
	r.secondPointer.accepted = true
	if r.secondUpReceived {
		r.fire()
	}
}

func (r *DoubleTapGestureRecognizer) RejectGesture(pointerID int64) {
	switch r.state {
	case doubleTapFirstDown:
		if r.firstPointer != nil && r.firstPointer.id == pointerID {
			r.reset()
		}
	case doubleTapWaitingForSecond:
		// The self-initiated withdrawal from the first pointer's arena;
		// keep waiting for the second down.
	case doubleTapSecondDown:
		if r.secondPointer != nil && r.secondPointer.id == pointerID {
			r.reset()
		}
	}
}

func (r *DoubleTapGestureRecognizer) reset() {
	r.state = doubleTapIdle
	r.firstPointer = nil
	r.secondPointer = nil
	r.secondUpReceived = false
}

// Dispose releases all pending tracking state.
func (r *DoubleTapGestureRecognizer) Dispose() {
	r.reset()
}
