// Package gestures implements the input subsystem: pointer events, the
// gesture arena used to disambiguate competing recognizers, and a set of
// built-in recognizers (tap, double-tap, drag/pan).
package gestures

import "github.com/loomui/loom/pkg/graphics"

// PointerPhase describes the stage of a pointer's lifecycle.
type PointerPhase int

const (
	// PointerPhaseDown is sent when a pointer first contacts the surface.
	PointerPhaseDown PointerPhase = iota
	// PointerPhaseMove is sent for each subsequent movement while down.
	PointerPhaseMove
	// PointerPhaseUp is sent when the pointer is released.
	PointerPhaseUp
	// PointerPhaseCancel is sent when the platform aborts the gesture
	// (e.g. a system gesture takes over).
	PointerPhaseCancel
)

func (p PointerPhase) String() string {
	switch p {
	case PointerPhaseDown:
		return "down"
	case PointerPhaseMove:
		return "move"
	case PointerPhaseUp:
		return "up"
	case PointerPhaseCancel:
		return "cancel"
	default:
		return "unknown"
	}
}

// PointerDeviceKind identifies the kind of device that generated a pointer
// event. Recognizers generally treat all kinds alike; it is exposed for
// callers that want device-specific behavior (e.g. ignoring stylus hover).
type PointerDeviceKind int

const (
	PointerDeviceTouch PointerDeviceKind = iota
	PointerDeviceMouse
	PointerDeviceStylus
	PointerDeviceUnknown
)

// PointerEvent is the coalesced pointer event delivered to render objects
// and gesture recognizers. Position and Delta are in the local coordinate
// space of the render object that receives the event.
type PointerEvent struct {
	PointerID int64
	Device    PointerDeviceKind
	Position  graphics.Offset
	Delta     graphics.Offset
	Phase     PointerPhase
	// Buttons is a bitmask of currently pressed pointer buttons (mouse).
	Buttons int
}
