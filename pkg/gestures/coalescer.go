package gestures

import (
	"sync"

	"github.com/loomui/loom/pkg/graphics"
)

// DeviceState is the latest known state of one pointer device.
type DeviceState struct {
	Position  graphics.Offset
	LastDelta graphics.Offset
	Pressed   bool
	Kind      PointerDeviceKind
}

// Coalescer maintains per-device pointer state and collapses the move
// stream: moves arriving between frames overwrite the device's pending
// entry, so the scheduler routes at most one move per device per frame.
// Down/up/cancel events bypass it and are routed immediately.
//
// The embedder writes from its event-delivery context and the scheduler
// reads on the UI thread; a mutex serializes access.
type Coalescer struct {
	mu      sync.Mutex
	devices map[int64]*DeviceState
	pending map[int64]PointerEvent
}

// NewCoalescer creates an empty coalescer.
func NewCoalescer() *Coalescer {
	return &Coalescer{
		devices: make(map[int64]*DeviceState),
		pending: make(map[int64]PointerEvent),
	}
}

func (c *Coalescer) stateFor(pointerID int64) *DeviceState {
	state := c.devices[pointerID]
	if state == nil {
		state = &DeviceState{}
		c.devices[pointerID] = state
	}
	return state
}

// RecordMove stores event as the device's pending move, replacing any
// move not yet taken. The accumulated delta spans every replaced event so
// drag recognizers see the full travel.
func (c *Coalescer) RecordMove(event PointerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.stateFor(event.PointerID)
	event.Delta = event.Position.Sub(state.Position)
	if previous, ok := c.pending[event.PointerID]; ok {
		event.Delta = event.Delta.Add(previous.Delta)
	}
	state.Position = event.Position
	state.LastDelta = event.Delta
	state.Kind = event.Device
	c.pending[event.PointerID] = event
}

// RecordButton updates the device state for an immediate down/up/cancel
// event and drops any pending move that would now be stale.
func (c *Coalescer) RecordButton(event PointerEvent) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state := c.stateFor(event.PointerID)
	state.Position = event.Position
	state.Pressed = event.Phase == PointerPhaseDown
	state.Kind = event.Device
	delete(c.pending, event.PointerID)
}

// TakePendingMoves returns and clears the coalesced moves, at most one
// per device, ordered by pointer id for deterministic routing.
func (c *Coalescer) TakePendingMoves() []PointerEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.pending) == 0 {
		return nil
	}
	events := make([]PointerEvent, 0, len(c.pending))
	for _, event := range c.pending {
		events = append(events, event)
	}
	clear(c.pending)
	for i := 1; i < len(events); i++ {
		for j := i; j > 0 && events[j].PointerID < events[j-1].PointerID; j-- {
			events[j], events[j-1] = events[j-1], events[j]
		}
	}
	return events
}

// State returns the last known state for a device.
func (c *Coalescer) State(pointerID int64) (DeviceState, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	state, ok := c.devices[pointerID]
	if !ok {
		return DeviceState{}, false
	}
	return *state, true
}
