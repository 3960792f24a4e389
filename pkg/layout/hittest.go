package layout

import (
	"github.com/loomui/loom/pkg/gestures"
	"github.com/loomui/loom/pkg/graphics"
)

// EventPropagation is a pointer handler's verdict on whether dispatch
// should keep walking toward shallower hit entries.
type EventPropagation int

const (
	// PropagationContinue lets the event flow to the next entry.
	PropagationContinue EventPropagation = iota
	// PropagationStop consumes the event.
	PropagationStop
)

// PointerTarget is implemented by render objects that want raw pointer
// events routed to them after a successful hit test.
type PointerTarget interface {
	HandlePointer(event gestures.PointerEvent) EventPropagation
}

// HitTestEntry records one render object hit during a hit-test walk, with
// the position expressed in that object's local coordinates.
type HitTestEntry struct {
	Target   RenderObject
	Position graphics.Offset
	Bounds   graphics.Rect

	// toLocal is the translation from the walk's root space into the
	// target's local space, so later events for the same pointer can be
	// routed through this entry without re-walking the tree.
	toLocal graphics.Offset
}

// HitTestResult is the ordered outcome of a hit-test walk: entries are
// accumulated deepest-first, the reverse of paint order.
type HitTestResult struct {
	entries []HitTestEntry
}

// Add appends an entry. Called by render objects as the walk unwinds.
func (r *HitTestResult) Add(entry HitTestEntry) {
	r.entries = append(r.entries, entry)
}

// Entries returns the hit entries, deepest first.
func (r *HitTestResult) Entries() []HitTestEntry { return r.entries }

// IsEmpty reports whether nothing was hit.
func (r *HitTestResult) IsEmpty() bool { return len(r.entries) == 0 }

// HitTest runs a hit-test walk over the tree rooted at root and returns
// the deepest-first entry list. The walk is deterministic for a given
// tree and position.
func HitTest(root RenderObject, position graphics.Offset) *HitTestResult {
	result := &HitTestResult{}
	if root != nil {
		root.HitTest(result, position)
	}
	for i := range result.entries {
		result.entries[i].toLocal = result.entries[i].Position.Sub(position)
	}
	return result
}

// DispatchPointer walks the result front-to-back (deepest first), handing
// the event to each PointerTarget with the entry's local position until a
// handler stops propagation.
func (r *HitTestResult) DispatchPointer(event gestures.PointerEvent) {
	for _, entry := range r.entries {
		target, ok := entry.Target.(PointerTarget)
		if !ok {
			continue
		}
		local := event
		local.Position = event.Position.Add(entry.toLocal)
		if target.HandlePointer(local) == PropagationStop {
			return
		}
	}
}
