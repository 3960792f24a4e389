package layout

import (
	"testing"

	"github.com/loomui/loom/pkg/gestures"
	"github.com/loomui/loom/pkg/graphics"
)

func buildHitTree(t *testing.T) (*RenderTreeRoot, *RenderColoredBox, *RenderColoredBox, *RenderFlex) {
	t.Helper()
	left := NewRenderColoredBox(graphics.ColorRed)
	right := NewRenderColoredBox(graphics.ColorBlue)
	row := NewRenderFlex(graphics.Horizontal)
	row.SetChildren([]RenderObject{left, right})
	SetFlex(left, 1, FitTight)
	SetFlex(right, 1, FitTight)
	owner, root := newTestTree(TightFor(200, 100), row)
	pumpLayout(owner, root)
	return root, left, right, row
}

func TestHitTestFindsDeepestFirst(t *testing.T) {
	root, left, _, row := buildHitTree(t)

	result := HitTest(root, graphics.Offset{X: 10, Y: 10})
	entries := result.Entries()
	if len(entries) < 3 {
		t.Fatalf("got %d entries, want at least 3", len(entries))
	}
	if entries[0].Target != RenderObject(left) {
		t.Fatalf("deepest entry = %T, want the left box", entries[0].Target)
	}
	if entries[1].Target != RenderObject(row) {
		t.Fatalf("second entry = %T, want the row", entries[1].Target)
	}
}

func TestHitTestUsesParentDataOffsets(t *testing.T) {
	root, _, right, _ := buildHitTree(t)

	result := HitTest(root, graphics.Offset{X: 150, Y: 10})
	entries := result.Entries()
	if entries[0].Target != RenderObject(right) {
		t.Fatalf("deepest entry = %T, want the right box", entries[0].Target)
	}
	if want := (graphics.Offset{X: 50, Y: 10}); entries[0].Position != want {
		t.Fatalf("local position = %v, want %v", entries[0].Position, want)
	}
}

func TestHitTestMissesOutsideBounds(t *testing.T) {
	root, _, _, _ := buildHitTree(t)
	result := HitTest(root, graphics.Offset{X: 500, Y: 500})
	if !result.IsEmpty() {
		t.Fatalf("hit outside bounds produced %d entries", len(result.Entries()))
	}
}

func TestHitTestIsDeterministic(t *testing.T) {
	root, _, _, _ := buildHitTree(t)
	p := graphics.Offset{X: 42, Y: 17}
	first := HitTest(root, p)
	second := HitTest(root, p)
	if len(first.Entries()) != len(second.Entries()) {
		t.Fatal("entry counts differ between identical walks")
	}
	for i := range first.Entries() {
		if first.Entries()[i].Target != second.Entries()[i].Target {
			t.Fatalf("entry %d differs between identical walks", i)
		}
	}
}

func TestDispatchStopsWhenHandlerConsumes(t *testing.T) {
	inner := NewRenderPointerListener()
	inner.SetChild(NewRenderColoredBoxSized(graphics.ColorRed, graphics.Size{Width: 50, Height: 50}))
	outer := NewRenderPointerListener()
	outer.SetChild(inner)

	var order []string
	inner.OnPointer = func(event gestures.PointerEvent) EventPropagation {
		order = append(order, "inner")
		return PropagationStop
	}
	outer.OnPointer = func(event gestures.PointerEvent) EventPropagation {
		order = append(order, "outer")
		return PropagationContinue
	}

	owner, root := newTestTree(TightFor(50, 50), outer)
	pumpLayout(owner, root)

	result := HitTest(root, graphics.Offset{X: 10, Y: 10})
	result.DispatchPointer(gestures.PointerEvent{
		PointerID: 1,
		Position:  graphics.Offset{X: 10, Y: 10},
		Phase:     gestures.PointerPhaseDown,
	})

	if len(order) != 1 || order[0] != "inner" {
		t.Fatalf("dispatch order = %v, want inner only", order)
	}
}

func TestDispatchContinuesThroughNonConsumingHandlers(t *testing.T) {
	inner := NewRenderPointerListener()
	inner.SetChild(NewRenderColoredBoxSized(graphics.ColorRed, graphics.Size{Width: 50, Height: 50}))
	outer := NewRenderPointerListener()
	outer.SetChild(inner)

	var order []string
	inner.OnPointer = func(event gestures.PointerEvent) EventPropagation {
		order = append(order, "inner")
		return PropagationContinue
	}
	outer.OnPointer = func(event gestures.PointerEvent) EventPropagation {
		order = append(order, "outer")
		return PropagationContinue
	}

	owner, root := newTestTree(TightFor(50, 50), outer)
	pumpLayout(owner, root)

	result := HitTest(root, graphics.Offset{X: 10, Y: 10})
	result.DispatchPointer(gestures.PointerEvent{PointerID: 1, Phase: gestures.PointerPhaseDown})

	if len(order) != 2 || order[0] != "inner" || order[1] != "outer" {
		t.Fatalf("dispatch order = %v, want [inner outer]", order)
	}
}
