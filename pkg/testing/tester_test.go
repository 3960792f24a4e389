package testing

import (
	stdtesting "testing"

	"github.com/loomui/loom/pkg/core"
	"github.com/loomui/loom/pkg/gestures"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/layout"
)

// swatchView is a keyed colored box used by the harness tests.
type swatchView struct {
	core.ViewBase
	Color graphics.Color
	Size  graphics.Size
}

func (v swatchView) CreateElement() core.Element { return core.NewRenderElement() }

func (v swatchView) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	return layout.NewRenderColoredBoxSized(v.Color, v.Size)
}

func (v swatchView) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	renderObject.(*layout.RenderColoredBox).SetColor(v.Color)
}

// tappableView wires a tap recognizer through the tester's arena.
type tappableView struct {
	core.ViewBase
	Tester *ViewTester
	OnTap  func()
}

func (v tappableView) CreateElement() core.Element { return core.NewRenderElement() }

func (v tappableView) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	listener := layout.NewRenderPointerListener()
	recognizer := gestures.NewTapGestureRecognizer(v.Tester.Arena())
	recognizer.OnTap = v.OnTap
	listener.AddRecognizer(recognizer)
	return listener
}

func (v tappableView) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {}

func (v tappableView) ChildView() core.View {
	return swatchView{Color: graphics.ColorGreen, Size: graphics.Size{Width: 200, Height: 200}}
}

func TestMountProducesScene(t *stdtesting.T) {
	tester := NewViewTester()
	scene := tester.Mount(swatchView{Color: graphics.ColorRed, Size: graphics.Size{Width: 10, Height: 10}})
	if scene == nil {
		t.Fatal("no scene from mount")
	}
	if counts := CountSceneOps(scene); counts.Rects != 1 {
		t.Fatalf("rect ops = %d, want 1", counts.Rects)
	}
}

func TestPumpIdleAfterCleanFrame(t *stdtesting.T) {
	tester := NewViewTester()
	tester.Mount(swatchView{Color: graphics.ColorRed, Size: graphics.Size{Width: 10, Height: 10}})
	if tester.PumpIdle() {
		t.Fatal("idle pump ran a frame on a clean tree")
	}
}

func TestTapThroughHarness(t *stdtesting.T) {
	taps := 0
	tester := NewViewTesterWithSurface(graphics.Size{Width: 200, Height: 200})
	view := tappableView{Tester: tester}
	view.OnTap = func() { taps++ }
	tester.Mount(view)

	tester.TapAt(graphics.Offset{X: 100, Y: 100})
	if taps != 1 {
		t.Fatalf("taps = %d, want 1", taps)
	}

	// A tap outside the tree hits nothing.
	tester.TapAt(graphics.Offset{X: 500, Y: 500})
	if taps != 1 {
		t.Fatalf("taps = %d after off-target tap, want still 1", taps)
	}
}

func TestFindersLocateElementsAndRenderObjects(t *stdtesting.T) {
	tester := NewViewTester()
	tester.Mount(swatchView{
		ViewBase: core.ViewBase{ViewKey: "hero"},
		Color:    graphics.ColorBlue,
		Size:     graphics.Size{Width: 10, Height: 10},
	})

	boxes := RenderObjectsOfType[*layout.RenderColoredBox](tester.RenderRoot())
	if len(boxes) != 1 {
		t.Fatalf("colored boxes found = %d, want 1", len(boxes))
	}

	rootElement := tester.App().RootElement()
	if got := FindByViewType(rootElement, swatchView{}); len(got) != 1 {
		t.Fatalf("elements by view type = %d, want 1", len(got))
	}
	if got := FindByKey(rootElement, "hero"); len(got) != 1 {
		t.Fatalf("elements by key = %d, want 1", len(got))
	}
	if got := FindByKey(rootElement, "missing"); len(got) != 0 {
		t.Fatalf("elements by missing key = %d, want 0", len(got))
	}
}

func TestHitTestHelper(t *stdtesting.T) {
	tester := NewViewTesterWithSurface(graphics.Size{Width: 100, Height: 100})
	tester.Mount(swatchView{Color: graphics.ColorRed, Size: graphics.Size{Width: 100, Height: 100}})
	if tester.HitTest(graphics.Offset{X: 50, Y: 50}).IsEmpty() {
		t.Fatal("hit test found nothing inside the box")
	}
	if !tester.HitTest(graphics.Offset{X: 150, Y: 50}).IsEmpty() {
		t.Fatal("hit test found something outside the surface")
	}
}

func TestUnmountStopsFrames(t *stdtesting.T) {
	tester := NewViewTester()
	tester.Mount(swatchView{Color: graphics.ColorRed, Size: graphics.Size{Width: 10, Height: 10}})
	tester.Unmount()
	if tester.Pump() != nil {
		t.Fatal("pump produced a scene after unmount")
	}
}
