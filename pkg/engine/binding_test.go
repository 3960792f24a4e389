package engine

import (
	"testing"
	"time"

	"github.com/loomui/loom/pkg/core"
	"github.com/loomui/loom/pkg/gestures"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/layout"
)

// colorBoxView is a leaf render view used across the engine tests.
type colorBoxView struct {
	core.ViewBase
	Color graphics.Color
	Size  graphics.Size
}

func (v colorBoxView) CreateElement() core.Element { return core.NewRenderElement() }

func (v colorBoxView) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	if v.Size == (graphics.Size{}) {
		// No size given: the box fills its constraints.
		return layout.NewRenderColoredBox(v.Color)
	}
	return layout.NewRenderColoredBoxSized(v.Color, v.Size)
}

func (v colorBoxView) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	renderObject.(*layout.RenderColoredBox).SetColor(v.Color)
}

// padView wraps a child in padding.
type padView struct {
	core.ViewBase
	Insets graphics.EdgeInsets
	Child  core.View
}

func (v padView) CreateElement() core.Element { return core.NewRenderElement() }

func (v padView) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	return layout.NewRenderPadding(v.Insets)
}

func (v padView) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
	renderObject.(*layout.RenderPadding).SetInsets(v.Insets)
}

func (v padView) ChildView() core.View { return v.Child }

// tapBoxView attaches a tap recognizer around a colored box.
type tapBoxView struct {
	core.ViewBase
	App   *App
	OnTap func()
}

func (v tapBoxView) CreateElement() core.Element { return core.NewRenderElement() }

func (v tapBoxView) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	listener := layout.NewRenderPointerListener()
	recognizer := gestures.NewTapGestureRecognizer(v.App.Arena())
	recognizer.Settings = v.App.GestureSettings()
	recognizer.OnTap = v.OnTap
	listener.AddRecognizer(recognizer)
	return listener
}

func (v tapBoxView) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {}

func (v tapBoxView) ChildView() core.View {
	return colorBoxView{Color: graphics.ColorRed, Size: graphics.Size{Width: 100, Height: 100}}
}

func TestDrawFrameSingleView(t *testing.T) {
	app := NewApp(DefaultConfig())
	app.AttachRoot(colorBoxView{
		Color: graphics.ColorRed,
		Size:  graphics.Size{Width: 100, Height: 50},
	}, layout.TightFor(200, 100))

	scene, err := app.DrawFrame(layout.TightFor(200, 100))
	if err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}
	if scene == nil || scene.LayerTree == nil {
		t.Fatal("empty scene")
	}

	box := app.RenderRoot().Child().(*layout.RenderColoredBox)
	// Tight root constraints flow through: the preferred size is
	// overridden.
	if want := (graphics.Size{Width: 200, Height: 100}); box.Size() != want {
		t.Fatalf("box size = %v, want %v", box.Size(), want)
	}
	if app.Scheduler().NeedsRedraw() {
		t.Fatal("needsRedraw still set after DrawFrame")
	}
	assertCleanTree(t, app.RenderRoot())
}

func TestDrawFrameLooseRootHonorsPreferredSize(t *testing.T) {
	app := NewApp(DefaultConfig())
	app.AttachRoot(colorBoxView{
		Color: graphics.ColorRed,
		Size:  graphics.Size{Width: 100, Height: 50},
	}, layout.Loose(graphics.Size{Width: 200, Height: 100}))

	if _, err := app.DrawFrame(layout.Loose(graphics.Size{Width: 200, Height: 100})); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}
	box := app.RenderRoot().Child().(*layout.RenderColoredBox)
	if want := (graphics.Size{Width: 100, Height: 50}); box.Size() != want {
		t.Fatalf("box size = %v, want %v", box.Size(), want)
	}
}

func assertCleanTree(t *testing.T, root layout.RenderObject) {
	t.Helper()
	var walk func(node layout.RenderObject) bool
	walk = func(node layout.RenderObject) bool {
		if node.NeedsLayout() {
			t.Errorf("%T still needs layout after frame", node)
		}
		if node.NeedsPaint() {
			t.Errorf("%T still needs paint after frame", node)
		}
		if node.NeedsCompositingBitsUpdate() {
			t.Errorf("%T still needs compositing bits after frame", node)
		}
		if !node.Constraints().IsSatisfiedBy(node.Size()) {
			t.Errorf("%T size %v violates %v", node, node.Size(), node.Constraints())
		}
		node.VisitChildren(walk)
		return true
	}
	walk(root)
}

func TestDrawFramePaddingScenario(t *testing.T) {
	app := NewApp(DefaultConfig())
	app.AttachRoot(padView{
		Insets: graphics.EdgeInsetsAll(10),
		Child:  colorBoxView{Color: graphics.ColorBlue},
	}, layout.Loose(graphics.Size{Width: 200, Height: 100}))

	if _, err := app.DrawFrame(layout.Loose(graphics.Size{Width: 200, Height: 100})); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}
	padding := app.RenderRoot().Child().(*layout.RenderPadding)
	child := padding.Child()
	if want := (graphics.Size{Width: 180, Height: 80}); child.Size() != want {
		t.Fatalf("child size = %v, want %v", child.Size(), want)
	}
	if want := (graphics.Size{Width: 200, Height: 100}); padding.Size() != want {
		t.Fatalf("padding size = %v, want %v", padding.Size(), want)
	}
	if want := (graphics.Offset{X: 10, Y: 10}); child.ParentData().Offset() != want {
		t.Fatalf("child offset = %v, want %v", child.ParentData().Offset(), want)
	}
	assertCleanTree(t, app.RenderRoot())
}

func TestDrawFrameWithoutRoot(t *testing.T) {
	app := NewApp(DefaultConfig())
	if _, err := app.DrawFrame(layout.TightFor(10, 10)); err != ErrNoRoot {
		t.Fatalf("err = %v, want ErrNoRoot", err)
	}
}

func TestTapGestureEndToEnd(t *testing.T) {
	taps := 0
	app := NewApp(DefaultConfig())
	app.AttachRoot(tapBoxView{App: app, OnTap: func() { taps++ }}, layout.TightFor(100, 100))
	if _, err := app.DrawFrame(layout.TightFor(100, 100)); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}

	app.HandlePointerButton(graphics.Offset{X: 50, Y: 50}, 1, 0, true)
	app.HandlePointerButton(graphics.Offset{X: 52, Y: 51}, 1, 0, false)

	if taps != 1 {
		t.Fatalf("taps = %d, want exactly 1", taps)
	}
}

func TestTapCancelledByBigMove(t *testing.T) {
	taps := 0
	app := NewApp(DefaultConfig())
	app.AttachRoot(tapBoxView{App: app, OnTap: func() { taps++ }}, layout.TightFor(100, 100))
	if _, err := app.DrawFrame(layout.TightFor(100, 100)); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}

	app.HandlePointerButton(graphics.Offset{X: 50, Y: 50}, 1, 0, true)
	app.HandlePointerMove(graphics.Offset{X: 90, Y: 50}, 1)
	app.Tick(time.Now())
	app.HandlePointerButton(graphics.Offset{X: 90, Y: 50}, 1, 0, false)

	if taps != 0 {
		t.Fatalf("taps = %d, want 0 after slop move", taps)
	}
}

func TestMoveCoalescingOnePerTick(t *testing.T) {
	var moves int
	app := NewApp(DefaultConfig())
	view := pointerProbeView{OnMove: func() { moves++ }}
	app.AttachRoot(view, layout.TightFor(100, 100))
	if _, err := app.DrawFrame(layout.TightFor(100, 100)); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}

	app.HandlePointerMove(graphics.Offset{X: 10, Y: 10}, 1)
	app.HandlePointerMove(graphics.Offset{X: 20, Y: 10}, 1)
	app.HandlePointerMove(graphics.Offset{X: 30, Y: 10}, 1)
	app.Tick(time.Now())

	if moves != 1 {
		t.Fatalf("routed moves = %d, want 1 coalesced", moves)
	}
}

// pointerProbeView counts routed move events.
type pointerProbeView struct {
	core.ViewBase
	OnMove func()
}

func (v pointerProbeView) CreateElement() core.Element { return core.NewRenderElement() }

func (v pointerProbeView) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	listener := layout.NewRenderPointerListener()
	listener.OnPointer = func(event gestures.PointerEvent) layout.EventPropagation {
		if event.Phase == gestures.PointerPhaseMove && v.OnMove != nil {
			v.OnMove()
		}
		return layout.PropagationContinue
	}
	return listener
}

func (v pointerProbeView) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {
}

func (v pointerProbeView) ChildView() core.View {
	return colorBoxView{Color: graphics.ColorGreen, Size: graphics.Size{Width: 100, Height: 100}}
}

func TestRebuildRootPreservesIdentityAndRedraws(t *testing.T) {
	app := NewApp(DefaultConfig())
	app.AttachRoot(colorBoxView{Color: graphics.ColorRed}, layout.TightFor(50, 50))
	if _, err := app.DrawFrame(layout.TightFor(50, 50)); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}
	boxBefore := app.RenderRoot().Child()

	app.RebuildRoot(colorBoxView{Color: graphics.ColorBlue})
	if _, err := app.DrawFrame(layout.TightFor(50, 50)); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}

	if app.RenderRoot().Child() != boxBefore {
		t.Fatal("render object identity changed across same-type rebuild")
	}
}

func TestTickWithoutWorkProducesNoFrame(t *testing.T) {
	app := NewApp(DefaultConfig())
	app.AttachRoot(colorBoxView{Color: graphics.ColorRed}, layout.TightFor(50, 50))
	if _, err := app.DrawFrame(layout.TightFor(50, 50)); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}
	frames := app.Scheduler().FrameNumber()

	app.Tick(time.Now())

	if app.Scheduler().FrameNumber() != frames {
		t.Fatal("idle tick advanced the frame counter")
	}
}

func TestScrollEventMovesViewport(t *testing.T) {
	app := NewApp(DefaultConfig())
	app.AttachRoot(viewportView{}, layout.TightFor(200, 400))
	if _, err := app.DrawFrame(layout.TightFor(200, 400)); err != nil {
		t.Fatalf("DrawFrame: %v", err)
	}

	app.HandleScrollEvent(ScrollEvent{
		Position: graphics.Offset{X: 100, Y: 100},
		Delta:    graphics.Offset{Y: 120},
	})

	viewport := app.RenderRoot().Child().(*layout.RenderViewport)
	if viewport.ScrollOffset() != 120 {
		t.Fatalf("scroll offset = %v, want 120", viewport.ScrollOffset())
	}
	if !app.NeedsFrame() {
		t.Fatal("scroll did not schedule a frame")
	}
}

// viewportView hosts a tall sliver inside a viewport. The sliver and its
// box come from child views, because the element tree sets a render
// object's children from its child elements.
type viewportView struct {
	core.ViewBase
}

func (v viewportView) CreateElement() core.Element { return core.NewRenderElement() }

func (v viewportView) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	return layout.NewRenderViewport(graphics.TopToBottom)
}

func (v viewportView) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {}

func (v viewportView) ChildView() core.View {
	return sliverAdapterView{Child: colorBoxView{Color: graphics.ColorRed, Size: graphics.Size{Width: 200, Height: 1000}}}
}

// sliverAdapterView hosts one box view as a sliver.
type sliverAdapterView struct {
	core.ViewBase
	Child core.View
}

func (v sliverAdapterView) CreateElement() core.Element { return core.NewRenderElement() }

func (v sliverAdapterView) CreateRenderObject(ctx core.BuildContext) layout.RenderObject {
	return layout.NewRenderSliverToBoxAdapter()
}

func (v sliverAdapterView) UpdateRenderObject(ctx core.BuildContext, renderObject layout.RenderObject) {}

func (v sliverAdapterView) ChildView() core.View { return v.Child }

func TestValidateEmbedderVersions(t *testing.T) {
	cases := []struct {
		version string
		wantErr bool
	}{
		{ProtocolVersion, false},
		{MinEmbedderVersion, false},
		{"v1.3.9", false},
		{"v1.1.0", true},
		{"v2.0.0", true},
		{"1.3.0", true},
		{"garbage", true},
	}
	for _, tc := range cases {
		err := ValidateEmbedder(EmbedderInfo{Name: "test", ProtocolVersion: tc.version})
		if (err != nil) != tc.wantErr {
			t.Errorf("ValidateEmbedder(%q) err = %v, wantErr %v", tc.version, err, tc.wantErr)
		}
	}
}
