// Package testing provides the harness widget and engine tests use to
// mount a view tree, pump frames, and inject pointer input without an
// embedder.
package testing

import (
	"time"

	"github.com/loomui/loom/pkg/core"
	"github.com/loomui/loom/pkg/engine"
	"github.com/loomui/loom/pkg/gestures"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/layout"
)

// ViewTester drives an isolated app binding for one test: it owns the
// surface size, pumps frames on demand, and synthesizes pointer
// sequences that flow through the real hit-test and arena paths.
type ViewTester struct {
	app         *engine.App
	constraints layout.Constraints
	lastScene   *graphics.Scene
	nextPointer int64
	now         time.Time
}

// NewViewTester creates a tester with a 800x600 logical surface.
func NewViewTester() *ViewTester {
	return NewViewTesterWithSurface(graphics.Size{Width: 800, Height: 600})
}

// NewViewTesterWithSurface creates a tester with an explicit surface.
func NewViewTesterWithSurface(surface graphics.Size) *ViewTester {
	return &ViewTester{
		app:         engine.NewApp(engine.DefaultConfig()),
		constraints: layout.Tight(surface),
		now:         time.Unix(1_700_000_000, 0),
	}
}

// App exposes the underlying binding for assertions on its trees.
func (t *ViewTester) App() *engine.App { return t.app }

// Arena exposes the tester's gesture arena, so views built under test
// compete in the same arena the injected pointers resolve.
func (t *ViewTester) Arena() *gestures.GestureArena { return t.app.Arena() }

// Mount attaches view as the root and pumps the first frame.
func (t *ViewTester) Mount(view core.View) *graphics.Scene {
	t.app.AttachRoot(view, t.constraints)
	return t.Pump()
}

// Pump draws one frame and returns the scene (nil without a root).
func (t *ViewTester) Pump() *graphics.Scene {
	scene, err := t.app.DrawFrame(t.constraints)
	if err != nil {
		return nil
	}
	t.lastScene = scene
	return scene
}

// PumpIdle delivers a tick without forcing a frame, returning whether a
// frame ran.
func (t *ViewTester) PumpIdle() bool {
	before := t.app.Scheduler().FrameNumber()
	t.now = t.now.Add(16 * time.Millisecond)
	t.app.Tick(t.now)
	return t.app.Scheduler().FrameNumber() != before
}

// LastScene returns the most recent frame's scene.
func (t *ViewTester) LastScene() *graphics.Scene { return t.lastScene }

// RenderRoot returns the render tree root.
func (t *ViewTester) RenderRoot() *layout.RenderTreeRoot { return t.app.RenderRoot() }

// HitTest runs a hit test against the current tree.
func (t *ViewTester) HitTest(position graphics.Offset) *layout.HitTestResult {
	return layout.HitTest(t.app.RenderRoot(), position)
}

// TapAt synthesizes a down/up pair at position through the full input
// pipeline.
func (t *ViewTester) TapAt(position graphics.Offset) {
	t.nextPointer++
	t.app.HandlePointerButton(position, t.nextPointer, 0, true)
	t.app.HandlePointerButton(position, t.nextPointer, 0, false)
}

// DragFrom synthesizes a drag: down at start, moves through the given
// positions (one frame pumped per move so coalescing applies), then up.
func (t *ViewTester) DragFrom(start graphics.Offset, path ...graphics.Offset) {
	t.nextPointer++
	pointer := t.nextPointer
	t.app.HandlePointerButton(start, pointer, 0, true)
	for _, position := range path {
		t.app.HandlePointerMove(position, pointer)
		t.now = t.now.Add(16 * time.Millisecond)
		t.app.Tick(t.now)
	}
	last := start
	if len(path) > 0 {
		last = path[len(path)-1]
	}
	t.app.HandlePointerButton(last, pointer, 0, false)
}

// MoveTo synthesizes an unpressed (hover) move and pumps a tick.
func (t *ViewTester) MoveTo(position graphics.Offset) {
	t.nextPointer++
	t.app.HandlePointerMove(position, t.nextPointer)
	t.now = t.now.Add(16 * time.Millisecond)
	t.app.Tick(t.now)
}

// Unmount detaches the root tree.
func (t *ViewTester) Unmount() {
	t.app.DetachRoot()
	t.lastScene = nil
}
