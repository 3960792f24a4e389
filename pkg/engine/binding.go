// Package engine glues the trees together: the frame scheduler, the app
// binding composing build owner + pipeline + input routing, and the
// embedder-facing surface (ticks in, scenes out).
package engine

import (
	"sync"
	"time"

	"github.com/loomui/loom/pkg/core"
	"github.com/loomui/loom/pkg/errors"
	"github.com/loomui/loom/pkg/gestures"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/layout"
)

// App is the process-wide binding: it owns the build owner (and through
// it the render pipeline), the root element slot, the frame scheduler,
// the pointer coalescer, and the gesture arena. All frame work runs on
// the single UI thread; the mutex only guards attach/detach and the
// embedder-facing entry points.
type App struct {
	mu sync.Mutex

	config      Config
	buildOwner  *core.BuildOwner
	renderRoot  *layout.RenderTreeRoot
	rootElement core.Element
	scheduler   *Scheduler
	pointers    *gestures.Coalescer
	arena       *gestures.GestureArena
	diagnostics *Diagnostics
	renderer    SceneRenderer
	keyHandler  func(KeyEvent)

	// routes pins the hit-test result captured at each pointer's down so
	// move/up events reach the same targets.
	routes map[int64]*layout.HitTestResult
}

var (
	sharedApp  *App
	sharedOnce sync.Once
)

// Shared returns the process-wide app binding, created lazily on first
// access with the default configuration. It lives until process exit.
func Shared() *App {
	sharedOnce.Do(func() {
		sharedApp = NewApp(DefaultConfig())
	})
	return sharedApp
}

// NewApp creates an isolated binding, the constructor tests and embedders
// with custom configuration use.
func NewApp(config Config) *App {
	a := &App{
		config:      config,
		buildOwner:  core.NewBuildOwner(),
		scheduler:   NewScheduler(),
		pointers:    gestures.NewCoalescer(),
		arena:       gestures.NewGestureArena(),
		diagnostics: InstallDiagnostics(),
		routes:      make(map[int64]*layout.HitTestResult),
	}
	a.buildOwner.OnNeedsBuild = a.scheduler.RequestRedraw
	a.buildOwner.Pipeline().OnNeedsVisualUpdate = a.scheduler.RequestRedraw
	a.buildOwner.Pipeline().EnableSemantics(config.Semantics)
	a.buildOwner.Pipeline().OnLayerCacheEvent = func(reused bool) {
		if reused {
			a.scheduler.Metrics().RecordCacheHit()
		} else {
			a.scheduler.Metrics().RecordCacheMiss()
		}
	}
	return a
}

// Scheduler exposes the frame scheduler.
func (a *App) Scheduler() *Scheduler { return a.scheduler }

// Metrics exposes the frame timing counters.
func (a *App) Metrics() *FrameMetrics { return a.scheduler.Metrics() }

// Diagnostics exposes the structured error channel.
func (a *App) Diagnostics() *Diagnostics { return a.diagnostics }

// Arena exposes the gesture arena recognizers should compete in.
func (a *App) Arena() *gestures.GestureArena { return a.arena }

// GestureSettings returns the configured recognizer thresholds.
func (a *App) GestureSettings() *gestures.Settings {
	settings := a.config.Gestures
	return &settings
}

// BuildOwner exposes the element tree coordinator.
func (a *App) BuildOwner() *core.BuildOwner { return a.buildOwner }

// RenderRoot returns the render tree root, nil before AttachRoot.
func (a *App) RenderRoot() *layout.RenderTreeRoot {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.renderRoot
}

// RootElement returns the element tree root, nil before AttachRoot.
func (a *App) RootElement() core.Element {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rootElement
}

// SetSceneRenderer installs the backend that receives finished scenes
// from Tick-driven frames.
func (a *App) SetSceneRenderer(renderer SceneRenderer) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.renderer = renderer
}

// SetKeyHandler installs the raw keyboard event sink.
func (a *App) SetKeyHandler(handler func(KeyEvent)) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.keyHandler = handler
}

// AttachRoot mounts view as the application root under the given frame
// constraints and schedules the first frame.
func (a *App) AttachRoot(view core.View, constraints layout.Constraints) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.rootElement != nil {
		core.DetachRoot(a.buildOwner, a.rootElement)
		a.rootElement = nil
	}
	a.renderRoot = layout.NewRenderTreeRoot(constraints)
	a.rootElement = core.AttachRoot(a.buildOwner, a.renderRoot, view)
	a.scheduler.RequestRedraw()
}

// RebuildRoot replaces the application root view in place.
func (a *App) RebuildRoot(view core.View) {
	a.mu.Lock()
	root, renderRoot := a.rootElement, a.renderRoot
	a.mu.Unlock()
	if root == nil {
		errors.ReportProtocol("build", "RebuildRoot with no root attached")
		return
	}
	core.RebuildRoot(root, renderRoot, view)
	a.scheduler.RequestRedraw()
}

// DetachRoot unmounts the tree; subsequent frames produce no scene.
func (a *App) DetachRoot() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.rootElement == nil {
		return
	}
	core.DetachRoot(a.buildOwner, a.rootElement)
	a.rootElement = nil
	a.renderRoot = nil
}

// RequestRedraw schedules a pipeline pass for the next tick.
func (a *App) RequestRedraw() { a.scheduler.RequestRedraw() }

// NeedsFrame reports whether a tick would do pipeline work.
func (a *App) NeedsFrame() bool {
	return a.scheduler.NeedsRedraw() ||
		a.buildOwner.NeedsBuild() ||
		a.buildOwner.Pipeline().NeedsFrame()
}

// Tick is the embedder's frame signal: it routes coalesced pointer moves,
// then runs one pipeline pass if anything is dirty, handing the scene to
// the installed renderer.
func (a *App) Tick(timestamp time.Time) {
	a.routePendingMoves()
	dirty := a.buildOwner.NeedsBuild() || a.buildOwner.Pipeline().NeedsFrame()
	if !a.scheduler.beginFrame(timestamp, dirty) {
		return
	}
	scene, err := a.drawFrameLocked()
	if err != nil || scene == nil {
		return
	}
	a.mu.Lock()
	renderer := a.renderer
	a.mu.Unlock()
	if renderer != nil {
		renderer.PresentScene(scene)
	}
}

// DrawFrame runs one full pipeline pass against explicit root
// constraints and returns the scene, the embedder-pull variant of Tick.
func (a *App) DrawFrame(rootConstraints layout.Constraints) (*graphics.Scene, error) {
	a.mu.Lock()
	renderRoot := a.renderRoot
	a.mu.Unlock()
	if renderRoot == nil {
		return nil, ErrNoRoot
	}
	renderRoot.SetConfiguration(rootConstraints)
	a.routePendingMoves()
	a.scheduler.beginFrame(time.Now(), true)
	return a.drawFrameLocked()
}

// drawFrameLocked runs build → layout → compositing bits → paint →
// semantics, recording phase timings. A panic in any phase finalizes the
// frame with a diagnostic; pending dirty state is preserved for the next
// frame.
func (a *App) drawFrameLocked() (scene *graphics.Scene, err error) {
	a.mu.Lock()
	renderRoot := a.renderRoot
	a.mu.Unlock()
	if renderRoot == nil {
		return nil, ErrNoRoot
	}

	defer errors.RecoverWithCallback("engine.DrawFrame", func(p *errors.PanicError) {
		scene = nil
		err = p
	})

	var phases PhaseTimes
	frameStart := time.Now()

	mark := time.Now()
	a.buildOwner.FlushBuild()
	phases.Build = time.Since(mark)

	pipeline := a.buildOwner.Pipeline()

	mark = time.Now()
	renderRoot.PrepareFrame()
	pipeline.FlushLayout()
	phases.Layout = time.Since(mark)

	mark = time.Now()
	pipeline.FlushCompositingBits()
	phases.CompositingBits = time.Since(mark)

	mark = time.Now()
	pipeline.FlushPaint()
	phases.Paint = time.Since(mark)

	mark = time.Now()
	pipeline.FlushSemantics()
	phases.Semantics = time.Since(mark)

	layerTree := pipeline.TakeLayerTree()
	scene = graphics.NewScene(renderRoot.Size(), layerTree, a.scheduler.FrameNumber())

	a.scheduler.Metrics().RecordFrame(time.Since(frameStart), phases)
	a.scheduler.endFrame()
	return scene, nil
}

// HandlePointerMove records a coalesced move; at most one per device is
// routed per frame.
func (a *App) HandlePointerMove(position graphics.Offset, device int64) {
	a.pointers.RecordMove(gestures.PointerEvent{
		PointerID: device,
		Position:  position,
		Phase:     gestures.PointerPhaseMove,
	})
	a.scheduler.RequestRedraw()
}

// HandlePointerButton routes a down/up immediately: down captures the hit
// route and opens the pointer's gesture arena; up closes it with a sweep.
func (a *App) HandlePointerButton(position graphics.Offset, device int64, button int, isDown bool) {
	phase := gestures.PointerPhaseUp
	if isDown {
		phase = gestures.PointerPhaseDown
	}
	event := gestures.PointerEvent{
		PointerID: device,
		Position:  position,
		Phase:     phase,
		Buttons:   button,
	}
	a.pointers.RecordButton(event)
	a.routeImmediate(event)
}

// HandlePointerCancel aborts a pointer's gesture, e.g. when the platform
// takes over.
func (a *App) HandlePointerCancel(device int64) {
	state, _ := a.pointers.State(device)
	event := gestures.PointerEvent{
		PointerID: device,
		Position:  state.Position,
		Phase:     gestures.PointerPhaseCancel,
	}
	a.pointers.RecordButton(event)
	a.routeImmediate(event)
}

// HandleKeyEvent forwards a raw key event to the installed handler.
func (a *App) HandleKeyEvent(event KeyEvent) {
	a.mu.Lock()
	handler := a.keyHandler
	a.mu.Unlock()
	if handler != nil {
		handler(event)
	}
}

// HandleScrollEvent routes a scroll to the nearest viewport under the
// pointer.
func (a *App) HandleScrollEvent(event ScrollEvent) {
	a.mu.Lock()
	renderRoot := a.renderRoot
	a.mu.Unlock()
	if renderRoot == nil {
		return
	}
	result := layout.HitTest(renderRoot, event.Position)
	for _, entry := range result.Entries() {
		if viewport, ok := entry.Target.(*layout.RenderViewport); ok {
			delta := event.Delta.Y
			if delta == 0 {
				delta = event.Delta.X
			}
			viewport.ScrollBy(delta)
			a.scheduler.RequestRedraw()
			return
		}
	}
}

// routeImmediate dispatches a non-coalesced event along the pointer's hit
// route, managing the arena lifecycle around it.
func (a *App) routeImmediate(event gestures.PointerEvent) {
	a.mu.Lock()
	renderRoot := a.renderRoot
	a.mu.Unlock()
	if renderRoot == nil {
		return
	}
	switch event.Phase {
	case gestures.PointerPhaseDown:
		route := layout.HitTest(renderRoot, event.Position)
		a.routes[event.PointerID] = route
		route.DispatchPointer(event)
		// Every candidate recognizer has had its chance to enter; a
		// lone entrant wins immediately.
		a.arena.Close(event.PointerID)
	case gestures.PointerPhaseUp, gestures.PointerPhaseCancel:
		if route, ok := a.routes[event.PointerID]; ok {
			route.DispatchPointer(event)
			delete(a.routes, event.PointerID)
		}
		a.arena.Sweep(event.PointerID)
	}
	a.scheduler.RequestRedraw()
}

// routePendingMoves hands each device's coalesced move to its captured
// route (pressed pointers) or a fresh hit test (hover).
func (a *App) routePendingMoves() {
	moves := a.pointers.TakePendingMoves()
	if len(moves) == 0 {
		return
	}
	a.mu.Lock()
	renderRoot := a.renderRoot
	a.mu.Unlock()
	if renderRoot == nil {
		return
	}
	for _, event := range moves {
		if route, ok := a.routes[event.PointerID]; ok {
			route.DispatchPointer(event)
			continue
		}
		layout.HitTest(renderRoot, event.Position).DispatchPointer(event)
	}
}
