package core

import "github.com/loomui/loom/pkg/layout"

// ComposableElement hosts a ComposableView: a component element with one
// child subtree produced by the view's Build.
type ComposableElement struct {
	elementBase
	child Element
}

// NewComposableElement creates the element for a ComposableView. The view
// and owner are wired during inflation.
func NewComposableElement() *ComposableElement {
	return &ComposableElement{}
}

func (e *ComposableElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *ComposableElement) Update(newView View) {
	e.view = newView
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *ComposableElement) Deactivate() {
	e.deactivateBase()
	if e.child != nil {
		e.child.Deactivate()
	}
}

func (e *ComposableElement) Activate() {
	e.activateBase()
	if e.child != nil {
		e.child.Activate()
	}
	e.MarkNeedsBuild()
}

func (e *ComposableElement) Unmount() {
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	e.unmountBase()
}

func (e *ComposableElement) RebuildIfNeeded() {
	if !e.dirty || e.lifecycle != LifecycleActive {
		return
	}
	e.dirty = false
	view := e.view.(ComposableView)
	built, ok := e.safeBuild(func() View { return view.Build(e) })
	if !ok {
		// The failed build keeps the previous child; the frame proceeds.
		return
	}
	e.child = updateChild(e.child, built, e, e.owner, e.slot)
	e.notifyRenderParent()
}

func (e *ComposableElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *ComposableElement) RenderObject() layout.RenderObject {
	if e.child == nil {
		return nil
	}
	return e.child.RenderObject()
}

// UpdateSlot forwards the new slot to the child, since a component
// element occupies its child's position in the nearest render parent.
func (e *ComposableElement) UpdateSlot(slot any) {
	e.slot = slot
	if e.child != nil {
		e.child.UpdateSlot(slot)
	}
}

// State carries a StatefulView's mutable state across rebuilds.
type State interface {
	// InitState runs once after the element mounts.
	InitState()
	// Build produces the child description, same contract as a
	// ComposableView's Build.
	Build(ctx BuildContext) View
	// DidUpdateView runs when the hosting view is replaced in place.
	DidUpdateView(oldView StatefulView)
	// Dispose runs when the element unmounts.
	Dispose()
}

// StatefulElement hosts a StatefulView and the State it creates.
type StatefulElement struct {
	elementBase
	child Element
	state State
}

// NewStatefulElement creates the element for a StatefulView.
func NewStatefulElement() *StatefulElement {
	return &StatefulElement{}
}

// State exposes the element's state object, mainly to tests.
func (e *StatefulElement) State() State { return e.state }

func (e *StatefulElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	view := e.view.(StatefulView)
	e.state = view.CreateState()
	if binder, ok := e.state.(interface{ bindElement(*StatefulElement) }); ok {
		binder.bindElement(e)
	}
	e.state.InitState()
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatefulElement) Update(newView View) {
	oldView := e.view.(StatefulView)
	e.view = newView
	e.state.DidUpdateView(oldView)
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *StatefulElement) Deactivate() {
	e.deactivateBase()
	if e.child != nil {
		e.child.Deactivate()
	}
}

func (e *StatefulElement) Activate() {
	e.activateBase()
	if e.child != nil {
		e.child.Activate()
	}
	e.MarkNeedsBuild()
}

func (e *StatefulElement) Unmount() {
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	if e.state != nil {
		e.state.Dispose()
		e.state = nil
	}
	e.unmountBase()
}

func (e *StatefulElement) RebuildIfNeeded() {
	if !e.dirty || e.lifecycle != LifecycleActive {
		return
	}
	e.dirty = false
	built, ok := e.safeBuild(func() View { return e.state.Build(e) })
	if !ok {
		return
	}
	e.child = updateChild(e.child, built, e, e.owner, e.slot)
	e.notifyRenderParent()
}

func (e *StatefulElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *StatefulElement) RenderObject() layout.RenderObject {
	if e.child == nil {
		return nil
	}
	return e.child.RenderObject()
}

func (e *StatefulElement) UpdateSlot(slot any) {
	e.slot = slot
	if e.child != nil {
		e.child.UpdateSlot(slot)
	}
}

// StateBase is the embeddable State implementation: it wires the element
// backlink and provides SetState.
type StateBase struct {
	element *StatefulElement
}

func (s *StateBase) bindElement(element *StatefulElement) { s.element = element }

// Element returns the hosting element, nil before mount.
func (s *StateBase) Element() *StatefulElement { return s.element }

// Context returns the hosting element as a BuildContext.
func (s *StateBase) Context() BuildContext { return s.element }

// SetState applies fn and schedules a rebuild of the hosting element.
// UI-thread only.
func (s *StateBase) SetState(fn func()) {
	if fn != nil {
		fn()
	}
	if s.element != nil {
		s.element.MarkNeedsBuild()
	}
}

func (s *StateBase) InitState()                     {}
func (s *StateBase) DidUpdateView(old StatefulView) {}
func (s *StateBase) Dispose()                       {}
