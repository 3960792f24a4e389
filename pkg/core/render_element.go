package core

import (
	"fmt"

	"github.com/loomui/loom/pkg/errors"
	"github.com/loomui/loom/pkg/layout"
)

// RenderElement hosts a RenderView and owns its render object. It is the
// point where the element tree and render tree meet: mounting attaches
// the render object under the nearest render-owning ancestor, updating
// pushes configuration into it, deactivating detaches it.
type RenderElement struct {
	elementBase
	renderObject layout.RenderObject
	children     []Element
	host         renderHost
}

// NewRenderElement creates the element for a RenderView.
func NewRenderElement() *RenderElement {
	return &RenderElement{}
}

func (e *RenderElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	view := e.view.(RenderView)
	e.renderObject = view.CreateRenderObject(e)
	if e.renderObject == nil {
		errors.ReportProtocol("build", fmt.Sprintf(
			"%T.CreateRenderObject returned nil", view))
		e.lifecycle = LifecycleDefunct
		return
	}
	e.attachRenderObject()
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *RenderElement) Update(newView View) {
	e.view = newView
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *RenderElement) Deactivate() {
	e.deactivateBase()
	for _, child := range e.children {
		child.Deactivate()
	}
	e.detachRenderObject()
}

func (e *RenderElement) Activate() {
	e.activateBase()
	e.attachRenderObject()
	for _, child := range e.children {
		child.Activate()
	}
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *RenderElement) Unmount() {
	for _, child := range e.children {
		child.Unmount()
	}
	e.children = nil
	if e.lifecycle == LifecycleActive {
		e.detachRenderObject()
	}
	if disposer, ok := e.renderObject.(interface{ Dispose() }); ok {
		disposer.Dispose()
	}
	e.renderObject = nil
	e.unmountBase()
}

func (e *RenderElement) RebuildIfNeeded() {
	if !e.dirty || e.lifecycle != LifecycleActive {
		return
	}
	e.dirty = false
	view := e.view.(RenderView)
	view.UpdateRenderObject(e, e.renderObject)

	switch typed := e.view.(type) {
	case SingleChildView:
		var existing Element
		if len(e.children) > 0 {
			existing = e.children[0]
		}
		child := updateChild(existing, typed.ChildView(), e, e.owner, nil)
		if child != nil {
			e.children = []Element{child}
		} else {
			e.children = nil
		}
	case MultiChildView:
		e.children = updateChildren(e, e.children, typed.ChildViews(), e.owner)
	}
	e.syncRenderChildren()
}

// syncRenderChildren pushes the element children's render objects into
// this element's render object, enforcing its declared arity.
func (e *RenderElement) syncRenderChildren() {
	objects := make([]layout.RenderObject, 0, len(e.children))
	for _, child := range e.children {
		if ro := child.RenderObject(); ro != nil {
			objects = append(objects, ro)
		}
	}
	if !e.renderObject.Arity().Accepts(len(objects)) {
		errors.ReportProtocol("build", fmt.Sprintf(
			"%T with arity %v given %d children",
			e.renderObject, e.renderObject.Arity(), len(objects)))
		return
	}
	switch sink := e.renderObject.(type) {
	case interface{ SetChildren([]layout.RenderObject) }:
		sink.SetChildren(objects)
	case interface{ SetChild(layout.RenderObject) }:
		if len(objects) > 0 {
			sink.SetChild(objects[0])
		} else {
			sink.SetChild(nil)
		}
	}
}

func (e *RenderElement) VisitChildren(visitor func(Element) bool) {
	for _, child := range e.children {
		if !visitor(child) {
			return
		}
	}
}

// RenderObject returns the owned render object; nil once the element is
// defunct.
func (e *RenderElement) RenderObject() layout.RenderObject {
	return e.renderObject
}

// renderHost implementation: this element is the render parent for its
// descendants' render objects.

func (e *RenderElement) insertRenderChild(child layout.RenderObject, slot any) {
	// Children are synced wholesale in syncRenderChildren after a
	// rebuild; a direct insert only flags the list stale.
	e.childRenderListDirty()
	_ = child
	_ = slot
}

func (e *RenderElement) removeRenderChild(child layout.RenderObject, slot any) {
	if e.renderObject == nil {
		return
	}
	switch sink := e.renderObject.(type) {
	case interface{ SetChildren([]layout.RenderObject) }:
		e.childRenderListDirty()
	case interface {
		SetChild(layout.RenderObject)
		Child() layout.RenderObject
	}:
		if sink.Child() == child {
			sink.SetChild(nil)
		}
	}
	_ = slot
}

func (e *RenderElement) childRenderListDirty() {
	if e.lifecycle == LifecycleActive {
		e.MarkNeedsBuild()
	}
}

// attachRenderObject hangs this element's render object under the nearest
// ancestor render host, or leaves it free-standing at the tree root.
func (e *RenderElement) attachRenderObject() {
	e.host = e.findRenderHost()
	if e.host == nil {
		return
	}
	e.host.insertRenderChild(e.renderObject, e.slot)
	e.host.syncNow()
}

func (e *RenderElement) detachRenderObject() {
	if e.host == nil {
		return
	}
	e.host.removeRenderChild(e.renderObject, e.slot)
	e.host.syncNow()
	e.host = nil
}

// syncNow re-collects child render objects outside a rebuild, used when
// a descendant attached, detached, or was swapped by a component
// element's rebuild.
func (e *RenderElement) syncNow() {
	if e.lifecycle != LifecycleActive || e.renderObject == nil {
		return
	}
	e.syncRenderChildren()
}
