package core

import "github.com/loomui/loom/pkg/layout"

// ProviderElement hosts a ProviderView and tracks the dependents that
// read its value. Dependents are held as a set keyed by element identity;
// registration order is irrelevant and duplicates collapse.
type ProviderElement struct {
	elementBase
	child      Element
	dependents map[Element]struct{}
}

// NewProviderElement creates the element for a ProviderView.
func NewProviderElement() *ProviderElement {
	return &ProviderElement{dependents: make(map[Element]struct{})}
}

func (e *ProviderElement) addDependent(dependent Element) {
	e.dependents[dependent] = struct{}{}
}

func (e *ProviderElement) removeDependent(dependent Element) {
	delete(e.dependents, dependent)
}

// DependentCount reports how many elements currently depend on this
// provider.
func (e *ProviderElement) DependentCount() int { return len(e.dependents) }

func (e *ProviderElement) Mount(parent Element, slot any) {
	e.mountBase(parent, slot)
	e.dirty = true
	e.RebuildIfNeeded()
}

// Update swaps the view and, when the new value should notify, marks
// every registered dependent dirty.
func (e *ProviderElement) Update(newView View) {
	oldView := e.view.(ProviderView)
	e.view = newView
	if newView.(ProviderView).UpdateShouldNotify(oldView) {
		for dependent := range e.dependents {
			dependent.MarkNeedsBuild()
		}
	}
	e.dirty = true
	e.RebuildIfNeeded()
}

func (e *ProviderElement) Deactivate() {
	e.deactivateBase()
	if e.child != nil {
		e.child.Deactivate()
	}
}

func (e *ProviderElement) Activate() {
	e.activateBase()
	if e.child != nil {
		e.child.Activate()
	}
	e.MarkNeedsBuild()
}

func (e *ProviderElement) Unmount() {
	if e.child != nil {
		e.child.Unmount()
		e.child = nil
	}
	e.dependents = nil
	e.unmountBase()
}

func (e *ProviderElement) RebuildIfNeeded() {
	if !e.dirty || e.lifecycle != LifecycleActive {
		return
	}
	e.dirty = false
	view := e.view.(ProviderView)
	e.child = updateChild(e.child, view.ChildView(), e, e.owner, e.slot)
	e.notifyRenderParent()
}

func (e *ProviderElement) VisitChildren(visitor func(Element) bool) {
	if e.child != nil {
		visitor(e.child)
	}
}

func (e *ProviderElement) RenderObject() layout.RenderObject {
	if e.child == nil {
		return nil
	}
	return e.child.RenderObject()
}

func (e *ProviderElement) UpdateSlot(slot any) {
	e.slot = slot
	if e.child != nil {
		e.child.UpdateSlot(slot)
	}
}
