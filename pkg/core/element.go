package core

import (
	"fmt"
	"reflect"
	"time"

	"github.com/loomui/loom/pkg/errors"
	"github.com/loomui/loom/pkg/layout"
)

// Lifecycle tracks an element through mount, updates, removal, and
// disposal. Only active elements participate in build, layout, and paint.
type Lifecycle int

const (
	// LifecycleInitial is a freshly created, never-mounted element.
	LifecycleInitial Lifecycle = iota
	// LifecycleActive is a mounted element participating in frames.
	LifecycleActive
	// LifecycleInactive is an element removed from the tree this frame;
	// it may be reactivated before the frame ends or unmounted after.
	LifecycleInactive
	// LifecycleDefunct is an unmounted element; terminal.
	LifecycleDefunct
)

func (l Lifecycle) String() string {
	switch l {
	case LifecycleInitial:
		return "initial"
	case LifecycleActive:
		return "active"
	case LifecycleInactive:
		return "inactive"
	case LifecycleDefunct:
		return "defunct"
	}
	return "unknown"
}

// IndexedSlot identifies a child's position under a multi-child parent.
type IndexedSlot struct {
	Index int
}

// Element is a mounted node of the element tree. Implementations are
// ComposableElement, StatefulElement, RenderElement, and ProviderElement.
type Element interface {
	BuildContext

	View() View
	Lifecycle() Lifecycle
	Depth() int
	Slot() any
	UpdateSlot(slot any)
	Parent() Element

	Mount(parent Element, slot any)
	Update(newView View)
	Deactivate()
	Activate()
	Unmount()

	MarkNeedsBuild()
	RebuildIfNeeded()
	VisitChildren(visitor func(Element) bool)

	// RenderObject resolves the nearest render object at or below this
	// element; nil for an element whose subtree hosts none.
	RenderObject() layout.RenderObject

	setSelf(self Element)
	setView(view View)
	setOwner(owner *BuildOwner)
	parentElement() Element
}

// BuildContext is the element-facing surface a view's Build receives.
type BuildContext interface {
	// Owner returns the build owner coordinating this element's tree.
	Owner() *BuildOwner
	// DependOnProvider finds the nearest ancestor provider whose view has
	// the given concrete type, registers this element as a dependent, and
	// returns the provider's view. Returns nil when absent.
	DependOnProvider(viewType reflect.Type) ProviderView
	// FindAncestor walks up the tree for the first element matching the
	// predicate.
	FindAncestor(predicate func(Element) bool) Element
}

// renderHost is implemented by elements that own a render object and
// accept descendant render objects as children.
type renderHost interface {
	insertRenderChild(child layout.RenderObject, slot any)
	removeRenderChild(child layout.RenderObject, slot any)
	childRenderListDirty()
	syncNow()
}

type elementBase struct {
	view      View
	parent    Element
	slot      any
	depth     int
	owner     *BuildOwner
	lifecycle Lifecycle
	dirty     bool
	self      Element

	// providers this element depends on, so deactivation can unregister.
	dependencies map[*ProviderElement]struct{}
}

func (e *elementBase) View() View           { return e.view }
func (e *elementBase) Lifecycle() Lifecycle { return e.lifecycle }
func (e *elementBase) Depth() int           { return e.depth }
func (e *elementBase) Slot() any            { return e.slot }
func (e *elementBase) Parent() Element      { return e.parent }
func (e *elementBase) Owner() *BuildOwner   { return e.owner }

func (e *elementBase) UpdateSlot(slot any)        { e.slot = slot }
func (e *elementBase) setSelf(self Element)       { e.self = self }
func (e *elementBase) setView(view View)          { e.view = view }
func (e *elementBase) setOwner(owner *BuildOwner) { e.owner = owner }
func (e *elementBase) parentElement() Element     { return e.parent }

// mountBase performs the lifecycle bookkeeping shared by every Mount.
func (e *elementBase) mountBase(parent Element, slot any) {
	if e.lifecycle != LifecycleInitial {
		errors.ReportProtocol("build", fmt.Sprintf(
			"mount of %v element", e.lifecycle))
	}
	e.parent = parent
	e.slot = slot
	if parent != nil {
		e.depth = parent.Depth() + 1
	}
	e.lifecycle = LifecycleActive
}

// deactivateBase flips state and drops provider registrations.
func (e *elementBase) deactivateBase() {
	if e.lifecycle != LifecycleActive {
		errors.ReportProtocol("build", fmt.Sprintf(
			"deactivate of %v element", e.lifecycle))
	}
	e.lifecycle = LifecycleInactive
	for provider := range e.dependencies {
		provider.removeDependent(e.self)
	}
	e.dependencies = nil
}

func (e *elementBase) activateBase() {
	if e.lifecycle != LifecycleInactive {
		errors.ReportProtocol("build", fmt.Sprintf(
			"activate of %v element", e.lifecycle))
	}
	e.lifecycle = LifecycleActive
}

func (e *elementBase) unmountBase() {
	if e.lifecycle == LifecycleDefunct {
		errors.ReportProtocol("build", "unmount of a defunct element")
		return
	}
	for provider := range e.dependencies {
		provider.removeDependent(e.self)
	}
	e.dependencies = nil
	e.lifecycle = LifecycleDefunct
}

// MarkNeedsBuild flags the element dirty and enqueues it with the owner.
// Inactive and defunct elements never rebuild.
func (e *elementBase) MarkNeedsBuild() {
	if e.dirty || e.lifecycle != LifecycleActive {
		return
	}
	e.dirty = true
	if e.owner != nil && e.self != nil {
		e.owner.scheduleBuild(e.self)
	}
}

func (e *elementBase) FindAncestor(predicate func(Element) bool) Element {
	current := e.parent
	for current != nil {
		if predicate(current) {
			return current
		}
		current = current.parentElement()
	}
	return nil
}

func (e *elementBase) DependOnProvider(viewType reflect.Type) ProviderView {
	ancestor := e.FindAncestor(func(candidate Element) bool {
		provider, ok := candidate.(*ProviderElement)
		return ok && reflect.TypeOf(provider.View()) == viewType
	})
	if ancestor == nil {
		return nil
	}
	provider := ancestor.(*ProviderElement)
	provider.addDependent(e.self)
	if e.dependencies == nil {
		e.dependencies = make(map[*ProviderElement]struct{})
	}
	e.dependencies[provider] = struct{}{}
	return provider.View().(ProviderView)
}

// notifyRenderParent has the nearest render-owning ancestor re-collect
// its child render objects. Component elements call this after their
// child subtree changed shape, since the ancestor's wholesale sync walks
// the element tree and would otherwise see the stale branch.
func (e *elementBase) notifyRenderParent() {
	if host := e.findRenderHost(); host != nil {
		host.syncNow()
	}
}

// findRenderHost locates the nearest ancestor that owns a render object.
func (e *elementBase) findRenderHost() renderHost {
	current := e.parent
	for current != nil {
		if host, ok := current.(renderHost); ok {
			return host
		}
		current = current.parentElement()
	}
	return nil
}

// safeBuild runs a build callback with panic capture. A failed build is a
// transient error: it is reported, the element keeps its previous child,
// and the frame is finalized normally.
func (e *elementBase) safeBuild(buildFn func() View) (View, bool) {
	var built View
	var failure *errors.BoundaryError
	func() {
		defer func() {
			if r := recover(); r != nil {
				failure = &errors.BoundaryError{
					Phase:      "build",
					View:       reflect.TypeOf(e.view).String(),
					Recovered:  r,
					StackTrace: errors.CaptureStack(),
					Timestamp:  time.Now(),
				}
			}
		}()
		built = buildFn()
	}()
	if failure != nil {
		errors.ReportBoundaryError(failure)
		return nil, false
	}
	return built, true
}

// updateChild reconciles one child slot: nil view unmounts, a matching
// (type, key) updates in place, anything else swaps the element out.
func updateChild(existing Element, view View, parent Element, owner *BuildOwner, slot any) Element {
	if view == nil {
		if existing != nil {
			deactivateChild(existing, owner)
		}
		return nil
	}
	if existing != nil && viewsIdentical(existing.View(), view) {
		// The description is value-equal to the current one; the subtree
		// is already up to date and the walk stops here.
		if !slotsEqual(existing.Slot(), slot) {
			existing.UpdateSlot(slot)
		}
		return existing
	}
	if existing != nil && canUpdate(existing.View(), view) {
		if !slotsEqual(existing.Slot(), slot) {
			existing.UpdateSlot(slot)
		}
		existing.Update(view)
		return existing
	}
	if existing != nil {
		deactivateChild(existing, owner)
	}
	return inflateView(view, parent, owner, slot)
}

// deactivateChild removes an element from the tree; the owner unmounts it
// at the end of the build pass unless it is reactivated first.
func deactivateChild(child Element, owner *BuildOwner) {
	child.Deactivate()
	if owner != nil {
		owner.addInactive(child)
	}
}

// inflateView creates, wires, and mounts a fresh element for view.
func inflateView(view View, parent Element, owner *BuildOwner, slot any) Element {
	element := view.CreateElement()
	element.setSelf(element)
	element.setView(view)
	element.setOwner(owner)
	element.Mount(parent, slot)
	return element
}

func slotsEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	sa, aOK := a.(IndexedSlot)
	sb, bOK := b.(IndexedSlot)
	if aOK && bOK {
		return sa == sb
	}
	return a == b
}

// updateChildren reconciles an ordered child list against new views using
// the keyed multi-pass diff: matching prefix, matching suffix, keyed
// middle, then positional reuse of the unkeyed remainder.
func updateChildren(parent Element, oldChildren []Element, newViews []View, owner *BuildOwner) []Element {
	newChildren := make([]Element, 0, len(newViews))

	oldStart, newStart := 0, 0
	oldEnd, newEnd := len(oldChildren), len(newViews)

	// Matching prefix: update in place.
	for oldStart < oldEnd && newStart < newEnd {
		oldChild := oldChildren[oldStart]
		view := newViews[newStart]
		if !canUpdate(oldChild.View(), view) {
			break
		}
		child := updateChild(oldChild, view, parent, owner, IndexedSlot{Index: newStart})
		newChildren = append(newChildren, child)
		oldStart++
		newStart++
	}

	// Matching suffix: note the bounds, process after the middle.
	oldEndScan, newEndScan := oldEnd, newEnd
	for oldEndScan > oldStart && newEndScan > newStart {
		if !canUpdate(oldChildren[oldEndScan-1].View(), newViews[newEndScan-1]) {
			break
		}
		oldEndScan--
		newEndScan--
	}

	// Index the middle old children by key.
	keyedOld := make(map[any]Element)
	var unkeyedOld []Element
	for i := oldStart; i < oldEndScan; i++ {
		child := oldChildren[i]
		if key := child.View().Key(); key != nil && isComparable(key) {
			keyedOld[key] = child
		} else {
			unkeyedOld = append(unkeyedOld, child)
		}
	}

	// Middle new views: prefer key matches, then positional reuse.
	unkeyedIndex := 0
	for newStart < newEndScan {
		view := newViews[newStart]
		var oldChild Element
		if key := view.Key(); key != nil && isComparable(key) {
			if candidate, ok := keyedOld[key]; ok && canUpdate(candidate.View(), view) {
				oldChild = candidate
				delete(keyedOld, key)
			}
		} else if unkeyedIndex < len(unkeyedOld) {
			candidate := unkeyedOld[unkeyedIndex]
			if candidate != nil && canUpdate(candidate.View(), view) {
				oldChild = candidate
				unkeyedOld[unkeyedIndex] = nil
			}
			unkeyedIndex++
		}
		child := updateChild(oldChild, view, parent, owner, IndexedSlot{Index: len(newChildren)})
		newChildren = append(newChildren, child)
		newStart++
	}

	// Matching suffix: update in place at their new indices.
	for newEndScan < newEnd {
		child := updateChild(oldChildren[oldEndScan], newViews[newEndScan], parent, owner,
			IndexedSlot{Index: len(newChildren)})
		newChildren = append(newChildren, child)
		oldEndScan++
		newEndScan++
	}

	// Anything left in the middle was dropped.
	for _, remaining := range keyedOld {
		deactivateChild(remaining, owner)
	}
	for _, remaining := range unkeyedOld {
		if remaining != nil {
			deactivateChild(remaining, owner)
		}
	}
	return newChildren
}
