// Package core implements the element tree: the stateful mirror of the
// declarative view description, reconciled in place on every rebuild.
package core

import (
	"reflect"

	"github.com/loomui/loom/pkg/layout"
)

// View is a value-typed description of a piece of UI. Views are cheap,
// immutable, and rebuilt wholesale; the element tree diffs consecutive
// descriptions and keeps the expensive state (elements, render objects)
// alive across rebuilds.
type View interface {
	// Key disambiguates siblings during reconciliation. A nil key matches
	// by position; a non-nil key matches by (view type, key).
	Key() any
	// CreateElement instantiates the element that will host this view.
	CreateElement() Element
}

// ViewBase supplies the Key plumbing views embed.
type ViewBase struct {
	ViewKey any
}

func (v ViewBase) Key() any { return v.ViewKey }

// ComposableView is a view that builds a child description. Its element
// is a component element: it owns no render object, only a child subtree.
type ComposableView interface {
	View
	Build(ctx BuildContext) View
}

// StatefulView is a composable view whose build reads mutable state held
// by the element across rebuilds.
type StatefulView interface {
	View
	CreateState() State
}

// RenderView is a view backed by a render object. Its element creates the
// render object at mount and pushes configuration changes into it on
// every update.
type RenderView interface {
	View
	CreateRenderObject(ctx BuildContext) layout.RenderObject
	UpdateRenderObject(ctx BuildContext, renderObject layout.RenderObject)
}

// SingleChildView is implemented by render views hosting one child view.
type SingleChildView interface {
	ChildView() View
}

// MultiChildView is implemented by render views hosting a child list.
type MultiChildView interface {
	ChildViews() []View
}

// ProviderView publishes a value to its subtree. Descendants that read
// the value through BuildContext.DependOnProvider are rebuilt when an
// update changes it.
type ProviderView interface {
	View
	ChildView() View
	// UpdateShouldNotify compares this view against the one it replaced
	// and reports whether dependents must rebuild.
	UpdateShouldNotify(previous ProviderView) bool
}

// canUpdate reports whether an existing element can absorb next in place:
// same concrete view type and equal keys.
func canUpdate(existing, next View) bool {
	if existing == nil || next == nil {
		return false
	}
	if reflect.TypeOf(existing) != reflect.TypeOf(next) {
		return false
	}
	return keysEqual(existing.Key(), next.Key())
}

// viewsIdentical reports whether two descriptions are the same comparable
// value, letting reconciliation skip a subtree that cannot have changed.
// Views carrying uncomparable fields (closures, slices) never match.
func viewsIdentical(a, b View) bool {
	if a == nil || b == nil {
		return false
	}
	if reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	if !isComparable(a) {
		return false
	}
	return safeEqual(a, b)
}

// safeEqual compares two values, treating a runtime comparison panic
// (an interface field holding an uncomparable value) as inequality.
func safeEqual(a, b any) (equal bool) {
	defer func() {
		if recover() != nil {
			equal = false
		}
	}()
	return a == b
}

func keysEqual(a, b any) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	if !isComparable(a) || !isComparable(b) {
		return false
	}
	return safeEqual(a, b)
}

// isComparable guards map/slice/function keys out of the == comparison
// and the reconciliation key map.
func isComparable(v any) bool {
	if v == nil {
		return true
	}
	return reflect.TypeOf(v).Comparable()
}
