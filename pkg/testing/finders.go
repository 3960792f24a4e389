package testing

import (
	"reflect"

	"github.com/loomui/loom/pkg/core"
	"github.com/loomui/loom/pkg/layout"
)

// FindElements collects every element under root matching the predicate,
// in depth-first order.
func FindElements(root core.Element, predicate func(core.Element) bool) []core.Element {
	var found []core.Element
	var walk func(core.Element) bool
	walk = func(e core.Element) bool {
		if predicate(e) {
			found = append(found, e)
		}
		e.VisitChildren(walk)
		return true
	}
	if root != nil {
		walk(root)
	}
	return found
}

// FindByViewType collects elements whose view has the same concrete type
// as sample.
func FindByViewType(root core.Element, sample core.View) []core.Element {
	want := reflect.TypeOf(sample)
	return FindElements(root, func(e core.Element) bool {
		return reflect.TypeOf(e.View()) == want
	})
}

// FindByKey collects elements whose view carries the given key.
func FindByKey(root core.Element, key any) []core.Element {
	return FindElements(root, func(e core.Element) bool {
		return e.View() != nil && e.View().Key() == key
	})
}

// FindRenderObjects collects every render object under root matching the
// predicate, in paint order.
func FindRenderObjects(root layout.RenderObject, predicate func(layout.RenderObject) bool) []layout.RenderObject {
	var found []layout.RenderObject
	var walk func(layout.RenderObject) bool
	walk = func(node layout.RenderObject) bool {
		if predicate(node) {
			found = append(found, node)
		}
		node.VisitChildren(walk)
		return true
	}
	if root != nil {
		walk(root)
	}
	return found
}

// RenderObjectsOfType collects render objects assignable to T.
func RenderObjectsOfType[T layout.RenderObject](root layout.RenderObject) []T {
	var found []T
	for _, node := range FindRenderObjects(root, func(node layout.RenderObject) bool {
		_, ok := node.(T)
		return ok
	}) {
		found = append(found, node.(T))
	}
	return found
}
