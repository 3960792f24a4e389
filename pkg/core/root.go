package core

import "github.com/loomui/loom/pkg/layout"

// rootView adapts the application's top-level view into a RenderView
// hosting the render tree root, so the ordinary inflation path wires the
// whole tree.
type rootView struct {
	ViewBase
	child      View
	renderRoot *layout.RenderTreeRoot
}

func (v rootView) CreateElement() Element { return NewRenderElement() }

func (v rootView) CreateRenderObject(ctx BuildContext) layout.RenderObject {
	return v.renderRoot
}

func (v rootView) UpdateRenderObject(ctx BuildContext, renderObject layout.RenderObject) {}

func (v rootView) ChildView() View { return v.child }

// AttachRoot mounts view as the root of a fresh element tree driven by
// owner, anchored on renderRoot. The returned element is the tree's root;
// rebuild it through RebuildRoot.
func AttachRoot(owner *BuildOwner, renderRoot *layout.RenderTreeRoot, view View) Element {
	owner.Pipeline().SetRoot(renderRoot)
	root := inflateView(rootView{child: view, renderRoot: renderRoot}, nil, owner, nil)
	owner.FlushBuild()
	return root
}

// RebuildRoot swaps the root's application view, reconciling the whole
// tree against the new description.
func RebuildRoot(root Element, renderRoot *layout.RenderTreeRoot, view View) {
	root.Update(rootView{child: view, renderRoot: renderRoot})
}

// DetachRoot deactivates and unmounts the entire tree.
func DetachRoot(owner *BuildOwner, root Element) {
	if root == nil {
		return
	}
	root.Deactivate()
	root.Unmount()
	owner.Pipeline().SetRoot(nil)
}
