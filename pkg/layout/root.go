package layout

// RenderTreeRoot anchors the render tree. It is always a repaint boundary
// and a relayout boundary: the embedder hands it the frame's root
// constraints and it sizes itself to the biggest admissible size,
// laying its child out inside them.
type RenderTreeRoot struct {
	RenderBase
	SingleChildBase

	configuration Constraints
}

// NewRenderTreeRoot creates a root sized by the given frame constraints.
func NewRenderTreeRoot(configuration Constraints) *RenderTreeRoot {
	r := &RenderTreeRoot{configuration: configuration}
	r.Init(r)
	r.SetRepaintBoundary(true)
	return r
}

// SetConfiguration installs new frame constraints, e.g. after a window
// resize, and schedules layout if they changed.
func (r *RenderTreeRoot) SetConfiguration(configuration Constraints) {
	if r.configuration == configuration {
		return
	}
	r.configuration = configuration
	r.MarkNeedsLayout()
}

// Configuration returns the current frame constraints.
func (r *RenderTreeRoot) Configuration() Constraints { return r.configuration }

// SetChild installs the root's single child subtree.
func (r *RenderTreeRoot) SetChild(child RenderObject) {
	r.SingleChildBase.SetChild(&r.RenderBase, child)
}

func (r *RenderTreeRoot) VisitChildren(visitor func(child RenderObject) bool) {
	r.SingleChildBase.VisitChildren(visitor)
}

// PrepareFrame re-seeds the root's constraints before a flush so the
// pipeline lays it out against the embedder-provided configuration.
func (r *RenderTreeRoot) PrepareFrame() {
	r.Layout(r.configuration, false)
}

func (r *RenderTreeRoot) PerformLayout() {
	r.SetSize(r.Constraints().Biggest())
	if child := r.Child(); child != nil {
		child.Layout(r.Constraints(), true)
	}
}

func (r *RenderTreeRoot) Paint(ctx *PaintContext) {
	if child := r.Child(); child != nil {
		ctx.PaintChild(child, parentDataOffset(child))
	}
}
