package layout

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/loomui/loom/pkg/errors"
	"github.com/loomui/loom/pkg/graphics"
)

// RenderObject is a node of the render tree. It performs layout under the
// box protocol (constraints in, size out), paints into the current layer,
// and answers hit tests. Sliver nodes additionally implement RenderSliver.
//
// Concrete render objects embed RenderBase (plus one of LeafBase,
// SingleChildBase, MultiChildBase for their arity) and override
// PerformLayout, Paint and, where the defaults don't fit, HitTestSelf or
// SetupParentData.
type RenderObject interface {
	// Layout computes the node's size under constraints. parentUsesSize
	// tells the protocol whether the parent reads the result, which
	// determines whether this node can act as a relayout boundary.
	Layout(constraints Constraints, parentUsesSize bool)
	// PerformLayout is the node's own layout algorithm; called by Layout.
	PerformLayout()
	Size() graphics.Size
	Constraints() Constraints

	Paint(ctx *PaintContext)
	HitTest(result *HitTestResult, position graphics.Offset) bool

	Arity() Arity
	VisitChildren(visitor func(child RenderObject) bool)
	// SetupParentData installs this parent's ParentData variant on child,
	// replacing whatever a previous parent left behind.
	SetupParentData(child RenderObject)

	ParentData() ParentData
	SetParentData(data ParentData)
	Parent() RenderObject
	Depth() int

	Attach(owner *PipelineOwner)
	Detach()
	Attached() bool
	Owner() *PipelineOwner

	MarkNeedsLayout()
	MarkNeedsPaint()
	MarkNeedsCompositingBitsUpdate()
	NeedsLayout() bool
	NeedsPaint() bool
	NeedsCompositingBitsUpdate() bool
	NeedsCompositing() bool

	// IsRepaintBoundary reports whether this node roots an isolated
	// repaint subtree with its own cached layer.
	IsRepaintBoundary() bool
	// AlwaysNeedsCompositing reports whether this node emits a compositing
	// layer regardless of its children (e.g. opacity).
	AlwaysNeedsCompositing() bool

	relayoutBoundaryNode() RenderObject
	setParent(parent RenderObject)
	redepth(parentDepth int)
	updateCompositing()
	boundaryLayer() *graphics.OffsetLayer
	setBoundaryLayer(layer *graphics.OffsetLayer)
	clearNeedsPaint()
}

// RenderBase carries the bookkeeping every render object shares: tree
// links, cached layout inputs/outputs, dirty flags, and the parent-data
// slot. Concrete types must call Init with themselves before use so the
// base can dispatch overridden methods.
type RenderBase struct {
	self             RenderObject
	parent           RenderObject
	depth            int
	owner            *PipelineOwner
	parentData       ParentData
	constraints      Constraints
	size             graphics.Size
	relayoutBoundary RenderObject
	layer            *graphics.OffsetLayer

	needsLayout          bool
	needsPaint           bool
	needsCompositingBits bool
	needsCompositing     bool
	repaintBoundary      bool
}

// Init wires the concrete node into its embedded base. Every constructor
// must call it exactly once.
func (r *RenderBase) Init(self RenderObject) {
	r.self = self
	r.needsLayout = true
	r.needsPaint = true
	r.needsCompositingBits = true
}

// SetRepaintBoundary flags this node as the root of an isolated repaint
// subtree. Must be set before the node is attached.
func (r *RenderBase) SetRepaintBoundary(boundary bool) { r.repaintBoundary = boundary }

func (r *RenderBase) IsRepaintBoundary() bool      { return r.repaintBoundary }
func (r *RenderBase) AlwaysNeedsCompositing() bool { return false }

func (r *RenderBase) Size() graphics.Size        { return r.size }
func (r *RenderBase) SetSize(size graphics.Size) { r.size = size }
func (r *RenderBase) Constraints() Constraints   { return r.constraints }

func (r *RenderBase) ParentData() ParentData        { return r.parentData }
func (r *RenderBase) SetParentData(data ParentData) { r.parentData = data }
func (r *RenderBase) Parent() RenderObject          { return r.parent }
func (r *RenderBase) Depth() int                    { return r.depth }
func (r *RenderBase) Owner() *PipelineOwner         { return r.owner }
func (r *RenderBase) Attached() bool                { return r.owner != nil }

func (r *RenderBase) NeedsLayout() bool                { return r.needsLayout }
func (r *RenderBase) NeedsPaint() bool                 { return r.needsPaint }
func (r *RenderBase) NeedsCompositingBitsUpdate() bool { return r.needsCompositingBits }
func (r *RenderBase) NeedsCompositing() bool           { return r.needsCompositing }

func (r *RenderBase) relayoutBoundaryNode() RenderObject { return r.relayoutBoundary }
func (r *RenderBase) setParent(parent RenderObject)      { r.parent = parent }

func (r *RenderBase) boundaryLayer() *graphics.OffsetLayer         { return r.layer }
func (r *RenderBase) setBoundaryLayer(layer *graphics.OffsetLayer) { r.layer = layer }
func (r *RenderBase) clearNeedsPaint()                             { r.needsPaint = false }

// SetupParentData installs a plain BoxParentData slot unless the child
// already carries one. Parents with richer metadata override this.
func (r *RenderBase) SetupParentData(child RenderObject) {
	if _, ok := child.ParentData().(*BoxParentData); !ok {
		child.SetParentData(&BoxParentData{})
	}
}

// VisitChildren is the leaf default; child-bearing bases override it.
func (r *RenderBase) VisitChildren(visitor func(child RenderObject) bool) {}

// Attach joins this node (and, recursively, its children) to owner's
// pipeline. Dirty flags survive attachment so pending work is re-scheduled.
func (r *RenderBase) Attach(owner *PipelineOwner) {
	r.owner = owner
	if r.needsLayout {
		// Re-enter the dirty list through the usual path.
		r.needsLayout = false
		r.self.MarkNeedsLayout()
	}
	if r.needsCompositingBits {
		r.needsCompositingBits = false
		r.self.MarkNeedsCompositingBitsUpdate()
	}
	if r.needsPaint {
		r.needsPaint = false
		r.self.MarkNeedsPaint()
	}
	r.self.VisitChildren(func(child RenderObject) bool {
		child.Attach(owner)
		return true
	})
}

// Detach removes this node and its subtree from the pipeline.
func (r *RenderBase) Detach() {
	r.owner = nil
	r.self.VisitChildren(func(child RenderObject) bool {
		child.Detach()
		return true
	})
}

// AdoptChild links child under this node: parent pointer, depth, parent
// data, and pipeline attachment all follow the new edge.
func (r *RenderBase) AdoptChild(child RenderObject) {
	if child == nil {
		return
	}
	r.self.SetupParentData(child)
	child.setParent(r.self)
	child.redepth(r.depth)
	if r.owner != nil {
		child.Attach(r.owner)
	}
	r.self.MarkNeedsLayout()
	r.self.MarkNeedsCompositingBitsUpdate()
}

// DropChild severs the edge to child, clearing its parent data so a future
// parent starts from a clean slot.
func (r *RenderBase) DropChild(child RenderObject) {
	if child == nil {
		return
	}
	child.setParent(nil)
	child.SetParentData(nil)
	if child.Attached() {
		child.Detach()
	}
	r.self.MarkNeedsLayout()
	r.self.MarkNeedsCompositingBitsUpdate()
}

func (r *RenderBase) redepth(parentDepth int) {
	r.depth = parentDepth + 1
	r.self.VisitChildren(func(child RenderObject) bool {
		child.redepth(r.depth)
		return true
	})
}

// Layout implements the box protocol driver: it decides the relayout
// boundary, skips clean nodes whose constraints are unchanged, runs
// PerformLayout, and validates the result against the constraints.
func (r *RenderBase) Layout(constraints Constraints, parentUsesSize bool) {
	if !constraints.IsNormalized() {
		errors.ReportProtocol("layout", fmt.Sprintf("malformed constraints %v", constraints))
		return
	}
	var boundary RenderObject
	if !parentUsesSize || constraints.IsTight() || r.parent == nil {
		boundary = r.self
	} else {
		boundary = r.parent.relayoutBoundaryNode()
	}
	if !r.needsLayout && constraints == r.constraints && boundary == r.relayoutBoundary {
		return
	}
	r.constraints = constraints
	if r.relayoutBoundary != boundary {
		r.relayoutBoundary = boundary
		r.self.VisitChildren(func(child RenderObject) bool {
			propagateRelayoutBoundary(child)
			return true
		})
	}
	r.self.PerformLayout()
	r.validateSize()
	r.needsLayout = false
	r.needsPaint = false
	r.self.MarkNeedsPaint()
}

// propagateRelayoutBoundary resets stale cached boundaries below a node
// whose own boundary changed, so the next MarkNeedsLayout walks far enough.
func propagateRelayoutBoundary(node RenderObject) {
	if node.relayoutBoundaryNode() == node {
		return
	}
	if base, ok := node.(interface{ clearRelayoutBoundary() }); ok {
		base.clearRelayoutBoundary()
	}
	node.VisitChildren(func(child RenderObject) bool {
		propagateRelayoutBoundary(child)
		return true
	})
}

func (r *RenderBase) clearRelayoutBoundary() { r.relayoutBoundary = nil }

// validateSize enforces the layout contract: the computed size must be
// finite (under finite constraints) and satisfy the constraints. A
// violation is a protocol error; the size is clamped so painting can
// proceed.
func (r *RenderBase) validateSize() {
	w, h := r.size.Width, r.size.Height
	if math32.IsNaN(w) || math32.IsNaN(h) ||
		(math32.IsInf(w, 0) && r.constraints.HasBoundedWidth()) ||
		(math32.IsInf(h, 0) && r.constraints.HasBoundedHeight()) {
		errors.ReportProtocol("layout", fmt.Sprintf("non-finite size %v under %v", r.size, r.constraints))
		r.size = r.constraints.Biggest()
		return
	}
	if !r.constraints.IsSatisfiedBy(r.size) {
		errors.ReportProtocol("layout", fmt.Sprintf("size %v violates %v", r.size, r.constraints))
		r.size = r.constraints.Constrain(r.size)
	}
}

// MarkNeedsLayout flags this node dirty and walks up to the nearest
// relayout boundary, which registers itself with the pipeline owner.
func (r *RenderBase) MarkNeedsLayout() {
	if r.needsLayout {
		return
	}
	r.needsLayout = true
	if r.relayoutBoundary != r.self && r.parent != nil {
		r.parent.MarkNeedsLayout()
		return
	}
	if r.owner != nil {
		r.owner.requestLayout(r.self)
	}
}

// MarkNeedsPaint flags this node dirty and registers the nearest repaint
// boundary with the pipeline owner.
func (r *RenderBase) MarkNeedsPaint() {
	if r.needsPaint {
		return
	}
	r.needsPaint = true
	if r.repaintBoundary || r.parent == nil {
		if r.owner != nil {
			r.owner.requestPaint(r.self)
		}
		return
	}
	r.parent.MarkNeedsPaint()
}

// MarkNeedsCompositingBitsUpdate flags the compositing bit as stale here
// and on every ancestor up to the nearest repaint boundary.
func (r *RenderBase) MarkNeedsCompositingBitsUpdate() {
	if r.needsCompositingBits {
		return
	}
	r.needsCompositingBits = true
	if r.parent != nil && !r.repaintBoundary {
		r.parent.MarkNeedsCompositingBitsUpdate()
		return
	}
	if r.owner != nil {
		r.owner.requestCompositingBitsUpdate(r.self)
	}
}

// updateCompositing recomputes needsCompositing bottom-up: a node
// composites when any child does, or when it is itself a boundary layer.
func (r *RenderBase) updateCompositing() {
	if !r.needsCompositingBits {
		return
	}
	old := r.needsCompositing
	r.needsCompositing = false
	r.self.VisitChildren(func(child RenderObject) bool {
		child.updateCompositing()
		if child.NeedsCompositing() {
			r.needsCompositing = true
		}
		return true
	})
	if r.repaintBoundary || r.self.AlwaysNeedsCompositing() {
		r.needsCompositing = true
	}
	if old != r.needsCompositing && r.owner != nil {
		r.needsPaint = false
		r.self.MarkNeedsPaint()
	}
	r.needsCompositingBits = false
}

// HitTestSelf reports whether a point within the node's bounds counts as a
// hit on the node itself. The default accepts any point inside the size.
func (r *RenderBase) HitTestSelf(position graphics.Offset) bool {
	return position.X >= 0 && position.X < r.size.Width &&
		position.Y >= 0 && position.Y < r.size.Height
}

// HitTest walks children last-to-first (reverse paint order) and then the
// node itself, accumulating entries deepest-first.
func (r *RenderBase) HitTest(result *HitTestResult, position graphics.Offset) bool {
	if !r.HitTestSelf(position) {
		return false
	}
	r.HitTestChildren(result, position)
	result.Add(HitTestEntry{
		Target:   r.self,
		Position: position,
		Bounds:   graphics.RectFromOffsetSize(graphics.ZeroOffset, r.size),
	})
	return true
}

// HitTestChildren offers the hit to children in reverse paint order,
// transforming the position by each child's parent-data offset.
func (r *RenderBase) HitTestChildren(result *HitTestResult, position graphics.Offset) bool {
	var children []RenderObject
	r.self.VisitChildren(func(child RenderObject) bool {
		children = append(children, child)
		return true
	})
	for i := len(children) - 1; i >= 0; i-- {
		child := children[i]
		local := position.Sub(parentDataOffset(child))
		if child.HitTest(result, local) {
			return true
		}
	}
	return false
}

// LeafBase is the arity-0 mixin.
type LeafBase struct{}

func (LeafBase) Arity() Arity { return ExactArity(0) }

// SingleChildBase manages the one optional child of an arity-1 node.
type SingleChildBase struct {
	child RenderObject
}

func (s *SingleChildBase) Arity() Arity        { return ExactArity(1) }
func (s *SingleChildBase) Child() RenderObject { return s.child }

// SetChild swaps the node's child, adopting and dropping through base.
// The base parameter is the embedding node's RenderBase.
func (s *SingleChildBase) SetChild(base *RenderBase, child RenderObject) {
	if s.child == child {
		return
	}
	if s.child != nil {
		base.DropChild(s.child)
	}
	s.child = child
	if child != nil {
		base.AdoptChild(child)
	}
}

func (s *SingleChildBase) VisitChildren(visitor func(child RenderObject) bool) {
	if s.child != nil {
		visitor(s.child)
	}
}

// MultiChildBase manages the ordered child list of a variable-arity node.
type MultiChildBase struct {
	children []RenderObject
}

func (m *MultiChildBase) Arity() Arity             { return VariableArity() }
func (m *MultiChildBase) Children() []RenderObject { return m.children }
func (m *MultiChildBase) ChildCount() int          { return len(m.children) }

// SetChildren replaces the whole child list, diffing adoption by identity.
func (m *MultiChildBase) SetChildren(base *RenderBase, children []RenderObject) {
	kept := make(map[RenderObject]bool, len(children))
	for _, child := range children {
		kept[child] = true
	}
	previous := make(map[RenderObject]bool, len(m.children))
	for _, old := range m.children {
		previous[old] = true
		if !kept[old] {
			base.DropChild(old)
		}
	}
	m.children = append(m.children[:0:0], children...)
	for _, child := range m.children {
		if !previous[child] {
			base.AdoptChild(child)
		}
	}
	m.relinkSiblings()
	base.self.MarkNeedsLayout()
}

// relinkSiblings rewrites the sibling pointers in ContainerBoxParentData
// so walks in either direction stay consistent with the slice order.
func (m *MultiChildBase) relinkSiblings() {
	for i, child := range m.children {
		data, ok := child.ParentData().(interface {
			setSiblings(prev, next RenderObject)
		})
		if !ok {
			continue
		}
		var prev, next RenderObject
		if i > 0 {
			prev = m.children[i-1]
		}
		if i < len(m.children)-1 {
			next = m.children[i+1]
		}
		data.setSiblings(prev, next)
	}
}

func (d *ContainerBoxParentData) setSiblings(prev, next RenderObject) {
	d.PreviousSibling = prev
	d.NextSibling = next
}

func (m *MultiChildBase) VisitChildren(visitor func(child RenderObject) bool) {
	for _, child := range m.children {
		if !visitor(child) {
			return
		}
	}
}
