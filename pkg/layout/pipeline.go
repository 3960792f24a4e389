package layout

import (
	"sort"

	"github.com/loomui/loom/pkg/errors"
	"github.com/loomui/loom/pkg/graphics"
	"github.com/loomui/loom/pkg/semantics"
)

// PipelineOwner holds the render tree's dirty sets and drives the phased
// flushes of a frame: layout, compositing bits, paint, semantics. All
// methods must be called from the UI thread; a flush observing reentrancy
// reports a protocol error and bails.
type PipelineOwner struct {
	root RenderObject

	dirtyLayout      []RenderObject
	dirtyCompositing []RenderObject
	dirtyPaint       []RenderObject

	semanticsEnabled bool
	semanticsTree    *semantics.Tree

	flushing bool

	// OnNeedsVisualUpdate fires the first time a clean pipeline becomes
	// dirty, so the scheduler can request a frame.
	OnNeedsVisualUpdate func()

	// OnLayerCacheEvent observes repaint-boundary compositing: true for
	// a reused cached layer, false for a re-recorded one.
	OnLayerCacheEvent func(reused bool)
}

// NewPipelineOwner creates an empty pipeline.
func NewPipelineOwner() *PipelineOwner {
	return &PipelineOwner{}
}

// SetRoot installs the render tree root, attaching it to this pipeline.
func (p *PipelineOwner) SetRoot(root RenderObject) {
	if p.root == root {
		return
	}
	if p.root != nil && p.root.Attached() {
		p.root.Detach()
	}
	p.root = root
	p.dirtyLayout = nil
	p.dirtyCompositing = nil
	p.dirtyPaint = nil
	if root != nil {
		root.Attach(p)
	}
}

// Root returns the render tree root, if any.
func (p *PipelineOwner) Root() RenderObject { return p.root }

// EnableSemantics turns the semantics phase from a no-op into a tree walk.
func (p *PipelineOwner) EnableSemantics(enabled bool) {
	p.semanticsEnabled = enabled
	if !enabled {
		p.semanticsTree = nil
	}
}

// SemanticsTree returns the tree built by the last FlushSemantics, or nil.
func (p *PipelineOwner) SemanticsTree() *semantics.Tree { return p.semanticsTree }

// NeedsFrame reports whether any phase has pending work.
func (p *PipelineOwner) NeedsFrame() bool {
	return len(p.dirtyLayout) > 0 || len(p.dirtyCompositing) > 0 || len(p.dirtyPaint) > 0
}

func (p *PipelineOwner) requestLayout(node RenderObject) {
	wasClean := !p.NeedsFrame()
	p.dirtyLayout = append(p.dirtyLayout, node)
	if wasClean && p.OnNeedsVisualUpdate != nil {
		p.OnNeedsVisualUpdate()
	}
}

func (p *PipelineOwner) requestCompositingBitsUpdate(node RenderObject) {
	p.dirtyCompositing = append(p.dirtyCompositing, node)
}

func (p *PipelineOwner) requestPaint(node RenderObject) {
	wasClean := !p.NeedsFrame()
	p.dirtyPaint = append(p.dirtyPaint, node)
	if wasClean && p.OnNeedsVisualUpdate != nil {
		p.OnNeedsVisualUpdate()
	}
}

func (p *PipelineOwner) enterFlush(phase string) bool {
	if p.flushing {
		errors.ReportProtocol(phase, "pipeline flush re-entered")
		return false
	}
	p.flushing = true
	return true
}

// FlushLayout lays out every dirty relayout boundary, shallowest first,
// against its last-known constraints. Idempotent when nothing is dirty.
func (p *PipelineOwner) FlushLayout() {
	if !p.enterFlush("layout") {
		return
	}
	defer func() { p.flushing = false }()
	for len(p.dirtyLayout) > 0 {
		dirty := p.dirtyLayout
		p.dirtyLayout = nil
		sort.SliceStable(dirty, func(i, j int) bool {
			return dirty[i].Depth() < dirty[j].Depth()
		})
		for _, node := range dirty {
			if !node.NeedsLayout() || !node.Attached() {
				continue
			}
			node.Layout(node.Constraints(), false)
		}
	}
}

// FlushCompositingBits recomputes the needs-compositing bit for every
// subtree whose bit went stale, shallowest first.
func (p *PipelineOwner) FlushCompositingBits() {
	if !p.enterFlush("compositing") {
		return
	}
	defer func() { p.flushing = false }()
	dirty := p.dirtyCompositing
	p.dirtyCompositing = nil
	sort.SliceStable(dirty, func(i, j int) bool {
		return dirty[i].Depth() < dirty[j].Depth()
	})
	for _, node := range dirty {
		if node.Attached() {
			node.updateCompositing()
		}
	}
}

// FlushPaint repaints every dirty repaint boundary, deepest first so
// ancestors composite already-refreshed child layers.
func (p *PipelineOwner) FlushPaint() {
	if !p.enterFlush("paint") {
		return
	}
	defer func() { p.flushing = false }()
	dirty := p.dirtyPaint
	p.dirtyPaint = nil
	sort.SliceStable(dirty, func(i, j int) bool {
		return dirty[i].Depth() > dirty[j].Depth()
	})
	for _, node := range dirty {
		if !node.NeedsPaint() || !node.Attached() {
			continue
		}
		RepaintBoundary(node)
	}
}

// TakeLayerTree returns the layer tree rooted at the render root's cached
// boundary layer. Valid after FlushPaint; nil when there is no root or it
// has never painted.
func (p *PipelineOwner) TakeLayerTree() *graphics.ContainerLayer {
	if p.root == nil {
		return nil
	}
	layer := p.root.boundaryLayer()
	if layer == nil {
		return nil
	}
	tree := &graphics.ContainerLayer{}
	tree.Append(layer)
	return tree
}

// FlushSemantics rebuilds the semantics tree from render objects that
// describe a configuration. A no-op unless semantics are enabled.
func (p *PipelineOwner) FlushSemantics() {
	if !p.semanticsEnabled || p.root == nil {
		return
	}
	if !p.enterFlush("semantics") {
		return
	}
	defer func() { p.flushing = false }()
	tree := semantics.NewTree()
	buildSemanticsNode(p.root, graphics.ZeroOffset, tree, tree.Root())
	p.semanticsTree = tree
}

// SemanticsDescriber is implemented by render objects contributing
// accessibility information.
type SemanticsDescriber interface {
	DescribeSemantics(config *semantics.Configuration) bool
}

func buildSemanticsNode(node RenderObject, origin graphics.Offset, tree *semantics.Tree, parent *semantics.Node) {
	attach := parent
	if describer, ok := node.(SemanticsDescriber); ok {
		config := &semantics.Configuration{}
		if describer.DescribeSemantics(config) {
			child := tree.NewNode(config, graphics.RectFromOffsetSize(origin, node.Size()))
			parent.Append(child)
			attach = child
		}
	}
	node.VisitChildren(func(child RenderObject) bool {
		buildSemanticsNode(child, origin.Add(parentDataOffset(child)), tree, attach)
		return true
	})
}
