package layout

import (
	"github.com/chewxy/math32"

	"github.com/loomui/loom/pkg/graphics"
)

// RenderSliverToBoxAdapter hosts a single box child inside a viewport,
// giving it the sliver's cross-axis extent and an unbounded main axis.
type RenderSliverToBoxAdapter struct {
	RenderBase
	SingleChildBase
	SliverBase
}

// NewRenderSliverToBoxAdapter creates an empty adapter.
func NewRenderSliverToBoxAdapter() *RenderSliverToBoxAdapter {
	r := &RenderSliverToBoxAdapter{}
	r.Init(r)
	return r
}

// SetChild installs the box child.
func (r *RenderSliverToBoxAdapter) SetChild(child RenderObject) {
	r.SingleChildBase.SetChild(&r.RenderBase, child)
}

func (r *RenderSliverToBoxAdapter) VisitChildren(visitor func(child RenderObject) bool) {
	r.SingleChildBase.VisitChildren(visitor)
}

func (r *RenderSliverToBoxAdapter) LayoutSliver(constraints SliverConstraints) {
	r.LayoutSliverOn(r, &r.RenderBase, constraints)
}

func (r *RenderSliverToBoxAdapter) PerformLayout() { r.SliverBase.PerformLayout() }

func (r *RenderSliverToBoxAdapter) PerformSliverLayout() {
	c := r.SliverConstraints()
	child := r.Child()
	if child == nil {
		r.SetGeometry(SliverGeometry{})
		return
	}
	child.Layout(c.BoxConstraintsForChild(), true)
	extent := c.Axis().MainComponent(child.Size())

	paintExtent := c.calculatePaintExtent(0, extent)
	cacheExtent := c.calculateCacheExtent(0, extent)
	fraction := float32(0)
	if extent > 0 {
		fraction = paintExtent / extent
	}
	r.SetGeometry(SliverGeometry{
		ScrollExtent:      extent,
		PaintExtent:       paintExtent,
		LayoutExtent:      paintExtent,
		MaxPaintExtent:    extent,
		CacheExtent:       cacheExtent,
		Visible:           paintExtent > 0,
		HasVisualOverflow: extent > c.RemainingPaintExtent || c.ScrollOffset > 0,
		HitTestExtent:     paintExtent,
		VisibleFraction:   fraction,
	})

	// The child paints shifted back by the scrolled-past portion.
	if data, ok := child.ParentData().(*BoxParentData); ok {
		if c.Axis() == graphics.Vertical {
			data.PaintOffset = graphics.Offset{Y: -c.ScrollOffset}
		} else {
			data.PaintOffset = graphics.Offset{X: -c.ScrollOffset}
		}
	}
	r.SetSize(c.Axis().MakeSize(paintExtent, c.CrossAxisExtent))
}

func (r *RenderSliverToBoxAdapter) Paint(ctx *PaintContext) {
	if child := r.Child(); child != nil && r.Geometry().Visible {
		ctx.PaintChild(child, parentDataOffset(child))
	}
}

// RenderSliverFixedExtentList lays box children in a run of equal
// main-axis extents. Every child is laid out and given its offset on
// every pass; only children intersecting the visible region are painted.
type RenderSliverFixedExtentList struct {
	RenderBase
	MultiChildBase
	SliverBase

	itemExtent float32
}

// NewRenderSliverFixedExtentList creates a list whose children each span
// itemExtent along the main axis.
func NewRenderSliverFixedExtentList(itemExtent float32) *RenderSliverFixedExtentList {
	r := &RenderSliverFixedExtentList{itemExtent: itemExtent}
	r.Init(r)
	return r
}

// SetChildren replaces the item list.
func (r *RenderSliverFixedExtentList) SetChildren(children []RenderObject) {
	r.MultiChildBase.SetChildren(&r.RenderBase, children)
}

// SetItemExtent changes the per-item main-axis extent.
func (r *RenderSliverFixedExtentList) SetItemExtent(extent float32) {
	if r.itemExtent == extent {
		return
	}
	r.itemExtent = extent
	r.MarkNeedsLayout()
}

func (r *RenderSliverFixedExtentList) VisitChildren(visitor func(child RenderObject) bool) {
	r.MultiChildBase.VisitChildren(visitor)
}

func (r *RenderSliverFixedExtentList) LayoutSliver(constraints SliverConstraints) {
	r.LayoutSliverOn(r, &r.RenderBase, constraints)
}

func (r *RenderSliverFixedExtentList) PerformLayout() { r.SliverBase.PerformLayout() }

func (r *RenderSliverFixedExtentList) PerformSliverLayout() {
	c := r.SliverConstraints()
	count := r.ChildCount()
	total := r.itemExtent * float32(count)

	var itemConstraints Constraints
	if c.Axis() == graphics.Vertical {
		itemConstraints = Constraints{
			MinWidth: c.CrossAxisExtent, MaxWidth: c.CrossAxisExtent,
			MinHeight: r.itemExtent, MaxHeight: r.itemExtent,
		}
	} else {
		itemConstraints = Constraints{
			MinWidth: r.itemExtent, MaxWidth: r.itemExtent,
			MinHeight: c.CrossAxisExtent, MaxHeight: c.CrossAxisExtent,
		}
	}

	for i, child := range r.Children() {
		leading := r.itemExtent * float32(i)
		child.Layout(itemConstraints, false)
		if data, ok := child.ParentData().(*BoxParentData); ok {
			position := leading - c.ScrollOffset
			if c.Axis() == graphics.Vertical {
				data.PaintOffset = graphics.Offset{Y: position}
			} else {
				data.PaintOffset = graphics.Offset{X: position}
			}
		}
	}

	paintExtent := c.calculatePaintExtent(0, total)
	cacheExtent := c.calculateCacheExtent(0, total)
	fraction := float32(0)
	if total > 0 {
		fraction = paintExtent / total
	}
	r.SetGeometry(SliverGeometry{
		ScrollExtent:      total,
		PaintExtent:       paintExtent,
		LayoutExtent:      paintExtent,
		MaxPaintExtent:    total,
		CacheExtent:       cacheExtent,
		Visible:           paintExtent > 0,
		HasVisualOverflow: total > c.RemainingPaintExtent || c.ScrollOffset > 0,
		HitTestExtent:     paintExtent,
		VisibleFraction:   fraction,
	})
	r.SetSize(c.Axis().MakeSize(paintExtent, c.CrossAxisExtent))
}

// visibleRange returns the index range of children intersecting the
// visible region under the current constraints.
func (r *RenderSliverFixedExtentList) visibleRange() (first, last int) {
	if r.itemExtent <= 0 || r.ChildCount() == 0 {
		return 0, -1
	}
	c := r.SliverConstraints()
	first = int(math32.Floor(c.ScrollOffset / r.itemExtent))
	last = int(math32.Ceil((c.ScrollOffset+c.RemainingPaintExtent)/r.itemExtent)) - 1
	if first < 0 {
		first = 0
	}
	if last >= r.ChildCount() {
		last = r.ChildCount() - 1
	}
	return first, last
}

func (r *RenderSliverFixedExtentList) Paint(ctx *PaintContext) {
	if !r.Geometry().Visible {
		return
	}
	first, last := r.visibleRange()
	children := r.Children()
	for i := first; i <= last; i++ {
		child := children[i]
		ctx.PaintChild(child, parentDataOffset(child))
	}
}
