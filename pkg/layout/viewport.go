package layout

import (
	"github.com/chewxy/math32"

	"github.com/loomui/loom/pkg/graphics"
)

// defaultCacheExtent is how far beyond the visible region slivers keep
// layout warm, in pixels.
const defaultCacheExtent float32 = 250

// RenderViewport is the box-protocol host of a sliver column: it owns the
// scroll offset, derives per-sliver constraints, stacks the slivers'
// layout extents, and clips overflow when painting. Every child receives
// a layout call on every pass, including children scrolled fully out of
// the visible region.
type RenderViewport struct {
	RenderBase
	MultiChildBase

	axisDirection graphics.AxisDirection
	scrollOffset  float32
	cacheExtent   float32

	scrollExtent float32
	hasOverflow  bool
}

// NewRenderViewport creates a viewport scrolling along direction.
func NewRenderViewport(direction graphics.AxisDirection) *RenderViewport {
	r := &RenderViewport{axisDirection: direction, cacheExtent: defaultCacheExtent}
	r.Init(r)
	r.SetRepaintBoundary(true)
	return r
}

// SetChildren replaces the sliver list. Children must implement
// RenderSliver; the element tree enforces this at mount.
func (r *RenderViewport) SetChildren(children []RenderObject) {
	r.MultiChildBase.SetChildren(&r.RenderBase, children)
}

// SetScrollOffset moves the viewport; layout re-runs on change.
func (r *RenderViewport) SetScrollOffset(offset float32) {
	offset = math32.Max(0, offset)
	if r.scrollOffset == offset {
		return
	}
	r.scrollOffset = offset
	r.MarkNeedsLayout()
}

// ScrollOffset returns the current scroll position.
func (r *RenderViewport) ScrollOffset() float32 { return r.scrollOffset }

// ScrollBy moves the viewport by delta, clamped to the scrollable range.
func (r *RenderViewport) ScrollBy(delta float32) {
	r.SetScrollOffset(math32.Min(r.scrollOffset+delta, r.MaxScrollOffset()))
}

// ScrollExtent returns the total scrollable extent measured by the last
// layout pass.
func (r *RenderViewport) ScrollExtent() float32 { return r.scrollExtent }

// MaxScrollOffset returns the furthest the viewport can scroll.
func (r *RenderViewport) MaxScrollOffset() float32 {
	main := r.mainExtent()
	return math32.Max(0, r.scrollExtent-main)
}

// SetupParentData installs SliverLogicalParentData.
func (r *RenderViewport) SetupParentData(child RenderObject) {
	if _, ok := child.ParentData().(*SliverLogicalParentData); !ok {
		child.SetParentData(&SliverLogicalParentData{})
	}
}

func (r *RenderViewport) VisitChildren(visitor func(child RenderObject) bool) {
	r.MultiChildBase.VisitChildren(visitor)
}

func (r *RenderViewport) mainExtent() float32 {
	return r.axisDirection.Axis().MainComponent(r.Size())
}

func (r *RenderViewport) crossExtent() float32 {
	return r.axisDirection.Axis().CrossComponent(r.Size())
}

func (r *RenderViewport) PerformLayout() {
	r.SetSize(r.Constraints().Biggest())
	mainExtent := r.mainExtent()
	crossExtent := r.crossExtent()
	crossDirection := graphics.AxisDirectionFrom(r.axisDirection.Axis().Opposite(), false)

	// A sliver may request a scroll-offset correction; re-run the pass
	// with the adjusted offset. Bounded to keep a misbehaving sliver
	// from spinning the layout phase.
	for attempt := 0; attempt < 8; attempt++ {
		correction := r.layoutSlivers(mainExtent, crossExtent, crossDirection)
		if correction == 0 {
			return
		}
		r.scrollOffset = math32.Max(0, r.scrollOffset+correction)
	}
}

// layoutSlivers runs one full pass over the children, returning a
// non-zero scroll-offset correction if any sliver demanded one.
func (r *RenderViewport) layoutSlivers(mainExtent, crossExtent float32, crossDirection graphics.AxisDirection) float32 {
	r.scrollExtent = 0
	r.hasOverflow = false

	// Offset of the next sliver's leading edge in scroll space.
	leadingEdge := float32(0)
	// Viewport space consumed by already-visible slivers.
	paintedExtent := float32(0)

	for _, child := range r.Children() {
		sliver, ok := child.(RenderSliver)
		if !ok {
			continue
		}
		scrollOffset := math32.Max(0, r.scrollOffset-leadingEdge)
		remainingPaint := math32.Max(0, mainExtent-paintedExtent)
		cacheOrigin := math32.Max(-scrollOffset, -r.cacheExtent)
		remainingCache := math32.Max(0, mainExtent+r.cacheExtent-paintedExtent)

		sliver.LayoutSliver(SliverConstraints{
			AxisDirection:          r.axisDirection,
			ScrollOffset:           scrollOffset,
			RemainingPaintExtent:   remainingPaint,
			CrossAxisExtent:        crossExtent,
			CrossAxisDirection:     crossDirection,
			ViewportMainAxisExtent: mainExtent,
			RemainingCacheExtent:   remainingCache,
			CacheOrigin:            cacheOrigin,
		})

		geometry := sliver.Geometry()
		if geometry.ScrollOffsetCorrection != 0 {
			return geometry.ScrollOffsetCorrection
		}

		if data, ok := child.ParentData().(*SliverLogicalParentData); ok {
			// Paint position in viewport space: scroll-space offset of the
			// sliver's leading edge minus what has scrolled past.
			data.LayoutOffset = leadingEdge - r.scrollOffset + scrollOffset + geometry.PaintOrigin
		}

		leadingEdge += geometry.ScrollExtent
		paintedExtent += geometry.LayoutExtent
		r.scrollExtent += geometry.ScrollExtent
		if geometry.HasVisualOverflow {
			r.hasOverflow = true
		}
	}
	if r.scrollExtent > mainExtent {
		r.hasOverflow = true
	}
	return 0
}

// mainAxisOffset converts a main-axis distance into a 2D offset in the
// viewport's coordinate space, honoring reversed directions.
func (r *RenderViewport) mainAxisOffset(distance float32) graphics.Offset {
	switch r.axisDirection {
	case graphics.TopToBottom:
		return graphics.Offset{Y: distance}
	case graphics.BottomToTop:
		return graphics.Offset{Y: r.Size().Height - distance}
	case graphics.LeftToRight:
		return graphics.Offset{X: distance}
	default:
		return graphics.Offset{X: r.Size().Width - distance}
	}
}

func (r *RenderViewport) Paint(ctx *PaintContext) {
	clipped := r.hasOverflow
	if clipped {
		ctx.PushClipRect(graphics.RectFromOffsetSize(graphics.ZeroOffset, r.Size()))
	}
	for _, child := range r.Children() {
		sliver, ok := child.(RenderSliver)
		if !ok || !sliver.Geometry().Visible {
			continue
		}
		data := child.ParentData().(*SliverLogicalParentData)
		ctx.PaintChild(child, r.mainAxisOffset(data.LayoutOffset))
	}
	if clipped {
		ctx.Pop()
	}
}

// HitTestChildren offers the position to visible slivers in reverse paint
// order, translated into each sliver's local space.
func (r *RenderViewport) HitTestChildren(result *HitTestResult, position graphics.Offset) bool {
	children := r.Children()
	for i := len(children) - 1; i >= 0; i-- {
		child := children[i]
		sliver, ok := child.(RenderSliver)
		if !ok || !sliver.Geometry().Visible {
			continue
		}
		data := child.ParentData().(*SliverLogicalParentData)
		local := position.Sub(r.mainAxisOffset(data.LayoutOffset))
		if child.HitTest(result, local) {
			return true
		}
	}
	return false
}

// HitTest keeps the default self test but routes children through the
// sliver-aware walk.
func (r *RenderViewport) HitTest(result *HitTestResult, position graphics.Offset) bool {
	if !r.HitTestSelf(position) {
		return false
	}
	r.HitTestChildren(result, position)
	result.Add(HitTestEntry{
		Target:   r,
		Position: position,
		Bounds:   graphics.RectFromOffsetSize(graphics.ZeroOffset, r.Size()),
	})
	return true
}
