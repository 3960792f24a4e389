package layout

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/loomui/loom/pkg/errors"
	"github.com/loomui/loom/pkg/graphics"
)

// SliverConstraints is the sliver layout protocol's input, constructed
// fresh by the viewport for every child on every layout pass.
type SliverConstraints struct {
	// AxisDirection is the direction scroll offsets grow in.
	AxisDirection graphics.AxisDirection
	// ScrollOffset is how far past this sliver's leading edge the
	// viewport has scrolled; zero when the leading edge is visible.
	ScrollOffset float32
	// RemainingPaintExtent is the visible space left for this sliver.
	RemainingPaintExtent float32
	// CrossAxisExtent is the viewport's extent perpendicular to the axis.
	CrossAxisExtent float32
	// CrossAxisDirection orients the cross axis.
	CrossAxisDirection graphics.AxisDirection
	// ViewportMainAxisExtent is the viewport's full main-axis extent.
	ViewportMainAxisExtent float32
	// RemainingCacheExtent is the space left in the cache region, which
	// extends beyond the visible extent by the cache origin's magnitude.
	RemainingCacheExtent float32
	// CacheOrigin is where the cache region starts relative to the
	// sliver's visible leading edge (zero or negative).
	CacheOrigin float32
	// GrowDirectionReversed is set when the sliver grows against the
	// axis direction (e.g. slivers before the center of a viewport).
	GrowDirectionReversed bool
}

// Axis returns the main axis.
func (c SliverConstraints) Axis() graphics.Axis { return c.AxisDirection.Axis() }

// IsNormalized reports whether the scalar fields are sane.
func (c SliverConstraints) IsNormalized() bool {
	for _, v := range [...]float32{c.ScrollOffset, c.RemainingPaintExtent, c.CrossAxisExtent, c.ViewportMainAxisExtent, c.RemainingCacheExtent} {
		if math32.IsNaN(v) || v < 0 {
			return false
		}
	}
	return c.CacheOrigin <= 0 && !math32.IsNaN(c.CacheOrigin)
}

// BoxConstraintsForChild derives box constraints for a box child hosted
// inside this sliver: cross axis bounded by the sliver, main axis free.
func (c SliverConstraints) BoxConstraintsForChild() Constraints {
	if c.Axis() == graphics.Vertical {
		return Constraints{
			MinWidth: c.CrossAxisExtent, MaxWidth: c.CrossAxisExtent,
			MaxHeight: Infinity,
		}
	}
	return Constraints{
		MinHeight: c.CrossAxisExtent, MaxHeight: c.CrossAxisExtent,
		MaxWidth: Infinity,
	}
}

// SliverGeometry is the sliver layout protocol's output.
type SliverGeometry struct {
	// ScrollExtent is the sliver's total extent in scroll space.
	ScrollExtent float32
	// PaintExtent is how much of the viewport this sliver paints into.
	PaintExtent float32
	// PaintOrigin shifts where painting starts relative to the layout
	// position (normally zero; negative for overdraw effects).
	PaintOrigin float32
	// LayoutExtent is how much viewport space the next sliver is pushed
	// by; defaults to PaintExtent.
	LayoutExtent float32
	// MaxPaintExtent is the most this sliver could paint given
	// unlimited room.
	MaxPaintExtent float32
	// CrossAxisExtent is the sliver's cross-axis size, when it differs
	// from the constraint's.
	CrossAxisExtent float32
	// CacheExtent is how much of the cache region this sliver consumed.
	CacheExtent float32
	// Visible reports whether the sliver paints anything.
	Visible bool
	// HasVisualOverflow reports painting outside the layout extent,
	// requiring the viewport to clip.
	HasVisualOverflow bool
	// HitTestExtent is the main-axis range that responds to hits;
	// defaults to PaintExtent.
	HitTestExtent float32
	// VisibleFraction is the painted share of the scroll extent, 0..1.
	VisibleFraction float32
	// ScrollOffsetCorrection, when non-zero, aborts the layout pass and
	// asks the viewport to re-run with a corrected scroll offset.
	ScrollOffsetCorrection float32
	// MaxScrollObsolescence is the scroll distance beyond which cached
	// layout information for this sliver must be discarded.
	MaxScrollObsolescence float32
}

// IsNormalized reports whether the extents are internally consistent.
func (g SliverGeometry) IsNormalized() bool {
	return g.ScrollExtent >= 0 &&
		g.PaintExtent >= 0 &&
		g.LayoutExtent <= g.PaintExtent+paintSlack &&
		!math32.IsNaN(g.ScrollExtent) && !math32.IsNaN(g.PaintExtent)
}

const paintSlack float32 = 0.001

// RenderSliver is a render object following the sliver protocol: scrolled
// constraints in, geometry out. Sliver nodes still share the render
// tree's attachment, dirty tracking, and paint machinery.
type RenderSliver interface {
	RenderObject
	LayoutSliver(constraints SliverConstraints)
	PerformSliverLayout()
	SliverConstraints() SliverConstraints
	Geometry() SliverGeometry
}

// SliverBase is the sliver counterpart of RenderBase's layout driver.
// Concrete slivers embed RenderBase plus SliverBase and implement
// PerformSliverLayout.
type SliverBase struct {
	sliverConstraints SliverConstraints
	geometry          SliverGeometry
}

func (s *SliverBase) SliverConstraints() SliverConstraints { return s.sliverConstraints }
func (s *SliverBase) Geometry() SliverGeometry             { return s.geometry }

// SetGeometry records the layout result; called from PerformSliverLayout.
func (s *SliverBase) SetGeometry(geometry SliverGeometry) { s.geometry = geometry }

// LayoutSliverOn drives the sliver protocol for self, mirroring
// RenderBase.Layout: skip clean nodes, run the node's layout, validate.
func (s *SliverBase) LayoutSliverOn(self RenderSliver, base *RenderBase, constraints SliverConstraints) {
	if !constraints.IsNormalized() {
		errors.ReportProtocol("layout", fmt.Sprintf("malformed sliver constraints %+v", constraints))
		return
	}
	if !base.needsLayout && constraints == s.sliverConstraints {
		return
	}
	s.sliverConstraints = constraints
	self.PerformSliverLayout()
	if !s.geometry.IsNormalized() {
		errors.ReportProtocol("layout", fmt.Sprintf("malformed sliver geometry %+v", s.geometry))
		s.geometry = SliverGeometry{}
	}
	base.needsLayout = false
	base.needsPaint = false
	self.MarkNeedsPaint()
}

// PerformLayout traps box-protocol layout calls reaching a sliver.
func (s *SliverBase) PerformLayout() {
	errors.ReportProtocol("layout", "box layout invoked on a sliver render object")
}

// calculatePaintExtent clamps a scroll-space range to what is visible
// under the current constraints.
func (c SliverConstraints) calculatePaintExtent(from, to float32) float32 {
	visibleFrom := math32.Max(from, c.ScrollOffset)
	visibleTo := math32.Min(to, c.ScrollOffset+c.RemainingPaintExtent)
	return math32.Max(0, visibleTo-visibleFrom)
}

// calculateCacheExtent clamps a scroll-space range to the cache region.
func (c SliverConstraints) calculateCacheExtent(from, to float32) float32 {
	cacheFrom := math32.Max(from, c.ScrollOffset+c.CacheOrigin)
	cacheTo := math32.Min(to, c.ScrollOffset+c.RemainingCacheExtent)
	return math32.Max(0, cacheTo-cacheFrom)
}
