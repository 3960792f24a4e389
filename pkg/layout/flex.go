package layout

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/loomui/loom/pkg/errors"
	"github.com/loomui/loom/pkg/graphics"
)

// MainAxisAlignment distributes free main-axis space among children.
type MainAxisAlignment int

const (
	MainAxisStart MainAxisAlignment = iota
	MainAxisEnd
	MainAxisCenter
	MainAxisSpaceBetween
	MainAxisSpaceAround
	MainAxisSpaceEvenly
)

// CrossAxisAlignment positions children on the cross axis.
type CrossAxisAlignment int

const (
	CrossAxisStart CrossAxisAlignment = iota
	CrossAxisEnd
	CrossAxisCenter
	CrossAxisStretch
	CrossAxisBaseline
)

// MainAxisSize decides whether the flex container takes the minimum
// main-axis extent its children need or the maximum its constraints allow.
type MainAxisSize int

const (
	MainAxisSizeMax MainAxisSize = iota
	MainAxisSizeMin
)

// RenderFlex lays out children along one axis in two passes: inflexible
// children first at their intrinsic sizes, then flexible children dividing
// the remaining space by their flex factors.
type RenderFlex struct {
	RenderBase
	MultiChildBase

	axis           graphics.Axis
	mainAlignment  MainAxisAlignment
	crossAlignment CrossAxisAlignment
	mainSize       MainAxisSize
}

// NewRenderFlex creates a flex container along axis with start alignment.
func NewRenderFlex(axis graphics.Axis) *RenderFlex {
	r := &RenderFlex{axis: axis}
	r.Init(r)
	return r
}

// SetChildren replaces the child list.
func (r *RenderFlex) SetChildren(children []RenderObject) {
	r.MultiChildBase.SetChildren(&r.RenderBase, children)
}

// SetAxis changes the main axis.
func (r *RenderFlex) SetAxis(axis graphics.Axis) {
	if r.axis == axis {
		return
	}
	r.axis = axis
	r.MarkNeedsLayout()
}

// SetMainAxisAlignment changes how free main-axis space is distributed.
func (r *RenderFlex) SetMainAxisAlignment(alignment MainAxisAlignment) {
	if r.mainAlignment == alignment {
		return
	}
	r.mainAlignment = alignment
	r.MarkNeedsLayout()
}

// SetCrossAxisAlignment changes cross-axis positioning.
func (r *RenderFlex) SetCrossAxisAlignment(alignment CrossAxisAlignment) {
	if r.crossAlignment == alignment {
		return
	}
	r.crossAlignment = alignment
	r.MarkNeedsLayout()
}

// SetMainAxisSize switches between min and max main-axis sizing.
func (r *RenderFlex) SetMainAxisSize(size MainAxisSize) {
	if r.mainSize == size {
		return
	}
	r.mainSize = size
	r.MarkNeedsLayout()
}

// SetupParentData installs FlexParentData, preserving an existing slot's
// flex factor when the child is re-adopted by the same parent kind.
func (r *RenderFlex) SetupParentData(child RenderObject) {
	if _, ok := child.ParentData().(*FlexParentData); !ok {
		child.SetParentData(&FlexParentData{})
	}
}

func (r *RenderFlex) VisitChildren(visitor func(child RenderObject) bool) {
	r.MultiChildBase.VisitChildren(visitor)
}

func flexFactor(child RenderObject) int {
	if data, ok := child.ParentData().(*FlexParentData); ok {
		return data.Flex
	}
	return 0
}

func flexFit(child RenderObject) FlexFit {
	if data, ok := child.ParentData().(*FlexParentData); ok {
		return data.Fit
	}
	return FitTight
}

// PerformLayout runs the two-pass flex algorithm. Sibling ordering is
// observable: inflexible children are laid out before any flexible one.
func (r *RenderFlex) PerformLayout() {
	c := r.Constraints()
	maxMain := r.axis.MainComponent(graphics.Size{Width: c.MaxWidth, Height: c.MaxHeight})
	maxCross := r.axis.CrossComponent(graphics.Size{Width: c.MaxWidth, Height: c.MaxHeight})
	minCross := r.axis.CrossComponent(graphics.Size{Width: c.MinWidth, Height: c.MinHeight})
	canFlex := !math32.IsInf(maxMain, 1)

	totalFlex := 0
	allocated := float32(0)
	crossExtent := float32(0)

	// Pass one: inflexible children at their intrinsic main-axis extents.
	for _, child := range r.Children() {
		factor := flexFactor(child)
		if factor > 0 {
			totalFlex += factor
			continue
		}
		child.Layout(r.childConstraints(0, false, maxCross), true)
		allocated += r.axis.MainComponent(child.Size())
		crossExtent = math32.Max(crossExtent, r.axis.CrossComponent(child.Size()))
	}

	if totalFlex > 0 && !canFlex {
		errors.ReportProtocol("layout", fmt.Sprintf(
			"flex children along an unbounded %v axis", r.axis))
	}

	// Pass two: flexible children split the remaining space.
	free := math32.Max(0, maxMain-allocated)
	if totalFlex > 0 && canFlex {
		perFlex := free / float32(totalFlex)
		for _, child := range r.Children() {
			factor := flexFactor(child)
			if factor == 0 {
				continue
			}
			extent := perFlex * float32(factor)
			tight := flexFit(child) == FitTight
			constraints := r.childConstraints(extent, tight, maxCross)
			// A tight-fit flexible child also fills a cross axis that the
			// flex's own constraints fix to a single extent.
			if tight && minCross == maxCross {
				if r.axis == graphics.Horizontal {
					constraints.MinHeight = maxCross
				} else {
					constraints.MinWidth = maxCross
				}
			}
			child.Layout(constraints, true)
			allocated += r.axis.MainComponent(child.Size())
			crossExtent = math32.Max(crossExtent, r.axis.CrossComponent(child.Size()))
		}
	}

	mainExtent := allocated
	if r.mainSize == MainAxisSizeMax && canFlex {
		mainExtent = maxMain
	}
	if r.crossAlignment == CrossAxisStretch {
		crossExtent = maxCross
	}
	r.SetSize(c.Constrain(r.axis.MakeSize(mainExtent, crossExtent)))

	mainExtent = r.axis.MainComponent(r.Size())
	crossExtent = r.axis.CrossComponent(r.Size())

	// Position pass: distribute leftover space per the main alignment.
	remaining := math32.Max(0, mainExtent-allocated)
	leading, between := r.mainSpacing(remaining, len(r.Children()))
	position := leading
	for _, child := range r.Children() {
		childMain := r.axis.MainComponent(child.Size())
		childCross := r.axis.CrossComponent(child.Size())
		crossOffset := r.crossOffset(crossExtent, childCross)
		if data, ok := child.ParentData().(*FlexParentData); ok {
			if r.axis == graphics.Horizontal {
				data.PaintOffset = graphics.Offset{X: position, Y: crossOffset}
			} else {
				data.PaintOffset = graphics.Offset{X: crossOffset, Y: position}
			}
		}
		position += childMain + between
	}
}

// childConstraints derives a child's constraints: main-axis tight (or
// capped) for flex children, unbounded for intrinsic ones; cross-axis
// stretched tight or loose per the cross alignment.
func (r *RenderFlex) childConstraints(mainExtent float32, tightMain bool, maxCross float32) Constraints {
	var minMain, maxMain float32
	if tightMain {
		minMain, maxMain = mainExtent, mainExtent
	} else if mainExtent > 0 {
		minMain, maxMain = 0, mainExtent
	} else {
		minMain, maxMain = 0, Infinity
	}
	minCross := float32(0)
	if r.crossAlignment == CrossAxisStretch && !math32.IsInf(maxCross, 1) {
		minCross = maxCross
	}
	if r.axis == graphics.Horizontal {
		return Constraints{MinWidth: minMain, MaxWidth: maxMain, MinHeight: minCross, MaxHeight: maxCross}
	}
	return Constraints{MinWidth: minCross, MaxWidth: maxCross, MinHeight: minMain, MaxHeight: maxMain}
}

// mainSpacing returns the leading gap and the gap between adjacent
// children for the configured main-axis alignment.
func (r *RenderFlex) mainSpacing(free float32, childCount int) (leading, between float32) {
	if childCount == 0 {
		return 0, 0
	}
	switch r.mainAlignment {
	case MainAxisEnd:
		return free, 0
	case MainAxisCenter:
		return free / 2, 0
	case MainAxisSpaceBetween:
		if childCount > 1 {
			return 0, free / float32(childCount-1)
		}
		return 0, 0
	case MainAxisSpaceAround:
		gap := free / float32(childCount)
		return gap / 2, gap
	case MainAxisSpaceEvenly:
		gap := free / float32(childCount+1)
		return gap, gap
	default:
		return 0, 0
	}
}

func (r *RenderFlex) crossOffset(crossExtent, childCross float32) float32 {
	switch r.crossAlignment {
	case CrossAxisEnd:
		return crossExtent - childCross
	case CrossAxisCenter:
		return (crossExtent - childCross) / 2
	default:
		// Start, stretch and baseline all anchor at the leading edge;
		// baseline alignment degrades to start without text metrics.
		return 0
	}
}

func (r *RenderFlex) Paint(ctx *PaintContext) {
	for _, child := range r.Children() {
		ctx.PaintChild(child, parentDataOffset(child))
	}
}

// SetFlex records a flex factor on child's parent data. The child must
// already be adopted by this flex container.
func SetFlex(child RenderObject, flex int, fit FlexFit) {
	data, ok := child.ParentData().(*FlexParentData)
	if !ok {
		errors.ReportProtocol("layout", "SetFlex on a child without FlexParentData")
		return
	}
	data.Flex = flex
	data.Fit = fit
	if parent := child.Parent(); parent != nil {
		parent.MarkNeedsLayout()
	}
}
