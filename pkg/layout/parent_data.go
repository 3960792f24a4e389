package layout

import "github.com/loomui/loom/pkg/graphics"

// ParentData is the per-child metadata slot a parent render object attaches
// to each of its children before layout. Paint and hit testing read the
// child's position from here, so layout writes it exactly once per pass.
type ParentData interface {
	// Offset is the child's paint position in the parent's coordinate space.
	Offset() graphics.Offset
}

// BoxParentData carries just the paint offset. It is the default metadata
// installed by single-child box parents.
type BoxParentData struct {
	PaintOffset graphics.Offset
}

func (d *BoxParentData) Offset() graphics.Offset { return d.PaintOffset }

// ContainerBoxParentData extends BoxParentData with sibling links so a
// multi-child parent can walk its children in either direction without
// re-slicing its child list.
type ContainerBoxParentData struct {
	BoxParentData
	PreviousSibling RenderObject
	NextSibling     RenderObject
}

// FlexFit controls how a flexible child fills its allotted main-axis extent.
type FlexFit int

const (
	// FitTight forces the child to fill exactly its flex share.
	FitTight FlexFit = iota
	// FitLoose lets the child be smaller than its flex share.
	FitLoose
)

// FlexParentData carries the flex factor and fit a RenderFlex reads when
// dividing the remaining main-axis space among flexible children.
type FlexParentData struct {
	ContainerBoxParentData
	Flex int
	Fit  FlexFit
}

// StackParentData carries the optional absolute-positioning values a
// RenderStack reads for positioned children. A nil field means the
// dimension is unconstrained on that side.
type StackParentData struct {
	ContainerBoxParentData
	Top    *float32
	Right  *float32
	Bottom *float32
	Left   *float32
	Width  *float32
	Height *float32
}

// IsPositioned reports whether any positioning value is set; unpositioned
// children are sized by the stack's fit instead.
func (d *StackParentData) IsPositioned() bool {
	return d.Top != nil || d.Right != nil || d.Bottom != nil ||
		d.Left != nil || d.Width != nil || d.Height != nil
}

// SliverLogicalParentData carries a sliver child's offset along the
// viewport's main axis, in scroll-space units.
type SliverLogicalParentData struct {
	LayoutOffset float32
}

func (d *SliverLogicalParentData) Offset() graphics.Offset { return graphics.ZeroOffset }

// parentDataOffset reads the paint offset out of an arbitrary child,
// treating a missing slot as the origin.
func parentDataOffset(child RenderObject) graphics.Offset {
	if child == nil {
		return graphics.ZeroOffset
	}
	if data := child.ParentData(); data != nil {
		return data.Offset()
	}
	return graphics.ZeroOffset
}
