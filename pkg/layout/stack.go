package layout

import (
	"github.com/chewxy/math32"

	"github.com/loomui/loom/pkg/graphics"
)

// StackFit controls how a stack passes constraints to its unpositioned
// children.
type StackFit int

const (
	// StackFitLoose loosens the incoming constraints.
	StackFitLoose StackFit = iota
	// StackFitExpand tightens them to the biggest admissible size.
	StackFitExpand
	// StackFitPassthrough forwards the incoming constraints unmodified.
	StackFitPassthrough
)

// Alignment positions a child within free space as a fractional anchor:
// (0,0) is top-left, (0.5,0.5) centered, (1,1) bottom-right.
type Alignment struct {
	X float32
	Y float32
}

var (
	AlignTopLeft     = Alignment{0, 0}
	AlignCenter      = Alignment{0.5, 0.5}
	AlignBottomRight = Alignment{1, 1}
)

// Within resolves the anchor to an offset inside the free space.
func (a Alignment) Within(free graphics.Size) graphics.Offset {
	return graphics.Offset{X: free.Width * a.X, Y: free.Height * a.Y}
}

// RenderStack layers its children on top of each other. Unpositioned
// children are aligned within the stack's bounds per the configured
// alignment; positioned children (StackParentData with any side set) are
// placed by their insets.
type RenderStack struct {
	RenderBase
	MultiChildBase

	alignment Alignment
	fit       StackFit
}

// NewRenderStack creates a stack with top-left alignment and loose fit.
func NewRenderStack() *RenderStack {
	r := &RenderStack{}
	r.Init(r)
	return r
}

// SetChildren replaces the child list.
func (r *RenderStack) SetChildren(children []RenderObject) {
	r.MultiChildBase.SetChildren(&r.RenderBase, children)
}

// SetAlignment changes the anchor for unpositioned children.
func (r *RenderStack) SetAlignment(alignment Alignment) {
	if r.alignment == alignment {
		return
	}
	r.alignment = alignment
	r.MarkNeedsLayout()
}

// SetFit changes the constraint policy for unpositioned children.
func (r *RenderStack) SetFit(fit StackFit) {
	if r.fit == fit {
		return
	}
	r.fit = fit
	r.MarkNeedsLayout()
}

// SetupParentData installs StackParentData.
func (r *RenderStack) SetupParentData(child RenderObject) {
	if _, ok := child.ParentData().(*StackParentData); !ok {
		child.SetParentData(&StackParentData{})
	}
}

func (r *RenderStack) VisitChildren(visitor func(child RenderObject) bool) {
	r.MultiChildBase.VisitChildren(visitor)
}

func (r *RenderStack) PerformLayout() {
	c := r.Constraints()

	var nonPositionedConstraints Constraints
	switch r.fit {
	case StackFitExpand:
		nonPositionedConstraints = Tight(c.Biggest())
	case StackFitPassthrough:
		nonPositionedConstraints = c
	default:
		nonPositionedConstraints = c.Loosen()
	}

	// Unpositioned children size the stack.
	width := c.MinWidth
	height := c.MinHeight
	hasNonPositioned := false
	for _, child := range r.Children() {
		data := child.ParentData().(*StackParentData)
		if data.IsPositioned() {
			continue
		}
		hasNonPositioned = true
		child.Layout(nonPositionedConstraints, true)
		width = math32.Max(width, child.Size().Width)
		height = math32.Max(height, child.Size().Height)
	}
	if hasNonPositioned {
		r.SetSize(c.Constrain(graphics.Size{Width: width, Height: height}))
	} else {
		r.SetSize(c.Biggest())
	}

	size := r.Size()
	for _, child := range r.Children() {
		data := child.ParentData().(*StackParentData)
		if !data.IsPositioned() {
			free := graphics.Size{
				Width:  size.Width - child.Size().Width,
				Height: size.Height - child.Size().Height,
			}
			data.PaintOffset = r.alignment.Within(free)
			continue
		}
		r.layoutPositionedChild(child, data, size)
	}
}

// layoutPositionedChild derives a positioned child's constraints from its
// insets and the stack's size, then anchors it.
func (r *RenderStack) layoutPositionedChild(child RenderObject, data *StackParentData, size graphics.Size) {
	childConstraints := Constraints{MaxWidth: Infinity, MaxHeight: Infinity}
	switch {
	case data.Width != nil:
		childConstraints.MinWidth = *data.Width
		childConstraints.MaxWidth = *data.Width
	case data.Left != nil && data.Right != nil:
		w := math32.Max(0, size.Width-*data.Left-*data.Right)
		childConstraints.MinWidth = w
		childConstraints.MaxWidth = w
	default:
		childConstraints.MaxWidth = size.Width
	}
	switch {
	case data.Height != nil:
		childConstraints.MinHeight = *data.Height
		childConstraints.MaxHeight = *data.Height
	case data.Top != nil && data.Bottom != nil:
		h := math32.Max(0, size.Height-*data.Top-*data.Bottom)
		childConstraints.MinHeight = h
		childConstraints.MaxHeight = h
	default:
		childConstraints.MaxHeight = size.Height
	}

	child.Layout(childConstraints, true)

	x := r.alignment.Within(graphics.Size{Width: size.Width - child.Size().Width}).X
	switch {
	case data.Left != nil:
		x = *data.Left
	case data.Right != nil:
		x = size.Width - *data.Right - child.Size().Width
	}
	y := r.alignment.Within(graphics.Size{Height: size.Height - child.Size().Height}).Y
	switch {
	case data.Top != nil:
		y = *data.Top
	case data.Bottom != nil:
		y = size.Height - *data.Bottom - child.Size().Height
	}
	data.PaintOffset = graphics.Offset{X: x, Y: y}
}

func (r *RenderStack) Paint(ctx *PaintContext) {
	for _, child := range r.Children() {
		ctx.PaintChild(child, parentDataOffset(child))
	}
}
