package layout

import (
	"github.com/loomui/loom/pkg/gestures"
	"github.com/loomui/loom/pkg/graphics"
)

// RenderColoredBox fills its bounds with a color. With a preferred size it
// reports that size constrained; otherwise it takes the biggest size its
// constraints allow.
type RenderColoredBox struct {
	RenderBase
	LeafBase

	color     graphics.Color
	preferred *graphics.Size
}

// NewRenderColoredBox creates a colored box with no preferred size.
func NewRenderColoredBox(color graphics.Color) *RenderColoredBox {
	r := &RenderColoredBox{color: color}
	r.Init(r)
	return r
}

// NewRenderColoredBoxSized creates a colored box that asks for size.
func NewRenderColoredBoxSized(color graphics.Color, size graphics.Size) *RenderColoredBox {
	r := &RenderColoredBox{color: color, preferred: &size}
	r.Init(r)
	return r
}

// SetColor updates the fill color; a change only requires repaint.
func (r *RenderColoredBox) SetColor(color graphics.Color) {
	if r.color == color {
		return
	}
	r.color = color
	r.MarkNeedsPaint()
}

// SetPreferredSize updates the requested size.
func (r *RenderColoredBox) SetPreferredSize(size *graphics.Size) {
	if r.preferred == size {
		return
	}
	r.preferred = size
	r.MarkNeedsLayout()
}

func (r *RenderColoredBox) PerformLayout() {
	c := r.Constraints()
	if r.preferred != nil {
		r.SetSize(c.Constrain(*r.preferred))
		return
	}
	r.SetSize(c.Biggest())
}

func (r *RenderColoredBox) Paint(ctx *PaintContext) {
	size := r.Size()
	if size.IsEmpty() {
		return
	}
	rect := graphics.RectFromOffsetSize(ctx.Offset(), size)
	ctx.Canvas().DrawRect(rect, graphics.DefaultPaint(r.color))
}

// RenderConstrainedBox tightens or relaxes its child's constraints with an
// extra set of its own.
type RenderConstrainedBox struct {
	RenderBase
	SingleChildBase

	additional Constraints
}

// NewRenderConstrainedBox imposes additional constraints on its child.
func NewRenderConstrainedBox(additional Constraints) *RenderConstrainedBox {
	r := &RenderConstrainedBox{additional: additional}
	r.Init(r)
	return r
}

// SetChild installs the child subtree.
func (r *RenderConstrainedBox) SetChild(child RenderObject) {
	r.SingleChildBase.SetChild(&r.RenderBase, child)
}

// SetAdditionalConstraints replaces the imposed constraints.
func (r *RenderConstrainedBox) SetAdditionalConstraints(additional Constraints) {
	if r.additional == additional {
		return
	}
	r.additional = additional
	r.MarkNeedsLayout()
}

func (r *RenderConstrainedBox) VisitChildren(visitor func(child RenderObject) bool) {
	r.SingleChildBase.VisitChildren(visitor)
}

func (r *RenderConstrainedBox) PerformLayout() {
	c := r.Constraints()
	inner := r.additional.Enforce(c)
	if child := r.Child(); child != nil {
		child.Layout(inner, true)
		r.SetSize(c.Constrain(child.Size()))
		return
	}
	r.SetSize(inner.Constrain(graphics.ZeroSize))
}

func (r *RenderConstrainedBox) Paint(ctx *PaintContext) {
	if child := r.Child(); child != nil {
		ctx.PaintChild(child, parentDataOffset(child))
	}
}

// RenderPadding insets its child by fixed edge amounts. The child gets the
// deflated constraints and is positioned at the top-left inset.
type RenderPadding struct {
	RenderBase
	SingleChildBase

	insets graphics.EdgeInsets
}

// NewRenderPadding creates a padding box with the given insets.
func NewRenderPadding(insets graphics.EdgeInsets) *RenderPadding {
	r := &RenderPadding{insets: insets}
	r.Init(r)
	return r
}

// SetChild installs the child subtree.
func (r *RenderPadding) SetChild(child RenderObject) {
	r.SingleChildBase.SetChild(&r.RenderBase, child)
}

// SetInsets replaces the padding amounts.
func (r *RenderPadding) SetInsets(insets graphics.EdgeInsets) {
	if r.insets == insets {
		return
	}
	r.insets = insets
	r.MarkNeedsLayout()
}

// Insets returns the current padding amounts.
func (r *RenderPadding) Insets() graphics.EdgeInsets { return r.insets }

func (r *RenderPadding) VisitChildren(visitor func(child RenderObject) bool) {
	r.SingleChildBase.VisitChildren(visitor)
}

func (r *RenderPadding) PerformLayout() {
	c := r.Constraints()
	child := r.Child()
	if child == nil {
		r.SetSize(c.Constrain(r.insets.InflateSize(graphics.ZeroSize)))
		return
	}
	child.Layout(c.Deflate(r.insets), true)
	if data, ok := child.ParentData().(*BoxParentData); ok {
		data.PaintOffset = r.insets.TopLeft()
	}
	r.SetSize(c.Constrain(r.insets.InflateSize(child.Size())))
}

func (r *RenderPadding) Paint(ctx *PaintContext) {
	if child := r.Child(); child != nil {
		ctx.PaintChild(child, parentDataOffset(child))
	}
}

// RenderOpacity composites its child at a fixed alpha through an opacity
// layer. It always needs compositing while visible.
type RenderOpacity struct {
	RenderBase
	SingleChildBase

	alpha float64
}

// NewRenderOpacity creates an opacity node at the given alpha (0..1).
func NewRenderOpacity(alpha float64) *RenderOpacity {
	r := &RenderOpacity{alpha: alpha}
	r.Init(r)
	return r
}

// SetChild installs the child subtree.
func (r *RenderOpacity) SetChild(child RenderObject) {
	r.SingleChildBase.SetChild(&r.RenderBase, child)
}

// SetAlpha updates the composited alpha.
func (r *RenderOpacity) SetAlpha(alpha float64) {
	if r.alpha == alpha {
		return
	}
	r.alpha = alpha
	r.MarkNeedsPaint()
	r.MarkNeedsCompositingBitsUpdate()
}

func (r *RenderOpacity) AlwaysNeedsCompositing() bool {
	return r.Child() != nil && r.alpha > 0
}

func (r *RenderOpacity) VisitChildren(visitor func(child RenderObject) bool) {
	r.SingleChildBase.VisitChildren(visitor)
}

func (r *RenderOpacity) PerformLayout() {
	c := r.Constraints()
	if child := r.Child(); child != nil {
		child.Layout(c, true)
		r.SetSize(child.Size())
		return
	}
	r.SetSize(c.Smallest())
}

func (r *RenderOpacity) Paint(ctx *PaintContext) {
	child := r.Child()
	if child == nil || r.alpha == 0 {
		return
	}
	ctx.PushOpacity(r.alpha)
	ctx.PaintChild(child, parentDataOffset(child))
	ctx.Pop()
}

// RenderClipRect clips its child's painting (and hit testing) to its own
// bounds.
type RenderClipRect struct {
	RenderBase
	SingleChildBase
}

// NewRenderClipRect creates a rectangular clip node.
func NewRenderClipRect() *RenderClipRect {
	r := &RenderClipRect{}
	r.Init(r)
	return r
}

// SetChild installs the child subtree.
func (r *RenderClipRect) SetChild(child RenderObject) {
	r.SingleChildBase.SetChild(&r.RenderBase, child)
}

func (r *RenderClipRect) VisitChildren(visitor func(child RenderObject) bool) {
	r.SingleChildBase.VisitChildren(visitor)
}

func (r *RenderClipRect) PerformLayout() {
	c := r.Constraints()
	if child := r.Child(); child != nil {
		child.Layout(c, true)
		r.SetSize(child.Size())
		return
	}
	r.SetSize(c.Smallest())
}

func (r *RenderClipRect) Paint(ctx *PaintContext) {
	child := r.Child()
	if child == nil {
		return
	}
	ctx.PushClipRect(graphics.RectFromOffsetSize(graphics.ZeroOffset, r.Size()))
	ctx.PaintChild(child, parentDataOffset(child))
	ctx.Pop()
}

// RenderPointerListener passes layout through to its child and surfaces
// pointer events: raw ones via OnPointer, recognized gestures via the
// recognizers attached to it. It is the wiring point between the render
// tree's hit testing and the gesture arena.
type RenderPointerListener struct {
	RenderBase
	SingleChildBase

	// OnPointer receives every routed event before the recognizers. A nil
	// handler continues propagation.
	OnPointer func(event gestures.PointerEvent) EventPropagation

	recognizers []gestures.GestureRecognizer
}

// NewRenderPointerListener creates a pointer listener with no recognizers.
func NewRenderPointerListener() *RenderPointerListener {
	r := &RenderPointerListener{}
	r.Init(r)
	return r
}

// SetChild installs the child subtree.
func (r *RenderPointerListener) SetChild(child RenderObject) {
	r.SingleChildBase.SetChild(&r.RenderBase, child)
}

// AddRecognizer attaches a recognizer that will compete for pointers that
// go down inside this listener's bounds.
func (r *RenderPointerListener) AddRecognizer(recognizer gestures.GestureRecognizer) {
	r.recognizers = append(r.recognizers, recognizer)
}

// Recognizers returns the attached recognizers.
func (r *RenderPointerListener) Recognizers() []gestures.GestureRecognizer {
	return r.recognizers
}

// Dispose releases the attached recognizers' tracking state.
func (r *RenderPointerListener) Dispose() {
	for _, recognizer := range r.recognizers {
		recognizer.Dispose()
	}
	r.recognizers = nil
}

func (r *RenderPointerListener) VisitChildren(visitor func(child RenderObject) bool) {
	r.SingleChildBase.VisitChildren(visitor)
}

func (r *RenderPointerListener) PerformLayout() {
	c := r.Constraints()
	if child := r.Child(); child != nil {
		child.Layout(c, true)
		r.SetSize(child.Size())
		return
	}
	r.SetSize(c.Smallest())
}

func (r *RenderPointerListener) Paint(ctx *PaintContext) {
	if child := r.Child(); child != nil {
		ctx.PaintChild(child, parentDataOffset(child))
	}
}

// HandlePointer feeds the event to OnPointer and, on a down event, enters
// every attached recognizer into the pointer's arena.
func (r *RenderPointerListener) HandlePointer(event gestures.PointerEvent) EventPropagation {
	if r.OnPointer != nil {
		if r.OnPointer(event) == PropagationStop {
			return PropagationStop
		}
	}
	if event.Phase == gestures.PointerPhaseDown {
		for _, recognizer := range r.recognizers {
			recognizer.AddPointer(event)
		}
	} else {
		for _, recognizer := range r.recognizers {
			recognizer.HandleEvent(event)
		}
	}
	return PropagationContinue
}
