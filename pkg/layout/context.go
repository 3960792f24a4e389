package layout

import (
	"github.com/loomui/loom/pkg/graphics"
)

// PaintContext is handed to RenderObject.Paint. It exposes the recording
// canvas for the current picture, the node's paint offset in that
// picture's space, recursion into children, and the scoped Push/Pop layer
// operations. Every Push must be balanced by exactly one Pop on every exit
// path; the layer builder treats an unbalanced stack as a fatal protocol
// error when the frame is finalized.
type PaintContext struct {
	builder  *graphics.LayerBuilder
	recorder *graphics.PictureRecorder
	canvas   graphics.Canvas
	offset   graphics.Offset
	bounds   graphics.Size
}

// NewPaintContext begins painting into builder with the given estimated
// bounds (used to size picture recordings).
func NewPaintContext(builder *graphics.LayerBuilder, bounds graphics.Size) *PaintContext {
	return &PaintContext{builder: builder, bounds: bounds}
}

// Offset is the paint position of the current render object within the
// active picture's coordinate space.
func (p *PaintContext) Offset() graphics.Offset { return p.offset }

// Canvas returns the recording canvas for the current picture, starting a
// new recording on first use after a layer operation.
func (p *PaintContext) Canvas() graphics.Canvas {
	if p.canvas == nil {
		p.recorder = &graphics.PictureRecorder{}
		p.canvas = p.recorder.BeginRecording(p.bounds)
	}
	return p.canvas
}

// stopRecording closes the active picture, if any, and appends it to the
// current layer so subsequent layers stack above it.
func (p *PaintContext) stopRecording() {
	if p.canvas == nil {
		return
	}
	picture := p.recorder.EndRecording()
	p.builder.AddLayer(&graphics.PictureLayer{Picture: picture})
	p.canvas = nil
	p.recorder = nil
}

// PaintChild paints child at offset (in the current object's space).
// Repaint boundaries composite through their cached layer; everything else
// records inline into the current picture and is marked clean.
func (p *PaintContext) PaintChild(child RenderObject, offset graphics.Offset) {
	if child == nil {
		return
	}
	absolute := p.offset.Add(offset)
	if child.IsRepaintBoundary() {
		p.stopRecording()
		p.compositeChild(child, absolute)
		return
	}
	saved := p.offset
	p.offset = absolute
	child.Paint(p)
	child.clearNeedsPaint()
	p.offset = saved
}

// compositeChild appends the child's boundary layer, repainting its
// subtree only when the child itself is dirty.
func (p *PaintContext) compositeChild(child RenderObject, offset graphics.Offset) {
	reused := !child.NeedsPaint() && child.boundaryLayer() != nil
	if !reused {
		RepaintBoundary(child)
	}
	if owner := child.Owner(); owner != nil && owner.OnLayerCacheEvent != nil {
		owner.OnLayerCacheEvent(reused)
	}
	layer := child.boundaryLayer()
	layer.Offset = offset
	p.builder.AddLayer(layer)
}

// RepaintBoundary rebuilds the cached layer subtree of a repaint boundary.
// The boundary's OffsetLayer identity is stable across repaints so layer
// trees held by ancestors keep referencing it; only its children are
// replaced. Its Offset is assigned by whichever parent composites it.
func RepaintBoundary(boundary RenderObject) {
	builder := graphics.NewLayerBuilder()
	ctx := NewPaintContext(builder, boundary.Size())
	boundary.Paint(ctx)
	ctx.stopRecording()
	layer := boundary.boundaryLayer()
	if layer == nil {
		layer = &graphics.OffsetLayer{}
		boundary.setBoundaryLayer(layer)
	}
	layer.Children = builder.Build().Children
	boundary.clearNeedsPaint()
}

// PushOffset opens a translated child layer. Balance with Pop.
func (p *PaintContext) PushOffset(offset graphics.Offset) {
	p.stopRecording()
	p.builder.PushOffset(offset)
}

// PushClipRect opens a rectangular clip layer. Balance with Pop.
func (p *PaintContext) PushClipRect(rect graphics.Rect) {
	p.stopRecording()
	p.builder.PushClipRect(rect.TranslateBy(p.offset))
}

// PushClipRRect opens a rounded-rect clip layer. Balance with Pop.
func (p *PaintContext) PushClipRRect(rrect graphics.RRect) {
	p.stopRecording()
	shifted := rrect
	shifted.Rect = rrect.Rect.TranslateBy(p.offset)
	p.builder.PushClipRRect(shifted)
}

// PushClipPath opens a path clip layer. Balance with Pop.
func (p *PaintContext) PushClipPath(path *graphics.Path, antialias bool) {
	p.stopRecording()
	p.builder.PushClipPath(path, antialias)
}

// PushTransform opens a matrix transform layer. Balance with Pop.
func (p *PaintContext) PushTransform(transform graphics.Matrix4) {
	p.stopRecording()
	p.builder.PushTransform(transform)
}

// PushOpacity opens an opacity layer compositing its children at alpha.
// Balance with Pop.
func (p *PaintContext) PushOpacity(alpha float64) {
	p.stopRecording()
	p.builder.PushOpacity(alpha)
}

// Pop closes the most recently pushed layer.
func (p *PaintContext) Pop() {
	p.stopRecording()
	p.builder.Pop()
}
