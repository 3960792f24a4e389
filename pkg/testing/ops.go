package testing

import (
	"image"

	"github.com/loomui/loom/pkg/graphics"
)

// OpCounts tallies the drawing operations a scene replays, letting tests
// assert on paint output without a rasterizer.
type OpCounts struct {
	Rects    int
	RRects   int
	Circles  int
	Lines    int
	Paths    int
	Images   int
	Clips    int
	Saves    int
	Restores int
}

// Total sums every drawing op (clips and save/restore excluded).
func (c OpCounts) Total() int {
	return c.Rects + c.RRects + c.Circles + c.Lines + c.Paths + c.Images
}

// CountSceneOps replays scene onto a counting canvas.
func CountSceneOps(scene *graphics.Scene) OpCounts {
	canvas := &countingCanvas{}
	if scene != nil {
		scene.Paint(canvas)
	}
	return canvas.counts
}

// countingCanvas tallies operations instead of rendering them.
type countingCanvas struct {
	counts OpCounts
}

func (c *countingCanvas) Save()                                  { c.counts.Saves++ }
func (c *countingCanvas) SaveLayerAlpha(graphics.Rect, float64)  { c.counts.Saves++ }
func (c *countingCanvas) Restore()                               { c.counts.Restores++ }
func (c *countingCanvas) Translate(dx, dy float32)               {}
func (c *countingCanvas) Scale(sx, sy float32)                   {}
func (c *countingCanvas) Rotate(radians float32)                 {}
func (c *countingCanvas) ClipRect(graphics.Rect)                 { c.counts.Clips++ }
func (c *countingCanvas) ClipRRect(graphics.RRect)               { c.counts.Clips++ }
func (c *countingCanvas) Clear(graphics.Color)                   {}
func (c *countingCanvas) DrawRect(graphics.Rect, graphics.Paint) { c.counts.Rects++ }
func (c *countingCanvas) DrawRRect(graphics.RRect, graphics.Paint) {
	c.counts.RRects++
}
func (c *countingCanvas) DrawCircle(graphics.Offset, float32, graphics.Paint) {
	c.counts.Circles++
}
func (c *countingCanvas) DrawLine(start, end graphics.Offset, paint graphics.Paint) {
	c.counts.Lines++
}
func (c *countingCanvas) DrawPath(*graphics.Path, graphics.Paint) { c.counts.Paths++ }
func (c *countingCanvas) ClipPath(path *graphics.Path, op graphics.ClipOp, antialias bool) {
	c.counts.Clips++
}
func (c *countingCanvas) DrawImage(img image.Image, position graphics.Offset) {
	c.counts.Images++
}
func (c *countingCanvas) DrawImageRect(img image.Image, src, dst graphics.Rect, quality graphics.FilterQuality) {
	c.counts.Images++
}
func (c *countingCanvas) DrawRectShadow(rect graphics.Rect, shadow graphics.BoxShadow) {}
func (c *countingCanvas) Size() graphics.Size                                          { return graphics.Size{} }
