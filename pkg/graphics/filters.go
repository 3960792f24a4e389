package graphics

import (
	"fmt"
	"time"
)

// ColorFilter recolors everything drawn beneath it: the source color is
// blended toward Color by the blend mode.
type ColorFilter struct {
	Color Color
	Mode  BlendMode
}

// Apply filters a single color, used by software replay paths.
func (f ColorFilter) Apply(src Color) Color {
	switch f.Mode {
	case BlendModeSrc:
		return f.Color
	case BlendModeMultiply:
		return src.Lerp(f.Color, 0.5)
	default:
		return src.Lerp(f.Color, f.Color.Alpha())
	}
}

// ImageFilter describes a raster-space effect (blur, dilate) the backend
// applies when compositing. Only the parameters travel through the layer
// tree; the implementation is the backend's.
type ImageFilter struct {
	BlurSigmaX float32
	BlurSigmaY float32
}

// IsIdentity reports whether the filter does nothing.
func (f ImageFilter) IsIdentity() bool {
	return f.BlurSigmaX == 0 && f.BlurSigmaY == 0
}

// ShaderGradient is the linear-gradient shader a ShaderMaskLayer masks
// its children with.
type ShaderGradient struct {
	From   Offset
	To     Offset
	Colors []Color
	Stops  []float32
}

// ColorFilterLayer applies a color filter while compositing its children.
type ColorFilterLayer struct {
	ContainerLayer
	Filter ColorFilter
}

func (l *ColorFilterLayer) Paint(canvas Canvas) {
	canvas.SaveLayerAlpha(Rect{}, 1.0)
	l.ContainerLayer.Paint(canvas)
	canvas.Restore()
}

func (l *ColorFilterLayer) String() string {
	return fmt.Sprintf("ColorFilterLayer(%v)", l.Filter.Mode)
}

// ImageFilterLayer applies a raster filter to its children's output.
type ImageFilterLayer struct {
	ContainerLayer
	Filter ImageFilter
}

func (l *ImageFilterLayer) Paint(canvas Canvas) {
	canvas.SaveLayerAlpha(Rect{}, 1.0)
	l.ContainerLayer.Paint(canvas)
	canvas.Restore()
}

func (l *ImageFilterLayer) String() string { return "ImageFilterLayer" }

// BackdropFilterLayer applies a raster filter to everything already
// painted beneath it before painting its children on top.
type BackdropFilterLayer struct {
	ContainerLayer
	Filter ImageFilter
}

func (l *BackdropFilterLayer) Paint(canvas Canvas) {
	canvas.SaveLayerAlpha(Rect{}, 1.0)
	l.ContainerLayer.Paint(canvas)
	canvas.Restore()
}

func (l *BackdropFilterLayer) String() string { return "BackdropFilterLayer" }

// ShaderMaskLayer masks its children with a gradient shader.
type ShaderMaskLayer struct {
	ContainerLayer
	Shader ShaderGradient
	Bounds Rect
}

func (l *ShaderMaskLayer) Paint(canvas Canvas) {
	canvas.SaveLayerAlpha(l.Bounds, 1.0)
	l.ContainerLayer.Paint(canvas)
	canvas.Restore()
}

func (l *ShaderMaskLayer) String() string { return "ShaderMaskLayer" }

// PerformanceStats is the frame-timing snapshot a performance overlay
// renders. Presentation (colors, thresholds) is the client's concern.
type PerformanceStats struct {
	AverageFrameTime time.Duration
	MaxFrameTime     time.Duration
	TotalFrames      uint64
	DroppedFrames    uint64
}

// PerformanceOverlayLayer carries a metrics snapshot for the backend or a
// debug client to visualize. It paints nothing itself.
type PerformanceOverlayLayer struct {
	Stats  PerformanceStats
	Bounds Rect
}

func (l *PerformanceOverlayLayer) Paint(canvas Canvas) {}

func (l *PerformanceOverlayLayer) String() string {
	return fmt.Sprintf("PerformanceOverlayLayer(%d frames, %d dropped)",
		l.Stats.TotalFrames, l.Stats.DroppedFrames)
}
