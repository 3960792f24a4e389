package graphics

import "fmt"

// Layer is a node in the retained compositing tree produced by the paint
// phase. Repaint boundaries cache a Layer so an unrelated repaint doesn't
// have to re-record their DisplayList; everything else paints directly into
// its parent's recording.
type Layer interface {
	// Paint replays this layer (and its descendants) onto canvas.
	Paint(canvas Canvas)
	fmt.Stringer
}

// PictureLayer wraps a recorded DisplayList — the leaf of the layer tree.
type PictureLayer struct {
	Picture *DisplayList
}

func (l *PictureLayer) Paint(canvas Canvas) {
	if l == nil || l.Picture == nil {
		return
	}
	l.Picture.Paint(canvas)
}

func (l *PictureLayer) String() string { return "PictureLayer" }

// ContainerLayer holds an ordered list of child layers with no transform of
// its own. Offset/Transform/ClipRect/ClipRRect/ClipPath/Opacity/ColorFilter
// layers embed it to add their own effect around the same child-list
// machinery.
type ContainerLayer struct {
	Children []Layer
}

func (l *ContainerLayer) Append(child Layer) {
	l.Children = append(l.Children, child)
}

// ChildLayers exposes the child list through the Layer interface, so tree
// walks don't need to enumerate every container variant.
func (l *ContainerLayer) ChildLayers() []Layer { return l.Children }

func (l *ContainerLayer) Paint(canvas Canvas) {
	if l == nil {
		return
	}
	for _, child := range l.Children {
		child.Paint(canvas)
	}
}

func (l *ContainerLayer) String() string {
	return fmt.Sprintf("ContainerLayer(%d children)", len(l.Children))
}

// OffsetLayer translates its children by a fixed offset. Every repaint
// boundary's cached layer is rooted in one of these so it can be
// repositioned by a parent without re-recording its content.
type OffsetLayer struct {
	ContainerLayer
	Offset Offset
}

func (l *OffsetLayer) Paint(canvas Canvas) {
	canvas.Save()
	canvas.Translate(l.Offset.X, l.Offset.Y)
	l.ContainerLayer.Paint(canvas)
	canvas.Restore()
}

func (l *OffsetLayer) String() string { return fmt.Sprintf("OffsetLayer(%v)", l.Offset) }

// TransformLayer applies an arbitrary 4x4 matrix before painting children.
type TransformLayer struct {
	ContainerLayer
	Transform Matrix4
}

func (l *TransformLayer) Paint(canvas Canvas) {
	canvas.Save()
	l.ContainerLayer.Paint(canvas)
	canvas.Restore()
}

func (l *TransformLayer) String() string { return "TransformLayer" }

// ClipRectLayer clips children to a rectangle.
type ClipRectLayer struct {
	ContainerLayer
	ClipRect Rect
}

func (l *ClipRectLayer) Paint(canvas Canvas) {
	canvas.Save()
	canvas.ClipRect(l.ClipRect)
	l.ContainerLayer.Paint(canvas)
	canvas.Restore()
}

func (l *ClipRectLayer) String() string { return fmt.Sprintf("ClipRectLayer(%v)", l.ClipRect) }

// ClipRRectLayer clips children to a rounded rectangle.
type ClipRRectLayer struct {
	ContainerLayer
	ClipRRect RRect
}

func (l *ClipRRectLayer) Paint(canvas Canvas) {
	canvas.Save()
	canvas.ClipRRect(l.ClipRRect)
	l.ContainerLayer.Paint(canvas)
	canvas.Restore()
}

func (l *ClipRRectLayer) String() string { return "ClipRRectLayer" }

// ClipPathLayer clips children to an arbitrary path.
type ClipPathLayer struct {
	ContainerLayer
	ClipPath  *Path
	Antialias bool
}

func (l *ClipPathLayer) Paint(canvas Canvas) {
	canvas.Save()
	canvas.ClipPath(l.ClipPath, ClipOpIntersect, l.Antialias)
	l.ContainerLayer.Paint(canvas)
	canvas.Restore()
}

func (l *ClipPathLayer) String() string { return "ClipPathLayer" }

// OpacityLayer composites children into an offscreen layer at the given
// alpha. It does not make a repaint boundary: RenderOpacity pushes one
// inline into its parent's layer while painting.
type OpacityLayer struct {
	ContainerLayer
	Alpha float64
}

func (l *OpacityLayer) Paint(canvas Canvas) {
	bounds := Rect{}
	canvas.SaveLayerAlpha(bounds, l.Alpha)
	l.ContainerLayer.Paint(canvas)
	canvas.Restore()
}

func (l *OpacityLayer) String() string { return fmt.Sprintf("OpacityLayer(%.2f)", l.Alpha) }

// LayerBuilder assembles a layer tree with the same push/pop stack
// discipline a paint context exposes to render objects: every PushX call
// must be matched by a Pop before the enclosing scope ends, mirroring the
// Canvas Save/Restore discipline display_list.go already uses for the
// picture recorder.
type LayerBuilder struct {
	stack []*ContainerLayer
	root  *ContainerLayer
}

// NewLayerBuilder starts a fresh layer tree rooted at an empty container.
func NewLayerBuilder() *LayerBuilder {
	root := &ContainerLayer{}
	return &LayerBuilder{stack: []*ContainerLayer{root}, root: root}
}

func (b *LayerBuilder) current() *ContainerLayer {
	return b.stack[len(b.stack)-1]
}

// AddLayer appends a leaf or already-built layer under the current container.
func (b *LayerBuilder) AddLayer(layer Layer) {
	b.current().Append(layer)
}

func (b *LayerBuilder) push(container *ContainerLayer, wrapper Layer) {
	b.current().Append(wrapper)
	b.stack = append(b.stack, container)
}

func (b *LayerBuilder) PushOffset(offset Offset) *OffsetLayer {
	l := &OffsetLayer{Offset: offset}
	b.push(&l.ContainerLayer, l)
	return l
}

func (b *LayerBuilder) PushTransform(transform Matrix4) *TransformLayer {
	l := &TransformLayer{Transform: transform}
	b.push(&l.ContainerLayer, l)
	return l
}

func (b *LayerBuilder) PushClipRect(rect Rect) *ClipRectLayer {
	l := &ClipRectLayer{ClipRect: rect}
	b.push(&l.ContainerLayer, l)
	return l
}

func (b *LayerBuilder) PushClipRRect(rrect RRect) *ClipRRectLayer {
	l := &ClipRRectLayer{ClipRRect: rrect}
	b.push(&l.ContainerLayer, l)
	return l
}

func (b *LayerBuilder) PushClipPath(path *Path, antialias bool) *ClipPathLayer {
	l := &ClipPathLayer{ClipPath: path, Antialias: antialias}
	b.push(&l.ContainerLayer, l)
	return l
}

func (b *LayerBuilder) PushOpacity(alpha float64) *OpacityLayer {
	l := &OpacityLayer{Alpha: alpha}
	b.push(&l.ContainerLayer, l)
	return l
}

func (b *LayerBuilder) PushColorFilter(filter ColorFilter) *ColorFilterLayer {
	l := &ColorFilterLayer{Filter: filter}
	b.push(&l.ContainerLayer, l)
	return l
}

func (b *LayerBuilder) PushImageFilter(filter ImageFilter) *ImageFilterLayer {
	l := &ImageFilterLayer{Filter: filter}
	b.push(&l.ContainerLayer, l)
	return l
}

func (b *LayerBuilder) PushBackdropFilter(filter ImageFilter) *BackdropFilterLayer {
	l := &BackdropFilterLayer{Filter: filter}
	b.push(&l.ContainerLayer, l)
	return l
}

func (b *LayerBuilder) PushShaderMask(shader ShaderGradient, bounds Rect) *ShaderMaskLayer {
	l := &ShaderMaskLayer{Shader: shader, Bounds: bounds}
	b.push(&l.ContainerLayer, l)
	return l
}

// Pop closes the most recently pushed layer. It panics on an unbalanced
// pop, the same way an unmatched canvas Restore would leave the backend in
// an inconsistent state.
func (b *LayerBuilder) Pop() {
	if len(b.stack) <= 1 {
		panic("graphics: LayerBuilder.Pop called without a matching push")
	}
	b.stack = b.stack[:len(b.stack)-1]
}

// Build finalizes the tree, panicking if any push was left unmatched.
func (b *LayerBuilder) Build() *ContainerLayer {
	if len(b.stack) != 1 {
		panic(fmt.Sprintf("graphics: LayerBuilder.Build called with %d unmatched pushes", len(b.stack)-1))
	}
	return b.root
}
