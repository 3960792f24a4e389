package graphics

// Scene is the opaque handle an embedder receives at the end of a frame: a
// composited layer tree plus the bookkeeping needed to hand it to whatever
// presents pixels (software rasterizer, GPU surface, or a test harness that
// just inspects recorded ops).
type Scene struct {
	Size        Size
	LayerTree   *ContainerLayer
	RootLayerID uint64
	FrameNumber uint64
}

// NewScene packages a built layer tree into a Scene for presentation.
func NewScene(size Size, layerTree *ContainerLayer, frameNumber uint64) *Scene {
	return &Scene{Size: size, LayerTree: layerTree, FrameNumber: frameNumber}
}

// Paint replays the scene's layer tree onto canvas. This is the only
// operation an embedder needs to present a Scene; everything else about its
// construction is opaque, per the framework/embedder boundary.
func (s *Scene) Paint(canvas Canvas) {
	if s == nil || s.LayerTree == nil {
		return
	}
	s.LayerTree.Paint(canvas)
}
