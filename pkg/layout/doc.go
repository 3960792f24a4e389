// Package layout implements the render tree: the nodes that turn
// constraints into geometry and geometry into layers.
//
// Two layout protocols coexist. Box nodes consume Constraints and produce
// a Size; sliver nodes consume SliverConstraints and produce a
// SliverGeometry, hosted by a RenderViewport that is itself a box. A
// PipelineOwner tracks dirty nodes and drives the per-frame flushes in
// order: FlushLayout, FlushCompositingBits, FlushPaint, FlushSemantics.
//
// Painting goes through PaintContext into a layer tree (see
// graphics.Layer); repaint boundaries cache their layer subtree so a
// dirty ancestor does not force them to re-record. Hit testing walks the
// same tree in reverse paint order and yields a deepest-first entry list
// that pointer events are dispatched along.
package layout
