package graphics

import "fmt"

// PaintStyle describes how shapes are filled or stroked.
type PaintStyle int

const (
	PaintStyleFill PaintStyle = iota
	PaintStyleStroke
	PaintStyleFillAndStroke
)

func (s PaintStyle) String() string {
	switch s {
	case PaintStyleFill:
		return "fill"
	case PaintStyleStroke:
		return "stroke"
	case PaintStyleFillAndStroke:
		return "fill_and_stroke"
	default:
		return fmt.Sprintf("PaintStyle(%d)", int(s))
	}
}

// StrokeCap describes how stroke endpoints are drawn.
type StrokeCap int

const (
	CapButt StrokeCap = iota
	CapRound
	CapSquare
)

// StrokeJoin describes how stroke corners are drawn.
type StrokeJoin int

const (
	JoinMiter StrokeJoin = iota
	JoinRound
	JoinBevel
)

// BlendMode controls how source and destination colors are composited.
type BlendMode int

const (
	BlendModeClear BlendMode = iota
	BlendModeSrc
	BlendModeSrcOver
	BlendModeDstOver
	BlendModeSrcIn
	BlendModeMultiply
	BlendModeScreen
)

func (b BlendMode) String() string {
	names := [...]string{"clear", "src", "src_over", "dst_over", "src_in", "multiply", "screen"}
	if int(b) >= 0 && int(b) < len(names) {
		return names[b]
	}
	return fmt.Sprintf("BlendMode(%d)", int(b))
}

// Paint describes how to draw a shape on the canvas.
//
// A zero-value Paint draws nothing (BlendModeClear with Alpha 0). Unlike the
// backend-facing paint struct this is abstracted from, Paint here carries no
// gradient/shader/image-filter fields: those are GPU backend specifics and
// out of scope for the core pipeline, which only ever records an opaque
// drawing operation for later replay.
type Paint struct {
	Color       Color
	Style       PaintStyle
	StrokeWidth float32
	StrokeCap   StrokeCap
	StrokeJoin  StrokeJoin
	BlendMode   BlendMode
	Alpha       float64
}

// DefaultPaint returns a basic opaque fill paint.
func DefaultPaint(color Color) Paint {
	return Paint{Color: color, Style: PaintStyleFill, BlendMode: BlendModeSrcOver, Alpha: 1.0}
}

// PathOp represents a path drawing operation type.
type PathOp int

const (
	PathOpMoveTo PathOp = iota
	PathOpLineTo
	PathOpQuadTo
	PathOpCubicTo
	PathOpClose
)

// PathFillRule determines how path interiors are calculated for filling.
type PathFillRule int

const (
	FillRuleNonZero PathFillRule = iota
	FillRuleEvenOdd
)

// PathCommand represents a single path operation with its coordinate arguments.
type PathCommand struct {
	Op   PathOp
	Args []float32
}

// Path represents a vector path for drawing or clipping arbitrary shapes.
type Path struct {
	Commands []PathCommand
	FillRule PathFillRule
}

// NewPath creates a new empty path with nonzero fill rule.
func NewPath() *Path {
	return &Path{FillRule: FillRuleNonZero}
}

func (p *Path) MoveTo(x, y float32) {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpMoveTo, Args: []float32{x, y}})
}

func (p *Path) LineTo(x, y float32) {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpLineTo, Args: []float32{x, y}})
}

func (p *Path) QuadTo(x1, y1, x2, y2 float32) {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpQuadTo, Args: []float32{x1, y1, x2, y2}})
}

func (p *Path) CubicTo(x1, y1, x2, y2, x3, y3 float32) {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpCubicTo, Args: []float32{x1, y1, x2, y2, x3, y3}})
}

func (p *Path) Close() {
	p.Commands = append(p.Commands, PathCommand{Op: PathOpClose})
}

// IsEmpty reports whether the path has no recorded commands.
func (p *Path) IsEmpty() bool {
	return p == nil || len(p.Commands) == 0
}

// BoxShadow defines a shadow to draw behind a shape.
type BoxShadow struct {
	Color      Color
	Offset     Offset
	BlurRadius float32
	Spread     float32
}

// Sigma returns the blur sigma derived from BlurRadius.
func (s BoxShadow) Sigma() float32 {
	if s.BlurRadius <= 0 {
		return 0
	}
	return s.BlurRadius * 0.5
}
