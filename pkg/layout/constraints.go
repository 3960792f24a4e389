package layout

import (
	"fmt"

	"github.com/chewxy/math32"

	"github.com/loomui/loom/pkg/graphics"
)

// Infinity is the unbounded constraint extent.
var Infinity = math32.Inf(1)

// Constraints describes the box layout protocol's input: an immutable
// min/max range for each dimension. A render box must return a size for
// which IsSatisfiedBy reports true.
type Constraints struct {
	MinWidth  float32
	MaxWidth  float32
	MinHeight float32
	MaxHeight float32
}

// Tight returns constraints that admit exactly one size.
func Tight(size graphics.Size) Constraints {
	return Constraints{
		MinWidth:  size.Width,
		MaxWidth:  size.Width,
		MinHeight: size.Height,
		MaxHeight: size.Height,
	}
}

// TightFor returns tight constraints for the given dimensions.
func TightFor(width, height float32) Constraints {
	return Tight(graphics.Size{Width: width, Height: height})
}

// Loose returns constraints with zero minimums and the given size as maximums.
func Loose(size graphics.Size) Constraints {
	return Constraints{MaxWidth: size.Width, MaxHeight: size.Height}
}

// Expand returns constraints forcing the biggest size the parent allows:
// both dimensions tight at infinity until Enforce'd down by an ancestor.
func Expand() Constraints {
	return Constraints{
		MinWidth:  Infinity,
		MaxWidth:  Infinity,
		MinHeight: Infinity,
		MaxHeight: Infinity,
	}
}

// Unconstrained returns constraints admitting any size.
func Unconstrained() Constraints {
	return Constraints{MaxWidth: Infinity, MaxHeight: Infinity}
}

// ConstrainWidth clamps width into [MinWidth, MaxWidth].
func (c Constraints) ConstrainWidth(width float32) float32 {
	return math32.Max(c.MinWidth, math32.Min(width, c.MaxWidth))
}

// ConstrainHeight clamps height into [MinHeight, MaxHeight].
func (c Constraints) ConstrainHeight(height float32) float32 {
	return math32.Max(c.MinHeight, math32.Min(height, c.MaxHeight))
}

// Constrain clamps size into the constraint ranges.
func (c Constraints) Constrain(size graphics.Size) graphics.Size {
	return graphics.Size{
		Width:  c.ConstrainWidth(size.Width),
		Height: c.ConstrainHeight(size.Height),
	}
}

// IsSatisfiedBy reports whether size lies inside both ranges.
func (c Constraints) IsSatisfiedBy(size graphics.Size) bool {
	return size.Width >= c.MinWidth && size.Width <= c.MaxWidth &&
		size.Height >= c.MinHeight && size.Height <= c.MaxHeight
}

// IsTight reports whether the constraints admit exactly one size.
func (c Constraints) IsTight() bool {
	return c.MinWidth >= c.MaxWidth && c.MinHeight >= c.MaxHeight
}

// HasBoundedWidth reports whether MaxWidth is finite.
func (c Constraints) HasBoundedWidth() bool {
	return !math32.IsInf(c.MaxWidth, 1)
}

// HasBoundedHeight reports whether MaxHeight is finite.
func (c Constraints) HasBoundedHeight() bool {
	return !math32.IsInf(c.MaxHeight, 1)
}

// Biggest returns the largest admissible size. A dimension with an
// infinite maximum stays infinite, for Expand and for merely unbounded
// ranges alike.
func (c Constraints) Biggest() graphics.Size {
	return graphics.Size{
		Width:  c.ConstrainWidth(Infinity),
		Height: c.ConstrainHeight(Infinity),
	}
}

// Smallest returns the smallest admissible size.
func (c Constraints) Smallest() graphics.Size {
	return graphics.Size{Width: c.ConstrainWidth(0), Height: c.ConstrainHeight(0)}
}

// Loosen drops the minimums while keeping the maximums.
func (c Constraints) Loosen() Constraints {
	return Constraints{MaxWidth: c.MaxWidth, MaxHeight: c.MaxHeight}
}

// Enforce clamps this constraint's ranges to lie within other's ranges.
func (c Constraints) Enforce(other Constraints) Constraints {
	return Constraints{
		MinWidth:  clampRange(c.MinWidth, other.MinWidth, other.MaxWidth),
		MaxWidth:  clampRange(c.MaxWidth, other.MinWidth, other.MaxWidth),
		MinHeight: clampRange(c.MinHeight, other.MinHeight, other.MaxHeight),
		MaxHeight: clampRange(c.MaxHeight, other.MinHeight, other.MaxHeight),
	}
}

// Deflate shrinks the constraints by the given insets, e.g. to derive the
// child constraints of a padding box. Minimums never drop below zero and
// maximums never drop below the (deflated) minimums.
func (c Constraints) Deflate(insets graphics.EdgeInsets) Constraints {
	horizontal := insets.Horizontal()
	vertical := insets.Vertical()
	minWidth := math32.Max(0, c.MinWidth-horizontal)
	minHeight := math32.Max(0, c.MinHeight-vertical)
	return Constraints{
		MinWidth:  minWidth,
		MaxWidth:  math32.Max(minWidth, c.MaxWidth-horizontal),
		MinHeight: minHeight,
		MaxHeight: math32.Max(minHeight, c.MaxHeight-vertical),
	}
}

// IsNormalized reports whether each minimum is non-negative, finite-or-inf,
// not NaN, and no greater than its maximum.
func (c Constraints) IsNormalized() bool {
	for _, v := range [...]float32{c.MinWidth, c.MaxWidth, c.MinHeight, c.MaxHeight} {
		if math32.IsNaN(v) || v < 0 {
			return false
		}
	}
	return c.MinWidth <= c.MaxWidth && c.MinHeight <= c.MaxHeight
}

func (c Constraints) String() string {
	return fmt.Sprintf("Constraints(w: %s, h: %s)",
		rangeString(c.MinWidth, c.MaxWidth),
		rangeString(c.MinHeight, c.MaxHeight))
}

func rangeString(min, max float32) string {
	if min >= max {
		return fmt.Sprintf("=%.1f", max)
	}
	return fmt.Sprintf("%.1f..%.1f", min, max)
}

func clampRange(v, lo, hi float32) float32 {
	return math32.Max(lo, math32.Min(v, hi))
}
