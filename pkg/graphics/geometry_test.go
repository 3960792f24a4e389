package graphics

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestOffsetArithmetic(t *testing.T) {
	a := Offset{X: 3, Y: 4}
	b := Offset{X: 1, Y: 2}
	if got := a.Add(b); got != (Offset{X: 4, Y: 6}) {
		t.Errorf("Add = %v", got)
	}
	if got := a.Sub(b); got != (Offset{X: 2, Y: 2}) {
		t.Errorf("Sub = %v", got)
	}
	if got := a.Scale(2); got != (Offset{X: 6, Y: 8}) {
		t.Errorf("Scale = %v", got)
	}
	if got := a.Distance(ZeroOffset); got != 5 {
		t.Errorf("Distance = %v, want 5", got)
	}
}

func TestRectOperations(t *testing.T) {
	r := RectFromLTWH(10, 20, 30, 40)
	if r.Width() != 30 || r.Height() != 40 {
		t.Fatalf("dims = %v x %v", r.Width(), r.Height())
	}
	if got := r.Center(); got != (Offset{X: 25, Y: 40}) {
		t.Errorf("Center = %v", got)
	}
	if !r.Contains(Offset{X: 10, Y: 20}) {
		t.Error("top-left corner not contained")
	}
	if r.Contains(Offset{X: 40, Y: 20}) {
		t.Error("right edge contained (should be exclusive)")
	}

	other := RectFromLTWH(25, 30, 30, 40)
	want := Rect{Left: 25, Top: 30, Right: 40, Bottom: 60}
	if diff := cmp.Diff(want, r.Intersect(other)); diff != "" {
		t.Errorf("Intersect mismatch (-want +got):\n%s", diff)
	}
	union := Rect{Left: 10, Top: 20, Right: 55, Bottom: 70}
	if diff := cmp.Diff(union, r.Union(other)); diff != "" {
		t.Errorf("Union mismatch (-want +got):\n%s", diff)
	}
	if !RectFromLTWH(0, 0, 10, 10).Intersect(RectFromLTWH(20, 20, 5, 5)).IsEmpty() {
		t.Error("disjoint intersect not empty")
	}
}

func TestEdgeInsets(t *testing.T) {
	insets := EdgeInsetsSymmetric(10, 5)
	if insets.Horizontal() != 20 || insets.Vertical() != 10 {
		t.Fatalf("sums = %v, %v", insets.Horizontal(), insets.Vertical())
	}
	size := Size{Width: 100, Height: 50}
	if got := insets.DeflateSize(size); got != (Size{Width: 80, Height: 40}) {
		t.Errorf("DeflateSize = %v", got)
	}
	if got := insets.InflateSize(size); got != (Size{Width: 120, Height: 60}) {
		t.Errorf("InflateSize = %v", got)
	}
	if got := EdgeInsetsAll(100).DeflateSize(size); got != ZeroSize {
		t.Errorf("over-deflate = %v, want zero", got)
	}
}

func TestAxisHelpers(t *testing.T) {
	size := Size{Width: 30, Height: 70}
	if Horizontal.MainComponent(size) != 30 || Horizontal.CrossComponent(size) != 70 {
		t.Error("horizontal components wrong")
	}
	if Vertical.MainComponent(size) != 70 || Vertical.CrossComponent(size) != 30 {
		t.Error("vertical components wrong")
	}
	if Vertical.MakeSize(70, 30) != size {
		t.Error("MakeSize does not round-trip")
	}
	if Horizontal.Opposite() != Vertical {
		t.Error("Opposite wrong")
	}
}

func TestAxisDirection(t *testing.T) {
	if TopToBottom.Axis() != Vertical || RightToLeft.Axis() != Horizontal {
		t.Error("direction axes wrong")
	}
	if !BottomToTop.IsReversed() || LeftToRight.IsReversed() {
		t.Error("reversed flags wrong")
	}
	if AxisDirectionFrom(Vertical, true) != BottomToTop {
		t.Error("AxisDirectionFrom wrong")
	}
}

func TestMatrix4(t *testing.T) {
	translate := Translation4(10, 20, 0)
	scale := Scale4(2, 2, 1)

	p := Offset{X: 5, Y: 5}
	if got := translate.TransformOffset(p); got != (Offset{X: 15, Y: 25}) {
		t.Errorf("translate transform = %v", got)
	}
	// translate * scale applies the scale first.
	combined := translate.Multiply(scale)
	if got := combined.TransformOffset(p); got != (Offset{X: 20, Y: 30}) {
		t.Errorf("combined transform = %v", got)
	}
	if !Identity4().IsIdentity() || combined.IsIdentity() {
		t.Error("identity detection wrong")
	}
}
