package layout

import (
	"testing"

	"github.com/loomui/loom/pkg/graphics"
)

func TestRowOfThreeExpandedChildren(t *testing.T) {
	children := []RenderObject{
		NewRenderColoredBox(graphics.ColorRed),
		NewRenderColoredBox(graphics.ColorGreen),
		NewRenderColoredBox(graphics.ColorBlue),
	}
	row := NewRenderFlex(graphics.Horizontal)
	row.SetChildren(children)
	for _, child := range children {
		SetFlex(child, 1, FitTight)
	}
	owner, root := newTestTree(TightFor(300, 50), row)
	pumpLayout(owner, root)

	wantOffsets := []graphics.Offset{{X: 0, Y: 0}, {X: 100, Y: 0}, {X: 200, Y: 0}}
	for i, child := range children {
		if want := TightFor(100, 50); child.Constraints() != want {
			t.Errorf("child %d constraints = %v, want %v", i, child.Constraints(), want)
		}
		if want := (graphics.Size{Width: 100, Height: 50}); child.Size() != want {
			t.Errorf("child %d size = %v, want %v", i, child.Size(), want)
		}
		if got := parentDataOffset(child); got != wantOffsets[i] {
			t.Errorf("child %d offset = %v, want %v", i, got, wantOffsets[i])
		}
	}
	if want := (graphics.Size{Width: 300, Height: 50}); row.Size() != want {
		t.Fatalf("row size = %v, want %v", row.Size(), want)
	}
}

func TestFlexMixedInflexibleAndFlexible(t *testing.T) {
	fixed := NewRenderColoredBoxSized(graphics.ColorRed, graphics.Size{Width: 60, Height: 20})
	flexible := NewRenderColoredBox(graphics.ColorGreen)
	row := NewRenderFlex(graphics.Horizontal)
	row.SetChildren([]RenderObject{fixed, flexible})
	SetFlex(flexible, 1, FitTight)

	owner, root := newTestTree(TightFor(200, 40), row)
	pumpLayout(owner, root)

	if want := (graphics.Size{Width: 60, Height: 20}); fixed.Size() != want {
		t.Fatalf("fixed child size = %v, want %v", fixed.Size(), want)
	}
	if want := float32(140); flexible.Size().Width != want {
		t.Fatalf("flexible child width = %v, want %v", flexible.Size().Width, want)
	}
	if got := parentDataOffset(flexible); got.X != 60 {
		t.Fatalf("flexible child offset = %v, want x=60", got)
	}
}

func TestFlexMainAxisAlignments(t *testing.T) {
	makeRow := func(alignment MainAxisAlignment) (*RenderFlex, []RenderObject) {
		children := []RenderObject{
			NewRenderColoredBoxSized(graphics.ColorRed, graphics.Size{Width: 20, Height: 10}),
			NewRenderColoredBoxSized(graphics.ColorBlue, graphics.Size{Width: 20, Height: 10}),
		}
		row := NewRenderFlex(graphics.Horizontal)
		row.SetChildren(children)
		row.SetMainAxisAlignment(alignment)
		owner, root := newTestTree(TightFor(100, 10), row)
		pumpLayout(owner, root)
		return row, children
	}

	cases := []struct {
		alignment MainAxisAlignment
		want      []float32
	}{
		{MainAxisStart, []float32{0, 20}},
		{MainAxisEnd, []float32{60, 80}},
		{MainAxisCenter, []float32{30, 50}},
		{MainAxisSpaceBetween, []float32{0, 80}},
		{MainAxisSpaceAround, []float32{15, 65}},
		{MainAxisSpaceEvenly, []float32{20, 60}},
	}
	for _, tc := range cases {
		_, children := makeRow(tc.alignment)
		for i, child := range children {
			if got := parentDataOffset(child).X; got != tc.want[i] {
				t.Errorf("alignment %v child %d x = %v, want %v", tc.alignment, i, got, tc.want[i])
			}
		}
	}
}

func TestFlexCrossAxisAlignments(t *testing.T) {
	child := NewRenderColoredBoxSized(graphics.ColorRed, graphics.Size{Width: 20, Height: 10})
	row := NewRenderFlex(graphics.Horizontal)
	row.SetChildren([]RenderObject{child})
	row.SetCrossAxisAlignment(CrossAxisCenter)
	owner, root := newTestTree(TightFor(100, 30), row)
	pumpLayout(owner, root)

	if got := parentDataOffset(child).Y; got != 10 {
		t.Fatalf("centered child y = %v, want 10", got)
	}

	row.SetCrossAxisAlignment(CrossAxisStretch)
	pumpLayout(owner, root)
	if got := child.Size().Height; got != 30 {
		t.Fatalf("stretched child height = %v, want 30", got)
	}
	_ = root
}

func TestColumnLaysOutVertically(t *testing.T) {
	children := []RenderObject{
		NewRenderColoredBoxSized(graphics.ColorRed, graphics.Size{Width: 10, Height: 30}),
		NewRenderColoredBoxSized(graphics.ColorBlue, graphics.Size{Width: 10, Height: 30}),
	}
	column := NewRenderFlex(graphics.Vertical)
	column.SetChildren(children)
	owner, root := newTestTree(TightFor(50, 100), column)
	pumpLayout(owner, root)

	if got := parentDataOffset(children[1]); got.Y != 30 || got.X != 0 {
		t.Fatalf("second child offset = %v, want (0,30)", got)
	}
}
