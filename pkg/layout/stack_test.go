package layout

import (
	"testing"

	"github.com/loomui/loom/pkg/graphics"
)

func float32p(v float32) *float32 { return &v }

func TestStackSizesToLargestUnpositionedChild(t *testing.T) {
	small := NewRenderColoredBoxSized(graphics.ColorRed, graphics.Size{Width: 20, Height: 20})
	large := NewRenderColoredBoxSized(graphics.ColorBlue, graphics.Size{Width: 60, Height: 40})
	stack := NewRenderStack()
	stack.SetChildren([]RenderObject{small, large})
	owner, root := newTestTree(Loose(graphics.Size{Width: 100, Height: 100}), stack)
	pumpLayout(owner, root)

	if want := (graphics.Size{Width: 60, Height: 40}); stack.Size() != want {
		t.Fatalf("stack size = %v, want %v", stack.Size(), want)
	}
}

func TestStackAlignsUnpositionedChildren(t *testing.T) {
	child := NewRenderColoredBoxSized(graphics.ColorRed, graphics.Size{Width: 20, Height: 20})
	stack := NewRenderStack()
	stack.SetChildren([]RenderObject{child})
	stack.SetAlignment(AlignCenter)
	stack.SetFit(StackFitLoose)
	owner, root := newTestTree(TightFor(100, 100), stack)
	pumpLayout(owner, root)

	if want := (graphics.Offset{X: 40, Y: 40}); parentDataOffset(child) != want {
		t.Fatalf("centered child offset = %v, want %v", parentDataOffset(child), want)
	}
}

func TestStackPositionedChild(t *testing.T) {
	child := NewRenderColoredBox(graphics.ColorRed)
	stack := NewRenderStack()
	stack.SetChildren([]RenderObject{child})
	data := child.ParentData().(*StackParentData)
	data.Left = float32p(10)
	data.Top = float32p(5)
	data.Width = float32p(30)
	data.Height = float32p(20)
	owner, root := newTestTree(TightFor(100, 100), stack)
	pumpLayout(owner, root)

	if want := (graphics.Size{Width: 30, Height: 20}); child.Size() != want {
		t.Fatalf("positioned child size = %v, want %v", child.Size(), want)
	}
	if want := (graphics.Offset{X: 10, Y: 5}); parentDataOffset(child) != want {
		t.Fatalf("positioned child offset = %v, want %v", parentDataOffset(child), want)
	}
}

func TestStackPositionedChildStretchedBetweenInsets(t *testing.T) {
	child := NewRenderColoredBox(graphics.ColorRed)
	stack := NewRenderStack()
	stack.SetChildren([]RenderObject{child})
	data := child.ParentData().(*StackParentData)
	data.Left = float32p(10)
	data.Right = float32p(10)
	data.Top = float32p(20)
	data.Bottom = float32p(20)
	owner, root := newTestTree(TightFor(100, 100), stack)
	pumpLayout(owner, root)

	if want := (graphics.Size{Width: 80, Height: 60}); child.Size() != want {
		t.Fatalf("stretched child size = %v, want %v", child.Size(), want)
	}
}

func TestStackFitExpandTightensChildren(t *testing.T) {
	child := NewRenderColoredBoxSized(graphics.ColorRed, graphics.Size{Width: 20, Height: 20})
	stack := NewRenderStack()
	stack.SetChildren([]RenderObject{child})
	stack.SetFit(StackFitExpand)
	owner, root := newTestTree(TightFor(100, 100), stack)
	pumpLayout(owner, root)

	if want := (graphics.Size{Width: 100, Height: 100}); child.Size() != want {
		t.Fatalf("expanded child size = %v, want %v", child.Size(), want)
	}
}
