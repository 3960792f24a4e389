package graphics

import "testing"

func TestLayerBuilderBalancedTree(t *testing.T) {
	b := NewLayerBuilder()
	b.PushOffset(Offset{X: 5, Y: 5})
	b.AddLayer(&PictureLayer{Picture: &DisplayList{}})
	b.PushOpacity(0.5)
	b.AddLayer(&PictureLayer{Picture: &DisplayList{}})
	b.Pop()
	b.Pop()
	root := b.Build()

	if len(root.Children) != 1 {
		t.Fatalf("root children = %d, want 1", len(root.Children))
	}
	offset, ok := root.Children[0].(*OffsetLayer)
	if !ok {
		t.Fatalf("first child = %T, want OffsetLayer", root.Children[0])
	}
	if len(offset.Children) != 2 {
		t.Fatalf("offset children = %d, want picture + opacity", len(offset.Children))
	}
	if _, ok := offset.Children[1].(*OpacityLayer); !ok {
		t.Fatalf("second child = %T, want OpacityLayer", offset.Children[1])
	}
}

func TestLayerBuilderUnbalancedPopPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Pop on an empty stack did not panic")
		}
	}()
	NewLayerBuilder().Pop()
}

func TestLayerBuilderUnmatchedPushPanicsAtBuild(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("Build with an open push did not panic")
		}
	}()
	b := NewLayerBuilder()
	b.PushClipRect(RectFromLTWH(0, 0, 1, 1))
	b.Build()
}

func TestSceneReplaysLayers(t *testing.T) {
	recorder := &PictureRecorder{}
	canvas := recorder.BeginRecording(Size{Width: 10, Height: 10})
	canvas.DrawRect(RectFromLTWH(0, 0, 10, 10), DefaultPaint(ColorRed))
	picture := recorder.EndRecording()

	b := NewLayerBuilder()
	b.PushOffset(Offset{X: 1, Y: 2})
	b.AddLayer(&PictureLayer{Picture: picture})
	b.Pop()
	scene := NewScene(Size{Width: 10, Height: 10}, b.Build(), 7)

	replay := &PictureRecorder{}
	target := replay.BeginRecording(Size{Width: 10, Height: 10})
	scene.Paint(target)
	ops := replay.EndRecording()

	// Save, Translate, DrawRect, Restore.
	if len(ops.ops) != 4 {
		t.Fatalf("replayed ops = %d, want 4", len(ops.ops))
	}
	if scene.FrameNumber != 7 {
		t.Fatalf("frame number = %d, want 7", scene.FrameNumber)
	}
}

func TestColorLerpEndpoints(t *testing.T) {
	near := func(a, b Color) bool {
		diff := func(x, y uint8) int {
			d := int(x) - int(y)
			if d < 0 {
				d = -d
			}
			return d
		}
		// The Lab round-trip may wobble a channel by one step.
		return diff(uint8(a>>16), uint8(b>>16)) <= 1 &&
			diff(uint8(a>>8), uint8(b>>8)) <= 1 &&
			diff(uint8(a), uint8(b)) <= 1 &&
			uint8(a>>24) == uint8(b>>24)
	}
	if got := ColorRed.Lerp(ColorBlue, 0); !near(got, ColorRed) {
		t.Errorf("Lerp(0) = %08x, want ~red", uint32(got))
	}
	if got := ColorRed.Lerp(ColorBlue, 1); !near(got, ColorBlue) {
		t.Errorf("Lerp(1) = %08x, want ~blue", uint32(got))
	}
}

func TestColorFilterApply(t *testing.T) {
	f := ColorFilter{Color: ColorWhite, Mode: BlendModeSrc}
	if got := f.Apply(ColorBlack); got != ColorWhite {
		t.Fatalf("src mode apply = %08x, want white", uint32(got))
	}
}
