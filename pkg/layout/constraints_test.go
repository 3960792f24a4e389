package layout

import (
	"testing"

	"github.com/loomui/loom/pkg/graphics"
)

func TestTightConstrainIgnoresRequestedSize(t *testing.T) {
	c := Tight(graphics.ZeroSize)
	got := c.Constrain(graphics.Size{Width: 100, Height: 100})
	if got != graphics.ZeroSize {
		t.Fatalf("Constrain = %v, want zero size", got)
	}
}

func TestExpandBiggestStaysInfinite(t *testing.T) {
	big := Expand().Biggest()
	if big.IsFinite() {
		t.Fatalf("Expand().Biggest() = %v, want infinite", big)
	}
	// For a merely unbounded range the biggest dimension clamps to the
	// minimum of infinity, i.e. infinity again; a bounded max wins.
	c := Constraints{MinWidth: 10, MaxWidth: 50, MaxHeight: Infinity}
	big = c.Biggest()
	if big.Width != 50 {
		t.Errorf("bounded width Biggest = %v, want 50", big.Width)
	}
}

func TestLooseAndLoosen(t *testing.T) {
	size := graphics.Size{Width: 200, Height: 100}
	loose := Loose(size)
	if loose.MinWidth != 0 || loose.MaxWidth != 200 || loose.MinHeight != 0 || loose.MaxHeight != 100 {
		t.Fatalf("Loose = %v", loose)
	}
	tight := Tight(size)
	if tight.Loosen() != loose {
		t.Fatalf("Tight.Loosen = %v, want %v", tight.Loosen(), loose)
	}
}

func TestIsSatisfiedBy(t *testing.T) {
	c := Constraints{MinWidth: 10, MaxWidth: 20, MinHeight: 10, MaxHeight: 20}
	cases := []struct {
		size graphics.Size
		want bool
	}{
		{graphics.Size{Width: 10, Height: 10}, true},
		{graphics.Size{Width: 20, Height: 20}, true},
		{graphics.Size{Width: 15, Height: 15}, true},
		{graphics.Size{Width: 9, Height: 15}, false},
		{graphics.Size{Width: 15, Height: 21}, false},
	}
	for _, tc := range cases {
		if got := c.IsSatisfiedBy(tc.size); got != tc.want {
			t.Errorf("IsSatisfiedBy(%v) = %v, want %v", tc.size, got, tc.want)
		}
	}
}

func TestDeflateNeverNegative(t *testing.T) {
	c := Loose(graphics.Size{Width: 15, Height: 15})
	deflated := c.Deflate(graphics.EdgeInsetsAll(10))
	if deflated.MaxWidth != 0 || deflated.MaxHeight != 0 {
		t.Fatalf("Deflate past zero = %v, want clamped to 0", deflated)
	}
	if !deflated.IsNormalized() {
		t.Fatal("deflated constraints not normalized")
	}
}

func TestDeflateDerivesChildConstraints(t *testing.T) {
	c := Loose(graphics.Size{Width: 200, Height: 100})
	got := c.Deflate(graphics.EdgeInsetsAll(10))
	want := Loose(graphics.Size{Width: 180, Height: 80})
	if got != want {
		t.Fatalf("Deflate = %v, want %v", got, want)
	}
}

func TestEnforce(t *testing.T) {
	inner := TightFor(300, 300)
	outer := Loose(graphics.Size{Width: 100, Height: 100})
	got := inner.Enforce(outer)
	if got.MaxWidth != 100 || got.MinWidth != 100 {
		t.Fatalf("Enforce = %v, want width pinned to 100", got)
	}
}

func TestIsNormalizedRejectsNaN(t *testing.T) {
	bad := Constraints{MinWidth: float32(nan())}
	if bad.IsNormalized() {
		t.Fatal("NaN constraints reported normalized")
	}
	if (Constraints{MinWidth: 10, MaxWidth: 5}).IsNormalized() {
		t.Fatal("inverted range reported normalized")
	}
}

func nan() float32 {
	zero := float32(0)
	return zero / zero
}
