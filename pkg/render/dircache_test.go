package render

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestRayMult(t *testing.T) {
	m := RayMult(mgl32.DegToRad(90), 200, 100)
	if got := m.Y(); math.Abs(float64(got+1)) > 1e-5 {
		t.Errorf("Y mult = %v, want -1 (tan 45, negated for row order)", got)
	}
	if got := m.X(); math.Abs(float64(got-2)) > 1e-5 {
		t.Errorf("X mult = %v, want 2 (aspect * tan 45)", got)
	}
}

func TestDirectionCacheCenterPixel(t *testing.T) {
	// Odd resolution puts a pixel center exactly on the view axis.
	dc := NewDirectionCache()
	dc.Build(101, 101, DefaultFov)

	got := dc.At(50, 50)
	want := mgl32.Vec3{0, 0, -1}
	if got.Sub(want).Len() > 1e-6 {
		t.Errorf("center direction = %v, want %v", got, want)
	}
}

func TestDirectionCacheOrientation(t *testing.T) {
	dc := NewDirectionCache()
	dc.Build(64, 64, DefaultFov)

	// The top-left pixel looks up and to the left in view space.
	topLeft := dc.At(0, 0)
	if topLeft.X() >= 0 || topLeft.Y() <= 0 {
		t.Errorf("top-left direction = %v, want negative X and positive Y", topLeft)
	}
	bottomRight := dc.At(63, 63)
	if bottomRight.X() <= 0 || bottomRight.Y() >= 0 {
		t.Errorf("bottom-right direction = %v, want positive X and negative Y", bottomRight)
	}
}

func TestDirectionCacheUnitLength(t *testing.T) {
	// Dimensions deliberately not a multiple of the dispatch block size:
	// the padded blocks must skip out-of-range pixels, and every in-range
	// pixel must still be written.
	dc := NewDirectionCache()
	dc.Build(13, 9, DefaultFov)

	for y := 0; y < dc.Height(); y++ {
		for x := 0; x < dc.Width(); x++ {
			d := dc.At(x, y)
			if math.Abs(float64(d.Len()-1)) > 1e-5 {
				t.Fatalf("direction at (%d, %d) = %v, len %v, want unit", x, y, d, d.Len())
			}
		}
	}
}

func TestDirectionCacheEnsure(t *testing.T) {
	dc := NewDirectionCache()
	dc.Ensure(32, 32, DefaultFov)
	before := dc.At(0, 0)

	// Same parameters: directions must be unchanged.
	dc.Ensure(32, 32, DefaultFov)
	if got := dc.At(0, 0); got != before {
		t.Errorf("Ensure with unchanged params altered directions: %v -> %v", before, got)
	}

	// A different field of view must rebuild.
	dc.Ensure(32, 32, mgl32.DegToRad(30))
	if got := dc.At(0, 0); got == before {
		t.Error("Ensure with a new fov did not rebuild the cache")
	}

	dc.Ensure(16, 16, mgl32.DegToRad(30))
	if dc.Width() != 16 || dc.Height() != 16 {
		t.Errorf("Ensure with a new size kept %dx%d", dc.Width(), dc.Height())
	}
}
