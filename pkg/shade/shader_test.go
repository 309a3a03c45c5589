package shade

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velvetvoxel/voxelcast/pkg/vmath"
	"github.com/velvetvoxel/voxelcast/pkg/voxel"
)

// testLighting is a white overhead sun over a flat white ambient, chosen
// so expected colors are simple products.
func testLighting() Lighting {
	return Lighting{
		Directional: DirectionalLight{
			Direction:        mgl32.Vec3{0, -1, 0},
			Color:            mgl32.Vec3{1, 1, 1},
			Intensity:        1,
			EveningIntensity: 1,
			Shadow:           0.25,
			Enabled:          true,
		},
		Ambient: AmbientLight{
			Color:     mgl32.Vec3{1, 1, 1},
			Intensity: 0.2,
			Enabled:   true,
		},
	}
}

func assertVec3InDelta(t *testing.T, want, got mgl32.Vec3, delta float64) {
	t.Helper()
	assert.InDelta(t, want.X(), got.X(), delta)
	assert.InDelta(t, want.Y(), got.Y(), delta)
	assert.InDelta(t, want.Z(), got.Z(), delta)
}

func TestDetectEdge(t *testing.T) {
	margin := float32(1.0 / 32.0)
	tests := []struct {
		u, v float32
		want bool
	}{
		{0.5, 0.5, false},
		{0.01, 0.5, true},
		{0.5, 0.01, true},
		{0.99, 0.5, true},
		{0.5, 0.99, true},
		{0.04, 0.04, false}, // just inside the margin on both axes
		{0.01, 0.99, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectEdge(tt.u, tt.v, margin), "DetectEdge(%v, %v)", tt.u, tt.v)
	}
}

func TestShadeOpaqueMiss(t *testing.T) {
	s := NewShader(voxel.NewChunk(), NewFaceMaterial(), testLighting(), DefaultOptions())
	ray := vmath.NewRay(mgl32.Vec3{32, 32, -10}, mgl32.Vec3{0, 0, 1})

	got := s.Shade(ray, 0, 1000)
	assert.Equal(t, mgl32.Vec4{}, got, "a miss is fully transparent black")
}

func TestShadeLitAndShadowed(t *testing.T) {
	// A stone floor with a single block floating above one column. Under a
	// straight-down sun the column under the block is shadowed and reads
	// pure ambient; everywhere else reads the full direct light.
	chunk := voxel.NewChunk()
	chunk.Fill(voxel.Coord{X: 0, Y: 0, Z: 0}, voxel.Coord{X: 63, Y: 10, Z: 63}, 1)
	chunk.Set(32, 20, 32, 1)

	s := NewShader(chunk, NewFaceMaterial(), testLighting(), DefaultOptions())
	base := NewFaceMaterial().ColorFor(vmath.PosY, voxel.Coord{X: 32, Y: 10, Z: 32}, 1)

	shadowed := s.Shade(vmath.NewRay(mgl32.Vec3{32.5, 18, 32.5}, mgl32.Vec3{0, -1, 0}), 0, 1000)
	assertVec3InDelta(t, base.Mul(0.2), shadowed.Vec3(), 1e-4)
	assert.Equal(t, float32(1), shadowed.W())

	// Two cells over, same floor, same parity, no blocker overhead.
	lit := s.Shade(vmath.NewRay(mgl32.Vec3{34.5, 18, 34.5}, mgl32.Vec3{0, -1, 0}), 0, 1000)
	litBase := NewFaceMaterial().ColorFor(vmath.PosY, voxel.Coord{X: 34, Y: 10, Z: 34}, 1)
	assertVec3InDelta(t, litBase, lit.Vec3(), 1e-4)
}

func TestShadeEdgeDarkening(t *testing.T) {
	chunk := voxel.NewChunk()
	chunk.Fill(voxel.Coord{X: 0, Y: 0, Z: 0}, voxel.Coord{X: 63, Y: 10, Z: 63}, 1)

	opts := DefaultOptions()
	s := NewShader(chunk, NewFaceMaterial(), testLighting(), opts)

	// Both rays hit the same lit cell top; one lands in the face center,
	// the other within EdgeMargin of the cell border.
	center := s.Shade(vmath.NewRay(mgl32.Vec3{32.5, 18, 32.5}, mgl32.Vec3{0, -1, 0}), 0, 1000)
	edge := s.Shade(vmath.NewRay(mgl32.Vec3{32.01, 18, 32.5}, mgl32.Vec3{0, -1, 0}), 0, 1000)

	// Distance 7 is well inside EdgeNear, so the full darkening applies.
	assertVec3InDelta(t, center.Vec3().Mul(opts.EdgeDarkening), edge.Vec3(), 1e-4)
}

func TestShadeDirectionalDisabled(t *testing.T) {
	chunk := voxel.NewChunk()
	chunk.Fill(voxel.Coord{X: 0, Y: 0, Z: 0}, voxel.Coord{X: 63, Y: 10, Z: 63}, 1)

	lighting := testLighting()
	lighting.Directional.Enabled = false
	s := NewShader(chunk, NewFaceMaterial(), lighting, DefaultOptions())

	got := s.Shade(vmath.NewRay(mgl32.Vec3{32.5, 18, 32.5}, mgl32.Vec3{0, -1, 0}), 0, 1000)
	base := NewFaceMaterial().ColorFor(vmath.PosY, voxel.Coord{X: 32, Y: 10, Z: 32}, 1)
	assertVec3InDelta(t, base.Mul(0.2), got.Vec3(), 1e-4)
}

func TestShadeTranslucentOpenSky(t *testing.T) {
	// A submerged camera looking straight up: one translucent surface with
	// nothing behind it, so the alpha carries the blend weight.
	chunk := voxel.NewChunk()
	chunk.Fill(voxel.Coord{X: 0, Y: 0, Z: 0}, voxel.Coord{X: 63, Y: 15, Z: 63}, 4)

	opts := DefaultOptions()
	s := NewShader(chunk, NewFaceMaterial(), testLighting(), opts)

	got := s.Shade(vmath.NewRay(mgl32.Vec3{32.5, 8, 32.5}, mgl32.Vec3{0, 1, 0}), 0, 1000)
	require.Equal(t, opts.TranslucentBlend, got.W(), "open-sky translucency keeps the blend weight as alpha")
	assert.NotEqual(t, mgl32.Vec3{}, got.Vec3())
}

func TestShadeTranslucentBlendsWithBackdrop(t *testing.T) {
	chunk := voxel.NewChunk()
	chunk.Fill(voxel.Coord{X: 0, Y: 0, Z: 0}, voxel.Coord{X: 63, Y: 15, Z: 63}, 4)

	opts := DefaultOptions()
	s := NewShader(chunk, NewFaceMaterial(), testLighting(), opts)
	ray := vmath.NewRay(mgl32.Vec3{32.5, 8, 32.5}, mgl32.Vec3{0, 1, 0})
	surfaceOnly := s.Shade(ray, 0, 1000)

	// Add a stone ceiling behind the water surface; the result turns
	// opaque and shifts toward the surface color by the blend weight.
	chunk.Fill(voxel.Coord{X: 0, Y: 30, Z: 0}, voxel.Coord{X: 63, Y: 31, Z: 63}, 1)
	blended := s.Shade(ray, 0, 1000)

	require.Equal(t, float32(1), blended.W())
	assert.NotEqual(t, surfaceOnly.Vec3(), blended.Vec3())

	// The surface contribution still dominates at the default weight.
	for i := 0; i < 3; i++ {
		assert.InDelta(t, surfaceOnly.Vec3()[i], blended.Vec3()[i], float64(1-opts.TranslucentBlend)+0.05)
	}
}

func TestShadeTranslucentNoExit(t *testing.T) {
	// The medium fills the whole chunk: the ray never reaches air, so the
	// medium shows as its own unlit color.
	chunk := voxel.NewChunk()
	chunk.Fill(voxel.Coord{X: 0, Y: 0, Z: 0}, voxel.Coord{X: 63, Y: 63, Z: 63}, 4)

	s := NewShader(chunk, NewFaceMaterial(), testLighting(), DefaultOptions())
	got := s.Shade(vmath.NewRay(mgl32.Vec3{32.5, 32.5, 32.5}, mgl32.Vec3{0, 1, 0}), 0, 1000)

	want := NewFaceMaterial().ColorFor(vmath.NoFace, voxel.Coord{X: 32, Y: 32, Z: 32}, 4)
	assert.Equal(t, want.Vec4(1), got)
}
