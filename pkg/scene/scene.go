// Package scene builds the demo voxel volumes and the camera/lighting
// poses that show them off. Every generator is deterministic: the same
// name always produces the same volume.
package scene

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/velvetvoxel/voxelcast/pkg/render"
	"github.com/velvetvoxel/voxelcast/pkg/shade"
	"github.com/velvetvoxel/voxelcast/pkg/voxel"
)

// Block ids used by the demo scenes.
const (
	BlockStone uint32 = 1
	BlockDirt  uint32 = 2
	BlockGrass uint32 = 3
	BlockWater uint32 = 4
)

// Scene bundles a chunk with the camera pose and lighting that frame it.
type Scene struct {
	Name     string
	Chunk    *voxel.Chunk
	Camera   *render.Camera
	Lighting shade.Lighting
}

// Names lists the available scene names.
func Names() []string {
	return []string{"terrain", "pool", "probe"}
}

// ByName returns the named scene, or an error listing the valid names.
func ByName(name string) (*Scene, error) {
	switch name {
	case "terrain":
		return Terrain(), nil
	case "pool":
		return Pool(), nil
	case "probe":
		return Probe(), nil
	default:
		return nil, fmt.Errorf("unknown scene %q (valid: %v)", name, Names())
	}
}

// Terrain is a rolling value-noise heightfield: stone core, dirt mantle,
// grass cap.
func Terrain() *Scene {
	chunk := voxel.NewChunk()
	for z := 0; z < voxel.Size; z++ {
		for x := 0; x < voxel.Size; x++ {
			h := terrainHeight(x, z)
			for y := 0; y <= h; y++ {
				switch {
				case y == h:
					chunk.Set(x, y, z, BlockGrass)
				case y >= h-3:
					chunk.Set(x, y, z, BlockDirt)
				default:
					chunk.Set(x, y, z, BlockStone)
				}
			}
		}
	}

	camera := render.LookAt(mgl32.Vec3{10, 42, -18}, mgl32.Vec3{32, 14, 32})
	return &Scene{
		Name:     "terrain",
		Chunk:    chunk,
		Camera:   camera,
		Lighting: shade.DefaultLighting(),
	}
}

// Pool is the terrain scene with a water-filled basin carved into it and
// the camera submerged, exercising the translucent path.
func Pool() *Scene {
	s := Terrain()
	s.Name = "pool"

	// Carve the basin, then flood it up to the waterline.
	s.Chunk.Fill(voxel.Coord{X: 20, Y: 8, Z: 20}, voxel.Coord{X: 44, Y: 30, Z: 44}, voxel.Air)
	s.Chunk.Fill(voxel.Coord{X: 20, Y: 8, Z: 20}, voxel.Coord{X: 44, Y: 18, Z: 44}, BlockWater)

	s.Camera = render.LookAt(mgl32.Vec3{32, 12.5, 22}, mgl32.Vec3{32, 16, 44})
	return s
}

// Probe is a single block at the chunk center with the camera on the -Z
// axis looking straight at it. Useful for eyeballing face resolution and
// as a known-answer render.
func Probe() *Scene {
	chunk := voxel.NewChunk()
	chunk.Set(32, 32, 32, BlockStone)

	camera := render.NewCamera(mgl32.Vec3{32.5, 32.5, -10})
	camera.LookTo(mgl32.Vec3{0, 0, 1})
	return &Scene{
		Name:     "probe",
		Chunk:    chunk,
		Camera:   camera,
		Lighting: shade.DefaultLighting(),
	}
}

// terrainHeight samples the heightfield for a column: two octaves of
// value noise over a gentle base level.
func terrainHeight(x, z int) int {
	n := noise2(float32(x)/22, float32(z)/22, 1)*10 +
		noise2(float32(x)/7, float32(z)/7, 2)*3
	h := 14 + int(n)
	if h < 1 {
		h = 1
	}
	if h >= voxel.Size {
		h = voxel.Size - 1
	}
	return h
}

// noise2 is hash-based value noise: lattice hashes blended with a
// smoothstep fade. Seam-safe because it samples world coordinates rather
// than walking an RNG.
func noise2(x, y float32, seed uint32) float32 {
	xi, yi := floorInt(x), floorInt(y)
	xf, yf := x-float32(xi), y-float32(yi)

	u := xf * xf * (3 - 2*xf)
	v := yf * yf * (3 - 2*yf)

	c00 := latticeHash(xi, yi, seed)
	c10 := latticeHash(xi+1, yi, seed)
	c01 := latticeHash(xi, yi+1, seed)
	c11 := latticeHash(xi+1, yi+1, seed)

	top := c00 + (c10-c00)*u
	bottom := c01 + (c11-c01)*u
	return top + (bottom-top)*v
}

// latticeHash maps an integer lattice point to [0, 1).
func latticeHash(x, y int, seed uint32) float32 {
	h := uint32(x)*0x85ebca6b ^ uint32(y)*0xc2b2ae35 ^ seed*0x27d4eb2f
	h ^= h >> 15
	h *= 0x2c1b3c6d
	h ^= h >> 12
	h *= 0x297a2d39
	h ^= h >> 15
	return float32(h>>8) / float32(1<<24)
}

func floorInt(v float32) int {
	i := int(v)
	if v < float32(i) {
		i--
	}
	return i
}
