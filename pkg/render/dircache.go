// Package render builds camera rays and dispatches them across the frame:
// the per-pixel direction cache, the camera transform, and the parallel
// per-tile frame renderer.
package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// blockSize mirrors the 8x8 workgroups the precompute dispatch is padded
// to; the builder walks whole blocks and skips pixels past the declared
// resolution.
const blockSize = 8

// RayMult returns the multiplier applied to NDC coordinates to get the
// view-space ray direction for the given vertical field of view (radians)
// and output size. The Y component is negated: pixel rows grow downward,
// view-space Y grows upward.
func RayMult(fovRad float32, width, height int) mgl32.Vec2 {
	aspect := float32(width) / float32(height)
	tanHalf := float32(math.Tan(float64(fovRad) * 0.5))
	return mgl32.Vec2{aspect * tanHalf, -tanHalf}
}

// DirectionCache stores one normalized view-space ray direction per
// output pixel, removing the trig and normalization work from the
// per-frame pass. Rebuilt only when the resolution or field of view
// changes, not every frame.
type DirectionCache struct {
	width, height int
	fov           float32
	dirs          []mgl32.Vec3
}

// NewDirectionCache returns an empty cache; call Build before At.
func NewDirectionCache() *DirectionCache {
	return &DirectionCache{}
}

// Build recomputes every cached direction for the given resolution and
// vertical field of view. Idempotent: the same inputs reproduce the same
// directions.
func (dc *DirectionCache) Build(width, height int, fovRad float32) {
	dc.width = width
	dc.height = height
	dc.fov = fovRad
	dc.dirs = make([]mgl32.Vec3, width*height)

	mult := RayMult(fovRad, width, height)
	blocksX := (width + blockSize - 1) / blockSize
	blocksY := (height + blockSize - 1) / blockSize
	for by := 0; by < blocksY; by++ {
		for bx := 0; bx < blocksX; bx++ {
			for ly := 0; ly < blockSize; ly++ {
				for lx := 0; lx < blockSize; lx++ {
					dc.writePixel(bx*blockSize+lx, by*blockSize+ly, mult)
				}
			}
		}
	}
}

// Ensure rebuilds the cache only if the resolution or field of view
// changed since the last build.
func (dc *DirectionCache) Ensure(width, height int, fovRad float32) {
	if dc.width == width && dc.height == height && dc.fov == fovRad && dc.dirs != nil {
		return
	}
	dc.Build(width, height, fovRad)
}

// writePixel computes and stores one direction. Coordinates past the
// declared resolution are skipped so padded dispatch blocks never overrun
// the buffer.
func (dc *DirectionCache) writePixel(x, y int, mult mgl32.Vec2) {
	if x >= dc.width || y >= dc.height {
		return
	}
	ndcX := (float32(x)+0.5)/float32(dc.width)*2 - 1
	ndcY := (float32(y)+0.5)/float32(dc.height)*2 - 1
	dir := mgl32.Vec3{ndcX * mult.X(), ndcY * mult.Y(), -1}.Normalize()
	dc.dirs[y*dc.width+x] = dir
}

// At returns the cached view-space direction for a pixel.
func (dc *DirectionCache) At(x, y int) mgl32.Vec3 {
	return dc.dirs[y*dc.width+x]
}

// Width returns the cached resolution width.
func (dc *DirectionCache) Width() int { return dc.width }

// Height returns the cached resolution height.
func (dc *DirectionCache) Height() int { return dc.height }
