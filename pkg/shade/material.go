// Package shade turns resolved voxel ray hits into final colors: face
// coloring, checkerboard and edge darkening, directional and ambient
// lighting with shadow rays, and two-bounce translucency compositing.
package shade

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/velvetvoxel/voxelcast/pkg/vmath"
	"github.com/velvetvoxel/voxelcast/pkg/voxel"
)

// Material resolves the base surface color for a voxel face. Keeping this
// behind an interface keeps the traversal and dispatch code independent of
// shading policy.
type Material interface {
	ColorFor(face vmath.Face, cell voxel.Coord, blockID uint32) mgl32.Vec3
}

// FaceMaterial is the reference material: a fixed color per face with a
// per-voxel checkerboard parity darkening.
type FaceMaterial struct {
	Colors       [7]mgl32.Vec3 // indexed by Face
	CheckerScale float32       // darkening applied to odd-parity cells
}

// NewFaceMaterial creates the reference face palette.
func NewFaceMaterial() *FaceMaterial {
	return &FaceMaterial{
		Colors: [7]mgl32.Vec3{
			vmath.NoFace: {0.5, 0.5, 0.5},
			vmath.PosX:   {0.9, 0.25, 0.25},
			vmath.PosY:   {0.25, 0.9, 0.25},
			vmath.PosZ:   {0.25, 0.25, 0.9},
			vmath.NegX:   {0.6, 0.15, 0.15},
			vmath.NegY:   {0.15, 0.6, 0.15},
			vmath.NegZ:   {0.15, 0.15, 0.6},
		},
		CheckerScale: 0.3,
	}
}

// ColorFor returns the face color, darkened on odd-parity cells. The
// parity pattern is the xor of the cell coordinates, a cheap way to make
// individual voxels readable without textures.
func (m *FaceMaterial) ColorFor(face vmath.Face, cell voxel.Coord, blockID uint32) mgl32.Vec3 {
	c := m.Colors[face]
	if (cell.X^cell.Y^cell.Z)&1 == 1 {
		c = c.Mul(m.CheckerScale)
	}
	return c
}
