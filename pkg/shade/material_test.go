package shade

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/velvetvoxel/voxelcast/pkg/vmath"
	"github.com/velvetvoxel/voxelcast/pkg/voxel"
)

func TestFaceMaterialColors(t *testing.T) {
	m := NewFaceMaterial()

	even := voxel.Coord{X: 2, Y: 4, Z: 6}
	for face := vmath.PosX; face <= vmath.NegZ; face++ {
		got := m.ColorFor(face, even, 1)
		assert.Equal(t, m.Colors[face], got, "face %v", face)
	}
}

func TestFaceMaterialCheckerboard(t *testing.T) {
	m := NewFaceMaterial()

	even := voxel.Coord{X: 10, Y: 20, Z: 30} // 10^20^30 = 0
	odd := voxel.Coord{X: 11, Y: 20, Z: 30}  // 11^20^30 = 1

	base := m.ColorFor(vmath.PosY, even, 1)
	dark := m.ColorFor(vmath.PosY, odd, 1)
	assert.Equal(t, base.Mul(m.CheckerScale), dark, "odd parity cells darken by CheckerScale")

	// Parity is a property of the cell, not the face.
	assert.Equal(t, m.ColorFor(vmath.NegX, odd, 1), m.Colors[vmath.NegX].Mul(m.CheckerScale))
}
