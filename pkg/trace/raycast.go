// Package trace implements the voxel grid raycaster: a slab-clipped,
// grid-stepping (DDA) ray march through one 64^3 chunk with exact
// entry-face resolution.
package trace

import (
	"math"

	"github.com/velvetvoxel/voxelcast/pkg/vmath"
	"github.com/velvetvoxel/voxelcast/pkg/voxel"
)

const (
	// RayPenetrate pushes a ray that enters the chunk exactly on a cell
	// boundary strictly inside it, so the entry cell and face classify
	// unambiguously. Applied once on entry, not at every step.
	RayPenetrate = 1e-5

	// minDirComponent guards the per-axis reciprocals; a direction
	// component below this magnitude is treated as zero (that axis never
	// produces the next boundary crossing).
	minDirComponent = 1e-8
)

// RayHit describes the first qualifying voxel intersection of a cast.
// When Hit is false the other fields are zeroed and must not be
// interpreted.
type RayHit struct {
	Cell     voxel.Coord
	Distance float32
	BlockID  uint32
	Face     vmath.Face
	Hit      bool
}

// Raycaster marches rays through a single chunk. It holds a non-owning
// reference; the chunk must not be mutated while casts are in flight.
type Raycaster struct {
	chunk *voxel.Chunk
}

// NewRaycaster creates a raycaster over the given chunk.
func NewRaycaster(chunk *voxel.Chunk) *Raycaster {
	return &Raycaster{chunk: chunk}
}

// Chunk returns the volume this raycaster reads.
func (rc *Raycaster) Chunk() *voxel.Chunk {
	return rc.chunk
}

// Cast walks the grid from ray.Origin along ray.Dir and returns the first
// qualifying cell within [near, far]. wantSolid selects the target: the
// first non-air cell (true) or the first air cell (false, used to find the
// exit boundary when the ray starts inside a block).
//
// The returned Face is the side of the *hit* cell the ray passed through:
// stepping +X enters the next cell through its NegX face. A ray starting
// inside a qualifying cell reports that cell with Face NoFace.
func (rc *Raycaster) Cast(ray vmath.Ray, near, far float32, wantSolid bool) RayHit {
	o := ray.Origin
	d := ray.Dir

	const size = float32(voxel.Size)

	// Slab-clip against the chunk box. tEnter starts at zero so an origin
	// already inside the box skips entry classification (all per-axis
	// entries are <= 0) and keeps Face NoFace. Ties on tEnter resolve to
	// the earliest axis: x wins unless y or z is strictly greater.
	tEnter := float32(0)
	tExit := far
	enterAxis := -1
	for axis := 0; axis < 3; axis++ {
		if abs32(d[axis]) < minDirComponent {
			// Parallel to the slab: either always inside it or never.
			if o[axis] < 0 || o[axis] >= size {
				return RayHit{}
			}
			continue
		}
		inv := 1 / d[axis]
		t0 := (0 - o[axis]) * inv
		t1 := (size - o[axis]) * inv
		if t0 > t1 {
			t0, t1 = t1, t0
		}
		if t0 > tEnter {
			tEnter = t0
			enterAxis = axis
		}
		if t1 < tExit {
			tExit = t1
		}
	}
	if tEnter > tExit || tExit < near {
		return RayHit{}
	}

	entry := tEnter
	entryFace := vmath.NoFace
	if enterAxis >= 0 {
		// Origin was outside the box: bias the start strictly inside so
		// the boundary cell classifies unambiguously.
		entry += RayPenetrate
		entryFace = vmath.FaceToward(enterAxis, stepSign(d[enterAxis]))
	}

	limit := min32(tExit, far)
	if entry > limit {
		return RayHit{}
	}

	pos := ray.At(entry)
	cell := voxel.Coord{
		X: floorInt(pos.X()),
		Y: floorInt(pos.Y()),
		Z: floorInt(pos.Z()),
	}

	// A ray may enter the box directly into a qualifying voxel.
	if id := rc.chunk.GetCoord(cell); (id != voxel.Air) == wantSolid {
		return RayHit{Cell: cell, Distance: entry, BlockID: id, Face: entryFace, Hit: true}
	}

	// DDA state: per axis, the ray parameter at the next cell boundary
	// and the parameter increment per full cell.
	var step [3]int
	var tMax, tDelta [3]float32
	ci := [3]int{cell.X, cell.Y, cell.Z}
	for axis := 0; axis < 3; axis++ {
		if abs32(d[axis]) < minDirComponent {
			tMax[axis] = float32(math.Inf(1))
			tDelta[axis] = float32(math.Inf(1))
			continue
		}
		var next float32
		if d[axis] > 0 {
			step[axis] = 1
			next = float32(ci[axis] + 1)
		} else {
			step[axis] = -1
			next = float32(ci[axis])
		}
		tMax[axis] = entry + (next-pos[axis])/d[axis]
		tDelta[axis] = 1 / abs32(d[axis])
	}

	for {
		// Smallest tMax picks the axis; ties resolve x, then y, then z.
		axis := 0
		if tMax[1] < tMax[0] {
			axis = 1
		}
		if tMax[2] < tMax[axis] {
			axis = 2
		}

		t := tMax[axis]
		if t >= limit {
			return RayHit{}
		}

		ci[axis] += step[axis]
		tMax[axis] += tDelta[axis]

		if id := rc.chunk.Get(ci[0], ci[1], ci[2]); (id != voxel.Air) == wantSolid {
			return RayHit{
				Cell:     voxel.Coord{X: ci[0], Y: ci[1], Z: ci[2]},
				Distance: t,
				BlockID:  id,
				Face:     vmath.FaceToward(axis, step[axis]),
				Hit:      true,
			}
		}
	}
}

func stepSign(v float32) int {
	if v < 0 {
		return -1
	}
	return 1
}

func floorInt(v float32) int {
	return int(vmath.Floor(v))
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}

func min32(a, b float32) float32 {
	if a < b {
		return a
	}
	return b
}
