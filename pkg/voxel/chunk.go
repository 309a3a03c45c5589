// Package voxel stores block ids for a bounded 64x64x64 volume and
// provides the constant-time lookups the raycaster depends on.
package voxel

const (
	// Size is the chunk edge length in voxels.
	Size = 64
	// Volume is the total number of voxels in a chunk.
	Volume = Size * Size * Size

	shiftZ = 6  // Size = 2^6
	shiftY = 12 // Size*Size = 2^12
)

// Air is the block id of an empty cell. Every coordinate outside the
// chunk reads as Air.
const Air uint32 = 0

// Coord addresses a voxel cell with integer grid coordinates.
type Coord struct {
	X, Y, Z int
}

// Offset returns the coordinate translated by (dx, dy, dz).
func (c Coord) Offset(dx, dy, dz int) Coord {
	return Coord{c.X + dx, c.Y + dy, c.Z + dz}
}

// Chunk is a flat read-mostly array of block ids, logically a 64^3 cube
// indexed y,z,x row-major: index = y<<12 | z<<6 | x.
type Chunk struct {
	blocks []uint32
	dirty  bool
}

// NewChunk creates an empty chunk (all air).
func NewChunk() *Chunk {
	return &Chunk{
		blocks: make([]uint32, Volume),
		dirty:  true,
	}
}

// Get returns the block id at (x, y, z). Any coordinate with a component
// outside [0, Size) reads as Air; lookups never fault.
func (c *Chunk) Get(x, y, z int) uint32 {
	// Negative components turn into huge values under the uint cast, so a
	// single compare covers both bounds of all three axes.
	if uint(x|y|z) >= Size {
		return Air
	}
	return c.blocks[y<<shiftY|z<<shiftZ|x]
}

// GetCoord is Get for a Coord.
func (c *Chunk) GetCoord(co Coord) uint32 {
	return c.Get(co.X, co.Y, co.Z)
}

// Solid reports whether the cell holds a non-air block.
func (c *Chunk) Solid(x, y, z int) bool {
	return c.Get(x, y, z) != Air
}

// Set writes the block id at (x, y, z) and marks the chunk dirty.
// Out-of-range coordinates are silently dropped.
func (c *Chunk) Set(x, y, z int, id uint32) {
	if uint(x|y|z) >= Size {
		return
	}
	c.blocks[y<<shiftY|z<<shiftZ|x] = id
	c.dirty = true
}

// Fill sets every cell of the inclusive box [min, max], clipped to the
// chunk, to the given id.
func (c *Chunk) Fill(min, max Coord, id uint32) {
	for y := clampAxis(min.Y); y <= clampAxis(max.Y); y++ {
		for z := clampAxis(min.Z); z <= clampAxis(max.Z); z++ {
			for x := clampAxis(min.X); x <= clampAxis(max.X); x++ {
				c.blocks[y<<shiftY|z<<shiftZ|x] = id
			}
		}
	}
	c.dirty = true
}

// Dirty reports whether the chunk changed since the last ClearDirty.
// Consumers that mirror the volume elsewhere (an upload, a snapshot)
// use it to skip redundant copies.
func (c *Chunk) Dirty() bool {
	return c.dirty
}

// ClearDirty marks the chunk as synchronized.
func (c *Chunk) ClearDirty() {
	c.dirty = false
}

// Blocks exposes the backing array. Callers must treat it as read-only
// while raycasts are in flight.
func (c *Chunk) Blocks() []uint32 {
	return c.blocks
}

func clampAxis(v int) int {
	if v < 0 {
		return 0
	}
	if v >= Size {
		return Size - 1
	}
	return v
}
