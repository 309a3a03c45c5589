package vmath

import "github.com/go-gl/mathgl/mgl32"

// Face identifies which side of a voxel cell a ray crossed. NoFace is the
// sentinel for "no hit" or "hit from inside, side undetermined".
type Face uint32

const (
	NoFace Face = iota
	PosX
	PosY
	PosZ
	NegX
	NegY
	NegZ
)

// Flip maps each face to its opposite on the same axis. NoFace flips to
// itself.
func (f Face) Flip() Face {
	switch {
	case f >= PosX && f <= PosZ:
		return f + 3
	case f >= NegX && f <= NegZ:
		return f - 3
	default:
		return NoFace
	}
}

// Axis returns 0, 1 or 2 for X, Y or Z faces, and -1 for NoFace.
func (f Face) Axis() int {
	switch f {
	case PosX, NegX:
		return 0
	case PosY, NegY:
		return 1
	case PosZ, NegZ:
		return 2
	default:
		return -1
	}
}

// Normal returns the outward unit normal of the face, or the zero vector
// for NoFace.
func (f Face) Normal() mgl32.Vec3 {
	switch f {
	case PosX:
		return mgl32.Vec3{1, 0, 0}
	case PosY:
		return mgl32.Vec3{0, 1, 0}
	case PosZ:
		return mgl32.Vec3{0, 0, 1}
	case NegX:
		return mgl32.Vec3{-1, 0, 0}
	case NegY:
		return mgl32.Vec3{0, -1, 0}
	case NegZ:
		return mgl32.Vec3{0, 0, -1}
	default:
		return mgl32.Vec3{}
	}
}

func (f Face) String() string {
	switch f {
	case PosX:
		return "PosX"
	case PosY:
		return "PosY"
	case PosZ:
		return "PosZ"
	case NegX:
		return "NegX"
	case NegY:
		return "NegY"
	case NegZ:
		return "NegZ"
	default:
		return "NoFace"
	}
}

// FaceToward returns the face of a cell crossed by a ray stepping along the
// given axis: stepping in the positive direction enters the next cell
// through its Neg face, stepping negative enters through its Pos face.
func FaceToward(axis int, step int) Face {
	if step < 0 {
		return PosX + Face(axis)
	}
	return NegX + Face(axis)
}
