package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/velvetvoxel/voxelcast/pkg/vmath"
)

// Default projection parameters.
const (
	DefaultFov  = float32(70 * math.Pi / 180)
	DefaultNear = 0.1
	DefaultFar  = 1000
)

const maxPitch = float32(89 * math.Pi / 180)

// RotationFromDirection converts a forward direction to (pitch, yaw)
// euler angles. The camera convention is right-handed looking down -Z;
// yaw rotates about Y, pitch about X, so forward is
// RotY(yaw)*RotX(pitch)*(0,0,-1).
func RotationFromDirection(dir mgl32.Vec3) mgl32.Vec2 {
	d := dir.Normalize()
	yaw := float32(math.Atan2(float64(-d.X()), float64(-d.Z())))
	pitch := float32(math.Asin(float64(d.Y())))
	return mgl32.Vec2{pitch, yaw}
}

// Camera supplies the world transform and projection parameters for ray
// construction. The core reads it once per frame; mutating it mid-frame
// is the caller's bug.
type Camera struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec2 // pitch, yaw in radians
	Fov      float32    // vertical field of view, radians
	Near     float32
	Far      float32
}

// NewCamera creates a camera at the given position with default
// projection parameters, looking down -Z.
func NewCamera(position mgl32.Vec3) *Camera {
	return &Camera{
		Position: position,
		Fov:      DefaultFov,
		Near:     DefaultNear,
		Far:      DefaultFar,
	}
}

// LookAt creates a camera at position facing target.
func LookAt(position, target mgl32.Vec3) *Camera {
	c := NewCamera(position)
	c.LookAtPoint(target)
	return c
}

// LookAtPoint rotates the camera to face a world point.
func (c *Camera) LookAtPoint(target mgl32.Vec3) {
	c.LookTo(target.Sub(c.Position))
}

// LookTo rotates the camera to face along a world direction.
func (c *Camera) LookTo(dir mgl32.Vec3) {
	c.Rotation = RotationFromDirection(dir)
}

// Rotate applies a (pitch, yaw) delta, clamping pitch to +-89 degrees and
// wrapping yaw to [0, 2pi).
func (c *Camera) Rotate(delta mgl32.Vec2) {
	pitch := mgl32.Clamp(c.Rotation.X()+delta.X(), -maxPitch, maxPitch)
	yaw := float32(math.Mod(float64(c.Rotation.Y()+delta.Y()), 2*math.Pi))
	if yaw < 0 {
		yaw += 2 * math.Pi
	}
	c.Rotation = mgl32.Vec2{pitch, yaw}
}

// RotationMatrix returns the orthonormal world rotation: yaw about Y,
// then pitch about X.
func (c *Camera) RotationMatrix() mgl32.Mat3 {
	return mgl32.Rotate3DY(c.Rotation.Y()).Mul3(mgl32.Rotate3DX(c.Rotation.X()))
}

// Forward returns the world-space view direction.
func (c *Camera) Forward() mgl32.Vec3 {
	return c.RotationMatrix().Mul3x1(mgl32.Vec3{0, 0, -1})
}

// Ray builds the world-space camera ray for a pixel: the cached
// view-space direction rotated into the world, originating at the camera
// position. The hot path precomputes RotationMatrix once per frame
// instead of calling this per pixel.
func (c *Camera) Ray(cache *DirectionCache, x, y int) vmath.Ray {
	return vmath.NewRay(c.Position, c.RotationMatrix().Mul3x1(cache.At(x, y)))
}
