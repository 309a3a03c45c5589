package vmath

import "github.com/go-gl/mathgl/mgl32"

// Ray is a world-space ray. Dir is expected to be unit length; the
// traversal code does not re-normalize it.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// NewRay creates a new ray.
func NewRay(origin, dir mgl32.Vec3) Ray {
	return Ray{Origin: origin, Dir: dir}
}

// At returns the point at parameter t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}
