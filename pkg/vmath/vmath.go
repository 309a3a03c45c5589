// Package vmath holds the float32 math helpers shared by the voxel
// raytracing packages. Vector and matrix types come from mgl32; this
// package only adds what mgl32 lacks.
package vmath

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Fract returns the fractional part of v, always in [0, 1).
func Fract(v float32) float32 {
	return v - Floor(v)
}

// Floor returns the largest integer value <= v.
func Floor(v float32) float32 {
	return float32(math.Floor(float64(v)))
}

// Lerp linearly interpolates between a and b by t.
func Lerp(a, b, t float32) float32 {
	return a + (b-a)*t
}

// LerpVec3 linearly interpolates between a and b component-wise.
func LerpVec3(a, b mgl32.Vec3, t float32) mgl32.Vec3 {
	return mgl32.Vec3{
		Lerp(a.X(), b.X(), t),
		Lerp(a.Y(), b.Y(), t),
		Lerp(a.Z(), b.Z(), t),
	}
}

// MulVec3 returns the component-wise (Hadamard) product of two vectors.
func MulVec3(a, b mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{a.X() * b.X(), a.Y() * b.Y(), a.Z() * b.Z()}
}

// CircularOut is the circular ease-out curve: fast start, decelerating
// toward 1. Used by the lighting blend between shadow and full direct
// light.
func CircularOut(t float32) float32 {
	u := 1 - t
	return float32(math.Sqrt(float64(1 - u*u)))
}

// CircularIn is the circular ease-in curve, the mirror of CircularOut.
func CircularIn(t float32) float32 {
	return 1 - float32(math.Sqrt(float64(1-t*t)))
}
