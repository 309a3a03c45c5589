package shade

import (
	"github.com/go-gl/mathgl/mgl32"
)

// DirectionalLight is the sun-style light block supplied once per frame.
type DirectionalLight struct {
	Direction        mgl32.Vec3 // direction the light travels, unit length
	Color            mgl32.Vec3
	Intensity        float32
	EveningIntensity float32 // intensity floor as the light drops to the horizon
	Shadow           float32 // flat light level for shadowed points when ambient is off
	Enabled          bool
}

// EffectiveIntensity scales the configured intensity by the light's
// elevation, fading toward EveningIntensity as the direction flattens
// toward the horizon.
func (d DirectionalLight) EffectiveIntensity() float32 {
	elevation := mgl32.Clamp(-d.Direction.Y(), 0, 1)
	return d.EveningIntensity + (d.Intensity-d.EveningIntensity)*elevation
}

// AmbientLight is the flat fill light block.
type AmbientLight struct {
	Color     mgl32.Vec3
	Intensity float32
	Enabled   bool
}

// Lighting bundles the externally supplied light state, read-only per
// frame.
type Lighting struct {
	Directional DirectionalLight
	Ambient     AmbientLight
}

// DefaultLighting is a late-morning sun with a dim blue ambient fill.
func DefaultLighting() Lighting {
	return Lighting{
		Directional: DirectionalLight{
			Direction:        mgl32.Vec3{0.45, -0.8, 0.35}.Normalize(),
			Color:            mgl32.Vec3{1, 0.96, 0.88},
			Intensity:        1,
			EveningIntensity: 0.35,
			Shadow:           0.25,
			Enabled:          true,
		},
		Ambient: AmbientLight{
			Color:     mgl32.Vec3{0.55, 0.62, 0.75},
			Intensity: 0.4,
			Enabled:   true,
		},
	}
}
