package shade

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/velvetvoxel/voxelcast/pkg/trace"
	"github.com/velvetvoxel/voxelcast/pkg/vmath"
	"github.com/velvetvoxel/voxelcast/pkg/voxel"
)

// Options carries the tunable shading constants. The defaults reproduce
// the reference behavior; they are configuration, not law.
type Options struct {
	EdgeMargin       float32 // face-local fraction of a cell treated as edge
	EdgeNear         float32 // distance at which edge darkening is strongest
	EdgeFar          float32 // distance at which edge darkening fades out
	EdgeDarkening    float32 // darkening factor applied at EdgeNear
	NeighborBias     float32 // offset pulling sample points off shared boundaries
	ShadowRange      float32 // length of the shadow raycast
	TranslucentBlend float32 // weight of the translucent surface over what lies behind
}

// DefaultOptions returns the reference constants.
func DefaultOptions() Options {
	return Options{
		EdgeMargin:       1.0 / 32.0,
		EdgeNear:         50,
		EdgeFar:          150,
		EdgeDarkening:    0.5,
		NeighborBias:     1e-4,
		ShadowRange:      112,
		TranslucentBlend: 0.8,
	}
}

// DetectEdge reports whether a face-local fractional coordinate falls
// within the margin of any face edge.
func DetectEdge(u, v, margin float32) bool {
	return u < margin || u > 1-margin || v < margin || v > 1-margin
}

// Shader computes final pixel colors from resolved ray hits. It is pure
// over read-only inputs and safe for concurrent use from many pixels.
type Shader struct {
	caster   *trace.Raycaster
	chunk    *voxel.Chunk
	material Material
	lighting Lighting
	opts     Options
}

// NewShader creates a shader over the given chunk.
func NewShader(chunk *voxel.Chunk, material Material, lighting Lighting, opts Options) *Shader {
	return &Shader{
		caster:   trace.NewRaycaster(chunk),
		chunk:    chunk,
		material: material,
		lighting: lighting,
		opts:     opts,
	}
}

// SetLighting replaces the light state used for subsequent shading. Not
// safe concurrently with an in-flight frame.
func (s *Shader) SetLighting(lighting Lighting) {
	s.lighting = lighting
}

// Shade resolves one camera ray end to end. The voxel containing the ray
// origin selects the path: an air origin searches for the first solid
// cell, an origin inside a block searches for the medium's exit boundary
// and composites through it.
func (s *Shader) Shade(ray vmath.Ray, near, far float32) mgl32.Vec4 {
	start := s.chunk.Get(
		int(vmath.Floor(ray.Origin.X())),
		int(vmath.Floor(ray.Origin.Y())),
		int(vmath.Floor(ray.Origin.Z())),
	)
	if start == voxel.Air {
		return s.ShadeOpaque(ray, near, far)
	}
	return s.ShadeTranslucent(ray, near, far)
}

// ShadeOpaque casts for the first solid voxel and shades it. Misses
// return a fully transparent zero color.
func (s *Shader) ShadeOpaque(ray vmath.Ray, near, far float32) mgl32.Vec4 {
	hit := s.caster.Cast(ray, near, far, true)
	if !hit.Hit {
		return mgl32.Vec4{}
	}
	return s.shadeHit(ray, hit.Cell, hit.Face, hit.Distance, hit.BlockID).Vec4(1)
}

// ShadeTranslucent handles a ray that starts inside a non-air medium:
// find the medium's exit boundary, shade it as a translucent surface,
// then re-cast a fully opaque ray beyond it and blend.
func (s *Shader) ShadeTranslucent(ray vmath.Ray, near, far float32) mgl32.Vec4 {
	exit := s.caster.Cast(ray, near, far, false)
	if !exit.Hit {
		// The ray never left the medium within range; show the medium
		// itself, unlit.
		cell := voxel.Coord{
			X: int(vmath.Floor(ray.Origin.X())),
			Y: int(vmath.Floor(ray.Origin.Y())),
			Z: int(vmath.Floor(ray.Origin.Z())),
		}
		return s.material.ColorFor(vmath.NoFace, cell, s.chunk.GetCoord(cell)).Vec4(1)
	}

	// exit.Cell is the first air cell; the boundary belongs to the solid
	// neighbor the ray just left, so flip the face to the solid side.
	face := exit.Face.Flip()
	n := exit.Face.Normal() // points from the air cell back into the medium
	solidCell := exit.Cell.Offset(int(n.X()), int(n.Y()), int(n.Z()))
	surface := s.shadeHit(ray, solidCell, face, exit.Distance, s.chunk.GetCoord(solidCell))

	if face == vmath.NoFace {
		return surface.Vec4(s.opts.TranslucentBlend)
	}

	// Second bounce: continue past the boundary fully opaque. The origin
	// is nudged into the air cell so the restarted march does not re-hit
	// the medium it just exited.
	beyond := vmath.NewRay(
		ray.At(exit.Distance).Add(face.Normal().Mul(s.opts.NeighborBias)),
		ray.Dir,
	)
	behind := s.caster.Cast(beyond, 0, far, true)
	if !behind.Hit {
		// Open sky beyond the surface.
		return surface.Vec4(s.opts.TranslucentBlend)
	}
	solid := s.shadeHit(beyond, behind.Cell, behind.Face, behind.Distance, behind.BlockID)
	blended := vmath.LerpVec3(solid, surface, s.opts.TranslucentBlend)
	return blended.Vec4(1)
}

// shadeHit computes the surface color for a resolved hit: base face color,
// edge darkening, then lighting.
func (s *Shader) shadeHit(ray vmath.Ray, cell voxel.Coord, face vmath.Face, distance float32, blockID uint32) mgl32.Vec3 {
	color := s.material.ColorFor(face, cell, blockID)
	if face == vmath.NoFace {
		// Hit from inside the cell: no face to derive UVs or a normal
		// from, so skip edge detection and directional lighting.
		return color
	}

	n := face.Normal()
	// Sample point pulled off the shared boundary into the neighbor cell.
	p := ray.At(distance).Add(n.Mul(s.opts.NeighborBias))

	u, v := faceUV(p, face)
	if DetectEdge(u, v, s.opts.EdgeMargin) {
		color = color.Mul(s.edgeFactor(distance))
	}

	return vmath.MulVec3(color, s.light(p, n))
}

// faceUV projects a point on a voxel face to face-local fractional
// coordinates.
func faceUV(p mgl32.Vec3, face vmath.Face) (float32, float32) {
	switch face.Axis() {
	case 0:
		return vmath.Fract(p.Z()), vmath.Fract(p.Y())
	case 1:
		return vmath.Fract(p.X()), vmath.Fract(p.Z())
	default:
		return vmath.Fract(p.X()), vmath.Fract(p.Y())
	}
}

// edgeFactor attenuates edge darkening with distance: strongest up close,
// fading linearly to nothing between EdgeNear and EdgeFar.
func (s *Shader) edgeFactor(distance float32) float32 {
	t := mgl32.Clamp((distance-s.opts.EdgeNear)/(s.opts.EdgeFar-s.opts.EdgeNear), 0, 1)
	return vmath.Lerp(s.opts.EdgeDarkening, 1, t)
}

// light returns the RGB multiplier for a point with the given surface
// normal, combining the directional and ambient blocks with a shadow
// raycast.
func (s *Shader) light(point, normal mgl32.Vec3) mgl32.Vec3 {
	dl := s.lighting.Directional
	amb := s.lighting.Ambient

	if !dl.Enabled {
		if amb.Enabled {
			return amb.Color.Mul(amb.Intensity)
		}
		return mgl32.Vec3{1, 1, 1}
	}

	toLight := dl.Direction.Mul(-1)
	shadowHit := s.caster.Cast(vmath.NewRay(point, toLight), 0, s.opts.ShadowRange, true)

	eased := vmath.CircularOut(mgl32.Clamp(toLight.Dot(normal), 0, 1))
	direct := dl.Color.Mul(dl.EffectiveIntensity())

	if amb.Enabled {
		ambient := amb.Color.Mul(amb.Intensity)
		if shadowHit.Hit {
			return ambient
		}
		return vmath.LerpVec3(ambient, direct, eased)
	}

	shadow := mgl32.Vec3{dl.Shadow, dl.Shadow, dl.Shadow}
	if shadowHit.Hit {
		return shadow
	}
	return vmath.LerpVec3(shadow, direct, eased)
}
