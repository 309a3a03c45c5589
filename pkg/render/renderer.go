package render

import (
	"image"
	"image/color"
	"runtime"
	"sync"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/velvetvoxel/voxelcast/pkg/shade"
	"github.com/velvetvoxel/voxelcast/pkg/vmath"
)

// Config controls frame dispatch.
type Config struct {
	Width    int
	Height   int
	TileSize int // pixel edge of a dispatch tile (0 = 64)
	Workers  int // parallel workers (0 = GOMAXPROCS via NumCPU)
}

// DefaultConfig returns sensible defaults for an interactive window.
func DefaultConfig() Config {
	return Config{
		Width:    960,
		Height:   540,
		TileSize: 64,
		Workers:  0,
	}
}

// RenderStats summarizes one rendered frame.
type RenderStats struct {
	Pixels      int
	PrimaryRays int
	Hits        int // pixels whose primary path resolved a surface
	Elapsed     time.Duration
}

// Renderer is the frame dispatcher: it builds one camera ray per output
// pixel, shades it, and writes the composited color to the frame. Tiles
// are rendered in parallel; pixels share no mutable state, so each tile
// writes its region of the image without locking.
type Renderer struct {
	camera *Camera
	shader *shade.Shader
	cache  *DirectionCache
	config Config
}

// NewRenderer creates a renderer for the given camera and shader.
func NewRenderer(camera *Camera, shader *shade.Shader, config Config) *Renderer {
	if config.TileSize <= 0 {
		config.TileSize = 64
	}
	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	return &Renderer{
		camera: camera,
		shader: shader,
		cache:  NewDirectionCache(),
		config: config,
	}
}

// Camera returns the camera the renderer reads each frame.
func (r *Renderer) Camera() *Camera {
	return r.camera
}

// Shader returns the shader used for hits.
func (r *Renderer) Shader() *shade.Shader {
	return r.shader
}

// RenderFrame renders one full frame and returns the image with its
// stats. The direction cache is rebuilt only when the resolution or
// field of view changed since the previous frame.
func (r *Renderer) RenderFrame() (*image.RGBA, RenderStats) {
	start := time.Now()
	r.cache.Ensure(r.config.Width, r.config.Height, r.camera.Fov)

	img := image.NewRGBA(image.Rect(0, 0, r.config.Width, r.config.Height))
	tiles := tileGrid(r.config.Width, r.config.Height, r.config.TileSize)

	// The rotation is fixed for the duration of the dispatch.
	rot := r.camera.RotationMatrix()

	tasks := make(chan image.Rectangle, len(tiles))
	results := make(chan RenderStats, len(tiles))

	var wg sync.WaitGroup
	for w := 0; w < r.config.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for bounds := range tasks {
				results <- r.renderTile(img, rot, bounds)
			}
		}()
	}

	for _, bounds := range tiles {
		tasks <- bounds
	}
	close(tasks)
	wg.Wait()
	close(results)

	stats := RenderStats{Pixels: r.config.Width * r.config.Height}
	for tileStats := range results {
		stats.PrimaryRays += tileStats.PrimaryRays
		stats.Hits += tileStats.Hits
	}
	stats.Elapsed = time.Since(start)
	return img, stats
}

// renderTile shades every pixel in bounds. Tiles never overlap, so the
// image writes are race-free.
func (r *Renderer) renderTile(img *image.RGBA, rot mgl32.Mat3, bounds image.Rectangle) RenderStats {
	var stats RenderStats
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			ray := vmath.NewRay(r.camera.Position, rot.Mul3x1(r.cache.At(x, y)))
			c := r.shader.Shade(ray, r.camera.Near, r.camera.Far)
			img.SetRGBA(x, y, vec4ToRGBA(c))

			stats.PrimaryRays++
			if c.W() > 0 {
				stats.Hits++
			}
		}
	}
	return stats
}

// tileGrid splits the frame into tileSize x tileSize rectangles, the last
// row and column clipped to the frame.
func tileGrid(width, height, tileSize int) []image.Rectangle {
	var tiles []image.Rectangle
	for y0 := 0; y0 < height; y0 += tileSize {
		for x0 := 0; x0 < width; x0 += tileSize {
			x1 := min(x0+tileSize, width)
			y1 := min(y0+tileSize, height)
			tiles = append(tiles, image.Rect(x0, y0, x1, y1))
		}
	}
	return tiles
}

// vec4ToRGBA converts a linear color to 8-bit RGBA with clamping. The
// reference pipeline wrote unorm8 without gamma; matching that keeps
// output parity.
func vec4ToRGBA(c mgl32.Vec4) color.RGBA {
	return color.RGBA{
		R: uint8(255 * mgl32.Clamp(c.X(), 0, 1)),
		G: uint8(255 * mgl32.Clamp(c.Y(), 0, 1)),
		B: uint8(255 * mgl32.Clamp(c.Z(), 0, 1)),
		A: uint8(255 * mgl32.Clamp(c.W(), 0, 1)),
	}
}
