// Command voxelview is an interactive window on the voxel raytracer: it
// renders a frame per tick at a reduced resolution while the camera
// orbits the chunk.
package main

import (
	"math"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/velvetvoxel/voxelcast/pkg/render"
	"github.com/velvetvoxel/voxelcast/pkg/scene"
	"github.com/velvetvoxel/voxelcast/pkg/shade"
	"github.com/velvetvoxel/voxelcast/pkg/voxel"
)

const (
	frameWidth  = 480
	frameHeight = 270
	orbitRadius = 58
	orbitHeight = 52
)

// Game drives one renderer per scene and swaps between them on key
// presses.
type Game struct {
	scene    *scene.Scene
	renderer *render.Renderer
	frame    *ebiten.Image
	angle    float64
	paused   bool
}

func newGame(sc *scene.Scene) *Game {
	g := &Game{}
	g.setScene(sc)
	return g
}

func (g *Game) setScene(sc *scene.Scene) {
	shader := shade.NewShader(sc.Chunk, shade.NewFaceMaterial(), sc.Lighting, shade.DefaultOptions())
	g.scene = sc
	g.renderer = render.NewRenderer(sc.Camera, shader, render.Config{
		Width:  frameWidth,
		Height: frameHeight,
	})
}

func (g *Game) Update() error {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.Key1):
		g.setScene(scene.Terrain())
	case inpututil.IsKeyJustPressed(ebiten.Key2):
		g.setScene(scene.Pool())
	case inpututil.IsKeyJustPressed(ebiten.Key3):
		g.setScene(scene.Probe())
	case inpututil.IsKeyJustPressed(ebiten.KeySpace):
		g.paused = !g.paused
	}

	// The pool scene keeps its submerged camera; orbiting would pull it
	// out of the water.
	if !g.paused && g.scene.Name != "pool" {
		g.angle += 0.01
		center := mgl32.Vec3{voxel.Size / 2, 16, voxel.Size / 2}
		g.renderer.Camera().Position = mgl32.Vec3{
			center.X() + orbitRadius*float32(math.Cos(g.angle)),
			orbitHeight,
			center.Z() + orbitRadius*float32(math.Sin(g.angle)),
		}
		g.renderer.Camera().LookAtPoint(center)
	}

	img, _ := g.renderer.RenderFrame()
	if g.frame == nil {
		g.frame = ebiten.NewImage(frameWidth, frameHeight)
	}
	g.frame.WritePixels(img.Pix)
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.frame != nil {
		screen.DrawImage(g.frame, nil)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return frameWidth, frameHeight
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	sc, err := scene.ByName("terrain")
	if err != nil {
		log.Fatal().Err(err).Msg("loading scene")
	}

	ebiten.SetWindowSize(frameWidth*2, frameHeight*2)
	ebiten.SetWindowTitle("voxelcast")
	if err := ebiten.RunGame(newGame(sc)); err != nil {
		log.Fatal().Err(err).Msg("viewer stopped")
	}
}
