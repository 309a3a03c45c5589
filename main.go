package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/velvetvoxel/voxelcast/pkg/render"
	"github.com/velvetvoxel/voxelcast/pkg/scene"
	"github.com/velvetvoxel/voxelcast/pkg/shade"
	"github.com/velvetvoxel/voxelcast/web/server"
)

// RenderSettings is the file-configurable subset of the CLI options.
type RenderSettings struct {
	Scene    string  `json:"scene"`
	Width    int     `json:"width"`
	Height   int     `json:"height"`
	Fov      float32 `json:"fov"` // degrees
	TileSize int     `json:"tileSize"`
	Workers  int     `json:"workers"`
	OutDir   string  `json:"outDir"`
}

func defaultSettings() RenderSettings {
	return RenderSettings{
		Scene:  "terrain",
		Width:  1280,
		Height: 720,
		OutDir: "output",
	}
}

func main() {
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})

	configPath := flag.String("config", "", "Optional JSON settings file")
	sceneName := flag.String("scene", "", "Scene name: terrain, pool or probe")
	width := flag.Int("width", 0, "Output width in pixels")
	height := flag.Int("height", 0, "Output height in pixels")
	fov := flag.Float64("fov", 0, "Vertical field of view in degrees")
	outDir := flag.String("out", "", "Output directory for rendered frames")
	serveAddr := flag.String("serve", "", "Run the HTTP render server on this address instead of rendering once")
	flag.Parse()

	settings, err := loadSettings(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("loading settings")
	}
	applyFlags(&settings, *sceneName, *width, *height, float32(*fov), *outDir)

	if *serveAddr != "" {
		srv := server.NewServer(*serveAddr, log.Logger)
		if err := srv.Start(); err != nil {
			log.Fatal().Err(err).Msg("render server stopped")
		}
		return
	}

	if err := renderOnce(settings); err != nil {
		log.Fatal().Err(err).Msg("render failed")
	}
}

// loadSettings merges an optional JSON file over the defaults.
func loadSettings(path string) (RenderSettings, error) {
	settings := defaultSettings()
	if path == "" {
		return settings, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return settings, fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &settings); err != nil {
		return settings, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return settings, nil
}

// applyFlags overrides settings with any explicitly provided flags.
func applyFlags(s *RenderSettings, sceneName string, width, height int, fov float32, outDir string) {
	if sceneName != "" {
		s.Scene = sceneName
	}
	if width > 0 {
		s.Width = width
	}
	if height > 0 {
		s.Height = height
	}
	if fov > 0 {
		s.Fov = fov
	}
	if outDir != "" {
		s.OutDir = outDir
	}
}

// renderOnce renders a single frame to a timestamped PNG under
// <outDir>/<scene>/.
func renderOnce(settings RenderSettings) error {
	sc, err := scene.ByName(settings.Scene)
	if err != nil {
		return err
	}
	if settings.Fov > 0 {
		sc.Camera.Fov = mgl32.DegToRad(settings.Fov)
	}

	shader := shade.NewShader(sc.Chunk, shade.NewFaceMaterial(), sc.Lighting, shade.DefaultOptions())
	renderer := render.NewRenderer(sc.Camera, shader, render.Config{
		Width:    settings.Width,
		Height:   settings.Height,
		TileSize: settings.TileSize,
		Workers:  settings.Workers,
	})

	log.Info().
		Str("scene", sc.Name).
		Int("width", settings.Width).
		Int("height", settings.Height).
		Msg("rendering")

	img, stats := renderer.RenderFrame()

	log.Info().
		Int("pixels", stats.Pixels).
		Int("hits", stats.Hits).
		Dur("elapsed", stats.Elapsed).
		Msg("render complete")

	dir := filepath.Join(settings.OutDir, sc.Name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	filename := filepath.Join(dir, fmt.Sprintf("render_%s.png", time.Now().Format("20060102_150405")))
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("saving PNG: %w", err)
	}

	log.Info().Str("file", filename).Msg("saved")
	return nil
}
