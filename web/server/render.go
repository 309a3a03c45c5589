package server

import (
	"fmt"
	"image/png"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/velvetvoxel/voxelcast/pkg/render"
	"github.com/velvetvoxel/voxelcast/pkg/scene"
	"github.com/velvetvoxel/voxelcast/pkg/shade"
)

// RenderRequest is a parsed /api/render query.
type RenderRequest struct {
	Scene  string
	Width  int
	Height int
	Fov    float32 // degrees; 0 keeps the scene default
	Pose   *CameraPose
}

// CameraPose overrides the scene camera when supplied.
type CameraPose struct {
	Position mgl32.Vec3
	Pitch    float32 // degrees
	Yaw      float32 // degrees
}

const (
	maxRenderWidth  = 3840
	maxRenderHeight = 2160
)

// handleRender renders one frame of the requested scene and streams it
// back as PNG.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, err := parseRenderRequest(r.URL.Query())
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	sc, err := scene.ByName(req.Scene)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if req.Fov > 0 {
		sc.Camera.Fov = mgl32.DegToRad(req.Fov)
	}
	if req.Pose != nil {
		sc.Camera.Position = req.Pose.Position
		sc.Camera.Rotation = mgl32.Vec2{
			mgl32.DegToRad(req.Pose.Pitch),
			mgl32.DegToRad(req.Pose.Yaw),
		}
	}

	shader := shade.NewShader(sc.Chunk, shade.NewFaceMaterial(), sc.Lighting, shade.DefaultOptions())
	renderer := render.NewRenderer(sc.Camera, shader, render.Config{
		Width:  req.Width,
		Height: req.Height,
	})

	start := time.Now()
	img, stats := renderer.RenderFrame()
	s.log.Info().
		Str("scene", req.Scene).
		Int("width", req.Width).
		Int("height", req.Height).
		Int("hits", stats.Hits).
		Dur("elapsed", time.Since(start)).
		Msg("rendered frame")

	w.Header().Set("Content-Type", "image/png")
	if err := png.Encode(w, img); err != nil {
		s.log.Error().Err(err).Msg("encoding png")
	}
}

// parseRenderRequest reads the render parameters from the query string,
// applying defaults and bounds.
func parseRenderRequest(q url.Values) (RenderRequest, error) {
	req := RenderRequest{
		Scene:  q.Get("scene"),
		Width:  640,
		Height: 360,
	}
	if req.Scene == "" {
		req.Scene = "terrain"
	}

	var err error
	if req.Width, err = intParam(q, "width", req.Width); err != nil {
		return req, err
	}
	if req.Height, err = intParam(q, "height", req.Height); err != nil {
		return req, err
	}
	if req.Width <= 0 || req.Width > maxRenderWidth || req.Height <= 0 || req.Height > maxRenderHeight {
		return req, fmt.Errorf("resolution %dx%d out of range", req.Width, req.Height)
	}

	fov, err := floatParam(q, "fov", 0)
	if err != nil {
		return req, err
	}
	req.Fov = fov

	// A pose is only applied when all three position components are given.
	if q.Has("x") && q.Has("y") && q.Has("z") {
		pose := &CameraPose{}
		x, err := floatParam(q, "x", 0)
		if err != nil {
			return req, err
		}
		y, err := floatParam(q, "y", 0)
		if err != nil {
			return req, err
		}
		z, err := floatParam(q, "z", 0)
		if err != nil {
			return req, err
		}
		pose.Position = mgl32.Vec3{x, y, z}
		if pose.Pitch, err = floatParam(q, "pitch", 0); err != nil {
			return req, err
		}
		if pose.Yaw, err = floatParam(q, "yaw", 0); err != nil {
			return req, err
		}
		req.Pose = pose
	}

	return req, nil
}

func intParam(q url.Values, key string, def int) (int, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return v, nil
}

func floatParam(q url.Values, key string, def float32) (float32, error) {
	raw := q.Get(key)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %q", key, raw)
	}
	return float32(v), nil
}
