package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"scenery/internal/render"

	"github.com/pelletier/go-toml/v2"
)

// File is the on-disk viewer configuration.
type File struct {
	Window WindowConfig `toml:"window"`
	Render RenderConfig `toml:"render"`
	Scene  SceneConfig  `toml:"scene"`
	Camera CameraConfig `toml:"camera"`
	Log    LogConfig    `toml:"log"`
}

type WindowConfig struct {
	Width  int    `toml:"width"`
	Height int    `toml:"height"`
	Title  string `toml:"title"`
	VSync  bool   `toml:"vsync"`
}

type RenderConfig struct {
	Mode             string `toml:"mode"`
	MaxLights        int    `toml:"max_lights"`
	FPSLimit         int    `toml:"fps_limit"`
	ShowAxes         bool   `toml:"show_axes"`
	ShowLightMarkers bool   `toml:"show_light_markers"`
	Orbit            bool   `toml:"orbit"`
}

type SceneConfig struct {
	Path  string `toml:"path"`
	Watch bool   `toml:"watch"`
	// Offset translates the root every frame.
	Offset [3]float32 `toml:"offset"`
}

// CameraConfig drives the automatic orbit of the active camera and mouse
// rotation of the scene.
type CameraConfig struct {
	MinDistance       float32 `toml:"min_distance"`
	MaxDistance       float32 `toml:"max_distance"`
	AngularSpeed      float32 `toml:"angular_speed"`
	RotateSensitivity float32 `toml:"rotate_sensitivity"`
}

type LogConfig struct {
	Level string `toml:"level"`
}

// Default returns the configuration used when no file is present.
func Default() File {
	return File{
		Window: WindowConfig{Width: 1280, Height: 720, Title: "scenery", VSync: true},
		Render: RenderConfig{Mode: render.ModeNormal.String(), MaxLights: 8, FPSLimit: 60, Orbit: true},
		Scene:  SceneConfig{Path: "scene.yaml", Watch: true},
		Camera: CameraConfig{MinDistance: 5, MaxDistance: 15, AngularSpeed: 0.3, RotateSensitivity: 0.005},
		Log:    LogConfig{Level: "info"},
	}
}

// Load reads a TOML configuration on top of Default. A missing file is not an error.
func Load(path string) (File, error) {
	cfg := Default()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	dec := toml.NewDecoder(f)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Default(), fmt.Errorf("decode config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Default(), err
	}
	return cfg, nil
}

// Validate checks values that cannot be clamped into range.
func (f File) Validate() error {
	if f.Window.Width <= 0 || f.Window.Height <= 0 {
		return fmt.Errorf("window size %dx%d must be positive", f.Window.Width, f.Window.Height)
	}
	if _, err := render.ParseMode(f.Render.Mode); err != nil {
		return err
	}
	if f.Camera.MinDistance > f.Camera.MaxDistance {
		return fmt.Errorf("camera min_distance %.2f exceeds max_distance %.2f", f.Camera.MinDistance, f.Camera.MaxDistance)
	}
	return nil
}

// Apply pushes the render section into the runtime settings.
func Apply(f File) error {
	mode, err := render.ParseMode(f.Render.Mode)
	if err != nil {
		return err
	}
	SetRenderMode(mode)
	SetMaxLights(f.Render.MaxLights)
	SetFPSLimit(f.Render.FPSLimit)
	SetShowAxes(f.Render.ShowAxes)
	SetShowLightMarkers(f.Render.ShowLightMarkers)
	SetOrbit(f.Render.Orbit)
	return nil
}
