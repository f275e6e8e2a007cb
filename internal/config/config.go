package config

import (
	"sync"

	"scenery/internal/render"
)

// Shader light slot bounds.
const (
	MinLights = 1
	MaxLights = 16
)

// RenderSettings holds the settings the viewer may change between frames.
type RenderSettings struct {
	mu               sync.RWMutex
	mode             render.Mode
	showAxes         bool
	showLightMarkers bool
	orbit            bool
	fpsLimit         int // 0 means unlimited
	maxLights        int
}

var globalRenderSettings = &RenderSettings{
	mode:      render.ModeNormal,
	orbit:     true,
	fpsLimit:  60,
	maxLights: 8,
}

// GetRenderMode returns the current visualization mode
func GetRenderMode() render.Mode {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.mode
}

// SetRenderMode sets the visualization mode
func SetRenderMode(mode render.Mode) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.mode = mode
}

// CycleRenderMode advances to the next mode and returns it
func CycleRenderMode() render.Mode {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.mode = globalRenderSettings.mode.Next()
	return globalRenderSettings.mode
}

// GetShowAxes reports whether node axes are drawn
func GetShowAxes() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.showAxes
}

// SetShowAxes toggles the axes pass
func SetShowAxes(show bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.showAxes = show
}

// GetShowLightMarkers reports whether selected light positions are marked
func GetShowLightMarkers() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.showLightMarkers
}

// SetShowLightMarkers toggles the light marker pass
func SetShowLightMarkers(show bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.showLightMarkers = show
}

// GetOrbit reports whether the camera orbits automatically
func GetOrbit() bool {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.orbit
}

// SetOrbit enables or disables the camera orbit
func SetOrbit(enabled bool) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()
	globalRenderSettings.orbit = enabled
}

// GetFPSLimit returns the frame cap, 0 for unlimited
func GetFPSLimit() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.fpsLimit
}

// SetFPSLimit sets the frame cap. Non-positive values disable it.
func SetFPSLimit(fps int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	// Clamp to reasonable values
	if fps <= 0 {
		fps = 0
	} else if fps < 15 {
		fps = 15
	} else if fps > 480 {
		fps = 480
	}

	globalRenderSettings.fpsLimit = fps
}

// GetMaxLights returns the number of shader light slots in use
func GetMaxLights() int {
	globalRenderSettings.mu.RLock()
	defer globalRenderSettings.mu.RUnlock()
	return globalRenderSettings.maxLights
}

// SetMaxLights sets the number of shader light slots, clamped to what the shaders declare
func SetMaxLights(n int) {
	globalRenderSettings.mu.Lock()
	defer globalRenderSettings.mu.Unlock()

	if n < MinLights {
		n = MinLights
	}
	if n > MaxLights {
		n = MaxLights
	}

	globalRenderSettings.maxLights = n
}
