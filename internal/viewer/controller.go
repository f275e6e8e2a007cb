package viewer

import (
	"fmt"

	"scenery/internal/camera"
	"scenery/internal/config"
	"scenery/internal/logging"
	"scenery/internal/profiling"
	"scenery/internal/render"
	"scenery/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// Controls is one frame of user input, already translated from window
// events.
type Controls struct {
	CycleMode     bool
	ToggleAxes    bool
	ToggleMarkers bool
	ToggleOrbit   bool
	ToggleOverlay bool
	Reload        bool
	Quit          bool

	// Zoom is positive towards the target.
	Zoom float32

	Dragging         bool
	CursorX, CursorY float64
}

// Outcome reports what the frame loop has to do after an Update.
type Outcome struct {
	Reload bool
	Quit   bool
	// Visibility is set when axes or light marker flags changed and must
	// be pushed into the node tree.
	Visibility bool
}

// Controller turns Controls into runtime settings changes, the root base
// transform and camera motion.
type Controller struct {
	cam    config.CameraConfig
	offset mgl32.Vec3

	overlay bool

	dragging         bool
	anchorX, anchorY float64
	yaw, pitch       float32 // committed rotation in radians
	dragYaw          float32
	dragPitch        float32

	zoom    float32 // orbit distance adjustment
	pending float32 // free camera zoom not yet applied
}

// NewController creates a controller with the overlay shown.
func NewController(cam config.CameraConfig, offset [3]float32) *Controller {
	return &Controller{
		cam:     cam,
		offset:  mgl32.Vec3(offset),
		overlay: true,
	}
}

// Overlay reports whether the text overlay is visible.
func (c *Controller) Overlay() bool { return c.overlay }

// Dragging reports whether a mouse drag rotation is in progress.
func (c *Controller) Dragging() bool { return c.dragging }

// Update applies one frame of input.
func (c *Controller) Update(in Controls) Outcome {
	var out Outcome
	log := logging.Logger()

	if in.CycleMode {
		mode := config.CycleRenderMode()
		log.Info("render mode", "mode", mode.String())
	}
	if in.ToggleAxes {
		config.SetShowAxes(!config.GetShowAxes())
		out.Visibility = true
	}
	if in.ToggleMarkers {
		config.SetShowLightMarkers(!config.GetShowLightMarkers())
		out.Visibility = true
	}
	if in.ToggleOrbit {
		config.SetOrbit(!config.GetOrbit())
	}
	if in.ToggleOverlay {
		c.overlay = !c.overlay
	}
	out.Reload = in.Reload
	out.Quit = in.Quit

	if in.Zoom != 0 && !config.GetOrbit() {
		c.pending += in.Zoom
	} else if in.Zoom != 0 {
		c.zoom -= in.Zoom
		if limit := 0.5 - c.cam.MinDistance; c.zoom < limit {
			c.zoom = limit
		}
	}

	switch {
	case in.Dragging && !c.dragging:
		c.dragging = true
		c.anchorX, c.anchorY = in.CursorX, in.CursorY
		c.dragYaw, c.dragPitch = 0, 0
	case in.Dragging:
		s := c.cam.RotateSensitivity
		c.dragYaw = float32(in.CursorX-c.anchorX) * s
		c.dragPitch = float32(in.CursorY-c.anchorY) * s
	case c.dragging:
		c.dragging = false
		c.yaw += c.dragYaw
		c.pitch += c.dragPitch
		c.dragYaw, c.dragPitch = 0, 0
	}
	return out
}

// BaseTransform is the transform applied above the scene root: the
// configured offset plus any mouse rotation.
func (c *Controller) BaseTransform() scene.Transform {
	t := scene.IdentityTransform()
	t.Position = c.offset
	t.Rotation = mgl32.Vec3{c.pitch + c.dragPitch, c.yaw + c.dragYaw, 0}
	return t
}

// UpdateCamera orbits cam at time t unless orbiting is disabled or a drag
// is in progress. With orbit off, zoom moves the camera directly.
func (c *Controller) UpdateCamera(cam *camera.Camera, t float32) {
	if cam == nil {
		return
	}
	if !config.GetOrbit() {
		if c.pending != 0 {
			cam.Zoom(c.pending)
			c.pending = 0
		}
		return
	}
	if c.dragging {
		return
	}
	cam.Orbit(t, c.cam.MinDistance+c.zoom, c.cam.MaxDistance+c.zoom, c.cam.AngularSpeed)
}

// ApplyVisibility pushes the axes and light marker flags into the tree.
func ApplyVisibility(root *scene.Node) {
	if root == nil {
		return
	}
	root.SetShowAxesRecursive(config.GetShowAxes())
	root.SetShowLightMarkersRecursive(config.GetShowLightMarkers())
}

// OverlayLines formats the text overlay for one frame.
func OverlayLines(name string, fps float64, stats render.Stats) []string {
	on := func(b bool) string {
		if b {
			return "on"
		}
		return "off"
	}
	return []string{
		fmt.Sprintf("Scene: %s", name),
		fmt.Sprintf("FPS: %.0f", fps),
		fmt.Sprintf("Mode: %s", config.GetRenderMode()),
		fmt.Sprintf("Frame: %d  Nodes: %d  Draws: %d  Aux: %d", stats.Frame, stats.Nodes, stats.Draws, stats.AuxDraws),
		fmt.Sprintf("Lights: %d  Axes: %s  Markers: %s  Orbit: %s",
			config.GetMaxLights(), on(config.GetShowAxes()), on(config.GetShowLightMarkers()), on(config.GetOrbit())),
		fmt.Sprintf("Top: %s", profiling.TopN(3)),
	}
}
