package render

import (
	"scenery/internal/light"
	"scenery/internal/material"
	"scenery/internal/mesh"
	"scenery/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

// LightData is the flattened per-light record a shader light slot receives.
type LightData struct {
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	Color       mgl32.Vec3
	Specular    mgl32.Vec3
	Ambient     mgl32.Vec3
	Intensity   float32
	Constant    float32
	Linear      float32
	Quadratic   float32
	CutOff      float32
	OuterCutOff float32
	Type        light.Type
	Size        mgl32.Vec2
}

// NewLightData snapshots a light using its global position.
func NewLightData(l *light.Light) LightData {
	return LightData{
		Position:    l.GlobalPosition(),
		Direction:   l.Direction,
		Color:       l.Color,
		Specular:    l.Specular,
		Ambient:     l.Ambient,
		Intensity:   l.Intensity,
		Constant:    l.Constant,
		Linear:      l.Linear,
		Quadratic:   l.Quadratic,
		CutOff:      l.CutOff,
		OuterCutOff: l.OuterCutOff,
		Type:        l.Type,
		Size:        l.Size,
	}
}

// DrawCall carries everything a rasterizer needs to draw one node. The
// renderer reuses a single DrawCall across nodes; rasterizers must not keep
// it or its Lights slice after returning.
type DrawCall struct {
	Node    *scene.Node
	Meshes  []*mesh.Mesh
	Program material.Program

	Model      mgl32.Mat4
	Parent     mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4

	CameraPosition mgl32.Vec3
	Near, Far      float32
	Time           float32
	Mode           Mode

	// Lights are ordered nearest first; shader light slots are positional.
	Lights []LightData
}

// Rasterizer issues GPU work for a node. It owns every backend resource.
type Rasterizer interface {
	// MaxLights is the number of light slots the shaders support.
	MaxLights() int
	Draw(call *DrawCall)
}

// AxesDrawer is implemented by rasterizers that can draw a node's local axes.
type AxesDrawer interface {
	DrawAxes(call *DrawCall)
}

// LightMarkerDrawer is implemented by rasterizers that can mark the
// positions of the lights selected for a node.
type LightMarkerDrawer interface {
	DrawLightMarkers(call *DrawCall)
}
