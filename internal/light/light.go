package light

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Type identifies the kind of light source.
type Type int

const (
	// TypeDirectional has no position, only a direction (sun, moon).
	TypeDirectional Type = iota
	// TypePoint emits in all directions and attenuates with distance.
	TypePoint
	// TypeSpot emits in a cone bounded by CutOff and OuterCutOff.
	TypeSpot
	// TypeArea emits from a rectangle of Size.
	TypeArea
	// TypeUnknown is used for imported lights of unsupported kinds.
	TypeUnknown
)

func (t Type) String() string {
	switch t {
	case TypeDirectional:
		return "directional"
	case TypePoint:
		return "point"
	case TypeSpot:
		return "spot"
	case TypeArea:
		return "area"
	default:
		return "unknown"
	}
}

// ParseType maps an imported type name to a Type.
func ParseType(s string) Type {
	switch s {
	case "directional", "sun":
		return TypeDirectional
	case "point":
		return TypePoint
	case "spot":
		return TypeSpot
	case "area":
		return TypeArea
	default:
		return TypeUnknown
	}
}

// Light is a scene-owned light source. Nodes refer to lights without owning them.
//
// The original position is the authoring-time, node-local position and never
// changes after New. The global position is recomputed by transform
// propagation for lights attached to a node; lights without an owning node
// keep their original position.
type Light struct {
	Name string
	Type Type

	Direction mgl32.Vec3
	Color     mgl32.Vec3
	Specular  mgl32.Vec3
	Ambient   mgl32.Vec3
	Intensity float32

	// Attenuation factors for point and spot lights.
	Constant  float32
	Linear    float32
	Quadratic float32

	// Spot cone cosines.
	CutOff      float32
	OuterCutOff float32

	// Size is the area light extent.
	Size mgl32.Vec2

	originalPosition mgl32.Vec3
	globalPosition   mgl32.Vec3
}

// Option configures a Light in New.
type Option func(*Light)

// New creates a light at the given node-local position with defaults matching
// a white unit-intensity point light.
func New(name string, typ Type, position mgl32.Vec3, opts ...Option) *Light {
	l := &Light{
		Name:             name,
		Type:             typ,
		Direction:        mgl32.Vec3{0, -1, 0},
		Color:            mgl32.Vec3{1, 1, 1},
		Specular:         mgl32.Vec3{1, 1, 1},
		Ambient:          mgl32.Vec3{0.1, 0.1, 0.1},
		Intensity:        1.0,
		Constant:         1.0,
		Linear:           0.09,
		Quadratic:        0.032,
		CutOff:           0.9063, // cos(25°)
		OuterCutOff:      0.8192, // cos(35°)
		originalPosition: position,
		globalPosition:   position,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// WithDirection sets the normalized light direction.
func WithDirection(d mgl32.Vec3) Option {
	return func(l *Light) {
		if d.Len() > 0 {
			d = d.Normalize()
		}
		l.Direction = d
	}
}

// WithColor sets the diffuse color.
func WithColor(c mgl32.Vec3) Option {
	return func(l *Light) { l.Color = c }
}

// WithSpecular sets the specular color.
func WithSpecular(c mgl32.Vec3) Option {
	return func(l *Light) { l.Specular = c }
}

// WithAmbient sets the ambient color.
func WithAmbient(c mgl32.Vec3) Option {
	return func(l *Light) { l.Ambient = c }
}

// WithIntensity sets the scalar intensity.
func WithIntensity(i float32) Option {
	return func(l *Light) { l.Intensity = i }
}

// WithAttenuation sets the constant, linear and quadratic attenuation terms.
func WithAttenuation(constant, linear, quadratic float32) Option {
	return func(l *Light) {
		l.Constant = constant
		l.Linear = linear
		l.Quadratic = quadratic
	}
}

// WithCutOff sets the spot cone cosines directly, as imported data carries them.
func WithCutOff(cutOff, outerCutOff float32) Option {
	return func(l *Light) {
		l.CutOff = cutOff
		l.OuterCutOff = outerCutOff
	}
}

// WithSpotCone sets the spot cone from half-angles in degrees.
func WithSpotCone(innerDeg, outerDeg float32) Option {
	return func(l *Light) {
		l.CutOff = math32.Cos(mgl32.DegToRad(innerDeg))
		l.OuterCutOff = math32.Cos(mgl32.DegToRad(outerDeg))
	}
}

// WithSize sets the extent of an area light.
func WithSize(w, h float32) Option {
	return func(l *Light) { l.Size = mgl32.Vec2{w, h} }
}

// OriginalPosition returns the authoring-time, node-local position.
func (l *Light) OriginalPosition() mgl32.Vec3 {
	return l.originalPosition
}

// GlobalPosition returns the world-space position as of the last propagation.
func (l *Light) GlobalPosition() mgl32.Vec3 {
	return l.globalPosition
}

// UpdateGlobal recomputes the global position from the owning node's global
// transform.
func (l *Light) UpdateGlobal(nodeGlobal mgl32.Mat4) {
	l.globalPosition = nodeGlobal.Mul4x1(l.originalPosition.Vec4(1)).Vec3()
}

// ResetGlobal restores the global position to the original position, as for a
// light detached from any node.
func (l *Light) ResetGlobal() {
	l.globalPosition = l.originalPosition
}

func (l *Light) String() string {
	if l == nil {
		return "Light: <nil>"
	}
	name := l.Name
	if name == "" {
		name = "Unnamed Light"
	}
	return fmt.Sprintf("Light: %s | Type: %s | Position: %v | Global: %v | Color: %v | Intensity: %.2f | Attenuation: (%.3f, %.3f, %.3f)",
		name, l.Type, l.originalPosition, l.globalPosition, l.Color, l.Intensity, l.Constant, l.Linear, l.Quadratic)
}
