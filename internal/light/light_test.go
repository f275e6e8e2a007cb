package light

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestNewKeepsOriginalAsGlobal(t *testing.T) {
	l := New("lamp", TypePoint, mgl32.Vec3{1, 2, 3})
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, l.OriginalPosition())
	assert.Equal(t, mgl32.Vec3{1, 2, 3}, l.GlobalPosition())
}

func TestUpdateGlobal(t *testing.T) {
	l := New("lamp", TypePoint, mgl32.Vec3{0, 0, 0})
	l.UpdateGlobal(mgl32.Translate3D(5, 0, 0))
	assert.Equal(t, mgl32.Vec3{5, 0, 0}, l.GlobalPosition())
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, l.OriginalPosition(), "original must not change")

	l.UpdateGlobal(mgl32.Translate3D(7, 1, 0))
	assert.Equal(t, mgl32.Vec3{7, 1, 0}, l.GlobalPosition())

	l.ResetGlobal()
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, l.GlobalPosition())
}

func TestUpdateGlobalOffsetPosition(t *testing.T) {
	l := New("lamp", TypePoint, mgl32.Vec3{1, 0, 0})
	l.UpdateGlobal(mgl32.Translate3D(0, 2, 0).Mul4(mgl32.Scale3D(2, 2, 2)))
	assert.True(t, l.GlobalPosition().ApproxEqual(mgl32.Vec3{2, 2, 0}), "got %v", l.GlobalPosition())
}

func TestOptions(t *testing.T) {
	l := New("spot", TypeSpot, mgl32.Vec3{},
		WithColor(mgl32.Vec3{1, 0, 0}),
		WithSpecular(mgl32.Vec3{0, 1, 0}),
		WithAmbient(mgl32.Vec3{0, 0, 1}),
		WithIntensity(4),
		WithAttenuation(1, 0.5, 0.25),
		WithDirection(mgl32.Vec3{0, 0, -2}),
		WithSpotCone(60, 90),
		WithSize(2, 3),
	)
	assert.Equal(t, mgl32.Vec3{1, 0, 0}, l.Color)
	assert.Equal(t, mgl32.Vec3{0, 1, 0}, l.Specular)
	assert.Equal(t, mgl32.Vec3{0, 0, 1}, l.Ambient)
	assert.Equal(t, float32(4), l.Intensity)
	assert.Equal(t, float32(0.5), l.Linear)
	assert.Equal(t, float32(0.25), l.Quadratic)
	assert.True(t, l.Direction.ApproxEqual(mgl32.Vec3{0, 0, -1}))
	assert.InDelta(t, 0.5, l.CutOff, 1e-5)
	assert.InDelta(t, 0.0, l.OuterCutOff, 1e-5)
	assert.Equal(t, mgl32.Vec2{2, 3}, l.Size)
}

func TestTypeRoundTrip(t *testing.T) {
	for _, typ := range []Type{TypeDirectional, TypePoint, TypeSpot, TypeArea, TypeUnknown} {
		assert.Equal(t, typ, ParseType(typ.String()))
	}
	assert.Equal(t, TypeDirectional, ParseType("sun"))
	assert.Equal(t, TypeUnknown, ParseType("ambient"))
}
