package scene

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestTransformMatrixNilIsIdentity(t *testing.T) {
	var tr *Transform
	assert.Equal(t, mgl32.Ident4(), tr.Matrix())

	id := IdentityTransform()
	assert.True(t, id.Matrix().ApproxEqual(mgl32.Ident4()))
}

func TestTransformMatrixComposition(t *testing.T) {
	tr := Transform{
		Position: mgl32.Vec3{1, 2, 3},
		Rotation: mgl32.Vec3{0, 0, mgl32.DegToRad(90)},
		Scale:    mgl32.Vec3{2, 2, 2},
	}
	// scale, then rotate about Z, then translate
	got := tr.Matrix().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{1, 4, 3}, 1e-5), "got %v", got)
}

func TestTransformRotationOrder(t *testing.T) {
	tr := IdentityTransform()
	tr.Rotation = mgl32.Vec3{0.3, 0.7, 1.1}
	want := mgl32.HomogRotate3DX(0.3).Mul4(mgl32.HomogRotate3DY(0.7)).Mul4(mgl32.HomogRotate3DZ(1.1))
	assert.True(t, tr.Matrix().ApproxEqualThreshold(want, 1e-6))
}
