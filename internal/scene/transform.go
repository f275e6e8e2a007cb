package scene

import "github.com/go-gl/mathgl/mgl32"

// Transform is a per-frame pose applied on top of a node's original transform.
// Rotation holds Euler angles in radians about X, Y and Z.
//
// The zero value has a zero scale; use IdentityTransform as a starting point.
type Transform struct {
	Position mgl32.Vec3
	Rotation mgl32.Vec3
	Scale    mgl32.Vec3
}

// IdentityTransform returns a transform with no translation, no rotation and unit scale.
func IdentityTransform() Transform {
	return Transform{Scale: mgl32.Vec3{1, 1, 1}}
}

// Matrix composes translate, rotate X, rotate Y, rotate Z, then scale:
// M = T · Rx · Ry · Rz · S. A nil transform yields the identity.
func (t *Transform) Matrix() mgl32.Mat4 {
	if t == nil {
		return mgl32.Ident4()
	}
	return mgl32.Translate3D(t.Position[0], t.Position[1], t.Position[2]).
		Mul4(mgl32.HomogRotate3DX(t.Rotation[0])).
		Mul4(mgl32.HomogRotate3DY(t.Rotation[1])).
		Mul4(mgl32.HomogRotate3DZ(t.Rotation[2])).
		Mul4(mgl32.Scale3D(t.Scale[0], t.Scale[1], t.Scale[2]))
}
