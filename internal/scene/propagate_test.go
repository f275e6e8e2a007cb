package scene

import (
	"testing"

	"scenery/internal/light"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildTree returns root -> {arm -> {hand}, leg}.
func buildTree(t *testing.T) (root, arm, hand, leg *Node) {
	t.Helper()
	root = NewNode("root", mgl32.Translate3D(0, 1, 0))
	arm = NewNode("arm", mgl32.Translate3D(2, 0, 0).Mul4(mgl32.HomogRotate3DZ(mgl32.DegToRad(90))))
	hand = NewNode("hand", mgl32.Translate3D(1, 0, 0))
	leg = NewNode("leg", mgl32.Scale3D(1, 2, 1))
	require.NoError(t, root.AddChild(arm))
	require.NoError(t, arm.AddChild(hand))
	require.NoError(t, root.AddChild(leg))
	return root, arm, hand, leg
}

func TestPropagateGlobalInvariant(t *testing.T) {
	root, arm, hand, leg := buildTree(t)

	base := IdentityTransform()
	base.Position = mgl32.Vec3{10, 0, 0}
	base.Rotation = mgl32.Vec3{0, mgl32.DegToRad(30), 0}
	assert.Equal(t, 4, Propagate(root, &base))

	assert.True(t, root.GlobalTransform().ApproxEqual(root.LocalTransform()))
	assert.True(t, root.LocalTransform().ApproxEqual(root.OriginalTransform().Mul4(base.Matrix())))
	for _, n := range []*Node{arm, hand, leg} {
		want := n.Parent().GlobalTransform().Mul4(n.LocalTransform())
		assert.True(t, n.GlobalTransform().ApproxEqualThreshold(want, 1e-5), n.Name)
	}

	// children keep local == original until transformed themselves
	assert.Equal(t, hand.OriginalTransform(), hand.LocalTransform())
}

func TestPropagateWorldPositions(t *testing.T) {
	root, _, hand, _ := buildTree(t)
	Propagate(root, nil)

	// root (0,1,0) -> arm (2,0,0) rotated 90 about Z -> hand (1,0,0) becomes (0,1,0)
	got := hand.WorldPosition()
	assert.True(t, got.ApproxEqualThreshold(mgl32.Vec3{2, 2, 0}, 1e-5), "got %v", got)
}

func TestPropagateChildTransformApplied(t *testing.T) {
	root, arm, hand, _ := buildTree(t)

	tr := IdentityTransform()
	tr.Scale = mgl32.Vec3{3, 3, 3}
	arm.ApplyTransform(&tr)
	Propagate(root, nil)

	want := root.GlobalTransform().Mul4(arm.OriginalTransform()).Mul4(tr.Matrix()).Mul4(hand.LocalTransform())
	assert.True(t, hand.GlobalTransform().ApproxEqualThreshold(want, 1e-5))
}

func TestPropagateUpdatesAttachedLights(t *testing.T) {
	s := New()
	root := NewNode("root", mgl32.Ident4())
	lampNode := NewNode("lamp", mgl32.Translate3D(5, 0, 0))
	require.NoError(t, root.AddChild(lampNode))
	s.SetRoot(root)

	attached := light.New("lamp", light.TypePoint, mgl32.Vec3{1, 0, 0})
	loose := light.New("loose", light.TypePoint, mgl32.Vec3{0, 0, 3})
	require.NoError(t, s.AddLight(attached))
	require.NoError(t, s.AddLight(loose))
	lights, _ := s.AssociateLightsAndCameras()
	require.Equal(t, 1, lights)

	s.Propagate(nil)
	assert.True(t, attached.GlobalPosition().ApproxEqual(mgl32.Vec3{6, 0, 0}))
	assert.Equal(t, mgl32.Vec3{0, 0, 3}, loose.GlobalPosition())

	base := IdentityTransform()
	base.Position = mgl32.Vec3{0, 0, -1}
	s.Propagate(&base)
	assert.True(t, attached.GlobalPosition().ApproxEqual(mgl32.Vec3{6, 0, -1}))
}

func TestScenePropagateAdvancesFrame(t *testing.T) {
	s := New()
	assert.Zero(t, s.Frame())
	assert.Zero(t, s.Propagate(nil))
	assert.Equal(t, uint64(1), s.Frame())

	root, _, _, _ := buildTree(t)
	s.SetRoot(root)
	assert.Equal(t, 4, s.Propagate(nil))
	assert.Equal(t, uint64(2), s.Frame())
}

func TestPropagateDeepChain(t *testing.T) {
	root := NewNode("n0", mgl32.Ident4())
	cur := root
	const depth = 5000
	for i := 1; i < depth; i++ {
		next := NewNode("", mgl32.Translate3D(0, 0, 1))
		require.NoError(t, cur.AddChild(next))
		cur = next
	}
	assert.Equal(t, depth, Propagate(root, nil))
	assert.InDelta(t, float32(depth-1), cur.WorldPosition().Z(), 1e-3)
}

func TestPropagateNilRoot(t *testing.T) {
	assert.Zero(t, Propagate(nil, nil))
}

func TestDetachedLightReturnsToOriginal(t *testing.T) {
	root := NewNode("root", mgl32.Ident4())
	lamp := NewNode("lamp", mgl32.Translate3D(5, 0, 0))
	require.NoError(t, root.AddChild(lamp))
	l := light.New("bulb", light.TypePoint, mgl32.Vec3{})
	lamp.SetLight(l)

	Propagate(root, nil)
	assert.Equal(t, mgl32.Vec3{5, 0, 0}, l.GlobalPosition())

	require.True(t, root.RemoveChild(lamp))
	assert.Equal(t, l.OriginalPosition(), l.GlobalPosition())
	Propagate(root, nil)
	assert.Equal(t, l.OriginalPosition(), l.GlobalPosition())
}

func TestScenePropagateResetsUnownedLights(t *testing.T) {
	s := New()
	root := NewNode("root", mgl32.Translate3D(0, 3, 0))
	lamp := NewNode("lamp", mgl32.Translate3D(1, 0, 0))
	require.NoError(t, root.AddChild(lamp))
	s.SetRoot(root)

	owned := light.New("owned", light.TypePoint, mgl32.Vec3{})
	loose := light.New("loose", light.TypePoint, mgl32.Vec3{0, 0, 2})
	require.NoError(t, s.AddLight(owned))
	require.NoError(t, s.AddLight(loose))
	lamp.SetLight(owned)

	s.Propagate(nil)
	assert.True(t, owned.GlobalPosition().ApproxEqual(mgl32.Vec3{1, 3, 0}))
	assert.Equal(t, mgl32.Vec3{0, 0, 2}, loose.GlobalPosition())

	// unlinking the light directly on the node
	lamp.SetLight(nil)
	assert.Equal(t, owned.OriginalPosition(), owned.GlobalPosition())
	lamp.SetLight(owned)
	s.Propagate(nil)
	require.True(t, owned.GlobalPosition().ApproxEqual(mgl32.Vec3{1, 3, 0}))

	// replacing the root detaches the old tree
	s.SetRoot(NewNode("other", mgl32.Ident4()))
	assert.Equal(t, owned.OriginalPosition(), owned.GlobalPosition())
	s.Propagate(nil)
	assert.Equal(t, owned.OriginalPosition(), owned.GlobalPosition())

	// a light still linked under a detached node is reset on the next frame
	lamp.SetLight(owned)
	owned.UpdateGlobal(mgl32.Translate3D(9, 9, 9))
	s.Propagate(nil)
	assert.Equal(t, owned.OriginalPosition(), owned.GlobalPosition())
}
