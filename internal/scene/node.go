package scene

import (
	"scenery/internal/camera"
	"scenery/internal/light"
	"scenery/internal/logging"
	"scenery/internal/material"
	"scenery/internal/mesh"

	"github.com/go-gl/mathgl/mgl32"
)

// Node is a scene graph node. Each node owns its children and meshes; the
// parent link is a plain back-reference used for upward queries only. Lights,
// cameras and programs are scene- or backend-owned and only referenced.
type Node struct {
	Name string

	// Program is the shader/material binding used to draw the node's meshes.
	// Nodes without one are traversed but not drawn.
	Program material.Program

	ShowAxes         bool
	ShowLightMarkers bool

	parent   *Node
	children []*Node
	meshes   []*mesh.Mesh
	light    *light.Light
	camera   *camera.Camera

	original mgl32.Mat4
	local    mgl32.Mat4
	global   mgl32.Mat4
}

// NewNode creates a detached node with the given import-time transform.
// Local and global transforms start out equal to it.
func NewNode(name string, original mgl32.Mat4) *Node {
	return &Node{
		Name:     name,
		original: original,
		local:    original,
		global:   original,
	}
}

// Parent returns the parent node, or nil for a root or detached node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns the owned children in insertion order. The slice must not be modified.
func (n *Node) Children() []*Node {
	return n.children
}

// Meshes returns the owned meshes in insertion order. The slice must not be modified.
func (n *Node) Meshes() []*mesh.Mesh {
	return n.meshes
}

// AddChild attaches child as the last child of n. A nil child, a child that
// already has a parent, or a child that is n or one of its ancestors is
// rejected and the tree is left unchanged.
func (n *Node) AddChild(child *Node) error {
	if n == nil || child == nil {
		logging.Logger().Debug("add child rejected", "err", ErrNilNode)
		return ErrNilNode
	}
	if child.parent != nil {
		logging.Logger().Debug("add child rejected", "child", child.Name, "err", ErrHasParent)
		return ErrHasParent
	}
	for a := n; a != nil; a = a.parent {
		if a == child {
			logging.Logger().Debug("add child rejected", "child", child.Name, "err", ErrCycle)
			return ErrCycle
		}
	}
	child.parent = n
	n.children = append(n.children, child)
	return nil
}

// RemoveChild detaches child from n and reports whether it was a child.
// Lights under child return to their original positions.
func (n *Node) RemoveChild(child *Node) bool {
	if n == nil || child == nil {
		return false
	}
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			resetLights(child)
			return true
		}
	}
	return false
}

// AddMesh appends an owned mesh.
func (n *Node) AddMesh(m *mesh.Mesh) error {
	if n == nil {
		return ErrNilNode
	}
	if m == nil {
		logging.Logger().Debug("add mesh rejected", "node", n.Name, "err", ErrNilMesh)
		return ErrNilMesh
	}
	n.meshes = append(n.meshes, m)
	return nil
}

// Light returns the associated light, or nil.
func (n *Node) Light() *light.Light {
	return n.light
}

// SetLight associates a scene-owned light with the node. Passing nil clears it.
func (n *Node) SetLight(l *light.Light) {
	if n.light != nil && n.light != l {
		n.light.ResetGlobal()
	}
	n.light = l
}

// resetLights returns every light owned under n to its original position.
func resetLights(n *Node) {
	n.Walk(func(node *Node, _ int) bool {
		if node.light != nil {
			node.light.ResetGlobal()
		}
		return true
	})
}

// Camera returns the associated camera, or nil.
func (n *Node) Camera() *camera.Camera {
	return n.camera
}

// SetCamera associates a scene-owned camera with the node. Passing nil clears it.
func (n *Node) SetCamera(c *camera.Camera) {
	n.camera = c
}

// OriginalTransform returns the import-time transform.
func (n *Node) OriginalTransform() mgl32.Mat4 {
	return n.original
}

// LocalTransform returns the transform relative to the parent for the current frame.
func (n *Node) LocalTransform() mgl32.Mat4 {
	return n.local
}

// GlobalTransform returns the transform in root space as of the last propagation.
func (n *Node) GlobalTransform() mgl32.Mat4 {
	return n.global
}

// WorldPosition returns the translation column of the global transform.
func (n *Node) WorldPosition() mgl32.Vec3 {
	return n.global.Col(3).Vec3()
}

// ApplyTransform sets local = original · t.Matrix(). A nil t applies the identity.
func (n *Node) ApplyTransform(t *Transform) {
	if n == nil {
		return
	}
	n.local = n.original.Mul4(t.Matrix())
}

// Walk visits the subtree rooted at n in pre-order. Returning false from fn
// skips the visited node's children.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, c := range n.children {
		c.walk(fn, depth+1)
	}
}

// Find returns the first node named name in pre-order, or nil.
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(node *Node, _ int) bool {
		if found != nil {
			return false
		}
		if node.Name == name {
			found = node
			return false
		}
		return true
	})
	return found
}

// Count returns the number of nodes in the subtree rooted at n.
func (n *Node) Count() int {
	count := 0
	n.Walk(func(*Node, int) bool {
		count++
		return true
	})
	return count
}

// SetProgramRecursive assigns p to n and every descendant.
func (n *Node) SetProgramRecursive(p material.Program) {
	n.Walk(func(node *Node, _ int) bool {
		node.Program = p
		return true
	})
}

// SetShowAxesRecursive toggles the debug axes pass for n and every descendant.
func (n *Node) SetShowAxesRecursive(show bool) {
	n.Walk(func(node *Node, _ int) bool {
		node.ShowAxes = show
		return true
	})
}

// SetShowLightMarkersRecursive toggles the light marker pass for n and every descendant.
func (n *Node) SetShowLightMarkersRecursive(show bool) {
	n.Walk(func(node *Node, _ int) bool {
		node.ShowLightMarkers = show
		return true
	})
}

// Release frees the subtree: children first, then the node's own meshes
// through r. Referenced lights, cameras and programs are left alone.
func (n *Node) Release(r mesh.Releaser) {
	if n == nil {
		return
	}
	for _, c := range n.children {
		c.Release(r)
		c.parent = nil
	}
	n.children = nil
	if r != nil {
		for _, m := range n.meshes {
			r.ReleaseMesh(m)
		}
	}
	n.meshes = nil
	n.light = nil
	n.camera = nil
}
