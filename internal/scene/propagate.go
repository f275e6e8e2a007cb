package scene

import (
	"scenery/internal/profiling"

	"github.com/go-gl/mathgl/mgl32"
)

type propagateEntry struct {
	node   *Node
	parent mgl32.Mat4
}

// Propagate applies base to root and recomputes the global transform of
// every node under it: global = parent.global · local, with the root's
// global equal to its local. Lights attached to visited nodes get their
// global positions refreshed. Parents are always finished before their
// children. It returns the number of nodes visited.
func Propagate(root *Node, base *Transform) int {
	visited, _ := propagate(root, base, nil)
	return visited
}

func propagate(root *Node, base *Transform, stack []propagateEntry) (int, []propagateEntry) {
	if root == nil {
		return 0, stack
	}
	root.ApplyTransform(base)

	visited := 0
	stack = append(stack[:0], propagateEntry{node: root, parent: mgl32.Ident4()})
	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := top.node
		n.global = top.parent.Mul4(n.local)
		if n.light != nil {
			n.light.UpdateGlobal(n.global)
		}
		visited++

		// reverse push keeps pre-order
		for i := len(n.children) - 1; i >= 0; i-- {
			stack = append(stack, propagateEntry{node: n.children[i], parent: n.global})
		}
	}
	return visited, stack
}

// Propagate runs transform propagation from the scene root and advances the
// frame token. Registered lights not owned by a node in the tree end up at
// their original positions. It returns the number of nodes visited.
func (s *Scene) Propagate(base *Transform) int {
	defer profiling.Track("scene.Propagate")()
	for _, l := range s.lights {
		l.ResetGlobal()
	}
	var visited int
	visited, s.stack = propagate(s.root, base, s.stack)
	s.frame++
	return visited
}
