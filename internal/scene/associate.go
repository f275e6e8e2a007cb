package scene

import (
	"scenery/internal/camera"
	"scenery/internal/light"
)

// Registry looks up lights and cameras by name.
type Registry interface {
	FindLight(name string) *light.Light
	FindCamera(name string) *camera.Camera
}

// Associate walks the tree rooted at root and links every node to the light
// and camera sharing its name in reg. Nodes without a match keep whatever
// they had. It returns how many lights and cameras were linked.
func Associate(root *Node, reg Registry) (lights, cameras int) {
	if root == nil || reg == nil {
		return 0, 0
	}
	root.Walk(func(n *Node, _ int) bool {
		if n.Name == "" {
			return true
		}
		if l := reg.FindLight(n.Name); l != nil {
			n.light = l
			lights++
		}
		if c := reg.FindCamera(n.Name); c != nil {
			n.camera = c
			cameras++
		}
		return true
	})
	return lights, cameras
}

// AssociateLightsAndCameras links scene nodes to registered lights and
// cameras by name. See Associate.
func (s *Scene) AssociateLightsAndCameras() (lights, cameras int) {
	return Associate(s.root, s)
}
