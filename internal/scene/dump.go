package scene

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes a human-readable summary of the scene and its node tree.
func (s *Scene) Dump(w io.Writer) error {
	dir := s.textures.Directory()
	if _, err := fmt.Fprintf(w, "Scene | Lights: %d | Cameras: %d | Materials: %d | Textures: %d (%q)\n",
		len(s.lights), len(s.cameras), len(s.materials), s.textures.Len(), dir); err != nil {
		return err
	}
	for _, l := range s.lights {
		if _, err := fmt.Fprintf(w, "  %s\n", l); err != nil {
			return err
		}
	}
	if s.root == nil {
		_, err := io.WriteString(w, "  (no nodes)\n")
		return err
	}
	var err error
	s.root.Walk(func(n *Node, depth int) bool {
		if err != nil {
			return false
		}
		_, err = fmt.Fprintf(w, "%s%s\n", strings.Repeat("    ", depth+1), n)
		return err == nil
	})
	return err
}

func (s *Scene) String() string {
	var b strings.Builder
	_ = s.Dump(&b)
	return b.String()
}

func (n *Node) String() string {
	lightName, cameraName := "None", "None"
	if n.light != nil {
		lightName = n.light.Name
	}
	if n.camera != nil {
		cameraName = n.camera.Name
	}
	return fmt.Sprintf("Node: %s | Children: %d | Meshes: %d | Light: %s | Camera: %s",
		n.Name, len(n.children), len(n.meshes), lightName, cameraName)
}
