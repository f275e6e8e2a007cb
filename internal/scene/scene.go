package scene

import (
	"fmt"

	"scenery/internal/camera"
	"scenery/internal/light"
	"scenery/internal/logging"
	"scenery/internal/material"
	"scenery/internal/mesh"
	"scenery/internal/texture"
)

// Scene owns the node tree, the light and camera registries, the materials
// and the texture pool. Registration order of lights is preserved and used
// to break ties in light selection.
type Scene struct {
	root      *Node
	lights    []*light.Light
	cameras   []*camera.Camera
	materials []*material.Material
	textures  *texture.Pool

	frame uint64

	stack        []propagateEntry
	lightScratch []lightDistance
}

// New creates an empty scene. Options configure its texture pool.
func New(opts ...texture.PoolOption) *Scene {
	return &Scene{textures: texture.NewPool(opts...)}
}

// Root returns the root node, or nil for an empty scene.
func (s *Scene) Root() *Node {
	return s.root
}

// SetRoot replaces the root node. The previous tree is not released, but its
// lights fall back to their original positions.
func (s *Scene) SetRoot(root *Node) {
	if s.root != nil && s.root != root {
		resetLights(s.root)
	}
	s.root = root
}

// Frame returns the propagation token, incremented on every Propagate.
// Zero means the scene has never been propagated.
func (s *Scene) Frame() uint64 {
	return s.frame
}

// Textures returns the scene's texture pool.
func (s *Scene) Textures() *texture.Pool {
	return s.textures
}

// AddLight registers a light. Registering nil or the same light twice fails.
func (s *Scene) AddLight(l *light.Light) error {
	if l == nil {
		return ErrNilLight
	}
	for _, existing := range s.lights {
		if existing == l {
			return fmt.Errorf("light %q: %w", l.Name, ErrDuplicate)
		}
	}
	s.lights = append(s.lights, l)
	return nil
}

// Lights returns the registered lights in registration order.
func (s *Scene) Lights() []*light.Light {
	out := make([]*light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

// FindLight returns the first registered light with the given name, or nil.
func (s *Scene) FindLight(name string) *light.Light {
	for _, l := range s.lights {
		if l.Name == name {
			return l
		}
	}
	return nil
}

// AddCamera registers a camera. Registering nil or the same camera twice fails.
func (s *Scene) AddCamera(c *camera.Camera) error {
	if c == nil {
		return ErrNilCamera
	}
	for _, existing := range s.cameras {
		if existing == c {
			return fmt.Errorf("camera %q: %w", c.Name, ErrDuplicate)
		}
	}
	s.cameras = append(s.cameras, c)
	return nil
}

// Cameras returns the registered cameras in registration order.
func (s *Scene) Cameras() []*camera.Camera {
	out := make([]*camera.Camera, len(s.cameras))
	copy(out, s.cameras)
	return out
}

// FindCamera returns the first registered camera with the given name, or nil.
func (s *Scene) FindCamera(name string) *camera.Camera {
	for _, c := range s.cameras {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// ActiveCamera returns the first registered camera, or nil.
func (s *Scene) ActiveCamera() *camera.Camera {
	if len(s.cameras) == 0 {
		return nil
	}
	return s.cameras[0]
}

// AddMaterial registers a material. Adding the same material again is a no-op.
func (s *Scene) AddMaterial(m *material.Material) error {
	if m == nil {
		return ErrNilMaterial
	}
	for _, existing := range s.materials {
		if existing == m {
			return nil
		}
	}
	s.materials = append(s.materials, m)
	return nil
}

// Materials returns the registered materials.
func (s *Scene) Materials() []*material.Material {
	out := make([]*material.Material, len(s.materials))
	copy(out, s.materials)
	return out
}

// Release frees the node tree, then the registries and the texture pool.
// The scene is empty afterwards and may be reused.
func (s *Scene) Release(r mesh.Releaser) {
	if s == nil {
		return
	}
	if s.root != nil {
		s.root.Release(r)
		s.root = nil
	}
	s.lights = nil
	s.cameras = nil
	s.materials = nil
	s.textures.Release()
	s.frame = 0
	logging.Logger().Debug("scene released")
}
