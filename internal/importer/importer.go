// Package importer builds scenes from YAML scene descriptions.
package importer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"scenery/internal/camera"
	"scenery/internal/light"
	"scenery/internal/logging"
	"scenery/internal/material"
	"scenery/internal/mesh"
	"scenery/internal/scene"
	"scenery/internal/texture"

	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// ErrInvalid marks a malformed scene description.
var ErrInvalid = errors.New("invalid scene description")

// Load reads the scene description at path. Relative texture directories are
// resolved against the file's directory.
func Load(path string, opts ...texture.PoolOption) (*scene.Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()

	s, err := Decode(f, filepath.Dir(path), opts...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// Decode builds a scene from a YAML description. baseDir anchors a relative
// texture_dir. Lights and cameras are linked to nodes by name once the tree
// is built.
func Decode(r io.Reader, baseDir string, opts ...texture.PoolOption) (_ *scene.Scene, err error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode scene: %w", err)
	}

	s := scene.New(opts...)
	// textures are uploaded before the tree is validated
	defer func() {
		if err != nil {
			s.Release(nil)
		}
	}()
	s.Textures().SetDirectory(textureDir(baseDir, doc.TextureDir))

	for i := range doc.Lights {
		l, err := buildLight(&doc.Lights[i])
		if err != nil {
			return nil, err
		}
		if err := s.AddLight(l); err != nil {
			return nil, err
		}
	}
	for i := range doc.Cameras {
		c, err := buildCamera(&doc.Cameras[i])
		if err != nil {
			return nil, err
		}
		if err := s.AddCamera(c); err != nil {
			return nil, err
		}
	}

	preloadTextures(s.Textures(), doc.Materials)
	materials := make(map[string]*material.Material, len(doc.Materials))
	for i := range doc.Materials {
		m, err := buildMaterial(s.Textures(), &doc.Materials[i])
		if err != nil {
			return nil, err
		}
		if err := s.AddMaterial(m); err != nil {
			return nil, err
		}
		materials[m.Name] = m
	}

	if doc.Root != nil {
		root, err := buildNode(doc.Root, materials)
		if err != nil {
			return nil, err
		}
		s.SetRoot(root)
	}

	lights, cameras := s.AssociateLightsAndCameras()
	logging.Logger().Info("scene imported",
		"nodes", s.Root().Count(),
		"lights", len(doc.Lights),
		"cameras", len(doc.Cameras),
		"materials", len(doc.Materials),
		"textures", s.Textures().Len(),
		"linked_lights", lights,
		"linked_cameras", cameras)
	return s, nil
}

func textureDir(baseDir, dir string) string {
	if dir == "" {
		return baseDir
	}
	dir = filepath.FromSlash(dir)
	if filepath.IsAbs(dir) || baseDir == "" {
		return dir
	}
	return filepath.Join(baseDir, dir)
}

func buildLight(d *lightDoc) (*light.Light, error) {
	pos, err := vec3("light "+d.Name+" position", d.Position, mgl32.Vec3{})
	if err != nil {
		return nil, err
	}
	typ := light.ParseType(d.Type)
	if d.Type == "" {
		typ = light.TypePoint
	}

	var opts []light.Option
	if len(d.Direction) > 0 {
		dir, err := vec3("light "+d.Name+" direction", d.Direction, mgl32.Vec3{})
		if err != nil {
			return nil, err
		}
		opts = append(opts, light.WithDirection(dir))
	}
	for _, c := range []struct {
		field string
		v     []float32
		opt   func(mgl32.Vec3) light.Option
	}{
		{"color", d.Color, light.WithColor},
		{"specular", d.Specular, light.WithSpecular},
		{"ambient", d.Ambient, light.WithAmbient},
	} {
		if len(c.v) == 0 {
			continue
		}
		v, err := vec3("light "+d.Name+" "+c.field, c.v, mgl32.Vec3{})
		if err != nil {
			return nil, err
		}
		opts = append(opts, c.opt(v))
	}
	if d.Intensity != nil {
		opts = append(opts, light.WithIntensity(*d.Intensity))
	}
	if len(d.Attenuation) > 0 {
		a, err := vec3("light "+d.Name+" attenuation", d.Attenuation, mgl32.Vec3{})
		if err != nil {
			return nil, err
		}
		opts = append(opts, light.WithAttenuation(a[0], a[1], a[2]))
	}
	if len(d.Spot) > 0 {
		cone, err := vec2("light "+d.Name+" spot", d.Spot, mgl32.Vec2{})
		if err != nil {
			return nil, err
		}
		opts = append(opts, light.WithSpotCone(cone[0], cone[1]))
	}
	if len(d.Size) > 0 {
		size, err := vec2("light "+d.Name+" size", d.Size, mgl32.Vec2{})
		if err != nil {
			return nil, err
		}
		opts = append(opts, light.WithSize(size[0], size[1]))
	}
	return light.New(d.Name, typ, pos, opts...), nil
}

func buildCamera(d *cameraDoc) (*camera.Camera, error) {
	c := camera.New(d.Name)
	var err error
	if c.Position, err = vec3("camera "+d.Name+" position", d.Position, c.Position); err != nil {
		return nil, err
	}
	if c.LookAt, err = vec3("camera "+d.Name+" look_at", d.LookAt, c.LookAt); err != nil {
		return nil, err
	}
	if c.Up, err = vec3("camera "+d.Name+" up", d.Up, c.Up); err != nil {
		return nil, err
	}
	if d.FOV > 0 {
		c.FOV = mgl32.DegToRad(d.FOV)
	}
	if d.Near > 0 {
		c.Near = d.Near
	}
	if d.Far > 0 {
		c.Far = d.Far
	}
	if d.Near > 0 && d.Far > 0 && d.Far <= d.Near {
		return nil, fmt.Errorf("camera %s: far %.3f must exceed near %.3f: %w", d.Name, d.Far, d.Near, ErrInvalid)
	}
	c.Height = d.Height
	if d.Distance > 0 {
		c.Distance = d.Distance
	} else {
		c.Distance = c.Position.Sub(c.LookAt).Len()
	}
	return c, nil
}

// preloadTextures decodes every referenced texture up front, in material then
// slot order. Failures are left for buildMaterial to report per slot.
func preloadTextures(pool *texture.Pool, docs []materialDoc) {
	var paths []string
	for i := range docs {
		var bySlot [material.SlotCount]string
		for name, raw := range docs[i].Textures {
			if slot, ok := material.ParseSlot(name); ok {
				bySlot[slot] = raw
			}
		}
		for _, raw := range bySlot {
			if raw != "" {
				paths = append(paths, raw)
			}
		}
	}
	if len(paths) == 0 {
		return
	}
	n, err := pool.Preload(context.Background(), paths)
	logging.Logger().Debug("textures preloaded", "requested", len(paths), "loaded", n, "err", err)
}

func buildMaterial(pool *texture.Pool, d *materialDoc) (*material.Material, error) {
	if d.Name == "" {
		return nil, fmt.Errorf("material without name: %w", ErrInvalid)
	}
	m := material.New(d.Name)
	var err error
	if m.Albedo, err = vec3("material "+d.Name+" albedo", d.Albedo, m.Albedo); err != nil {
		return nil, err
	}
	if d.Metallic != nil {
		m.Metallic = *d.Metallic
	}
	if d.Roughness != nil {
		m.Roughness = *d.Roughness
	}
	if d.AO != nil {
		m.AO = *d.AO
	}

	paths := make(map[material.Slot]string, len(d.Textures))
	for name, raw := range d.Textures {
		slot, ok := material.ParseSlot(name)
		if !ok {
			return nil, fmt.Errorf("material %s: unknown texture slot %q: %w", d.Name, name, ErrInvalid)
		}
		paths[slot] = raw
	}
	m.LoadTextures(pool, paths)
	return m, nil
}

func buildNode(d *nodeDoc, materials map[string]*material.Material) (*scene.Node, error) {
	original, err := nodeMatrix(d)
	if err != nil {
		return nil, err
	}
	n := scene.NewNode(d.Name, original)

	for i := range d.Meshes {
		m, err := buildMesh(&d.Meshes[i], materials)
		if err != nil {
			return nil, fmt.Errorf("node %s: %w", d.Name, err)
		}
		if err := n.AddMesh(m); err != nil {
			return nil, err
		}
	}
	for _, cd := range d.Children {
		if cd == nil {
			continue
		}
		child, err := buildNode(cd, materials)
		if err != nil {
			return nil, err
		}
		if err := n.AddChild(child); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func nodeMatrix(d *nodeDoc) (mgl32.Mat4, error) {
	if len(d.Matrix) > 0 {
		if len(d.Matrix) != 16 {
			return mgl32.Ident4(), fmt.Errorf("node %s matrix: want 16 values, got %d: %w", d.Name, len(d.Matrix), ErrInvalid)
		}
		var m mgl32.Mat4
		copy(m[:], d.Matrix)
		return m, nil
	}

	t := scene.IdentityTransform()
	var err error
	if t.Position, err = vec3("node "+d.Name+" translate", d.Translate, t.Position); err != nil {
		return mgl32.Ident4(), err
	}
	rot, err := vec3("node "+d.Name+" rotate", d.Rotate, mgl32.Vec3{})
	if err != nil {
		return mgl32.Ident4(), err
	}
	t.Rotation = mgl32.Vec3{mgl32.DegToRad(rot[0]), mgl32.DegToRad(rot[1]), mgl32.DegToRad(rot[2])}
	if t.Scale, err = vec3("node "+d.Name+" scale", d.Scale, t.Scale); err != nil {
		return mgl32.Ident4(), err
	}
	return t.Matrix(), nil
}

func buildMesh(d *meshDoc, materials map[string]*material.Material) (*mesh.Mesh, error) {
	var m *mesh.Mesh
	switch strings.ToLower(d.Primitive) {
	case "cube":
		size := d.Size
		if size == 0 {
			size = 1
		}
		m = mesh.Cube(d.Name, size)
	case "":
		if len(d.Vertices) == 0 || len(d.Vertices)%mesh.FloatsPerVertex != 0 {
			return nil, fmt.Errorf("mesh %s: vertex data must be a non-empty multiple of %d floats: %w",
				d.Name, mesh.FloatsPerVertex, ErrInvalid)
		}
		count := uint32(len(d.Vertices) / mesh.FloatsPerVertex)
		for _, idx := range d.Indices {
			if idx >= count {
				return nil, fmt.Errorf("mesh %s: index %d out of range: %w", d.Name, idx, ErrInvalid)
			}
		}
		m = &mesh.Mesh{Name: d.Name, Vertices: d.Vertices, Indices: d.Indices}
	default:
		return nil, fmt.Errorf("mesh %s: unknown primitive %q: %w", d.Name, d.Primitive, ErrInvalid)
	}

	switch strings.ToLower(d.Mode) {
	case "", "triangles":
		m.Primitive = mesh.Triangles
	case "lines":
		m.Primitive = mesh.Lines
	case "points":
		m.Primitive = mesh.Points
	default:
		return nil, fmt.Errorf("mesh %s: unknown mode %q: %w", d.Name, d.Mode, ErrInvalid)
	}

	if d.Material != "" {
		m.Material = materials[d.Material]
		if m.Material == nil {
			logging.Logger().Warn("mesh references unknown material", "mesh", d.Name, "material", d.Material)
		}
	}
	return m, nil
}
