// Package mesh holds CPU-side geometry handed to a rasterizer.
package mesh

import "scenery/internal/material"

// FloatsPerVertex is the interleaved layout: position (3), normal (3), uv (2).
const FloatsPerVertex = 8

// Primitive selects how indices are assembled.
type Primitive int

const (
	Triangles Primitive = iota
	Lines
	Points
)

// Mesh is owned by exactly one scene node. VAO, VBO and EBO are set by the
// rasterizer on upload and are zero before that.
type Mesh struct {
	Name      string
	Vertices  []float32
	Indices   []uint32
	Material  *material.Material
	Primitive Primitive

	VAO uint32
	VBO uint32
	EBO uint32
}

// Releaser frees the backend resources of a mesh.
type Releaser interface {
	ReleaseMesh(m *Mesh)
}

// VertexCount returns the number of interleaved vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / FloatsPerVertex
}

// IndexCount returns the number of indices.
func (m *Mesh) IndexCount() int {
	return len(m.Indices)
}

// Uploaded reports whether the rasterizer has created buffers for the mesh.
func (m *Mesh) Uploaded() bool {
	return m.VAO != 0
}

// Cube returns a unit cube scaled by size with per-face normals and uvs.
func Cube(name string, size float32) *Mesh {
	h := size / 2
	// Each face: normal, then four corners counter-clockwise seen from outside.
	faces := []struct {
		n       [3]float32
		corners [4][3]float32
	}{
		{[3]float32{0, 0, 1}, [4][3]float32{{-h, -h, h}, {h, -h, h}, {h, h, h}, {-h, h, h}}},
		{[3]float32{0, 0, -1}, [4][3]float32{{h, -h, -h}, {-h, -h, -h}, {-h, h, -h}, {h, h, -h}}},
		{[3]float32{1, 0, 0}, [4][3]float32{{h, -h, h}, {h, -h, -h}, {h, h, -h}, {h, h, h}}},
		{[3]float32{-1, 0, 0}, [4][3]float32{{-h, -h, -h}, {-h, -h, h}, {-h, h, h}, {-h, h, -h}}},
		{[3]float32{0, 1, 0}, [4][3]float32{{-h, h, h}, {h, h, h}, {h, h, -h}, {-h, h, -h}}},
		{[3]float32{0, -1, 0}, [4][3]float32{{-h, -h, -h}, {h, -h, -h}, {h, -h, h}, {-h, -h, h}}},
	}
	uvs := [4][2]float32{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

	m := &Mesh{Name: name, Primitive: Triangles}
	for f, face := range faces {
		for i, c := range face.corners {
			m.Vertices = append(m.Vertices, c[0], c[1], c[2], face.n[0], face.n[1], face.n[2], uvs[i][0], uvs[i][1])
		}
		base := uint32(f * 4)
		m.Indices = append(m.Indices, base, base+1, base+2, base+2, base+3, base)
	}
	return m
}
