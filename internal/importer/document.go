package importer

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// document is the on-disk scene description.
type document struct {
	TextureDir string        `yaml:"texture_dir"`
	Lights     []lightDoc    `yaml:"lights"`
	Cameras    []cameraDoc   `yaml:"cameras"`
	Materials  []materialDoc `yaml:"materials"`
	Root       *nodeDoc      `yaml:"root"`
}

type lightDoc struct {
	Name        string    `yaml:"name"`
	Type        string    `yaml:"type"`
	Position    []float32 `yaml:"position"`
	Direction   []float32 `yaml:"direction"`
	Color       []float32 `yaml:"color"`
	Specular    []float32 `yaml:"specular"`
	Ambient     []float32 `yaml:"ambient"`
	Intensity   *float32  `yaml:"intensity"`
	Attenuation []float32 `yaml:"attenuation"`
	// Spot is the inner and outer cone angle in degrees.
	Spot []float32 `yaml:"spot"`
	Size []float32 `yaml:"size"`
}

type cameraDoc struct {
	Name     string    `yaml:"name"`
	Position []float32 `yaml:"position"`
	LookAt   []float32 `yaml:"look_at"`
	Up       []float32 `yaml:"up"`
	FOV      float32   `yaml:"fov"` // degrees
	Near     float32   `yaml:"near"`
	Far      float32   `yaml:"far"`
	Height   float32   `yaml:"height"`
	Distance float32   `yaml:"distance"`
}

type materialDoc struct {
	Name      string            `yaml:"name"`
	Albedo    []float32         `yaml:"albedo"`
	Metallic  *float32          `yaml:"metallic"`
	Roughness *float32          `yaml:"roughness"`
	AO        *float32          `yaml:"ao"`
	Textures  map[string]string `yaml:"textures"`
}

type nodeDoc struct {
	Name      string     `yaml:"name"`
	Translate []float32  `yaml:"translate"`
	Rotate    []float32  `yaml:"rotate"` // degrees
	Scale     []float32  `yaml:"scale"`
	Matrix    []float32  `yaml:"matrix"` // column-major, overrides translate/rotate/scale
	Meshes    []meshDoc  `yaml:"meshes"`
	Children  []*nodeDoc `yaml:"children"`
}

type meshDoc struct {
	Name      string    `yaml:"name"`
	Primitive string    `yaml:"primitive"` // cube, or empty for inline data
	Size      float32   `yaml:"size"`
	Mode      string    `yaml:"mode"` // triangles, lines, points
	Material  string    `yaml:"material"`
	Vertices  []float32 `yaml:"vertices"`
	Indices   []uint32  `yaml:"indices"`
}

func vec3(field string, v []float32, def mgl32.Vec3) (mgl32.Vec3, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 3:
		return mgl32.Vec3{v[0], v[1], v[2]}, nil
	default:
		return def, fmt.Errorf("%s: want 3 values, got %d: %w", field, len(v), ErrInvalid)
	}
}

func vec2(field string, v []float32, def mgl32.Vec2) (mgl32.Vec2, error) {
	switch len(v) {
	case 0:
		return def, nil
	case 2:
		return mgl32.Vec2{v[0], v[1]}, nil
	default:
		return def, fmt.Errorf("%s: want 2 values, got %d: %w", field, len(v), ErrInvalid)
	}
}
