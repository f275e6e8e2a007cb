// Package material describes surface parameters and the texture slots a
// rasterizer binds for a mesh.
package material

import (
	"scenery/internal/logging"
	"scenery/internal/texture"

	"github.com/go-gl/mathgl/mgl32"
)

// Slot identifies a material texture binding point.
type Slot int

const (
	SlotAlbedo Slot = iota
	SlotNormal
	SlotRoughness
	SlotMetalness
	SlotAmbientOcclusion
	SlotEmissive
	SlotHeight
	SlotOpacity
	SlotSheen
	SlotReflectance
	SlotCount
)

var slotNames = [SlotCount]string{
	"albedo", "normal", "roughness", "metalness", "ao",
	"emissive", "height", "opacity", "sheen", "reflectance",
}

func (s Slot) String() string {
	if s < 0 || s >= SlotCount {
		return "unknown"
	}
	return slotNames[s]
}

// ParseSlot maps a slot name to a Slot. ok is false for unknown names.
func ParseSlot(name string) (Slot, bool) {
	for i, n := range slotNames {
		if n == name {
			return Slot(i), true
		}
	}
	return SlotCount, false
}

// Program is an opaque shader program handle owned by a rasterizer. Nodes
// carrying a Program are drawn; the core never inspects it.
type Program interface {
	ProgramID() uint32
}

// Material holds PBR parameters and optional textures. A nil texture slot is
// absent and must not be bound.
type Material struct {
	Name      string
	Albedo    mgl32.Vec3
	Metallic  float32
	Roughness float32
	AO        float32

	textures [SlotCount]*texture.Texture
}

// New creates a material with a light grey dielectric default.
func New(name string) *Material {
	return &Material{
		Name:      name,
		Albedo:    mgl32.Vec3{0.8, 0.8, 0.8},
		Metallic:  0,
		Roughness: 0.5,
		AO:        1,
	}
}

// Texture returns the texture in slot, or nil.
func (m *Material) Texture(slot Slot) *texture.Texture {
	if m == nil || slot < 0 || slot >= SlotCount {
		return nil
	}
	return m.textures[slot]
}

// HasTexture reports whether slot is populated.
func (m *Material) HasTexture(slot Slot) bool {
	return m.Texture(slot) != nil
}

// SetTexture assigns tex to slot. A nil tex clears the slot.
func (m *Material) SetTexture(slot Slot, tex *texture.Texture) {
	if m == nil || slot < 0 || slot >= SlotCount {
		return
	}
	m.textures[slot] = tex
}

// LoadTextures resolves raw imported paths through pool and fills the
// matching slots. Unresolvable paths leave their slot absent; the number of
// slots filled is returned.
func (m *Material) LoadTextures(pool *texture.Pool, paths map[Slot]string) int {
	if m == nil || pool == nil {
		return 0
	}
	loaded := 0
	for slot := Slot(0); slot < SlotCount; slot++ {
		raw, ok := paths[slot]
		if !ok || raw == "" {
			continue
		}
		tex, err := pool.Load(raw)
		if err != nil {
			logging.Logger().Warn("material texture unavailable", "material", m.Name, "slot", slot, "err", err)
			m.textures[slot] = nil
			continue
		}
		m.textures[slot] = tex
		loaded++
	}
	return loaded
}
