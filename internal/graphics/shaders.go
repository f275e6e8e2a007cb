package graphics

import (
	"embed"
	"fmt"
)

//go:embed shaders/*.vert shaders/*.frag
var shaderFS embed.FS

// Programs holds the built-in shader programs.
type Programs struct {
	PBR     *Shader
	Axes    *Shader
	Markers *Shader
	Text    *Shader
}

// LoadPrograms compiles the embedded shaders. A GL context must be current.
func LoadPrograms() (*Programs, error) {
	var p Programs
	for _, s := range []struct {
		name string
		dst  **Shader
	}{
		{"pbr", &p.PBR},
		{"axes", &p.Axes},
		{"markers", &p.Markers},
		{"text", &p.Text},
	} {
		sh, err := NewShader(shaderFS, "shaders/"+s.name+".vert", "shaders/"+s.name+".frag")
		if err != nil {
			p.Delete()
			return nil, fmt.Errorf("load %s program: %w", s.name, err)
		}
		*s.dst = sh
	}
	return &p, nil
}

// Delete frees every loaded program.
func (p *Programs) Delete() {
	for _, s := range []*Shader{p.PBR, p.Axes, p.Markers, p.Text} {
		if s != nil {
			s.Delete()
		}
	}
}
