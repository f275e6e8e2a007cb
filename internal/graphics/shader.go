package graphics

import (
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Shader represents an OpenGL shader program. It satisfies material.Program
// so it can be bound to scene nodes.
type Shader struct {
	ID   uint32
	Name string

	locations map[string]int32
}

// NewShader compiles and links the vertex and fragment sources read from
// fsys. The shader is named after the vertex file.
func NewShader(fsys fs.FS, vertexPath, fragmentPath string) (*Shader, error) {
	vertexSource, err := fs.ReadFile(fsys, vertexPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", vertexPath, err)
	}

	fragmentSource, err := fs.ReadFile(fsys, fragmentPath)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", fragmentPath, err)
	}

	program, err := compileProgram(string(vertexSource), string(fragmentSource))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", vertexPath, err)
	}

	name := strings.TrimSuffix(path.Base(vertexPath), path.Ext(vertexPath))
	return &Shader{ID: program, Name: name, locations: make(map[string]int32)}, nil
}

// ProgramID returns the GL program name.
func (s *Shader) ProgramID() uint32 {
	return s.ID
}

// Use makes s the current program.
func (s *Shader) Use() {
	gl.UseProgram(s.ID)
}

// Delete frees the program.
func (s *Shader) Delete() {
	if s.ID != 0 {
		gl.DeleteProgram(s.ID)
		s.ID = 0
	}
}

// location caches uniform lookups; -1 is cached too.
func (s *Shader) location(name string) int32 {
	if loc, ok := s.locations[name]; ok {
		return loc
	}
	if s.locations == nil {
		s.locations = make(map[string]int32)
	}
	loc := gl.GetUniformLocation(s.ID, gl.Str(name+"\x00"))
	s.locations[name] = loc
	return loc
}

// SetBool sets a boolean uniform as 0 or 1.
func (s *Shader) SetBool(name string, value bool) {
	var v int32
	if value {
		v = 1
	}
	s.SetInt(name, v)
}

func (s *Shader) SetInt(name string, value int32) {
	gl.Uniform1i(s.location(name), value)
}

func (s *Shader) SetFloat(name string, value float32) {
	gl.Uniform1f(s.location(name), value)
}

func (s *Shader) SetVec2(name string, v mgl32.Vec2) {
	gl.Uniform2fv(s.location(name), 1, &v[0])
}

func (s *Shader) SetVec3(name string, v mgl32.Vec3) {
	gl.Uniform3fv(s.location(name), 1, &v[0])
}

// SetMatrix4 uploads m column-major, as mgl32 stores it.
func (s *Shader) SetMatrix4(name string, m mgl32.Mat4) {
	gl.UniformMatrix4fv(s.location(name), 1, false, &m[0])
}

// compileProgram builds and links a program from GLSL sources. Stage objects
// are deleted once linked or on failure.
func compileProgram(vertexSrc, fragmentSrc string) (uint32, error) {
	var stages [2]uint32
	for i, src := range [2]struct {
		kind uint32
		code string
	}{{gl.VERTEX_SHADER, vertexSrc}, {gl.FRAGMENT_SHADER, fragmentSrc}} {
		id, err := compileShader(src.code, src.kind)
		if err != nil {
			for _, done := range stages[:i] {
				gl.DeleteShader(done)
			}
			return 0, err
		}
		stages[i] = id
	}

	program := gl.CreateProgram()
	for _, id := range stages {
		gl.AttachShader(program, id)
	}
	gl.LinkProgram(program)
	for _, id := range stages {
		gl.DeleteShader(id)
	}

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(program, gl.GetProgramiv, gl.GetProgramInfoLog)
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("link program: %s", msg)
	}
	return program, nil
}

func compileShader(source string, kind uint32) (uint32, error) {
	shader := gl.CreateShader(kind)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		msg := infoLog(shader, gl.GetShaderiv, gl.GetShaderInfoLog)
		gl.DeleteShader(shader)
		stage := "vertex"
		if kind == gl.FRAGMENT_SHADER {
			stage = "fragment"
		}
		return 0, fmt.Errorf("compile %s shader: %s", stage, msg)
	}
	return shader, nil
}

func infoLog(id uint32, getiv func(uint32, uint32, *int32), getLog func(uint32, int32, *int32, *uint8)) string {
	var length int32
	getiv(id, gl.INFO_LOG_LENGTH, &length)
	if length <= 0 {
		return "no info log"
	}
	buf := make([]byte, length+1)
	getLog(id, length, nil, &buf[0])
	return strings.TrimRight(string(buf), "\x00\n")
}
