package graphics

import (
	"fmt"
	"strings"

	"scenery/internal/config"
	"scenery/internal/logging"
	"scenery/internal/material"
	"scenery/internal/mesh"
	"scenery/internal/profiling"
	"scenery/internal/render"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// lightUniforms holds precomputed uniform names for one shader light slot.
type lightUniforms struct {
	position, direction, color, specular, ambient string
	intensity, constant, linear, quadratic        string
	cutOff, outerCutOff, lightType, size          string
}

var lightSlots = func() [config.MaxLights]lightUniforms {
	var out [config.MaxLights]lightUniforms
	for i := range out {
		p := fmt.Sprintf("lights[%d].", i)
		out[i] = lightUniforms{
			position: p + "position", direction: p + "direction", color: p + "color",
			specular: p + "specular", ambient: p + "ambient", intensity: p + "intensity",
			constant: p + "constant", linear: p + "linear", quadratic: p + "quadratic",
			cutOff: p + "cutOff", outerCutOff: p + "outerCutOff", lightType: p + "type", size: p + "size",
		}
	}
	return out
}()

var markerSlots = func() [config.MaxLights][2]string {
	var out [config.MaxLights][2]string
	for i := range out {
		out[i] = [2]string{fmt.Sprintf("markerPositions[%d]", i), fmt.Sprintf("markerColors[%d]", i)}
	}
	return out
}()

// textureUniforms maps material slots to sampler and presence-flag names.
var textureUniforms = func() [material.SlotCount][2]string {
	var out [material.SlotCount][2]string
	for s := material.Slot(0); s < material.SlotCount; s++ {
		name := s.String()
		out[s] = [2]string{name + "Map", "has" + strings.ToUpper(name[:1]) + name[1:] + "Map"}
	}
	return out
}()

// axesVertices are three unit lines, position then color.
var axesVertices = []float32{
	0, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0, 0,
	0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 1, 0,
	0, 0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 1,
}

// Rasterizer draws scene nodes with OpenGL. It implements render.Rasterizer,
// render.AxesDrawer, render.LightMarkerDrawer and mesh.Releaser. All methods
// must be called on the thread owning the GL context.
type Rasterizer struct {
	programs *Programs
	adopted  map[uint32]*Shader

	axesVAO, axesVBO uint32
	markerVAO        uint32
}

// NewRasterizer creates the GL objects for the auxiliary passes.
func NewRasterizer(programs *Programs) *Rasterizer {
	r := &Rasterizer{programs: programs, adopted: make(map[uint32]*Shader)}

	gl.GenVertexArrays(1, &r.axesVAO)
	gl.BindVertexArray(r.axesVAO)
	gl.GenBuffers(1, &r.axesVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.axesVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(axesVertices)*4, gl.Ptr(axesVertices), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, 6*4, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 6*4, 3*4)

	// markers are generated from gl_VertexID; core profile still needs a VAO bound
	gl.GenVertexArrays(1, &r.markerVAO)
	gl.BindVertexArray(0)
	return r
}

// MaxLights returns the configured number of shader light slots.
func (r *Rasterizer) MaxLights() int {
	return config.GetMaxLights()
}

// shader returns the Shader for a node's program, adopting foreign programs
// by their GL name.
func (r *Rasterizer) shader(p material.Program) *Shader {
	if s, ok := p.(*Shader); ok {
		return s
	}
	id := p.ProgramID()
	s, ok := r.adopted[id]
	if !ok {
		s = &Shader{ID: id}
		r.adopted[id] = s
	}
	return s
}

// Draw renders the node's meshes with its program.
func (r *Rasterizer) Draw(call *render.DrawCall) {
	defer profiling.Track("graphics.Draw")()
	s := r.shader(call.Program)
	s.Use()

	s.SetMatrix4("model", call.Model)
	s.SetMatrix4("view", call.View)
	s.SetMatrix4("projection", call.Projection)
	s.SetVec3("cameraPosition", call.CameraPosition)
	s.SetFloat("time", call.Time)
	s.SetInt("renderMode", int32(call.Mode))

	n := min(len(call.Lights), len(lightSlots))
	s.SetInt("numLights", int32(n))
	for i := 0; i < n; i++ {
		l, u := &call.Lights[i], &lightSlots[i]
		s.SetVec3(u.position, l.Position)
		s.SetVec3(u.direction, l.Direction)
		s.SetVec3(u.color, l.Color)
		s.SetVec3(u.specular, l.Specular)
		s.SetVec3(u.ambient, l.Ambient)
		s.SetFloat(u.intensity, l.Intensity)
		s.SetFloat(u.constant, l.Constant)
		s.SetFloat(u.linear, l.Linear)
		s.SetFloat(u.quadratic, l.Quadratic)
		s.SetFloat(u.cutOff, l.CutOff)
		s.SetFloat(u.outerCutOff, l.OuterCutOff)
		s.SetInt(u.lightType, int32(l.Type))
		s.SetVec2(u.size, l.Size)
	}

	for _, m := range call.Meshes {
		if m == nil || len(m.Vertices) == 0 {
			continue
		}
		if !m.Uploaded() {
			upload(m)
		}
		r.bindMaterial(s, m.Material)
		gl.BindVertexArray(m.VAO)
		mode := primitive(m.Primitive)
		if m.IndexCount() > 0 {
			gl.DrawElementsWithOffset(mode, int32(m.IndexCount()), gl.UNSIGNED_INT, 0)
		} else {
			gl.DrawArrays(mode, 0, int32(m.VertexCount()))
		}
	}
	gl.BindVertexArray(0)
}

func (r *Rasterizer) bindMaterial(s *Shader, m *material.Material) {
	if m == nil {
		m = defaultMaterial
	}
	s.SetVec3("albedo", m.Albedo)
	s.SetFloat("metallic", m.Metallic)
	s.SetFloat("roughness", m.Roughness)
	s.SetFloat("ao", m.AO)

	for slot := material.Slot(0); slot < material.SlotCount; slot++ {
		names := textureUniforms[slot]
		tex := m.Texture(slot)
		// absent or never-uploaded textures are skipped, never bound
		present := tex != nil && tex.Handle != 0
		s.SetBool(names[1], present)
		if !present {
			continue
		}
		gl.ActiveTexture(gl.TEXTURE0 + uint32(slot))
		gl.BindTexture(gl.TEXTURE_2D, tex.Handle)
		s.SetInt(names[0], int32(slot))
	}
	gl.ActiveTexture(gl.TEXTURE0)
}

var defaultMaterial = material.New("default")

// DrawAxes draws the node's local X, Y and Z axes.
func (r *Rasterizer) DrawAxes(call *render.DrawCall) {
	s := r.programs.Axes
	s.Use()
	s.SetMatrix4("model", call.Model)
	s.SetMatrix4("view", call.View)
	s.SetMatrix4("projection", call.Projection)

	gl.BindVertexArray(r.axesVAO)
	gl.DrawArrays(gl.LINES, 0, int32(len(axesVertices)/6))
	gl.BindVertexArray(0)
}

// DrawLightMarkers draws a point at each light selected for the node.
func (r *Rasterizer) DrawLightMarkers(call *render.DrawCall) {
	n := min(len(call.Lights), len(markerSlots))
	if n == 0 {
		return
	}
	s := r.programs.Markers
	s.Use()
	s.SetMatrix4("view", call.View)
	s.SetMatrix4("projection", call.Projection)
	s.SetFloat("pointSize", 10)
	for i := 0; i < n; i++ {
		s.SetVec3(markerSlots[i][0], call.Lights[i].Position)
		s.SetVec3(markerSlots[i][1], call.Lights[i].Color)
	}

	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.BindVertexArray(r.markerVAO)
	gl.DrawArrays(gl.POINTS, 0, int32(n))
	gl.BindVertexArray(0)
	gl.Disable(gl.PROGRAM_POINT_SIZE)
}

// ReleaseMesh deletes the mesh's GL buffers.
func (r *Rasterizer) ReleaseMesh(m *mesh.Mesh) {
	if m.VAO != 0 {
		gl.DeleteVertexArrays(1, &m.VAO)
	}
	if m.VBO != 0 {
		gl.DeleteBuffers(1, &m.VBO)
	}
	if m.EBO != 0 {
		gl.DeleteBuffers(1, &m.EBO)
	}
	m.VAO, m.VBO, m.EBO = 0, 0, 0
}

// Dispose frees the rasterizer's own GL objects. Meshes and programs are
// released by their owners.
func (r *Rasterizer) Dispose() {
	if r.axesVAO != 0 {
		gl.DeleteVertexArrays(1, &r.axesVAO)
	}
	if r.axesVBO != 0 {
		gl.DeleteBuffers(1, &r.axesVBO)
	}
	if r.markerVAO != 0 {
		gl.DeleteVertexArrays(1, &r.markerVAO)
	}
	r.axesVAO, r.axesVBO, r.markerVAO = 0, 0, 0
}

func upload(m *mesh.Mesh) {
	gl.GenVertexArrays(1, &m.VAO)
	gl.BindVertexArray(m.VAO)

	gl.GenBuffers(1, &m.VBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, m.VBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(m.Vertices)*4, gl.Ptr(m.Vertices), gl.STATIC_DRAW)

	if len(m.Indices) > 0 {
		gl.GenBuffers(1, &m.EBO)
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, m.EBO)
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(m.Indices)*4, gl.Ptr(m.Indices), gl.STATIC_DRAW)
	}

	const stride = mesh.FloatsPerVertex * 4
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(0, 3, gl.FLOAT, false, stride, 0)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, stride, 3*4)
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointerWithOffset(2, 2, gl.FLOAT, false, stride, 6*4)

	gl.BindVertexArray(0)
	logging.Logger().Debug("mesh uploaded", "mesh", m.Name, "vertices", m.VertexCount(), "indices", m.IndexCount())
}

func primitive(p mesh.Primitive) uint32 {
	switch p {
	case mesh.Lines:
		return gl.LINES
	case mesh.Points:
		return gl.POINTS
	default:
		return gl.TRIANGLES
	}
}
