package graphics

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Context owns the global GL state of the viewer window.
type Context struct {
	width, height int
	ClearColor    mgl32.Vec3
}

// NewContext configures depth testing and back-face culling. A GL context
// must be current.
func NewContext(width, height int) *Context {
	// Configure OpenGL
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	c := &Context{ClearColor: mgl32.Vec3{0.08, 0.09, 0.11}}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the GL viewport for a framebuffer size.
func (c *Context) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.width, c.height = width, height
	gl.Viewport(0, 0, int32(width), int32(height))
}

// Size returns the current framebuffer size.
func (c *Context) Size() (int, int) {
	return c.width, c.height
}

// BeginFrame clears the color and depth buffers.
func (c *Context) BeginFrame() {
	gl.ClearColor(c.ClearColor[0], c.ClearColor[1], c.ClearColor[2], 1.0)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}
