package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Camera handles the view and projection matrices for a named viewpoint.
// Cameras are owned by the scene; nodes only refer to them.
type Camera struct {
	Name string

	Position mgl32.Vec3
	LookAt   mgl32.Vec3
	Up       mgl32.Vec3

	FOV    float32 // vertical field of view in radians
	Aspect float32
	Near   float32
	Far    float32

	// Orbit animation state.
	Theta      float32
	Phi        float32
	Distance   float32
	Height     float32
	OrbitSpeed float32
	ZoomSpeed  float32
	Amplitude  float32
}

// New creates a camera looking down -Z from (0, 0, 10).
func New(name string) *Camera {
	return &Camera{
		Name:       name,
		Position:   mgl32.Vec3{0, 0, 10},
		LookAt:     mgl32.Vec3{0, 0, 0},
		Up:         mgl32.Vec3{0, 1, 0},
		FOV:        mgl32.DegToRad(45),
		Aspect:     16.0 / 9.0,
		Near:       0.1,
		Far:        1000.0,
		Distance:   10,
		OrbitSpeed: 0.005,
		ZoomSpeed:  0.5,
	}
}

// SetViewport updates the aspect ratio for a framebuffer size.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// SetPerspective sets the field of view (radians) and clip planes.
func (c *Camera) SetPerspective(fov, near, far float32) {
	c.FOV = fov
	c.Near = near
	c.Far = far
}

// View returns the world-to-view matrix.
func (c *Camera) View() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position, c.LookAt, c.Up)
}

// Projection returns the perspective projection matrix.
func (c *Camera) Projection() mgl32.Mat4 {
	return mgl32.Perspective(c.FOV, c.Aspect, c.Near, c.Far)
}

// Orbit moves the camera around LookAt. The distance oscillates between
// minDist and maxDist at angularSpeed while Phi advances by OrbitSpeed each
// call.
func (c *Camera) Orbit(t, minDist, maxDist, angularSpeed float32) {
	c.Amplitude = (maxDist - minDist) / 2
	mid := minDist + c.Amplitude
	c.Distance = mid + c.Amplitude*math32.Sin(t*angularSpeed)
	c.Phi += c.OrbitSpeed

	c.Position = mgl32.Vec3{
		c.LookAt[0] + math32.Cos(c.Phi)*c.Distance*math32.Cos(c.Theta),
		c.LookAt[1] + c.Height,
		c.LookAt[2] + math32.Sin(c.Phi)*c.Distance*math32.Cos(c.Theta),
	}
}

// Zoom moves the camera along its view direction, never past LookAt.
func (c *Camera) Zoom(steps float32) {
	dir := c.LookAt.Sub(c.Position)
	dist := dir.Len()
	if dist == 0 {
		return
	}
	move := steps * c.ZoomSpeed
	if move >= dist {
		move = dist * 0.9
	}
	c.Position = c.Position.Add(dir.Normalize().Mul(move))
	c.Distance = c.LookAt.Sub(c.Position).Len()
}
