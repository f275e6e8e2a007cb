package render

import (
	"errors"

	"scenery/internal/camera"
	"scenery/internal/logging"
	"scenery/internal/profiling"
	"scenery/internal/scene"

	"github.com/go-gl/mathgl/mgl32"
)

var (
	ErrNilScene      = errors.New("render: nil scene")
	ErrNilNode       = errors.New("render: nil node")
	ErrNotPropagated = errors.New("render: scene has not been propagated")
)

// Stats describes the last render call.
type Stats struct {
	Nodes    int
	Draws    int
	AuxDraws int
	Frame    uint64
}

// Renderer walks a propagated scene and hands each drawable node to a
// Rasterizer together with its nearest lights.
type Renderer struct {
	raster  Rasterizer
	axes    AxesDrawer
	markers LightMarkerDrawer

	call      DrawCall
	stats     Stats
	lastFrame uint64
}

// NewRenderer wraps r. Auxiliary passes are enabled when r implements
// AxesDrawer or LightMarkerDrawer.
func NewRenderer(r Rasterizer) *Renderer {
	rd := &Renderer{raster: r}
	rd.axes, _ = r.(AxesDrawer)
	rd.markers, _ = r.(LightMarkerDrawer)
	return rd
}

// Stats returns counters for the most recent Render call.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Render draws node and its subtree. The scene must have been propagated:
// global transforms and light positions are read, never computed.
// parentGlobal is the caller's parent context for node and is not used for
// drawing. A nil camera renders with identity view and projection.
func (r *Renderer) Render(s *scene.Scene, node *scene.Node, cam *camera.Camera, parentGlobal mgl32.Mat4, time float32, mode Mode) error {
	if s == nil {
		logging.Logger().Warn("render called with nil scene")
		return ErrNilScene
	}
	if node == nil {
		logging.Logger().Warn("render called with nil node")
		return ErrNilNode
	}
	frame := s.Frame()
	if frame == 0 {
		logging.Logger().Warn("render called before propagation", "node", node.Name)
		return ErrNotPropagated
	}
	if frame == r.lastFrame {
		logging.Logger().Warn("rendering an already rendered frame without propagating", "frame", frame)
	}
	defer profiling.Track("render.Traverse")()

	r.lastFrame = frame
	r.stats = Stats{Frame: frame}

	r.call = DrawCall{
		View:       mgl32.Ident4(),
		Projection: mgl32.Ident4(),
		Time:       time,
		Mode:       mode,
		Lights:     r.call.Lights[:0],
	}
	if cam != nil {
		r.call.View = cam.View()
		r.call.Projection = cam.Projection()
		r.call.CameraPosition = cam.Position
		r.call.Near = cam.Near
		r.call.Far = cam.Far
	}

	r.traverse(s, node, parentGlobal)
	return nil
}

// RenderScene renders from the scene root.
func (r *Renderer) RenderScene(s *scene.Scene, cam *camera.Camera, time float32, mode Mode) error {
	if s == nil {
		logging.Logger().Warn("render called with nil scene")
		return ErrNilScene
	}
	return r.Render(s, s.Root(), cam, mgl32.Ident4(), time, mode)
}

// AdvanceFrame runs one full frame: transform propagation with base applied
// to the root, then render traversal.
func (r *Renderer) AdvanceFrame(s *scene.Scene, base *scene.Transform, cam *camera.Camera, time float32, mode Mode) error {
	if s == nil {
		logging.Logger().Warn("advance frame called with nil scene")
		return ErrNilScene
	}
	s.Propagate(base)
	return r.RenderScene(s, cam, time, mode)
}

func (r *Renderer) traverse(s *scene.Scene, node *scene.Node, parentGlobal mgl32.Mat4) {
	r.stats.Nodes++

	wantAxes := node.ShowAxes && r.axes != nil
	wantMarkers := node.ShowLightMarkers && r.markers != nil
	if node.Program != nil || wantAxes || wantMarkers {
		c := &r.call
		c.Node = node
		c.Meshes = node.Meshes()
		c.Program = node.Program
		c.Model = node.GlobalTransform()
		c.Parent = parentGlobal
		c.Lights = c.Lights[:0]
		if node.Program != nil || wantMarkers {
			for _, l := range s.ClosestLights(node, r.raster.MaxLights()) {
				c.Lights = append(c.Lights, NewLightData(l))
			}
		}

		if node.Program != nil {
			r.raster.Draw(c)
			r.stats.Draws++
		}
		if wantAxes {
			r.axes.DrawAxes(c)
			r.stats.AuxDraws++
		}
		if wantMarkers {
			r.markers.DrawLightMarkers(c)
			r.stats.AuxDraws++
		}
	}

	global := node.GlobalTransform()
	for _, child := range node.Children() {
		r.traverse(s, child, global)
	}
}
