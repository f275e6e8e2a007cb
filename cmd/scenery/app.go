package main

import (
	"errors"
	"log"
	"path/filepath"
	"time"

	"scenery/internal/camera"
	"scenery/internal/config"
	"scenery/internal/graphics"
	"scenery/internal/graphics/glyph"
	"scenery/internal/importer"
	"scenery/internal/input"
	"scenery/internal/logging"
	"scenery/internal/profiling"
	"scenery/internal/render"
	"scenery/internal/scene"
	"scenery/internal/texture"
	"scenery/internal/viewer"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/xlab/closer"
)

const slowFrame = 50 * time.Millisecond

// App owns the window, the GL resources and the loaded scene.
type App struct {
	window *glfw.Window
	cfg    config.File

	input      *input.InputManager
	ctx        *graphics.Context
	programs   *graphics.Programs
	raster     *graphics.Rasterizer
	renderer   *render.Renderer
	font       *graphics.FontRenderer
	fpsLimiter *viewer.FPSLimiter
	controller *viewer.Controller
	watcher    *viewer.Watcher

	scene  *scene.Scene
	camera *camera.Camera // used when the scene defines none

	start            time.Time
	frames           int
	fps              float64
	lastFPSCheckTime time.Time
}

// NewApp creates the GL resources and loads the configured scene. A scene
// that fails to load leaves the viewer running with an empty scene.
func NewApp(window *glfw.Window, cfg config.File) (*App, error) {
	fbw, fbh := window.GetFramebufferSize()

	programs, err := graphics.LoadPrograms()
	if err != nil {
		return nil, err
	}
	atlas, err := glyph.BakeDefault(16)
	if err != nil {
		programs.Delete()
		return nil, err
	}
	font, err := graphics.NewFontRenderer(programs.Text, atlas, fbw, fbh)
	if err != nil {
		programs.Delete()
		return nil, err
	}

	raster := graphics.NewRasterizer(programs)
	a := &App{
		window:           window,
		cfg:              cfg,
		input:            input.NewInputManager(),
		ctx:              graphics.NewContext(fbw, fbh),
		programs:         programs,
		raster:           raster,
		renderer:         render.NewRenderer(raster),
		font:             font,
		fpsLimiter:       viewer.NewFPSLimiter(),
		controller:       viewer.NewController(cfg.Camera, cfg.Scene.Offset),
		scene:            scene.New(),
		camera:           camera.New("viewer"),
		start:            time.Now(),
		lastFPSCheckTime: time.Now(),
	}
	a.camera.SetViewport(fbw, fbh)

	if err := a.reload(); err != nil {
		logging.Logger().Error("scene load failed", "path", cfg.Scene.Path, "err", err)
	}

	if cfg.Scene.Watch && cfg.Scene.Path != "" {
		w, err := viewer.Watch(cfg.Scene.Path)
		if err != nil {
			logging.Logger().Warn("scene watch disabled", "path", cfg.Scene.Path, "err", err)
		} else {
			a.watcher = w
			closer.Bind(func() { _ = w.Close() })
		}
	}

	setupInputHandlers(window, a)
	return a, nil
}

// Run drives frames until the window is closed.
func (a *App) Run() {
	for !a.window.ShouldClose() {
		a.tick()
	}
}

// Close releases the scene and every GL resource. It must run on the main
// thread while the context is current.
func (a *App) Close() {
	if a.watcher != nil {
		_ = a.watcher.Close()
	}
	a.scene.Release(a.raster)
	a.font.Dispose()
	a.raster.Dispose()
	a.programs.Delete()
}

func (a *App) tick() {
	profiling.ResetFrame()
	now := time.Now()

	// Poll events at start
	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	out := a.controller.Update(a.controls())
	if out.Quit {
		a.window.SetShouldClose(true)
	}
	if out.Visibility {
		viewer.ApplyVisibility(a.scene.Root())
	}

	reload := out.Reload
	if a.watcher != nil {
		select {
		case <-a.watcher.Changed():
			reload = true
		default:
		}
	}
	if reload {
		if err := a.reload(); err != nil {
			logging.Logger().Error("scene reload failed", "path", a.cfg.Scene.Path, "err", err)
		}
	}

	t := float32(time.Since(a.start).Seconds())
	a.controller.UpdateCamera(a.activeCamera(), t)
	a.draw(t)

	// Present
	func() { defer profiling.Track("glfw.SwapBuffers")(); a.window.SwapBuffers() }()

	// Clear edge flags at end of frame
	a.input.PostUpdate()

	a.frames++
	if since := time.Since(a.lastFPSCheckTime); since >= time.Second {
		a.fps = float64(a.frames) / since.Seconds()
		a.frames = 0
		a.lastFPSCheckTime = time.Now()
	}
	if d := time.Since(now); d > slowFrame {
		log.Printf("Slow frame: %v. Top tasks: %s", d, profiling.TopN(5))
	}

	a.fpsLimiter.Wait()
}

func (a *App) draw(t float32) {
	a.ctx.BeginFrame()

	if a.scene.Root() != nil {
		base := a.controller.BaseTransform()
		err := a.renderer.AdvanceFrame(a.scene, &base, a.activeCamera(), t, config.GetRenderMode())
		if err != nil && !errors.Is(err, render.ErrNilNode) {
			logging.Logger().Warn("render failed", "err", err)
		}
	}

	if a.controller.Overlay() {
		func() {
			defer profiling.Track("overlay.Render")()
			lines := viewer.OverlayLines(filepath.Base(a.cfg.Scene.Path), a.fps, a.renderer.Stats())
			a.font.RenderLines(lines, 10, 24, 20, 1, mgl32.Vec3{1, 1, 1})
		}()
	}
}

func (a *App) controls() viewer.Controls {
	im := a.input
	x, y := im.Cursor()
	zoom := float32(im.Scroll())
	if im.IsActive(input.ActionZoomIn) {
		zoom += 0.2
	}
	if im.IsActive(input.ActionZoomOut) {
		zoom -= 0.2
	}
	return viewer.Controls{
		CycleMode:     im.JustPressed(input.ActionCycleRenderMode),
		ToggleAxes:    im.JustPressed(input.ActionToggleAxes),
		ToggleMarkers: im.JustPressed(input.ActionToggleLightMarkers),
		ToggleOrbit:   im.JustPressed(input.ActionToggleOrbit),
		ToggleOverlay: im.JustPressed(input.ActionToggleOverlay),
		Reload:        im.JustPressed(input.ActionReload),
		Quit:          im.JustPressed(input.ActionQuit),
		Zoom:          zoom,
		Dragging:      im.IsActive(input.ActionRotate),
		CursorX:       x,
		CursorY:       y,
	}
}

// reload imports the scene file and swaps it in. The previous scene is kept
// when the import fails.
func (a *App) reload() error {
	defer profiling.Track("app.reload")()

	s, err := importer.Load(a.cfg.Scene.Path, texture.WithUploader(graphics.TextureUploader{}))
	if err != nil {
		return err
	}
	if root := s.Root(); root != nil {
		root.SetProgramRecursive(a.programs.PBR)
		viewer.ApplyVisibility(root)
	}
	fbw, fbh := a.ctx.Size()
	for _, cam := range s.Cameras() {
		cam.SetViewport(fbw, fbh)
	}

	a.scene.Release(a.raster)
	a.scene = s
	logging.Logger().Info("scene loaded", "path", a.cfg.Scene.Path, "nodes", s.Root().Count())
	return nil
}

func (a *App) activeCamera() *camera.Camera {
	if cam := a.scene.ActiveCamera(); cam != nil {
		return cam
	}
	return a.camera
}

func (a *App) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	a.ctx.SetViewport(width, height)
	a.font.SetViewport(width, height)
	a.camera.SetViewport(width, height)
	for _, cam := range a.scene.Cameras() {
		cam.SetViewport(width, height)
	}
}
