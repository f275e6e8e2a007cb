package input

import (
	"sync"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical viewer command, independent of the key that fires it.
type Action int

const (
	ActionCycleRenderMode Action = iota
	ActionToggleAxes
	ActionToggleLightMarkers
	ActionToggleOrbit
	ActionToggleOverlay
	ActionReload
	ActionQuit
	ActionZoomIn
	ActionZoomOut
	ActionRotate
	ActionCount
)

func (a Action) valid() bool { return a >= 0 && a < ActionCount }

func (a Action) bit() uint32 { return 1 << uint(a) }

// defaultKeys lists the keyboard bindings installed by NewInputManager.
var defaultKeys = map[Action][]glfw.Key{
	ActionCycleRenderMode:    {glfw.KeyM},
	ActionToggleAxes:         {glfw.KeyX},
	ActionToggleLightMarkers: {glfw.KeyL},
	ActionToggleOrbit:        {glfw.KeyO},
	ActionToggleOverlay:      {glfw.KeyF3, glfw.KeyV},
	ActionReload:             {glfw.KeyR},
	ActionQuit:               {glfw.KeyEscape, glfw.KeyQ},
	ActionZoomIn:             {glfw.KeyUp, glfw.KeyEqual},
	ActionZoomOut:            {glfw.KeyDown, glfw.KeyMinus},
}

// InputManager tracks which actions are held and which changed since the
// last PostUpdate. Event handlers may run on any goroutine; queries are
// meant for the frame loop.
type InputManager struct {
	mu sync.RWMutex

	keys    map[glfw.Key]uint32
	buttons map[glfw.MouseButton]uint32

	held     uint32
	pressed  uint32
	released uint32

	scrollY          float64
	cursorX, cursorY float64
}

// NewInputManager creates a manager with the default bindings. Dragging with
// the left mouse button rotates the scene.
func NewInputManager() *InputManager {
	im := &InputManager{
		keys:    make(map[glfw.Key]uint32),
		buttons: make(map[glfw.MouseButton]uint32),
	}
	for action, keys := range defaultKeys {
		for _, k := range keys {
			im.BindKey(k, action)
		}
	}
	im.BindMouseButton(glfw.MouseButtonLeft, ActionRotate)
	return im
}

// BindKey adds key as a trigger for action. A key may trigger several actions.
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	if !action.valid() {
		return
	}
	im.mu.Lock()
	im.keys[key] |= action.bit()
	im.mu.Unlock()
}

// BindMouseButton adds button as a trigger for action.
func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	if !action.valid() {
		return
	}
	im.mu.Lock()
	im.buttons[button] |= action.bit()
	im.mu.Unlock()
}

// HandleKeyEvent updates the actions bound to key. Repeats count as held.
func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.set(im.keys[key], action == glfw.Press || action == glfw.Repeat)
}

// HandleMouseButtonEvent updates the actions bound to button.
func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()
	im.set(im.buttons[button], action == glfw.Press)
}

// set records transitions for the actions in mask. Callers hold mu.
func (im *InputManager) set(mask uint32, down bool) {
	if down {
		im.pressed |= mask &^ im.held
		im.held |= mask
		return
	}
	im.released |= mask & im.held
	im.held &^= mask
}

// HandleCursor records the cursor position in window coordinates.
func (im *InputManager) HandleCursor(x, y float64) {
	im.mu.Lock()
	im.cursorX, im.cursorY = x, y
	im.mu.Unlock()
}

// Cursor returns the last recorded cursor position.
func (im *InputManager) Cursor() (float64, float64) {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.cursorX, im.cursorY
}

// HandleScroll accumulates a vertical scroll offset.
func (im *InputManager) HandleScroll(yoff float64) {
	im.mu.Lock()
	im.scrollY += yoff
	im.mu.Unlock()
}

// Scroll returns the vertical scroll accumulated during the current frame.
func (im *InputManager) Scroll() float64 {
	im.mu.RLock()
	defer im.mu.RUnlock()
	return im.scrollY
}

// SetKeyCallback routes the window's key, mouse button, cursor and scroll
// events into im. Call it once after the window is created.
func (im *InputManager) SetKeyCallback(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		im.HandleCursor(x, y)
	})
	window.SetScrollCallback(func(_ *glfw.Window, _, yoff float64) {
		im.HandleScroll(yoff)
	})
}

// PostUpdate clears the per-frame edges and scroll. Call it once at the end
// of every frame.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	im.pressed, im.released = 0, 0
	im.scrollY = 0
	im.mu.Unlock()
}

// IsActive reports whether action is held.
func (im *InputManager) IsActive(action Action) bool {
	return im.test(&im.held, action)
}

// JustPressed reports whether action went down during the current frame.
func (im *InputManager) JustPressed(action Action) bool {
	return im.test(&im.pressed, action)
}

// JustReleased reports whether action went up during the current frame.
func (im *InputManager) JustReleased(action Action) bool {
	return im.test(&im.released, action)
}

func (im *InputManager) test(mask *uint32, action Action) bool {
	if !action.valid() {
		return false
	}
	im.mu.RLock()
	defer im.mu.RUnlock()
	return *mask&action.bit() != 0
}
