package input

import (
	"sync"

	"glex/internal/camera"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Action is a logical control, not a physical key
type Action int

const (
	ActionMoveForward Action = iota
	ActionMoveBackward
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionQuit
	ActionToggleWireframe
	ActionToggleProfiling
	ActionToggleSSAO
	ActionToggleOverlay
	ActionResetCamera
	ActionMouseRotate
	ActionCount // Sentinel value for array sizing
)

// InputManager maps physical keys and buttons to actions and tracks their
// held and edge state between frames.
type InputManager struct {
	mu sync.RWMutex

	keyToActions         map[glfw.Key][]Action
	mouseButtonToActions map[glfw.MouseButton][]Action

	keysDown    map[glfw.Key]bool
	buttonsDown map[glfw.MouseButton]bool

	// held counts the bound keys and buttons currently down per action
	held [ActionCount]int

	// Reset by PostUpdate
	justPressed  [ActionCount]bool
	justReleased [ActionCount]bool
}

// NewInputManager creates an InputManager with the default bindings
func NewInputManager() *InputManager {
	im := &InputManager{
		keyToActions:         make(map[glfw.Key][]Action),
		mouseButtonToActions: make(map[glfw.MouseButton][]Action),
		keysDown:             make(map[glfw.Key]bool),
		buttonsDown:          make(map[glfw.MouseButton]bool),
	}

	im.BindKey(glfw.KeyW, ActionMoveForward)
	im.BindKey(glfw.KeyS, ActionMoveBackward)
	im.BindKey(glfw.KeyA, ActionMoveLeft)
	im.BindKey(glfw.KeyD, ActionMoveRight)
	im.BindKey(glfw.KeyE, ActionMoveUp)
	im.BindKey(glfw.KeyQ, ActionMoveDown)
	im.BindKey(glfw.KeyUp, ActionMoveForward)
	im.BindKey(glfw.KeyDown, ActionMoveBackward)
	im.BindKey(glfw.KeyLeft, ActionMoveLeft)
	im.BindKey(glfw.KeyRight, ActionMoveRight)
	im.BindKey(glfw.KeyEscape, ActionQuit)
	im.BindKey(glfw.KeyF, ActionToggleWireframe)
	im.BindKey(glfw.KeyP, ActionToggleProfiling)
	im.BindKey(glfw.KeyO, ActionToggleSSAO)
	im.BindKey(glfw.KeyH, ActionToggleOverlay)
	im.BindKey(glfw.KeyR, ActionResetCamera)

	im.BindMouseButton(glfw.MouseButtonRight, ActionMouseRotate)

	return im
}

// BindKey binds a physical key to an action. Several keys may share one.
func (im *InputManager) BindKey(key glfw.Key, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.keyToActions[key] = append(im.keyToActions[key], action)
}

func (im *InputManager) BindMouseButton(button glfw.MouseButton, action Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	if action < 0 || action >= ActionCount {
		return
	}

	im.mouseButtonToActions[button] = append(im.mouseButtonToActions[button], action)
}

func (im *InputManager) HandleKeyEvent(key glfw.Key, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, exists := im.keyToActions[key]
	if !exists {
		return
	}
	pressed := action == glfw.Press || action == glfw.Repeat
	// Repeats and duplicate releases do not change the count
	if im.keysDown[key] == pressed {
		return
	}
	im.keysDown[key] = pressed
	im.apply(actions, pressed)
}

func (im *InputManager) HandleMouseButtonEvent(button glfw.MouseButton, action glfw.Action) {
	im.mu.Lock()
	defer im.mu.Unlock()

	actions, exists := im.mouseButtonToActions[button]
	if !exists {
		return
	}
	pressed := action == glfw.Press
	if im.buttonsDown[button] == pressed {
		return
	}
	im.buttonsDown[button] = pressed
	im.apply(actions, pressed)
}

// apply must be called with mu held. An action stays active until the last
// of its bound inputs is released.
func (im *InputManager) apply(actions []Action, isPressed bool) {
	for _, act := range actions {
		if isPressed {
			im.held[act]++
			if im.held[act] == 1 {
				im.justPressed[act] = true
			}
			continue
		}
		if im.held[act] == 0 {
			continue
		}
		im.held[act]--
		if im.held[act] == 0 {
			im.justReleased[act] = true
		}
	}
}

// SetCallbacks routes the window's key and mouse button events here
func (im *InputManager) SetCallbacks(window *glfw.Window) {
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleKeyEvent(key, action)
	})
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		im.HandleMouseButtonEvent(button, action)
	})
}

// PostUpdate clears the edge flags. Call it once at the end of each frame.
func (im *InputManager) PostUpdate() {
	im.mu.Lock()
	defer im.mu.Unlock()

	for i := range ActionCount {
		im.justPressed[i] = false
		im.justReleased[i] = false
	}
}

// IsActive returns true while the action is held
func (im *InputManager) IsActive(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.held[action] > 0
}

// JustPressed returns true only in the frame the action was pressed
func (im *InputManager) JustPressed(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justPressed[action]
}

// JustReleased returns true only in the frame the action was released
func (im *InputManager) JustReleased(action Action) bool {
	if action < 0 || action >= ActionCount {
		return false
	}

	im.mu.RLock()
	defer im.mu.RUnlock()

	return im.justReleased[action]
}

// Movement snapshots the held movement actions for the camera
func (im *InputManager) Movement() camera.Movement {
	im.mu.RLock()
	defer im.mu.RUnlock()

	return camera.Movement{
		Forward:  im.held[ActionMoveForward] > 0,
		Backward: im.held[ActionMoveBackward] > 0,
		Left:     im.held[ActionMoveLeft] > 0,
		Right:    im.held[ActionMoveRight] > 0,
		Up:       im.held[ActionMoveUp] > 0,
		Down:     im.held[ActionMoveDown] > 0,
	}
}
