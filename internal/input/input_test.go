package input

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/stretchr/testify/assert"
)

func TestSharedActionStaysHeldUntilLastKeyReleased(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	im.HandleKeyEvent(glfw.KeyUp, glfw.Press)
	im.PostUpdate()

	im.HandleKeyEvent(glfw.KeyUp, glfw.Release)
	assert.True(t, im.IsActive(ActionMoveForward))
	assert.False(t, im.JustReleased(ActionMoveForward))
	assert.True(t, im.Movement().Forward)

	im.HandleKeyEvent(glfw.KeyW, glfw.Release)
	assert.False(t, im.IsActive(ActionMoveForward))
	assert.True(t, im.JustReleased(ActionMoveForward))
	assert.False(t, im.Movement().Forward)
}

func TestEdgesFireOncePerPress(t *testing.T) {
	im := NewInputManager()

	im.HandleKeyEvent(glfw.KeyF, glfw.Press)
	assert.True(t, im.JustPressed(ActionToggleWireframe))
	im.PostUpdate()

	im.HandleKeyEvent(glfw.KeyF, glfw.Repeat)
	assert.True(t, im.IsActive(ActionToggleWireframe))
	assert.False(t, im.JustPressed(ActionToggleWireframe))

	im.HandleKeyEvent(glfw.KeyF, glfw.Release)
	im.HandleKeyEvent(glfw.KeyF, glfw.Release)
	assert.True(t, im.JustReleased(ActionToggleWireframe))
	assert.False(t, im.IsActive(ActionToggleWireframe))

	// A second press of W with Up still up must not count twice
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	im.HandleKeyEvent(glfw.KeyW, glfw.Press)
	im.HandleKeyEvent(glfw.KeyW, glfw.Release)
	assert.False(t, im.IsActive(ActionMoveForward))
}

func TestMouseButtonAndUnboundInput(t *testing.T) {
	im := NewInputManager()

	im.HandleMouseButtonEvent(glfw.MouseButtonRight, glfw.Press)
	assert.True(t, im.IsActive(ActionMouseRotate))
	im.HandleMouseButtonEvent(glfw.MouseButtonRight, glfw.Release)
	assert.False(t, im.IsActive(ActionMouseRotate))

	im.HandleKeyEvent(glfw.KeyZ, glfw.Press)
	im.HandleMouseButtonEvent(glfw.MouseButtonLeft, glfw.Press)
	for a := range ActionCount {
		assert.False(t, im.IsActive(a), "action %d", a)
	}
	assert.False(t, im.IsActive(ActionCount))
}
