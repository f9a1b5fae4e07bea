package main

import (
	"github.com/go-gl/glfw/v3.3/glfw"
)

func setupInputHandlers(window *glfw.Window, loop *Loop) {
	loop.input.SetCallbacks(window)

	window.SetCursorPosCallback(func(w *glfw.Window, xpos, ypos float64) {
		loop.renderer.GetCamera().HandleMouseMovement(xpos, ypos)
	})

	window.SetFramebufferSizeCallback(func(w *glfw.Window, fbWidth, fbHeight int) {
		loop.renderer.UpdateViewport(fbWidth, fbHeight)
	})

	// Called during a live resize, when the loop is blocked in PollEvents
	window.SetRefreshCallback(func(w *glfw.Window) {
		loop.RefreshRender()
	})
}
