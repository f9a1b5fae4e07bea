package main

import (
	"log/slog"
	"time"

	"glex/internal/config"
	"glex/internal/graphics/renderer"
	"glex/internal/input"
	"glex/internal/profiling"
	"glex/internal/timing"

	"github.com/go-gl/glfw/v3.3/glfw"
)

// Loop drives one demo until the window closes
type Loop struct {
	window   *glfw.Window
	renderer *renderer.Renderer
	input    *input.InputManager

	fpsLimiter *timing.FPSLimiter
	fpsCounter *timing.FPSCounter
	lastTime   time.Time
}

func NewLoop(window *glfw.Window, r *renderer.Renderer) *Loop {
	return &Loop{
		window:     window,
		renderer:   r,
		input:      input.NewInputManager(),
		fpsLimiter: timing.NewFPSLimiter(),
		fpsCounter: timing.NewFPSCounter(time.Second),
		lastTime:   time.Now(),
	}
}

func (l *Loop) Run() {
	for !l.window.ShouldClose() {
		l.tick()
	}
}

func (l *Loop) tick() {
	profiling.ResetFrame()
	now := time.Now()
	dt := now.Sub(l.lastTime).Seconds()
	l.lastTime = now

	func() { defer profiling.Track("glfw.PollEvents")(); glfw.PollEvents() }()

	l.handleInputActions()
	l.renderer.GetCamera().Move(l.input.Movement(), dt)

	renderStart := time.Now()
	l.renderer.Render(dt)
	renderDur := time.Since(renderStart)

	func() { defer profiling.Track("glfw.SwapBuffers")(); l.window.SwapBuffers() }()

	// Clear edge flags at end of frame
	l.input.PostUpdate()

	l.updateProfiling(now, renderDur)
	l.fpsLimiter.Wait()
}

func (l *Loop) handleInputActions() {
	im := l.input
	cam := l.renderer.GetCamera()

	if im.JustPressed(input.ActionQuit) {
		l.window.SetShouldClose(true)
	}
	if im.JustPressed(input.ActionMouseRotate) {
		cam.BeginRotate(l.window.GetCursorPos())
	}
	if im.JustReleased(input.ActionMouseRotate) {
		cam.EndRotate()
	}
	if im.JustPressed(input.ActionResetCamera) {
		cam.Reset()
	}
	if im.JustPressed(input.ActionToggleWireframe) {
		slog.Info("wireframe", "on", config.ToggleWireframeMode())
	}
	if im.JustPressed(input.ActionToggleProfiling) {
		slog.Info("profiling log", "on", config.ToggleProfilingLog())
	}
	if im.JustPressed(input.ActionToggleSSAO) {
		slog.Info("ssao", "on", config.ToggleSSAO())
	}
	if im.JustPressed(input.ActionToggleOverlay) {
		config.ToggleOverlay()
	}
}

// RefreshRender redraws without advancing time
func (l *Loop) RefreshRender() {
	l.renderer.Render(0)
	l.window.SwapBuffers()
}

func (l *Loop) updateProfiling(frameStart time.Time, renderDur time.Duration) {
	if fps, ok := l.fpsCounter.Frame(time.Now()); ok {
		slog.Debug("frame rate", "fps", int(fps+0.5))
		if config.IsProfilingLog() {
			slog.Info("frame profile", "top", profiling.TopN(5))
		}
	}

	// Warn if rendering alone misses the target frame time
	if limit := config.GetFPSLimit(); limit > 0 {
		target := time.Second / time.Duration(limit)
		if renderDur > target {
			slog.Warn("slow frame",
				"render", renderDur,
				"target", target,
				"total", time.Since(frameStart),
				"top", profiling.TopN(3))
		}
	}
}
