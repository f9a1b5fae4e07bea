package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
	"time"

	"glex/internal/graphics"
	"glex/internal/timing"
	"glex/shader"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	windowWidth  = 800
	windowHeight = 600
)

var vertices = []mgl32.Vec3{
	{0, 0.5, 0},
	{-0.5, -0.5, 0},
	{0.5, -0.5, 0},
}

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := run(); err != nil {
		slog.Error("triangle failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := glfw.Init(); err != nil {
		return fmt.Errorf("init glfw: %w", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.False)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "glex - triangle", nil, nil)
	if err != nil {
		return fmt.Errorf("create window: %w", err)
	}
	window.MakeContextCurrent()
	// No vsync, for raw frame rate
	glfw.SwapInterval(0)

	if err := gl.Init(); err != nil {
		return fmt.Errorf("init gl: %w", err)
	}

	program, err := graphics.LoadProgram(shader.FS, "simple.vs", "simple.fs")
	if err != nil {
		return err
	}
	defer program.Delete()

	layout, err := graphics.NewVertexLayout()
	if err != nil {
		return err
	}
	defer layout.Delete()
	layout.Bind()
	buffer, err := graphics.NewBuffer(gl.ARRAY_BUFFER, gl.STATIC_DRAW, vertices)
	if err != nil {
		return err
	}
	defer buffer.Delete()
	layout.SetAttrib(0, 3, gl.FLOAT, false, int32(buffer.Stride()), 0)
	graphics.UnbindVertexLayout()

	gl.ClearColor(0, 0, 0, 1)
	program.Use()
	program.SetMat4("transform", mgl32.Ident4())
	program.SetVec4("color", mgl32.Vec4{0, 1, 0, 1})
	layout.Bind()

	fps := timing.NewFPSCounter(time.Second)
	for !window.ShouldClose() {
		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		gl.Clear(gl.COLOR_BUFFER_BIT)
		gl.DrawArrays(gl.TRIANGLES, 0, int32(buffer.Count()))

		window.SwapBuffers()
		glfw.PollEvents()

		if rate, ok := fps.Frame(time.Now()); ok {
			slog.Info("frame rate", "fps", int(rate+0.5))
		}
	}
	return nil
}
