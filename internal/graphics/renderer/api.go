package renderer

import (
	"glex/internal/camera"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Pass tells the polygon mode what kind of geometry is about to be drawn
type Pass int

const (
	// ScenePass draws scene geometry, as lines in wireframe mode.
	ScenePass Pass = iota
	// FillPass must cover every pixel: full-screen quads, skyboxes and depth maps.
	FillPass
)

// RenderContext provides shared context for all renderables
type RenderContext struct {
	Camera     *camera.Fly
	Projection *camera.Projection
	View       mgl32.Mat4
	Proj       mgl32.Mat4
	DT         float64
	// Time is the seconds rendered so far, the sum of every DT.
	Time   float64
	Width  int
	Height int
	// Wireframe draws ScenePass geometry as lines.
	Wireframe bool
}

// PolygonMode returns the GL polygon mode for pass
func (ctx RenderContext) PolygonMode(pass Pass) uint32 {
	if ctx.Wireframe && pass == ScenePass {
		return gl.LINE
	}
	return gl.FILL
}

// Begin switches the polygon mode for pass
func (ctx RenderContext) Begin(pass Pass) {
	gl.PolygonMode(gl.FRONT_AND_BACK, ctx.PolygonMode(pass))
}

// Renderable interface defines the lifecycle for renderable features
type Renderable interface {
	Init() error
	Render(ctx RenderContext)
	Dispose()
	SetViewport(width, height int)
}
