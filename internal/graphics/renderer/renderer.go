package renderer

import (
	"glex/internal/camera"
	"glex/internal/config"
	"glex/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// Renderer orchestrates rendering of one demo plus overlays drawn on top
type Renderer struct {
	demo       Renderable
	overlays   []Renderable
	camera     *camera.Fly
	projection *camera.Projection

	width, height int
	elapsed       float64
}

// NewRenderer configures GL state and initializes the demo, then the overlays.
func NewRenderer(cfg *config.Config, width, height int, demo Renderable, overlays ...Renderable) (*Renderer, error) {
	// Configure OpenGL
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.Enable(gl.TEXTURE_CUBE_MAP_SEAMLESS)
	if cfg.Window.Samples > 0 {
		gl.Enable(gl.MULTISAMPLE)
	}

	cam := camera.NewFly()
	cam.MoveSpeed = cfg.Camera.MoveSpeed
	cam.RotateSpeed = cfg.Camera.RotateSpeed

	r := &Renderer{
		demo:       demo,
		overlays:   overlays,
		camera:     cam,
		projection: camera.NewProjection(width, height, cfg.Camera.FOV, cfg.Camera.Near, cfg.Camera.Far),
		width:      width,
		height:     height,
	}

	// Initialize all renderables, unwinding on failure. Dispose must cope with
	// a partially initialized renderable.
	all := r.renderables()
	for i, rn := range all {
		if err := rn.Init(); err != nil {
			for j := i; j >= 0; j-- {
				all[j].Dispose()
			}
			return nil, err
		}
		rn.SetViewport(width, height)
	}

	return r, nil
}

func (r *Renderer) renderables() []Renderable {
	return append([]Renderable{r.demo}, r.overlays...)
}

// Render draws one frame
func (r *Renderer) Render(dt float64) {
	defer profiling.Track("renderer.frame")()

	r.elapsed += dt
	ctx := RenderContext{
		Camera:     r.camera,
		Projection: r.projection,
		View:       r.camera.GetViewMatrix(),
		Proj:       r.projection.GetProjectionMatrix(),
		DT:         dt,
		Time:       r.elapsed,
		Width:      r.width,
		Height:     r.height,
		Wireframe:  config.IsWireframeMode(),
	}

	gl.Viewport(0, 0, int32(r.width), int32(r.height))
	ctx.Begin(ScenePass)
	r.demo.Render(ctx)
	ctx.Begin(FillPass)

	for _, o := range r.overlays {
		o.Render(ctx)
	}
}

// Dispose cleans up all renderables in reverse order
func (r *Renderer) Dispose() {
	all := r.renderables()
	for i := len(all) - 1; i >= 0; i-- {
		all[i].Dispose()
	}
}

// GetCamera returns the camera instance
func (r *Renderer) GetCamera() *camera.Fly {
	return r.camera
}

// UpdateViewport resizes the projection and every renderable. A minimized
// window is ignored.
func (r *Renderer) UpdateViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	r.width, r.height = width, height
	r.projection.SetViewport(width, height)
	for _, rn := range r.renderables() {
		rn.SetViewport(width, height)
	}
}
