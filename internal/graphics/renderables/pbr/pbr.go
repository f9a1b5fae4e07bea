package pbr

import (
	"fmt"

	"glex/internal/camera"
	"glex/internal/graphics"
	"glex/internal/graphics/renderer"
	"glex/internal/lighting"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	GridSize       = 7
	GridSpacing    = 1.2
	SphereRadius   = 0.5
	LightIntensity = 40
	Albedo         = 1
	AO             = 0.1
)

// PBR sweeps metallic and roughness over a grid of spheres lit by four
// point lights under the Cook-Torrance BRDF.
type PBR struct {
	env     *renderer.Env
	program *graphics.Program
	sphere  *graphics.Mesh
	cells   []lighting.GridCell
	lights  []lighting.PointLight
}

func New(env *renderer.Env) *PBR {
	return &PBR{env: env}
}

func (p *PBR) Init() error {
	var err error
	if p.program, err = p.env.Program("pbr.vs", "pbr.fs"); err != nil {
		return err
	}
	if p.sphere, err = graphics.NewSphereMesh(64, 32); err != nil {
		return err
	}
	p.cells = lighting.SphereGrid(GridSize, GridSpacing)
	p.lights = lighting.QuadLights(LightIntensity)
	return nil
}

func (p *PBR) SetViewport(width, height int) {}

func (p *PBR) Render(ctx renderer.RenderContext) {
	gl.ClearColor(0.1, 0.1, 0.1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	prog := p.program
	prog.Use()
	prog.SetVec3("viewPos", ctx.Camera.Position)
	SetLights(prog, p.lights)
	prog.SetVec3("material.albedo", mgl32.Vec3{Albedo, Albedo, Albedo})
	prog.SetFloat("material.ao", AO)

	viewProj := ctx.Proj.Mul4(ctx.View)
	frustum := camera.NewFrustum(viewProj)
	for _, c := range p.cells {
		if !frustum.ContainsSphere(c.Offset, SphereRadius) {
			continue
		}
		model := mgl32.Translate3D(c.Offset.X(), c.Offset.Y(), c.Offset.Z())
		prog.SetMat4("transform", viewProj.Mul4(model))
		prog.SetMat4("modelTransform", model)
		prog.SetFloat("material.metallic", c.Metallic)
		prog.SetFloat("material.roughness", c.Roughness)
		p.sphere.Draw(prog)
	}
}

func (p *PBR) Dispose() {
	if p.program != nil {
		p.program.Delete()
	}
	if p.sphere != nil {
		p.sphere.Delete()
	}
}

// SetLights uploads the lights[i] uniform array.
func SetLights(prog *graphics.Program, lights []lighting.PointLight) {
	for i, l := range lights {
		prog.SetVec3(fmt.Sprintf("lights[%d].position", i), l.Position)
		prog.SetVec3(fmt.Sprintf("lights[%d].color", i), l.Color)
	}
}
