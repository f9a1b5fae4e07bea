package pbrtexture

import (
	"glex/internal/camera"
	"glex/internal/graphics"
	"glex/internal/graphics/renderables/pbr"
	"glex/internal/graphics/renderer"
	"glex/internal/lighting"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	TextureDir     = "rusted_iron/"
	LightIntensity = 40
	AO             = 1
)

var textureSlots = []struct {
	uniform string
	file    string
}{
	{"material.albedo", "rustediron2_basecolor.png"},
	{"material.normal", "rustediron2_normal.png"},
	{"material.metallic", "rustediron2_metallic.png"},
	{"material.roughness", "rustediron2_roughness.png"},
}

// PBRTexture shades the sphere grid from albedo, normal, metallic and
// roughness maps instead of constants.
type PBRTexture struct {
	env      *renderer.Env
	program  *graphics.Program
	sphere   *graphics.Mesh
	textures []*graphics.Texture
	cells    []lighting.GridCell
	lights   []lighting.PointLight
}

func New(env *renderer.Env) *PBRTexture {
	return &PBRTexture{env: env}
}

func (p *PBRTexture) Init() error {
	var err error
	if p.program, err = p.env.Program("pbr_texture.vs", "pbr_texture.fs"); err != nil {
		return err
	}
	if p.sphere, err = graphics.NewSphereMesh(64, 32); err != nil {
		return err
	}
	files := make([]string, len(textureSlots))
	for i, s := range textureSlots {
		files[i] = TextureDir + s.file
	}
	if err := p.env.Preload(false, files...); err != nil {
		return err
	}
	p.textures = make([]*graphics.Texture, len(textureSlots))
	for i := range textureSlots {
		if p.textures[i], err = p.env.Texture(files[i], false); err != nil {
			return err
		}
	}
	p.cells = lighting.SphereGrid(pbr.GridSize, pbr.GridSpacing)
	p.lights = lighting.QuadLights(LightIntensity)
	return nil
}

func (p *PBRTexture) SetViewport(width, height int) {}

func (p *PBRTexture) Render(ctx renderer.RenderContext) {
	gl.ClearColor(0.1, 0.1, 0.1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	prog := p.program
	prog.Use()
	for i, s := range textureSlots {
		_ = prog.SetTexture(s.uniform, i, p.textures[i])
	}
	prog.SetFloat("material.ao", AO)
	prog.SetVec3("viewPos", ctx.Camera.Position)
	pbr.SetLights(prog, p.lights)

	viewProj := ctx.Proj.Mul4(ctx.View)
	frustum := camera.NewFrustum(viewProj)
	for _, c := range p.cells {
		if !frustum.ContainsSphere(c.Offset, pbr.SphereRadius) {
			continue
		}
		model := mgl32.Translate3D(c.Offset.X(), c.Offset.Y(), c.Offset.Z())
		prog.SetMat4("transform", viewProj.Mul4(model))
		prog.SetMat4("modelTransform", model)
		p.sphere.Draw(prog)
	}
}

// Dispose leaves the maps to the texture cache.
func (p *PBRTexture) Dispose() {
	if p.program != nil {
		p.program.Delete()
	}
	if p.sphere != nil {
		p.sphere.Delete()
	}
}
