package ibl

import (
	"log/slog"
	"time"

	"glex/internal/camera"
	"glex/internal/graphics"
	"glex/internal/graphics/renderables/pbr"
	"glex/internal/graphics/renderer"
	"glex/internal/lighting"
	"glex/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	GridSize       = 7
	GridSpacing    = 1.2
	SphereRadius   = 0.5
	LightIntensity = 40
	AO             = 1
)

// IBL lights the PBR sphere grid with an HDR environment: a diffuse
// irradiance cube, a roughness-prefiltered specular cube and a BRDF lookup
// table, all computed once at startup.
type IBL struct {
	env *renderer.Env

	program *graphics.Program
	skybox  *graphics.Program
	cube    *graphics.Mesh
	sphere  *graphics.Mesh

	environment *graphics.CubeTexture
	irradiance  *graphics.CubeTexture
	prefiltered *graphics.CubeTexture
	brdf        *graphics.Texture

	cells  []lighting.GridCell
	lights []lighting.PointLight
}

func New(env *renderer.Env) *IBL {
	return &IBL{env: env}
}

func (b *IBL) Init() error {
	var err error
	if b.program, err = b.env.Program("pbr.vs", "pbr_with_ibl.fs"); err != nil {
		return err
	}
	if b.skybox, err = b.env.Program("skybox_hdr.vs", "skybox_hdr.fs"); err != nil {
		return err
	}
	if b.cube, err = graphics.NewCubeMesh(); err != nil {
		return err
	}
	if b.sphere, err = graphics.NewSphereMesh(64, 32); err != nil {
		return err
	}
	b.cells = lighting.SphereGrid(GridSize, GridSpacing)
	b.lights = lighting.QuadLights(LightIntensity)
	return b.precompute()
}

func (b *IBL) precompute() error {
	defer profiling.Track("ibl.precompute")()
	start := time.Now()
	cfg := b.env.Config.IBL

	hdr, err := b.env.Texture(cfg.Environment, true)
	if err != nil {
		return err
	}

	equirect, err := b.env.Program("spherical_map.vs", "spherical_map.fs")
	if err != nil {
		return err
	}
	defer equirect.Delete()
	convolve, err := b.env.Program("spherical_map.vs", "diffuse_irradiance.fs")
	if err != nil {
		return err
	}
	defer convolve.Delete()
	prefilter, err := b.env.Program("spherical_map.vs", "prefiltered_light.fs")
	if err != nil {
		return err
	}
	defer prefilter.Delete()
	lookup, err := b.env.Program("screen.vs", "brdf_lookup.fs")
	if err != nil {
		return err
	}
	defer lookup.Delete()

	// Capture cameras sit inside the cube
	gl.Disable(gl.CULL_FACE)
	gl.DepthFunc(gl.LEQUAL)
	defer func() {
		gl.Enable(gl.CULL_FACE)
		gl.DepthFunc(gl.LESS)
		graphics.BindToDefault(b.env.Config.Window.Width, b.env.Config.Window.Height)
	}()

	if b.environment, err = graphics.NewCubeTexture(cfg.CubeSize, cfg.CubeSize, gl.RGB16F, gl.FLOAT); err != nil {
		return err
	}
	equirect.Use()
	if err := equirect.SetTexture("tex", 0, hdr); err != nil {
		return err
	}
	if err := b.capture(b.environment, 0, equirect); err != nil {
		return err
	}
	b.environment.GenerateMipmap()

	if b.irradiance, err = graphics.NewCubeTexture(cfg.IrradianceSize, cfg.IrradianceSize, gl.RGB16F, gl.FLOAT); err != nil {
		return err
	}
	convolve.Use()
	if err := convolve.SetTexture("cubeMap", 0, b.environment); err != nil {
		return err
	}
	if err := b.capture(b.irradiance, 0, convolve); err != nil {
		return err
	}

	if b.prefiltered, err = graphics.NewCubeTexture(cfg.PrefilterSize, cfg.PrefilterSize, gl.RGB16F, gl.FLOAT); err != nil {
		return err
	}
	// allocates storage for every level before rendering into them
	b.prefiltered.GenerateMipmap()
	prefilter.Use()
	if err := prefilter.SetTexture("cubeMap", 0, b.environment); err != nil {
		return err
	}
	for mip := 0; mip < cfg.PrefilterLevels; mip++ {
		prefilter.SetFloat("roughness", lighting.MipRoughness(mip, cfg.PrefilterLevels))
		if err := b.capture(b.prefiltered, mip, prefilter); err != nil {
			return err
		}
	}

	if b.brdf, err = graphics.NewTexture(cfg.BRDFSize, cfg.BRDFSize, gl.RG16F, gl.FLOAT); err != nil {
		return err
	}
	target, err := graphics.NewFrameBuffer(b.brdf)
	if err != nil {
		return err
	}
	defer target.Delete()
	quad, err := graphics.NewScreenQuad()
	if err != nil {
		return err
	}
	defer quad.Delete()
	target.Bind()
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	lookup.Use()
	quad.Draw(lookup)

	slog.Info("environment precomputed",
		"environment", cfg.Environment,
		"cube", cfg.CubeSize,
		"irradiance", cfg.IrradianceSize,
		"prefilter", cfg.PrefilterSize,
		"levels", cfg.PrefilterLevels,
		"elapsed", time.Since(start))
	return nil
}

// capture renders the unit cube from the centre into all six faces of one
// mip level of dst with the program already bound.
func (b *IBL) capture(dst *graphics.CubeTexture, mip int, prog *graphics.Program) error {
	target, err := graphics.NewCubeFrameBuffer(dst, mip)
	if err != nil {
		return err
	}
	defer target.Delete()

	proj := lighting.CaptureProjection()
	for face, view := range lighting.CaptureViews() {
		target.Bind(face)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		prog.SetMat4("transform", proj.Mul4(view))
		b.cube.Draw(prog)
	}
	return nil
}

func (b *IBL) SetViewport(width, height int) {}

func (b *IBL) Render(ctx renderer.RenderContext) {
	gl.ClearColor(0.1, 0.1, 0.1, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	prog := b.program
	prog.Use()
	_ = prog.SetTexture("irradianceMap", 0, b.irradiance)
	_ = prog.SetTexture("prefilteredMap", 1, b.prefiltered)
	_ = prog.SetTexture("brdfLookupTable", 2, b.brdf)
	prog.SetBool("useIBL", true)
	prog.SetFloat("maxReflectionLod", float32(b.env.Config.IBL.PrefilterLevels-1))
	prog.SetVec3("viewPos", ctx.Camera.Position)
	pbr.SetLights(prog, b.lights)
	prog.SetVec3("material.albedo", mgl32.Vec3{1, 1, 1})
	prog.SetFloat("material.ao", AO)

	viewProj := ctx.Proj.Mul4(ctx.View)
	frustum := camera.NewFrustum(viewProj)
	for _, c := range b.cells {
		if !frustum.ContainsSphere(c.Offset, SphereRadius) {
			continue
		}
		model := mgl32.Translate3D(c.Offset.X(), c.Offset.Y(), c.Offset.Z())
		prog.SetMat4("transform", viewProj.Mul4(model))
		prog.SetMat4("modelTransform", model)
		prog.SetFloat("material.metallic", c.Metallic)
		prog.SetFloat("material.roughness", c.Roughness)
		b.sphere.Draw(prog)
	}

	// Skybox last, at the far plane
	ctx.Begin(renderer.FillPass)
	gl.Disable(gl.CULL_FACE)
	gl.DepthFunc(gl.LEQUAL)
	b.skybox.Use()
	b.skybox.SetMat4("projection", ctx.Proj)
	b.skybox.SetMat4("view", ctx.View.Mat3().Mat4())
	_ = b.skybox.SetTexture("cubeMap", 0, b.environment)
	b.cube.Draw(b.skybox)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	ctx.Begin(renderer.ScenePass)
}

// Dispose releases the precomputed maps. The HDR source stays in the
// texture cache.
func (b *IBL) Dispose() {
	for _, p := range []*graphics.Program{b.program, b.skybox} {
		if p != nil {
			p.Delete()
		}
	}
	for _, m := range []*graphics.Mesh{b.cube, b.sphere} {
		if m != nil {
			m.Delete()
		}
	}
	for _, c := range []*graphics.CubeTexture{b.environment, b.irradiance, b.prefiltered} {
		if c != nil {
			c.Delete()
		}
	}
	if b.brdf != nil {
		b.brdf.Delete()
	}
}
