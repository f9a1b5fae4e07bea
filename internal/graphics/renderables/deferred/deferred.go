package deferred

import (
	"fmt"
	"log/slog"
	"math/rand"

	"glex/internal/asset"
	"glex/internal/config"
	"glex/internal/graphics"
	"glex/internal/graphics/renderer"
	"glex/internal/lighting"
	"glex/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	NoiseSize     = 4
	ColoredLights = 3
	MarkerScale   = 0.1
)

type object struct {
	model    mgl32.Mat4
	material *graphics.Material
}

// Deferred shades a G-buffer with many point lights, with optional
// screen-space ambient occlusion blurred over 5x5 texels.
type Deferred struct {
	env *renderer.Env

	geometryProgram *graphics.Program
	ssaoProgram     *graphics.Program
	blurProgram     *graphics.Program
	lightProgram    *graphics.Program
	simpleProgram   *graphics.Program

	gbuffer *graphics.FrameBuffer
	ssaoFB  *graphics.FrameBuffer
	blurFB  *graphics.FrameBuffer

	cube     *graphics.Mesh
	quad     *graphics.Mesh
	model    *graphics.Model
	noise    *graphics.Texture
	owned    []*graphics.Texture
	objects  []object
	modelXfm mgl32.Mat4

	kernel      []mgl32.Vec3
	sampleNames []string
	lights      []lighting.PointLight
	lightNames  [][2]string
}

func New(env *renderer.Env) *Deferred {
	return &Deferred{env: env}
}

func (d *Deferred) Init() error {
	cfg := d.env.Config.SSAO
	programs := []struct {
		dst    **graphics.Program
		vs, fs string
	}{
		{&d.geometryProgram, "defer_geo.vs", "defer_geo.fs"},
		{&d.ssaoProgram, "screen.vs", "ssao.fs"},
		{&d.blurProgram, "screen.vs", "blur_5x5.fs"},
		{&d.lightProgram, "screen.vs", "defer_light.fs"},
		{&d.simpleProgram, "simple.vs", "simple.fs"},
	}
	for _, p := range programs {
		prog, err := d.env.Program(p.vs, p.fs)
		if err != nil {
			return err
		}
		*p.dst = prog
	}

	var err error
	if d.cube, err = graphics.NewCubeMesh(); err != nil {
		return err
	}
	if d.quad, err = graphics.NewScreenQuad(); err != nil {
		return err
	}
	if d.model, err = graphics.LoadModel(d.env.ModelPath(cfg.Model), asset.Options{FlipUVs: true}, d.env.Textures); err != nil {
		return err
	}
	if err := d.initMaterials(); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	d.lights = lighting.RandomLights(rng, cfg.LightCount, ColoredLights)
	d.lightNames = make([][2]string, len(d.lights))
	for i := range d.lights {
		d.lightNames[i] = [2]string{
			fmt.Sprintf("lights[%d].position", i),
			fmt.Sprintf("lights[%d].color", i),
		}
	}
	d.kernel = lighting.SSAOKernel(rng, cfg.KernelSize)
	d.sampleNames = make([]string, len(d.kernel))
	for i := range d.kernel {
		d.sampleNames[i] = fmt.Sprintf("samples[%d]", i)
	}

	noise := lighting.SSAONoise(rng, NoiseSize*NoiseSize)
	flat := make([]float32, 0, len(noise)*3)
	for _, n := range noise {
		flat = append(flat, n[0], n[1], n[2])
	}
	if d.noise, err = graphics.NewTextureFromFloats(NoiseSize, NoiseSize, gl.RGB16F, flat); err != nil {
		return err
	}

	slog.Info("deferred scene ready",
		"lights", len(d.lights),
		"kernel", len(d.kernel),
		"triangles", d.model.TriangleCount())
	return nil
}

func (d *Deferred) initMaterials() error {
	solid := func(v float32) (*graphics.Texture, error) {
		t, err := graphics.NewSolidTexture(512, 512, mgl32.Vec4{v, v, v, 1})
		if err == nil {
			d.owned = append(d.owned, t)
		}
		return t, err
	}
	darkGray, err := solid(0.2)
	if err != nil {
		return err
	}
	gray, err := solid(0.5)
	if err != nil {
		return err
	}

	names := []string{"marble.jpg", "container.jpg", "container2.png", "container2_specular.png"}
	if err := d.env.Preload(true, names...); err != nil {
		return err
	}
	textures := make(map[string]*graphics.Texture)
	for _, name := range names {
		if textures[name], err = d.env.Texture(name, true); err != nil {
			return err
		}
	}

	floor := &graphics.Material{Diffuse: textures["marble.jpg"], Specular: gray, Shininess: 8}
	crate := &graphics.Material{Diffuse: textures["container.jpg"], Specular: darkGray, Shininess: 16}
	steel := &graphics.Material{Diffuse: textures["container2.png"], Specular: textures["container2_specular.png"], Shininess: 64}

	place := func(pos, scale mgl32.Vec3, deg float32) mgl32.Mat4 {
		return mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
			Mul4(mgl32.Scale3D(scale.X(), scale.Y(), scale.Z())).
			Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(deg)))
	}
	d.objects = []object{
		{place(mgl32.Vec3{0, -0.5, 0}, mgl32.Vec3{40, 1, 40}, 0), floor},
		{place(mgl32.Vec3{-1, 0.75, -4}, mgl32.Vec3{1.5, 1.5, 1.5}, 30), crate},
		{place(mgl32.Vec3{0, 0.75, 2}, mgl32.Vec3{1.5, 1.5, 1.5}, 20), steel},
		{place(mgl32.Vec3{3, 1.75, -2}, mgl32.Vec3{1.5, 1.5, 1.5}, 50), steel},
	}
	d.modelXfm = mgl32.Translate3D(0, 0.55, 0).
		Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(-90))).
		Mul4(mgl32.Scale3D(0.5, 0.5, 0.5))
	return nil
}

// SetViewport recreates the screen-sized targets.
func (d *Deferred) SetViewport(width, height int) {
	d.releaseTargets()
	if err := d.createTargets(width, height); err != nil {
		slog.Error("deferred targets unavailable", "width", width, "height", height, "error", err)
		d.releaseTargets()
	}
}

func (d *Deferred) createTargets(width, height int) error {
	position, err := graphics.NewTexture(width, height, gl.RGBA16F, gl.FLOAT)
	if err != nil {
		return err
	}
	normal, err := graphics.NewTexture(width, height, gl.RGBA16F, gl.FLOAT)
	if err != nil {
		position.Delete()
		return err
	}
	albedo, err := graphics.NewTexture(width, height, gl.RGBA, gl.UNSIGNED_BYTE)
	if err != nil {
		position.Delete()
		normal.Delete()
		return err
	}
	if d.gbuffer, err = graphics.NewFrameBuffer(position, normal, albedo); err != nil {
		position.Delete()
		normal.Delete()
		albedo.Delete()
		return err
	}
	if d.ssaoFB, err = singleChannelTarget(width, height); err != nil {
		return err
	}
	if d.blurFB, err = singleChannelTarget(width, height); err != nil {
		return err
	}
	return nil
}

func singleChannelTarget(width, height int) (*graphics.FrameBuffer, error) {
	tex, err := graphics.NewTexture(width, height, gl.RED, gl.FLOAT)
	if err != nil {
		return nil, err
	}
	fb, err := graphics.NewFrameBuffer(tex)
	if err != nil {
		tex.Delete()
		return nil, err
	}
	return fb, nil
}

func (d *Deferred) releaseTargets() {
	for _, fb := range []**graphics.FrameBuffer{&d.gbuffer, &d.ssaoFB, &d.blurFB} {
		if *fb != nil {
			(*fb).DeleteAll()
			*fb = nil
		}
	}
}

func (d *Deferred) Render(ctx renderer.RenderContext) {
	if d.gbuffer == nil || d.ssaoFB == nil || d.blurFB == nil {
		return
	}
	viewProj := ctx.Proj.Mul4(ctx.View)

	// Pass 1: geometry
	func() {
		defer profiling.Track("deferred.geometry")()
		d.gbuffer.Bind()
		gl.ClearColor(0, 0, 0, 0)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		p := d.geometryProgram
		p.Use()
		for _, o := range d.objects {
			p.SetMat4("transform", viewProj.Mul4(o.model))
			p.SetMat4("modelTransform", o.model)
			o.material.Apply(p)
			d.cube.Draw(p)
		}
		p.SetMat4("transform", viewProj.Mul4(d.modelXfm))
		p.SetMat4("modelTransform", d.modelXfm)
		d.model.Draw(p)
	}()

	// Full-screen passes: filled, no depth test
	ctx.Begin(renderer.FillPass)
	gl.Disable(gl.DEPTH_TEST)
	useSSAO := config.IsSSAOEnabled()

	// Pass 2: occlusion
	if useSSAO {
		func() {
			defer profiling.Track("deferred.ssao")()
			d.ssaoFB.Bind()
			gl.Clear(gl.COLOR_BUFFER_BIT)
			cfg := d.env.Config.SSAO
			p := d.ssaoProgram
			p.Use()
			_ = p.SetTexture("gPosition", 0, d.gbuffer.ColorAttachment(0))
			_ = p.SetTexture("gNormal", 1, d.gbuffer.ColorAttachment(1))
			_ = p.SetTexture("texNoise", 2, d.noise)
			p.SetVec2("noiseScale", mgl32.Vec2{
				float32(ctx.Width) / float32(d.noise.Width()),
				float32(ctx.Height) / float32(d.noise.Height()),
			})
			p.SetFloat("radius", cfg.Radius)
			p.SetFloat("power", cfg.Power)
			p.SetInt("kernelSize", int32(len(d.kernel)))
			for i, s := range d.kernel {
				p.SetVec3(d.sampleNames[i], s)
			}
			p.SetMat4("view", ctx.View)
			p.SetMat4("projection", ctx.Proj)
			d.quad.Draw(p)
		}()

		// Pass 3: blur
		func() {
			defer profiling.Track("deferred.blur")()
			d.blurFB.Bind()
			gl.Clear(gl.COLOR_BUFFER_BIT)
			d.blurProgram.Use()
			_ = d.blurProgram.SetTexture("tex", 0, d.ssaoFB.ColorAttachment(0))
			d.quad.Draw(d.blurProgram)
		}()
	}

	// Pass 4: lighting composite
	func() {
		defer profiling.Track("deferred.lighting")()
		graphics.BindToDefault(ctx.Width, ctx.Height)
		gl.ClearColor(0, 0.1, 0.2, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT | gl.STENCIL_BUFFER_BIT)
		p := d.lightProgram
		p.Use()
		_ = p.SetTexture("gPosition", 0, d.gbuffer.ColorAttachment(0))
		_ = p.SetTexture("gNormal", 1, d.gbuffer.ColorAttachment(1))
		_ = p.SetTexture("gAlbedoSpec", 2, d.gbuffer.ColorAttachment(2))
		_ = p.SetTexture("ssao", 3, d.blurFB.ColorAttachment(0))
		p.SetBool("useSsao", useSSAO)
		p.SetVec3("viewPos", ctx.Camera.Position)
		p.SetInt("lightCount", int32(len(d.lights)))
		for i, l := range d.lights {
			p.SetVec3(d.lightNames[i][0], l.Position)
			p.SetVec3(d.lightNames[i][1], l.Color)
		}
		d.quad.Draw(p)
	}()
	gl.Enable(gl.DEPTH_TEST)
	ctx.Begin(renderer.ScenePass)

	// Pass 5: forward light markers over the blitted depth
	func() {
		defer profiling.Track("deferred.forward")()
		d.gbuffer.BlitDepthToDefault(ctx.Width, ctx.Height)
		d.simpleProgram.Use()
		for _, l := range d.lights {
			model := mgl32.Translate3D(l.Position.X(), l.Position.Y(), l.Position.Z()).
				Mul4(mgl32.Scale3D(MarkerScale, MarkerScale, MarkerScale))
			d.simpleProgram.SetVec4("color", l.Color.Vec4(1))
			d.simpleProgram.SetMat4("transform", viewProj.Mul4(model))
			d.cube.Draw(d.simpleProgram)
		}
	}()
}

func (d *Deferred) Dispose() {
	d.releaseTargets()
	for _, p := range []*graphics.Program{d.geometryProgram, d.ssaoProgram, d.blurProgram, d.lightProgram, d.simpleProgram} {
		if p != nil {
			p.Delete()
		}
	}
	for _, m := range []*graphics.Mesh{d.cube, d.quad} {
		if m != nil {
			m.Delete()
		}
	}
	if d.model != nil {
		d.model.Delete()
	}
	if d.noise != nil {
		d.noise.Delete()
	}
	for _, t := range d.owned {
		t.Delete()
	}
	d.owned = nil
}
