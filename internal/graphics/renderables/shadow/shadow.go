package shadow

import (
	"glex/internal/graphics"
	"glex/internal/graphics/renderer"
	"glex/internal/lighting"
	"glex/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	SceneExtent = 12 // half size of the light's orthographic box
	LightNear   = 1
	LightFar    = 40
)

type object struct {
	model    mgl32.Mat4
	mesh     *graphics.Mesh
	material *graphics.Material
}

// Shadow renders a directional light's depth into a ShadowMap and then
// lights the scene with percentage-closer filtered shadows.
type Shadow struct {
	env        *renderer.Env
	depth      *graphics.Program
	lit        *graphics.Program
	simple     *graphics.Program
	shadowMap  *graphics.ShadowMap
	cube       *graphics.Mesh
	sphere     *graphics.Mesh
	gray       *graphics.Texture
	objects    []object
	lightDir   mgl32.Vec3
	lightSpace mgl32.Mat4
}

func New(env *renderer.Env) *Shadow {
	return &Shadow{env: env}
}

func (s *Shadow) Init() error {
	cfg := s.env.Config.Shadow
	var err error
	if s.depth, err = s.env.Program("shadow_depth.vs", "shadow_depth.fs"); err != nil {
		return err
	}
	if s.lit, err = s.env.Program("lighting_shadow.vs", "lighting_shadow.fs"); err != nil {
		return err
	}
	if s.simple, err = s.env.Program("simple.vs", "simple.fs"); err != nil {
		return err
	}
	if s.shadowMap, err = graphics.NewShadowMap(cfg.Size, cfg.Size); err != nil {
		return err
	}
	if s.cube, err = graphics.NewCubeMesh(); err != nil {
		return err
	}
	if s.sphere, err = graphics.NewSphereMesh(48, 24); err != nil {
		return err
	}

	if err := s.env.Preload(true, "marble.jpg", "container2.png", "container2_specular.png"); err != nil {
		return err
	}
	marble, err := s.env.Texture("marble.jpg", true)
	if err != nil {
		return err
	}
	box, err := s.env.Texture("container2.png", true)
	if err != nil {
		return err
	}
	boxSpec, err := s.env.Texture("container2_specular.png", true)
	if err != nil {
		return err
	}
	if s.gray, err = graphics.NewSolidTexture(4, 4, mgl32.Vec4{0.5, 0.5, 0.5, 1}); err != nil {
		return err
	}
	floor := &graphics.Material{Diffuse: marble, Specular: s.gray, Shininess: 8}
	crate := &graphics.Material{Diffuse: box, Specular: boxSpec, Shininess: 64}

	s.objects = []object{
		{mgl32.Translate3D(0, -0.5, 0).Mul4(mgl32.Scale3D(30, 1, 30)), s.cube, floor},
		{mgl32.Translate3D(-1, 0.75, -4).Mul4(mgl32.Scale3D(1.5, 1.5, 1.5)).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(30))), s.cube, crate},
		{mgl32.Translate3D(0, 0.75, 2).Mul4(mgl32.Scale3D(1.5, 1.5, 1.5)).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(20))), s.cube, crate},
		{mgl32.Translate3D(3, 1.75, -2).Mul4(mgl32.Scale3D(1.5, 1.5, 1.5)).Mul4(mgl32.HomogRotate3DY(mgl32.DegToRad(50))), s.cube, crate},
		{mgl32.Translate3D(-3, 1, 1).Mul4(mgl32.Scale3D(2, 2, 2)), s.sphere, crate},
	}

	s.lightDir = mgl32.Vec3(cfg.LightDir).Normalize()
	s.lightSpace = lighting.DirectionalLightSpace(s.lightDir, mgl32.Vec3{}, SceneExtent, LightNear, LightFar)
	return nil
}

func (s *Shadow) Render(ctx renderer.RenderContext) {
	// Pass 1: depth from the light
	func() {
		defer profiling.Track("shadow.depth")()
		s.shadowMap.Bind()
		ctx.Begin(renderer.FillPass)
		defer ctx.Begin(renderer.ScenePass)
		gl.CullFace(gl.FRONT)
		s.depth.Use()
		for _, o := range s.objects {
			s.depth.SetMat4("transform", s.lightSpace.Mul4(o.model))
			o.mesh.Draw(s.depth)
		}
		gl.CullFace(gl.BACK)
	}()

	// Pass 2: lit scene
	func() {
		defer profiling.Track("shadow.lighting")()
		graphics.BindToDefault(ctx.Width, ctx.Height)
		gl.ClearColor(0.1, 0.1, 0.15, 1)
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

		viewProj := ctx.Proj.Mul4(ctx.View)
		s.lit.Use()
		s.lit.SetVec3("viewPos", ctx.Camera.Position)
		s.lit.SetVec3("light.direction", s.lightDir)
		s.lit.SetVec3("light.ambient", mgl32.Vec3{0.15, 0.15, 0.15})
		s.lit.SetVec3("light.diffuse", mgl32.Vec3{0.8, 0.8, 0.8})
		s.lit.SetVec3("light.specular", mgl32.Vec3{0.5, 0.5, 0.5})
		s.lit.SetMat4("lightTransform", s.lightSpace)
		_ = s.lit.SetTexture("shadowMap", 3, s.shadowMap.DepthTexture())
		for _, o := range s.objects {
			s.lit.SetMat4("transform", viewProj.Mul4(o.model))
			s.lit.SetMat4("modelTransform", o.model)
			o.material.Apply(s.lit)
			o.mesh.Draw(s.lit)
		}

		// marker where the light comes from
		eye := s.lightDir.Mul(-(LightNear + LightFar) / 4)
		marker := mgl32.Translate3D(eye.X(), eye.Y(), eye.Z()).Mul4(mgl32.Scale3D(0.3, 0.3, 0.3))
		s.simple.Use()
		s.simple.SetVec4("color", mgl32.Vec4{1, 1, 0.6, 1})
		s.simple.SetMat4("transform", viewProj.Mul4(marker))
		s.cube.Draw(s.simple)
	}()
}

func (s *Shadow) SetViewport(width, height int) {}

func (s *Shadow) Dispose() {
	for _, p := range []*graphics.Program{s.depth, s.lit, s.simple} {
		if p != nil {
			p.Delete()
		}
	}
	for _, m := range []*graphics.Mesh{s.cube, s.sphere} {
		if m != nil {
			m.Delete()
		}
	}
	if s.shadowMap != nil {
		s.shadowMap.Delete()
	}
	if s.gray != nil {
		s.gray.Delete()
	}
}
