package phong

import (
	"math"

	"glex/internal/graphics"
	"glex/internal/graphics/renderer"
	"glex/internal/lighting"
	"glex/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	DiffuseFile  = "container2.png"
	SpecularFile = "container2_specular.png"
	FloorFile    = "marble.jpg"

	LightReach   = 50
	SpotReach    = 32
	SpotInner    = 12.5 // degrees
	SpotOuter    = 17.5 // degrees
	OrbitRadius  = 3
	OrbitPerSec  = 0.5 // radians
	LightHeight  = 2.5
	CubeSpinRate = 10 // degrees per second
)

var cubePositions = []mgl32.Vec3{
	{0, 0.5, 0},
	{2, 5, -15},
	{-1.5, 2.2, -2.5},
	{-3.8, 2.0, -12.3},
	{2.4, 0.4, -3.5},
	{-1.7, 3, -7.5},
	{1.3, 2, -2.5},
	{1.5, 2, -2.5},
	{1.5, 0.2, -1.5},
	{-1.3, 1, -1.5},
}

// Phong lights material-mapped cubes with an orbiting point light and a
// spotlight attached to the camera.
type Phong struct {
	env      *renderer.Env
	program  *graphics.Program
	simple   *graphics.Program
	cube     *graphics.Mesh
	box      *graphics.Material
	marble   *graphics.Material
	gray     *graphics.Texture
	lightPos mgl32.Vec3
}

func New(env *renderer.Env) *Phong {
	return &Phong{env: env}
}

func (p *Phong) Init() error {
	var err error
	if p.program, err = p.env.Program("lighting.vs", "lighting.fs"); err != nil {
		return err
	}
	if p.simple, err = p.env.Program("simple.vs", "simple.fs"); err != nil {
		return err
	}
	if p.cube, err = graphics.NewCubeMesh(); err != nil {
		return err
	}

	if err := p.env.Preload(true, DiffuseFile, SpecularFile, FloorFile); err != nil {
		return err
	}
	diffuse, err := p.env.Texture(DiffuseFile, true)
	if err != nil {
		return err
	}
	specular, err := p.env.Texture(SpecularFile, true)
	if err != nil {
		return err
	}
	marble, err := p.env.Texture(FloorFile, true)
	if err != nil {
		return err
	}
	if p.gray, err = graphics.NewSolidTexture(4, 4, mgl32.Vec4{0.5, 0.5, 0.5, 1}); err != nil {
		return err
	}

	p.box = &graphics.Material{Diffuse: diffuse, Specular: specular, Shininess: 32}
	p.marble = &graphics.Material{Diffuse: marble, Specular: p.gray, Shininess: 8}
	return nil
}

func (p *Phong) Render(ctx renderer.RenderContext) {
	defer profiling.Track("phong.draw")()

	gl.ClearColor(0.05, 0.05, 0.08, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	angle := ctx.Time * OrbitPerSec
	p.lightPos = mgl32.Vec3{
		float32(math.Cos(angle)) * OrbitRadius,
		LightHeight,
		float32(math.Sin(angle)) * OrbitRadius,
	}
	cam := ctx.Camera
	spot := lighting.NewSpotLight(cam.Position, cam.GetFrontVector(), SpotInner, SpotOuter, SpotReach, mgl32.Vec3{1, 1, 1})
	viewProj := ctx.Proj.Mul4(ctx.View)

	p.program.Use()
	p.program.SetVec3("viewPos", cam.Position)
	p.program.SetVec3("light.position", p.lightPos)
	p.program.SetVec3("light.attenuation", lighting.Attenuation(LightReach))
	p.program.SetVec3("light.ambient", mgl32.Vec3{0.1, 0.1, 0.1})
	p.program.SetVec3("light.diffuse", mgl32.Vec3{0.8, 0.8, 0.8})
	p.program.SetVec3("light.specular", mgl32.Vec3{1, 1, 1})
	p.program.SetBool("useSpot", true)
	p.program.SetVec3("spot.position", spot.Position)
	p.program.SetVec3("spot.direction", spot.Direction)
	p.program.SetVec2("spot.cutoff", mgl32.Vec2{spot.InnerCutoff, spot.OuterCutoff})
	p.program.SetVec3("spot.attenuation", spot.Attenuation)
	p.program.SetVec3("spot.diffuse", spot.Color.Mul(0.8))
	p.program.SetVec3("spot.specular", spot.Color)

	floor := mgl32.Translate3D(0, -0.5, 0).Mul4(mgl32.Scale3D(20, 1, 20))
	p.program.SetMat4("transform", viewProj.Mul4(floor))
	p.program.SetMat4("modelTransform", floor)
	p.marble.Apply(p.program)
	p.cube.Draw(p.program)

	p.box.Apply(p.program)
	for i, pos := range cubePositions {
		deg := float32(20*i) + float32(ctx.Time)*CubeSpinRate
		model := mgl32.Translate3D(pos.X(), pos.Y(), pos.Z()).
			Mul4(mgl32.HomogRotate3D(mgl32.DegToRad(deg), mgl32.Vec3{1, 0.5, 0}.Normalize()))
		p.program.SetMat4("transform", viewProj.Mul4(model))
		p.program.SetMat4("modelTransform", model)
		p.cube.Draw(p.program)
	}

	// light marker
	marker := mgl32.Translate3D(p.lightPos.X(), p.lightPos.Y(), p.lightPos.Z()).Mul4(mgl32.Scale3D(0.2, 0.2, 0.2))
	p.simple.Use()
	p.simple.SetVec4("color", mgl32.Vec4{1, 1, 1, 1})
	p.simple.SetMat4("transform", viewProj.Mul4(marker))
	p.cube.Draw(p.simple)
}

func (p *Phong) SetViewport(width, height int) {}

func (p *Phong) Dispose() {
	for _, prog := range []*graphics.Program{p.program, p.simple} {
		if prog != nil {
			prog.Delete()
		}
	}
	if p.cube != nil {
		p.cube.Delete()
	}
	if p.gray != nil {
		p.gray.Delete()
	}
}
