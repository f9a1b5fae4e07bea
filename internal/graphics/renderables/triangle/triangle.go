package triangle

import (
	"math"
	"unsafe"

	"glex/internal/graphics"
	"glex/internal/graphics/renderer"
	"glex/internal/imaging"
	"glex/internal/profiling"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	ImageFile  = "container.jpg"
	CheckSize  = 512
	CheckCell  = 64
	MixRatio   = 0.3
	SpinPerSec = 45.0 // degrees
)

type vertex struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
	TexCoord mgl32.Vec2
}

var baseVertices = []vertex{
	{mgl32.Vec3{-0.5, -0.5, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec2{0, 0}},
	{mgl32.Vec3{0.5, -0.5, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec2{1, 0}},
	{mgl32.Vec3{0.5, 0.5, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec2{1, 1}},
	{mgl32.Vec3{-0.5, 0.5, 0}, mgl32.Vec3{1, 1, 0}, mgl32.Vec2{0, 1}},
}

var indices = []uint32{0, 1, 2, 0, 2, 3}

// Triangle draws a spinning textured quad straight on Buffer and VertexLayout.
// Vertex colors are re-uploaded every frame.
type Triangle struct {
	env      *renderer.Env
	program  *graphics.Program
	layout   *graphics.VertexLayout
	vertices *graphics.Buffer
	indices  *graphics.Buffer
	image    *graphics.Texture
	check    *graphics.Texture
	frame    []vertex
}

func New(env *renderer.Env) *Triangle {
	return &Triangle{env: env, frame: make([]vertex, len(baseVertices))}
}

func (t *Triangle) Init() error {
	var err error
	if t.program, err = t.env.Program("texture.vs", "texture.fs"); err != nil {
		return err
	}
	if t.image, err = t.env.Texture(ImageFile, true); err != nil {
		return err
	}

	img, err := imaging.New(CheckSize, CheckSize, 4)
	if err != nil {
		return err
	}
	img.FillChecker(CheckCell, CheckCell)
	if t.check, err = graphics.NewTextureFromImage(img); err != nil {
		return err
	}

	if t.layout, err = graphics.NewVertexLayout(); err != nil {
		return err
	}
	t.layout.Bind()
	if t.vertices, err = graphics.NewBuffer(gl.ARRAY_BUFFER, gl.DYNAMIC_DRAW, baseVertices); err != nil {
		return err
	}
	if t.indices, err = graphics.NewBuffer(gl.ELEMENT_ARRAY_BUFFER, gl.STATIC_DRAW, indices); err != nil {
		return err
	}
	stride := int32(unsafe.Sizeof(vertex{}))
	t.vertices.Bind()
	t.layout.SetAttrib(0, 3, gl.FLOAT, false, stride, unsafe.Offsetof(vertex{}.Position))
	t.layout.SetAttrib(1, 3, gl.FLOAT, false, stride, unsafe.Offsetof(vertex{}.Color))
	t.layout.SetAttrib(2, 2, gl.FLOAT, false, stride, unsafe.Offsetof(vertex{}.TexCoord))
	graphics.UnbindVertexLayout()
	return nil
}

func (t *Triangle) Render(ctx renderer.RenderContext) {
	defer profiling.Track("triangle.draw")()

	gl.ClearColor(0.1, 0.2, 0.3, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	// fade vertex colors towards white and back
	pulse := float32(0.5 + 0.5*math.Sin(ctx.Time))
	for i, v := range baseVertices {
		v.Color = v.Color.Add(mgl32.Vec3{1, 1, 1}.Sub(v.Color).Mul(pulse))
		t.frame[i] = v
	}
	if err := graphics.UploadBuffer(t.vertices, t.frame); err != nil {
		return
	}

	model := mgl32.HomogRotate3DY(mgl32.DegToRad(float32(ctx.Time) * SpinPerSec)).Mul4(mgl32.Scale3D(2, 2, 2))
	t.program.Use()
	t.program.SetMat4("transform", ctx.Proj.Mul4(ctx.View).Mul4(model))
	t.program.SetFloat("mixRatio", MixRatio)
	_ = t.program.SetTexture("tex", 0, t.image)
	_ = t.program.SetTexture("tex2", 1, t.check)

	gl.Disable(gl.CULL_FACE)
	t.layout.Bind()
	gl.DrawElementsWithOffset(gl.TRIANGLES, int32(t.indices.Count()), gl.UNSIGNED_INT, 0)
	graphics.UnbindVertexLayout()
	gl.Enable(gl.CULL_FACE)
}

func (t *Triangle) SetViewport(width, height int) {}

func (t *Triangle) Dispose() {
	if t.program != nil {
		t.program.Delete()
	}
	if t.layout != nil {
		t.layout.Delete()
	}
	if t.vertices != nil {
		t.vertices.Delete()
	}
	if t.indices != nil {
		t.indices.Delete()
	}
	if t.check != nil {
		t.check.Delete()
	}
}
