package graphics

import (
	"fmt"
	"io/fs"
	"unsafe"

	"glex/internal/text"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// TextRenderer draws strings from a baked glyph atlas in window pixels with
// the origin at the top-left corner.
type TextRenderer struct {
	atlas      *text.Atlas
	texture    *Texture
	program    *Program
	layout     *VertexLayout
	vertices   *Buffer
	projection mgl32.Mat4
}

// NewTextRenderer uploads atlas and compiles text.vs/text.fs from fsys.
func NewTextRenderer(fsys fs.FS, atlas *text.Atlas, width, height int) (*TextRenderer, error) {
	if atlas == nil || len(atlas.Glyphs) == 0 {
		return nil, fail("text renderer", fmt.Errorf("empty font atlas"))
	}
	program, err := LoadProgram(fsys, "text.vs", "text.fs")
	if err != nil {
		return nil, err
	}
	texture, err := NewTextureFromImage(atlas.Image)
	if err != nil {
		program.Delete()
		return nil, err
	}
	texture.SetFilter(gl.LINEAR, gl.LINEAR)

	layout, err := NewVertexLayout()
	if err != nil {
		program.Delete()
		texture.Delete()
		return nil, err
	}
	layout.Bind()
	vertices, err := NewBuffer[text.Vertex](gl.ARRAY_BUFFER, gl.DYNAMIC_DRAW, nil)
	if err != nil {
		program.Delete()
		texture.Delete()
		layout.Delete()
		return nil, err
	}
	vertices.Bind()
	layout.SetAttrib(0, 4, gl.FLOAT, false, int32(unsafe.Sizeof(text.Vertex{})), 0)
	UnbindVertexLayout()

	tr := &TextRenderer{
		atlas:    atlas,
		texture:  texture,
		program:  program,
		layout:   layout,
		vertices: vertices,
	}
	tr.SetViewport(width, height)
	return tr, nil
}

// SetViewport updates the pixel projection.
func (tr *TextRenderer) SetViewport(width, height int) {
	tr.projection = mgl32.Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// RenderLines draws lines starting with the baseline of the first at
// (x, y), lineStep pixels apart, in a single draw call.
func (tr *TextRenderer) RenderLines(lines []string, x, y, lineStep, scale float32, color mgl32.Vec3) {
	var vertices []text.Vertex
	for _, line := range lines {
		vertices = append(vertices, tr.atlas.Layout(line, x, y, scale)...)
		y += lineStep
	}
	if len(vertices) == 0 {
		return
	}

	gl.Disable(gl.DEPTH_TEST)
	gl.Disable(gl.CULL_FACE)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)

	tr.program.Use()
	tr.program.SetMat4("projection", tr.projection)
	tr.program.SetVec3("textColor", color)
	_ = tr.program.SetTexture("glyphs", 0, tr.texture)

	tr.layout.Bind()
	if err := UploadBuffer(tr.vertices, vertices); err == nil {
		gl.DrawArrays(gl.TRIANGLES, 0, int32(len(vertices)))
	}
	UnbindVertexLayout()

	gl.Disable(gl.BLEND)
	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
}

// Render draws a single string; see RenderLines.
func (tr *TextRenderer) Render(s string, x, y, scale float32, color mgl32.Vec3) {
	tr.RenderLines([]string{s}, x, y, 0, scale, color)
}

// LineHeight is the atlas line height at scale 1.
func (tr *TextRenderer) LineHeight() float32 {
	return float32(tr.atlas.LineHeight)
}

func (tr *TextRenderer) Delete() {
	tr.vertices.Delete()
	tr.layout.Delete()
	tr.texture.Delete()
	tr.program.Delete()
}
