package graphics

import (
	"glex/internal/geom"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is indexed geometry uploaded in the geom.Vertex layout, with an
// optional material applied before drawing.
type Mesh struct {
	Material *Material

	layout   *VertexLayout
	vertices *Buffer
	indices  *Buffer
	count    int32
}

// NewMesh uploads data. Attribute locations are 0 position, 1 normal,
// 2 texcoord and 3 tangent.
func NewMesh(data *geom.MeshData) (*Mesh, error) {
	layout, err := NewVertexLayout()
	if err != nil {
		return nil, err
	}
	layout.Bind()

	vertices, err := NewBuffer(gl.ARRAY_BUFFER, gl.STATIC_DRAW, data.Vertices)
	if err != nil {
		layout.Delete()
		return nil, err
	}
	indices, err := NewBuffer(gl.ELEMENT_ARRAY_BUFFER, gl.STATIC_DRAW, data.Indices)
	if err != nil {
		layout.Delete()
		vertices.Delete()
		return nil, err
	}

	vertices.Bind()
	layout.SetAttrib(0, 3, gl.FLOAT, false, geom.VertexSize, geom.PositionOffset)
	layout.SetAttrib(1, 3, gl.FLOAT, false, geom.VertexSize, geom.NormalOffset)
	layout.SetAttrib(2, 2, gl.FLOAT, false, geom.VertexSize, geom.TexCoordOffset)
	layout.SetAttrib(3, 3, gl.FLOAT, false, geom.VertexSize, geom.TangentOffset)
	UnbindVertexLayout()

	return &Mesh{
		layout:   layout,
		vertices: vertices,
		indices:  indices,
		count:    int32(len(data.Indices)),
	}, nil
}

func NewCubeMesh() (*Mesh, error) {
	return NewMesh(geom.Cube())
}

func NewPlaneMesh() (*Mesh, error) {
	return NewMesh(geom.Plane())
}

func NewSphereMesh(segments, rings int) (*Mesh, error) {
	return NewMesh(geom.Sphere(0.5, segments, rings))
}

// NewScreenQuad returns a plane covering normalized device coordinates,
// used by full-screen passes.
func NewScreenQuad() (*Mesh, error) {
	data := geom.Plane()
	data.Transform(mgl32.Scale3D(2, 2, 1))
	return NewMesh(data)
}

// Draw applies the material, if any, to p and issues the indexed draw call.
// p must already be in use.
func (m *Mesh) Draw(p *Program) {
	if m.Material != nil {
		m.Material.Apply(p)
	}
	m.layout.Bind()
	gl.DrawElementsWithOffset(gl.TRIANGLES, m.count, gl.UNSIGNED_INT, 0)
	UnbindVertexLayout()
}

// IndexCount returns the number of indices drawn per call.
func (m *Mesh) IndexCount() int { return int(m.count) }

// Delete releases the GL objects. The material is not owned.
func (m *Mesh) Delete() {
	m.layout.Delete()
	m.vertices.Delete()
	m.indices.Delete()
}
