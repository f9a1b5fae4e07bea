package geom

import "github.com/go-gl/mathgl/mgl32"

// Vertex is the interleaved layout uploaded for every mesh.
// Attribute locations: 0 position, 1 normal, 2 texcoord, 3 tangent.
type Vertex struct {
	Position mgl32.Vec3
	Normal   mgl32.Vec3
	TexCoord mgl32.Vec2
	Tangent  mgl32.Vec3
}

// Byte offsets of each attribute inside Vertex.
const (
	PositionOffset = 0
	NormalOffset   = 12
	TexCoordOffset = 24
	TangentOffset  = 32
	VertexSize     = 44
)

// MeshData is CPU-side indexed triangle geometry.
type MeshData struct {
	Vertices []Vertex
	Indices  []uint32
}

// TriangleCount returns the number of indexed triangles.
func (m *MeshData) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the axis-aligned box enclosing all vertex positions.
func (m *MeshData) Bounds() (lo, hi mgl32.Vec3) {
	if len(m.Vertices) == 0 {
		return
	}
	lo = m.Vertices[0].Position
	hi = lo
	for _, v := range m.Vertices[1:] {
		for i := 0; i < 3; i++ {
			if v.Position[i] < lo[i] {
				lo[i] = v.Position[i]
			}
			if v.Position[i] > hi[i] {
				hi[i] = v.Position[i]
			}
		}
	}
	return
}
