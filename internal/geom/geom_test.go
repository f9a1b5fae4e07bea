package geom

import (
	"testing"
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVertexLayoutMatchesOffsets(t *testing.T) {
	var v Vertex
	assert.Equal(t, uintptr(VertexSize), unsafe.Sizeof(v))
	assert.Equal(t, uintptr(PositionOffset), unsafe.Offsetof(v.Position))
	assert.Equal(t, uintptr(NormalOffset), unsafe.Offsetof(v.Normal))
	assert.Equal(t, uintptr(TexCoordOffset), unsafe.Offsetof(v.TexCoord))
	assert.Equal(t, uintptr(TangentOffset), unsafe.Offsetof(v.Tangent))
}

func TestComputeTangentAxisAligned(t *testing.T) {
	got := ComputeTangent(
		mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0},
		mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, mgl32.Vec2{0, 1},
	)
	assert.True(t, got.ApproxEqual(mgl32.Vec3{1, 0, 0}), "got %v", got)
}

func TestComputeTangentFollowsU(t *testing.T) {
	// U runs along +Y here, V along +X.
	got := ComputeTangent(
		mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0},
		mgl32.Vec2{0, 0}, mgl32.Vec2{0, 1}, mgl32.Vec2{1, 0},
	)
	assert.True(t, got.ApproxEqual(mgl32.Vec3{0, 1, 0}), "got %v", got)
}

func TestComputeTangentDegenerateUV(t *testing.T) {
	got := ComputeTangent(
		mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0},
		mgl32.Vec2{0.5, 0.5}, mgl32.Vec2{0.5, 0.5}, mgl32.Vec2{0.5, 0.5},
	)
	assert.Equal(t, mgl32.Vec3{}, got)
}

func TestComputeTangentsNormalizes(t *testing.T) {
	m := Plane()
	for i := range m.Vertices {
		m.Vertices[i].Position = m.Vertices[i].Position.Mul(10)
	}
	ComputeTangents(m.Vertices, m.Indices)
	for _, v := range m.Vertices {
		assert.InDelta(t, 1.0, v.Tangent.Len(), 1e-5)
		assert.True(t, v.Tangent.ApproxEqual(mgl32.Vec3{1, 0, 0}), "got %v", v.Tangent)
	}
}

func TestComputeTangentsLeavesUnreferencedZero(t *testing.T) {
	verts := []Vertex{
		{Position: mgl32.Vec3{0, 0, 0}},
		{Position: mgl32.Vec3{1, 0, 0}, TexCoord: mgl32.Vec2{1, 0}},
		{Position: mgl32.Vec3{0, 1, 0}, TexCoord: mgl32.Vec2{0, 1}},
		{Position: mgl32.Vec3{5, 5, 5}, Tangent: mgl32.Vec3{9, 9, 9}},
	}
	ComputeTangents(verts, []uint32{0, 1, 2})
	assert.Equal(t, mgl32.Vec3{}, verts[3].Tangent)
	assert.True(t, verts[0].Tangent.ApproxEqual(mgl32.Vec3{1, 0, 0}))
}

func TestCube(t *testing.T) {
	m := Cube()
	require.Len(t, m.Vertices, 24)
	require.Len(t, m.Indices, 36)
	assert.Equal(t, 12, m.TriangleCount())

	lo, hi := m.Bounds()
	assert.Equal(t, mgl32.Vec3{-0.5, -0.5, -0.5}, lo)
	assert.Equal(t, mgl32.Vec3{0.5, 0.5, 0.5}, hi)

	// every triangle winds counter-clockwise around its outward normal
	for i := 0; i < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]]
		b := m.Vertices[m.Indices[i+1]]
		c := m.Vertices[m.Indices[i+2]]
		n := b.Position.Sub(a.Position).Cross(c.Position.Sub(a.Position))
		assert.Greater(t, n.Dot(a.Normal), float32(0), "triangle %d", i/3)
		assert.InDelta(t, 1.0, a.Tangent.Len(), 1e-5)
		assert.InDelta(t, 0.0, a.Tangent.Dot(a.Normal), 1e-5)
	}
}

func TestPlane(t *testing.T) {
	m := Plane()
	require.Len(t, m.Vertices, 4)
	assert.Equal(t, []uint32{0, 1, 2, 0, 2, 3}, m.Indices)
	for _, v := range m.Vertices {
		assert.Equal(t, float32(0), v.Position.Z())
		assert.Equal(t, mgl32.Vec3{0, 0, 1}, v.Normal)
	}
}

func TestSphere(t *testing.T) {
	m := Sphere(0.5, 16, 8)
	assert.Len(t, m.Vertices, 17*9)
	assert.Len(t, m.Indices, 16*8*6)
	for _, v := range m.Vertices {
		assert.InDelta(t, 0.5, v.Position.Len(), 1e-5)
		assert.InDelta(t, 1.0, v.Normal.Len(), 1e-5)
	}
	for i := 0; i < len(m.Indices); i += 3 {
		a := m.Vertices[m.Indices[i]].Position
		b := m.Vertices[m.Indices[i+1]].Position
		c := m.Vertices[m.Indices[i+2]].Position
		n := b.Sub(a).Cross(c.Sub(a))
		if n.Len() < 1e-7 {
			continue // collapsed at a pole
		}
		centroid := a.Add(b).Add(c)
		assert.Greater(t, n.Dot(centroid), float32(0), "triangle %d faces inward", i/3)
	}
}

func TestSphereClampsSegments(t *testing.T) {
	m := Sphere(1, 0, 0)
	assert.Len(t, m.Vertices, 4*3)
}

func TestTransform(t *testing.T) {
	m := Cube()
	m.Transform(mgl32.Translate3D(0, 2, 0).Mul4(mgl32.Scale3D(2, 2, 2)))
	lo, hi := m.Bounds()
	assert.True(t, lo.ApproxEqual(mgl32.Vec3{-1, 1, -1}), "lo %v", lo)
	assert.True(t, hi.ApproxEqual(mgl32.Vec3{1, 3, 1}), "hi %v", hi)
	for _, v := range m.Vertices {
		assert.InDelta(t, 1.0, v.Normal.Len(), 1e-5)
	}
}
