package geom

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

type face struct {
	normal  mgl32.Vec3
	corners [4]mgl32.Vec3
}

var cubeFaces = [6]face{
	{mgl32.Vec3{0, 0, 1}, [4]mgl32.Vec3{{-0.5, -0.5, 0.5}, {0.5, -0.5, 0.5}, {0.5, 0.5, 0.5}, {-0.5, 0.5, 0.5}}},
	{mgl32.Vec3{0, 0, -1}, [4]mgl32.Vec3{{0.5, -0.5, -0.5}, {-0.5, -0.5, -0.5}, {-0.5, 0.5, -0.5}, {0.5, 0.5, -0.5}}},
	{mgl32.Vec3{1, 0, 0}, [4]mgl32.Vec3{{0.5, -0.5, 0.5}, {0.5, -0.5, -0.5}, {0.5, 0.5, -0.5}, {0.5, 0.5, 0.5}}},
	{mgl32.Vec3{-1, 0, 0}, [4]mgl32.Vec3{{-0.5, -0.5, -0.5}, {-0.5, -0.5, 0.5}, {-0.5, 0.5, 0.5}, {-0.5, 0.5, -0.5}}},
	{mgl32.Vec3{0, 1, 0}, [4]mgl32.Vec3{{-0.5, 0.5, 0.5}, {0.5, 0.5, 0.5}, {0.5, 0.5, -0.5}, {-0.5, 0.5, -0.5}}},
	{mgl32.Vec3{0, -1, 0}, [4]mgl32.Vec3{{-0.5, -0.5, -0.5}, {0.5, -0.5, -0.5}, {0.5, -0.5, 0.5}, {-0.5, -0.5, 0.5}}},
}

var quadUVs = [4]mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}

// Cube returns a unit cube centred at the origin with 4 vertices per face,
// counter-clockwise winding seen from outside.
func Cube() *MeshData {
	m := &MeshData{
		Vertices: make([]Vertex, 0, 24),
		Indices:  make([]uint32, 0, 36),
	}
	for _, f := range cubeFaces {
		base := uint32(len(m.Vertices))
		for i, c := range f.corners {
			m.Vertices = append(m.Vertices, Vertex{Position: c, Normal: f.normal, TexCoord: quadUVs[i]})
		}
		m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	ComputeTangents(m.Vertices, m.Indices)
	return m
}

// Plane returns a unit quad in the z=0 plane facing +z.
// Scaled by 2 it covers normalized device coordinates.
func Plane() *MeshData {
	m := &MeshData{
		Vertices: []Vertex{
			{Position: mgl32.Vec3{-0.5, -0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, TexCoord: quadUVs[0]},
			{Position: mgl32.Vec3{0.5, -0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, TexCoord: quadUVs[1]},
			{Position: mgl32.Vec3{0.5, 0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, TexCoord: quadUVs[2]},
			{Position: mgl32.Vec3{-0.5, 0.5, 0}, Normal: mgl32.Vec3{0, 0, 1}, TexCoord: quadUVs[3]},
		},
		Indices: []uint32{0, 1, 2, 0, 2, 3},
	}
	ComputeTangents(m.Vertices, m.Indices)
	return m
}

// Sphere generates a UV sphere. segments is clamped to at least 3 and rings
// to at least 2.
func Sphere(radius float32, segments, rings int) *MeshData {
	if segments < 3 {
		segments = 3
	}
	if rings < 2 {
		rings = 2
	}

	m := &MeshData{
		Vertices: make([]Vertex, 0, (rings+1)*(segments+1)),
		Indices:  make([]uint32, 0, rings*segments*6),
	}
	for ring := 0; ring <= rings; ring++ {
		phi := float64(ring) * math.Pi / float64(rings)
		sinPhi, cosPhi := float32(math.Sin(phi)), float32(math.Cos(phi))
		for seg := 0; seg <= segments; seg++ {
			theta := float64(seg) * 2 * math.Pi / float64(segments)
			sinTheta, cosTheta := float32(math.Sin(theta)), float32(math.Cos(theta))

			n := mgl32.Vec3{sinPhi * cosTheta, cosPhi, sinPhi * sinTheta}
			m.Vertices = append(m.Vertices, Vertex{
				Position: n.Mul(radius),
				Normal:   n,
				TexCoord: mgl32.Vec2{float32(seg) / float32(segments), float32(ring) / float32(rings)},
				// d/dtheta of the position, so tangents stay defined at the poles
				Tangent: mgl32.Vec3{-sinTheta, 0, cosTheta},
			})
		}
	}
	for ring := 0; ring < rings; ring++ {
		for seg := 0; seg < segments; seg++ {
			cur := uint32(ring*(segments+1) + seg)
			next := cur + uint32(segments+1)
			m.Indices = append(m.Indices, cur, cur+1, next, cur+1, next+1, next)
		}
	}
	return m
}

// Transform applies model to positions and the inverse transpose to normals
// and tangents, in place.
func (m *MeshData) Transform(model mgl32.Mat4) {
	normalMat := model.Mat3().Inv().Transpose()
	for i := range m.Vertices {
		v := &m.Vertices[i]
		v.Position = model.Mul4x1(v.Position.Vec4(1)).Vec3()
		if n := normalMat.Mul3x1(v.Normal); n.Len() > 0 {
			v.Normal = n.Normalize()
		}
		if t := model.Mat3().Mul3x1(v.Tangent); t.Len() > 0 {
			v.Tangent = t.Normalize()
		}
	}
}
