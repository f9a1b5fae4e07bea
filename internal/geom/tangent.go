package geom

import "github.com/go-gl/mathgl/mgl32"

// ComputeTangent returns the (unnormalized) tangent of triangle p1,p2,p3 with
// texture coordinates uv1,uv2,uv3. A triangle whose UVs have zero area yields
// the zero vector.
func ComputeTangent(p1, p2, p3 mgl32.Vec3, uv1, uv2, uv3 mgl32.Vec2) mgl32.Vec3 {
	edge1 := p2.Sub(p1)
	edge2 := p3.Sub(p1)
	duv1 := uv2.Sub(uv1)
	duv2 := uv3.Sub(uv1)

	det := duv1.X()*duv2.Y() - duv1.Y()*duv2.X()
	if det == 0 {
		return mgl32.Vec3{}
	}
	inv := 1 / det
	return edge1.Mul(duv2.Y()).Sub(edge2.Mul(duv1.Y())).Mul(inv)
}

// ComputeTangents overwrites the tangent of every vertex referenced by
// indices with the normalized sum of the tangents of its triangles.
// Vertices whose accumulated tangent is zero keep a zero tangent.
func ComputeTangents(vertices []Vertex, indices []uint32) {
	acc := make([]mgl32.Vec3, len(vertices))
	for i := 0; i+2 < len(indices); i += 3 {
		a, b, c := indices[i], indices[i+1], indices[i+2]
		if int(a) >= len(vertices) || int(b) >= len(vertices) || int(c) >= len(vertices) {
			continue
		}
		va, vb, vc := &vertices[a], &vertices[b], &vertices[c]
		t := ComputeTangent(va.Position, vb.Position, vc.Position, va.TexCoord, vb.TexCoord, vc.TexCoord)
		acc[a] = acc[a].Add(t)
		acc[b] = acc[b].Add(t)
		acc[c] = acc[c].Add(t)
	}
	for i := range vertices {
		if acc[i].Len() == 0 {
			vertices[i].Tangent = mgl32.Vec3{}
			continue
		}
		vertices[i].Tangent = acc[i].Normalize()
	}
}
