package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Plane is a*x + b*y + c*z + d = 0 with a unit normal pointing inwards.
type Plane struct {
	A, B, C, D float32
}

// Distance is the signed distance of p from the plane, positive inside.
func (pl Plane) Distance(p mgl32.Vec3) float32 {
	return pl.A*p.X() + pl.B*p.Y() + pl.C*p.Z() + pl.D
}

// Frustum holds the six clip planes in order left, right, bottom, top, near,
// far.
type Frustum [6]Plane

// NewFrustum extracts the planes from a projection*view matrix.
func NewFrustum(clip mgl32.Mat4) Frustum {
	// mgl32 is column-major
	row := func(i int) [4]float32 {
		return [4]float32{clip[i], clip[4+i], clip[8+i], clip[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)
	combine := func(r [4]float32, sign float32) Plane {
		return normalizePlane(Plane{
			r3[0] + sign*r[0],
			r3[1] + sign*r[1],
			r3[2] + sign*r[2],
			r3[3] + sign*r[3],
		})
	}
	return Frustum{
		combine(r0, 1),
		combine(r0, -1),
		combine(r1, 1),
		combine(r1, -1),
		combine(r2, 1),
		combine(r2, -1),
	}
}

func normalizePlane(p Plane) Plane {
	n := float32(math.Sqrt(float64(p.A*p.A + p.B*p.B + p.C*p.C)))
	if n == 0 {
		return p
	}
	return Plane{p.A / n, p.B / n, p.C / n, p.D / n}
}

// ContainsSphere reports whether any part of the sphere may be visible.
func (f *Frustum) ContainsSphere(center mgl32.Vec3, radius float32) bool {
	for _, p := range f {
		if p.Distance(center) < -radius {
			return false
		}
	}
	return true
}

// ContainsAABB tests the box against each plane through its positive vertex.
func (f *Frustum) ContainsAABB(lo, hi mgl32.Vec3) bool {
	for _, p := range f {
		v := hi
		if p.A < 0 {
			v[0] = lo[0]
		}
		if p.B < 0 {
			v[1] = lo[1]
		}
		if p.C < 0 {
			v[2] = lo[2]
		}
		if p.Distance(v) < 0 {
			return false
		}
	}
	return true
}
