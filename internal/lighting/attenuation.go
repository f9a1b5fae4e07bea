package lighting

import "github.com/go-gl/mathgl/mgl32"

// Cubic fits in 1/range of the classic point light attenuation table
// (range 7 -> 0.7/1.8, range 100 -> 0.045/0.0075, ...).
var (
	linearFit    = mgl32.Vec4{8.4523112e-05, 4.4712582, -1.8516388, 33.955811}
	quadraticFit = mgl32.Vec4{-7.6103583e-04, 9.0120201, -11.618500, 201.72302}
)

// shortestRange is the smallest light range the fits were made against.
const shortestRange = 7

// Attenuation returns the (constant, linear, quadratic) coefficients of
// 1/(c + l*d + q*d*d) for a point light that should fade out at about dist.
func Attenuation(dist float32) mgl32.Vec3 {
	if dist <= 0 {
		dist = shortestRange
	}
	inv := 1 / dist
	powers := mgl32.Vec4{1, inv, inv * inv, inv * inv * inv}

	linear := linearFit.Dot(powers)
	if linear < 0 {
		linear = 0
	}
	q := quadraticFit.Dot(powers)
	if q < 0 {
		q = 0
	}
	return mgl32.Vec3{1, linear, q * q}
}

// AttenuationAt evaluates the attenuation factor for coefficients k at distance d.
func AttenuationAt(k mgl32.Vec3, d float32) float32 {
	return 1 / (k[0] + k[1]*d + k[2]*d*d)
}
