package lighting

import (
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// SSAOKernel returns n hemisphere samples oriented around +Z in tangent
// space, biased towards the origin so nearby occluders weigh more.
func SSAOKernel(rng *rand.Rand, n int) []mgl32.Vec3 {
	kernel := make([]mgl32.Vec3, n)
	for i := range kernel {
		s := mgl32.Vec3{
			rng.Float32()*2 - 1,
			rng.Float32()*2 - 1,
			rng.Float32(),
		}
		if s.Len() == 0 {
			s = mgl32.Vec3{0, 0, 1}
		}
		s = s.Normalize().Mul(rng.Float32())

		t := float32(i) / float32(n)
		scale := lerp(0.1, 1.0, t*t)
		kernel[i] = s.Mul(scale)
	}
	return kernel
}

// SSAONoise returns n random rotation vectors around the Z axis, meant to be
// tiled over the screen as a small repeating texture.
func SSAONoise(rng *rand.Rand, n int) []mgl32.Vec3 {
	noise := make([]mgl32.Vec3, n)
	for i := range noise {
		noise[i] = mgl32.Vec3{rng.Float32()*2 - 1, rng.Float32()*2 - 1, 0}
	}
	return noise
}

func lerp(a, b, t float32) float32 {
	return a + t*(b-a)
}
