package lighting

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl32"
)

// PointLight is a positioned light with an RGB intensity.
type PointLight struct {
	Position mgl32.Vec3
	Color    mgl32.Vec3
}

// SpotLight is a cone light. Cutoffs are cosines of the half angles.
type SpotLight struct {
	Position    mgl32.Vec3
	Direction   mgl32.Vec3
	InnerCutoff float32
	OuterCutoff float32
	Color       mgl32.Vec3
	Attenuation mgl32.Vec3
}

// NewSpotLight builds a spot light from cone half angles in degrees.
func NewSpotLight(pos, dir mgl32.Vec3, innerDeg, outerDeg, reach float32, color mgl32.Vec3) SpotLight {
	return SpotLight{
		Position:    pos,
		Direction:   dir.Normalize(),
		InnerCutoff: float32(math.Cos(float64(mgl32.DegToRad(innerDeg)))),
		OuterCutoff: float32(math.Cos(float64(mgl32.DegToRad(outerDeg)))),
		Color:       color,
		Attenuation: Attenuation(reach),
	}
}

// RandomLights scatters n point lights over the floor area x,z in [-10,10],
// y in [1,4]. Only the first colored lights get a color; the others are black.
func RandomLights(rng *rand.Rand, n, colored int) []PointLight {
	lights := make([]PointLight, n)
	for i := range lights {
		lights[i].Position = mgl32.Vec3{
			rng.Float32()*20 - 10,
			rng.Float32()*3 + 1,
			rng.Float32()*20 - 10,
		}
		if i < colored {
			lights[i].Color = mgl32.Vec3{
				rng.Float32()*0.25 + 0.05,
				rng.Float32()*0.25 + 0.05,
				rng.Float32()*0.25 + 0.05,
			}
		}
	}
	return lights
}

// QuadLights returns the four point lights used by the PBR scenes.
func QuadLights(intensity float32) []PointLight {
	c := mgl32.Vec3{intensity, intensity, intensity}
	return []PointLight{
		{Position: mgl32.Vec3{5, 5, 6}, Color: c},
		{Position: mgl32.Vec3{-4, 5, 7}, Color: c},
		{Position: mgl32.Vec3{-4, -6, 8}, Color: c},
		{Position: mgl32.Vec3{5, -6, 9}, Color: c},
	}
}

// DirectionalLightSpace returns projection*view for a directional light
// shining along dir onto a box of the given half extent around center.
func DirectionalLightSpace(dir, center mgl32.Vec3, halfExtent, near, far float32) mgl32.Mat4 {
	d := dir.Normalize()
	eye := center.Sub(d.Mul((near + far) / 2))
	up := mgl32.Vec3{0, 1, 0}
	if abs(d.Dot(up)) > 0.999 {
		up = mgl32.Vec3{0, 0, 1}
	}
	proj := mgl32.Ortho(-halfExtent, halfExtent, -halfExtent, halfExtent, near, far)
	return proj.Mul4(mgl32.LookAtV(eye, center, up))
}

func abs(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}
