package lighting

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttenuationMatchesTable(t *testing.T) {
	k := Attenuation(7)
	assert.Equal(t, float32(1), k[0])
	assert.InDelta(t, 0.7, k[1], 0.01)

	k = Attenuation(100)
	assert.InDelta(t, 0.045, k[1], 0.002)
	assert.InDelta(t, 0.0075, k[2], 0.001)
}

func TestAttenuationMonotonic(t *testing.T) {
	prev := Attenuation(7)
	for _, d := range []float32{13, 20, 32, 50, 65, 100, 160, 200, 325, 600} {
		k := Attenuation(d)
		assert.Equal(t, float32(1), k[0])
		assert.GreaterOrEqual(t, k[1], float32(0))
		assert.GreaterOrEqual(t, k[2], float32(0))
		assert.Less(t, k[1], prev[1], "linear term at %v", d)
		prev = k
	}
}

func TestAttenuationNonPositiveDistance(t *testing.T) {
	assert.Equal(t, Attenuation(7), Attenuation(0))
	assert.Equal(t, Attenuation(7), Attenuation(-3))
}

func TestAttenuationAt(t *testing.T) {
	assert.Equal(t, float32(1), AttenuationAt(mgl32.Vec3{1, 0.5, 0.25}, 0))
	assert.InDelta(t, 1.0/3.0, AttenuationAt(mgl32.Vec3{1, 1, 0}, 2), 1e-6)
}

func TestSSAOKernel(t *testing.T) {
	kernel := SSAOKernel(rand.New(rand.NewSource(1)), 16)
	require.Len(t, kernel, 16)
	assert.LessOrEqual(t, kernel[0].Len(), float32(0.1)+1e-6)
	for i, s := range kernel {
		assert.GreaterOrEqual(t, s.Z(), float32(0), "sample %d below hemisphere", i)
		assert.LessOrEqual(t, s.Len(), float32(1)+1e-6)
	}

	again := SSAOKernel(rand.New(rand.NewSource(1)), 16)
	assert.Equal(t, kernel, again)
}

func TestSSAONoise(t *testing.T) {
	noise := SSAONoise(rand.New(rand.NewSource(7)), 16)
	require.Len(t, noise, 16)
	for _, n := range noise {
		assert.Equal(t, float32(0), n.Z())
		assert.True(t, n.X() >= -1 && n.X() <= 1)
		assert.True(t, n.Y() >= -1 && n.Y() <= 1)
	}
}

func TestRandomLights(t *testing.T) {
	lights := RandomLights(rand.New(rand.NewSource(3)), 32, 3)
	require.Len(t, lights, 32)
	for i, l := range lights {
		p := l.Position
		assert.True(t, p.X() >= -10 && p.X() <= 10, "x %v", p)
		assert.True(t, p.Y() >= 1 && p.Y() <= 4, "y %v", p)
		assert.True(t, p.Z() >= -10 && p.Z() <= 10, "z %v", p)
		if i >= 3 {
			assert.Equal(t, mgl32.Vec3{}, l.Color)
			continue
		}
		for c := 0; c < 3; c++ {
			assert.True(t, l.Color[c] >= 0.05 && l.Color[c] <= 0.3, "color %v", l.Color)
		}
	}
}

func TestNewSpotLight(t *testing.T) {
	s := NewSpotLight(mgl32.Vec3{}, mgl32.Vec3{0, 0, -2}, 12.5, 17.5, 50, mgl32.Vec3{1, 1, 1})
	assert.True(t, s.Direction.ApproxEqual(mgl32.Vec3{0, 0, -1}))
	assert.Greater(t, s.InnerCutoff, s.OuterCutoff)
	assert.Equal(t, Attenuation(50), s.Attenuation)
}

func TestDirectionalLightSpaceCentersTarget(t *testing.T) {
	for _, dir := range []mgl32.Vec3{{-2, -4, -1}, {0, -1, 0}} {
		m := DirectionalLightSpace(dir, mgl32.Vec3{1, 0, 1}, 10, 1, 20)
		p := m.Mul4x1(mgl32.Vec4{1, 0, 1, 1})
		assert.True(t, p.Vec3().ApproxEqualThreshold(mgl32.Vec3{}, 1e-4), "dir %v -> %v", dir, p)
	}
}

func TestCaptureViewsLookDownEachAxis(t *testing.T) {
	targets := [6]mgl32.Vec3{{1, 0, 0}, {-1, 0, 0}, {0, 1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}}
	ups := [6]mgl32.Vec3{{0, -1, 0}, {0, -1, 0}, {0, 0, 1}, {0, 0, -1}, {0, -1, 0}, {0, -1, 0}}
	views := CaptureViews()
	for i, v := range views {
		fwd := v.Mul4x1(targets[i].Vec4(0)).Vec3()
		assert.True(t, fwd.ApproxEqual(mgl32.Vec3{0, 0, -1}), "face %d forward %v", i, fwd)
		up := v.Mul4x1(ups[i].Vec4(0)).Vec3()
		assert.True(t, up.ApproxEqual(mgl32.Vec3{0, 1, 0}), "face %d up %v", i, up)
	}
}

func TestCaptureProjectionIsSquare(t *testing.T) {
	p := CaptureProjection()
	assert.InDelta(t, p.At(0, 0), p.At(1, 1), 1e-6)
	assert.InDelta(t, 1.0, p.At(0, 0), 1e-5)
}

func TestMipSize(t *testing.T) {
	assert.Equal(t, 128, MipSize(128, 0))
	assert.Equal(t, 8, MipSize(128, 4))
	assert.Equal(t, 1, MipSize(128, 9))
	assert.Equal(t, 1, MipSize(1, 3))
}

func TestMipRoughness(t *testing.T) {
	assert.Equal(t, float32(0), MipRoughness(0, 5))
	assert.Equal(t, float32(0.5), MipRoughness(2, 5))
	assert.Equal(t, float32(1), MipRoughness(4, 5))
	assert.Equal(t, float32(0), MipRoughness(0, 1))
}

func TestSphereGrid(t *testing.T) {
	cells := SphereGrid(7, 1.2)
	require.Len(t, cells, 49)

	first := cells[0]
	assert.True(t, first.Offset.ApproxEqual(mgl32.Vec3{-3.6, -3.6, 0}))
	assert.InDelta(t, 1.0/7.0, first.Roughness, 1e-6)
	assert.InDelta(t, 1.0/7.0, first.Metallic, 1e-6)

	last := cells[48]
	assert.True(t, last.Offset.ApproxEqual(mgl32.Vec3{3.6, 3.6, 0}))
	assert.Equal(t, float32(1), last.Roughness)
	assert.Equal(t, float32(1), last.Metallic)

	// roughness sweeps along a row
	assert.Greater(t, cells[1].Roughness, cells[0].Roughness)
	assert.Equal(t, cells[1].Metallic, cells[0].Metallic)
}
