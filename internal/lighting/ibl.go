package lighting

import "github.com/go-gl/mathgl/mgl32"

// CaptureProjection is the 90 degree square frustum used to render one
// cubemap face.
func CaptureProjection() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(90), 1, 0.1, 10)
}

// CaptureViews returns the view matrices for the faces +X, -X, +Y, -Y, +Z, -Z,
// in GL cubemap face order.
func CaptureViews() [6]mgl32.Mat4 {
	eye := mgl32.Vec3{}
	return [6]mgl32.Mat4{
		mgl32.LookAtV(eye, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}),
		mgl32.LookAtV(eye, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}),
		mgl32.LookAtV(eye, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}),
		mgl32.LookAtV(eye, mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}),
		mgl32.LookAtV(eye, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}),
		mgl32.LookAtV(eye, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}),
	}
}

// MipSize returns the edge length of mip level of a base-sized image.
func MipSize(base, level int) int {
	s := base >> level
	if s < 1 {
		return 1
	}
	return s
}

// MipRoughness maps a prefilter mip level to the roughness it encodes.
func MipRoughness(level, levels int) float32 {
	if levels <= 1 {
		return 0
	}
	return float32(level) / float32(levels-1)
}

// GridCell is one sphere of a material sweep.
type GridCell struct {
	Offset    mgl32.Vec3
	Roughness float32
	Metallic  float32
}

// SphereGrid lays out n*n spheres on the XY plane, centred on the origin.
// Roughness grows along X and metallic grows along Y.
func SphereGrid(n int, spacing float32) []GridCell {
	cells := make([]GridCell, 0, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			cells = append(cells, GridCell{
				Offset: mgl32.Vec3{
					float32(col-n/2) * spacing,
					float32(row-n/2) * spacing,
					0,
				},
				Roughness: float32(col+1) / float32(n),
				Metallic:  float32(row+1) / float32(n),
			})
		}
	}
	return cells
}
