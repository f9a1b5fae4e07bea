package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsBadSize(t *testing.T) {
	_, err := New(0, 4, 4)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = New(4, 4, 5)
	assert.ErrorIs(t, err, ErrInvalidSize)
	_, err = NewFloat(4, -1, 3)
	assert.ErrorIs(t, err, ErrInvalidSize)

	img, err := New(3, 2, 4)
	require.NoError(t, err)
	assert.Len(t, img.Pix, 24)
	assert.False(t, img.IsFloat())
}

func TestFillChecker(t *testing.T) {
	img, err := New(4, 4, 4)
	require.NoError(t, err)
	img.FillChecker(2, 2)

	at := func(x, y, c int) uint8 { return img.Pix[(y*4+x)*4+c] }
	assert.Equal(t, uint8(255), at(0, 0, 0))
	assert.Equal(t, uint8(255), at(1, 1, 1))
	assert.Equal(t, uint8(0), at(2, 0, 0))
	assert.Equal(t, uint8(0), at(0, 2, 2))
	assert.Equal(t, uint8(255), at(3, 3, 0))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			assert.Equal(t, uint8(255), at(x, y, 3), "alpha at %d,%d", x, y)
		}
	}
}

func TestFillCheckerSingleChannel(t *testing.T) {
	img, err := New(2, 1, 1)
	require.NoError(t, err)
	img.FillChecker(1, 1)
	assert.Equal(t, []uint8{255, 0}, img.Pix)
}

func TestFillColorClamps(t *testing.T) {
	img, err := New(2, 2, 4)
	require.NoError(t, err)
	img.FillColor(mgl32.Vec4{2, -1, 0.5, 1})
	for i := 0; i < 4; i++ {
		assert.Equal(t, []uint8{255, 0, 128, 255}, img.Pix[i*4:i*4+4])
	}

	f, err := NewFloat(1, 1, 3)
	require.NoError(t, err)
	f.FillColor(mgl32.Vec4{2, -1, 0.5, 1})
	assert.Equal(t, []float32{2, -1, 0.5}, f.Float)
}

func TestFlipVertical(t *testing.T) {
	img, err := New(2, 3, 1)
	require.NoError(t, err)
	copy(img.Pix, []uint8{1, 2, 3, 4, 5, 6})
	img.FlipVertical()
	assert.Equal(t, []uint8{5, 6, 3, 4, 1, 2}, img.Pix)

	f, err := NewFloat(1, 2, 1)
	require.NoError(t, err)
	copy(f.Float, []float32{1, 2})
	f.FlipVertical()
	assert.Equal(t, []float32{2, 1}, f.Float)
}

func TestFromImageChannels(t *testing.T) {
	gray := image.NewGray(image.Rect(0, 0, 2, 2))
	gray.SetGray(1, 0, color.Gray{Y: 200})
	g := FromImage(gray)
	assert.Equal(t, 1, g.Channels)
	assert.Equal(t, []uint8{0, 200, 0, 0}, g.Pix)

	ycc := image.NewYCbCr(image.Rect(0, 0, 2, 2), image.YCbCrSubsampleRatio444)
	assert.Equal(t, 3, FromImage(ycc).Channels)

	rgba := image.NewRGBA(image.Rect(0, 0, 1, 1))
	rgba.Set(0, 0, color.RGBA{10, 20, 30, 255})
	c := FromImage(rgba)
	assert.Equal(t, 4, c.Channels)
	assert.Equal(t, []uint8{10, 20, 30, 255}, c.Pix)
}

func TestResized(t *testing.T) {
	img, err := New(4, 4, 3)
	require.NoError(t, err)
	img.FillColor(mgl32.Vec4{1, 0, 0, 1})

	small, err := img.Resized(2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, small.Channels)
	require.Len(t, small.Pix, 12)
	for i := 0; i < 4; i++ {
		assert.InDelta(t, 255, small.Pix[i*3], 1)
		assert.InDelta(t, 0, small.Pix[i*3+1], 1)
		assert.InDelta(t, 0, small.Pix[i*3+2], 1)
	}

	_, err = img.Resized(0, 2)
	assert.ErrorIs(t, err, ErrInvalidSize)

	f, err := NewFloat(2, 2, 3)
	require.NoError(t, err)
	_, err = f.Resized(1, 1)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestLoadPNGFlips(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 1, 2))
	src.Set(0, 0, color.NRGBA{255, 0, 0, 255})
	src.Set(0, 1, color.NRGBA{0, 0, 255, 255})

	path := filepath.Join(t.TempDir(), "two.png")
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	img, err := Load(path, false)
	require.NoError(t, err)
	assert.Equal(t, []uint8{255, 0, 0, 255, 0, 0, 255, 255}, img.Pix)

	img, err = Load(path, true)
	require.NoError(t, err)
	assert.Equal(t, []uint8{0, 0, 255, 255, 255, 0, 0, 255}, img.Pix)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.png"), true)
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "junk.png")
	require.NoError(t, os.WriteFile(path, []byte("not an image"), 0o644))
	_, err = Load(path, true)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}

func encodeRGBE(r, g, b float32) [4]byte {
	v := max(r, g, b)
	if v < 1e-32 {
		return [4]byte{}
	}
	frac, exp := math.Frexp(float64(v))
	scale := float32(frac) * 256 / v
	return [4]byte{byte(r * scale), byte(g * scale), byte(b * scale), byte(exp + 128)}
}

func TestDecodeHDRFlat(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("#?RADIANCE\nFORMAT=32-bit_rle_rgbe\n\n-Y 2 +X 2\n")
	pixels := [][3]float32{{1, 0.5, 0}, {4, 4, 4}, {0, 0, 0}, {0.5, 1, 4}}
	for _, p := range pixels {
		e := encodeRGBE(p[0], p[1], p[2])
		buf.Write(e[:])
	}

	img, err := DecodeHDR(&buf)
	require.NoError(t, err)
	assert.True(t, img.IsFloat())
	assert.Equal(t, 3, img.Channels)
	assert.Equal(t, []float32{1, 0.5, 0, 4, 4, 4, 0, 0, 0, 0.5, 1, 4}, img.Float)
}

func TestDecodeHDRBottomUp(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("#?RGBE\n\n+Y 2 +X 1\n")
	top, bottom := encodeRGBE(1, 1, 1), encodeRGBE(4, 4, 4)
	buf.Write(bottom[:])
	buf.Write(top[:])

	img, err := DecodeHDR(&buf)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 1, 1, 4, 4, 4}, img.Float)
}

func TestDecodeHDRRunLength(t *testing.T) {
	var buf bytes.Buffer
	buf.WriteString("#?RADIANCE\n\n-Y 1 +X 8\n")
	buf.Write([]byte{2, 2, 0, 8})
	// planar channels: R run, G literal, B run, E run then literal
	buf.Write([]byte{128 + 8, 128})
	buf.Write([]byte{8, 0, 16, 32, 48, 64, 80, 96, 112})
	buf.Write([]byte{128 + 8, 0})
	buf.Write([]byte{128 + 4, 129, 4, 129, 129, 129, 129})

	img, err := DecodeHDR(&buf)
	require.NoError(t, err)
	for x := 0; x < 8; x++ {
		px := img.Float[x*3 : x*3+3]
		assert.Equal(t, float32(1), px[0], "r at %d", x)
		assert.Equal(t, float32(x)*0.125, px[1], "g at %d", x)
		assert.Equal(t, float32(0), px[2], "b at %d", x)
	}
}

func TestDecodeHDRRejectsGarbage(t *testing.T) {
	_, err := DecodeHDR(bytes.NewBufferString("P6\n1 1\n255\n"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = DecodeHDR(bytes.NewBufferString("#?RADIANCE\nFORMAT=32-bit_rle_xyze\n\n-Y 1 +X 1\n"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)

	_, err = DecodeHDR(bytes.NewBufferString("#?RADIANCE\n\n-Y 1 -X 1\n"))
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
}
