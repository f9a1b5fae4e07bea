package text

import (
	"image"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildASCII(t *testing.T) *Atlas {
	t.Helper()
	face, err := DefaultFace(16)
	require.NoError(t, err)
	t.Cleanup(func() { _ = face.Close() })

	atlas, err := BuildAtlas(face, ASCII(), 256)
	require.NoError(t, err)
	return atlas
}

func TestASCII(t *testing.T) {
	runes := ASCII()
	assert.Len(t, runes, 95)
	assert.Equal(t, ' ', runes[0])
	assert.Equal(t, '~', runes[len(runes)-1])
}

func TestBuildAtlasGlyphs(t *testing.T) {
	atlas := buildASCII(t)

	assert.Equal(t, 256, atlas.Image.Width)
	assert.Equal(t, 1, atlas.Image.Channels)
	assert.Positive(t, atlas.LineHeight)
	assert.Len(t, atlas.Glyphs, 95)

	space := atlas.Glyphs[' ']
	assert.Zero(t, space.W)
	assert.Positive(t, space.Advance)

	a := atlas.Glyphs['A']
	assert.Positive(t, a.W)
	assert.Positive(t, a.H)
	assert.Positive(t, a.BearingY)
	assert.Positive(t, a.Advance)
}

func TestBuildAtlasRectsDisjoint(t *testing.T) {
	atlas := buildASCII(t)
	bounds := image.Rect(0, 0, atlas.Image.Width, atlas.Image.Height)

	var rects []image.Rectangle
	for _, g := range atlas.Glyphs {
		if g.W == 0 {
			continue
		}
		r := image.Rect(g.X, g.Y, g.X+g.W, g.Y+g.H)
		assert.True(t, r.In(bounds), "glyph rect %v outside atlas", r)
		for _, other := range rects {
			assert.False(t, r.Overlaps(other), "%v overlaps %v", r, other)
		}
		rects = append(rects, r)
	}
}

func TestBuildAtlasCoverage(t *testing.T) {
	atlas := buildASCII(t)
	g := atlas.Glyphs['W']

	var ink int
	for y := g.Y; y < g.Y+g.H; y++ {
		for x := g.X; x < g.X+g.W; x++ {
			if atlas.Image.Pix[y*atlas.Image.Width+x] > 0 {
				ink++
			}
		}
	}
	assert.Positive(t, ink)
}

func TestBuildAtlasTooNarrow(t *testing.T) {
	face, err := DefaultFace(32)
	require.NoError(t, err)
	defer face.Close()

	_, err = BuildAtlas(face, []rune{'W'}, 4)
	assert.ErrorIs(t, err, ErrGlyphTooWide)
}

func TestLayout(t *testing.T) {
	atlas := buildASCII(t)

	verts := atlas.Layout("AB", 10, 20, 1)
	require.Len(t, verts, 12)

	a := atlas.Glyphs['A']
	assert.Equal(t, float32(10+a.BearingX), verts[1].X)
	assert.Equal(t, float32(20-a.BearingY), verts[1].Y)
	assert.Equal(t, float32(a.X)/float32(atlas.Image.Width), verts[1].U)

	// second glyph starts one advance further
	b := atlas.Glyphs['B']
	assert.Equal(t, float32(10+a.Advance+b.BearingX), verts[7].X)
}

func TestLayoutSkipsInvisibleAndUnknown(t *testing.T) {
	atlas := buildASCII(t)
	space := float32(atlas.Glyphs[' '].Advance)

	assert.Empty(t, atlas.Layout("  ", 0, 0, 1))

	verts := atlas.Layout("éA", 0, 0, 1)
	require.Len(t, verts, 6)
	a := atlas.Glyphs['A']
	assert.Equal(t, space+float32(a.BearingX), verts[1].X)
}

func TestLayoutNewline(t *testing.T) {
	atlas := buildASCII(t)
	verts := atlas.Layout("A\nA", 0, 0, 2)
	require.Len(t, verts, 12)
	assert.Equal(t, verts[1].X, verts[7].X)
	assert.Equal(t, verts[1].Y+float32(2*atlas.LineHeight), verts[7].Y)
}

func TestMeasure(t *testing.T) {
	atlas := buildASCII(t)

	w1, h1 := atlas.Measure("A", 1)
	w2, _ := atlas.Measure("AA", 1)
	assert.Equal(t, float32(atlas.Glyphs['A'].Advance), w1)
	assert.Equal(t, 2*w1, w2)
	assert.Equal(t, float32(atlas.LineHeight), h1)

	w, h := atlas.Measure("AA\nA", 2)
	assert.Equal(t, 2*w2, w)
	assert.Equal(t, float32(4*atlas.LineHeight), h)
}
