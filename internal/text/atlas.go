// Package text bakes font glyphs into a single-channel atlas and lays out
// strings as textured quads in pixel space.
package text

import (
	"errors"
	"fmt"
	"image"
	"math"

	"glex/internal/imaging"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

var ErrGlyphTooWide = errors.New("text: glyph wider than atlas")

// Glyph describes one baked rune. X, Y, W and H locate the bitmap in the atlas
// with a top-left origin; the bearing is the offset from the pen position on
// the baseline to the bitmap's top-left corner.
type Glyph struct {
	X, Y, W, H int
	BearingX   int
	BearingY   int
	Advance    int
}

// Atlas is a baked glyph set. Image has one channel holding glyph coverage.
type Atlas struct {
	Image      *imaging.Image
	Glyphs     map[rune]Glyph
	LineHeight int
}

// ASCII returns the printable ASCII range.
func ASCII() []rune {
	runes := make([]rune, 0, 126-32+1)
	for r := rune(32); r <= 126; r++ {
		runes = append(runes, r)
	}
	return runes
}

// DefaultFace returns the Go Regular face at the given pixel size.
func DefaultFace(size float64) (font.Face, error) {
	f, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(f, &opentype.FaceOptions{Size: size, DPI: 72, Hinting: font.HintingFull})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	return face, nil
}

// BuildAtlas renders runes from face into rows of an atlas width pixels wide.
// The height is whatever the rows need. Runes the face lacks are skipped.
func BuildAtlas(face font.Face, runes []rune, width int) (*Atlas, error) {
	const padding = 1

	type placed struct {
		r     rune
		glyph Glyph
	}

	// First pass: pack rectangles to find the height
	var (
		layout                      []placed
		offsetX, offsetY, rowHeight int
	)
	for _, r := range runes {
		dr, _, _, advance, ok := face.Glyph(fixed.P(0, 0), r)
		if !ok {
			continue
		}
		g := Glyph{
			BearingX: dr.Min.X,
			BearingY: -dr.Min.Y,
			Advance:  int(math.Round(float64(advance) / 64)),
		}
		gw, gh := dr.Dx(), dr.Dy()
		if gw > width {
			return nil, fmt.Errorf("%w: %q is %d px, atlas %d px", ErrGlyphTooWide, r, gw, width)
		}
		if gw > 0 && gh > 0 {
			if offsetX+gw > width {
				offsetX = 0
				offsetY += rowHeight + padding
				rowHeight = 0
			}
			g.X, g.Y, g.W, g.H = offsetX, offsetY, gw, gh
			offsetX += gw + padding
			rowHeight = max(rowHeight, gh)
		}
		layout = append(layout, placed{r: r, glyph: g})
	}
	height := max(1, offsetY+rowHeight)

	// Second pass: render
	canvas := image.NewAlpha(image.Rect(0, 0, width, height))
	glyphs := make(map[rune]Glyph, len(layout))
	for _, p := range layout {
		glyphs[p.r] = p.glyph
		if p.glyph.W == 0 {
			continue
		}
		_, mask, maskp, _, _ := face.Glyph(fixed.P(0, 0), p.r)
		dst := image.Rect(p.glyph.X, p.glyph.Y, p.glyph.X+p.glyph.W, p.glyph.Y+p.glyph.H)
		draw.Draw(canvas, dst, mask, maskp, draw.Src)
	}

	img, err := imaging.New(width, height, 1)
	if err != nil {
		return nil, err
	}
	copy(img.Pix, canvas.Pix)

	return &Atlas{
		Image:      img,
		Glyphs:     glyphs,
		LineHeight: face.Metrics().Height.Ceil(),
	}, nil
}
