package text

// Vertex is one corner of a glyph quad: pixel position then atlas UV.
type Vertex struct {
	X, Y float32
	U, V float32
}

// Layout returns two triangles per visible glyph of s, with the pen starting
// at (x, y) on the baseline and y growing downwards. Newlines start a new
// line. Runes missing from the atlas advance by the width of a space.
func (a *Atlas) Layout(s string, x, y, scale float32) []Vertex {
	aw, ah := float32(a.Image.Width), float32(a.Image.Height)
	vertices := make([]Vertex, 0, len(s)*6)
	penX := x
	for _, r := range s {
		if r == '\n' {
			penX = x
			y += float32(a.LineHeight) * scale
			continue
		}
		g, ok := a.Glyphs[r]
		if !ok {
			penX += float32(a.Glyphs[' '].Advance) * scale
			continue
		}
		if g.W > 0 && g.H > 0 {
			x0 := penX + float32(g.BearingX)*scale
			y0 := y - float32(g.BearingY)*scale
			x1 := x0 + float32(g.W)*scale
			y1 := y0 + float32(g.H)*scale
			u0, v0 := float32(g.X)/aw, float32(g.Y)/ah
			u1, v1 := float32(g.X+g.W)/aw, float32(g.Y+g.H)/ah

			vertices = append(vertices,
				Vertex{x0, y1, u0, v1},
				Vertex{x0, y0, u0, v0},
				Vertex{x1, y0, u1, v0},

				Vertex{x0, y1, u0, v1},
				Vertex{x1, y0, u1, v0},
				Vertex{x1, y1, u1, v1},
			)
		}
		penX += float32(g.Advance) * scale
	}
	return vertices
}

// Measure returns the width of the longest line and the total height.
func (a *Atlas) Measure(s string, scale float32) (width, height float32) {
	var line float32
	lines := 1
	for _, r := range s {
		if r == '\n' {
			width = max(width, line)
			line = 0
			lines++
			continue
		}
		g, ok := a.Glyphs[r]
		if !ok {
			g = a.Glyphs[' ']
		}
		line += float32(g.Advance) * scale
	}
	width = max(width, line)
	return width, float32(lines*a.LineHeight) * scale
}
