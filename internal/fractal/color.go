package fractal

import "image/color"

// ColorMapper looks up the display color of a classification.
type ColorMapper struct {
	palette Palette
}

func NewColorMapper(p Palette, numRoots int) (*ColorMapper, error) {
	if len(p) != numRoots+1 {
		return nil, configErr("palette", ErrPaletteLength,
			"got %d colors for %d roots, want %d", len(p), numRoots, numRoots+1)
	}
	pal := make(Palette, len(p))
	copy(pal, p)
	return &ColorMapper{palette: pal}, nil
}

// ColorFor returns palette[c] for a root index and the last entry for
// Divergent or any index outside the root range.
func (m *ColorMapper) ColorFor(c Classification) color.RGBA {
	if c.IsRoot() && int(c) < len(m.palette)-1 {
		return m.palette[c]
	}
	return m.palette.Divergence()
}
