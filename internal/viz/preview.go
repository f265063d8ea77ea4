package viz

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/san-kum/basins/internal/fractal"
)

type cellColors struct {
	top, bottom color.RGBA
}

// Preview draws img with "▀" cells: the foreground is the upper pixel and
// the background the lower one, so width columns give a square picture of
// width/2 text rows. Y.Max is on the first line.
func Preview(img *fractal.Image, width int) string {
	if img == nil || img.N == 0 {
		return ""
	}
	if width <= 0 || width > img.N {
		width = img.N
	}
	height := (width + 1) / 2 * 2

	styles := make(map[cellColors]lipgloss.Style)
	var b strings.Builder
	for y := 0; y < height; y += 2 {
		for x := 0; x < width; x++ {
			key := cellColors{
				top:    samplePixel(img, x, y, width, height),
				bottom: samplePixel(img, x, y+1, width, height),
			}
			st, ok := styles[key]
			if !ok {
				st = lipgloss.NewStyle().
					Foreground(FromRGBA(key.top)).
					Background(FromRGBA(key.bottom))
				styles[key] = st
			}
			b.WriteString(st.Render("▀"))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// samplePixel maps preview coordinates (y down) to the nearest image pixel.
func samplePixel(img *fractal.Image, x, y, w, h int) color.RGBA {
	col := x * img.N / w
	row := img.N - 1 - y*img.N/h
	if row < 0 {
		row = 0
	}
	return img.At(row, col)
}

// Legend lists every palette color with its root.
func Legend(roots fractal.RootSet, palette fractal.Palette) string {
	var b strings.Builder
	for i, r := range roots {
		if i >= len(palette)-1 {
			break
		}
		swatch := lipgloss.NewStyle().Foreground(FromRGBA(palette[i])).Render("██")
		b.WriteString(swatch + " " + Subtle.Render(formatRoot(r)) + "\n")
	}
	swatch := lipgloss.NewStyle().Foreground(FromRGBA(palette.Divergence())).Render("██")
	b.WriteString(swatch + " " + Subtle.Render("divergent") + "\n")
	return b.String()
}

func formatRoot(z complex128) string {
	return fmt.Sprintf("%.4f%+.4fi", real(z), imag(z))
}
