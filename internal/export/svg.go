package export

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/san-kum/basins/internal/fractal"
)

// ToSVG draws img as one rect per horizontal run of equal color, each pixel
// scale units wide. Y.Max is on the top row.
func ToSVG(img *fractal.Image, scale float64) string {
	if img == nil || img.N == 0 {
		return ""
	}
	if scale <= 0 {
		scale = 1
	}

	size := float64(img.N) * scale

	var sb strings.Builder

	// SVG header; the background is the most common color so its runs can
	// be skipped.
	bg := dominantColor(img)
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f" shape-rendering="crispEdges">
<rect width="100%%" height="100%%" fill="%s"/>
`, size, size, size, size, hexOf(bg)))

	for row := 0; row < img.N; row++ {
		y := float64(img.N-1-row) * scale
		for col := 0; col < img.N; {
			c := img.At(row, col)
			end := col + 1
			for end < img.N && img.At(row, end) == c {
				end++
			}
			if c != bg {
				sb.WriteString(fmt.Sprintf(`<rect x="%g" y="%g" width="%g" height="%g" fill="%s"/>
`, float64(col)*scale, y, float64(end-col)*scale, scale, hexOf(c)))
			}
			col = end
		}
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func dominantColor(img *fractal.Image) color.RGBA {
	counts := make(map[color.RGBA]int)
	var best color.RGBA
	for _, c := range img.Pix {
		counts[c]++
		if counts[c] > counts[best] {
			best = c
		}
	}
	return best
}

func hexOf(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
