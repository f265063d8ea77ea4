package viz

import (
	"strings"

	"github.com/san-kum/basins/internal/fractal"
)

// Braille Patterns: 2x4 dots
// 1 4
// 2 5
// 3 6
// 7 8
//
// Unicode offset 0x2800
var pixelMap = [4][2]int{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a monochrome Braille canvas, each cell holding 2×4 dots.
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set sets a dot at (x, y) in sub-pixel coordinates; the canvas is
// (Width*2) x (Height*4) dots.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}

	col := x / 2
	row := y / 4
	if col >= c.Width || row >= c.Height {
		return
	}

	c.Grid[row][col] |= rune(pixelMap[y%4][x%2])
}

func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = 0x2800
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// BasinCanvas plots the samples classified as class, width cells wide, for
// terminals without color. Y.Max is on the first line.
func BasinCanvas(img *fractal.Image, class fractal.Classification, width int) *Canvas {
	if width <= 0 {
		width = 1
	}
	dotsW := width * 2
	height := (dotsW + 3) / 4
	dotsH := height * 4

	c := NewCanvas(width, height)
	for y := 0; y < dotsH; y++ {
		row := img.N - 1 - y*img.N/dotsH
		for x := 0; x < dotsW; x++ {
			col := x * img.N / dotsW
			if img.ClassAt(row, col) == class {
				c.Set(x, y)
			}
		}
	}
	return c
}
