package analysis

import (
	"math"

	"github.com/san-kum/basins/internal/fractal"
)

// BoundaryMask marks samples with at least one 4-neighbour in a different
// class.
func BoundaryMask(img *fractal.Image) []bool {
	n := img.N
	mask := make([]bool, n*n)
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			c := img.ClassAt(row, col)
			switch {
			case col > 0 && img.ClassAt(row, col-1) != c,
				col < n-1 && img.ClassAt(row, col+1) != c,
				row > 0 && img.ClassAt(row-1, col) != c,
				row < n-1 && img.ClassAt(row+1, col) != c:
				mask[row*n+col] = true
			}
		}
	}
	return mask
}

func BoundaryFraction(img *fractal.Image) float64 {
	if img.N == 0 {
		return 0
	}
	count := 0
	for _, b := range BoundaryMask(img) {
		if b {
			count++
		}
	}
	return float64(count) / float64(img.N*img.N)
}

// BoxCountingDimension estimates the fractal dimension of the basin
// boundary from the number of s×s boxes touching it, s = 1, 2, 4, ...,
// as the least-squares slope of log count against log(1/s). It returns 0
// when fewer than two box sizes see any boundary.
func BoxCountingDimension(img *fractal.Image) float64 {
	n := img.N
	mask := BoundaryMask(img)

	var xs, ys []float64
	for s := 1; n/s >= 2; s *= 2 {
		cells := (n + s - 1) / s
		hit := make([]bool, cells*cells)
		count := 0
		for row := 0; row < n; row++ {
			for col := 0; col < n; col++ {
				if !mask[row*n+col] {
					continue
				}
				i := (row/s)*cells + col/s
				if !hit[i] {
					hit[i] = true
					count++
				}
			}
		}
		if count == 0 {
			continue
		}
		xs = append(xs, math.Log(1/float64(s)))
		ys = append(ys, math.Log(float64(count)))
	}

	if len(xs) < 2 {
		return 0
	}
	return slope(xs, ys)
}

func slope(xs, ys []float64) float64 {
	var sx, sy, sxx, sxy float64
	for i := range xs {
		sx += xs[i]
		sy += ys[i]
		sxx += xs[i] * xs[i]
		sxy += xs[i] * ys[i]
	}
	n := float64(len(xs))
	return (n*sxy - sx*sy) / (n*sxx - sx*sx)
}
