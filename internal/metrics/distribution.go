package metrics

import "github.com/san-kum/basins/internal/fractal"

// BasinShares returns the fraction of samples in each basin, indexed by
// root, with the divergent share appended last.
func BasinShares(img *fractal.Image, numRoots int) []float64 {
	shares := make([]float64, numRoots+1)
	if len(img.Classes) == 0 {
		return shares
	}
	for _, c := range img.Classes {
		if c.IsRoot() && int(c) < numRoots {
			shares[c]++
		} else {
			shares[numRoots]++
		}
	}
	total := float64(len(img.Classes))
	for i := range shares {
		shares[i] /= total
	}
	return shares
}

// IterationHistogram buckets the step counts of converged samples into
// bins equal-width bins spanning [0, max].
func IterationHistogram(img *fractal.Image, bins int) []float64 {
	if bins < 1 {
		bins = 1
	}
	hist := make([]float64, bins)

	maxIt := 0
	for i, c := range img.Classes {
		if c.IsRoot() && img.Iterations[i] > maxIt {
			maxIt = img.Iterations[i]
		}
	}

	for i, c := range img.Classes {
		if !c.IsRoot() {
			continue
		}
		b := 0
		if maxIt > 0 {
			b = img.Iterations[i] * bins / (maxIt + 1)
		}
		hist[b]++
	}
	return hist
}

// RowDivergence returns the divergent fraction of every grid row, row 0
// (Y.Min) first.
func RowDivergence(img *fractal.Image) []float64 {
	out := make([]float64, img.N)
	if img.N == 0 {
		return out
	}
	for row := 0; row < img.N; row++ {
		n := 0
		for col := 0; col < img.N; col++ {
			if !img.ClassAt(row, col).IsRoot() {
				n++
			}
		}
		out[row] = float64(n) / float64(img.N)
	}
	return out
}
