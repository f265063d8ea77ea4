package fractal

// Sample is one point of the sampled domain.
type Sample struct {
	Z   complex128
	Row int
	Col int
}

// Grid is an N×N row-major set of samples. Columns walk the real axis from
// X.Min to X.Max and rows walk the imaginary axis from Y.Min to Y.Max, so
// At(0, 0) is X.Min+Y.Min·i and At(N-1, N-1) is X.Max+Y.Max·i.
type Grid struct {
	N       int
	X, Y    Range
	Samples []Sample
}

// BuildGrid samples the rectangle X×Y at n evenly spaced points per axis,
// endpoints included. A single-sample grid sits at (X.Min, Y.Min).
func BuildGrid(n int, x, y Range) (*Grid, error) {
	if err := validateGrid(n, x, y); err != nil {
		return nil, err
	}

	xs := linspace(x, n)
	ys := linspace(y, n)

	g := &Grid{N: n, X: x, Y: y, Samples: make([]Sample, 0, n*n)}
	for row := 0; row < n; row++ {
		for col := 0; col < n; col++ {
			g.Samples = append(g.Samples, Sample{
				Z:   complex(xs[col], ys[row]),
				Row: row,
				Col: col,
			})
		}
	}
	return g, nil
}

func (g *Grid) At(row, col int) Sample {
	return g.Samples[row*g.N+col]
}

// Row returns the samples of one grid row without copying.
func (g *Grid) Row(row int) []Sample {
	return g.Samples[row*g.N : (row+1)*g.N]
}

func validateGrid(n int, x, y Range) error {
	if n <= 0 {
		return configErr("n", ErrInvalidResolution, "got %d", n)
	}
	if !(x.Min < x.Max) {
		return configErr("x_range", ErrInvalidRange, "[%g, %g]", x.Min, x.Max)
	}
	if !(y.Min < y.Max) {
		return configErr("y_range", ErrInvalidRange, "[%g, %g]", y.Min, y.Max)
	}
	return nil
}

func linspace(r Range, n int) []float64 {
	out := make([]float64, n)
	if n == 1 {
		out[0] = r.Min
		return out
	}
	step := r.Span() / float64(n-1)
	for i := range out {
		out[i] = r.Min + float64(i)*step
	}
	out[n-1] = r.Max
	return out
}
