package metrics

import "github.com/san-kum/basins/internal/fractal"

// Metric accumulates one statistic over the samples of a render.
type Metric interface {
	Name() string
	Observe(c fractal.Classification, iterations int)
	Value() float64
	Reset()
}

// Default returns a fresh set of the standard render metrics.
func Default() []Metric {
	return []Metric{
		NewDivergenceFraction(),
		NewMeanIterations(),
		NewMaxIterations(),
	}
}

// Compute resets each metric, feeds it every sample of img and returns the
// values by name.
func Compute(img *fractal.Image, ms ...Metric) map[string]float64 {
	out := make(map[string]float64, len(ms))
	for _, m := range ms {
		m.Reset()
		for i, c := range img.Classes {
			m.Observe(c, img.Iterations[i])
		}
		out[m.Name()] = m.Value()
	}
	return out
}
