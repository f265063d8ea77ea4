package metrics

import "github.com/san-kum/basins/internal/fractal"

type DivergenceFraction struct {
	name      string
	divergent int
	samples   int
}

func NewDivergenceFraction() *DivergenceFraction {
	return &DivergenceFraction{
		name: "divergence_fraction",
	}
}

func (d *DivergenceFraction) Name() string {
	return d.name
}

func (d *DivergenceFraction) Observe(c fractal.Classification, iterations int) {
	d.samples++
	if !c.IsRoot() {
		d.divergent++
	}
}

func (d *DivergenceFraction) Value() float64 {
	if d.samples == 0 {
		return 0
	}
	return float64(d.divergent) / float64(d.samples)
}

func (d *DivergenceFraction) Reset() {
	d.divergent = 0
	d.samples = 0
}
