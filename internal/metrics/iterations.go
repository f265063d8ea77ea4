package metrics

import "github.com/san-kum/basins/internal/fractal"

// MeanIterations averages the step count of samples that reached a root.
type MeanIterations struct {
	name    string
	sum     int
	samples int
}

func NewMeanIterations() *MeanIterations {
	return &MeanIterations{
		name: "mean_iterations",
	}
}

func (m *MeanIterations) Name() string { return m.name }

func (m *MeanIterations) Observe(c fractal.Classification, iterations int) {
	if !c.IsRoot() {
		return
	}
	m.sum += iterations
	m.samples++
}

func (m *MeanIterations) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return float64(m.sum) / float64(m.samples)
}

func (m *MeanIterations) Reset() {
	m.sum = 0
	m.samples = 0
}

// MaxIterations is the slowest convergence seen over root samples.
type MaxIterations struct {
	name string
	max  int
}

func NewMaxIterations() *MaxIterations {
	return &MaxIterations{
		name: "max_iterations",
	}
}

func (m *MaxIterations) Name() string { return m.name }

func (m *MaxIterations) Observe(c fractal.Classification, iterations int) {
	if c.IsRoot() && iterations > m.max {
		m.max = iterations
	}
}

func (m *MaxIterations) Value() float64 {
	return float64(m.max)
}

func (m *MaxIterations) Reset() {
	m.max = 0
}
