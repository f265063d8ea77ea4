package analysis

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/basins/internal/fractal"
)

// AngularProfile classifies samples starting points spread evenly over the
// circle |z| = radius, starting at angle 0 and turning counter-clockwise.
// A sample whose polynomial panics is Divergent.
func AngularProfile(cfg fractal.Config, radius float64, samples int) ([]fractal.Classification, error) {
	if samples < 1 {
		return nil, fmt.Errorf("angular profile needs at least one sample, got %d", samples)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	cls, err := fractal.NewClassifier(cfg.Roots, cfg.MatchTol)
	if err != nil {
		return nil, err
	}

	profile := make([]fractal.Classification, samples)
	for k := range profile {
		theta := 2 * math.Pi * float64(k) / float64(samples)
		z := cmplx.Rect(radius, theta)
		_, profile[k] = fractal.Evaluate(z, &cfg, cls)
	}
	return profile, nil
}

// AngularSpectrum is the magnitude spectrum of the basin crossings along an
// angular profile. A polynomial with n-fold rotational symmetry peaks on
// multiples of n.
func AngularSpectrum(profile []fractal.Classification) []float64 {
	n := len(profile)
	crossings := make([]float64, n)
	for k := range profile {
		if profile[k] != profile[(k+1)%n] {
			crossings[k] = 1
		}
	}
	return MagnitudeSpectrum(crossings)
}
