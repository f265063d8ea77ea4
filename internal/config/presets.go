package config

import (
	"sort"

	"github.com/san-kum/basins/internal/fractal"
)

var Presets = map[string]map[string]*Config{
	"cubic": {
		"classic": {
			Polynomial: "cubic", Resolution: 2000, Tol: 1e-10, MaxIter: 1000,
			XRange: fractal.Range{Min: -3, Max: 3}, YRange: fractal.Range{Min: -3, Max: 3},
		},
		"quick": {
			Polynomial: "cubic", Resolution: 256, Tol: 1e-5, MaxIter: 100,
			XRange: fractal.Range{Min: -3, Max: 3}, YRange: fractal.Range{Min: -3, Max: 3},
		},
		"origin": {
			Polynomial: "cubic", Resolution: 800, Tol: 1e-8, MaxIter: 200,
			XRange: fractal.Range{Min: -0.5, Max: 0.5}, YRange: fractal.Range{Min: -0.5, Max: 0.5},
		},
	},
	"unity5": {
		"star": {
			Polynomial: "unity5", Resolution: 800, Tol: 1e-8, MaxIter: 200,
			XRange: fractal.Range{Min: -1.5, Max: 1.5}, YRange: fractal.Range{Min: -1.5, Max: 1.5},
		},
	},
	"unity8": {
		"wide": {
			Polynomial: "unity8", Resolution: 1000, Tol: 1e-6, MaxIter: 300,
			XRange: fractal.Range{Min: -2, Max: 2}, YRange: fractal.Range{Min: -2, Max: 2},
		},
	},
	"quartic": {
		"overview": {
			Polynomial: "quartic", Resolution: 800, Tol: 1e-6, MaxIter: 200,
			XRange: fractal.Range{Min: -2, Max: 2}, YRange: fractal.Range{Min: -2, Max: 2},
		},
	},
}

// GetPreset returns a copy of the preset with unset fields filled from
// DefaultConfig.
func GetPreset(poly, preset string) *Config {
	polyPresets, ok := Presets[poly]
	if !ok {
		return nil
	}
	p, ok := polyPresets[preset]
	if !ok {
		return nil
	}

	cfg := DefaultConfig()
	cfg.Polynomial = p.Polynomial
	cfg.Resolution = p.Resolution
	cfg.XRange = p.XRange
	cfg.YRange = p.YRange
	if p.Tol != 0 {
		cfg.Tol = p.Tol
	}
	if p.MaxIter != 0 {
		cfg.MaxIter = p.MaxIter
	}
	return cfg
}

func ListPresets(poly string) []string {
	polyPresets, ok := Presets[poly]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(polyPresets))
	for name := range polyPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
