package config

import (
	"fmt"
	"image/color"
	"os"

	"github.com/san-kum/basins/internal/compute"
	"github.com/san-kum/basins/internal/experiment"
	"github.com/san-kum/basins/internal/fractal"
	"github.com/san-kum/basins/internal/polynomial"
	"github.com/san-kum/basins/internal/viz"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPolynomial = "cubic"
	DefaultPalette    = "classic"
	DefaultBackend    = "auto"

	// Custom selects the roots (and optional coefficients) given in the file.
	Custom = "custom"
)

type Config struct {
	Polynomial   string        `yaml:"polynomial"`
	Roots        []Point       `yaml:"roots,omitempty"`
	Coefficients []Point       `yaml:"coefficients,omitempty"`
	Resolution   int           `yaml:"resolution"`
	XRange       fractal.Range `yaml:"x_range"`
	YRange       fractal.Range `yaml:"y_range"`
	Tol          float64       `yaml:"tol"`
	MatchTol     float64       `yaml:"match_tol"`
	MaxIter      int           `yaml:"max_iter"`
	DerivEpsilon float64       `yaml:"deriv_epsilon"`
	Palette      string        `yaml:"palette"`
	Colors       []string      `yaml:"colors,omitempty"`
	Backend      string        `yaml:"backend"`
	Workers      int           `yaml:"workers"`
}

// Point is a complex number in config files.
type Point struct {
	Re float64 `yaml:"re"`
	Im float64 `yaml:"im"`
}

func (p Point) Complex() complex128 { return complex(p.Re, p.Im) }

func DefaultConfig() *Config {
	return &Config{
		Polynomial:   DefaultPolynomial,
		Resolution:   fractal.DefaultN,
		XRange:       fractal.DefaultRange,
		YRange:       fractal.DefaultRange,
		Tol:          fractal.DefaultTol,
		MatchTol:     fractal.DefaultMatchTol,
		MaxIter:      fractal.DefaultMaxIter,
		DerivEpsilon: fractal.DefaultDerivEpsilon,
		Palette:      DefaultPalette,
		Backend:      DefaultBackend,
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Build resolves names against reg and returns a validated render config.
func (c *Config) Build(reg *experiment.Registry) (fractal.Config, error) {
	poly, roots, err := c.resolvePolynomial(reg)
	if err != nil {
		return fractal.Config{}, err
	}

	palette, err := c.resolvePalette(reg, len(roots))
	if err != nil {
		return fractal.Config{}, err
	}

	fc := fractal.Config{
		N:        c.Resolution,
		X:        c.XRange,
		Y:        c.YRange,
		Poly:     poly,
		Roots:    roots,
		Tol:      c.Tol,
		MatchTol: c.MatchTol,
		MaxIter:  c.MaxIter,
		DerivEps: c.DerivEpsilon,
		Palette:  palette,
	}
	if err := fc.Validate(); err != nil {
		return fractal.Config{}, err
	}
	return fc, nil
}

func (c *Config) BuildBackend() (compute.Backend, error) {
	name := c.Backend
	if name == "" {
		name = DefaultBackend
	}
	return compute.ByName(name, c.Workers)
}

func (c *Config) resolvePolynomial(reg *experiment.Registry) (fractal.Polynomial, fractal.RootSet, error) {
	roots := make(fractal.RootSet, len(c.Roots))
	for i, p := range c.Roots {
		roots[i] = p.Complex()
	}

	if c.Polynomial == Custom {
		if len(roots) == 0 {
			return nil, nil, fmt.Errorf("custom polynomial needs roots")
		}
		if len(c.Coefficients) > 0 {
			coeffs := make(polynomial.Coefficients, len(c.Coefficients))
			for i, p := range c.Coefficients {
				coeffs[i] = p.Complex()
			}
			if coeffs.Degree() < 1 {
				return nil, nil, fmt.Errorf("custom polynomial must have degree >= 1")
			}
			return coeffs, roots, nil
		}
		return polynomial.FromRoots(roots), roots, nil
	}

	entry, err := reg.GetPolynomial(c.Polynomial)
	if err != nil {
		return nil, nil, err
	}
	if len(roots) > 0 {
		return entry.Poly, roots, nil
	}
	return entry.Poly, entry.Roots, nil
}

func (c *Config) resolvePalette(reg *experiment.Registry, numRoots int) (fractal.Palette, error) {
	if len(c.Colors) == 0 {
		name := c.Palette
		if name == "" {
			name = DefaultPalette
		}
		return reg.GetPalette(name, numRoots)
	}

	p := make(fractal.Palette, len(c.Colors))
	for i, hex := range c.Colors {
		r, g, b, err := viz.ParseHex(hex)
		if err != nil {
			return nil, fmt.Errorf("colors[%d]: %w", i, err)
		}
		p[i] = color.RGBA{R: uint8(r), G: uint8(g), B: uint8(b), A: 255}
	}
	return p, nil
}
