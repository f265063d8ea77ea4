package experiment

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/san-kum/basins/internal/fractal"
	"github.com/san-kum/basins/internal/polynomial"
	"github.com/san-kum/basins/internal/viz"
)

// Entry is a named polynomial together with the roots used to classify it.
type Entry struct {
	Name  string
	Label string
	Poly  fractal.Polynomial
	Roots fractal.RootSet
}

type Registry struct {
	polys    map[string]func() Entry
	palettes map[string]fractal.Palette
}

// ClassicPalette holds the colors of the original z³+1 picture: blue,
// green and crimson basins on a dark grey divergence color.
var ClassicPalette = fractal.Palette{
	{R: 11, G: 104, B: 168, A: 255},
	{R: 30, G: 164, B: 59, A: 255},
	{R: 172, G: 31, B: 62, A: 255},
	{R: 51, G: 51, B: 51, A: 255},
}

func NewRegistry() *Registry {
	r := &Registry{
		polys:    make(map[string]func() Entry),
		palettes: make(map[string]fractal.Palette),
	}

	r.polys["cubic"] = func() Entry {
		p := polynomial.CubicPlusOne{}
		return Entry{Name: "cubic", Label: p.String(), Poly: p, Roots: p.Roots()}
	}
	for _, n := range []int{4, 5, 6, 8} {
		r.polys[fmt.Sprintf("unity%d", n)] = func() Entry {
			u, _ := polynomial.NewUnity(n)
			return Entry{Name: fmt.Sprintf("unity%d", n), Label: u.String(), Poly: u, Roots: u.Roots()}
		}
	}
	r.polys["quartic"] = func() Entry {
		p := polynomial.FromRoots(fractal.RootSet{1, -1, complex(0, 1), complex(0.5, -0.8)})
		return Entry{Name: "quartic", Label: "(z-1)(z+1)(z-i)(z-0.5+0.8i)", Poly: p, Roots: p.Roots()}
	}

	r.palettes["classic"] = ClassicPalette
	for _, th := range viz.Themes {
		r.palettes[th.Name] = th.Palette()
	}

	return r
}

func (r *Registry) GetPolynomial(name string) (Entry, error) {
	fn, ok := r.polys[name]
	if !ok {
		return Entry{}, fmt.Errorf("unknown polynomial: %s (available: %v)", name, r.ListPolynomials())
	}
	return fn(), nil
}

// GetPalette sizes the named palette to numRoots+1 colors. The last color
// of the named palette is always the divergence color; root colors cycle
// when there are more roots than palette entries.
func (r *Registry) GetPalette(name string, numRoots int) (fractal.Palette, error) {
	base, ok := r.palettes[name]
	if !ok {
		return nil, fmt.Errorf("unknown palette: %s (available: %v)", name, r.ListPalettes())
	}
	return Resize(base, numRoots), nil
}

func (r *Registry) ListPolynomials() []string {
	return sortedKeys(r.polys)
}

func (r *Registry) ListPalettes() []string {
	return sortedKeys(r.palettes)
}

// Resize keeps the divergence color last and cycles the root colors.
func Resize(p fractal.Palette, numRoots int) fractal.Palette {
	if len(p) == numRoots+1 {
		out := make(fractal.Palette, len(p))
		copy(out, p)
		return out
	}

	roots := p[:len(p)-1]
	if len(roots) == 0 {
		roots = p
	}
	out := make(fractal.Palette, numRoots+1)
	for i := 0; i < numRoots; i++ {
		out[i] = shade(roots[i%len(roots)], i/len(roots))
	}
	out[numRoots] = p.Divergence()
	return out
}

// shade darkens reused root colors so cycled basins stay distinguishable.
func shade(c color.RGBA, cycle int) color.RGBA {
	for ; cycle > 0; cycle-- {
		c.R = uint8(int(c.R) * 3 / 4)
		c.G = uint8(int(c.G) * 3 / 4)
		c.B = uint8(int(c.B) * 3 / 4)
	}
	return c
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
