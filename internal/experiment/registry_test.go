package experiment

import (
	"math/cmplx"
	"testing"

	"github.com/san-kum/basins/internal/fractal"
)

func TestRegistryPolynomials(t *testing.T) {
	reg := NewRegistry()

	names := reg.ListPolynomials()
	if len(names) == 0 {
		t.Fatal("no polynomials registered")
	}

	for _, name := range names {
		entry, err := reg.GetPolynomial(name)
		if err != nil {
			t.Errorf("%s: %v", name, err)
			continue
		}
		if entry.Name != name {
			t.Errorf("%s: entry named %s", name, entry.Name)
		}
		for i, r := range entry.Roots {
			if v := cmplx.Abs(entry.Poly.Eval(r)); v > 1e-9 {
				t.Errorf("%s: |p(root %d)| = %g", name, i, v)
			}
		}
		if _, err := fractal.NewClassifier(entry.Roots, fractal.DefaultMatchTol); err != nil {
			t.Errorf("%s: roots rejected: %v", name, err)
		}
	}
}

func TestRegistryUnknown(t *testing.T) {
	reg := NewRegistry()
	if _, err := reg.GetPolynomial("septic"); err == nil {
		t.Error("expected error for unknown polynomial")
	}
	if _, err := reg.GetPalette("plaid", 3); err == nil {
		t.Error("expected error for unknown palette")
	}
}

func TestRegistryPaletteSizes(t *testing.T) {
	reg := NewRegistry()
	for _, name := range reg.ListPalettes() {
		for _, n := range []int{1, 3, 8} {
			p, err := reg.GetPalette(name, n)
			if err != nil {
				t.Fatalf("%s: %v", name, err)
			}
			if len(p) != n+1 {
				t.Errorf("%s/%d: expected %d colors, got %d", name, n, n+1, len(p))
			}
		}
	}
}

func TestClassicPaletteUnchanged(t *testing.T) {
	p, err := NewRegistry().GetPalette("classic", 3)
	if err != nil {
		t.Fatal(err)
	}
	for i := range ClassicPalette {
		if p[i] != ClassicPalette[i] {
			t.Errorf("color %d: expected %v, got %v", i, ClassicPalette[i], p[i])
		}
	}

	p[0].R = 0
	if ClassicPalette[0].R != 11 {
		t.Error("GetPalette must not alias the registered palette")
	}
}

func TestResize(t *testing.T) {
	base := fractal.Palette{
		{R: 200, A: 255},
		{G: 200, A: 255},
		{B: 9, A: 255},
	}

	p := Resize(base, 5)
	if len(p) != 6 {
		t.Fatalf("expected 6 colors, got %d", len(p))
	}
	if p.Divergence() != base.Divergence() {
		t.Error("divergence color must stay last")
	}
	if p[0] != base[0] || p[1] != base[1] {
		t.Error("first cycle should keep the original colors")
	}
	if p[2].R != 150 || p[3].G != 150 {
		t.Errorf("second cycle should be darker, got %v %v", p[2], p[3])
	}

	single := Resize(fractal.Palette{{R: 1, A: 255}}, 2)
	if len(single) != 3 {
		t.Errorf("expected 3 colors from single-entry palette, got %d", len(single))
	}
}
