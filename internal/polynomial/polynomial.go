package polynomial

import (
	"fmt"
	"math"
	"math/cmplx"

	"github.com/san-kum/basins/internal/fractal"
)

// CubicPlusOne is z³+1.
type CubicPlusOne struct{}

func (CubicPlusOne) Eval(z complex128) complex128  { return z*z*z + 1 }
func (CubicPlusOne) Deriv(z complex128) complex128 { return 3 * z * z }

// Roots lists 0.5−(√3/2)i, 0.5+(√3/2)i, −1.
func (CubicPlusOne) Roots() fractal.RootSet {
	h := math.Sqrt(3) / 2
	return fractal.RootSet{complex(0.5, -h), complex(0.5, h), -1}
}

func (CubicPlusOne) String() string { return "z^3+1" }

// Unity is zⁿ−1, whose roots are the n-th roots of unity.
type Unity struct {
	N int
}

func NewUnity(n int) (Unity, error) {
	if n < 2 {
		return Unity{}, fmt.Errorf("unity degree must be at least 2, got %d", n)
	}
	return Unity{N: n}, nil
}

func (u Unity) Eval(z complex128) complex128 {
	return powInt(z, u.N) - 1
}

func (u Unity) Deriv(z complex128) complex128 {
	return complex(float64(u.N), 0) * powInt(z, u.N-1)
}

// Roots walks the unit circle counter-clockwise from 1.
func (u Unity) Roots() fractal.RootSet {
	roots := make(fractal.RootSet, u.N)
	for k := range roots {
		roots[k] = cmplx.Rect(1, 2*math.Pi*float64(k)/float64(u.N))
	}
	return roots
}

func (u Unity) String() string { return fmt.Sprintf("z^%d-1", u.N) }

// Product is ∏(z − rᵢ) over a fixed set of roots.
type Product struct {
	roots fractal.RootSet
}

func FromRoots(roots fractal.RootSet) Product {
	return Product{roots: roots.Clone()}
}

func (p Product) Eval(z complex128) complex128 {
	v := complex(1, 0)
	for _, r := range p.roots {
		v *= z - r
	}
	return v
}

// Deriv applies the product rule in one pass: (fg)' = f'g + fg'.
func (p Product) Deriv(z complex128) complex128 {
	v, d := complex(1, 0), complex(0, 0)
	for _, r := range p.roots {
		d = d*(z-r) + v
		v *= z - r
	}
	return d
}

func (p Product) Roots() fractal.RootSet { return p.roots.Clone() }

func (p Product) String() string {
	return fmt.Sprintf("product of %d roots", len(p.roots))
}

// Coefficients is a dense polynomial, highest degree first: {1, 0, 0, 1}
// is z³+1. It does not know its roots.
type Coefficients []complex128

func (c Coefficients) Eval(z complex128) complex128 {
	var v complex128
	for _, a := range c {
		v = v*z + a
	}
	return v
}

func (c Coefficients) Deriv(z complex128) complex128 {
	var v complex128
	deg := len(c) - 1
	for i, a := range c[:max(deg, 0)] {
		v = v*z + a*complex(float64(deg-i), 0)
	}
	return v
}

func (c Coefficients) Degree() int { return len(c) - 1 }

func powInt(z complex128, n int) complex128 {
	out := complex(1, 0)
	for n > 0 {
		if n&1 == 1 {
			out *= z
		}
		z *= z
		n >>= 1
	}
	return out
}

var (
	_ fractal.Polynomial = CubicPlusOne{}
	_ fractal.Rooted     = CubicPlusOne{}
	_ fractal.Rooted     = Unity{}
	_ fractal.Rooted     = Product{}
	_ fractal.Polynomial = Coefficients{}
)
