package fractal

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/cmplx"
)

// Polynomial is anything that can evaluate a function and its derivative at
// a complex point.
type Polynomial interface {
	Eval(z complex128) complex128
	Deriv(z complex128) complex128
}

// Rooted is implemented by polynomials that know their own roots.
type Rooted interface {
	Roots() RootSet
}

// PolyFunc adapts a plain function/derivative pair to Polynomial.
type PolyFunc struct {
	F  func(complex128) complex128
	DF func(complex128) complex128
}

func (p PolyFunc) Eval(z complex128) complex128  { return p.F(z) }
func (p PolyFunc) Deriv(z complex128) complex128 { return p.DF(z) }

// Range is a closed interval on one axis.
type Range struct {
	Min float64 `yaml:"min" json:"min"`
	Max float64 `yaml:"max" json:"max"`
}

func (r Range) Span() float64 { return r.Max - r.Min }

// RootSet is the ordered list of known roots used for classification.
type RootSet []complex128

func (rs RootSet) Clone() RootSet {
	c := make(RootSet, len(rs))
	copy(c, rs)
	return c
}

// Reason records why an iteration ended. Only ReasonConverged yields a
// root classification; every other reason collapses to Divergent.
type Reason uint8

const (
	ReasonConverged Reason = iota
	ReasonMaxIter
	ReasonFlatDerivative
	ReasonZeroIterate
	ReasonNonFinite
	ReasonPanic
	ReasonUnmatched
)

var reasonNames = [...]string{
	ReasonConverged:      "converged",
	ReasonMaxIter:        "max_iter",
	ReasonFlatDerivative: "flat_derivative",
	ReasonZeroIterate:    "zero_iterate",
	ReasonNonFinite:      "non_finite",
	ReasonPanic:          "panic",
	ReasonUnmatched:      "unmatched",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// DivergentValue is the Final value of every non-converged Outcome. It is
// never compared against; Outcome.Converged is authoritative.
var DivergentValue = complex(math.Inf(1), 0)

// Outcome is the result of iterating a single sample.
type Outcome struct {
	Final      complex128
	Iterations int
	Converged  bool
	Reason     Reason
}

func divergent(iterations int, reason Reason) Outcome {
	return Outcome{Final: DivergentValue, Iterations: iterations, Reason: reason}
}

// Classification is an index into a RootSet, or Divergent.
type Classification int

// Divergent marks samples that did not converge to a recognised root.
const Divergent Classification = -1

func (c Classification) IsRoot() bool { return c >= 0 }

// Palette holds one color per root followed by the divergence color.
type Palette []color.RGBA

// Divergence returns the last palette entry.
func (p Palette) Divergence() color.RGBA {
	return p[len(p)-1]
}

// Image is the N×N render output, stored row-major. Row 0 holds the samples
// at Y.Min, matching Grid.
type Image struct {
	N          int
	X, Y       Range
	Pix        []color.RGBA
	Classes    []Classification
	Iterations []int
	Reasons    []Reason
}

func newImage(n int, x, y Range) *Image {
	return &Image{
		N:          n,
		X:          x,
		Y:          y,
		Pix:        make([]color.RGBA, n*n),
		Classes:    make([]Classification, n*n),
		Iterations: make([]int, n*n),
		Reasons:    make([]Reason, n*n),
	}
}

// Restore rebuilds an image from stored classifications, coloring them
// through palette. iterations may be nil. Termination reasons are not
// stored, so root samples get ReasonConverged and the rest ReasonMaxIter.
func Restore(n int, x, y Range, classes []Classification, iterations []int, palette Palette) (*Image, error) {
	if n <= 0 || len(classes) != n*n {
		return nil, fmt.Errorf("%w: %d classes for resolution %d", ErrInvalidResolution, len(classes), n)
	}
	if iterations != nil && len(iterations) != n*n {
		return nil, fmt.Errorf("%w: %d iteration counts for resolution %d", ErrInvalidResolution, len(iterations), n)
	}
	if len(palette) == 0 {
		return nil, ErrPaletteLength
	}
	mapper, err := NewColorMapper(palette, len(palette)-1)
	if err != nil {
		return nil, err
	}

	img := newImage(n, x, y)
	copy(img.Classes, classes)
	if iterations != nil {
		copy(img.Iterations, iterations)
	}
	for i, c := range img.Classes {
		img.Pix[i] = mapper.ColorFor(c)
		if c.IsRoot() {
			img.Reasons[i] = ReasonConverged
		} else {
			img.Reasons[i] = ReasonMaxIter
		}
	}
	return img, nil
}

func (img *Image) At(row, col int) color.RGBA {
	return img.Pix[row*img.N+col]
}

func (img *Image) ClassAt(row, col int) Classification {
	return img.Classes[row*img.N+col]
}

func (img *Image) IterationsAt(row, col int) int {
	return img.Iterations[row*img.N+col]
}

// Count returns how many samples carry classification c.
func (img *Image) Count(c Classification) int {
	n := 0
	for _, v := range img.Classes {
		if v == c {
			n++
		}
	}
	return n
}

// RGBA converts the buffer to an *image.RGBA with Y.Max on the top row, the
// orientation expected by image encoders.
func (img *Image) RGBA() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.N, img.N))
	for row := 0; row < img.N; row++ {
		y := img.N - 1 - row
		for col := 0; col < img.N; col++ {
			out.SetRGBA(col, y, img.At(row, col))
		}
	}
	return out
}

func isFinite(z complex128) bool {
	return !cmplx.IsNaN(z) && !cmplx.IsInf(z)
}
