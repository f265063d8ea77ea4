package fractal

import "math"

var sqrt3Half = math.Sqrt(3) / 2

// cubic is z³+1 with the roots in the order used by the reference picture.
var cubic = PolyFunc{
	F:  func(z complex128) complex128 { return z*z*z + 1 },
	DF: func(z complex128) complex128 { return 3 * z * z },
}

var cubicRoots = RootSet{
	complex(-1, 0),
	complex(0.5, sqrt3Half),
	complex(0.5, -sqrt3Half),
}

var testPalette = Palette{
	{R: 11, G: 104, B: 168, A: 255},
	{R: 30, G: 164, B: 59, A: 255},
	{R: 172, G: 31, B: 62, A: 255},
	{R: 51, G: 51, B: 51, A: 255},
}

func cubicConfig(n int) Config {
	cfg := DefaultConfig(cubic, cubicRoots, testPalette)
	cfg.N = n
	return cfg
}
