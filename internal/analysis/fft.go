package analysis

import (
	"math"
	"math/cmplx"
)

// FFT is an in-place radix-2 transform; data is zero-padded to the next
// power of two.
func FFT(data []float64) []complex128 {
	n := nextPow2(len(data))
	x := make([]complex128, n)
	for i, v := range data {
		x[i] = complex(v, 0)
	}

	for i, j := 1, 0; i < n; i++ {
		bit := n >> 1
		for ; j&bit != 0; bit >>= 1 {
			j ^= bit
		}
		j |= bit
		if i < j {
			x[i], x[j] = x[j], x[i]
		}
	}

	for size := 2; size <= n; size <<= 1 {
		step := cmplx.Exp(complex(0, -2*math.Pi/float64(size)))
		for lo := 0; lo < n; lo += size {
			w := complex(1, 0)
			for k := 0; k < size/2; k++ {
				a, b := x[lo+k], w*x[lo+k+size/2]
				x[lo+k], x[lo+k+size/2] = a+b, a-b
				w *= step
			}
		}
	}
	return x
}

// MagnitudeSpectrum returns |X[k]| for the non-negative frequencies of the
// padded transform. It is not squared.
func MagnitudeSpectrum(data []float64) []float64 {
	x := FFT(data)
	mags := make([]float64, len(x)/2)
	for k := range mags {
		mags[k] = cmplx.Abs(x[k])
	}
	return mags
}

// DominantHarmonic is the strongest frequency above DC, or 0 if the
// spectrum is flat.
func DominantHarmonic(ps []float64) int {
	best := 0
	for k := 1; k < len(ps); k++ {
		if ps[k] > 0 && (best == 0 || ps[k] > ps[best]) {
			best = k
		}
	}
	return best
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
