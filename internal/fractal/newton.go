package fractal

import "math/cmplx"

// DefaultDerivEpsilon is the derivative magnitude below which a Newton step
// is treated as undefined.
const DefaultDerivEpsilon = 1e-12

// Iterate runs Newton's method z ← z − f(z)/f'(z) from z0 until the relative
// step |Δz|/|z_next| drops below tol or maxIter steps have been taken.
//
// Iterations is the zero-based index of the step that met the tolerance, so
// a starting point that is already a root converges with Iterations == 0.
// A flat derivative, a zero or non-finite iterate, or an exhausted budget all
// end the iteration as not converged with Final set to DivergentValue.
func Iterate(z0 complex128, p Polynomial, tol float64, maxIter int, derivEps float64) Outcome {
	z := z0
	if !isFinite(z) {
		return divergent(0, ReasonNonFinite)
	}

	for k := 0; k < maxIter; k++ {
		d := p.Deriv(z)
		if !isFinite(d) {
			return divergent(k, ReasonNonFinite)
		}
		if cmplx.Abs(d) < derivEps {
			return divergent(k, ReasonFlatDerivative)
		}

		next := z - p.Eval(z)/d
		if !isFinite(next) {
			return divergent(k, ReasonNonFinite)
		}
		if next == 0 {
			return divergent(k, ReasonZeroIterate)
		}

		if cmplx.Abs(next-z)/cmplx.Abs(next) < tol {
			return Outcome{Final: next, Iterations: k, Converged: true, Reason: ReasonConverged}
		}
		z = next
	}

	return divergent(maxIter, ReasonMaxIter)
}
