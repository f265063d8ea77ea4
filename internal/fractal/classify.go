package fractal

import (
	"math"
	"math/cmplx"
)

// Classifier attributes converged outcomes to the first root within
// MatchTol. Roots are checked for pairwise separation at construction.
type Classifier struct {
	roots    RootSet
	matchTol float64
}

func NewClassifier(roots RootSet, matchTol float64) (*Classifier, error) {
	if err := validateRoots(roots, matchTol); err != nil {
		return nil, err
	}
	return &Classifier{roots: roots.Clone(), matchTol: matchTol}, nil
}

func (c *Classifier) Roots() RootSet    { return c.roots.Clone() }
func (c *Classifier) NumRoots() int     { return len(c.roots) }
func (c *Classifier) MatchTol() float64 { return c.matchTol }

func (c *Classifier) Classify(o Outcome) Classification {
	return Classify(o, c.roots, c.matchTol)
}

// Classify returns the index of the first root closer than matchTol to
// o.Final, or Divergent when o did not converge or matched nothing.
func Classify(o Outcome, roots RootSet, matchTol float64) Classification {
	if !o.Converged {
		return Divergent
	}
	for i, r := range roots {
		if cmplx.Abs(o.Final-r) < matchTol {
			return Classification(i)
		}
	}
	return Divergent
}

func validateRoots(roots RootSet, matchTol float64) error {
	if len(roots) == 0 {
		return configErr("roots", ErrNoRoots, "")
	}
	if !validTolerance(matchTol) {
		return configErr("match_tol", ErrInvalidTolerance, "got %g", matchTol)
	}
	for i, r := range roots {
		if !isFinite(r) {
			return configErr("roots", ErrInvalidConfig, "root %d is not finite", i)
		}
	}
	for i := 0; i < len(roots); i++ {
		for j := i + 1; j < len(roots); j++ {
			if d := cmplx.Abs(roots[i] - roots[j]); d <= 2*matchTol {
				return configErr("roots", ErrAmbiguousRoots,
					"roots %d and %d are %g apart, need more than %g", i, j, d, 2*matchTol)
			}
		}
	}
	return nil
}

func validTolerance(t float64) bool {
	return t > 0 && !math.IsInf(t, 0)
}
