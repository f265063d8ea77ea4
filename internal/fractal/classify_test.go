package fractal

import (
	"errors"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    Classification
	}{
		{"root 0", Outcome{Final: -1, Converged: true}, 0},
		{"root 1 within tol", Outcome{Final: cubicRoots[1] + complex(4e-7, 0), Converged: true}, 1},
		{"root 2", Outcome{Final: cubicRoots[2], Converged: true}, 2},
		{"just outside tol", Outcome{Final: cubicRoots[0] + complex(0, 2e-6), Converged: true}, Divergent},
		{"unknown point", Outcome{Final: complex(5, 5), Converged: true}, Divergent},
		{"not converged", Outcome{Final: DivergentValue, Reason: ReasonMaxIter}, Divergent},
		{"not converged near root", Outcome{Final: -1, Converged: false}, Divergent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Classify(tt.outcome, cubicRoots, DefaultMatchTol); got != tt.want {
				t.Errorf("Classify() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestClassify_FirstMatchWins(t *testing.T) {
	// Both roots are within matchTol of 0.05; the lower index wins.
	roots := RootSet{0, 0.1}
	if got := Classify(Outcome{Final: 0.05, Converged: true}, roots, 0.3); got != 0 {
		t.Errorf("expected 0, got %d", got)
	}
	if got := Classify(Outcome{Final: 0.05, Converged: true}, RootSet{0.1, 0}, 0.3); got != 0 {
		t.Errorf("reversed order: expected 0, got %d", got)
	}
}

func TestClassify_MatchTolIsStrict(t *testing.T) {
	roots := RootSet{0, 1}
	tests := []struct {
		final complex128
		want  Classification
	}{
		{0.25, 0},
		{0.5, Divergent},
		{0.45, Divergent},
		{0.75, 1},
		{complex(0, 0.25), 0},
	}
	for _, tt := range tests {
		if got := Classify(Outcome{Final: tt.final, Converged: true}, roots, 0.25+1e-9); got != tt.want {
			t.Errorf("Classify(%v) = %d, want %d", tt.final, got, tt.want)
		}
	}
	// Exactly matchTol away does not match.
	if got := Classify(Outcome{Final: 0.5, Converged: true}, RootSet{0}, 0.5); got != Divergent {
		t.Errorf("distance == matchTol: expected Divergent, got %d", got)
	}
}

func TestClassifier_CopiesRoots(t *testing.T) {
	roots := cubicRoots.Clone()
	c, err := NewClassifier(roots, DefaultMatchTol)
	if err != nil {
		t.Fatal(err)
	}
	roots[0] = 42
	if c.Roots()[0] != -1 {
		t.Error("classifier must not alias the caller's root slice")
	}
	if c.NumRoots() != 3 || c.MatchTol() != DefaultMatchTol {
		t.Errorf("unexpected classifier state: %d roots, tol %g", c.NumRoots(), c.MatchTol())
	}
}

func TestNewClassifier_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		roots    RootSet
		matchTol float64
		cause    error
	}{
		{"empty", RootSet{}, 1e-6, ErrNoRoots},
		{"nil", nil, 1e-6, ErrNoRoots},
		{"zero tol", cubicRoots, 0, ErrInvalidTolerance},
		{"negative tol", cubicRoots, -1, ErrInvalidTolerance},
		{"duplicate root", RootSet{1, 1}, 1e-6, ErrAmbiguousRoots},
		{"exactly 2x tol", RootSet{0, 0.5}, 0.25, ErrAmbiguousRoots},
		{"inside 2x tol", RootSet{0, 1, complex(1, 1e-6)}, 1e-6, ErrAmbiguousRoots},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := NewClassifier(tt.roots, tt.matchTol)
			if c != nil {
				t.Error("expected nil classifier")
			}
			if !errors.Is(err, tt.cause) {
				t.Errorf("expected %v, got %v", tt.cause, err)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig in chain, got %v", err)
			}
		})
	}
}

func TestNewClassifier_ReorderedRoots(t *testing.T) {
	reversed := RootSet{cubicRoots[2], cubicRoots[1], cubicRoots[0]}
	c, err := NewClassifier(reversed, DefaultMatchTol)
	if err != nil {
		t.Fatal(err)
	}
	o := Iterate(complex(2, 2), cubic, 1e-5, 100, DefaultDerivEpsilon)
	if got := c.Classify(o); got != 1 {
		t.Errorf("expected the middle root, got %d", got)
	}
	o = Iterate(complex(-2, 0.1), cubic, 1e-5, 100, DefaultDerivEpsilon)
	if got := c.Classify(o); got != 2 {
		t.Errorf("expected -1 at index 2, got %d", got)
	}
}
