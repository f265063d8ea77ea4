package fractal

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestIterate_StartAtRoot(t *testing.T) {
	for i, r := range cubicRoots {
		o := Iterate(r, cubic, 1e-10, 1000, DefaultDerivEpsilon)
		if !o.Converged {
			t.Errorf("root %d: expected convergence, got %v", i, o.Reason)
			continue
		}
		if o.Iterations != 0 {
			t.Errorf("root %d: expected 0 iterations, got %d", i, o.Iterations)
		}
		if cmplx.Abs(o.Final-r) > 1e-12 {
			t.Errorf("root %d: final %v, want %v", i, o.Final, r)
		}
	}
}

func TestIterate_MinusOne(t *testing.T) {
	o := Iterate(complex(-1, 0), cubic, 1e-10, 1000, DefaultDerivEpsilon)
	if !o.Converged || o.Iterations != 0 {
		t.Fatalf("expected immediate convergence, got %+v", o)
	}
	if c := Classify(o, cubicRoots, DefaultMatchTol); c != 0 {
		t.Errorf("expected class 0, got %d", c)
	}
}

func TestIterate_ReferencePoint(t *testing.T) {
	// 2+2i lands in the basin of 0.5+0.866i after 6 steps.
	o := Iterate(complex(2, 2), cubic, 1e-5, 100, DefaultDerivEpsilon)
	if !o.Converged {
		t.Fatalf("expected convergence, got %v", o.Reason)
	}
	if o.Iterations != 6 {
		t.Errorf("expected 6 iterations, got %d", o.Iterations)
	}
	if c := Classify(o, cubicRoots, DefaultMatchTol); c != 1 {
		t.Errorf("expected class 1, got %d", c)
	}
}

func TestIterate_FlatDerivativeAtOrigin(t *testing.T) {
	o := Iterate(0, cubic, 1e-5, 100, DefaultDerivEpsilon)
	if o.Converged {
		t.Fatal("expected divergence at the origin")
	}
	if o.Reason != ReasonFlatDerivative {
		t.Errorf("expected flat derivative, got %v", o.Reason)
	}
	if o.Iterations != 0 {
		t.Errorf("expected 0 iterations, got %d", o.Iterations)
	}
	if !cmplx.IsInf(o.Final) {
		t.Errorf("expected divergence sentinel, got %v", o.Final)
	}
	if c := Classify(o, cubicRoots, DefaultMatchTol); c != Divergent {
		t.Errorf("expected divergent class, got %d", c)
	}
}

func TestIterate_ZeroEpsilonStillGuarded(t *testing.T) {
	o := Iterate(0, cubic, 1e-5, 100, 0)
	if o.Converged {
		t.Fatal("expected divergence")
	}
	if cmplx.IsNaN(o.Final) {
		t.Error("outcome must never carry NaN")
	}
	if o.Reason != ReasonNonFinite {
		t.Errorf("expected non-finite reason, got %v", o.Reason)
	}
}

func TestIterate_MaxIter(t *testing.T) {
	// z²+1 has no real roots; real starting points bounce forever.
	p := PolyFunc{
		F:  func(z complex128) complex128 { return z*z + 1 },
		DF: func(z complex128) complex128 { return 2 * z },
	}
	o := Iterate(complex(0.3, 0), p, 1e-10, 25, DefaultDerivEpsilon)
	if o.Converged {
		t.Fatalf("expected no convergence, got %+v", o)
	}
	if o.Iterations > 25 {
		t.Errorf("iterations %d exceed cap", o.Iterations)
	}
	if o.Reason != ReasonMaxIter {
		t.Errorf("expected max iterations, got %v", o.Reason)
	}
	if o.Iterations != 25 {
		t.Errorf("expected 25 iterations, got %d", o.Iterations)
	}
}

func TestIterate_ZeroIterate(t *testing.T) {
	// f(z) = z with a unit derivative jumps straight to 0.
	p := PolyFunc{
		F:  func(z complex128) complex128 { return z },
		DF: func(z complex128) complex128 { return 1 },
	}
	o := Iterate(complex(3, 1), p, 1e-5, 10, DefaultDerivEpsilon)
	if o.Converged || o.Reason != ReasonZeroIterate {
		t.Errorf("expected zero iterate divergence, got %+v", o)
	}
}

func TestIterate_NonFinitePolynomial(t *testing.T) {
	p := PolyFunc{
		F:  func(z complex128) complex128 { return cmplx.NaN() },
		DF: func(z complex128) complex128 { return 1 },
	}
	o := Iterate(complex(1, 1), p, 1e-5, 10, DefaultDerivEpsilon)
	if o.Converged || o.Reason != ReasonNonFinite {
		t.Errorf("expected non-finite divergence, got %+v", o)
	}

	o = Iterate(complex(math.Inf(1), 0), cubic, 1e-5, 10, DefaultDerivEpsilon)
	if o.Converged || o.Reason != ReasonNonFinite {
		t.Errorf("expected non-finite start to diverge, got %+v", o)
	}
}

func TestIterate_BoundedAndDeterministic(t *testing.T) {
	g, _ := BuildGrid(25, Range{-2, 2}, Range{-2, 2})
	for _, s := range g.Samples {
		a := Iterate(s.Z, cubic, 1e-8, 40, DefaultDerivEpsilon)
		b := Iterate(s.Z, cubic, 1e-8, 40, DefaultDerivEpsilon)
		if a != b {
			t.Fatalf("non-deterministic outcome at %v: %+v vs %+v", s.Z, a, b)
		}
		if a.Iterations > 40 {
			t.Fatalf("iterations %d exceed cap at %v", a.Iterations, s.Z)
		}
		if a.Converged && !isFinite(a.Final) {
			t.Fatalf("converged to non-finite value at %v", s.Z)
		}
	}
}
