package fractal

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/san-kum/basins/internal/compute"
)

const (
	DefaultN        = 512
	DefaultTol      = 1e-5
	DefaultMatchTol = 1e-6
	DefaultMaxIter  = 100
)

// DefaultRange is the domain of the classic z³+1 picture.
var DefaultRange = Range{Min: -3, Max: 3}

// Config is everything a render needs. It is read-only during Render and
// may be shared between concurrent renders.
type Config struct {
	N        int
	X, Y     Range
	Poly     Polynomial
	Roots    RootSet
	Tol      float64
	MatchTol float64
	MaxIter  int
	DerivEps float64
	Palette  Palette
}

func DefaultConfig(p Polynomial, roots RootSet, palette Palette) Config {
	return Config{
		N:        DefaultN,
		X:        DefaultRange,
		Y:        DefaultRange,
		Poly:     p,
		Roots:    roots,
		Tol:      DefaultTol,
		MatchTol: DefaultMatchTol,
		MaxIter:  DefaultMaxIter,
		DerivEps: DefaultDerivEpsilon,
		Palette:  palette,
	}
}

// Validate reports the first configuration problem as a *ConfigError.
func (c Config) Validate() error {
	if err := validateGrid(c.N, c.X, c.Y); err != nil {
		return err
	}
	if c.Poly == nil {
		return configErr("poly", ErrNoPolynomial, "")
	}
	if pf, ok := c.Poly.(PolyFunc); ok && (pf.F == nil || pf.DF == nil) {
		return configErr("poly", ErrNoPolynomial, "function or derivative missing")
	}
	if !validTolerance(c.Tol) {
		return configErr("tol", ErrInvalidTolerance, "got %g", c.Tol)
	}
	if c.MaxIter <= 0 {
		return configErr("max_iter", ErrInvalidIterations, "got %d", c.MaxIter)
	}
	if c.DerivEps < 0 {
		return configErr("deriv_eps", ErrInvalidTolerance, "got %g", c.DerivEps)
	}
	if err := validateRoots(c.Roots, c.MatchTol); err != nil {
		return err
	}
	if len(c.Palette) != len(c.Roots)+1 {
		return configErr("palette", ErrPaletteLength,
			"got %d colors for %d roots, want %d", len(c.Palette), len(c.Roots), len(c.Roots)+1)
	}
	return nil
}

// Renderer drives grid construction, iteration, classification and color
// mapping over a compute backend.
type Renderer struct {
	backend  compute.Backend
	progress func(done, total int)
}

type Option func(*Renderer)

func WithBackend(b compute.Backend) Option {
	return func(r *Renderer) { r.backend = b }
}

// WithProgress registers fn to be called after every finished row. It runs
// on worker goroutines and must be safe for concurrent use.
func WithProgress(fn func(done, total int)) Option {
	return func(r *Renderer) { r.progress = fn }
}

func NewRenderer(opts ...Option) *Renderer {
	r := &Renderer{}
	for _, opt := range opts {
		opt(r)
	}
	if r.backend == nil {
		r.backend = compute.GetBackend()
	}
	return r
}

func (r *Renderer) Backend() compute.Backend { return r.backend }

// Render computes the full image for cfg. Configuration errors are returned
// before any sample is processed; a canceled context returns ErrCanceled.
// On success every pixel of the returned image is populated.
func (r *Renderer) Render(ctx context.Context, cfg Config) (*Image, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	grid, err := BuildGrid(cfg.N, cfg.X, cfg.Y)
	if err != nil {
		return nil, err
	}
	classifier, err := NewClassifier(cfg.Roots, cfg.MatchTol)
	if err != nil {
		return nil, err
	}
	mapper, err := NewColorMapper(cfg.Palette, classifier.NumRoots())
	if err != nil {
		return nil, err
	}

	log := Logger()
	n := cfg.N
	chunk := compute.ChunkSize(n, workerHint(r.backend))
	log.Debug("render start", "backend", r.backend.Name(), "n", n, "rows_per_block", chunk)

	img := newImage(n, cfg.X, cfg.Y)
	var rowsDone, panics atomic.Int64
	start := time.Now()

	err = r.backend.Dispatch(ctx, n, chunk, func(startRow, endRow int) {
		for row := startRow; row < endRow; row++ {
			for _, s := range grid.Row(row) {
				o, c := Evaluate(s.Z, &cfg, classifier)
				if o.Reason == ReasonPanic {
					panics.Add(1)
				}
				idx := s.Row*n + s.Col
				img.Classes[idx] = c
				img.Iterations[idx] = o.Iterations
				img.Reasons[idx] = o.Reason
				img.Pix[idx] = mapper.ColorFor(c)
			}
			done := rowsDone.Add(1)
			if r.progress != nil {
				r.progress(int(done), n)
			}
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCanceled, err)
	}

	if p := panics.Load(); p > 0 {
		log.Warn("polynomial panicked on some samples", "samples", p)
	}
	log.Info("render finished",
		"backend", r.backend.Name(),
		"n", n,
		"elapsed", time.Since(start),
		"divergent", img.Count(Divergent),
	)
	return img, nil
}

// Render renders cfg on the active compute backend.
func Render(ctx context.Context, cfg Config) (*Image, error) {
	return NewRenderer().Render(ctx, cfg)
}

// Evaluate runs one sample through iteration and classification. A panic
// inside the caller's polynomial marks only this sample as divergent, with
// ReasonPanic.
func Evaluate(z complex128, cfg *Config, cls *Classifier) (o Outcome, c Classification) {
	defer func() {
		if rec := recover(); rec != nil {
			o, c = divergent(0, ReasonPanic), Divergent
		}
	}()

	o = Iterate(z, cfg.Poly, cfg.Tol, cfg.MaxIter, cfg.DerivEps)
	c = cls.Classify(o)
	if o.Converged && c == Divergent {
		o.Reason = ReasonUnmatched
	}
	return o, c
}

func workerHint(b compute.Backend) int {
	if w, ok := b.(interface{ Workers() int }); ok {
		return w.Workers()
	}
	return 1
}
