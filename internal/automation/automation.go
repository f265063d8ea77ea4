package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"runtime"
	"time"

	"github.com/san-kum/basins/internal/compute"
	"github.com/san-kum/basins/internal/config"
	"github.com/san-kum/basins/internal/experiment"
	"github.com/san-kum/basins/internal/fractal"
	"github.com/san-kum/basins/internal/metrics"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of renders
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single render. Fields not set in the file come from
// the named preset, or from config.DefaultConfig when there is none.
type ScenarioStep struct {
	Preset string        `yaml:"preset"`
	SaveAs string        `yaml:"save_as"`
	Config config.Config `yaml:",inline"`
}

func (s *ScenarioStep) UnmarshalYAML(node *yaml.Node) error {
	var head struct {
		Preset     string `yaml:"preset"`
		Polynomial string `yaml:"polynomial"`
	}
	if err := node.Decode(&head); err != nil {
		return err
	}

	base := config.DefaultConfig()
	if head.Preset != "" {
		poly := head.Polynomial
		if poly == "" {
			poly = config.DefaultPolynomial
		}
		base = config.GetPreset(poly, head.Preset)
		if base == nil {
			return fmt.Errorf("unknown preset: %s (available: %v)", head.Preset, config.ListPresets(poly))
		}
	}

	type plain ScenarioStep
	step := plain{Config: *base}
	if err := node.Decode(&step); err != nil {
		return err
	}
	*s = ScenarioStep(step)
	return nil
}

// StepResult is the outcome of one scenario step.
type StepResult struct {
	Step    ScenarioStep
	Config  fractal.Config
	Label   string
	Image   *fractal.Image
	Backend string
	Elapsed time.Duration
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, err
	}

	return &scenario, nil
}

// RunScenario renders all steps in order and stops at the first failure,
// returning the results completed so far.
func RunScenario(ctx context.Context, scenario *Scenario, registry *experiment.Registry) ([]StepResult, error) {
	results := make([]StepResult, 0, len(scenario.Steps))
	log := fractal.Logger()

	for i, step := range scenario.Steps {
		log.Info("scenario step", "scenario", scenario.Name, "step", i+1, "of", len(scenario.Steps), "polynomial", step.Config.Polynomial)

		cfg, err := step.Config.Build(registry)
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		backend, err := step.Config.BuildBackend()
		if err != nil {
			return results, fmt.Errorf("step %d: %w", i+1, err)
		}

		start := time.Now()
		img, err := fractal.NewRenderer(fractal.WithBackend(backend)).Render(ctx, cfg)
		backend.Cleanup()
		if err != nil {
			return results, fmt.Errorf("step %d render: %w", i+1, err)
		}

		results = append(results, StepResult{
			Step:    step,
			Config:  cfg,
			Label:   labelOf(registry, step.Config.Polynomial),
			Image:   img,
			Backend: backend.Name(),
			Elapsed: time.Since(start),
		})
	}

	return results, nil
}

func labelOf(registry *experiment.Registry, name string) string {
	if entry, err := registry.GetPolynomial(name); err == nil {
		return entry.Label
	}
	return name
}

// Sweepable parameters.
const (
	ParamTol      = "tol"
	ParamMatchTol = "match_tol"
	ParamMaxIter  = "max_iter"
	ParamSpan     = "span"
)

// ParameterSweep renders the same polynomial across a range of one
// parameter. ParamSpan scales both axes to [-v, v].
type ParameterSweep struct {
	Base      *config.Config
	ParamName string
	ParamMin  float64
	ParamMax  float64
	NumSteps  int
}

// SweepResult holds results from a parameter sweep
type SweepResult struct {
	ParamValue float64
	Metrics    map[string]float64
	Elapsed    time.Duration
}

// RunSweep executes a parameter sweep
func RunSweep(ctx context.Context, sweep *ParameterSweep, registry *experiment.Registry) ([]SweepResult, error) {
	if sweep.NumSteps < 1 {
		return nil, fmt.Errorf("sweep needs at least one step")
	}
	if sweep.Base == nil {
		sweep.Base = config.DefaultConfig()
	}

	backend, err := sweep.Base.BuildBackend()
	if err != nil {
		return nil, err
	}
	defer backend.Cleanup()

	results := make([]SweepResult, 0, sweep.NumSteps)

	paramStep := 0.0
	if sweep.NumSteps > 1 {
		paramStep = (sweep.ParamMax - sweep.ParamMin) / float64(sweep.NumSteps-1)
	}

	for i := 0; i < sweep.NumSteps; i++ {
		paramVal := sweep.ParamMin + float64(i)*paramStep

		step := *sweep.Base
		if err := setParam(&step, sweep.ParamName, paramVal); err != nil {
			return nil, err
		}

		cfg, err := step.Build(registry)
		if err != nil {
			return results, fmt.Errorf("%s=%g: %w", sweep.ParamName, paramVal, err)
		}

		start := time.Now()
		img, err := fractal.NewRenderer(fractal.WithBackend(backend)).Render(ctx, cfg)
		if err != nil {
			return results, err
		}

		results = append(results, SweepResult{
			ParamValue: paramVal,
			Metrics:    metrics.Compute(img, metrics.Default()...),
			Elapsed:    time.Since(start),
		})

		fractal.Logger().Debug("sweep", "step", i+1, "of", sweep.NumSteps, sweep.ParamName, paramVal)
	}

	return results, nil
}

func setParam(c *config.Config, name string, v float64) error {
	switch name {
	case ParamTol:
		c.Tol = v
	case ParamMatchTol:
		c.MatchTol = v
	case ParamMaxIter:
		c.MaxIter = int(v)
	case ParamSpan:
		c.XRange = fractal.Range{Min: -v, Max: v}
		c.YRange = fractal.Range{Min: -v, Max: v}
	default:
		return fmt.Errorf("unknown sweep parameter: %s (available: %v)", name,
			[]string{ParamMatchTol, ParamMaxIter, ParamSpan, ParamTol})
	}
	return nil
}

// MonteCarloConfig estimates basin areas from uniformly random starts in
// the configured window instead of a full grid.
type MonteCarloConfig struct {
	Base      *config.Config
	NumTrials int
	Seed      int64
}

// MonteCarloResult holds one random start and where it went.
type MonteCarloResult struct {
	TrialID    int
	Start      complex128
	Class      fractal.Classification
	Iterations int
}

// RunMonteCarlo runs NumTrials random starts across the backend. A zero
// Seed seeds from the clock.
func RunMonteCarlo(ctx context.Context, cfg *MonteCarloConfig, registry *experiment.Registry) ([]MonteCarloResult, error) {
	if cfg.NumTrials < 1 {
		return nil, fmt.Errorf("monte carlo needs at least one trial, got %d", cfg.NumTrials)
	}
	if cfg.Base == nil {
		cfg.Base = config.DefaultConfig()
	}
	fc, err := cfg.Base.Build(registry)
	if err != nil {
		return nil, err
	}
	backend, err := cfg.Base.BuildBackend()
	if err != nil {
		return nil, err
	}
	defer backend.Cleanup()

	cls, err := fractal.NewClassifier(fc.Roots, fc.MatchTol)
	if err != nil {
		return nil, err
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	// Draw every start up front so results do not depend on scheduling.
	results := make([]MonteCarloResult, cfg.NumTrials)
	for trial := range results {
		re := fc.X.Min + rng.Float64()*fc.X.Span()
		im := fc.Y.Min + rng.Float64()*fc.Y.Span()
		results[trial] = MonteCarloResult{TrialID: trial, Start: complex(re, im)}
	}

	chunk := compute.ChunkSize(len(results), runtime.NumCPU())
	err = backend.Dispatch(ctx, len(results), chunk, func(start, end int) {
		for i := start; i < end; i++ {
			o, c := fractal.Evaluate(results[i].Start, &fc, cls)
			results[i].Class = c
			results[i].Iterations = o.Iterations
		}
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", fractal.ErrCanceled, err)
	}

	return results, nil
}

// MonteCarloStats returns the estimated share of each basin, divergent
// last, and the standard error of each share.
func MonteCarloStats(results []MonteCarloResult, numRoots int) (shares, stderr []float64) {
	shares = make([]float64, numRoots+1)
	stderr = make([]float64, numRoots+1)
	if len(results) == 0 {
		return
	}
	for _, r := range results {
		if r.Class.IsRoot() && int(r.Class) < numRoots {
			shares[r.Class]++
		} else {
			shares[numRoots]++
		}
	}
	n := float64(len(results))
	for i := range shares {
		shares[i] /= n
		stderr[i] = math.Sqrt(shares[i] * (1 - shares[i]) / n)
	}
	return
}
