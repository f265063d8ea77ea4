// Package fractal computes Newton fractals: every point of a sampled
// rectangle of the complex plane is iterated with Newton's method for a
// polynomial and classified by the root it converges to.
//
// The pipeline is split into small pure pieces:
//
//   - [BuildGrid]: evenly spaced N×N samples, row 0 at Y.Min
//   - [Iterate]: Newton iteration for one sample, returning an [Outcome]
//   - [Classifier]: attributes a converged outcome to a root or [Divergent]
//   - [ColorMapper]: palette lookup per classification
//   - [Renderer]: runs the pipeline for every sample over a compute backend
//
// # Example
//
//	cfg := fractal.DefaultConfig(polynomial.CubicPlusOne{}, polynomial.CubicPlusOne{}.Roots(), palette)
//	img, err := fractal.Render(ctx, cfg)
//
// # Failures
//
// Invalid configuration is reported as a [*ConfigError] before any sample
// is processed. Problems with a single sample (flat derivative, exhausted
// iteration budget, NaN from the polynomial, even a panic) only mark that
// sample Divergent.
//
// # Thread Safety
//
// Config values are read-only during a render and may be shared. A
// Renderer holds no per-render state and can be used concurrently.
package fractal
