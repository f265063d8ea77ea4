// Package analysis measures the geometry of Newton basins.
//
//   - [BoundaryMask] and [BoundaryFraction]: samples on a basin boundary
//   - [BoxCountingDimension]: fractal dimension of the boundary
//   - [AngularProfile] and [AngularSpectrum]: basin crossings around a
//     circle and their spectrum, which exposes rotational symmetry
//
// # Symmetry
//
// For zⁿ-1 the crossings repeat every 2π/n, so the dominant harmonic of
// the spectrum is a multiple of n:
//
//	profile, _ := analysis.AngularProfile(cfg, 1.2, 256)
//	k := analysis.DominantHarmonic(analysis.AngularSpectrum(profile))
package analysis
