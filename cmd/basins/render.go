package main

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/san-kum/basins/internal/compute"
	"github.com/san-kum/basins/internal/config"
	"github.com/san-kum/basins/internal/experiment"
	"github.com/san-kum/basins/internal/export"
	"github.com/san-kum/basins/internal/fractal"
	"github.com/san-kum/basins/internal/metrics"
	"github.com/san-kum/basins/internal/storage"
	"github.com/san-kum/basins/internal/viz"
	"github.com/spf13/cobra"
)

func renderFractal(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	fc, err := cfg.Build(registry)
	if err != nil {
		return err
	}

	backend, err := cfg.BuildBackend()
	if err != nil {
		return err
	}
	compute.SetBackend(backend)
	defer backend.Cleanup()

	title := fmt.Sprintf("rendering %s %dx%d on %s", cfg.Polynomial, fc.N, fc.N, backend.Name())
	start := time.Now()

	var img *fractal.Image
	if showProgress {
		img, err = viz.RunWithProgress(context.Background(), title, fc.N,
			func(ctx context.Context, progress func(done, total int)) (*fractal.Image, error) {
				r := fractal.NewRenderer(fractal.WithProgress(progress))
				return r.Render(ctx, fc)
			})
	} else {
		fmt.Printf("%s...\n", title)
		img, err = fractal.Render(context.Background(), fc)
	}
	if err != nil {
		return err
	}

	elapsed := time.Since(start)
	values := metrics.Compute(img, metrics.Default()...)

	if !noSave {
		st := storage.New(dataDir)
		if err := st.Init(); err != nil {
			return err
		}
		runID, err := st.Save(storage.Run{
			Polynomial: cfg.Polynomial,
			Label:      labelFor(registry, cfg),
			Config:     fc,
			Backend:    backend.Name(),
			Elapsed:    elapsed,
			Metrics:    values,
		}, img)
		if err != nil {
			return err
		}
		fmt.Printf("run id: %s (%s)\n", runID, filepath.Join(st.Dir(), runID))
	}

	if outFile != "" {
		if err := export.WriteFile(outFile, img); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", outFile)
	}

	fmt.Printf("completed in %v\n", elapsed)
	printSummary(img, fc.Roots, fc.Palette, values)

	if previewWidth > 0 {
		fmt.Println()
		fmt.Println(viz.Preview(img, previewWidth))
	}

	return nil
}

func labelFor(registry *experiment.Registry, cfg *config.Config) string {
	if cfg.Polynomial == config.Custom {
		return config.Custom
	}
	entry, err := registry.GetPolynomial(cfg.Polynomial)
	if err != nil {
		return cfg.Polynomial
	}
	return entry.Label
}

// printSummary prints basin shares as bars in their palette colors followed
// by the metric values.
func printSummary(img *fractal.Image, roots fractal.RootSet, palette fractal.Palette, values map[string]float64) {
	fmt.Println()
	shares := metrics.BasinShares(img, len(roots))
	for i, share := range shares {
		label := fmt.Sprintf("root %d", i)
		if i == len(roots) {
			label = "divergent"
		}
		c := viz.FromRGBA(palette.Divergence())
		if i < len(roots) {
			c = viz.FromRGBA(palette[i])
		}
		fmt.Println(viz.ShareBar(label, share, c, 40))
	}

	fmt.Println()
	fmt.Println(viz.Legend(roots, palette))
	fmt.Println("\nmetrics:")
	for _, m := range metrics.Default() {
		fmt.Printf("  %s\n", viz.Metric(m.Name(), fmt.Sprintf("%.6f", values[m.Name()])))
	}
}
