package main

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/basins/internal/analysis"
	"github.com/san-kum/basins/internal/experiment"
	"github.com/san-kum/basins/internal/export"
	"github.com/san-kum/basins/internal/fractal"
	"github.com/san-kum/basins/internal/metrics"
	"github.com/san-kum/basins/internal/storage"
	"github.com/san-kum/basins/internal/viz"
	"github.com/spf13/cobra"
)

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPOLY\tTIME\tN\tMAX_ITER\tBACKEND\tELAPSED\tDIVERGENT")

	for _, run := range runs {
		divergent := 0.0
		if run.N > 0 {
			divergent = float64(run.Divergent()) / float64(run.N*run.N) * 100
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%s\t%.1fms\t%.2f%%\n",
			run.ID,
			run.Polynomial,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.N,
			run.MaxIter,
			run.Backend,
			run.ElapsedMS,
			divergent,
		)
	}

	return w.Flush()
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, img, err := st.LoadImage(args[0])
	if err != nil {
		return err
	}

	header := fmt.Sprintf("%s  %s  %dx%d  re [%g, %g]  im [%g, %g]",
		meta.ID, meta.Label, meta.N, meta.N, meta.X.Min, meta.X.Max, meta.Y.Min, meta.Y.Max)
	fmt.Println(viz.GradientTitle.Render(header))
	if cmd.Flags().Changed("basin") {
		fmt.Println(viz.BasinCanvas(img, fractal.Classification(basin), showWidth).String())
		return nil
	}
	fmt.Println(viz.Preview(img, showWidth))
	palette, err := meta.ColorPalette()
	if err != nil {
		return err
	}
	fmt.Println(viz.Legend(meta.RootSet(), palette))
	return nil
}

func statsRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, img, err := st.LoadImage(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("polynomial: %s (%s)\n", meta.Polynomial, meta.Label)
	fmt.Printf("samples: %d\n", meta.N*meta.N)

	palette, err := meta.ColorPalette()
	if err != nil {
		return err
	}
	printSummary(img, meta.RootSet(), palette, metrics.Compute(img, metrics.Default()...))

	fmt.Printf("  %s\n", viz.Metric("boundary_fraction", fmt.Sprintf("%.6f", analysis.BoundaryFraction(img))))
	fmt.Printf("  %s\n", viz.Metric("box_dimension", fmt.Sprintf("%.4f", analysis.BoxCountingDimension(img))))
	fmt.Println(viz.Separator(80))

	if img.N > 1 {
		graph := asciigraph.Plot(metrics.RowDivergence(img),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("divergent fraction per row (imaginary min to max)"),
		)
		fmt.Println(graph)
		fmt.Println(viz.Separator(80))
	}

	hist := metrics.IterationHistogram(img, 40)
	graph := asciigraph.Plot(hist,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("iterations to converge (histogram)"),
	)
	fmt.Println(graph)
	fmt.Println(viz.Separator(80))

	return angularStats(meta)
}

// angularStats plots the basin crossings around a circle inside the window.
// Only registered polynomials can be re-evaluated.
func angularStats(meta *storage.RunMetadata) error {
	entry, err := experiment.NewRegistry().GetPolynomial(meta.Polynomial)
	if err != nil {
		return nil
	}

	cfg := fractal.DefaultConfig(entry.Poly, meta.RootSet(), experiment.Resize(experiment.ClassicPalette, len(meta.Roots)))
	cfg.Tol = meta.Tol
	cfg.MatchTol = meta.MatchTol
	cfg.MaxIter = meta.MaxIter

	radius := 0.4 * math.Min(meta.X.Span(), meta.Y.Span())
	profile, err := analysis.AngularProfile(cfg, radius, 512)
	if err != nil {
		return err
	}
	ps := analysis.AngularSpectrum(profile)

	graph := asciigraph.Plot(ps[1:65],
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("angular spectrum of basin crossings at |z|=%.3g", radius)),
	)
	fmt.Println(graph)
	fmt.Printf("\ndominant harmonic: %d\n", analysis.DominantHarmonic(ps))
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID, path := args[0], args[1]

	st := storage.New(dataDir)
	meta, img, err := st.LoadImage(runID)
	if err != nil {
		return err
	}

	if strings.EqualFold(filepath.Ext(path), ".json") {
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := storage.ExportJSON(f, meta, img); err != nil {
			return err
		}
	} else if err := export.WriteFile(path, img); err != nil {
		return err
	}

	fmt.Printf("wrote %s\n", path)
	return nil
}
