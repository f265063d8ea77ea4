package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/san-kum/basins/internal/compute"
	"github.com/san-kum/basins/internal/config"
	"github.com/san-kum/basins/internal/experiment"
	"github.com/san-kum/basins/internal/fractal"
	"github.com/san-kum/basins/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir string
	verbose bool
	// Grid and iteration
	resolution int
	xMin       float64
	xMax       float64
	yMin       float64
	yMax       float64
	tol        float64
	matchTol   float64
	maxIter    int
	// Coloring
	paletteName string
	theme       string
	// Execution
	backendName string
	workers     int
	// Config file
	configFile string
	// Preset name
	preset string
	// Output
	outFile      string
	showProgress bool
	noSave       bool
	previewWidth int
	showWidth    int
	basin        int
	// Sweeps and sampling
	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int
	trials     int
	seed       int64
)

// main registers the basins commands and exits with status 1 if the
// selected command fails.
func main() {
	rootCmd := &cobra.Command{
		Use:   "basins",
		Short: "newton fractal generator",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".basins", "data directory")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")

	renderCmd := &cobra.Command{
		Use:   "render [poly]",
		Short: "render a newton fractal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  renderFractal,
	}
	addRenderFlags(renderCmd)
	renderCmd.Flags().StringVarP(&outFile, "out", "o", "", "write image file (png, bmp, tiff, svg)")
	renderCmd.Flags().BoolVar(&showProgress, "progress", false, "show live progress")
	renderCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run")
	renderCmd.Flags().IntVar(&previewWidth, "preview", 0, "print a terminal preview this many columns wide")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "preview a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}
	showCmd.Flags().IntVar(&showWidth, "width", 80, "preview width in columns")
	showCmd.Flags().IntVar(&basin, "basin", -2, "draw only this basin as braille dots (-1 = divergent)")

	statsCmd := &cobra.Command{
		Use:   "stats [run_id]",
		Short: "basin statistics of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  statsRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id] [file]",
		Short: "export a stored run (png, bmp, tiff, svg, json)",
		Args:  cobra.ExactArgs(2),
		RunE:  exportRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [poly]",
		Short: "list available presets for a polynomial",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for polynomial: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	polysCmd := &cobra.Command{
		Use:   "polys",
		Short: "list polynomials, palettes and backends",
		RunE:  listPolys,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [poly]",
		Short: "benchmark backends",
		Args:  cobra.MaximumNArgs(1),
		RunE:  benchPoly,
	}
	benchCmd.Flags().IntVar(&workers, "workers", 0, "cpu workers (0 = one per cpu)")
	benchCmd.Flags().IntVar(&maxIter, "max-iter", fractal.DefaultMaxIter, "iteration cap")

	batchCmd := &cobra.Command{
		Use:   "batch [scenario.yaml]",
		Short: "render every step of a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE:  runBatch,
	}
	batchCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the runs")

	sweepCmd := &cobra.Command{
		Use:   "sweep [poly]",
		Short: "render across a range of one parameter",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runSweep,
	}
	addRenderFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "max_iter", "parameter to sweep (tol, match_tol, max_iter, span)")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 5, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 100, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo [poly]",
		Short: "estimate basin areas from random starts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runMonteCarlo,
	}
	addRenderFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 100000, "number of random starts")
	monteCarloCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = clock)")

	rootCmd.AddCommand(renderCmd, listCmd, showCmd, statsCmd, exportCmd, presetsCmd, polysCmd, benchCmd, batchCmd, sweepCmd, monteCarloCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRenderFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&resolution, "n", fractal.DefaultN, "samples per axis")
	f.Float64Var(&xMin, "xmin", fractal.DefaultRange.Min, "real axis minimum")
	f.Float64Var(&xMax, "xmax", fractal.DefaultRange.Max, "real axis maximum")
	f.Float64Var(&yMin, "ymin", fractal.DefaultRange.Min, "imaginary axis minimum")
	f.Float64Var(&yMax, "ymax", fractal.DefaultRange.Max, "imaginary axis maximum")
	f.Float64Var(&tol, "tol", fractal.DefaultTol, "relative convergence tolerance")
	f.Float64Var(&matchTol, "match-tol", fractal.DefaultMatchTol, "root match tolerance")
	f.IntVar(&maxIter, "max-iter", fractal.DefaultMaxIter, "iteration cap")
	f.StringVar(&paletteName, "palette", config.DefaultPalette, "palette name")
	f.StringVar(&theme, "theme", "cyberpunk", "terminal theme; also the palette unless --palette is set")
	f.StringVar(&backendName, "backend", config.DefaultBackend, fmt.Sprintf("compute backend %v", compute.Names()))
	f.IntVar(&workers, "workers", 0, "cpu workers (0 = one per cpu)")
	f.StringVar(&configFile, "config", "", "config file path (yaml)")
	f.StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers defaults, preset, config file and changed flags, in
// that order.
func resolveConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	poly := config.DefaultPolynomial
	if len(args) > 0 {
		poly = args[0]
	}

	cfg := config.DefaultConfig()
	cfg.Polynomial = poly

	// Load preset if specified
	if preset != "" {
		p := config.GetPreset(poly, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(poly))
		}
		cfg = p
	}

	// Load config file if specified (overrides preset)
	if configFile != "" {
		fileCfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = fileCfg
		if len(args) > 0 {
			cfg.Polynomial = poly
		}
	}

	// CLI flags override both
	flags := cmd.Flags()
	if flags.Changed("n") {
		cfg.Resolution = resolution
	}
	if flags.Changed("xmin") {
		cfg.XRange.Min = xMin
	}
	if flags.Changed("xmax") {
		cfg.XRange.Max = xMax
	}
	if flags.Changed("ymin") {
		cfg.YRange.Min = yMin
	}
	if flags.Changed("ymax") {
		cfg.YRange.Max = yMax
	}
	if flags.Changed("tol") {
		cfg.Tol = tol
	}
	if flags.Changed("match-tol") {
		cfg.MatchTol = matchTol
	}
	if flags.Changed("max-iter") {
		cfg.MaxIter = maxIter
	}
	if flags.Changed("theme") {
		viz.SetTheme(theme)
		if !flags.Changed("palette") {
			cfg.Palette = theme
			cfg.Colors = nil
		}
	}
	if flags.Changed("palette") {
		cfg.Palette = paletteName
		cfg.Colors = nil
	}
	if flags.Changed("backend") {
		cfg.Backend = backendName
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}

	return cfg, nil
}

func setupLogging() {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	fractal.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func listPolys(cmd *cobra.Command, args []string) error {
	registry := experiment.NewRegistry()

	fmt.Println(viz.GradientTitle.Render("polynomials"))
	for _, name := range registry.ListPolynomials() {
		entry, err := registry.GetPolynomial(name)
		if err != nil {
			return err
		}
		fmt.Printf("  %-10s %-28s %d roots\n", name, entry.Label, len(entry.Roots))
	}

	fmt.Println(viz.GradientTitle.Render("palettes"))
	for _, name := range registry.ListPalettes() {
		fmt.Printf("  %s\n", name)
	}

	fmt.Println(viz.GradientTitle.Render("backends"))
	for _, name := range compute.Names() {
		b, err := compute.ByName(name, 0)
		if err != nil {
			return err
		}
		status := viz.StatusRunning.Render("available")
		if !b.Available() {
			status = viz.StatusFailed.Render("unavailable")
		}
		fmt.Printf("  %-8s %s\n", name, status)
	}
	return nil
}
