package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/basins/internal/automation"
	"github.com/san-kum/basins/internal/compute"
	"github.com/san-kum/basins/internal/config"
	"github.com/san-kum/basins/internal/experiment"
	"github.com/san-kum/basins/internal/export"
	"github.com/san-kum/basins/internal/fractal"
	"github.com/san-kum/basins/internal/metrics"
	"github.com/san-kum/basins/internal/storage"
	"github.com/spf13/cobra"
)

func runBatch(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}

	fmt.Printf("scenario %s: %d steps\n", scenario.Name, len(scenario.Steps))
	if scenario.Description != "" {
		fmt.Printf("%s\n", scenario.Description)
	}

	registry := experiment.NewRegistry()
	results, runErr := automation.RunScenario(context.Background(), scenario, registry)

	st := storage.New(dataDir)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tPOLY\tN\tBACKEND\tTIME\tRUN\tFILE")

	for i, res := range results {
		runID := "-"
		if !noSave {
			runID, err = st.Save(storage.Run{
				Polynomial: res.Step.Config.Polynomial,
				Label:      res.Label,
				Config:     res.Config,
				Backend:    res.Backend,
				Elapsed:    res.Elapsed,
				Metrics:    metrics.Compute(res.Image, metrics.Default()...),
			}, res.Image)
			if err != nil {
				return err
			}
		}

		file := "-"
		if res.Step.SaveAs != "" {
			if err := export.WriteFile(res.Step.SaveAs, res.Image); err != nil {
				return fmt.Errorf("step %d: %w", i+1, err)
			}
			file = res.Step.SaveAs
		}

		fmt.Fprintf(w, "%d\t%s\t%d\t%s\t%v\t%s\t%s\n",
			i+1, res.Step.Config.Polynomial, res.Image.N, res.Backend, res.Elapsed.Round(time.Millisecond), runID, file)
	}

	if err := w.Flush(); err != nil {
		return err
	}
	return runErr
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	sweep := &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}

	fmt.Printf("sweeping %s over [%g, %g] for %s\n\n", sweepParam, sweepMin, sweepMax, cfg.Polynomial)
	results, err := automation.RunSweep(context.Background(), sweep, experiment.NewRegistry())
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tDIVERGENT\tMEAN_ITER\tMAX_ITER\tTIME\n", sweepParam)
	divergence := make([]float64, len(results))
	for i, r := range results {
		divergence[i] = r.Metrics["divergence_fraction"]
		fmt.Fprintf(w, "%g\t%.4f\t%.2f\t%.0f\t%v\n",
			r.ParamValue,
			divergence[i],
			r.Metrics["mean_iterations"],
			r.Metrics["max_iterations"],
			r.Elapsed.Round(time.Millisecond),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	if len(divergence) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(divergence,
			asciigraph.Height(10),
			asciigraph.Width(60),
			asciigraph.Caption("divergent fraction vs "+sweepParam),
		))
	}
	return nil
}

func runMonteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd, args)
	if err != nil {
		return err
	}

	registry := experiment.NewRegistry()
	mc := &automation.MonteCarloConfig{Base: cfg, NumTrials: trials, Seed: seed}

	start := time.Now()
	results, err := automation.RunMonteCarlo(context.Background(), mc, registry)
	if err != nil {
		return err
	}

	fc, err := cfg.Build(registry)
	if err != nil {
		return err
	}
	shares, stderr := automation.MonteCarloStats(results, len(fc.Roots))

	fmt.Printf("%d random starts in %v\n\n", len(results), time.Since(start).Round(time.Millisecond))
	for i, s := range shares {
		label := fmt.Sprintf("root %d", i)
		if i == len(fc.Roots) {
			label = "divergent"
		}
		fmt.Printf("  %-10s %7.3f%% ± %.3f%%\n", label, s*100, stderr[i]*100)
	}
	return nil
}

func benchPoly(cmd *cobra.Command, args []string) error {
	cfg := config.DefaultConfig()
	if len(args) > 0 {
		cfg.Polynomial = args[0]
	}
	cfg.MaxIter = maxIter

	registry := experiment.NewRegistry()
	fc, err := cfg.Build(registry)
	if err != nil {
		return err
	}

	backends := []compute.Backend{compute.NewSerialBackend(), compute.NewCPUBackend(workers)}
	sizes := []int{128, 256, 512}

	fmt.Printf("benchmarking %s\n\n", cfg.Polynomial)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tBACKEND\tSAMPLES\tTIME\tSAMPLES/SEC")

	for _, n := range sizes {
		for _, b := range backends {
			fc.N = n
			r := fractal.NewRenderer(fractal.WithBackend(b))

			start := time.Now()
			if _, err := r.Render(context.Background(), fc); err != nil {
				return err
			}
			elapsed := time.Since(start)

			samples := n * n
			fmt.Fprintf(w, "%d\t%s\t%d\t%v\t%.0f\n",
				n, b.Name(), samples, elapsed.Round(time.Microsecond), float64(samples)/elapsed.Seconds())
		}
	}

	return w.Flush()
}
