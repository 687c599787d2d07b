package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/groversim/internal/analysis"
	"github.com/san-kum/groversim/internal/automation"
	"github.com/san-kum/groversim/internal/config"
	"github.com/san-kum/groversim/internal/experiment"
	"github.com/san-kum/groversim/internal/export"
	"github.com/san-kum/groversim/internal/grover"
	"github.com/san-kum/groversim/internal/metrics"
	"github.com/san-kum/groversim/internal/storage"
	"github.com/san-kum/groversim/internal/sweep"
	"github.com/san-kum/groversim/internal/viz"
	"github.com/spf13/cobra"
)

const (
	chartWidth  = 900
	chartHeight = 500
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	if saveConfig != "" {
		if err := config.Save(saveConfig, cfg); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		log.Info().Str("path", saveConfig).Msg("config written")
	}

	exp := experiment.New(experiment.Config{N: cfg.N, Marked: cfg.Marked, Iterations: cfg.Iterations})
	if err := exp.Setup(metrics.Defaults()); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Int("n", cfg.N).Int("marked", cfg.Marked).Int("iterations", cfg.Iterations).Msg("running simulation")
	start := time.Now()

	result, err := exp.Run(ctx)
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	for _, p := range result.Peaks {
		log.Debug().Int("index", p.Index).Int("step", p.Step).Float64("value", p.Value).Msg("peak")
	}

	runID := ""
	if !noSave {
		st := storage.New(dataDir).WithLogger(log)
		if err := st.Init(); err != nil {
			return err
		}
		if runID, err = st.Save(result); err != nil {
			return err
		}
	}

	if cfg.Output != "" {
		if err := writeCharts(cfg.Output, result); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	printSummary(out, runID, result, elapsed)
	if len(result.Amplitudes) > 1 {
		fmt.Fprintln(out)
		fmt.Fprintln(out, plotTrace(window(result.Amplitudes, plotSteps), "marked amplitude"))
	}
	return nil
}

// writeCharts writes the amplitude chart and the peaks chart into dir.
func writeCharts(dir string, result *grover.Result) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	charts := map[string]export.Chart{
		"grover.svg": export.TraceChart(result, chartWidth, chartHeight),
		"tops.svg":   export.PeaksChart(result.Peaks, chartWidth, chartHeight),
	}
	for name, chart := range charts {
		path := filepath.Join(dir, name)
		written, err := chart.WriteFile(path)
		if err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		if written {
			log.Info().Str("path", path).Msg("chart written")
		} else {
			log.Debug().Str("chart", name).Msg("nothing to plot")
		}
	}
	return nil
}

func printSummary(w io.Writer, runID string, result *grover.Result, elapsed time.Duration) {
	fmt.Fprintf(w, "completed in %v\n", elapsed)
	if runID != "" {
		fmt.Fprintf(w, "run id: %s\n", runID)
	}
	fmt.Fprintf(w, "n: %d  marked: %d\n", result.N, result.Marked)
	fmt.Fprintf(w, "steps: %d\n", result.StepsTaken)
	fmt.Fprintf(w, "peaks: %d\n", len(result.Peaks))
	if len(result.Peaks) > 0 {
		first := result.Peaks[0]
		fmt.Fprintf(w, "first peak: step %d after %d iterations, value %.6f (optimal %d)\n",
			first.Step, first.Step+1, first.Value, analysis.OptimalIterations(result.N))
	}

	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w, "\nmetrics:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s: %.6f\n", name, result.Metrics[name])
	}
}

// window returns the first steps entries of data, or all of it for steps <= 0.
func window(data []float64, steps int) []float64 {
	if steps <= 0 || steps >= len(data) {
		return data
	}
	return data[:steps]
}

func plotTrace(data []float64, caption string) string {
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	sim, err := grover.New(cfg.N, cfg.Marked)
	if err != nil {
		return err
	}

	m := viz.NewModel(sim, viz.Options{
		Iterations: cfg.Iterations,
		FPS:        cfg.FPS,
		OutDir:     cfg.Output,
		Log:        log,
	})

	p := tea.NewProgram(m)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	log.Info().Ints("sizes", sweepSizes).Int("iterations", sweepIterations).Msg("sweeping")

	rows, err := sweep.New(sweepSizes, sweepIterations).
		WithMarked(sweep.MarkedFraction(sweepFraction)).
		WithWorkers(sweepWorkers).
		WithLogger(log).
		Run(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "N\tMARKED\tFIRST PEAK\tVALUE\tOPTIMAL\tPERIOD\tPEAKS\tP(FINAL)")
	for _, r := range rows {
		first := "-"
		if r.FirstPeakStep >= 0 {
			first = fmt.Sprintf("%d", r.FirstPeakStep)
		}
		fmt.Fprintf(w, "%d\t%d\t%s\t%.6f\t%d\t%.2f\t%d\t%.4f\n",
			r.N, r.Marked, first, r.FirstPeakValue, r.Optimal, r.Period, r.Peaks, r.Success)
	}
	return w.Flush()
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tN\tMARKED\tITERATIONS\tFPS")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\n", name, p.N, p.Marked, p.Iterations, p.FPS)
	}
	return w.Flush()
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}

	var st *storage.Store
	if !scenarioNoSave {
		st = storage.New(dataDir).WithLogger(log)
		if err := st.Init(); err != nil {
			return err
		}
	} else {
		for i := range scenario.Steps {
			scenario.Steps[i].Save = false
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	outcomes, err := automation.RunScenario(ctx, scenario, st, log)

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tN\tMARKED\tSTEPS\tPEAKS\tFIRST PEAK\tRUN ID")
	for _, o := range outcomes {
		first, runID := "-", "-"
		if len(o.Result.Peaks) > 0 {
			first = fmt.Sprintf("%d (%.4f)", o.Result.Peaks[0].Step, o.Result.Peaks[0].Value)
		}
		if o.RunID != "" {
			runID = o.RunID
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%d\t%d\t%s\t%s\n",
			o.Step.Name, o.Result.N, o.Result.Marked, o.Result.StepsTaken, len(o.Result.Peaks), first, runID)
	}
	if ferr := w.Flush(); ferr != nil && err == nil {
		err = ferr
	}
	return err
}

func runInvariance(cmd *cobra.Command, args []string) error {
	cfg := &automation.InvarianceConfig{N: invN, Iterations: invIterations, Trials: invTrials, Seed: invSeed}
	results, err := automation.RunInvariance(context.Background(), cfg, log)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	worst := 0.0
	mismatched := 0
	for _, r := range results {
		worst = max(worst, r.MaxDeviation)
		if !r.SamePeaks {
			mismatched++
			log.Warn().Int("trial", r.TrialID).Int("marked", r.Marked).Msg("peaks differ from marked=0")
		}
	}

	fmt.Fprintf(out, "n: %d  steps: %d  trials: %d\n", cfg.N, cfg.Iterations, len(results))
	fmt.Fprintf(out, "max deviation from marked=0: %.3e\n", worst)
	fmt.Fprintf(out, "trials with different peaks: %d\n", mismatched)
	return nil
}
