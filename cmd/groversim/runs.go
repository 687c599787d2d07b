package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/groversim/internal/analysis"
	"github.com/san-kum/groversim/internal/experiment"
	"github.com/san-kum/groversim/internal/storage"
	"github.com/spf13/cobra"
)

func openStore() *storage.Store {
	return storage.New(dataDir).WithLogger(log)
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := openStore().List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tN\tMARKED\tSTEPS\tPEAKS\tFIRST PEAK")

	for _, run := range runs {
		first := "-"
		if run.FirstPeakStep >= 0 {
			first = fmt.Sprintf("%d (%.4f)", run.FirstPeakStep, run.FirstPeakValue)
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%d\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.N,
			run.Marked,
			run.Iterations,
			run.Peaks,
			first,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := openStore()
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	amps, means, err := st.LoadTrace(runID)
	if err != nil {
		return err
	}

	if len(amps) < 2 {
		return fmt.Errorf("no data to plot")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run: %s\n", meta.ID)
	fmt.Fprintf(out, "n: %d  marked: %d\n", meta.N, meta.Marked)
	fmt.Fprintf(out, "samples: %d\n\n", len(amps))

	graph := asciigraph.PlotMany([][]float64{window(amps, plotSteps), window(means, plotSteps)},
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.SeriesColors(asciigraph.Green, asciigraph.Blue),
		asciigraph.Caption("marked amplitude (green) and mean (blue)"),
	)
	fmt.Fprintln(out, graph)
	return nil
}

func printPeaks(cmd *cobra.Command, args []string) error {
	meta, result, err := openStore().LoadResult(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(result.Peaks) == 0 {
		fmt.Fprintf(out, "no peaks in %s\n", meta.ID)
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "INDEX\tSTEP\tVALUE")
	for _, p := range result.Peaks {
		fmt.Fprintf(w, "%d\t%d\t%.6f\n", p.Index, p.Step, p.Value)
	}
	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	meta, result, err := openStore().LoadResult(args[0])
	if err != nil {
		return err
	}

	if len(result.Amplitudes) == 0 {
		return fmt.Errorf("no data")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "analysis: %s\n", meta.ID)
	fmt.Fprintf(out, "n: %d  marked: %d  steps: %d\n\n", meta.N, meta.Marked, len(result.Amplitudes))

	fmt.Fprintf(out, "theta: %.6f rad\n", analysis.Angle(meta.N))
	fmt.Fprintf(out, "optimal iterations: %d\n", analysis.OptimalIterations(meta.N))
	fmt.Fprintf(out, "theoretical period: %.3f steps\n", analysis.Period(meta.N))
	fmt.Fprintf(out, "max deviation from closed form: %.3e\n", analysis.MaxDeviation(meta.N, result.Amplitudes))
	if len(result.Peaks) > 0 {
		fmt.Fprintf(out, "first observed peak: step %d, value %.6f\n", result.Peaks[0].Step, result.Peaks[0].Value)
	}

	if len(result.Amplitudes) >= 4 {
		ps := analysis.PowerSpectrum(result.Amplitudes)
		plotData := ps[:max(len(ps)/4, 2)]
		fmt.Fprintln(out)
		fmt.Fprintln(out, asciigraph.Plot(plotData,
			asciigraph.Height(12),
			asciigraph.Width(80),
			asciigraph.Caption("power spectrum (marked amplitude)"),
		))
		fmt.Fprintf(out, "\ndominant period: %.3f steps\n", analysis.DominantPeriod(result.Amplitudes))
	}

	// the vector is not stored, so replay the run to trace the portrait
	exp := experiment.New(experiment.Config{N: meta.N, Marked: meta.Marked, Iterations: len(result.Amplitudes)})
	portrait := analysis.NewPhasePortrait(meta.Marked)
	if err := exp.Setup(nil, portrait); err != nil {
		return err
	}
	if _, err := exp.Run(context.Background()); err != nil {
		return err
	}

	fmt.Fprintln(out, "\nphase portrait (sqrt(n-1)*unmarked, marked):")
	fmt.Fprint(out, portrait.ASCII(41, 21))
	fmt.Fprintf(out, "max radius error: %.3e\n", portrait.MaxRadiusError())
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	amps, means, err := openStore().LoadTrace(args[0])
	if err != nil {
		return err
	}

	if len(amps) == 0 {
		return fmt.Errorf("no data to export")
	}

	w := csv.NewWriter(cmd.OutOrStdout())
	if err := w.Write([]string{"step", "amplitude", "mean"}); err != nil {
		return err
	}

	for i := range amps {
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(amps[i], 'f', 6, 64),
			strconv.FormatFloat(means[i], 'f', 6, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	meta, result, err := openStore().LoadResult(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(cmd.OutOrStdout(), meta.ID, result)
}
