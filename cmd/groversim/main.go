package main

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/san-kum/groversim/internal/config"
	"github.com/san-kum/groversim/internal/logger"
	"github.com/spf13/cobra"
)

var (
	dataDir   string
	logLevel  string
	logPretty bool

	n          int
	marked     int
	iterations int
	output     string
	fps        int
	configFile string
	preset     string
	saveConfig string
	noSave     bool

	plotSteps int

	sweepSizes      []int
	sweepIterations int
	sweepFraction   float64
	sweepWorkers    int

	scenarioNoSave bool

	invN          int
	invIterations int
	invTrials     int
	invSeed       int64

	log = zerolog.Nop()
)

// main is the entry point for the groversim CLI. It exits with status 1 when
// the selected command fails.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "groversim",
		Short:        "classical simulation of grover amplitude amplification",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			log = logger.New(logger.Config{Level: logLevel, Pretty: logPretty})
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".groversim", "data directory")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&logPretty, "log-pretty", false, "human readable logs")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation, save it and write plots",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	addParamFlags(runCmd)
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not store the run under --data")
	runCmd.Flags().StringVar(&saveConfig, "save-config", "", "write the effective config to this yaml file")
	runCmd.Flags().IntVar(&plotSteps, "plot-steps", 200, "steps shown in the terminal plot (0 for all)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "animate the amplitude vector",
		Args:  cobra.NoArgs,
		RunE:  runLive,
	}
	addParamFlags(liveCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the marked amplitude and mean of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&plotSteps, "steps", 200, "steps shown (0 for all)")

	peaksCmd := &cobra.Command{
		Use:   "peaks [run_id]",
		Short: "print the detected peaks of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  printPeaks,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "compare a run with the closed form and its spectrum",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export the trace as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export the run as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "compare first peaks with the optimum over many sizes",
		Args:  cobra.NoArgs,
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntSliceVar(&sweepSizes, "sizes", []int{64, 256, 1024, 4096, 16384}, "vector sizes")
	sweepCmd.Flags().IntVar(&sweepIterations, "iterations", 500, "steps per size")
	sweepCmd.Flags().Float64Var(&sweepFraction, "marked-fraction", 0.2, "marked index as a fraction of n")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel runs (0 for one per cpu)")

	scenarioCmd := &cobra.Command{
		Use:   "scenario [file]",
		Short: "run the steps of a yaml scenario",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().BoolVar(&scenarioNoSave, "no-save", false, "ignore save flags in the scenario")

	invarianceCmd := &cobra.Command{
		Use:   "invariance",
		Short: "check that the marked position does not change the trace",
		Args:  cobra.NoArgs,
		RunE:  runInvariance,
	}
	invarianceCmd.Flags().IntVar(&invN, "n", config.DefaultN, "vector size")
	invarianceCmd.Flags().IntVar(&invIterations, "iterations", 200, "steps per trial")
	invarianceCmd.Flags().IntVar(&invTrials, "trials", 20, "random marked positions to try")
	invarianceCmd.Flags().Int64Var(&invSeed, "seed", 0, "random seed (0 for time based)")

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, peaksCmd, analyzeCmd, exportCSVCmd, exportJSONCmd,
		presetsCmd, sweepCmd, scenarioCmd, invarianceCmd)
	return rootCmd
}

func addParamFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&n, "n", config.DefaultN, "vector size")
	cmd.Flags().IntVar(&marked, "marked", config.DefaultMarked, "marked index in [0, n)")
	cmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "steps to run")
	cmd.Flags().StringVar(&output, "output", config.DefaultOutput, "directory for plot artifacts (empty to skip)")
	cmd.Flags().IntVar(&fps, "fps", config.DefaultFPS, "frames per second (live)")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
}

// resolveConfig layers defaults, the preset, the config file and the flags
// the user set explicitly, in that order.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		var err error
		cfg, err = config.LoadInto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("n") {
		cfg.N = n
	}
	if flags.Changed("marked") {
		cfg.Marked = marked
	}
	if flags.Changed("iterations") {
		cfg.Iterations = iterations
	}
	if flags.Changed("output") {
		cfg.Output = output
	}
	if flags.Changed("fps") {
		cfg.FPS = fps
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
