package automation

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/groversim/internal/experiment"
	"github.com/san-kum/groversim/internal/grover"
	"github.com/san-kum/groversim/internal/metrics"
	"github.com/san-kum/groversim/internal/storage"
	"gopkg.in/yaml.v3"
)

// Scenario defines a scripted sequence of runs
type Scenario struct {
	Name        string         `yaml:"name"`
	Description string         `yaml:"description"`
	Steps       []ScenarioStep `yaml:"steps"`
}

// ScenarioStep is a single run in a scenario
type ScenarioStep struct {
	Name       string `yaml:"name"`
	N          int    `yaml:"n"`
	Marked     int    `yaml:"marked"`
	Iterations int    `yaml:"iterations"`
	Save       bool   `yaml:"save"`
}

// StepOutcome pairs a scenario step with its result and, when saved, run id.
type StepOutcome struct {
	Step   ScenarioStep
	Result *grover.Result
	RunID  string
}

// LoadScenario loads a scenario from a YAML file
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var scenario Scenario
	if err := yaml.Unmarshal(data, &scenario); err != nil {
		return nil, fmt.Errorf("parse scenario %s: %w", path, err)
	}
	if len(scenario.Steps) == 0 {
		return nil, fmt.Errorf("scenario %s has no steps", path)
	}

	return &scenario, nil
}

// RunScenario executes all steps in order. Steps marked save are stored in
// st, which may be nil when nothing is saved. Outcomes of the steps that
// completed are returned alongside any error.
func RunScenario(ctx context.Context, scenario *Scenario, st *storage.Store, log zerolog.Logger) ([]StepOutcome, error) {
	outcomes := make([]StepOutcome, 0, len(scenario.Steps))

	for i, step := range scenario.Steps {
		log.Info().
			Str("scenario", scenario.Name).
			Str("step", step.Name).
			Int("n", step.N).
			Int("marked", step.Marked).
			Msgf("running step %d/%d", i+1, len(scenario.Steps))

		exp := experiment.New(experiment.Config{N: step.N, Marked: step.Marked, Iterations: step.Iterations})
		if err := exp.Setup(metrics.Defaults()); err != nil {
			return outcomes, fmt.Errorf("step %d setup: %w", i+1, err)
		}

		result, err := exp.Run(ctx)
		if err != nil {
			return outcomes, fmt.Errorf("step %d run: %w", i+1, err)
		}

		outcome := StepOutcome{Step: step, Result: result}
		if step.Save {
			if st == nil {
				return outcomes, fmt.Errorf("step %d: no store to save into", i+1)
			}
			if outcome.RunID, err = st.Save(result); err != nil {
				return outcomes, fmt.Errorf("step %d save: %w", i+1, err)
			}
		}

		outcomes = append(outcomes, outcome)
	}

	return outcomes, nil
}

// InvarianceConfig drives repeated runs of one size with the marked index
// drawn at random.
type InvarianceConfig struct {
	N          int
	Iterations int
	Trials     int
	Seed       int64
}

// InvarianceResult compares one trial against the marked=0 reference.
type InvarianceResult struct {
	TrialID      int
	Marked       int
	MaxDeviation float64
	SamePeaks    bool
}

// RunInvariance runs cfg.Trials simulations with random marked indices and
// measures how far each trace strays from the marked=0 trace. Positions of
// the marked entry are interchangeable, so every deviation should be at
// rounding level and every peak list identical.
func RunInvariance(ctx context.Context, cfg *InvarianceConfig, log zerolog.Logger) ([]InvarianceResult, error) {
	if cfg.Trials <= 0 {
		return nil, fmt.Errorf("trials must be positive, got %d", cfg.Trials)
	}

	ref, err := runMarked(ctx, cfg.N, 0, cfg.Iterations)
	if err != nil {
		return nil, fmt.Errorf("reference run: %w", err)
	}

	rng := rand.New(rand.NewSource(cfg.Seed))
	if cfg.Seed == 0 {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	results := make([]InvarianceResult, 0, cfg.Trials)
	for trial := 0; trial < cfg.Trials; trial++ {
		marked := rng.Intn(cfg.N)
		res, err := runMarked(ctx, cfg.N, marked, cfg.Iterations)
		if err != nil {
			return results, fmt.Errorf("trial %d: %w", trial, err)
		}

		dev := 0.0
		for i, v := range res.Amplitudes {
			dev = math.Max(dev, math.Abs(v-ref.Amplitudes[i]))
		}

		results = append(results, InvarianceResult{
			TrialID:      trial,
			Marked:       marked,
			MaxDeviation: dev,
			SamePeaks:    samePeakSteps(ref.Peaks, res.Peaks),
		})

		if (trial+1)%10 == 0 {
			log.Debug().Int("done", trial+1).Int("trials", cfg.Trials).Msg("invariance progress")
		}
	}

	return results, nil
}

func runMarked(ctx context.Context, n, marked, iterations int) (*grover.Result, error) {
	exp := experiment.New(experiment.Config{N: n, Marked: marked, Iterations: iterations})
	if err := exp.Setup(nil); err != nil {
		return nil, err
	}
	return exp.Run(ctx)
}

func samePeakSteps(a, b []grover.Peak) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i].Step != b[i].Step {
			return false
		}
	}
	return true
}
