package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/groversim/internal/grover"
)

type Config struct {
	N          int
	Marked     int
	Iterations int
}

// Experiment binds a configuration to a simulator with its metrics and
// observers attached.
type Experiment struct {
	cfg       Config
	simulator *grover.Simulator
}

func New(cfg Config) *Experiment {
	return &Experiment{cfg: cfg}
}

func (e *Experiment) Config() Config { return e.cfg }

func (e *Experiment) Setup(metrics []grover.Metric, observers ...grover.Observer) error {
	sim, err := grover.New(e.cfg.N, e.cfg.Marked)
	if err != nil {
		return fmt.Errorf("experiment setup: %w", err)
	}
	for _, m := range metrics {
		sim.AddMetric(m)
	}
	for _, o := range observers {
		sim.AddObserver(o)
	}
	e.simulator = sim
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*grover.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.Iterations)
}

// Simulator returns the underlying simulator, nil before Setup.
func (e *Experiment) Simulator() *grover.Simulator {
	return e.simulator
}
