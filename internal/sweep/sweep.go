// Package sweep runs independent simulations over a range of sizes and
// compares each first peak with the closed-form optimum.
package sweep

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"github.com/san-kum/groversim/internal/analysis"
	"github.com/san-kum/groversim/internal/experiment"
	"github.com/san-kum/groversim/internal/grover"
	"github.com/san-kum/groversim/internal/metrics"
)

// Row is the outcome of one size. FirstPeakStep is the trace position of
// the first peak, -1 if none; it equals Optimal-1 when the simulation
// agrees with the closed form.
type Row struct {
	N              int
	Marked         int
	FirstPeakStep  int
	FirstPeakValue float64
	Optimal        int
	Period         float64
	Success        float64
	Peaks          int
}

// Sweep holds the sizes to run and how to place the marked index in each.
type Sweep struct {
	sizes      []int
	iterations int
	marked     func(n int) int
	workers    int
	log        zerolog.Logger
}

func New(sizes []int, iterations int) *Sweep {
	return &Sweep{
		sizes:      sizes,
		iterations: iterations,
		marked:     MarkedFraction(0.2),
		workers:    runtime.NumCPU(),
		log:        zerolog.Nop(),
	}
}

func (s *Sweep) WithMarked(fn func(n int) int) *Sweep {
	s.marked = fn
	return s
}

// WithWorkers bounds how many sizes run at once; n <= 0 keeps the default.
func (s *Sweep) WithWorkers(n int) *Sweep {
	if n > 0 {
		s.workers = n
	}
	return s
}

func (s *Sweep) WithLogger(log zerolog.Logger) *Sweep {
	s.log = log
	return s
}

// MarkedFraction places the marked index at floor(f*n), clamped into range.
func MarkedFraction(f float64) func(n int) int {
	return func(n int) int {
		m := int(f * float64(n))
		return max(0, min(m, n-1))
	}
}

// Run simulates every size in parallel, each goroutine owning its own
// simulator. Rows come back in the order of the sizes given.
func (s *Sweep) Run(ctx context.Context) ([]Row, error) {
	rows := make([]Row, len(s.sizes))
	errs := make([]error, len(s.sizes))
	sem := make(chan struct{}, s.workers)

	var wg sync.WaitGroup
	for i, n := range s.sizes {
		wg.Add(1)
		go func(idx, n int) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			rows[idx], errs[idx] = s.runOne(ctx, n)
		}(i, n)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("sweep n=%d: %w", s.sizes[i], err)
		}
	}
	return rows, nil
}

func (s *Sweep) runOne(ctx context.Context, n int) (Row, error) {
	cfg := experiment.Config{N: n, Iterations: s.iterations}
	if n > 0 {
		cfg.Marked = s.marked(n)
	}
	exp := experiment.New(cfg)
	if err := exp.Setup(metrics.Defaults()); err != nil {
		return Row{}, err
	}
	result, err := exp.Run(ctx)
	if err != nil {
		return Row{}, err
	}

	row := Row{
		N:             n,
		Marked:        cfg.Marked,
		FirstPeakStep: -1,
		Optimal:       analysis.OptimalIterations(n),
		Period:        analysis.Period(n),
		Success:       result.Metrics["success_probability"],
		Peaks:         len(result.Peaks),
	}
	if p, ok := grover.FirstPeak(result.Amplitudes); ok {
		row.FirstPeakStep = p.Step
		row.FirstPeakValue = p.Value
	}

	s.log.Debug().
		Int("n", n).
		Int("marked", row.Marked).
		Int("first_peak_step", row.FirstPeakStep).
		Float64("first_peak_value", row.FirstPeakValue).
		Int("optimal", row.Optimal).
		Msg("sweep size done")
	return row, nil
}

// Sizes returns count sizes starting at start, each factor times the last.
func Sizes(start, count int, factor float64) []int {
	out := make([]int, 0, count)
	n := float64(start)
	for i := 0; i < count; i++ {
		out = append(out, int(n))
		n *= factor
	}
	return out
}
