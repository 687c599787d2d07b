package grover

import (
	"context"
	"fmt"
)

// Simulator owns a state vector and the trace of its marked amplitude.
type Simulator struct {
	n         int
	marked    int
	vec       StateVector
	trace     Trace
	metrics   []Metric
	observers []Observer
}

// New returns a simulator over n amplitudes, all 1/sqrt(n), with the oracle
// marking index marked.
func New(n, marked int) (*Simulator, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSize, n)
	}
	if marked < 0 || marked >= n {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrMarkedOutOfRange, marked, n)
	}
	return &Simulator{
		n:         n,
		marked:    marked,
		vec:       Uniform(n),
		trace:     make(Trace, 0),
		metrics:   make([]Metric, 0),
		observers: make([]Observer, 0),
	}, nil
}

func (s *Simulator) AddMetric(m Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o Observer) { s.observers = append(s.observers, o) }

func (s *Simulator) Size() int   { return s.n }
func (s *Simulator) Marked() int { return s.marked }
func (s *Simulator) Steps() int  { return len(s.trace) }

// Vector returns a copy of the current amplitudes.
func (s *Simulator) Vector() StateVector { return s.vec.Clone() }

// Trace returns a copy of the marked amplitudes recorded so far.
func (s *Simulator) Trace() Trace {
	c := make(Trace, len(s.trace))
	copy(c, s.trace)
	return c
}

// Amplitude is the current value at the marked index.
func (s *Simulator) Amplitude() float64 { return s.vec[s.marked] }

func (s *Simulator) Mean() float64        { return s.vec.Mean() }
func (s *Simulator) NormSquared() float64 { return s.vec.NormSquared() }

// Step flips the marked amplitude, inverts every entry about the mean and
// records the new marked amplitude. It returns that amplitude and the mean
// used for the inversion.
func (s *Simulator) Step() (amplitude, mean float64) {
	s.vec[s.marked] = -s.vec[s.marked]
	mean = s.vec.Mean()
	for i, v := range s.vec {
		s.vec[i] = 2*mean - v
	}
	amplitude = s.vec[s.marked]
	s.trace = append(s.trace, amplitude)

	step := len(s.trace) - 1
	for _, m := range s.metrics {
		m.OnStep(step, amplitude, mean, s.vec)
	}
	for _, o := range s.observers {
		o.OnStep(step, amplitude, mean, s.vec)
	}
	return amplitude, mean
}

// Reset restores the uniform vector and clears the trace and metrics.
func (s *Simulator) Reset() {
	s.vec = Uniform(s.n)
	s.trace = s.trace[:0]
	for _, m := range s.metrics {
		m.Reset()
	}
}

// Run advances the simulator by iterations steps and collects the traces,
// the detected peaks and the metric values.
func (s *Simulator) Run(ctx context.Context, iterations int) (*Result, error) {
	if iterations < 0 {
		return nil, fmt.Errorf("%w: got %d", ErrNegativeIterations, iterations)
	}

	result := &Result{
		N:          s.n,
		Marked:     s.marked,
		Amplitudes: make(Trace, 0, iterations),
		Means:      make([]float64, 0, iterations),
		Metrics:    make(map[string]float64),
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	for i := 0; i < iterations; i++ {
		select {
		case <-ctx.Done():
			s.finish(result)
			return result, ctx.Err()
		default:
		}

		amp, mean := s.Step()
		result.Amplitudes = append(result.Amplitudes, amp)
		result.Means = append(result.Means, mean)
		result.StepsTaken++
	}

	s.finish(result)
	return result, nil
}

func (s *Simulator) finish(result *Result) {
	result.Peaks = CollectPeaks(result.Amplitudes)
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}
}
