package grover

import (
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// StateVector holds one real amplitude per basis state.
type StateVector []float64

// Uniform returns a vector of length n with every entry set to 1/sqrt(n).
func Uniform(n int) StateVector {
	v := make(StateVector, n)
	floats.AddConst(1/math.Sqrt(float64(n)), v)
	return v
}

func (v StateVector) Clone() StateVector {
	c := make(StateVector, len(v))
	copy(c, v)
	return c
}

// Mean is the arithmetic mean of all entries.
func (v StateVector) Mean() float64 {
	if len(v) == 0 {
		return 0
	}
	return stat.Mean(v, nil)
}

// NormSquared is sum(v^2), the total probability of the vector.
func (v StateVector) NormSquared() float64 {
	return floats.Dot(v, v)
}

func (v StateVector) IsValid() bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}

// Trace is the append-only record of the marked amplitude, one entry per step.
type Trace []float64

// Peak is a strict local maximum of a trace.
type Peak struct {
	// Index numbers peaks in detection order starting at 0.
	Index int
	// Step is the trace position of the maximum.
	Step  int
	Value float64
}

// Observer is notified after every step with the updated vector.
type Observer interface {
	OnStep(step int, amplitude, mean float64, v StateVector)
}

// Metric accumulates a single summary value over a run.
type Metric interface {
	Observer
	Name() string
	Value() float64
	Reset()
}

type Result struct {
	N          int
	Marked     int
	Amplitudes Trace
	Means      []float64
	Peaks      []Peak
	Metrics    map[string]float64
	StepsTaken int
}
