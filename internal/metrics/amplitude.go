package metrics

import (
	"math"

	"github.com/san-kum/groversim/internal/grover"
)

// PeakAmplitude is the largest |amplitude| seen at the marked index.
type PeakAmplitude struct {
	name string
	max  float64
}

func NewPeakAmplitude() *PeakAmplitude {
	return &PeakAmplitude{name: "peak_amplitude"}
}

func (p *PeakAmplitude) Name() string { return p.name }

func (p *PeakAmplitude) OnStep(step int, amplitude, mean float64, v grover.StateVector) {
	p.max = math.Max(p.max, math.Abs(amplitude))
}

func (p *PeakAmplitude) Value() float64 { return p.max }
func (p *PeakAmplitude) Reset()         { p.max = 0 }

// SuccessProbability is the squared marked amplitude after the last step,
// the chance a measurement would return the marked state.
type SuccessProbability struct {
	name string
	last float64
}

func NewSuccessProbability() *SuccessProbability {
	return &SuccessProbability{name: "success_probability"}
}

func (s *SuccessProbability) Name() string { return s.name }

func (s *SuccessProbability) OnStep(step int, amplitude, mean float64, v grover.StateVector) {
	s.last = amplitude * amplitude
}

func (s *SuccessProbability) Value() float64 { return s.last }
func (s *SuccessProbability) Reset()         { s.last = 0 }

// FirstPeak records the step of the first local maximum using the same
// window as grover.DetectPeaks, or -1 when none has been seen.
type FirstPeak struct {
	name   string
	window [3]float64
	step   int
}

func NewFirstPeak() *FirstPeak {
	return &FirstPeak{name: "first_peak_step", step: -1}
}

func (f *FirstPeak) Name() string { return f.name }

func (f *FirstPeak) OnStep(step int, amplitude, mean float64, v grover.StateVector) {
	f.window[0], f.window[1], f.window[2] = f.window[1], f.window[2], amplitude
	if f.step >= 0 || step <= 3 {
		return
	}
	if f.window[2] < f.window[1] && f.window[1] > f.window[0] {
		f.step = step - 1
	}
}

func (f *FirstPeak) Value() float64 { return float64(f.step) }

func (f *FirstPeak) Reset() {
	f.window = [3]float64{}
	f.step = -1
}

// Defaults returns the metrics every run records.
func Defaults() []grover.Metric {
	return []grover.Metric{
		NewNormDrift(),
		NewPeakAmplitude(),
		NewSuccessProbability(),
		NewFirstPeak(),
	}
}
