package metrics

import (
	"context"
	"math"
	"testing"

	"github.com/san-kum/groversim/internal/grover"
)

func TestNormDrift(t *testing.T) {
	m := NewNormDrift()

	m.OnStep(0, 0, 0, grover.StateVector{0.6, 0.8})
	if m.Value() > 1e-12 {
		t.Errorf("expected zero drift for unit vector, got %g", m.Value())
	}

	m.OnStep(1, 0, 0, grover.StateVector{1, 1})
	if math.Abs(m.Value()-1) > 1e-12 {
		t.Errorf("expected drift 1, got %g", m.Value())
	}

	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero drift after reset")
	}
}

func TestPeakAmplitude(t *testing.T) {
	m := NewPeakAmplitude()
	for i, a := range []float64{0.2, -0.9, 0.5} {
		m.OnStep(i, a, 0, nil)
	}
	if m.Value() != 0.9 {
		t.Errorf("expected 0.9, got %f", m.Value())
	}
	m.Reset()
	if m.Value() != 0 {
		t.Error("expected zero after reset")
	}
}

func TestSuccessProbability(t *testing.T) {
	m := NewSuccessProbability()
	m.OnStep(0, 0.5, 0, nil)
	m.OnStep(1, -0.8, 0, nil)
	if math.Abs(m.Value()-0.64) > 1e-12 {
		t.Errorf("expected 0.64, got %f", m.Value())
	}
}

func TestFirstPeak(t *testing.T) {
	tests := []struct {
		name  string
		trace []float64
		want  float64
	}{
		{"no peak", []float64{1, 2, 3, 4, 5}, -1},
		{"inside warm-up", []float64{0, 1, 0, 0, 0}, -1},
		{"after warm-up", []float64{0, 0, 0, 1, 0, 2, 0}, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewFirstPeak()
			for i, a := range tt.trace {
				m.OnStep(i, a, 0, nil)
			}
			if m.Value() != tt.want {
				t.Errorf("got %v, want %v", m.Value(), tt.want)
			}
		})
	}
}

func TestDefaults_MatchDetectPeaks(t *testing.T) {
	s, err := grover.New(100, 20)
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range Defaults() {
		s.AddMetric(m)
	}

	res, err := s.Run(context.Background(), 300)
	if err != nil {
		t.Fatal(err)
	}

	first, ok := grover.FirstPeak(res.Amplitudes)
	if !ok {
		t.Fatal("expected a peak")
	}
	if got := res.Metrics["first_peak_step"]; got != float64(first.Step) {
		t.Errorf("first_peak_step = %v, want %d", got, first.Step)
	}
	if res.Metrics["norm_drift"] > 1e-9 {
		t.Errorf("norm drift too large: %g", res.Metrics["norm_drift"])
	}
	if res.Metrics["peak_amplitude"] < 0.99 {
		t.Errorf("peak amplitude = %f, want > 0.99", res.Metrics["peak_amplitude"])
	}
	last := res.Amplitudes[len(res.Amplitudes)-1]
	if math.Abs(res.Metrics["success_probability"]-last*last) > 1e-12 {
		t.Errorf("success probability mismatch")
	}
}
