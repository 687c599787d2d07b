package grover

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectPeaks(t *testing.T) {
	tests := []struct {
		name  string
		trace []float64
		want  []Peak
	}{
		{"empty", nil, []Peak{}},
		{"shorter than four", []float64{0, 1, 0}, []Peak{}},
		{"four samples", []float64{0, 0, 1, 0}, []Peak{}},
		{
			"warm-up excludes early maximum",
			[]float64{0, 1, 0, 0, 0, 0},
			[]Peak{},
		},
		{
			"maximum at step three",
			[]float64{0, 0, 0, 1, 0},
			[]Peak{{Index: 0, Step: 3, Value: 1}},
		},
		{
			"ties are not peaks",
			[]float64{0, 0, 0, 1, 1, 0, 0, 2, 2},
			[]Peak{},
		},
		{
			"tie on the left",
			[]float64{0, 0, 0, 1, 1, 0},
			[]Peak{},
		},
		{
			"small peaks are kept",
			[]float64{0, 0, 0, 0.1, 0.09, 0.5, 0.49, 0.6, 0},
			[]Peak{
				{Index: 0, Step: 3, Value: 0.1},
				{Index: 1, Step: 5, Value: 0.5},
				{Index: 2, Step: 7, Value: 0.6},
			},
		},
		{
			"negative peak",
			[]float64{0, 0, 0, -2, -1, -3},
			[]Peak{{Index: 0, Step: 4, Value: -1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CollectPeaks(tt.trace)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDetectPeaks_Restartable(t *testing.T) {
	s, err := New(100, 20)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 400; i++ {
		s.Step()
	}
	trace := s.Trace()

	seq := DetectPeaks(trace)
	first := slices.Collect(seq)
	second := slices.Collect(seq)

	if len(first) == 0 {
		t.Fatal("expected peaks in a 400 step trace")
	}
	assert.Equal(t, first, second)
	assert.Equal(t, first, CollectPeaks(trace))
}

func TestDetectPeaks_EarlyStop(t *testing.T) {
	trace := []float64{0, 0, 0, 1, 0, 1, 0, 1, 0}

	var got []Peak
	for p := range DetectPeaks(trace) {
		got = append(got, p)
		if len(got) == 2 {
			break
		}
	}
	assert.Len(t, got, 2)
	assert.Equal(t, 1, got[1].Index)
}

func TestDetectPeaks_SequentialNumbering(t *testing.T) {
	s, err := New(64, 5)
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 1000; i++ {
		s.Step()
	}

	prev := -1
	for p := range DetectPeaks(s.Trace()) {
		if p.Index != prev+1 {
			t.Fatalf("peak index %d follows %d", p.Index, prev)
		}
		if p.Step <= 3 {
			t.Fatalf("peak at step %d is inside warm-up", p.Step)
		}
		prev = p.Index
	}
}

func TestFirstPeak(t *testing.T) {
	_, ok := FirstPeak([]float64{1, 2, 3})
	assert.False(t, ok)

	p, ok := FirstPeak([]float64{0, 0, 0, 1, 0, 2, 0})
	assert.True(t, ok)
	assert.Equal(t, Peak{Index: 0, Step: 3, Value: 1}, p)
}

func TestPeakSeries(t *testing.T) {
	idx, vals := PeakSeries([]Peak{{Index: 0, Step: 6, Value: 0.9}, {Index: 1, Step: 37, Value: 0.95}})
	assert.Equal(t, []float64{0, 1}, idx)
	assert.Equal(t, []float64{0.9, 0.95}, vals)
}
