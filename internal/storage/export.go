package storage

import (
	"encoding/json"
	"io"

	"github.com/san-kum/groversim/internal/grover"
)

type ExportData struct {
	ID         string             `json:"id"`
	N          int                `json:"n"`
	Marked     int                `json:"marked"`
	Steps      int                `json:"steps"`
	Amplitudes []float64          `json:"amplitudes"`
	Means      []float64          `json:"means"`
	Peaks      []ExportPeak       `json:"peaks"`
	Metrics    map[string]float64 `json:"metrics"`
}

type ExportPeak struct {
	Index int     `json:"index"`
	Step  int     `json:"step"`
	Value float64 `json:"value"`
}

// ExportJSON writes a run's traces and peaks as indented JSON.
func ExportJSON(w io.Writer, id string, result *grover.Result) error {
	data := ExportData{
		ID:         id,
		N:          result.N,
		Marked:     result.Marked,
		Steps:      len(result.Amplitudes),
		Amplitudes: result.Amplitudes,
		Means:      result.Means,
		Peaks:      make([]ExportPeak, len(result.Peaks)),
		Metrics:    result.Metrics,
	}
	for i, p := range result.Peaks {
		data.Peaks[i] = ExportPeak{Index: p.Index, Step: p.Step, Value: p.Value}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}
