package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"
	"github.com/san-kum/groversim/internal/grover"
)

const (
	metadataFile = "metadata.json"
	traceFile    = "trace.csv"
)

type Store struct {
	baseDir string
	log     zerolog.Logger
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir, log: zerolog.Nop()}
}

// WithLogger returns the store logging through log.
func (s *Store) WithLogger(log zerolog.Logger) *Store {
	s.log = log.With().Str("component", "storage").Logger()
	return s
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

type RunMetadata struct {
	ID             string             `json:"id"`
	Timestamp      time.Time          `json:"timestamp"`
	N              int                `json:"n"`
	Marked         int                `json:"marked"`
	Iterations     int                `json:"iterations"`
	Peaks          int                `json:"peaks"`
	FirstPeakStep  int                `json:"first_peak_step"`
	FirstPeakValue float64            `json:"first_peak_value"`
	Metrics        map[string]float64 `json:"metrics"`
}

func (s *Store) Save(result *grover.Result) (string, error) {
	now := time.Now()
	runID := fmt.Sprintf("grover_%d_%d", result.N, now.UnixNano())
	runDir := filepath.Join(s.baseDir, runID)

	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", err
	}

	meta := RunMetadata{
		ID:            runID,
		Timestamp:     now,
		N:             result.N,
		Marked:        result.Marked,
		Iterations:    result.StepsTaken,
		Peaks:         len(result.Peaks),
		FirstPeakStep: -1,
		Metrics:       result.Metrics,
	}
	if len(result.Peaks) > 0 {
		meta.FirstPeakStep = result.Peaks[0].Step
		meta.FirstPeakValue = result.Peaks[0].Value
	}

	if err := writeJSON(filepath.Join(runDir, metadataFile), meta); err != nil {
		return "", fmt.Errorf("write metadata: %w", err)
	}
	if err := writeTrace(filepath.Join(runDir, traceFile), result); err != nil {
		return "", fmt.Errorf("write trace: %w", err)
	}

	s.log.Debug().Str("run", runID).Int("steps", result.StepsTaken).Msg("run saved")
	return runID, nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeTrace(path string, result *grover.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"step", "amplitude", "mean"}); err != nil {
		return err
	}

	for i, amp := range result.Amplitudes {
		mean := 0.0
		if i < len(result.Means) {
			mean = result.Means[i]
		}
		row := []string{
			strconv.Itoa(i),
			strconv.FormatFloat(amp, 'g', -1, 64),
			strconv.FormatFloat(mean, 'g', -1, 64),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

func (s *Store) List() ([]RunMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []RunMetadata{}, nil
		}
		return nil, err
	}

	runs := make([]RunMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		meta, err := s.Load(entry.Name())
		if err != nil {
			s.log.Warn().Err(err).Str("dir", entry.Name()).Msg("skipping unreadable run")
			continue
		}
		runs = append(runs, *meta)
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })
	return runs, nil
}

func (s *Store) Load(runID string) (*RunMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, runID, metadataFile))
	if err != nil {
		return nil, err
	}

	var meta RunMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("decode %s metadata: %w", runID, err)
	}

	return &meta, nil
}

// LoadTrace reads back the amplitude and mean traces of a run.
func (s *Store) LoadTrace(runID string) (amplitudes, means []float64, err error) {
	file, err := os.Open(filepath.Join(s.baseDir, runID, traceFile))
	if err != nil {
		return nil, nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = 3

	records, err := r.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read %s trace: %w", runID, err)
	}

	if len(records) < 2 {
		return []float64{}, []float64{}, nil
	}

	amplitudes = make([]float64, 0, len(records)-1)
	means = make([]float64, 0, len(records)-1)
	for i, record := range records[1:] {
		amp, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("trace row %d: %w", i, err)
		}
		mean, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, nil, fmt.Errorf("trace row %d: %w", i, err)
		}
		amplitudes = append(amplitudes, amp)
		means = append(means, mean)
	}

	return amplitudes, means, nil
}

// LoadResult rebuilds a grover.Result from a stored run, re-detecting peaks
// from the trace.
func (s *Store) LoadResult(runID string) (*RunMetadata, *grover.Result, error) {
	meta, err := s.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	amps, means, err := s.LoadTrace(runID)
	if err != nil {
		return nil, nil, err
	}

	result := &grover.Result{
		N:          meta.N,
		Marked:     meta.Marked,
		Amplitudes: amps,
		Means:      means,
		Peaks:      grover.CollectPeaks(amps),
		Metrics:    meta.Metrics,
		StepsTaken: len(amps),
	}
	return meta, result, nil
}
