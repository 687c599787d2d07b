package grover

import "iter"

// warmup is the last trace position whose window can never report a peak.
const warmup = 3

// DetectPeaks scans trace with a three-sample window and yields every strict
// local maximum. Position i reports a peak at i-1 when
// trace[i] < trace[i-1] > trace[i-2]; positions up to and including warmup
// are skipped. Peaks are numbered in detection order.
//
// The sequence is pure: ranging over it twice gives the same peaks.
func DetectPeaks(trace []float64) iter.Seq[Peak] {
	return func(yield func(Peak) bool) {
		count := 0
		for i := warmup + 1; i < len(trace); i++ {
			if trace[i] < trace[i-1] && trace[i-1] > trace[i-2] {
				if !yield(Peak{Index: count, Step: i - 1, Value: trace[i-1]}) {
					return
				}
				count++
			}
		}
	}
}

// CollectPeaks drains DetectPeaks into a slice.
func CollectPeaks(trace []float64) []Peak {
	peaks := make([]Peak, 0)
	for p := range DetectPeaks(trace) {
		peaks = append(peaks, p)
	}
	return peaks
}

// FirstPeak returns the earliest peak of trace, if any.
func FirstPeak(trace []float64) (Peak, bool) {
	for p := range DetectPeaks(trace) {
		return p, true
	}
	return Peak{}, false
}

// PeakSeries splits peaks into parallel index and value slices for plotting.
func PeakSeries(peaks []Peak) (idx, vals []float64) {
	idx = make([]float64, len(peaks))
	vals = make([]float64, len(peaks))
	for i, p := range peaks {
		idx[i] = float64(p.Index)
		vals[i] = p.Value
	}
	return idx, vals
}
