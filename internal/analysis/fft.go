package analysis

import (
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/floats"
)

func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum zero-pads data to the next power of two and returns the
// magnitudes of the non-negative frequency bins.
func PowerSpectrum(data []float64) []float64 {
	padded := make([]float64, nextPow2(len(data)))
	copy(padded, data)

	fft := FFT(padded)
	ps := make([]float64, len(fft)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

// DominantPeriod estimates the period, in samples, of the strongest
// non-constant component of data. It returns 0 for traces too short to
// carry a frequency.
func DominantPeriod(data []float64) float64 {
	if len(data) < 4 {
		return 0
	}
	ps := PowerSpectrum(data)
	if len(ps) < 2 {
		return 0
	}
	bin := floats.MaxIdx(ps[1:]) + 1
	return float64(2*len(ps)) / float64(bin)
}

func nextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}
