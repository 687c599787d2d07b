package analysis

import "math"

// Angle returns theta with sin(theta) = 1/sqrt(n), the half-angle each step
// rotates the state by.
func Angle(n int) float64 {
	if n <= 0 {
		return 0
	}
	return math.Asin(1 / math.Sqrt(float64(n)))
}

// TheoreticalAmplitude is the marked amplitude after k steps.
func TheoreticalAmplitude(n, k int) float64 {
	return math.Sin(float64(2*k+1) * Angle(n))
}

// TheoreticalTrace returns the marked amplitude after steps 1..iterations,
// aligned with a simulator trace.
func TheoreticalTrace(n, iterations int) []float64 {
	out := make([]float64, iterations)
	for i := range out {
		out[i] = TheoreticalAmplitude(n, i+1)
	}
	return out
}

// OptimalIterations is the step count whose amplitude is closest to 1.
func OptimalIterations(n int) int {
	theta := Angle(n)
	if theta == 0 {
		return 0
	}
	return int(math.Round(math.Pi/(4*theta) - 0.5))
}

// Period is the oscillation period of the marked amplitude in steps.
func Period(n int) float64 {
	theta := Angle(n)
	if theta == 0 {
		return 0
	}
	return math.Pi / theta
}

// MaxDeviation is the largest absolute difference between trace and the
// closed-form amplitudes.
func MaxDeviation(n int, trace []float64) float64 {
	worst := 0.0
	for i, v := range trace {
		worst = math.Max(worst, math.Abs(v-TheoreticalAmplitude(n, i+1)))
	}
	return worst
}
