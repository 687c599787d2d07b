// Package analysis compares simulated amplitude traces with the closed-form
// behaviour of Grover iteration.
//
//   - [Angle], [TheoreticalAmplitude], [OptimalIterations], [Period]: the
//     rotation picture, where each step turns the state by 2*theta with
//     sin(theta) = 1/sqrt(N)
//   - [PowerSpectrum], [DominantPeriod]: frequency content of a trace
//   - [PhasePortrait]: observer recording the state in the two-dimensional
//     plane spanned by the marked and unmarked directions
//
// # Example
//
//	k := analysis.OptimalIterations(100) // 7
//	p := analysis.DominantPeriod(res.Amplitudes)
package analysis
