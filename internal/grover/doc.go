// Package grover models the amplitude evolution of Grover's search with
// plain real-valued vector arithmetic.
//
// The package defines the core types of a run:
//
//   - [StateVector]: the N amplitudes, one per basis state
//   - [Trace]: the marked amplitude recorded after every step
//   - [Peak]: a strict local maximum found in a trace
//   - [Simulator]: owns a vector and applies one update per [Simulator.Step]
//
// # Update rule
//
// Each step negates the marked entry (the oracle) and then replaces every
// entry v with 2*mean - v (inversion about the mean).
//
// # Example
//
//	s, _ := grover.New(100, 20)
//	res, _ := s.Run(ctx, 2500)
//	for p := range grover.DetectPeaks(res.Amplitudes) {
//	    fmt.Println(p.Index, p.Value)
//	}
//
// # Thread Safety
//
// Simulator instances are NOT thread-safe. Run independent instances per
// goroutine when sweeping parameters.
package grover
