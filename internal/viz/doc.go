// Package viz animates a Grover run in the terminal.
//
// The live view uses the Bubble Tea framework: every tick calls
// [grover.Simulator.Step] once and redraws the whole amplitude vector as a
// Braille bar chart, next to a stats panel and a plot of the marked
// amplitude so far.
//
// # Key Bindings
//
//	Space - Pause/Resume
//	N     - Single step while paused
//	R     - Reset to the uniform vector
//	+/-   - Faster/slower
//	G     - Toggle GIF recording
//	Q     - Quit
//
// # Recording
//
// Recordings are written as grover.gif in the output directory when
// recording is toggled off or the viewer quits.
package viz
