// Package viz provides the terminal visualizer for sorting runs.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: bar view of the displayed array with run statistics
//   - [RenderBars]: state-colored bar chart, also used by headless output
//   - Theme selection with 3 built-in color schemes
//
// # Key Bindings
//
//	Space - Sort / stop
//	R     - New random array
//	←/→   - Slower / faster
//	↑/↓   - More / fewer bars
//	Tab   - Next algorithm
//	[ ]   - Step backward / forward while stopped
//	T     - Cycle color themes
//	?     - Show help
package viz
