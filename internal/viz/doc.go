// Package viz provides terminal-based playback of algorithm traces.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [NewInteractiveApp]: algorithm picker with preset and input editing
//   - [Model]: playback screen driven by a simulator's controller
//   - [Canvas]: Braille-based pixel canvas with a visual tag per cell
//   - [Frame]: one step rendered as bars, node lists, distance tables or a
//     matrix, colored by tag
//   - Theme selection with 6 built-in color schemes
//
// # Key Bindings
//
//	Space - Play/Pause
//	→ ←   - Step forward/backward (paused only)
//	g G   - Seek to first/last step
//	S     - Stop and rewind
//	E     - Edit the input; Enter regenerates the trace
//	+ -   - Change the autoplay interval
//	T     - Cycle color themes
//	?     - Show full help
package viz
