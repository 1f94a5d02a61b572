// Package viz draws a running tank in the terminal.
//
// The package implements a TUI using the Bubble Tea framework:
//
//   - [Model]: live view of one world with a stats sidebar
//   - [Canvas]: half-block pixel canvas, two colored pixels per cell
//   - [RunInteractive]: preset picker and config editor in front of the live view
//
// # Key Bindings
//
//	Space - Pause/Resume
//	.     - Step once while paused
//	R     - Reseed with the next seed
//	T     - Cycle sidebar themes
//	?     - Show help overlay
//	Q     - Quit
package viz
