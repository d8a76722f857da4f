// Package viz provides the terminal host for the flake animation.
//
// The package implements an interactive TUI using the Bubble Tea framework:
//
//   - [Model]: bubbletea model that feeds ticks to an [anim.Controller]
//   - [Canvas]: Braille-based pixel canvas with per-cell colour
//   - [Surface]: adapts a Canvas to [flake.Surface], origin at the centre
//   - [Form]: the six named parameter inputs, read back on submit
//   - [ShareLink]: the location the submitted parameters are written to
//
// # Key Bindings
//
//	Tab    - Next form field
//	Up/Dn  - Step the selected field
//	D      - Toggle direction
//	Enter  - Submit the form
//	R      - Reload the form from the running parameters
//	T      - Cycle color themes
//	?      - Show help overlay
package viz
