// Package viz runs the display in a terminal.
//
// The kiosk is a Bubble Tea program. Each frame the session draws onto a
// [Surface] backed by a braille [Canvas], and a stats panel shows the
// current phase, survey status and an asciigraph chart of the bubble
// field's kinetic energy.
//
// # Key Bindings
//
//	Q - Quit
//	T - Cycle panel themes
package viz
