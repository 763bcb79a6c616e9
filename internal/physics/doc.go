// Package physics animates the survey bubbles.
//
// Each side (teach, learn) owns a rectangular region. Bubbles are placed
// without initial overlap where the region has room, drift at constant
// velocity, bounce elastically off the region walls and resolve same-side
// contacts softly:
//
//   - [Bubbles.Render]: builds a phase's bubble set from its bucket
//   - [Bubbles.Step]: integrates one frame
//   - [Bubbles.FadeOut]: fades every bubble and clears them after a delay
//
// Positions are the top-left corner of the bubble's box in region-local
// pixels; velocities are in pixels per millisecond.
//
// # Collisions
//
// Overlapping same-side pairs are pushed apart by half the overlap each and
// both lose a fixed fraction of their speed, so crowded regions settle
// instead of exchanging momentum forever. Bubbles on different sides never
// interact.
package physics
