// Package pointfield turns phase labels and QR images into point fields.
//
// Text fields are built by rasterizing the label with a TrueType face and
// rejection sampling random positions inside a horizontal band until enough
// land on pure ink. QR fields walk a fixed grid over the scaled image and
// keep the dark cells.
//
// A [Cache] holds one field per phase for the lifetime of a session.
package pointfield
