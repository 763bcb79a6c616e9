// Package export renders display frames to files: SVG and PNG snapshots
// and GIF recordings. Frames are produced by stepping a scene with a fixed
// frame time, so output is reproducible for a given seed.
package export
