// Package show provides the core types shared by the kiosk display engine.
//
// The display cycles through an ordered list of [Phase] values. Each phase
// has a [PointField] (the sampled shape of its label or QR code) and, for
// skill phases, a [Bucket] of teach/learn counts:
//
//   - [Phase]: one named stage of the cycle with a fixed duration
//   - [Point], [PointField]: morph endpoints in canvas pixel space
//   - [Bucket], [Buckets]: aggregated survey counts per phase key
//   - [Rect]: a region of the canvas
//   - [Canvas]: the drawing surface every frontend implements
//
// # Thread Safety
//
// Nothing in this package is synchronized. The session that owns these
// values is driven from a single frame loop.
package show
