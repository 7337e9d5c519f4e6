// Package cluster owns cluster lifecycles and frame pacing.
//
// A [Pipeline] is one rendering context: a renderer, a clock, the sprite
// atlas and the reference to whichever cluster state currently owns the
// context. Any number of [Cluster] values share a pipeline; every entry
// point first makes its cluster current, then draws.
//
// # Pacing
//
// AnimateOneFrame measures the time since the cluster's previous frame. When
// a frame-progress cap is configured and the gap exceeds it, the excess is
// hidden from the clock so the animation resumes where it left off instead
// of jumping.
//
// # Thread Safety
//
// A pipeline serialises its entry points with a mutex. Hosts still drive a
// pipeline from the goroutine that owns the graphics context.
package cluster
