package view

// LineHandle identifies a line created on a Surface. Handles are opaque
// to the downsampler; the surface that issued a handle is the only one
// that can interpret it.
type LineHandle int

// Surface is the rendering collaborator: the windowing/canvas/axes
// machinery that actually draws lines and dispatches interaction events.
// The downsampler registers its callbacks at construction and drives the
// line through the handle it was given; it never creates a second line
// for the same series.
//
// OnViewportChanged fires on every interactive viewport mutation (pan,
// zoom, programmatic range change), possibly several times during a
// single drag. OnInteractionEnd fires once the interaction completes
// (e.g. on mouse release).
type Surface interface {
	CreateLine(xs, ys []float64, visible bool) LineHandle
	SetLineData(h LineHandle, xs, ys []float64)
	SetLineVisible(h LineHandle, visible bool)
	OnViewportChanged(func(low, high float64))
	OnInteractionEnd(func())
}
