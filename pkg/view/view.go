// Package view translates a visible time window into a bounded-size
// sample set for rendering. On every completed pan or zoom it derives a
// decimation stride from the visible range, slices the series
// accordingly and pushes the reduced data to the rendering surface, so
// the screen never receives more points than the configured budget
// regardless of zoom level.
package view

import (
	"github.com/creiffur/dataview/pkg/series"
)

// DefaultPointBudget caps how many points are handed to the surface at
// once when no explicit budget is configured.
const DefaultPointBudget = 10000

// state tracks the downsampler's redraw cycle. All work is synchronous:
// Recomputing is entered on interaction end and left once the surface
// has the new data, with no deferred work in between.
type state int

const (
	stateIdle state = iota
	stateRecomputing
)

// Downsampler reacts to viewport changes on a Surface by re-slicing its
// Series so that the rendered point count stays within the budget.
// Viewport changes during an interaction only record the new range; the
// recompute runs once, at interaction end, because the change
// notification may fire many times transiently during a single drag.
//
// A Downsampler is single-threaded: all callbacks are expected to arrive
// on the surface's event loop, one at a time.
type Downsampler struct {
	series  *series.Series
	surface Surface
	budget  int

	line  LineHandle
	state state

	// Last recorded viewport, written by the viewport-changed callback
	// and read by the interaction-end callback.
	viewLow  float64
	viewHigh float64
	hasView  bool

	// Display buffers (reused between recomputes)
	dstX []float64
	dstY []float64
}

// Option configures a Downsampler.
type Option func(*Downsampler)

// WithPointBudget overrides the maximum number of points pushed to the
// surface at once. Values below 1 fall back to the default.
func WithPointBudget(n int) Option {
	return func(d *Downsampler) {
		if n >= 1 {
			d.budget = n
		}
	}
}

// New creates a Downsampler for the given series and registers its
// viewport callbacks with the surface. Call InitialRender once the
// surface is ready to display data.
func New(s *series.Series, surface Surface, opts ...Option) *Downsampler {
	d := &Downsampler{
		series:  s,
		surface: surface,
		budget:  DefaultPointBudget,
		state:   stateIdle,
	}
	for _, opt := range opts {
		opt(d)
	}

	surface.OnViewportChanged(d.viewportChanged)
	surface.OnInteractionEnd(d.interactionEnd)

	return d
}

// InitialRender creates the line from the full series, strided down to
// the budget when necessary. The line is created invisible and made
// visible only once its data is in place, so the viewer never sees a
// partially configured line.
func (d *Downsampler) InitialRender() {
	stride := 1
	if n := d.series.Len(); n > d.budget {
		stride = Stride(n, d.budget)
	}
	d.dstX, d.dstY = d.series.SliceFull(d.dstX, d.dstY, stride)

	d.line = d.surface.CreateLine(d.dstX, d.dstY, false)
	d.surface.SetLineVisible(d.line, true)
}

// viewportChanged records the new visible range. No recompute happens
// here; the range is read back on interaction end.
func (d *Downsampler) viewportChanged(low, high float64) {
	d.viewLow = low
	d.viewHigh = high
	d.hasView = true
}

// interactionEnd recomputes the displayed data from the last recorded
// viewport and pushes it to the surface in place, preserving the line's
// identity and styling.
func (d *Downsampler) interactionEnd() {
	if !d.hasView || d.state != stateIdle {
		return
	}
	d.state = stateRecomputing
	defer func() { d.state = stateIdle }()

	low, high := d.viewLow, d.viewHigh
	if low < 0 {
		// Viewport dragged past the start of data.
		low = 0
	}

	stride := 1
	if visible := int((high - low) / d.series.Interval()); visible > d.budget {
		stride = Stride(visible, d.budget)
	}
	d.dstX, d.dstY = d.series.SliceWindow(d.dstX, d.dstY, low, high, stride)

	d.surface.SetLineData(d.line, d.dstX, d.dstY)
}

// Stride returns the decimation stride needed to fit pointCount samples
// into the budget: ceil(pointCount / budget), never less than 1.
func Stride(pointCount, budget int) int {
	if budget < 1 {
		budget = 1
	}
	stride := (pointCount + budget - 1) / budget
	if stride < 1 {
		stride = 1
	}
	return stride
}
