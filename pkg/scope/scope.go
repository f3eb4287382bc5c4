package scope

import (
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"

	"github.com/creiffur/dataview/pkg/config"
	"github.com/creiffur/dataview/pkg/view"
)

// Widget is a custom Fyne widget that displays time-series lines and
// turns mouse interaction into viewport notifications. It implements
// view.Surface: the downsampler creates its line here, the widget
// reports pan/zoom back through the registered callbacks.
type Widget struct {
	widget.BaseWidget

	cfg *config.Config

	// Data (protected by mu)
	mu    sync.RWMutex
	lines []*line

	// Visible time range and value auto-scaling
	viewLow, viewHigh float64
	yMin, yMax        float64

	// Interaction callbacks. Appended at construction time from the
	// event-loop thread; invoked from the same thread on every range
	// mutation.
	viewportChanged  []func(low, high float64)
	interactionEnded []func()
}

// line holds one displayed line's data.
type line struct {
	x, y    []float64
	visible bool
}

// Ensure Widget implements the rendering-surface contract and the Fyne
// interaction interfaces.
var (
	_ view.Surface    = (*Widget)(nil)
	_ fyne.Draggable  = (*Widget)(nil)
	_ fyne.Scrollable = (*Widget)(nil)
)

// New creates a new scope Widget instance.
func New(cfg *config.Config) *Widget {
	w := &Widget{
		cfg:  cfg,
		yMin: 0,
		yMax: 1,
	}
	w.ExtendBaseWidget(w)
	// Trigger initial refresh to display the empty scope
	w.Refresh()
	return w
}

// CreateLine adds a line to the display. The first line's extent becomes
// the initial visible range.
func (w *Widget) CreateLine(xs, ys []float64, visible bool) view.LineHandle {
	w.mu.Lock()

	l := &line{visible: visible}
	l.x, l.y = copyAxes(xs, ys)
	w.lines = append(w.lines, l)
	handle := view.LineHandle(len(w.lines) - 1)

	if len(w.lines) == 1 && len(l.x) > 0 {
		w.viewLow = l.x[0]
		w.viewHigh = l.x[len(l.x)-1]
	}
	w.updateAutoScale()

	w.mu.Unlock()

	w.Refresh()
	return handle
}

// SetLineData replaces a line's data in place; the handle, and with it
// the line's identity and styling, stay the same.
func (w *Widget) SetLineData(h view.LineHandle, xs, ys []float64) {
	w.mu.Lock()
	l := w.lines[h]
	l.x, l.y = copyAxes(xs, ys)
	w.updateAutoScale()
	w.mu.Unlock()

	w.Refresh()
}

// SetLineVisible shows or hides a line.
func (w *Widget) SetLineVisible(h view.LineHandle, visible bool) {
	w.mu.Lock()
	w.lines[h].visible = visible
	w.mu.Unlock()

	w.Refresh()
}

// OnViewportChanged registers a callback invoked after every visible
// range mutation.
func (w *Widget) OnViewportChanged(cb func(low, high float64)) {
	w.viewportChanged = append(w.viewportChanged, cb)
}

// OnInteractionEnd registers a callback invoked when an interaction
// completes.
func (w *Widget) OnInteractionEnd(cb func()) {
	w.interactionEnded = append(w.interactionEnded, cb)
}

// ViewRange returns the currently visible time range.
func (w *Widget) ViewRange() (low, high float64) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.viewLow, w.viewHigh
}

// SetViewRange programmatically mutates the visible range. Like any
// interactive mutation it fires the viewport-changed callbacks; callers
// that want an immediate redraw follow up with EndInteraction.
func (w *Widget) SetViewRange(low, high float64) {
	if high <= low {
		return
	}
	w.mu.Lock()
	w.viewLow = low
	w.viewHigh = high
	w.mu.Unlock()

	w.notifyViewportChanged(low, high)
	w.Refresh()
}

// EndInteraction fires the interaction-end callbacks.
func (w *Widget) EndInteraction() {
	for _, cb := range w.interactionEnded {
		cb()
	}
}

// Dragged pans the visible range horizontally by the drag delta. The
// range mutation is what notifies the viewport callbacks, not the drag
// itself.
func (w *Widget) Dragged(e *fyne.DragEvent) {
	size := w.Size()
	if size.Width <= 0 {
		return
	}

	w.mu.Lock()
	span := w.viewHigh - w.viewLow
	shift := -float64(e.Dragged.DX) / float64(size.Width) * span
	w.viewLow += shift
	w.viewHigh += shift
	low, high := w.viewLow, w.viewHigh
	w.mu.Unlock()

	w.notifyViewportChanged(low, high)
	w.Refresh()
}

// DragEnd completes a pan.
func (w *Widget) DragEnd() {
	w.EndInteraction()
}

// zoomStep is the zoom factor applied per scroll step.
const zoomStep = 1.25

// Scrolled zooms the visible range around its center. Every scroll step
// is a complete interaction: the range mutates, then the interaction
// ends, so the displayed data is recomputed immediately.
func (w *Widget) Scrolled(e *fyne.ScrollEvent) {
	if e.Scrolled.DY == 0 {
		return
	}

	factor := zoomStep
	if e.Scrolled.DY > 0 {
		factor = 1 / zoomStep
	}

	w.mu.Lock()
	center := (w.viewLow + w.viewHigh) / 2
	half := (w.viewHigh - w.viewLow) / 2 * factor
	w.viewLow = center - half
	w.viewHigh = center + half
	low, high := w.viewLow, w.viewHigh
	w.mu.Unlock()

	w.notifyViewportChanged(low, high)
	w.EndInteraction()
	w.Refresh()
}

func (w *Widget) notifyViewportChanged(low, high float64) {
	for _, cb := range w.viewportChanged {
		cb(low, high)
	}
}

// updateAutoScale calculates the Y-axis range from current data.
// Caller must hold mu.
func (w *Widget) updateAutoScale() {
	first := true
	for _, l := range w.lines {
		for _, v := range l.y {
			if first {
				w.yMin, w.yMax = v, v
				first = false
				continue
			}
			if v < w.yMin {
				w.yMin = v
			}
			if v > w.yMax {
				w.yMax = v
			}
		}
	}
	if first {
		w.yMin, w.yMax = 0, 1
		return
	}

	// Add 10% margin
	span := w.yMax - w.yMin
	if span == 0 {
		span = 1.0
	}
	margin := span * 0.1
	w.yMin -= margin
	w.yMax += margin
}

// CreateRenderer creates the widget renderer.
func (w *Widget) CreateRenderer() fyne.WidgetRenderer {
	return newRenderer(w)
}

func copyAxes(xs, ys []float64) ([]float64, []float64) {
	x := make([]float64, len(xs))
	copy(x, xs)
	y := make([]float64, len(ys))
	copy(y, ys)
	return x, y
}
