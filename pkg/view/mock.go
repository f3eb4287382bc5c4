package view

// Mock is an in-memory Surface for testing and headless development. It
// records every line and its data, and lets the caller drive the
// interaction callbacks directly.
type Mock struct {
	lines            []*MockLine
	viewportChanged  []func(low, high float64)
	interactionEnded []func()
}

// Ensure Mock implements Surface.
var _ Surface = (*Mock)(nil)

// MockLine holds the recorded state of one line on a Mock surface.
type MockLine struct {
	X, Y           []float64
	Visible        bool
	CreatedVisible bool // visibility at creation time
	Updates        int  // number of SetLineData calls
}

// NewMock creates an empty mock surface.
func NewMock() *Mock {
	return &Mock{}
}

// CreateLine records a new line and returns its handle.
func (m *Mock) CreateLine(xs, ys []float64, visible bool) LineHandle {
	line := &MockLine{Visible: visible, CreatedVisible: visible}
	line.X, line.Y = copyAxes(xs, ys)
	m.lines = append(m.lines, line)
	return LineHandle(len(m.lines) - 1)
}

// SetLineData replaces the recorded data of a line in place.
func (m *Mock) SetLineData(h LineHandle, xs, ys []float64) {
	line := m.lines[h]
	line.X, line.Y = copyAxes(xs, ys)
	line.Updates++
}

// SetLineVisible records the line's visibility.
func (m *Mock) SetLineVisible(h LineHandle, visible bool) {
	m.lines[h].Visible = visible
}

// OnViewportChanged registers a viewport-change callback.
func (m *Mock) OnViewportChanged(cb func(low, high float64)) {
	m.viewportChanged = append(m.viewportChanged, cb)
}

// OnInteractionEnd registers an interaction-end callback.
func (m *Mock) OnInteractionEnd(cb func()) {
	m.interactionEnded = append(m.interactionEnded, cb)
}

// ChangeViewport simulates an interactive range mutation, notifying all
// registered viewport-change callbacks.
func (m *Mock) ChangeViewport(low, high float64) {
	for _, cb := range m.viewportChanged {
		cb(low, high)
	}
}

// EndInteraction simulates the end of an interaction (e.g. mouse
// release), notifying all registered interaction-end callbacks.
func (m *Mock) EndInteraction() {
	for _, cb := range m.interactionEnded {
		cb()
	}
}

// Line returns the recorded state for a handle.
func (m *Mock) Line(h LineHandle) *MockLine {
	return m.lines[h]
}

// copyAxes snapshots both axes; callers may reuse their buffers between
// updates, as a real canvas would copy into its own geometry.
func copyAxes(xs, ys []float64) ([]float64, []float64) {
	x := make([]float64, len(xs))
	copy(x, xs)
	y := make([]float64, len(ys))
	copy(y, ys)
	return x, y
}
