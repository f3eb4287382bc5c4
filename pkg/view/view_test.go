package view

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/creiffur/dataview/pkg/series"
)

// rampSeries builds a series of n uniformly spaced samples at 1 Hz with
// y[i] = i.
func rampSeries(t *testing.T, n int) *series.Series {
	t.Helper()
	values := make([]float64, n)
	for i := range values {
		values[i] = float64(i)
	}
	s, err := series.New(values)
	require.NoError(t, err)
	return s
}

func TestStride_AlwaysAtLeastOne(t *testing.T) {
	for _, pointCount := range []int{1, 2, 99, 100, 101, 9999, 10000, 10001, 1 << 20} {
		for _, budget := range []int{1, 10, 10000} {
			stride := Stride(pointCount, budget)
			assert.GreaterOrEqual(t, stride, 1)
			assert.LessOrEqual(t, float64(pointCount)/float64(stride), float64(budget))
		}
	}
}

func TestStride_UnderBudget(t *testing.T) {
	assert.Equal(t, 1, Stride(500, 10000))
	assert.Equal(t, 1, Stride(10000, 10000))
}

func TestStride_ExactDivision(t *testing.T) {
	assert.Equal(t, 100, Stride(1_000_000, 10000))
	assert.Equal(t, 10, Stride(100_000, 10000))
	assert.Equal(t, 11, Stride(100_001, 10000))
}

func TestInitialRender_UnderBudget(t *testing.T) {
	s := rampSeries(t, 100)
	surface := NewMock()
	d := New(s, surface)

	d.InitialRender()

	line := surface.Line(d.line)
	assert.Equal(t, 100, len(line.X))
	assert.True(t, line.Visible)
	assert.Equal(t, 0, line.Updates)
}

func TestInitialRender_OverBudget(t *testing.T) {
	s := rampSeries(t, 1_000_000)
	surface := NewMock()
	d := New(s, surface)

	d.InitialRender()

	// 1e6 samples at a budget of 1e4 means stride 100
	line := surface.Line(d.line)
	assert.Equal(t, 10000, len(line.X))
	assert.Equal(t, 0.0, line.X[0])
	assert.Equal(t, 999900.0, line.X[len(line.X)-1])
	assert.True(t, line.Visible)
}

func TestInitialRender_CreatedInvisibleThenShown(t *testing.T) {
	s := rampSeries(t, 10)
	surface := NewMock()
	d := New(s, surface)

	d.InitialRender()

	// The line is created invisible and shown only once its data is in
	// place, so the viewer never sees a half-configured line.
	line := surface.Line(d.line)
	assert.False(t, line.CreatedVisible)
	assert.True(t, line.Visible)
}

func TestViewportChanged_RecordsOnly(t *testing.T) {
	s := rampSeries(t, 1000)
	surface := NewMock()
	d := New(s, surface)
	d.InitialRender()

	// Transient notifications during a drag must not trigger recomputes
	surface.ChangeViewport(0, 100)
	surface.ChangeViewport(0, 90)
	surface.ChangeViewport(0, 80)

	assert.Equal(t, 0, surface.Line(d.line).Updates)
}

func TestInteractionEnd_RecomputesWindow(t *testing.T) {
	s := rampSeries(t, 1_000_000)
	surface := NewMock()
	d := New(s, surface)
	d.InitialRender()

	// Window holding 100,000 samples at a budget of 10,000: stride 10
	surface.ChangeViewport(0, 99999.5)
	surface.EndInteraction()

	line := surface.Line(d.line)
	assert.Equal(t, 1, line.Updates)
	assert.Equal(t, 10000, len(line.X))
	for i := range line.X {
		assert.GreaterOrEqual(t, line.X[i], 0.0)
		assert.LessOrEqual(t, line.X[i], 99999.5)
	}
}

func TestInteractionEnd_NarrowWindowUnstrided(t *testing.T) {
	s := rampSeries(t, 1_000_000)
	surface := NewMock()
	d := New(s, surface)
	d.InitialRender()

	// 5000 visible samples fit the budget: displayed unstrided
	surface.ChangeViewport(0, 4999.5)
	surface.EndInteraction()

	line := surface.Line(d.line)
	assert.Equal(t, 5000, len(line.X))
	assert.Equal(t, 0.0, line.X[0])
	assert.Equal(t, 4999.0, line.X[len(line.X)-1])
}

func TestInteractionEnd_ClampsNegativeLow(t *testing.T) {
	s := rampSeries(t, 1000)

	surfaceNeg := NewMock()
	dNeg := New(s, surfaceNeg)
	dNeg.InitialRender()
	surfaceNeg.ChangeViewport(-50, 100)
	surfaceNeg.EndInteraction()

	surfaceZero := NewMock()
	dZero := New(s, surfaceZero)
	dZero.InitialRender()
	surfaceZero.ChangeViewport(0, 100)
	surfaceZero.EndInteraction()

	negLine := surfaceNeg.Line(dNeg.line)
	zeroLine := surfaceZero.Line(dZero.line)
	assert.Equal(t, zeroLine.X, negLine.X)
	assert.Equal(t, zeroLine.Y, negLine.Y)
}

func TestInteractionEnd_Idempotent(t *testing.T) {
	s := rampSeries(t, 100_000)
	surface := NewMock()
	d := New(s, surface)
	d.InitialRender()

	surface.ChangeViewport(1000, 2000)
	surface.EndInteraction()

	line := surface.Line(d.line)
	firstX := append([]float64(nil), line.X...)
	firstY := append([]float64(nil), line.Y...)

	// A second interaction end without an intervening viewport change
	// must produce the identical payload.
	surface.EndInteraction()

	assert.Equal(t, 2, line.Updates)
	assert.Equal(t, firstX, line.X)
	assert.Equal(t, firstY, line.Y)
}

func TestInteractionEnd_WithoutViewportChange(t *testing.T) {
	s := rampSeries(t, 1000)
	surface := NewMock()
	d := New(s, surface)
	d.InitialRender()

	surface.EndInteraction()

	assert.Equal(t, 0, surface.Line(d.line).Updates)
}

func TestWithPointBudget(t *testing.T) {
	s := rampSeries(t, 1000)
	surface := NewMock()
	d := New(s, surface, WithPointBudget(100))

	d.InitialRender()

	// 1000 samples at a budget of 100: stride 10
	assert.Equal(t, 100, len(surface.Line(d.line).X))
}

func TestWithPointBudget_InvalidFallsBack(t *testing.T) {
	s := rampSeries(t, 10)
	surface := NewMock()
	d := New(s, surface, WithPointBudget(0))

	assert.Equal(t, DefaultPointBudget, d.budget)
}
