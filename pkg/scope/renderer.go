package scope

import (
	"image/color"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"github.com/chewxy/math32"
)

// scopeRenderer renders the scope widget.
type scopeRenderer struct {
	scope *Widget

	// Background
	background *canvas.Rectangle

	// Objects list for Fyne
	objects []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

var (
	backgroundColor = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	gridColor       = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	labelColor      = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	traceColor      = color.RGBA{R: 255, G: 165, B: 0, A: 255} // Orange
)

func newRenderer(w *Widget) *scopeRenderer {
	background := canvas.NewRectangle(backgroundColor)
	return &scopeRenderer{
		scope:      w,
		background: background,
		objects:    []fyne.CanvasObject{background},
		lastSize:   fyne.Size{Width: 0, Height: 0},
	}
}

// MinSize returns the minimum size of the widget.
func (r *scopeRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

// Layout arranges the widget components.
func (r *scopeRenderer) Layout(size fyne.Size) {
	// Background fills entire widget
	r.background.Resize(size)

	if r.lastSize.Width != size.Width || r.lastSize.Height != size.Height {
		r.lastSize = size
		// Size changed, redraw with new dimensions
		r.scope.BaseWidget.Refresh()
	}
}

// Refresh updates the widget display.
func (r *scopeRenderer) Refresh() {
	r.scope.mu.RLock()
	lines := make([]line, len(r.scope.lines))
	for i, l := range r.scope.lines {
		lines[i] = *l
	}
	xMin := r.scope.viewLow
	xMax := r.scope.viewHigh
	yMin := r.scope.yMin
	yMax := r.scope.yMax
	r.scope.mu.RUnlock()

	size := r.scope.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}
	if xMax <= xMin || yMax <= yMin {
		return
	}

	// Clear old objects (but keep the background)
	r.objects = []fyne.CanvasObject{r.background}

	marginLeft := float32(60.0)
	marginRight := float32(20.0)
	marginTop := float32(20.0)
	marginBottom := float32(40.0)

	plotWidth := size.Width - marginLeft - marginRight
	plotHeight := size.Height - marginTop - marginBottom
	plotX := marginLeft
	plotY := marginTop

	r.drawGrid(plotX, plotY, plotWidth, plotHeight, xMin, xMax, yMin, yMax)

	for i := range lines {
		if lines[i].visible && len(lines[i].x) > 1 {
			r.drawLine(plotX, plotY, plotWidth, plotHeight, &lines[i], xMin, xMax, yMin, yMax)
		}
	}
}

// drawGrid draws the oscilloscope-style grid and axis labels.
func (r *scopeRenderer) drawGrid(plotX, plotY, plotWidth, plotHeight float32, xMin, xMax, yMin, yMax float64) {
	// Horizontal grid lines (values)
	numHLines := 8
	for i := 0; i <= numHLines; i++ {
		y := plotY + float32(i)*plotHeight/float32(numHLines)
		gl := canvas.NewLine(gridColor)
		gl.Position1 = fyne.NewPos(plotX, y)
		gl.Position2 = fyne.NewPos(plotX+plotWidth, y)
		gl.StrokeWidth = 1
		r.objects = append(r.objects, gl)

		value := yMax - float64(i)*(yMax-yMin)/float64(numHLines)
		text := canvas.NewText(formatValue(value), labelColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignTrailing
		text.Move(fyne.NewPos(plotX-5, y-6))
		r.objects = append(r.objects, text)
	}

	// Vertical grid lines (time)
	numVLines := 10
	for i := 0; i <= numVLines; i++ {
		x := plotX + float32(i)*plotWidth/float32(numVLines)
		gl := canvas.NewLine(gridColor)
		gl.Position1 = fyne.NewPos(x, plotY)
		gl.Position2 = fyne.NewPos(x, plotY+plotHeight)
		gl.StrokeWidth = 1
		r.objects = append(r.objects, gl)

		t := xMin + float64(i)*(xMax-xMin)/float64(numVLines)
		text := canvas.NewText(formatValue(t)+"s", labelColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignCenter
		// Keep edge labels inside the plot area
		lx := math32.Min(math32.Max(x-20, plotX-marginSlack), plotX+plotWidth-marginSlack)
		text.Move(fyne.NewPos(lx, plotY+plotHeight+5))
		r.objects = append(r.objects, text)
	}
}

const marginSlack = float32(10.0)

// drawLine draws one trace as connected line segments, clipped to the
// visible time range.
func (r *scopeRenderer) drawLine(plotX, plotY, plotWidth, plotHeight float32, l *line, xMin, xMax, yMin, yMax float64) {
	points := make([]fyne.Position, 0, len(l.x))
	for i := range l.x {
		if l.x[i] < xMin || l.x[i] > xMax {
			continue
		}
		px := plotX + float32((l.x[i]-xMin)/(xMax-xMin))*plotWidth
		py := plotY + plotHeight - float32((l.y[i]-yMin)/(yMax-yMin))*plotHeight
		py = math32.Min(math32.Max(py, plotY), plotY+plotHeight)
		points = append(points, fyne.NewPos(px, py))
	}

	for i := 0; i < len(points)-1; i++ {
		seg := canvas.NewLine(traceColor)
		seg.Position1 = points[i]
		seg.Position2 = points[i+1]
		seg.StrokeWidth = 1.5
		r.objects = append(r.objects, seg)
	}
}

// Objects returns all canvas objects for rendering.
func (r *scopeRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *scopeRenderer) Destroy() {
	// Cleanup handled by Fyne
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', 4, 64)
}
