package panel

import (
	"fmt"
	"image/color"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"

	"github.com/itohio/goohm/pkg/history"
	"github.com/itohio/goohm/pkg/report"
)

// trendRenderer renders the trend widget.
type trendRenderer struct {
	trend *Trend

	bg      *canvas.Rectangle
	objects []fyne.CanvasObject

	// Track last size to detect changes
	lastSize fyne.Size
}

// plotArea is the rectangle inside the axis margins.
type plotArea struct {
	x, y, w, h float32
	yMin, yMax float64
	xMin, xMax time.Time
}

func (a plotArea) pos(at time.Time, v float64) fyne.Position {
	span := a.xMax.Sub(a.xMin).Seconds()
	fx := float32(0)
	if span > 0 {
		fx = float32(at.Sub(a.xMin).Seconds() / span)
	}
	fy := float32((v - a.yMin) / (a.yMax - a.yMin))
	return fyne.NewPos(a.x+fx*a.w, a.y+a.h-fy*a.h)
}

// MinSize returns the minimum size of the widget.
func (r *trendRenderer) MinSize() fyne.Size {
	return fyne.NewSize(400, 200)
}

// Layout arranges the widget components.
func (r *trendRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)

	if r.lastSize != size {
		r.lastSize = size
		r.trend.BaseWidget.Refresh()
	}
}

// Refresh redraws the plot.
func (r *trendRenderer) Refresh() {
	r.trend.mu.RLock()
	points := r.trend.points
	area := plotArea{
		yMin: r.trend.yMin,
		yMax: r.trend.yMax,
		xMin: r.trend.xMin,
		xMax: r.trend.xMax,
	}
	r.trend.mu.RUnlock()

	size := r.trend.Size()
	if size.Width == 0 || size.Height == 0 {
		return
	}

	r.objects = []fyne.CanvasObject{r.bg}

	// Margins
	const marginLeft, marginRight, marginTop, marginBottom = 70, 20, 20, 30
	area.x = marginLeft
	area.y = marginTop
	area.w = size.Width - marginLeft - marginRight
	area.h = size.Height - marginTop - marginBottom

	r.drawGrid(area)
	r.drawNominal(area, points)
	r.drawMeasured(area, points)
	r.drawOpen(area, points)
}

// drawGrid draws the horizontal resistance and vertical time grid.
func (r *trendRenderer) drawGrid(a plotArea) {
	const numHLines, numVLines = 6, 10

	for i := range numHLines + 1 {
		y := a.y + float32(i)*a.h/numHLines
		r.line(fyne.NewPos(a.x, y), fyne.NewPos(a.x+a.w, y), gridColor, 1)

		value := a.yMax - float64(i)*(a.yMax-a.yMin)/numHLines
		text := canvas.NewText(report.Ohm(float32(value)), axisColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignTrailing
		text.Move(fyne.NewPos(a.x-5, y-6))
		r.objects = append(r.objects, text)
	}

	span := a.xMax.Sub(a.xMin)
	for i := range numVLines + 1 {
		x := a.x + float32(i)*a.w/numVLines
		r.line(fyne.NewPos(x, a.y), fyne.NewPos(x, a.y+a.h), gridColor, 1)

		offset := span * time.Duration(i) / numVLines
		text := canvas.NewText(fmt.Sprintf("%.0fs", offset.Seconds()), axisColor)
		text.TextSize = 10
		text.Alignment = fyne.TextAlignCenter
		text.Move(fyne.NewPos(x-20, a.y+a.h+5))
		r.objects = append(r.objects, text)
	}
}

// drawMeasured connects consecutive valid points.
func (r *trendRenderer) drawMeasured(a plotArea, points []history.Point) {
	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1], points[i]
		if prev.Open || curr.Open {
			continue
		}
		r.line(a.pos(prev.Time, prev.Resistance), a.pos(curr.Time, curr.Resistance), measuredColor, 1.5)
	}
}

// drawNominal draws the resolved value as a step line.
func (r *trendRenderer) drawNominal(a plotArea, points []history.Point) {
	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1], points[i]
		if prev.Open || curr.Open {
			continue
		}
		corner := a.pos(curr.Time, prev.Nominal)
		r.line(a.pos(prev.Time, prev.Nominal), corner, nominalColor, 2.5)
		r.line(corner, a.pos(curr.Time, curr.Nominal), nominalColor, 2.5)
	}
}

// drawOpen marks open circuit results with a full height line.
func (r *trendRenderer) drawOpen(a plotArea, points []history.Point) {
	for _, p := range points {
		if !p.Open {
			continue
		}
		x := a.pos(p.Time, a.yMin).X
		r.line(fyne.NewPos(x, a.y), fyne.NewPos(x, a.y+a.h), openColor, 1)
	}
}

func (r *trendRenderer) line(p1, p2 fyne.Position, c color.Color, width float32) {
	l := canvas.NewLine(c)
	l.Position1 = p1
	l.Position2 = p2
	l.StrokeWidth = width
	r.objects = append(r.objects, l)
}

// Objects returns all canvas objects for rendering.
func (r *trendRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

// Destroy cleans up resources.
func (r *trendRenderer) Destroy() {}
