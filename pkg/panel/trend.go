package panel

import (
	"image/color"
	"math"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/goohm/pkg/history"
	"github.com/itohio/goohm/pkg/ohmmeter"
)

// Trend is a Fyne widget that plots the measured resistance over time with the
// resolved standard value as a step line. Open circuit results are marked red.
type Trend struct {
	widget.BaseWidget

	window time.Duration

	// Data (protected by mu)
	mu     sync.RWMutex
	points []history.Point

	// Auto-scaling
	yMin, yMax float64
	xMin, xMax time.Time

	// Display settings
	maxDisplayPoints int
}

// NewTrend creates a trend widget showing at least window worth of time and
// at most maxPoints points.
func NewTrend(window time.Duration, maxPoints int) *Trend {
	t := &Trend{
		window:           window,
		points:           make([]history.Point, 0),
		maxDisplayPoints: maxPoints,
	}
	t.ExtendBaseWidget(t)
	t.updateAutoScale()
	return t
}

// UpdateData replaces the plotted results.
// This should be called from the history callback using fyne.Do().
func (t *Trend) UpdateData(results []ohmmeter.Result) {
	t.mu.Lock()
	t.points = history.Points(results, t.maxDisplayPoints)
	t.updateAutoScale()
	t.mu.Unlock()

	// Refresh the widget (must be outside lock to avoid potential deadlock)
	t.Refresh()
}

// updateAutoScale calculates the axis ranges from the current points.
func (t *Trend) updateAutoScale() {
	if len(t.points) == 0 {
		t.yMin = 0
		t.yMax = 1
		t.xMin = time.Now()
		t.xMax = t.xMin.Add(t.window)
		return
	}

	t.yMin = math.Inf(1)
	t.yMax = math.Inf(-1)
	for _, p := range t.points {
		if p.Open {
			continue
		}
		t.yMin = math.Min(t.yMin, math.Min(p.Resistance, p.Nominal))
		t.yMax = math.Max(t.yMax, math.Max(p.Resistance, p.Nominal))
	}
	if math.IsInf(t.yMin, 1) {
		t.yMin, t.yMax = 0, 1
	}

	// Add 10% margin
	span := t.yMax - t.yMin
	if span == 0 {
		span = math.Max(t.yMax*0.1, 1)
	}
	t.yMin -= span * 0.1
	t.yMax += span * 0.1

	t.xMin = t.points[0].Time
	t.xMax = t.points[len(t.points)-1].Time
	// Ensure minimum window
	if t.xMax.Sub(t.xMin) < t.window {
		t.xMax = t.xMin.Add(t.window)
	}
}

// CreateRenderer creates the widget renderer.
func (t *Trend) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(background)
	return &trendRenderer{
		trend:   t,
		bg:      bg,
		objects: []fyne.CanvasObject{bg},
	}
}

var (
	gridColor     = color.RGBA{R: 40, G: 40, B: 40, A: 255}
	axisColor     = color.RGBA{R: 150, G: 150, B: 150, A: 255}
	measuredColor = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	nominalColor  = color.RGBA{R: 100, G: 200, B: 255, A: 255}
	openColor     = color.RGBA{R: 220, G: 40, B: 40, A: 255}
)
