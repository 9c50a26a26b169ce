// Package panel provides the Fyne widgets that mirror the instrument: the LED
// matrix, the OLED text and a resistance trend.
package panel

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/goohm/pkg/matrix"
)

// ledGain scales the dim LED drive values up to screen brightness.
const ledGain = 5

var (
	background = color.RGBA{R: 20, G: 20, B: 20, A: 255}
	ledOff     = color.RGBA{R: 45, G: 45, B: 45, A: 255}
)

// Matrix draws the LED matrix. It implements matrix.Sink, so the meter can
// flush to it exactly like it does to the strip on the board. Pixels are
// addressed by chain index and placed through the serpentine mapping.
// Columns are drawn mirrored, so the bands read left to right.
type Matrix struct {
	widget.BaseWidget

	layout matrix.Layout

	mu      sync.RWMutex
	pending matrix.Buffer
	shown   matrix.Buffer

	schedule func(func())
}

// Ensure Matrix implements matrix.Sink.
var _ matrix.Sink = (*Matrix)(nil)

// NewMatrix creates a matrix widget for layout.
func NewMatrix(layout matrix.Layout) *Matrix {
	m := &Matrix{
		layout:   layout,
		pending:  layout.NewBuffer(),
		shown:    layout.NewBuffer(),
		schedule: fyne.Do,
	}
	m.ExtendBaseWidget(m)
	return m
}

// SetPixel stores a chain pixel until Show.
func (m *Matrix) SetPixel(index int, c color.RGBA) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if index >= 0 && index < len(m.pending) {
		m.pending[index] = c
	}
}

// Show publishes the pending pixels and schedules a redraw on the UI thread.
func (m *Matrix) Show() error {
	m.mu.Lock()
	copy(m.shown, m.pending)
	m.mu.Unlock()

	m.schedule(m.Refresh)
	return nil
}

// Pixels returns a copy of the shown chain buffer.
func (m *Matrix) Pixels() matrix.Buffer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.shown.Clone()
}

// cell returns the grid position of a chain index.
func (m *Matrix) cell(index int) (x, y int) {
	row, col := matrix.Serpentine(index, m.layout.Width)
	return m.layout.Width - 1 - col, row
}

// displayColor maps a drive value to a screen color.
func displayColor(c color.RGBA) color.RGBA {
	if c.R == 0 && c.G == 0 && c.B == 0 {
		return ledOff
	}
	scale := func(v uint8) uint8 {
		s := int(v) * ledGain
		if s > 255 {
			return 255
		}
		return uint8(s)
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: 255}
}

// CreateRenderer creates the widget renderer.
func (m *Matrix) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(background)
	leds := make([]*canvas.Circle, m.layout.Len())
	objects := []fyne.CanvasObject{bg}
	for i := range leds {
		leds[i] = canvas.NewCircle(ledOff)
		objects = append(objects, leds[i])
	}
	return &matrixRenderer{
		matrix:  m,
		bg:      bg,
		leds:    leds,
		objects: objects,
	}
}

type matrixRenderer struct {
	matrix  *Matrix
	bg      *canvas.Rectangle
	leds    []*canvas.Circle
	objects []fyne.CanvasObject
}

func (r *matrixRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.matrix.layout.Width)*24, float32(r.matrix.layout.Height)*24)
}

func (r *matrixRenderer) Layout(size fyne.Size) {
	r.bg.Resize(size)

	cols := float32(r.matrix.layout.Width)
	rows := float32(r.matrix.layout.Height)
	pitch := min(size.Width/cols, size.Height/rows)
	diameter := pitch * 0.7
	offsetX := (size.Width - pitch*cols) / 2
	offsetY := (size.Height - pitch*rows) / 2

	for i, led := range r.leds {
		x, y := r.matrix.cell(i)
		led.Resize(fyne.NewSize(diameter, diameter))
		led.Move(fyne.NewPos(
			offsetX+float32(x)*pitch+(pitch-diameter)/2,
			offsetY+float32(y)*pitch+(pitch-diameter)/2,
		))
	}
}

func (r *matrixRenderer) Refresh() {
	pixels := r.matrix.Pixels()
	for i, led := range r.leds {
		if i < len(pixels) {
			led.FillColor = displayColor(pixels[i])
		}
		led.Refresh()
	}
	r.bg.Refresh()
}

func (r *matrixRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *matrixRenderer) Destroy() {}
