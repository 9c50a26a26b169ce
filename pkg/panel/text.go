package panel

import (
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/widget"

	"github.com/itohio/goohm/pkg/report"
)

var oledInk = color.RGBA{R: 120, G: 200, B: 255, A: 255}

// label is a string placed at OLED pixel coordinates.
type label struct {
	text string
	x, y int16
}

// Text mirrors the OLED. It implements report.Sink; strings drawn between
// Clear and Flush replace the previous frame.
type Text struct {
	widget.BaseWidget

	mu      sync.RWMutex
	pending []label
	shown   []label

	schedule func(func())
}

// Ensure Text implements report.Sink.
var _ report.Sink = (*Text)(nil)

// NewText creates an empty OLED widget.
func NewText() *Text {
	t := &Text{schedule: fyne.Do}
	t.ExtendBaseWidget(t)
	return t
}

// Clear starts a new frame.
func (t *Text) Clear() {
	t.mu.Lock()
	t.pending = t.pending[:0]
	t.mu.Unlock()
}

// DrawString places text at OLED pixel coordinates.
func (t *Text) DrawString(text string, x, y int16) {
	t.mu.Lock()
	t.pending = append(t.pending, label{text: text, x: x, y: y})
	t.mu.Unlock()
}

// Flush publishes the frame and schedules a redraw on the UI thread.
func (t *Text) Flush() error {
	t.mu.Lock()
	t.shown = append(t.shown[:0], t.pending...)
	t.mu.Unlock()

	t.schedule(t.Refresh)
	return nil
}

// Strings returns the shown strings in drawing order.
func (t *Text) Strings() []string {
	t.mu.RLock()
	defer t.mu.RUnlock()

	result := make([]string, len(t.shown))
	for i, l := range t.shown {
		result[i] = l.text
	}
	return result
}

// CreateRenderer creates the widget renderer.
func (t *Text) CreateRenderer() fyne.WidgetRenderer {
	bg := canvas.NewRectangle(color.Black)
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = oledInk
	border.StrokeWidth = 1

	r := &textRenderer{
		text:   t,
		bg:     bg,
		border: border,
	}
	for i := range r.rules {
		r.rules[i] = canvas.NewLine(oledInk)
	}
	r.rebuild()
	return r
}

type textRenderer struct {
	text   *Text
	bg     *canvas.Rectangle
	border *canvas.Rectangle
	rules  [len(report.Separators)]*canvas.Line
	labels []*canvas.Text

	objects []fyne.CanvasObject
	size    fyne.Size
}

// scale returns the factor from OLED pixels to widget units.
func (r *textRenderer) scale() float32 {
	if r.size.Width == 0 || r.size.Height == 0 {
		return 1
	}
	return min(r.size.Width/report.DisplayWidth, r.size.Height/report.DisplayHeight)
}

func (r *textRenderer) MinSize() fyne.Size {
	return fyne.NewSize(report.DisplayWidth*2, report.DisplayHeight*2)
}

func (r *textRenderer) Layout(size fyne.Size) {
	r.size = size
	r.bg.Resize(size)

	s := r.scale()
	inset := float32(report.FrameInset) * s
	r.border.Move(fyne.NewPos(inset, inset))
	r.border.Resize(fyne.NewSize(
		float32(report.DisplayWidth-2*report.FrameInset)*s,
		float32(report.DisplayHeight-2*report.FrameInset)*s,
	))

	for i, rule := range r.rules {
		y := float32(report.Separators[i]) * s
		rule.Position1 = fyne.NewPos(inset, y)
		rule.Position2 = fyne.NewPos(float32(report.DisplayWidth-report.FrameInset-1)*s, y)
	}

	r.placeLabels()
}

func (r *textRenderer) placeLabels() {
	s := r.scale()
	r.text.mu.RLock()
	defer r.text.mu.RUnlock()
	for i, l := range r.text.shown {
		if i >= len(r.labels) {
			break
		}
		r.labels[i].TextSize = 8 * s
		r.labels[i].Move(fyne.NewPos(float32(l.x)*s, float32(l.y)*s))
	}
}

// rebuild creates one canvas text per shown string.
func (r *textRenderer) rebuild() {
	r.text.mu.RLock()
	r.labels = r.labels[:0]
	for _, l := range r.text.shown {
		txt := canvas.NewText(l.text, oledInk)
		txt.TextStyle = fyne.TextStyle{Monospace: true}
		r.labels = append(r.labels, txt)
	}
	r.text.mu.RUnlock()

	r.objects = []fyne.CanvasObject{r.bg, r.border}
	for _, rule := range r.rules {
		r.objects = append(r.objects, rule)
	}
	for _, l := range r.labels {
		r.objects = append(r.objects, l)
	}
}

func (r *textRenderer) Refresh() {
	r.rebuild()
	r.placeLabels()
	for _, o := range r.objects {
		o.Refresh()
	}
}

func (r *textRenderer) Objects() []fyne.CanvasObject {
	return r.objects
}

func (r *textRenderer) Destroy() {}
