// Package report formats a measurement as the five text lines shown on the
// instrument display.
package report

import (
	"errors"
	"fmt"

	"github.com/itohio/goohm/pkg/bands"
	"github.com/itohio/goohm/pkg/measure"
)

// Lines are, in order: mean ADC code, resistance, first band, second band, multiplier band.
type Lines [5]string

// Point is a text origin in display pixels.
type Point struct {
	X, Y int16
}

// Display geometry of the 128x64 OLED. The frame is a border inset by
// FrameInset on every side and two horizontal rules at Separators.
const (
	DisplayWidth  = 128
	DisplayHeight = 64
	FrameInset    = 3
)

// Separators are the rows of the rules under the ADC and resistance lines.
var Separators = [2]int16{16, 32}

// Positions are the top-left origins of the five lines on the OLED, for an
// 8 pixel high font.
var Positions = [5]Point{
	{X: 8, Y: 4},
	{X: 8, Y: 20},
	{X: 8, Y: 36},
	{X: 8, Y: 44},
	{X: 8, Y: 52},
}

// Sink is a text display.
type Sink interface {
	Clear()
	DrawString(text string, x, y int16)
	Flush() error
}

// Format renders a reading and its bands. An open circuit shows OPEN instead of
// a resistance and dashes instead of colors.
func Format(r measure.Reading, b bands.Bands, err error) Lines {
	if errors.Is(err, measure.ErrOpenCircuit) || r.Open() {
		return Lines{
			fmt.Sprintf("ADC: %1.0f", r.Mean),
			"Resist: OPEN",
			"1: ---",
			"2: ---",
			"M: ---",
		}
	}

	labels := b.Labels()
	return Lines{
		fmt.Sprintf("ADC: %1.0f", r.Mean),
		fmt.Sprintf("Resist: %1.0f", r.Resistance),
		"1: " + labels[0],
		"2: " + labels[1],
		"M: " + labels[2],
	}
}

// Draw clears the sink, draws every line at its position and flushes.
func Draw(s Sink, lines Lines) error {
	s.Clear()
	for i, text := range lines {
		p := Positions[i]
		s.DrawString(text, p.X, p.Y)
	}
	return s.Flush()
}
