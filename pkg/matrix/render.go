package matrix

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/itohio/goohm/pkg/bands"
)

var ErrLayout = errors.New("matrix: invalid layout")

// Layout describes the matrix size and which column shows which band.
type Layout struct {
	Width          int
	Height         int
	Digit1Column   int
	Digit2Column   int
	ExponentColumn int
}

// DefaultLayout is a 5x5 matrix with the first digit in column 3, the second
// in column 2 and the multiplier in column 1. Columns 0 and 4 stay dark.
func DefaultLayout() Layout {
	return Layout{
		Width:          5,
		Height:         5,
		Digit1Column:   3,
		Digit2Column:   2,
		ExponentColumn: 1,
	}
}

// Len returns the number of LEDs.
func (l Layout) Len() int {
	return l.Width * l.Height
}

// Validate checks that every band column lies in the grid and no two bands share a column.
func (l Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrLayout, l.Width, l.Height)
	}
	cols := [3]int{l.Digit1Column, l.Digit2Column, l.ExponentColumn}
	for i, c := range cols {
		if c < 0 || c >= l.Width {
			return fmt.Errorf("%w: column %d outside %d columns", ErrLayout, c, l.Width)
		}
		for _, other := range cols[i+1:] {
			if c == other {
				return fmt.Errorf("%w: column %d used twice", ErrLayout, c)
			}
		}
	}
	return nil
}

// Buffer holds one color per LED in chain order.
type Buffer []color.RGBA

// NewBuffer allocates an unlit buffer for the layout.
func (l Layout) NewBuffer() Buffer {
	buf := make(Buffer, l.Len())
	for i := range buf {
		buf[i] = bands.Off
	}
	return buf
}

// Clone returns a copy of the buffer.
func (b Buffer) Clone() Buffer {
	if b == nil {
		return nil
	}
	c := make(Buffer, len(b))
	copy(c, b)
	return c
}

// At returns the color at a grid position.
func (b Buffer) At(row, col, width int) color.RGBA {
	return b[Index(row, col, width)]
}

// prepare returns dst resized to the layout, allocating when it is too small.
func (l Layout) prepare(dst Buffer) Buffer {
	n := l.Len()
	if cap(dst) < n {
		return make(Buffer, n)
	}
	return dst[:n]
}

// columnColor returns the color of a grid column for the given bands.
func (l Layout) columnColor(col int, b bands.Bands, p bands.Palette) color.RGBA {
	switch col {
	case l.Digit1Column:
		return p.Color(b.Digit1)
	case l.Digit2Column:
		return p.Color(b.Digit2)
	case l.ExponentColumn:
		return p.Color(b.Exponent)
	}
	return bands.Off
}

// Render draws the bands as vertical stripes. Every LED is written, unused
// columns explicitly Off, so nothing from a previous frame survives.
// dst is reused when it is large enough.
func (l Layout) Render(dst Buffer, b bands.Bands, p bands.Palette) Buffer {
	dst = l.prepare(dst)
	for i := range dst {
		_, col := Serpentine(i, l.Width)
		dst[i] = l.columnColor(col, b, p)
	}
	return dst
}

// RenderNoReading draws the out-of-range marker: a horizontal dash across the
// band columns on the middle row with every other LED Off.
func (l Layout) RenderNoReading(dst Buffer, c color.RGBA) Buffer {
	dst = l.prepare(dst)
	mid := l.Height / 2
	for i := range dst {
		row, col := Serpentine(i, l.Width)
		dst[i] = bands.Off
		if row != mid {
			continue
		}
		if col == l.Digit1Column || col == l.Digit2Column || col == l.ExponentColumn {
			dst[i] = c
		}
	}
	return dst
}

// Sink receives LED colors. SetPixel is fire-and-forget per LED, Show latches the frame.
type Sink interface {
	SetPixel(index int, c color.RGBA)
	Show() error
}

// Flush writes every LED of buf to the sink in chain order and shows the frame.
func Flush(s Sink, buf Buffer) error {
	for i, c := range buf {
		s.SetPixel(i, c)
	}
	return s.Show()
}
