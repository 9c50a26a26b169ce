package report

import (
	"errors"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/goohm/pkg/bands"
	"github.com/itohio/goohm/pkg/measure"
)

type drawn struct {
	text string
	x, y int16
}

type fakeSink struct {
	cleared int
	lines   []drawn
	flushed int
	err     error
}

func (s *fakeSink) Clear() {
	s.cleared++
	s.lines = s.lines[:0]
}

func (s *fakeSink) DrawString(text string, x, y int16) {
	s.lines = append(s.lines, drawn{text: text, x: x, y: y})
}

func (s *fakeSink) Flush() error {
	s.flushed++
	return s.err
}

func TestFormat(t *testing.T) {
	r := measure.Reading{Mean: 2048, Resistance: 10004.9}
	lines := Format(r, bands.Decompose(10000), nil)

	assert.Equal(t, Lines{
		"ADC: 2048",
		"Resist: 10005",
		"1: Brown",
		"2: Black",
		"M: Orange",
	}, lines)
}

func TestFormat_OpenCircuit(t *testing.T) {
	r := measure.Reading{Mean: 4095, Resistance: math32.Inf(1)}

	for _, err := range []error{measure.ErrOpenCircuit, nil} {
		lines := Format(r, bands.Bands{}, err)
		assert.Equal(t, "ADC: 4095", lines[0])
		assert.Equal(t, "Resist: OPEN", lines[1])
		assert.Equal(t, "1: ---", lines[2])
		assert.Equal(t, "M: ---", lines[4])
	}
}

func TestDraw(t *testing.T) {
	sink := &fakeSink{}
	lines := Lines{"a", "b", "c", "d", "e"}

	require.NoError(t, Draw(sink, lines))
	assert.Equal(t, 1, sink.cleared)
	assert.Equal(t, 1, sink.flushed)
	require.Len(t, sink.lines, 5)
	for i, l := range sink.lines {
		assert.Equal(t, lines[i], l.text)
		assert.Equal(t, Positions[i].X, l.x)
		assert.Equal(t, Positions[i].Y, l.y)
	}
}

func TestDraw_FlushError(t *testing.T) {
	boom := errors.New("i2c nack")
	sink := &fakeSink{err: boom}
	assert.ErrorIs(t, Draw(sink, Lines{}), boom)
}
