package eseries

import (
	"github.com/chewxy/math32"

	"github.com/itohio/goohm/pkg/bands"
)

// Nearest returns the table value closest to measured.
// On equal distance the first value in table order wins.
func (t *Table) Nearest(measured float32) Value {
	best := t.values[0]
	bestDiff := math32.Inf(1)
	for _, v := range t.values {
		diff := math32.Abs(measured - float32(v))
		if diff < bestDiff {
			bestDiff = diff
			best = v
		}
	}
	return best
}

// Resolve finds the nearest standard value and its color bands.
func (t *Table) Resolve(measured float32) (Value, bands.Bands) {
	v := t.Nearest(measured)
	return v, bands.Decompose(uint32(v))
}
