// Package eseries builds the table of standard E24 resistor values and
// resolves measured resistances to the closest standard value.
package eseries

import (
	"errors"
	"fmt"
	"slices"
)

// Value is a standard resistance in ohms.
type Value uint32

// E24 holds the base mantissas of the E24 series.
var E24 = [24]uint32{10, 11, 12, 13, 15, 16, 18, 20, 22, 24, 27, 30, 33, 36, 39, 43, 47, 51, 56, 62, 68, 75, 82, 91}

var (
	ErrCapacity = errors.New("eseries: table capacity exceeded")
	ErrRange    = errors.New("eseries: invalid range")
	ErrEmpty    = errors.New("eseries: no standard values in range")
)

// Range selects which generated values end up in a Table.
type Range struct {
	MinOhm    uint32
	MaxOhm    uint32
	MinDecade int // First power of ten applied to the mantissas (inclusive)
	MaxDecade int // Last power of ten applied to the mantissas (inclusive)
	Capacity  int // Maximum table size, 0 = unbounded
}

// DefaultRange covers 510 Ω to 100 kΩ.
func DefaultRange() Range {
	return Range{
		MinOhm:    510,
		MaxOhm:    100000,
		MinDecade: 1,
		MaxDecade: 4,
		Capacity:  64,
	}
}

// Table is an ascending, duplicate-free list of standard values.
// It is never modified after Build and can be shared freely.
type Table struct {
	values []Value
}

// Build generates mantissa × 10^decade for every mantissa and decade in r and
// keeps the values within [r.MinOhm, r.MaxOhm].
func Build(r Range) (*Table, error) {
	if r.MinOhm > r.MaxOhm || r.MinDecade > r.MaxDecade || r.MinDecade < 0 {
		return nil, fmt.Errorf("%w: %d..%d ohm, decades %d..%d", ErrRange, r.MinOhm, r.MaxOhm, r.MinDecade, r.MaxDecade)
	}

	values := make([]Value, 0, len(E24)*(r.MaxDecade-r.MinDecade+1))
	for _, mantissa := range E24 {
		for d := r.MinDecade; d <= r.MaxDecade; d++ {
			v, ok := scale(mantissa, d)
			if !ok {
				break
			}
			if v >= uint64(r.MinOhm) && v <= uint64(r.MaxOhm) {
				values = append(values, Value(v))
			}
		}
	}

	if r.Capacity > 0 && len(values) > r.Capacity {
		return nil, fmt.Errorf("%w: %d values, capacity %d", ErrCapacity, len(values), r.Capacity)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: %d..%d ohm", ErrEmpty, r.MinOhm, r.MaxOhm)
	}

	slices.Sort(values)
	values = slices.Compact(values)

	return &Table{values: values}, nil
}

// MustBuild is like Build but panics on error.
func MustBuild(r Range) *Table {
	t, err := Build(r)
	if err != nil {
		panic(err)
	}
	return t
}

// scale returns mantissa * 10^decade, or false once it no longer fits in 32 bits.
func scale(mantissa uint32, decade int) (uint64, bool) {
	v := uint64(mantissa)
	for i := 0; i < decade; i++ {
		v *= 10
		if v > 1<<32-1 {
			return 0, false
		}
	}
	return v, true
}

// Values returns a copy of the table.
func (t *Table) Values() []Value {
	return slices.Clone(t.values)
}

// Len returns the number of values in the table.
func (t *Table) Len() int {
	return len(t.values)
}

// Min returns the smallest value.
func (t *Table) Min() Value {
	return t.values[0]
}

// Max returns the largest value.
func (t *Table) Max() Value {
	return t.values[len(t.values)-1]
}

// Contains reports whether v is a standard value of the table.
func (t *Table) Contains(v Value) bool {
	_, found := slices.BinarySearch(t.values, v)
	return found
}
