package eseries

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isE24Mantissa(m uint32) bool {
	for _, b := range E24 {
		if b == m {
			return true
		}
	}
	return false
}

func TestBuild_Default(t *testing.T) {
	table, err := Build(DefaultRange())
	require.NoError(t, err)

	// 510..910, 1k..9k1, 10k..91k, 100k
	assert.Equal(t, 7+24+24+1, table.Len())
	assert.Equal(t, Value(510), table.Min())
	assert.Equal(t, Value(100000), table.Max())

	values := table.Values()
	for i, v := range values {
		assert.GreaterOrEqual(t, v, Value(510))
		assert.LessOrEqual(t, v, Value(100000))
		if i > 0 {
			assert.Greater(t, v, values[i-1], "values must be ascending and unique")
		}

		m := uint32(v)
		for m >= 100 && m%10 == 0 {
			m /= 10
		}
		assert.True(t, isE24Mantissa(m), "%d does not reduce to an E24 mantissa", v)
	}
}

func TestBuild_Capacity(t *testing.T) {
	r := DefaultRange()
	r.Capacity = 10

	table, err := Build(r)
	assert.ErrorIs(t, err, ErrCapacity)
	assert.Nil(t, table)
}

func TestBuild_Unbounded(t *testing.T) {
	r := Range{MinOhm: 10, MaxOhm: 10000000, MinDecade: 0, MaxDecade: 6}
	table, err := Build(r)
	require.NoError(t, err)
	assert.Equal(t, 24*6+1, table.Len())
	assert.True(t, table.Contains(10))
	assert.True(t, table.Contains(9100000))
}

func TestBuild_InvalidRange(t *testing.T) {
	tests := []struct {
		name string
		r    Range
		err  error
	}{
		{name: "inverted ohms", r: Range{MinOhm: 1000, MaxOhm: 100, MinDecade: 1, MaxDecade: 4}, err: ErrRange},
		{name: "inverted decades", r: Range{MinOhm: 1, MaxOhm: 100, MinDecade: 4, MaxDecade: 1}, err: ErrRange},
		{name: "negative decade", r: Range{MinOhm: 1, MaxOhm: 100, MinDecade: -1, MaxDecade: 1}, err: ErrRange},
		{name: "nothing in range", r: Range{MinOhm: 92, MaxOhm: 99, MinDecade: 0, MaxDecade: 0}, err: ErrEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.r)
			assert.ErrorIs(t, err, tt.err)
		})
	}
}

func TestBuild_HugeDecades(t *testing.T) {
	r := Range{MinOhm: 1000000000, MaxOhm: 4000000000, MinDecade: 8, MaxDecade: 12}
	table, err := Build(r)
	require.NoError(t, err)
	assert.Equal(t, Value(1000000000), table.Min())
	assert.Equal(t, Value(3900000000), table.Max())
}

func TestMustBuild_Panics(t *testing.T) {
	assert.Panics(t, func() {
		MustBuild(Range{MinOhm: 10, MaxOhm: 1})
	})
}

func TestTable_ValuesIsCopy(t *testing.T) {
	table := MustBuild(DefaultRange())
	values := table.Values()
	values[0] = 1
	assert.Equal(t, Value(510), table.Min())
}
