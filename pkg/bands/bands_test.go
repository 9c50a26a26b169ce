package bands

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDecompose(t *testing.T) {
	tests := []struct {
		name  string
		value uint32
		want  Bands
	}{
		{name: "10k", value: 10000, want: Bands{Digit1: 1, Digit2: 0, Exponent: 3}},
		{name: "510 ohm", value: 510, want: Bands{Digit1: 5, Digit2: 1, Exponent: 1}},
		{name: "4k7", value: 4700, want: Bands{Digit1: 4, Digit2: 7, Exponent: 2}},
		{name: "100k", value: 100000, want: Bands{Digit1: 1, Digit2: 0, Exponent: 4}},
		{name: "two digits", value: 47, want: Bands{Digit1: 4, Digit2: 7, Exponent: 0}},
		{name: "one digit", value: 5, want: Bands{Digit1: 0, Digit2: 5, Exponent: 0}},
		{name: "exactly 100", value: 100, want: Bands{Digit1: 1, Digit2: 0, Exponent: 1}},
		{name: "zero", value: 0, want: Bands{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decompose(tt.value)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBands_ValueRoundTrip(t *testing.T) {
	for _, v := range []uint32{10, 11, 91, 120, 330, 680, 1500, 9100, 56000, 100000, 2200000} {
		assert.Equal(t, v, Decompose(v).Value(), "value %d", v)
	}
}

func TestBands_Labels(t *testing.T) {
	b := Decompose(10000)
	assert.Equal(t, [3]string{"Brown", "Black", "Orange"}, b.Labels())

	b = Decompose(4700)
	assert.Equal(t, [3]string{"Yellow", "Violet", "Red"}, b.Labels())
}

func TestBands_Valid(t *testing.T) {
	assert.True(t, Bands{Digit1: 9, Digit2: 9, Exponent: 9}.Valid())
	assert.False(t, Bands{Digit1: 10}.Valid())
	assert.False(t, Bands{Exponent: 12}.Valid())
}

func TestName(t *testing.T) {
	want := []string{"Black", "Brown", "Red", "Orange", "Yellow", "Green", "Blue", "Violet", "Gray", "White"}
	for i, name := range want {
		assert.Equal(t, name, Name(uint8(i)))
	}
	assert.Equal(t, "?", Name(10))
}

func TestPalette_Color(t *testing.T) {
	p := DefaultPalette

	assert.Equal(t, p[3], p.Color(3))
	assert.Equal(t, Off, p.Color(10))

	for i, c := range p {
		assert.NotEqual(t, Off, c, "digit %d must differ from an unlit LED", i)
	}
}
