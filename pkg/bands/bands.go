package bands

// Bands holds the three color bands of a resistor: two significant digits and
// the power-of-ten multiplier.
type Bands struct {
	Digit1   uint8
	Digit2   uint8
	Exponent uint8
}

// names are the canonical color names indexed by digit.
var names = [10]string{
	"Black",
	"Brown",
	"Red",
	"Orange",
	"Yellow",
	"Green",
	"Blue",
	"Violet",
	"Gray",
	"White",
}

// Decompose strips a resistance value down to a two-digit mantissa, counting
// the divisions by ten as the exponent.
// Values below 100 are read directly with exponent 0.
func Decompose(v uint32) Bands {
	var exp uint8
	for v >= 100 {
		v /= 10
		exp++
	}
	return Bands{
		Digit1:   uint8(v / 10),
		Digit2:   uint8(v % 10),
		Exponent: exp,
	}
}

// Value reconstructs the resistance in ohms encoded by the bands.
func (b Bands) Value() uint32 {
	v := uint32(b.Digit1)*10 + uint32(b.Digit2)
	for i := uint8(0); i < b.Exponent; i++ {
		v *= 10
	}
	return v
}

// Valid reports whether every band maps to a color.
func (b Bands) Valid() bool {
	return b.Digit1 <= 9 && b.Digit2 <= 9 && b.Exponent <= 9
}

// Labels returns the color names of the first digit, second digit and multiplier.
func (b Bands) Labels() [3]string {
	return [3]string{Name(b.Digit1), Name(b.Digit2), Name(b.Exponent)}
}

// Name returns the color name of a digit, or "?" if the digit has no color.
func Name(digit uint8) string {
	if int(digit) >= len(names) {
		return "?"
	}
	return names[digit]
}
