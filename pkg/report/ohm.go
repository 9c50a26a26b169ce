package report

import (
	"strconv"

	"github.com/chewxy/math32"
)

// Ohm formats a resistance with an SI prefix: 510Ω, 4.7kΩ, 1MΩ.
// Infinity formats as OPEN.
func Ohm(v float32) string {
	if math32.IsInf(v, 0) || math32.IsNaN(v) {
		return "OPEN"
	}

	// Round to three significant digits before picking the prefix, so 999.7
	// becomes 1kΩ rather than 1e+03Ω
	r, _ := strconv.ParseFloat(strconv.FormatFloat(float64(v), 'g', 3, 64), 64)

	switch a := math32.Abs(float32(r)); {
	case a >= 1e6:
		return strconv.FormatFloat(r/1e6, 'f', -1, 64) + "MΩ"
	case a >= 1e3:
		return strconv.FormatFloat(r/1e3, 'f', -1, 64) + "kΩ"
	default:
		return strconv.FormatFloat(r, 'f', -1, 64) + "Ω"
	}
}
