// Package measure turns batches of raw ADC samples into a resistance using a
// voltage divider with a known reference resistor.
package measure

import (
	"errors"

	"github.com/chewxy/math32"
)

var (
	// ErrOpenCircuit means the averaged sample reached the ADC full scale, so
	// the divider formula has no finite solution.
	ErrOpenCircuit = errors.New("measure: open circuit")
	ErrNoSamples   = errors.New("measure: no samples")
)

// Divider describes the measurement circuit: the known resistor sits between
// the supply and the ADC pin, the unknown one between the pin and ground.
type Divider struct {
	KnownOhm  float32 // Reference resistance
	FullScale float32 // ADC code at the supply voltage (4095 for 12 bits)
}

// Reading is one averaged measurement.
type Reading struct {
	Mean       float32 // Mean ADC code
	Resistance float32 // Ohms, +Inf for an open circuit
}

// DefaultDivider is a 10 kΩ reference on a 12-bit ADC.
func DefaultDivider() Divider {
	return Divider{KnownOhm: 10000, FullScale: 4095}
}

// Mean returns the arithmetic mean of the samples.
func Mean(samples []uint16) (float32, error) {
	if len(samples) == 0 {
		return 0, ErrNoSamples
	}
	var sum uint64
	for _, s := range samples {
		sum += uint64(s)
	}
	return float32(float64(sum) / float64(len(samples))), nil
}

// Resistance solves R = known * mean / (fullScale - mean).
// A mean at or above full scale returns +Inf and ErrOpenCircuit.
func (d Divider) Resistance(mean float32) (float32, error) {
	if mean >= d.FullScale {
		return math32.Inf(1), ErrOpenCircuit
	}
	return d.KnownOhm * mean / (d.FullScale - mean), nil
}

// Estimate averages the samples and converts the mean to a resistance.
// The returned Reading carries the mean even when err is ErrOpenCircuit.
func (d Divider) Estimate(samples []uint16) (Reading, error) {
	mean, err := Mean(samples)
	if err != nil {
		return Reading{}, err
	}
	r, err := d.Resistance(mean)
	return Reading{Mean: mean, Resistance: r}, err
}

// Open reports whether the reading is an open circuit.
func (r Reading) Open() bool {
	return math32.IsInf(r.Resistance, 1)
}
