//go:build tinygo

package main

import (
	"context"
	"machine"
	"time"
)

// adcSource reads the divider and, when streaming, echoes every sample to
// the host. It also polls the serial port for commands between samples.
type adcSource struct {
	adc    machine.ADC
	stream bool
}

func newADCSource(pin machine.Pin, stream bool) *adcSource {
	pin.Configure(machine.PinConfig{Mode: machine.PinAnalog})
	adc := machine.ADC{Pin: pin}
	adc.Configure(machine.ADCConfig{Resolution: 12})
	return &adcSource{adc: adc, stream: stream}
}

// Read returns one 12-bit sample. TinyGo scales readings to 16 bits.
func (s *adcSource) Read(ctx context.Context) (uint16, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	processSerial()

	reading := s.adc.Get() >> 4
	if s.stream {
		// Output format: "unix_micros,reading\n"
		// Example: "1234567890123,2048\n"
		print(time.Now().UnixNano() / 1000)
		print(",")
		print(reading)
		print("\n")
	}
	return reading, nil
}

// sleep is the measure.SleepFunc used on the board.
func sleep(ctx context.Context, d time.Duration) error {
	if d > 0 {
		time.Sleep(d)
	}
	return ctx.Err()
}
