//go:build tinygo

package main

import (
	"image/color"
	"machine"

	"tinygo.org/x/drivers/ws2812"
)

// leds buffers the matrix frame and writes it to the strip on Show. It
// implements matrix.Sink.
type leds struct {
	strip  ws2812.Device
	pixels []color.RGBA
}

func newLEDs(pin machine.Pin, n int) *leds {
	pin.Configure(machine.PinConfig{Mode: machine.PinOutput})
	return &leds{
		strip:  ws2812.New(pin),
		pixels: make([]color.RGBA, n),
	}
}

func (l *leds) SetPixel(index int, c color.RGBA) {
	if index >= 0 && index < len(l.pixels) {
		l.pixels[index] = c
	}
}

func (l *leds) Show() error {
	return l.strip.WriteColors(l.pixels)
}
