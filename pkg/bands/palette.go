package bands

import "image/color"

// Palette maps each digit to the color shown on the LED matrix.
type Palette [10]color.RGBA

// Off is the color of an unlit LED.
var Off = color.RGBA{A: 255}

// DefaultPalette is dimmed for a WS2812 matrix viewed up close.
// Black is a faint gray so a black band differs from an unlit column.
var DefaultPalette = Palette{
	{R: 4, G: 4, B: 4, A: 255},    // Black
	{R: 50, G: 10, B: 0, A: 255},  // Brown
	{R: 50, G: 0, B: 0, A: 255},   // Red
	{R: 50, G: 25, B: 0, A: 255},  // Orange
	{R: 50, G: 50, B: 0, A: 255},  // Yellow
	{R: 0, G: 50, B: 0, A: 255},   // Green
	{R: 0, G: 0, B: 50, A: 255},   // Blue
	{R: 30, G: 0, B: 50, A: 255},  // Violet
	{R: 30, G: 30, B: 30, A: 255}, // Gray
	{R: 50, G: 50, B: 50, A: 255}, // White
}

// Color returns the color of a digit. Digits without a color are Off.
func (p Palette) Color(digit uint8) color.RGBA {
	if int(digit) >= len(p) {
		return Off
	}
	return p[digit]
}
