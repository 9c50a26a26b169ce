//go:build tinygo

package main

import (
	"image/color"
	"machine"
	"time"

	"tinygo.org/x/drivers/ssd1306"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"

	"github.com/itohio/goohm/pkg/report"
)

// fontAscent moves report's top-left origins to tinyfont baselines.
const fontAscent = 7

var white = color.RGBA{R: 255, G: 255, B: 255, A: 255}

// oled draws the report lines inside a border with two rules. It implements
// report.Sink.
type oled struct {
	display ssd1306.Device
}

func newOLED(bus *machine.I2C) *oled {
	bus.Configure(machine.I2CConfig{
		Frequency: 400 * machine.KHz,
		SDA:       PIN_SDA,
		SCL:       PIN_SCL,
	})
	// the display needs a moment after a cold boot
	time.Sleep(100 * time.Millisecond)

	o := &oled{display: ssd1306.NewI2C(bus)}
	o.display.Configure(ssd1306.Config{
		Width:    report.DisplayWidth,
		Height:   report.DisplayHeight,
		Address:  OLED_ADDR,
		VccState: ssd1306.SWITCHCAPVCC,
	})
	o.display.ClearDisplay()
	return o
}

// Clear empties the buffer and draws the frame.
func (o *oled) Clear() {
	o.display.ClearBuffer()

	const inset = report.FrameInset
	right := int16(report.DisplayWidth - inset - 1)
	bottom := int16(report.DisplayHeight - inset - 1)

	o.hline(inset, right, inset)
	o.hline(inset, right, bottom)
	o.vline(inset, inset, bottom)
	o.vline(right, inset, bottom)
	for _, y := range report.Separators {
		o.hline(inset, right, y)
	}
}

func (o *oled) DrawString(text string, x, y int16) {
	tinyfont.WriteLine(&o.display, &proggy.TinySZ8pt7b, x, y+fontAscent, text, white)
}

func (o *oled) Flush() error {
	return o.display.Display()
}

func (o *oled) hline(x0, x1, y int16) {
	for x := x0; x <= x1; x++ {
		o.display.SetPixel(x, y, white)
	}
}

func (o *oled) vline(x, y0, y1 int16) {
	for y := y0; y <= y1; y++ {
		o.display.SetPixel(x, y, white)
	}
}
