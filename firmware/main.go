//go:build tinygo

//go:generate tinygo flash -target=pico

package main

import (
	"context"
	"machine"
	"time"

	"github.com/itohio/goohm/pkg/eseries"
	"github.com/itohio/goohm/pkg/matrix"
	"github.com/itohio/goohm/pkg/measure"
	"github.com/itohio/goohm/pkg/ohmmeter"
	"github.com/itohio/goohm/pkg/report"
)

var (
	_ matrix.Sink = (*leds)(nil)
	_ report.Sink = (*oled)(nil)
)

func main() {
	// Button B reboots into the bootloader on a falling edge
	PIN_BOOTSEL_BUTTON.Configure(machine.PinConfig{Mode: machine.PinInputPullup})
	err := PIN_BOOTSEL_BUTTON.SetInterrupt(machine.PinFalling, func(machine.Pin) {
		machine.EnterBootloader()
	})
	if err != nil {
		println("button interrupt:", err.Error())
	}

	table, err := eseries.Build(eseries.DefaultRange())
	if err != nil {
		panic("standard value table: " + err.Error())
	}

	opts := ohmmeter.DefaultOptions()
	opts.Divider = measure.Divider{KnownOhm: KNOWN_RESISTANCE, FullScale: ADC_FULL_SCALE}
	opts.BatchSize = BATCH_SIZE
	opts.SampleInterval = SAMPLE_INTERVAL_MS * time.Millisecond
	opts.CycleDelay = CYCLE_DELAY_MS * time.Millisecond
	opts.Sleep = sleep

	src := newADCSource(PIN_ADC, STREAM_SAMPLES)
	meter := ohmmeter.New(table, src, opts)
	meter.SetText(newOLED(machine.I2C1))
	meter.SetPixels(newLEDs(PIN_LEDS, opts.Layout.Len()))

	// Run only returns if the source closes, which the ADC never does
	if err := meter.Run(context.Background()); err != nil {
		panic(err.Error())
	}
}
