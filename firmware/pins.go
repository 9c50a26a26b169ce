//go:build tinygo

package main

import "machine"

const (
	// Sampling configuration
	BATCH_SIZE         = 500 // Samples averaged per measurement
	SAMPLE_INTERVAL_MS = 1   // Pause after each sample in milliseconds
	CYCLE_DELAY_MS     = 500 // Pause between measurements in milliseconds

	// Divider configuration
	KNOWN_RESISTANCE = 10000 // Reference resistor in ohms, between the supply and the ADC pin
	ADC_FULL_SCALE   = 4095  // 12-bit ADC code at the supply voltage

	// ADC pin, junction of the reference and the unknown resistor
	PIN_ADC = machine.ADC2 // GPIO28

	// OLED on I2C1
	PIN_SDA   = machine.GPIO14
	PIN_SCL   = machine.GPIO15
	OLED_ADDR = 0x3C

	// 5x5 WS2812 matrix
	PIN_LEDS = machine.GPIO7

	// Button B reboots into the USB bootloader
	PIN_BOOTSEL_BUTTON = machine.GPIO6

	// Serial configuration
	// Every raw sample is streamed as "unix_micros,reading\n", ~22 bytes max per line
	// 1000 samples/sec * 22 bytes/line = 22,000 bytes/sec, within USB CDC full speed
	STREAM_SAMPLES = true
)
