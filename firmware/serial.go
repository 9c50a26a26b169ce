//go:build tinygo

package main

import "machine"

var (
	serial = machine.Serial

	// Serial buffer for reading a command line
	serialBuffer [8]byte
	serialPos    int
)

// processSerial reads pending bytes and runs complete command lines.
// Commands:
//
//	R  reboot into the USB bootloader
func processSerial() {
	for serial.Buffered() > 0 {
		data, err := serial.ReadByte()
		if err != nil {
			break
		}

		// Check for newline (end of line)
		if data == '\n' || data == '\r' {
			if serialPos == 1 {
				runCommand(serialBuffer[0])
			}
			// Reset buffer regardless of length
			serialPos = 0
			continue
		}

		// Ignore whitespace
		if data == ' ' || data == '\t' {
			continue
		}

		if serialPos < len(serialBuffer) {
			serialBuffer[serialPos] = data
			serialPos++
		}
	}
}

func runCommand(cmd byte) {
	switch cmd {
	case 'R', 'r':
		println("rebooting into bootloader")
		machine.EnterBootloader()
	}
}
