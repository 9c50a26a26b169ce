// Package probe connects to the ohmmeter board, or to a simulated one, and
// streams its raw ADC samples.
package probe

// Resetter reboots the board.
type Resetter interface {
	Reset() error
}

// Device defines the interface for ohmmeter boards (real or mocked).
type Device interface {
	Resetter
	Connect() error
	Close() error
	Samples() <-chan RawSample
	IsConnected() bool
}

// Ensure Serial implements Device.
var _ Device = (*Serial)(nil)

// Ensure Mock implements Device.
var _ Device = (*Mock)(nil)
