package probe

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.bug.st/serial"
)

const (
	// DefaultBaudRate is the USB CDC baud rate of the RP2040 firmware.
	DefaultBaudRate = 115200
	// DefaultBufferSize is the default size for the samples channel buffer.
	// One second of samples at the firmware's 1 kHz rate.
	DefaultBufferSize = 1000
	// MaxReading is the largest 12-bit ADC code.
	MaxReading = 4095

	// resetCommand reboots the firmware into its USB bootloader.
	resetCommand = "R\n"
)

var (
	ErrNotConnected     = errors.New("not connected")
	ErrAlreadyConnected = errors.New("already connected")
)

// RawSample represents a raw ADC sample streamed by the firmware.
type RawSample struct {
	Timestamp time.Time
	Reading   uint16 // 12-bit ADC reading (0-4095)
}

// Port represents a serial port.
type Port struct {
	Name        string
	Description string
}

// Serial represents a connection to the ohmmeter firmware.
type Serial struct {
	port     string
	baudRate int
	bufSize  int

	conn      serial.Port
	samples   chan RawSample
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool
	dropped   atomic.Uint64
}

// New creates a new Serial device with the specified port, baud rate, and buffer size.
func New(port string, baudRate int, bufSize int) *Serial {
	if baudRate == 0 {
		baudRate = DefaultBaudRate
	}
	if bufSize == 0 {
		bufSize = DefaultBufferSize
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Serial{
		port:      port,
		baudRate:  baudRate,
		bufSize:   bufSize,
		samples:   make(chan RawSample, bufSize),
		ctx:       ctx,
		cancel:    cancel,
		connected: false,
	}
}

// Ports returns a list of available serial ports.
func Ports() ([]Port, error) {
	ports, err := serial.GetPortsList()
	if err != nil {
		return nil, fmt.Errorf("failed to list serial ports: %w", err)
	}

	result := make([]Port, 0, len(ports))
	for _, name := range ports {
		result = append(result, Port{
			Name:        name,
			Description: name,
		})
	}

	return result, nil
}

// Connect connects to the serial port and starts reading samples.
func (d *Serial) Connect() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.connected {
		return ErrAlreadyConnected
	}

	mode := &serial.Mode{
		BaudRate: d.baudRate,
	}

	port, err := serial.Open(d.port, mode)
	if err != nil {
		return fmt.Errorf("failed to open serial port %s: %w", d.port, err)
	}

	d.conn = port
	d.connected = true

	// Start reading samples in a goroutine
	go d.readSamples(port)

	return nil
}

// Close closes the connection and stops reading samples.
func (d *Serial) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.connected {
		return nil
	}

	// Cancel context to stop reading goroutine
	d.cancel()

	// Close serial port
	if d.conn != nil {
		if err := d.conn.Close(); err != nil {
			log.Printf("Error closing serial port: %v", err)
		}
		d.conn = nil
	}

	d.connected = false

	// Close samples channel
	close(d.samples)

	return nil
}

// Samples returns the channel for reading samples.
func (d *Serial) Samples() <-chan RawSample {
	return d.samples
}

// Reset asks the firmware to reboot into its bootloader.
// The port disappears afterwards, so the caller should Close the device.
func (d *Serial) Reset() error {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if !d.connected {
		return ErrNotConnected
	}

	if _, err := d.conn.Write([]byte(resetCommand)); err != nil {
		return fmt.Errorf("failed to send reset command: %w", err)
	}

	return nil
}

// IsConnected returns whether the device is currently connected.
func (d *Serial) IsConnected() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.connected
}

// readSamples reads lines from the serial port and parses them into RawSample.
func (d *Serial) readSamples(r io.Reader) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Panic in readSamples: %v", r)
		}
	}()

	scanner := bufio.NewScanner(r)
	for {
		select {
		case <-d.ctx.Done():
			return
		default:
			if !scanner.Scan() {
				// Scanner stopped (EOF or error)
				if err := scanner.Err(); err != nil {
					log.Printf("Error reading from serial port: %v", err)
				}
				return
			}

			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}

			sample, err := parseLine(line)
			if err != nil {
				log.Printf("Failed to parse line '%s': %v", line, err)
				continue
			}

			d.publish(sample)
		}
	}
}

// publish sends a sample without blocking the reader. Only the first dropped
// sample is logged, see Dropped for the total.
func (d *Serial) publish(sample RawSample) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	if d.ctx.Err() != nil {
		return
	}

	select {
	case d.samples <- sample:
	default:
		if d.dropped.Add(1) == 1 {
			log.Printf("Samples channel full, dropping samples")
		}
	}
}

// Dropped returns the number of samples discarded because the channel was full.
func (d *Serial) Dropped() uint64 {
	return d.dropped.Load()
}

// parseLine parses a line from the firmware into a RawSample.
// Format: unix_micros,reading
// Example: 1234567890123,2048
func parseLine(line string) (RawSample, error) {
	parts := strings.Split(line, ",")
	if len(parts) != 2 {
		return RawSample{}, fmt.Errorf("invalid line format: expected 2 comma-separated values, got %d", len(parts))
	}

	// Parse timestamp (unix microseconds)
	timestampMicros, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		return RawSample{}, fmt.Errorf("invalid timestamp: %w", err)
	}
	timestamp := time.Unix(0, timestampMicros*1000) // Convert microseconds to nanoseconds

	// Parse reading (12-bit ADC)
	reading, err := strconv.ParseUint(parts[1], 10, 16)
	if err != nil {
		return RawSample{}, fmt.Errorf("invalid reading: %w", err)
	}
	if reading > MaxReading {
		return RawSample{}, fmt.Errorf("reading out of range: %d (max %d)", reading, MaxReading)
	}

	return RawSample{
		Timestamp: timestamp,
		Reading:   uint16(reading),
	}, nil
}
