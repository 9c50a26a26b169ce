package probe

import (
	"context"
	"math"
	"sync"
	"time"

	"github.com/itohio/goohm/pkg/config"
)

// Mock simulates the ohmmeter board for testing and development. It produces
// the ADC codes a voltage divider would give for the configured resistor,
// paced like the firmware: a batch of samples, then a pause.
type Mock struct {
	cfg      config.MockConfig
	divider  config.DividerConfig
	interval time.Duration
	batch    int           // Samples streamed per burst, 0 = continuous
	pause    time.Duration // Idle time after each burst

	samples   chan RawSample
	mu        sync.RWMutex
	ctx       context.Context
	cancel    context.CancelFunc
	connected bool

	// Simulation state
	startTime  time.Time
	resistance float64
}

// NewMock creates a new mocked device instance from the mock, divider and
// sampling sections of cfg.
func NewMock(cfg *config.Config) *Mock {
	if cfg == nil {
		cfg = config.Default()
	}

	interval := cfg.Sampling.Interval
	if interval <= 0 {
		interval = time.Millisecond
	}

	ctx, cancel := context.WithCancel(context.Background())

	return &Mock{
		cfg:        cfg.Mock,
		divider:    cfg.Divider,
		interval:   interval,
		batch:      cfg.Sampling.BatchSize,
		pause:      cfg.CycleDelay,
		samples:    make(chan RawSample, DefaultBufferSize),
		ctx:        ctx,
		cancel:     cancel,
		connected:  false,
		resistance: cfg.Mock.Resistance,
	}
}

// Connect simulates connecting to the device.
func (m *Mock) Connect() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.connected {
		return ErrAlreadyConnected
	}

	m.connected = true
	m.startTime = time.Now()

	// Start generating samples
	go m.generateSamples()

	return nil
}

// Close stops the mocked device.
func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return nil
	}

	m.cancel()
	m.connected = false
	close(m.samples)

	return nil
}

// Samples returns the channel for reading samples.
func (m *Mock) Samples() <-chan RawSample {
	return m.samples
}

// Reset restarts the simulation with the configured resistor.
func (m *Mock) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.connected {
		return ErrNotConnected
	}

	m.startTime = time.Now()
	m.resistance = m.cfg.Resistance

	return nil
}

// SetResistance swaps the simulated resistor. Zero or a negative value
// simulates an open circuit.
func (m *Mock) SetResistance(ohm float64) {
	m.mu.Lock()
	m.resistance = ohm
	m.mu.Unlock()
}

// IsConnected returns whether the device is currently connected.
func (m *Mock) IsConnected() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.connected
}

// generateSamples streams batch samples at the sampling interval, then stays
// silent for the pause, like the firmware's measurement cycle.
func (m *Mock) generateSamples() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	sent := 0
	for {
		select {
		case <-m.ctx.Done():
			return
		case now := <-ticker.C:
			if !m.send(now) {
				return
			}
		}

		sent++
		if m.batch <= 0 || sent < m.batch || m.pause <= 0 {
			continue
		}
		sent = 0

		select {
		case <-m.ctx.Done():
			return
		case <-time.After(m.pause):
		}
		ticker.Reset(m.interval)
	}
}

// send publishes one sample. It reports false once the mock is closed.
func (m *Mock) send(now time.Time) bool {
	// Close takes the write lock, so the channel stays open while the read
	// lock is held
	m.mu.RLock()
	defer m.mu.RUnlock()

	if !m.connected {
		return false
	}
	sample := RawSample{
		Timestamp: now,
		Reading:   m.reading(m.resistance, now.Sub(m.startTime)),
	}
	select {
	case m.samples <- sample:
	default:
		// Channel full, skip
	}
	return true
}

// reading returns the ADC code for the resistor after elapsed time.
func (m *Mock) reading(resistance float64, elapsed time.Duration) uint16 {
	fullScale := m.divider.FullScale
	if resistance <= 0 {
		return clampReading(fullScale, fullScale)
	}

	// Slow drift with a ten second period
	drift := 1 + m.cfg.Drift*math.Sin(2*math.Pi*elapsed.Seconds()/10)
	r := resistance * drift

	// Divider output: the unknown resistor sits between the ADC pin and ground
	code := fullScale * r / (m.divider.KnownResistance + r)

	// Deterministic noise
	t := float64(elapsed.Nanoseconds())
	code += (math.Sin(t*0.001) + math.Cos(t*0.0013)) * m.cfg.Noise * 0.5

	return clampReading(code, fullScale)
}

func clampReading(code, fullScale float64) uint16 {
	if fullScale > MaxReading {
		fullScale = MaxReading
	}
	if code < 0 {
		code = 0
	} else if code > fullScale {
		code = fullScale
	}
	return uint16(math.Round(code))
}
