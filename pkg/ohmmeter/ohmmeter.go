// Package ohmmeter runs the measurement pipeline: sample a batch, estimate the
// resistance, resolve the standard value and its bands, then draw the text
// lines and the LED pattern.
package ohmmeter

import (
	"context"
	"errors"
	"image/color"
	"log"
	"sync"
	"time"

	"github.com/itohio/goohm/pkg/bands"
	"github.com/itohio/goohm/pkg/eseries"
	"github.com/itohio/goohm/pkg/matrix"
	"github.com/itohio/goohm/pkg/measure"
	"github.com/itohio/goohm/pkg/report"
)

// Result is the outcome of one measurement cycle.
type Result struct {
	Timestamp  time.Time
	Reading    measure.Reading
	Nominal    eseries.Value // 0 when OutOfRange
	Bands      bands.Bands
	OutOfRange bool // Open circuit, Nominal and Bands are not set
	Lines      report.Lines
	Pixels     matrix.Buffer
}

// Options configures a Meter.
type Options struct {
	Divider        measure.Divider
	BatchSize      int           // Samples averaged per cycle
	SampleInterval time.Duration // Pause after every sample, 0 when the source paces itself
	CycleDelay     time.Duration // Pause between cycles
	Layout         matrix.Layout
	Palette        bands.Palette
	NoReading      color.RGBA // Color of the out-of-range marker
	Sleep          measure.SleepFunc
}

// DefaultOptions returns the instrument defaults: 10 kΩ reference, 12-bit ADC,
// 500 samples 1 ms apart, 500 ms between cycles, 5x5 matrix.
func DefaultOptions() Options {
	return Options{
		Divider:        measure.DefaultDivider(),
		BatchSize:      500,
		SampleInterval: time.Millisecond,
		CycleDelay:     500 * time.Millisecond,
		Layout:         matrix.DefaultLayout(),
		Palette:        bands.DefaultPalette,
		NoReading:      color.RGBA{R: 50, A: 255},
		Sleep:          measure.Sleep,
	}
}

// Meter owns the pipeline state. The table is shared read-only, the pixel
// buffer belongs to the meter and is rewritten every cycle.
type Meter struct {
	opts    Options
	table   *eseries.Table
	sampler *measure.Sampler
	pixels  matrix.Buffer

	sinkMu sync.RWMutex
	text   report.Sink
	leds   matrix.Sink

	// Single-slot handoff: the newest result replaces the previous one.
	mu     sync.RWMutex
	latest Result
	valid  bool

	callbacks []func(Result)
	cbMu      sync.RWMutex
}

// New creates a meter reading from src.
func New(table *eseries.Table, src measure.Source, opts Options) *Meter {
	if opts.Sleep == nil {
		opts.Sleep = measure.Sleep
	}
	return &Meter{
		opts:    opts,
		table:   table,
		sampler: measure.NewSampler(src, opts.BatchSize, opts.SampleInterval, opts.Sleep),
		pixels:  opts.Layout.NewBuffer(),
	}
}

// SetText sets the text display. nil disables it.
func (m *Meter) SetText(s report.Sink) {
	m.sinkMu.Lock()
	defer m.sinkMu.Unlock()
	m.text = s
}

// SetPixels sets the LED matrix. nil disables it.
func (m *Meter) SetPixels(s matrix.Sink) {
	m.sinkMu.Lock()
	defer m.sinkMu.Unlock()
	m.leds = s
}

// OnUpdate registers a callback invoked after every cycle.
// Callbacks run on the meter goroutine and should return quickly.
func (m *Meter) OnUpdate(callback func(Result)) {
	m.cbMu.Lock()
	defer m.cbMu.Unlock()
	m.callbacks = append(m.callbacks, callback)
}

// Latest returns the most recent result, if any.
func (m *Meter) Latest() (Result, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r := m.latest
	r.Pixels = r.Pixels.Clone()
	return r, m.valid
}

// Cycle runs one sample → resolve → render pass.
// An open circuit is reported through Result.OutOfRange, not as an error.
func (m *Meter) Cycle(ctx context.Context) (Result, error) {
	batch, err := m.sampler.Collect(ctx)
	if err != nil {
		return Result{}, err
	}

	r := m.resolve(batch)

	if err := m.draw(r); err != nil {
		log.Printf("Failed to update display: %v", err)
	}

	m.mu.Lock()
	m.latest = r
	m.valid = true
	m.mu.Unlock()

	m.notifyCallbacks(r)

	return r, nil
}

// resolve turns a batch into a Result. It does not touch the sinks.
func (m *Meter) resolve(batch []uint16) Result {
	reading, err := m.opts.Divider.Estimate(batch)
	r := Result{
		Timestamp: time.Now(),
		Reading:   reading,
	}

	if errors.Is(err, measure.ErrOpenCircuit) {
		r.OutOfRange = true
		m.pixels = m.opts.Layout.RenderNoReading(m.pixels, m.opts.NoReading)
	} else {
		r.Nominal, r.Bands = m.table.Resolve(reading.Resistance)
		m.pixels = m.opts.Layout.Render(m.pixels, r.Bands, m.opts.Palette)
	}

	r.Lines = report.Format(reading, r.Bands, err)
	r.Pixels = m.pixels.Clone()
	return r
}

// draw pushes the result to the text display and the LED matrix.
func (m *Meter) draw(r Result) error {
	m.sinkMu.RLock()
	text, leds := m.text, m.leds
	m.sinkMu.RUnlock()

	var errs []error
	if text != nil {
		errs = append(errs, report.Draw(text, r.Lines))
	}
	if leds != nil {
		errs = append(errs, matrix.Flush(leds, m.pixels))
	}
	return errors.Join(errs...)
}

// Run repeats Cycle until ctx is done or the source is closed, pausing
// CycleDelay between cycles. Other source errors are logged and retried.
func (m *Meter) Run(ctx context.Context) error {
	for {
		if _, err := m.Cycle(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			if errors.Is(err, measure.ErrSourceClosed) {
				return err
			}
			log.Printf("Measurement cycle failed: %v", err)
		}

		if err := m.opts.Sleep(ctx, m.opts.CycleDelay); err != nil {
			return err
		}
	}
}

// notifyCallbacks invokes all registered callbacks without holding any locks.
func (m *Meter) notifyCallbacks(r Result) {
	m.cbMu.RLock()
	callbacks := make([]func(Result), len(m.callbacks))
	copy(callbacks, m.callbacks)
	m.cbMu.RUnlock()

	for _, cb := range callbacks {
		if cb != nil {
			cb(r)
		}
	}
}
