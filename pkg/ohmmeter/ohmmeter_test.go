package ohmmeter

import (
	"context"
	"errors"
	"image/color"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/goohm/pkg/bands"
	"github.com/itohio/goohm/pkg/eseries"
	"github.com/itohio/goohm/pkg/matrix"
	"github.com/itohio/goohm/pkg/measure"
	"github.com/itohio/goohm/pkg/report"
)

// constSource always returns the same ADC code.
func constSource(v uint16) measure.Source {
	return measure.SourceFunc(func(ctx context.Context) (uint16, error) {
		return v, ctx.Err()
	})
}

// seqSource returns batches of constant codes, one batch per entry.
type seqSource struct {
	mu     sync.Mutex
	codes  []uint16
	batch  int
	served int
}

func (s *seqSource) Read(ctx context.Context) (uint16, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.served / s.batch
	if idx >= len(s.codes) {
		return 0, measure.ErrSourceClosed
	}
	s.served++
	return s.codes[idx], nil
}

type textSink struct {
	lines []string
	flush int
}

func (s *textSink) Clear()                             { s.lines = nil }
func (s *textSink) DrawString(text string, x, y int16) { s.lines = append(s.lines, text) }
func (s *textSink) Flush() error                       { s.flush++; return nil }

type ledSink struct {
	pixels [25]color.RGBA
	writes int
	shows  int
}

func (s *ledSink) SetPixel(index int, c color.RGBA) {
	s.pixels[index] = c
	s.writes++
}

func (s *ledSink) Show() error {
	s.shows++
	return nil
}

func noSleep(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}

func testOptions(batch int) Options {
	opts := DefaultOptions()
	opts.BatchSize = batch
	opts.Sleep = noSleep
	return opts
}

func newTestMeter(t *testing.T, src measure.Source, batch int) *Meter {
	t.Helper()
	table, err := eseries.Build(eseries.DefaultRange())
	require.NoError(t, err)
	return New(table, src, testOptions(batch))
}

func TestCycle_TenKilohm(t *testing.T) {
	m := newTestMeter(t, constSource(2048), 500)
	text := &textSink{}
	leds := &ledSink{}
	m.SetText(text)
	m.SetPixels(leds)

	r, err := m.Cycle(context.Background())
	require.NoError(t, err)

	assert.False(t, r.OutOfRange)
	assert.Equal(t, float32(2048), r.Reading.Mean)
	assert.InDelta(t, 10004.9, r.Reading.Resistance, 0.1)
	assert.Equal(t, eseries.Value(10000), r.Nominal)
	assert.Equal(t, bands.Bands{Digit1: 1, Digit2: 0, Exponent: 3}, r.Bands)
	assert.Equal(t, report.Lines{"ADC: 2048", "Resist: 10005", "1: Brown", "2: Black", "M: Orange"}, r.Lines)

	assert.Equal(t, r.Lines[:], text.lines)
	assert.Equal(t, 1, text.flush)

	assert.Equal(t, 25, leds.writes)
	assert.Equal(t, 1, leds.shows)
	p := bands.DefaultPalette
	assert.Equal(t, p[1], leds.pixels[matrix.Index(0, 3, 5)])
	assert.Equal(t, p[0], leds.pixels[matrix.Index(0, 2, 5)])
	assert.Equal(t, p[3], leds.pixels[matrix.Index(0, 1, 5)])
	assert.Equal(t, bands.Off, leds.pixels[matrix.Index(0, 0, 5)])
}

func TestCycle_OpenCircuit(t *testing.T) {
	m := newTestMeter(t, constSource(4095), 10)
	leds := &ledSink{}
	m.SetPixels(leds)

	r, err := m.Cycle(context.Background())
	require.NoError(t, err)

	assert.True(t, r.OutOfRange)
	assert.True(t, r.Reading.Open())
	assert.Equal(t, eseries.Value(0), r.Nominal)
	assert.Equal(t, "Resist: OPEN", r.Lines[1])

	noReading := DefaultOptions().NoReading
	for i, c := range leds.pixels {
		row, col := matrix.Serpentine(i, 5)
		if row == 2 && col >= 1 && col <= 3 {
			assert.Equal(t, noReading, c)
		} else {
			assert.Equal(t, bands.Off, c)
		}
	}
}

func TestCycle_RecoversAfterOpenCircuit(t *testing.T) {
	src := &seqSource{codes: []uint16{4095, 1500}, batch: 4}
	m := newTestMeter(t, src, 4)

	r, err := m.Cycle(context.Background())
	require.NoError(t, err)
	assert.True(t, r.OutOfRange)

	r, err = m.Cycle(context.Background())
	require.NoError(t, err)
	assert.False(t, r.OutOfRange)
	// 10k * 1500 / 2595 = 5780 -> 5k6
	assert.Equal(t, eseries.Value(5600), r.Nominal)
	for i, c := range r.Pixels {
		row, col := matrix.Serpentine(i, 5)
		if row == 2 && col == 0 {
			assert.Equal(t, bands.Off, c, "index %d", i)
		}
	}
}

func TestCycle_SourceError(t *testing.T) {
	boom := errors.New("adc fault")
	src := measure.SourceFunc(func(ctx context.Context) (uint16, error) {
		return 0, boom
	})
	m := newTestMeter(t, src, 10)

	_, err := m.Cycle(context.Background())
	assert.ErrorIs(t, err, boom)

	_, ok := m.Latest()
	assert.False(t, ok)
}

func TestLatest(t *testing.T) {
	m := newTestMeter(t, constSource(1000), 5)

	_, ok := m.Latest()
	assert.False(t, ok)

	r, err := m.Cycle(context.Background())
	require.NoError(t, err)

	latest, ok := m.Latest()
	require.True(t, ok)
	assert.Equal(t, r.Nominal, latest.Nominal)

	latest.Pixels[0] = color.RGBA{R: 1}
	again, _ := m.Latest()
	assert.NotEqual(t, latest.Pixels[0], again.Pixels[0], "Latest must return a copy")
}

func TestOnUpdate(t *testing.T) {
	m := newTestMeter(t, constSource(2048), 5)

	var got []Result
	m.OnUpdate(func(r Result) {
		got = append(got, r)
	})
	m.OnUpdate(nil)

	for i := 0; i < 3; i++ {
		_, err := m.Cycle(context.Background())
		require.NoError(t, err)
	}

	require.Len(t, got, 3)
	for _, r := range got {
		assert.Equal(t, eseries.Value(10000), r.Nominal)
		assert.Len(t, r.Pixels, 25)
	}
}

func TestRun_StopsWhenSourceCloses(t *testing.T) {
	src := &seqSource{codes: []uint16{2048, 4095, 1000}, batch: 3}
	m := newTestMeter(t, src, 3)

	var results []Result
	m.OnUpdate(func(r Result) {
		results = append(results, r)
	})

	err := m.Run(context.Background())
	assert.ErrorIs(t, err, measure.ErrSourceClosed)
	require.Len(t, results, 3)
	assert.False(t, results[0].OutOfRange)
	assert.True(t, results[1].OutOfRange)
	assert.False(t, results[2].OutOfRange)
}

func TestRun_ContextCancel(t *testing.T) {
	table := eseries.MustBuild(eseries.DefaultRange())
	opts := DefaultOptions()
	opts.BatchSize = 2
	opts.SampleInterval = 0
	opts.CycleDelay = time.Millisecond

	m := New(table, constSource(2048), opts)

	ctx, cancel := context.WithCancel(context.Background())
	cycles := make(chan struct{}, 100)
	m.OnUpdate(func(r Result) {
		select {
		case cycles <- struct{}{}:
		default:
		}
	})

	done := make(chan error, 1)
	go func() {
		done <- m.Run(ctx)
	}()

	select {
	case <-cycles:
	case <-time.After(2 * time.Second):
		t.Fatal("no cycle completed")
	}
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after cancel")
	}
}
