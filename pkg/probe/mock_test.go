package probe

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/goohm/pkg/config"
	"github.com/itohio/goohm/pkg/measure"
)

func quietConfig(resistance float64) *config.Config {
	cfg := config.Default()
	cfg.Mock = config.MockConfig{Resistance: resistance}
	return cfg
}

func TestNewMock(t *testing.T) {
	cfg := config.Default()
	mock := NewMock(cfg)
	require.NotNil(t, mock)

	assert.Equal(t, cfg.Mock, mock.cfg)
	assert.Equal(t, cfg.Sampling.Interval, mock.interval)
	assert.Equal(t, cfg.Sampling.BatchSize, mock.batch)
	assert.Equal(t, cfg.CycleDelay, mock.pause)
	assert.False(t, mock.IsConnected())
}

func TestNewMock_NilConfig(t *testing.T) {
	mock := NewMock(nil)
	require.NotNil(t, mock)

	assert.Equal(t, config.Default().Mock, mock.cfg)
}

func TestNewMock_ZeroInterval(t *testing.T) {
	cfg := config.Default()
	cfg.Sampling.Interval = 0

	mock := NewMock(cfg)
	assert.Equal(t, time.Millisecond, mock.interval)
}

func TestMock_Reading(t *testing.T) {
	tests := []struct {
		name       string
		resistance float64
		want       uint16
	}{
		{"equal to reference", 10000, 2048},
		{"small resistor", 1000, 372},
		{"open circuit", 0, 4095},
		{"negative is open", -1, 4095},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := NewMock(quietConfig(tt.resistance))
			assert.Equal(t, tt.want, mock.reading(tt.resistance, 0))
		})
	}
}

func TestMock_ReadingResolvesBack(t *testing.T) {
	cfg := quietConfig(4700)
	mock := NewMock(cfg)

	r, err := cfg.Circuit().Resistance(float32(mock.reading(4700, 0)))
	require.NoError(t, err)
	assert.InDelta(t, 4700, r, 20)
}

func TestMock_Samples(t *testing.T) {
	mock := NewMock(quietConfig(10000))
	require.NoError(t, mock.Connect())
	defer mock.Close()

	assert.ErrorIs(t, mock.Connect(), ErrAlreadyConnected)

	select {
	case s := <-mock.Samples():
		assert.Equal(t, uint16(2048), s.Reading)
		assert.False(t, s.Timestamp.IsZero())
	case <-time.After(time.Second):
		t.Fatal("no sample from mock")
	}
}

func TestMock_PacedInBatches(t *testing.T) {
	cfg := quietConfig(10000)
	cfg.Sampling.BatchSize = 10
	cfg.CycleDelay = 300 * time.Millisecond

	mock := NewMock(cfg)
	require.NoError(t, mock.Connect())
	defer mock.Close()

	// One burst arrives, then the device goes quiet for the cycle delay
	time.Sleep(150 * time.Millisecond)
	assert.Len(t, mock.Samples(), 10)

	// The next burst follows the pause
	assert.Eventually(t, func() bool {
		return len(mock.Samples()) == 20
	}, time.Second, 5*time.Millisecond)
}

func TestMock_SetResistanceReachesNextBatch(t *testing.T) {
	cfg := quietConfig(10000)
	cfg.Sampling.BatchSize = 5
	cfg.CycleDelay = 50 * time.Millisecond

	mock := NewMock(cfg)
	require.NoError(t, mock.Connect())
	defer mock.Close()

	// Consume the first burst like the meter does, then swap the resistor
	for range 5 {
		s := <-mock.Samples()
		assert.Equal(t, uint16(2048), s.Reading)
	}
	mock.SetResistance(0)

	select {
	case s := <-mock.Samples():
		assert.Equal(t, uint16(4095), s.Reading)
	case <-time.After(time.Second):
		t.Fatal("no sample after the pause")
	}
}

func TestMock_SetResistanceAndReset(t *testing.T) {
	mock := NewMock(quietConfig(10000))
	assert.ErrorIs(t, mock.Reset(), ErrNotConnected)

	require.NoError(t, mock.Connect())
	defer mock.Close()

	mock.SetResistance(0)
	mock.mu.RLock()
	assert.Equal(t, 0.0, mock.resistance)
	mock.mu.RUnlock()

	require.NoError(t, mock.Reset())
	mock.mu.RLock()
	assert.Equal(t, 10000.0, mock.resistance)
	mock.mu.RUnlock()
}

func TestSource(t *testing.T) {
	mock := NewMock(quietConfig(10000))
	require.NoError(t, mock.Connect())

	src := Source(mock)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	v, err := src.Read(ctx)
	require.NoError(t, err)
	assert.Equal(t, uint16(2048), v)

	require.NoError(t, mock.Close())

	// Drain whatever was buffered before Close
	for {
		_, err = src.Read(ctx)
		if err != nil {
			break
		}
	}
	assert.ErrorIs(t, err, measure.ErrSourceClosed)
}

func TestSource_ContextCancelled(t *testing.T) {
	mock := NewMock(quietConfig(10000))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Source(mock).Read(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
