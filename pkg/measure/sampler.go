package measure

import (
	"context"
	"errors"
	"time"
)

// ErrSourceClosed is returned by a Source that will never produce another sample.
var ErrSourceClosed = errors.New("measure: source closed")

// Source reads one analog sample.
type Source interface {
	Read(ctx context.Context) (uint16, error)
}

// SourceFunc adapts a function to a Source.
type SourceFunc func(ctx context.Context) (uint16, error)

// Read calls f.
func (f SourceFunc) Read(ctx context.Context) (uint16, error) {
	return f(ctx)
}

// SleepFunc waits for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Sleep is the default SleepFunc.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// Sampler reads fixed-size batches from a Source, waiting a fixed interval
// after every sample. The pacing spreads the batch over time so averaging
// cancels out periodic noise.
type Sampler struct {
	src      Source
	size     int
	interval time.Duration
	sleep    SleepFunc
	buf      []uint16
}

// NewSampler creates a sampler. A nil sleep uses Sleep.
func NewSampler(src Source, size int, interval time.Duration, sleep SleepFunc) *Sampler {
	if size <= 0 {
		size = 1
	}
	if sleep == nil {
		sleep = Sleep
	}
	return &Sampler{
		src:      src,
		size:     size,
		interval: interval,
		sleep:    sleep,
		buf:      make([]uint16, 0, size),
	}
}

// Size returns the batch size.
func (s *Sampler) Size() int {
	return s.size
}

// Collect reads one batch. The returned slice is reused by the next call.
func (s *Sampler) Collect(ctx context.Context) ([]uint16, error) {
	s.buf = s.buf[:0]
	for len(s.buf) < s.size {
		v, err := s.src.Read(ctx)
		if err != nil {
			return nil, err
		}
		s.buf = append(s.buf, v)

		if s.interval > 0 {
			if err := s.sleep(ctx, s.interval); err != nil {
				return nil, err
			}
		}
	}
	return s.buf, nil
}
