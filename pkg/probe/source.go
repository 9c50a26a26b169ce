package probe

import (
	"context"

	"github.com/itohio/goohm/pkg/measure"
)

// Source adapts a device's sample stream to measure.Source. Once the sample
// channel is closed every Read returns measure.ErrSourceClosed.
func Source(dev Device) measure.Source {
	samples := dev.Samples()
	return measure.SourceFunc(func(ctx context.Context) (uint16, error) {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		case s, ok := <-samples:
			if !ok {
				return 0, measure.ErrSourceClosed
			}
			return s.Reading, nil
		}
	})
}
