package probe

import (
	"errors"
	"fmt"
	"time"

	"github.com/itohio/goohm/pkg/config"
)

// ErrResetDisabled is returned when no reset line is configured.
var ErrResetDisabled = errors.New("gpio reset disabled")

// outputLine is the part of a requested GPIO line the reset pulse needs.
type outputLine interface {
	SetValue(value int) error
	Close() error
}

// GPIOReset resets the board by pulling its RUN pin low through a host GPIO line.
type GPIOReset struct {
	chip   string
	offset int
	pulse  time.Duration

	request func(chip string, offset int) (outputLine, error)
	sleep   func(time.Duration)
}

// Ensure GPIOReset implements Resetter.
var _ Resetter = (*GPIOReset)(nil)

// NewGPIOReset creates a reset line from cfg. It returns ErrResetDisabled when
// the line offset is negative.
func NewGPIOReset(cfg config.ResetConfig) (*GPIOReset, error) {
	if cfg.GPIOLine < 0 {
		return nil, ErrResetDisabled
	}
	return &GPIOReset{
		chip:    cfg.GPIOChip,
		offset:  cfg.GPIOLine,
		pulse:   cfg.Pulse,
		request: requestOutput,
		sleep:   time.Sleep,
	}, nil
}

// Reset drives the line low for the pulse duration and releases it high.
// The line is only held for the duration of the pulse.
func (g *GPIOReset) Reset() error {
	line, err := g.request(g.chip, g.offset)
	if err != nil {
		return fmt.Errorf("failed to request %s line %d: %w", g.chip, g.offset, err)
	}

	err = line.SetValue(0)
	if err == nil {
		g.sleep(g.pulse)
		err = line.SetValue(1)
	}

	return errors.Join(err, line.Close())
}
