package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/goohm/pkg/bands"
	"github.com/itohio/goohm/pkg/config"
	"github.com/itohio/goohm/pkg/eseries"
	"github.com/itohio/goohm/pkg/history"
	"github.com/itohio/goohm/pkg/measure"
	"github.com/itohio/goohm/pkg/ohmmeter"
)

func TestStatusText(t *testing.T) {
	assert.Equal(t, "No results", statusText(history.Stats{}))

	now := time.Now()
	results := []ohmmeter.Result{
		{Timestamp: now, OutOfRange: true},
		{
			Timestamp: now.Add(time.Second),
			Reading:   measure.Reading{Resistance: 4690},
			Nominal:   eseries.Value(4700),
			Bands:     bands.Decompose(4700),
		},
	}

	assert.Equal(t,
		"4.7kΩ (4.69kΩ)  Yellow Violet Red  |  2 results, 1 open, min 4.69kΩ, max 4.69kΩ, mean 4.69kΩ",
		statusText(history.Summarize(results)))

	assert.Equal(t, "OPEN  |  1 results, 1 open", statusText(history.Summarize(results[:1])))
}

func TestApplyConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.Default()

	err := applyConfig(cfg, path, func(c *config.Config) {
		c.Divider.KnownResistance = 4700
		c.CycleDelay = time.Second
	})
	require.NoError(t, err)
	assert.Equal(t, 4700.0, cfg.Divider.KnownResistance)
	assert.Equal(t, time.Second, cfg.CycleDelay)

	loaded, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyConfig_InvalidKeepsLiveConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cfg := config.Default()
	before := *cfg

	tests := []struct {
		name string
		edit func(c *config.Config)
	}{
		{"negative reference", func(c *config.Config) { c.Divider.KnownResistance = -5 }},
		{"zero batch", func(c *config.Config) { c.Sampling.BatchSize = 0 }},
		{"negative cycle delay", func(c *config.Config) { c.CycleDelay = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := applyConfig(cfg, path, tt.edit)
			assert.ErrorIs(t, err, config.ErrInvalid)
			assert.Equal(t, before, *cfg)
			assert.NoFileExists(t, path)
		})
	}

	// A later valid edit in another section still saves
	require.NoError(t, applyConfig(cfg, path, func(c *config.Config) { c.History.MaxPoints = 100 }))
	assert.Equal(t, 100, cfg.History.MaxPoints)
	assert.FileExists(t, path)
}
