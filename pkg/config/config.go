package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/itohio/goohm/pkg/eseries"
	"github.com/itohio/goohm/pkg/matrix"
	"github.com/itohio/goohm/pkg/measure"
	"github.com/itohio/goohm/pkg/ohmmeter"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid configuration")

// Config represents the application configuration.
type Config struct {
	Serial     SerialConfig   `yaml:"serial"`
	Divider    DividerConfig  `yaml:"divider"`
	Sampling   SamplingConfig `yaml:"sampling"`
	Series     SeriesConfig   `yaml:"series"`
	Matrix     MatrixConfig   `yaml:"matrix"`
	CycleDelay time.Duration  `yaml:"cycle_delay"` // Pause between measurement cycles
	History    HistoryConfig  `yaml:"history"`
	Reset      ResetConfig    `yaml:"reset"`
	Mock       MockConfig     `yaml:"mock"`
}

// SerialConfig contains serial port configuration.
type SerialConfig struct {
	Port     string `yaml:"port"`
	BaudRate int    `yaml:"baud_rate"`
}

// DividerConfig contains voltage divider configuration.
type DividerConfig struct {
	KnownResistance float64 `yaml:"known_resistance"` // Reference resistor (Ω)
	FullScale       float64 `yaml:"full_scale"`       // ADC code at supply voltage
}

// SamplingConfig contains ADC sampling parameters.
type SamplingConfig struct {
	BatchSize int           `yaml:"batch_size"` // Samples averaged per measurement
	Interval  time.Duration `yaml:"interval"`   // Pause between samples
}

// SeriesConfig selects the standard values the measurement snaps to.
type SeriesConfig struct {
	MinOhm    uint32 `yaml:"min_ohm"`
	MaxOhm    uint32 `yaml:"max_ohm"`
	MinDecade int    `yaml:"min_decade"`
	MaxDecade int    `yaml:"max_decade"`
	Capacity  int    `yaml:"capacity"` // Maximum table size (0 = unbounded)
}

// MatrixConfig contains LED matrix geometry.
type MatrixConfig struct {
	Width          int `yaml:"width"`
	Height         int `yaml:"height"`
	Digit1Column   int `yaml:"digit1_column"`
	Digit2Column   int `yaml:"digit2_column"`
	ExponentColumn int `yaml:"exponent_column"`
}

// HistoryConfig controls the trend shown by the host.
type HistoryConfig struct {
	Window    time.Duration `yaml:"window"`
	MaxPoints int           `yaml:"max_points"` // Points drawn in the trend
}

// ResetConfig describes an optional GPIO line wired to the board's RUN pin.
type ResetConfig struct {
	GPIOChip string        `yaml:"gpio_chip"`
	GPIOLine int           `yaml:"gpio_line"` // -1 disables the GPIO reset
	Pulse    time.Duration `yaml:"pulse"`
}

// MockConfig contains mock device configuration.
type MockConfig struct {
	Resistance float64 `yaml:"resistance"` // Simulated resistor (Ω), 0 = open circuit
	Noise      float64 `yaml:"noise"`      // Peak noise in ADC codes
	Drift      float64 `yaml:"drift"`      // Relative resistance drift amplitude (0.01 = 1%)
}

// Default returns a default configuration with sensible values.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port:     "COM3", // Default for Windows, should be "/dev/ttyACM0" on Linux/Mac
			BaudRate: 115200,
		},
		Divider: DividerConfig{
			KnownResistance: 10000,
			FullScale:       4095,
		},
		Sampling: SamplingConfig{
			BatchSize: 500,
			Interval:  time.Millisecond,
		},
		Series: SeriesConfig{
			MinOhm:    510,
			MaxOhm:    100000,
			MinDecade: 1,
			MaxDecade: 4,
			Capacity:  64,
		},
		Matrix: MatrixConfig{
			Width:          5,
			Height:         5,
			Digit1Column:   3,
			Digit2Column:   2,
			ExponentColumn: 1,
		},
		CycleDelay: 500 * time.Millisecond,
		History: HistoryConfig{
			Window:    2 * time.Minute,
			MaxPoints: 500,
		},
		Reset: ResetConfig{
			GPIOChip: "gpiochip0",
			GPIOLine: -1,
			Pulse:    100 * time.Millisecond,
		},
		Mock: MockConfig{
			Resistance: 4700,
			Noise:      6,
			Drift:      0.002,
		},
	}
}

// Load loads configuration from a YAML file. If the file doesn't exist or
// fields are missing, it uses default values.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			// File doesn't exist, return defaults
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Ensure minimum required fields are set (use defaults if missing)
	cfg.ensureDefaults()

	return cfg, nil
}

// Save saves the configuration to a YAML file.
func (c *Config) Save(filename string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ensureDefaults ensures that all required fields have default values if missing.
func (c *Config) ensureDefaults() {
	def := Default()

	if c.Serial.Port == "" {
		c.Serial.Port = def.Serial.Port
	}
	if c.Serial.BaudRate == 0 {
		c.Serial.BaudRate = def.Serial.BaudRate
	}

	if c.Divider.KnownResistance == 0 {
		c.Divider.KnownResistance = def.Divider.KnownResistance
	}
	if c.Divider.FullScale == 0 {
		c.Divider.FullScale = def.Divider.FullScale
	}

	if c.Sampling.BatchSize == 0 {
		c.Sampling.BatchSize = def.Sampling.BatchSize
	}

	// A zero range means the section was left out
	if c.Series.MinOhm == 0 && c.Series.MaxOhm == 0 {
		c.Series = def.Series
	}

	if c.Matrix.Width == 0 || c.Matrix.Height == 0 {
		c.Matrix = def.Matrix
	}

	if c.CycleDelay == 0 {
		c.CycleDelay = def.CycleDelay
	}

	if c.History.Window == 0 {
		c.History.Window = def.History.Window
	}
	if c.History.MaxPoints == 0 {
		c.History.MaxPoints = def.History.MaxPoints
	}

	if c.Reset.GPIOChip == "" {
		c.Reset.GPIOChip = def.Reset.GPIOChip
	}
	if c.Reset.Pulse == 0 {
		c.Reset.Pulse = def.Reset.Pulse
	}
}

// Validate checks the values the measurement chain depends on. It does not
// build the standard value table; Range errors surface from eseries.Build.
func (c *Config) Validate() error {
	if c.Divider.KnownResistance <= 0 {
		return fmt.Errorf("%w: known resistance %v", ErrInvalid, c.Divider.KnownResistance)
	}
	if c.Divider.FullScale <= 0 {
		return fmt.Errorf("%w: full scale %v", ErrInvalid, c.Divider.FullScale)
	}
	if c.Sampling.BatchSize <= 0 {
		return fmt.Errorf("%w: batch size %d", ErrInvalid, c.Sampling.BatchSize)
	}
	if c.Sampling.Interval < 0 || c.CycleDelay < 0 {
		return fmt.Errorf("%w: negative delay", ErrInvalid)
	}
	if c.Series.MinOhm > c.Series.MaxOhm {
		return fmt.Errorf("%w: series range %d..%d", ErrInvalid, c.Series.MinOhm, c.Series.MaxOhm)
	}
	if err := c.Layout().Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalid, err)
	}
	return nil
}

// Range returns the standard value table range.
func (c *Config) Range() eseries.Range {
	return eseries.Range{
		MinOhm:    c.Series.MinOhm,
		MaxOhm:    c.Series.MaxOhm,
		MinDecade: c.Series.MinDecade,
		MaxDecade: c.Series.MaxDecade,
		Capacity:  c.Series.Capacity,
	}
}

// Circuit returns the measurement divider.
func (c *Config) Circuit() measure.Divider {
	return measure.Divider{
		KnownOhm:  float32(c.Divider.KnownResistance),
		FullScale: float32(c.Divider.FullScale),
	}
}

// Layout returns the LED matrix layout.
func (c *Config) Layout() matrix.Layout {
	return matrix.Layout{
		Width:          c.Matrix.Width,
		Height:         c.Matrix.Height,
		Digit1Column:   c.Matrix.Digit1Column,
		Digit2Column:   c.Matrix.Digit2Column,
		ExponentColumn: c.Matrix.ExponentColumn,
	}
}

// MeterOptions returns the pipeline options.
func (c *Config) MeterOptions() ohmmeter.Options {
	opts := ohmmeter.DefaultOptions()
	opts.Divider = c.Circuit()
	opts.BatchSize = c.Sampling.BatchSize
	opts.SampleInterval = c.Sampling.Interval
	opts.CycleDelay = c.CycleDelay
	opts.Layout = c.Layout()
	return opts
}
