package config

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/RobertPaulig/SpectralPhysics-Lab/diagnostics"
	"github.com/RobertPaulig/SpectralPhysics-Lab/spectrum"
)

var (
	// ErrCannotLoad reports an unreadable or unparsable configuration file.
	ErrCannotLoad = errors.New("config: cannot load")
	// ErrInvalid reports a configuration that parsed but fails validation.
	ErrInvalid = errors.New("config: invalid")
)

// Channel describes one measurement channel of the diagnostics pipeline.
type Channel struct {
	Dt        float64  `yaml:"dt"`
	Window    string   `yaml:"window"`
	FreqMin   float64  `yaml:"freq_min"`
	FreqMax   float64  `yaml:"freq_max"`
	Column    int      `yaml:"column"`
	Threshold float64  `yaml:"threshold"`
	Files     []string `yaml:"files"`
}

// GridSpec describes a 2D oscillator grid for the NDT workflow. NumSamples
// and NoiseLevel feed the baseline builder; both default to the degenerate
// noiseless single-sample baseline when omitted.
type GridSpec struct {
	Nx         int        `yaml:"nx"`
	Ny         int        `yaml:"ny"`
	Kx         float64    `yaml:"kx"`
	Ky         float64    `yaml:"ky"`
	Mass       float64    `yaml:"m"`
	NumModes   int        `yaml:"n_modes"`
	FreqWindow [2]float64 `yaml:"freq_window"`
	Threshold  float64    `yaml:"threshold"`
	NumSamples int        `yaml:"n_samples"`
	NoiseLevel float64    `yaml:"noise_level"`
	Seed       int64      `yaml:"seed"`
}

// Config is the root document.
type Config struct {
	Channels map[string]Channel  `yaml:"channels"`
	Grids    map[string]GridSpec `yaml:"grids"`
}

// Load reads and validates a YAML configuration file.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCannotLoad, path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return nil, fmt.Errorf("%w %s: %v", ErrCannotLoad, path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	for name, ch := range c.Channels {
		if ch.Dt <= 0 {
			return fmt.Errorf("%w: channel %q: dt must be positive", ErrInvalid, name)
		}
		switch ch.Window {
		case "", "hann", "none":
		default:
			return fmt.Errorf("%w: channel %q: unknown window %q", ErrInvalid, name, ch.Window)
		}
		if ch.Column < 0 {
			return fmt.Errorf("%w: channel %q: column must not be negative", ErrInvalid, name)
		}
	}
	for name, g := range c.Grids {
		if g.Nx < 1 || g.Ny < 1 {
			return fmt.Errorf("%w: grid %q: nx and ny must be at least 1", ErrInvalid, name)
		}
		if g.Kx <= 0 || g.Ky <= 0 || g.Mass <= 0 {
			return fmt.Errorf("%w: grid %q: kx, ky and m must be positive", ErrInvalid, name)
		}
		if g.NumModes < 1 {
			return fmt.Errorf("%w: grid %q: n_modes must be at least 1", ErrInvalid, name)
		}
		if g.FreqWindow[1] < g.FreqWindow[0] {
			return fmt.Errorf("%w: grid %q: freq_window is reversed", ErrInvalid, name)
		}
		if g.NumSamples < 0 {
			return fmt.Errorf("%w: grid %q: n_samples must not be negative", ErrInvalid, name)
		}
		if g.NoiseLevel < 0 {
			return fmt.Errorf("%w: grid %q: noise_level must not be negative", ErrInvalid, name)
		}
	}
	return nil
}

// ChannelConfig converts a channel entry into the analyzer configuration.
func (ch Channel) ChannelConfig(name string) diagnostics.ChannelConfig {
	window := diagnostics.WindowHann
	if ch.Window == "none" {
		window = diagnostics.WindowNone
	}
	return diagnostics.ChannelConfig{
		Name:    name,
		Dt:      ch.Dt,
		Window:  window,
		FreqMin: ch.FreqMin,
		FreqMax: ch.FreqMax,
	}
}

// Band returns the grid's frequency window as a spectrum band.
func (g GridSpec) Band() spectrum.Band {
	return spectrum.Band{Min: g.FreqWindow[0], Max: g.FreqWindow[1]}
}
