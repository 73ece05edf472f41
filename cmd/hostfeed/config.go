// cmd/hostfeed/config.go
package main

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"mixdeck-go/hal"
)

// Config drives the synthetic deck: which serial port receives the wire
// stream and how the fake sliders and switches move.
type Config struct {
	Serial SerialConfig `yaml:"serial"`
	Synth  SynthConfig  `yaml:"synth"`
}

// SerialConfig names the port the wire stream is written to.
type SerialConfig struct {
	Port string `yaml:"port"`
	Baud int    `yaml:"baud"`
}

// SynthConfig shapes the synthetic input motion.
type SynthConfig struct {
	// SweepPeriod is one full bottom-to-top-to-bottom slider traversal.
	// Channels are phase-staggered so frames are visibly distinct.
	SweepPeriod time.Duration `yaml:"sweep_period"`

	// PressEvery fires a press-and-release on each switch in turn.
	// Zero disables synthetic presses.
	PressEvery time.Duration `yaml:"press_every"`

	// HoldFor is how long a synthetic press stays LOW. Must exceed the
	// debounce window or the release never registers.
	HoldFor time.Duration `yaml:"hold_for"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Serial: SerialConfig{
			Port: "/dev/ttyACM0",
			Baud: hal.WireBaud,
		},
		Synth: SynthConfig{
			SweepPeriod: 10 * time.Second,
			PressEvery:  5 * time.Second,
			HoldFor:     200 * time.Millisecond,
		},
	}
}

// Load loads configuration from a YAML file. A missing file and unset fields
// fall back to defaults.
func Load(filename string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	cfg.ensureDefaults()
	return cfg, nil
}

func (c *Config) ensureDefaults() {
	d := Default()
	if c.Serial.Port == "" {
		c.Serial.Port = d.Serial.Port
	}
	if c.Serial.Baud <= 0 {
		c.Serial.Baud = d.Serial.Baud
	}
	if c.Synth.SweepPeriod <= 0 {
		c.Synth.SweepPeriod = d.Synth.SweepPeriod
	}
	if c.Synth.HoldFor <= 0 {
		c.Synth.HoldFor = d.Synth.HoldFor
	}
	// PressEvery zero is meaningful: presses disabled.
}
