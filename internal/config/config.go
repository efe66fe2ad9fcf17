// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/relabs-tech/magnetometer/internal/bus"
	"github.com/relabs-tech/magnetometer/internal/codec"
	"github.com/relabs-tech/magnetometer/internal/sensors"
)

// Config holds all application configuration values.
type Config struct {
	Sensor   string         `yaml:"sensor"`
	Bus      BusConfig      `yaml:"bus"`
	Sampling SamplingConfig `yaml:"sampling"`
	History  HistoryConfig  `yaml:"history"`
	MMC5603  MMC5603Config  `yaml:"mmc5603"`
	Display  DisplayConfig  `yaml:"display"`
	Log      LogConfig      `yaml:"log"`
}

type BusConfig struct {
	Backend string `yaml:"backend"` // periph, embd or gobot
	Name    string `yaml:"name"`    // bus name or number, empty for the first one
	Address uint16 `yaml:"address"` // 0 uses the sensor's default address
}

type SamplingConfig struct {
	IntervalMS     int     `yaml:"interval_ms"`
	Oversample     int     `yaml:"oversample"` // reads averaged per sample
	Threshold      float64 `yaml:"threshold"`  // auto-range fraction of full scale
	PollIntervalMS int     `yaml:"poll_interval_ms"`
	PollTimeoutMS  int     `yaml:"poll_timeout_ms"` // 0 waits forever
}

type HistoryConfig struct {
	Length int `yaml:"length"`
}

type MMC5603Config struct {
	DataRate   int  `yaml:"data_rate"` // 0-255 or 1000 Hz
	Continuous bool `yaml:"continuous"`
}

// DisplayConfig drives the optional SSD1306 readout.
type DisplayConfig struct {
	Enabled    bool   `yaml:"enabled"`
	Bus        string `yaml:"bus"`
	Address    uint16 `yaml:"address"`
	IntervalMS int    `yaml:"interval_ms"`
}

type LogConfig struct {
	File  string `yaml:"file"` // empty discards logs
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		Sensor: sensors.DefaultSensor,
		Bus:    BusConfig{Backend: "periph"},
		Sampling: SamplingConfig{
			IntervalMS:     100,
			Oversample:     16,
			Threshold:      0.9,
			PollIntervalMS: 5,
		},
		History: HistoryConfig{Length: 1024},
		MMC5603: MMC5603Config{DataRate: 1000, Continuous: true},
		Display: DisplayConfig{Address: 0x3C, IntervalMS: 500},
		Log:     LogConfig{Level: "info"},
	}
}

// Load reads a YAML file over the defaults. An empty path returns the
// defaults. Unknown keys are rejected.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", configPath, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", configPath, err)
	}
	return cfg, nil
}

// Validate checks ranges and names. It runs again after flag overrides.
func (c *Config) Validate() error {
	if _, err := sensors.Lookup(c.Sensor); err != nil {
		return fmt.Errorf("sensor: %w", err)
	}
	if !slices.Contains(bus.Backends(), c.Bus.Backend) {
		return fmt.Errorf("bus.backend %q: %w", c.Bus.Backend, bus.ErrUnknownBackend)
	}
	if c.Bus.Address > 0x7F {
		return fmt.Errorf("bus.address 0x%X is not a 7-bit address", c.Bus.Address)
	}
	if c.Sampling.IntervalMS <= 0 {
		return fmt.Errorf("sampling.interval_ms must be positive, got %d", c.Sampling.IntervalMS)
	}
	if c.Sampling.Oversample < 1 {
		return fmt.Errorf("sampling.oversample must be at least 1, got %d", c.Sampling.Oversample)
	}
	if c.Sampling.Threshold <= 0 || c.Sampling.Threshold > 1 {
		return fmt.Errorf("sampling.threshold must be in (0, 1], got %v", c.Sampling.Threshold)
	}
	if c.Sampling.PollIntervalMS <= 0 {
		return fmt.Errorf("sampling.poll_interval_ms must be positive, got %d", c.Sampling.PollIntervalMS)
	}
	if c.Sampling.PollTimeoutMS < 0 {
		return fmt.Errorf("sampling.poll_timeout_ms must not be negative, got %d", c.Sampling.PollTimeoutMS)
	}
	if c.History.Length < 1 {
		return fmt.Errorf("history.length must be at least 1, got %d", c.History.Length)
	}
	if !codec.ValidMMC5603DataRate(c.MMC5603.DataRate) {
		return fmt.Errorf("mmc5603.data_rate must be 0-255 or 1000, got %d", c.MMC5603.DataRate)
	}
	if c.Display.Enabled {
		if c.Display.Address == 0 || c.Display.Address > 0x7F {
			return fmt.Errorf("display.address 0x%X is not a 7-bit address", c.Display.Address)
		}
		if c.Display.IntervalMS <= 0 {
			return fmt.Errorf("display.interval_ms must be positive, got %d", c.Display.IntervalMS)
		}
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	return nil
}

func (c *Config) Interval() time.Duration {
	return time.Duration(c.Sampling.IntervalMS) * time.Millisecond
}

func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Sampling.PollIntervalMS) * time.Millisecond
}

func (c *Config) PollTimeout() time.Duration {
	return time.Duration(c.Sampling.PollTimeoutMS) * time.Millisecond
}

func (c *Config) DisplayInterval() time.Duration {
	return time.Duration(c.Display.IntervalMS) * time.Millisecond
}

// SensorOpts maps the sampling and chip sections onto driver options.
func (c *Config) SensorOpts() sensors.Opts {
	return sensors.Opts{
		PollInterval:      c.PollInterval(),
		PollTimeout:       c.PollTimeout(),
		MMC5603DataRate:   c.MMC5603.DataRate,
		MMC5603Continuous: c.MMC5603.Continuous,
	}
}
