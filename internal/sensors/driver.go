// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/relabs-tech/magnetometer/internal/bus"
	"github.com/relabs-tech/magnetometer/internal/mag"
)

var (
	// ErrDeviceNotFound means the identity register did not hold the
	// expected value: wrong chip, wrong address or bad wiring.
	ErrDeviceNotFound = errors.New("device not found, check your wiring")

	// ErrContinuousMode is returned when a measurement that needs
	// single-shot mode is requested while the chip free-runs.
	ErrContinuousMode = errors.New("only available when not in continuous mode")

	// ErrPollTimeout is returned when a measurement-ready bit does not set
	// within Opts.PollTimeout.
	ErrPollTimeout = errors.New("timed out waiting for measurement")
)

// Driver is one magnetometer chip session. Drivers are not safe for
// concurrent use.
type Driver interface {
	Name() string

	// Scales lists the full-scale ranges in µT, narrowest first. Empty
	// means the range is fixed and auto-ranging does not apply.
	Scales() []float64

	Init(ctx context.Context) error
	Reset(ctx context.Context) error

	// Read averages samples conversions taken at full-scale index scale.
	Read(ctx context.Context, scale, samples int) (mag.Reading, error)
}

// Thermometer is implemented by drivers that expose the die temperature.
type Thermometer interface {
	Temperature(ctx context.Context) (float64, error)
}

// Opts tunes driver behaviour. Zero values fall back to DefaultOpts.
type Opts struct {
	// PollInterval is the wait between status reads in single-shot mode.
	PollInterval time.Duration
	// PollTimeout bounds the status poll. Zero waits forever.
	PollTimeout time.Duration

	MMC5603DataRate   int
	MMC5603Continuous bool
}

var DefaultOpts = Opts{
	PollInterval:      5 * time.Millisecond,
	MMC5603DataRate:   1000,
	MMC5603Continuous: true,
}

func (o Opts) withDefaults() Opts {
	if o.PollInterval <= 0 {
		o.PollInterval = DefaultOpts.PollInterval
	}
	return o
}

func readReg(t bus.Transport, reg byte) (byte, error) {
	r, err := t.WriteThenRead([]byte{reg}, 1)
	if err != nil {
		return 0, err
	}
	return r[0], nil
}

func writeReg(t bus.Transport, reg, val byte) error {
	return t.Write([]byte{reg, val})
}

// checkID compares an identity register against the expected value.
func checkID(t bus.Transport, chip string, reg, want byte) error {
	id, err := readReg(t, reg)
	if err != nil {
		return fmt.Errorf("%s: read id register 0x%02X: %w", chip, reg, err)
	}
	if id != want {
		return fmt.Errorf("%s: id 0x%02X, want 0x%02X: %w", chip, id, want, ErrDeviceNotFound)
	}
	return nil
}
