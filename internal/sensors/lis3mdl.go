// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/magnetometer/internal/bus"
	"github.com/relabs-tech/magnetometer/internal/codec"
	"github.com/relabs-tech/magnetometer/internal/mag"
)

// LIS3MDL drives an ST LIS3MDL with four selectable ranges.
type LIS3MDL struct {
	t   bus.Transport
	rng int
}

func NewLIS3MDL(t bus.Transport, _ Opts) *LIS3MDL {
	return &LIS3MDL{t: t}
}

func (d *LIS3MDL) Name() string { return "lis3mdl" }

// Scales are ±4, ±8, ±12 and ±16 gauss in µT.
func (d *LIS3MDL) Scales() []float64 { return []float64{400, 800, 1200, 1600} }

func (d *LIS3MDL) Init(ctx context.Context) error {
	if err := checkID(d.t, "lis3mdl", codec.LIS3MDLRegWhoAmI, codec.LIS3MDLChipID); err != nil {
		return err
	}
	if err := d.Reset(ctx); err != nil {
		return err
	}
	steps := []struct {
		name     string
		reg, val byte
	}{
		{"ctrl1", codec.LIS3MDLRegCtrl1, codec.LIS3MDLCtrl1UltraHigh155},
		{"ctrl4", codec.LIS3MDLRegCtrl4, codec.LIS3MDLCtrl4UltraHighZ},
		{"ctrl2", codec.LIS3MDLRegCtrl2, codec.LIS3MDLCtrl2(0)},
		{"ctrl3", codec.LIS3MDLRegCtrl3, codec.LIS3MDLCtrl3Continuous},
	}
	for _, s := range steps {
		if err := writeReg(d.t, s.reg, s.val); err != nil {
			return fmt.Errorf("lis3mdl: write %s: %w", s.name, err)
		}
	}
	d.rng = 0
	log.WithField("sensor", d.Name()).Info("lis3mdl: ready, ultra-high performance 155 Hz, ±4 gauss")
	return nil
}

// Reset reboots memory content and clears the configuration registers.
func (d *LIS3MDL) Reset(ctx context.Context) error {
	if err := writeReg(d.t, codec.LIS3MDLRegCtrl2, codec.LIS3MDLSoftReset); err != nil {
		return fmt.Errorf("lis3mdl: soft reset: %w", err)
	}
	time.Sleep(10 * time.Millisecond)
	d.rng = 0
	return nil
}

// Read selects the range at index scale, clamped to the table, and
// averages samples conversions.
func (d *LIS3MDL) Read(ctx context.Context, scale, samples int) (mag.Reading, error) {
	scale = max(0, min(scale, codec.LIS3MDLRanges()-1))
	if scale != d.rng {
		if err := writeReg(d.t, codec.LIS3MDLRegCtrl2, codec.LIS3MDLCtrl2(scale)); err != nil {
			return mag.Reading{}, fmt.Errorf("lis3mdl: set range %d: %w", scale, err)
		}
		log.WithField("sensor", d.Name()).Debugf("lis3mdl: range -> %d", scale)
		d.rng = scale
	}
	return Average(ctx, samples, d.sample)
}

func (d *LIS3MDL) sample(context.Context) (mag.Reading, error) {
	buf, err := d.t.WriteThenRead([]byte{codec.LIS3MDLRegOutXL}, codec.LIS3MDLFieldSize)
	if err != nil {
		return mag.Reading{}, fmt.Errorf("lis3mdl: read field: %w", err)
	}
	return codec.DecodeLIS3MDL(buf, d.rng), nil
}
