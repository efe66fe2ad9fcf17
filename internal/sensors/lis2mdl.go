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

// LIS2MDL drives an ST LIS2MDL. The range is fixed at ±50 gauss.
type LIS2MDL struct {
	t   bus.Transport
	cfg codec.LIS2MDLConfig
}

func NewLIS2MDL(t bus.Transport, _ Opts) *LIS2MDL {
	return &LIS2MDL{
		t: t,
		cfg: codec.LIS2MDLConfig{
			TempCompensation: true,
			Rate:             codec.LIS2MDLRate100Hz,
		},
	}
}

func (d *LIS2MDL) Name() string      { return "lis2mdl" }
func (d *LIS2MDL) Scales() []float64 { return []float64{5000} }

func (d *LIS2MDL) Init(ctx context.Context) error {
	if err := checkID(d.t, "lis2mdl", codec.LIS2MDLRegWhoAmI, codec.LIS2MDLChipID); err != nil {
		return err
	}
	if err := d.Reset(ctx); err != nil {
		return err
	}
	if err := writeReg(d.t, codec.LIS2MDLRegCfgC, codec.LIS2MDLBDU); err != nil {
		return fmt.Errorf("lis2mdl: write cfg_c: %w", err)
	}
	if err := writeReg(d.t, codec.LIS2MDLRegCfgA, d.cfg.Encode()); err != nil {
		return fmt.Errorf("lis2mdl: write cfg_a: %w", err)
	}
	log.WithField("sensor", d.Name()).Info("lis2mdl: ready, 100 Hz continuous")
	return nil
}

func (d *LIS2MDL) Reset(ctx context.Context) error {
	if err := writeReg(d.t, codec.LIS2MDLRegCfgA, codec.LIS2MDLSoftRst); err != nil {
		return fmt.Errorf("lis2mdl: soft reset: %w", err)
	}
	time.Sleep(5 * time.Millisecond)
	if err := writeReg(d.t, codec.LIS2MDLRegCfgA, codec.LIS2MDLReboot); err != nil {
		return fmt.Errorf("lis2mdl: reboot: %w", err)
	}
	time.Sleep(5 * time.Millisecond)
	return nil
}

// Read ignores scale, the range is fixed.
func (d *LIS2MDL) Read(ctx context.Context, _ int, samples int) (mag.Reading, error) {
	return Average(ctx, samples, d.sample)
}

func (d *LIS2MDL) sample(context.Context) (mag.Reading, error) {
	buf, err := d.t.WriteThenRead([]byte{codec.LIS2MDLRegOutXL}, codec.LIS2MDLFieldSize)
	if err != nil {
		return mag.Reading{}, fmt.Errorf("lis2mdl: read field: %w", err)
	}
	return codec.DecodeLIS2MDL(buf), nil
}
