// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/magnetometer/internal/bus"
	"github.com/relabs-tech/magnetometer/internal/codec"
	"github.com/relabs-tech/magnetometer/internal/mag"
)

// TLV493D drives an Infineon TLV493D-A1B6 in master-controlled mode.
// The chip has no register pointer: every read returns the full 10-byte
// block and every write replaces the 4 control bytes.
type TLV493D struct {
	t     bus.Transport
	write []byte
}

func NewTLV493D(t bus.Transport, _ Opts) *TLV493D {
	return &TLV493D{t: t}
}

func (d *TLV493D) Name() string      { return "tlv493d" }
func (d *TLV493D) Scales() []float64 { return []float64{130000} }

// Init reads the factory block, keeps its reserved bits and enables fast,
// low-power, master-controlled conversion. A successful read is the only
// identification the chip offers.
func (d *TLV493D) Init(ctx context.Context) error {
	read, err := d.t.Read(codec.TLV493DReadSize)
	if err != nil {
		return fmt.Errorf("tlv493d: initial read: %w: %w", ErrDeviceNotFound, err)
	}
	d.write = codec.TLV493DInitWrite(read, 0)
	if err := d.t.Write(d.write); err != nil {
		return fmt.Errorf("tlv493d: write config: %w", err)
	}
	log.WithField("sensor", d.Name()).Infof("tlv493d: ready, config % X", d.write)
	return nil
}

// Reset rewrites the control bytes. The general reset lives on I2C address
// 0x00 which a fixed-address transport cannot reach.
func (d *TLV493D) Reset(ctx context.Context) error {
	if d.write == nil {
		return d.Init(ctx)
	}
	if err := d.t.Write(d.write); err != nil {
		return fmt.Errorf("tlv493d: write config: %w", err)
	}
	return nil
}

// Read ignores scale, the range is fixed.
func (d *TLV493D) Read(ctx context.Context, _ int, samples int) (mag.Reading, error) {
	return Average(ctx, samples, d.sample)
}

func (d *TLV493D) sample(context.Context) (mag.Reading, error) {
	buf, err := d.t.Read(codec.TLV493DReadSize)
	if err != nil {
		return mag.Reading{}, fmt.Errorf("tlv493d: read: %w", err)
	}
	return codec.DecodeTLV493D(buf), nil
}
