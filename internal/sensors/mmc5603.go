// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/magnetometer/internal/bus"
	"github.com/relabs-tech/magnetometer/internal/codec"
	"github.com/relabs-tech/magnetometer/internal/mag"
)

// MMC5603 drives a MEMSIC MMC5603NJ. The chip has a single ±30 gauss range.
type MMC5603 struct {
	t    bus.Transport
	opts Opts
	ctl  codec.MMC5603Control
}

func NewMMC5603(t bus.Transport, o Opts) *MMC5603 {
	return &MMC5603{t: t, opts: o.withDefaults()}
}

func (d *MMC5603) Name() string      { return "mmc5603" }
func (d *MMC5603) Scales() []float64 { return []float64{3000} }

// Init checks the product ID, resets the chip and applies the configured
// data rate and mode.
func (d *MMC5603) Init(ctx context.Context) error {
	if err := checkID(d.t, "mmc5603", codec.MMC5603RegProductID, codec.MMC5603ChipID); err != nil {
		return err
	}
	if err := d.Reset(ctx); err != nil {
		return err
	}
	if err := d.SetDataRate(d.opts.MMC5603DataRate); err != nil {
		return err
	}
	if err := d.SetContinuous(d.opts.MMC5603Continuous); err != nil {
		return err
	}
	log.WithField("sensor", d.Name()).Infof("mmc5603: ready, %d Hz, continuous=%v", d.ctl.DataRate, d.ctl.Continuous)
	return nil
}

// Reset issues a software reset followed by a SET/RESET pulse pair.
// The chip comes back in single-shot mode with ODR 0.
func (d *MMC5603) Reset(ctx context.Context) error {
	if err := writeReg(d.t, codec.MMC5603RegCtrl1, codec.MMC5603SoftReset); err != nil {
		return fmt.Errorf("mmc5603: soft reset: %w", err)
	}
	time.Sleep(20 * time.Millisecond)
	d.ctl = codec.MMC5603Control{}

	if err := writeReg(d.t, codec.MMC5603RegCtrl0, codec.MMC5603Set); err != nil {
		return fmt.Errorf("mmc5603: set pulse: %w", err)
	}
	time.Sleep(time.Millisecond)
	if err := writeReg(d.t, codec.MMC5603RegCtrl0, codec.MMC5603Reset); err != nil {
		return fmt.Errorf("mmc5603: reset pulse: %w", err)
	}
	time.Sleep(time.Millisecond)
	return nil
}

// SetDataRate writes ODR and CTRL2. 1000 Hz turns on high-power mode.
func (d *MMC5603) SetDataRate(rate int) error {
	if !codec.ValidMMC5603DataRate(rate) {
		return fmt.Errorf("mmc5603: data rate %d out of range (0-255 or 1000)", rate)
	}
	next := d.ctl
	next.DataRate = rate
	odr, ctrl2 := next.Encode()
	if err := writeReg(d.t, codec.MMC5603RegODR, odr); err != nil {
		return fmt.Errorf("mmc5603: write odr: %w", err)
	}
	if err := writeReg(d.t, codec.MMC5603RegCtrl2, ctrl2); err != nil {
		return fmt.Errorf("mmc5603: write ctrl2: %w", err)
	}
	d.ctl = next
	return nil
}

// SetContinuous switches between free-running and single-shot conversion.
func (d *MMC5603) SetContinuous(on bool) error {
	if on {
		// CMM_FREQ_EN latches the ODR before CMM_EN starts the clock.
		if err := writeReg(d.t, codec.MMC5603RegCtrl0, codec.MMC5603CmmFreqEn); err != nil {
			return fmt.Errorf("mmc5603: cmm freq en: %w", err)
		}
	}
	next := d.ctl
	next.Continuous = on
	_, ctrl2 := next.Encode()
	if err := writeReg(d.t, codec.MMC5603RegCtrl2, ctrl2); err != nil {
		return fmt.Errorf("mmc5603: write ctrl2: %w", err)
	}
	d.ctl = next
	return nil
}

// Continuous reports the cached conversion mode.
func (d *MMC5603) Continuous() bool { return d.ctl.Continuous }

// Read ignores scale, the range is fixed.
func (d *MMC5603) Read(ctx context.Context, _ int, samples int) (mag.Reading, error) {
	return Average(ctx, samples, d.sample)
}

func (d *MMC5603) sample(ctx context.Context) (mag.Reading, error) {
	if !d.ctl.Continuous {
		if err := writeReg(d.t, codec.MMC5603RegCtrl0, codec.MMC5603TakeMeas); err != nil {
			return mag.Reading{}, fmt.Errorf("mmc5603: trigger measurement: %w", err)
		}
		if err := d.waitStatus(ctx, codec.MMC5603MeasMDone); err != nil {
			return mag.Reading{}, err
		}
	}
	buf, err := d.t.WriteThenRead([]byte{codec.MMC5603RegOutXL}, codec.MMC5603FieldSize)
	if err != nil {
		return mag.Reading{}, fmt.Errorf("mmc5603: read field: %w", err)
	}
	return codec.DecodeMMC5603(buf), nil
}

// Temperature takes one die temperature conversion in °C.
func (d *MMC5603) Temperature(ctx context.Context) (float64, error) {
	if d.ctl.Continuous {
		return 0, fmt.Errorf("mmc5603: temperature: %w", ErrContinuousMode)
	}
	if err := writeReg(d.t, codec.MMC5603RegCtrl0, codec.MMC5603TakeTemp); err != nil {
		return 0, fmt.Errorf("mmc5603: trigger temperature: %w", err)
	}
	if err := d.waitStatus(ctx, codec.MMC5603MeasTDone); err != nil {
		return 0, err
	}
	raw, err := readReg(d.t, codec.MMC5603RegOutTemp)
	if err != nil {
		return 0, fmt.Errorf("mmc5603: read temperature: %w", err)
	}
	return codec.DecodeMMC5603Temperature(raw), nil
}

// waitStatus polls the status register until bit is set. Without a
// PollTimeout it only stops on ctx.
func (d *MMC5603) waitStatus(ctx context.Context, bit byte) error {
	pctx := ctx
	if d.opts.PollTimeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(ctx, d.opts.PollTimeout)
		defer cancel()
	}
	tick := time.NewTicker(d.opts.PollInterval)
	defer tick.Stop()
	for {
		st, err := readReg(d.t, codec.MMC5603RegStatus)
		if err != nil {
			return fmt.Errorf("mmc5603: read status: %w", err)
		}
		if st&bit != 0 {
			return nil
		}
		select {
		case <-pctx.Done():
			if ctx.Err() == nil && errors.Is(pctx.Err(), context.DeadlineExceeded) {
				return fmt.Errorf("mmc5603: status bit 0x%02X after %v: %w", bit, d.opts.PollTimeout, ErrPollTimeout)
			}
			return ctx.Err()
		case <-tick.C:
		}
	}
}
