// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/magnetometer/internal/autorange"
	"github.com/relabs-tech/magnetometer/internal/history"
	"github.com/relabs-tech/magnetometer/internal/mag"
	"github.com/relabs-tech/magnetometer/internal/sensors"
)

// SessionOpts sizes a Session.
type SessionOpts struct {
	Samples       int     // conversions averaged per step
	Threshold     float64 // auto-range fraction of full scale
	HistoryLength int
}

// Session owns everything one sampling loop mutates: the driver, the
// active scale, the zero offsets and the history. It is not safe for
// concurrent use; the chart, stream and OLED all drive it from one loop.
type Session struct {
	drv     sensors.Driver
	samples int
	ranger  *autorange.Controller
	hist    *history.Ring
	off     history.Offsets
	raw     mag.Reading // newest uncorrected reading
}

// NewSession wraps an initialized driver. The history starts empty except
// for one zero entry, so the chart has a point to draw from the start.
func NewSession(drv sensors.Driver, o SessionOpts) *Session {
	s := &Session{
		drv:     drv,
		samples: max(1, o.Samples),
		ranger:  autorange.New(drv.Scales(), o.Threshold),
		hist:    history.New(o.HistoryLength),
	}
	s.hist.Record(mag.Reading{}, s.off)
	return s
}

// Step reads one averaged sample at the active scale, stores it with the
// current offsets applied and lets the controller pick the next scale.
func (s *Session) Step(ctx context.Context) (history.Entry, error) {
	scale := s.ranger.Index()
	raw, err := s.drv.Read(ctx, scale, s.samples)
	if err != nil {
		return history.Entry{}, fmt.Errorf("read %s: %w", s.drv.Name(), err)
	}
	s.raw = raw
	e := s.hist.Record(raw, s.off)
	if next := s.ranger.Update(raw.Peak()); next != scale {
		log.WithField("sensor", s.drv.Name()).Infof("autorange: scale %d -> %d (%.0f µT)", scale, next, s.ranger.FullScale())
	}
	return e, nil
}

// displayed is the newest reading corrected with the offsets as they are
// now. Zeroing the same axis twice between samples adds nothing.
func (s *Session) displayed() history.Entry {
	c := s.off.Apply(s.raw)
	return history.Entry{X: c.X, Y: c.Y, Z: c.Z, Mag: c.Magnitude()}
}

func (s *Session) ZeroX() { s.off.ZeroX(s.displayed()) }
func (s *Session) ZeroY() { s.off.ZeroY(s.displayed()) }
func (s *Session) ZeroZ() { s.off.ZeroZ(s.displayed()) }

// ZeroAll zeroes the three axes against the newest reading.
func (s *Session) ZeroAll() {
	s.off.ZeroAll(s.displayed())
	log.WithField("sensor", s.drv.Name()).Debugf("zero: offsets %+v", s.off)
}

func (s *Session) Sensor() string             { return s.drv.Name() }
func (s *Session) Scale() int                 { return s.ranger.Index() }
func (s *Session) FullScale() float64         { return s.ranger.FullScale() }
func (s *Session) Offsets() history.Offsets   { return s.off }
func (s *Session) Last() history.Entry        { return s.hist.Last() }
func (s *Session) Tail(n int) []history.Entry { return s.hist.Tail(n) }

// Driver exposes the driver for optional capabilities such as
// sensors.Thermometer.
func (s *Session) Driver() sensors.Driver { return s.drv }
