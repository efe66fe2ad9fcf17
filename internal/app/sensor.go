// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/magnetometer/internal/bus"
	"github.com/relabs-tech/magnetometer/internal/config"
	"github.com/relabs-tech/magnetometer/internal/sensors"
)

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// OpenSensor connects the configured sensor and runs its init sequence.
// The closer releases the bus; it is valid even when no bus was opened.
func OpenSensor(ctx context.Context, cfg *config.Config) (sensors.Driver, io.Closer, error) {
	v, err := sensors.Lookup(cfg.Sensor)
	if err != nil {
		return nil, nil, err
	}

	t, closer, err := openTransport(cfg, v)
	if err != nil {
		return nil, nil, err
	}

	drv := v.New(t, cfg.SensorOpts())
	if err := drv.Init(ctx); err != nil {
		closer.Close()
		return nil, nil, err
	}
	return drv, closer, nil
}

// openTransport opens the bus for v at the configured address, or at the
// sensor's default when none is set. Busless sensors get a nil transport.
func openTransport(cfg *config.Config, v sensors.Variant) (bus.Transport, io.Closer, error) {
	if !v.NeedsBus() {
		return nil, nopCloser{}, nil
	}
	addr := cfg.Bus.Address
	if addr == 0 {
		addr = v.Addr
	}
	conn, err := bus.Open(bus.Opts{Backend: cfg.Bus.Backend, Bus: cfg.Bus.Name, Addr: addr})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: open bus: %w", v.Name, err)
	}
	log.Printf("%s: %s bus %q at 0x%02X", v.Name, cfg.Bus.Backend, cfg.Bus.Name, addr)
	return conn, conn, nil
}

// NewSessionFromConfig builds a Session with the sampling and history
// settings of cfg.
func NewSessionFromConfig(drv sensors.Driver, cfg *config.Config) *Session {
	return NewSession(drv, SessionOpts{
		Samples:       cfg.Sampling.Oversample,
		Threshold:     cfg.Sampling.Threshold,
		HistoryLength: cfg.History.Length,
	})
}
