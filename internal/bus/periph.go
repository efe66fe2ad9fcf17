// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bus

import (
	"fmt"

	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/host/v3"
)

// Periph adapts a periph.io i2c.Bus to Transport.
type Periph struct {
	dev i2c.Dev
}

// NewPeriph binds addr on an already opened bus.
func NewPeriph(b i2c.Bus, addr uint16) *Periph {
	return &Periph{dev: i2c.Dev{Addr: addr, Bus: b}}
}

func (p *Periph) Write(w []byte) error {
	return p.dev.Tx(w, nil)
}

// WriteThenRead uses a repeated start, so register pointers set by w are
// kept for the read.
func (p *Periph) WriteThenRead(w []byte, n int) ([]byte, error) {
	r := make([]byte, n)
	if err := p.dev.Tx(w, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (p *Periph) Read(n int) ([]byte, error) {
	r := make([]byte, n)
	if err := p.dev.Tx(nil, r); err != nil {
		return nil, err
	}
	return r, nil
}

func openPeriph(o Opts) (*Conn, error) {
	if _, err := host.Init(); err != nil {
		return nil, fmt.Errorf("periph host init: %w", err)
	}
	b, err := i2creg.Open(o.Bus)
	if err != nil {
		return nil, fmt.Errorf("i2c open %q: %w", o.Bus, err)
	}
	return &Conn{Transport: NewPeriph(b, o.Addr), Closer: b}, nil
}
