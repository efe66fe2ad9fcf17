// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bus

import (
	"fmt"
	"strconv"

	"github.com/kidoman/embd"
	_ "github.com/kidoman/embd/host/rpi" // registers the Raspberry Pi host
)

// Embd adapts an embd I2CBus. embd has no combined transaction, so
// WriteThenRead is a write followed by a separate read; the chips used
// here keep their register pointer across the stop condition.
type Embd struct {
	bus  embd.I2CBus
	addr byte
}

func NewEmbd(b embd.I2CBus, addr byte) *Embd {
	return &Embd{bus: b, addr: addr}
}

func (e *Embd) Write(w []byte) error {
	return e.bus.WriteBytes(e.addr, w)
}

func (e *Embd) WriteThenRead(w []byte, n int) ([]byte, error) {
	if err := e.bus.WriteBytes(e.addr, w); err != nil {
		return nil, err
	}
	return e.bus.ReadBytes(e.addr, n)
}

func (e *Embd) Read(n int) ([]byte, error) {
	return e.bus.ReadBytes(e.addr, n)
}

func openEmbd(o Opts) (*Conn, error) {
	n, err := busNumber(o.Bus)
	if err != nil {
		return nil, err
	}
	if err := embd.InitI2C(); err != nil {
		return nil, fmt.Errorf("embd i2c init: %w", err)
	}
	b := embd.NewI2CBus(byte(n))
	return &Conn{
		Transport: NewEmbd(b, byte(o.Addr)),
		Closer:    closerFunc(embd.CloseI2C),
	}, nil
}

// busNumber parses a numeric bus name; empty means bus 1.
func busNumber(name string) (int, error) {
	if name == "" {
		return 1, nil
	}
	n, err := strconv.Atoi(name)
	if err != nil || n < 0 || n > 255 {
		return 0, fmt.Errorf("bus: %q is not a bus number", name)
	}
	return n, nil
}
