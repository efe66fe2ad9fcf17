// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package bus

import (
	"fmt"
	"io"

	"gobot.io/x/gobot/drivers/i2c"
	"gobot.io/x/gobot/platforms/raspi"
)

// Gobot adapts a gobot i2c.Connection, which is already bound to one
// device address.
type Gobot struct {
	conn io.ReadWriter
}

func NewGobot(c io.ReadWriter) *Gobot {
	return &Gobot{conn: c}
}

func (g *Gobot) Write(w []byte) error {
	_, err := g.conn.Write(w)
	return err
}

func (g *Gobot) WriteThenRead(w []byte, n int) ([]byte, error) {
	if err := g.Write(w); err != nil {
		return nil, err
	}
	return g.Read(n)
}

func (g *Gobot) Read(n int) ([]byte, error) {
	r := make([]byte, n)
	if _, err := io.ReadFull(g.conn, r); err != nil {
		return nil, err
	}
	return r, nil
}

func openGobot(o Opts) (*Conn, error) {
	n, err := busNumber(o.Bus)
	if err != nil {
		return nil, err
	}
	adaptor := raspi.NewAdaptor()
	if err := adaptor.Connect(); err != nil {
		return nil, fmt.Errorf("gobot raspi connect: %w", err)
	}
	var c i2c.Connection
	c, err = adaptor.GetConnection(int(o.Addr), n)
	if err != nil {
		adaptor.Finalize()
		return nil, fmt.Errorf("gobot i2c connection bus %d: %w", n, err)
	}
	return &Conn{
		Transport: NewGobot(c),
		Closer: closerFunc(func() error {
			c.Close()
			return adaptor.Finalize()
		}),
	}, nil
}
