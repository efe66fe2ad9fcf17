// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package bus provides the byte-level link to a single I2C device.
package bus

import (
	"errors"
	"fmt"
	"io"
	"sort"
)

// Transport talks to one device at a fixed address. Every call blocks
// until the bus transaction completes.
type Transport interface {
	Write(w []byte) error
	WriteThenRead(w []byte, n int) ([]byte, error)
	Read(n int) ([]byte, error)
}

// Opts selects a backend and the device on it.
type Opts struct {
	Backend string // "periph", "embd" or "gobot"
	Bus     string // periph bus name, or bus number for embd/gobot
	Addr    uint16
}

// Conn is an open Transport plus whatever must be released afterwards.
type Conn struct {
	Transport
	io.Closer
}

var ErrUnknownBackend = errors.New("unknown bus backend")

type opener func(Opts) (*Conn, error)

var backends = map[string]opener{
	"periph": openPeriph,
	"embd":   openEmbd,
	"gobot":  openGobot,
}

// Backends lists the supported backend names.
func Backends() []string {
	names := make([]string, 0, len(backends))
	for n := range backends {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Open connects to the device described by o.
func Open(o Opts) (*Conn, error) {
	open, ok := backends[o.Backend]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, o.Backend)
	}
	if o.Addr == 0 || o.Addr > 0x7F {
		return nil, fmt.Errorf("bus: invalid I2C address 0x%02X", o.Addr)
	}
	return open(o)
}

type closerFunc func() error

func (f closerFunc) Close() error { return f() }
