// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"errors"
	"fmt"
	"sort"

	"github.com/relabs-tech/magnetometer/internal/bus"
)

// DefaultSensor is used when no sensor is named.
const DefaultSensor = "lis3mdl"

var ErrUnknownSensor = errors.New("unknown sensor")

// Variant describes one selectable sensor.
type Variant struct {
	Name string
	// Addr is the default 7-bit bus address. Zero means the variant does
	// not use the bus.
	Addr uint16
	New  func(t bus.Transport, o Opts) Driver
}

// NeedsBus reports whether New expects a live transport.
func (v Variant) NeedsBus() bool { return v.Addr != 0 }

var registry = map[string]Variant{
	"lis2mdl": {Name: "lis2mdl", Addr: 0x1E, New: func(t bus.Transport, o Opts) Driver { return NewLIS2MDL(t, o) }},
	"lis3mdl": {Name: "lis3mdl", Addr: 0x1C, New: func(t bus.Transport, o Opts) Driver { return NewLIS3MDL(t, o) }},
	"mmc5603": {Name: "mmc5603", Addr: 0x30, New: func(t bus.Transport, o Opts) Driver { return NewMMC5603(t, o) }},
	"sin":     {Name: "sin", New: func(bus.Transport, Opts) Driver { return NewSin() }},
	"tlv493d": {Name: "tlv493d", Addr: 0x5E, New: func(t bus.Transport, o Opts) Driver { return NewTLV493D(t, o) }},
}

// Lookup returns the variant registered under name.
func Lookup(name string) (Variant, error) {
	v, ok := registry[name]
	if !ok {
		return Variant{}, fmt.Errorf("%w %q (have %v)", ErrUnknownSensor, name, Names())
	}
	return v, nil
}

// Names returns the registered sensor names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for n := range registry {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
