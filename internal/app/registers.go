// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/magnetometer/internal/bus"
	"github.com/relabs-tech/magnetometer/internal/codec"
	"github.com/relabs-tech/magnetometer/internal/config"
	"github.com/relabs-tech/magnetometer/internal/sensors"
)

// ErrNoRegisterMap is returned for sensors without addressable registers.
var ErrNoRegisterMap = errors.New("sensor has no register map")

// RegisterFile is the JSON export of a register dump.
type RegisterFile struct {
	Version   int               `json:"version"`
	Sensor    string            `json:"sensor"`
	Timestamp string            `json:"timestamp"`
	Registers map[string]string `json:"registers"` // hex address -> hex value
}

// RegisterWrite is one requested register assignment.
type RegisterWrite struct {
	Addr, Value byte
}

// ParseRegisterWrite parses "0x20=0x62". Both sides accept any base
// strconv understands.
func ParseRegisterWrite(s string) (RegisterWrite, error) {
	a, v, ok := strings.Cut(s, "=")
	if !ok {
		return RegisterWrite{}, fmt.Errorf("register write %q: want ADDR=VALUE", s)
	}
	addr, err := strconv.ParseUint(strings.TrimSpace(a), 0, 8)
	if err != nil {
		return RegisterWrite{}, fmt.Errorf("register write %q: address: %w", s, err)
	}
	val, err := strconv.ParseUint(strings.TrimSpace(v), 0, 8)
	if err != nil {
		return RegisterWrite{}, fmt.Errorf("register write %q: value: %w", s, err)
	}
	return RegisterWrite{byte(addr), byte(val)}, nil
}

// RegisterOpts configures DumpRegisters.
type RegisterOpts struct {
	Init   bool // run the driver init sequence before reading
	JSON   bool
	Fields bool // decode bit fields under each register
	Writes []RegisterWrite
}

// ReadRegisters reads every readable register in regs, one at a time.
func ReadRegisters(t bus.Transport, regs []codec.RegisterInfo) (map[byte]byte, error) {
	values := make(map[byte]byte, len(regs))
	for _, r := range regs {
		if !r.Readable() {
			continue
		}
		b, err := t.WriteThenRead([]byte{r.Address}, 1)
		if err != nil {
			return nil, fmt.Errorf("read %s (0x%02X): %w", r.Name, r.Address, err)
		}
		values[r.Address] = b[0]
	}
	return values, nil
}

// WriteRegisters applies writes, allowing only registers the map marks
// writable.
func WriteRegisters(t bus.Transport, regs []codec.RegisterInfo, writes []RegisterWrite) error {
	byAddr := make(map[byte]codec.RegisterInfo, len(regs))
	for _, r := range regs {
		byAddr[r.Address] = r
	}
	for _, w := range writes {
		r, ok := byAddr[w.Addr]
		if !ok || !strings.Contains(r.Access, "W") {
			return fmt.Errorf("register 0x%02X is not writable", w.Addr)
		}
		if err := t.Write([]byte{w.Addr, w.Value}); err != nil {
			return fmt.Errorf("write %s (0x%02X): %w", r.Name, w.Addr, err)
		}
		log.Printf("registers: %s (0x%02X) <- 0x%02X", r.Name, w.Addr, w.Value)
	}
	return nil
}

// PrintRegisters writes values as a table, or as a RegisterFile when
// asJSON is set. Write-only registers show as "--".
func PrintRegisters(w io.Writer, sensor string, regs []codec.RegisterInfo, values map[byte]byte, asJSON, fields bool) error {
	if asJSON {
		f := RegisterFile{
			Version:   1,
			Sensor:    sensor,
			Timestamp: time.Now().Format(time.RFC3339),
			Registers: make(map[string]string, len(values)),
		}
		for addr, v := range values {
			f.Registers[fmt.Sprintf("0x%02X", addr)] = fmt.Sprintf("0x%02X", v)
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(f)
	}

	for _, r := range regs {
		v, ok := values[r.Address]
		val := "--  "
		if ok {
			val = fmt.Sprintf("0x%02X", v)
		}
		note := ""
		if ok && r.Default != nil && *r.Default != v {
			note = fmt.Sprintf(" (default 0x%02X)", *r.Default)
		}
		if _, err := fmt.Fprintf(w, "0x%02X %-15s %-2s %s  %s%s\n", r.Address, r.Name, r.Access, val, r.Description, note); err != nil {
			return err
		}
		if !fields || !ok {
			continue
		}
		for _, f := range r.Fields {
			if _, err := fmt.Fprintf(w, "       %-5s %-18s %d\n", f.Bits(), f.Name, f.Extract(v)); err != nil {
				return err
			}
		}
	}
	return nil
}

// DumpRegisters opens the configured sensor's bus, applies o.Writes and
// prints its register map.
func DumpRegisters(ctx context.Context, cfg *config.Config, w io.Writer, o RegisterOpts) error {
	v, err := sensors.Lookup(cfg.Sensor)
	if err != nil {
		return err
	}
	regs, ok := codec.RegisterMap(v.Name)
	if !ok {
		return fmt.Errorf("%s: %w", v.Name, ErrNoRegisterMap)
	}

	t, closer, err := openTransport(cfg, v)
	if err != nil {
		return err
	}
	defer closer.Close()

	if o.Init {
		if err := v.New(t, cfg.SensorOpts()).Init(ctx); err != nil {
			return err
		}
	}
	if err := WriteRegisters(t, regs, o.Writes); err != nil {
		return err
	}
	values, err := ReadRegisters(t, regs)
	if err != nil {
		return err
	}
	return PrintRegisters(w, v.Name, regs, values, o.JSON, o.Fields)
}
