// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package history keeps the trailing window of calibrated readings that
// the chart draws from.
package history

import (
	"math"

	"github.com/relabs-tech/magnetometer/internal/mag"
)

// DefaultCapacity is wide enough for any realistic terminal.
const DefaultCapacity = 1024

// Entry is one calibrated sample. NaN in X, Y, Z or Mag means no data.
type Entry struct {
	Index   int
	X, Y, Z float64
	Mag     float64
}

// Empty is the sentinel a new ring is filled with.
func Empty() Entry {
	nan := math.NaN()
	return Entry{X: nan, Y: nan, Z: nan, Mag: nan}
}

// Valid reports whether e carries data.
func (e Entry) Valid() bool {
	return !math.IsNaN(e.X) && !math.IsNaN(e.Y) && !math.IsNaN(e.Z)
}

// Reading returns the calibrated axes.
func (e Entry) Reading() mag.Reading { return mag.Reading{X: e.X, Y: e.Y, Z: e.Z} }

// Ring is a fixed-capacity FIFO. It is always full: slots that were never
// written hold Empty entries. Not safe for concurrent use.
type Ring struct {
	buf  []Entry
	head int // oldest slot, next to be overwritten
	seq  int
}

// New returns a ring of the given capacity filled with Empty entries.
// A capacity below 1 uses DefaultCapacity.
func New(capacity int) *Ring {
	if capacity < 1 {
		capacity = DefaultCapacity
	}
	buf := make([]Entry, capacity)
	for i := range buf {
		buf[i] = Empty()
	}
	return &Ring{buf: buf}
}

func (r *Ring) Cap() int { return len(r.buf) }

// Append stores e, evicting the oldest entry.
func (r *Ring) Append(e Entry) {
	r.buf[r.head] = e
	r.head = (r.head + 1) % len(r.buf)
}

// Record subtracts off from raw, stores the result with the next sequence
// number and returns it.
func (r *Ring) Record(raw mag.Reading, off Offsets) Entry {
	c := off.Apply(raw)
	e := Entry{
		Index: r.seq,
		X:     c.X,
		Y:     c.Y,
		Z:     c.Z,
		Mag:   c.Magnitude(),
	}
	r.seq++
	r.Append(e)
	return e
}

// Last returns the newest entry.
func (r *Ring) Last() Entry {
	return r.buf[(r.head+len(r.buf)-1)%len(r.buf)]
}

// Tail returns the newest n entries, oldest first. n is clamped to the
// capacity.
func (r *Ring) Tail(n int) []Entry {
	n = max(0, min(n, len(r.buf)))
	out := make([]Entry, n)
	start := r.head + len(r.buf) - n
	for i := range out {
		out[i] = r.buf[(start+i)%len(r.buf)]
	}
	return out
}
