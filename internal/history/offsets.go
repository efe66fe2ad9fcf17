// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package history

import (
	"math"

	"github.com/relabs-tech/magnetometer/internal/mag"
)

// Offsets is the user zero point, subtracted from every raw reading.
//
// The zero actions add the currently displayed value, which is already
// offset-corrected, so repeated zeroing of a drifting sensor keeps pulling
// the display toward zero instead of resetting to a fixed origin.
type Offsets struct {
	X, Y, Z float64
}

// Apply returns raw minus the offsets.
func (o Offsets) Apply(raw mag.Reading) mag.Reading {
	return mag.Reading{X: raw.X - o.X, Y: raw.Y - o.Y, Z: raw.Z - o.Z}
}

// ZeroX folds the displayed X of last into the offset. Empty entries are
// ignored.
func (o *Offsets) ZeroX(last Entry) { o.X += finiteOrZero(last.X) }

func (o *Offsets) ZeroY(last Entry) { o.Y += finiteOrZero(last.Y) }

func (o *Offsets) ZeroZ(last Entry) { o.Z += finiteOrZero(last.Z) }

// ZeroAll zeroes the three axes at once.
func (o *Offsets) ZeroAll(last Entry) {
	o.ZeroX(last)
	o.ZeroY(last)
	o.ZeroZ(last)
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
