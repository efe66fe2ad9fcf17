// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package mag

import (
	"fmt"
	"math"
)

// Reading is a single 3-axis magnetic field sample in microtesla.
type Reading struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Magnitude returns the Euclidean norm of the field vector.
func (r Reading) Magnitude() float64 {
	return math.Sqrt(r.X*r.X + r.Y*r.Y + r.Z*r.Z)
}

// Peak returns max(|x|, |y|, |z|), the value that saturates first.
func (r Reading) Peak() float64 {
	return math.Max(math.Abs(r.X), math.Max(math.Abs(r.Y), math.Abs(r.Z)))
}

func (r Reading) Add(o Reading) Reading {
	return Reading{X: r.X + o.X, Y: r.Y + o.Y, Z: r.Z + o.Z}
}

func (r Reading) String() string {
	return fmt.Sprintf("x=%.2f y=%.2f z=%.2f µT", r.X, r.Y, r.Z)
}
