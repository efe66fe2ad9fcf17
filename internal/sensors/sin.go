// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"context"
	"math"

	"github.com/relabs-tech/magnetometer/internal/mag"
)

// Sin is a synthetic sensor for running without hardware. Each Read
// advances one step of three phase-shifted 0.1 cycles/step sine waves.
type Sin struct {
	step int
}

func NewSin() *Sin { return &Sin{} }

func (s *Sin) Name() string                { return "sin" }
func (s *Sin) Scales() []float64           { return nil }
func (s *Sin) Init(context.Context) error  { return nil }
func (s *Sin) Reset(context.Context) error { s.step = 0; return nil }

// Read returns the value for the current step and advances it. There is
// no noise to average, so scale and samples are ignored.
func (s *Sin) Read(context.Context, int, int) (mag.Reading, error) {
	phase := 2 * math.Pi * (0.1 * float64(s.step))
	s.step++
	return mag.Reading{
		X: 1 + math.Sin(phase),
		Y: math.Sin(phase + 2),
		Z: -1 + math.Sin(phase+4),
	}, nil
}
