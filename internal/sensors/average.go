// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package sensors

import (
	"context"

	"github.com/relabs-tech/magnetometer/internal/mag"
)

// SampleFunc takes one conversion.
type SampleFunc func(ctx context.Context) (mag.Reading, error)

// Average calls sample n times and returns the arithmetic mean per axis.
// There is no outlier rejection. n below 1 is treated as 1.
func Average(ctx context.Context, n int, sample SampleFunc) (mag.Reading, error) {
	if n < 1 {
		n = 1
	}
	var sum mag.Reading
	for i := 0; i < n; i++ {
		r, err := sample(ctx)
		if err != nil {
			return mag.Reading{}, err
		}
		sum = sum.Add(r)
	}
	k := float64(n)
	return mag.Reading{X: sum.X / k, Y: sum.Y / k, Z: sum.Z / k}, nil
}
