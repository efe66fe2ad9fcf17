// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package autorange walks a sensor's full-scale table one step at a time.
//
// The up test compares against the current range and the down test against
// the next narrower one, so a steady field settles on one index.
package autorange

// DefaultThreshold is the fraction of full scale that triggers a step.
const DefaultThreshold = 0.9

// Controller owns the active scale index. Not safe for concurrent use.
type Controller struct {
	table     []float64
	threshold float64
	index     int
}

// New returns a controller at index 0. A threshold outside (0, 1] falls
// back to DefaultThreshold. An empty table makes Update a no-op.
func New(table []float64, threshold float64) *Controller {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	return &Controller{table: table, threshold: threshold}
}

// Index is the scale the next read should use.
func (c *Controller) Index() int { return c.index }

// FullScale returns the range of the active index in µT, or 0 when the
// table is empty.
func (c *Controller) FullScale() float64 {
	if len(c.table) == 0 {
		return 0
	}
	return c.table[c.index]
}

// Update feeds the peak |axis| of the last reading and returns the new index.
func (c *Controller) Update(peak float64) int {
	if len(c.table) == 0 {
		return 0
	}
	switch {
	case peak > c.threshold*c.table[c.index]:
		c.index = min(c.index+1, len(c.table)-1)
	case peak < c.threshold*c.table[max(0, c.index-1)]:
		c.index = max(c.index-1, 0)
	}
	return c.index
}
