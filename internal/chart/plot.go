// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

// Package chart lays out the multi-series strip chart and the readout
// line. It produces plain cells tagged with their series so the caller
// decides how to color them.
package chart

import (
	"fmt"
	"math"
	"strings"
)

// Axis marks cells that belong to the y-axis or its labels.
const Axis = -1

// Glyph indices into Config.Symbols.
const (
	symZeroTick = iota
	symTick
	symStart
	symEnd
	symFlat
	symDownEnter
	symUpEnter
	symDownLeave
	symUpLeave
	symVertical
)

// DefaultSymbols are the box-drawing glyphs used for the axis and lines.
var DefaultSymbols = [10]string{"┼", "┤", "╶", "╴", "─", "╰", "╭", "╮", "╯", "│"}

// Config controls the plot layout.
type Config struct {
	// Height is the vertical resolution in rows. Zero uses the value span.
	Height int
	// Offset is the column where the first point is drawn; the axis sits
	// at Offset-1.
	Offset int
	// Format renders y-axis labels.
	Format  string
	Symbols [10]string
}

func (c Config) withDefaults() Config {
	if c.Offset < 1 {
		c.Offset = 3
	}
	if c.Format == "" {
		c.Format = "%8.2f "
	}
	if c.Symbols[0] == "" {
		c.Symbols = DefaultSymbols
	}
	return c
}

// Cell is one grid position. Label cells hold the whole label text.
type Cell struct {
	Text   string
	Series int
}

// Plot is the laid-out grid, top row first.
type Plot struct {
	Rows [][]Cell
}

// Draw lays out series in one shared coordinate frame. NaN values leave
// gaps; the first value of series[0] is marked on the axis. Bounds come
// from the finite values only, and an all-NaN input is drawn around zero.
func Draw(series [][]float64, cfg Config) Plot {
	if len(series) == 0 {
		return Plot{}
	}
	cfg = cfg.withDefaults()
	sym := cfg.Symbols

	lo, hi := bounds(series)
	interval := hi - lo
	height := float64(cfg.Height)
	if cfg.Height <= 0 {
		height = interval
	}
	ratio := 1.0
	if interval > 0 {
		ratio = height / interval
	}
	min2 := int(math.Floor(lo * ratio))
	max2 := int(math.Ceil(hi * ratio))
	rows := max2 - min2

	clamp := func(v float64) float64 { return math.Min(math.Max(v, lo), hi) }
	scaled := func(v float64) int { return int(math.RoundToEven(clamp(v)*ratio)) - min2 }

	width := 0
	for _, s := range series {
		width = max(width, len(s))
	}
	width += cfg.Offset

	grid := make([][]Cell, rows+1)
	for r := range grid {
		grid[r] = make([]Cell, width)
		for c := range grid[r] {
			grid[r][c] = Cell{Text: " ", Series: Axis}
		}
	}

	zeroRow := -1
	if lo <= 0 && hi >= 0 {
		zeroRow = rows - scaled(0)
	}
	div := float64(rows)
	if rows == 0 {
		div = 1
	}
	for r := 0; r <= rows; r++ {
		label := fmt.Sprintf(cfg.Format, hi-float64(r)*interval/div)
		grid[r][max(cfg.Offset-len([]rune(label)), 0)] = Cell{Text: label, Series: Axis}
		tick := sym[symTick]
		if r == zeroRow {
			tick = sym[symZeroTick]
		}
		grid[r][cfg.Offset-1] = Cell{Text: tick, Series: Axis}
	}

	if len(series[0]) > 0 && isNum(series[0][0]) {
		grid[rows-scaled(series[0][0])][cfg.Offset-1] = Cell{Text: sym[symZeroTick], Series: Axis}
	}

	for i, s := range series {
		put := func(y, x int, glyph string) {
			grid[rows-y][x+cfg.Offset] = Cell{Text: glyph, Series: i}
		}
		for x := 0; x+1 < len(s); x++ {
			d0, d1 := s[x], s[x+1]
			switch {
			case !isNum(d0) && !isNum(d1):
				continue
			case !isNum(d0):
				put(scaled(d1), x, sym[symStart])
				continue
			case !isNum(d1):
				put(scaled(d0), x, sym[symEnd])
				continue
			}
			y0, y1 := scaled(d0), scaled(d1)
			if y0 == y1 {
				put(y0, x, sym[symFlat])
				continue
			}
			if y0 > y1 {
				put(y1, x, sym[symDownEnter])
				put(y0, x, sym[symDownLeave])
			} else {
				put(y1, x, sym[symUpEnter])
				put(y0, x, sym[symUpLeave])
			}
			for y := min(y0, y1) + 1; y < max(y0, y1); y++ {
				put(y, x, sym[symVertical])
			}
		}
	}
	return Plot{Rows: grid}
}

// Paint joins the grid into text, passing every non-blank cell through
// paint. Trailing blanks are dropped from each row.
func (p Plot) Paint(paint func(series int, text string) string) string {
	var b strings.Builder
	for r, row := range p.Rows {
		if r > 0 {
			b.WriteByte('\n')
		}
		end := len(row)
		for end > 0 && row[end-1].Text == " " {
			end--
		}
		for _, c := range row[:end] {
			if paint == nil || c.Text == " " {
				b.WriteString(c.Text)
				continue
			}
			b.WriteString(paint(c.Series, c.Text))
		}
	}
	return b.String()
}

func (p Plot) String() string { return p.Paint(nil) }

// Height is the number of rows.
func (p Plot) Height() int { return len(p.Rows) }

func bounds(series [][]float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, s := range series {
		for _, v := range s {
			if !isNum(v) {
				continue
			}
			lo = math.Min(lo, v)
			hi = math.Max(hi, v)
		}
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

func isNum(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
