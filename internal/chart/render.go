// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package chart

import (
	"fmt"

	"github.com/relabs-tech/magnetometer/internal/history"
)

// Series identities, in drawing order.
const (
	SeriesBaseline = iota
	SeriesX
	SeriesY
	SeriesZ
	SeriesMag
)

const (
	// MilliThreshold is the window peak magnitude in µT above which values
	// are shown in mT.
	MilliThreshold = 1000

	// Columns and rows taken by the frame around the plot: y-axis labels,
	// the two panel borders, the readout and the footer. Draw can return
	// two rows more than the height it is given, so one extra row is held
	// back on top of the four frame lines.
	marginWidth  = 13
	marginHeight = 6
	plotOffset   = 2
)

const (
	UnitMicro = "µT"
	UnitMilli = "mT"
)

// Frame is one rendered chart.
type Frame struct {
	Unit   string
	Plot   Plot
	Latest history.Entry // newest entry, in Unit
}

// Readout returns the X, Y, Z and magnitude labels of the newest entry.
func (f Frame) Readout() [4]string {
	return [4]string{
		fmt.Sprintf("X: %6.2f %s", f.Latest.X, f.Unit),
		fmt.Sprintf("Y: %6.2f %s", f.Latest.Y, f.Unit),
		fmt.Sprintf("Z: %6.2f %s", f.Latest.Z, f.Unit),
		fmt.Sprintf("Mag: %6.2f %s", f.Latest.Mag, f.Unit),
	}
}

// Renderer turns the trailing history into a Frame sized to the
// available area. It draws nothing until the first Resize.
type Renderer struct {
	width, height int
	sized         bool
}

func NewRenderer() *Renderer { return &Renderer{} }

// Resize sets the drawing area in cells.
func (r *Renderer) Resize(width, height int) {
	r.width, r.height = width, height
	r.sized = true
}

// Sized reports whether Resize has been called.
func (r *Renderer) Sized() bool { return r.sized }

// Window is the number of history entries that fit horizontally.
func (r *Renderer) Window() int { return max(0, r.width-marginWidth) }

func (r *Renderer) plotHeight() int { return r.height - marginHeight }

// Render draws the newest Window() entries. ok is false before the first
// Resize or when the area is too small to hold a plot.
func (r *Renderer) Render(entries []history.Entry) (f Frame, ok bool) {
	w := r.Window()
	if !r.sized || w < 1 || r.plotHeight() < 1 || len(entries) == 0 {
		return Frame{}, false
	}
	if len(entries) > w {
		entries = entries[len(entries)-w:]
	}

	var div float64
	f.Unit, div = UnitFor(peakMagnitude(entries))

	series := make([][]float64, 5)
	for i := range series {
		series[i] = make([]float64, len(entries))
	}
	for i, e := range entries {
		series[SeriesBaseline][i] = 0
		series[SeriesX][i] = e.X / div
		series[SeriesY][i] = e.Y / div
		series[SeriesZ][i] = e.Z / div
		series[SeriesMag][i] = e.Mag / div
	}

	last := entries[len(entries)-1]
	f.Latest = history.Entry{
		Index: last.Index,
		X:     last.X / div,
		Y:     last.Y / div,
		Z:     last.Z / div,
		Mag:   last.Mag / div,
	}
	f.Plot = Draw(series, Config{Height: r.plotHeight(), Offset: plotOffset})
	return f, true
}

// UnitFor picks the display unit for a window whose largest magnitude is
// peak, and the divisor that converts µT into it.
func UnitFor(peak float64) (unit string, div float64) {
	if peak > MilliThreshold {
		return UnitMilli, 1000
	}
	return UnitMicro, 1
}

// Convert expresses a single entry in the unit its own magnitude calls for.
func Convert(e history.Entry) (history.Entry, string) {
	unit, div := UnitFor(e.Mag)
	return history.Entry{Index: e.Index, X: e.X / div, Y: e.Y / div, Z: e.Z / div, Mag: e.Mag / div}, unit
}

// peakMagnitude ignores non-finite entries. An all-empty window peaks at 0.
func peakMagnitude(entries []history.Entry) float64 {
	peak := 0.0
	for _, e := range entries {
		if isNum(e.Mag) && e.Mag > peak {
			peak = e.Mag
		}
	}
	return peak
}

// TitleFor is the panel title for a sensor.
func TitleFor(version, sensor string) string {
	return fmt.Sprintf("Magnetometer v%s (%s)", version, sensor)
}
