// Copyright (c) 2026 Daniel Alarcon Rubio / Relabs Tech
// SPDX-License-Identifier: MIT
// See LICENSE file for full license text

package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	log "github.com/sirupsen/logrus"

	"github.com/relabs-tech/magnetometer/internal/chart"
)

var seriesColors = map[int]lipgloss.Color{
	chart.SeriesX:   lipgloss.Color("1"), // red
	chart.SeriesY:   lipgloss.Color("2"), // green
	chart.SeriesZ:   lipgloss.Color("4"), // blue
	chart.SeriesMag: lipgloss.Color("7"), // white
}

var (
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	footerStyle = lipgloss.NewStyle().Faint(true)
	keyStyle    = lipgloss.NewStyle().Bold(true).Reverse(true)
)

// ChartOpts configures the interactive chart.
type ChartOpts struct {
	Version  string
	Interval time.Duration
	OLED     *OLED // optional mirror, may be nil
}

type tickMsg time.Time

func tick(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// chartModel runs the sample cycle inside Update, so sampling, key
// handling and resizes never overlap.
type chartModel struct {
	ctx      context.Context
	s        *Session
	r        *chart.Renderer
	title    string
	interval time.Duration
	oled     *OLED
	width    int
	err      error
}

func newChartModel(ctx context.Context, s *Session, o ChartOpts) chartModel {
	return chartModel{
		ctx:      ctx,
		s:        s,
		r:        chart.NewRenderer(),
		title:    chart.TitleFor(o.Version, s.Sensor()),
		interval: o.Interval,
		oled:     o.OLED,
	}
}

func (m chartModel) Init() tea.Cmd { return tick(m.interval) }

func (m chartModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.r.Resize(msg.Width, msg.Height)
	case tea.KeyMsg:
		switch msg.String() {
		case "x":
			m.s.ZeroX()
		case "y":
			m.s.ZeroY()
		case "z":
			m.s.ZeroZ()
		case "a":
			m.s.ZeroAll()
		case "q", "ctrl+c":
			return m, tea.Quit
		}
	case tickMsg:
		e, err := m.s.Step(m.ctx)
		if err != nil {
			m.err = err
			return m, tea.Quit
		}
		if m.oled != nil {
			if err := m.oled.Update(time.Time(msg), e, m.s.Sensor()); err != nil {
				log.Printf("display: update failed: %v", err)
			}
		}
		return m, tick(m.interval)
	}
	return m, nil
}

func (m chartModel) View() string {
	f, ok := m.r.Render(m.s.Tail(m.r.Window()))
	if !ok {
		return ""
	}
	plot := f.Plot.Paint(func(series int, text string) string {
		c, ok := seriesColors[series]
		if !ok {
			return text
		}
		return lipgloss.NewStyle().Foreground(c).Render(text)
	})
	return lipgloss.JoinVertical(lipgloss.Left,
		m.panel(plot),
		m.readout(f),
		m.footer(),
	)
}

// panel frames the plot with the title set into the top border.
func (m chartModel) panel(body string) string {
	inner := max(0, m.width-2)
	top := "╭─ " + m.title + " "
	top += strings.Repeat("─", max(0, inner-lipgloss.Width(top)+1)) + "╮"
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderTop(false).
		BorderForeground(lipgloss.Color("8")).
		Width(inner).
		Render(body)
	return borderStyle.Render(top) + "\n" + box
}

func (m chartModel) readout(f chart.Frame) string {
	labels := f.Readout()
	series := [4]int{chart.SeriesX, chart.SeriesY, chart.SeriesZ, chart.SeriesMag}
	cell := max(1, m.width/len(labels))
	cells := make([]string, len(labels))
	for i, l := range labels {
		cells[i] = lipgloss.NewStyle().
			Bold(true).
			Foreground(seriesColors[series[i]]).
			Width(cell).
			Align(lipgloss.Center).
			Render(l)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cells...)
}

func (m chartModel) footer() string {
	var b strings.Builder
	for _, k := range [...]struct{ key, help string }{
		{"a", "Zero ALL"}, {"x", "Zero X"}, {"y", "Zero Y"}, {"z", "Zero Z"}, {"q", "Quit"},
	} {
		fmt.Fprintf(&b, " %s %s ", keyStyle.Render(" "+k.key+" "), k.help)
	}
	if fs := m.s.FullScale(); fs > 0 {
		fmt.Fprintf(&b, "  range ±%.0f µT", fs)
	}
	return footerStyle.Render(b.String())
}

// RunChart drives the interactive chart until the user quits, ctx is
// cancelled or a read fails.
func RunChart(ctx context.Context, s *Session, o ChartOpts) error {
	p := tea.NewProgram(newChartModel(ctx, s, o), tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("chart: %w", err)
	}
	if m, ok := final.(chartModel); ok && m.err != nil {
		return m.err
	}
	return nil
}
