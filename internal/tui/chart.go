package tui

import (
	"fmt"
	"strings"

	"github.com/rshade/solarcalc/internal/animate"
	"github.com/rshade/solarcalc/internal/engine"
)

const (
	chartBarWidth = 36
	chartBlock    = "█"
)

// Chart is a horizontal monthly bar chart. Each calculation builds a new
// Chart; the previous one is discarded.
type Chart struct {
	id      int
	monthly [engine.MonthsPerYear]float64
	max     float64
	width   int
}

// NewChart builds a chart over monthly production.
func NewChart(id int, monthly [engine.MonthsPerYear]float64) *Chart {
	return &Chart{
		id:      id,
		monthly: monthly,
		max:     engine.MaxMonthly(monthly),
		width:   chartBarWidth,
	}
}

// ID identifies the calculation that produced the chart.
func (c *Chart) ID() int {
	return c.id
}

// BarLengths returns the bar cells per month at animation progress p.
func (c *Chart) BarLengths(p float64) [engine.MonthsPerYear]int {
	var out [engine.MonthsPerYear]int
	eased := animate.EaseOutQuart(p)
	for i, v := range c.monthly {
		out[i] = engine.BarLength(v*eased, c.max, c.width)
	}
	return out
}

// View renders the chart at animation progress p.
func (c *Chart) View(p float64) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("Monthly Production (kWh)"))
	b.WriteString("\n")

	lengths := c.BarLengths(p)
	for i, n := range lengths {
		bar := strings.Repeat(chartBlock, n) + strings.Repeat(" ", c.width-n)
		fmt.Fprintf(&b, "%s %s %s\n",
			LabelStyle.Render(engine.MonthLabels[i]),
			BarStyle.Render(bar),
			SubtleStyle.Render(engine.FormatRounded(c.monthly[i])),
		)
	}
	return strings.TrimRight(b.String(), "\n")
}
