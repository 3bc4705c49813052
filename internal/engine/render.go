package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"strings"
	"text/tabwriter"
)

// OutputFormat selects how reports and candidates are written.
type OutputFormat string

// Supported output formats.
const (
	OutputTable OutputFormat = "table"
	OutputJSON  OutputFormat = "json"
)

// ErrUnknownFormat is returned for unsupported --output values.
var ErrUnknownFormat = errors.New("unknown output format")

// ChartWidth is the widest bar in the plain text chart.
const ChartWidth = 40

const (
	tabwriterPadding = 2
	barRune          = "#"
)

// ParseOutputFormat validates an --output value. Empty means table.
func ParseOutputFormat(s string) (OutputFormat, error) {
	switch OutputFormat(strings.ToLower(strings.TrimSpace(s))) {
	case "", OutputTable:
		return OutputTable, nil
	case OutputJSON:
		return OutputJSON, nil
	default:
		return "", fmt.Errorf("%w: %q (want table or json)", ErrUnknownFormat, s)
	}
}

// BarLength scales value against maxValue into at most width cells. Any
// positive value gets at least one cell.
func BarLength(value, maxValue float64, width int) int {
	if width <= 0 || maxValue <= 0 || value <= 0 || math.IsNaN(value) {
		return 0
	}
	n := int(math.Round(value / maxValue * float64(width)))
	switch {
	case n < 1:
		return 1
	case n > width:
		return width
	}
	return n
}

// MaxMonthly returns the largest monthly value.
func MaxMonthly(monthly [MonthsPerYear]float64) float64 {
	maxValue := 0.0
	for _, v := range monthly {
		if v > maxValue {
			maxValue = v
		}
	}
	return maxValue
}

// RenderReport writes report in the requested format. currency prefixes the
// savings figure in table output.
func RenderReport(w io.Writer, format OutputFormat, report *YieldReport, currency string) error {
	switch format {
	case OutputJSON:
		return renderJSON(w, report)
	case OutputTable, "":
		return RenderReportAsTable(w, report, currency)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// RenderReportAsTable writes the summary lines followed by a bar chart of
// monthly production.
func RenderReportAsTable(w io.Writer, report *YieldReport, currency string) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	lines := [][2]string{
		{"Location", report.Location.Format(2)},
		{"Mounting", report.MountingType},
		{"Yearly production", FormatRounded(report.YearlyEnergyKWh) + " kWh"},
		{"Yearly savings", currency + FormatRounded(report.YearlySavings)},
		{"Irradiation", FormatIrradiance(report.YearlyIrradianceKWhM2) + " kWh/m²"},
	}
	for _, l := range lines {
		if _, err := fmt.Fprintf(tw, "%s:\t%s\n", l[0], l[1]); err != nil {
			return fmt.Errorf("writing summary: %w", err)
		}
	}
	if err := tw.Flush(); err != nil {
		return fmt.Errorf("writing summary: %w", err)
	}

	if _, err := fmt.Fprintf(w, "\nMonthly production (kWh)\n"); err != nil {
		return fmt.Errorf("writing chart header: %w", err)
	}
	return RenderChart(w, report.MonthlyEnergyKWh, ChartWidth)
}

// RenderChart writes one horizontal bar per month.
func RenderChart(w io.Writer, monthly [MonthsPerYear]float64, width int) error {
	maxValue := MaxMonthly(monthly)
	for i, v := range monthly {
		bar := strings.Repeat(barRune, BarLength(v, maxValue, width))
		if _, err := fmt.Fprintf(w, "%s %-*s %s\n", MonthLabels[i], width, bar, FormatRounded(v)); err != nil {
			return fmt.Errorf("writing chart row: %w", err)
		}
	}
	return nil
}

// RenderCandidates writes geocoding candidates in the requested format.
func RenderCandidates(w io.Writer, format OutputFormat, candidates []AddressCandidate) error {
	switch format {
	case OutputJSON:
		if candidates == nil {
			candidates = []AddressCandidate{}
		}
		return renderJSON(w, candidates)
	case OutputTable, "":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}

	if len(candidates) == 0 {
		_, err := fmt.Fprintln(w, "No matching addresses.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)
	if _, err := fmt.Fprintf(tw, "#\tCOORDINATES\tADDRESS\n"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	for i, c := range candidates {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\n", i+1, c.Location.Format(3), c.DisplayName); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return tw.Flush()
}

func renderJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}
