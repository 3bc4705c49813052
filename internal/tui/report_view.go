package tui

import (
	"strings"

	"github.com/rshade/solarcalc/internal/engine"
)

// RenderReportStyled renders a finished report for non-interactive styled
// output. The chart is drawn fully grown.
func RenderReportStyled(report *engine.YieldReport, currency string) string {
	var b strings.Builder
	b.WriteString(HeaderStyle.Render("SOLAR PRODUCTION ESTIMATE"))
	b.WriteString("\n")

	rows := [][2]string{
		{"Yearly production: ", engine.FormatRounded(report.YearlyEnergyKWh) + " kWh"},
		{"Yearly savings:    ", currency + engine.FormatRounded(report.YearlySavings)},
		{"Irradiation:       ", engine.FormatIrradiance(report.YearlyIrradianceKWhM2) + " kWh/m²"},
		{"Location:          ", report.Location.Format(2)},
		{"Mounting:          ", report.MountingType},
	}
	for _, r := range rows {
		b.WriteString(LabelStyle.Render(r[0]))
		b.WriteString(ValueStyle.Render(r[1]))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(NewChart(0, report.MonthlyEnergyKWh).View(1))

	return BoxStyle.Render(b.String())
}
