package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/solarcalc/internal/engine"
)

// View renders the current view.
func (m *CalculatorModel) View() string {
	if m.quitting {
		return ""
	}
	if m.alert != "" {
		return m.renderAlert()
	}

	sections := []string{
		HeaderStyle.Render("☀ Solar Production Calculator"),
		m.renderAddress(),
		m.renderPanelForm(),
		m.renderButton(),
	}
	if m.report != nil {
		sections = append(sections, m.renderResults())
	}
	sections = append(sections, SubtleStyle.Render(helpText))

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

const helpText = "tab/shift+tab: move  ↑/↓: choose address  enter: select/calculate  esc: close list  ctrl+c: quit"

func (m *CalculatorModel) renderAddress() string {
	var b strings.Builder
	b.WriteString(m.label(focusAddress, "Address"))
	b.WriteString("\n")
	b.WriteString(m.inputs[focusAddress].View())

	if m.showCandidates {
		b.WriteString("\n")
		b.WriteString(m.renderCandidates())
	}

	if loc, ok := m.selection.Location(); ok {
		b.WriteString("\n")
		b.WriteString(OKStyle.Render("📍 " + loc.Format(4)))
	}
	return BoxStyle.Render(b.String())
}

func (m *CalculatorModel) renderCandidates() string {
	rows := make([]string, 0, len(m.candidates))
	for i, c := range m.candidates {
		name := c.DisplayName
		coords := SubtleStyle.Render("   " + c.Location.Format(3))
		if i == m.cursor {
			rows = append(rows, SelectedStyle.Render("> "+name)+"\n"+coords)
			continue
		}
		rows = append(rows, "  "+name+"\n"+coords)
	}
	return strings.Join(rows, "\n")
}

func (m *CalculatorModel) renderPanelForm() string {
	fields := []struct {
		target focusTarget
		label  string
	}{
		{focusPeakPower, "Peak power (kWp)"},
		{focusTilt, "Tilt (°)"},
		{focusOrientation, "Orientation (0=N 90=E 180=S 270=W)"},
		{focusCost, "Electricity cost (" + m.opts.Currency + "/kWh)"},
	}

	lines := make([]string, 0, len(fields))
	for _, f := range fields {
		lines = append(lines, m.label(f.target, f.label)+" "+m.inputs[f.target].View())
	}
	return BoxStyle.Render(strings.Join(lines, "\n"))
}

func (m *CalculatorModel) label(target focusTarget, text string) string {
	if m.focus == target {
		return SelectedStyle.Render(text + ":")
	}
	return LabelStyle.Render(text + ":")
}

func (m *CalculatorModel) renderButton() string {
	switch {
	case m.busy:
		return ButtonBusyStyle.Render(m.loading.View())
	case m.focus == focusCalculate:
		return ButtonFocusedStyle.Render(calculateLabel)
	default:
		return ButtonStyle.Render(calculateLabel)
	}
}

func (m *CalculatorModel) renderResults() string {
	r := m.report

	var b strings.Builder
	b.WriteString(HeaderStyle.Render("RESULTS"))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Yearly production: "))
	b.WriteString(ValueStyle.Render(engine.FormatNumber(m.production.ValueAt(m.elapsed)) + " kWh"))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Yearly savings:    "))
	b.WriteString(ValueStyle.Render(m.opts.Currency + engine.FormatNumber(m.savings.ValueAt(m.elapsed))))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Irradiation:       "))
	b.WriteString(ValueStyle.Render(engine.FormatIrradiance(r.YearlyIrradianceKWhM2) + " kWh/m²"))
	b.WriteString("\n")
	b.WriteString(LabelStyle.Render("Location:          "))
	b.WriteString(ValueStyle.Render(r.Location.Format(2)))
	b.WriteString("\n\n")
	b.WriteString(m.chart.View(m.progress()))

	return BoxStyle.Render(b.String())
}

func (m *CalculatorModel) renderAlert() string {
	box := AlertStyle.Render(m.alert + "\n\n" + SubtleStyle.Render("Press enter to dismiss"))
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}
