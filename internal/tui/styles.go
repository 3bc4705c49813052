// Package tui holds the Bubble Tea calculator and the shared terminal styles.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
const (
	ColorSun      = lipgloss.Color("214")
	ColorSunDim   = lipgloss.Color("136")
	ColorOK       = lipgloss.Color("42")
	ColorCritical = lipgloss.Color("196")
	ColorWarning  = lipgloss.Color("220")
	ColorInfo     = lipgloss.Color("39")
	ColorSubtle   = lipgloss.Color("245")
	ColorBorder   = lipgloss.Color("240")
	ColorText     = lipgloss.Color("252")
)

// Layout defaults.
const (
	defaultWidth  = 80
	defaultHeight = 24
	borderPadding = 4
)

//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	HeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSun)
	LabelStyle  = lipgloss.NewStyle().Foreground(ColorSubtle)
	ValueStyle  = lipgloss.NewStyle().Bold(true).Foreground(ColorText)
	SubtleStyle = lipgloss.NewStyle().Foreground(ColorSubtle).Italic(true)

	InfoStyle     = lipgloss.NewStyle().Foreground(ColorInfo)
	OKStyle       = lipgloss.NewStyle().Foreground(ColorOK)
	WarningStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	CriticalStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorCritical)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1)

	AlertStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorCritical).
			Padding(1, 2)

	SelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorSun)

	ButtonStyle = lipgloss.NewStyle().
			Padding(0, 2).
			Foreground(ColorText).
			Background(ColorBorder)
	ButtonFocusedStyle = ButtonStyle.
				Foreground(lipgloss.Color("0")).
				Background(ColorSun)
	ButtonBusyStyle = ButtonStyle.Foreground(ColorSubtle)

	BarStyle = lipgloss.NewStyle().Foreground(ColorSun)
)
