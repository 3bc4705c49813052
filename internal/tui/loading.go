package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// LoadingState wraps the spinner shown while a request is in flight.
type LoadingState struct {
	spinner spinner.Model
	message string
}

// NewLoadingState returns a spinner labelled "Calculating...".
func NewLoadingState() *LoadingState {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(InfoStyle),
	)
	return &LoadingState{spinner: s, message: "Calculating..."}
}

// Init starts the spinner.
func (l *LoadingState) Init() tea.Cmd {
	return l.spinner.Tick
}

// Update advances the spinner on its own tick messages.
func (l *LoadingState) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	l.spinner, cmd = l.spinner.Update(msg)
	return cmd
}

// View renders the spinner and its message.
func (l *LoadingState) View() string {
	return l.spinner.View() + " " + l.message
}
