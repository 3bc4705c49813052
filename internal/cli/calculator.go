package cli

import (
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/rshade/solarcalc/internal/tui"
)

// ErrNotInteractive is returned when the calculator is started without a terminal.
var ErrNotInteractive = errors.New("the interactive calculator needs a terminal, use 'solarcalc estimate' instead")

// NewTUICmd creates the tui command, an explicit name for the default action.
func NewTUICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive calculator",
		Args:  cobra.NoArgs,
		RunE:  runCalculator,
	}
}

func runCalculator(cmd *cobra.Command, _ []string) error {
	if tui.DetectOutputMode(false, false, false) != tui.OutputModeInteractive {
		return ErrNotInteractive
	}

	ctx := cmd.Context()
	cfg := configFromContext(ctx)

	model := tui.NewCalculatorModel(ctx, newEngine(ctx, cfg), tui.CalculatorOptions{
		Panel:      defaultPanel(cfg),
		CostPerKWh: cfg.Defaults.CostPerKWh,
		Currency:   cfg.Defaults.Currency,
		Debounce:   time.Duration(cfg.Geocoder.DebounceMillis) * time.Millisecond,
	})

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run interactive TUI: %w", err)
	}
	return nil
}
