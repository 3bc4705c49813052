package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/solarcalc/internal/engine"
	"github.com/rshade/solarcalc/internal/tui"
)

type estimateFlags struct {
	latitude    float64
	longitude   float64
	address     string
	peakPower   float64
	tilt        float64
	orientation float64
	cost        float64
	output      string
	plain       bool
}

// NewEstimateCmd creates the headless estimate command.
func NewEstimateCmd() *cobra.Command {
	var f estimateFlags

	cmd := &cobra.Command{
		Use:   "estimate",
		Short: "Estimate yearly and monthly production without the interactive UI",
		Long: `Estimates production for a location given either by coordinates or by an
address. With --address the first geocoding candidate is used. Panel and cost
flags default to the values under "defaults" in the config file.`,
		Example: `  solarcalc estimate --lat 60.39 --lon 5.32 --peak-power 5 --tilt 30
  solarcalc estimate --address "Plaça de Catalunya, Barcelona" --orientation 135 --cost 0.22
  solarcalc estimate --lat 48.8566 --lon 2.3522 --output json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runEstimate(cmd, &f)
		},
	}

	flags := cmd.Flags()
	flags.Float64Var(&f.latitude, "lat", 0, "latitude in decimal degrees")
	flags.Float64Var(&f.longitude, "lon", 0, "longitude in decimal degrees")
	flags.StringVar(&f.address, "address", "", "address to geocode; the first match is used")
	flags.Float64Var(&f.peakPower, "peak-power", 0, "installed peak power in kWp (default from config)")
	flags.Float64Var(&f.tilt, "tilt", 0, "panel tilt in degrees from horizontal (default from config)")
	flags.Float64Var(&f.orientation, "orientation", 0,
		"panel orientation: 0=N 90=E 180=S 270=W (default from config)")
	flags.Float64Var(&f.cost, "cost", 0, "electricity price per kWh (default from config)")
	flags.StringVarP(&f.output, "output", "o", "table", "output format: table or json")
	flags.BoolVar(&f.plain, "plain", false, "disable styling in table output")

	return cmd
}

func runEstimate(cmd *cobra.Command, f *estimateFlags) error {
	format, err := engine.ParseOutputFormat(f.output)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	cfg := configFromContext(ctx)
	flags := cmd.Flags()

	hasLat, hasLon := flags.Changed("lat"), flags.Changed("lon")
	switch {
	case f.address != "" && (hasLat || hasLon):
		return errors.New("use either --address or --lat/--lon, not both")
	case f.address == "" && !(hasLat && hasLon):
		return errors.New("either --address or both --lat and --lon are required")
	}

	eng := newEngine(ctx, cfg)

	var (
		loc     engine.Location
		matched string
	)
	if f.address != "" {
		candidates, lookupErr := eng.ResolveAddress(ctx, f.address)
		if lookupErr != nil {
			return fmt.Errorf("address lookup failed: %w", lookupErr)
		}
		if len(candidates) == 0 {
			return fmt.Errorf("%w: no address matches %q", engine.ErrNoLocation, f.address)
		}
		loc = candidates[0].Location
		matched = candidates[0].DisplayName
		logger.Info().Ctx(ctx).Str("address", matched).Msg("using first address candidate")
	} else {
		loc = engine.Location{Latitude: f.latitude, Longitude: f.longitude}
		if !loc.Valid() {
			return fmt.Errorf("coordinates %s are out of range", loc.Format(4))
		}
	}

	panel := defaultPanel(cfg)
	if flags.Changed("peak-power") {
		panel.PeakPowerKW = f.peakPower
	}
	if flags.Changed("tilt") {
		panel.TiltDeg = f.tilt
	}
	if flags.Changed("orientation") {
		panel.OrientationDeg = f.orientation
	}
	cost := cfg.Defaults.CostPerKWh
	if flags.Changed("cost") {
		cost = f.cost
	}

	report, err := eng.Estimate(ctx, engine.EstimateRequest{Location: &loc, Panel: panel, CostPerKWh: cost})
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrNoLocation), errors.Is(err, engine.ErrInvalidPanel):
		return err
	case errors.Is(err, engine.ErrTotalsNotFound):
		return fmt.Errorf("%w in the PVGIS response for %s", err, loc.Format(4))
	default:
		return fmt.Errorf("error fetching solar data: %w", err)
	}

	return renderEstimate(cmd.OutOrStdout(), format, report, cfg.Defaults.Currency, matched, f.plain)
}

func renderEstimate(
	w io.Writer,
	format engine.OutputFormat,
	report *engine.YieldReport,
	currency, matched string,
	plain bool,
) error {
	if format == engine.OutputJSON {
		return engine.RenderReport(w, format, report, currency)
	}

	if matched != "" {
		if _, err := fmt.Fprintf(w, "Address: %s\n", matched); err != nil {
			return err
		}
	}

	switch tui.DetectOutputMode(false, false, plain) {
	case tui.OutputModeStyled, tui.OutputModeInteractive:
		_, err := fmt.Fprintln(w, tui.RenderReportStyled(report, currency))
		return err
	case tui.OutputModePlain:
		fallthrough
	default:
		return engine.RenderReportAsTable(w, report, currency)
	}
}
