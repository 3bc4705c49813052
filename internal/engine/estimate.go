package engine

import (
	"context"
	"errors"
	"time"
	"unicode/utf8"

	"github.com/rshade/solarcalc/internal/geocode"
	"github.com/rshade/solarcalc/internal/logging"
	"github.com/rshade/solarcalc/internal/pvgis"
)

// Geocoder finds places for a free-text query.
type Geocoder interface {
	Search(ctx context.Context, query string) ([]geocode.Place, error)
}

// YieldSource returns PVcalc answers.
type YieldSource interface {
	Calculate(ctx context.Context, req pvgis.Request) (*pvgis.Response, error)
}

// Engine ties address resolution and yield estimation together.
type Engine struct {
	geocoder Geocoder
	yields   YieldSource
}

// New creates an Engine.
func New(geocoder Geocoder, yields YieldSource) *Engine {
	return &Engine{geocoder: geocoder, yields: yields}
}

// EstimateRequest is one calculation as entered by the user.
type EstimateRequest struct {
	Location   *Location
	Panel      PanelConfig
	CostPerKWh float64
}

// ResolveAddress returns candidates for query. Queries shorter than
// geocode.MinQueryLength return no candidates and no error, without a request.
func (e *Engine) ResolveAddress(ctx context.Context, query string) ([]AddressCandidate, error) {
	if utf8.RuneCountInString(query) < geocode.MinQueryLength {
		return nil, nil
	}

	places, err := e.geocoder.Search(ctx, query)
	if err != nil {
		if errors.Is(err, geocode.ErrQueryTooShort) {
			return nil, nil
		}
		return nil, err
	}

	out := make([]AddressCandidate, 0, len(places))
	for _, p := range places {
		out = append(out, AddressCandidate{
			DisplayName: p.DisplayName,
			Location:    Location{Latitude: p.Latitude, Longitude: p.Longitude},
		})
	}
	return out, nil
}

// Estimate validates the request, asks the yield source and builds the
// report. Validation failures never reach the network.
func (e *Engine) Estimate(ctx context.Context, req EstimateRequest) (*YieldReport, error) {
	log := logging.FromContext(ctx)
	start := time.Now()

	if req.Location == nil {
		return nil, ErrNoLocation
	}
	if !req.Location.Valid() {
		return nil, ErrNoLocation
	}
	if err := req.Panel.Validate(); err != nil {
		return nil, err
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "engine").
		Str("operation", "estimate").
		Float64("lat", req.Location.Latitude).
		Float64("lon", req.Location.Longitude).
		Float64("peak_power_kw", req.Panel.PeakPowerKW).
		Float64("tilt_deg", req.Panel.TiltDeg).
		Float64("orientation_deg", req.Panel.OrientationDeg).
		Msg("starting yield estimate")

	resp, err := e.yields.Calculate(ctx, pvgis.Request{
		Latitude:    req.Location.Latitude,
		Longitude:   req.Location.Longitude,
		PeakPowerKW: req.Panel.PeakPowerKW,
		LossPercent: SystemLossPercent,
		AngleDeg:    req.Panel.TiltDeg,
		AspectDeg:   ServiceAspect(req.Panel.OrientationDeg),
	})
	if err != nil {
		return nil, err
	}

	report, err := BuildReport(resp, *req.Location, req.Panel, req.CostPerKWh)
	if err != nil {
		log.Warn().
			Ctx(ctx).
			Str("component", "engine").
			Err(err).
			Msg("yield response has no usable totals")
		return nil, err
	}

	log.Info().
		Ctx(ctx).
		Str("component", "engine").
		Str("mounting_type", report.MountingType).
		Float64("yearly_energy_kwh", report.YearlyEnergyKWh).
		Dur("duration", time.Since(start)).
		Msg("yield estimate complete")

	return report, nil
}
