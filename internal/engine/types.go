package engine

import (
	"errors"
	"fmt"
	"math"
)

// SystemLossPercent is the fixed system loss applied to every estimate.
const SystemLossPercent = 14.0

// MonthsPerYear is the length of a monthly breakdown.
const MonthsPerYear = 12

// MonthLabels are the chart labels, January first.
//
//nolint:gochecknoglobals // Fixed label table.
var MonthLabels = [MonthsPerYear]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}

// Location is a point on the globe in decimal degrees.
type Location struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Valid reports whether both coordinates are in range.
func (l Location) Valid() bool {
	return l.Latitude >= -90 && l.Latitude <= 90 && l.Longitude >= -180 && l.Longitude <= 180
}

// Format renders the location with the given number of decimals.
func (l Location) Format(decimals int) string {
	return fmt.Sprintf("%.*f, %.*f", decimals, l.Latitude, decimals, l.Longitude)
}

// AddressCandidate is one geocoding hit offered to the user.
type AddressCandidate struct {
	DisplayName string   `json:"display_name"`
	Location    Location `json:"location"`
}

// PanelConfig describes the installation. OrientationDeg uses the compass
// convention: 0 north, 90 east, 180 south, 270 west.
type PanelConfig struct {
	PeakPowerKW    float64 `json:"peak_power_kw"`
	TiltDeg        float64 `json:"tilt_deg"`
	OrientationDeg float64 `json:"orientation_deg"`
}

// ErrInvalidPanel is wrapped by PanelConfig.Validate failures.
var ErrInvalidPanel = errors.New("invalid panel configuration")

// Validate checks the panel parameters. NaN and infinite values are rejected.
func (p PanelConfig) Validate() error {
	switch {
	case !finite(p.PeakPowerKW):
		return fmt.Errorf("%w: peak power must be a finite number", ErrInvalidPanel)
	case !finite(p.TiltDeg):
		return fmt.Errorf("%w: tilt must be a finite number", ErrInvalidPanel)
	case !finite(p.OrientationDeg):
		return fmt.Errorf("%w: orientation must be a finite number", ErrInvalidPanel)
	case p.PeakPowerKW <= 0:
		return fmt.Errorf("%w: peak power must be greater than 0 kW", ErrInvalidPanel)
	case p.TiltDeg < 0 || p.TiltDeg > 90:
		return fmt.Errorf("%w: tilt must be between 0 and 90 degrees", ErrInvalidPanel)
	case p.OrientationDeg < 0 || p.OrientationDeg > 360:
		return fmt.Errorf("%w: orientation must be between 0 and 360 degrees", ErrInvalidPanel)
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ServiceAspect converts a compass orientation into the PVGIS aspect,
// where 0 is south, -90 east and 90 west.
func ServiceAspect(orientationDeg float64) float64 {
	return orientationDeg - 180
}

// YieldReport is the rendered outcome of one estimate.
type YieldReport struct {
	MountingType          string                 `json:"mounting_type"`
	Location              Location               `json:"location"`
	Panel                 PanelConfig            `json:"panel"`
	YearlyEnergyKWh       float64                `json:"yearly_energy_kwh"`
	YearlyIrradianceKWhM2 float64                `json:"yearly_irradiance_kwh_m2"`
	MonthlyEnergyKWh      [MonthsPerYear]float64 `json:"monthly_energy_kwh"`
	CostPerKWh            float64                `json:"cost_per_kwh"`
	YearlySavings         float64                `json:"yearly_savings"`
}
