package engine

import (
	"math"
	"strconv"
	"strings"

	"github.com/rshade/solarcalc/internal/pvgis"
)

// BuildReport turns a PVcalc response into a YieldReport. The mounting type
// is the first key of outputs.totals; a response without totals for it
// yields ErrTotalsNotFound. Missing energy and irradiance values count as 0.
func BuildReport(resp *pvgis.Response, loc Location, panel PanelConfig, costPerKWh float64) (*YieldReport, error) {
	if resp == nil {
		return nil, ErrTotalsNotFound
	}

	mounting, totals, ok := resp.Outputs.Totals.First()
	if !ok || totals == nil {
		return nil, ErrTotalsNotFound
	}

	energy := valueOrZero(totals.EnergyYearly)
	report := &YieldReport{
		MountingType:          mounting,
		Location:              loc,
		Panel:                 panel,
		YearlyEnergyKWh:       energy,
		YearlyIrradianceKWhM2: valueOrZero(totals.IrradYearly),
		MonthlyEnergyKWh:      monthlyEnergy(resp.Outputs.Monthly[mounting]),
		CostPerKWh:            sanitizeCost(costPerKWh),
	}
	report.YearlySavings = Savings(energy, report.CostPerKWh)

	return report, nil
}

// Savings is the yearly money value of energy at costPerKWh.
func Savings(energyKWh, costPerKWh float64) float64 {
	return energyKWh * sanitizeCost(costPerKWh)
}

// ParseCost reads a user-entered price. Empty or invalid input is 0.
func ParseCost(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return sanitizeCost(v)
}

func sanitizeCost(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func valueOrZero(v *float64) float64 {
	if v == nil || math.IsNaN(*v) {
		return 0
	}
	return *v
}

// monthlyEnergy places E_m values by their month number, or by position
// when the month is absent.
func monthlyEnergy(entries []pvgis.MonthlyEntry) [MonthsPerYear]float64 {
	var out [MonthsPerYear]float64
	for i, e := range entries {
		idx := i
		if e.Month >= 1 && e.Month <= MonthsPerYear {
			idx = e.Month - 1
		}
		if idx >= MonthsPerYear {
			continue
		}
		out[idx] = valueOrZero(e.EnergyMonth)
	}
	return out
}
