package pvgis

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
)

// DefaultBaseURL is the PVGIS 5.2 API root.
const DefaultBaseURL = "https://re.jrc.ec.europa.eu/api/v5_2"

// Request holds the PVcalc query parameters in PVGIS conventions.
// AspectDeg is 0 for south, -90 for east and 90 for west.
type Request struct {
	Latitude    float64
	Longitude   float64
	PeakPowerKW float64
	LossPercent float64
	AngleDeg    float64
	AspectDeg   float64
}

// ErrInvalidRequest is returned by Validate.
var ErrInvalidRequest = errors.New("invalid PVcalc request")

// Validate checks the request before it is sent. Every field must be finite.
func (r Request) Validate() error {
	fields := []struct {
		name  string
		value float64
	}{
		{"latitude", r.Latitude},
		{"longitude", r.Longitude},
		{"peak power", r.PeakPowerKW},
		{"loss", r.LossPercent},
		{"angle", r.AngleDeg},
		{"aspect", r.AspectDeg},
	}
	for _, f := range fields {
		if math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%w: %s must be a finite number", ErrInvalidRequest, f.name)
		}
	}

	switch {
	case r.Latitude < -90 || r.Latitude > 90:
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidRequest, r.Latitude)
	case r.Longitude < -180 || r.Longitude > 180:
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidRequest, r.Longitude)
	case r.PeakPowerKW <= 0:
		return fmt.Errorf("%w: peak power must be positive", ErrInvalidRequest)
	case r.LossPercent < 0 || r.LossPercent > 100:
		return fmt.Errorf("%w: loss %v out of range", ErrInvalidRequest, r.LossPercent)
	}
	return nil
}

// TargetURL builds the PVcalc URL under baseURL.
func (r Request) TargetURL(baseURL string) string {
	q := []string{
		"lat=" + formatParam(r.Latitude),
		"lon=" + formatParam(r.Longitude),
		"peakpower=" + formatParam(r.PeakPowerKW),
		"loss=" + formatParam(r.LossPercent),
		"angle=" + formatParam(r.AngleDeg),
		"aspect=" + formatParam(r.AspectDeg),
		"outputformat=json",
	}
	return strings.TrimRight(baseURL, "/") + "/PVcalc?" + strings.Join(q, "&")
}

func formatParam(v float64) string {
	return url.QueryEscape(strconv.FormatFloat(v, 'f', -1, 64))
}
