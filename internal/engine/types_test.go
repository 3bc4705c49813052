package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestServiceAspect(t *testing.T) {
	tests := []struct {
		name        string
		orientation float64
		want        float64
	}{
		{name: "north", orientation: 0, want: -180},
		{name: "east", orientation: 90, want: -90},
		{name: "south", orientation: 180, want: 0},
		{name: "west", orientation: 270, want: 90},
		{name: "north again", orientation: 360, want: 180},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ServiceAspect(tt.orientation))
		})
	}
}

func TestPanelConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		panel   PanelConfig
		wantErr bool
	}{
		{name: "valid", panel: PanelConfig{PeakPowerKW: 4, TiltDeg: 35, OrientationDeg: 180}},
		{name: "flat", panel: PanelConfig{PeakPowerKW: 1, TiltDeg: 0}},
		{name: "vertical", panel: PanelConfig{PeakPowerKW: 1, TiltDeg: 90, OrientationDeg: 360}},
		{name: "zero power", panel: PanelConfig{TiltDeg: 35}, wantErr: true},
		{name: "negative tilt", panel: PanelConfig{PeakPowerKW: 1, TiltDeg: -1}, wantErr: true},
		{name: "tilt over 90", panel: PanelConfig{PeakPowerKW: 1, TiltDeg: 91}, wantErr: true},
		{name: "orientation over 360", panel: PanelConfig{PeakPowerKW: 1, OrientationDeg: 361}, wantErr: true},
		{name: "NaN power", panel: PanelConfig{PeakPowerKW: math.NaN(), TiltDeg: 35}, wantErr: true},
		{name: "Inf power", panel: PanelConfig{PeakPowerKW: math.Inf(1), TiltDeg: 35}, wantErr: true},
		{name: "NaN tilt", panel: PanelConfig{PeakPowerKW: 1, TiltDeg: math.NaN()}, wantErr: true},
		{name: "NaN orientation", panel: PanelConfig{PeakPowerKW: 1, OrientationDeg: math.NaN()}, wantErr: true},
		{name: "negative Inf orientation", panel: PanelConfig{PeakPowerKW: 1, OrientationDeg: math.Inf(-1)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.panel.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPanel)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestLocation(t *testing.T) {
	loc := Location{Latitude: 52.5170365, Longitude: 13.3888599}
	assert.True(t, loc.Valid())
	assert.Equal(t, "52.517, 13.389", loc.Format(3))
	assert.Equal(t, "52.5170, 13.3889", loc.Format(4))
	assert.Equal(t, "52.52, 13.39", loc.Format(2))

	assert.False(t, Location{Latitude: 95}.Valid())
	assert.False(t, Location{Longitude: -200}.Valid())
}

func TestSelection(t *testing.T) {
	var s Selection
	_, ok := s.Location()
	assert.False(t, ok)
	assert.Nil(t, s.Candidate())

	c := AddressCandidate{DisplayName: "Oslo", Location: Location{Latitude: 59.91, Longitude: 10.75}}
	s.Set(c)
	loc, ok := s.Location()
	assert.True(t, ok)
	assert.Equal(t, c.Location, loc)

	s.Set(AddressCandidate{DisplayName: "Bergen", Location: Location{Latitude: 60.39, Longitude: 5.32}})
	assert.Equal(t, "Bergen", s.Candidate().DisplayName)

	s.Clear()
	_, ok = s.Location()
	assert.False(t, ok)
}

func TestFormatNumber(t *testing.T) {
	assert.Equal(t, "4,000", FormatNumber(4000))
	assert.Equal(t, "1,234,567", FormatNumber(1234567))
	assert.Equal(t, "0", FormatNumber(0))
	assert.Equal(t, "1,300", FormatRounded(1299.6))
	assert.Equal(t, "1300", FormatIrradiance(1299.6))
	assert.Equal(t, "0", FormatIrradiance(0))
}
