package pvgis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequest_TargetURL(t *testing.T) {
	req := Request{
		Latitude:    52.52,
		Longitude:   13.405,
		PeakPowerKW: 4,
		LossPercent: 14,
		AngleDeg:    35,
		AspectDeg:   -90,
	}

	got := req.TargetURL(DefaultBaseURL + "/")
	assert.Equal(t,
		"https://re.jrc.ec.europa.eu/api/v5_2/PVcalc?lat=52.52&lon=13.405&peakpower=4&loss=14&angle=35&aspect=-90&outputformat=json",
		got)
}

func TestRequest_Validate(t *testing.T) {
	valid := Request{Latitude: 10, Longitude: 10, PeakPowerKW: 1, LossPercent: 14}

	tests := []struct {
		name    string
		mutate  func(r *Request)
		wantErr bool
	}{
		{name: "valid", mutate: func(*Request) {}},
		{name: "latitude high", mutate: func(r *Request) { r.Latitude = 91 }, wantErr: true},
		{name: "longitude low", mutate: func(r *Request) { r.Longitude = -181 }, wantErr: true},
		{name: "zero peak power", mutate: func(r *Request) { r.PeakPowerKW = 0 }, wantErr: true},
		{name: "loss over 100", mutate: func(r *Request) { r.LossPercent = 101 }, wantErr: true},
		{name: "NaN latitude", mutate: func(r *Request) { r.Latitude = math.NaN() }, wantErr: true},
		{name: "NaN peak power", mutate: func(r *Request) { r.PeakPowerKW = math.NaN() }, wantErr: true},
		{name: "Inf peak power", mutate: func(r *Request) { r.PeakPowerKW = math.Inf(1) }, wantErr: true},
		{name: "NaN angle", mutate: func(r *Request) { r.AngleDeg = math.NaN() }, wantErr: true},
		{name: "Inf aspect", mutate: func(r *Request) { r.AspectDeg = math.Inf(-1) }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := valid
			tt.mutate(&r)
			err := r.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRequest)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
