package cli_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/solarcalc/internal/cli"
	"github.com/rshade/solarcalc/internal/engine"
	"github.com/rshade/solarcalc/internal/geocode"
	"github.com/rshade/solarcalc/internal/relay"
)

const parisResponse = `[
  {"display_name": "Paris, Île-de-France, France", "lat": "48.8566", "lon": "2.3522"},
  {"display_name": "Paris, Lamar County, Texas", "lat": "33.6609", "lon": "-95.5555"}
]`

const pvgisResponse = `{
  "outputs": {
    "monthly": {"fixed": [
      {"month": 1, "E_m": 110}, {"month": 2, "E_m": 180}, {"month": 3, "E_m": 310},
      {"month": 4, "E_m": 420}, {"month": 5, "E_m": 480}, {"month": 6, "E_m": 490},
      {"month": 7, "E_m": 500}, {"month": 8, "E_m": 450}, {"month": 9, "E_m": 350},
      {"month": 10, "E_m": 250}, {"month": 11, "E_m": 120}, {"month": 12, "E_m": 90}
    ]},
    "totals": {"fixed": {"E_y": 4000, "H(i)_y": 1300}}
  }
}`

// fixture runs the CLI against local Nominatim and PVGIS stand-ins with an
// isolated SOLARCALC_HOME.
type fixture struct {
	home       string
	configPath string

	geocodeHits atomic.Int32

	mu           sync.Mutex
	pvgisQueries []url.Values
}

func newFixture(t *testing.T, pvgisStatus int, pvgisBody string) *fixture {
	t.Helper()
	f := &fixture{home: t.TempDir()}
	t.Setenv("SOLARCALC_HOME", f.home)

	nominatim := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.geocodeHits.Add(1)
		assert.Equal(t, "/search", r.URL.Path)
		_, _ = w.Write([]byte(parisResponse))
	}))
	t.Cleanup(nominatim.Close)

	pvgis := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.pvgisQueries = append(f.pvgisQueries, r.URL.Query())
		f.mu.Unlock()
		assert.Equal(t, "/PVcalc", r.URL.Path)
		w.WriteHeader(pvgisStatus)
		_, _ = w.Write([]byte(pvgisBody))
	}))
	t.Cleanup(pvgis.Close)

	f.configPath = filepath.Join(f.home, "test-config.yaml")
	content := fmt.Sprintf(`geocoder:
  base_url: %s
estimator:
  base_url: %s
  relays:
    - name: direct
      pattern: "{raw}"
`, nominatim.URL, pvgis.URL)
	require.NoError(t, os.WriteFile(f.configPath, []byte(content), 0o600))

	return f
}

func (f *fixture) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return execute(t, append(args, "--config", f.configPath)...)
}

func (f *fixture) queries() []url.Values {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]url.Values(nil), f.pvgisQueries...)
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	cmd := cli.NewRootCmd("test")
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGeocode_Table(t *testing.T) {
	f := newFixture(t, http.StatusOK, pvgisResponse)

	out, _, err := f.run(t, "geocode", "Paris")
	require.NoError(t, err)
	assert.Contains(t, out, "Paris, Île-de-France, France")
	assert.Contains(t, out, "48.857, 2.352")
	assert.Contains(t, out, "Paris, Lamar County, Texas")
}

func TestGeocode_JSON(t *testing.T) {
	f := newFixture(t, http.StatusOK, pvgisResponse)

	out, _, err := f.run(t, "geocode", "Paris", "--output", "json")
	require.NoError(t, err)

	var candidates []engine.AddressCandidate
	require.NoError(t, json.Unmarshal([]byte(out), &candidates))
	require.Len(t, candidates, 2)
	assert.InDelta(t, 48.8566, candidates[0].Location.Latitude, 1e-9)
}

func TestGeocode_ShortQuery(t *testing.T) {
	f := newFixture(t, http.StatusOK, pvgisResponse)

	_, _, err := f.run(t, "geocode", "Pa")
	require.ErrorIs(t, err, geocode.ErrQueryTooShort)
	assert.Zero(t, f.geocodeHits.Load())
}

func TestGeocode_CachedBetweenRuns(t *testing.T) {
	f := newFixture(t, http.StatusOK, pvgisResponse)

	_, _, err := f.run(t, "geocode", "Paris")
	require.NoError(t, err)
	_, _, err = f.run(t, "geocode", "paris ")
	require.NoError(t, err)
	assert.Equal(t, int32(1), f.geocodeHits.Load(), "normalized query is served from the cache")

	out, _, err := f.run(t, "cache", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "Cache cleared")

	_, _, err = f.run(t, "geocode", "Paris")
	require.NoError(t, err)
	assert.Equal(t, int32(2), f.geocodeHits.Load())
}

func TestEstimate_CoordinatesJSON(t *testing.T) {
	f := newFixture(t, http.StatusOK, pvgisResponse)

	out, _, err := f.run(t, "estimate",
		"--lat", "48.8566", "--lon", "2.3522",
		"--peak-power", "5", "--orientation", "90", "--cost", "0.5",
		"--output", "json",
	)
	require.NoError(t, err)

	var report engine.YieldReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, "fixed", report.MountingType)
	assert.InDelta(t, 4000.0, report.YearlyEnergyKWh, 1e-9)
	assert.InDelta(t, 2000.0, report.YearlySavings, 1e-9)
	assert.InDelta(t, 500.0, report.MonthlyEnergyKWh[6], 1e-9)

	queries := f.queries()
	require.Len(t, queries, 1)
	q := queries[0]
	assert.Equal(t, "48.8566", q.Get("lat"))
	assert.Equal(t, "2.3522", q.Get("lon"))
	assert.Equal(t, "5", q.Get("peakpower"))
	assert.Equal(t, "14", q.Get("loss"))
	assert.Equal(t, "35", q.Get("angle"), "tilt defaults from config")
	assert.Equal(t, "-90", q.Get("aspect"), "east maps to -90")
	assert.Equal(t, "json", q.Get("outputformat"))
}

func TestEstimate_AddressUsesFirstCandidate(t *testing.T) {
	f := newFixture(t, http.StatusOK, pvgisResponse)

	out, _, err := f.run(t, "estimate", "--address", "Paris", "--plain")
	require.NoError(t, err)
	assert.Contains(t, out, "Address: Paris, Île-de-France, France")
	assert.Contains(t, out, "4,000 kWh")
	assert.Contains(t, out, "$1,200", "cost defaults to 0.30")
	assert.Contains(t, out, "Monthly production (kWh)")

	queries := f.queries()
	require.Len(t, queries, 1)
	assert.Equal(t, "48.8566", queries[0].Get("lat"))
	assert.Equal(t, "0", queries[0].Get("aspect"))
}

func TestEstimate_LocationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "missing", args: []string{"estimate"}, want: "either --address or both --lat and --lon"},
		{name: "lat only", args: []string{"estimate", "--lat", "10"}, want: "either --address or both --lat and --lon"},
		{name: "both", args: []string{"estimate", "--address", "Paris", "--lat", "1", "--lon", "2"}, want: "not both"},
		{name: "out of range", args: []string{"estimate", "--lat", "95", "--lon", "0"}, want: "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, http.StatusOK, pvgisResponse)
			_, _, err := f.run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.Empty(t, f.queries())
		})
	}
}

func TestEstimate_InvalidPanel(t *testing.T) {
	tests := []struct {
		name string
		flag string
		val  string
	}{
		{name: "tilt over 90", flag: "--tilt", val: "100"},
		{name: "NaN peak power", flag: "--peak-power", val: "NaN"},
		{name: "Inf peak power", flag: "--peak-power", val: "Inf"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, http.StatusOK, pvgisResponse)
			_, _, err := f.run(t, "estimate", "--lat", "48.8", "--lon", "2.3", tt.flag, tt.val)
			require.ErrorIs(t, err, engine.ErrInvalidPanel)
			assert.Empty(t, f.queries())
		})
	}
}

func TestEstimate_TotalsNotFound(t *testing.T) {
	f := newFixture(t, http.StatusOK, `{"outputs": {"totals": {}}}`)

	_, _, err := f.run(t, "estimate", "--lat", "48.8", "--lon", "2.3")
	require.ErrorIs(t, err, engine.ErrTotalsNotFound)
	assert.Equal(t, "could not find solar data totals in the PVGIS response for 48.8000, 2.3000", err.Error())
	assert.NotContains(t, err.Error(), "error fetching solar data", "a data problem is not reported as a fetch failure")
}

func TestEstimate_AllRelaysFail(t *testing.T) {
	f := newFixture(t, http.StatusServiceUnavailable, "busy")

	_, _, err := f.run(t, "estimate", "--lat", "48.8", "--lon", "2.3")
	require.ErrorIs(t, err, relay.ErrAllRelaysFailed)
	assert.Contains(t, err.Error(), "direct: status 503")
}

func TestEstimate_UnknownOutput(t *testing.T) {
	f := newFixture(t, http.StatusOK, pvgisResponse)

	_, _, err := f.run(t, "estimate", "--lat", "48.8", "--lon", "2.3", "--output", "xml")
	require.ErrorIs(t, err, engine.ErrUnknownFormat)
}

func TestConfigInit(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SOLARCALC_HOME", home)

	out, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Configuration initialized successfully")

	path := filepath.Join(home, "config.yaml")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "corsproxy.io")

	_, _, err = execute(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, _, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)
}

func TestConfigInit_ReplacesBrokenConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("SOLARCALC_HOME", home)
	path := filepath.Join(home, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("defaults:\n  tilt_deg: 400\n"), 0o600))

	_, _, err := execute(t, "config", "show")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading configuration")

	_, _, err = execute(t, "config", "init", "--force")
	require.NoError(t, err)

	_, _, err = execute(t, "config", "show")
	require.NoError(t, err)
}

func TestConfigShow_EnvOverride(t *testing.T) {
	t.Setenv("SOLARCALC_HOME", t.TempDir())
	t.Setenv("SOLARCALC_GEOCODER__LIMIT", "3")

	out, _, err := execute(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "limit: 3")
	assert.Contains(t, out, "user_agent: SolarCalcApp/1.0")
}

func TestRoot_Version(t *testing.T) {
	out, _, err := execute(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, out, "test")
}
