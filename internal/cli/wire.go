package cli

import (
	"context"
	"net/http"
	"time"

	"github.com/rshade/solarcalc/internal/cache"
	"github.com/rshade/solarcalc/internal/config"
	"github.com/rshade/solarcalc/internal/engine"
	"github.com/rshade/solarcalc/internal/geocode"
	"github.com/rshade/solarcalc/internal/logging"
	"github.com/rshade/solarcalc/internal/pvgis"
)

// newEngine builds the geocoder and yield clients from cfg. A cache that
// cannot be opened is logged and skipped.
func newEngine(ctx context.Context, cfg *config.Config) *engine.Engine {
	geoOpts := []geocode.Option{
		geocode.WithBaseURL(cfg.Geocoder.BaseURL),
		geocode.WithUserAgent(cfg.Geocoder.UserAgent),
		geocode.WithLimit(cfg.Geocoder.Limit),
		geocode.WithHTTPClient(&http.Client{Timeout: seconds(cfg.Geocoder.TimeoutSeconds)}),
	}

	if cfg.Cache.Enabled {
		ttl := time.Duration(cfg.Cache.TTLHours) * time.Hour
		store, err := cache.NewStore(cfg.Cache.Directory, true, ttl)
		if err != nil {
			logging.FromContext(ctx).Warn().
				Ctx(ctx).
				Str("component", "cli").
				Str("directory", cfg.Cache.Directory).
				Err(err).
				Msg("geocoding cache unavailable, continuing without it")
		} else {
			geoOpts = append(geoOpts, geocode.WithCache(store))
		}
	}

	yields := pvgis.NewClient(
		pvgis.WithBaseURL(cfg.Estimator.BaseURL),
		pvgis.WithDoer(&http.Client{Timeout: seconds(cfg.Estimator.TimeoutSeconds)}),
		pvgis.WithRelays(cfg.Estimator.Relays),
	)

	return engine.New(geocode.NewClient(geoOpts...), yields)
}

func seconds(n int) time.Duration {
	return time.Duration(n) * time.Second
}

// defaultPanel is the panel configured under defaults.
func defaultPanel(cfg *config.Config) engine.PanelConfig {
	return engine.PanelConfig{
		PeakPowerKW:    cfg.Defaults.PeakPowerKW,
		TiltDeg:        cfg.Defaults.TiltDeg,
		OrientationDeg: cfg.Defaults.OrientationDeg,
	}
}
