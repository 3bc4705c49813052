package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Validate checks the configuration for values the clients cannot use.
func (c *Config) Validate() error {
	var errs []error

	if err := validateURL(c.Geocoder.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("geocoder.base_url: %w", err))
	}
	if strings.TrimSpace(c.Geocoder.UserAgent) == "" {
		errs = append(errs, errors.New("geocoder.user_agent must be set"))
	}
	if c.Geocoder.Limit < 1 || c.Geocoder.Limit > 50 {
		errs = append(errs, fmt.Errorf("geocoder.limit must be between 1 and 50, got %d", c.Geocoder.Limit))
	}
	if c.Geocoder.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("geocoder.timeout_seconds must be positive"))
	}
	if c.Geocoder.DebounceMillis <= 0 {
		errs = append(errs, errors.New("geocoder.debounce_ms must be positive"))
	}

	if err := validateURL(c.Estimator.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("estimator.base_url: %w", err))
	}
	if c.Estimator.TimeoutSeconds <= 0 {
		errs = append(errs, errors.New("estimator.timeout_seconds must be positive"))
	}
	if len(c.Estimator.Relays) == 0 {
		errs = append(errs, errors.New("estimator.relays must list at least one relay"))
	}
	for i, r := range c.Estimator.Relays {
		if err := r.Validate(); err != nil {
			errs = append(errs, fmt.Errorf("estimator.relays[%d]: %w", i, err))
		}
	}

	if c.Defaults.PeakPowerKW <= 0 {
		errs = append(errs, errors.New("defaults.peak_power_kw must be positive"))
	}
	if c.Defaults.TiltDeg < 0 || c.Defaults.TiltDeg > 90 {
		errs = append(errs, errors.New("defaults.tilt_deg must be between 0 and 90"))
	}
	if c.Defaults.OrientationDeg < 0 || c.Defaults.OrientationDeg > 360 {
		errs = append(errs, errors.New("defaults.orientation_deg must be between 0 and 360"))
	}
	if c.Defaults.CostPerKWh < 0 {
		errs = append(errs, errors.New("defaults.cost_per_kwh must be >= 0"))
	}

	if c.Cache.Enabled && c.Cache.Directory == "" {
		errs = append(errs, errors.New("cache.directory must be set when the cache is enabled"))
	}

	if err := c.Logging.Validate(); err != nil {
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

func validateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https, got %q", u.Scheme)
	}
	if u.Host == "" {
		return errors.New("host is empty")
	}
	return nil
}
