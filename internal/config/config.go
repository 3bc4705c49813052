// Package config loads and saves the solarcalc configuration.
//
// Precedence, lowest first: built-in defaults, ~/.solarcalc/config.yaml (or
// the --config path), then SOLARCALC_* environment variables where "__"
// separates sections, e.g. SOLARCALC_ESTIMATOR__TIMEOUT_SECONDS=60.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/rshade/solarcalc/internal/geocode"
	"github.com/rshade/solarcalc/internal/pvgis"
	"github.com/rshade/solarcalc/internal/relay"
)

// Environment variables.
const (
	// EnvHome overrides the ~/.solarcalc directory.
	EnvHome = "SOLARCALC_HOME"
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "SOLARCALC_"
)

const (
	dirName        = ".solarcalc"
	configFileName = "config.yaml"
)

// Config is the full application configuration.
type Config struct {
	Geocoder  GeocoderConfig  `yaml:"geocoder"  koanf:"geocoder"`
	Estimator EstimatorConfig `yaml:"estimator" koanf:"estimator"`
	Defaults  DefaultsConfig  `yaml:"defaults"  koanf:"defaults"`
	Cache     CacheConfig     `yaml:"cache"     koanf:"cache"`
	Logging   LoggingConfig   `yaml:"logging"   koanf:"logging"`

	configPath string
}

// GeocoderConfig configures address lookup.
type GeocoderConfig struct {
	BaseURL        string `yaml:"base_url"        koanf:"base_url"`
	UserAgent      string `yaml:"user_agent"      koanf:"user_agent"`
	Limit          int    `yaml:"limit"           koanf:"limit"`
	TimeoutSeconds int    `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	DebounceMillis int    `yaml:"debounce_ms"     koanf:"debounce_ms"`
}

// EstimatorConfig configures the PVGIS client and its relays.
type EstimatorConfig struct {
	BaseURL        string           `yaml:"base_url"        koanf:"base_url"`
	TimeoutSeconds int              `yaml:"timeout_seconds" koanf:"timeout_seconds"`
	Relays         []relay.Template `yaml:"relays"          koanf:"relays"`
}

// DefaultsConfig pre-fills the calculator form.
type DefaultsConfig struct {
	PeakPowerKW    float64 `yaml:"peak_power_kw"   koanf:"peak_power_kw"`
	TiltDeg        float64 `yaml:"tilt_deg"        koanf:"tilt_deg"`
	OrientationDeg float64 `yaml:"orientation_deg" koanf:"orientation_deg"`
	CostPerKWh     float64 `yaml:"cost_per_kwh"    koanf:"cost_per_kwh"`
	Currency       string  `yaml:"currency"        koanf:"currency"`
}

// CacheConfig configures the geocoding cache.
type CacheConfig struct {
	Enabled   bool   `yaml:"enabled"   koanf:"enabled"`
	Directory string `yaml:"directory" koanf:"directory"`
	TTLHours  int    `yaml:"ttl_hours" koanf:"ttl_hours"`
}

// New returns the default configuration.
func New() *Config {
	dir := Dir()
	return &Config{
		Geocoder: GeocoderConfig{
			BaseURL:        geocode.DefaultBaseURL,
			UserAgent:      geocode.DefaultUserAgent,
			Limit:          geocode.DefaultLimit,
			TimeoutSeconds: int(geocode.DefaultTimeout.Seconds()),
			DebounceMillis: 500,
		},
		Estimator: EstimatorConfig{
			BaseURL:        pvgis.DefaultBaseURL,
			TimeoutSeconds: int(pvgis.DefaultTimeout.Seconds()),
			Relays:         relay.DefaultTemplates(),
		},
		Defaults: DefaultsConfig{
			PeakPowerKW:    4,
			TiltDeg:        35,
			OrientationDeg: 180,
			CostPerKWh:     0.30,
			Currency:       "$",
		},
		Cache: CacheConfig{
			Enabled:   true,
			Directory: filepath.Join(dir, "cache"),
			TTLHours:  24 * 7,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			File:   filepath.Join(dir, "logs", "solarcalc.log"),
		},
		configPath: filepath.Join(dir, configFileName),
	}
}

// Dir returns the solarcalc home directory.
func Dir() string {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return dirName
	}
	return filepath.Join(home, dirName)
}

// DefaultPath returns the default config file location.
func DefaultPath() string {
	return filepath.Join(Dir(), configFileName)
}

// Path returns the file this config was loaded from or will be saved to.
func (c *Config) Path() string {
	return c.configPath
}

// SetConfigPath changes the file used by Save.
func (c *Config) SetConfigPath(path string) {
	c.configPath = path
}

// Save writes the configuration as YAML, creating the directory if needed.
func (c *Config) Save() error {
	if c.configPath == "" {
		return errors.New("config path not set")
	}
	if err := os.MkdirAll(filepath.Dir(c.configPath), 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err = os.WriteFile(c.configPath, data, 0o600); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}
