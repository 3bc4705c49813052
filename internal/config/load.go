package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/rshade/solarcalc/internal/relay"
)

const relaysKey = "estimator.relays"

// Load reads path (DefaultPath when empty) over the defaults and applies
// environment overrides. A missing file is not an error. Files ending in
// .json are parsed as JSON, anything else as YAML.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath()
	}

	k := koanf.New(".")

	if _, err := os.Stat(path); err == nil {
		if err = k.Load(file.Provider(path), parserFor(path)); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("accessing config file %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading environment overrides: %w", err)
	}

	cfg := New()
	cfg.configPath = path

	unmarshalConf := koanf.UnmarshalConf{Tag: "koanf"}
	if err := k.UnmarshalWithConf("", cfg, unmarshalConf); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}

	// Decoding onto the defaults would merge slices element-wise, so a
	// configured relay list replaces the built-in one wholesale.
	if k.Exists(relaysKey) {
		var relays []relay.Template
		if err := k.UnmarshalWithConf(relaysKey, &relays, unmarshalConf); err != nil {
			return nil, fmt.Errorf("decoding relays: %w", err)
		}
		cfg.Estimator.Relays = relays
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parserFor(path string) koanf.Parser {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		return json.Parser()
	}
	return yaml.Parser()
}

// envKey maps SOLARCALC_ESTIMATOR__BASE_URL to estimator.base_url.
func envKey(s string) string {
	s = strings.TrimPrefix(s, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(s), "__", ".")
}
