package relay

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Template placeholders.
const (
	// PlaceholderEncoded is replaced with the percent-encoded target URL.
	PlaceholderEncoded = "{url}"
	// PlaceholderRaw is replaced with the target URL as is.
	PlaceholderRaw = "{raw}"
)

// ErrInvalidTemplate is returned for templates without a placeholder.
var ErrInvalidTemplate = errors.New("relay template must contain {url} or {raw}")

// Template wraps a target URL into a relay URL.
type Template struct {
	Name    string `yaml:"name"    json:"name"    koanf:"name"`
	Pattern string `yaml:"pattern" json:"pattern" koanf:"pattern"`
}

// Direct calls the target without any relay.
//
//nolint:gochecknoglobals // Immutable template value.
var Direct = Template{Name: "direct", Pattern: PlaceholderRaw}

// DefaultTemplates returns the built-in relays in priority order.
func DefaultTemplates() []Template {
	return []Template{
		{Name: "corsproxy.io", Pattern: "https://corsproxy.io/?" + PlaceholderEncoded},
		{Name: "allorigins", Pattern: "https://api.allorigins.win/raw?url=" + PlaceholderEncoded},
		{Name: "codetabs", Pattern: "https://api.codetabs.com/v1/proxy?quest=" + PlaceholderEncoded},
	}
}

// Validate checks the pattern is usable.
func (t Template) Validate() error {
	if !strings.Contains(t.Pattern, PlaceholderEncoded) && !strings.Contains(t.Pattern, PlaceholderRaw) {
		return fmt.Errorf("%w: %q", ErrInvalidTemplate, t.Pattern)
	}
	return nil
}

// Wrap returns the relay URL for target.
func (t Template) Wrap(target string) string {
	out := strings.ReplaceAll(t.Pattern, PlaceholderEncoded, EncodeComponent(target))
	return strings.ReplaceAll(out, PlaceholderRaw, target)
}

// Label is the template's name, falling back to its pattern.
func (t Template) Label() string {
	if t.Name != "" {
		return t.Name
	}
	return t.Pattern
}

// EncodeComponent percent-encodes s for use as a single query value.
// Spaces become %20 rather than '+'.
func EncodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
