package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rshade/solarcalc/internal/logging"
)

// Nominatim defaults. The usage policy requires an identifying User-Agent.
const (
	DefaultBaseURL   = "https://nominatim.openstreetmap.org"
	DefaultUserAgent = "SolarCalcApp/1.0"
	DefaultLimit     = 5
	DefaultTimeout   = 10 * time.Second

	// MinQueryLength is the shortest query that is sent to the service.
	MinQueryLength = 3
)

const maxBodyBytes = 2 << 20

// ErrQueryTooShort is returned for queries under MinQueryLength runes.
var ErrQueryTooShort = errors.New("query too short")

// Place is one search hit.
type Place struct {
	DisplayName string  `json:"display_name"`
	Latitude    float64 `json:"lat"`
	Longitude   float64 `json:"lon"`
}

// rawPlace mirrors the wire format, where coordinates are strings.
type rawPlace struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// Cache persists raw search responses keyed by endpoint, limit and query.
type Cache interface {
	Get(key string) (json.RawMessage, error)
	Set(key string, data json.RawMessage) error
}

// Client queries Nominatim.
type Client struct {
	baseURL   string
	userAgent string
	limit     int
	http      *http.Client
	cache     Cache
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option { return func(c *Client) { c.baseURL = u } }

// WithUserAgent overrides the identifying User-Agent.
func WithUserAgent(ua string) Option { return func(c *Client) { c.userAgent = ua } }

// WithLimit overrides the maximum number of results.
func WithLimit(n int) Option { return func(c *Client) { c.limit = n } }

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(h *http.Client) Option { return func(c *Client) { c.http = h } }

// WithCache enables response caching.
func WithCache(cache Cache) Option { return func(c *Client) { c.cache = cache } }

// NewClient returns a Nominatim client with the public defaults.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:   DefaultBaseURL,
		userAgent: DefaultUserAgent,
		limit:     DefaultLimit,
		http:      &http.Client{Timeout: DefaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.limit <= 0 {
		c.limit = DefaultLimit
	}
	return c
}

// Search returns up to the configured limit of places matching query.
func (c *Client) Search(ctx context.Context, query string) ([]Place, error) {
	if utf8.RuneCountInString(query) < MinQueryLength {
		return nil, ErrQueryTooShort
	}

	log := logging.FromContext(ctx)

	body, fromCache := c.cached(ctx, query)
	if !fromCache {
		var err error
		body, err = c.fetch(ctx, query)
		if err != nil {
			return nil, err
		}
	}

	var raw []rawPlace
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decoding geocoding response: %w", err)
	}

	places := make([]Place, 0, len(raw))
	for _, r := range raw {
		p, err := r.toPlace()
		if err != nil {
			log.Warn().
				Ctx(ctx).
				Str("component", "geocode").
				Str("display_name", r.DisplayName).
				Err(err).
				Msg("skipping result with bad coordinates")
			continue
		}
		places = append(places, p)
	}

	if !fromCache && c.cache != nil {
		if err := c.cache.Set(c.cacheKey(query), body); err != nil {
			log.Debug().Ctx(ctx).Str("component", "geocode").Err(err).Msg("cache write failed")
		}
	}

	log.Debug().
		Ctx(ctx).
		Str("component", "geocode").
		Str("query", query).
		Bool("cached", fromCache).
		Int("results", len(places)).
		Msg("geocoding complete")

	return places, nil
}

// cacheKey scopes query to the endpoint and limit so a config change never
// serves answers fetched under the old settings.
func (c *Client) cacheKey(query string) string {
	return fmt.Sprintf("%s|%d|%s", strings.TrimRight(c.baseURL, "/"), c.limit, strings.TrimSpace(query))
}

func (c *Client) cached(ctx context.Context, query string) ([]byte, bool) {
	if c.cache == nil {
		return nil, false
	}
	data, err := c.cache.Get(c.cacheKey(query))
	if err != nil {
		logging.FromContext(ctx).Debug().
			Ctx(ctx).
			Str("component", "geocode").
			Err(err).
			Msg("cache miss")
		return nil, false
	}
	return data, true
}

func (c *Client) fetch(ctx context.Context, query string) ([]byte, error) {
	params := url.Values{}
	params.Set("format", "json")
	params.Set("q", query)
	params.Set("limit", strconv.Itoa(c.limit))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	return body, nil
}

func (r rawPlace) toPlace() (Place, error) {
	lat, err := strconv.ParseFloat(r.Lat, 64)
	if err != nil {
		return Place{}, fmt.Errorf("latitude %q: %w", r.Lat, err)
	}
	lon, err := strconv.ParseFloat(r.Lon, 64)
	if err != nil {
		return Place{}, fmt.Errorf("longitude %q: %w", r.Lon, err)
	}
	return Place{DisplayName: r.DisplayName, Latitude: lat, Longitude: lon}, nil
}
