package pvgis

import (
	"context"
	"net/http"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/rshade/solarcalc/internal/logging"
	"github.com/rshade/solarcalc/internal/relay"
)

// DefaultTimeout bounds the HTTP client used when none is supplied.
const DefaultTimeout = 30 * time.Second

// Client calls PVcalc through relays.
type Client struct {
	baseURL string
	doer    relay.Doer
	relays  []relay.Template

	group singleflight.Group
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the API root.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithDoer sets the HTTP transport.
func WithDoer(d relay.Doer) Option {
	return func(c *Client) { c.doer = d }
}

// WithRelays sets the ordered relay list.
func WithRelays(templates []relay.Template) Option {
	return func(c *Client) { c.relays = templates }
}

// NewClient returns a client with the PVGIS defaults and the built-in relays.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		doer:    &http.Client{Timeout: DefaultTimeout},
		relays:  relay.DefaultTemplates(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Calculate requests a yield estimate. Identical requests already in flight
// share one round trip.
func (c *Client) Calculate(ctx context.Context, req Request) (*Response, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	target := req.TargetURL(c.baseURL)
	log := logging.FromContext(ctx)
	start := time.Now()

	log.Debug().
		Ctx(ctx).
		Str("component", "pvgis").
		Str("operation", "calculate").
		Str("target", target).
		Str("relays", relay.Names(c.relays)).
		Msg("requesting yield estimate")

	ch := c.group.DoChan(target, func() (any, error) {
		res, err := relay.Fetch(ctx, c.doer, target, c.relays)
		if err != nil {
			return nil, err
		}
		return Decode(res.Body)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case out := <-ch:
		if out.Err != nil {
			log.Error().
				Ctx(ctx).
				Str("component", "pvgis").
				Err(out.Err).
				Dur("duration", time.Since(start)).
				Msg("yield estimate failed")
			return nil, out.Err
		}
		log.Info().
			Ctx(ctx).
			Str("component", "pvgis").
			Bool("shared", out.Shared).
			Dur("duration", time.Since(start)).
			Msg("yield estimate received")
		resp, _ := out.Val.(*Response)
		return resp, nil
	}
}
