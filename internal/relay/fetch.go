package relay

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rshade/solarcalc/internal/logging"
)

// maxBodyBytes caps how much of a relay response is read.
const maxBodyBytes = 8 << 20

// ErrAllRelaysFailed is matched by the error returned when every relay failed.
var ErrAllRelaysFailed = errors.New("all relays failed")

// ErrNoTemplates is returned when Fetch is called with an empty relay list.
var ErrNoTemplates = errors.New("no relay templates configured")

// Doer executes HTTP requests. *http.Client satisfies it.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Result is a successful relay response.
type Result struct {
	Relay      string
	URL        string
	StatusCode int
	Body       []byte
}

// Attempt records one failed relay call.
type Attempt struct {
	Relay      string
	URL        string
	StatusCode int
	Err        error
}

func (a Attempt) String() string {
	if a.Err != nil {
		return fmt.Sprintf("%s: %v", a.Relay, a.Err)
	}
	return fmt.Sprintf("%s: status %d", a.Relay, a.StatusCode)
}

// ExhaustedError reports that no relay produced a successful response.
type ExhaustedError struct {
	Attempts []Attempt
}

func (e *ExhaustedError) Error() string {
	return "all relays failed, last error: " + e.lastDescription()
}

// Unwrap exposes ErrAllRelaysFailed and the last transport error, if any.
func (e *ExhaustedError) Unwrap() []error {
	errs := []error{ErrAllRelaysFailed}
	if last := e.Last(); last != nil && last.Err != nil {
		errs = append(errs, last.Err)
	}
	return errs
}

// Last returns the final attempt, or nil when there were none.
func (e *ExhaustedError) Last() *Attempt {
	if len(e.Attempts) == 0 {
		return nil
	}
	return &e.Attempts[len(e.Attempts)-1]
}

func (e *ExhaustedError) lastDescription() string {
	last := e.Last()
	if last == nil {
		return "unknown"
	}
	return last.String()
}

// Fetch GETs target through each template in order and returns the first
// 2xx response. Transport errors, read errors and non-2xx statuses move on to
// the next template. Cancellation of ctx stops the loop immediately.
func Fetch(ctx context.Context, doer Doer, target string, templates []Template) (*Result, error) {
	if len(templates) == 0 {
		return nil, ErrNoTemplates
	}

	log := logging.FromContext(ctx)
	attempts := make([]Attempt, 0, len(templates))

	for _, tmpl := range templates {
		relayURL := tmpl.Wrap(target)

		log.Debug().
			Ctx(ctx).
			Str("component", "relay").
			Str("relay", tmpl.Label()).
			Str("url", relayURL).
			Msg("trying relay")

		res, attempt := try(ctx, doer, tmpl.Label(), relayURL)
		if res != nil {
			log.Info().
				Ctx(ctx).
				Str("component", "relay").
				Str("relay", tmpl.Label()).
				Int("failed_attempts", len(attempts)).
				Msg("relay succeeded")
			return res, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}

		log.Warn().
			Ctx(ctx).
			Str("component", "relay").
			Str("relay", tmpl.Label()).
			Int("status", attempt.StatusCode).
			AnErr("error", attempt.Err).
			Msg("relay failed, trying next")
		attempts = append(attempts, attempt)
	}

	return nil, &ExhaustedError{Attempts: attempts}
}

func try(ctx context.Context, doer Doer, name, relayURL string) (*Result, Attempt) {
	attempt := Attempt{Relay: name, URL: relayURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, relayURL, nil)
	if err != nil {
		attempt.Err = fmt.Errorf("building request: %w", err)
		return nil, attempt
	}
	req.Header.Set("Accept", "application/json")

	resp, err := doer.Do(req)
	if err != nil {
		attempt.Err = err
		return nil, attempt
	}
	defer resp.Body.Close()

	attempt.StatusCode = resp.StatusCode
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, attempt
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		attempt.Err = fmt.Errorf("reading body: %w", err)
		return nil, attempt
	}

	return &Result{
		Relay:      name,
		URL:        relayURL,
		StatusCode: resp.StatusCode,
		Body:       body,
	}, attempt
}

// Names returns the labels of templates, for logging and display.
func Names(templates []Template) string {
	names := make([]string, 0, len(templates))
	for _, t := range templates {
		names = append(names, t.Label())
	}
	return strings.Join(names, ", ")
}
