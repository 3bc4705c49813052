// Package relay fetches a URL through an ordered list of relay templates.
//
// Some services cannot be reached directly from every environment, so the
// target URL is wrapped by a relay (a public pass-through proxy) and the
// relays are tried one after another. The first successful response wins.
// Attempts are strictly sequential and there is no backoff.
package relay
