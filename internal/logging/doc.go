// Package logging configures the zerolog logger used across solarcalc.
//
// A single logger is built per command invocation from the logging section of
// the configuration. Components derive child loggers with ComponentLogger and
// retrieve the request-scoped logger from a context with FromContext. Every
// command run carries a ULID trace ID that a hook stamps onto each event
// logged with .Ctx(ctx).
package logging
