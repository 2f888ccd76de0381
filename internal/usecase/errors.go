package usecase

import "errors"

// The upstream-facing sentinels mirror the failure taxonomy callers need to
// tell apart: a bot-protection interstitial is transient, a missing data tag
// means the page shape changed, and so on. Nothing here is retried inside
// this layer; retry policy belongs to the caller.
var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")

	ErrBlocked             = errors.New("blocked by upstream bot protection")
	ErrDataTagNotFound     = errors.New("embedded data tag not found")
	ErrMalformedPayload    = errors.New("embedded payload is not valid json")
	ErrRequiredDataMissing = errors.New("required match data missing")
	ErrMatchNotFound       = errors.New("match not found")
	ErrUpstreamUnreachable = errors.New("upstream unreachable")
)
