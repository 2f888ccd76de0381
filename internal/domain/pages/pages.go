package pages

import (
	"fmt"
	"net/url"
	"strings"
)

// Kind identifies the upstream page template a request targets. The kind's
// string value doubles as the path suffix the upstream site expects.
type Kind string

const (
	KindScorecard Kind = "scorecard"
	KindLive      Kind = "live"
	KindSchedule  Kind = "schedule"
	KindSquads    Kind = "squads"
)

// Canonicalize derives the stable cache key and fetch target for a raw input
// URL: the query string and fragment are stripped, a trailing slash is
// trimmed, and the page-type suffix is appended when not already present.
// Inputs differing only by query string or trailing slash canonicalize to
// the same value, and the function is idempotent.
func Canonicalize(raw string, kind Kind) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("parse url %q: %w", raw, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("url %q uses unsupported scheme %q", raw, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", fmt.Errorf("url %q has empty host", raw)
	}

	parsed.RawQuery = ""
	parsed.Fragment = ""

	path := strings.TrimRight(parsed.Path, "/")
	suffix := "/" + string(kind)
	if !strings.HasSuffix(path, suffix) {
		path += suffix
	}
	parsed.Path = path

	return parsed.String(), nil
}
