package schedule

import (
	"fmt"
	"strings"
)

type Teams struct {
	Home string `json:"home"`
	Away string `json:"away"`
}

type TeamScore struct {
	Team  string `json:"team"`
	Score string `json:"score"`
	Overs string `json:"overs"`
}

// Result is present only for completed matches.
type Result struct {
	Win    string      `json:"win"`
	Scores []TeamScore `json:"scores"`
}

// Entry is one row of a normalized series schedule.
type Entry struct {
	ID     string  `json:"id"`
	Date   string  `json:"date"`
	Title  string  `json:"title"`
	State  string  `json:"state"`
	Teams  Teams   `json:"teams"`
	Venue  string  `json:"venue"`
	Result *Result `json:"result,omitempty"`
}

// MatchID builds the deterministic per-match identifier: the series prefix
// plus a zero-padded sequence number, or the bare padded number when no
// prefix is available.
func MatchID(prefix string, seq int) string {
	if prefix == "" {
		return fmt.Sprintf("%03d", seq)
	}
	return fmt.Sprintf("%s-%03d", prefix, seq)
}

// Tokens stripped from a series slug before it is shortened into a prefix.
// These show up in upstream slugs for every gendered or format-specific
// tournament and carry no identity.
var slugNoiseTokens = map[string]struct{}{
	"men":    {},
	"mens":   {},
	"women":  {},
	"womens": {},
	"male":   {},
	"female": {},
	"t20":    {},
	"odi":    {},
	"test":   {},
}

// SeriesPrefix returns the override when supplied, otherwise derives a
// prefix from the series slug: noise tokens are filtered out and the first
// three remaining segments are joined back with dashes. An empty result
// means schedule ids degrade to bare sequence numbers.
func SeriesPrefix(override, slug string) string {
	if trimmed := strings.TrimSpace(override); trimmed != "" {
		return trimmed
	}

	kept := make([]string, 0, 3)
	for _, segment := range strings.Split(strings.ToLower(strings.TrimSpace(slug)), "-") {
		if segment == "" {
			continue
		}
		if _, noisy := slugNoiseTokens[segment]; noisy {
			continue
		}
		kept = append(kept, segment)
		if len(kept) == 3 {
			break
		}
	}

	return strings.Join(kept, "-")
}
