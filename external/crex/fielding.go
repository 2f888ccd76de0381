package crex

import "github.com/crickslab/crex-api/internal/domain/match"

// Dismissal type codes as the upstream records them.
const (
	dismissalCatch    = 1
	dismissalStumping = 2
	dismissalRunOut   = 3
)

// aggregateFielding derives per-fielder statistics from dismissal records;
// the source only records dismissals per batter. A single dismissal may
// credit several fielders (relay run-outs), and fielders who never feature
// in a dismissal get no entry at all.
func aggregateFielding(batsmen []any) []match.FieldingEntry {
	acc := make(map[string]*match.FieldingEntry)
	order := make([]string, 0, 4)

	for _, item := range batsmen {
		b, ok := item.(map[string]any)
		if !ok {
			continue
		}
		dismissal, ok := mapField(b, "dismissal")
		if !ok && !boolField(b, "isOut") {
			continue
		}
		if dismissal == nil {
			continue
		}

		kind := intField(dismissal, "type")
		for _, f := range listField(dismissal, "fielders") {
			fielder, ok := f.(map[string]any)
			if !ok {
				continue
			}
			slug := strField(fielder, "slug")
			if slug == "" {
				continue
			}

			entry, seen := acc[slug]
			if !seen {
				entry = &match.FieldingEntry{Slug: slug}
				acc[slug] = entry
				order = append(order, slug)
			}
			switch kind {
			case dismissalCatch:
				entry.Catches++
			case dismissalStumping:
				entry.Stumpings++
			case dismissalRunOut:
				entry.RunOuts++
			}
		}
	}

	out := make([]match.FieldingEntry, 0, len(order))
	for _, slug := range order {
		out = append(out, *acc[slug])
	}
	return out
}
