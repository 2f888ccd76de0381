package crex

import (
	"strings"
	"time"

	"github.com/crickslab/crex-api/internal/domain/match"
	"github.com/crickslab/crex-api/internal/domain/schedule"
)

// mapSchedule converts the raw schedule items into normalized entries with
// deterministic ids. The prefix override wins; otherwise the prefix is
// derived from the first item carrying a series slug. A broken result block
// on one entry degrades that entry's result, never the whole list.
func mapSchedule(items []any, prefixOverride, defaultOvers string) []schedule.Entry {
	prefix := schedule.SeriesPrefix(prefixOverride, firstSeriesSlug(items))

	out := make([]schedule.Entry, 0, len(items))
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}

		state := match.NormalizeState(strField(raw, "state"))
		home, away := homeAwayTeams(raw)

		entry := schedule.Entry{
			ID:    schedule.MatchID(prefix, len(out)+1),
			Date:  scheduleDate(raw["startDate"]),
			Title: strField(raw, "title"),
			State: state,
			Teams: schedule.Teams{
				Home: teamRef(home).Abbr,
				Away: teamRef(away).Abbr,
			},
			Venue: scheduleVenue(raw),
		}
		if state == match.StatePost {
			entry.Result = scheduleResult(raw, defaultOvers)
		}

		out = append(out, entry)
	}
	return out
}

func firstSeriesSlug(items []any) string {
	for _, item := range items {
		raw, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if slug := strField(raw, "seriesSlug"); slug != "" {
			return slug
		}
	}
	return ""
}

func scheduleDate(v any) string {
	if epoch := startUnix(v); epoch > 0 {
		return time.Unix(epoch, 0).UTC().Format("2006-01-02")
	}
	return asString(v)
}

func scheduleVenue(raw map[string]any) string {
	if venue, ok := mapField(raw, "venue"); ok {
		return strField(venue, "ground")
	}
	return strField(raw, "venue")
}

func scheduleResult(raw map[string]any, defaultOvers string) *schedule.Result {
	result := &schedule.Result{
		Win: teamAbbrByID(raw, intField(raw, "winnerTeamId")),
	}

	for _, item := range listField(raw, "teams") {
		t, ok := item.(map[string]any)
		if !ok {
			continue
		}
		score := strField(t, "score")
		if score == "" {
			if nested, ok := mapField(t, "score"); ok {
				score = runsWickets(nested)
			}
		}
		result.Scores = append(result.Scores, schedule.TeamScore{
			Team:  strField(t, "shortName"),
			Score: score,
			Overs: oversPlayed(strField(t, "scoreInfo"), defaultOvers),
		})
	}

	return result
}

// oversPlayed parses the overs actually bowled out of a free-text score-info
// string: the first whitespace-delimited token is split on "/" and only the
// numerator kept. An empty string falls back to the configured default,
// a leftover of the upstream's T20 focus that clients depend on.
func oversPlayed(info, fallback string) string {
	fields := strings.Fields(strings.TrimSpace(info))
	if len(fields) == 0 {
		return fallback
	}
	return strings.SplitN(fields[0], "/", 2)[0]
}
