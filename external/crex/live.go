package crex

import "github.com/crickslab/crex-api/internal/domain/match"

// projectLive assembles the frequently-changing snapshot layered on top of
// the static scorecard. It returns nil, degrading the live section to
// absent, unless both a live-performance object and a current innings are
// present.
func projectLive(wrapper, m map[string]any, rawInnings []map[string]any, staticInnings []match.Innings, recentLimit int) *match.LiveState {
	live, ok := mapField(wrapper, "liveScore")
	if !ok {
		return nil
	}

	currentIdx := -1
	for i, raw := range rawInnings {
		if boolField(raw, "isCurrent") {
			currentIdx = i
			break
		}
	}
	if currentIdx < 0 {
		return nil
	}
	current := rawInnings[currentIdx]

	team := teamAbbrByID(m, intField(live, "battingTeamId"))
	if team == match.UnknownTeam {
		team = teamAbbrByID(m, intField(current, "teamId"))
	}

	score, _ := mapField(live, "score")
	out := &match.LiveState{
		Team:        team,
		Score:       runsWickets(score),
		Overs:       strField(live, "overs"),
		CRR:         floatField(live, "runRate"),
		RRR:         floatField(live, "requiredRunRate"),
		Target:      intField(live, "target"),
		Partnership: liveBatterPair(activePartnership(current, live)),
		Recent:      recentBalls(live, recentLimit),
		Batters:     mapBatting(listField(live, "batsmen")),
		Bowlers:     enrichBowlers(mapBowling(listField(live, "bowlers")), staticBowling(staticInnings, currentIdx)),
	}

	return out
}

// activePartnership prefers the partnership flagged live inside the current
// innings and falls back to the live object's own partnership.
func activePartnership(current, live map[string]any) map[string]any {
	for _, item := range listField(current, "partnerships") {
		p, ok := item.(map[string]any)
		if !ok {
			continue
		}
		if boolField(p, "isLive") {
			return p
		}
	}
	p, _ := mapField(live, "partnership")
	return p
}

// liveBatterPair reports the partnership with each batter's name, runs, and
// balls inline so the client needs no squad join mid-over.
func liveBatterPair(p map[string]any) *match.LivePartnership {
	if p == nil {
		return nil
	}

	out := &match.LivePartnership{
		Runs:  intField(p, "runs"),
		Balls: intField(p, "balls"),
	}
	batters := listField(p, "batsmen")
	if len(batters) > 0 {
		out.P1 = liveBatter(batters[0])
	}
	if len(batters) > 1 {
		out.P2 = liveBatter(batters[1])
	}
	return out
}

func liveBatter(v any) match.LiveBatter {
	b, ok := v.(map[string]any)
	if !ok {
		return match.LiveBatter{}
	}
	return match.LiveBatter{
		Name:  strField(b, "name"),
		Runs:  intField(b, "runs"),
		Balls: intField(b, "balls"),
	}
}

// recentBalls truncates the deliveries feed to the most recent limit
// entries, preserving source order.
func recentBalls(live map[string]any, limit int) []string {
	feed := stringList(live["recentBalls"])
	if limit > 0 && len(feed) > limit {
		feed = feed[len(feed)-limit:]
	}
	return feed
}

func staticBowling(innings []match.Innings, idx int) map[string]match.BowlingEntry {
	out := make(map[string]match.BowlingEntry)
	if idx < 0 || idx >= len(innings) {
		return out
	}
	for _, entry := range innings[idx].Bowling {
		out[entry.Slug] = entry
	}
	return out
}

// enrichBowlers fills in the boundary and extra counts the live object
// omits from the matching static bowling entries.
func enrichBowlers(liveBowlers []match.BowlingEntry, static map[string]match.BowlingEntry) []match.BowlingEntry {
	for i, bowler := range liveBowlers {
		full, ok := static[bowler.Slug]
		if !ok {
			continue
		}
		liveBowlers[i].Dots = full.Dots
		liveBowlers[i].Fours = full.Fours
		liveBowlers[i].Sixes = full.Sixes
		liveBowlers[i].NoBalls = full.NoBalls
		liveBowlers[i].Wides = full.Wides
	}
	return liveBowlers
}
