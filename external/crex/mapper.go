package crex

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/crickslab/crex-api/internal/domain/match"
)

// mapOptions carries the product constants that look arbitrary but are load
// bearing for existing clients (see the schedule mapper and live projector).
type mapOptions struct {
	recentBallCount int
	defaultOvers    string
}

// mapMatch converts a resolved match wrapper into the canonical record.
// Every access is defensive: a missing nested object degrades the affected
// field to its default, never the whole response.
func mapMatch(wrapper map[string]any, opts mapOptions) match.Match {
	m, _ := mapField(wrapper, "match")
	state := match.NormalizeState(strField(m, "state"))

	out := match.Match{
		Success: true,
		State:   state,
		Meta:    mapMeta(m),
		Pre: match.Pre{
			Officials: mapOfficials(m),
			Squads:    mapSquads(wrapper, m),
			Toss:      mapToss(m),
		},
	}

	rawInnings := inningsList(wrapper)
	out.Post.Innings = make([]match.Innings, 0, len(rawInnings))
	for _, raw := range rawInnings {
		out.Post.Innings = append(out.Post.Innings, mapInnings(raw, m))
	}

	if state == match.StatePost {
		out.Post.Result = &match.Result{Win: teamAbbrByID(m, intField(m, "winnerTeamId"))}
	}
	if state == match.StateLive {
		out.Live = projectLive(wrapper, m, rawInnings, out.Post.Innings, opts.recentBallCount)
	}

	return out
}

func mapSquadsPage(wrapper map[string]any) match.SquadsPage {
	m, _ := mapField(wrapper, "match")
	home, away := homeAwayTeams(m)

	return match.SquadsPage{
		Success: true,
		Teams: match.TeamPair{
			Home: teamRef(home),
			Away: teamRef(away),
		},
		Squads: mapSquads(wrapper, m),
	}
}

func mapMeta(m map[string]any) match.Meta {
	home, away := homeAwayTeams(m)
	venue, _ := mapField(m, "venue")

	return match.Meta{
		Start: startUnix(m["startDate"]),
		Title: strField(m, "title"),
		Teams: match.TeamPair{
			Home: teamRef(home),
			Away: teamRef(away),
		},
		Venue: match.Venue{
			Country: strField(venue, "country"),
			City:    strField(venue, "city"),
			Name:    strField(venue, "ground"),
		},
	}
}

// startUnix accepts epoch seconds or milliseconds, numeric or string.
func startUnix(v any) int64 {
	epoch := int64(asFloat(v))
	if epoch > 1e12 {
		epoch /= 1000
	}
	return epoch
}

// homeAwayTeams resolves the home/away slots. The team flagged "isHome"
// wins the home slot; when no team or more than one team carries the flag,
// the first listed team is home and the second away. The order-dependent
// tie-break is intentional and relied upon by clients.
func homeAwayTeams(m map[string]any) (map[string]any, map[string]any) {
	teams := listField(m, "teams")
	mapped := make([]map[string]any, 0, 2)
	for _, item := range teams {
		if t, ok := item.(map[string]any); ok {
			mapped = append(mapped, t)
		}
	}

	switch len(mapped) {
	case 0:
		return nil, nil
	case 1:
		return mapped[0], nil
	}

	flagged := -1
	count := 0
	for i, t := range mapped {
		if boolField(t, "isHome") {
			flagged = i
			count++
		}
	}
	if count == 1 && flagged == 1 {
		return mapped[1], mapped[0]
	}
	return mapped[0], mapped[1]
}

func teamRef(t map[string]any) match.TeamRef {
	if t == nil {
		return match.TeamRef{}
	}
	return match.TeamRef{
		Abbr: strField(t, "shortName"),
		Name: strField(t, "name"),
	}
}

// teamAbbrByID scans the match's team list for a matching id. Absence yields
// the unknown sentinel rather than an error.
func teamAbbrByID(m map[string]any, id int) string {
	if id != 0 {
		for _, item := range listField(m, "teams") {
			t, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if intField(t, "id") == id {
				if abbr := strField(t, "shortName"); abbr != "" {
					return abbr
				}
			}
		}
	}
	return match.UnknownTeam
}

func mapOfficials(m map[string]any) match.Officials {
	officials, _ := mapField(m, "officials")
	return match.Officials{
		Umpires:   stringList(officials["umpires"]),
		TVUmpires: stringList(officials["tvUmpires"]),
		Referees:  stringList(officials["referees"]),
	}
}

func mapToss(m map[string]any) match.Toss {
	toss, ok := mapField(m, "toss")
	if !ok {
		return match.Toss{Choice: "bowl", Win: match.UnknownTeam}
	}

	// Upstream encodes the decision as an integer enum: 1 means "elected
	// to bat", everything else maps to "bowl".
	choice := "bowl"
	if intField(toss, "decision") == 1 {
		choice = "bat"
	}

	return match.Toss{
		Choice: choice,
		Win:    teamAbbrByID(m, intField(toss, "winnerTeamId")),
	}
}

func mapSquads(wrapper, m map[string]any) match.Squads {
	out := make(match.Squads)
	for _, item := range listField(wrapper, "squads") {
		squad, ok := item.(map[string]any)
		if !ok {
			continue
		}
		id := intField(squad, "teamId")
		abbr := teamAbbrByID(m, id)
		// Two unresolvable teams must not collapse onto one sentinel key,
		// so fall back to the raw id.
		if abbr == match.UnknownTeam && id != 0 {
			abbr = strconv.Itoa(id)
		}
		players := make(map[string]match.SquadPlayer)
		for _, p := range listField(squad, "players") {
			raw, ok := p.(map[string]any)
			if !ok {
				continue
			}
			slug := strField(raw, "slug")
			if slug == "" {
				continue
			}
			players[slug] = match.SquadPlayer{
				Name: strField(raw, "name"),
				Slug: slug,
				Role: roleString(raw),
			}
		}
		if len(players) > 0 {
			out[abbr] = players
		}
	}
	return out
}

// roleString composes "[<role-type-code>] <comma-joined role names>". A
// scalar role name is treated as a one-element list.
func roleString(player map[string]any) string {
	role, ok := mapField(player, "role")
	if !ok {
		return ""
	}
	names := stringList(role["names"])
	code := strField(role, "type")
	if code == "" && len(names) == 0 {
		return ""
	}
	return fmt.Sprintf("[%s] %s", code, strings.Join(names, ", "))
}

func inningsList(wrapper map[string]any) []map[string]any {
	raw := listField(wrapper, "scorecard")
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if innings, ok := item.(map[string]any); ok {
			out = append(out, innings)
		}
	}
	return out
}

func mapInnings(raw, m map[string]any) match.Innings {
	score, _ := mapField(raw, "score")

	out := match.Innings{
		Team:         teamAbbrByID(m, intField(raw, "teamId")),
		Score:        runsWickets(score),
		Overs:        strField(raw, "overs"),
		Batting:      mapBatting(listField(raw, "inningBatsmen")),
		Bowling:      mapBowling(listField(raw, "inningBowlers")),
		Partnerships: mapPartnerships(listField(raw, "partnerships")),
		FOW:          mapFallOfWickets(listField(raw, "fallOfWickets")),
		Extras:       mapExtras(raw),
	}
	out.Fielding = aggregateFielding(listField(raw, "inningBatsmen"))

	return out
}

func runsWickets(score map[string]any) string {
	return fmt.Sprintf("%d/%d", intField(score, "runs"), intField(score, "wickets"))
}

// mapBatting keeps only players who actually came to the crease: a recorded
// run or ball count, a dismissal, or a currently-batting flag. Squad members
// merely listed in the eleven never appear.
func mapBatting(batsmen []any) []match.BattingEntry {
	out := make([]match.BattingEntry, 0, len(batsmen))
	for _, item := range batsmen {
		b, ok := item.(map[string]any)
		if !ok || !hasBatted(b) {
			continue
		}

		status := "not out"
		if dismissal, ok := mapField(b, "dismissal"); ok {
			if text := strField(dismissal, "text"); text != "" {
				status = text
			}
		}

		out = append(out, match.BattingEntry{
			Slug:       strField(b, "slug"),
			Runs:       intField(b, "runs"),
			Balls:      intField(b, "balls"),
			Fours:      intField(b, "fours"),
			Sixes:      intField(b, "sixes"),
			StrikeRate: floatField(b, "strikeRate"),
			Status:     status,
		})
	}
	return out
}

func hasBatted(b map[string]any) bool {
	if _, ok := b["runs"]; ok {
		return true
	}
	if _, ok := b["balls"]; ok {
		return true
	}
	if boolField(b, "isOut") || boolField(b, "isBatting") {
		return true
	}
	_, dismissed := mapField(b, "dismissal")
	return dismissed
}

func mapBowling(bowlers []any) []match.BowlingEntry {
	out := make([]match.BowlingEntry, 0, len(bowlers))
	for _, item := range bowlers {
		b, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, match.BowlingEntry{
			Slug:    strField(b, "slug"),
			Overs:   strField(b, "overs"),
			Maidens: intField(b, "maidens"),
			Runs:    intField(b, "runs"),
			Wickets: intField(b, "wickets"),
			Economy: floatField(b, "economy"),
			Dots:    intField(b, "dots"),
			Fours:   intField(b, "fours"),
			Sixes:   intField(b, "sixes"),
			NoBalls: intField(b, "noBalls"),
			Wides:   intField(b, "wides"),
		})
	}
	return out
}

func mapPartnerships(partnerships []any) []match.Partnership {
	out := make([]match.Partnership, 0, len(partnerships))
	for _, item := range partnerships {
		p, ok := item.(map[string]any)
		if !ok {
			continue
		}
		batters := listField(p, "batsmen")
		entry := match.Partnership{
			Runs:  intField(p, "runs"),
			Balls: intField(p, "balls"),
		}
		if len(batters) > 0 {
			entry.P1 = partnershipBatter(batters[0])
		}
		if len(batters) > 1 {
			entry.P2 = partnershipBatter(batters[1])
		}
		out = append(out, entry)
	}
	return out
}

func partnershipBatter(v any) match.PartnershipBatter {
	b, ok := v.(map[string]any)
	if !ok {
		return match.PartnershipBatter{}
	}
	return match.PartnershipBatter{
		Slug:  strField(b, "slug"),
		Runs:  intField(b, "runs"),
		Balls: intField(b, "balls"),
	}
}

func mapFallOfWickets(fows []any) []match.FallOfWicket {
	out := make([]match.FallOfWicket, 0, len(fows))
	for _, item := range fows {
		f, ok := item.(map[string]any)
		if !ok {
			continue
		}
		out = append(out, match.FallOfWicket{
			Slug:  strField(f, "slug"),
			Over:  floatField(f, "over"),
			Score: fmt.Sprintf("%d/%d", intField(f, "runs"), intField(f, "wicketNumber")),
		})
	}
	return out
}

func mapExtras(raw map[string]any) match.Extras {
	extras, _ := mapField(raw, "extras")
	return match.Extras{
		Byes:    intField(extras, "byes"),
		LegByes: intField(extras, "legByes"),
		Wides:   intField(extras, "wides"),
		NoBalls: intField(extras, "noBalls"),
		Total:   intField(extras, "total"),
	}
}
