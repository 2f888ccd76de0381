package crex

import (
	"testing"

	"github.com/crickslab/crex-api/internal/domain/match"
)

func liveMatchWrapper() map[string]any {
	return map[string]any{
		"match": map[string]any{
			"state": "Live",
			"teams": []any{
				map[string]any{"id": 11, "shortName": "IND", "name": "India"},
				map[string]any{"id": 12, "shortName": "AUS", "name": "Australia"},
			},
		},
		"scorecard": []any{
			map[string]any{
				"teamId": 12,
				"score":  map[string]any{"runs": 171, "wickets": 6},
				"overs":  "20",
			},
			map[string]any{
				"teamId":    11,
				"isCurrent": true,
				"score":     map[string]any{"runs": 96, "wickets": 3},
				"overs":     "11.2",
				"inningBowlers": []any{
					map[string]any{"slug": "mitchell-starc", "overs": "3.2", "runs": 29, "wickets": 1, "dots": 9, "fours": 3, "sixes": 1, "wides": 2},
				},
				"partnerships": []any{
					map[string]any{
						"runs": 18, "balls": 11,
						"batsmen": []any{
							map[string]any{"slug": "surya", "name": "Suryakumar Yadav", "runs": 12, "balls": 6},
							map[string]any{"slug": "hardik", "name": "Hardik Pandya", "runs": 6, "balls": 5},
						},
					},
				},
			},
		},
		"liveScore": map[string]any{
			"battingTeamId":   11,
			"score":           map[string]any{"runs": 96, "wickets": 3},
			"overs":           "11.2",
			"runRate":         8.47,
			"requiredRunRate": 8.77,
			"target":          172,
			"recentBalls":     []any{"1", "4", "W", "0", "6", "2"},
			"batsmen": []any{
				map[string]any{"slug": "surya", "runs": 44, "balls": 27, "isBatting": true},
			},
			"bowlers": []any{
				map[string]any{"slug": "mitchell-starc", "overs": "3.2", "runs": 29, "wickets": 1},
			},
		},
	}
}

func TestProjectLive_Snapshot(t *testing.T) {
	m := mapMatch(liveMatchWrapper(), mapOptions{recentBallCount: 18, defaultOvers: "20"})

	if m.State != match.StateLive || m.Live == nil {
		t.Fatalf("expected live projection, state=%s live=%v", m.State, m.Live)
	}
	live := m.Live
	if live.Team != "IND" {
		t.Fatalf("unexpected batting team: %s", live.Team)
	}
	if live.Score != "96/3" || live.Overs != "11.2" {
		t.Fatalf("unexpected score line: %s in %s", live.Score, live.Overs)
	}
	if live.Target != 172 || live.RRR != 8.77 {
		t.Fatalf("unexpected chase fields: target=%d rrr=%v", live.Target, live.RRR)
	}
}

func TestProjectLive_PrefersInningsLivePartnership(t *testing.T) {
	wrapper := liveMatchWrapper()
	current := wrapper["scorecard"].([]any)[1].(map[string]any)
	current["partnerships"] = []any{
		map[string]any{"runs": 40, "balls": 30, "batsmen": []any{
			map[string]any{"slug": "done", "name": "Done Batter", "runs": 25, "balls": 18},
		}},
		map[string]any{"isLive": true, "runs": 18, "balls": 11, "batsmen": []any{
			map[string]any{"slug": "surya", "name": "Suryakumar Yadav", "runs": 12, "balls": 6},
			map[string]any{"slug": "hardik", "name": "Hardik Pandya", "runs": 6, "balls": 5},
		}},
	}
	live := wrapper["liveScore"].(map[string]any)
	live["partnership"] = map[string]any{"runs": 99, "balls": 99}

	m := mapMatch(wrapper, mapOptions{recentBallCount: 18, defaultOvers: "20"})
	p := m.Live.Partnership
	if p == nil || p.Runs != 18 || p.P1.Name != "Suryakumar Yadav" {
		t.Fatalf("expected the innings partnership flagged live, got %+v", p)
	}
}

func TestProjectLive_FallsBackToLivePartnership(t *testing.T) {
	wrapper := liveMatchWrapper()
	current := wrapper["scorecard"].([]any)[1].(map[string]any)
	delete(current, "partnerships")
	live := wrapper["liveScore"].(map[string]any)
	live["partnership"] = map[string]any{"runs": 31, "balls": 20, "batsmen": []any{
		map[string]any{"slug": "surya", "name": "Suryakumar Yadav", "runs": 20, "balls": 12},
	}}

	m := mapMatch(wrapper, mapOptions{recentBallCount: 18, defaultOvers: "20"})
	p := m.Live.Partnership
	if p == nil || p.Runs != 31 || p.P1.Name != "Suryakumar Yadav" {
		t.Fatalf("unexpected fallback partnership: %+v", p)
	}
}

func TestProjectLive_BowlerEnrichedFromScorecard(t *testing.T) {
	m := mapMatch(liveMatchWrapper(), mapOptions{recentBallCount: 18, defaultOvers: "20"})

	if len(m.Live.Bowlers) != 1 {
		t.Fatalf("unexpected live bowlers: %+v", m.Live.Bowlers)
	}
	b := m.Live.Bowlers[0]
	if b.Dots != 9 || b.Fours != 3 || b.Sixes != 1 || b.Wides != 2 {
		t.Fatalf("expected counts copied from the static innings, got %+v", b)
	}
}

func TestProjectLive_RecentBallsTrailingWindow(t *testing.T) {
	wrapper := liveMatchWrapper()

	m := mapMatch(wrapper, mapOptions{recentBallCount: 4, defaultOvers: "20"})
	want := []string{"W", "0", "6", "2"}
	if len(m.Live.Recent) != len(want) {
		t.Fatalf("unexpected recent feed: %v", m.Live.Recent)
	}
	for i, ball := range want {
		if m.Live.Recent[i] != ball {
			t.Fatalf("recent feed must keep source order, got %v", m.Live.Recent)
		}
	}
}

func TestProjectLive_TeamFallsBackToCurrentInnings(t *testing.T) {
	wrapper := liveMatchWrapper()
	live := wrapper["liveScore"].(map[string]any)
	delete(live, "battingTeamId")

	m := mapMatch(wrapper, mapOptions{recentBallCount: 18, defaultOvers: "20"})
	if m.Live.Team != "IND" {
		t.Fatalf("expected current-innings team fallback, got %s", m.Live.Team)
	}
}

func TestProjectLive_AbsentWithoutLiveScore(t *testing.T) {
	wrapper := liveMatchWrapper()
	delete(wrapper, "liveScore")

	m := mapMatch(wrapper, mapOptions{recentBallCount: 18, defaultOvers: "20"})
	if m.Live != nil {
		t.Fatalf("live section must be absent without a live score, got %+v", m.Live)
	}
}

func TestProjectLive_AbsentWithoutCurrentInnings(t *testing.T) {
	wrapper := liveMatchWrapper()
	current := wrapper["scorecard"].([]any)[1].(map[string]any)
	delete(current, "isCurrent")

	m := mapMatch(wrapper, mapOptions{recentBallCount: 18, defaultOvers: "20"})
	if m.Live != nil {
		t.Fatalf("live section must be absent without a current innings, got %+v", m.Live)
	}
}
