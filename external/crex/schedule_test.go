package crex

import "testing"

func scheduleItem(overrides map[string]any) map[string]any {
	item := map[string]any{
		"seriesSlug": "icc-mens-t20-world-cup-2024",
		"state":      "Pre",
		"title":      "IND vs AUS",
		"startDate":  float64(1718600400),
		"venue":      map[string]any{"ground": "Kensington Oval"},
		"teams": []any{
			map[string]any{"id": 11, "shortName": "IND", "name": "India"},
			map[string]any{"id": 12, "shortName": "AUS", "name": "Australia"},
		},
	}
	for k, v := range overrides {
		item[k] = v
	}
	return item
}

func TestMapSchedule_DeterministicIDs(t *testing.T) {
	items := make([]any, 0, 12)
	for i := 0; i < 12; i++ {
		items = append(items, scheduleItem(nil))
	}

	entries := mapSchedule(items, "", "20")
	if len(entries) != 12 {
		t.Fatalf("unexpected entry count: %d", len(entries))
	}
	if entries[0].ID != "icc-world-cup-001" {
		t.Fatalf("unexpected first id: %s", entries[0].ID)
	}
	if entries[11].ID != "icc-world-cup-012" {
		t.Fatalf("unexpected last id: %s", entries[11].ID)
	}
}

func TestMapSchedule_PrefixOverrideWins(t *testing.T) {
	entries := mapSchedule([]any{scheduleItem(nil)}, "wc24", "20")
	if entries[0].ID != "wc24-001" {
		t.Fatalf("unexpected id with override: %s", entries[0].ID)
	}
}

func TestMapSchedule_EntryFields(t *testing.T) {
	entries := mapSchedule([]any{scheduleItem(nil)}, "", "20")

	e := entries[0]
	if e.Date != "2024-06-17" {
		t.Fatalf("unexpected date: %s", e.Date)
	}
	if e.Teams.Home != "IND" || e.Teams.Away != "AUS" {
		t.Fatalf("unexpected teams: %+v", e.Teams)
	}
	if e.Venue != "Kensington Oval" {
		t.Fatalf("unexpected venue: %s", e.Venue)
	}
	if e.State != "pre" {
		t.Fatalf("unexpected state: %s", e.State)
	}
	if e.Result != nil {
		t.Fatal("pending match must not carry a result")
	}
}

func TestMapSchedule_CompletedMatchResult(t *testing.T) {
	item := scheduleItem(map[string]any{
		"state":        "Post",
		"winnerTeamId": 11,
		"teams": []any{
			map[string]any{"id": 11, "shortName": "IND", "score": "186/4", "scoreInfo": "20/20 ov"},
			map[string]any{"id": 12, "shortName": "AUS", "score": map[string]any{"runs": 171, "wickets": 6}, "scoreInfo": "18.4/20 ov"},
		},
	})

	entries := mapSchedule([]any{item}, "", "20")
	result := entries[0].Result
	if result == nil || result.Win != "IND" {
		t.Fatalf("unexpected result: %+v", result)
	}
	if len(result.Scores) != 2 {
		t.Fatalf("unexpected scores: %+v", result.Scores)
	}
	if result.Scores[0].Score != "186/4" || result.Scores[0].Overs != "20" {
		t.Fatalf("string score must pass through: %+v", result.Scores[0])
	}
	if result.Scores[1].Score != "171/6" || result.Scores[1].Overs != "18.4" {
		t.Fatalf("nested score must be formatted: %+v", result.Scores[1])
	}
}

func TestOversPlayed(t *testing.T) {
	if got := oversPlayed("18.4/20 ov", "20"); got != "18.4" {
		t.Fatalf("unexpected overs: %s", got)
	}
	if got := oversPlayed("", "20"); got != "20" {
		t.Fatalf("empty score info must fall back, got %s", got)
	}
	if got := oversPlayed("50 ov", "20"); got != "50" {
		t.Fatalf("unexpected overs: %s", got)
	}
}
