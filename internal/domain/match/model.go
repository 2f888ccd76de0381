package match

import "strings"

const (
	StatePre  = "pre"
	StateLive = "live"
	StatePost = "post"
)

// UnknownTeam is returned whenever a team id cannot be resolved back to an
// abbreviation (winner lookups, toss lookups). Clients render it verbatim.
const UnknownTeam = "TBA"

// NormalizeState lowercases the upstream match state and defaults to "pre"
// when the field is missing entirely.
func NormalizeState(value string) string {
	state := strings.ToLower(strings.TrimSpace(value))
	if state == "" {
		return StatePre
	}
	return state
}

// The abbreviated JSON field names below (r, b, r4, r6, sr, sts, o, m, econ,
// d, nb, wd, c, st, ro) are the wire contract with the front-end client and
// must not be renamed.

type TeamRef struct {
	Abbr string `json:"abbr"`
	Name string `json:"name"`
}

type TeamPair struct {
	Home TeamRef `json:"home"`
	Away TeamRef `json:"away"`
}

type Venue struct {
	Country string `json:"country"`
	City    string `json:"city"`
	Name    string `json:"name"`
}

type Meta struct {
	Start int64    `json:"start,omitempty"`
	Title string   `json:"title"`
	Teams TeamPair `json:"teams"`
	Venue Venue    `json:"venue"`
}

type Officials struct {
	Umpires   []string `json:"umpires"`
	TVUmpires []string `json:"tv_umpires"`
	Referees  []string `json:"referees"`
}

type SquadPlayer struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Role string `json:"role"`
}

// Squads maps a team abbreviation to its players keyed by slug.
type Squads map[string]map[string]SquadPlayer

type Toss struct {
	Choice string `json:"choice"`
	Win    string `json:"win"`
}

type BattingEntry struct {
	Slug       string  `json:"slug"`
	Runs       int     `json:"r"`
	Balls      int     `json:"b"`
	Fours      int     `json:"r4"`
	Sixes      int     `json:"r6"`
	StrikeRate float64 `json:"sr"`
	Status     string  `json:"sts"`
}

type BowlingEntry struct {
	Slug    string  `json:"slug"`
	Overs   string  `json:"o"`
	Maidens int     `json:"m"`
	Runs    int     `json:"r"`
	Wickets int     `json:"w"`
	Economy float64 `json:"econ"`
	Dots    int     `json:"d"`
	Fours   int     `json:"r4"`
	Sixes   int     `json:"r6"`
	NoBalls int     `json:"nb"`
	Wides   int     `json:"wd"`
}

// FieldingEntry is entirely derived from dismissal records; the upstream
// payload never carries per-fielder statistics.
type FieldingEntry struct {
	Slug      string `json:"slug"`
	Catches   int    `json:"c"`
	Stumpings int    `json:"st"`
	RunOuts   int    `json:"ro"`
}

type PartnershipBatter struct {
	Slug  string `json:"slug"`
	Runs  int    `json:"r"`
	Balls int    `json:"b"`
}

type Partnership struct {
	Runs  int               `json:"r"`
	Balls int               `json:"b"`
	P1    PartnershipBatter `json:"p1"`
	P2    PartnershipBatter `json:"p2"`
}

type FallOfWicket struct {
	Slug  string  `json:"slug"`
	Over  float64 `json:"over"`
	Score string  `json:"score"`
}

type Extras struct {
	Byes    int `json:"b"`
	LegByes int `json:"lb"`
	Wides   int `json:"wd"`
	NoBalls int `json:"nb"`
	Total   int `json:"total"`
}

type Innings struct {
	Team         string          `json:"team"`
	Score        string          `json:"score"`
	Overs        string          `json:"overs"`
	Batting      []BattingEntry  `json:"batting"`
	Bowling      []BowlingEntry  `json:"bowling"`
	Fielding     []FieldingEntry `json:"fielding"`
	Partnerships []Partnership   `json:"partnerships"`
	FOW          []FallOfWicket  `json:"fow"`
	Extras       Extras          `json:"extras"`
}

// LiveBatter carries the display name inline instead of a slug so the client
// does not need a squad join for the frequently refreshed live panel.
type LiveBatter struct {
	Name  string `json:"name"`
	Runs  int    `json:"r"`
	Balls int    `json:"b"`
}

type LivePartnership struct {
	Runs  int        `json:"r"`
	Balls int        `json:"b"`
	P1    LiveBatter `json:"p1"`
	P2    LiveBatter `json:"p2"`
}

type LiveState struct {
	Team        string           `json:"team"`
	Score       string           `json:"score"`
	Overs       string           `json:"overs"`
	CRR         float64          `json:"crr"`
	RRR         float64          `json:"rrr,omitempty"`
	Target      int              `json:"target,omitempty"`
	Partnership *LivePartnership `json:"partnership,omitempty"`
	Recent      []string         `json:"recent"`
	Batters     []BattingEntry   `json:"batters"`
	Bowlers     []BowlingEntry   `json:"bowlers"`
}

type Pre struct {
	Officials Officials `json:"officials"`
	Squads    Squads    `json:"squads"`
	Toss      Toss      `json:"toss"`
}

type Result struct {
	Win string `json:"win"`
}

// Post holds only the innings that exist; a match that has not reached its
// second innings produces a one-element slice, never a zeroed placeholder.
type Post struct {
	Innings []Innings `json:"innings"`
	Result  *Result   `json:"result,omitempty"`
}

// Match is the full normalized payload for one scorecard fetch.
type Match struct {
	Success bool       `json:"success"`
	State   string     `json:"state"`
	Meta    Meta       `json:"meta"`
	Pre     Pre        `json:"pre"`
	Post    Post       `json:"post"`
	Live    *LiveState `json:"live,omitempty"`
}

// SquadsPage is the normalized payload for the squads page type.
type SquadsPage struct {
	Success bool     `json:"success"`
	Teams   TeamPair `json:"teams"`
	Squads  Squads   `json:"squads"`
}
