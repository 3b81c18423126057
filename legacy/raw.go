package legacy

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RawSeason is a season export from the legacy platform. The exports were
// produced over several years by different tools, so most fields are optional
// and numbers may show up as strings.
type RawSeason struct {
	LeagueID     flexString              `json:"league_id"`
	Season       number                  `json:"season"`
	SeasonYear   number                  `json:"season_year"`
	ScrapedAt    string                  `json:"scraped_at"`
	Standings    []rawTeam               `json:"standings"`
	Matchups     map[string][]rawMatchup `json:"matchups"`
	Draft        rawDraft                `json:"draft"`
	Transactions []rawTransaction        `json:"transactions"`
}

// Year is the season year, or 0 when the export has none.
func (r *RawSeason) Year() int {
	if y := r.Season.Int(); y > 0 {
		return y
	}
	return r.SeasonYear.Int()
}

type rawTeam struct {
	TeamName      string `json:"team_name"`
	Owner         string `json:"owner"`
	Rank          number `json:"rank"`
	Wins          number `json:"wins"`
	Losses        number `json:"losses"`
	Ties          number `json:"ties"`
	PointsFor     number `json:"points_for"`
	PointsAgainst number `json:"points_against"`
	Streak        string `json:"streak"`
}

type rawMatchup struct {
	Week            number  `json:"week"`
	MatchupID       number  `json:"matchup_id"`
	HomeTeam        string  `json:"home_team"`
	AwayTeam        string  `json:"away_team"`
	HomeScore       number  `json:"home_score"`
	AwayScore       number  `json:"away_score"`
	HomeProjected   number  `json:"home_projected"`
	AwayProjected   number  `json:"away_projected"`
	BracketType     *string `json:"bracket_type,omitempty"`
	Round           *string `json:"round,omitempty"`
	TwoWeekPlayoff  bool    `json:"is_two_week_playoff,omitempty"`
	MatchupPeriodID number  `json:"matchup_period_id"`
	HomeTotalScore  number  `json:"home_total_score"`
	AwayTotalScore  number  `json:"away_total_score"`

	HomeRoster []rawPlayer `json:"home_roster"`
	AwayRoster []rawPlayer `json:"away_roster"`
	HomeBench  []rawPlayer `json:"home_bench,omitempty"`
	AwayBench  []rawPlayer `json:"away_bench,omitempty"`
}

// rawPlayer carries the fields of every roster entry format. Which of them
// are populated is decided by the entry's shape.
type rawPlayer struct {
	// Normalized shape
	PlayerName *string `json:"player_name,omitempty"`
	Position   *string `json:"position,omitempty"`
	NFLTeam    string  `json:"nfl_team,omitempty"`
	Points     number  `json:"points"`
	Projected  number  `json:"projected"`
	Started    *bool   `json:"started,omitempty"`

	// Old roster shape
	Player  string  `json:"player,omitempty"`
	TeamPos *string `json:"team_pos,omitempty"`
	Slot    string  `json:"slot,omitempty"`
	FPts    number  `json:"fpts"`
	Proj    number  `json:"proj"`
}

type rawDraft struct {
	Picks []rawPick `json:"picks"`
}

type rawPick struct {
	Round       number `json:"round"`
	Pick        number `json:"pick"`
	OverallPick number `json:"overall_pick"`
	Team        string `json:"team"`
	PlayerName  string `json:"player_name"`
	Position    string `json:"position"`
	NFLTeam     string `json:"nfl_team"`
}

type rawTransaction struct {
	Date           string   `json:"date"`
	Type           string   `json:"type"`
	Team           string   `json:"team"`
	PlayersAdded   []string `json:"players_added"`
	PlayersDropped []string `json:"players_dropped"`
	Description    string   `json:"description"`
}

// Parse decodes a legacy season export.
func Parse(r io.Reader) (*RawSeason, error) {
	var raw RawSeason
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("error parsing legacy season: %w", err)
	}
	return &raw, nil
}

// number accepts a JSON number, a numeric string, or null. Values that can't
// be parsed are kept in raw so the caller can report them.
type number struct {
	value float64
	set   bool
	raw   string
}

func num(v float64) number {
	return number{value: v, set: true}
}

func (n *number) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "null" {
		return nil
	}
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" {
		return nil
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		n.raw = s
		return nil
	}
	n.value = v
	n.set = true
	return nil
}

func (n number) MarshalJSON() ([]byte, error) {
	if !n.set {
		return []byte("null"), nil
	}
	return json.Marshal(n.value)
}

func (n number) Float() float64 {
	return n.value
}

func (n number) Int() int {
	return int(n.value)
}

func (n number) Valid() bool {
	return n.set
}

// Malformed reports a value that was present but not numeric.
func (n number) Malformed() bool {
	return n.raw != ""
}

// flexString accepts either a JSON string or number.
type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "null" {
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*f = flexString(v)
		return nil
	}
	*f = flexString(s)
	return nil
}
