package sleeper

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RawSeason is a full league export built from the Sleeper API: the league,
// its users and rosters, weekly matchups and transactions, drafts and the
// playoff brackets.
type RawSeason struct {
	League         rawLeague                   `json:"league"`
	Season         flexInt                     `json:"season"`
	ScrapedAt      string                      `json:"scraped_at"`
	Users          []rawUser                   `json:"users"`
	Rosters        []rawRoster                 `json:"rosters"`
	Matchups       map[string][]rawMatchup     `json:"matchups"`
	Transactions   map[string][]rawTransaction `json:"transactions"`
	Drafts         []rawDraft                  `json:"drafts"`
	WinnersBracket []rawBracketGame            `json:"winners_bracket"`
	LosersBracket  []rawBracketGame            `json:"losers_bracket"`
}

func (r *RawSeason) year() int {
	if r.Season > 0 {
		return int(r.Season)
	}
	return int(r.League.Season)
}

type rawLeague struct {
	LeagueID string            `json:"league_id"`
	Name     string            `json:"name"`
	Season   flexInt           `json:"season"`
	Status   string            `json:"status"`
	Settings rawLeagueSettings `json:"settings"`
}

type rawLeagueSettings struct {
	PlayoffWeekStart int `json:"playoff_week_start"`
	NumTeams         int `json:"num_teams"`
}

type rawUser struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Metadata    struct {
		TeamName string `json:"team_name"`
	} `json:"metadata"`
}

type rawRoster struct {
	RosterID int               `json:"roster_id"`
	OwnerID  *string           `json:"owner_id"`
	Settings rawRosterSettings `json:"settings"`
}

type rawRosterSettings struct {
	Wins               int     `json:"wins"`
	Losses             int     `json:"losses"`
	Ties               int     `json:"ties"`
	Fpts               float64 `json:"fpts"`
	FptsDecimal        float64 `json:"fpts_decimal"`
	FptsAgainst        float64 `json:"fpts_against"`
	FptsAgainstDecimal float64 `json:"fpts_against_decimal"`
	FinalRank          *int    `json:"final_rank,omitempty"`
}

func (s rawRosterSettings) pointsFor() float64 {
	return s.Fpts + s.FptsDecimal/100
}

func (s rawRosterSettings) pointsAgainst() float64 {
	return s.FptsAgainst + s.FptsAgainstDecimal/100
}

type rawMatchup struct {
	RosterID         int                `json:"roster_id"`
	MatchupID        *int               `json:"matchup_id"`
	Points           float64            `json:"points"`
	Starters         []string           `json:"starters"`
	Players          []string           `json:"players"`
	PlayersPoints    map[string]float64 `json:"players_points"`
	PlayersProjected map[string]float64 `json:"players_projected,omitempty"`
}

type rawTransaction struct {
	TransactionID string         `json:"transaction_id"`
	Type          string         `json:"type"`
	Status        string         `json:"status"`
	RosterIDs     []int          `json:"roster_ids"`
	Adds          map[string]int `json:"adds"`
	Drops         map[string]int `json:"drops"`
	Created       int64          `json:"created"`
	Leg           int            `json:"leg"`
}

type rawDraft struct {
	DraftID string    `json:"draft_id"`
	Status  string    `json:"status"`
	Picks   []rawPick `json:"picks"`
}

type rawPick struct {
	Round     int    `json:"round"`
	DraftSlot int    `json:"draft_slot"`
	PickNo    int    `json:"pick_no"`
	RosterID  *int   `json:"roster_id"`
	PickedBy  string `json:"picked_by"`
	PlayerID  string `json:"player_id"`
	Metadata  struct {
		FirstName string `json:"first_name"`
		LastName  string `json:"last_name"`
		Position  string `json:"position"`
		Team      string `json:"team"`
	} `json:"metadata"`
}

// rawBracketGame is one game of a playoff bracket. T1 and T2 are roster ids,
// R is the bracket round and P the placement the game decides.
type rawBracketGame struct {
	R  int  `json:"r"`
	M  int  `json:"m"`
	T1 *int `json:"t1"`
	T2 *int `json:"t2"`
	W  *int `json:"w"`
	L  *int `json:"l"`
	P  *int `json:"p,omitempty"`
}

// Parse decodes a Sleeper season export.
func Parse(r io.Reader) (*RawSeason, error) {
	var raw RawSeason
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("error parsing sleeper season: %w", err)
	}
	return &raw, nil
}

// flexInt accepts a JSON number or a numeric string, Sleeper sends seasons
// as strings.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fmt.Errorf("error parsing %q as an integer: %w", s, err)
	}
	*f = flexInt(v)
	return nil
}
