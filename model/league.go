package model

import (
	"time"
)

type Platform string

const (
	PlatformLegacy Platform = "legacy"
	PlatformModern Platform = "modern"
)

func IsPlatformSupported(p string) bool {
	return p == string(PlatformLegacy) || p == string(PlatformModern)
}

// Season is one league year produced by a single adapter run.
type Season struct {
	LeagueID     string        `json:"league_id"`
	Year         int           `json:"year"`
	Platform     Platform      `json:"platform"`
	Teams        []Team        `json:"teams"`
	Matchups     []Matchup     `json:"matchups"`
	Draft        []DraftPick   `json:"draft"`
	Transactions []Transaction `json:"transactions"`
	ScrapedAt    time.Time     `json:"scraped_at"`
}

// SeasonSummary is the persisted season row, without any of its children.
type SeasonSummary struct {
	LeagueID  string    `json:"league_id"`
	Year      int       `json:"year"`
	Platform  Platform  `json:"platform"`
	Teams     int       `json:"teams"`
	MaxWeek   int       `json:"max_week"`
	ScrapedAt time.Time `json:"scraped_at"`
}

type Team struct {
	LeagueID      string  `json:"league_id"`
	Year          int     `json:"year"`
	Name          string  `json:"name"`
	Owner         string  `json:"owner"`
	Rank          int     `json:"rank"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
	Streak        string  `json:"streak,omitempty"`
}

func (t *Team) GamesPlayed() int {
	return t.Wins + t.Losses + t.Ties
}

// TeamIndex looks up a season's teams by name.
func TeamIndex(teams []Team) map[string]*Team {
	idx := make(map[string]*Team, len(teams))
	for i := range teams {
		idx[teams[i].Name] = &teams[i]
	}
	return idx
}

type DraftPick struct {
	LeagueID    string `json:"league_id"`
	Year        int    `json:"year"`
	Round       int    `json:"round"`
	Pick        int    `json:"pick"`
	OverallPick int    `json:"overall_pick"`
	Team        string `json:"team"`
	PlayerName  string `json:"player_name"`
	Position    string `json:"position"`
	NFLTeam     string `json:"nfl_team"`
}

type Transaction struct {
	LeagueID       string    `json:"league_id"`
	Year           int       `json:"year"`
	Date           time.Time `json:"date"`
	Type           string    `json:"type"`
	Team           string    `json:"team"`
	PlayersAdded   []string  `json:"players_added"`
	PlayersDropped []string  `json:"players_dropped"`
	Description    string    `json:"description"`
}
