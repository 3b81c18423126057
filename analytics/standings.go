package analytics

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/Praneshv25/KMSFL-Data/model"
)

type Champion struct {
	Year      int     `json:"year"`
	Team      string  `json:"team"`
	Owner     string  `json:"owner"`
	Record    string  `json:"record"`
	PointsFor float64 `json:"points_for"`
}

type ManagerSummary struct {
	Name               string  `json:"name"`
	Record             string  `json:"all_time_record"`
	Wins               int     `json:"total_wins"`
	Losses             int     `json:"total_losses"`
	Ties               int     `json:"total_ties"`
	Championships      int     `json:"championships"`
	PlayoffAppearances int     `json:"playoff_appearances"`
	AvgPointsFor       float64 `json:"avg_points_for"`
	SeasonsPlayed      int     `json:"seasons_played"`
}

type ManagerSeason struct {
	Year          int     `json:"year"`
	Team          string  `json:"team"`
	Rank          int     `json:"rank"`
	Wins          int     `json:"wins"`
	Losses        int     `json:"losses"`
	Ties          int     `json:"ties"`
	PointsFor     float64 `json:"points_for"`
	PointsAgainst float64 `json:"points_against"`
	MadePlayoffs  bool    `json:"made_playoffs"`
}

type ManagerDetail struct {
	ManagerSummary
	Seasons []ManagerSeason `json:"season_history"`
}

// Standings returns the teams of one season ordered by rank.
func Standings(teams []model.Team, year int) []model.Team {
	result := make([]model.Team, 0, 12)
	for _, t := range teams {
		if t.Year == year {
			result = append(result, t)
		}
	}
	slices.SortStableFunc(result, func(a, b model.Team) int {
		if c := cmp.Compare(a.Rank, b.Rank); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return result
}

// Champions returns the rank 1 team of every season, most recent first.
func Champions(teams []model.Team) []Champion {
	result := make([]Champion, 0)
	for _, t := range teams {
		if t.Rank != 1 {
			continue
		}
		result = append(result, Champion{
			Year:      t.Year,
			Team:      t.Name,
			Owner:     t.Owner,
			Record:    formatRecord(t.Wins, t.Losses, t.Ties),
			PointsFor: t.PointsFor,
		})
	}
	slices.SortStableFunc(result, func(a, b Champion) int {
		return cmp.Compare(b.Year, a.Year)
	})
	return result
}

type managerTotals struct {
	summary   ManagerSummary
	pointsFor float64
	seasons   []ManagerSeason
}

func aggregate(teams []model.Team, cfg Config) map[string]*managerTotals {
	first := newOwners(teams).firstYear()

	totals := make(map[string]*managerTotals)
	for _, t := range teams {
		// Teams without an owner aren't anyone's career.
		if t.Owner == "" {
			continue
		}
		m, found := totals[t.Owner]
		if !found {
			m = &managerTotals{summary: ManagerSummary{Name: t.Owner}}
			totals[t.Owner] = m
		}

		made := cfg.madePlayoffs(t.Rank, t.Year, first)
		m.summary.Wins += t.Wins
		m.summary.Losses += t.Losses
		m.summary.Ties += t.Ties
		m.pointsFor += t.PointsFor
		if t.Rank == 1 {
			m.summary.Championships++
		}
		if made {
			m.summary.PlayoffAppearances++
		}
		m.seasons = append(m.seasons, ManagerSeason{
			Year:          t.Year,
			Team:          t.Name,
			Rank:          t.Rank,
			Wins:          t.Wins,
			Losses:        t.Losses,
			Ties:          t.Ties,
			PointsFor:     t.PointsFor,
			PointsAgainst: t.PointsAgainst,
			MadePlayoffs:  made,
		})
	}

	for _, m := range totals {
		years := orderedSet[int]{}
		for _, s := range m.seasons {
			years.add(s.Year)
		}
		m.summary.SeasonsPlayed = len(years.values)
		m.summary.AvgPointsFor = round(m.pointsFor/float64(len(m.seasons)), 1)
		m.summary.Record = formatRecord(m.summary.Wins, m.summary.Losses, m.summary.Ties)
	}
	return totals
}

// Managers aggregates every owner's career, ordered by total wins and then
// name.
func Managers(teams []model.Team, cfg Config) []ManagerSummary {
	totals := aggregate(teams, cfg)

	result := make([]ManagerSummary, 0, len(totals))
	for _, m := range totals {
		result = append(result, m.summary)
	}
	slices.SortFunc(result, func(a, b ManagerSummary) int {
		if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return result
}

// Manager returns one owner's career and season history, most recent season
// first.
func Manager(name string, teams []model.Team, cfg Config) (*ManagerDetail, error) {
	m, found := aggregate(teams, cfg)[name]
	if !found || name == "" {
		return nil, fmt.Errorf("%w: %q", ErrManagerNotFound, name)
	}

	slices.SortStableFunc(m.seasons, func(a, b ManagerSeason) int {
		return cmp.Compare(b.Year, a.Year)
	})
	return &ManagerDetail{
		ManagerSummary: m.summary,
		Seasons:        m.seasons,
	}, nil
}
