package analytics

import (
	"cmp"
	"slices"

	"github.com/Praneshv25/KMSFL-Data/model"
)

type teamKey struct {
	leagueID string
	year     int
	name     string
}

// owners maps a season's team names to the managers that owned them.
type owners struct {
	byTeam map[teamKey]string
	known  map[string]bool
	years  []int
}

func newOwners(teams []model.Team) *owners {
	o := &owners{
		byTeam: make(map[teamKey]string, len(teams)),
		known:  make(map[string]bool),
	}
	years := orderedSet[int]{}
	for _, t := range teams {
		o.byTeam[teamKey{leagueID: t.LeagueID, year: t.Year, name: t.Name}] = t.Owner
		if t.Owner != "" {
			o.known[t.Owner] = true
		}
		years.add(t.Year)
	}
	o.years = years.values
	return o
}

func (o *owners) of(leagueID string, year int, team string) string {
	return o.byTeam[teamKey{leagueID: leagueID, year: year, name: team}]
}

func (o *owners) has(name string) bool {
	return o.known[name]
}

func (o *owners) firstYear() int {
	return firstYear(o.years)
}

// sortedMatchups returns a copy of matchups in chronological order.
func sortedMatchups(matchups []model.Matchup) []model.Matchup {
	result := slices.Clone(matchups)
	slices.SortStableFunc(result, func(a, b model.Matchup) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		if c := cmp.Compare(a.Week, b.Week); c != 0 {
			return c
		}
		return cmp.Compare(a.MatchupID, b.MatchupID)
	})
	return result
}

// sortedTeams returns a copy of teams ordered by year and then rank.
func sortedTeams(teams []model.Team) []model.Team {
	result := slices.Clone(teams)
	slices.SortStableFunc(result, func(a, b model.Team) int {
		if c := cmp.Compare(a.Year, b.Year); c != 0 {
			return c
		}
		return cmp.Compare(a.Rank, b.Rank)
	})
	return result
}
