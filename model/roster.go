package model

import (
	"slices"
)

type RosterEntry struct {
	TeamName   string  `json:"team_name"`
	PlayerName string  `json:"player_name"`
	Position   string  `json:"position"`
	NFLTeam    string  `json:"nfl_team"`
	Points     float64 `json:"points"`
	Projected  float64 `json:"projected"`
	Started    bool    `json:"started"`
}

// SortRoster puts starters ahead of the bench and orders each group by slot
// priority. Entries with the same priority keep their relative order.
func SortRoster(roster []RosterEntry) {
	slices.SortStableFunc(roster, func(a, b RosterEntry) int {
		if a.Started != b.Started {
			if a.Started {
				return -1
			}
			return 1
		}
		return SlotPriority(a.Position) - SlotPriority(b.Position)
	})
}

// ProjectedTotal sums the projections of a team's starters.
func ProjectedTotal(roster []RosterEntry, team string) float64 {
	total := 0.0
	for _, r := range roster {
		if r.TeamName == team && r.Started {
			total += r.Projected
		}
	}
	return total
}

// TeamRoster returns the entries belonging to one side of a matchup.
func TeamRoster(roster []RosterEntry, team string) []RosterEntry {
	result := make([]RosterEntry, 0, len(roster)/2)
	for _, r := range roster {
		if r.TeamName == team {
			result = append(result, r)
		}
	}
	return result
}
