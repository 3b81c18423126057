package model

import (
	"cmp"
	"slices"
)

// RankTeams orders a season's standings. A positive Rank is treated as the
// platform's final rank and is kept. When every team has one the standings are
// simply sorted by it. Otherwise teams are ordered by wins and then points for,
// and the teams without a final rank take the unused positions in that order.
// Full ties keep their original order.
func RankTeams(teams []Team) {
	authoritative := true
	for _, t := range teams {
		if t.Rank <= 0 {
			authoritative = false
			break
		}
	}

	if !authoritative {
		slices.SortStableFunc(teams, func(a, b Team) int {
			if c := cmp.Compare(b.Wins, a.Wins); c != 0 {
				return c
			}
			return cmp.Compare(b.PointsFor, a.PointsFor)
		})

		used := make(map[int]bool)
		for _, t := range teams {
			if t.Rank > 0 {
				used[t.Rank] = true
			}
		}
		next := 1
		for i := range teams {
			if teams[i].Rank > 0 {
				continue
			}
			for used[next] {
				next++
			}
			teams[i].Rank = next
			used[next] = true
		}
	}

	slices.SortStableFunc(teams, func(a, b Team) int {
		return cmp.Compare(a.Rank, b.Rank)
	})
}
