package analytics

import (
	"cmp"
	"slices"
	"strings"

	"github.com/Praneshv25/KMSFL-Data/model"
)

// LuckRanking compares a manager's wins to the wins expected from their
// weekly scores against the whole league.
type LuckRanking struct {
	Owner        string  `json:"owner"`
	ActualWins   int     `json:"actual_wins"`
	ExpectedWins float64 `json:"expected_wins"`
	Luck         float64 `json:"luck"`
	Weeks        int     `json:"weeks"`
}

type weekKey struct {
	leagueID string
	year     int
	week     int
}

type weekScore struct {
	owner string
	score float64
}

// Luck computes all-play expected wins. In every week each team is compared
// against every other team that played that week, and beating k of the n-1
// others is worth k/(n-1) expected wins. Equal scores count as neither a win
// nor a loss. Weeks with fewer than two teams are skipped.
func Luck(teams []model.Team, matchups []model.Matchup) []LuckRanking {
	own := newOwners(teams)

	weeks := make(map[weekKey][]weekScore)
	byOwner := make(map[string]*LuckRanking)
	ranking := func(owner string) *LuckRanking {
		r, found := byOwner[owner]
		if !found {
			r = &LuckRanking{Owner: owner}
			byOwner[owner] = r
		}
		return r
	}

	for _, m := range matchups {
		k := weekKey{leagueID: m.LeagueID, year: m.Year, week: m.Week}
		home := own.of(m.LeagueID, m.Year, m.HomeTeam)
		away := own.of(m.LeagueID, m.Year, m.AwayTeam)
		weeks[k] = append(weeks[k], weekScore{home, m.HomeScore}, weekScore{away, m.AwayScore})

		if w := m.Winner(); w != "" {
			ranking(own.of(m.LeagueID, m.Year, w)).ActualWins++
		}
	}

	expected := make(map[string]float64)
	for _, scores := range weeks {
		n := len(scores)
		if n < 2 {
			continue
		}
		for _, s := range scores {
			beaten := 0
			for _, other := range scores {
				if s.score > other.score {
					beaten++
				}
			}
			expected[s.owner] += float64(beaten) / float64(n-1)
			ranking(s.owner).Weeks++
		}
	}

	result := make([]LuckRanking, 0, len(byOwner))
	for owner, r := range byOwner {
		if owner == "" {
			continue
		}
		r.ExpectedWins = round(expected[owner], 2)
		r.Luck = round(float64(r.ActualWins)-expected[owner], 2)
		if r.Luck == 0 {
			// avoid reporting -0
			r.Luck = 0
		}
		result = append(result, *r)
	}
	slices.SortFunc(result, func(a, b LuckRanking) int {
		if c := cmp.Compare(b.Luck, a.Luck); c != 0 {
			return c
		}
		return strings.Compare(a.Owner, b.Owner)
	})
	return result
}
