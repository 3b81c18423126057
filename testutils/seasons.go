package testutils

import (
	"fmt"
	"time"

	"github.com/Praneshv25/KMSFL-Data/model"
)

var positions = []string{"QB", "RB", "WR", "TE", "K", "D/ST"}

// LegacySeason generates a complete 10 team legacy season with 13 weeks of
// round robin matchups and a 10 round snake draft.
func LegacySeason(leagueID string, year int) *model.Season {
	return generateSeason(model.PlatformLegacy, leagueID, year, 10, 13, 10, "Team")
}

// ModernSeason generates a complete 12 team modern season with 17 weeks.
func ModernSeason(leagueID string, year int) *model.Season {
	return generateSeason(model.PlatformModern, leagueID, year, 12, 17, 15, "Squad")
}

// Rows is the number of rows an ingest of s writes.
func Rows(s *model.Season) int {
	n := 1 + len(s.Teams) + len(s.Matchups) + len(s.Draft) + len(s.Transactions)
	for _, m := range s.Matchups {
		n += len(m.Roster)
	}
	return n
}

// Owner is the name of the i'th (0 based) manager of a generated season.
func Owner(i int) string {
	return fmt.Sprintf("Manager %d", i+1)
}

func generateSeason(platform model.Platform, leagueID string, year, teams, weeks, rounds int, prefix string) *model.Season {
	s := &model.Season{
		LeagueID:  leagueID,
		Year:      year,
		Platform:  platform,
		ScrapedAt: time.Date(year+1, time.January, 10, 9, 0, 0, 0, time.UTC),
	}

	for i := 0; i < teams; i++ {
		s.Teams = append(s.Teams, model.Team{
			LeagueID: leagueID,
			Year:     year,
			Name:     fmt.Sprintf("%s %d", prefix, i+1),
			Owner:    Owner(i),
		})
	}
	idx := model.TeamIndex(s.Teams)

	for week := 1; week <= weeks; week++ {
		for id, pair := range roundRobin(teams, week) {
			home, away := &s.Teams[pair[0]], &s.Teams[pair[1]]
			m := model.Matchup{
				LeagueID:      leagueID,
				Year:          year,
				Week:          week,
				MatchupID:     id + 1,
				HomeTeam:      home.Name,
				AwayTeam:      away.Name,
				HomeScore:     score(pair[0], week),
				AwayScore:     score(pair[1], week),
				HomeProjected: 100,
				AwayProjected: 100,
			}
			m.Roster = append(roster(home.Name, week), roster(away.Name, week)...)
			s.Matchups = append(s.Matchups, m)
			record(idx[home.Name], m.HomeScore, m.AwayScore)
			record(idx[away.Name], m.AwayScore, m.HomeScore)
		}
	}
	model.RankTeams(s.Teams)

	overall := 0
	for round := 1; round <= rounds; round++ {
		for pick := 1; pick <= teams; pick++ {
			overall++
			team := pick - 1
			if round%2 == 0 {
				team = teams - pick
			}
			s.Draft = append(s.Draft, model.DraftPick{
				LeagueID:    leagueID,
				Year:        year,
				Round:       round,
				Pick:        pick,
				OverallPick: overall,
				Team:        fmt.Sprintf("%s %d", prefix, team+1),
				PlayerName:  fmt.Sprintf("Player %d", overall),
				Position:    positions[overall%len(positions)],
				NFLTeam:     "KC",
			})
		}
	}

	for i := 0; i < teams; i++ {
		s.Transactions = append(s.Transactions, model.Transaction{
			LeagueID:       leagueID,
			Year:           year,
			Date:           time.Date(year, time.September, 20+i%7, 10, 0, 0, 0, time.UTC),
			Type:           "FREEAGENT",
			Team:           s.Teams[i].Name,
			PlayersAdded:   []string{fmt.Sprintf("Free Agent %d", i)},
			PlayersDropped: []string{fmt.Sprintf("Player %d", i+1)},
			Description:    fmt.Sprintf("%s added Free Agent %d", s.Teams[i].Name, i),
		})
	}
	return s
}

// roundRobin pairs up the teams for a week with the circle method. Team 0
// stays fixed while the rest rotate.
func roundRobin(teams, week int) [][2]int {
	rot := (week - 1) % (teams - 1)
	at := func(pos int) int {
		if pos == 0 {
			return 0
		}
		return (pos-1+rot)%(teams-1) + 1
	}

	pairs := make([][2]int, 0, teams/2)
	for i := 0; i < teams/2; i++ {
		a, b := at(i), at(teams-1-i)
		if week%2 == 0 {
			a, b = b, a
		}
		pairs = append(pairs, [2]int{a, b})
	}
	return pairs
}

func score(team, week int) float64 {
	return 70 + float64((team*37+week*53)%80) + float64(team%4)*0.25
}

func roster(team string, week int) []model.RosterEntry {
	return []model.RosterEntry{
		{TeamName: team, PlayerName: fmt.Sprintf("%s QB", team), Position: "QB", NFLTeam: "KC", Points: float64(week + 10), Projected: 18, Started: true},
		{TeamName: team, PlayerName: fmt.Sprintf("%s Bench", team), Position: "BN", NFLTeam: "SF", Points: 3, Projected: 8},
	}
}

func record(t *model.Team, own, opp float64) {
	t.PointsFor += own
	t.PointsAgainst += opp
	switch {
	case own > opp:
		t.Wins++
	case own < opp:
		t.Losses++
	default:
		t.Ties++
	}
}
