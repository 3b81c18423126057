package analytics

import "github.com/Praneshv25/KMSFL-Data/model"

const league = "L1"

func team(year int, name, owner string, rank, wins, losses int, pf float64) model.Team {
	return model.Team{
		LeagueID:  league,
		Year:      year,
		Name:      name,
		Owner:     owner,
		Rank:      rank,
		Wins:      wins,
		Losses:    losses,
		PointsFor: pf,
	}
}

func game(year, week, id int, home string, homeScore float64, away string, awayScore float64) model.Matchup {
	return model.Matchup{
		LeagueID:  league,
		Year:      year,
		Week:      week,
		MatchupID: id,
		HomeTeam:  home,
		HomeScore: homeScore,
		AwayTeam:  away,
		AwayScore: awayScore,
	}
}

func historyTeams() []model.Team {
	return []model.Team{
		team(2019, "Alpha", "Alice", 1, 3, 0, 330),
		team(2019, "Bravo", "Bob", 2, 2, 1, 300),
		team(2019, "Charlie", "Carol", 3, 1, 2, 290),
		team(2019, "Delta", "Dave", 4, 0, 3, 200),
		team(2020, "Bravo", "Bob", 1, 3, 0, 360),
		team(2020, "Alpha2", "Alice", 2, 2, 1, 310),
		team(2020, "Delta", "Dave", 3, 1, 2, 250),
		team(2020, "Charlie", "Carol", 4, 0, 3, 240),
	}
}

func historyMatchups() []model.Matchup {
	return []model.Matchup{
		game(2020, 2, 2, "Bravo", 100, "Charlie", 70),
		game(2019, 1, 1, "Alpha", 150, "Delta", 80),
		game(2019, 1, 2, "Bravo", 110, "Charlie", 100),
		game(2019, 2, 1, "Alpha", 100, "Bravo", 90),
		game(2019, 2, 2, "Charlie", 95, "Delta", 0),
		game(2020, 1, 1, "Bravo", 150, "Alpha2", 120),
		game(2020, 1, 2, "Charlie", 80, "Delta", 80),
		game(2020, 2, 1, "Delta", 150, "Alpha2", 70),
	}
}

// twoWeekFinal is the 2019 final between Alice and Bob scored over weeks 14
// and 15. Alice wins on aggregate, 230 to 210.
func twoWeekFinal() []model.Matchup {
	label := "Championship"
	w14 := game(2019, 14, 1, "Alpha", 100, "Bravo", 120)
	w15 := game(2019, 15, 1, "Bravo", 90, "Alpha", 130)
	round := model.PlayoffRound{
		Year:        2019,
		Label:       label,
		BracketType: &label,
		HomeTeam:    "Alpha",
		AwayTeam:    "Bravo",
		HomeTotal:   230,
		AwayTotal:   210,
		Games:       []model.Matchup{w14, w15},
	}
	return round.Matchups()
}
