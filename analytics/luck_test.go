package analytics

import (
	"testing"

	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLuck(t *testing.T) {
	got := Luck(historyTeams(), historyMatchups())

	assert.Equal(t, []LuckRanking{
		{Owner: "Bob", ActualWins: 3, ExpectedWins: 2.67, Luck: 0.33, Weeks: 4},
		{Owner: "Carol", ActualWins: 1, ExpectedWins: 1, Luck: 0, Weeks: 4},
		{Owner: "Dave", ActualWins: 1, ExpectedWins: 1, Luck: 0, Weeks: 4},
		{Owner: "Alice", ActualWins: 2, ExpectedWins: 2.67, Luck: -0.67, Weeks: 4},
	}, got)
}

func TestLuck_twoTeamWeek(t *testing.T) {
	teams := []model.Team{
		team(2019, "A", "Alice", 1, 1, 0, 100),
		team(2019, "B", "Bob", 2, 0, 1, 90),
	}
	got := Luck(teams, []model.Matchup{game(2019, 1, 1, "A", 100, "B", 90)})

	require.Len(t, got, 2)
	assert.Equal(t, LuckRanking{Owner: "Alice", ActualWins: 1, ExpectedWins: 1, Weeks: 1}, got[0])
	assert.Equal(t, LuckRanking{Owner: "Bob", ExpectedWins: 0, Weeks: 1}, got[1])
}

func TestLuck_highestScoreIsOneWin(t *testing.T) {
	// Carol has the third best score of the week but still loses.
	teams := []model.Team{
		team(2019, "A", "Alice", 1, 1, 0, 0),
		team(2019, "B", "Bob", 2, 1, 0, 0),
		team(2019, "C", "Carol", 3, 0, 1, 0),
		team(2019, "D", "Dave", 4, 0, 1, 0),
		team(2019, "E", "Erin", 5, 0, 0, 0),
		team(2019, "F", "Fred", 6, 0, 0, 0),
	}
	matchups := []model.Matchup{
		game(2019, 1, 1, "A", 150, "D", 70),
		game(2019, 1, 2, "B", 130, "C", 120),
		game(2019, 1, 3, "E", 90, "F", 90),
	}

	got := Luck(teams, matchups)
	byOwner := map[string]LuckRanking{}
	for _, r := range got {
		byOwner[r.Owner] = r
	}
	assert.Equal(t, 1.0, byOwner["Alice"].ExpectedWins)
	assert.Equal(t, 0.8, byOwner["Bob"].ExpectedWins)
	assert.Equal(t, 0.6, byOwner["Carol"].ExpectedWins)
	assert.Equal(t, -0.6, byOwner["Carol"].Luck)
	// Erin and Fred tie each other, neither counts as beaten
	assert.Equal(t, 0.2, byOwner["Erin"].ExpectedWins)
	assert.Equal(t, 0.2, byOwner["Fred"].ExpectedWins)
	assert.Equal(t, 0.0, byOwner["Dave"].ExpectedWins)
}

func TestLuck_countsEveryPlayoffWeek(t *testing.T) {
	teams := historyTeams()[:2]
	got := Luck(teams, twoWeekFinal())

	require.Len(t, got, 2)
	for _, r := range got {
		assert.Equal(t, 2, r.Weeks)
		assert.Equal(t, 1, r.ActualWins)
		assert.Equal(t, 1.0, r.ExpectedWins)
	}
}
