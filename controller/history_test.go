package controller

import (
	"context"
	"testing"

	"github.com/Praneshv25/KMSFL-Data/analytics"
	"github.com/Praneshv25/KMSFL-Data/db/mockdb"
	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func historyTeams() []model.Team {
	return []model.Team{
		{LeagueID: "L", Year: 2020, Name: "A", Owner: "Alice", Rank: 1, Wins: 2, PointsFor: 330, PointsAgainst: 281},
		{LeagueID: "L", Year: 2020, Name: "B", Owner: "Bob", Rank: 3, Wins: 0, Losses: 1, PointsFor: 90, PointsAgainst: 100},
		{LeagueID: "L", Year: 2020, Name: "C", Owner: "Carol", Rank: 4, Wins: 0, Losses: 2, PointsFor: 150, PointsAgainst: 205},
		{LeagueID: "L", Year: 2020, Name: "D", Owner: "Dave", Rank: 2, Wins: 2, Losses: 0, PointsFor: 216, PointsAgainst: 200},
	}
}

func historyMatchups() []model.Matchup {
	m := weekMatchups()
	for i := range m {
		m[i].LeagueID = "L"
	}
	return m
}

func expectHistory(mdb *mockdb.DB) {
	mdb.On("ListTeams", mock.Anything, "", 0).Return(historyTeams(), nil)
	mdb.On("ListMatchups", mock.Anything, "", 0, 0).Return(historyMatchups(), nil)
}

func TestGetHeadToHead(t *testing.T) {
	ctrl, mdb := newMockController(t, nil)
	expectHistory(mdb)

	h2h, err := ctrl.GetHeadToHead(context.Background(), "Alice", " Dave ")
	require.NoError(t, err)
	assert.Equal(t, "Alice", h2h.ManagerA)
	assert.Equal(t, "Dave", h2h.ManagerB)
	assert.Equal(t, 0, h2h.WinsA)
	assert.Equal(t, 1, h2h.WinsB)
	require.Len(t, h2h.Games, 1)
	assert.Equal(t, 14, h2h.Games[0].Week)
}

func TestGetHeadToHead_errors(t *testing.T) {
	tests := map[string]struct {
		a, b string
		want error
	}{
		"missing a":     {a: "", b: "Bob", want: ErrInvalidArgument},
		"blank b":       {a: "Alice", b: "  ", want: ErrInvalidArgument},
		"unknown owner": {a: "Alice", b: "Zed", want: analytics.ErrManagerNotFound},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			ctrl, mdb := newMockController(t, nil)
			expectHistory(mdb)

			_, err := ctrl.GetHeadToHead(context.Background(), tc.a, tc.b)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

func TestGetManager(t *testing.T) {
	ctrl, mdb := newMockController(t, nil)
	expectHistory(mdb)

	m, err := ctrl.GetManager(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice", m.Name)
	require.Len(t, m.Seasons, 1)
	assert.Equal(t, 2020, m.Seasons[0].Year)

	_, err = ctrl.GetManager(context.Background(), "Nobody")
	assert.ErrorIs(t, err, analytics.ErrManagerNotFound)
}

func TestGetRivalriesAndWeeklyResults(t *testing.T) {
	ctrl, mdb := newMockController(t, nil)
	expectHistory(mdb)

	rivals, err := ctrl.GetRivalries(context.Background(), "Alice")
	require.NoError(t, err)
	require.Len(t, rivals, 3)

	weekly, err := ctrl.GetWeeklyResults(context.Background(), "Alice")
	require.NoError(t, err)
	assert.Len(t, weekly, 3)

	_, err = ctrl.GetRivalries(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidArgument)
	_, err = ctrl.GetWeeklyResults(context.Background(), "Nobody")
	assert.ErrorIs(t, err, analytics.ErrManagerNotFound)
}

func TestGetRecords_isCached(t *testing.T) {
	cache := newMemCache()
	ctrl, mdb := newMockController(t, cache)
	mdb.On("ListTeams", mock.Anything, "", 0).Return(historyTeams(), nil).Once()
	mdb.On("ListMatchups", mock.Anything, "", 0, 0).Return(historyMatchups(), nil).Once()

	first, err := ctrl.GetRecords(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := ctrl.GetRecords(context.Background())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	mdb.AssertExpectations(t)
}

func TestGetLuckRankings(t *testing.T) {
	ctrl, mdb := newMockController(t, nil)
	expectHistory(mdb)

	luck, err := ctrl.GetLuckRankings(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, luck)
	for _, l := range luck {
		assert.NotEmpty(t, l.Owner)
	}
}

func TestGetManagers(t *testing.T) {
	ctrl, mdb := newMockController(t, nil)
	mdb.On("ListTeams", mock.Anything, "", 0).Return(historyTeams(), nil)

	managers, err := ctrl.GetManagers(context.Background())
	require.NoError(t, err)
	require.Len(t, managers, 4)
	assert.Equal(t, "Alice", managers[0].Name)
}
