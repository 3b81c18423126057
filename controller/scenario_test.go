package controller

import (
	"context"
	"testing"

	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/Praneshv25/KMSFL-Data/testutils"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pairings counts the games of a season between the teams named a and b.
func pairings(s *model.Season, a, b string) int {
	n := 0
	for _, m := range s.Matchups {
		if (m.HomeTeam == a && m.AwayTeam == b) || (m.HomeTeam == b && m.AwayTeam == a) {
			n++
		}
	}
	return n
}

// TestIngest_legacyAndModernSeasons runs against its own database so that the
// seasons other tests ingest don't show up in the history.
func TestIngest_legacyAndModernSeasons(t *testing.T) {
	ctx := context.Background()

	isolated := testutils.NewTestDB()
	t.Cleanup(isolated.Shutdown)

	log, _ := test.NewNullLogger()
	ctrl, err := New(isolated.Clock, isolated.DB, nil, Options{Log: log})
	require.NoError(t, err)

	legacy := testutils.LegacySeason("espn-league", 2010)
	modern := testutils.ModernSeason("sleeper-league", 2011)
	for _, s := range []*model.Season{legacy, modern} {
		res, err := ctrl.IngestSeason(ctx, s)
		require.NoError(t, err)
		assert.Equal(t, testutils.Rows(s), res.Inserted)
		assert.Zero(t, res.Errors)
	}

	seasons, err := ctrl.GetSeasons(ctx)
	require.NoError(t, err)
	require.Len(t, seasons, 2)
	byYear := map[int]model.SeasonSummary{}
	for _, s := range seasons {
		byYear[s.Year] = s
	}
	assert.Equal(t, model.PlatformLegacy, byYear[2010].Platform)
	assert.Equal(t, 10, byYear[2010].Teams)
	assert.Equal(t, 13, byYear[2010].MaxWeek)
	assert.Equal(t, model.PlatformModern, byYear[2011].Platform)
	assert.Equal(t, 12, byYear[2011].Teams)
	assert.Equal(t, 17, byYear[2011].MaxWeek)

	draft, err := ctrl.GetDraft(ctx, 2010)
	require.NoError(t, err)
	assert.Len(t, draft, 100)

	champions, err := ctrl.GetChampions(ctx)
	require.NoError(t, err)
	require.Len(t, champions, 2)
	years := map[int]int{}
	for _, champ := range champions {
		years[champ.Year]++

		teams, err := ctrl.GetTeams(ctx, champ.Year)
		require.NoError(t, err)
		require.NotEmpty(t, teams)
		assert.Equal(t, 1, teams[0].Rank)
		assert.Equal(t, teams[0].Name, champ.Team)
		assert.Equal(t, teams[0].Owner, champ.Owner)
	}
	assert.Equal(t, map[int]int{2010: 1, 2011: 1}, years)

	a, b := testutils.Owner(0), testutils.Owner(1)
	h2h, err := ctrl.GetHeadToHead(ctx, a, b)
	require.NoError(t, err)

	want := pairings(legacy, "Team 1", "Team 2") + pairings(modern, "Squad 1", "Squad 2")
	require.Positive(t, want)
	assert.Len(t, h2h.Games, want)
	assert.Equal(t, want, h2h.WinsA+h2h.WinsB+h2h.Ties)

	reversed := 0
	for _, g := range h2h.Games {
		owners := []string{g.HomeOwner, g.AwayOwner}
		assert.ElementsMatch(t, []string{a, b}, owners)
		if g.HomeOwner == b {
			reversed++
		}
	}
	assert.Positive(t, reversed)
	assert.Less(t, reversed, want)
}

func TestIngestSeason_sharedMatchupIDKeepsEveryPairing(t *testing.T) {
	ctx := context.Background()
	ctrl, _ := newTestController(t)

	s := testutils.LegacySeason("shared-id", 2006)
	for i := range s.Matchups {
		if s.Matchups[i].Week == 1 {
			s.Matchups[i].MatchupID = 1
		}
	}
	res, err := ctrl.IngestSeason(ctx, s)
	require.NoError(t, err)
	assert.Equal(t, testutils.Rows(s), res.Inserted)
	assert.Zero(t, res.Updated)

	week, err := ctrl.GetMatchups(ctx, 2006, 1)
	require.NoError(t, err)
	assert.Len(t, week.Matchups, 5)

	roster, err := ctrl.GetMatchupRoster(ctx, 2006, 1, 1)
	require.NoError(t, err)
	assert.Len(t, roster, 20)
}
