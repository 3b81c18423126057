package ingest

import (
	"context"
	"errors"
	"math"
	"net"
	"testing"
	"time"

	"github.com/Praneshv25/KMSFL-Data/db/mockdb"
	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/itbasis/go-clock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var started = time.Date(2025, time.September, 9, 12, 0, 0, 0, time.UTC)

func season() *model.Season {
	return &model.Season{
		LeagueID: "league",
		Year:     2025,
		Platform: model.PlatformModern,
		Teams: []model.Team{
			{Name: "Kush Push", Owner: "Kush", Rank: 1, Wins: 1},
			{Name: "pvels", Owner: "Pranesh", Rank: 2, Losses: 1},
		},
		Matchups: []model.Matchup{
			{
				Week: 1, MatchupID: 1, HomeTeam: "Kush Push", AwayTeam: "pvels", HomeScore: 120.5, AwayScore: 99.1,
				Roster: []model.RosterEntry{
					{TeamName: "Kush Push", PlayerName: "Josh Allen", Position: "QB", Points: 30, Started: true},
					{TeamName: "pvels", PlayerName: "Lamar Jackson", Position: "QB", Points: 20, Started: true},
				},
			},
		},
		Draft: []model.DraftPick{
			{Round: 1, Pick: 1, OverallPick: 1, Team: "Kush Push", PlayerName: "Bijan Robinson"},
		},
		Transactions: []model.Transaction{
			{Date: started, Type: "waiver", Team: "pvels", PlayersAdded: []string{"Puka Nacua"}, Description: "Added Puka Nacua"},
		},
	}
}

func newService(store *mockdb.DB) (*Service, *clock.Mock, *test.Hook) {
	clk := clock.NewMock()
	clk.Set(started)
	log, hook := test.NewNullLogger()
	return New(store, clk, log), clk, hook
}

func expectAll(store *mockdb.DB, inserted bool) {
	store.On("UpsertSeason", mock.Anything, mock.Anything).Return(inserted, nil)
	store.On("UpsertTeam", mock.Anything, mock.Anything).Return(inserted, nil)
	store.On("UpsertMatchup", mock.Anything, mock.Anything).Return(inserted, nil)
	store.On("UpsertRosterEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(inserted, nil)
	store.On("UpsertDraftPick", mock.Anything, mock.Anything).Return(inserted, nil)
	if inserted {
		store.On("ReplaceTransactions", mock.Anything, "league", 2025, mock.Anything).Return(1, 0, nil)
	} else {
		store.On("ReplaceTransactions", mock.Anything, "league", 2025, mock.Anything).Return(0, 1, nil)
	}
}

func TestIngest(t *testing.T) {
	store := &mockdb.DB{}
	svc, _, hook := newService(store)
	expectAll(store, true)
	store.On("SaveIngestRun", mock.Anything, mock.MatchedBy(func(r *model.IngestRun) bool {
		return r.LeagueID == "league" && r.Year == 2025 && r.Platform == model.PlatformModern &&
			r.Inserted == 8 && r.Updated == 0 && r.Errors == 0 && r.Success && r.Started.Equal(started)
	})).Return(nil)

	result, err := svc.Ingest(context.Background(), season())
	require.NoError(t, err)
	assert.Equal(t, 8, result.Inserted)
	assert.Equal(t, 0, result.Updated)
	assert.Equal(t, 0, result.Errors)
	assert.Empty(t, result.RowErrors)

	store.AssertExpectations(t)
	store.AssertCalled(t, "UpsertRosterEntry", mock.Anything, model.MatchupKey{LeagueID: "league", Year: 2025, Week: 1, MatchupID: 1, HomeTeam: "Kush Push", AwayTeam: "pvels"}, 1, mock.Anything)

	last := hook.LastEntry()
	require.NotNil(t, last)
	assert.Equal(t, logrus.InfoLevel, last.Level)
	assert.Equal(t, "ingest finished", last.Message)
	assert.Equal(t, 8, last.Data["inserted"])
}

func TestIngest_secondRunUpdates(t *testing.T) {
	store := &mockdb.DB{}
	svc, _, _ := newService(store)
	expectAll(store, false)
	store.On("SaveIngestRun", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Ingest(context.Background(), season())
	require.NoError(t, err)
	assert.Equal(t, 0, result.Inserted)
	assert.Equal(t, 8, result.Updated)
}

func TestIngest_fillsSeasonKeys(t *testing.T) {
	store := &mockdb.DB{}
	svc, _, _ := newService(store)
	expectAll(store, true)
	store.On("SaveIngestRun", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Ingest(context.Background(), season())
	require.NoError(t, err)

	store.AssertCalled(t, "UpsertTeam", mock.Anything, mock.MatchedBy(func(tm *model.Team) bool {
		return tm.Name == "pvels" && tm.LeagueID == "league" && tm.Year == 2025
	}))
	store.AssertCalled(t, "ReplaceTransactions", mock.Anything, "league", 2025, mock.MatchedBy(func(txns []model.Transaction) bool {
		return len(txns) == 1 && txns[0].LeagueID == "league" && txns[0].Year == 2025
	}))
}

func TestIngest_rowErrors(t *testing.T) {
	tests := map[string]struct {
		modify   func(s *model.Season)
		kind     string
		sentinel error
		inserted int
	}{
		"missing home team": {
			modify:   func(s *model.Season) { s.Matchups[0].HomeTeam = "Ghost" },
			kind:     "matchup",
			sentinel: ErrMissingTeam,
			inserted: 5, // season, two teams, pick, transaction
		},
		"nan score": {
			modify:   func(s *model.Season) { s.Matchups[0].AwayScore = math.NaN() },
			kind:     "matchup",
			sentinel: ErrInvalidRow,
			inserted: 5,
		},
		"infinite total": {
			modify:   func(s *model.Season) { s.Matchups[0].HomeTotal = model.Ptr(math.Inf(1)) },
			kind:     "matchup",
			sentinel: ErrInvalidRow,
			inserted: 5,
		},
		"roster entry for another team": {
			modify:   func(s *model.Season) { s.Matchups[0].Roster[1].TeamName = "Other" },
			kind:     "roster",
			sentinel: ErrMissingTeam,
			inserted: 7,
		},
		"bad draft pick": {
			modify:   func(s *model.Season) { s.Draft[0].OverallPick = 0 },
			kind:     "draft",
			sentinel: ErrInvalidRow,
			inserted: 7,
		},
		"nan team points": {
			modify: func(s *model.Season) { s.Teams[1].PointsFor = math.NaN() },
			kind:   "team",
			// the matchup then references a team that was not written
			sentinel: ErrInvalidRow,
			inserted: 4,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			store := &mockdb.DB{}
			svc, _, hook := newService(store)
			expectAll(store, true)
			store.On("SaveIngestRun", mock.Anything, mock.MatchedBy(func(r *model.IngestRun) bool {
				return r.Success && r.Errors > 0
			})).Return(nil)

			s := season()
			tc.modify(s)
			result, err := svc.Ingest(context.Background(), s)
			require.NoError(t, err)

			require.NotEmpty(t, result.RowErrors)
			assert.Equal(t, tc.kind, result.RowErrors[0].Kind)
			assert.ErrorIs(t, result.RowErrors[0], tc.sentinel)
			assert.Equal(t, len(result.RowErrors), result.Errors)
			assert.Equal(t, tc.inserted, result.Inserted)

			warned := false
			for _, e := range hook.AllEntries() {
				if e.Level == logrus.WarnLevel && e.Message == "skipping row" {
					warned = true
				}
			}
			assert.True(t, warned)
		})
	}
}

func TestIngest_missingTeamSkipsRoster(t *testing.T) {
	store := &mockdb.DB{}
	svc, _, _ := newService(store)
	expectAll(store, true)
	store.On("SaveIngestRun", mock.Anything, mock.Anything).Return(nil)

	s := season()
	s.Matchups[0].AwayTeam = "Ghost"
	_, err := svc.Ingest(context.Background(), s)
	require.NoError(t, err)

	store.AssertNotCalled(t, "UpsertMatchup", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "UpsertRosterEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIngest_constraintFailureIsRowError(t *testing.T) {
	store := &mockdb.DB{}
	svc, _, _ := newService(store)
	store.On("UpsertSeason", mock.Anything, mock.Anything).Return(true, nil)
	store.On("UpsertTeam", mock.Anything, mock.Anything).Return(true, nil)
	store.On("UpsertMatchup", mock.Anything, mock.Anything).Return(false, &pgconn.PgError{Code: "23503"})
	store.On("UpsertDraftPick", mock.Anything, mock.Anything).Return(true, nil)
	store.On("ReplaceTransactions", mock.Anything, "league", 2025, mock.Anything).Return(1, 0, nil)
	store.On("SaveIngestRun", mock.Anything, mock.Anything).Return(nil)

	result, err := svc.Ingest(context.Background(), season())
	require.NoError(t, err)
	assert.Equal(t, 1, result.Errors)
	assert.Equal(t, "matchup", result.RowErrors[0].Kind)
	store.AssertNotCalled(t, "UpsertRosterEntry", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestIngest_unavailableAborts(t *testing.T) {
	store := &mockdb.DB{}
	svc, clk, hook := newService(store)
	connErr := &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")}

	store.On("UpsertSeason", mock.Anything, mock.Anything).Return(true, nil)
	store.On("UpsertTeam", mock.Anything, mock.Anything).Return(true, nil).Once()
	store.On("UpsertTeam", mock.Anything, mock.Anything).Run(func(mock.Arguments) {
		clk.Add(2 * time.Second)
	}).Return(false, connErr).Once()
	store.On("SaveIngestRun", mock.Anything, mock.MatchedBy(func(r *model.IngestRun) bool {
		return !r.Success && r.Error != "" && r.Inserted == 2 && r.Duration() == 2*time.Second
	})).Return(nil)

	result, err := svc.Ingest(context.Background(), season())
	require.Error(t, err)
	assert.ErrorAs(t, err, &connErr)
	require.NotNil(t, result)
	assert.Equal(t, 2, result.Inserted)

	store.AssertExpectations(t)
	store.AssertNotCalled(t, "UpsertMatchup", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "ReplaceTransactions", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	assert.Equal(t, logrus.ErrorLevel, hook.LastEntry().Level)
}

func TestIngest_seasonFailure(t *testing.T) {
	store := &mockdb.DB{}
	svc, _, _ := newService(store)
	store.On("UpsertSeason", mock.Anything, mock.Anything).Return(false, errors.New("boom"))
	store.On("SaveIngestRun", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Ingest(context.Background(), season())
	assert.Error(t, err)
	store.AssertNotCalled(t, "UpsertTeam", mock.Anything, mock.Anything)
}

func TestIngest_saveRunFailureIsLogged(t *testing.T) {
	store := &mockdb.DB{}
	svc, _, hook := newService(store)
	expectAll(store, true)
	store.On("SaveIngestRun", mock.Anything, mock.Anything).Return(errors.New("boom"))

	_, err := svc.Ingest(context.Background(), season())
	require.NoError(t, err)

	found := false
	for _, e := range hook.AllEntries() {
		if e.Message == "unable to record ingest run" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestIngest_invalidSeason(t *testing.T) {
	svc, _, _ := newService(&mockdb.DB{})

	_, err := svc.Ingest(context.Background(), nil)
	assert.Error(t, err)

	s := season()
	s.LeagueID = ""
	_, err = svc.Ingest(context.Background(), s)
	assert.ErrorIs(t, err, ErrInvalidRow)
}
