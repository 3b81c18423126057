package mockdb

import (
	"context"

	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/stretchr/testify/mock"
)

type DB struct {
	mock.Mock
}

func (db *DB) UpsertSeason(ctx context.Context, s *model.Season) (bool, error) {
	args := db.Called(ctx, s)
	return args.Bool(0), args.Error(1)
}

func (db *DB) UpsertTeam(ctx context.Context, t *model.Team) (bool, error) {
	args := db.Called(ctx, t)
	return args.Bool(0), args.Error(1)
}

func (db *DB) UpsertMatchup(ctx context.Context, m *model.Matchup) (bool, error) {
	args := db.Called(ctx, m)
	return args.Bool(0), args.Error(1)
}

func (db *DB) UpsertRosterEntry(ctx context.Context, key model.MatchupKey, order int, e *model.RosterEntry) (bool, error) {
	args := db.Called(ctx, key, order, e)
	return args.Bool(0), args.Error(1)
}

func (db *DB) UpsertDraftPick(ctx context.Context, p *model.DraftPick) (bool, error) {
	args := db.Called(ctx, p)
	return args.Bool(0), args.Error(1)
}

func (db *DB) ReplaceTransactions(ctx context.Context, leagueID string, year int, txns []model.Transaction) (int, int, error) {
	args := db.Called(ctx, leagueID, year, txns)
	return args.Int(0), args.Int(1), args.Error(2)
}

func (db *DB) SaveIngestRun(ctx context.Context, run *model.IngestRun) error {
	args := db.Called(ctx, run)
	return args.Error(0)
}

func (db *DB) ListIngestRuns(ctx context.Context, limit int) ([]model.IngestRun, error) {
	args := db.Called(ctx, limit)

	var r []model.IngestRun
	if args.Get(0) != nil {
		r = args.Get(0).([]model.IngestRun)
	}
	return r, args.Error(1)
}

func (db *DB) ListSeasons(ctx context.Context) ([]model.SeasonSummary, error) {
	args := db.Called(ctx)

	var r []model.SeasonSummary
	if args.Get(0) != nil {
		r = args.Get(0).([]model.SeasonSummary)
	}
	return r, args.Error(1)
}

func (db *DB) ListTeams(ctx context.Context, leagueID string, year int) ([]model.Team, error) {
	args := db.Called(ctx, leagueID, year)

	var r []model.Team
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Team)
	}
	return r, args.Error(1)
}

func (db *DB) ListMatchups(ctx context.Context, leagueID string, year, week int) ([]model.Matchup, error) {
	args := db.Called(ctx, leagueID, year, week)

	var r []model.Matchup
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Matchup)
	}
	return r, args.Error(1)
}

func (db *DB) ListRoster(ctx context.Context, leagueID string, year, week, matchupID int) ([]model.RosterEntry, error) {
	args := db.Called(ctx, leagueID, year, week, matchupID)

	var r []model.RosterEntry
	if args.Get(0) != nil {
		r = args.Get(0).([]model.RosterEntry)
	}
	return r, args.Error(1)
}

func (db *DB) ListDraft(ctx context.Context, leagueID string, year int) ([]model.DraftPick, error) {
	args := db.Called(ctx, leagueID, year)

	var r []model.DraftPick
	if args.Get(0) != nil {
		r = args.Get(0).([]model.DraftPick)
	}
	return r, args.Error(1)
}

func (db *DB) ListTransactions(ctx context.Context, leagueID string, year int) ([]model.Transaction, error) {
	args := db.Called(ctx, leagueID, year)

	var r []model.Transaction
	if args.Get(0) != nil {
		r = args.Get(0).([]model.Transaction)
	}
	return r, args.Error(1)
}

func (db *DB) Close() {
	db.Called()
}
