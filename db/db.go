package db

import (
	"context"

	"github.com/Praneshv25/KMSFL-Data/model"
)

// DB stores canonical seasons. Every Upsert is keyed on the row's natural key
// and reports whether a new row was inserted (true) or an existing one was
// updated (false).
type DB interface {
	UpsertSeason(ctx context.Context, s *model.Season) (bool, error)
	UpsertTeam(ctx context.Context, t *model.Team) (bool, error)
	UpsertMatchup(ctx context.Context, m *model.Matchup) (bool, error)
	UpsertRosterEntry(ctx context.Context, key model.MatchupKey, order int, e *model.RosterEntry) (bool, error)
	UpsertDraftPick(ctx context.Context, p *model.DraftPick) (bool, error)

	// ReplaceTransactions makes txns the complete transaction set of the
	// season. Transactions no longer present are removed.
	ReplaceTransactions(ctx context.Context, leagueID string, year int, txns []model.Transaction) (inserted, updated int, err error)

	SaveIngestRun(ctx context.Context, run *model.IngestRun) error
	// Lists the most recent ingest runs, newest first.
	ListIngestRuns(ctx context.Context, limit int) ([]model.IngestRun, error)

	ListSeasons(ctx context.Context) ([]model.SeasonSummary, error)

	// The list queries below take a league id, an empty id matches every
	// league.

	// A year of 0 lists every season.
	ListTeams(ctx context.Context, leagueID string, year int) ([]model.Team, error)
	// A year or week of 0 is not filtered on. Rosters are not loaded.
	ListMatchups(ctx context.Context, leagueID string, year, week int) ([]model.Matchup, error)
	// Lists the rosters of every pairing with the matchup id in that week,
	// grouped by pairing. Returns ErrNotFound when there is no such matchup.
	ListRoster(ctx context.Context, leagueID string, year, week, matchupID int) ([]model.RosterEntry, error)
	ListDraft(ctx context.Context, leagueID string, year int) ([]model.DraftPick, error)
	ListTransactions(ctx context.Context, leagueID string, year int) ([]model.Transaction, error)

	Close()
}
