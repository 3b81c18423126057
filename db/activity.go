package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func (db *postgresDB) UpsertDraftPick(ctx context.Context, p *model.DraftPick) (bool, error) {
	if p == nil {
		return false, errors.New("UpsertDraftPick - pick is nil")
	}
	const query = `INSERT INTO draft_picks (
		league_id,
		year,
		round,
		pick,
		overall_pick,
		team_name,
		player_name,
		position,
		nfl_team
	) VALUES (
		@leagueID,
		@year,
		@round,
		@pick,
		@overall,
		@team,
		@player,
		@position,
		@nflTeam
	) ON CONFLICT ON CONSTRAINT draft_picks_natural_key DO UPDATE
		SET round=EXCLUDED.round,
			pick=EXCLUDED.pick,
			team_name=EXCLUDED.team_name,
			player_name=EXCLUDED.player_name,
			position=EXCLUDED.position,
			nfl_team=EXCLUDED.nfl_team,
			updated=@updated
	RETURNING (xmax = 0)`

	args := pgx.NamedArgs{
		"leagueID": p.LeagueID,
		"year":     p.Year,
		"round":    p.Round,
		"pick":     p.Pick,
		"overall":  p.OverallPick,
		"team":     p.Team,
		"player":   p.PlayerName,
		"position": p.Position,
		"nflTeam":  p.NFLTeam,
		"updated":  db.now(),
	}
	return db.upsert(ctx, query, args, "draft pick %d (%d)", p.OverallPick, p.Year)
}

func (db *postgresDB) ReplaceTransactions(ctx context.Context, leagueID string, year int, txns []model.Transaction) (int, int, error) {
	const upsert = `INSERT INTO transactions (
		league_id,
		year,
		date,
		type,
		team_name,
		players_added,
		players_dropped,
		description
	) VALUES (
		@leagueID,
		@year,
		@date,
		@type,
		@team,
		@added,
		@dropped,
		@description
	) ON CONFLICT ON CONSTRAINT transactions_natural_key DO UPDATE
		SET players_added=EXCLUDED.players_added,
			players_dropped=EXCLUDED.players_dropped,
			updated=@updated
	RETURNING id, (xmax = 0)`

	const prune = `DELETE FROM transactions
		WHERE league_id=@leagueID AND year=@year AND NOT (id = ANY(@keep))`

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("error starting transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	updatedAt := db.now()
	keep := make([]int32, 0, len(txns))
	inserted, updated := 0, 0
	for _, t := range txns {
		args := pgx.NamedArgs{
			"leagueID":    leagueID,
			"year":        year,
			"date":        t.Date,
			"type":        t.Type,
			"team":        t.Team,
			"added":       nonNil(t.PlayersAdded),
			"dropped":     nonNil(t.PlayersDropped),
			"description": t.Description,
			"updated":     updatedAt,
		}

		var id int32
		var isNew bool
		if err := tx.QueryRow(ctx, upsert, args).Scan(&id, &isNew); err != nil {
			return 0, 0, fmt.Errorf("error upserting transaction %q for %s: %w", t.Description, t.Team, err)
		}
		keep = append(keep, id)
		if isNew {
			inserted++
		} else {
			updated++
		}
	}

	args := pgx.NamedArgs{
		"leagueID": leagueID,
		"year":     year,
		"keep":     keep,
	}
	if _, err := tx.Exec(ctx, prune, args); err != nil {
		return 0, 0, fmt.Errorf("error removing old transactions: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, 0, fmt.Errorf("error commiting transactions: %w", err)
	}
	return inserted, updated, nil
}

func (db *postgresDB) ListDraft(ctx context.Context, leagueID string, year int) ([]model.DraftPick, error) {
	const query = `SELECT league_id, year, round, pick, overall_pick, team_name, player_name, position, nfl_team
		FROM draft_picks
		WHERE (@leagueID::TEXT = '' OR league_id=@leagueID::TEXT) AND year=@year
		ORDER BY league_id, overall_pick`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID, "year": year})
	if err != nil {
		return nil, fmt.Errorf("error querying draft: %w", err)
	}
	defer rows.Close()

	results := make([]model.DraftPick, 0, 16*12)
	for rows.Next() {
		var p model.DraftPick
		err := rows.Scan(&p.LeagueID, &p.Year, &p.Round, &p.Pick, &p.OverallPick, &p.Team, &p.PlayerName, &p.Position, &p.NFLTeam)
		if err != nil {
			return nil, fmt.Errorf("error scanning draft pick: %w", err)
		}
		results = append(results, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}
	return results, nil
}

func (db *postgresDB) ListTransactions(ctx context.Context, leagueID string, year int) ([]model.Transaction, error) {
	const query = `SELECT league_id, year, date, type, team_name, players_added, players_dropped, description
		FROM transactions
		WHERE (@leagueID::TEXT = '' OR league_id=@leagueID::TEXT) AND year=@year
		ORDER BY date, id`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID, "year": year})
	if err != nil {
		return nil, fmt.Errorf("error querying transactions: %w", err)
	}
	defer rows.Close()

	results := make([]model.Transaction, 0, 64)
	for rows.Next() {
		var t model.Transaction
		err := rows.Scan(&t.LeagueID, &t.Year, &t.Date, &t.Type, &t.Team, &t.PlayersAdded, &t.PlayersDropped, &t.Description)
		if err != nil {
			return nil, fmt.Errorf("error scanning transaction: %w", err)
		}
		t.Date = t.Date.UTC()
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}
	return results, nil
}

func (db *postgresDB) SaveIngestRun(ctx context.Context, run *model.IngestRun) error {
	if run == nil {
		return errors.New("SaveIngestRun - run is nil")
	}
	const query = `INSERT INTO ingest_runs (
		run_id,
		league_id,
		year,
		platform,
		inserted,
		updated,
		errors,
		started,
		finished,
		success,
		error
	) VALUES (
		@id,
		@leagueID,
		@year,
		@platform,
		@inserted,
		@updated,
		@errors,
		@started,
		@finished,
		@success,
		@error
	) ON CONFLICT (run_id) DO UPDATE
		SET inserted=EXCLUDED.inserted,
			updated=EXCLUDED.updated,
			errors=EXCLUDED.errors,
			finished=EXCLUDED.finished,
			success=EXCLUDED.success,
			error=EXCLUDED.error`

	args := pgx.NamedArgs{
		"id":       run.ID,
		"leagueID": run.LeagueID,
		"year":     run.Year,
		"platform": &dbPlatform{platform: run.Platform},
		"inserted": run.Inserted,
		"updated":  run.Updated,
		"errors":   run.Errors,
		"started":  run.Started,
		"finished": run.Finished,
		"success":  run.Success,
		"error":    optionalText(run.Error),
	}
	if _, err := db.pool.Exec(ctx, query, args); err != nil {
		return fmt.Errorf("error saving ingest run %s: %w", run.ID, err)
	}
	return nil
}

func (db *postgresDB) ListIngestRuns(ctx context.Context, limit int) ([]model.IngestRun, error) {
	const query = `SELECT run_id, league_id, year, platform, inserted, updated, errors,
			started, finished, success, error
		FROM ingest_runs ORDER BY started DESC LIMIT @limit`

	if limit <= 0 {
		limit = 20
	}
	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"limit": limit})
	if err != nil {
		return nil, fmt.Errorf("error querying ingest runs: %w", err)
	}
	defer rows.Close()

	results := make([]model.IngestRun, 0, limit)
	for rows.Next() {
		var r model.IngestRun
		var platform dbPlatform
		var runErr pgtype.Text
		err := rows.Scan(&r.ID, &r.LeagueID, &r.Year, &platform, &r.Inserted, &r.Updated, &r.Errors,
			&r.Started, &r.Finished, &r.Success, &runErr)
		if err != nil {
			return nil, fmt.Errorf("error scanning ingest run: %w", err)
		}
		r.Platform = platform.platform
		r.Started = r.Started.UTC()
		r.Finished = r.Finished.UTC()
		r.Error = runErr.String
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}
	return results, nil
}
