package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

func (db *postgresDB) UpsertSeason(ctx context.Context, s *model.Season) (bool, error) {
	if s == nil {
		return false, errors.New("UpsertSeason - season is nil")
	}
	const query = `INSERT INTO seasons (
		league_id,
		year,
		platform,
		scraped_at
	) VALUES (
		@leagueID,
		@year,
		@platform,
		@scrapedAt
	) ON CONFLICT (league_id, year) DO UPDATE
		SET platform=EXCLUDED.platform,
			scraped_at=EXCLUDED.scraped_at,
			updated=@updated
	RETURNING (xmax = 0)`

	args := pgx.NamedArgs{
		"leagueID":  s.LeagueID,
		"year":      s.Year,
		"platform":  &dbPlatform{platform: s.Platform},
		"scrapedAt": optionalTime(s.ScrapedAt),
		"updated":   db.now(),
	}
	return db.upsert(ctx, query, args, "season %s/%d", s.LeagueID, s.Year)
}

func (db *postgresDB) UpsertTeam(ctx context.Context, t *model.Team) (bool, error) {
	if t == nil {
		return false, errors.New("UpsertTeam - team is nil")
	}
	const query = `INSERT INTO teams (
		league_id,
		year,
		team_name,
		owner,
		rank,
		wins,
		losses,
		ties,
		points_for,
		points_against,
		streak
	) VALUES (
		@leagueID,
		@year,
		@name,
		@owner,
		@rank,
		@wins,
		@losses,
		@ties,
		@pointsFor,
		@pointsAgainst,
		@streak
	) ON CONFLICT ON CONSTRAINT teams_natural_key DO UPDATE
		SET owner=EXCLUDED.owner,
			rank=EXCLUDED.rank,
			wins=EXCLUDED.wins,
			losses=EXCLUDED.losses,
			ties=EXCLUDED.ties,
			points_for=EXCLUDED.points_for,
			points_against=EXCLUDED.points_against,
			streak=EXCLUDED.streak,
			updated=@updated
	RETURNING (xmax = 0)`

	args := pgx.NamedArgs{
		"leagueID":      t.LeagueID,
		"year":          t.Year,
		"name":          t.Name,
		"owner":         t.Owner,
		"rank":          t.Rank,
		"wins":          t.Wins,
		"losses":        t.Losses,
		"ties":          t.Ties,
		"pointsFor":     t.PointsFor,
		"pointsAgainst": t.PointsAgainst,
		"streak":        optionalText(t.Streak),
		"updated":       db.now(),
	}
	return db.upsert(ctx, query, args, "team %s (%d)", t.Name, t.Year)
}

func (db *postgresDB) UpsertMatchup(ctx context.Context, m *model.Matchup) (bool, error) {
	if m == nil {
		return false, errors.New("UpsertMatchup - matchup is nil")
	}
	const query = `INSERT INTO matchups (
		league_id,
		year,
		week,
		matchup_id,
		home_team,
		away_team,
		home_score,
		away_score,
		home_projected,
		away_projected,
		bracket_type,
		round,
		is_two_week_playoff,
		home_total,
		away_total
	) VALUES (
		@leagueID,
		@year,
		@week,
		@matchupID,
		@homeTeam,
		@awayTeam,
		@homeScore,
		@awayScore,
		@homeProjected,
		@awayProjected,
		@bracketType,
		@round,
		@twoWeek,
		@homeTotal,
		@awayTotal
	) ON CONFLICT ON CONSTRAINT matchups_natural_key DO UPDATE
		SET home_score=EXCLUDED.home_score,
			away_score=EXCLUDED.away_score,
			home_projected=EXCLUDED.home_projected,
			away_projected=EXCLUDED.away_projected,
			bracket_type=EXCLUDED.bracket_type,
			round=EXCLUDED.round,
			is_two_week_playoff=EXCLUDED.is_two_week_playoff,
			home_total=EXCLUDED.home_total,
			away_total=EXCLUDED.away_total,
			updated=@updated
	RETURNING (xmax = 0)`

	args := pgx.NamedArgs{
		"leagueID":      m.LeagueID,
		"year":          m.Year,
		"week":          m.Week,
		"matchupID":     m.MatchupID,
		"homeTeam":      m.HomeTeam,
		"awayTeam":      m.AwayTeam,
		"homeScore":     m.HomeScore,
		"awayScore":     m.AwayScore,
		"homeProjected": m.HomeProjected,
		"awayProjected": m.AwayProjected,
		"bracketType":   m.BracketType,
		"round":         m.Round,
		"twoWeek":       m.TwoWeekPlayoff,
		"homeTotal":     optionalFloat(m.HomeTotal),
		"awayTotal":     optionalFloat(m.AwayTotal),
		"updated":       db.now(),
	}
	return db.upsert(ctx, query, args, "matchup %d week %d (%d)", m.MatchupID, m.Week, m.Year)
}

func (db *postgresDB) UpsertRosterEntry(ctx context.Context, key model.MatchupKey, order int, e *model.RosterEntry) (bool, error) {
	if e == nil {
		return false, errors.New("UpsertRosterEntry - entry is nil")
	}
	const query = `INSERT INTO matchup_rosters (
		league_id,
		year,
		week,
		matchup_id,
		home_team,
		away_team,
		team_name,
		player_name,
		position,
		nfl_team,
		points,
		projected,
		started,
		lineup_order
	) VALUES (
		@leagueID,
		@year,
		@week,
		@matchupID,
		@homeTeam,
		@awayTeam,
		@team,
		@player,
		@position,
		@nflTeam,
		@points,
		@projected,
		@started,
		@order
	) ON CONFLICT ON CONSTRAINT matchup_rosters_natural_key DO UPDATE
		SET position=EXCLUDED.position,
			nfl_team=EXCLUDED.nfl_team,
			points=EXCLUDED.points,
			projected=EXCLUDED.projected,
			started=EXCLUDED.started,
			lineup_order=EXCLUDED.lineup_order,
			updated=@updated
	RETURNING (xmax = 0)`

	args := pgx.NamedArgs{
		"leagueID":  key.LeagueID,
		"year":      key.Year,
		"week":      key.Week,
		"matchupID": key.MatchupID,
		"homeTeam":  key.HomeTeam,
		"awayTeam":  key.AwayTeam,
		"team":      e.TeamName,
		"player":    e.PlayerName,
		"position":  e.Position,
		"nflTeam":   e.NFLTeam,
		"points":    e.Points,
		"projected": e.Projected,
		"started":   e.Started,
		"order":     order,
		"updated":   db.now(),
	}
	return db.upsert(ctx, query, args, "roster entry %s week %d (%d)", e.PlayerName, key.Week, key.Year)
}

// upsert runs an insert that returns whether the row was newly inserted.
func (db *postgresDB) upsert(ctx context.Context, query string, args pgx.NamedArgs, desc string, descArgs ...any) (bool, error) {
	var inserted bool
	if err := db.pool.QueryRow(ctx, query, args).Scan(&inserted); err != nil {
		return false, fmt.Errorf("error upserting %s: %w", fmt.Sprintf(desc, descArgs...), err)
	}
	return inserted, nil
}

func (db *postgresDB) ListSeasons(ctx context.Context) ([]model.SeasonSummary, error) {
	const query = `SELECT s.league_id, s.year, s.platform, s.scraped_at,
			(SELECT COUNT(*) FROM teams t WHERE t.league_id=s.league_id AND t.year=s.year),
			(SELECT COALESCE(MAX(m.week), 0) FROM matchups m WHERE m.league_id=s.league_id AND m.year=s.year)
		FROM seasons s ORDER BY s.year DESC, s.league_id`

	rows, err := db.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying seasons: %w", err)
	}
	defer rows.Close()

	results := make([]model.SeasonSummary, 0, 8)
	for rows.Next() {
		var s model.SeasonSummary
		var platform dbPlatform
		var scrapedAt pgtype.Timestamptz
		var teams int64
		if err := rows.Scan(&s.LeagueID, &s.Year, &platform, &scrapedAt, &teams, &s.MaxWeek); err != nil {
			return nil, fmt.Errorf("error scanning season: %w", err)
		}
		s.Platform = platform.platform
		s.ScrapedAt = scrapedAt.Time
		s.Teams = int(teams)
		results = append(results, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}
	return results, nil
}

func (db *postgresDB) ListTeams(ctx context.Context, leagueID string, year int) ([]model.Team, error) {
	const query = `SELECT league_id, year, team_name, owner, rank, wins, losses, ties,
			points_for, points_against, streak
		FROM teams
		WHERE (@leagueID::TEXT = '' OR league_id=@leagueID::TEXT)
			AND (@year::INTEGER = 0 OR year=@year::INTEGER)
		ORDER BY year DESC, league_id, rank, team_name`

	rows, err := db.pool.Query(ctx, query, pgx.NamedArgs{"leagueID": leagueID, "year": year})
	if err != nil {
		return nil, fmt.Errorf("error querying teams: %w", err)
	}
	defer rows.Close()

	results := make([]model.Team, 0, 12)
	for rows.Next() {
		var t model.Team
		var streak pgtype.Text
		err := rows.Scan(&t.LeagueID, &t.Year, &t.Name, &t.Owner, &t.Rank, &t.Wins, &t.Losses, &t.Ties,
			&t.PointsFor, &t.PointsAgainst, &streak)
		if err != nil {
			return nil, fmt.Errorf("error scanning team: %w", err)
		}
		t.Streak = streak.String
		results = append(results, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}
	return results, nil
}

func (db *postgresDB) ListMatchups(ctx context.Context, leagueID string, year, week int) ([]model.Matchup, error) {
	const query = `SELECT league_id, year, week, matchup_id, home_team, away_team,
			home_score, away_score, home_projected, away_projected,
			bracket_type, round, is_two_week_playoff, home_total, away_total
		FROM matchups
		WHERE (@leagueID::TEXT = '' OR league_id=@leagueID::TEXT)
			AND (@year::INTEGER = 0 OR year=@year::INTEGER)
			AND (@week::INTEGER = 0 OR week=@week::INTEGER)
		ORDER BY year, league_id, week, matchup_id, home_team`

	args := pgx.NamedArgs{"leagueID": leagueID, "year": year, "week": week}
	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error querying matchups: %w", err)
	}
	defer rows.Close()

	results := make([]model.Matchup, 0, 64)
	for rows.Next() {
		var m model.Matchup
		var bracketType, round pgtype.Text
		var homeTotal, awayTotal pgtype.Float8
		err := rows.Scan(&m.LeagueID, &m.Year, &m.Week, &m.MatchupID, &m.HomeTeam, &m.AwayTeam,
			&m.HomeScore, &m.AwayScore, &m.HomeProjected, &m.AwayProjected,
			&bracketType, &round, &m.TwoWeekPlayoff, &homeTotal, &awayTotal)
		if err != nil {
			return nil, fmt.Errorf("error scanning matchup: %w", err)
		}
		m.BracketType = textPtr(bracketType)
		m.Round = textPtr(round)
		m.HomeTotal = floatPtr(homeTotal)
		m.AwayTotal = floatPtr(awayTotal)
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}
	return results, nil
}

func (db *postgresDB) ListRoster(ctx context.Context, leagueID string, year, week, matchupID int) ([]model.RosterEntry, error) {
	const exists = `SELECT EXISTS(SELECT 1 FROM matchups
		WHERE (@leagueID::TEXT = '' OR league_id=@leagueID::TEXT)
			AND year=@year AND week=@week AND matchup_id=@matchupID)`
	const query = `SELECT r.team_name, r.player_name, r.position, r.nfl_team, r.points, r.projected, r.started
		FROM matchup_rosters r
		JOIN matchups m ON m.league_id=r.league_id AND m.year=r.year AND m.week=r.week
			AND m.matchup_id=r.matchup_id AND m.home_team=r.home_team AND m.away_team=r.away_team
		WHERE (@leagueID::TEXT = '' OR m.league_id=@leagueID::TEXT)
			AND m.year=@year AND m.week=@week AND m.matchup_id=@matchupID
		ORDER BY m.league_id, m.home_team, m.away_team, r.lineup_order, r.id`

	args := pgx.NamedArgs{
		"leagueID":  leagueID,
		"year":      year,
		"week":      week,
		"matchupID": matchupID,
	}

	var found bool
	if err := db.pool.QueryRow(ctx, exists, args).Scan(&found); err != nil {
		return nil, fmt.Errorf("error looking up matchup: %w", err)
	}
	if !found {
		return nil, ErrNotFound
	}

	rows, err := db.pool.Query(ctx, query, args)
	if err != nil {
		return nil, fmt.Errorf("error querying roster: %w", err)
	}
	defer rows.Close()

	results := make([]model.RosterEntry, 0, 32)
	for rows.Next() {
		var e model.RosterEntry
		if err := rows.Scan(&e.TeamName, &e.PlayerName, &e.Position, &e.NFLTeam, &e.Points, &e.Projected, &e.Started); err != nil {
			return nil, fmt.Errorf("error scanning roster entry: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error with rows: %w", err)
	}
	return results, nil
}
