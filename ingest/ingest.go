// Package ingest writes canonical seasons to the store. Every row is upserted
// on its natural key so a season can be ingested any number of times.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Praneshv25/KMSFL-Data/db"
	"github.com/Praneshv25/KMSFL-Data/model"
	"github.com/google/uuid"
	"github.com/itbasis/go-clock"
	"github.com/sirupsen/logrus"
)

var (
	ErrMissingTeam = errors.New("team is not part of the season")
	ErrInvalidRow  = errors.New("invalid row")
)

// RowError is a single row that could not be written. The rest of the season
// is still ingested.
type RowError struct {
	Kind string
	Key  string
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Kind, e.Key, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

type Result struct {
	RunID     uuid.UUID
	Inserted  int
	Updated   int
	Errors    int
	RowErrors []RowError
}

type Service struct {
	db    db.DB
	clock clock.Clock
	log   logrus.FieldLogger
}

func New(store db.DB, clock clock.Clock, log logrus.FieldLogger) *Service {
	return &Service{
		db:    store,
		clock: clock,
		log:   log.WithField("component", "ingest"),
	}
}

// Ingest writes the season in dependency order: the season row, its teams, each
// matchup followed by its roster, the draft and finally the transactions.
//
// Row failures are collected in the result. If the store becomes unavailable
// the run stops and the partial result is returned with the error. Rows that
// were already written stay written.
func (s *Service) Ingest(ctx context.Context, season *model.Season) (*Result, error) {
	if season == nil {
		return nil, errors.New("Ingest - season is nil")
	}
	if season.LeagueID == "" || season.Year <= 0 {
		return nil, fmt.Errorf("%w: season needs a league id and year, got %q/%d", ErrInvalidRow, season.LeagueID, season.Year)
	}

	run := model.IngestRun{
		ID:       uuid.New(),
		LeagueID: season.LeagueID,
		Year:     season.Year,
		Platform: season.Platform,
		Started:  s.clock.Now().UTC(),
	}
	log := s.log.WithFields(logrus.Fields{
		"run":      run.ID,
		"season":   season.Year,
		"platform": season.Platform,
	})

	w := &writer{
		db:     s.db,
		log:    log,
		season: season,
		result: &Result{RunID: run.ID},
	}
	err := w.write(ctx)

	run.Finished = s.clock.Now().UTC()
	run.Inserted = w.result.Inserted
	run.Updated = w.result.Updated
	run.Errors = w.result.Errors
	run.Success = err == nil
	if err != nil {
		run.Error = err.Error()
	}

	// The run is recorded even when the caller's context is done.
	if saveErr := s.db.SaveIngestRun(context.WithoutCancel(ctx), &run); saveErr != nil {
		log.WithError(saveErr).Warn("unable to record ingest run")
	}

	entry := log.WithFields(logrus.Fields{
		"inserted": run.Inserted,
		"updated":  run.Updated,
		"errors":   run.Errors,
		"duration": run.Duration(),
	})
	if err != nil {
		entry.WithError(err).Error("ingest aborted")
		return w.result, err
	}
	entry.Info("ingest finished")
	return w.result, nil
}

type writer struct {
	db     db.DB
	log    logrus.FieldLogger
	season *model.Season
	result *Result
}

func (w *writer) write(ctx context.Context) error {
	s := w.season
	inserted, err := w.db.UpsertSeason(ctx, s)
	if err != nil {
		// Every other row references the season.
		return fmt.Errorf("error saving season %s/%d: %w", s.LeagueID, s.Year, err)
	}
	w.count(inserted)

	teams := make(map[string]bool, len(s.Teams))
	for _, t := range s.Teams {
		t.LeagueID, t.Year = s.LeagueID, s.Year
		key := t.Name

		if !finite(t.PointsFor, t.PointsAgainst) {
			w.rowError("team", key, fmt.Errorf("%w: non-finite points", ErrInvalidRow))
			continue
		}
		inserted, err := w.db.UpsertTeam(ctx, &t)
		if err := w.record("team", key, inserted, err); err != nil {
			return err
		}
		if err == nil {
			teams[t.Name] = true
		}
	}

	for _, m := range s.Matchups {
		m.LeagueID, m.Year = s.LeagueID, s.Year
		if err := w.writeMatchup(ctx, &m, teams); err != nil {
			return err
		}
	}

	for _, p := range s.Draft {
		p.LeagueID, p.Year = s.LeagueID, s.Year
		key := fmt.Sprintf("pick %d", p.OverallPick)

		if p.OverallPick <= 0 {
			w.rowError("draft", key, fmt.Errorf("%w: overall pick must be positive", ErrInvalidRow))
			continue
		}
		inserted, err := w.db.UpsertDraftPick(ctx, &p)
		if err := w.record("draft", key, inserted, err); err != nil {
			return err
		}
	}

	txns := make([]model.Transaction, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		t.LeagueID, t.Year = s.LeagueID, s.Year
		txns = append(txns, t)
	}
	added, updated, err := w.db.ReplaceTransactions(ctx, s.LeagueID, s.Year, txns)
	if err != nil {
		if db.IsUnavailable(err) {
			return err
		}
		w.rowError("transactions", fmt.Sprintf("%d", s.Year), err)
		return nil
	}
	w.result.Inserted += added
	w.result.Updated += updated
	return nil
}

func (w *writer) writeMatchup(ctx context.Context, m *model.Matchup, teams map[string]bool) error {
	key := fmt.Sprintf("week %d #%d %s v %s", m.Week, m.MatchupID, m.HomeTeam, m.AwayTeam)

	switch {
	case !teams[m.HomeTeam]:
		w.rowError("matchup", key, fmt.Errorf("%w: %q", ErrMissingTeam, m.HomeTeam))
		return nil
	case !teams[m.AwayTeam]:
		w.rowError("matchup", key, fmt.Errorf("%w: %q", ErrMissingTeam, m.AwayTeam))
		return nil
	case m.Week <= 0:
		w.rowError("matchup", key, fmt.Errorf("%w: week must be positive", ErrInvalidRow))
		return nil
	case !finite(m.HomeScore, m.AwayScore, m.HomeProjected, m.AwayProjected) || !finitePtr(m.HomeTotal, m.AwayTotal):
		w.rowError("matchup", key, fmt.Errorf("%w: non-finite score", ErrInvalidRow))
		return nil
	}

	inserted, err := w.db.UpsertMatchup(ctx, m)
	if err != nil {
		// The roster can't be written without its matchup.
		return w.record("matchup", key, inserted, err)
	}
	w.count(inserted)

	mk := m.Key()
	for i, e := range m.Roster {
		entryKey := fmt.Sprintf("%s %s", key, e.PlayerName)
		if e.TeamName != m.HomeTeam && e.TeamName != m.AwayTeam {
			w.rowError("roster", entryKey, fmt.Errorf("%w: %q", ErrMissingTeam, e.TeamName))
			continue
		}
		if !finite(e.Points, e.Projected) {
			w.rowError("roster", entryKey, fmt.Errorf("%w: non-finite points", ErrInvalidRow))
			continue
		}
		inserted, err := w.db.UpsertRosterEntry(ctx, mk, i, &e)
		if err := w.record("roster", entryKey, inserted, err); err != nil {
			return err
		}
	}
	return nil
}

// record counts a finished upsert. Only an unavailable store is returned,
// every other error becomes a row error.
func (w *writer) record(kind, key string, inserted bool, err error) error {
	if err == nil {
		w.count(inserted)
		return nil
	}
	if db.IsUnavailable(err) {
		return fmt.Errorf("error writing %s %s: %w", kind, key, err)
	}
	w.rowError(kind, key, err)
	return nil
}

func (w *writer) count(inserted bool) {
	if inserted {
		w.result.Inserted++
	} else {
		w.result.Updated++
	}
}

func (w *writer) rowError(kind, key string, err error) {
	w.result.Errors++
	w.result.RowErrors = append(w.result.RowErrors, RowError{Kind: kind, Key: key, Err: err})
	w.log.WithFields(logrus.Fields{
		"kind": kind,
		"key":  key,
	}).WithError(err).Warn("skipping row")
}

func finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func finitePtr(values ...*float64) bool {
	for _, v := range values {
		if v != nil && !finite(*v) {
			return false
		}
	}
	return true
}
