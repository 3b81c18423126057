package controller

import (
	"context"
	"fmt"
	"slices"

	"github.com/Praneshv25/KMSFL-Data/analytics"
	"github.com/Praneshv25/KMSFL-Data/cache"
	"github.com/Praneshv25/KMSFL-Data/model"
)

// MatchupWeek is one week (or a whole season) of matchups along with the
// last week that has been played in the season.
type MatchupWeek struct {
	Year     int             `json:"year"`
	Week     int             `json:"week,omitempty"`
	MaxWeek  int             `json:"max_week"`
	Matchups []model.Matchup `json:"matchups"`
}

func (c *controller) GetSeasons(ctx context.Context) ([]model.SeasonSummary, error) {
	return cache.Remember(ctx, c.cache, c.log, "seasons", func() ([]model.SeasonSummary, error) {
		seasons, err := c.db.ListSeasons(ctx)
		if err != nil {
			return nil, fmt.Errorf("error listing seasons: %w", err)
		}
		return seasons, nil
	})
}

func (c *controller) GetTeams(ctx context.Context, year int) ([]model.Team, error) {
	if err := validYear(year); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("teams:%d", year)
	return cache.Remember(ctx, c.cache, c.log, key, func() ([]model.Team, error) {
		leagueID, err := c.seasonLeague(ctx, year)
		if err != nil {
			return nil, err
		}
		teams, err := c.db.ListTeams(ctx, leagueID, year)
		if err != nil {
			return nil, fmt.Errorf("error listing teams: %w", err)
		}
		return analytics.Standings(teams, year), nil
	})
}

func (c *controller) GetChampions(ctx context.Context) ([]analytics.Champion, error) {
	return cache.Remember(ctx, c.cache, c.log, "champions", func() ([]analytics.Champion, error) {
		teams, err := c.db.ListTeams(ctx, "", 0)
		if err != nil {
			return nil, fmt.Errorf("error listing teams: %w", err)
		}
		return analytics.Champions(teams), nil
	})
}

func (c *controller) GetMatchups(ctx context.Context, year, week int) (*MatchupWeek, error) {
	if err := validYear(year); err != nil {
		return nil, err
	}
	if week < 0 {
		return nil, fmt.Errorf("week must not be negative, got: %d", week)
	}

	key := fmt.Sprintf("matchups:%d:%d", year, week)
	return cache.Remember(ctx, c.cache, c.log, key, func() (*MatchupWeek, error) {
		leagueID, err := c.seasonLeague(ctx, year)
		if err != nil {
			return nil, err
		}
		all, err := c.db.ListMatchups(ctx, leagueID, year, 0)
		if err != nil {
			return nil, fmt.Errorf("error listing matchups: %w", err)
		}

		mw := &MatchupWeek{Year: year, Week: week, Matchups: make([]model.Matchup, 0, len(all))}
		for _, m := range all {
			mw.MaxWeek = max(mw.MaxWeek, m.Week)
			if week == 0 || m.Week == week {
				mw.Matchups = append(mw.Matchups, m)
			}
		}
		return mw, nil
	})
}

func (c *controller) GetMatchupRoster(ctx context.Context, year, week, matchupID int) ([]model.RosterEntry, error) {
	leagueID, err := c.seasonLeague(ctx, year)
	if err != nil {
		return nil, err
	}
	roster, err := c.db.ListRoster(ctx, leagueID, year, week, matchupID)
	if err != nil {
		return nil, fmt.Errorf("error listing roster: %w", err)
	}
	model.SortRoster(roster)
	return roster, nil
}

func (c *controller) GetDraft(ctx context.Context, year int) ([]model.DraftPick, error) {
	if err := validYear(year); err != nil {
		return nil, err
	}

	key := fmt.Sprintf("draft:%d", year)
	return cache.Remember(ctx, c.cache, c.log, key, func() ([]model.DraftPick, error) {
		leagueID, err := c.seasonLeague(ctx, year)
		if err != nil {
			return nil, err
		}
		picks, err := c.db.ListDraft(ctx, leagueID, year)
		if err != nil {
			return nil, fmt.Errorf("error listing draft: %w", err)
		}
		slices.SortStableFunc(picks, func(a, b model.DraftPick) int {
			return a.OverallPick - b.OverallPick
		})
		return picks, nil
	})
}

func (c *controller) GetTransactions(ctx context.Context, year int) ([]model.Transaction, error) {
	if err := validYear(year); err != nil {
		return nil, err
	}

	leagueID, err := c.seasonLeague(ctx, year)
	if err != nil {
		return nil, err
	}
	txns, err := c.db.ListTransactions(ctx, leagueID, year)
	if err != nil {
		return nil, fmt.Errorf("error listing transactions: %w", err)
	}
	return txns, nil
}

func (c *controller) GetIngestRuns(ctx context.Context, limit int) ([]model.IngestRun, error) {
	runs, err := c.db.ListIngestRuns(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("error listing ingest runs: %w", err)
	}
	return runs, nil
}

func validYear(year int) error {
	if year <= 0 {
		return fmt.Errorf("%w: year must be provided, got: %d", ErrInvalidArgument, year)
	}
	return nil
}

// seasonLeague returns the league that played year. The platforms issue a
// new league id every few seasons, so a year is looked up rather than
// assumed. When more than one league played the year the configured league
// wins, then the lowest league id. An empty id means no league played it.
func (c *controller) seasonLeague(ctx context.Context, year int) (string, error) {
	seasons, err := c.db.ListSeasons(ctx)
	if err != nil {
		return "", fmt.Errorf("error listing seasons: %w", err)
	}

	leagueID := ""
	for _, s := range seasons {
		if s.Year != year {
			continue
		}
		if s.LeagueID == c.league.LeagueID {
			return s.LeagueID, nil
		}
		if leagueID == "" || s.LeagueID < leagueID {
			leagueID = s.LeagueID
		}
	}
	return leagueID, nil
}

// history loads every team and matchup across all seasons and leagues.
func (c *controller) history(ctx context.Context) ([]model.Team, []model.Matchup, error) {
	teams, err := c.db.ListTeams(ctx, "", 0)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing teams: %w", err)
	}
	matchups, err := c.db.ListMatchups(ctx, "", 0, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing matchups: %w", err)
	}
	return teams, matchups, nil
}
