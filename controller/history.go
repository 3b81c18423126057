package controller

import (
	"context"
	"fmt"
	"strings"

	"github.com/Praneshv25/KMSFL-Data/analytics"
	"github.com/Praneshv25/KMSFL-Data/cache"
)

func (c *controller) GetManagers(ctx context.Context) ([]analytics.ManagerSummary, error) {
	return cache.Remember(ctx, c.cache, c.log, "managers", func() ([]analytics.ManagerSummary, error) {
		teams, err := c.db.ListTeams(ctx, "", 0)
		if err != nil {
			return nil, fmt.Errorf("error listing teams: %w", err)
		}
		return analytics.Managers(teams, c.analyticsConfig()), nil
	})
}

func (c *controller) GetManager(ctx context.Context, name string) (*analytics.ManagerDetail, error) {
	name, err := managerName(name)
	if err != nil {
		return nil, err
	}

	return cache.Remember(ctx, c.cache, c.log, "manager:"+name, func() (*analytics.ManagerDetail, error) {
		teams, err := c.db.ListTeams(ctx, "", 0)
		if err != nil {
			return nil, fmt.Errorf("error listing teams: %w", err)
		}
		return analytics.Manager(name, teams, c.analyticsConfig())
	})
}

func (c *controller) GetRecords(ctx context.Context) ([]analytics.Record, error) {
	return cache.Remember(ctx, c.cache, c.log, "records", func() ([]analytics.Record, error) {
		teams, matchups, err := c.history(ctx)
		if err != nil {
			return nil, err
		}
		return analytics.Records(teams, matchups, c.analyticsConfig()), nil
	})
}

func (c *controller) GetHeadToHead(ctx context.Context, a, b string) (*analytics.HeadToHeadResult, error) {
	a, err := managerName(a)
	if err != nil {
		return nil, err
	}
	b, err = managerName(b)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("h2h:%s:%s", a, b)
	return cache.Remember(ctx, c.cache, c.log, key, func() (*analytics.HeadToHeadResult, error) {
		teams, matchups, err := c.history(ctx)
		if err != nil {
			return nil, err
		}
		return analytics.HeadToHead(a, b, teams, matchups)
	})
}

func (c *controller) GetRivalries(ctx context.Context, name string) ([]analytics.Rivalry, error) {
	name, err := managerName(name)
	if err != nil {
		return nil, err
	}

	return cache.Remember(ctx, c.cache, c.log, "rivalries:"+name, func() ([]analytics.Rivalry, error) {
		teams, matchups, err := c.history(ctx)
		if err != nil {
			return nil, err
		}
		return analytics.Rivalries(name, teams, matchups)
	})
}

func (c *controller) GetWeeklyResults(ctx context.Context, name string) ([]analytics.WeeklyResult, error) {
	name, err := managerName(name)
	if err != nil {
		return nil, err
	}

	return cache.Remember(ctx, c.cache, c.log, "weekly:"+name, func() ([]analytics.WeeklyResult, error) {
		teams, matchups, err := c.history(ctx)
		if err != nil {
			return nil, err
		}
		return analytics.WeeklyResults(name, teams, matchups)
	})
}

func (c *controller) GetLuckRankings(ctx context.Context) ([]analytics.LuckRanking, error) {
	return cache.Remember(ctx, c.cache, c.log, "luck", func() ([]analytics.LuckRanking, error) {
		teams, matchups, err := c.history(ctx)
		if err != nil {
			return nil, err
		}
		return analytics.Luck(teams, matchups), nil
	})
}

func (c *controller) GetWeeklyScores(ctx context.Context, year int, manager string) ([]analytics.WeeklyScore, error) {
	if err := validYear(year); err != nil {
		return nil, err
	}
	manager = strings.TrimSpace(manager)

	key := fmt.Sprintf("scores:%d:%s", year, manager)
	return cache.Remember(ctx, c.cache, c.log, key, func() ([]analytics.WeeklyScore, error) {
		leagueID, err := c.seasonLeague(ctx, year)
		if err != nil {
			return nil, err
		}
		teams, err := c.db.ListTeams(ctx, leagueID, year)
		if err != nil {
			return nil, fmt.Errorf("error listing teams: %w", err)
		}
		matchups, err := c.db.ListMatchups(ctx, leagueID, year, 0)
		if err != nil {
			return nil, fmt.Errorf("error listing matchups: %w", err)
		}
		return analytics.WeeklyScores(teams, matchups, year, manager), nil
	})
}

func managerName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("%w: manager name must be provided", ErrInvalidArgument)
	}
	return name, nil
}
